package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/dealflow/internal/auth"
	"github.com/nurpe/dealflow/internal/config"
	"github.com/nurpe/dealflow/internal/db"
	"github.com/nurpe/dealflow/internal/excel"
	httphandler "github.com/nurpe/dealflow/internal/http"
	"github.com/nurpe/dealflow/internal/http/middleware"
	"github.com/nurpe/dealflow/internal/logger"
	"github.com/nurpe/dealflow/internal/pdf"
	"github.com/nurpe/dealflow/internal/repository"
	"github.com/nurpe/dealflow/internal/seed"
	"github.com/nurpe/dealflow/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	if cfg.Seed.SeedOnStart {
		data := seed.Load(cfg.Seed.DataPath)
		if err := seed.Apply(context.Background(), database, data); err != nil {
			log.Fatal().Err(err).Msg("failed to seed reference data")
		}
		log.Info().
			Int("clients", len(data.Clients)).
			Int("sales_reps", len(data.SalesReps)).
			Msg("reference data seeded")
	}

	offerRepo := repository.NewOfferRepository(database)
	contractRepo := repository.NewContractRepository(database)
	clientRepo := repository.NewClientRepository(database)
	salesRepRepo := repository.NewSalesRepRepository(database)

	excelGenerator := excel.NewGenerator()
	pdfGenerator := pdf.NewGenerator()

	offerService := service.NewOfferService(offerRepo, excelGenerator)
	contractService := service.NewContractService(contractRepo, offerRepo, excelGenerator, pdfGenerator)
	referenceService := service.NewReferenceService(clientRepo, salesRepRepo)

	handler := httphandler.NewHandler(offerService, contractService, referenceService, log)

	var authMiddleware gin.HandlerFunc
	if cfg.Auth.AccessSecret != "" {
		tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
		authMiddleware = middleware.Auth(tokenParser)
	} else {
		log.Warn().Msg("JWT_ACCESS_SECRET not set, API is unauthenticated")
	}

	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting dealflow service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
