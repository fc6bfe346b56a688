package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/dealflow/internal/service"
)

type Handler struct {
	offers    *service.OfferService
	contracts *service.ContractService
	refs      *service.ReferenceService
	log       zerolog.Logger
}

func NewHandler(
	offers *service.OfferService,
	contracts *service.ContractService,
	refs *service.ReferenceService,
	log zerolog.Logger,
) *Handler {
	return &Handler{offers: offers, contracts: contracts, refs: refs, log: log}
}

func (h *Handler) Register(api *gin.RouterGroup) {
	api.GET("/clients", h.listClients)
	api.POST("/clients", h.createClient)
	api.GET("/clients/:id", h.getClient)
	api.PUT("/clients/:id", h.updateClient)
	api.DELETE("/clients/:id", h.deleteClient)

	api.GET("/sales-reps", h.listSalesReps)
	api.POST("/sales-reps", h.createSalesRep)
	api.GET("/sales-reps/:id", h.getSalesRep)
	api.PUT("/sales-reps/:id", h.updateSalesRep)
	api.DELETE("/sales-reps/:id", h.deleteSalesRep)

	api.GET("/offers", h.listOffers)
	api.GET("/offers/export", h.exportOffers)
	api.POST("/offers", h.createOffer)
	api.GET("/offers/:id", h.getOffer)
	api.PUT("/offers/:id", h.updateOffer)
	api.PATCH("/offers/:id/status", h.updateOfferStatus)
	api.DELETE("/offers/:id", h.deleteOffer)
	api.POST("/offers/:id/convert", h.convertOffer)

	api.GET("/contracts", h.listContracts)
	api.GET("/contracts/export", h.exportContracts)
	api.POST("/contracts", h.createContract)
	api.POST("/contracts/from-offer/:offerId", h.createContractFromOffer)
	api.GET("/contracts/:id", h.getContract)
	api.GET("/contracts/:id/document", h.contractDocument)
	api.PUT("/contracts/:id", h.updateContract)
	api.PATCH("/contracts/:id/status", h.updateContractStatus)
	api.PUT("/contracts/:id/close", h.closeContract)
	api.DELETE("/contracts/:id", h.deleteContract)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "dealflow",
		"time":    time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(param)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}
