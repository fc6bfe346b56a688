package service

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nurpe/dealflow/internal/excel"
	"github.com/nurpe/dealflow/internal/model"
	"github.com/nurpe/dealflow/internal/pdf"
	"github.com/nurpe/dealflow/internal/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.Client{}, &model.SalesRepresentative{}, &model.Offer{}, &model.Contract{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedReferences(t *testing.T, db *gorm.DB) (model.Client, model.SalesRepresentative) {
	t.Helper()
	client := model.Client{Name: "Acme Corp", Email: "contact@acmecorp.com", Phone: "123-456-7890", Address: "123 Main St"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("client: %v", err)
	}
	rep := model.SalesRepresentative{Name: "John Doe", Email: "john.doe@dealflow.local"}
	if err := db.Create(&rep).Error; err != nil {
		t.Fatalf("rep: %v", err)
	}
	return client, rep
}

func newOfferService(db *gorm.DB) *OfferService {
	return NewOfferService(repository.NewOfferRepository(db), excel.NewGenerator())
}

func newContractService(db *gorm.DB) *ContractService {
	return NewContractService(
		repository.NewContractRepository(db),
		repository.NewOfferRepository(db),
		excel.NewGenerator(),
		pdf.NewGenerator(),
	)
}

func offerInput(client model.Client, rep model.SalesRepresentative) OfferInput {
	return OfferInput{
		Title:       "Audit",
		Description: "Annual security audit",
		ClientID:    client.ID,
		SalesRepID:  rep.ID,
		ValidFrom:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil:  time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Amount:      5000,
		Notes:       "priority client",
	}
}

func contractInput(client model.Client, rep model.SalesRepresentative) ContractInput {
	return ContractInput{
		Title:               "Maintenance contract",
		Description:         "Ongoing maintenance",
		ClientID:            client.ID,
		ResponsiblePersonID: rep.ID,
		StartDate:           time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:             time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		PaymentTerms:        "Net 30",
		Amount:              12000,
	}
}
