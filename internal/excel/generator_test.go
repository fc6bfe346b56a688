package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/dealflow/internal/model"
)

func TestGenerateOffers(t *testing.T) {
	offerID := uuid.New()
	register := model.OfferRegister{
		GeneratedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Status:      "sent",
		Offers: []model.Offer{
			{
				ID:         offerID,
				Title:      "Audit",
				Client:     &model.Client{Name: "Acme Corp"},
				SalesRep:   &model.SalesRepresentative{Name: "John Doe"},
				ValidFrom:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
				ValidUntil: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
				Amount:     5000,
				Status:     model.OfferStatusSent,
			},
		},
	}

	content, err := NewGenerator().GenerateOffers(register)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	file, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer file.Close()

	cell := func(sheet, ref string) string {
		t.Helper()
		value, err := file.GetCellValue(sheet, ref)
		if err != nil {
			t.Fatalf("cell %s!%s: %v", sheet, ref, err)
		}
		return value
	}

	if got := cell("Summary", "B2"); got != "sent" {
		t.Errorf("status filter: got %q", got)
	}
	if got := cell("Summary", "B4"); got != "1" {
		t.Errorf("record count: got %q", got)
	}
	if got := cell("Summary", "B5"); got != "5000.00" {
		t.Errorf("total amount: got %q", got)
	}
	if got := cell("Offers", "A2"); got != offerID.String() {
		t.Errorf("offer id: got %q", got)
	}
	if got := cell("Offers", "C2"); got != "Acme Corp" {
		t.Errorf("client name: got %q", got)
	}
	if got := cell("Offers", "E2"); got != "2025-01-01" {
		t.Errorf("valid from: got %q", got)
	}
}

func TestGenerateContractsEmpty(t *testing.T) {
	register := model.ContractRegister{GeneratedAt: time.Now()}

	content, err := NewGenerator().GenerateContracts(register)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	file, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer file.Close()

	if got, _ := file.GetCellValue("Summary", "B2"); got != "all" {
		t.Errorf("status filter: got %q", got)
	}
	if got, _ := file.GetCellValue("Summary", "B4"); got != "0" {
		t.Errorf("record count: got %q", got)
	}
	if got, _ := file.GetCellValue("Contracts", "A1"); got != "ID" {
		t.Errorf("header: got %q", got)
	}
}

func TestGenerateContractsOfferColumn(t *testing.T) {
	offerID := uuid.New()
	register := model.ContractRegister{
		GeneratedAt: time.Now(),
		Contracts: []model.Contract{
			{
				ID:                uuid.New(),
				Title:             "Maintenance contract",
				Client:            &model.Client{Name: "Globex Industries"},
				ResponsiblePerson: &model.SalesRepresentative{Name: "Jane Smith"},
				StartDate:         time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
				EndDate:           time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
				PaymentTerms:      "Net 30",
				Amount:            12000,
				Status:            model.ContractStatusActive,
				OfferID:           &offerID,
			},
		},
	}

	content, err := NewGenerator().GenerateContracts(register)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	file, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer file.Close()

	if got, _ := file.GetCellValue("Contracts", "J2"); got != offerID.String() {
		t.Errorf("offer column: got %q", got)
	}
	if got, _ := file.GetCellValue("Contracts", "G2"); got != "Net 30" {
		t.Errorf("payment terms: got %q", got)
	}
}
