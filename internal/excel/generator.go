package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/dealflow/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) GenerateOffers(register model.OfferRegister) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Summary"
	file.SetSheetName("Sheet1", summarySheet)

	set := func(sheet, cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	total := 0.0
	for _, offer := range register.Offers {
		total += offer.Amount
	}

	set(summarySheet, "A1", "Register")
	set(summarySheet, "B1", "Offers")
	set(summarySheet, "A2", "Status filter")
	set(summarySheet, "B2", statusLabel(register.Status))
	set(summarySheet, "A3", "Generated at")
	set(summarySheet, "B3", formatDateTime(register.GeneratedAt))
	set(summarySheet, "A4", "Records")
	set(summarySheet, "B4", len(register.Offers))
	set(summarySheet, "A5", "Total amount")
	set(summarySheet, "B5", formatAmount(total))
	_ = file.SetColWidth(summarySheet, "A", "A", 20)
	_ = file.SetColWidth(summarySheet, "B", "B", 24)

	registerSheet := "Offers"
	_, err := file.NewSheet(registerSheet)
	if err != nil {
		return nil, err
	}

	headers := []string{"ID", "Title", "Client", "Sales representative", "Valid from", "Valid until", "Amount", "Status"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(registerSheet, cell, header)
	}
	for i, offer := range register.Offers {
		row := i + 2
		clientName := ""
		if offer.Client != nil {
			clientName = offer.Client.Name
		}
		repName := ""
		if offer.SalesRep != nil {
			repName = offer.SalesRep.Name
		}
		set(registerSheet, fmt.Sprintf("A%d", row), offer.ID.String())
		set(registerSheet, fmt.Sprintf("B%d", row), offer.Title)
		set(registerSheet, fmt.Sprintf("C%d", row), clientName)
		set(registerSheet, fmt.Sprintf("D%d", row), repName)
		set(registerSheet, fmt.Sprintf("E%d", row), formatDate(offer.ValidFrom))
		set(registerSheet, fmt.Sprintf("F%d", row), formatDate(offer.ValidUntil))
		set(registerSheet, fmt.Sprintf("G%d", row), formatAmount(offer.Amount))
		set(registerSheet, fmt.Sprintf("H%d", row), string(offer.Status))
	}
	_ = file.SetColWidth(registerSheet, "A", "A", 38)
	_ = file.SetColWidth(registerSheet, "B", "D", 28)
	_ = file.SetColWidth(registerSheet, "E", "H", 14)

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) GenerateContracts(register model.ContractRegister) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Summary"
	file.SetSheetName("Sheet1", summarySheet)

	set := func(sheet, cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	total := 0.0
	for _, contract := range register.Contracts {
		total += contract.Amount
	}

	set(summarySheet, "A1", "Register")
	set(summarySheet, "B1", "Contracts")
	set(summarySheet, "A2", "Status filter")
	set(summarySheet, "B2", statusLabel(register.Status))
	set(summarySheet, "A3", "Generated at")
	set(summarySheet, "B3", formatDateTime(register.GeneratedAt))
	set(summarySheet, "A4", "Records")
	set(summarySheet, "B4", len(register.Contracts))
	set(summarySheet, "A5", "Total amount")
	set(summarySheet, "B5", formatAmount(total))
	_ = file.SetColWidth(summarySheet, "A", "A", 20)
	_ = file.SetColWidth(summarySheet, "B", "B", 24)

	registerSheet := "Contracts"
	_, err := file.NewSheet(registerSheet)
	if err != nil {
		return nil, err
	}

	headers := []string{"ID", "Title", "Client", "Responsible person", "Start date", "End date", "Payment terms", "Amount", "Status", "Offer"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(registerSheet, cell, header)
	}
	for i, contract := range register.Contracts {
		row := i + 2
		clientName := ""
		if contract.Client != nil {
			clientName = contract.Client.Name
		}
		repName := ""
		if contract.ResponsiblePerson != nil {
			repName = contract.ResponsiblePerson.Name
		}
		offerID := ""
		if contract.OfferID != nil {
			offerID = contract.OfferID.String()
		}
		set(registerSheet, fmt.Sprintf("A%d", row), contract.ID.String())
		set(registerSheet, fmt.Sprintf("B%d", row), contract.Title)
		set(registerSheet, fmt.Sprintf("C%d", row), clientName)
		set(registerSheet, fmt.Sprintf("D%d", row), repName)
		set(registerSheet, fmt.Sprintf("E%d", row), formatDate(contract.StartDate))
		set(registerSheet, fmt.Sprintf("F%d", row), formatDate(contract.EndDate))
		set(registerSheet, fmt.Sprintf("G%d", row), contract.PaymentTerms)
		set(registerSheet, fmt.Sprintf("H%d", row), formatAmount(contract.Amount))
		set(registerSheet, fmt.Sprintf("I%d", row), string(contract.Status))
		set(registerSheet, fmt.Sprintf("J%d", row), offerID)
	}
	_ = file.SetColWidth(registerSheet, "A", "A", 38)
	_ = file.SetColWidth(registerSheet, "B", "D", 28)
	_ = file.SetColWidth(registerSheet, "E", "I", 14)
	_ = file.SetColWidth(registerSheet, "J", "J", 38)

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func statusLabel(status string) string {
	if status == "" {
		return "all"
	}
	return status
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatAmount(value float64) string {
	return fmt.Sprintf("%.2f", value)
}
