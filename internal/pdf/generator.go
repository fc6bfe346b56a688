package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/dealflow/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

func (g *Generator) Generate(doc model.ContractDocument) ([]byte, error) {
	contract := doc.Contract

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "SERVICE CONTRACT", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Contract %s, status: %s", contract.ID, contract.Status), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Term: %s through %s", formatDate(contract.StartDate), formatDate(contract.EndDate)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, contract.Title, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	pdf.MultiCell(0, 5, contract.Description, "", "L", false)
	pdf.Ln(2)

	if contract.Client != nil {
		addPartyBlock(pdf, g.fontName, "Client", []string{
			contract.Client.Name,
			fmt.Sprintf("Email: %s", safeValue(contract.Client.Email)),
			fmt.Sprintf("Phone: %s", safeValue(contract.Client.Phone)),
			fmt.Sprintf("Address: %s", safeValue(contract.Client.Address)),
		})
		pdf.Ln(2)
	}
	if contract.ResponsiblePerson != nil {
		addPartyBlock(pdf, g.fontName, "Responsible person", []string{
			contract.ResponsiblePerson.Name,
			fmt.Sprintf("Email: %s", safeValue(contract.ResponsiblePerson.Email)),
		})
		pdf.Ln(2)
	}

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Terms", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)

	headers := []string{"Payment terms", "Amount"}
	colWidths := []float64{90, 90}
	drawTableRow(pdf, g.fontName, headers, colWidths, true)
	drawTableRow(pdf, g.fontName, []string{contract.PaymentTerms, formatAmount(contract.Amount)}, colWidths, false)
	pdf.Ln(2)

	if contract.Offer != nil {
		pdf.SetFont(g.fontName, "", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("Based on offer %s (%s)", contract.Offer.ID, contract.Offer.Title), "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}

	if strings.TrimSpace(contract.Notes) != "" {
		pdf.SetFont(g.fontName, "B", 12)
		pdf.CellFormat(0, 8, "Notes", "", 1, "L", false, 0, "")
		pdf.SetFont(g.fontName, "", 10)
		pdf.MultiCell(0, 5, contract.Notes, "", "L", false)
		pdf.Ln(2)
	}

	pdf.Ln(4)
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Signatures", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)

	clientName := ""
	if contract.Client != nil {
		clientName = contract.Client.Name
	}
	repName := ""
	if contract.ResponsiblePerson != nil {
		repName = contract.ResponsiblePerson.Name
	}
	signatureBlock(pdf, g.fontName, "Client", clientName)
	signatureBlock(pdf, g.fontName, "Provider", repName)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addPartyBlock(pdf *gofpdf.Fpdf, fontName, title string, lines []string) {
	pdf.SetFont(fontName, "B", 11)
	pdf.CellFormat(0, 6, title, "", 1, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	for _, line := range lines {
		pdf.MultiCell(0, 5, line, "", "L", false)
	}
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i > 0 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func signatureBlock(pdf *gofpdf.Fpdf, fontName, label, name string) {
	pdf.CellFormat(0, 6, fmt.Sprintf("%s: ______________________ /%s/", label, safeValue(name)), "", 1, "L", false, 0, "")
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatAmount(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}
