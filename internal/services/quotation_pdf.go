package services

import (
	"bytes"
	"fmt"

	"quotation-backend/internal/models"
	"quotation-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/shopspring/decimal"
)

// GenerateQuotationPDF renders a quotation with fixed costs, tier fields and
// stored totals for every item
func GenerateQuotationPDF(q *models.Quotation) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "") // Landscape for the tier columns
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(277, 10, fmt.Sprintf("Quotation %s", q.QuotationNumber), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(277, 6, fmt.Sprintf("Date: %s", timeutil.FormatDate(q.Date.Time)), "", 1, "C", false, 0, "")
	pdf.CellFormat(277, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format(timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Summary table
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(12, 7, "S.No", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Item Code", "1", 0, "C", true, 0, "")
	pdf.CellFormat(100, 7, "Description", "1", 0, "C", true, 0, "")
	pdf.CellFormat(15, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(15, 7, "Pcs", "1", 0, "C", true, 0, "")
	for _, t := range models.Tiers {
		pdf.CellFormat(33.33, 7, t.Label(), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for i, item := range q.Items {
		description := item.Description
		if len(description) > 55 {
			description = description[:52] + "..."
		}
		pdf.CellFormat(12, 6, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, item.ItemCode, "1", 0, "C", false, 0, "")
		pdf.CellFormat(100, 6, description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(15, 6, fmt.Sprintf("%d", item.Qty), "1", 0, "C", false, 0, "")
		pdf.CellFormat(15, 6, fmt.Sprintf("%d", item.Pcs), "1", 0, "C", false, 0, "")
		for _, t := range models.Tiers {
			pdf.CellFormat(33.33, 6, FormatRupees(item.Total(t)), "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}

	// One pricing breakdown per item
	for _, item := range q.Items {
		pdf.Ln(5)
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(277, 8, fmt.Sprintf("%s - %s", item.ItemCode, item.Description), "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(67, 7, "", "1", 0, "C", true, 0, "")
		for _, t := range models.Tiers {
			pdf.CellFormat(70, 7, t.Label(), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 10)
		for _, fc := range item.FixedCosts() {
			pdf.CellFormat(67, 6, fc.Name, "1", 0, "L", false, 0, "")
			for range models.Tiers {
				pdf.CellFormat(70, 6, fc.Value.StringFixed(2), "1", 0, "R", false, 0, "")
			}
			pdf.Ln(-1)
		}
		for _, f := range models.Fields {
			pdf.CellFormat(67, 6, f.Label(), "1", 0, "L", false, 0, "")
			for _, t := range models.Tiers {
				value := item.Tier(t).Get(f)
				if value == "" {
					value = "-"
				}
				pdf.CellFormat(70, 6, value, "1", 0, "R", false, 0, "")
			}
			pdf.Ln(-1)
		}

		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(67, 7, "Total", "1", 0, "L", false, 0, "")
		for _, t := range models.Tiers {
			pdf.CellFormat(70, 7, FormatRupees(item.Total(t)), "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FormatRupees formats an amount the way totals are shown to users. The PDF
// core fonts have no rupee glyph, so "Rs." is used.
func FormatRupees(d decimal.Decimal) string {
	return "Rs. " + d.StringFixed(2)
}
