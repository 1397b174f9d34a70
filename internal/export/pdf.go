package export

import (
	"fmt"
	"log"
	"os"

	"github.com/phpdave11/gofpdf"

	"salesdesk/internal/models"
	"salesdesk/internal/pricing"
)

// PDF layout constants, all in centimeters on an A4 page.
const (
	pdfMargin    = 1.0
	pdfLogoSize  = 1.3
	pdfImageSize = 1.0
	pdfRowHeight = 1.2
	pdfHeaderH   = 0.8
	pdfLineH     = 0.5
)

var pdfColWidths = []float64{7, 2, 3, 4, 4}

func (r *Renderer) renderPDF(order *models.Order) (string, error) {
	pdf := gofpdf.New("P", "cm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)

	font := "Helvetica"
	if r.fontPath != "" {
		// A UTF-8 TTF is required for Cyrillic labels and client names.
		pdf.AddUTF8Font("Roboto", "", r.fontPath)
		font = "Roboto"
	}
	pdf.SetFont(font, "", 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()

	// Logo in the top-right corner.
	if r.logoPath != "" {
		if _, err := os.Stat(r.logoPath); err == nil {
			pdf.ImageOptions(r.logoPath, pageW-pdfMargin-pdfLogoSize, pdfMargin,
				pdfLogoSize, pdfLogoSize, false, gofpdf.ImageOptions{}, 0, "")
		}
		pdf.SetY(pdfMargin + pdfLogoSize + 0.2)
	}

	// Header block.
	pdf.CellFormat(0, pdfLineH, labelPDFClient+order.Client, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, pdfLineH, labelPDFVAT+percent(order.VAT), "", 1, "L", false, 0, "")
	if order.AdditionalExpenses.Valid {
		pdf.CellFormat(0, pdfLineH, labelPDFExtras+percent(order.AdditionalExpenses), "", 1, "L", false, 0, "")
	}
	pdf.Ln(0.3)

	// Line-item table header.
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(245, 245, 245)
	for i, h := range tableHeaders {
		pdf.CellFormat(pdfColWidths[i], pdfHeaderH, h, "1", 0, "CM", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFillColor(245, 245, 220)
	pdf.SetTextColor(0, 0, 0)
	for i := range order.Products {
		r.writePDFRow(pdf, &order.Products[i], font)
	}

	// Totals block, amounts right-aligned with two fixed digits.
	pdf.Ln(0.5)
	pdf.SetFillColor(211, 211, 211)
	writeTotal := func(label, amount string, fill bool) {
		pdf.CellFormat(5, 0.6, label, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(14, 0.6, amount, "1", 1, "R", fill, 0, "")
	}
	writeTotal(labelSubtotal, pricing.Subtotal(order).StringFixed(2), true)
	writeTotal(labelTotalVAT, pricing.TotalWithVAT(order).StringFixed(2), false)
	if order.AdditionalExpenses.Valid {
		writeTotal(labelExtras, pricing.ExtrasAmount(order).StringFixed(2), false)
		writeTotal(labelGrandTotal, pricing.GrandTotal(order).StringFixed(2), false)
	}

	path := r.scratchFile(order.ID, ".pdf")
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to save pdf: %w", err)
	}
	return path, nil
}

// writePDFRow emits one product row. The photo is placed inside the second
// column cell; an unreadable photo degrades to a placeholder, never failing
// the document.
func (r *Renderer) writePDFRow(pdf *gofpdf.Fpdf, product *models.OrderProduct, font string) {
	_, pageH := pdf.GetPageSize()
	if pdf.GetY()+pdfRowHeight > pageH-pdfMargin {
		pdf.AddPage()
	}

	x, y := pdf.GetX(), pdf.GetY()

	pdf.SetFontSize(7.3)
	pdf.CellFormat(pdfColWidths[0], pdfRowHeight, product.Name, "1", 0, "CM", true, 0, "")
	pdf.SetFontSize(10)

	// Photo cell.
	pdf.CellFormat(pdfColWidths[1], pdfRowHeight, "", "1", 0, "CM", true, 0, "")
	if product.Photo != "" {
		path, err := r.photoPath(product)
		if err == nil {
			// Reject anything gofpdf could choke on before it poisons the
			// document's error state.
			_, _, err = imageSize(path)
		}
		if err == nil {
			imgX := x + pdfColWidths[0] + (pdfColWidths[1]-pdfImageSize)/2
			imgY := y + (pdfRowHeight-pdfImageSize)/2
			pdf.ImageOptions(path, imgX, imgY, pdfImageSize, pdfImageSize, false, gofpdf.ImageOptions{}, 0, "")
		} else {
			log.Printf("order %d: photo %s cannot be embedded: %v", product.OrderID, product.Photo, err)
			pdf.SetXY(x+pdfColWidths[0], y)
			pdf.SetFontSize(5)
			pdf.CellFormat(pdfColWidths[1], pdfRowHeight, labelNoImage, "1", 0, "CM", true, 0, "")
			pdf.SetFontSize(10)
		}
	}

	pdf.SetXY(x+pdfColWidths[0]+pdfColWidths[1], y)
	pdf.CellFormat(pdfColWidths[2], pdfRowHeight, fmt.Sprintf("%d", product.Quantity), "1", 0, "CM", true, 0, "")
	pdf.CellFormat(pdfColWidths[3], pdfRowHeight, product.Price.StringFixed(2), "1", 0, "CM", true, 0, "")
	pdf.CellFormat(pdfColWidths[4], pdfRowHeight, product.TotalPrice().StringFixed(2), "1", 1, "CM", true, 0, "")
}
