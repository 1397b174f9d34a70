package export

import (
	"fmt"
	"log"

	"github.com/xuri/excelize/v2"

	"salesdesk/internal/models"
	"salesdesk/internal/pricing"
)

const sheetName = "Order"

// Pixel size of embedded photos and the matching row height.
const excelImageSize = 30

func (r *Renderer) renderExcel(order *models.Order) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return "", fmt.Errorf("failed to set sheet name: %w", err)
	}

	boldLeft, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create style: %w", err)
	}
	center, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    gridBorder(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create style: %w", err)
	}
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9D9D9"}},
		Border:    gridBorder(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create style: %w", err)
	}
	boldCenter, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create style: %w", err)
	}

	// Header block: client name and applied VAT percentage.
	f.SetCellValue(sheetName, "A1", labelClient)
	f.SetCellValue(sheetName, "B1", order.Client)
	f.SetCellValue(sheetName, "A2", labelVAT)
	f.SetCellValue(sheetName, "B2", percent(order.VAT))
	f.SetCellStyle(sheetName, "A1", "A2", boldLeft)

	// Line-item table header.
	for i, h := range tableHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		f.SetCellValue(sheetName, cell, h)
	}
	f.SetCellStyle(sheetName, "A4", "E4", header)

	row := 5
	for i := range order.Products {
		product := &order.Products[i]
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), product.Name)
		r.embedExcelPhoto(f, product, row)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), int(product.Quantity))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), product.Price.StringFixed(2))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), product.TotalPrice().StringFixed(2))
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row), center)
		f.SetRowHeight(sheetName, row, excelImageSize)
		row++
	}

	// Totals block.
	writeTotal := func(label, amount string) {
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), label)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), amount)
		f.SetCellStyle(sheetName, fmt.Sprintf("D%d", row), fmt.Sprintf("E%d", row), boldCenter)
		row++
	}
	writeTotal(labelSubtotal, pricing.Subtotal(order).StringFixed(2))
	writeTotal(labelTotalVAT, pricing.TotalWithVAT(order).StringFixed(2))
	if order.AdditionalExpenses.Valid {
		writeTotal(labelExtras, pricing.ExtrasAmount(order).StringFixed(2))
		writeTotal(labelGrandTotal, pricing.GrandTotal(order).StringFixed(2))
	}

	f.SetColWidth(sheetName, "A", "B", 30)
	f.SetColWidth(sheetName, "C", "E", 20)

	path := r.scratchFile(order.ID, ".xlsx")
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save spreadsheet: %w", err)
	}
	return path, nil
}

// embedExcelPhoto anchors the product photo to column B of the row, scaled
// to roughly 30x30 px. A photo that cannot be read or converted degrades to
// a placeholder cell; the row is still emitted.
func (r *Renderer) embedExcelPhoto(f *excelize.File, product *models.OrderProduct, row int) {
	if product.Photo == "" {
		return
	}
	cell := fmt.Sprintf("B%d", row)

	path, err := r.photoPath(product)
	if err == nil {
		var w, h int
		w, h, err = imageSize(path)
		if err == nil {
			err = f.AddPicture(sheetName, cell, path, &excelize.GraphicOptions{
				ScaleX: float64(excelImageSize) / float64(w),
				ScaleY: float64(excelImageSize) / float64(h),
			})
		}
	}
	if err != nil {
		log.Printf("order %d: photo %s cannot be embedded: %v", product.OrderID, product.Photo, err)
		f.SetCellValue(sheetName, cell, labelNoImage)
	}
}

func gridBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}
