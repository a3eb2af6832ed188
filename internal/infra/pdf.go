package infra

// pdf.go — picking sheet generation using go-pdf/fpdf.
// One sheet per trade-point order: header with trade point name and code,
// then a product table (name, vendor code, quantity). Used by warehouse
// staff to assemble the delivery for one store.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/baikov/orders-backend/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateOrderPDF renders the picking sheet for one trade-point order.
// storagePath is the directory where the PDF will be written (created if
// needed). Returns the absolute path to the generated file.
func GenerateOrderPDF(order *model.Order, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("order_%s.pdf", order.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	// Product and store names are Cyrillic; core fonts need the cp1251
	// translator to render them.
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1251")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	tpName, tpCode := "", ""
	if order.TradePoint != nil {
		tpName = order.TradePoint.Name
		tpCode = order.TradePoint.SapCode
	}

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, tr(tpName), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if tpCode != "" {
		pdf.CellFormat(contentW, 5, tr(fmt.Sprintf("Код: %s", tpCode)), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(contentW, 5, order.CreatedAt.Format("02.01.2006"), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	// ── Table header ─────────────────────────────────────────────────────────
	col1 := contentW * 0.58 // product name
	col2 := contentW * 0.24 // vendor code
	col3 := contentW * 0.18 // amount

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 7, tr("Товар"), "1", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, tr("Артикул"), "1", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 7, tr("Кол-во"), "1", 1, "C", false, 0, "")

	// ── Rows ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	total := 0
	for _, item := range order.Items {
		name, code := "", ""
		if item.Product != nil {
			name = item.Product.Name
			code = item.Product.VendorCode
		}
		pdf.CellFormat(col1, 6, tr(name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, tr(code), "1", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 6, fmt.Sprintf("%d", item.Amount), "1", 1, "C", false, 0, "")
		total += item.Amount
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 7, tr("Итого"), "1", 0, "R", false, 0, "")
	pdf.CellFormat(col3, 7, fmt.Sprintf("%d", total), "1", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
