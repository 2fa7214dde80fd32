package ledger

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"expensetracker/internal/models"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// exportHeader is the column order of every export. Descriptions are not
// exported.
var exportHeader = []string{"id", "date", "amount", "category", "type"}

const sheetName = "Transactions"

// WriteCSV writes txs as CSV with a header row.
func WriteCSV(w io.Writer, txs []models.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, tx := range txs {
		record := []string{
			strconv.FormatUint(uint64(tx.ID), 10),
			tx.Date,
			tx.Amount.String(),
			tx.Category,
			string(tx.Type),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes txs as a single-sheet workbook with a styled header and
// a total row.
func WriteXLSX(w io.Writer, txs []models.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return err
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Border: border,
	})
	if err != nil {
		return err
	}

	widths := map[string]float64{"A": 8, "B": 12, "C": 14, "D": 20, "E": 10}
	for col, width := range widths {
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return err
		}
	}

	for i, h := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	total := decimal.Zero
	for i, tx := range txs {
		row := i + 2
		values := []any{tx.ID, tx.Date, tx.Amount.InexactFloat64(), tx.Category, string(tx.Type)}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return err
			}
		}
		total = total.Add(tx.Amount)
	}

	totalRow := len(txs) + 2
	if err := f.SetCellValue(sheetName, fmt.Sprintf("A%d", totalRow), "total"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetName, fmt.Sprintf("C%d", totalRow), total.InexactFloat64()); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("E%d", totalRow), totalStyle); err != nil {
		return err
	}

	return f.Write(w)
}

// WriteExport writes txs in the given format.
func WriteExport(w io.Writer, format string, txs []models.Transaction) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, txs)
	case FormatXLSX:
		return WriteXLSX(w, txs)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

func (s *gormStore) ExportCSV(ctx context.Context, path string) error {
	return s.exportFile(ctx, path, FormatCSV)
}

func (s *gormStore) ExportXLSX(ctx context.Context, path string) error {
	return s.exportFile(ctx, path, FormatXLSX)
}

// exportFile writes every transaction to path, creating parent directories
// as needed.
func (s *gormStore) exportFile(ctx context.Context, path, format string) error {
	txs, err := s.QueryTransactions(ctx, Filter{})
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return storageErr(err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return storageErr(err)
	}
	if err := WriteExport(f, format, txs); err != nil {
		_ = f.Close()
		return storageErr(err)
	}
	if err := f.Close(); err != nil {
		return storageErr(err)
	}
	return nil
}
