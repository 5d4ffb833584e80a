// Package export renders a user's transactions as a spreadsheet.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"expensetracker/internal/core"
)

const (
	SheetName   = "Transactions"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var headers = []string{"Date", "Category", "Type", "Amount", "Note"}

// WriteTransactions writes txs, in the given order, as an xlsx workbook to w.
func WriteTransactions(w io.Writer, txs []core.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	// A new workbook starts with a single "Sheet1"
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, t := range txs {
		row := i + 2
		var title, typ string
		if t.Category != nil {
			title = t.Category.Label()
			typ = string(t.Category.Type)
		}
		values := []any{t.Date.String(), title, typ, t.Amount.Float(), t.Note}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	f.SetColWidth(SheetName, "A", "A", 12)
	f.SetColWidth(SheetName, "B", "B", 20)
	f.SetColWidth(SheetName, "C", "C", 10)
	f.SetColWidth(SheetName, "D", "D", 12)
	f.SetColWidth(SheetName, "E", "E", 40)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
