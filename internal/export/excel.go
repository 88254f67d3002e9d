// Package export renders aggregated ledger data as spreadsheet downloads.
package export

import (
	"bytes"
	"fmt"

	"github.com/tdnguyen/debt-ledger/internal/model"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Cong no"

var headings = []string{"STT", "Ten khach hang", "So dien thoai", "Tong no", "Da tra", "Con lai", "Ghi chu"}

var columnWidths = []float64{5, 25, 15, 15, 15, 15, 30}

// DebtWorkbook flattens the customer-balance snapshot into an xlsx
// workbook: one row per customer, amounts as numbers so spreadsheet
// formulas keep working.
func DebtWorkbook(balances []*model.CustomerBalance) ([]byte, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for i, h := range headings {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}
	for i, w := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheetName, col, col, w); err != nil {
			return nil, err
		}
	}

	for i, b := range balances {
		row := i + 2
		totalDebt, _ := b.TotalDebt.Float64()
		totalPaid, _ := b.TotalPaid.Float64()
		balance, _ := b.Balance.Float64()

		values := []interface{}{
			i + 1,
			b.Name,
			deref(b.Phone),
			totalDebt,
			totalPaid,
			balance,
			deref(b.Notes),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
