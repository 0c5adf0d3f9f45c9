// Package report renders ledger records as spreadsheet downloads.
package report

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"

	"github.com/prajan97/diamond-intel/pkg/types"
)

// StonesSheet is the worksheet name of the inventory export.
const StonesSheet = "Inventory"

var stoneHeaders = []string{
	"ID", "Carat", "Shape", "Color", "Clarity", "Cut", "Certification",
	"Cert Number", "Asking Price", "Cost Price", "Source", "Supplier",
	"Status", "Date Added", "Date Updated", "Notes",
}

var stoneColWidths = []float64{6, 8, 12, 8, 8, 12, 14, 16, 14, 14, 14, 20, 12, 12, 12, 30}

// StonesWorkbook lays out stones as one row each under a bold header, with a
// totals row summing asking and cost price. The caller closes the file.
func StonesWorkbook(stones []types.Stone) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", StonesSheet); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeStones(f, StonesSheet, stones); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// writeStones fills sheet with the header, the stone rows and the totals
// row, then applies styles and column widths.
func writeStones(f *excelize.File, sheet string, stones []types.Stone) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return err
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(sheet, "A1", &stoneHeaders); err != nil {
		return err
	}
	last, err := excelize.ColumnNumberToName(len(stoneHeaders))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last+"1", headerStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	var totalAsking, totalCost float64
	for i, s := range stones {
		row := []any{
			s.ID, cell(s.Carat), cell(s.Shape), cell(s.Color), cell(s.Clarity),
			cell(s.Cut), cell(s.Certification), cell(s.CertNumber),
			cell(s.AskingPrice), cell(s.CostPrice), cell(s.Source),
			cell(s.SupplierName), s.Status, s.DateAdded, s.DateUpdated, cell(s.Notes),
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
		totalAsking += lo.FromPtr(s.AskingPrice)
		totalCost += lo.FromPtr(s.CostPrice)
	}

	totalRow := len(stones) + 2
	totals := []any{"Total", nil, nil, nil, nil, nil, nil, nil, totalAsking, totalCost}
	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", totalRow), &totals); err != nil {
		return fmt.Errorf("writing totals: %w", err)
	}
	if err := f.SetCellStyle(sheet, "I2", fmt.Sprintf("J%d", totalRow), moneyStyle); err != nil {
		return fmt.Errorf("styling prices: %w", err)
	}

	for i, w := range stoneColWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return fmt.Errorf("sizing column %s: %w", col, err)
		}
	}
	return nil
}

// cell turns an optional field into a cell value; nil leaves the cell blank.
func cell[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}
