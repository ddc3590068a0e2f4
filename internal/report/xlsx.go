package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

const proformaSheet = "Proforma"

// WriteProformaXLSX writes the proforma as a single-sheet workbook.
func WriteProformaXLSX(path string, p Proforma) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", proformaSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := []interface{}{"Year"}
	for _, c := range p.Columns {
		header = append(header, c.Name)
	}
	if err := f.SetSheetRow(proformaSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, y := range p.Years {
		row := []interface{}{y}
		for _, c := range p.Columns {
			row = append(row, c.Values[i])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(proformaSheet, cell, &row); err != nil {
			return fmt.Errorf("write year %d: %w", y, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
