package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"hrdesk/internal/domain"
)

// WriteXLSX writes records as a single-sheet workbook with one column per
// field, in field order.
func WriteXLSX(w io.Writer, sheet string, fields []string, records []domain.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return fmt.Errorf("naming sheet: %w", err)
		}
	}

	for col, field := range fields {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, headerFor(field)); err != nil {
			return err
		}
	}

	for rowIdx, rec := range records {
		for col, field := range fields {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, rec.Str(field)); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
