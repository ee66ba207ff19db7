package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sigap/sigap/internal/model1"
)

const defaultSheet = "Data"

// Config drives one spreadsheet export.
type Config struct {
	Filename  string // target path, .xlsx appended when missing
	SheetName string // defaults to "Data"
}

// Table writes the given table to an xlsx workbook. Hidden columns are
// skipped; columns carrying an export transform are written through it.
func Table(data *model1.TableData, cfg Config) (string, error) {
	if data == nil {
		return "", fmt.Errorf("no data to export")
	}
	if cfg.Filename == "" {
		return "", fmt.Errorf("export filename cannot be empty")
	}

	path := cfg.Filename
	if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
		path += ".xlsx"
	}

	sheet := cfg.SheetName
	if sheet == "" {
		sheet = defaultSheet
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return "", fmt.Errorf("failed to name sheet: %w", err)
	}

	header := data.Header()
	cols := make([]int, 0, len(header))
	for i, hc := range header {
		if hc.Hide {
			continue
		}
		cols = append(cols, i)
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return "", fmt.Errorf("failed to create header style: %w", err)
	}

	for c, idx := range cols {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return "", err
		}
		if err := f.SetCellValue(sheet, cell, header[idx].Name); err != nil {
			return "", fmt.Errorf("failed to write header: %w", err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return "", fmt.Errorf("failed to style header: %w", err)
		}
	}

	var writeErr error
	row := 2
	data.RowEvents().Range(func(_ int, re model1.RowEvent) bool {
		for c, idx := range cols {
			val := ""
			if idx < len(re.Row.Fields) {
				val = re.Row.Fields[idx]
			}
			if xf := header[idx].Export; xf != nil {
				val = xf(val)
			}

			cell, err := excelize.CoordinatesToCellName(c+1, row)
			if err != nil {
				writeErr = err
				return false
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				writeErr = fmt.Errorf("failed to write row %d: %w", row, err)
				return false
			}
		}
		row++
		return true
	})
	if writeErr != nil {
		return "", writeErr
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return path, nil
}

// DefaultFilename builds a timestamped export name for a resource,
// e.g. "families-20250830-154512".
func DefaultFilename(resource string) string {
	return fmt.Sprintf("%s-%s", resource, time.Now().Format("20060102-150405"))
}
