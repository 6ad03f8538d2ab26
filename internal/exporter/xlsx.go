package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX writes headers and records to a single-sheet workbook under
// the output directory, publishing atomically like WriteCSV.
func (w *Writer) WriteXLSX(name, sheet string, headers []string, records [][]string) error {
	fullPath := w.Path(name)

	w.logger.Info("writing XLSX file",
		slog.String("path", fullPath),
		slog.String("sheet", sheet),
		slog.Int("record_count", len(records)),
	)

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if sheet != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("remove default sheet: %w", err)
		}
	}

	writeRow := func(rowNum int, cells []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		row := make([]interface{}, len(cells))
		for i, c := range cells {
			row[i] = c
		}
		return f.SetSheetRow(sheet, cell, &row)
	}

	if err := writeRow(1, headers); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	for i, record := range records {
		if err := writeRow(i+2, record); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	// SaveAs derives the workbook format from the extension, so the temp
	// name has to keep the .xlsx suffix.
	tmpPath := fullPath + ".tmp.xlsx"
	if err := f.SaveAs(tmpPath); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("publish file: %w", err)
	}

	return nil
}
