// Package exporter writes the pipeline's output tables. Files are written
// to a temporary sibling and atomically renamed into place so that a
// failed run never leaves a partial table behind.
package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Writer exports tables under a base output directory.
type Writer struct {
	outDir string
	logger *slog.Logger
}

// NewWriter creates a writer rooted at outDir, creating it if needed.
func NewWriter(outDir string, logger *slog.Logger) (*Writer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &Writer{outDir: outDir, logger: logger}, nil
}

// Path returns the full output path for a file name.
func (w *Writer) Path(name string) string {
	return filepath.Join(w.outDir, name)
}

// WriteCSV writes headers and records to name under the output directory,
// publishing atomically.
func (w *Writer) WriteCSV(name string, headers []string, records [][]string) error {
	fullPath := w.Path(name)

	w.logger.Info("writing CSV file",
		slog.String("path", fullPath),
		slog.Int("record_count", len(records)),
	)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(fullPath), filepath.Base(fullPath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	writer := csv.NewWriter(tmp)

	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			return fmt.Errorf("write headers: %w", err)
		}
	}

	for i, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush records: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return fmt.Errorf("publish file: %w", err)
	}

	return nil
}
