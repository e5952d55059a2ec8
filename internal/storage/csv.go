// Package storage persists extracted records to append-only tabular files.
package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/seenimoa/bunkerwatch/internal/logger"
)

// Sink appends rows to a tabular destination, creating it with a header
// row on first write. Implementations never rewrite existing rows.
type Sink interface {
	Append(path string, header []string, rows [][]string) error
}

// CSVSink is the production Sink: one CSV file per category, opened in
// append mode. There is no transactionality across files; a crash between
// two category writes leaves the earlier file updated and the later one
// untouched.
type CSVSink struct{}

// Append writes rows to path, prefixing a header row when the file does
// not exist yet. Appending no rows is a no-op and does not create the file.
func (CSVSink) Append(path string, header []string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}

	exists := true
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		exists = false
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if !exists {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write header to %s: %w", path, err)
		}
		logger.L().Info().Str("file", path).Msg("created new sink file")
	}

	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row to %s: %w", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}

	logger.L().Info().Str("file", path).Int("rows", len(rows)).Msg("rows appended")
	return nil
}
