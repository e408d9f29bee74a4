package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spendlens/spendlens/internal/model"
)

// ReadCSV streams a CSV file into rows. The first record is the header row.
func ReadCSV(ctx context.Context, path string) ([]model.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []model.Row{}, nil
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	headers := make([]string, len(header))
	for i, h := range header {
		headers[i] = normalizeHeader(h)
	}

	rows := make([]model.Row, 0)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record %d: %w", len(rows)+2, err)
		}

		row := rowFromCells(headers, record)
		if len(row) == 0 {
			continue
		}
		rows = append(rows, row)
	}

	return rows, nil
}
