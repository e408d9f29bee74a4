package ingest

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/spendlens/spendlens/internal/model"
)

// ReadXLSX reads the first worksheet of an Excel workbook into rows. The
// first non-empty worksheet row becomes the header row.
func ReadXLSX(ctx context.Context, path string) ([]model.Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []model.Row{}, nil
	}

	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	var headers []string
	rows := make([]model.Row, 0, len(cells))
	for _, record := range cells {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if headers == nil {
			if isBlank(record) {
				continue
			}
			headers = make([]string, len(record))
			for i, h := range record {
				headers[i] = normalizeHeader(h)
			}
			continue
		}

		row := rowFromCells(headers, record)
		if len(row) == 0 {
			continue
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func isBlank(record []string) bool {
	for _, c := range record {
		if normalizeHeader(c) != "" {
			return false
		}
	}
	return true
}
