package model

import "time"

// Dataset is one imported batch of transaction rows. Datasets exist so the
// CLI can keep several uploads side by side; the analytics engine itself
// never sees them, it only receives rows.
type Dataset struct {
	ImportedAt time.Time `json:"imported_at"`
	Name       string    `json:"name"`
	SourceFile string    `json:"source_file"`
	ID         int64     `json:"id"`
	RowCount   int       `json:"row_count"`
}
