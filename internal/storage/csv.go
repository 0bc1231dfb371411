package storage

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// ScoreRecord is the CSV row written for one score entry.
type ScoreRecord struct {
	RunID     string `csv:"run_id"`
	Variant   string `csv:"variant"`
	Score     int    `csv:"score"`
	MaxTile   int    `csv:"max_tile"`
	Moves     int    `csv:"moves"`
	Status    string `csv:"status"`
	CreatedAt string `csv:"created_at"`
}

// toRecord converts an entry into its CSV row.
func (e ScoreEntry) toRecord() ScoreRecord {
	created := ""
	if !e.CreatedAt.IsZero() {
		created = e.CreatedAt.Format(sqliteTimeLayout)
	}
	return ScoreRecord{
		RunID:     e.RunID,
		Variant:   e.GameID,
		Score:     e.Score,
		MaxTile:   e.MaxTile,
		Moves:     e.Moves,
		Status:    e.Status,
		CreatedAt: created,
	}
}

// ExportCSV writes entries as CSV with a header row.
func ExportCSV(w io.Writer, entries []ScoreEntry) error {
	records := make([]ScoreRecord, len(entries))
	for i, e := range entries {
		records[i] = e.toRecord()
	}

	out, err := gocsv.MarshalString(records)
	if err != nil {
		return fmt.Errorf("storage: cannot encode csv: %w", err)
	}
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("storage: cannot write csv: %w", err)
	}
	return nil
}
