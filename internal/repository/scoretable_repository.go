package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/noah-isme/exam-notify-api/internal/models"
)

// ScoreTableRepository loads exam score tables from CSV files under a base
// directory, one file per exam keyed by exam ID. The files are produced
// externally and are read-only here.
type ScoreTableRepository struct {
	dir string
}

// NewScoreTableRepository constructs a ScoreTableRepository.
func NewScoreTableRepository(dir string) *ScoreTableRepository {
	return &ScoreTableRepository{dir: dir}
}

// Load reads the score table for an exam. A missing or unreadable file is an
// error the caller skips over, never one that aborts a whole batch.
func (r *ScoreTableRepository) Load(ctx context.Context, examID string) (*models.ScoreTable, error) {
	if strings.ContainsAny(examID, `/\`) || examID == "" {
		return nil, fmt.Errorf("invalid exam id %q", examID)
	}
	path := filepath.Join(r.dir, examID+".csv")

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open score table %s: %w", examID, err)
	}
	defer file.Close() //nolint:errcheck

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse score table %s: %w", examID, err)
	}
	if len(records) == 0 {
		return &models.ScoreTable{}, nil
	}

	// Duplicate headers keep the first occurrence, both for the column
	// list and for the cell values.
	columns := make([]string, 0, len(records[0]))
	colIndex := make(map[string]int, len(records[0]))
	for i, header := range records[0] {
		name := strings.TrimSpace(header)
		if name == "" {
			continue
		}
		if _, dup := colIndex[name]; dup {
			continue
		}
		colIndex[name] = i
		columns = append(columns, name)
	}

	rows := make([]models.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(models.Row, len(columns))
		for _, name := range columns {
			if i := colIndex[name]; i < len(record) {
				row[name] = models.ParseCell(record[i])
			} else {
				row[name] = models.Cell{Kind: models.CellMissing}
			}
		}
		rows = append(rows, row)
	}

	return &models.ScoreTable{Columns: columns, Rows: rows}, nil
}
