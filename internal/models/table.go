package models

import (
	"math"
	"strconv"
	"strings"
)

// CellKind tags the interpretation of a table cell.
type CellKind int

const (
	CellMissing CellKind = iota
	CellNumeric
	CellText
)

// Cell is one value in an externally produced score table. Columns are not
// typed up front, so every cell carries its own interpretation.
type Cell struct {
	Kind CellKind
	Num  float64
	Text string
}

// ParseCell interprets a raw string from a score file.
func ParseCell(raw string) Cell {
	trimmed := strings.TrimSpace(raw)
	switch strings.ToLower(trimmed) {
	case "", "nan", "none", "null", "-", "n/a":
		return Cell{Kind: CellMissing}
	}
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		return Cell{Kind: CellNumeric, Num: v, Text: trimmed}
	}
	return Cell{Kind: CellText, Text: trimmed}
}

// NumericCell wraps a float value as a numeric cell.
func NumericCell(v float64) Cell {
	return Cell{Kind: CellNumeric, Num: v}
}

// TextCell wraps a string value as a text cell.
func TextCell(v string) Cell {
	return ParseCell(v)
}

// IsNumeric reports whether the cell holds a usable number.
func (c Cell) IsNumeric() bool {
	return c.Kind == CellNumeric
}

// IsMissing reports whether the cell holds no value.
func (c Cell) IsMissing() bool {
	return c.Kind == CellMissing
}

// String renders the cell for display; numeric cells drop a trailing ".0".
func (c Cell) String() string {
	switch c.Kind {
	case CellNumeric:
		if c.Num == math.Trunc(c.Num) {
			return strconv.FormatFloat(c.Num, 'f', 0, 64)
		}
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case CellText:
		return c.Text
	default:
		return ""
	}
}

// Row maps column names to cell values for one student record.
type Row map[string]Cell

// ScoreTable is one exam's tabular score data.
type ScoreTable struct {
	Columns []string
	Rows    []Row
}

// ColumnDescriptor names the roles the classifier assigned to a table's
// columns. Empty strings mean the role could not be identified.
type ColumnDescriptor struct {
	NameCol     string   `json:"name_col"`
	ScoreCol    string   `json:"score_col"`
	ClassCol    string   `json:"class_col"`
	SubjectCols []string `json:"subject_cols"`
}

// RankedRow augments a score row with computed ranking data. CalcTotal sums
// numeric subject values with missing treated as zero; it drives ranking only
// and is never the total shown to a parent.
type RankedRow struct {
	Row         Row
	StudentName string
	Class       string
	CalcTotal   float64
	HasCalc     bool
	OverallRank *int
	ClassRank   *int
	OverallSize int
	ClassSize   int
}
