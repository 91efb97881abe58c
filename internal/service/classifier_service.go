package service

import (
	"strings"

	"github.com/noah-isme/exam-notify-api/internal/models"
)

// Candidate column names checked in priority order. Score files come from
// spreadsheets produced by different teachers, so the casing varies.
var (
	nameColumnCandidates = []string{
		"student_name", "name", "Name", "NAME", "student", "Student",
		"Student Name", "STUDENT NAME", "Names", "NAMES", "student name",
	}
	scoreColumnCandidates = []string{
		"TOTALS", "TOTAL", "Total", "Totals", "total", "totals",
		"Score", "SCORE", "score", "Marks", "MARKS", "marks",
		"AGG", "Aggregate",
	}
	classColumnCandidates = []string{
		"class", "Class", "CLASS", "stream", "Stream", "STREAM",
		"grade", "Grade", "GRADE",
	}
)

// idLikeColumns are admin columns that never hold subject scores.
var idLikeColumns = map[string]bool{
	"id": true, "no": true, "no.": true, "s/n": true, "sn": true,
	"adm": true, "adm no": true, "adm_no": true, "admno": true,
	"index": true, "index no": true,
}

// rankLikeExact catches abbreviated rank columns the substring check misses.
var rankLikeExact = map[string]bool{
	"s/rank": true, "s_rank": true, "s rank": true,
}

// ClassifyColumns inspects an exam table and assigns roles to its columns:
// the student-name column, the canonical total column, the class column and
// the set of per-subject numeric columns. It is a pure function of the
// table's columns and values.
func ClassifyColumns(table *models.ScoreTable) models.ColumnDescriptor {
	desc := models.ColumnDescriptor{}
	if table == nil {
		return desc
	}

	present := make(map[string]bool, len(table.Columns))
	for _, col := range table.Columns {
		present[col] = true
	}

	for _, candidate := range nameColumnCandidates {
		if present[candidate] {
			desc.NameCol = candidate
			break
		}
	}

	for _, candidate := range scoreColumnCandidates {
		if present[candidate] && columnHasNumeric(table, candidate) {
			desc.ScoreCol = candidate
			break
		}
	}

	for _, candidate := range classColumnCandidates {
		if present[candidate] {
			desc.ClassCol = candidate
			break
		}
	}

	for _, col := range table.Columns {
		if col == desc.NameCol || col == desc.ScoreCol || col == desc.ClassCol {
			continue
		}
		if isIDColumn(col) || isRankColumn(col) {
			continue
		}
		if isScoreAlias(col) {
			continue
		}
		if columnHasNumeric(table, col) {
			desc.SubjectCols = append(desc.SubjectCols, col)
		}
	}

	return desc
}

// CountNumericSubjects returns how many classified subject columns hold a
// numeric value on the given row.
func CountNumericSubjects(row models.Row, desc models.ColumnDescriptor) int {
	count := 0
	for _, col := range desc.SubjectCols {
		if row[col].IsNumeric() {
			count++
		}
	}
	return count
}

func columnHasNumeric(table *models.ScoreTable, col string) bool {
	for _, row := range table.Rows {
		if row[col].IsNumeric() {
			return true
		}
	}
	return false
}

func isIDColumn(col string) bool {
	return idLikeColumns[strings.ToLower(strings.TrimSpace(col))]
}

func isRankColumn(col string) bool {
	lower := strings.ToLower(strings.TrimSpace(col))
	if rankLikeExact[lower] {
		return true
	}
	return strings.Contains(lower, "rank") || strings.Contains(lower, "position")
}

// isScoreAlias keeps secondary total-like columns out of the subject set even
// when another alias already claimed the score role.
func isScoreAlias(col string) bool {
	for _, candidate := range scoreColumnCandidates {
		if col == candidate {
			return true
		}
	}
	return false
}
