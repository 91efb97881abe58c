package service

import (
	"fmt"
	"strings"

	"github.com/noah-isme/exam-notify-api/internal/models"
)

// Minimum reliable subject counts for computing a displayed total when no
// explicit score column exists. Preparation for sending is conservative;
// ad hoc preview is best-effort.
const (
	prepareMinSubjects = 2
	previewMinSubjects = 1
)

const defaultParentName = "Parent/Guardian"

// SubjectScore is one rendered subject fragment of a message.
type SubjectScore struct {
	Name  string
	Value float64
}

// MessageParts holds everything the composer needs to render one message.
type MessageParts struct {
	ParentName  string
	StudentName string
	ExamName    string
	Subjects    []SubjectScore
	Total       float64
	ClassRank   *int
	ClassSize   int
	OverallRank *int
	OverallSize int
}

// ComposeMessage renders the notification text. The template is fixed;
// composing twice from identical parts yields byte-identical strings.
func ComposeMessage(p MessageParts) string {
	parent := p.ParentName
	if strings.TrimSpace(parent) == "" {
		parent = defaultParentName
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s, Results for %s — %s.", parent, p.StudentName, p.ExamName)
	if len(p.Subjects) > 0 {
		fragments := make([]string, len(p.Subjects))
		for i, s := range p.Subjects {
			fragments[i] = fmt.Sprintf("%s: %s", s.Name, formatScore(s.Value))
		}
		b.WriteString(" " + strings.Join(fragments, ", ") + ".")
	}
	fmt.Fprintf(&b, " Total: %s. Class Rank: %s. Overall Rank: %s.",
		formatScore(p.Total),
		formatRank(p.ClassRank, p.ClassSize),
		formatRank(p.OverallRank, p.OverallSize),
	)
	return b.String()
}

// ComposeFromTable independently re-derives columns from a raw table, finds
// the student's row and renders a rankless message. It returns an empty
// string, never an error, when the table lacks reliable numeric data, a
// matching row or a usable name column. minSubjects controls how many
// numeric subject values count as reliable when no explicit score column
// carries the total.
func ComposeFromTable(table *models.ScoreTable, examName, studentName, parentName string, minSubjects int) string {
	desc := ClassifyColumns(table)
	if desc.NameCol == "" {
		return ""
	}
	row, ok := MatchStudent(table, desc.NameCol, studentName)
	if !ok {
		return ""
	}

	subjects := subjectScores(row, desc)
	total, ok := resolveTotal(row, desc, subjects, minSubjects)
	if !ok {
		return ""
	}

	return ComposeMessage(MessageParts{
		ParentName:  parentName,
		StudentName: row[desc.NameCol].String(),
		ExamName:    examName,
		Subjects:    subjects,
		Total:       total,
	})
}

// PreviewMessage is the relaxed ad hoc variant: it accepts a single reliable
// subject value.
func PreviewMessage(table *models.ScoreTable, examName, studentName string) string {
	return ComposeFromTable(table, examName, studentName, "", previewMinSubjects)
}

// subjectScores collects the subject values actually present on a row, in
// classifier column order.
func subjectScores(row models.Row, desc models.ColumnDescriptor) []SubjectScore {
	var subjects []SubjectScore
	for _, col := range desc.SubjectCols {
		cell := row[col]
		if cell.IsNumeric() {
			subjects = append(subjects, SubjectScore{Name: col, Value: cell.Num})
		}
	}
	return subjects
}

// resolveTotal prefers the explicit score column; otherwise it sums the
// subject values present on the row, requiring at least minSubjects of them.
// Missing values stay absent here: a row with no real numeric subjects has
// no total, not a zero one.
func resolveTotal(row models.Row, desc models.ColumnDescriptor, subjects []SubjectScore, minSubjects int) (float64, bool) {
	if desc.ScoreCol != "" {
		if cell := row[desc.ScoreCol]; cell.IsNumeric() {
			return cell.Num, true
		}
	}
	if len(subjects) < minSubjects || len(subjects) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, s := range subjects {
		sum += s.Value
	}
	return sum, true
}

func formatScore(v float64) string {
	return models.NumericCell(v).String()
}

func formatRank(rank *int, size int) string {
	switch {
	case rank != nil && size > 0:
		return fmt.Sprintf("%d/%d", *rank, size)
	case rank != nil:
		return fmt.Sprintf("%d", *rank)
	default:
		return "N/A"
	}
}
