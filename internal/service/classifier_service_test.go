package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/exam-notify-api/internal/models"
)

func tableOf(columns []string, rows ...map[string]string) *models.ScoreTable {
	table := &models.ScoreTable{Columns: columns}
	for _, raw := range rows {
		row := models.Row{}
		for col, val := range raw {
			row[col] = models.ParseCell(val)
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func TestClassifyColumnsBasicRoles(t *testing.T) {
	table := tableOf(
		[]string{"Name", "Math", "English", "TOTALS", "class"},
		map[string]string{"Name": "Jane", "Math": "80", "English": "70", "TOTALS": "150", "class": "4A"},
	)

	desc := ClassifyColumns(table)

	assert.Equal(t, "Name", desc.NameCol)
	assert.Equal(t, "TOTALS", desc.ScoreCol)
	assert.Equal(t, "class", desc.ClassCol)
	assert.Equal(t, []string{"Math", "English"}, desc.SubjectCols)
}

func TestClassifyColumnsScoreNeedsNumericValue(t *testing.T) {
	table := tableOf(
		[]string{"Name", "Total", "Math"},
		map[string]string{"Name": "Jane", "Total": "absent", "Math": "55"},
	)

	desc := ClassifyColumns(table)

	assert.Empty(t, desc.ScoreCol)
	assert.Equal(t, []string{"Math"}, desc.SubjectCols)
}

func TestClassifyColumnsExcludesRankAndIDColumns(t *testing.T) {
	table := tableOf(
		[]string{"No.", "ADM NO", "Name", "Math", "S/RANK", "Position", "Stream Rank"},
		map[string]string{"No.": "1", "ADM NO": "1024", "Name": "Jane", "Math": "80", "S/RANK": "3", "Position": "5", "Stream Rank": "2"},
	)

	desc := ClassifyColumns(table)

	assert.Equal(t, []string{"Math"}, desc.SubjectCols)
}

func TestClassifyColumnsSecondaryTotalAliasStaysOut(t *testing.T) {
	table := tableOf(
		[]string{"Name", "TOTAL", "Marks", "Math"},
		map[string]string{"Name": "Jane", "TOTAL": "150", "Marks": "148", "Math": "80"},
	)

	desc := ClassifyColumns(table)

	assert.Equal(t, "TOTAL", desc.ScoreCol)
	assert.NotContains(t, desc.SubjectCols, "Marks")
	assert.Contains(t, desc.SubjectCols, "Math")
}

func TestClassifyColumnsNilTable(t *testing.T) {
	desc := ClassifyColumns(nil)
	assert.Empty(t, desc.NameCol)
	assert.Empty(t, desc.SubjectCols)
}

func TestCountNumericSubjects(t *testing.T) {
	table := tableOf(
		[]string{"Name", "Math", "English", "Science"},
		map[string]string{"Name": "Jane", "Math": "80", "English": "", "Science": "60"},
	)
	desc := ClassifyColumns(table)

	assert.Equal(t, 2, CountNumericSubjects(table.Rows[0], desc))
}
