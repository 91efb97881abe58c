package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-notify-api/internal/models"
)

func TestRankCompetitionTies(t *testing.T) {
	table := tableOf(
		[]string{"Name", "Math"},
		map[string]string{"Name": "A", "Math": "90"},
		map[string]string{"Name": "B", "Math": "90"},
		map[string]string{"Name": "C", "Math": "80"},
		map[string]string{"Name": "D", "Math": "70"},
	)
	desc := ClassifyColumns(table)

	ranked := Rank(table, desc)
	require.Len(t, ranked, 4)

	got := make([]int, 4)
	for i, r := range ranked {
		require.NotNil(t, r.OverallRank)
		got[i] = *r.OverallRank
		assert.Equal(t, 4, r.OverallSize)
	}
	assert.Equal(t, []int{1, 1, 3, 4}, got)
}

func TestRankMissingSubjectCountsAsZero(t *testing.T) {
	table := tableOf(
		[]string{"Name", "Math", "English"},
		map[string]string{"Name": "A", "Math": "50", "English": ""},
		map[string]string{"Name": "B", "Math": "30", "English": "30"},
	)
	desc := ClassifyColumns(table)

	ranked := Rank(table, desc)

	assert.Equal(t, 50.0, ranked[0].CalcTotal)
	assert.Equal(t, 60.0, ranked[1].CalcTotal)
	assert.Equal(t, 2, *ranked[0].OverallRank)
	assert.Equal(t, 1, *ranked[1].OverallRank)
}

func TestRankExcludesRowsWithoutAnyNumericSubject(t *testing.T) {
	table := tableOf(
		[]string{"Name", "Math"},
		map[string]string{"Name": "A", "Math": "50"},
		map[string]string{"Name": "B", "Math": "absent"},
	)
	desc := ClassifyColumns(table)

	ranked := Rank(table, desc)

	require.NotNil(t, ranked[0].OverallRank)
	assert.Equal(t, 1, *ranked[0].OverallRank)
	assert.Equal(t, 1, ranked[0].OverallSize)
	assert.Nil(t, ranked[1].OverallRank)
	assert.False(t, ranked[1].HasCalc)
}

func TestRankPerClassGroups(t *testing.T) {
	table := tableOf(
		[]string{"Name", "Math", "class"},
		map[string]string{"Name": "A", "Math": "90", "class": "4A"},
		map[string]string{"Name": "B", "Math": "80", "class": "4A"},
		map[string]string{"Name": "C", "Math": "95", "class": "4B"},
	)
	desc := ClassifyColumns(table)

	ranked := Rank(table, desc)

	assert.Equal(t, 1, *ranked[0].ClassRank)
	assert.Equal(t, 2, *ranked[1].ClassRank)
	assert.Equal(t, 1, *ranked[2].ClassRank)
	assert.Equal(t, 2, ranked[0].ClassSize)
	assert.Equal(t, 1, ranked[2].ClassSize)

	// Overall ranking spans classes.
	assert.Equal(t, 2, *ranked[0].OverallRank)
	assert.Equal(t, 1, *ranked[2].OverallRank)
}

func TestRankNilTable(t *testing.T) {
	assert.Nil(t, Rank(nil, models.ColumnDescriptor{}))
}
