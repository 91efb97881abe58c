package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScoreFile(t *testing.T, dir, examID, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, examID+".csv"), []byte(content), 0o644))
}

func TestScoreTableLoad(t *testing.T) {
	dir := t.TempDir()
	writeScoreFile(t, dir, "mid-2025", "Name,Math,English\nJane Doe,80,70\nSam Ochieng,absent,65\n")
	repo := NewScoreTableRepository(dir)

	table, err := repo.Load(context.Background(), "mid-2025")
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Math", "English"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Jane Doe", table.Rows[0]["Name"].String())
	assert.True(t, table.Rows[0]["Math"].IsNumeric())
	assert.Equal(t, 80.0, table.Rows[0]["Math"].Num)
	assert.False(t, table.Rows[1]["Math"].IsNumeric())
}

func TestScoreTableLoadShortRecords(t *testing.T) {
	dir := t.TempDir()
	writeScoreFile(t, dir, "e1", "Name,Math,English\nJane Doe,80\n")
	repo := NewScoreTableRepository(dir)

	table, err := repo.Load(context.Background(), "e1")
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	assert.True(t, table.Rows[0]["English"].IsMissing())
}

func TestScoreTableLoadMissingSentinels(t *testing.T) {
	dir := t.TempDir()
	writeScoreFile(t, dir, "e1", "Name,Math,English,Science\nJane,nan,-,N/A\n")
	repo := NewScoreTableRepository(dir)

	table, err := repo.Load(context.Background(), "e1")
	require.NoError(t, err)

	row := table.Rows[0]
	assert.True(t, row["Math"].IsMissing())
	assert.True(t, row["English"].IsMissing())
	assert.True(t, row["Science"].IsMissing())
}

func TestScoreTableLoadDuplicateAndBlankHeaders(t *testing.T) {
	dir := t.TempDir()
	writeScoreFile(t, dir, "e1", "Name,,Math,Math\nJane,x,80,90\n")
	repo := NewScoreTableRepository(dir)

	table, err := repo.Load(context.Background(), "e1")
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Math"}, table.Columns)

	// The kept Math column carries the first occurrence's value, not the
	// last duplicate's.
	require.Len(t, table.Rows, 1)
	assert.Equal(t, 80.0, table.Rows[0]["Math"].Num)
}

func TestScoreTableLoadRejectsPathEscapes(t *testing.T) {
	repo := NewScoreTableRepository(t.TempDir())

	_, err := repo.Load(context.Background(), "../etc/passwd")
	assert.Error(t, err)

	_, err = repo.Load(context.Background(), "")
	assert.Error(t, err)
}

func TestScoreTableLoadMissingFile(t *testing.T) {
	repo := NewScoreTableRepository(t.TempDir())

	_, err := repo.Load(context.Background(), "absent-exam")
	assert.Error(t, err)
}
