package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gin-gonic/gin"
	"net/http/httptest"

	"github.com/noah-isme/exam-notify-api/internal/models"
	"github.com/noah-isme/exam-notify-api/internal/service"
)

func examHandlerFixture() *ExamHandler {
	exams := &fakeExams{exams: map[string]*models.ExamMetadata{
		"e1": {ID: "e1", Name: "End Term 2 - 2025"},
	}}
	tables := &fakeTables{tables: map[string]*models.ScoreTable{
		"e1": {
			Columns: []string{"Name", "Math", "TOTAL"},
			Rows: []models.Row{
				cellRow(map[string]string{"Name": "Jane", "Math": "80", "TOTAL": "80"}),
			},
		},
	}}
	return NewExamHandler(service.NewExamService(exams, tables, nil, nil))
}

func TestExamHandlerList(t *testing.T) {
	handler := examHandlerFixture()

	rec := performJSON(t, handler.List, http.MethodGet, "/exams", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "End Term 2 - 2025")
	assert.Contains(t, rec.Body.String(), `"kind":"End Term 2"`)
	assert.Contains(t, rec.Body.String(), `"cache_hit":false`)
}

func TestExamHandlerColumns(t *testing.T) {
	handler := examHandlerFixture()

	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/exams/e1/columns", nil)
	c.Params = gin.Params{{Key: "id", Value: "e1"}}

	handler.Columns(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Name"`)
	assert.Contains(t, rec.Body.String(), `"TOTAL"`)
}

func TestExamHandlerColumnsUnknownExam(t *testing.T) {
	handler := examHandlerFixture()

	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/exams/missing/columns", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Columns(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
