package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-notify-api/internal/models"
	"github.com/noah-isme/exam-notify-api/internal/service"
	appErrors "github.com/noah-isme/exam-notify-api/pkg/errors"
	"github.com/noah-isme/exam-notify-api/pkg/response"
)

// MessageHandler exposes the prepare, preview and send endpoints.
type MessageHandler struct {
	preparer *service.PreparerService
	sender   *service.SenderService
	exporter *service.ExportService
}

// NewMessageHandler constructs MessageHandler.
func NewMessageHandler(preparer *service.PreparerService, sender *service.SenderService, exporter *service.ExportService) *MessageHandler {
	return &MessageHandler{preparer: preparer, sender: sender, exporter: exporter}
}

// Prepare godoc
// @Summary Merge exam results with the contact directory into a send pool
// @Tags Messages
// @Accept json
// @Produce json
// @Param payload body service.PrepareRequest true "Exams to prepare"
// @Success 200 {object} response.Envelope
// @Router /messages/prepare [post]
func (h *MessageHandler) Prepare(c *gin.Context) {
	var req service.PrepareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.preparer.Prepare(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Preview godoc
// @Summary Compose a single message for one student without sending
// @Tags Messages
// @Produce json
// @Param examId query string true "Exam ID"
// @Param student query string true "Student name"
// @Success 200 {object} response.Envelope
// @Router /messages/preview [get]
func (h *MessageHandler) Preview(c *gin.Context) {
	message, err := h.preparer.Preview(c.Request.Context(), c.Query("examId"), c.Query("student"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": message, "composed": message != ""}, nil)
}

// Send godoc
// @Summary Dispatch prepared messages through the configured SMS provider
// @Tags Messages
// @Accept json
// @Produce json
// @Param payload body service.SendRequest true "Recipients to send"
// @Success 200 {object} response.Envelope
// @Router /messages/send [post]
func (h *MessageHandler) Send(c *gin.Context) {
	var req service.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	summary, err := h.sender.Send(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// ExportUnmatched godoc
// @Summary Export an unmatched-student list as CSV or PDF
// @Tags Messages
// @Accept json
// @Produce octet-stream
// @Param format query string false "csv or pdf" default(csv)
// @Param payload body []models.UnmatchedRecord true "Unmatched records from a prepare run"
// @Success 200 {file} binary
// @Router /messages/unmatched/export [post]
func (h *MessageHandler) ExportUnmatched(c *gin.Context) {
	var records []models.UnmatchedRecord
	if err := c.ShouldBindJSON(&records); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	data, contentType, filename, err := h.exporter.RenderUnmatched(records, c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
