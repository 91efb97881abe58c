package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-notify-api/internal/service"
	"github.com/noah-isme/exam-notify-api/pkg/response"
)

// AuditLogHandler exposes the send history endpoints.
type AuditLogHandler struct {
	audit    *service.AuditLogService
	exporter *service.ExportService
}

// NewAuditLogHandler constructs AuditLogHandler.
func NewAuditLogHandler(audit *service.AuditLogService, exporter *service.ExportService) *AuditLogHandler {
	return &AuditLogHandler{audit: audit, exporter: exporter}
}

// List godoc
// @Summary List every send attempt with its delivery classification
// @Tags AuditLog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /audit-log [get]
func (h *AuditLogHandler) List(c *gin.Context) {
	entries, err := h.audit.List()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// Clear godoc
// @Summary Back up the audit log, then truncate it
// @Tags AuditLog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /audit-log/clear [post]
func (h *AuditLogHandler) Clear(c *gin.Context) {
	backup, err := h.audit.Clear()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"backup": backup}, nil)
}

// Export godoc
// @Summary Export the audit log as CSV or PDF
// @Tags AuditLog
// @Produce octet-stream
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Router /audit-log/export [get]
func (h *AuditLogHandler) Export(c *gin.Context) {
	entries, err := h.audit.List()
	if err != nil {
		response.Error(c, err)
		return
	}
	data, contentType, filename, err := h.exporter.RenderAuditLog(entries, c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
