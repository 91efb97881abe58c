package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-notify-api/internal/models"
	"github.com/noah-isme/exam-notify-api/internal/service"
	appErrors "github.com/noah-isme/exam-notify-api/pkg/errors"
	"github.com/noah-isme/exam-notify-api/pkg/response"
)

// ContactHandler exposes the parent contact directory endpoints.
type ContactHandler struct {
	contacts *service.ContactService
}

// NewContactHandler constructs ContactHandler.
func NewContactHandler(contacts *service.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// List godoc
// @Summary List parent contacts
// @Tags Contacts
// @Produce json
// @Param search query string false "Search by student, parent or phone digits"
// @Param class query string false "Filter by class"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /contacts [get]
func (h *ContactHandler) List(c *gin.Context) {
	var filter models.ContactFilter
	filter.Search = strings.TrimSpace(c.Query("search"))
	filter.Class = c.Query("class")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		filter.PageSize = size
	}

	contacts, pagination, err := h.contacts.List(filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, contacts, pagination)
}

// Upsert godoc
// @Summary Create or update a single contact, keyed by student name
// @Tags Contacts
// @Accept json
// @Produce json
// @Param payload body service.UpsertContactRequest true "Contact payload"
// @Success 200 {object} response.Envelope
// @Router /contacts [post]
func (h *ContactHandler) Upsert(c *gin.Context) {
	var req service.UpsertContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	contact, err := h.contacts.Upsert(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, contact, nil)
}

// Replace godoc
// @Summary Replace the whole contact directory
// @Tags Contacts
// @Accept json
// @Produce json
// @Param payload body []models.ContactRecord true "Full directory"
// @Success 200 {object} response.Envelope
// @Router /contacts [put]
func (h *ContactHandler) Replace(c *gin.Context) {
	var contacts []models.ContactRecord
	if err := c.ShouldBindJSON(&contacts); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.contacts.Replace(c.Request.Context(), contacts); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"count": len(contacts)}, nil)
}
