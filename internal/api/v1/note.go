package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quoteflow/quote-service/internal/api/dto"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/logger"
	"github.com/quoteflow/quote-service/internal/service"
)

type NoteHandler struct {
	service service.NoteService
	log     *logger.Logger
}

func NewNoteHandler(service service.NoteService, log *logger.Logger) *NoteHandler {
	return &NoteHandler{service: service, log: log}
}

func (h *NoteHandler) ListNotes(c *gin.Context) {
	resp, err := h.service.ListNotes(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp))
}

func (h *NoteHandler) CreateNote(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateOwnerNote(ctx, c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK(resp))
}

func (h *NoteHandler) MarkRead(c *gin.Context) {
	if err := h.service.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OKMessage(nil, "Messages marked as read"))
}
