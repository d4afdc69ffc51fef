package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quoteflow/quote-service/internal/api/dto"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/logger"
	"github.com/quoteflow/quote-service/internal/service"
)

// PublicHandler serves the client-facing quote page endpoints. These are
// keyed by share token only and carry no authentication.
type PublicHandler struct {
	service service.PublicService
	log     *logger.Logger
}

func NewPublicHandler(service service.PublicService, log *logger.Logger) *PublicHandler {
	return &PublicHandler{service: service, log: log}
}

func (h *PublicHandler) GetQuote(c *gin.Context) {
	resp, err := h.service.GetQuoteByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp))
}

func (h *PublicHandler) AcceptQuote(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.AcceptQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.AcceptQuote(ctx, c.Param("token"), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp))
}

func (h *PublicHandler) ListNotes(c *gin.Context) {
	resp, err := h.service.ListNotes(c.Request.Context(), c.Param("token"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp))
}

func (h *PublicHandler) CreateNote(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateClientNote(ctx, c.Param("token"), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK(resp))
}
