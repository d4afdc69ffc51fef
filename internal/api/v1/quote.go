package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quoteflow/quote-service/internal/api/dto"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/logger"
	"github.com/quoteflow/quote-service/internal/service"
	"github.com/quoteflow/quote-service/internal/types"
)

type QuoteHandler struct {
	service service.QuoteService
	log     *logger.Logger
}

func NewQuoteHandler(service service.QuoteService, log *logger.Logger) *QuoteHandler {
	return &QuoteHandler{service: service, log: log}
}

func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateQuote(ctx, req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK(resp))
}

func (h *QuoteHandler) GetQuote(c *gin.Context) {
	resp, err := h.service.GetQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp))
}

func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	ctx := c.Request.Context()
	var filter types.QuoteFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListQuotes(ctx, &filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp))
}

func (h *QuoteHandler) UpdateQuote(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateQuote(ctx, c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp))
}

func (h *QuoteHandler) DeleteQuote(c *gin.Context) {
	if err := h.service.DeleteQuote(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OKMessage(nil, "Quote deleted"))
}

func (h *QuoteHandler) DuplicateQuote(c *gin.Context) {
	resp, err := h.service.DuplicateQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK(resp))
}

func (h *QuoteHandler) MarkPaid(c *gin.Context) {
	resp, err := h.service.MarkPaid(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp))
}

func (h *QuoteHandler) SendQuote(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.SendQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.SendQuote(ctx, c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp))
}

// ExportCSV streams the caller's quotes as a CSV attachment. This is the one
// endpoint that does not use the JSON envelope.
func (h *QuoteHandler) ExportCSV(c *gin.Context) {
	data, err := h.service.ExportCSV(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="quotes.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}
