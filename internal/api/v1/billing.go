package v1

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quoteflow/quote-service/internal/api/dto"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/logger"
	"github.com/quoteflow/quote-service/internal/service"
)

type BillingHandler struct {
	service service.BillingService
	log     *logger.Logger
}

func NewBillingHandler(service service.BillingService, log *logger.Logger) *BillingHandler {
	return &BillingHandler{service: service, log: log}
}

func (h *BillingHandler) CreateCheckoutSession(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.CreateCheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateCheckoutSession(ctx, req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp))
}

// HandleWebhook receives Stripe events. Signature verification needs the raw
// request body, so this handler reads it before any JSON binding.
func (h *BillingHandler) HandleWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<16))
	if err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Could not read webhook payload").
			Mark(ierr.ErrValidation))
		return
	}

	if err := h.service.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		h.log.Errorw("webhook processing failed", "error", err)
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OKMessage(nil, "ok"))
}
