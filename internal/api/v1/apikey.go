package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quoteflow/quote-service/internal/api/dto"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/logger"
	"github.com/quoteflow/quote-service/internal/service"
)

type APIKeyHandler struct {
	service service.APIKeyService
	log     *logger.Logger
}

func NewAPIKeyHandler(service service.APIKeyService, log *logger.Logger) *APIKeyHandler {
	return &APIKeyHandler{service: service, log: log}
}

func (h *APIKeyHandler) CreateAPIKey(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.CreateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateAPIKey(ctx, req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK(resp))
}

func (h *APIKeyHandler) ListAPIKeys(c *gin.Context) {
	resp, err := h.service.ListAPIKeys(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp))
}

func (h *APIKeyHandler) DeleteAPIKey(c *gin.Context) {
	if err := h.service.DeleteAPIKey(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OKMessage(nil, "API key revoked"))
}
