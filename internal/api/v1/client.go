package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quoteflow/quote-service/internal/api/dto"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/logger"
	"github.com/quoteflow/quote-service/internal/service"
)

type ClientHandler struct {
	service service.ClientService
	log     *logger.Logger
}

func NewClientHandler(service service.ClientService, log *logger.Logger) *ClientHandler {
	return &ClientHandler{service: service, log: log}
}

func (h *ClientHandler) CreateClient(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateClient(ctx, req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK(resp))
}

func (h *ClientHandler) GetClient(c *gin.Context) {
	resp, err := h.service.GetClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp))
}

func (h *ClientHandler) ListClients(c *gin.Context) {
	resp, err := h.service.ListClients(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp))
}

func (h *ClientHandler) UpdateClient(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateClient(ctx, c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp))
}

func (h *ClientHandler) DeleteClient(c *gin.Context) {
	if err := h.service.DeleteClient(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OKMessage(nil, "Client deleted"))
}
