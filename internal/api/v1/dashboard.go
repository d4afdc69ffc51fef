package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quoteflow/quote-service/internal/api/dto"
	"github.com/quoteflow/quote-service/internal/logger"
	"github.com/quoteflow/quote-service/internal/service"
	"github.com/quoteflow/quote-service/internal/types"
)

type DashboardHandler struct {
	service service.DashboardService
	log     *logger.Logger
}

func NewDashboardHandler(service service.DashboardService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{service: service, log: log}
}

func (h *DashboardHandler) GetStats(c *gin.Context) {
	currency := types.Currency(c.Query("currency"))

	resp, err := h.service.GetStats(c.Request.Context(), currency)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp))
}

func (h *DashboardHandler) GetUnreadMessages(c *gin.Context) {
	resp, err := h.service.GetUnreadMessages(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp))
}
