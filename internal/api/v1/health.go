package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quoteflow/quote-service/internal/logger"
	"github.com/quoteflow/quote-service/internal/postgres"
)

type HealthHandler struct {
	db  postgres.IClient
	log *logger.Logger
}

func NewHealthHandler(db postgres.IClient, log *logger.Logger) *HealthHandler {
	return &HealthHandler{db: db, log: log}
}

// Health reports liveness plus database reachability.
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		h.log.Errorw("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
