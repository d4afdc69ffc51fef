package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quoteflow/quote-service/internal/api/dto"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/logger"
	"github.com/quoteflow/quote-service/internal/service"
)

type TeamHandler struct {
	service service.TeamService
	log     *logger.Logger
}

func NewTeamHandler(service service.TeamService, log *logger.Logger) *TeamHandler {
	return &TeamHandler{service: service, log: log}
}

func (h *TeamHandler) GetTeam(c *gin.Context) {
	resp, err := h.service.GetTeam(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp))
}

func (h *TeamHandler) ListMembers(c *gin.Context) {
	resp, err := h.service.ListMembers(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp))
}

func (h *TeamHandler) InviteMember(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.InviteMember(ctx, c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK(resp))
}

func (h *TeamHandler) RemoveMember(c *gin.Context) {
	if err := h.service.RemoveMember(c.Request.Context(), c.Param("id"), c.Param("uid")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.OKMessage(nil, "Member removed"))
}
