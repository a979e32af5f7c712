package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/heart-badge/internal/api/middleware"
	"github.com/d60-Lab/heart-badge/internal/repository"
	"github.com/d60-Lab/heart-badge/pkg/response"
)

type recordInteractionRequest struct {
	BadgeID    int64  `json:"badge_id" binding:"required"`
	ReceiverID string `json:"receiver_id" binding:"required"`
}

// RecordInteraction 记录一次带徽章标记的互动
// @Summary 记录互动
// @Tags 互动
// @Accept json
// @Produce json
// @Param request body recordInteractionRequest true "互动信息"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/interactions [post]
func (h *Handler) RecordInteraction(c *gin.Context) {
	var req recordInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	it, err := h.interactionSvc.Record(c.Request.Context(), req.BadgeID, middleware.CurrentUser(c), req.ReceiverID)
	if err != nil {
		if errors.Is(err, repository.ErrBadgeNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"interaction_id": it.ID})
}
