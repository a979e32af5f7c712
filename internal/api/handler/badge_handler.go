package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/heart-badge/internal/api/middleware"
	"github.com/d60-Lab/heart-badge/internal/repository"
	"github.com/d60-Lab/heart-badge/internal/service"
	"github.com/d60-Lab/heart-badge/pkg/response"
)

// ListBadges 徽章目录（匿名只见默认徽章）
// @Summary 徽章目录
// @Tags 徽章
// @Produce json
// @Success 200 {object} response.Response{data=[]service.BadgeData}
// @Router /api/v1/badges [get]
func (h *Handler) ListBadges(c *gin.Context) {
	list, err := h.badgeSvc.ListBadges(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"badges": list})
}

// BadgeDetail 徽章详情（含获取进度）
// @Summary 徽章详情
// @Tags 徽章
// @Param badge_id path int true "徽章ID"
// @Produce json
// @Success 200 {object} response.Response{data=service.BadgeDetailData}
// @Failure 404 {object} response.Response
// @Router /api/v1/badges/{badge_id} [get]
func (h *Handler) BadgeDetail(c *gin.Context) {
	badgeID, err := strconv.ParseInt(c.Param("badge_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid badge id")
		return
	}
	detail, err := h.badgeSvc.BadgeDetail(c.Request.Context(), middleware.CurrentUser(c), badgeID)
	if err != nil {
		if errors.Is(err, repository.ErrBadgeNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, detail)
}

// AcquireBadge 领取满足条件的特殊徽章
// @Summary 领取徽章
// @Tags 徽章
// @Param badge_id path int true "徽章ID"
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/badges/{badge_id}/acquire [post]
func (h *Handler) AcquireBadge(c *gin.Context) {
	userID := middleware.CurrentUser(c)
	badgeID, err := strconv.ParseInt(c.Param("badge_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid badge id")
		return
	}
	if err := h.badgeSvc.Acquire(c.Request.Context(), *userID, badgeID); err != nil {
		switch {
		case errors.Is(err, repository.ErrBadgeNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, service.ErrAlreadyAcquired):
			response.Conflict(c, err.Error())
		case errors.Is(err, service.ErrNotAcquirable):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Success(c, nil)
}
