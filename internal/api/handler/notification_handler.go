package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/heart-badge/internal/api/middleware"
	"github.com/d60-Lab/heart-badge/pkg/response"
)

// ListNotifications 查询未过期的徽章提醒
// @Summary 通知列表
// @Tags 通知
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/notifications [get]
func (h *Handler) ListNotifications(c *gin.Context) {
	userID := middleware.CurrentUser(c)
	list, err := h.notificationSvc.List(c.Request.Context(), *userID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"notifications": list})
}

// ReadNotification 标记通知已读
// @Summary 已读通知
// @Tags 通知
// @Param notification_id path string true "通知ID"
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/notifications/{notification_id}/read [put]
func (h *Handler) ReadNotification(c *gin.Context) {
	id := c.Param("notification_id")
	if err := h.notificationSvc.MarkRead(c.Request.Context(), id); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}
