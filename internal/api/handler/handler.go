package handler

import "github.com/d60-Lab/heart-badge/internal/service"

// Handler 聚合全部 HTTP 处理器依赖
type Handler struct {
	badgeSvc        *service.BadgeService
	interactionSvc  *service.InteractionService
	notificationSvc *service.NotificationService
}

func New(badgeSvc *service.BadgeService, interactionSvc *service.InteractionService, notificationSvc *service.NotificationService) *Handler {
	return &Handler{badgeSvc: badgeSvc, interactionSvc: interactionSvc, notificationSvc: notificationSvc}
}
