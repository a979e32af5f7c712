package api

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/time/rate"

	"github.com/d60-Lab/heart-badge/config"
	"github.com/d60-Lab/heart-badge/internal/api/handler"
	"github.com/d60-Lab/heart-badge/internal/api/middleware"
)

// NewRouter 组装路由与中间件
func NewRouter(cfg *config.Config, h *handler.Handler) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(otelgin.Middleware("heart-badge"))
	r.Use(middleware.Auth(cfg.Auth.JWTSecret))

	v1 := r.Group("/api/v1")
	{
		v1.GET("/badges", h.ListBadges)
		v1.GET("/badges/:badge_id", h.BadgeDetail)
		v1.POST("/badges/:badge_id/acquire", middleware.RequireUser(), h.AcquireBadge)

		// 匿名也可发互动，靠限流兜底
		v1.POST("/interactions", middleware.RateLimit(rate.Limit(5), 10), h.RecordInteraction)

		v1.GET("/notifications", middleware.RequireUser(), h.ListNotifications)
		v1.PUT("/notifications/:notification_id/read", middleware.RequireUser(), h.ReadNotification)
	}

	return r
}
