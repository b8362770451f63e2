package routes

import (
	"time"

	"janjitemu/handlers"
	"janjitemu/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the HTTP surface: the Telegram webhook endpoint and
// the health probe.
func RegisterRoutes(r *gin.Engine, webhook *handlers.TelegramWebhookHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", handlers.HealthHandler)

	tg := r.Group("/telegram")
	tg.Use(middleware.RateLimitMiddleware())
	tg.POST("/webhook/:token", webhook.HandleUpdate)
}
