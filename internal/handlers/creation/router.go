package creation

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// NewRouter configures the gin router with middleware and routes
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(slogMiddleware(), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	sessions := r.Group("/sessions")
	sessions.POST("", h.StartSession)
	sessions.GET("/:id", h.GetSession)
	sessions.DELETE("/:id", h.DeleteSession)
	sessions.POST("/:id/choices", h.ApplyChoice)
	sessions.PUT("/:id/choices", h.ApplyChoices)
	sessions.GET("/:id/options", h.GetStepOptions)
	sessions.POST("/:id/reset", h.ResetSession)

	r.GET("/owners/:owner_id/session", h.GetSessionByOwner)

	return r
}

func slogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.InfoContext(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}
