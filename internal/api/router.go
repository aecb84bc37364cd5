// Package api exposes the influencer flows over HTTP.
package api

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(h *Handler, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(
		RequestIDMiddleware(),
		RequestLoggingMiddleware(logger),
		RecoveryMiddleware(logger),
		cors.Default(),
	)

	router.GET("/health", h.Health)
	router.GET("/persona", h.ServePersona)
	router.POST("/generate-post", h.HandleGeneratePost)
	router.POST("/interact", h.HandleInteract)

	return router
}
