// Package http exposes tide prediction over a small gin API.
package http

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"go.ngs.io/tide-atlas/internal/usecase"
)

// SetupRouter creates and configures the Gin router.
func SetupRouter(service *usecase.Service) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if allowedOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(allowedOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))

	handler := NewHandler(service)

	v1 := router.Group("/v1")
	v1.GET("/models", handler.GetModels)
	v1.GET("/constituents", handler.GetConstituents)
	v1.Group("/tides").GET("/predictions", handler.GetPredictions)

	router.GET("/health", handler.HealthCheck)

	return router
}
