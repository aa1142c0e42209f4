package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Hospital API is running"})
}

// SetupRootRoutes registers the root and health endpoints.
func SetupRootRoutes(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Hospital backend is running")
	})
	router.GET("/health", healthHandler)
}
