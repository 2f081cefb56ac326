package routes

import (
	"github.com/gin-gonic/gin"

	"skyline/internal/service/session"
)

// SetupMainHandlers registers the main application endpoints
func SetupMainHandlers(router *gin.RouterGroup, config map[string]string) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"port":     config["port"],
			"dataUrl":  config["dataUrl"],
			"sessions": session.GetSessionService().Count(),
		})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})
}
