package api

import (
	routes "skyline/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupRouter initializes all application routes
func SetupRouter(r *gin.Engine, config map[string]string) {
	// API group
	api := r.Group("/api")

	// Setup main handlers
	routes.SetupMainHandlers(r.Group(""), config)

	// Setup building data handlers
	routes.SetupBuildingHandlers(api)

	// Setup query handlers
	routes.SetupQueryHandlers(api)

	// Setup project handlers
	routes.SetupProjectHandlers(api)

	// Setup viewer session handlers
	routes.SetupSessionHandlers(api)
}
