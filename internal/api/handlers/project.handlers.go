package routes

import (
	"log"

	"github.com/gin-gonic/gin"

	"skyline/internal/service/project"
)

// SetupProjectHandlers registers the saved filter set endpoints
func SetupProjectHandlers(router *gin.RouterGroup) {
	router.POST("/save", SaveProject)
	router.GET("/projects/:username", ListProjects)
}

type saveProjectRequest struct {
	Username string `json:"username" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Filters  string `json:"filters" binding:"required"`
}

// SaveProject stores a named filter set for a user
func SaveProject(c *gin.Context) {
	var req saveProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{
			"status":  "error",
			"message": "username, name and filters are required",
		})
		return
	}

	proj, err := project.GetProjectService().SaveProject(req.Username, req.Name, req.Filters)
	if err != nil {
		log.Printf("Failed to save project %s for %s: %v", req.Name, req.Username, err)
		c.JSON(500, gin.H{
			"status":  "error",
			"message": "failed to save project",
		})
		return
	}

	c.JSON(200, gin.H{
		"status":  "success",
		"project": proj,
	})
}

// ListProjects returns the user's saved filter sets
func ListProjects(c *gin.Context) {
	username := c.Param("username")

	projects, err := project.GetProjectService().ListProjects(username)
	if err != nil {
		log.Printf("Failed to list projects for %s: %v", username, err)
		c.JSON(500, gin.H{
			"status":  "error",
			"message": "failed to list projects",
		})
		return
	}

	c.JSON(200, gin.H{
		"status":   "success",
		"projects": projects,
	})
}
