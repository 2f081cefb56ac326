package routes

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	"skyline/internal/config"
	"skyline/internal/fetch"
)

// SetupBuildingHandlers registers the building data endpoints
func SetupBuildingHandlers(router *gin.RouterGroup) {
	router.GET("/buildings", GetBuildings)
}

// GetBuildings fetches building records for a bounding box. The bbox and
// limit query parameters fall back to the configured defaults.
func GetBuildings(c *gin.Context) {
	cfg := config.Current()

	bboxParam := c.DefaultQuery("bbox", cfg.DefaultBBox)
	bbox, err := fetch.ParseBBox(bboxParam)
	if err != nil {
		c.JSON(400, gin.H{
			"status":  "error",
			"message": "invalid bbox: " + err.Error(),
		})
		return
	}

	limit := cfg.FetchLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	records, err := fetch.NewClient(cfg.BuildingsURL).FetchBuildings(c.Request.Context(), bbox, limit)
	if err != nil {
		log.Printf("Buildings fetch failed for bbox %s: %v", bbox, err)
		c.JSON(502, gin.H{
			"status":  "error",
			"message": "failed to fetch building data",
		})
		return
	}

	c.JSON(200, gin.H{
		"status":    "success",
		"count":     len(records),
		"buildings": records,
	})
}
