package routes

import (
	"log"

	"github.com/gin-gonic/gin"

	"skyline/internal/config"
	"skyline/internal/query"
)

// SetupQueryHandlers registers the query translation endpoints
func SetupQueryHandlers(router *gin.RouterGroup) {
	router.POST("/query", TranslateQuery)
}

type translateRequest struct {
	Text string `json:"text" binding:"required"`
}

// TranslateQuery relays a natural-language query to the translation
// service and returns the extracted filter.
func TranslateQuery(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{
			"status":  "error",
			"message": "text field is required",
		})
		return
	}

	cfg := config.Current()
	if cfg.TranslateURL == "" {
		c.JSON(503, gin.H{
			"status":  "error",
			"message": "translation service not configured",
		})
		return
	}

	client := query.NewTranslateClient(cfg.TranslateURL, cfg.TranslateKey)
	filter, err := client.Translate(c.Request.Context(), req.Text)
	if err != nil {
		log.Printf("Query translation failed: %v", err)
		c.JSON(502, gin.H{
			"status":  "error",
			"message": "translation service failed",
		})
		return
	}

	c.JSON(200, gin.H{
		"status": "success",
		"filter": filter,
	})
}
