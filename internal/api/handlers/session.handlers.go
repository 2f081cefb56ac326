package routes

import (
	"log"

	"github.com/gin-gonic/gin"

	"skyline/internal/config"
	"skyline/internal/fetch"
	"skyline/internal/query"
	"skyline/internal/service/session"
)

// SetupSessionHandlers registers the viewer session endpoints
func SetupSessionHandlers(router *gin.RouterGroup) {
	sessionGroup := router.Group("/sessions")

	sessionGroup.POST("", CreateSession)
	sessionGroup.DELETE("/:id", DeleteSession)
	sessionGroup.POST("/:id/filter", ApplyFilter)
	sessionGroup.POST("/:id/click", ClickSession)
	sessionGroup.POST("/:id/resize", ResizeSession)
	sessionGroup.POST("/:id/focus", FocusSession)
	sessionGroup.POST("/:id/clear", ClearSelection)
	sessionGroup.GET("/:id/selection", GetSelection)
}

type createSessionRequest struct {
	BBox   string `json:"bbox"`
	Limit  int    `json:"limit"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// CreateSession fetches building data for the requested bounding box and
// spins up a viewer session over it
func CreateSession(c *gin.Context) {
	cfg := config.Current()

	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(400, gin.H{
			"status":  "error",
			"message": "invalid request body",
		})
		return
	}

	bboxParam := req.BBox
	if bboxParam == "" {
		bboxParam = cfg.DefaultBBox
	}
	bbox, err := fetch.ParseBBox(bboxParam)
	if err != nil {
		c.JSON(400, gin.H{
			"status":  "error",
			"message": "invalid bbox: " + err.Error(),
		})
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = cfg.FetchLimit
	}

	records, err := fetch.NewClient(cfg.BuildingsURL).FetchBuildings(c.Request.Context(), bbox, limit)
	if err != nil {
		log.Printf("Session create: fetch failed for bbox %s: %v", bbox, err)
		c.JSON(502, gin.H{
			"status":  "error",
			"message": "failed to fetch building data",
		})
		return
	}

	width, height := req.Width, req.Height
	if width <= 0 || height <= 0 {
		width, height = 1024, 768
	}

	sess, err := session.GetSessionService().Create(records, width, height)
	if err != nil {
		c.JSON(500, gin.H{
			"status":  "error",
			"message": "failed to create session",
		})
		return
	}

	volumes, skipped := sess.Viewport().Stats()
	c.JSON(200, gin.H{
		"status":  "success",
		"id":      sess.ID,
		"volumes": volumes,
		"skipped": skipped,
	})
}

// DeleteSession closes a viewer session
func DeleteSession(c *gin.Context) {
	if !session.GetSessionService().Delete(c.Param("id")) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "session not found",
		})
		return
	}
	c.JSON(200, gin.H{
		"status": "success",
	})
}

// ApplyFilter evaluates a filter against the session's dataset and
// highlights the matched buildings
func ApplyFilter(c *gin.Context) {
	sess, ok := findSession(c)
	if !ok {
		return
	}

	var filter query.Filter
	if err := c.ShouldBindJSON(&filter); err != nil {
		c.JSON(400, gin.H{
			"status":  "error",
			"message": "invalid filter body",
		})
		return
	}

	matched := query.Evaluate(sess.Records(), filter)
	sess.Viewport().ApplyMatched(matched)

	c.JSON(200, gin.H{
		"status":  "success",
		"matched": matched,
		"count":   len(matched),
	})
}

type clickRequest struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Multi bool    `json:"multi"`
}

// ClickSession resolves a click against the session's scene
func ClickSession(c *gin.Context) {
	sess, ok := findSession(c)
	if !ok {
		return
	}

	var req clickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{
			"status":  "error",
			"message": "invalid click body",
		})
		return
	}

	hitID, hit := sess.Viewport().Click(req.X, req.Y, req.Multi)
	c.JSON(200, gin.H{
		"status":    "success",
		"hit":       hit,
		"id":        hitID,
		"selection": sess.Viewport().Selection(),
	})
}

type resizeRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ResizeSession updates the session's viewport dimensions
func ResizeSession(c *gin.Context) {
	sess, ok := findSession(c)
	if !ok {
		return
	}

	var req resizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{
			"status":  "error",
			"message": "invalid resize body",
		})
		return
	}

	sess.Viewport().Resize(req.Width, req.Height)
	c.JSON(200, gin.H{
		"status": "success",
	})
}

type focusRequest struct {
	ID string `json:"id" binding:"required"`
}

// FocusSession moves the session's camera to a specific building
func FocusSession(c *gin.Context) {
	sess, ok := findSession(c)
	if !ok {
		return
	}

	var req focusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{
			"status":  "error",
			"message": "id field is required",
		})
		return
	}

	if !sess.Viewport().Focus(req.ID) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "building not found in scene",
		})
		return
	}
	c.JSON(200, gin.H{
		"status": "success",
	})
}

// ClearSelection drops the session's selection
func ClearSelection(c *gin.Context) {
	sess, ok := findSession(c)
	if !ok {
		return
	}

	sess.Viewport().ClearSelection()
	c.JSON(200, gin.H{
		"status": "success",
	})
}

// GetSelection returns the session's current selection
func GetSelection(c *gin.Context) {
	sess, ok := findSession(c)
	if !ok {
		return
	}

	c.JSON(200, gin.H{
		"status":    "success",
		"selection": sess.Viewport().Selection(),
		"frames":    sess.Frames(),
	})
}

func findSession(c *gin.Context) (*session.Session, bool) {
	sess, err := session.GetSessionService().Get(c.Param("id"))
	if err != nil {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "session not found",
		})
		return nil, false
	}
	return sess, true
}
