// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	storeHealthChecker func() bool
	activeViews        func() int
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status      string `json:"status"`
	Store       string `json:"store"`
	ActiveViews int    `json:"active_views"`
	Timestamp   string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
// Either checker may be nil.
func NewHealthController(storeHealthChecker func() bool, activeViews func() int) *HealthController {
	return &HealthController{
		storeHealthChecker: storeHealthChecker,
		activeViews:        activeViews,
	}
}

// Check handles GET /health requests.
// The session store being down degrades the status but still answers 200.
func (h *HealthController) Check(c *gin.Context) {
	status := "ok"
	storeStatus := "disconnected"
	if h.storeHealthChecker != nil && h.storeHealthChecker() {
		storeStatus = "connected"
	} else {
		status = "degraded"
	}

	views := 0
	if h.activeViews != nil {
		views = h.activeViews()
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:      status,
		Store:       storeStatus,
		ActiveViews: views,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	})
}
