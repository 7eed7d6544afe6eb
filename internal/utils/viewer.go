package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/RXAliman/scrunch/internal/models"
)

const viewerKey = "viewer"

// SetViewer stashes the resolved viewer on the request context. Only
// the session middleware calls this.
func SetViewer(c *gin.Context, v models.Viewer) {
	c.Set(viewerKey, v)
}

// GetViewer returns the request's viewer. Requests that never passed
// the session middleware read as anonymous.
func GetViewer(c *gin.Context) models.Viewer {
	raw, exists := c.Get(viewerKey)
	if !exists {
		return models.Viewer{}
	}
	v, ok := raw.(models.Viewer)
	if !ok {
		return models.Viewer{}
	}
	return v
}
