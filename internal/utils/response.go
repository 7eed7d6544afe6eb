package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Success and Error are the JSON response helpers for the non-HTML
// endpoints (react, delete). Error aborts so later middleware does not
// write a second body.

func Success(c *gin.Context, data gin.H) {
	body := gin.H{"success": true}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func Error(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"success": false, "message": message})
}
