package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Success writes a success envelope merged with the given extra fields.
func Success(c *gin.Context, status int, extra gin.H) {
	body := gin.H{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

// SuccessMessage writes {"success": true, "message": ...}.
func SuccessMessage(c *gin.Context, message string) {
	Success(c, http.StatusOK, gin.H{"message": message})
}

// Fail writes {"success": false, "message": ...}.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// Error writes {"error": ...}.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
