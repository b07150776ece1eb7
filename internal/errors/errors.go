package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error body shape used across the API:
// a human message plus the underlying error text for 500s.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// BadRequest sends a 400 response for malformed input.
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Message: message})
}

// Unauthorized sends a 401 response for missing or invalid credentials.
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Please authenticate"
	}
	c.JSON(http.StatusUnauthorized, ErrorResponse{Message: message})
}

// Forbidden sends a 403 response for authenticated but not permitted access.
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	c.JSON(http.StatusForbidden, ErrorResponse{Message: message})
}

// NotFound sends a 404 response for an absent resource or empty collection.
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	c.JSON(http.StatusNotFound, ErrorResponse{Message: message})
}

// Internal sends a 500 response with a generic message and the underlying error text.
func Internal(c *gin.Context, message string, err error) {
	resp := ErrorResponse{Message: message}
	if resp.Message == "" {
		resp.Message = "Internal server error"
	}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(http.StatusInternalServerError, resp)
}
