package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform response wrapper used by every endpoint.
type Envelope struct {
	StatusCode int         `json:"status_code"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Count      *int        `json:"count,omitempty"`
}

// OK sends a 200 response.
func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{StatusCode: http.StatusOK, Message: message, Data: data})
}

// OKCount sends a 200 response with an item count alongside the data.
func OKCount(c *gin.Context, message string, data interface{}, count int) {
	c.JSON(http.StatusOK, Envelope{StatusCode: http.StatusOK, Message: message, Data: data, Count: &count})
}

// Created sends a 201 response.
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{StatusCode: http.StatusCreated, Message: message, Data: data})
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Envelope{StatusCode: http.StatusBadRequest, Message: message})
}

// Unauthorized sends a 401 error response.
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Unauthorized"
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, Envelope{StatusCode: http.StatusUnauthorized, Message: message})
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Not found"
	}
	c.AbortWithStatusJSON(http.StatusNotFound, Envelope{StatusCode: http.StatusNotFound, Message: message})
}

// MethodNotAllowed sends a 405 error response.
func MethodNotAllowed(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusMethodNotAllowed, Envelope{StatusCode: http.StatusMethodNotAllowed, Message: "Method not allowed"})
}

// Conflict sends a 409 error response.
func Conflict(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusConflict, Envelope{StatusCode: http.StatusConflict, Message: message})
}

// TooManyRequests sends a 429 error response.
func TooManyRequests(c *gin.Context, message string) {
	c.Header("Retry-After", "1")
	c.AbortWithStatusJSON(http.StatusTooManyRequests, Envelope{StatusCode: http.StatusTooManyRequests, Message: message})
}

// InternalError sends a generic 500 error response. The underlying error is
// expected to have been logged by the caller; it is never returned to the
// client.
func InternalError(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, Envelope{StatusCode: http.StatusInternalServerError, Message: "Internal server error"})
}
