package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every API endpoint returns.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// OK sends a 200 with the given payload.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "success",
		Data:    data,
	})
}

// Created sends a 201 with the given payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: "created",
		Data:    data,
	})
}

// Error sends an error response with the given status code.
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
	})
}
