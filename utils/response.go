package utils

import (
	"github.com/gin-gonic/gin"
)

// APIResponse is the success envelope.
type APIResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
}

// ErrorResponse is the error envelope.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// JSONSuccess writes data in the success envelope.
func JSONSuccess(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, APIResponse{StatusCode: status, Data: data, Message: message})
}

// JSONError writes the error envelope and aborts the chain.
func JSONError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{StatusCode: status, Message: message})
}
