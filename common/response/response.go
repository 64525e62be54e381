package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/NgocDuong9/be-betaw/common/errors"
)

// Envelope is the uniform response body for every endpoint.
type Envelope struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Error      string      `json:"error,omitempty"`
	StatusCode int         `json:"statusCode,omitempty"`
}

// OK writes a 200 envelope with data.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Message writes a 200 envelope with data and a human-readable message.
func Message(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Message: message})
}

// Created writes a 201 envelope with data and a message.
func Created(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data, Message: message})
}

// Error writes the envelope for any error, mapping it to its HTTP status.
func Error(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	c.JSON(appErr.Code, Envelope{
		Success:    false,
		Message:    appErr.Message,
		Error:      http.StatusText(appErr.Code),
		StatusCode: appErr.Code,
	})
}
