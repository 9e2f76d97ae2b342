package handlers

import (
	"github.com/gin-gonic/gin"
)

const (
	statusSuccess = "Success"
	statusFail    = "Fail"
)

// Response is the envelope of every storefront reply. Data holds the view of
// the controller the route acts on, on failures too, so a client can render
// the error next to the form or order it belongs to.
type Response struct {
	Status    string      `json:"Status"`
	Message   string      `json:"Message"`
	Data      interface{} `json:"Data,omitempty"`
	RequestID string      `json:"RequestID,omitempty"`
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	writeResponse(c, statusCode, statusSuccess, message, data)
}

func ErrorResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	writeResponse(c, statusCode, statusFail, message, data)
}

func writeResponse(c *gin.Context, statusCode int, status, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Status:    status,
		Message:   message,
		Data:      data,
		RequestID: c.GetString("requestID"),
	})
}
