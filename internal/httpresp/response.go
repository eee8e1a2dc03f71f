package httpresp

import "github.com/gin-gonic/gin"

// Envelope matches the wire contract of the scheduler API: every success
// response carries success/message/data.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func OK(c *gin.Context, message string, data any) {
	c.JSON(200, Envelope{Success: true, Message: message, Data: data})
}

func Created(c *gin.Context, message string, data any) {
	c.JSON(201, Envelope{Success: true, Message: message, Data: data})
}
