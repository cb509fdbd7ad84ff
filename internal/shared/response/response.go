package response

import (
	"github.com/gin-gonic/gin"
)

// Envelope is the wire shape shared by every endpoint: {"success": ...}.
// Errors carry a flat message string, list responses add a count.
type Envelope struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   any    `json:"error,omitempty"`
}

func Success(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{
		Success: true,
		Data:    data,
	})
}

// List wraps a collection response with its element count.
func List(c *gin.Context, status int, count int, data any) {
	c.JSON(status, Envelope{
		Success: true,
		Count:   &count,
		Data:    data,
	})
}

// Token is the auth success shape: {"success":true, "token":"..."}.
func Token(c *gin.Context, status int, token string) {
	c.JSON(status, Envelope{
		Success: true,
		Token:   token,
	})
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{
		Success: false,
		Error:   message,
	})
}
