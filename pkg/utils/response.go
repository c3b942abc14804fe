package utils

import (
	"github.com/gin-gonic/gin"
)

// Response adalah amplop standar semua jawaban gateway ke dashboard
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    interface{}  `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail memberi tahu dashboard jenis error dan field form yang salah
type ErrorDetail struct {
	Kind         string `json:"kind"`
	Field        string `json:"field,omitempty"`
	Step         string `json:"step,omitempty"`
	RemoteStatus int    `json:"remote_status,omitempty"`
}

func APIResponse(c *gin.Context, code int, success bool, message string, data interface{}) {
	c.JSON(code, Response{
		Success: success,
		Message: message,
		Data:    data,
	})
}

// APIError mengirim response gagal beserta detail error
func APIError(c *gin.Context, code int, message string, detail *ErrorDetail) {
	c.AbortWithStatusJSON(code, Response{
		Success: false,
		Message: message,
		Error:   detail,
	})
}
