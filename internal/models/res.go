package models

import "time"

type ApiResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

func SuccessResponse(data interface{}, message string) ApiResponse {
	return ApiResponse{
		Success:   true,
		Data:      data,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// ErrorResponse builds a failure envelope. detail carries the underlying
// error text and must be empty outside development deployments.
func ErrorResponse(message, detail string) ApiResponse {
	return ApiResponse{
		Success:   false,
		Message:   message,
		Error:     detail,
		Timestamp: time.Now().UTC(),
	}
}
