// File: internal/api/error_response.go
package api

// FieldError 單一欄位的驗證錯誤
// swagger:model api.FieldError
type FieldError struct {
	Field   string `json:"field" example:"name"`
	Message string `json:"message" example:"Username must be at least 2 characters."`
}

// ErrorResponse 全域錯誤響應模型
// swagger:model api.ErrorResponse
type ErrorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}
