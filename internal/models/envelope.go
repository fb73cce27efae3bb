package models

// Envelope wraps every backend response.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// FieldError describes one failed validation rule.
type FieldError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}
