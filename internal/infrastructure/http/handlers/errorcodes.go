package handlers

// API error codes returned in JSON { "error": "...", "code": "..." }
// for stable client handling.
const (
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeAuthFailed     = "authentication_failed"
	ErrCodeUnauthorized   = "unauthorized"
	ErrCodeNotFound       = "not_found"
	ErrCodeAccountLocked  = "account_locked"
	ErrCodeInternal       = "internal_error"
)
