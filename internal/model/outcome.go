package model

// ResetMode distinguishes the two password-reset sub-flows.
type ResetMode string

const (
	// ResetModeRequest is the "send me a reset link" sub-flow.
	ResetModeRequest ResetMode = "request"
	// ResetModeReset is the "set a new password" sub-flow.
	ResetModeReset ResetMode = "reset"
)

// Error codes produced by the processors themselves. Codes reported by the
// user store (invalid key, expired key, ...) pass through unchanged.
const (
	ErrCodeNonceFailed      = "nonce_failed"
	ErrCodeEmptyKey         = "empty_key"
	ErrCodeEmptyLogin       = "empty_login"
	ErrCodeEmptyPassword    = "empty_password"
	ErrCodePasswordMismatch = "password_mismatch"
)

// Outcome is the recorded result of one workflow invocation. Exactly one
// Outcome exists per workflow per request; see core.ResultStore.
type Outcome struct {
	Success bool      `json:"success"`
	Mode    ResetMode `json:"mode,omitempty"`

	// Set on activation success.
	UserID   string `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
	ResetURL string `json:"reset_url,omitempty"`

	// Set on failure.
	ErrorCode    string `json:"error_code,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}
