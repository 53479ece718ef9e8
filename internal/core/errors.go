package core

// CodedError is a user-recoverable failure carrying a symbolic code and a
// human-readable message. Processors copy both verbatim into the Outcome.
type CodedError struct {
	Code    string
	Message string
}

func (e *CodedError) Error() string {
	return e.Message
}

// User store error codes. Messages accompany them verbatim.
const (
	ErrCodeInvalidKey    = "invalid_key"
	ErrCodeAlreadyActive = "already_active"
	ErrCodeExpiredKey    = "expired_key"
)
