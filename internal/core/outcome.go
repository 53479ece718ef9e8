package core

import "github.com/edvin/accounts/internal/model"

// ResultStore holds the outcome of one workflow for the lifetime of one
// request. It is write-once: the first SetOutcome wins and later calls are
// ignored. Handlers construct one per workflow per request; it is never
// shared across requests.
type ResultStore struct {
	outcome   *model.Outcome
	processed bool
}

func NewResultStore() *ResultStore {
	return &ResultStore{}
}

// SetOutcome records the outcome if none has been recorded yet.
func (s *ResultStore) SetOutcome(o model.Outcome) {
	if s.outcome != nil {
		return
	}
	s.outcome = &o
}

// Outcome returns the recorded outcome, or nil when none was recorded.
func (s *ResultStore) Outcome() *model.Outcome {
	return s.outcome
}

// Processed reports whether the activation processor already ran this
// request. Distinct from having an outcome: a nonce or empty-key failure
// records an outcome without consuming the processed flag.
func (s *ResultStore) Processed() bool {
	return s.processed
}

func (s *ResultStore) MarkProcessed() {
	s.processed = true
}

func (s *ResultStore) IsSuccess() bool {
	return s.outcome != nil && s.outcome.Success
}

func (s *ResultStore) IsError() bool {
	return s.outcome != nil && !s.outcome.Success
}

func (s *ResultStore) ErrorMessage() string {
	if s.IsError() {
		return s.outcome.ErrorMessage
	}
	return ""
}

func (s *ResultStore) Username() string {
	if s.IsSuccess() {
		return s.outcome.Username
	}
	return ""
}

func (s *ResultStore) ResetURL() string {
	if s.IsSuccess() {
		return s.outcome.ResetURL
	}
	return ""
}

func (s *ResultStore) Mode() model.ResetMode {
	if s.outcome == nil {
		return ""
	}
	return s.outcome.Mode
}
