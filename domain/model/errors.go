package model

import "errors"

// Terminal per-request error classes. Handlers map these onto HTTP statuses;
// nothing here is retried.
var (
	// ErrNoResults means a search resolved to an empty entry set.
	ErrNoResults = errors.New("no search results")

	// ErrExtractTimeout means the gateway deadline elapsed before the
	// extraction finished.
	ErrExtractTimeout = errors.New("extraction timed out")
)

// UpstreamError carries a failure reported by the extraction tool itself,
// e.g. an unsupported or unavailable target.
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

// NewUpstreamError wraps an extractor-reported message.
func NewUpstreamError(message string) *UpstreamError {
	return &UpstreamError{Message: message}
}
