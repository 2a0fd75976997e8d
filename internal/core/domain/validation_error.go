package domain

// ValidationError reports the first violated field of a write payload.
// Violations are detected fail-fast: only the first one is surfaced.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}
