package model

import "fmt"

// NotFoundError marks a reference to a contact that does not exist in the
// current snapshot. Recoverable: surfaced as a structured "not found" result,
// never aborts a batch operation.
type NotFoundError struct {
	Kind string // "contact"
	Key  string // id or email used for the lookup
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Key)
}

// ValidationError marks a malformed request, rejected before evaluation
// begins, with a field-level message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
