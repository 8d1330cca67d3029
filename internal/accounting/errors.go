package accounting

import (
	"fmt"
	"strings"
)

// ValidationError carries the full set of field violations found in a
// rejected journal entry. Handlers unwrap it to build a structured 400 body.
type ValidationError struct {
	Violations []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "journal entry validation failed"
	}
	fields := make([]string, 0, len(e.Violations))
	seen := make(map[string]struct{}, len(e.Violations))
	for _, v := range e.Violations {
		if _, ok := seen[v.Field]; ok {
			continue
		}
		seen[v.Field] = struct{}{}
		fields = append(fields, v.Field)
	}
	return fmt.Sprintf("journal entry validation failed: %s", strings.Join(fields, ", "))
}

// NewValidationError wraps a non-empty violation set as an error.
func NewValidationError(violations []FieldError) *ValidationError {
	return &ValidationError{Violations: violations}
}
