package shop

import "fmt"

// ValidationError reports a refused operation: the named field is the
// one the caller must fix. No state changes accompany it.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}
