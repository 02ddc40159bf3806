package helper

import "fmt"

// NewError wraps err with the operation that failed.
// A nil err yields nil so callers can wrap unconditionally.
func NewError(operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("error %s: %w", operation, err)
}
