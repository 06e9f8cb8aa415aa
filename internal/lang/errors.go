package lang

import (
	"errors"
	"fmt"
	"strings"
)

// UnknownLanguageError indicates a lookup for a language code the catalog
// does not carry.
type UnknownLanguageError struct {
	Code      string
	Available []string
}

// Error implements the error interface.
func (e *UnknownLanguageError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("unknown language %q", e.Code)
	}
	return fmt.Sprintf("unknown language %q (available: %s)", e.Code, strings.Join(e.Available, ", "))
}

// IsUnknownLanguage checks if an error is an UnknownLanguageError.
func IsUnknownLanguage(err error) bool {
	var unknownErr *UnknownLanguageError
	return errors.As(err, &unknownErr)
}
