package validation

import (
	"errors"
	"strings"
)

// ValidateUsername validates a display username
func ValidateUsername(username string) error {
	trimmed := strings.TrimSpace(username)

	if trimmed == "" {
		return errors.New("username is required")
	}

	if len(trimmed) > 100 {
		return errors.New("username is too long (max 100 characters)")
	}

	return nil
}
