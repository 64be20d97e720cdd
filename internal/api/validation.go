package api

import (
	"fmt"
	"strings"

	"github.com/gramops/gramops/internal/instagram"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateCookie checks that a submitted credential string looks like a
// usable session cookie before it is stored. Whether the session actually
// authenticates is only discovered by use.
func ValidateCookie(cookie string) error {
	cookie = strings.TrimSpace(cookie)
	if cookie == "" {
		return ValidationError{Field: "cookie", Message: "cookie is required"}
	}

	pairs := instagram.ParseCookie(cookie)
	if len(pairs) == 0 {
		return ValidationError{Field: "cookie", Message: "cookie must contain key=value pairs"}
	}
	if pairs["sessionid"] == "" {
		return ValidationError{Field: "cookie", Message: "cookie must contain a sessionid pair"}
	}

	return nil
}
