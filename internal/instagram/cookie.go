package instagram

import "strings"

// ParseCookie splits a raw Cookie-header credential string ("k=v; k2=v2")
// into its key/value pairs. Malformed fragments are skipped.
func ParseCookie(raw string) map[string]string {
	pairs := make(map[string]string)
	for _, part := range strings.Split(raw, "; ") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok || key == "" {
			continue
		}
		pairs[key] = value
	}
	return pairs
}

// CSRFToken returns the csrftoken value embedded in the credential string,
// or an empty string when the cookie does not carry one. Mutation endpoints
// reject requests whose CSRF header does not match the cookie.
func CSRFToken(cookie string) string {
	return ParseCookie(cookie)["csrftoken"]
}
