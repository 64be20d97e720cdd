package instagram

import "testing"

func TestParseCookie(t *testing.T) {
	pairs := ParseCookie("csrftoken=abc123; sessionid=xyz; ds_user_id=55")

	expected := map[string]string{
		"csrftoken":  "abc123",
		"sessionid":  "xyz",
		"ds_user_id": "55",
	}

	if len(pairs) != len(expected) {
		t.Fatalf("expected %d pairs, got %d: %v", len(expected), len(pairs), pairs)
	}
	for key, want := range expected {
		if pairs[key] != want {
			t.Errorf("pairs[%q] = %q, want %q", key, pairs[key], want)
		}
	}
}

func TestParseCookieKeepsEqualsInValue(t *testing.T) {
	pairs := ParseCookie("sessionid=abc=def=g")
	if pairs["sessionid"] != "abc=def=g" {
		t.Errorf("sessionid = %q, want %q", pairs["sessionid"], "abc=def=g")
	}
}

func TestParseCookieSkipsMalformedFragments(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected int
	}{
		{"empty string", "", 0},
		{"lone separator", "; ", 0},
		{"value without key", "=orphan", 0},
		{"no separator at all", "this is not a cookie", 0},
		{"one good one bad", "sessionid=xyz; =bad", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pairs := ParseCookie(tt.raw)
			if len(pairs) != tt.expected {
				t.Errorf("ParseCookie(%q) yielded %d pairs, want %d", tt.raw, len(pairs), tt.expected)
			}
		})
	}
}

func TestCSRFToken(t *testing.T) {
	if token := CSRFToken("csrftoken=abc123; sessionid=xyz"); token != "abc123" {
		t.Errorf("CSRFToken = %q, want %q", token, "abc123")
	}
	if token := CSRFToken("sessionid=xyz"); token != "" {
		t.Errorf("CSRFToken without csrftoken pair = %q, want empty", token)
	}
}
