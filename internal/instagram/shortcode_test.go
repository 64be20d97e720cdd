package instagram

import "testing"

func TestMediaIDFromShortcode(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected string
	}{
		{"single digit A", "A", "0"},
		{"single digit B", "B", "1"},
		{"single digit underscore", "_", "63"},
		{"two digits", "BA", "64"},
		{"mixed case and numbers", "ABC123", "17522103"},
		{"lowercase", "abc", "108252"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := MediaIDFromShortcode(tt.code)
			if err != nil {
				t.Fatalf("MediaIDFromShortcode(%q) returned error: %v", tt.code, err)
			}
			if id != tt.expected {
				t.Errorf("MediaIDFromShortcode(%q) = %s, want %s", tt.code, id, tt.expected)
			}
		})
	}
}

// The decoder uses an exact big-integer accumulator rather than floating
// point. For codes of 11+ characters the value exceeds both float64's 53-bit
// mantissa and the int64 range; this pins the exact result.
func TestMediaIDFromShortcodeExactBeyondFloatPrecision(t *testing.T) {
	// Eleven underscores: 64^11 - 1, which overflows int64 and would lose
	// low-order digits under float64 accumulation.
	id, err := MediaIDFromShortcode("___________")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "73786976294838206463" {
		t.Errorf("got %s, want 73786976294838206463", id)
	}
}

func TestMediaIDFromShortcodeDeterministic(t *testing.T) {
	first, err := MediaIDFromShortcode("CxyzAB12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := MediaIDFromShortcode("CxyzAB12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("same code decoded differently: %s vs %s", first, second)
	}

	changed, err := MediaIDFromShortcode("CxyzAB13")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed == first {
		t.Errorf("changing one character did not change the output (%s)", first)
	}
}

func TestMediaIDFromShortcodeRejectsInvalidInput(t *testing.T) {
	for _, code := range []string{"", "ABC!23", "abc 123", "héllo"} {
		if _, err := MediaIDFromShortcode(code); err == nil {
			t.Errorf("expected error for code %q", code)
		}
	}
}

func TestShortcodeFromURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
		wantErr  bool
	}{
		{"post url", "https://example.com/p/ABC123/", "ABC123", false},
		{"post url without trailing slash", "https://example.com/p/ABC123", "ABC123", false},
		{"reel url", "https://example.com/reel/Xy-_12/", "Xy-_12", false},
		{"tv url", "https://example.com/tv/Code99/", "Code99", false},
		{"nested profile post", "https://example.com/someuser/p/ABC123/", "ABC123", false},
		{"no marker segment", "not-a-valid-url", "", true},
		{"marker without code", "https://example.com/p/", "", true},
		{"plain profile url", "https://example.com/someuser/", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := ShortcodeFromURL(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got code %q", tt.url, code)
				}
				return
			}
			if err != nil {
				t.Fatalf("ShortcodeFromURL(%q) returned error: %v", tt.url, err)
			}
			if code != tt.expected {
				t.Errorf("ShortcodeFromURL(%q) = %q, want %q", tt.url, code, tt.expected)
			}
		})
	}
}
