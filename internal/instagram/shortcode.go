package instagram

import (
	"fmt"
	"math/big"
	"net/url"
	"strings"
)

// shortcodeAlphabet is the base-64 digit set used by post short codes,
// in digit-value order.
const shortcodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// MediaIDFromShortcode decodes a post short code into the numeric media
// identifier the mutation endpoints expect. The code is read left to right
// as a base-64 numeral over A-Z a-z 0-9 - _. The accumulator is exact for
// codes of any length, so identifiers past the 64-bit range do not lose
// precision.
func MediaIDFromShortcode(code string) (string, error) {
	if code == "" {
		return "", fmt.Errorf("empty short code")
	}

	id := new(big.Int)
	base := big.NewInt(64)
	for _, ch := range code {
		value := strings.IndexRune(shortcodeAlphabet, ch)
		if value < 0 {
			return "", fmt.Errorf("invalid short code character %q", ch)
		}
		id.Mul(id, base)
		id.Add(id, big.NewInt(int64(value)))
	}

	return id.String(), nil
}

// ShortcodeFromURL extracts the short code segment from a post URL. Post,
// reel and tv paths all embed the code as the segment after the marker:
// https://host/p/<code>/, /reel/<code>/, /tv/<code>/.
func ShortcodeFromURL(postURL string) (string, error) {
	parsed, err := url.Parse(postURL)
	if err != nil {
		return "", fmt.Errorf("invalid post URL %q: %w", postURL, err)
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	for i, segment := range segments {
		switch segment {
		case "p", "reel", "tv":
			if i+1 < len(segments) && segments[i+1] != "" {
				return segments[i+1], nil
			}
		}
	}

	return "", fmt.Errorf("post URL %q does not contain a /p/, /reel/ or /tv/ segment", postURL)
}

// MediaIDFromURL combines short code extraction and decoding.
func MediaIDFromURL(postURL string) (string, error) {
	code, err := ShortcodeFromURL(postURL)
	if err != nil {
		return "", err
	}
	return MediaIDFromShortcode(code)
}
