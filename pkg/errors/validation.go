package errors

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// ValidateID validates a resource identifier before it is placed in a URL path.
// It rejects identifiers that could be used for path traversal or injection.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "id contains invalid control characters")
		}
	}

	for _, pattern := range []string{"..", "/", "\\", "?", "#"} {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidInput, "id contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateURL validates a base URL for safety.
// It ensures the URL parses, has a host, and uses http or https.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidConfig, "URL cannot be empty")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidConfig, err, "invalid URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidConfig, "URL must use http or https scheme")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidConfig, "URL must include a host")
	}

	return nil
}

// seriesNameRegex matches series identifiers such as "monthly-launches".
var seriesNameRegex = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// ValidateSeriesName validates the syntax of a series identifier.
// Whether the series exists is decided by the caller.
func ValidateSeriesName(name string) error {
	if !seriesNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid series name: %q", name)
	}
	return nil
}
