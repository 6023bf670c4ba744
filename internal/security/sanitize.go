package security

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ValidationError represents a rejected chat message
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// MessageSanitizer normalizes inbound chat text before it reaches the pipeline
type MessageSanitizer struct {
	maxLength int
}

// NewMessageSanitizer creates a sanitizer. A maxLength of 0 disables the limit.
func NewMessageSanitizer(maxLength int) *MessageSanitizer {
	return &MessageSanitizer{maxLength: maxLength}
}

// Sanitize strips control characters (keeping newlines and tabs) and enforces
// the configured length in runes. Blank input is returned unchanged; callers
// decide what an empty message means.
func (s *MessageSanitizer) Sanitize(msg string) (string, error) {
	if !utf8.ValidString(msg) {
		msg = strings.ToValidUTF8(msg, "")
	}

	cleaned := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, msg)

	if s.maxLength > 0 && utf8.RuneCountInString(cleaned) > s.maxLength {
		return "", &ValidationError{Message: "message too long"}
	}
	return cleaned, nil
}
