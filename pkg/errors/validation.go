package errors

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxNameLength bounds names, titles and usernames.
const maxNameLength = 256

// ValidateName checks a human-facing identifier such as a title, a person's
// name or a username. It returns an *InvalidFieldError naming entity and
// field so the message points at the offending record.
//
// Rules:
//   - Not empty (after trimming whitespace)
//   - No control characters
//   - Maximum length of 256 characters
//   - Valid UTF-8 that XML can carry
func ValidateName(entity, field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &InvalidFieldError{Entity: entity, Field: field, Value: value, Reason: "must not be empty"}
	}
	if n := utf8.RuneCountInString(value); n > maxNameLength {
		return &InvalidFieldError{Entity: entity, Key: truncate(value, 32), Field: field, Value: n, Reason: "too long (max 256 characters)"}
	}
	for _, r := range value {
		if unicode.IsControl(r) {
			return &InvalidFieldError{Entity: entity, Key: value, Field: field, Value: value, Reason: "contains control characters"}
		}
	}
	return ValidateText(entity, value, field, value)
}

// ValidateText checks free text such as a description, a biography or a
// comment body. Line breaks and tabs are allowed; other control characters,
// invalid UTF-8 and the noncharacters U+FFFE/U+FFFF are rejected because
// XML 1.0 cannot represent them.
func ValidateText(entity, key, field, value string) error {
	for i, r := range value {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(value[i:]); size == 1 {
				return &InvalidFieldError{Entity: entity, Key: key, Field: field, Value: i, Reason: "invalid UTF-8"}
			}
		}
		if !isXMLChar(r) {
			return &InvalidFieldError{Entity: entity, Key: key, Field: field, Value: fmt.Sprintf("%U", r), Reason: "character not allowed in XML"}
		}
	}
	return nil
}

// isXMLChar reports whether r is in the XML 1.0 Char production.
func isXMLChar(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return true
	case r < 0x20:
		return false
	case r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	default:
		return r >= 0x10000 && r <= utf8.MaxRune
	}
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// emailRegex is deliberately loose: one "@" with something on either side
// and a dot in the domain part.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail checks that email looks like an address.
func ValidateEmail(username, email string) error {
	if !emailRegex.MatchString(email) {
		return &InvalidFieldError{Entity: "user", Key: username, Field: "email", Value: email, Reason: "not an email address"}
	}
	return ValidateText("user", username, "email", email)
}

// ValidatePositive checks an integer field that must be greater than zero.
func ValidatePositive(entity, key, field string, v int) error {
	if v <= 0 {
		return &InvalidFieldError{Entity: entity, Key: key, Field: field, Value: v, Reason: "must be positive"}
	}
	return nil
}

// ValidateNonNegative checks an integer field that must not be negative.
func ValidateNonNegative(entity, key, field string, v int) error {
	if v < 0 {
		return &InvalidFieldError{Entity: entity, Key: key, Field: field, Value: v, Reason: "must not be negative"}
	}
	return nil
}

// ValidateOutputPath validates a destination path for exported documents.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Must name a file, not a directory (no trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output path must name a file: %s", path)
	}
	return nil
}
