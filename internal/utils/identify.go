package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// InputType is what a free-form identifier string turned out to be.
type InputType string

const (
	InputEmail    InputType = "email"
	InputPhone    InputType = "phone"
	InputUsername InputType = "username"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
	// Uzbek mobile numbers: +998/998/0 prefix followed by an operator code.
	phoneRegex    = regexp.MustCompile(`^(?:\+998|998|0)(?:33|71|77|55|90|91|93|94|95|97|98|99|88|66|67|76|78)[0-9]{7}$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
)

// ClassifyEmailOrPhone accepts only an email or a phone number (signup path).
func ClassifyEmailOrPhone(value string) (InputType, error) {
	value = strings.TrimSpace(value)
	switch {
	case emailRegex.MatchString(value):
		return InputEmail, nil
	case phoneRegex.MatchString(value):
		return InputPhone, nil
	default:
		return "", fmt.Errorf("invalid email or phone number format")
	}
}

// ClassifyUserInput additionally allows a raw username (login path).
// Order matters: an email would also match the username charset.
func ClassifyUserInput(value string) (InputType, error) {
	value = strings.TrimSpace(value)
	switch {
	case emailRegex.MatchString(value):
		return InputEmail, nil
	case phoneRegex.MatchString(value):
		return InputPhone, nil
	case usernameRegex.MatchString(value):
		return InputUsername, nil
	default:
		return "", fmt.Errorf("invalid user input format")
	}
}

// IsAlpha reports whether s is non-empty and contains letters only.
func IsAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z') {
			return false
		}
	}
	return true
}
