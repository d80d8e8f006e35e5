package services

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	usernameMinLength = 3
	usernameMaxLength = 30
	fullnameMinLength = 2
	fullnameMaxLength = 100
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// NormalizeUsername приводит username к каноническому виду перед любым
// сравнением или записью.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func validateUsername(username string) error {
	if len(username) < usernameMinLength || len(username) > usernameMaxLength {
		return &ValidationError{
			Field:   "username",
			Message: "must be between 3 and 30 characters",
		}
	}
	if !usernamePattern.MatchString(username) {
		return &ValidationError{
			Field:   "username",
			Message: "may only contain lowercase letters, numbers, underscores and hyphens",
		}
	}
	return nil
}

func validateFullname(fullname string) error {
	// Имя может быть не-ASCII, поэтому границы считаем в рунах, не в байтах.
	length := utf8.RuneCountInString(fullname)
	if length < fullnameMinLength || length > fullnameMaxLength {
		return &ValidationError{
			Field:   "fullname",
			Message: "must be between 2 and 100 characters",
		}
	}
	return nil
}
