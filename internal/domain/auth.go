package domain

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

// phoneRe accepts E.164-style numbers once whitespace is stripped.
var phoneRe = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// Credentials is the value object carried through the login flow.
// Construction fails on empty fields so no use-case ever sees them.
type Credentials struct {
	PhoneNumber string
	Password    string
}

// NewCredentials validates and builds the value object.
func NewCredentials(phoneNumber, password string) (Credentials, error) {
	if strings.TrimSpace(phoneNumber) == "" {
		return Credentials{}, errors.New("phone number is required")
	}
	if strings.TrimSpace(password) == "" {
		return Credentials{}, errors.New("password is required")
	}
	return Credentials{PhoneNumber: phoneNumber, Password: password}, nil
}

// ValidatePhoneNumber checks the login identifier format.
func ValidatePhoneNumber(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return errors.New("phone number is required")
	}
	stripped := strings.ReplaceAll(phone, " ", "")
	if !phoneRe.MatchString(stripped) {
		return errors.New("invalid phone number format")
	}
	return nil
}

// ValidatePassword enforces the registration password policy: minimum eight
// characters with upper, lower, digit and symbol classes present.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	switch {
	case !hasUpper:
		return errors.New("password must include an uppercase letter")
	case !hasLower:
		return errors.New("password must include a lowercase letter")
	case !hasDigit:
		return errors.New("password must include a digit")
	case !hasSymbol:
		return errors.New("password must include a symbol")
	}
	return nil
}
