package contact

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Phone numbers carry between MinPhoneDigits and MaxPhoneDigits digits once
// every non-digit character is stripped.
const (
	MinPhoneDigits = 10
	MaxPhoneDigits = 15
)

// Field names reported by ValidationError.
const (
	FieldName  = "name"
	FieldPhone = "phone"
	FieldEmail = "email"
)

// ErrInvalid is matched by every *ValidationError via errors.Is.
var ErrInvalid = errors.New("contact: invalid field")

// ValidationError reports a rejected field value and why.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("contact: invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidatePhone strips every non-digit from raw and reports whether the
// remaining digit count is within [MinPhoneDigits, MaxPhoneDigits].
// Decimal digits from any script count and are stored as ASCII.
// The digit string is returned only when ok is true.
func ValidatePhone(raw string) (digits string, ok bool) {
	digits = strings.Map(func(r rune) rune {
		if !unicode.IsDigit(r) {
			return -1
		}
		return '0' + digitValue(r)
	}, raw)
	if len(digits) < MinPhoneDigits || len(digits) > MaxPhoneDigits {
		return "", false
	}
	return digits, true
}

// digitValue returns the value of a decimal digit rune. Unicode encodes each
// script's digits as a contiguous run starting at zero, so the value is the
// offset from the start of the run.
func digitValue(r rune) rune {
	if r <= '9' {
		return r - '0'
	}
	start := r
	for unicode.IsDigit(start - 1) {
		start--
	}
	return (r - start) % 10
}

// ValidateEmail reports whether email has the local@domain.tld shape.
// The field is optional, so "" is valid. No DNS lookups are made.
func ValidateEmail(email string) bool {
	if email == "" {
		return true
	}
	return emailPattern.MatchString(email)
}

func phoneError(raw string) *ValidationError {
	return &ValidationError{
		Field:  FieldPhone,
		Value:  raw,
		Reason: fmt.Sprintf("must contain %d-%d digits", MinPhoneDigits, MaxPhoneDigits),
	}
}

func emailError(raw string) *ValidationError {
	return &ValidationError{Field: FieldEmail, Value: raw, Reason: "must look like name@example.com"}
}
