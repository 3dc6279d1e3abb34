package form

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Func validates a single raw input value. Validators depend only on their
// input: phone validity does not consult the country field, for example.
type Func func(raw string) Result

// Locale carries the region-specific rules the validator set is built with.
// The engine itself is locale-agnostic; schemas are constructed for one
// locale at a time.
type Locale struct {
	// Country is the default country seeded into new address forms.
	Country string

	// CallingCode is the international dialing prefix without the leading
	// plus, e.g. "91".
	CallingCode string

	// PostalDigits is the exact number of digits a postal code must contain.
	PostalDigits int
}

// DefaultLocale returns the locale the storefront launched with.
func DefaultLocale() Locale {
	return Locale{
		Country:      "India",
		CallingCode:  "91",
		PostalDigits: 6,
	}
}

var (
	nameRe  = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitRe = regexp.MustCompile(`\D`)
)

// stripNonDigits removes everything except 0-9.
func stripNonDigits(s string) string {
	return digitRe.ReplaceAllString(s, "")
}

// Required fails when the trimmed input is empty.
func Required(label string) Func {
	return func(raw string) Result {
		if strings.TrimSpace(raw) == "" {
			return Invalid(fmt.Sprintf("%s is required", label))
		}
		return Valid()
	}
}

// Name validates a person-name field. Checks run in a fixed order and the
// first failure wins: required, minimum length, maximum length, charset.
func Name(label string) Func {
	return func(raw string) Result {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return Invalid(fmt.Sprintf("%s is required", label))
		}
		if utf8.RuneCountInString(trimmed) < 2 {
			return Invalid(fmt.Sprintf("%s must be at least 2 characters", label))
		}
		if utf8.RuneCountInString(trimmed) > 50 {
			return Invalid(fmt.Sprintf("%s must be less than 50 characters", label))
		}
		if !nameRe.MatchString(trimmed) {
			return Invalid(fmt.Sprintf("%s can only contain letters, spaces, hyphens, and apostrophes", label))
		}
		return Valid()
	}
}

// Email validates a minimal local@domain.tld shape.
func Email() Func {
	return func(raw string) Result {
		if strings.TrimSpace(raw) == "" {
			return Invalid("Email is required")
		}
		if !emailRe.MatchString(raw) {
			return Invalid("Please enter a valid email address")
		}
		return Valid()
	}
}

// Phone validates an optional phone number. Empty input is always valid.
// Non-empty input must contain 10 to 15 digits once separators are stripped.
func Phone() Func {
	return func(raw string) Result {
		if strings.TrimSpace(raw) == "" {
			return Valid()
		}
		digits := stripNonDigits(raw)
		if len(digits) < 10 || len(digits) > 15 {
			return Invalid("Please enter a valid phone number (10-15 digits)")
		}
		return Valid()
	}
}

// PostalCode validates a postal code against the locale's digit count.
func PostalCode(label string, loc Locale) Func {
	return func(raw string) Result {
		if strings.TrimSpace(raw) == "" {
			return Invalid(fmt.Sprintf("%s is required", label))
		}
		digits := stripNonDigits(raw)
		if len(digits) != loc.PostalDigits {
			return Invalid(fmt.Sprintf("Please enter a valid %d-digit pincode", loc.PostalDigits))
		}
		return Valid()
	}
}

// AddressLine validates a required free-text address line.
func AddressLine(label string) Func {
	return func(raw string) Result {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return Invalid(fmt.Sprintf("%s is required", label))
		}
		if utf8.RuneCountInString(trimmed) < 5 {
			return Invalid(fmt.Sprintf("%s must be at least 5 characters", label))
		}
		if utf8.RuneCountInString(trimmed) > 200 {
			return Invalid(fmt.Sprintf("%s must be less than 200 characters", label))
		}
		return Valid()
	}
}

// Optional wraps a validator so that empty input passes and non-empty input
// is checked by the wrapped validator.
func Optional(f Func) Func {
	return func(raw string) Result {
		if strings.TrimSpace(raw) == "" {
			return Valid()
		}
		return f(raw)
	}
}
