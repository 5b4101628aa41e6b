package validator

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Required validates that a string value is not empty after trimming.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:   field,
			Message: "is required",
		},
	}
}

// ValidEmail validates that the value is a syntactically valid email address
// suitable for typical web signup forms.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return isValidEmail(value)
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%q is not a valid email", value),
		},
	}
}

// MinLength validates that the value has at least min characters.
// Counted in runes so multibyte input is not over-counted.
func MinLength(field, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) >= min
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at least %d characters", min),
		},
	}
}

func isValidEmail(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}

	addr, err := mail.ParseAddress(value)
	if err != nil {
		return false
	}

	// mail.ParseAddress accepts forms like "Name <a@b>"; require the bare address.
	if addr.Address != value {
		return false
	}

	parts := strings.Split(addr.Address, "@")
	if len(parts) != 2 {
		return false
	}
	local, domain := parts[0], parts[1]
	if local == "" {
		return false
	}

	// Domain must contain a dot and cannot start or end with one.
	return strings.Contains(domain, ".") &&
		!strings.HasPrefix(domain, ".") &&
		!strings.HasSuffix(domain, ".")
}
