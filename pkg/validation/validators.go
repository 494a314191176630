package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// Loose address check: something@something.something with no whitespace or extra @.
	// Not RFC 5322; consecutive dots and similar oddities pass on purpose.
	looseEmailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// New returns a validator with the custom rules registered.
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("not_blank", NotBlank)
	_ = v.RegisterValidation("loose_email", LooseEmail)
}

// NotBlank fails for empty and whitespace-only strings
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// LooseEmail validates the address shape only
func LooseEmail(fl validator.FieldLevel) bool {
	return IsLooseEmail(fl.Field().String())
}

// IsLooseEmail reports whether s looks like local@domain.tld.
func IsLooseEmail(s string) bool {
	return looseEmailRegex.MatchString(s)
}
