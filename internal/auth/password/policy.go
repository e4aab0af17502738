package password

import (
	"fmt"
	"strings"
	"unicode"
)

const specialChars = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// Policy is the configurable password-strength rule set. A zero value for a
// rule disables that check.
type Policy struct {
	MinLength          int
	RequireUppercase   bool
	RequireNumber      bool
	RequireSpecialChar bool
}

// Result reports every violated rule, in evaluation order: length,
// uppercase, number, special character.
type Result struct {
	Valid  bool
	Errors []string
}

// Validate checks a candidate password against every enabled rule. It never
// exits early; all violations are accumulated so the caller can report them
// together.
func Validate(pw string, p Policy) Result {
	var errs []string

	if p.MinLength > 0 && len(pw) < p.MinLength {
		errs = append(errs, fmt.Sprintf("password must be at least %d characters long", p.MinLength))
	}
	if p.RequireUppercase && !strings.ContainsFunc(pw, unicode.IsUpper) {
		errs = append(errs, "password must contain at least one uppercase letter")
	}
	if p.RequireNumber && !strings.ContainsFunc(pw, unicode.IsDigit) {
		errs = append(errs, "password must contain at least one number")
	}
	if p.RequireSpecialChar && !strings.ContainsAny(pw, specialChars) {
		errs = append(errs, "password must contain at least one special character")
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

// Match reports whether a password and its confirmation are identical.
func Match(pw, confirm string) bool {
	return pw == confirm
}
