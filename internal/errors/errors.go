package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserInactive        = errors.New("user is inactive")
	ErrTokenExpired        = errors.New("token expired")
	ErrTokenInvalid        = errors.New("token invalid")
	ErrMfaRequired         = errors.New("mfa code required")
	ErrMfaInvalid          = errors.New("mfa code invalid")
	ErrEmailAlreadyExists  = errors.New("email already in use")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrOperationInProgress = errors.New("operation already in progress")
	ErrNetwork             = errors.New("network error")
	ErrUnknown             = errors.New("unknown error")
)

// WeakPasswordError carries every policy violation for a rejected password,
// in the order the rules were evaluated.
type WeakPasswordError struct {
	Violations []string
}

func (e *WeakPasswordError) Error() string {
	return fmt.Sprintf("password too weak: %s", strings.Join(e.Violations, ", "))
}

// AsWeakPassword returns the WeakPasswordError inside err, if any.
func AsWeakPassword(err error) (*WeakPasswordError, bool) {
	var wpe *WeakPasswordError
	if errors.As(err, &wpe) {
		return wpe, true
	}
	return nil, false
}
