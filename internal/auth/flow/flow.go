package flow

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rizkypriyadi/authkit/internal/auth/dto"
	"github.com/rizkypriyadi/authkit/internal/auth/session"
	autherror "github.com/rizkypriyadi/authkit/internal/errors"
)

// Authenticator is the slice of the user service the flows drive.
type Authenticator interface {
	Login(ctx context.Context, input dto.LoginInput) (*dto.LoginOutput, error)
	Register(ctx context.Context, input dto.RegisterInput) (*dto.UserOutput, error)
}

// Flows wraps the orchestrator's operations with the session bookkeeping a
// UI expects: loading is set for the duration of a call and cleared on every
// exit path, failures land in the session's error field, and a second call
// while one is outstanding is rejected rather than racing the persisted
// state.
type Flows struct {
	svc     Authenticator
	session *session.Manager
	logger  zerolog.Logger
	mu      sync.Mutex
}

func NewFlows(svc Authenticator, sess *session.Manager, logger zerolog.Logger) *Flows {
	return &Flows{svc: svc, session: sess, logger: logger}
}

// Login authenticates and, on success, commits the new session. The commit
// persists before the in-memory state flips.
func (f *Flows) Login(ctx context.Context, input dto.LoginInput) error {
	if !f.mu.TryLock() {
		return autherror.ErrOperationInProgress
	}
	defer f.mu.Unlock()

	f.session.SetError("")
	f.session.SetLoading(true)
	defer f.session.SetLoading(false)

	out, err := f.svc.Login(ctx, input)
	if err != nil {
		f.logger.Debug().Err(err).Str("email", input.Email).Msg("login failed")
		f.session.SetError(UserMessage(err))
		return err
	}

	if err := f.session.CommitLogin(ctx, out.Tokens, out.User.Domain()); err != nil {
		f.logger.Error().Err(err).Msg("could not persist session")
		f.session.SetError(UserMessage(autherror.ErrUnknown))
		return err
	}

	return nil
}

// Register creates the account but does not log it in.
func (f *Flows) Register(ctx context.Context, input dto.RegisterInput) (*dto.UserOutput, error) {
	if !f.mu.TryLock() {
		return nil, autherror.ErrOperationInProgress
	}
	defer f.mu.Unlock()

	f.session.SetError("")
	f.session.SetLoading(true)
	defer f.session.SetLoading(false)

	out, err := f.svc.Register(ctx, input)
	if err != nil {
		f.logger.Debug().Err(err).Str("email", input.Email).Msg("registration failed")
		f.session.SetError(UserMessage(err))
		return nil, err
	}

	return out, nil
}

// Logout clears the persisted session and resets the state.
func (f *Flows) Logout(ctx context.Context) {
	f.session.CommitLogout(ctx)
}

// UserMessage maps an error to text safe to show a user.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, autherror.ErrUserNotFound),
		errors.Is(err, autherror.ErrInvalidCredentials):
		return "Invalid email or password."
	case errors.Is(err, autherror.ErrUserInactive):
		return "This account has been deactivated."
	case errors.Is(err, autherror.ErrMfaRequired):
		return "A verification code is required."
	case errors.Is(err, autherror.ErrMfaInvalid):
		return "The verification code is not valid."
	case errors.Is(err, autherror.ErrEmailAlreadyExists):
		return "An account with this email already exists."
	case errors.Is(err, autherror.ErrPasswordMismatch):
		return "Passwords do not match."
	case errors.Is(err, autherror.ErrOperationInProgress):
		return "Another attempt is already in progress."
	case errors.Is(err, autherror.ErrNetwork):
		return "Could not reach the server. Try again."
	}

	if wpe, ok := autherror.AsWeakPassword(err); ok {
		return strings.Join(wpe.Violations, " ")
	}

	return "Something went wrong. Try again."
}
