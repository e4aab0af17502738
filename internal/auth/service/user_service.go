package service

//go:generate mockgen -destination=../../mocks/mock_credential_store.go -package=mocks github.com/rizkypriyadi/authkit/internal/auth/domain CredentialStore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/rizkypriyadi/authkit/config"
	"github.com/rizkypriyadi/authkit/internal/auth/domain"
	"github.com/rizkypriyadi/authkit/internal/auth/dto"
	"github.com/rizkypriyadi/authkit/internal/auth/password"
	autherror "github.com/rizkypriyadi/authkit/internal/errors"
)

// CodeVerifier checks a second-factor code. Code generation and delivery
// live outside this service.
type CodeVerifier interface {
	VerifyCode(code string) bool
}

// UserService composes the credential store, the policy engine and the token
// codec into the login and registration transactions. Neither operation
// leaves partial observable effects behind on failure.
type UserService struct {
	store    domain.CredentialStore
	tokens   TokenGenerator
	cfg      *config.Config
	verifier CodeVerifier
	logger   zerolog.Logger
}

func NewUserService(store domain.CredentialStore, tokens TokenGenerator, cfg *config.Config,
	verifier CodeVerifier, logger zerolog.Logger) *UserService {
	return &UserService{
		store:    store,
		tokens:   tokens,
		cfg:      cfg,
		verifier: verifier,
		logger:   logger,
	}
}

// Login authenticates an email/password pair and issues a token pair. The
// returned identity carries no password hash. bcrypt's comparison is
// constant-time, so a mismatch never short-circuits on the first differing
// byte.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.LoginOutput, error) {
	user, err := s.store.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", autherror.ErrNetwork, err)
	}
	if user == nil {
		return nil, autherror.ErrUserNotFound
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, autherror.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, autherror.ErrUserInactive
	}

	if s.cfg.MfaEnabled {
		if input.MfaCode == "" {
			return nil, autherror.ErrMfaRequired
		}
		if s.verifier == nil || !s.verifier.VerifyCode(input.MfaCode) {
			return nil, autherror.ErrMfaInvalid
		}
	}

	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, fmt.Errorf("issue token pair: %w", err)
	}

	now := time.Now()
	if err := s.store.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to stamp last login")
	} else {
		user.LastLoginAt = &now
	}

	return &dto.LoginOutput{
		User:   dto.NewUserOutput(user),
		Tokens: pair,
	}, nil
}

// Register validates and persists a new identity. It does not log the user
// in; that is the caller's decision.
func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*dto.UserOutput, error) {
	if !password.Match(input.Password, input.ConfirmPassword) {
		return nil, autherror.ErrPasswordMismatch
	}

	if res := password.Validate(input.Password, s.cfg.PasswordPolicy()); !res.Valid {
		return nil, &autherror.WeakPasswordError{Violations: res.Errors}
	}

	existing, err := s.store.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", autherror.ErrNetwork, err)
	}
	if existing != nil {
		return nil, autherror.ErrEmailAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.BcryptRounds)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        input.Email,
		Name:         input.Name,
		Role:         domain.RoleUser,
		IsActive:     true,
		PasswordHash: string(hashed),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The store's unique constraint is authoritative; the lookup above is
	// only advisory.
	if err := s.store.Create(ctx, user); err != nil {
		return nil, err
	}

	return dto.NewUserOutput(user), nil
}

// VerifyToken echoes the identity an access token was issued for, or nil
// when the token is not acceptable.
func (s *UserService) VerifyToken(tokenString string) *domain.User {
	claims, err := s.tokens.VerifyAccess(tokenString)
	if err != nil {
		s.logger.Debug().Err(err).Msg("token verification failed")
		return nil
	}
	return claims.Identity()
}
