package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/rizkypriyadi/authkit/internal/auth/service TokenGenerator

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rizkypriyadi/authkit/internal/auth/domain"
	autherror "github.com/rizkypriyadi/authkit/internal/errors"
)

type TokenGenerator interface {
	Issue(user *domain.User, secret string, ttl time.Duration) (string, error)
	Verify(tokenString, secret string) (*JWTCustomClaims, error)
	IssuePair(user *domain.User) (domain.TokenPair, error)
	VerifyAccess(tokenString string) (*JWTCustomClaims, error)
}

// TokenService signs and checks session tokens. Tokens are opaque to every
// other component; nothing outside this file parses their structure.
type TokenService struct {
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

type JWTCustomClaims struct {
	jwt.RegisteredClaims
	UserID string      `json:"user_id"`
	Email  string      `json:"email"`
	Name   string      `json:"name"`
	Role   domain.Role `json:"role"`
}

// Identity reconstructs the claim subset of the identity the token was
// issued for.
func (c *JWTCustomClaims) Identity() *domain.User {
	return &domain.User{
		ID:    c.UserID,
		Email: c.Email,
		Name:  c.Name,
		Role:  c.Role,
	}
}

func NewTokenService(accessSecret, refreshSecret string, accessSeconds, refreshSeconds int) *TokenService {
	return &TokenService{
		AccessTokenSecret:  accessSecret,
		RefreshTokenSecret: refreshSecret,
		AccessTokenExpiry:  time.Duration(accessSeconds) * time.Second,
		RefreshTokenExpiry: time.Duration(refreshSeconds) * time.Second,
	}
}

// Issue signs a token for user with the given secret and lifetime.
func (ts *TokenService) Issue(user *domain.User, secret string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := JWTCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return token, nil
}

// Verify recomputes the signature and checks the expiry. Any failure, from a
// malformed token to a wrong secret, comes back as an error with nil claims;
// callers decide whether to log it.
func (ts *TokenService) Verify(tokenString, secret string) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, autherror.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", autherror.ErrTokenInvalid, err)
	}

	if !token.Valid {
		return nil, autherror.ErrTokenInvalid
	}

	return claims, nil
}

// IssuePair issues the access and refresh tokens independently, each under
// its own secret, so one compromised token type does not expose the other.
func (ts *TokenService) IssuePair(user *domain.User) (domain.TokenPair, error) {
	accessToken, err := ts.Issue(user, ts.AccessTokenSecret, ts.AccessTokenExpiry)
	if err != nil {
		return domain.TokenPair{}, err
	}

	refreshToken, err := ts.Issue(user, ts.RefreshTokenSecret, ts.RefreshTokenExpiry)
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(ts.AccessTokenExpiry / time.Second),
	}, nil
}

// VerifyAccess checks a token against the access secret.
func (ts *TokenService) VerifyAccess(tokenString string) (*JWTCustomClaims, error) {
	return ts.Verify(tokenString, ts.AccessTokenSecret)
}

// ExtractBearer pulls the token out of an Authorization header value.
// It returns "" when the header is missing or not a bearer scheme.
func ExtractBearer(authHeader string) string {
	const prefix = "Bearer "
	if len(authHeader) <= len(prefix) || authHeader[:len(prefix)] != prefix {
		return ""
	}
	return authHeader[len(prefix):]
}
