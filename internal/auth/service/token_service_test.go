package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rizkypriyadi/authkit/internal/auth/domain"
	autherror "github.com/rizkypriyadi/authkit/internal/errors"
)

func testUser() *domain.User {
	return &domain.User{
		ID:       "user-1",
		Email:    "admin@example.com",
		Name:     "Admin User",
		Role:     domain.RoleAdmin,
		IsActive: true,
	}
}

func TestNewTokenService(t *testing.T) {
	ts := NewTokenService("access-secret", "refresh-secret", 3600, 604800)

	assert.Equal(t, "access-secret", ts.AccessTokenSecret)
	assert.Equal(t, "refresh-secret", ts.RefreshTokenSecret)
	assert.Equal(t, time.Hour, ts.AccessTokenExpiry)
	assert.Equal(t, 7*24*time.Hour, ts.RefreshTokenExpiry)
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	ts := NewTokenService("access-secret", "refresh-secret", 3600, 604800)
	user := testUser()

	token, err := ts.Issue(user, "access-secret", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ts.Verify(token, "access-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Name, claims.Name)
	assert.Equal(t, user.Role, claims.Role)

	identity := claims.Identity()
	assert.Equal(t, user.ID, identity.ID)
	assert.Equal(t, user.Email, identity.Email)
	assert.Empty(t, identity.PasswordHash)
}

func TestTokenService_Verify_WrongSecret(t *testing.T) {
	ts := NewTokenService("access-secret", "refresh-secret", 3600, 604800)

	token, err := ts.Issue(testUser(), "secret-one", time.Hour)
	require.NoError(t, err)

	claims, err := ts.Verify(token, "secret-two")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, autherror.ErrTokenInvalid)
}

func TestTokenService_Verify_Expired(t *testing.T) {
	ts := NewTokenService("access-secret", "refresh-secret", 3600, 604800)

	token, err := ts.Issue(testUser(), "access-secret", -time.Minute)
	require.NoError(t, err)

	claims, err := ts.Verify(token, "access-secret")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, autherror.ErrTokenExpired)
}

func TestTokenService_Verify_Malformed(t *testing.T) {
	ts := NewTokenService("access-secret", "refresh-secret", 3600, 604800)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-jwt"},
		{name: "truncated", token: "eyJhbGciOiJIUzI1NiJ9.eyJmb28iOiJiYXIifQ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ts.Verify(tt.token, "access-secret")
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, autherror.ErrTokenInvalid)
		})
	}
}

// Tokens signed with a non-HMAC algorithm must be rejected even when the
// signature would otherwise parse.
func TestTokenService_Verify_WrongAlgorithm(t *testing.T) {
	ts := NewTokenService("access-secret", "refresh-secret", 3600, 604800)

	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": "user-1",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	claims, err := ts.Verify(token, "access-secret")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, autherror.ErrTokenInvalid)
}

func TestTokenService_IssuePair(t *testing.T) {
	ts := NewTokenService("access-secret", "refresh-secret", 3600, 604800)
	user := testUser()

	pair, err := ts.IssuePair(user)
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, 3600, pair.ExpiresIn)

	// Each token verifies only under its own secret.
	_, err = ts.Verify(pair.AccessToken, "access-secret")
	assert.NoError(t, err)
	_, err = ts.Verify(pair.AccessToken, "refresh-secret")
	assert.Error(t, err)

	_, err = ts.Verify(pair.RefreshToken, "refresh-secret")
	assert.NoError(t, err)
	_, err = ts.Verify(pair.RefreshToken, "access-secret")
	assert.Error(t, err)
}

func TestTokenService_VerifyAccess(t *testing.T) {
	ts := NewTokenService("access-secret", "refresh-secret", 3600, 604800)

	pair, err := ts.IssuePair(testUser())
	require.NoError(t, err)

	claims, err := ts.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestExtractBearer(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "valid", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "empty header", header: "", want: ""},
		{name: "no scheme", header: "abc.def.ghi", want: ""},
		{name: "wrong scheme", header: "Basic abc", want: ""},
		{name: "scheme only", header: "Bearer ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractBearer(tt.header))
		})
	}
}
