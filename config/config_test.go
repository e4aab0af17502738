package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rizkypriyadi/authkit/pkg/constant"
)

// setupTestEnv moves the test into a temp directory so env files written by
// the test cannot collide with real ones. The returned cleanup restores the
// original working directory.
func setupTestEnv(t *testing.T) func() {
	t.Helper()

	tempDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tempDir, "config"), 0755))

	originalWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))

	return func() {
		_ = os.Chdir(originalWD)
	}
}

func createTempConfigFile(t *testing.T, filename, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join("config", filename), []byte(content), 0644))
}

func setRequiredEnvVars(t *testing.T) {
	t.Helper()
	t.Setenv("ACCESS_TOKEN_SECRET", "access_secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh_secret")
}

func TestLoad(t *testing.T) {
	t.Run("uses defaults when only secrets are set", func(t *testing.T) {
		cleanup := setupTestEnv(t)
		defer cleanup()
		setRequiredEnvVars(t)

		cfg := Load()

		assert.Equal(t, "development", cfg.Env)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, constant.DefaultAccessTokenExpirySec, cfg.AccessExpirySec)
		assert.Equal(t, constant.DefaultRefreshTokenExpirySec, cfg.RefreshExpirySec)
		assert.Equal(t, constant.DefaultBcryptRounds, cfg.BcryptRounds)
		assert.False(t, cfg.MfaEnabled)
		assert.Equal(t, constant.DefaultPasswordMinLength, cfg.PasswordMinLength)
		assert.True(t, cfg.PasswordRequireUppercase)
		assert.True(t, cfg.PasswordRequireNumber)
		assert.True(t, cfg.PasswordRequireSpecialChar)
	})

	t.Run("loads configuration from dev env file", func(t *testing.T) {
		cleanup := setupTestEnv(t)
		defer cleanup()

		createTempConfigFile(t, ".env.dev", `
PORT=3000
ACCESS_TOKEN_SECRET=dev_access_secret
REFRESH_TOKEN_SECRET=dev_refresh_secret
JWT_EXPIRES_IN=600
MFA_ENABLED=true
`)

		cfg := Load()

		assert.Equal(t, "3000", cfg.Port)
		assert.Equal(t, "dev_access_secret", cfg.AccessTokenSecret)
		assert.Equal(t, "dev_refresh_secret", cfg.RefreshTokenSecret)
		assert.Equal(t, 600, cfg.AccessExpirySec)
		assert.True(t, cfg.MfaEnabled)
		// Not present in the file, so the default applies.
		assert.Equal(t, constant.DefaultRefreshTokenExpirySec, cfg.RefreshExpirySec)
	})

	t.Run("environment overrides take precedence over defaults", func(t *testing.T) {
		cleanup := setupTestEnv(t)
		defer cleanup()
		setRequiredEnvVars(t)

		t.Setenv("BCRYPT_ROUNDS", "4")
		t.Setenv("PASSWORD_MIN_LENGTH", "12")
		t.Setenv("PASSWORD_REQUIRE_SPECIAL_CHAR", "false")

		cfg := Load()

		assert.Equal(t, 4, cfg.BcryptRounds)
		assert.Equal(t, 12, cfg.PasswordMinLength)
		assert.False(t, cfg.PasswordRequireSpecialChar)
	})

	t.Run("invalid numeric values fall back to defaults", func(t *testing.T) {
		cleanup := setupTestEnv(t)
		defer cleanup()
		setRequiredEnvVars(t)

		t.Setenv("JWT_EXPIRES_IN", "not-a-number")
		t.Setenv("MFA_ENABLED", "maybe")

		cfg := Load()

		assert.Equal(t, constant.DefaultAccessTokenExpirySec, cfg.AccessExpirySec)
		assert.False(t, cfg.MfaEnabled)
	})
}

func TestPasswordPolicy(t *testing.T) {
	cfg := &Config{
		PasswordMinLength:          10,
		PasswordRequireUppercase:   true,
		PasswordRequireNumber:      false,
		PasswordRequireSpecialChar: true,
	}

	p := cfg.PasswordPolicy()
	assert.Equal(t, 10, p.MinLength)
	assert.True(t, p.RequireUppercase)
	assert.False(t, p.RequireNumber)
	assert.True(t, p.RequireSpecialChar)
}
