package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/rizkypriyadi/authkit/internal/auth/password"
	"github.com/rizkypriyadi/authkit/pkg/constant"
)

type Config struct {
	Env  string
	Port string

	DBURL       string
	RedisAddr   string
	SessionFile string

	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessExpirySec    int
	RefreshExpirySec   int

	BcryptRounds int
	MfaEnabled   bool

	PasswordMinLength          int
	PasswordRequireUppercase   bool
	PasswordRequireNumber      bool
	PasswordRequireSpecialChar bool
}

// Load reads config/.env.<env> if present, then resolves every option from
// the environment. The two token secrets are required; everything else has
// a default.
func Load() *Config {
	env := getEnv("ENV", "development")
	loadEnvFile(env)

	return &Config{
		Env:                env,
		Port:               getEnv("PORT", "8080"),
		DBURL:              getEnv("DB_URL", ""),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		SessionFile:        getEnv("SESSION_FILE", ".authkit_session.json"),
		AccessTokenSecret:  mustGetEnv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: mustGetEnv("REFRESH_TOKEN_SECRET"),
		AccessExpirySec:    getEnvAsInt("JWT_EXPIRES_IN", constant.DefaultAccessTokenExpirySec),
		RefreshExpirySec:   getEnvAsInt("REFRESH_TOKEN_EXPIRES_IN", constant.DefaultRefreshTokenExpirySec),

		BcryptRounds: getEnvAsInt("BCRYPT_ROUNDS", constant.DefaultBcryptRounds),
		MfaEnabled:   getEnvAsBool("MFA_ENABLED", false),

		PasswordMinLength:          getEnvAsInt("PASSWORD_MIN_LENGTH", constant.DefaultPasswordMinLength),
		PasswordRequireUppercase:   getEnvAsBool("PASSWORD_REQUIRE_UPPERCASE", true),
		PasswordRequireNumber:      getEnvAsBool("PASSWORD_REQUIRE_NUMBER", true),
		PasswordRequireSpecialChar: getEnvAsBool("PASSWORD_REQUIRE_SPECIAL_CHAR", true),
	}
}

// PasswordPolicy assembles the policy engine's rule set from the loaded
// options.
func (c *Config) PasswordPolicy() password.Policy {
	return password.Policy{
		MinLength:          c.PasswordMinLength,
		RequireUppercase:   c.PasswordRequireUppercase,
		RequireNumber:      c.PasswordRequireNumber,
		RequireSpecialChar: c.PasswordRequireSpecialChar,
	}
}

func loadEnvFile(env string) {
	name := ".env.dev"
	if env == "production" {
		name = ".env.prod"
	}
	for _, path := range []string{fmt.Sprintf("config/%s", name), name} {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				log.Printf("could not load %s: %v", path, err)
			}
			return
		}
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}

func getEnvAsBool(key string, defaultVal bool) bool {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %t", key, defaultVal)
		return defaultVal
	}
	return val
}
