package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/rizkypriyadi/authkit/config"
	"github.com/rizkypriyadi/authkit/db"
	"github.com/rizkypriyadi/authkit/internal/auth/domain"
	"github.com/rizkypriyadi/authkit/internal/auth/handler"
	"github.com/rizkypriyadi/authkit/internal/auth/repository/memory"
	repo "github.com/rizkypriyadi/authkit/internal/auth/repository/postgres"
	"github.com/rizkypriyadi/authkit/internal/auth/session"
	"github.com/rizkypriyadi/authkit/internal/auth/service"
	"github.com/rizkypriyadi/authkit/internal/log"
)

func main() {
	cfg := config.Load()
	logger := log.New(cfg.Env)
	ctx := context.Background()

	var credStore domain.CredentialStore
	if cfg.DBURL != "" {
		pool, err := db.NewPostgresPool(ctx, cfg.DBURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect postgres")
		}
		defer pool.Close()
		credStore = repo.NewPostgresRepository(pool)
	} else {
		logger.Warn().Msg("no DB_URL set, using in-memory credential store")
		credStore = memory.NewStore()
	}

	var sessStore domain.SessionStore
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Msg("failed to connect redis")
		}
		sessStore = session.NewRedisStore(client, "authkit:session")
	} else {
		sessStore = session.NewFileStore(cfg.SessionFile)
	}

	tokenService := service.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
		cfg.AccessExpirySec, cfg.RefreshExpirySec)
	userService := service.NewUserService(credStore, tokenService, cfg, nil, logger)

	sessionManager := session.NewManager(sessStore, logger)
	sessionManager.Restore(ctx)
	if st := sessionManager.State(); st.IsAuthenticated {
		logger.Info().Str("email", st.User.Email).Msg("restored previous session")
	}

	authHandler := handler.NewAuthHandler(userService)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler)

	logger.Info().Str("port", cfg.Port).Msg("listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
