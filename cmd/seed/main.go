package main

import (
	"context"
	"errors"
	"log"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-api/config"
	"github.com/oksasatya/go-blog-api/internal/application"
	"github.com/oksasatya/go-blog-api/internal/domain/errs"
	pginfra "github.com/oksasatya/go-blog-api/internal/infrastructure/postgres"
	"github.com/oksasatya/go-blog-api/pkg/helpers"
)

// seed creates the first admin account. Running it again is a no-op.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 1, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	db, err := pginfra.OpenGorm(pool, logger)
	if err != nil {
		log.Fatalf("failed to open gorm: %v", err)
	}

	users := application.NewUserService(pginfra.NewUserRepository(db), logger, cfg.BcryptCost)
	u, err := users.Create(ctx, application.CreateUserInput{
		Email:    cfg.SeedAdminEmail,
		Name:     cfg.SeedAdminName,
		Password: cfg.SeedAdminPassword,
		IsAdmin:  true,
	})
	if errors.Is(err, errs.ErrConflict) {
		logger.WithField("email", cfg.SeedAdminEmail).Info("admin already seeded")
		return
	}
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	logger.WithFields(logrus.Fields{"id": u.ID, "email": u.Email}).Info("seeded admin user")
}
