// Package container holds the infrastructure built once at startup. The
// router wires services and handlers from it.
package container

import (
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/oksasatya/go-blog-api/config"
	"github.com/oksasatya/go-blog-api/pkg/helpers"
)

// Container is passed by pointer into the router. Optional clients are nil
// when their config is empty and the matching feature switches off.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	Pool *pgxpool.Pool
	DB   *gorm.DB

	Redis  *redis.Client
	GCS    *storage.Client
	ES     *elasticsearch.Client
	Rabbit *helpers.RabbitPublisher

	JWT       *helpers.JWTManager
	StartedAt time.Time
}

func New(cfg *config.Config, logger *logrus.Logger, db *gorm.DB) *Container {
	return &Container{
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		JWT:       helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL, cfg.JWTIssuer),
		StartedAt: time.Now(),
	}
}

// Close releases every client that was opened. The pool goes last.
func (c *Container) Close() {
	if c.Rabbit != nil {
		c.Rabbit.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.GCS != nil {
		_ = c.GCS.Close()
	}
	if c.DB != nil {
		if sqlDB, err := c.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
}
