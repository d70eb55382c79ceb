package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/internal/domain/repository"
)

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) Totals(ctx context.Context) (repository.Totals, error) {
	var t repository.Totals
	tx := r.db.WithContext(ctx)
	if err := tx.Model(&entity.User{}).Count(&t.Users).Error; err != nil {
		return t, err
	}
	if err := tx.Model(&entity.Post{}).Count(&t.Posts).Error; err != nil {
		return t, err
	}
	if err := tx.Model(&entity.Comment{}).Count(&t.Comments).Error; err != nil {
		return t, err
	}
	return t, nil
}

func (r *StatsRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

var _ repository.StatsRepository = (*StatsRepository)(nil)
