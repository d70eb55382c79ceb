package application

import (
	"context"
	"time"

	repo "github.com/oksasatya/go-blog-api/internal/domain/repository"
)

type StatsService struct {
	Repo      repo.StatsRepository
	StartedAt time.Time
	now       func() time.Time
}

func NewStatsService(r repo.StatsRepository, startedAt time.Time) *StatsService {
	return &StatsService{Repo: r, StartedAt: startedAt, now: time.Now}
}

// Statistics reports process uptime in seconds plus table totals.
func (s *StatsService) Statistics(ctx context.Context) (*Statistics, error) {
	t, err := s.Repo.Totals(ctx)
	if err != nil {
		return nil, err
	}
	return &Statistics{
		Uptime:        s.now().Sub(s.StartedAt).Seconds(),
		TotalUsers:    t.Users,
		TotalPosts:    t.Posts,
		TotalComments: t.Comments,
	}, nil
}

func (s *StatsService) Ping(ctx context.Context) error {
	c, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.Repo.Ping(c)
}
