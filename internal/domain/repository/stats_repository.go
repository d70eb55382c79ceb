package repository

import "context"

type Totals struct {
	Users    int64
	Posts    int64
	Comments int64
}

// StatsRepository reports table-wide counts and database liveness.
type StatsRepository interface {
	Totals(ctx context.Context) (Totals, error)
	Ping(ctx context.Context) error
}
