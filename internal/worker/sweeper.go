package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/metrics"
	repo "github.com/fintrackhq/fintrack-backend/internal/repository"
)

// Sweeper is the one scheduled background job: it deletes refresh-token rows
// that expired more than a day ago. Logout only soft-revokes, so rows pile up
// without it.
type Sweeper struct {
	tokens   repo.RefreshTokens
	interval time.Duration
	log      *slog.Logger
}

func NewSweeper(tokens repo.RefreshTokens, log *slog.Logger) *Sweeper {
	return &Sweeper{tokens: tokens, interval: 24 * time.Hour, log: log}
}

// Run blocks until ctx is done. Call in its own goroutine.
func (s *Sweeper) Run(ctx context.Context) {
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	n, err := s.tokens.DeleteExpired(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		s.log.Error("token sweep", "err", err)
		return
	}
	metrics.TokensSwept.Add(float64(n))
	if n > 0 {
		s.log.Info("token sweep", "deleted", n)
	}
}
