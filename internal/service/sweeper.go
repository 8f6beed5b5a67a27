package service

import (
	"context"
	"time"

	"github.com/sessionforge/authcore/internal/logger"
	"github.com/sessionforge/authcore/internal/model"
)

// Sweeper periodically deletes expired sessions. Lazy reaping in
// GetByToken keeps reads correct on its own; the sweeper only bounds how
// long dead rows linger.
type Sweeper struct {
	sessions model.SessionStore
	interval time.Duration
	logger   *logger.Logger
	now      func() time.Time
}

func NewSweeper(sessions model.SessionStore, interval time.Duration, logger *logger.Logger) *Sweeper {
	return &Sweeper{
		sessions: sessions,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Run sweeps on every tick until ctx is cancelled. Sweep failures are
// logged and the loop keeps going; a transient storage error should not
// stop future sweeps.
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			count, err := s.sessions.SweepExpired(ctx, s.now())
			if err != nil {
				s.logger.Error("Sweeper: failed to sweep expired sessions",
					"error", err.Error())
				continue
			}
			if count > 0 {
				s.logger.Info("Sweeper: swept expired sessions",
					"count", count)
			}
		}
	}
}
