package services

import (
	"context"
	"log/slog"
	"time"
)

// SweeperService evicts sessions whose page view has gone quiet.
type SweeperService struct {
	Sessions *SessionService
	TTL      time.Duration
	Interval time.Duration
}

func NewSweeperService(sessions *SessionService, ttl, interval time.Duration) *SweeperService {
	return &SweeperService{
		Sessions: sessions,
		TTL:      ttl,
		Interval: interval,
	}
}

// Run sweeps on every tick until ctx is done.
func (s *SweeperService) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	slog.Info("session sweeper started", "ttl", s.TTL.String(), "interval", s.Interval.String())
	for {
		select {
		case <-ctx.Done():
			slog.Info("session sweeper stopped")
			return nil
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *SweeperService) Sweep() int {
	n := s.Sessions.EvictIdle(s.TTL)
	if n > 0 {
		slog.Info("idle sessions evicted", "count", n, "remaining", s.Sessions.Len())
	}
	return n
}
