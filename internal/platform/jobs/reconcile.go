package jobs

import (
	"context"
	"log/slog"
	"time"
)

type ProjectionReconciler interface {
	ReconcileProjections(ctx context.Context, defaultBranch string) (int, error)
}

// Service periodically repairs projection rows missing for existing
// employees (records that predate one of the projections, or partial
// state left by an out-of-band write).
type Service struct {
	store    ProjectionReconciler
	interval time.Duration
	branch   string
}

func New(store ProjectionReconciler, interval time.Duration, branch string) *Service {
	return &Service{store: store, interval: interval, branch: branch}
}

func (s *Service) Start(ctx context.Context) {
	if s.interval <= 0 {
		return
	}
	go s.loop(ctx)
}

func (s *Service) loop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.RunOnce(ctx); err != nil {
				slog.Warn("projection reconcile failed", "err", err)
			}
		}
	}
}

func (s *Service) RunOnce(ctx context.Context) (int, error) {
	created, err := s.store.ReconcileProjections(ctx, s.branch)
	if err != nil {
		return 0, err
	}
	if created > 0 {
		slog.Info("projection reconcile repaired rows", "created", created)
	}
	return created, nil
}
