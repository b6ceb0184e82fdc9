package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/five82/pantry/grocy"
	"github.com/five82/pantry/internal/state"
)

const (
	defaultPollInterval = 5 * time.Second
	maxBackoff          = 30 * time.Second
)

// StartPoller launches a background goroutine that refreshes the store. It
// returns immediately; the first refresh happens right away and the
// goroutine exits when ctx is cancelled. Failed refreshes back off
// exponentially.
func StartPoller(ctx context.Context, store *state.Store, g *grocy.Grocy, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	go func() {
		failures := 0
		for {
			if err := refresh(ctx, store, g); err != nil {
				if ctx.Err() != nil {
					return
				}
				failures++
				logger.Warn("refresh failed", zap.Error(err), zap.Int("failures", failures))
			} else {
				failures = 0
			}

			timer := time.NewTimer(calculateBackoff(failures, interval))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff (or base, when base is already longer).
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	limit := maxBackoff
	if base > limit {
		limit = base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= limit {
			return limit
		}
	}
	return d
}

// refresh asks Grocy whether its database changed since the stored overview
// and reloads everything only when it did.
func refresh(ctx context.Context, store *state.Store, g *grocy.Grocy) error {
	changed, err := g.LastDBChanged(ctx)
	if err != nil {
		err = fmt.Errorf("db changed time: %w", err)
		store.Update(nil, err)
		return err
	}

	snap := store.Snapshot()
	if snap.HasData && !changed.IsZero() && changed.Equal(snap.Overview.DBChanged) {
		store.Update(&snap.Overview, nil)
		return nil
	}

	overview, err := loadOverview(ctx, g)
	if err != nil {
		store.Update(nil, err)
		return err
	}
	overview.DBChanged = changed
	store.Update(overview, nil)
	return nil
}

func loadOverview(ctx context.Context, g *grocy.Grocy) (*state.Overview, error) {
	var (
		ov  state.Overview
		err error
	)
	if ov.Stock, err = g.Stock(ctx); err != nil {
		return nil, fmt.Errorf("load stock: %w", err)
	}
	if ov.Due, err = g.DueProducts(ctx, false); err != nil {
		return nil, fmt.Errorf("load due products: %w", err)
	}
	if ov.Overdue, err = g.OverdueProducts(ctx, false); err != nil {
		return nil, fmt.Errorf("load overdue products: %w", err)
	}
	if ov.Expired, err = g.ExpiredProducts(ctx, false); err != nil {
		return nil, fmt.Errorf("load expired products: %w", err)
	}
	if ov.Missing, err = g.MissingProducts(ctx, false); err != nil {
		return nil, fmt.Errorf("load missing products: %w", err)
	}
	if ov.Chores, err = g.Chores(ctx, false, nil); err != nil {
		return nil, fmt.Errorf("load chores: %w", err)
	}
	if ov.Tasks, err = g.Tasks(ctx, nil); err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	if ov.Batteries, err = g.Batteries(ctx, true, nil); err != nil {
		return nil, fmt.Errorf("load batteries: %w", err)
	}
	if ov.Shopping, err = g.ShoppingList(ctx, true, nil); err != nil {
		return nil, fmt.Errorf("load shopping list: %w", err)
	}
	return &ov, nil
}
