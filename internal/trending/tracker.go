package trending

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/forkcast-app/forkcast/internal/events"
	"github.com/forkcast-app/forkcast/internal/store"
)

// Tracker periodically recomputes the set of trending restaurants (most
// rated within the lookback window) and publishes catalog stats. The
// current set is served from memory so scoring calls never touch the
// database for it.
type Tracker struct {
	store    store.Store
	events   events.Client
	interval time.Duration
	window   time.Duration
	limit    int
	logger   *slog.Logger

	mu  sync.RWMutex
	ids map[string]bool

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func New(s store.Store, ev events.Client, interval, window time.Duration, limit int, logger *slog.Logger) *Tracker {
	return &Tracker{
		store:    s,
		events:   ev,
		interval: interval,
		window:   window,
		limit:    limit,
		logger:   logger,
		ids:      make(map[string]bool),
		stopCh:   make(chan struct{}),
	}
}

func (t *Tracker) Start(ctx context.Context) {
	t.wg.Add(1)
	go t.loop(ctx)
}

func (t *Tracker) Stop() {
	t.stopOnce.Do(func() { close(t.stopCh) })
	t.wg.Wait()
}

// IDs returns the current trending set.
func (t *Tracker) IDs() map[string]bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]bool, len(t.ids))
	for id := range t.ids {
		out[id] = true
	}
	return out
}

func (t *Tracker) loop(ctx context.Context) {
	defer t.wg.Done()
	t.refresh(ctx)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.refresh(ctx)
		}
	}
}

func (t *Tracker) refresh(ctx context.Context) {
	since := time.Now().Add(-t.window)
	ids, err := t.store.TrendingRestaurantIDs(ctx, since, t.limit)
	if err != nil {
		t.logger.Error("failed to refresh trending restaurants", "error", err)
		return
	}

	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}

	t.mu.Lock()
	t.ids = set
	t.mu.Unlock()
	t.logger.Info("trending set refreshed", "count", len(set))

	t.publishStats(ctx)
}

func (t *Tracker) publishStats(ctx context.Context) {
	if t.events == nil {
		return
	}
	stats, err := t.store.GetStats(ctx)
	if err != nil {
		t.logger.Warn("failed to load stats for publish", "error", err)
		return
	}
	_ = t.events.Publish(events.SubjectDiningStats, events.StatsEvent{
		Profiles:    stats.TotalProfiles,
		Restaurants: stats.TotalRestaurants,
		Ratings:     stats.TotalRatings,
		AvgRating:   stats.AvgRating,
		Timestamp:   time.Now(),
	})
}
