package cache

import (
	"context"
	"sync"
	"time"
)

const defaultRefreshInterval = 2 * time.Second

// RefreshSignal is the cross-screen "refresh requested" flag. Any component
// that just performed a mutating action elsewhere raises it; the refresher
// consumes it once and the collection refetches, which is how a product
// edit on the detail screen becomes visible in the collection's totals.
type RefreshSignal struct {
	mu  sync.Mutex
	set bool
}

// Raise marks a refresh as requested. Redundant raises coalesce.
func (s *RefreshSignal) Raise() {
	s.mu.Lock()
	s.set = true
	s.mu.Unlock()
}

// Consume clears the flag and reports whether it was set.
func (s *RefreshSignal) Consume() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	was := s.set
	s.set = false
	return was
}

// StartRefresher launches a background goroutine that services the refresh
// signal at a fixed cadence, refetching the collection once per raise. It
// returns immediately.
func StartRefresher(ctx context.Context, signal *RefreshSignal, collection *Collection, interval time.Duration) {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			if signal.Consume() {
				collection.Refetch(ctx)
			}
		}
	}()
}
