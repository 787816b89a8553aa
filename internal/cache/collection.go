package cache

import (
	"context"
	"log/slog"
	"sync"

	"github.com/carlosbandelli/superlist/internal/api"
)

// ListService is the slice of the API client the collection cache uses.
type ListService interface {
	ListLists(ctx context.Context) ([]api.ListSummary, error)
	DeleteList(ctx context.Context, id int64) error
}

// Collection caches the user's lists. It owns the ordering guarantee for
// concurrent refetches: every fetch is issued under a monotonically
// increasing sequence number and a response is applied only while its
// sequence is still the latest issued, so an earlier fetch whose response
// arrives late can never overwrite a newer one.
type Collection struct {
	svc     ListService
	token   api.TokenSource
	retries int
	logger  *slog.Logger

	mu    sync.Mutex
	phase Phase
	lists []api.ListSummary
	err   error
	seq   uint64
}

// CollectionSnapshot is an immutable view of the collection cache.
type CollectionSnapshot struct {
	Phase Phase
	Lists []api.ListSummary
	Err   error
}

// NewCollection creates an empty collection cache. token gates fetching:
// while it yields no token the cache issues no requests.
func NewCollection(svc ListService, token api.TokenSource, retries int, logger *slog.Logger) *Collection {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collection{svc: svc, token: token, retries: retries, logger: logger}
}

// Snapshot returns the current phase and a copy of the lists.
func (c *Collection) Snapshot() CollectionSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return CollectionSnapshot{Phase: c.phase, Lists: cloneLists(c.lists), Err: c.err}
}

// Refetch runs a fetch unconditionally, superseding any in-flight fetch
// (last refetch wins). It blocks for the duration of the request and is
// meant to be run from its own goroutine or a tea.Cmd. Without a session
// token it is a no-op and the cache stays in its current state.
func (c *Collection) Refetch(ctx context.Context) {
	if _, ok := c.token(); !ok {
		return
	}

	seq := c.begin()

	var lists []api.ListSummary
	err := retryFetch(ctx, c.retries, func(ctx context.Context) error {
		fetched, err := c.svc.ListLists(ctx)
		if err != nil {
			return err
		}
		lists = fetched
		return nil
	})
	c.apply(seq, lists, err)
}

func (c *Collection) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.phase = PhaseLoading
	return c.seq
}

func (c *Collection) apply(seq uint64, lists []api.ListSummary, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		// A newer refetch was issued while this one was in flight.
		c.logger.Debug("discarding superseded list fetch", "seq", seq, "latest", c.seq)
		return
	}
	if err != nil {
		c.logger.Warn("list fetch failed", "error", err)
		c.phase = PhaseError
		c.err = err
		return
	}
	c.lists = lists
	c.phase = PhaseReady
	c.err = nil
}

// ApplyDelete removes the list with the given id optimistically, issues the
// remote delete, then refetches to reconcile against server truth whether or
// not the delete succeeded. The returned error is the delete's outcome.
func (c *Collection) ApplyDelete(ctx context.Context, id int64) error {
	c.mu.Lock()
	kept := c.lists[:0:0]
	for _, list := range c.lists {
		if list.ID != id {
			kept = append(kept, list)
		}
	}
	c.lists = kept
	c.mu.Unlock()

	return c.Mutate(ctx, func(ctx context.Context) error {
		return c.svc.DeleteList(ctx, id)
	})
}

// ApplyUpdate merges a server-confirmed summary into the collection in
// place, preserving order. Unknown ids are ignored; the follow-up refetch
// owns reconciliation for those.
func (c *Collection) ApplyUpdate(updated api.ListSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lists {
		if c.lists[i].ID == updated.ID {
			c.lists[i] = updated
			return
		}
	}
}

// Mutate is the generic mutate-then-reconcile primitive: it performs fn,
// then unconditionally refetches this scope so the view returns to server
// truth even when the mutation failed. fn's error is returned as-is and
// never retried.
func (c *Collection) Mutate(ctx context.Context, fn func(context.Context) error) error {
	err := fn(ctx)
	c.Refetch(ctx)
	return err
}

func cloneLists(lists []api.ListSummary) []api.ListSummary {
	if len(lists) == 0 {
		return nil
	}
	dup := make([]api.ListSummary, len(lists))
	copy(dup, lists)
	return dup
}
