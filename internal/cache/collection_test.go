package cache

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosbandelli/superlist/internal/api"
)

// fakeListService scripts ListLists responses and records calls.
type fakeListService struct {
	mu        sync.Mutex
	responses []listResponse
	calls     int
	deleted   []int64
	deleteErr error

	// release, when non-nil, is waited on before answering the first call;
	// started is closed when that call enters. Used to hold a fetch in
	// flight while a newer one completes.
	release chan struct{}
	started chan struct{}
}

type listResponse struct {
	lists []api.ListSummary
	err   error
}

func (f *fakeListService) ListLists(ctx context.Context) ([]api.ListSummary, error) {
	f.mu.Lock()
	call := f.calls
	f.calls++
	release := f.release
	var resp listResponse
	if call < len(f.responses) {
		resp = f.responses[call]
	} else if len(f.responses) > 0 {
		resp = f.responses[len(f.responses)-1]
	}
	f.mu.Unlock()

	if release != nil && call == 0 {
		if f.started != nil {
			close(f.started)
		}
		<-release
	}
	return resp.lists, resp.err
}

func (f *fakeListService) DeleteList(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func withToken() api.TokenSource { return func() (string, bool) { return "tok", true } }
func noToken() api.TokenSource   { return func() (string, bool) { return "", false } }
func named(s string) *string     { return &s }

func TestCollection_NoTokenFetchIsNoOp(t *testing.T) {
	svc := &fakeListService{responses: []listResponse{{lists: []api.ListSummary{{ID: 1}}}}}
	c := NewCollection(svc, noToken(), 0, nil)

	c.Refetch(context.Background())

	snap := c.Snapshot()
	assert.Equal(t, PhaseEmpty, snap.Phase)
	assert.Empty(t, snap.Lists)
	assert.Zero(t, svc.calls, "no request may be issued without a token")
}

func TestCollection_FetchReachesReady(t *testing.T) {
	svc := &fakeListService{responses: []listResponse{
		{lists: []api.ListSummary{{ID: 1, Name: named("Mercado"), TotalValue: 42.5}}},
	}}
	c := NewCollection(svc, withToken(), 0, nil)

	c.Refetch(context.Background())

	snap := c.Snapshot()
	require.Equal(t, PhaseReady, snap.Phase)
	require.Len(t, snap.Lists, 1)
	assert.Equal(t, int64(1), snap.Lists[0].ID)
	assert.Equal(t, "Mercado", snap.Lists[0].DisplayName())
	assert.Equal(t, 42.5, snap.Lists[0].TotalValue)
}

func TestCollection_FailureRetainsLastGoodLists(t *testing.T) {
	fetchErr := errors.New("connection reset")
	svc := &fakeListService{responses: []listResponse{
		{lists: []api.ListSummary{{ID: 1}}},
		{err: fetchErr},
	}}
	c := NewCollection(svc, withToken(), 0, nil)

	c.Refetch(context.Background())
	c.Refetch(context.Background())

	snap := c.Snapshot()
	assert.Equal(t, PhaseError, snap.Phase)
	assert.Equal(t, fetchErr, snap.Err, "the fetch error surfaces as-is, not wrapped")
	require.Len(t, snap.Lists, 1, "a failed refetch must not blank a populated view")
	assert.Equal(t, int64(1), snap.Lists[0].ID)
}

func TestCollection_ReadsAreRetried(t *testing.T) {
	svc := &fakeListService{responses: []listResponse{
		{err: errors.New("timeout")},
		{err: errors.New("timeout")},
		{lists: []api.ListSummary{{ID: 5}}},
	}}
	c := NewCollection(svc, withToken(), 2, nil)

	c.Refetch(context.Background())

	snap := c.Snapshot()
	assert.Equal(t, PhaseReady, snap.Phase)
	assert.Equal(t, 3, svc.calls, "two automatic retries after the first failure")
}

func TestCollection_LastRefetchWins(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	svc := &fakeListService{
		release: release,
		started: started,
		responses: []listResponse{
			{lists: []api.ListSummary{{ID: 1, Name: named("stale")}}},
			{lists: []api.ListSummary{{ID: 2, Name: named("fresh")}}},
		},
	}
	c := NewCollection(svc, withToken(), 0, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.Refetch(context.Background()) // first fetch, held in flight
	}()

	// Second refetch starts after the first is in flight and completes first.
	<-started
	c.Refetch(context.Background())
	snap := c.Snapshot()
	require.Equal(t, PhaseReady, snap.Phase)
	require.Len(t, snap.Lists, 1)
	assert.Equal(t, int64(2), snap.Lists[0].ID)

	// Now let the first (superseded) fetch resolve: its result must be
	// discarded even though it arrives last.
	close(release)
	wg.Wait()

	snap = c.Snapshot()
	require.Len(t, snap.Lists, 1)
	assert.Equal(t, int64(2), snap.Lists[0].ID, "earlier fetch arriving late must not overwrite the newer result")
	assert.Equal(t, "fresh", snap.Lists[0].DisplayName())
}

func TestCollection_ApplyDeleteRemovesOptimisticallyThenReconciles(t *testing.T) {
	svc := &fakeListService{responses: []listResponse{
		{lists: []api.ListSummary{{ID: 1}, {ID: 2}}},
		{lists: []api.ListSummary{{ID: 2}}}, // server truth after delete
	}}
	c := NewCollection(svc, withToken(), 0, nil)
	c.Refetch(context.Background())

	err := c.ApplyDelete(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, svc.deleted)

	snap := c.Snapshot()
	require.Len(t, snap.Lists, 1)
	assert.Equal(t, int64(2), snap.Lists[0].ID)
}

func TestCollection_FailedDeleteReconcilesBackToServerTruth(t *testing.T) {
	svc := &fakeListService{
		deleteErr: errors.New("network failure"),
		responses: []listResponse{
			{lists: []api.ListSummary{{ID: 1}, {ID: 2}}},
		},
	}
	c := NewCollection(svc, withToken(), 0, nil)
	c.Refetch(context.Background())

	err := c.ApplyDelete(context.Background(), 1)
	require.Error(t, err)

	// The optimistic removal was wrong; the reconciling refetch restores id 1.
	snap := c.Snapshot()
	require.Len(t, snap.Lists, 2)
	assert.Equal(t, int64(1), snap.Lists[0].ID)
}

func TestCollection_ApplyUpdateMergesInPlacePreservingOrder(t *testing.T) {
	svc := &fakeListService{responses: []listResponse{
		{lists: []api.ListSummary{{ID: 1}, {ID: 2, TotalValue: 5}, {ID: 3}}},
	}}
	c := NewCollection(svc, withToken(), 0, nil)
	c.Refetch(context.Background())

	c.ApplyUpdate(api.ListSummary{ID: 2, TotalValue: 50})

	snap := c.Snapshot()
	require.Len(t, snap.Lists, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{snap.Lists[0].ID, snap.Lists[1].ID, snap.Lists[2].ID})
	assert.Equal(t, 50.0, snap.Lists[1].TotalValue)
}

func TestCollection_MutateRefetchesEvenOnFailure(t *testing.T) {
	svc := &fakeListService{responses: []listResponse{
		{lists: []api.ListSummary{{ID: 9}}},
	}}
	c := NewCollection(svc, withToken(), 0, nil)

	wantErr := errors.New("rejected")
	err := c.Mutate(context.Background(), func(ctx context.Context) error { return wantErr })

	assert.ErrorIs(t, err, wantErr)
	snap := c.Snapshot()
	assert.Equal(t, PhaseReady, snap.Phase, "the reconcile fetch runs regardless of the mutation's outcome")
	require.Len(t, snap.Lists, 1)
}
