package session

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosbandelli/superlist/internal/creds"
)

// fakeStore is an in-memory TokenStore with injectable failures.
type fakeStore struct {
	mu      sync.Mutex
	token   string
	present bool

	saveErr   error
	deleteErr error
}

func (f *fakeStore) LoadToken() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.present {
		return "", creds.ErrNotFound
	}
	return f.token, nil
}

func (f *fakeStore) SaveToken(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.token = token
	f.present = true
	return nil
}

func (f *fakeStore) DeleteToken() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.token = ""
	f.present = false
	return nil
}

func TestSession_LoginThenRestoreRoundTrips(t *testing.T) {
	store := &fakeStore{}
	s := New(store, nil)

	require.NoError(t, s.Login("tok-a"))
	require.NoError(t, s.Login("tok-b"))

	fresh := New(store, nil)
	fresh.Restore()

	token, ok := fresh.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok-b", token, "restore must yield the last successful login")
}

func TestSession_RestoreWithoutTokenIsSilent(t *testing.T) {
	s := New(&fakeStore{}, nil)
	s.Restore()

	_, ok := s.Token()
	assert.False(t, ok)
	assert.False(t, s.Loading())
}

func TestSession_FailedLoginLeavesMemoryUntouched(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("disk full")}
	s := New(store, nil)

	err := s.Login("tok")
	require.Error(t, err)

	_, ok := s.Token()
	assert.False(t, ok, "a login that could not be persisted must not be visible in memory")
}

func TestSession_LogoutThenRestoreYieldsNoToken(t *testing.T) {
	store := &fakeStore{}
	s := New(store, nil)
	require.NoError(t, s.Login("tok"))

	require.NoError(t, s.Logout())

	s.Restore()
	_, ok := s.Token()
	assert.False(t, ok, "a completed logout must never resurrect a stale token")
}

func TestSession_FailedLogoutKeepsSessionConsistent(t *testing.T) {
	store := &fakeStore{}
	s := New(store, nil)
	require.NoError(t, s.Login("tok"))

	store.deleteErr = errors.New("store locked")
	require.Error(t, s.Logout())

	// Memory still holds the token, matching the surviving durable copy.
	token, ok := s.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok", token)
}

func TestSession_ConcurrentRestoresConverge(t *testing.T) {
	store := &fakeStore{token: "tok", present: true}
	s := New(store, nil)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Restore()
		}()
	}
	wg.Wait()

	token, ok := s.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok", token)
	assert.False(t, s.Loading())
}
