package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/janus/internal/janus/domain"
	"github.com/aussiebroadwan/janus/internal/janus/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

// testClock advances by one millisecond on every read so consecutive
// records get distinct timestamps.
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Millisecond)
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type testEnv struct {
	store    *sqlite.Store
	clock    *testClock
	notifier *MemoryNotifier
	users    *UserService
	requests *RequestService
	gateway  *PollingGateway
	admin    *AdminService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	s, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "janus.db")))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })

	clock := newTestClock()
	notifier := NewMemoryNotifier()
	requests := &RequestService{Store: s, Notifier: notifier, Clock: clock.Now}

	return &testEnv{
		store:    s,
		clock:    clock,
		notifier: notifier,
		users:    &UserService{Store: s, Clock: clock.Now},
		requests: requests,
		gateway:  &PollingGateway{Requests: requests, Notifier: notifier, Clock: clock.Now},
		admin:    &AdminService{Store: s},
	}
}

func (e *testEnv) register(t *testing.T, name, email string) domain.User {
	t.Helper()
	u, err := e.users.Register(context.Background(), RegisterParams{DisplayName: name, Email: email})
	require.NoError(t, err)
	return u
}

func (e *testEnv) create(t *testing.T, userID, kind string) domain.AuthRequest {
	t.Helper()
	ar, err := e.requests.Create(context.Background(), CreateRequestParams{UserID: userID, Kind: kind})
	require.NoError(t, err)
	return ar
}
