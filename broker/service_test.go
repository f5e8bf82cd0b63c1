package broker_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/leadkit/igbroker/broker"
	"github.com/leadkit/igbroker/instagram"
)

// harness bundles a service wired to a single fake client with an instant
// sleep and a fixed clock.
type harness struct {
	svc     *broker.Service
	store   *broker.FileStore
	client  *fakeClient
	created int
	slept   []time.Duration
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{client: newFakeClient()}

	store, err := broker.NewFileStore(t.TempDir())
	require.NoError(t, err)
	h.store = store

	registry := broker.NewRegistry(fixedFactory(h.client, &h.created), instagram.Options{})
	h.svc = broker.NewService(registry, store,
		broker.WithSleep(func(d time.Duration) { h.slept = append(h.slept, d) }),
		broker.WithClock(func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) }),
	)
	return h
}

func TestRegistry_GetOrCreateIdempotent(t *testing.T) {
	t.Parallel()

	cl := newFakeClient()
	created := 0
	registry := broker.NewRegistry(fixedFactory(cl, &created), instagram.Options{})

	first := registry.GetOrCreate("acc-1")
	second := registry.GetOrCreate("acc-1")
	require.Same(t, first, second)
	require.Equal(t, 1, created)
	require.Equal(t, 1, registry.Len())

	registry.GetOrCreate("acc-2")
	require.Equal(t, 2, created)
	require.Equal(t, 2, registry.Len())

	registry.Remove("acc-1")
	_, ok := registry.Get("acc-1")
	require.False(t, ok)
	require.Equal(t, 1, registry.Len())
}

func TestFileStore_RoundTrip(t *testing.T) {
	t.Parallel()

	store, err := broker.NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("missing")
	require.ErrorIs(t, err, broker.ErrRecordNotFound)

	saved := broker.Record{
		Username: "alice",
		Session:  instagram.Settings(`{"authorization_data":{"sessionid":"s-1"}}`),
		SavedAt:  time.Date(2026, 8, 1, 12, 0, 0, 123456789, time.UTC),
	}
	require.NoError(t, store.Save("acc-1", saved))

	loaded, err := store.Load("acc-1")
	require.NoError(t, err)
	require.Equal(t, "alice", loaded.Username)
	require.Equal(t, "s-1", loaded.Session.SessionID())
	require.Equal(t, time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC), loaded.SavedAt)

	require.True(t, store.Exists("acc-1"))
	require.NoError(t, store.Delete("acc-1"))
	require.False(t, store.Exists("acc-1"))

	// Deleting again is not an error.
	require.NoError(t, store.Delete("acc-1"))
}

func TestFileStore_OverwriteReplacesRecord(t *testing.T) {
	t.Parallel()

	store, err := broker.NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save("acc-1", broker.Record{Username: "old", Session: instagram.Settings(`{}`)}))
	require.NoError(t, store.Save("acc-1", broker.Record{Username: "new", Session: instagram.Settings(`{}`)}))

	loaded, err := store.Load("acc-1")
	require.NoError(t, err)
	require.Equal(t, "new", loaded.Username)
}
