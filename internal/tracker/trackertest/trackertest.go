// Package trackertest builds tracker services backed by a throwaway
// SQLite store for tests of the layers above the tracker.
package trackertest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abhisek/masterly/internal/store"
	"github.com/abhisek/masterly/internal/tracker"
)

// New opens a Service on a fresh database seeded with the default
// questions. Shuffling is disabled so pools keep document order.
func New(t testing.TB) (*tracker.Service, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "masterly.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	svc, err := tracker.Open(context.Background(), tracker.Options{
		Persister: tracker.NewStorePersister(st.SnapshotRepo()),
		History:   st.EventRepo(),
		Intn:      func(n int) int { return n - 1 },
	})
	require.NoError(t, err)
	return svc, st
}

// WithUser is New plus a created and selected user.
func WithUser(t testing.TB, name string) *tracker.Service {
	t.Helper()
	svc, _ := New(t)
	ctx := context.Background()
	u, err := svc.CreateUser(ctx, name)
	require.NoError(t, err)
	require.NoError(t, svc.SelectUser(ctx, u.ID))
	return svc
}
