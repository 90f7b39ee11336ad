package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kontolab/konto-ingest/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewStore_RunsMigrations(t *testing.T) {
	store := newTestStore(t)
	assert.NotEmpty(t, store.Path())

	// Tables exist: inserting does not fail.
	err := store.SaveSnapshot(context.Background(), domain.Snapshot{
		SourceID:  "mva_law_2009",
		URL:       "https://lovdata.no/lov/2009-06-19-58",
		SHA256:    "abc123",
		SizeBytes: 1024,
		Path:      "data/bronze/mva_law_2009.html",
		Changed:   true,
		FetchedAt: time.Now(),
	})
	require.NoError(t, err)
}

func TestLatestSnapshot(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	for i, sha := range []string{"aaa", "bbb"} {
		require.NoError(t, store.SaveSnapshot(ctx, domain.Snapshot{
			SourceID:  "mva_law_2009",
			URL:       "https://lovdata.no/lov/2009-06-19-58",
			SHA256:    sha,
			SizeBytes: 10,
			Path:      "data/bronze/mva_law_2009.html",
			Changed:   i == 0,
			FetchedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	snap, err := store.LatestSnapshot(ctx, "mva_law_2009")
	require.NoError(t, err)
	assert.Equal(t, "bbb", snap.SHA256)
	assert.False(t, snap.Changed)
}

func TestLatestSnapshot_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.LatestSnapshot(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListSnapshots_OnePerSource(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	sources := []string{"mva_law_2009", "vat_rates_2026", "mva_law_2009"}
	for i, id := range sources {
		require.NoError(t, store.SaveSnapshot(ctx, domain.Snapshot{
			SourceID:  id,
			URL:       "https://example.org/" + id,
			SHA256:    "sha",
			SizeBytes: 1,
			Path:      "data/bronze/" + id + ".html",
			FetchedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	snaps, err := store.ListSnapshots(ctx)
	require.NoError(t, err)
	require.Len(t, snaps, 2)

	// Sorted by source id, and the duplicated source keeps its newest
	// fetch timestamp.
	assert.Equal(t, "mva_law_2009", snaps[0].SourceID)
	assert.True(t, snaps[0].FetchedAt.Equal(base.Add(2*time.Minute)),
		"got %v", snaps[0].FetchedAt)
	assert.Equal(t, "vat_rates_2026", snaps[1].SourceID)
}

func TestSaveAndListRuns(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	start := time.Date(2026, 2, 1, 6, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, store.SaveRun(ctx, domain.Run{
			ID:         string(rune('a' + i)),
			Stage:      domain.StageBronze,
			StartedAt:  start.Add(time.Duration(i) * time.Hour),
			FinishedAt: start.Add(time.Duration(i)*time.Hour + time.Minute),
			Total:      10,
			Processed:  9,
			Failed:     1,
		}))
	}

	runs, err := store.ListRuns(ctx, domain.StageBronze)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	// Newest first.
	assert.Equal(t, "c", runs[0].ID)

	empty, err := store.ListRuns(ctx, domain.StageGold)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
