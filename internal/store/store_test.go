package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/italienapp/italienapp/internal/progress"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file:" + t.Name() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is checked against a file in TestOpenFile.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.db")
	s, err := Open(path)
	require.NoError(t, err)

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	ctx := context.Background()
	require.NoError(t, s.KV().Put(ctx, "k", []byte("v")))
	require.NoError(t, s.Close())

	// Migrations are idempotent and data survives reopening.
	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.KV().Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestKV(t *testing.T) {
	s := openTestStore(t)
	kv := s.KV()
	ctx := context.Background()

	_, err := kv.Get(ctx, progress.StorageKey)
	assert.ErrorIs(t, err, progress.ErrNotFound)

	require.NoError(t, kv.Put(ctx, progress.StorageKey, []byte(`{"version":1}`)))
	require.NoError(t, kv.Put(ctx, progress.StorageKey, []byte(`{"version":1,"lastActive":"2"}`)))

	got, err := kv.Get(ctx, progress.StorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"lastActive":"2"}`, string(got))

	require.NoError(t, kv.Delete(ctx, progress.StorageKey))
	_, err = kv.Get(ctx, progress.StorageKey)
	assert.ErrorIs(t, err, progress.ErrNotFound)

	assert.NoError(t, kv.Delete(ctx, "missing"))
}

func TestAttempts_AppendAndRecent(t *testing.T) {
	s := openTestStore(t)
	repo := s.Attempts()
	ctx := context.Background()

	base := time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)
	inputs := []progress.Attempt{
		{SchedaID: "1", ExerciseID: "1-1", Score: 2, Total: 3, At: base},
		{SchedaID: "2", ExerciseID: "2-3", Score: 3, Total: 3, At: base.Add(time.Minute)},
		{SchedaID: "1", ExerciseID: "1-4", OpenEnded: true, At: base.Add(2 * time.Minute)},
	}
	for _, a := range inputs {
		require.NoError(t, repo.Append(ctx, a))
	}

	events, err := repo.Recent(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, "1-4", events[0].ExerciseID)
	assert.True(t, events[0].OpenEnded)
	assert.Equal(t, "1-1", events[2].ExerciseID)
	assert.Equal(t, base, events[2].At)
	assert.Greater(t, events[0].Sequence, events[1].Sequence)
	assert.Greater(t, events[1].Sequence, events[2].Sequence)
	assert.NotEqual(t, events[0].ID, events[1].ID)

	limited, err := repo.Recent(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "1-4", limited[0].ExerciseID)

	scheda1, err := repo.Recent(ctx, QueryOpts{SchedaID: "1"})
	require.NoError(t, err)
	assert.Len(t, scheda1, 2)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.NoError(t, repo.Clear(ctx))
	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.seq.Next(ctx)
	require.NoError(t, err)
	second, err := s.seq.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, first+1, second)
}

// The progress store round-trips through SQLite unchanged.
func TestProgressOverSQLite(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := func() time.Time { return time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC) }

	p := progress.Open(ctx, s.KV(), progress.WithClock(now), progress.WithAttemptLog(s.Attempts()))
	p.RecordExerciseResult(ctx, "19bis", "19bis-1", 1, 2)
	p.RecordTheoryViewed(ctx, "19bis")

	reopened := progress.Open(ctx, s.KV())
	res, ok := reopened.ExerciseResult("19bis", "19bis-1")
	require.True(t, ok)
	assert.Equal(t, 1, res.Score)
	assert.Equal(t, now(), res.LastAttempt)

	events, err := s.Attempts().Recent(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "19bis", events[0].SchedaID)
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Run("env override", func(t *testing.T) {
		want := filepath.Join(dir, "custom", "db.sqlite")
		t.Setenv("ITALIENAPP_DB", want)
		got, err := DefaultDBPath()
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.DirExists(t, filepath.Dir(want))
	})

	t.Run("xdg data home", func(t *testing.T) {
		t.Setenv("ITALIENAPP_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)
		got, err := DefaultDBPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "italienapp", "progress.db"), got)
	})
}
