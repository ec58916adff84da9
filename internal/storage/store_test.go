package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

type sampleDoc struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Tags  []string `json:"tags"`
}

func setupSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "studyd-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func storesUnderTest(t *testing.T) map[string]Store {
	return map[string]Store{
		"sqlite": setupSQLite(t),
		"memory": NewMemoryStore(),
	}
}

func TestStoreSetGetOverwrite(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := store.Set(ctx, KeyStats, sampleDoc{Name: "a", Count: 1, Tags: []string{"x"}}); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := store.Set(ctx, KeyStats, sampleDoc{Name: "b", Count: 2}); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			var got sampleDoc
			if err := store.Get(ctx, KeyStats, &got); err != nil {
				t.Fatalf("get: %v", err)
			}
			if got.Name != "b" || got.Count != 2 || len(got.Tags) != 0 {
				t.Fatalf("unexpected doc: %#v", got)
			}
		})
	}
}

func TestStoreMissingKey(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			var got sampleDoc
			if err := store.Get(ctx, "missing", &got); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			if err := store.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound on delete, got %v", err)
			}
			found, err := Load(ctx, store, "missing", &got)
			if err != nil || found {
				t.Fatalf("expected not found without error, got found=%v err=%v", found, err)
			}
		})
	}
}

func TestStoreKeysAndDelete(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, key := range []string{KeyTasks, KeyMoods, KeyNotes} {
				if err := store.Set(ctx, key, []int{}); err != nil {
					t.Fatalf("set %s: %v", key, err)
				}
			}
			if err := store.Delete(ctx, KeyMoods); err != nil {
				t.Fatalf("delete: %v", err)
			}
			keys, err := store.Keys(ctx)
			if err != nil {
				t.Fatalf("keys: %v", err)
			}
			if len(keys) != 2 || keys[0] != KeyNotes || keys[1] != KeyTasks {
				t.Fatalf("unexpected keys: %v", keys)
			}
		})
	}
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	store, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	fixed := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }
	if err := store.Set(context.Background(), KeySettings, sampleDoc{Name: "persisted"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	_ = store.Close()

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	var got sampleDoc
	if err := reopened.Get(context.Background(), KeySettings, &got); err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got.Name != "persisted" {
		t.Fatalf("unexpected doc after reopen: %#v", got)
	}
	at, err := reopened.UpdatedAt(context.Background(), KeySettings)
	if err != nil || !at.Equal(fixed) {
		t.Fatalf("unexpected updated_at: %v %v", at, err)
	}
}
