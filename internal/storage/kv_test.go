package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func testKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := kv.Get(ctx, "absent"); err != nil || ok {
		t.Fatalf("Get absent = ok=%v err=%v, want miss", ok, err)
	}

	if err := kv.Put(ctx, "k", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	v, ok, err := kv.Get(ctx, "k")
	if err != nil || !ok || string(v) != `{"a":1}` {
		t.Fatalf("Get = %q ok=%v err=%v", v, ok, err)
	}

	// Put replaces
	if err := kv.Put(ctx, "k", []byte(`{"a":2}`)); err != nil {
		t.Fatalf("Put replace: %v", err)
	}
	v, _, _ = kv.Get(ctx, "k")
	if string(v) != `{"a":2}` {
		t.Fatalf("Get after replace = %q", v)
	}

	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "k"); ok {
		t.Fatal("key survived Delete")
	}
	// Deleting an absent key is fine
	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete absent: %v", err)
	}
}

func TestMemKV(t *testing.T) {
	testKV(t, NewMemKV())
}

func TestSQLiteStore(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "tally.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer store.Close()

	testKV(t, store)
}

func TestSQLiteStorePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.db")
	ctx := context.Background()

	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.Put(ctx, "session", []byte(`"u1"`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	store.Close()

	reopened, err := NewStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	v, ok, err := reopened.Get(ctx, "session")
	if err != nil || !ok || string(v) != `"u1"` {
		t.Fatalf("Get after reopen = %q ok=%v err=%v", v, ok, err)
	}
}
