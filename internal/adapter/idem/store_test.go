package idem

import (
	"context"
	"sync"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, ok, err := store.Lookup(ctx, "order:tok-1"); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := store.Remember(ctx, "order:tok-1", 42); err != nil {
		t.Fatalf("remember: %v", err)
	}

	id, ok, err := store.Lookup(ctx, "order:tok-1")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !ok || id != 42 {
		t.Fatalf("expected hit with 42, got ok=%v id=%d", ok, id)
	}
}

func TestMemoryStoreKeysAreIndependent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_ = store.Remember(ctx, "order:a", 1)
	_ = store.Remember(ctx, "payment:a", 2)

	if id, _, _ := store.Lookup(ctx, "order:a"); id != 1 {
		t.Fatalf("expected 1, got %d", id)
	}
	if id, _, _ := store.Lookup(ctx, "payment:a"); id != 2 {
		t.Fatalf("expected 2, got %d", id)
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int64) {
			defer wg.Done()
			_ = store.Remember(ctx, "k", n)
			_, _, _ = store.Lookup(ctx, "k")
		}(int64(i))
	}
	wg.Wait()

	if _, ok, _ := store.Lookup(ctx, "k"); !ok {
		t.Fatal("expected key to exist after concurrent writes")
	}
}

func TestRedisStoreDefaultTTL(t *testing.T) {
	s := NewRedisStore(nil, 0)
	if s.ttl <= 0 {
		t.Fatal("expected default ttl to be applied")
	}
}
