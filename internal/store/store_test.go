package store_test

import (
	"context"
	"errors"
	"testing"

	"jobmate/posting-service/internal/store"
)

func TestMemory_GetMissingKey(t *testing.T) {
	m := store.NewMemory()
	_, err := m.Get(context.Background(), "nope")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get(missing) err = %v, want ErrNotFound", err)
	}
}

func TestMemory_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	if err := m.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := m.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := m.Get(ctx, "k")
	if err != nil || got != "v2" {
		t.Errorf("Get = %q, %v; want v2, nil", got, err)
	}

	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := m.Get(ctx, "k"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get after Delete err = %v, want ErrNotFound", err)
	}

	// Deleting a missing key is not an error.
	if err := m.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete(missing) = %v", err)
	}
}
