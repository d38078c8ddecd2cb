package draftstore_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap/zaptest"

	"jobmate/posting-service/internal/draftstore"
	"jobmate/posting-service/internal/store"
)

// brokenKV fails every call, standing in for unavailable storage.
type brokenKV struct{}

var errDown = errors.New("storage unavailable")

func (brokenKV) Get(context.Context, string) (string, error) { return "", errDown }
func (brokenKV) Set(context.Context, string, string) error   { return errDown }
func (brokenKV) Delete(context.Context, string) error        { return errDown }

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := draftstore.New(store.NewMemory(), zaptest.NewLogger(t))

	desc := "<b>We build</b> things<br><br>• daily"
	s.Save(ctx, desc)
	if got := s.Load(ctx); got != desc {
		t.Errorf("Load = %q, want %q", got, desc)
	}

	s.Clear(ctx)
	if got := s.Load(ctx); got != "" {
		t.Errorf("Load after Clear = %q, want empty", got)
	}
}

func TestStore_LoadEmpty(t *testing.T) {
	s := draftstore.New(store.NewMemory(), nil)
	if got := s.Load(context.Background()); got != "" {
		t.Errorf("Load on empty store = %q", got)
	}
}

func TestStore_UsesFixedKey(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	draftstore.New(kv, nil).Save(ctx, "x")

	v, err := kv.Get(ctx, draftstore.Key)
	if err != nil || v != "x" {
		t.Errorf("kv[%s] = %q, %v", draftstore.Key, v, err)
	}
}

func TestStore_UnavailableBackendIsSilent(t *testing.T) {
	ctx := context.Background()
	s := draftstore.New(brokenKV{}, zaptest.NewLogger(t))

	s.Save(ctx, "ignored")
	s.Clear(ctx)
	if got := s.Load(ctx); got != "" {
		t.Errorf("Load = %q, want empty", got)
	}
}
