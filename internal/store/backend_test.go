package store_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"

	"jobmate/posting-service/internal/db"
	"jobmate/posting-service/internal/store"
)

// The Redis and PostgreSQL backends run against real servers when
// POSTING_TEST_REDIS_URL / POSTING_TEST_DATABASE_URL are set.

// exerciseKV runs the behaviour every backend must share.
func exerciseKV(t *testing.T, kv store.KV) {
	t.Helper()
	ctx := context.Background()
	key := "test-" + uuid.NewString()

	if _, err := kv.Get(ctx, key); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Get(missing) err = %v, want ErrNotFound", err)
	}
	if err := kv.Set(ctx, key, `[{"id":"a"}]`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := kv.Set(ctx, key, `[]`); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	if got, err := kv.Get(ctx, key); err != nil || got != `[]` {
		t.Errorf("Get = %q, %v; want [], nil", got, err)
	}
	if err := kv.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := kv.Get(ctx, key); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get after Delete err = %v", err)
	}
}

func TestMemory_Contract(t *testing.T) {
	exerciseKV(t, store.NewMemory())
}

func TestRedis_Contract(t *testing.T) {
	url := os.Getenv("POSTING_TEST_REDIS_URL")
	if url == "" {
		t.Skip("POSTING_TEST_REDIS_URL not set")
	}
	rdb, err := db.NewRedisClient(context.Background(), url)
	if err != nil {
		t.Fatalf("NewRedisClient: %v", err)
	}
	defer rdb.Close()

	exerciseKV(t, store.NewRedis(rdb, "posting-test:"))
}

func TestPostgres_Contract(t *testing.T) {
	url := os.Getenv("POSTING_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("POSTING_TEST_DATABASE_URL not set")
	}
	pool, err := db.NewPostgresPool(context.Background(), url)
	if err != nil {
		t.Fatalf("NewPostgresPool: %v", err)
	}
	defer pool.Close()

	exerciseKV(t, store.NewPostgres(pool))
}
