package store

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"

	exerrors "github.com/mirkobrombin/go-exclusive/v1/errors"
)

func newRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	addr := os.Getenv("EXCLUSIVE_TEST_REDIS_ADDR")
	var client *redis.Client
	if addr != "" {
		t.Logf("using real Redis at %s", addr)
		client = redis.NewClient(&redis.Options{Addr: addr})
	} else {
		mr, err := miniredis.Run()
		if err != nil {
			t.Fatalf("miniredis run: %v", err)
		}
		t.Cleanup(mr.Close)
		client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	}
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client)
}

func TestRedisPrimitives(t *testing.T) {
	exercisePrimitives(t, newRedisStore(t))
}

func TestRedisClosedClient(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run: %v", err)
	}
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	_ = client.Close()

	s := NewRedisStore(client)
	if _, _, err := s.Get(context.Background(), "k"); !errors.Is(err, exerrors.ErrConnectionClosed) {
		t.Fatalf("expected ErrConnectionClosed, got %v", err)
	}
}
