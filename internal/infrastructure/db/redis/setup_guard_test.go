package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestSetupGuard_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	defer client.Close()

	guard := NewSetupGuard(client)
	ok, err := guard.Claim(context.Background())
	if err == nil {
		t.Fatalf("expected error from unreachable server")
	}
	if ok {
		t.Fatalf("claim must not succeed on error")
	}
	if err := guard.Release(context.Background()); err == nil {
		t.Fatalf("expected release error from unreachable server")
	}
}
