package database

import (
	"os"
	"testing"
)

func TestRedisStoreKey(t *testing.T) {
	store := &RedisStore{}

	if got := store.key(ItemsKey); got != "stellarpulse:data" {
		t.Errorf("Expected key 'stellarpulse:data', got '%s'", got)
	}
	if store.key(ItemsKey) == store.key(SubscriptionsKey) {
		t.Error("Expected different keys for different documents")
	}
}

// Runs only when REDIS_ADDR points at a disposable Redis server.
func TestRedisStoreRoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	store, err := NewStore(StoreOptions{Kind: StoreRedis, RedisAddr: addr})
	if err != nil {
		t.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer store.Close()

	if _, err := store.Get("test_missing"); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	if err := store.Put("test_doc", []byte(`{"a":1}`)); err != nil {
		t.Fatal(err)
	}
	body, err := store.Get("test_doc")
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != `{"a":1}` {
		t.Errorf("Expected stored body, got %s", body)
	}
}

func TestNewRedisStoreUnreachable(t *testing.T) {
	if _, err := NewRedisStore("127.0.0.1:1"); err == nil {
		t.Error("Expected error for unreachable Redis")
	}
}
