package rfid

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/atelier-meuble/inventaire-backend/pkg/config"
)

type fakeTagStore struct {
	keys map[string]bool
	err  error
}

func (f *fakeTagStore) Exists(_ context.Context, key string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.keys[key], nil
}

func (f *fakeTagStore) RFIDTagKey(prefix string, tagID int64) string {
	if prefix == "" {
		prefix = "rfid:tag"
	}
	return fmt.Sprintf("%s:%d", prefix, tagID)
}

func TestResolve(t *testing.T) {
	store := &fakeTagStore{keys: map[string]bool{"rfid:tag:42": true}}
	resolver, err := NewRedisResolver(store, config.RFIDConfig{})
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}
	ctx := context.Background()

	known, err := resolver.Resolve(ctx, 42)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !known {
		t.Fatal("expected tag 42 to resolve")
	}

	known, err = resolver.Resolve(ctx, 43)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if known {
		t.Fatal("expected tag 43 to be unknown")
	}
}

func TestResolveHonorsConfiguredPrefix(t *testing.T) {
	store := &fakeTagStore{keys: map[string]bool{"fleet:reader:7": true}}
	resolver, err := NewRedisResolver(store, config.RFIDConfig{TagKeyPrefix: "fleet:reader"})
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	known, err := resolver.Resolve(context.Background(), 7)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !known {
		t.Fatal("expected prefixed key to resolve")
	}
}

func TestResolveRejectsNonPositiveIDsWithoutLookup(t *testing.T) {
	store := &fakeTagStore{err: errors.New("should not be called")}
	resolver, err := NewRedisResolver(store, config.RFIDConfig{})
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	known, err := resolver.Resolve(context.Background(), 0)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if known {
		t.Fatal("expected non-positive id to be unknown")
	}
}
