//go:build integration

package session

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

// Run with a local server: MONGO_URI=mongodb://localhost:27017 go test -tags integration ./pkg/session
func TestMongoStore_Integration(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := NewMongoStore(ctx, MongoConfig{URI: uri, Database: "scenesvg_test"})
	if err != nil {
		t.Fatalf("NewMongoStore() error: %v", err)
	}
	defer store.Close()

	sess := New(time.Hour)
	sess.Accept("1:100")
	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Scale.String() != "1:100" {
		t.Errorf("Scale = %v, want 1:100", got.Scale)
	}
	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete = %v, want ErrNotFound", err)
	}
}
