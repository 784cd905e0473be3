package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fluxyapp/fluxy/internal/models"
	"github.com/fluxyapp/fluxy/internal/storage"
	"github.com/fluxyapp/fluxy/internal/storage/sqlite"
)

// setupTestStore creates a SQLite store over a throwaway database.
func setupTestStore(t *testing.T) storage.Store {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "fluxy-service-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// fixedClock pins service time so month keys are deterministic.
func fixedClock(year int, month time.Month) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, 15, 12, 0, 0, 0, time.UTC)
	}
}

func createMember(t *testing.T, store storage.Store, name string) *models.Member {
	t.Helper()
	member := &models.Member{Name: name, Color: "#000000"}
	if err := store.CreateMember(context.Background(), member); err != nil {
		t.Fatalf("failed to create member %s: %v", name, err)
	}
	return member
}

func familialSubscription(name string, price string, participants ...string) *models.Subscription {
	return &models.Subscription{
		Name:         name,
		Price:        decimal.RequireFromString(price),
		Currency:     "EUR",
		Billing:      models.CadenceMonthly,
		Familial:     true,
		Participants: participants,
	}
}
