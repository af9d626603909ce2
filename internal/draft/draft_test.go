package draft

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/01moynul/shop-backoffice/internal/models"
	"github.com/01moynul/shop-backoffice/internal/spec"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestStore() (*Store, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	s := NewStore(NewMemoryKV(), DefaultTTL)
	s.now = clock.now
	return s, clock
}

func TestSaveAndLoad(t *testing.T) {
	s, clock := newTestStore()
	ctx := context.Background()

	groups := []models.Spec{{Name: "Color", Options: []string{"Red", "Blue"}}}
	rows := spec.Rebuild(groups, nil)
	rows[1].Price = 19.9

	info, err := s.Save(ctx, 7, Draft{Form: models.Goods{Name: "Hoodie", CategoryID: 3}, Specs: groups, Skus: rows})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if info.Name != "Hoodie" || !info.SavedAt.Equal(clock.t) {
		t.Fatalf("unexpected info: %+v", info)
	}

	d, err := s.Load(ctx, 7)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if d.Form.CategoryID != 3 || len(d.Specs) != 1 || len(d.Skus) != 2 {
		t.Fatalf("unexpected draft: %+v", d)
	}
	if d.Skus[1].Name != "Blue" || d.Skus[1].Price != 19.9 {
		t.Fatalf("sku table not restored: %+v", d.Skus)
	}

	if _, err := s.Load(ctx, 8); !errors.Is(err, ErrNotFound) {
		t.Fatalf("other shop must not see the draft, got %v", err)
	}
}

func TestSaveDefaultsName(t *testing.T) {
	s, _ := newTestStore()
	info, err := s.Save(context.Background(), 1, Draft{Form: models.Goods{Name: "  "}})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if info.Name != DefaultName {
		t.Fatalf("got %q want %q", info.Name, DefaultName)
	}
}

func TestLoadExpired(t *testing.T) {
	s, clock := newTestStore()
	ctx := context.Background()

	if _, err := s.Save(ctx, 1, Draft{}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	clock.t = clock.t.Add(DefaultTTL - time.Minute)
	if _, err := s.Info(ctx, 1); err != nil {
		t.Fatalf("draft expired too early: %v", err)
	}

	clock.t = clock.t.Add(2 * time.Minute)
	if _, err := s.Load(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.kv.Get(ctx, Key(1)); !errors.Is(err, ErrNotFound) {
		t.Fatal("expired draft must be removed")
	}
}

func TestClear(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	if _, err := s.Save(ctx, 1, Draft{}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := s.Clear(ctx, 1); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if _, err := s.Info(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Clear(ctx, 1); err != nil {
		t.Fatalf("clearing a missing draft must succeed, got %v", err)
	}
}

func TestMemoryKVExpiry(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	if err := kv.Set(ctx, "a", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, err := kv.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
