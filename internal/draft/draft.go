// Package draft keeps one unfinished goods form per shop so the merchant can
// pick it up later.
package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/01moynul/shop-backoffice/internal/models"
	"github.com/01moynul/shop-backoffice/internal/spec"
)

// DefaultTTL is how long a draft survives after its last save.
const DefaultTTL = 7 * 24 * time.Hour

// DefaultName is used when the draft form has no goods name yet.
const DefaultName = "Untitled goods"

var ErrNotFound = errors.New("no draft saved")

// Draft is a snapshot of a goods form: the other form fields, the spec list
// and the SKU table.
type Draft struct {
	Form    models.Goods  `json:"formData"`
	Specs   []models.Spec `json:"specContentList"`
	Skus    []spec.Row    `json:"tableSkuList"`
	Name    string        `json:"name"`
	SavedAt time.Time     `json:"savedAt"`
}

// Info is the summary shown before a draft is restored.
type Info struct {
	Name    string    `json:"name"`
	SavedAt time.Time `json:"savedAt"`
}

// KV is the storage a Store writes drafts into. Get returns ErrNotFound for a
// missing or expired key.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type Store struct {
	kv  KV
	ttl time.Duration
	now func() time.Time
}

func NewStore(kv KV, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{kv: kv, ttl: ttl, now: time.Now}
}

// Key is the storage key of a shop's draft.
func Key(shopID int64) string {
	return "goods_draft:" + strconv.FormatInt(shopID, 10)
}

// Save replaces the shop's draft and stamps it with the current time.
func (s *Store) Save(ctx context.Context, shopID int64, d Draft) (Info, error) {
	d.Name = strings.TrimSpace(d.Form.Name)
	if d.Name == "" {
		d.Name = DefaultName
	}
	d.SavedAt = s.now().UTC()
	if d.Specs == nil {
		d.Specs = []models.Spec{}
	}
	if d.Skus == nil {
		d.Skus = []spec.Row{}
	}

	raw, err := json.Marshal(d)
	if err != nil {
		return Info{}, fmt.Errorf("encode draft: %w", err)
	}
	if err := s.kv.Set(ctx, Key(shopID), raw, s.ttl); err != nil {
		return Info{}, fmt.Errorf("save draft: %w", err)
	}
	return Info{Name: d.Name, SavedAt: d.SavedAt}, nil
}

// Load returns the shop's draft. A draft older than the TTL is removed and
// reported as ErrNotFound.
func (s *Store) Load(ctx context.Context, shopID int64) (*Draft, error) {
	raw, err := s.kv.Get(ctx, Key(shopID))
	if err != nil {
		return nil, err
	}

	var d Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	if s.now().Sub(d.SavedAt) > s.ttl {
		if err := s.kv.Delete(ctx, Key(shopID)); err != nil {
			return nil, fmt.Errorf("remove expired draft: %w", err)
		}
		return nil, ErrNotFound
	}
	return &d, nil
}

func (s *Store) Info(ctx context.Context, shopID int64) (Info, error) {
	d, err := s.Load(ctx, shopID)
	if err != nil {
		return Info{}, err
	}
	return Info{Name: d.Name, SavedAt: d.SavedAt}, nil
}

func (s *Store) Clear(ctx context.Context, shopID int64) error {
	if err := s.kv.Delete(ctx, Key(shopID)); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}
