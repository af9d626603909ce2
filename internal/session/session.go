// Package session holds the open goods editor sessions of the service.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/01moynul/shop-backoffice/internal/models"
	"github.com/01moynul/shop-backoffice/internal/spec"
	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("editor session not found")
	ErrForbidden       = errors.New("editor session belongs to another shop")
	ErrSubmitting      = errors.New("goods is already being submitted")
)

// Session is one open goods form. Fields may only be touched inside Registry.Do.
type Session struct {
	ID     string
	ShopID int64

	// Form carries the goods fields other than the spec list and SKU table.
	Form       models.Goods
	Editor     *spec.Editor
	Submitting bool

	mu       sync.Mutex
	lastUsed time.Time
}

// Snapshot is the JSON view of a session.
type Snapshot struct {
	ID         string        `json:"id"`
	Form       models.Goods  `json:"form"`
	SpecList   []models.Spec `json:"specList"`
	SkuTable   []spec.Row    `json:"skuTable"`
	Selected   []string      `json:"selected"`
	BatchOpen  bool          `json:"batchOpen"`
	Bounds     spec.Bounds   `json:"commissionBounds"`
	Submitting bool          `json:"submitting"`
}

func (s *Session) Snapshot() Snapshot {
	form := s.Form
	form.SpecList, form.SkuList = nil, nil
	return Snapshot{
		ID:         s.ID,
		Form:       form,
		SpecList:   s.Editor.Groups(),
		SkuTable:   s.Editor.Rows(),
		Selected:   s.Editor.Selected(),
		BatchOpen:  s.Editor.BatchOpen(),
		Bounds:     s.Editor.Bounds(),
		Submitting: s.Submitting,
	}
}

// Registry maps session ids to sessions and evicts idle ones.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Open registers a new session for shopID.
func (r *Registry) Open(shopID int64, form models.Goods, groups []models.Spec, rows []spec.Row, bounds spec.Bounds) *Session {
	form.SpecList, form.SkuList = nil, nil
	s := &Session{
		ID:       uuid.New().String(),
		ShopID:   shopID,
		Form:     form,
		Editor:   spec.NewEditor(groups, rows, bounds),
		lastUsed: r.now(),
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

// Do runs fn with exclusive access to the session.
func (r *Registry) Do(id string, shopID int64, fn func(s *Session) error) error {
	s, err := r.lookup(id, shopID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = r.now()
	return fn(s)
}

func (r *Registry) Close(id string, shopID int64) error {
	if _, err := r.lookup(id, shopID); err != nil {
		return err
	}
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
	return nil
}

// Sweep drops sessions idle for longer than the TTL and returns how many went.
// Sessions that are busy are left for the next round.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if !s.mu.TryLock() {
			continue
		}
		if s.lastUsed.Before(cutoff) && !s.Submitting {
			delete(r.sessions, id)
			removed++
		}
		s.mu.Unlock()
	}
	return removed
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *Registry) lookup(id string, shopID int64) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.ShopID != shopID {
		return nil, ErrForbidden
	}
	return s, nil
}
