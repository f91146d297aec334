// Package store persists the company aggregate as one JSON blob under a
// single storage key.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/rpggio/jobtracker/internal/domain/company"
	"github.com/rpggio/jobtracker/internal/repository"
)

// DefaultKey is the storage key holding the serialized companies.
const DefaultKey = "job-tracker-companies"

// Backend reads and writes opaque values by key. Load returns
// repository.ErrNotFound when nothing is stored under key.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// Store is the sole reader and writer of persisted tracker state. Every
// mutation is a full read-modify-persist of the collection.
type Store struct {
	backend Backend
	key     string
	logger  *slog.Logger

	mu sync.Mutex
}

// Option customizes a Store.
type Option func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger used to report read faults.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Store over backend.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		key:     DefaultKey,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage key in use.
func (s *Store) Key() string {
	return s.key
}

// GetAll returns the persisted companies. Missing or unreadable state is
// reported as an empty collection.
func (s *Store) GetAll(ctx context.Context) []company.Company {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// SaveAll overwrites the persisted collection in one write.
func (s *Store) SaveAll(ctx context.Context, companies []company.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(ctx, companies)
}

// Modify runs fn on the current collection and persists what it returns,
// holding the store lock for the whole read-modify-persist so no other
// mutation interleaves. A nil result with a nil error writes nothing. An
// error from fn is returned unchanged and nothing is written. fn must not
// call back into the Store.
func (s *Store) Modify(ctx context.Context, fn func([]company.Company) ([]company.Company, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := fn(s.load(ctx))
	if err != nil || updated == nil {
		return err
	}
	return s.persist(ctx, updated)
}

// Add appends a company. Name uniqueness is the caller's concern.
func (s *Store) Add(ctx context.Context, c company.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(ctx, append(s.load(ctx), c))
}

// Update replaces the company with the same id. It reports false and writes
// nothing if the id is unknown.
func (s *Store) Update(ctx context.Context, c company.Company) (bool, error) {
	return s.mutate(ctx, c.ID, func(existing *company.Company) bool {
		*existing = c
		return true
	})
}

// Remove deletes a company and, by containment, all of its applications.
func (s *Store) Remove(ctx context.Context, companyID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	companies := s.load(ctx)
	idx := indexOf(companies, companyID)
	if idx < 0 {
		return false, nil
	}
	companies = append(companies[:idx], companies[idx+1:]...)
	if err := s.persist(ctx, companies); err != nil {
		return false, err
	}
	return true, nil
}

// FindByID looks up a company by id.
func (s *Store) FindByID(ctx context.Context, companyID string) (company.Company, bool) {
	companies := s.GetAll(ctx)
	if idx := indexOf(companies, companyID); idx >= 0 {
		return companies[idx], true
	}
	return company.Company{}, false
}

// FindByName looks up a company by case-insensitive exact name.
func (s *Store) FindByName(ctx context.Context, name string) (company.Company, bool) {
	for _, c := range s.GetAll(ctx) {
		if company.SameName(c.Name, name) {
			return c, true
		}
	}
	return company.Company{}, false
}

// AddApplication appends an application to the owning company.
func (s *Store) AddApplication(ctx context.Context, companyID string, app company.Application) (bool, error) {
	return s.mutate(ctx, companyID, func(c *company.Company) bool {
		c.Applications = append(c.Applications, app)
		return true
	})
}

// UpdateApplication replaces the application with app.ID under the company.
func (s *Store) UpdateApplication(ctx context.Context, companyID string, app company.Application) (bool, error) {
	return s.mutate(ctx, companyID, func(c *company.Company) bool {
		idx := c.FindApplication(app.ID)
		if idx < 0 {
			return false
		}
		c.Applications[idx] = app
		return true
	})
}

// RemoveApplication deletes an application from the owning company.
func (s *Store) RemoveApplication(ctx context.Context, companyID, applicationID string) (bool, error) {
	return s.mutate(ctx, companyID, func(c *company.Company) bool {
		idx := c.FindApplication(applicationID)
		if idx < 0 {
			return false
		}
		c.Applications = append(c.Applications[:idx], c.Applications[idx+1:]...)
		return true
	})
}

// ListWithApplications returns companies holding at least one application.
func (s *Store) ListWithApplications(ctx context.Context) []company.Company {
	return partition(s.GetAll(ctx), true)
}

// ListWithoutApplications returns companies with no applications.
func (s *Store) ListWithoutApplications(ctx context.Context) []company.Company {
	return partition(s.GetAll(ctx), false)
}

func (s *Store) mutate(ctx context.Context, companyID string, fn func(*company.Company) bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	companies := s.load(ctx)
	idx := indexOf(companies, companyID)
	if idx < 0 {
		return false, nil
	}
	if !fn(&companies[idx]) {
		return false, nil
	}
	if err := s.persist(ctx, companies); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) load(ctx context.Context) []company.Company {
	data, err := s.backend.Load(ctx, s.key)
	if errors.Is(err, repository.ErrNotFound) {
		return []company.Company{}
	}
	if err != nil {
		s.logger.Warn("failed to read stored companies", "key", s.key, "error", err)
		return []company.Company{}
	}

	var companies []company.Company
	if err := json.Unmarshal(data, &companies); err != nil {
		s.logger.Warn("stored companies are corrupt", "key", s.key, "error", err)
		return []company.Company{}
	}
	if companies == nil {
		companies = []company.Company{}
	}
	return companies
}

func (s *Store) persist(ctx context.Context, companies []company.Company) error {
	if companies == nil {
		companies = []company.Company{}
	}
	data, err := json.Marshal(companies)
	if err != nil {
		return fmt.Errorf("encoding companies: %w", err)
	}
	if err := s.backend.Save(ctx, s.key, data); err != nil {
		return fmt.Errorf("persisting companies: %w", err)
	}
	return nil
}

func indexOf(companies []company.Company, id string) int {
	for i := range companies {
		if companies[i].ID == id {
			return i
		}
	}
	return -1
}

func partition(companies []company.Company, withApplications bool) []company.Company {
	out := make([]company.Company, 0, len(companies))
	for _, c := range companies {
		if c.HasApplications() == withApplications {
			out = append(out, c)
		}
	}
	return out
}
