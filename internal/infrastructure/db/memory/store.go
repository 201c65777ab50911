// Package memory is an in-process ports.Storage used in tests and when no
// database is configured. Data does not survive a restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arthsaathi/finlit-engine/internal/core/domain"
)

// DefaultQueryLimit caps GetUserQueries when no limit is configured.
const DefaultQueryLimit = 20

// Store keeps users, queries and roadmaps in maps guarded by one lock.
// Everything crossing the boundary is copied.
type Store struct {
	mu         sync.RWMutex
	users      map[string]domain.User
	queries    map[string][]domain.Query // per user, in insertion order
	roadmaps   map[string]*domain.Roadmap
	queryLimit int
	now        func() time.Time
}

// NewStore returns an empty Store. queryLimit <= 0 uses DefaultQueryLimit.
func NewStore(queryLimit int) *Store {
	if queryLimit <= 0 {
		queryLimit = DefaultQueryLimit
	}
	return &Store{
		users:      make(map[string]domain.User),
		queries:    make(map[string][]domain.Query),
		roadmaps:   make(map[string]*domain.Roadmap),
		queryLimit: queryLimit,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) GetUser(_ context.Context, userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (s *Store) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.users[user.ID]; ok {
		return &existing, nil
	}

	u := *user
	now := s.now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}
	s.users[u.ID] = u
	return &u, nil
}

func (s *Store) UpdateUserScore(_ context.Context, userID string, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.TrustScore = score
	u.UpdatedAt = s.now()
	s.users[userID] = u
	return nil
}

func (s *Store) SaveQuery(_ context.Context, q *domain.Query) (*domain.Query, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cloneQuery(*q)
	stored.ID = uuid.NewString()
	stored.CreatedAt = s.now()

	s.queries[stored.UserID] = append(s.queries[stored.UserID], stored)

	out := cloneQuery(stored)
	return &out, nil
}

func (s *Store) GetUserQueries(_ context.Context, userID string) ([]domain.Query, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.queries[userID]
	out := make([]domain.Query, len(all))
	for i, q := range all {
		out[len(all)-1-i] = cloneQuery(q)
	}

	// Newest first; equal timestamps keep the later insertion first.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if len(out) > s.queryLimit {
		out = out[:s.queryLimit]
	}
	return out, nil
}

func (s *Store) GetRoadmap(_ context.Context, userID string) (*domain.Roadmap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.roadmaps[userID]
	if !ok {
		return nil, domain.ErrRoadmapNotFound
	}
	return r.Clone(), nil
}

func (s *Store) SaveRoadmap(_ context.Context, r *domain.Roadmap) (*domain.Roadmap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := r.Clone()
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = s.now()
	}
	s.roadmaps[stored.UserID] = stored
	return stored.Clone(), nil
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

func cloneQuery(q domain.Query) domain.Query {
	if q.Response.Tags != nil {
		q.Response.Tags = append([]string(nil), q.Response.Tags...)
	}
	if q.Response.KeyPoints != nil {
		q.Response.KeyPoints = append([]string(nil), q.Response.KeyPoints...)
	}
	return q
}
