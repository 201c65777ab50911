package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthsaathi/finlit-engine/internal/core/domain"
	"github.com/arthsaathi/finlit-engine/internal/core/rules"
	"github.com/arthsaathi/finlit-engine/internal/infrastructure/db/memory"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

var (
	discardLogger  = zerolog.Nop()
	errUnavailable = errors.New("store unavailable")
	testNow        = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
)

// flakyStore wraps the in-memory store and fails selected calls.
type flakyStore struct {
	*memory.Store
	getUserErr     error
	createUserErr  error
	updateScoreErr error
	saveQueryErr   error
	getQueriesErr  error
	getRoadmapErr  error
	saveRoadmapErr error

	roadmapSaves int
}

func newFlakyStore() *flakyStore {
	return &flakyStore{Store: memory.NewStore(0)}
}

// brokenStore fails every call.
func brokenStore() *flakyStore {
	s := newFlakyStore()
	s.getUserErr = errUnavailable
	s.createUserErr = errUnavailable
	s.updateScoreErr = errUnavailable
	s.saveQueryErr = errUnavailable
	s.getQueriesErr = errUnavailable
	s.getRoadmapErr = errUnavailable
	s.saveRoadmapErr = errUnavailable
	return s
}

func (s *flakyStore) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	if s.getUserErr != nil {
		return nil, s.getUserErr
	}
	return s.Store.GetUser(ctx, userID)
}

func (s *flakyStore) CreateUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	if s.createUserErr != nil {
		return nil, s.createUserErr
	}
	return s.Store.CreateUser(ctx, u)
}

func (s *flakyStore) UpdateUserScore(ctx context.Context, userID string, score int) error {
	if s.updateScoreErr != nil {
		return s.updateScoreErr
	}
	return s.Store.UpdateUserScore(ctx, userID, score)
}

func (s *flakyStore) SaveQuery(ctx context.Context, q *domain.Query) (*domain.Query, error) {
	if s.saveQueryErr != nil {
		return nil, s.saveQueryErr
	}
	return s.Store.SaveQuery(ctx, q)
}

func (s *flakyStore) GetUserQueries(ctx context.Context, userID string) ([]domain.Query, error) {
	if s.getQueriesErr != nil {
		return nil, s.getQueriesErr
	}
	return s.Store.GetUserQueries(ctx, userID)
}

func (s *flakyStore) GetRoadmap(ctx context.Context, userID string) (*domain.Roadmap, error) {
	if s.getRoadmapErr != nil {
		return nil, s.getRoadmapErr
	}
	return s.Store.GetRoadmap(ctx, userID)
}

func (s *flakyStore) SaveRoadmap(ctx context.Context, r *domain.Roadmap) (*domain.Roadmap, error) {
	if s.saveRoadmapErr != nil {
		return nil, s.saveRoadmapErr
	}
	s.roadmapSaves++
	return s.Store.SaveRoadmap(ctx, r)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func seedUser(s *flakyStore, userID string) {
	_, _ = s.Store.CreateUser(context.Background(), domain.NewUser(userID, testNow))
}

func seedQuery(s *flakyStore, userID, question string, tags ...string) {
	_, _ = s.Store.SaveQuery(context.Background(), &domain.Query{
		UserID:   userID,
		Question: question,
		Language: "en",
		Response: domain.Response{StoryResponse: "story", Tags: tags},
	})
}

func newTrustSvc(s *flakyStore) *TrustService {
	return NewTrustService(s, s, discardLogger)
}

func newRoadmapSvc(s *flakyStore) *RoadmapService {
	return NewRoadmapService(s, s, rules.NewDefaultEngine(), discardLogger)
}

func recTypes(recs []domain.Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Type
	}
	return out
}
