package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthsaathi/finlit-engine/internal/core/domain"
	"github.com/arthsaathi/finlit-engine/internal/core/ports"
	"github.com/arthsaathi/finlit-engine/internal/pkg/metrics"
)

// Recommender turns query text into recommendations. rules.Engine implements it.
type Recommender interface {
	Recommend(text string) []domain.Recommendation
}

// RoadmapService builds, merges and stores user roadmaps.
type RoadmapService struct {
	roadmaps    ports.RoadmapRepository
	queries     ports.QueryRepository
	recommender Recommender
	log         zerolog.Logger
	now         func() time.Time
}

// NewRoadmapService returns a RoadmapService.
func NewRoadmapService(
	roadmaps ports.RoadmapRepository,
	queries ports.QueryRepository,
	recommender Recommender,
	log zerolog.Logger,
) *RoadmapService {
	return &RoadmapService{
		roadmaps:    roadmaps,
		queries:     queries,
		recommender: recommender,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// GetOrCreateRoadmap returns the stored roadmap, or persists and returns the
// default one. If storage fails the default is returned unsaved.
func (s *RoadmapService) GetOrCreateRoadmap(ctx context.Context, userID string) (*ports.RoadmapResult, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}

	existing, err := s.roadmaps.GetRoadmap(ctx, userID)
	if err == nil {
		return &ports.RoadmapResult{Roadmap: existing}, nil
	}

	def := domain.DefaultRoadmap(userID, s.now())
	if !errors.Is(err, domain.ErrRoadmapNotFound) {
		storageFallback(s.log, userID, "get_roadmap", err)
		return &ports.RoadmapResult{Roadmap: def, Fallback: true}, nil
	}

	saved, err := s.roadmaps.SaveRoadmap(ctx, def.Clone())
	if err != nil {
		storageFallback(s.log, userID, "save_roadmap", err)
		return &ports.RoadmapResult{Roadmap: def, Fallback: true}, nil
	}

	metrics.RoadmapsCreatedTotal.Inc()
	s.log.Info().Str("user_id", userID).Msg("default roadmap created")

	return &ports.RoadmapResult{Roadmap: saved}, nil
}

// SaveRoadmap stores roadmap as the user's whole roadmap.
func (s *RoadmapService) SaveRoadmap(ctx context.Context, userID string, roadmap domain.Roadmap) (*domain.Roadmap, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}

	roadmap.UserID = userID
	roadmap.UpdatedAt = s.now()

	saved, err := s.roadmaps.SaveRoadmap(ctx, &roadmap)
	if err != nil {
		return nil, fmt.Errorf("save roadmap: %w", err)
	}
	return saved, nil
}

// UpdateRoadmap merges update into the stored roadmap field by field. Fields
// left nil in update keep their stored value.
func (s *RoadmapService) UpdateRoadmap(ctx context.Context, userID string, update ports.RoadmapUpdate) (*domain.Roadmap, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}

	current, err := s.roadmaps.GetRoadmap(ctx, userID)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrRoadmapNotFound):
		current = &domain.Roadmap{UserID: userID}
	default:
		return nil, fmt.Errorf("update roadmap: %w", err)
	}

	merged := mergeRoadmap(current, update)
	merged.UserID = userID
	merged.UpdatedAt = s.now()

	saved, err := s.roadmaps.SaveRoadmap(ctx, merged)
	if err != nil {
		return nil, fmt.Errorf("update roadmap: %w", err)
	}

	s.log.Debug().Str("user_id", userID).Msg("roadmap updated")
	return saved, nil
}

func mergeRoadmap(current *domain.Roadmap, update ports.RoadmapUpdate) *domain.Roadmap {
	merged := current.Clone()
	if update.Progress != nil {
		p := *update.Progress
		merged.Progress = &p
	}
	if update.CurrentStatus != nil {
		cs := *update.CurrentStatus
		merged.CurrentStatus = &cs
	}
	if update.FinancialGoals != nil {
		merged.FinancialGoals = append([]domain.FinancialGoal{}, update.FinancialGoals...)
	}
	if update.Recommendations != nil {
		merged.Recommendations = append([]domain.Recommendation{}, update.Recommendations...)
	}
	return merged
}

// GenerateRecommendations derives recommendations from the topics in the
// user's question history. It never writes and never returns an empty list.
func (s *RoadmapService) GenerateRecommendations(ctx context.Context, userID string, currentSituation, goals string) (*ports.RecommendationResult, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}

	result := &ports.RecommendationResult{}

	queries, err := s.queries.GetUserQueries(ctx, userID)
	if err != nil {
		storageFallback(s.log, userID, "get_user_queries", err)
		queries = nil
		result.Fallback = true
	}

	questions := make([]string, len(queries))
	for i, q := range queries {
		questions[i] = strings.ToLower(q.Question)
	}

	result.Recommendations = s.recommender.Recommend(strings.Join(questions, " "))
	for _, r := range result.Recommendations {
		metrics.RecommendationsGeneratedTotal.WithLabelValues(r.Type).Inc()
	}

	s.log.Debug().
		Str("user_id", userID).
		Int("queries", len(queries)).
		Int("recommendations", len(result.Recommendations)).
		Bool("has_situation", currentSituation != "").
		Bool("has_goals", goals != "").
		Msg("recommendations generated")

	return result, nil
}
