package ports

import (
	"context"

	"github.com/arthsaathi/finlit-engine/internal/core/domain"
)

// RoadmapResult is a stored or synthesized roadmap.
type RoadmapResult struct {
	Roadmap *domain.Roadmap
	// Fallback is true when storage failed and Roadmap is an unsaved default.
	Fallback bool
}

// RoadmapUpdate carries the fields a caller wants to replace. Nil fields keep
// their stored value.
type RoadmapUpdate struct {
	Progress        *domain.Progress
	CurrentStatus   *domain.CurrentStatus
	FinancialGoals  []domain.FinancialGoal
	Recommendations []domain.Recommendation
}

// RecommendationResult is the output of GenerateRecommendations.
type RecommendationResult struct {
	Recommendations []domain.Recommendation
	// Fallback is true when the query history could not be read.
	Fallback bool
}

// RoadmapService builds and maintains user roadmaps.
type RoadmapService interface {
	GetOrCreateRoadmap(ctx context.Context, userID string) (*RoadmapResult, error)
	SaveRoadmap(ctx context.Context, userID string, roadmap domain.Roadmap) (*domain.Roadmap, error)
	UpdateRoadmap(ctx context.Context, userID string, update RoadmapUpdate) (*domain.Roadmap, error)
	GenerateRecommendations(ctx context.Context, userID string, currentSituation, goals string) (*RecommendationResult, error)
}
