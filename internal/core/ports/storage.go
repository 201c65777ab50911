package ports

import (
	"context"

	"github.com/arthsaathi/finlit-engine/internal/core/domain"
)

// UserRepository persists user profiles.
type UserRepository interface {
	// GetUser returns domain.ErrUserNotFound when no profile exists.
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	// CreateUser stores a fresh profile. If one already exists it is returned unchanged.
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdateUserScore sets the score and bumps updated_at.
	UpdateUserScore(ctx context.Context, userID string, score int) error
}

// QueryRepository is the append-only store of user questions.
type QueryRepository interface {
	// SaveQuery assigns the query's ID and CreatedAt and stores it.
	SaveQuery(ctx context.Context, q *domain.Query) (*domain.Query, error)
	// GetUserQueries returns the user's most recent queries, newest first.
	// Implementations cap the window and return an empty list rather than an
	// error when the backing store cannot sort or is unavailable.
	GetUserQueries(ctx context.Context, userID string) ([]domain.Query, error)
}

// RoadmapRepository persists one roadmap per user.
type RoadmapRepository interface {
	// GetRoadmap returns domain.ErrRoadmapNotFound when the user has none.
	GetRoadmap(ctx context.Context, userID string) (*domain.Roadmap, error)
	// SaveRoadmap replaces the user's roadmap, creating it if absent.
	SaveRoadmap(ctx context.Context, r *domain.Roadmap) (*domain.Roadmap, error)
}

// Storage is everything the engine needs from persistence.
type Storage interface {
	UserRepository
	QueryRepository
	RoadmapRepository
	Ping(ctx context.Context) error
}
