package ports

import (
	"context"

	"github.com/arthsaathi/finlit-engine/internal/core/domain"
)

// RecordQueryInput is the DTO passed from the transport layer to QueryService.
type RecordQueryInput struct {
	Question       string
	Language       string
	Response       domain.Response
	// IdempotencyKey identifies a submission across client retries. Empty
	// disables the duplicate check.
	IdempotencyKey string
}

// RecordQueryResult reports the stored query and the recomputed score.
type RecordQueryResult struct {
	// Query is nil when the submission was a retry of an earlier one.
	Query      *domain.Query
	TrustScore TrustScoreResult
	Duplicate  bool
}

// QueryHistory is a user's stored queries, newest first.
type QueryHistory struct {
	Queries  []domain.Query
	Fallback bool
}

// QueryService records questions and exposes history.
type QueryService interface {
	GetOrCreateUser(ctx context.Context, userID string) (*domain.User, error)
	RecordQuery(ctx context.Context, userID string, in RecordQueryInput) (*RecordQueryResult, error)
	ListQueries(ctx context.Context, userID string) (*QueryHistory, error)
}
