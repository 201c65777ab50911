package ports

import (
	"context"

	"github.com/arthsaathi/finlit-engine/internal/core/domain"
)

// TrustScoreResult is a computed or fallback score.
type TrustScoreResult struct {
	UserID string
	Score  int
	// Fallback is true when storage failed and Score is domain.FallbackTrustScore.
	Fallback bool
}

// TrustProfile is the read model behind GET /score/:userId.
type TrustProfile struct {
	UserID   string
	Score    int
	Metrics  domain.TrustMetrics
	Factors  []domain.TrustFactor
	Fallback bool
}

// TrustService computes and explains trust scores.
type TrustService interface {
	CalculateTrustScore(ctx context.Context, userID string) (*TrustScoreResult, error)
	GetTrustProfile(ctx context.Context, userID string) (*TrustProfile, error)
	SetTrustScore(ctx context.Context, userID string, score int, reason string) (*TrustScoreResult, error)
}
