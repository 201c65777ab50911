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

// TrustService computes, stores and explains trust scores.
type TrustService struct {
	users   ports.UserRepository
	queries ports.QueryRepository
	log     zerolog.Logger
	now     func() time.Time
}

// NewTrustService returns a TrustService over the given repositories.
func NewTrustService(users ports.UserRepository, queries ports.QueryRepository, log zerolog.Logger) *TrustService {
	return &TrustService{
		users:   users,
		queries: queries,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// CalculateTrustScore recomputes the user's score from their query history
// and stores it. Unknown users score the default without a write. Storage
// failures never surface: the fallback score is returned instead.
func (s *TrustService) CalculateTrustScore(ctx context.Context, userID string) (*ports.TrustScoreResult, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}

	queries, err := s.queries.GetUserQueries(ctx, userID)
	if err != nil {
		return s.fallbackScore(userID, "get_user_queries", err), nil
	}

	if _, err := s.users.GetUser(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.TrustScoreCalculationsTotal.WithLabelValues("unknown_user").Inc()
			return &ports.TrustScoreResult{UserID: userID, Score: domain.DefaultTrustScore}, nil
		}
		return s.fallbackScore(userID, "get_user", err), nil
	}

	score := domain.ComputeTrustScore(queries)

	if err := s.users.UpdateUserScore(ctx, userID, score); err != nil {
		return s.fallbackScore(userID, "update_user_score", err), nil
	}

	metrics.TrustScoreCalculationsTotal.WithLabelValues("computed").Inc()
	metrics.TrustScoreValue.Observe(float64(score))

	s.log.Debug().
		Str("user_id", userID).
		Int("queries", len(queries)).
		Int("score", score).
		Msg("trust score calculated")

	return &ports.TrustScoreResult{UserID: userID, Score: score}, nil
}

// GetTrustProfile returns the stored score together with display metrics and
// explanatory factors. Nothing is written.
func (s *TrustService) GetTrustProfile(ctx context.Context, userID string) (*ports.TrustProfile, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}

	profile := &ports.TrustProfile{UserID: userID, Score: domain.DefaultTrustScore}

	user, err := s.users.GetUser(ctx, userID)
	switch {
	case err == nil:
		profile.Score = user.TrustScore
	case errors.Is(err, domain.ErrUserNotFound):
	default:
		s.logFallback(userID, "get_user", err)
		profile.Score = domain.FallbackTrustScore
		profile.Fallback = true
	}

	queries, err := s.queries.GetUserQueries(ctx, userID)
	if err != nil {
		s.logFallback(userID, "get_user_queries", err)
		queries = nil
		profile.Fallback = true
	}

	profile.Metrics = domain.ComputeTrustMetrics(queries, profile.Score, s.now())
	profile.Factors = domain.ComputeTrustFactors(queries)
	return profile, nil
}

// SetTrustScore overrides the user's score, creating the user if needed.
// Unlike the computed path, storage errors are returned to the caller.
func (s *TrustService) SetTrustScore(ctx context.Context, userID string, score int, reason string) (*ports.TrustScoreResult, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	if !domain.ValidTrustScore(score) {
		return nil, domain.ErrInvalidScore
	}

	if _, err := ensureUser(ctx, s.users, userID, s.now()); err != nil {
		return nil, fmt.Errorf("set trust score: %w", err)
	}
	if err := s.users.UpdateUserScore(ctx, userID, score); err != nil {
		return nil, fmt.Errorf("set trust score: %w", err)
	}

	s.log.Info().
		Str("user_id", userID).
		Int("score", score).
		Str("reason", reason).
		Msg("trust score set manually")

	return &ports.TrustScoreResult{UserID: userID, Score: score}, nil
}

func (s *TrustService) fallbackScore(userID, op string, err error) *ports.TrustScoreResult {
	s.logFallback(userID, op, err)
	metrics.TrustScoreCalculationsTotal.WithLabelValues("fallback").Inc()
	return &ports.TrustScoreResult{
		UserID:   userID,
		Score:    domain.FallbackTrustScore,
		Fallback: true,
	}
}

func (s *TrustService) logFallback(userID, op string, err error) {
	storageFallback(s.log, userID, op, err)
}

// storageFallback records a swallowed storage failure.
func storageFallback(log zerolog.Logger, userID, op string, err error) {
	metrics.StorageFallbacksTotal.WithLabelValues(op).Inc()
	log.Warn().
		Err(err).
		Str("user_id", userID).
		Str("operation", op).
		Msg("storage unavailable, using fallback")
}

func requireUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return domain.ErrMissingUserID
	}
	return nil
}

// ensureUser returns the stored user, creating it with the default score when absent.
func ensureUser(ctx context.Context, users ports.UserRepository, userID string, now time.Time) (*domain.User, error) {
	user, err := users.GetUser(ctx, userID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	return users.CreateUser(ctx, domain.NewUser(userID, now))
}
