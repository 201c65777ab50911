package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthsaathi/finlit-engine/internal/core/domain"
	"github.com/arthsaathi/finlit-engine/internal/core/ports"
	"github.com/arthsaathi/finlit-engine/internal/pkg/metrics"
)

const defaultLanguage = "en"

// DedupChecker abstracts the retried-submission store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, userID, idempotencyKey string) (bool, error)
	Mark(ctx context.Context, userID, idempotencyKey string) error
}

// ScoreCalculator recomputes a user's trust score. TrustService implements it.
type ScoreCalculator interface {
	CalculateTrustScore(ctx context.Context, userID string) (*ports.TrustScoreResult, error)
}

// QueryService records user questions and keeps the trust score current.
type QueryService struct {
	users   ports.UserRepository
	queries ports.QueryRepository
	scorer  ScoreCalculator
	dedup   DedupChecker
	log     zerolog.Logger
	now     func() time.Time
}

// NewQueryService returns a QueryService. dedup may be nil, in which case
// every submission is stored. Submissions without an idempotency key are
// always stored.
func NewQueryService(
	users ports.UserRepository,
	queries ports.QueryRepository,
	scorer ScoreCalculator,
	dedup DedupChecker,
	log zerolog.Logger,
) *QueryService {
	return &QueryService{
		users:   users,
		queries: queries,
		scorer:  scorer,
		dedup:   dedup,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// GetOrCreateUser returns the user's profile, creating it on first use.
func (s *QueryService) GetOrCreateUser(ctx context.Context, userID string) (*domain.User, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}

	user, err := ensureUser(ctx, s.users, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("get or create user: %w", err)
	}
	return user, nil
}

// RecordQuery stores a question with its advice and recomputes the score.
func (s *QueryService) RecordQuery(ctx context.Context, userID string, in ports.RecordQueryInput) (*ports.RecordQueryResult, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	question := strings.TrimSpace(in.Question)
	if question == "" {
		return nil, domain.ErrInvalidQuery
	}
	language := strings.ToLower(strings.TrimSpace(in.Language))
	if language == "" {
		language = defaultLanguage
	}

	// 1. Retried submissions are not stored twice.
	key := strings.TrimSpace(in.IdempotencyKey)
	if s.isDuplicate(ctx, userID, key) {
		score, err := s.scorer.CalculateTrustScore(ctx, userID)
		if err != nil {
			return nil, err
		}
		return &ports.RecordQueryResult{TrustScore: *score, Duplicate: true}, nil
	}

	// 2. Users are created lazily on their first question.
	if _, err := ensureUser(ctx, s.users, userID, s.now()); err != nil {
		return nil, fmt.Errorf("record query: %w", err)
	}

	// 3. Append to history.
	saved, err := s.queries.SaveQuery(ctx, &domain.Query{
		UserID:   userID,
		Question: question,
		Language: language,
		Response: in.Response,
	})
	if err != nil {
		return nil, fmt.Errorf("record query: %w", err)
	}

	if s.dedup != nil && key != "" {
		if err := s.dedup.Mark(ctx, userID, key); err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to set dedup key")
		}
	}

	// 4. Recompute the score; this never fails on storage errors.
	score, err := s.scorer.CalculateTrustScore(ctx, userID)
	if err != nil {
		return nil, err
	}

	metrics.QueriesRecordedTotal.WithLabelValues(language).Inc()

	s.log.Info().
		Str("user_id", userID).
		Str("query_id", saved.ID).
		Str("language", language).
		Int("trust_score", score.Score).
		Msg("query recorded")

	return &ports.RecordQueryResult{Query: saved, TrustScore: *score}, nil
}

// ListQueries returns the user's history, newest first. Storage failures
// yield an empty history.
func (s *QueryService) ListQueries(ctx context.Context, userID string) (*ports.QueryHistory, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}

	queries, err := s.queries.GetUserQueries(ctx, userID)
	if err != nil {
		storageFallback(s.log, userID, "get_user_queries", err)
		return &ports.QueryHistory{Queries: []domain.Query{}, Fallback: true}, nil
	}
	if queries == nil {
		queries = []domain.Query{}
	}
	return &ports.QueryHistory{Queries: queries}, nil
}

func (s *QueryService) isDuplicate(ctx context.Context, userID, key string) bool {
	if s.dedup == nil || key == "" {
		return false
	}

	dup, err := s.dedup.IsDuplicate(ctx, userID, key)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("dedup check failed, processing anyway")
		return false
	}
	if dup {
		metrics.QueriesDedupTotal.WithLabelValues("hit").Inc()
		s.log.Debug().Str("user_id", userID).Str("idempotency_key", key).Msg("retried query skipped")
		return true
	}
	metrics.QueriesDedupTotal.WithLabelValues("miss").Inc()
	return false
}
