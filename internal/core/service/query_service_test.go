package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/arthsaathi/finlit-engine/internal/core/domain"
	"github.com/arthsaathi/finlit-engine/internal/core/ports"
	"github.com/arthsaathi/finlit-engine/internal/infrastructure/db/redis"
)

type stubDedup struct {
	dupResult bool
	dupErr    error
	markErr   error
	marked    []string
}

func (d *stubDedup) IsDuplicate(_ context.Context, userID, idempotencyKey string) (bool, error) {
	return d.dupResult, d.dupErr
}

func (d *stubDedup) Mark(_ context.Context, userID, idempotencyKey string) error {
	if d.markErr != nil {
		return d.markErr
	}
	d.marked = append(d.marked, userID+":"+idempotencyKey)
	return nil
}

func newRedisDedup(t *testing.T) *redis.DedupChecker {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return redis.NewDedupChecker(client, time.Minute)
}

func newQuerySvc(store *flakyStore, dedup DedupChecker) *QueryService {
	return NewQueryService(store, store, newTrustSvc(store), dedup, discardLogger)
}

func goldLoanInput() ports.RecordQueryInput {
	return ports.RecordQueryInput{
		Question: "  What if I take a gold loan?  ",
		Language: "EN",
		Response: domain.Response{
			StoryResponse: "Ramesh pledged his gold...",
			Tags:          []string{"loan", "gold"},
			RiskLevel:     domain.RiskMedium,
		},
		IdempotencyKey: "req-1",
	}
}

func TestQueryService_Record_HappyPath(t *testing.T) {
	store := newFlakyStore()
	dedup := &stubDedup{}

	res, err := newQuerySvc(store, dedup).RecordQuery(context.Background(), "u1", goldLoanInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Duplicate || res.Query == nil {
		t.Fatalf("expected stored query, got %+v", res)
	}
	if res.Query.ID == "" || res.Query.CreatedAt.IsZero() {
		t.Errorf("expected id and createdAt assigned, got %+v", res.Query)
	}
	if res.Query.Question != "What if I take a gold loan?" || res.Query.Language != "en" {
		t.Errorf("expected normalised question and language, got %q %q", res.Query.Question, res.Query.Language)
	}
	if res.TrustScore.Score != 60 {
		t.Errorf("expected score 60 after first query, got %d", res.TrustScore.Score)
	}

	user, err := store.Store.GetUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected user created lazily: %v", err)
	}
	if user.TrustScore != 60 {
		t.Errorf("expected stored score 60, got %d", user.TrustScore)
	}
	if len(dedup.marked) != 1 || dedup.marked[0] != "u1:req-1" {
		t.Errorf("expected idempotency key marked, got %v", dedup.marked)
	}
}

func TestQueryService_Record_DefaultsLanguage(t *testing.T) {
	store := newFlakyStore()
	in := goldLoanInput()
	in.Language = ""

	res, err := newQuerySvc(store, nil).RecordQuery(context.Background(), "u1", in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Query.Language != "en" {
		t.Errorf("expected default language en, got %q", res.Query.Language)
	}
}

func TestQueryService_Record_Validation(t *testing.T) {
	svc := newQuerySvc(newFlakyStore(), nil)

	if _, err := svc.RecordQuery(context.Background(), "", goldLoanInput()); !errors.Is(err, domain.ErrMissingUserID) {
		t.Errorf("expected ErrMissingUserID, got %v", err)
	}
	if _, err := svc.RecordQuery(context.Background(), "u1", ports.RecordQueryInput{Question: "   "}); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestQueryService_Record_DuplicateSkipped(t *testing.T) {
	store := newFlakyStore()
	seedUser(store, "u1")
	seedQuery(store, "u1", "What if I take a gold loan?", "loan")
	dedup := &stubDedup{dupResult: true}

	res, err := newQuerySvc(store, dedup).RecordQuery(context.Background(), "u1", goldLoanInput())
	if err != nil {
		t.Fatalf("expected no error for duplicate, got: %v", err)
	}
	if !res.Duplicate || res.Query != nil {
		t.Errorf("expected duplicate result, got %+v", res)
	}
	if res.TrustScore.Score != 60 {
		t.Errorf("expected current score, got %d", res.TrustScore.Score)
	}
	qs, _ := store.Store.GetUserQueries(context.Background(), "u1")
	if len(qs) != 1 {
		t.Errorf("expected duplicate not stored, got %d queries", len(qs))
	}
}

func TestQueryService_Record_WithoutKeySkipsDedup(t *testing.T) {
	store := newFlakyStore()
	dedup := &stubDedup{dupResult: true}
	in := goldLoanInput()
	in.IdempotencyKey = "  "

	res, err := newQuerySvc(store, dedup).RecordQuery(context.Background(), "u1", in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Duplicate || res.Query == nil {
		t.Errorf("expected query stored without a key, got %+v", res)
	}
	if len(dedup.marked) != 0 {
		t.Errorf("expected nothing marked, got %v", dedup.marked)
	}
}

func TestQueryService_Record_RepeatedQuestionIsStoredEachTime(t *testing.T) {
	store := newFlakyStore()
	svc := newQuerySvc(store, newRedisDedup(t))

	var res *ports.RecordQueryResult
	for i := 0; i < 6; i++ {
		in := goldLoanInput()
		in.IdempotencyKey = fmt.Sprintf("req-%d", i)
		var err error
		res, err = svc.RecordQuery(context.Background(), "u1", in)
		if err != nil {
			t.Fatalf("submission %d: %v", i, err)
		}
		if res.Duplicate {
			t.Fatalf("submission %d treated as duplicate", i)
		}
	}

	qs, _ := store.Store.GetUserQueries(context.Background(), "u1")
	if len(qs) != 6 {
		t.Errorf("expected 6 stored queries, got %d", len(qs))
	}
	if res.TrustScore.Score != 70 {
		t.Errorf("expected score 70 after six queries, got %d", res.TrustScore.Score)
	}
}

func TestQueryService_Record_RetryWithSameKeyStoredOnce(t *testing.T) {
	store := newFlakyStore()
	svc := newQuerySvc(store, newRedisDedup(t))

	first, err := svc.RecordQuery(context.Background(), "u1", goldLoanInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	retry, err := svc.RecordQuery(context.Background(), "u1", goldLoanInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Duplicate || !retry.Duplicate {
		t.Errorf("expected only the retry flagged, got %v then %v", first.Duplicate, retry.Duplicate)
	}
	if retry.TrustScore.Score != 60 {
		t.Errorf("expected current score on retry, got %d", retry.TrustScore.Score)
	}

	qs, _ := store.Store.GetUserQueries(context.Background(), "u1")
	if len(qs) != 1 {
		t.Errorf("expected retry not stored, got %d queries", len(qs))
	}
}

func TestQueryService_Record_DedupErrorProcessesAnyway(t *testing.T) {
	store := newFlakyStore()
	dedup := &stubDedup{dupErr: errors.New("redis timeout"), markErr: errors.New("redis timeout")}

	res, err := newQuerySvc(store, dedup).RecordQuery(context.Background(), "u1", goldLoanInput())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if res.Duplicate || res.Query == nil {
		t.Errorf("expected query stored when dedup errors, got %+v", res)
	}
}

func TestQueryService_Record_SaveFailureSurfaces(t *testing.T) {
	store := newFlakyStore()
	store.saveQueryErr = errUnavailable

	if _, err := newQuerySvc(store, nil).RecordQuery(context.Background(), "u1", goldLoanInput()); !errors.Is(err, errUnavailable) {
		t.Errorf("expected storage error, got %v", err)
	}
}

func TestQueryService_Record_ScoreFallbackDoesNotFail(t *testing.T) {
	store := newFlakyStore()
	store.updateScoreErr = errUnavailable

	res, err := newQuerySvc(store, nil).RecordQuery(context.Background(), "u1", goldLoanInput())
	if err != nil {
		t.Fatalf("scoring failures must not fail the request, got: %v", err)
	}
	if res.TrustScore.Score != 75 || !res.TrustScore.Fallback {
		t.Errorf("expected fallback score, got %+v", res.TrustScore)
	}
}

func TestQueryService_List(t *testing.T) {
	store := newFlakyStore()
	seedQuery(store, "u1", "first")
	seedQuery(store, "u1", "second")

	h, err := newQuerySvc(store, nil).ListQueries(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(h.Queries) != 2 || h.Queries[0].Question != "second" {
		t.Errorf("expected newest first, got %+v", h.Queries)
	}

	h, err = newQuerySvc(brokenStore(), nil).ListQueries(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !h.Fallback || h.Queries == nil || len(h.Queries) != 0 {
		t.Errorf("expected empty fallback history, got %+v", h)
	}
}

func TestQueryService_GetOrCreateUser(t *testing.T) {
	store := newFlakyStore()
	svc := newQuerySvc(store, nil)

	u, err := svc.GetOrCreateUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != "u1" || u.TrustScore != domain.DefaultTrustScore {
		t.Errorf("unexpected user: %+v", u)
	}

	store.getUserErr = errUnavailable
	if _, err := svc.GetOrCreateUser(context.Background(), "u1"); !errors.Is(err, errUnavailable) {
		t.Errorf("expected storage error, got %v", err)
	}
}
