package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/arthsaathi/finlit-engine/internal/core/domain"
	"github.com/arthsaathi/finlit-engine/internal/pkg/metrics"
)

func TestTrustService_Calculate_NoQueries(t *testing.T) {
	store := newFlakyStore()
	seedUser(store, "u1")

	res, err := newTrustSvc(store).CalculateTrustScore(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Score != 50 || res.Fallback {
		t.Errorf("expected computed 50, got %+v", res)
	}
}

func TestTrustService_Calculate_UnknownUserNotPersisted(t *testing.T) {
	store := newFlakyStore()
	seedQuery(store, "ghost", "what is a loan?")

	res, err := newTrustSvc(store).CalculateTrustScore(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Score != 50 || res.Fallback {
		t.Errorf("expected 50 for unknown user, got %+v", res)
	}
	if _, err := store.Store.GetUser(context.Background(), "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected user to remain absent, got %v", err)
	}
}

func TestTrustService_Calculate_SingleQueryWithoutPositiveTag(t *testing.T) {
	store := newFlakyStore()
	seedUser(store, "u1")
	seedQuery(store, "u1", "What if I take a gold loan?", "loan", "gold")

	res, _ := newTrustSvc(store).CalculateTrustScore(context.Background(), "u1")
	if res.Score != 60 {
		t.Fatalf("expected 60, got %d", res.Score)
	}

	stored, _ := store.Store.GetUser(context.Background(), "u1")
	if stored.TrustScore != 60 {
		t.Errorf("expected score persisted, got %d", stored.TrustScore)
	}
}

func TestTrustService_Calculate_VeryActiveUser(t *testing.T) {
	store := newFlakyStore()
	seedUser(store, "u1")
	for i := 0; i < 6; i++ {
		seedQuery(store, "u1", "how to budget?", "budget")
	}

	res, _ := newTrustSvc(store).CalculateTrustScore(context.Background(), "u1")
	if res.Score != 70 {
		t.Errorf("expected 70, got %d", res.Score)
	}
}

func TestTrustService_Calculate_PositiveTagBonus(t *testing.T) {
	store := newFlakyStore()
	seedUser(store, "u1")
	for i := 0; i < 6; i++ {
		seedQuery(store, "u1", "how to budget?", "budget")
	}
	seedQuery(store, "u1", "I paid off my loan!", "loan", domain.TagPositive)

	res, _ := newTrustSvc(store).CalculateTrustScore(context.Background(), "u1")
	if res.Score != 85 {
		t.Errorf("expected 85, got %d", res.Score)
	}
}

func TestTrustService_Calculate_StorageDownFallsBack(t *testing.T) {
	before := testutil.ToFloat64(metrics.TrustScoreCalculationsTotal.WithLabelValues("fallback"))

	res, err := newTrustSvc(brokenStore()).CalculateTrustScore(context.Background(), "anyone")
	if err != nil {
		t.Fatalf("storage errors must not surface, got: %v", err)
	}
	if res.Score != 75 || !res.Fallback {
		t.Errorf("expected fallback 75, got %+v", res)
	}

	after := testutil.ToFloat64(metrics.TrustScoreCalculationsTotal.WithLabelValues("fallback"))
	if after-before != 1 {
		t.Errorf("expected fallback counter to increase by 1, got %v", after-before)
	}
}

func TestTrustService_Calculate_WriteFailureFallsBack(t *testing.T) {
	store := newFlakyStore()
	seedUser(store, "u1")
	store.updateScoreErr = errUnavailable

	res, err := newTrustSvc(store).CalculateTrustScore(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Score != 75 || !res.Fallback {
		t.Errorf("expected fallback 75 on write failure, got %+v", res)
	}
}

func TestTrustService_Calculate_MissingUserID(t *testing.T) {
	if _, err := newTrustSvc(newFlakyStore()).CalculateTrustScore(context.Background(), "  "); !errors.Is(err, domain.ErrMissingUserID) {
		t.Errorf("expected ErrMissingUserID, got %v", err)
	}
}

func TestTrustService_Profile_UnknownUser(t *testing.T) {
	p, err := newTrustSvc(newFlakyStore()).GetTrustProfile(context.Background(), "new")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Score != 50 || p.Fallback {
		t.Errorf("unexpected profile: %+v", p)
	}
	if p.Metrics.EngagementLevel != domain.EngagementNew || p.Metrics.TrustLevel != domain.TrustFair {
		t.Errorf("unexpected metrics: %+v", p.Metrics)
	}
	if len(p.Factors) != 0 {
		t.Errorf("expected no factors, got %+v", p.Factors)
	}
}

func TestTrustService_Profile_FactorsDoNotChangeScore(t *testing.T) {
	store := newFlakyStore()
	seedUser(store, "u1")
	seedQuery(store, "u1", "gold loan?", "loan")
	seedQuery(store, "u1", "sip?", "investment")
	seedQuery(store, "u1", "rd?")

	svc := newTrustSvc(store)
	calc, _ := svc.CalculateTrustScore(context.Background(), "u1")

	p, err := svc.GetTrustProfile(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Score != calc.Score || p.Score != 60 {
		t.Errorf("expected stored score 60, got %d", p.Score)
	}
	if len(p.Factors) != 2 {
		t.Fatalf("expected usage and diversity factors, got %+v", p.Factors)
	}
	if p.Metrics.TotalQueries != 3 || p.Metrics.RecentQueries != 3 || p.Metrics.EngagementLevel != domain.EngagementModerate {
		t.Errorf("unexpected metrics: %+v", p.Metrics)
	}
	if p.Metrics.TrustLevel != domain.TrustGood {
		t.Errorf("expected good trust level, got %s", p.Metrics.TrustLevel)
	}
}

func TestTrustService_Profile_StorageDown(t *testing.T) {
	p, err := newTrustSvc(brokenStore()).GetTrustProfile(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Score != 75 || !p.Fallback || p.Metrics.TotalQueries != 0 {
		t.Errorf("unexpected fallback profile: %+v", p)
	}
}

func TestTrustService_SetScore(t *testing.T) {
	store := newFlakyStore()
	svc := newTrustSvc(store)

	for _, bad := range []int{-1, 101} {
		if _, err := svc.SetTrustScore(context.Background(), "u1", bad, "test"); !errors.Is(err, domain.ErrInvalidScore) {
			t.Errorf("score %d: expected ErrInvalidScore, got %v", bad, err)
		}
	}

	res, err := svc.SetTrustScore(context.Background(), "u1", 90, "verified documents")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Score != 90 {
		t.Errorf("expected 90, got %d", res.Score)
	}
	stored, err := store.Store.GetUser(context.Background(), "u1")
	if err != nil || stored.TrustScore != 90 {
		t.Errorf("expected user created with score 90, got %+v, %v", stored, err)
	}
}

func TestTrustService_SetScore_StorageErrorSurfaces(t *testing.T) {
	store := newFlakyStore()
	seedUser(store, "u1")
	store.updateScoreErr = errUnavailable

	if _, err := newTrustSvc(store).SetTrustScore(context.Background(), "u1", 40, ""); !errors.Is(err, errUnavailable) {
		t.Errorf("expected wrapped storage error, got %v", err)
	}
}
