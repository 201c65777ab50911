package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/arthsaathi/finlit-engine/internal/core/domain"
	"github.com/arthsaathi/finlit-engine/internal/core/ports"
)

type stubTrustService struct {
	calculateFn func(ctx context.Context, userID string) (*ports.TrustScoreResult, error)
	profileFn   func(ctx context.Context, userID string) (*ports.TrustProfile, error)
	setFn       func(ctx context.Context, userID string, score int, reason string) (*ports.TrustScoreResult, error)
}

func (s *stubTrustService) CalculateTrustScore(ctx context.Context, userID string) (*ports.TrustScoreResult, error) {
	return s.calculateFn(ctx, userID)
}

func (s *stubTrustService) GetTrustProfile(ctx context.Context, userID string) (*ports.TrustProfile, error) {
	return s.profileFn(ctx, userID)
}

func (s *stubTrustService) SetTrustScore(ctx context.Context, userID string, score int, reason string) (*ports.TrustScoreResult, error) {
	return s.setFn(ctx, userID, score, reason)
}

type stubRoadmapService struct {
	getFn       func(ctx context.Context, userID string) (*ports.RoadmapResult, error)
	saveFn      func(ctx context.Context, userID string, r domain.Roadmap) (*domain.Roadmap, error)
	updateFn    func(ctx context.Context, userID string, u ports.RoadmapUpdate) (*domain.Roadmap, error)
	recommendFn func(ctx context.Context, userID, situation, goals string) (*ports.RecommendationResult, error)
}

func (s *stubRoadmapService) GetOrCreateRoadmap(ctx context.Context, userID string) (*ports.RoadmapResult, error) {
	return s.getFn(ctx, userID)
}

func (s *stubRoadmapService) SaveRoadmap(ctx context.Context, userID string, r domain.Roadmap) (*domain.Roadmap, error) {
	return s.saveFn(ctx, userID, r)
}

func (s *stubRoadmapService) UpdateRoadmap(ctx context.Context, userID string, u ports.RoadmapUpdate) (*domain.Roadmap, error) {
	return s.updateFn(ctx, userID, u)
}

func (s *stubRoadmapService) GenerateRecommendations(ctx context.Context, userID, situation, goals string) (*ports.RecommendationResult, error) {
	return s.recommendFn(ctx, userID, situation, goals)
}

type stubQueryService struct {
	userFn   func(ctx context.Context, userID string) (*domain.User, error)
	recordFn func(ctx context.Context, userID string, in ports.RecordQueryInput) (*ports.RecordQueryResult, error)
	listFn   func(ctx context.Context, userID string) (*ports.QueryHistory, error)
}

func (s *stubQueryService) GetOrCreateUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.userFn(ctx, userID)
}

func (s *stubQueryService) RecordQuery(ctx context.Context, userID string, in ports.RecordQueryInput) (*ports.RecordQueryResult, error) {
	return s.recordFn(ctx, userID, in)
}

func (s *stubQueryService) ListQueries(ctx context.Context, userID string) (*ports.QueryHistory, error) {
	return s.listFn(ctx, userID)
}

// newTestContext builds an echo context for method/path with the :userId
// parameter set.
func newTestContext(method, path, userID string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("userId")
	c.SetParamValues(userID)
	return c, rec
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) testEnvelope {
	t.Helper()
	var env testEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return env
}

func decodeData(t *testing.T, env testEnvelope, out any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("invalid data payload: %v", err)
	}
}

// httpCode extracts the status from an *echo.HTTPError returned by a handler.
func httpCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	return he.Code
}
