package handler

import (
	"github.com/arthsaathi/finlit-engine/internal/core/domain"
	"github.com/arthsaathi/finlit-engine/internal/core/ports"
)

type setScoreRequest struct {
	Score  *int   `json:"score" validate:"required,min=0,max=100"`
	Reason string `json:"reason"`
}

type trustScoreResponse struct {
	UserID     string `json:"userId"`
	TrustScore int    `json:"trustScore"`
}

type trustProfileResponse struct {
	UserID     string               `json:"userId"`
	TrustScore int                  `json:"trustScore"`
	Metrics    domain.TrustMetrics  `json:"metrics"`
	Factors    []domain.TrustFactor `json:"factors"`
}

func toTrustScoreResponse(r *ports.TrustScoreResult) trustScoreResponse {
	return trustScoreResponse{UserID: r.UserID, TrustScore: r.Score}
}

func toTrustProfileResponse(p *ports.TrustProfile) trustProfileResponse {
	factors := p.Factors
	if factors == nil {
		factors = []domain.TrustFactor{}
	}
	return trustProfileResponse{
		UserID:     p.UserID,
		TrustScore: p.Score,
		Metrics:    p.Metrics,
		Factors:    factors,
	}
}
