package handler

import (
	"time"

	"github.com/arthsaathi/finlit-engine/internal/core/domain"
	"github.com/arthsaathi/finlit-engine/internal/core/ports"
)

type responseRequest struct {
	StoryResponse string   `json:"storyResponse"`
	Tags          []string `json:"tags"`
	RiskLevel     string   `json:"riskLevel" validate:"omitempty,oneof=low medium high"`
	KeyPoints     []string `json:"keyPoints"`
}

type recordQueryRequest struct {
	Question string          `json:"question" validate:"required"`
	Language string          `json:"language"`
	Response responseRequest `json:"response"`
}

type userResponse struct {
	ID         string    `json:"id"`
	TrustScore int       `json:"trustScore"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type recordQueryResponse struct {
	Query      *domain.Query `json:"query,omitempty"`
	TrustScore int           `json:"trustScore"`
	Duplicate  bool          `json:"duplicate"`
}

type queryHistoryResponse struct {
	Queries []domain.Query `json:"queries"`
}

func (r recordQueryRequest) toInput() ports.RecordQueryInput {
	tags := r.Response.Tags
	if tags == nil {
		tags = []string{}
	}
	return ports.RecordQueryInput{
		Question: r.Question,
		Language: r.Language,
		Response: domain.Response{
			StoryResponse: r.Response.StoryResponse,
			Tags:          tags,
			RiskLevel:     domain.RiskLevel(r.Response.RiskLevel),
			KeyPoints:     r.Response.KeyPoints,
		},
	}
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:         u.ID,
		TrustScore: u.TrustScore,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
