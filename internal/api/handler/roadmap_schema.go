package handler

import (
	"github.com/arthsaathi/finlit-engine/internal/core/domain"
	"github.com/arthsaathi/finlit-engine/internal/core/ports"
)

type goalRequest struct {
	ID       string  `json:"id"`
	Title    string  `json:"title" validate:"required"`
	Target   float64 `json:"target" validate:"gte=0"`
	Current  float64 `json:"current" validate:"gte=0"`
	Priority string  `json:"priority" validate:"omitempty,oneof=high medium low"`
}

type statusRequest struct {
	Savings     float64 `json:"savings" validate:"gte=0"`
	Investments float64 `json:"investments" validate:"gte=0"`
	Loans       float64 `json:"loans" validate:"gte=0"`
}

type recommendationRequest struct {
	Type             string `json:"type" validate:"required"`
	Title            string `json:"title" validate:"required"`
	Description      string `json:"description"`
	Priority         string `json:"priority" validate:"omitempty,oneof=high medium low"`
	EstimatedSavings string `json:"estimatedSavings"`
	EstimatedReturns string `json:"estimatedReturns"`
	TargetAmount     string `json:"targetAmount"`
	EstimatedCost    string `json:"estimatedCost"`
}

type progressRequest struct {
	Completed int `json:"completed" validate:"gte=0"`
	Total     int `json:"total" validate:"gte=0"`
}

// roadmapRequest is the body of POST and PUT /user/:userId/roadmap. On PUT,
// omitted fields keep their stored value.
type roadmapRequest struct {
	FinancialGoals  []goalRequest           `json:"financialGoals" validate:"omitempty,dive"`
	CurrentStatus   *statusRequest          `json:"currentStatus"`
	Recommendations []recommendationRequest `json:"recommendations" validate:"omitempty,dive"`
	Progress        *progressRequest        `json:"progress"`
}

type recommendationsRequest struct {
	CurrentSituation string `json:"currentSituation"`
	Goals            string `json:"goals"`
}

type recommendationsResponse struct {
	Recommendations []domain.Recommendation `json:"recommendations"`
}

func (r roadmapRequest) goals() []domain.FinancialGoal {
	if r.FinancialGoals == nil {
		return nil
	}
	out := make([]domain.FinancialGoal, len(r.FinancialGoals))
	for i, g := range r.FinancialGoals {
		out[i] = domain.FinancialGoal{
			ID:       g.ID,
			Title:    g.Title,
			Target:   g.Target,
			Current:  g.Current,
			Priority: domain.Priority(g.Priority),
		}
	}
	return out
}

func (r roadmapRequest) recommendations() []domain.Recommendation {
	if r.Recommendations == nil {
		return nil
	}
	out := make([]domain.Recommendation, len(r.Recommendations))
	for i, rec := range r.Recommendations {
		out[i] = domain.Recommendation{
			Type:             rec.Type,
			Title:            rec.Title,
			Description:      rec.Description,
			Priority:         domain.Priority(rec.Priority),
			EstimatedSavings: rec.EstimatedSavings,
			EstimatedReturns: rec.EstimatedReturns,
			TargetAmount:     rec.TargetAmount,
			EstimatedCost:    rec.EstimatedCost,
		}
	}
	return out
}

func (r roadmapRequest) status() *domain.CurrentStatus {
	if r.CurrentStatus == nil {
		return nil
	}
	return &domain.CurrentStatus{
		Savings:     r.CurrentStatus.Savings,
		Investments: r.CurrentStatus.Investments,
		Loans:       r.CurrentStatus.Loans,
	}
}

func (r roadmapRequest) progress() *domain.Progress {
	if r.Progress == nil {
		return nil
	}
	return &domain.Progress{Completed: r.Progress.Completed, Total: r.Progress.Total}
}

func (r roadmapRequest) toRoadmap() domain.Roadmap {
	goals := r.goals()
	if goals == nil {
		goals = []domain.FinancialGoal{}
	}
	recs := r.recommendations()
	if recs == nil {
		recs = []domain.Recommendation{}
	}
	return domain.Roadmap{
		FinancialGoals:  goals,
		CurrentStatus:   r.status(),
		Recommendations: recs,
		Progress:        r.progress(),
	}
}

func (r roadmapRequest) toUpdate() ports.RoadmapUpdate {
	return ports.RoadmapUpdate{
		Progress:        r.progress(),
		CurrentStatus:   r.status(),
		FinancialGoals:  r.goals(),
		Recommendations: r.recommendations(),
	}
}
