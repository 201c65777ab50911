package domain

import "time"

// Priority ranks goals and recommendations.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// FinancialGoal is a savings target the user is working towards.
type FinancialGoal struct {
	ID       string   `json:"id" bson:"id"`
	Title    string   `json:"title" bson:"title"`
	Target   float64  `json:"target" bson:"target"`
	Current  float64  `json:"current" bson:"current"`
	Priority Priority `json:"priority" bson:"priority"`
}

// CurrentStatus is a snapshot of the user's finances in rupees.
type CurrentStatus struct {
	Savings     float64 `json:"savings" bson:"savings"`
	Investments float64 `json:"investments" bson:"investments"`
	Loans       float64 `json:"loans" bson:"loans"`
}

// Recommendation is a suggested action. At most one of the estimate fields is
// normally set, depending on Type.
type Recommendation struct {
	Type             string   `json:"type" bson:"type"`
	Title            string   `json:"title" bson:"title"`
	Description      string   `json:"description" bson:"description"`
	Priority         Priority `json:"priority" bson:"priority"`
	EstimatedSavings string   `json:"estimatedSavings,omitempty" bson:"estimated_savings,omitempty"`
	EstimatedReturns string   `json:"estimatedReturns,omitempty" bson:"estimated_returns,omitempty"`
	TargetAmount     string   `json:"targetAmount,omitempty" bson:"target_amount,omitempty"`
	EstimatedCost    string   `json:"estimatedCost,omitempty" bson:"estimated_cost,omitempty"`
}

// Progress counts completed roadmap steps.
type Progress struct {
	Completed int `json:"completed" bson:"completed"`
	Total     int `json:"total" bson:"total"`
}

// Roadmap is the per-user plan. There is exactly one per user; writes replace
// the stored document.
type Roadmap struct {
	UserID          string           `json:"userId" bson:"user_id"`
	FinancialGoals  []FinancialGoal  `json:"financialGoals" bson:"financial_goals"`
	CurrentStatus   *CurrentStatus   `json:"currentStatus,omitempty" bson:"current_status,omitempty"`
	Recommendations []Recommendation `json:"recommendations" bson:"recommendations"`
	Progress        *Progress        `json:"progress,omitempty" bson:"progress,omitempty"`
	UpdatedAt       time.Time        `json:"updatedAt" bson:"updated_at"`
}

// Clone returns a deep copy of r.
func (r *Roadmap) Clone() *Roadmap {
	if r == nil {
		return nil
	}
	out := *r
	if r.FinancialGoals != nil {
		out.FinancialGoals = make([]FinancialGoal, len(r.FinancialGoals))
		copy(out.FinancialGoals, r.FinancialGoals)
	}
	if r.Recommendations != nil {
		out.Recommendations = make([]Recommendation, len(r.Recommendations))
		copy(out.Recommendations, r.Recommendations)
	}
	if r.CurrentStatus != nil {
		cs := *r.CurrentStatus
		out.CurrentStatus = &cs
	}
	if r.Progress != nil {
		p := *r.Progress
		out.Progress = &p
	}
	return &out
}

// DefaultRoadmap is the starter plan handed to users who have none yet.
func DefaultRoadmap(userID string, now time.Time) *Roadmap {
	return &Roadmap{
		UserID: userID,
		FinancialGoals: []FinancialGoal{
			{ID: "1", Title: "Emergency Fund", Target: 50000, Current: 15000, Priority: PriorityHigh},
			{ID: "2", Title: "Home Down Payment", Target: 500000, Current: 75000, Priority: PriorityMedium},
		},
		CurrentStatus: &CurrentStatus{Savings: 15000, Investments: 25000, Loans: 0},
		Recommendations: []Recommendation{
			{
				Type:             "investment",
				Title:            "Start a SIP",
				Description:      "Begin a monthly SIP of ₹5,000 in a diversified equity mutual fund",
				Priority:         PriorityHigh,
				EstimatedReturns: "12-15% annually",
			},
			{
				Type:          "insurance",
				Title:         "Get Term Insurance",
				Description:   "Protect your family with a term life cover of at least 10x your annual income",
				Priority:      PriorityMedium,
				EstimatedCost: "₹8,000-12,000 annually",
			},
		},
		Progress:  &Progress{Completed: 2, Total: 5},
		UpdatedAt: now,
	}
}
