package domain

import (
	"testing"
	"time"
)

func TestDefaultRoadmap(t *testing.T) {
	now := time.Now().UTC()
	r := DefaultRoadmap("u1", now)

	if r.UserID != "u1" || !r.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected header: %+v", r)
	}
	if len(r.FinancialGoals) != 2 {
		t.Fatalf("expected 2 goals, got %d", len(r.FinancialGoals))
	}
	g := r.FinancialGoals[0]
	if g.Title != "Emergency Fund" || g.Target != 50000 || g.Current != 15000 || g.Priority != PriorityHigh {
		t.Errorf("unexpected first goal: %+v", g)
	}
	g = r.FinancialGoals[1]
	if g.Title != "Home Down Payment" || g.Target != 500000 || g.Current != 75000 || g.Priority != PriorityMedium {
		t.Errorf("unexpected second goal: %+v", g)
	}
	if *r.CurrentStatus != (CurrentStatus{Savings: 15000, Investments: 25000, Loans: 0}) {
		t.Errorf("unexpected status: %+v", *r.CurrentStatus)
	}
	if len(r.Recommendations) != 2 {
		t.Errorf("expected 2 recommendations, got %d", len(r.Recommendations))
	}
	if *r.Progress != (Progress{Completed: 2, Total: 5}) {
		t.Errorf("unexpected progress: %+v", *r.Progress)
	}
}

func TestRoadmap_CloneIsDeep(t *testing.T) {
	r := DefaultRoadmap("u1", time.Now())
	c := r.Clone()

	c.FinancialGoals[0].Title = "changed"
	c.Recommendations[0].Title = "changed"
	c.Progress.Completed = 5
	c.CurrentStatus.Loans = 1

	if r.FinancialGoals[0].Title == "changed" || r.Recommendations[0].Title == "changed" {
		t.Error("clone shares slices with original")
	}
	if r.Progress.Completed != 2 || r.CurrentStatus.Loans != 0 {
		t.Error("clone shares pointers with original")
	}

	var nilRoadmap *Roadmap
	if nilRoadmap.Clone() != nil {
		t.Error("expected nil clone of nil roadmap")
	}
}

func TestRoadmap_ClonePreservesEmptyLists(t *testing.T) {
	r := &Roadmap{UserID: "u1", FinancialGoals: []FinancialGoal{}, Recommendations: []Recommendation{}}
	c := r.Clone()

	if c.FinancialGoals == nil || len(c.FinancialGoals) != 0 {
		t.Errorf("expected empty goals, got %#v", c.FinancialGoals)
	}
	if c.Recommendations == nil || len(c.Recommendations) != 0 {
		t.Errorf("expected empty recommendations, got %#v", c.Recommendations)
	}

	absent := (&Roadmap{UserID: "u1"}).Clone()
	if absent.FinancialGoals != nil || absent.Recommendations != nil {
		t.Errorf("expected absent lists to stay nil, got %+v", absent)
	}
}
