// Package rules maps free-text financial questions to coarse topics and the
// fixed recommendation each topic earns.
package rules

import (
	"strings"

	"github.com/arthsaathi/finlit-engine/internal/core/domain"
)

// Topic is a coarse category inferred from keyword matches.
type Topic string

const (
	TopicLoan       Topic = "loan"
	TopicInvestment Topic = "investment"
	TopicSavings    Topic = "savings"
)

// Rule binds a topic to its keywords and the recommendation it yields.
// Keywords must be lower case.
type Rule struct {
	Topic    Topic
	Keywords []string
	Template domain.Recommendation
}

// DefaultRules is evaluated in order; the order fixes the order of the
// generated recommendations.
var DefaultRules = []Rule{
	{
		Topic:    TopicLoan,
		Keywords: []string{"loan", "लोन"},
		Template: domain.Recommendation{
			Type:             "loan_management",
			Title:            "Optimize Loan Management",
			Description:      "Consider consolidating high-interest loans and prioritise repaying the costliest debt first",
			Priority:         domain.PriorityHigh,
			EstimatedSavings: "₹15,000-25,000 annually",
		},
	},
	{
		Topic:    TopicInvestment,
		Keywords: []string{"investment", "निवेश"},
		Template: domain.Recommendation{
			Type:             "investment",
			Title:            "Diversify Investment Portfolio",
			Description:      "Spread investments across equity mutual funds, PPF and fixed deposits to balance risk",
			Priority:         domain.PriorityMedium,
			EstimatedReturns: "12-15% annually",
		},
	},
	{
		Topic:    TopicSavings,
		Keywords: []string{"savings", "बचत"},
		Template: domain.Recommendation{
			Type:         "savings",
			Title:        "Automate Your Savings",
			Description:  "Set up an automatic transfer of 20% of income to a high-yield savings account on payday",
			Priority:     domain.PriorityHigh,
			TargetAmount: "₹50,000-100,000",
		},
	},
}

// DefaultFallback is recommended when no rule matches.
var DefaultFallback = []domain.Recommendation{
	{
		Type:         "emergency_fund",
		Title:        "Build Emergency Fund",
		Description:  "Keep 6 months of expenses in a liquid savings account before taking on new commitments",
		Priority:     domain.PriorityHigh,
		TargetAmount: "₹50,000-100,000",
	},
	{
		Type:          "insurance",
		Title:         "Get Health Insurance",
		Description:   "A family floater health policy protects your savings from medical emergencies",
		Priority:      domain.PriorityMedium,
		EstimatedCost: "₹10,000-15,000 annually",
	},
}

// TopicSet is the set of topics a text matched.
type TopicSet map[Topic]struct{}

// Has reports whether t is in the set.
func (s TopicSet) Has(t Topic) bool {
	_, ok := s[t]
	return ok
}

// Engine evaluates a rule table against query text.
type Engine struct {
	rules    []Rule
	fallback []domain.Recommendation
}

// NewEngine returns an Engine over rules, yielding fallback when nothing
// matches. Keywords are lower-cased on the way in.
func NewEngine(rules []Rule, fallback []domain.Recommendation) *Engine {
	normalized := make([]Rule, len(rules))
	for i, r := range rules {
		kws := make([]string, len(r.Keywords))
		for j, kw := range r.Keywords {
			kws[j] = strings.ToLower(kw)
		}
		normalized[i] = Rule{Topic: r.Topic, Keywords: kws, Template: r.Template}
	}
	return &Engine{
		rules:    normalized,
		fallback: append([]domain.Recommendation(nil), fallback...),
	}
}

// NewDefaultEngine returns an Engine over DefaultRules and DefaultFallback.
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultRules, DefaultFallback)
}

// Classify returns every topic whose keywords occur in text, ignoring case.
func (e *Engine) Classify(text string) TopicSet {
	lower := strings.ToLower(text)
	set := make(TopicSet)
	for _, r := range e.rules {
		for _, kw := range r.Keywords {
			if kw != "" && strings.Contains(lower, kw) {
				set[r.Topic] = struct{}{}
				break
			}
		}
	}
	return set
}

// Recommend returns one recommendation per matched topic in rule order, or
// the fallback list when nothing matched. The result is never empty as long
// as the fallback is not.
func (e *Engine) Recommend(text string) []domain.Recommendation {
	topics := e.Classify(text)

	out := make([]domain.Recommendation, 0, len(e.rules))
	for _, r := range e.rules {
		if topics.Has(r.Topic) {
			out = append(out, r.Template)
		}
	}
	if len(out) == 0 {
		out = append(out, e.fallback...)
	}
	return out
}
