package domain

import "time"

// FallbackTrustScore is reported when the score cannot be computed because
// storage is unavailable.
const FallbackTrustScore = 75

const (
	maxTrustScore = 100
	minTrustScore = 0

	activeBonus         = 10
	veryActiveBonus     = 10
	veryActiveThreshold = 5
	positiveBonus       = 15
	positiveWindow      = 5

	recentWindow = 30 * 24 * time.Hour
)

// ComputeTrustScore scores a query history, newest first. The bonuses are
// independent: any history earns the active bonus, more than five queries
// add the very-active bonus, and a positive tag among the five most recent
// queries adds the positive bonus.
func ComputeTrustScore(queries []Query) int {
	score := DefaultTrustScore

	if len(queries) > 0 {
		score += activeBonus
	}
	if len(queries) > veryActiveThreshold {
		score += veryActiveBonus
	}

	recent := queries
	if len(recent) > positiveWindow {
		recent = recent[:positiveWindow]
	}
	for _, q := range recent {
		if q.Response.HasTag(TagPositive) {
			score += positiveBonus
			break
		}
	}

	return ClampTrustScore(score)
}

// ClampTrustScore bounds score to [0, 100].
func ClampTrustScore(score int) int {
	if score > maxTrustScore {
		return maxTrustScore
	}
	if score < minTrustScore {
		return minTrustScore
	}
	return score
}

// ValidTrustScore reports whether score may be stored as-is.
func ValidTrustScore(score int) bool {
	return score >= minTrustScore && score <= maxTrustScore
}

// EngagementLevel buckets recent query volume for display.
type EngagementLevel string

const (
	EngagementNew        EngagementLevel = "new"
	EngagementVeryActive EngagementLevel = "very_active"
	EngagementActive     EngagementLevel = "active"
	EngagementModerate   EngagementLevel = "moderate"
	EngagementLow        EngagementLevel = "low"
)

// TrustLevel buckets the score for display.
type TrustLevel string

const (
	TrustExcellent        TrustLevel = "excellent"
	TrustGood             TrustLevel = "good"
	TrustFair             TrustLevel = "fair"
	TrustNeedsImprovement TrustLevel = "needs_improvement"
)

// TrustMetrics are presentation figures derived from a history and a score.
type TrustMetrics struct {
	TotalQueries    int             `json:"totalQueries"`
	RecentQueries   int             `json:"recentQueries"`
	QueryFrequency  int             `json:"queryFrequency"`
	EngagementLevel EngagementLevel `json:"engagementLevel"`
	TrustLevel      TrustLevel      `json:"trustLevel"`
}

// ComputeTrustMetrics counts queries created strictly after now-30d as recent.
func ComputeTrustMetrics(queries []Query, score int, now time.Time) TrustMetrics {
	cutoff := now.Add(-recentWindow)
	recent := 0
	for _, q := range queries {
		if q.CreatedAt.After(cutoff) {
			recent++
		}
	}

	return TrustMetrics{
		TotalQueries:    len(queries),
		RecentQueries:   recent,
		QueryFrequency:  recent,
		EngagementLevel: engagementLevel(len(queries), recent),
		TrustLevel:      trustLevel(score),
	}
}

func engagementLevel(total, recent int) EngagementLevel {
	switch {
	case total == 0:
		return EngagementNew
	case recent >= 10:
		return EngagementVeryActive
	case recent >= 5:
		return EngagementActive
	case recent >= 2:
		return EngagementModerate
	default:
		return EngagementLow
	}
}

func trustLevel(score int) TrustLevel {
	switch {
	case score >= 80:
		return TrustExcellent
	case score >= 60:
		return TrustGood
	case score >= 40:
		return TrustFair
	default:
		return TrustNeedsImprovement
	}
}

// TrustFactor explains one contribution to a user's trust. Factors are
// illustrative and are not part of the score.
type TrustFactor struct {
	Name        string `json:"factor"`
	Points      int    `json:"points"`
	Description string `json:"description"`
}

// ComputeTrustFactors lists the factors that apply to a query history.
func ComputeTrustFactors(queries []Query) []TrustFactor {
	factors := make([]TrustFactor, 0, 3)

	if len(queries) > 0 {
		factors = append(factors, TrustFactor{
			Name:        "Active Usage",
			Points:      min(len(queries)*2, 20),
			Description: "Regular use of financial guidance",
		})
	}

	if len(queries) > 5 {
		factors = append(factors, TrustFactor{
			Name:        "Consistent Engagement",
			Points:      15,
			Description: "Consistent learning about finances",
		})
	}

	topics := make(map[string]struct{})
	for _, q := range queries {
		topics[q.Response.FirstTag()] = struct{}{}
	}
	if len(topics) > 2 {
		factors = append(factors, TrustFactor{
			Name:        "Diverse Interests",
			Points:      10,
			Description: "Exploring several areas of personal finance",
		})
	}

	return factors
}
