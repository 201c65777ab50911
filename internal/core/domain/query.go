package domain

import "time"

// RiskLevel is the advice generator's rating of how risky the discussed
// financial product or action is.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// TagPositive marks a response the generator judged as a positive outcome
// for the user. It earns the recent-positive bonus in ComputeTrustScore.
const TagPositive = "positive"

// Response is the advice payload stored alongside a question. The engine
// only reads Tags; the remaining fields are carried for the caller.
type Response struct {
	StoryResponse string    `json:"storyResponse" bson:"story_response"`
	Tags          []string  `json:"tags" bson:"tags"`
	RiskLevel     RiskLevel `json:"riskLevel,omitempty" bson:"risk_level,omitempty"`
	KeyPoints     []string  `json:"keyPoints,omitempty" bson:"key_points,omitempty"`
}

// FirstTag returns the response's primary tag, or "general" when it has none.
func (r Response) FirstTag() string {
	if len(r.Tags) == 0 || r.Tags[0] == "" {
		return "general"
	}
	return r.Tags[0]
}

// HasTag reports whether tag is present on the response.
func (r Response) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Query is a single question a user asked together with the advice they got.
// Queries are immutable once stored.
type Query struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"userId" bson:"user_id"`
	Question  string    `json:"question" bson:"question"`
	Language  string    `json:"language" bson:"language"`
	Response  Response  `json:"response" bson:"response"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}
