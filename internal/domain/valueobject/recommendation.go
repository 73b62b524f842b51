package valueobject

import "fmt"

// Recommendation is an immutable value object representing the outcome
// recommended by the risk scorer.
type Recommendation struct {
	value string
}

var (
	RecommendApprove = Recommendation{value: "approve"}
	RecommendReview  = Recommendation{value: "review"}
	RecommendDecline = Recommendation{value: "decline"}
)

// RecommendationFromString reconstructs a Recommendation from its string representation.
func RecommendationFromString(s string) (Recommendation, error) {
	switch s {
	case "approve":
		return RecommendApprove, nil
	case "review":
		return RecommendReview, nil
	case "decline":
		return RecommendDecline, nil
	default:
		return Recommendation{}, fmt.Errorf("invalid recommendation: %s", s)
	}
}

// RecommendationFromScore determines the recommendation for a clamped risk
// score. It moves in lockstep with RiskLevelFromScore: critical declines,
// medium and high go to review, low approves.
func RecommendationFromScore(score int) Recommendation {
	switch {
	case score >= 75:
		return RecommendDecline
	case score >= 25:
		return RecommendReview
	default:
		return RecommendApprove
	}
}

// String returns the string representation.
func (r Recommendation) String() string {
	return r.value
}

// IsZero returns true if the recommendation has not been set.
func (r Recommendation) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another Recommendation.
func (r Recommendation) Equal(other Recommendation) bool {
	return r.value == other.value
}

// IsDecline returns true if the recommendation is decline.
func (r Recommendation) IsDecline() bool {
	return r.value == "decline"
}
