package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nexuscommerce/decision-service/internal/domain/policy"
	"github.com/nexuscommerce/decision-service/internal/domain/valueobject"
)

// RiskFactors contains the customer and transaction facts required for
// risk scoring. DeviceFingerprint and IPAddress are carried for audit but
// do not influence the score.
type RiskFactors struct {
	TransactionAmount decimal.Decimal
	CustomerAgeDays   int
	PreviousOrders    int
	FailedPayments    int
	CountryCode       string
	PaymentMethod     string
	DeviceFingerprint string
	IPAddress         string
}

// RiskAssessment contains the result of risk scoring. Flags and
// RequiredActions record why the score is what it is, in rule evaluation
// order; they feed no further computation.
type RiskAssessment struct {
	Score           int
	Level           valueobject.RiskLevel
	Flags           []string
	Recommendation  valueobject.Recommendation
	RequiredActions []string
}

// RiskScorer is a domain service that calculates order risk using rule-based
// logic. It is stateless and safe for concurrent use.
type RiskScorer struct {
	policy        policy.Risk
	blocked       map[string]bool
	highRisk      map[string]bool
	riskyPayments map[string]bool
}

// NewRiskScorer creates a RiskScorer with the given policy.
func NewRiskScorer(p policy.Risk) *RiskScorer {
	return &RiskScorer{
		policy:        p,
		blocked:       toSet(p.BlockedCountries),
		highRisk:      toSet(p.HighRiskCountries),
		riskyPayments: toSet(p.HighRiskPaymentMethods),
	}
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// Assess evaluates the risk of an order. Rules run in a fixed order, each
// adding its penalty and flag onto the running score; the final score is
// clamped to [0,100] before classification. Orders from blocked countries
// short-circuit the whole pipeline.
func (s *RiskScorer) Assess(factors RiskFactors) RiskAssessment {
	// Blocked countries decline immediately; no other rule runs.
	if s.blocked[factors.CountryCode] {
		return RiskAssessment{
			Score:           100,
			Level:           valueobject.RiskLevelCritical,
			Flags:           []string{"Blocked country"},
			Recommendation:  valueobject.RecommendDecline,
			RequiredActions: []string{"Order cannot be processed from this region"},
		}
	}

	score := 0
	flags := make([]string, 0)
	requiredActions := make([]string, 0)

	// Rule: transaction amount.
	if factors.TransactionAmount.GreaterThanOrEqual(s.policy.VeryLargeTransaction) {
		score += 30
		flags = append(flags, "Very large transaction amount")
		requiredActions = append(requiredActions, "Require additional verification")
	} else if factors.TransactionAmount.GreaterThanOrEqual(s.policy.LargeTransaction) {
		score += 15
		flags = append(flags, "Large transaction amount")
	}

	// Rule: account age. Note the inclusive upper bound: a customer exactly
	// at the threshold still counts as new.
	if factors.CustomerAgeDays <= s.policy.VeryNewCustomerDays {
		score += 25
		flags = append(flags, fmt.Sprintf("Very new customer (< %d days)", s.policy.VeryNewCustomerDays))
		requiredActions = append(requiredActions, "Limit order value")
	} else if factors.CustomerAgeDays <= s.policy.NewCustomerDays {
		score += 10
		flags = append(flags, fmt.Sprintf("New customer (< %d days)", s.policy.NewCustomerDays))
	}

	// Rule: order history. Repeat customers earn a trust bonus with no flag.
	if factors.PreviousOrders == 0 {
		score += 15
		flags = append(flags, "First-time buyer")
	} else if factors.PreviousOrders >= s.policy.TrustedOrderCount {
		score -= 10
	}

	// Rule: failed payment history.
	if factors.FailedPayments >= s.policy.CriticalFailedPayments {
		score += 35
		flags = append(flags, "Multiple failed payments")
		requiredActions = append(requiredActions, "Require upfront payment")
	} else if factors.FailedPayments >= 1 {
		score += 15
		flags = append(flags, "Previous failed payment")
	}

	// Rule: high-risk (non-blocked) country.
	if s.highRisk[factors.CountryCode] {
		score += 20
		flags = append(flags, "High-risk region")
		requiredActions = append(requiredActions, "Enhanced verification required")
	}

	// Rule: high-risk payment method.
	if s.riskyPayments[factors.PaymentMethod] {
		score += 25
		flags = append(flags, "High-risk payment method")
		requiredActions = append(requiredActions, "Additional payment verification")
	}

	// Rule: velocity. A large first order stacks with the first-time-buyer flag.
	if factors.PreviousOrders == 0 && factors.TransactionAmount.GreaterThan(s.policy.LargeFirstOrder) {
		score += 20
		flags = append(flags, "Large first order")
	}

	// Clamp to [0,100].
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	level := valueobject.RiskLevelFromScore(score)
	recommendation := valueobject.RecommendationFromScore(score)

	// Critical and high assessments always carry at least one follow-up
	// action; append the generic one only when no rule added its own.
	if len(requiredActions) == 0 {
		switch {
		case level.Equal(valueobject.RiskLevelCritical):
			requiredActions = append(requiredActions, "Manual review by risk team required")
		case level.Equal(valueobject.RiskLevelHigh):
			requiredActions = append(requiredActions, "Manager approval required")
		}
	}

	return RiskAssessment{
		Score:           score,
		Level:           level,
		Flags:           flags,
		Recommendation:  recommendation,
		RequiredActions: requiredActions,
	}
}
