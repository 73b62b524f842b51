package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nexuscommerce/decision-service/internal/domain/valueobject"
)

// CreditProfile contains the payment-history facts for credit-style scoring
// of an existing customer account.
type CreditProfile struct {
	CustomerID     string
	DaysOverdue    int
	FailedPayments int
	Verified       bool
	OrderCount     int
	DisputeCount   int
	LifetimeSpend  decimal.Decimal
}

// CreditAssessment is the result of credit scoring: a 300-850 score, the
// derived risk level and the factors that moved the score.
type CreditAssessment struct {
	Score   int
	Level   valueobject.RiskLevel
	Factors []string
}

// Credit score configuration. Unlike the order-risk scorer this scale is
// fixed (standard credit-score bounds), so it is not part of the policy set.
const (
	creditBaseScore = 500
	creditMaxScore  = 850
	creditMinScore  = 300

	criticalDaysOverdue = 60
	highDaysOverdue     = 30
	mediumDaysOverdue   = 15

	maxFailedPayments      = 3
	criticalFailedPayments = 5

	verifiedBonus        = 20
	failedPaymentPenalty = 30
	disputePenalty       = 25
	loyaltyOrderCount    = 10
	loyaltyBonus         = 15
	highValueBonus       = 25
)

var highValueSpendThreshold = decimal.NewFromInt(5000)

// CreditScorer is a domain service that scores a customer's payment history
// on a 300-850 scale.
type CreditScorer struct{}

// NewCreditScorer creates a new CreditScorer.
func NewCreditScorer() *CreditScorer {
	return &CreditScorer{}
}

// Score evaluates a customer's credit profile. Higher is better; the result
// is clamped to [300,850] and banded into a risk level (<400 critical,
// <500 high, <650 medium, else low).
func (s *CreditScorer) Score(profile CreditProfile) CreditAssessment {
	factors := make([]string, 0)
	score := creditBaseScore

	// Days overdue.
	if profile.DaysOverdue >= criticalDaysOverdue {
		factors = append(factors, fmt.Sprintf("Critical: %d days overdue", profile.DaysOverdue))
		score -= 150
	} else if profile.DaysOverdue > highDaysOverdue {
		factors = append(factors, fmt.Sprintf("High risk: %d days overdue", profile.DaysOverdue))
		score -= 100
	} else if profile.DaysOverdue > mediumDaysOverdue {
		factors = append(factors, fmt.Sprintf("Medium risk: %d days overdue", profile.DaysOverdue))
		score -= 50
	}

	// Failed payments.
	if profile.FailedPayments >= criticalFailedPayments {
		factors = append(factors, fmt.Sprintf("Critical: %d failed payments", profile.FailedPayments))
		score -= failedPaymentPenalty * 3
	} else if profile.FailedPayments >= maxFailedPayments {
		factors = append(factors, fmt.Sprintf("Warning: %d failed payments", profile.FailedPayments))
		score -= failedPaymentPenalty * profile.FailedPayments
	}

	// Verification.
	if profile.Verified {
		factors = append(factors, "Verified account: +20 points")
		score += verifiedBonus
	} else {
		factors = append(factors, "Unverified account: risk factor")
		score -= 10
	}

	// Disputes.
	if profile.DisputeCount > 0 {
		penalty := disputePenalty * profile.DisputeCount
		factors = append(factors, fmt.Sprintf("%d disputes: -%d points", profile.DisputeCount, penalty))
		score -= penalty
	}

	// Repeat-customer loyalty.
	if profile.OrderCount >= loyaltyOrderCount {
		factors = append(factors, fmt.Sprintf("Loyal customer (%d orders): +%d points", profile.OrderCount, loyaltyBonus))
		score += loyaltyBonus
	}

	// High lifetime spend.
	if profile.LifetimeSpend.GreaterThanOrEqual(highValueSpendThreshold) {
		factors = append(factors, fmt.Sprintf("High value customer: +%d points", highValueBonus))
		score += highValueBonus
	}

	if score > creditMaxScore {
		score = creditMaxScore
	}
	if score < creditMinScore {
		score = creditMinScore
	}

	return CreditAssessment{
		Score:   score,
		Level:   creditLevel(score),
		Factors: factors,
	}
}

// IsHighRiskCustomer reports whether a profile trips any high-risk indicator.
func (s *CreditScorer) IsHighRiskCustomer(profile CreditProfile) bool {
	return profile.DaysOverdue > highDaysOverdue ||
		profile.FailedPayments >= maxFailedPayments ||
		profile.DisputeCount > 2
}

// RequiresManualReview reports whether a profile must be reviewed by a human
// before any further credit decision.
func (s *CreditScorer) RequiresManualReview(profile CreditProfile) bool {
	if profile.DaysOverdue > criticalDaysOverdue {
		return true
	}
	if profile.FailedPayments >= criticalFailedPayments {
		return true
	}
	return profile.DisputeCount >= 3
}

func creditLevel(score int) valueobject.RiskLevel {
	switch {
	case score < 400:
		return valueobject.RiskLevelCritical
	case score < 500:
		return valueobject.RiskLevelHigh
	case score < 650:
		return valueobject.RiskLevelMedium
	default:
		return valueobject.RiskLevelLow
	}
}
