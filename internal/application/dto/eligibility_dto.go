package dto

import (
	"github.com/shopspring/decimal"

	"github.com/nexuscommerce/decision-service/internal/domain/service"
)

// CheckEligibilityRequest carries the customer facts for a combined credit
// scoring and purchase eligibility check.
type CheckEligibilityRequest struct {
	CustomerID  string
	Age         int
	Verified    bool
	AccountDays int
	CountryCode string
	Email       string
	OrderTotal  decimal.Decimal

	// Payment history for credit scoring.
	DaysOverdue    int
	FailedPayments int
	OrderCount     int
	DisputeCount   int
	LifetimeSpend  decimal.Decimal
}

// Validate checks the request fields.
func (r CheckEligibilityRequest) Validate() error {
	if r.CustomerID == "" {
		return ValidationError{Field: "customer_id", Message: "is required"}
	}
	if r.Age < 0 {
		return ValidationError{Field: "age", Message: "must not be negative"}
	}
	if r.OrderTotal.IsNegative() {
		return ValidationError{Field: "order_total", Message: "must not be negative"}
	}
	if r.DaysOverdue < 0 || r.FailedPayments < 0 || r.DisputeCount < 0 {
		return ValidationError{Field: "payment_history", Message: "counters must not be negative"}
	}
	return nil
}

// EligibilityCheckDTO is one named check outcome.
type EligibilityCheckDTO struct {
	Name    string
	Passed  bool
	Message string
}

// EligibilityResponse is the combined credit and eligibility outcome.
type EligibilityResponse struct {
	Eligible bool
	Reason   string
	Checks   []EligibilityCheckDTO

	CreditScore   int
	CreditLevel   string
	CreditFactors []string

	FinancingAvailable bool
	PremiumFinancing   bool
	B2BEligible        bool

	HighRiskCustomer     bool
	ManualReviewRequired bool
}

// FromEligibility maps the domain results onto the response DTO.
func FromEligibility(result service.EligibilityResult, credit service.CreditAssessment) EligibilityResponse {
	checks := make([]EligibilityCheckDTO, 0, len(result.Checks))
	for _, c := range result.Checks {
		checks = append(checks, EligibilityCheckDTO{
			Name:    c.Name,
			Passed:  c.Passed,
			Message: c.Message,
		})
	}
	return EligibilityResponse{
		Eligible:      result.Eligible,
		Reason:        result.Reason,
		Checks:        checks,
		CreditScore:   credit.Score,
		CreditLevel:   credit.Level.String(),
		CreditFactors: credit.Factors,
	}
}
