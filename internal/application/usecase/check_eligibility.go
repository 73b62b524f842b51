package usecase

import (
	"context"

	"github.com/nexuscommerce/decision-service/internal/application/dto"
	"github.com/nexuscommerce/decision-service/internal/domain/service"
)

// CheckEligibility is the use case combining credit scoring with the
// ordered purchase eligibility checks.
type CheckEligibility struct {
	scorer  *service.CreditScorer
	checker *service.EligibilityChecker
}

// NewCheckEligibility creates the CheckEligibility use case.
func NewCheckEligibility(scorer *service.CreditScorer, checker *service.EligibilityChecker) *CheckEligibility {
	return &CheckEligibility{scorer: scorer, checker: checker}
}

// Execute scores the customer's payment history, feeds the resulting credit
// score into the eligibility checks and reports both outcomes.
func (uc *CheckEligibility) Execute(_ context.Context, req dto.CheckEligibilityRequest) (dto.EligibilityResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.EligibilityResponse{}, err
	}

	profile := service.CreditProfile{
		CustomerID:     req.CustomerID,
		DaysOverdue:    req.DaysOverdue,
		FailedPayments: req.FailedPayments,
		Verified:       req.Verified,
		OrderCount:     req.OrderCount,
		DisputeCount:   req.DisputeCount,
		LifetimeSpend:  req.LifetimeSpend,
	}
	credit := uc.scorer.Score(profile)

	result := uc.checker.Check(service.EligibilityInput{
		CustomerID:     req.CustomerID,
		Age:            req.Age,
		Verified:       req.Verified,
		AccountAgeDays: req.AccountDays,
		Country:        req.CountryCode,
		Email:          req.Email,
		CreditScore:    credit.Score,
		OrderTotal:     req.OrderTotal,
	})

	resp := dto.FromEligibility(result, credit)
	resp.FinancingAvailable = uc.checker.IsEligibleForFinancing(credit.Score)
	resp.PremiumFinancing = uc.checker.IsPremiumCreditEligible(credit.Score)
	resp.B2BEligible = uc.checker.IsB2BEligible(req.Email)
	resp.HighRiskCustomer = uc.scorer.IsHighRiskCustomer(profile)
	resp.ManualReviewRequired = uc.scorer.RequiresManualReview(profile)

	return resp, nil
}
