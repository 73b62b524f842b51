package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// EligibilityInput contains the customer facts for a purchase eligibility check.
type EligibilityInput struct {
	CustomerID     string
	Age            int
	Verified       bool
	AccountAgeDays int
	Country        string
	Email          string
	CreditScore    int
	OrderTotal     decimal.Decimal
}

// EligibilityCheck is one named check with its outcome.
type EligibilityCheck struct {
	Name    string
	Passed  bool
	Message string
}

// EligibilityResult is the outcome of running every check in order. Reason
// carries the first failing check's message when not eligible.
type EligibilityResult struct {
	Eligible bool
	Reason   string
	Checks   []EligibilityCheck
}

const (
	minimumAge             = 18
	largeOrderAccountDays  = 30
	creditScoreMinimum     = 600
	premiumCreditThreshold = 720
)

var largeOrderThreshold = decimal.NewFromInt(5000)

// EligibilityChecker is a domain service running the ordered customer
// eligibility checks. The restricted-country list is shared with the risk
// policy's blocked list plus Cuba per the sanctions table.
type EligibilityChecker struct {
	restrictedCountries map[string]bool
	b2bDomains          map[string]bool
}

// NewEligibilityChecker creates an EligibilityChecker.
func NewEligibilityChecker(restrictedCountries, b2bDomains []string) *EligibilityChecker {
	return &EligibilityChecker{
		restrictedCountries: toSet(restrictedCountries),
		b2bDomains:          toSet(b2bDomains),
	}
}

// Check runs all eligibility checks in a fixed order. The credit check never
// blocks eligibility on its own; it only gates financing options.
func (c *EligibilityChecker) Check(input EligibilityInput) EligibilityResult {
	checks := make([]EligibilityCheck, 0, 5)
	eligible := true

	if input.Age < minimumAge {
		checks = append(checks, EligibilityCheck{
			Name:    "Age Verification",
			Passed:  false,
			Message: fmt.Sprintf("Customer must be at least %d years old", minimumAge),
		})
		eligible = false
	} else {
		checks = append(checks, EligibilityCheck{Name: "Age Verification", Passed: true, Message: "Age requirement met"})
	}

	if c.restrictedCountries[input.Country] {
		checks = append(checks, EligibilityCheck{
			Name:    "Country Check",
			Passed:  false,
			Message: "Orders not available in this region",
		})
		eligible = false
	} else {
		checks = append(checks, EligibilityCheck{Name: "Country Check", Passed: true, Message: "Region approved"})
	}

	if input.OrderTotal.GreaterThan(largeOrderThreshold) && input.AccountAgeDays < largeOrderAccountDays {
		checks = append(checks, EligibilityCheck{
			Name:    "Account Age",
			Passed:  false,
			Message: fmt.Sprintf("Account must be %d+ days old for orders over $%s", largeOrderAccountDays, largeOrderThreshold),
		})
		eligible = false
	} else {
		checks = append(checks, EligibilityCheck{Name: "Account Age", Passed: true, Message: "Account age requirement met"})
	}

	switch {
	case input.CreditScore < creditScoreMinimum:
		checks = append(checks, EligibilityCheck{
			Name:    "Credit Check",
			Passed:  false,
			Message: fmt.Sprintf("Minimum credit score of %d required", creditScoreMinimum),
		})
		// Limits financing only; does not flip eligibility.
	case input.CreditScore >= premiumCreditThreshold:
		checks = append(checks, EligibilityCheck{Name: "Credit Check", Passed: true, Message: "Premium financing available"})
	default:
		checks = append(checks, EligibilityCheck{Name: "Credit Check", Passed: true, Message: "Standard financing available"})
	}

	if !input.Verified {
		checks = append(checks, EligibilityCheck{
			Name:    "Email Verification",
			Passed:  false,
			Message: "Email must be verified to complete purchase",
		})
		eligible = false
	} else {
		checks = append(checks, EligibilityCheck{Name: "Email Verification", Passed: true, Message: "Email verified"})
	}

	result := EligibilityResult{Eligible: eligible, Checks: checks}
	if !eligible {
		for _, check := range checks {
			if !check.Passed {
				result.Reason = check.Message
				break
			}
		}
	}
	return result
}

// IsEligibleForFinancing reports whether the credit score meets the
// financing minimum.
func (c *EligibilityChecker) IsEligibleForFinancing(creditScore int) bool {
	return creditScore >= creditScoreMinimum
}

// IsPremiumCreditEligible reports whether the credit score qualifies for
// premium financing.
func (c *EligibilityChecker) IsPremiumCreditEligible(creditScore int) bool {
	return creditScore >= premiumCreditThreshold
}

// IsB2BEligible reports whether the email's domain is on the B2B allowlist.
func (c *EligibilityChecker) IsB2BEligible(email string) bool {
	_, domain, found := strings.Cut(email, "@")
	if !found {
		return false
	}
	return c.b2bDomains[domain]
}
