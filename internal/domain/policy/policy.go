// Package policy holds the immutable business-rule configuration injected
// into the decision engines at construction. All thresholds and rates live
// here rather than as scattered package constants, so deployments (and tests)
// can override them without touching engine code.
package policy

import "github.com/shopspring/decimal"

// CountTier maps a minimum count (items, months) to a discount rate.
type CountTier struct {
	Min  int
	Rate decimal.Decimal
}

// AmountTier maps a minimum monetary amount to a discount rate.
type AmountTier struct {
	Min  decimal.Decimal
	Rate decimal.Decimal
}

// NamedAmountTier is an AmountTier with a display name (loyalty tier names).
type NamedAmountTier struct {
	Name string
	Min  decimal.Decimal
	Rate decimal.Decimal
}

// PromoCode is a gated promotional code: the rate applies only when the cart
// total meets the minimum order value.
type PromoCode struct {
	Rate     decimal.Decimal
	MinOrder decimal.Decimal
}

// Risk is the configuration for the risk scorer.
type Risk struct {
	BlockedCountries       []string
	HighRiskCountries      []string
	HighRiskPaymentMethods []string

	VeryLargeTransaction decimal.Decimal
	LargeTransaction     decimal.Decimal

	VeryNewCustomerDays int
	NewCustomerDays     int

	TrustedOrderCount      int
	CriticalFailedPayments int

	LargeFirstOrder decimal.Decimal
}

// DefaultRisk returns the standard risk scoring policy.
func DefaultRisk() Risk {
	return Risk{
		BlockedCountries:       []string{"NK", "IR", "SY"},
		HighRiskCountries:      []string{"NG", "PH", "IN", "BR", "RO"},
		HighRiskPaymentMethods: []string{"crypto", "gift_card", "prepaid"},
		VeryLargeTransaction:   decimal.NewFromInt(25000),
		LargeTransaction:       decimal.NewFromInt(5000),
		VeryNewCustomerDays:    7,
		NewCustomerDays:        30,
		TrustedOrderCount:      10,
		CriticalFailedPayments: 5,
		LargeFirstOrder:        decimal.NewFromInt(1000),
	}
}

// Approval is the configuration for the approval router.
//
// AutoApproveLimit is the only adjustable threshold; the escalation
// thresholds (Manager/Director/VP limits) are fixed policy and are never
// modified by tier, risk or payment-term adjustments.
type Approval struct {
	AutoApproveLimit decimal.Decimal
	ManagerLimit     decimal.Decimal
	DirectorLimit    decimal.Decimal
	VPLimit          decimal.Decimal

	NewCustomerAutoLimit decimal.Decimal
	NewCustomerMaxLimit  decimal.Decimal
	HighRiskAutoLimit    decimal.Decimal

	EnterpriseMultiplier decimal.Decimal
	VIPMultiplier        decimal.Decimal
	MediumRiskMultiplier decimal.Decimal
	NetTermsMultiplier   decimal.Decimal

	RestrictedCategories []string
}

// DefaultApproval returns the standard approval routing policy.
func DefaultApproval() Approval {
	return Approval{
		AutoApproveLimit:     decimal.NewFromInt(10000),
		ManagerLimit:         decimal.NewFromInt(50000),
		DirectorLimit:        decimal.NewFromInt(100000),
		VPLimit:              decimal.NewFromInt(250000),
		NewCustomerAutoLimit: decimal.NewFromInt(2500),
		NewCustomerMaxLimit:  decimal.NewFromInt(25000),
		HighRiskAutoLimit:    decimal.NewFromInt(5000),
		EnterpriseMultiplier: decimal.NewFromInt(2),
		VIPMultiplier:        decimal.NewFromFloat(1.5),
		MediumRiskMultiplier: decimal.NewFromFloat(0.75),
		NetTermsMultiplier:   decimal.NewFromFloat(0.5),
		RestrictedCategories: []string{"hazardous", "controlled", "high_value", "export_controlled"},
	}
}

// CartDiscount is the configuration for the cart-weighted discount strategy.
// Tier tables are kept sorted by descending threshold; the engines scan them
// top-down and the first threshold met wins.
type CartDiscount struct {
	TierRates     map[string]decimal.Decimal
	CategoryRates map[string]decimal.Decimal

	BundleTiers       []CountTier
	SpendTiers        []AmountTier
	LoyaltyMonthTiers []CountTier

	PromoCodes map[string]decimal.Decimal

	MaxTotal decimal.Decimal
}

// DefaultCartDiscount returns the standard cart-weighted discount policy.
func DefaultCartDiscount() CartDiscount {
	return CartDiscount{
		TierRates: map[string]decimal.Decimal{
			"basic":      decimal.Zero,
			"premium":    decimal.NewFromFloat(0.05),
			"vip":        decimal.NewFromFloat(0.10),
			"enterprise": decimal.NewFromFloat(0.15),
		},
		CategoryRates: map[string]decimal.Decimal{
			"electronics": decimal.NewFromFloat(0.05),
			"clothing":    decimal.NewFromFloat(0.10),
			"clearance":   decimal.NewFromFloat(0.30),
			"seasonal":    decimal.NewFromFloat(0.20),
		},
		BundleTiers: []CountTier{
			{Min: 10, Rate: decimal.NewFromFloat(0.15)},
			{Min: 5, Rate: decimal.NewFromFloat(0.10)},
			{Min: 3, Rate: decimal.NewFromFloat(0.05)},
		},
		SpendTiers: []AmountTier{
			{Min: decimal.NewFromInt(500), Rate: decimal.NewFromFloat(0.10)},
			{Min: decimal.NewFromInt(250), Rate: decimal.NewFromFloat(0.05)},
			{Min: decimal.NewFromInt(100), Rate: decimal.NewFromFloat(0.02)},
		},
		LoyaltyMonthTiers: []CountTier{
			{Min: 24, Rate: decimal.NewFromFloat(0.05)},
			{Min: 12, Rate: decimal.NewFromFloat(0.03)},
			{Min: 6, Rate: decimal.NewFromFloat(0.01)},
		},
		PromoCodes: map[string]decimal.Decimal{
			"SAVE10":   decimal.NewFromFloat(0.10),
			"WELCOME":  decimal.NewFromFloat(0.15),
			"VIP25":    decimal.NewFromFloat(0.25),
			"FLASH20":  decimal.NewFromFloat(0.20),
			"LOYALTY5": decimal.NewFromFloat(0.05),
		},
		MaxTotal: decimal.NewFromFloat(0.40),
	}
}

// ProfileDiscount is the configuration for the customer-profile discount strategy.
type ProfileDiscount struct {
	FirstOrderRate decimal.Decimal
	LoyaltyTiers   []NamedAmountTier
	HolidayRate    decimal.Decimal
	PromoCodes     map[string]PromoCode
	ReferralRate   decimal.Decimal
	MaxTotal       decimal.Decimal
}

// DefaultProfileDiscount returns the standard customer-profile discount policy.
func DefaultProfileDiscount() ProfileDiscount {
	return ProfileDiscount{
		FirstOrderRate: decimal.NewFromFloat(0.10),
		LoyaltyTiers: []NamedAmountTier{
			{Name: "Platinum", Min: decimal.NewFromInt(10000), Rate: decimal.NewFromFloat(0.12)},
			{Name: "Gold", Min: decimal.NewFromInt(5000), Rate: decimal.NewFromFloat(0.08)},
			{Name: "Silver", Min: decimal.NewFromInt(2000), Rate: decimal.NewFromFloat(0.05)},
			{Name: "Bronze", Min: decimal.NewFromInt(500), Rate: decimal.NewFromFloat(0.03)},
		},
		HolidayRate: decimal.NewFromFloat(0.15),
		PromoCodes: map[string]PromoCode{
			"SAVE10":    {Rate: decimal.NewFromFloat(0.10), MinOrder: decimal.NewFromInt(50)},
			"WELCOME20": {Rate: decimal.NewFromFloat(0.20), MinOrder: decimal.NewFromInt(100)},
			"VIP30":     {Rate: decimal.NewFromFloat(0.30), MinOrder: decimal.NewFromInt(200)},
			"FLASH50":   {Rate: decimal.NewFromFloat(0.50), MinOrder: decimal.NewFromInt(500)},
		},
		ReferralRate: decimal.NewFromFloat(0.15),
		MaxTotal:     decimal.NewFromFloat(0.50),
	}
}

// Eligibility is the configuration for the purchase eligibility checker.
// RestrictedCountries is the sanctions list, a superset of the risk policy's
// blocked list.
type Eligibility struct {
	RestrictedCountries []string
	B2BDomains          []string
}

// DefaultEligibility returns the standard eligibility policy.
func DefaultEligibility() Eligibility {
	return Eligibility{
		RestrictedCountries: []string{"NK", "IR", "SY", "CU"},
		B2BDomains:          []string{"company.com", "enterprise.io", "corp.net"},
	}
}

// Set bundles the policies for every engine the service runs.
type Set struct {
	Risk            Risk
	Approval        Approval
	CartDiscount    CartDiscount
	ProfileDiscount ProfileDiscount
	Eligibility     Eligibility
}

// Defaults returns the full default policy set.
func Defaults() Set {
	return Set{
		Risk:            DefaultRisk(),
		Approval:        DefaultApproval(),
		CartDiscount:    DefaultCartDiscount(),
		ProfileDiscount: DefaultProfileDiscount(),
		Eligibility:     DefaultEligibility(),
	}
}
