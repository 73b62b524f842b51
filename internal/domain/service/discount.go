package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nexuscommerce/decision-service/internal/domain/policy"
	"github.com/nexuscommerce/decision-service/internal/domain/valueobject"
)

// CartItem is a single order line.
type CartItem struct {
	ID        string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	Category  string
}

// DiscountContext is the fact sheet for discount calculation. Each strategy
// reads the subset of fields it was built for: the cart-weighted strategy
// uses Items/Tier/MembershipMonths, the customer-profile strategy uses the
// order-history and season fields with CartTotal as the subtotal.
type DiscountContext struct {
	Items            []CartItem
	CustomerTier     valueobject.CustomerTier
	MembershipMonths int

	OrderCount      int
	LifetimeSpend   decimal.Decimal
	IsFirstOrder    bool
	CartTotal       decimal.Decimal
	IsHolidaySeason bool
	ReferralCode    string

	PromoCode string
}

// AppliedDiscount is one triggered discount rule. Amount keeps full
// precision for audit; only the result totals are rounded.
type AppliedDiscount struct {
	Name       string
	Percentage decimal.Decimal
	Amount     decimal.Decimal
}

// DiscountResult is the outcome of stacking every triggered rule and capping
// the aggregate percentage. Applied is ordered by rule evaluation, not by
// magnitude.
type DiscountResult struct {
	Subtotal        decimal.Decimal
	Applied         []AppliedDiscount
	TotalPercentage decimal.Decimal
	TotalAmount     decimal.Decimal
	FinalTotal      decimal.Decimal
}

// Discounter is a named discount stacking strategy. Implementations are pure
// functions of the context and safe for concurrent use.
type Discounter interface {
	Name() string
	Calculate(ctx DiscountContext) DiscountResult
}

// MembershipMonths converts a membership start date into whole months as the
// discount engines count them (30-day months, floored).
func MembershipMonths(since, now time.Time) int {
	if since.After(now) {
		return 0
	}
	return int(now.Sub(since).Hours() / 24 / 30)
}

// highestCountTier scans tiers from highest threshold down and returns the
// first one met. Tiers must be sorted by descending Min; lower tiers never
// stack on top of the winner.
func highestCountTier(tiers []policy.CountTier, n int) (policy.CountTier, bool) {
	for _, tier := range tiers {
		if n >= tier.Min {
			return tier, true
		}
	}
	return policy.CountTier{}, false
}

// highestAmountTier is the monetary analogue of highestCountTier.
func highestAmountTier(tiers []policy.AmountTier, amount decimal.Decimal) (policy.AmountTier, bool) {
	for _, tier := range tiers {
		if amount.GreaterThanOrEqual(tier.Min) {
			return tier, true
		}
	}
	return policy.AmountTier{}, false
}

// highestNamedTier is highestAmountTier for named tiers (loyalty levels).
func highestNamedTier(tiers []policy.NamedAmountTier, amount decimal.Decimal) (policy.NamedAmountTier, bool) {
	for _, tier := range tiers {
		if amount.GreaterThanOrEqual(tier.Min) {
			return tier, true
		}
	}
	return policy.NamedAmountTier{}, false
}

// finishDiscount caps the accumulated percentage and converts it to money.
// Rounding to cents happens here, once, on the totals only.
func finishDiscount(subtotal, totalPercentage, cap decimal.Decimal, applied []AppliedDiscount) DiscountResult {
	if totalPercentage.GreaterThan(cap) {
		totalPercentage = cap
	}

	totalAmount := subtotal.Mul(totalPercentage)

	return DiscountResult{
		Subtotal:        subtotal,
		Applied:         applied,
		TotalPercentage: totalPercentage,
		TotalAmount:     totalAmount.Round(2),
		FinalTotal:      subtotal.Sub(totalAmount).Round(2),
	}
}
