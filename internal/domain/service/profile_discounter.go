package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nexuscommerce/decision-service/internal/domain/policy"
)

// ProfileDiscounter implements the customer-profile discount strategy:
// first-order, lifetime-spend loyalty, holiday, gated promo code and
// referral discounts stacked and capped.
type ProfileDiscounter struct {
	policy policy.ProfileDiscount
}

// NewProfileDiscounter creates a ProfileDiscounter. Loyalty tiers are
// re-sorted by descending threshold before use.
func NewProfileDiscounter(p policy.ProfileDiscount) *ProfileDiscounter {
	sort.Slice(p.LoyaltyTiers, func(i, j int) bool { return p.LoyaltyTiers[i].Min.GreaterThan(p.LoyaltyTiers[j].Min) })
	return &ProfileDiscounter{policy: p}
}

// Name returns the strategy identifier.
func (d *ProfileDiscounter) Name() string {
	return "customer_profile"
}

// Calculate stacks every triggered rule in fixed order and caps the
// aggregate percentage before converting to money.
func (d *ProfileDiscounter) Calculate(ctx DiscountContext) DiscountResult {
	subtotal := ctx.CartTotal
	applied := make([]AppliedDiscount, 0)
	totalPercentage := decimal.Zero

	// 1. First-time buyer.
	if ctx.IsFirstOrder || ctx.OrderCount == 0 {
		applied = append(applied, AppliedDiscount{
			Name:       "First Order Discount",
			Percentage: d.policy.FirstOrderRate,
			Amount:     subtotal.Mul(d.policy.FirstOrderRate),
		})
		totalPercentage = totalPercentage.Add(d.policy.FirstOrderRate)
	}

	// 2. Loyalty tier by lifetime spend; highest tier only.
	if tier, ok := highestNamedTier(d.policy.LoyaltyTiers, ctx.LifetimeSpend); ok {
		applied = append(applied, AppliedDiscount{
			Name:       fmt.Sprintf("%s Loyalty", tier.Name),
			Percentage: tier.Rate,
			Amount:     subtotal.Mul(tier.Rate),
		})
		totalPercentage = totalPercentage.Add(tier.Rate)
	}

	// 3. Holiday season, flat add.
	if ctx.IsHolidaySeason {
		applied = append(applied, AppliedDiscount{
			Name:       "Holiday Season",
			Percentage: d.policy.HolidayRate,
			Amount:     subtotal.Mul(d.policy.HolidayRate),
		})
		totalPercentage = totalPercentage.Add(d.policy.HolidayRate)
	}

	// 4. Promo code, gated on a minimum order value. Codes are matched
	// exactly; only the cart strategy normalizes case.
	if ctx.PromoCode != "" {
		if promo, ok := d.policy.PromoCodes[ctx.PromoCode]; ok && subtotal.GreaterThanOrEqual(promo.MinOrder) {
			applied = append(applied, AppliedDiscount{
				Name:       fmt.Sprintf("Promo: %s", ctx.PromoCode),
				Percentage: promo.Rate,
				Amount:     subtotal.Mul(promo.Rate),
			})
			totalPercentage = totalPercentage.Add(promo.Rate)
		}
	}

	// 5. Referral bonus, flat add.
	if ctx.ReferralCode != "" {
		applied = append(applied, AppliedDiscount{
			Name:       "Referral Bonus",
			Percentage: d.policy.ReferralRate,
			Amount:     subtotal.Mul(d.policy.ReferralRate),
		})
		totalPercentage = totalPercentage.Add(d.policy.ReferralRate)
	}

	return finishDiscount(subtotal, totalPercentage, d.policy.MaxTotal, applied)
}

// LoyaltyTierName returns the loyalty tier a lifetime spend qualifies for,
// or "none".
func (d *ProfileDiscounter) LoyaltyTierName(lifetimeSpend decimal.Decimal) string {
	if tier, ok := highestNamedTier(d.policy.LoyaltyTiers, lifetimeSpend); ok {
		return strings.ToLower(tier.Name)
	}
	return "none"
}

// ValidatePromoCode checks a promo code against the cart total and reports
// whether it can be applied.
func (d *ProfileDiscounter) ValidatePromoCode(code string, cartTotal decimal.Decimal) (decimal.Decimal, string, bool) {
	promo, ok := d.policy.PromoCodes[code]
	if !ok {
		return decimal.Zero, "Invalid promo code", false
	}
	if cartTotal.LessThan(promo.MinOrder) {
		return decimal.Zero, fmt.Sprintf("Minimum order of $%s required", promo.MinOrder), false
	}
	return promo.Rate, fmt.Sprintf("%s%% discount applied!", promo.Rate.Mul(decimal.NewFromInt(100))), true
}
