package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nexuscommerce/decision-service/internal/domain/policy"
)

// CartDiscounter implements the cart-weighted discount strategy: tier,
// per-category weighted, bundle, spend-bonus, loyalty-duration and promo
// discounts stacked and capped.
type CartDiscounter struct {
	policy policy.CartDiscount
}

// NewCartDiscounter creates a CartDiscounter. Tier tables are re-sorted by
// descending threshold so a mis-ordered policy file cannot break the
// highest-tier-wins scan.
func NewCartDiscounter(p policy.CartDiscount) *CartDiscounter {
	sort.Slice(p.BundleTiers, func(i, j int) bool { return p.BundleTiers[i].Min > p.BundleTiers[j].Min })
	sort.Slice(p.SpendTiers, func(i, j int) bool { return p.SpendTiers[i].Min.GreaterThan(p.SpendTiers[j].Min) })
	sort.Slice(p.LoyaltyMonthTiers, func(i, j int) bool { return p.LoyaltyMonthTiers[i].Min > p.LoyaltyMonthTiers[j].Min })
	return &CartDiscounter{policy: p}
}

// Name returns the strategy identifier.
func (d *CartDiscounter) Name() string {
	return "cart_weighted"
}

// Calculate stacks every triggered rule in fixed order and caps the
// aggregate percentage before converting to money.
func (d *CartDiscounter) Calculate(ctx DiscountContext) DiscountResult {
	subtotal := decimal.Zero
	for _, item := range ctx.Items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	if subtotal.IsZero() {
		return DiscountResult{
			Subtotal:        decimal.Zero,
			Applied:         []AppliedDiscount{},
			TotalPercentage: decimal.Zero,
			TotalAmount:     decimal.Zero,
			FinalTotal:      decimal.Zero,
		}
	}

	applied := make([]AppliedDiscount, 0)
	totalPercentage := decimal.Zero

	// 1. Customer tier discount.
	if rate, ok := d.policy.TierRates[ctx.CustomerTier.String()]; ok && rate.IsPositive() {
		applied = append(applied, AppliedDiscount{
			Name:       fmt.Sprintf("%s Tier", titleCase(ctx.CustomerTier.String())),
			Percentage: rate,
			Amount:     subtotal.Mul(rate),
		})
		totalPercentage = totalPercentage.Add(rate)
	}

	// 2. Category discounts, weighted by each category's share of the
	// subtotal. Categories are evaluated in order of first appearance in
	// the cart so the line-item order stays deterministic.
	categoryTotals := make(map[string]decimal.Decimal)
	categoryOrder := make([]string, 0)
	for _, item := range ctx.Items {
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		if _, seen := categoryTotals[item.Category]; !seen {
			categoryOrder = append(categoryOrder, item.Category)
		}
		categoryTotals[item.Category] = categoryTotals[item.Category].Add(lineTotal)
	}

	for _, category := range categoryOrder {
		rate, ok := d.policy.CategoryRates[category]
		if !ok || !rate.IsPositive() {
			continue
		}
		amount := categoryTotals[category].Mul(rate)
		applied = append(applied, AppliedDiscount{
			Name:       fmt.Sprintf("%s Category", titleCase(category)),
			Percentage: rate,
			Amount:     amount,
		})
		// The aggregate grows by the category's weighted share, not the
		// nominal category rate.
		totalPercentage = totalPercentage.Add(amount.Div(subtotal))
	}

	// 3. Bundle discount by total item count; highest tier only.
	totalItems := 0
	for _, item := range ctx.Items {
		totalItems += item.Quantity
	}
	if tier, ok := highestCountTier(d.policy.BundleTiers, totalItems); ok {
		applied = append(applied, AppliedDiscount{
			Name:       fmt.Sprintf("Bundle (%d+ items)", tier.Min),
			Percentage: tier.Rate,
			Amount:     subtotal.Mul(tier.Rate),
		})
		totalPercentage = totalPercentage.Add(tier.Rate)
	}

	// 4. Spend bonus by subtotal; highest tier only.
	if tier, ok := highestAmountTier(d.policy.SpendTiers, subtotal); ok {
		applied = append(applied, AppliedDiscount{
			Name:       fmt.Sprintf("Spend Bonus ($%s+)", tier.Min),
			Percentage: tier.Rate,
			Amount:     subtotal.Mul(tier.Rate),
		})
		totalPercentage = totalPercentage.Add(tier.Rate)
	}

	// 5. Loyalty duration bonus by membership age; highest tier only.
	if tier, ok := highestCountTier(d.policy.LoyaltyMonthTiers, ctx.MembershipMonths); ok {
		applied = append(applied, AppliedDiscount{
			Name:       fmt.Sprintf("Loyalty (%d+ months)", tier.Min),
			Percentage: tier.Rate,
			Amount:     subtotal.Mul(tier.Rate),
		})
		totalPercentage = totalPercentage.Add(tier.Rate)
	}

	// 6. Promo code, flat add.
	if ctx.PromoCode != "" {
		code := strings.ToUpper(ctx.PromoCode)
		if rate, ok := d.policy.PromoCodes[code]; ok && rate.IsPositive() {
			applied = append(applied, AppliedDiscount{
				Name:       fmt.Sprintf("Promo: %s", code),
				Percentage: rate,
				Amount:     subtotal.Mul(rate),
			})
			totalPercentage = totalPercentage.Add(rate)
		}
	}

	return finishDiscount(subtotal, totalPercentage, d.policy.MaxTotal, applied)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
