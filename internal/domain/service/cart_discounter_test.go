package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexuscommerce/decision-service/internal/domain/policy"
	"github.com/nexuscommerce/decision-service/internal/domain/valueobject"
)

func newCartDiscounter() *CartDiscounter {
	return NewCartDiscounter(policy.DefaultCartDiscount())
}

func eq(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	expected, err := decimal.NewFromString(want)
	require.NoError(t, err)
	assert.True(t, expected.Equal(got), "want %s, got %s %v", want, got, msgAndArgs)
}

func TestCartDiscounter_Calculate(t *testing.T) {
	t.Run("empty cart yields the zero result", func(t *testing.T) {
		out := newCartDiscounter().Calculate(DiscountContext{CustomerTier: valueobject.TierVIP})

		eq(t, "0", out.Subtotal)
		eq(t, "0", out.TotalPercentage)
		eq(t, "0", out.FinalTotal)
		assert.Empty(t, out.Applied)
	})

	t.Run("basic tier earns no tier discount", func(t *testing.T) {
		out := newCartDiscounter().Calculate(DiscountContext{
			CustomerTier: valueobject.TierBasic,
			Items: []CartItem{
				{ID: "a", Name: "Lamp", UnitPrice: decimal.NewFromInt(40), Quantity: 1, Category: "furniture"},
			},
		})

		assert.Empty(t, out.Applied)
		eq(t, "40", out.FinalTotal)
	})

	t.Run("category discount is weighted by cart share", func(t *testing.T) {
		// Clothing is half the cart, so its 10% nominal rate contributes 5%
		// to the aggregate.
		out := newCartDiscounter().Calculate(DiscountContext{
			CustomerTier: valueobject.TierBasic,
			Items: []CartItem{
				{ID: "a", Name: "Shirt", UnitPrice: decimal.NewFromInt(50), Quantity: 1, Category: "clothing"},
				{ID: "b", Name: "Bookend", UnitPrice: decimal.NewFromInt(50), Quantity: 1, Category: "books"},
			},
		})

		require.Len(t, out.Applied, 2)
		assert.Equal(t, "Clothing Category", out.Applied[0].Name)
		eq(t, "0.1", out.Applied[0].Percentage)
		eq(t, "5", out.Applied[0].Amount)
		assert.Equal(t, "Spend Bonus ($100+)", out.Applied[1].Name)

		// 5% weighted category + 2% spend bonus.
		eq(t, "0.07", out.TotalPercentage)
		eq(t, "93", out.FinalTotal)
	})

	t.Run("categories keep first-appearance order", func(t *testing.T) {
		out := newCartDiscounter().Calculate(DiscountContext{
			CustomerTier: valueobject.TierBasic,
			Items: []CartItem{
				{ID: "a", Name: "Tinsel", UnitPrice: decimal.NewFromInt(10), Quantity: 1, Category: "seasonal"},
				{ID: "b", Name: "Shirt", UnitPrice: decimal.NewFromInt(10), Quantity: 1, Category: "clothing"},
				{ID: "c", Name: "Wreath", UnitPrice: decimal.NewFromInt(10), Quantity: 1, Category: "seasonal"},
			},
		})

		names := make([]string, 0, len(out.Applied))
		for _, a := range out.Applied {
			names = append(names, a.Name)
		}
		// Seasonal first despite the interleaved clothing line; the three
		// units also trigger the lowest bundle tier.
		assert.Equal(t, []string{"Seasonal Category", "Clothing Category", "Bundle (3+ items)"}, names)
	})

	t.Run("bundle and loyalty pick the highest tier only", func(t *testing.T) {
		out := newCartDiscounter().Calculate(DiscountContext{
			CustomerTier:     valueobject.TierBasic,
			MembershipMonths: 30,
			Items: []CartItem{
				{ID: "a", Name: "Mug", UnitPrice: decimal.NewFromInt(4), Quantity: 12, Category: "kitchen"},
			},
		})

		names := make([]string, 0, len(out.Applied))
		for _, a := range out.Applied {
			names = append(names, a.Name)
		}
		assert.Contains(t, names, "Bundle (10+ items)")
		assert.NotContains(t, names, "Bundle (5+ items)")
		assert.Contains(t, names, "Loyalty (24+ months)")
		assert.NotContains(t, names, "Loyalty (12+ months)")
	})

	t.Run("promo codes are case-insensitive", func(t *testing.T) {
		out := newCartDiscounter().Calculate(DiscountContext{
			CustomerTier: valueobject.TierBasic,
			PromoCode:    "save10",
			Items: []CartItem{
				{ID: "a", Name: "Lamp", UnitPrice: decimal.NewFromInt(40), Quantity: 1, Category: "furniture"},
			},
		})

		require.Len(t, out.Applied, 1)
		assert.Equal(t, "Promo: SAVE10", out.Applied[0].Name)
	})

	t.Run("unknown promo codes are ignored", func(t *testing.T) {
		out := newCartDiscounter().Calculate(DiscountContext{
			CustomerTier: valueobject.TierBasic,
			PromoCode:    "NOSUCHCODE",
			Items: []CartItem{
				{ID: "a", Name: "Lamp", UnitPrice: decimal.NewFromInt(40), Quantity: 1, Category: "furniture"},
			},
		})

		assert.Empty(t, out.Applied)
	})

	t.Run("aggregate is capped at forty percent", func(t *testing.T) {
		// Enterprise 15% + clearance 30% weighted to 30% + bundle 15% +
		// spend 10% + loyalty 5% stacks far past the cap.
		out := newCartDiscounter().Calculate(DiscountContext{
			CustomerTier:     valueobject.TierEnterprise,
			MembershipMonths: 30,
			Items: []CartItem{
				{ID: "a", Name: "Sample", UnitPrice: decimal.NewFromInt(60), Quantity: 12, Category: "clearance"},
			},
		})

		eq(t, "0.4", out.TotalPercentage)
		eq(t, "720", out.Subtotal)
		eq(t, "288", out.TotalAmount)
		eq(t, "432", out.FinalTotal)

		// Line items keep their uncapped amounts for audit.
		sum := decimal.Zero
		for _, a := range out.Applied {
			sum = sum.Add(a.Amount)
		}
		assert.True(t, sum.GreaterThan(out.TotalAmount))
	})

	t.Run("final totals are rounded to cents", func(t *testing.T) {
		out := newCartDiscounter().Calculate(DiscountContext{
			CustomerTier: valueobject.TierPremium,
			Items: []CartItem{
				{ID: "a", Name: "Cable", UnitPrice: decimal.NewFromFloat(9.99), Quantity: 1, Category: "books"},
			},
		})

		// 9.99 * 5% = 0.4995, rounded.
		eq(t, "0.5", out.TotalAmount)
		eq(t, "9.49", out.FinalTotal)
	})
}
