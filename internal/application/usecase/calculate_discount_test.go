package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexuscommerce/decision-service/internal/application/dto"
	"github.com/nexuscommerce/decision-service/internal/application/usecase"
	"github.com/nexuscommerce/decision-service/internal/domain/policy"
	"github.com/nexuscommerce/decision-service/internal/domain/service"
)

func newCalculateDiscount() *usecase.CalculateDiscount {
	defaults := policy.Defaults()
	return usecase.NewCalculateDiscount(
		service.NewCartDiscounter(defaults.CartDiscount),
		service.NewProfileDiscounter(defaults.ProfileDiscount),
	)
}

func TestCalculateDiscount_Execute(t *testing.T) {
	t.Run("runs the cart strategy", func(t *testing.T) {
		uc := newCalculateDiscount()

		resp, err := uc.Execute(context.Background(), dto.CalculateDiscountRequest{
			Strategy: "cart_weighted",
			Items: []dto.CartItemDTO{
				{ID: "sku-1", Name: "Jacket", Price: decimal.NewFromInt(100), Quantity: 2, Category: "clothing"},
			},
			CustomerTier: "premium",
		})

		require.NoError(t, err)
		assert.Equal(t, "cart_weighted", resp.Strategy)
		assert.Equal(t, "200", resp.Subtotal)
		assert.NotEmpty(t, resp.Applied)
	})

	t.Run("runs the profile strategy", func(t *testing.T) {
		uc := newCalculateDiscount()

		resp, err := uc.Execute(context.Background(), dto.CalculateDiscountRequest{
			Strategy:     "customer_profile",
			CustomerTier: "basic",
			CartTotal:    decimal.NewFromInt(100),
			IsFirstOrder: true,
		})

		require.NoError(t, err)
		assert.Equal(t, "customer_profile", resp.Strategy)
		require.Len(t, resp.Applied, 1)
		assert.Equal(t, "First Order Discount", resp.Applied[0].Name)
		assert.Equal(t, "90", resp.FinalTotal)
	})

	t.Run("converts membership start date to months", func(t *testing.T) {
		uc := newCalculateDiscount()

		resp, err := uc.Execute(context.Background(), dto.CalculateDiscountRequest{
			Strategy:     "cart_weighted",
			CustomerTier: "basic",
			MemberSince:  time.Now().AddDate(-3, 0, 0),
			Items: []dto.CartItemDTO{
				{ID: "sku-1", Name: "Desk", Price: decimal.NewFromInt(50), Quantity: 1, Category: "furniture"},
			},
		})

		require.NoError(t, err)

		names := make([]string, 0, len(resp.Applied))
		for _, a := range resp.Applied {
			names = append(names, a.Name)
		}
		assert.Contains(t, names, "Loyalty (24+ months)")
	})

	t.Run("rejects an unknown strategy", func(t *testing.T) {
		uc := newCalculateDiscount()

		_, err := uc.Execute(context.Background(), dto.CalculateDiscountRequest{
			Strategy:     "mystery",
			CustomerTier: "basic",
		})

		var verr dto.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "strategy", verr.Field)
	})

	t.Run("rejects an invalid tier", func(t *testing.T) {
		uc := newCalculateDiscount()

		_, err := uc.Execute(context.Background(), dto.CalculateDiscountRequest{
			Strategy:     "cart_weighted",
			CustomerTier: "diamond",
		})

		var verr dto.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "customer_tier", verr.Field)
	})
}
