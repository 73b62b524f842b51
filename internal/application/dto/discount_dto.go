package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nexuscommerce/decision-service/internal/domain/service"
	"github.com/nexuscommerce/decision-service/internal/domain/valueobject"
)

// CartItemDTO is one order line in a discount request.
type CartItemDTO struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Category string          `json:"category"`
}

// CalculateDiscountRequest is the input DTO for the CalculateDiscount use
// case. Strategy selects which stacking strategy runs. MemberSince, when
// set, is converted to membership months server-side.
type CalculateDiscountRequest struct {
	Strategy string `json:"strategy"`

	Items        []CartItemDTO `json:"items"`
	CustomerTier string        `json:"customer_tier"`
	MemberSince  time.Time     `json:"member_since"`

	OrderCount      int             `json:"order_count"`
	LifetimeSpend   decimal.Decimal `json:"lifetime_spend"`
	IsFirstOrder    bool            `json:"is_first_order"`
	CartTotal       decimal.Decimal `json:"cart_total"`
	IsHolidaySeason bool            `json:"is_holiday_season"`
	ReferralCode    string          `json:"referral_code"`

	PromoCode string `json:"promo_code"`
}

// ToContext converts the request into the domain fact sheet.
func (r CalculateDiscountRequest) ToContext(now time.Time) (service.DiscountContext, error) {
	tier, err := valueobject.CustomerTierFromString(r.CustomerTier)
	if err != nil {
		return service.DiscountContext{}, ValidationError{Field: "customer_tier", Message: err.Error()}
	}

	items := make([]service.CartItem, 0, len(r.Items))
	for _, item := range r.Items {
		if item.Quantity < 0 {
			return service.DiscountContext{}, ValidationError{Field: "items", Message: "quantity must not be negative"}
		}
		if item.Price.IsNegative() {
			return service.DiscountContext{}, ValidationError{Field: "items", Message: "price must not be negative"}
		}
		items = append(items, service.CartItem{
			ID:        item.ID,
			Name:      item.Name,
			UnitPrice: item.Price,
			Quantity:  item.Quantity,
			Category:  item.Category,
		})
	}

	months := 0
	if !r.MemberSince.IsZero() {
		months = service.MembershipMonths(r.MemberSince, now)
	}

	return service.DiscountContext{
		Items:            items,
		CustomerTier:     tier,
		MembershipMonths: months,
		OrderCount:       r.OrderCount,
		LifetimeSpend:    r.LifetimeSpend,
		IsFirstOrder:     r.IsFirstOrder,
		CartTotal:        r.CartTotal,
		IsHolidaySeason:  r.IsHolidaySeason,
		ReferralCode:     r.ReferralCode,
		PromoCode:        r.PromoCode,
	}, nil
}

// AppliedDiscountDTO is one triggered discount line in the response.
type AppliedDiscountDTO struct {
	Name       string `json:"name"`
	Percentage string `json:"percentage"`
	Amount     string `json:"amount"`
}

// DiscountResponse is the output DTO for a discount calculation.
type DiscountResponse struct {
	Strategy        string               `json:"strategy"`
	Subtotal        string               `json:"subtotal"`
	Applied         []AppliedDiscountDTO `json:"applied"`
	TotalPercentage string               `json:"total_percentage"`
	TotalAmount     string               `json:"total_amount"`
	FinalTotal      string               `json:"final_total"`
}

// FromDiscountResult maps a domain result to the response DTO.
func FromDiscountResult(strategy string, result service.DiscountResult) DiscountResponse {
	applied := make([]AppliedDiscountDTO, 0, len(result.Applied))
	for _, a := range result.Applied {
		applied = append(applied, AppliedDiscountDTO{
			Name:       a.Name,
			Percentage: a.Percentage.String(),
			Amount:     a.Amount.String(),
		})
	}

	return DiscountResponse{
		Strategy:        strategy,
		Subtotal:        result.Subtotal.String(),
		Applied:         applied,
		TotalPercentage: result.TotalPercentage.String(),
		TotalAmount:     result.TotalAmount.String(),
		FinalTotal:      result.FinalTotal.String(),
	}
}
