package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/nexuscommerce/decision-service/internal/application/dto"
	"github.com/nexuscommerce/decision-service/internal/domain/service"
)

// CalculateDiscount is the use case for running a discount stacking
// strategy over a cart or customer profile.
type CalculateDiscount struct {
	strategies map[string]service.Discounter
}

// NewCalculateDiscount creates a CalculateDiscount use case over the given
// strategies, keyed by their names.
func NewCalculateDiscount(strategies ...service.Discounter) *CalculateDiscount {
	byName := make(map[string]service.Discounter, len(strategies))
	for _, s := range strategies {
		byName[s.Name()] = s
	}
	return &CalculateDiscount{strategies: byName}
}

// Execute runs the requested strategy.
func (uc *CalculateDiscount) Execute(_ context.Context, req dto.CalculateDiscountRequest) (dto.DiscountResponse, error) {
	strategy, ok := uc.strategies[req.Strategy]
	if !ok {
		return dto.DiscountResponse{}, dto.ValidationError{
			Field:   "strategy",
			Message: fmt.Sprintf("unknown strategy %q", req.Strategy),
		}
	}

	discountCtx, err := req.ToContext(time.Now().UTC())
	if err != nil {
		return dto.DiscountResponse{}, err
	}

	result := strategy.Calculate(discountCtx)

	return dto.FromDiscountResult(strategy.Name(), result), nil
}
