package usecase

import (
	"context"
	"fmt"

	"github.com/nexuscommerce/decision-service/internal/application/dto"
	"github.com/nexuscommerce/decision-service/internal/domain/port"
)

// GetDecision is the use case for retrieving an existing decision.
type GetDecision struct {
	repo port.DecisionRepository
}

// NewGetDecision creates a new GetDecision use case.
func NewGetDecision(repo port.DecisionRepository) *GetDecision {
	return &GetDecision{repo: repo}
}

// Execute retrieves an order decision by ID.
func (uc *GetDecision) Execute(ctx context.Context, req dto.GetDecisionRequest) (dto.DecisionResponse, error) {
	decision, err := uc.repo.FindByID(ctx, req.TenantID, req.DecisionID)
	if err != nil {
		return dto.DecisionResponse{}, fmt.Errorf("failed to find decision: %w", err)
	}

	return dto.FromModel(decision), nil
}
