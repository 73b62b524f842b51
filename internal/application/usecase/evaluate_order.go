package usecase

import (
	"context"
	"fmt"

	"github.com/nexuscommerce/decision-service/internal/application/dto"
	"github.com/nexuscommerce/decision-service/internal/domain/model"
	"github.com/nexuscommerce/decision-service/internal/domain/port"
	"github.com/nexuscommerce/decision-service/internal/domain/service"
)

// EvaluateOrder is the use case for scoring and routing an order. It runs
// the full pipeline: risk assessment, approval routing, persistence and
// event publication.
type EvaluateOrder struct {
	repo      port.DecisionRepository
	publisher port.EventPublisher
	assessor  service.Assessor
	router    service.Router
}

// NewEvaluateOrder creates a new EvaluateOrder use case.
func NewEvaluateOrder(
	repo port.DecisionRepository,
	publisher port.EventPublisher,
	assessor service.Assessor,
	router service.Router,
) *EvaluateOrder {
	return &EvaluateOrder{
		repo:      repo,
		publisher: publisher,
		assessor:  assessor,
		router:    router,
	}
}

// Execute validates the request, assesses risk, routes for approval,
// persists the decision, and publishes events.
func (uc *EvaluateOrder) Execute(ctx context.Context, req dto.EvaluateOrderRequest) (dto.DecisionResponse, error) {
	tier, terms, err := req.Validate()
	if err != nil {
		return dto.DecisionResponse{}, err
	}

	// 1. Create the decision aggregate.
	decision, err := model.NewOrderDecision(
		req.TenantID,
		req.OrderID,
		req.CustomerID,
		req.OrderTotal,
		req.Currency,
	)
	if err != nil {
		return dto.DecisionResponse{}, fmt.Errorf("failed to create decision: %w", err)
	}

	// 2. Run risk scoring via the domain service.
	assessment := uc.assessor.Assess(service.RiskFactors{
		TransactionAmount: req.OrderTotal,
		CustomerAgeDays:   req.CustomerAgeDays,
		PreviousOrders:    req.PreviousOrders,
		FailedPayments:    req.FailedPayments,
		CountryCode:       req.CountryCode,
		PaymentMethod:     req.PaymentMethod,
		DeviceFingerprint: req.DeviceFingerprint,
		IPAddress:         req.IPAddress,
	})

	// 3. Route for approval using the assessed risk level.
	approval := uc.router.Route(service.ApprovalContext{
		OrderTotal:      req.OrderTotal,
		CustomerID:      req.CustomerID.String(),
		CustomerTier:    tier,
		IsNewCustomer:   req.IsNewCustomer,
		RiskLevel:       assessment.Level,
		PaymentTerms:    terms,
		ProductCategory: req.ProductCategory,
	})

	// 4. Apply both outcomes to the aggregate.
	if err := decision.Decide(assessment, approval); err != nil {
		return dto.DecisionResponse{}, fmt.Errorf("failed to decide order: %w", err)
	}

	// 5. Persist the decision.
	if err := uc.repo.Save(ctx, decision); err != nil {
		return dto.DecisionResponse{}, fmt.Errorf("failed to save decision: %w", err)
	}

	// 6. Publish domain events.
	events := decision.DomainEvents()
	if len(events) > 0 {
		if err := uc.publisher.Publish(ctx, events...); err != nil {
			return dto.DecisionResponse{}, fmt.Errorf("failed to publish events: %w", err)
		}
	}

	return dto.FromModel(decision), nil
}
