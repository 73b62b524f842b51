package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexuscommerce/decision-service/internal/application/dto"
	"github.com/nexuscommerce/decision-service/internal/application/usecase"
	"github.com/nexuscommerce/decision-service/internal/domain/model"
	"github.com/nexuscommerce/decision-service/internal/domain/policy"
	"github.com/nexuscommerce/decision-service/internal/domain/port"
	"github.com/nexuscommerce/decision-service/internal/domain/service"
	"github.com/nexuscommerce/decision-service/pkg/events"
)

// --- Mock implementations ---

type mockDecisionRepository struct {
	savedDecision     *model.OrderDecision
	saveFunc          func(ctx context.Context, decision *model.OrderDecision) error
	findByIDFunc      func(ctx context.Context, tenantID, id uuid.UUID) (*model.OrderDecision, error)
	findByOrderIDFunc func(ctx context.Context, tenantID, orderID uuid.UUID) (*model.OrderDecision, error)
}

func (m *mockDecisionRepository) Save(ctx context.Context, decision *model.OrderDecision) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, decision)
	}
	m.savedDecision = decision
	return nil
}

func (m *mockDecisionRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.OrderDecision, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, tenantID, id)
	}
	return nil, port.ErrDecisionNotFound
}

func (m *mockDecisionRepository) FindByOrderID(ctx context.Context, tenantID, orderID uuid.UUID) (*model.OrderDecision, error) {
	if m.findByOrderIDFunc != nil {
		return m.findByOrderIDFunc(ctx, tenantID, orderID)
	}
	return nil, port.ErrDecisionNotFound
}

type mockEventPublisher struct {
	publishedEvents []events.DomainEvent
	publishFunc     func(ctx context.Context, evts ...events.DomainEvent) error
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

// --- Tests ---

func validEvaluateRequest() dto.EvaluateOrderRequest {
	return dto.EvaluateOrderRequest{
		TenantID:        uuid.New(),
		OrderID:         uuid.New(),
		CustomerID:      uuid.New(),
		OrderTotal:      decimal.NewFromInt(500),
		Currency:        "USD",
		CustomerAgeDays: 400,
		PreviousOrders:  20,
		CountryCode:     "US",
		PaymentMethod:   "credit_card",
		PaymentTerms:    "credit_card",
		CustomerTier:    "basic",
	}
}

func newEvaluateOrder(repo *mockDecisionRepository, publisher *mockEventPublisher) *usecase.EvaluateOrder {
	defaults := policy.Defaults()
	return usecase.NewEvaluateOrder(
		repo,
		publisher,
		service.NewRiskScorer(defaults.Risk),
		service.NewApprovalRouter(defaults.Approval),
	)
}

func TestEvaluateOrder_Execute(t *testing.T) {
	t.Run("successfully evaluates a low-risk order", func(t *testing.T) {
		repo := &mockDecisionRepository{}
		publisher := &mockEventPublisher{}
		uc := newEvaluateOrder(repo, publisher)

		req := validEvaluateRequest()
		resp, err := uc.Execute(context.Background(), req)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, resp.ID)
		assert.Equal(t, req.TenantID, resp.TenantID)
		assert.Equal(t, req.OrderID, resp.OrderID)
		assert.Equal(t, "low", resp.RiskLevel)
		assert.Equal(t, "approve", resp.Recommendation)
		assert.Equal(t, "auto_approved", resp.ApprovalStatus)

		require.NotNil(t, repo.savedDecision)
		assert.Equal(t, resp.ID, repo.savedDecision.ID())
		require.Len(t, publisher.publishedEvents, 1)
		assert.Equal(t, "decision.completed", publisher.publishedEvents[0].EventType())
	})

	t.Run("rejects a critical-risk order and publishes rejection events", func(t *testing.T) {
		repo := &mockDecisionRepository{}
		publisher := &mockEventPublisher{}
		uc := newEvaluateOrder(repo, publisher)

		req := validEvaluateRequest()
		req.OrderTotal = decimal.NewFromInt(30000)
		req.CustomerAgeDays = 3
		req.PreviousOrders = 0
		req.IsNewCustomer = true

		resp, err := uc.Execute(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "critical", resp.RiskLevel)
		assert.Equal(t, "decline", resp.Recommendation)
		assert.Equal(t, "rejected", resp.ApprovalStatus)

		types := make([]string, 0, len(publisher.publishedEvents))
		for _, e := range publisher.publishedEvents {
			types = append(types, e.EventType())
		}
		assert.Contains(t, types, "decision.completed")
		assert.Contains(t, types, "decision.order.rejected")
		assert.Contains(t, types, "decision.high_risk.detected")
	})

	t.Run("rejects an invalid request before touching the repository", func(t *testing.T) {
		repo := &mockDecisionRepository{}
		publisher := &mockEventPublisher{}
		uc := newEvaluateOrder(repo, publisher)

		req := validEvaluateRequest()
		req.CustomerTier = "diamond"

		_, err := uc.Execute(context.Background(), req)

		var verr dto.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "customer_tier", verr.Field)
		assert.Nil(t, repo.savedDecision)
		assert.Empty(t, publisher.publishedEvents)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		repo := &mockDecisionRepository{
			saveFunc: func(ctx context.Context, decision *model.OrderDecision) error {
				return fmt.Errorf("database unavailable")
			},
		}
		publisher := &mockEventPublisher{}
		uc := newEvaluateOrder(repo, publisher)

		_, err := uc.Execute(context.Background(), validEvaluateRequest())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "database unavailable")
		assert.Empty(t, publisher.publishedEvents)
	})

	t.Run("propagates publisher errors", func(t *testing.T) {
		repo := &mockDecisionRepository{}
		publisher := &mockEventPublisher{
			publishFunc: func(ctx context.Context, evts ...events.DomainEvent) error {
				return fmt.Errorf("broker unreachable")
			},
		}
		uc := newEvaluateOrder(repo, publisher)

		_, err := uc.Execute(context.Background(), validEvaluateRequest())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "broker unreachable")
	})
}
