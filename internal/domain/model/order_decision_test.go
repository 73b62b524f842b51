package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexuscommerce/decision-service/internal/domain/service"
	"github.com/nexuscommerce/decision-service/internal/domain/valueobject"
)

func newTestDecision(t *testing.T) *OrderDecision {
	t.Helper()
	decision, err := NewOrderDecision(
		uuid.New(), uuid.New(), uuid.New(),
		decimal.NewFromInt(1500), "USD",
	)
	require.NoError(t, err)
	return decision
}

func approvedAssessment() service.RiskAssessment {
	return service.RiskAssessment{
		Score:           15,
		Level:           valueobject.RiskLevelLow,
		Recommendation:  valueobject.RecommendApprove,
		Flags:           []string{"First-time buyer"},
		RequiredActions: []string{},
	}
}

func approvedRouting() service.ApprovalResult {
	return service.ApprovalResult{
		Status:         valueobject.StatusAutoApproved,
		ApproverLevel:  "none",
		Reason:         "",
		Conditions:     []string{},
		EscalationPath: []string{},
	}
}

func TestNewOrderDecision(t *testing.T) {
	t.Run("valid decision", func(t *testing.T) {
		decision := newTestDecision(t)

		assert.NotEqual(t, uuid.Nil, decision.ID())
		assert.Equal(t, "USD", decision.Currency())
		assert.Equal(t, "1500", decision.OrderTotal().String())
		assert.Equal(t, 1, decision.Version())
		assert.Equal(t, valueobject.RiskLevelLow, decision.RiskLevel())
		assert.True(t, decision.DecidedAt().IsZero())
		assert.Empty(t, decision.DomainEvents())
	})

	t.Run("validation failures", func(t *testing.T) {
		cases := []struct {
			name       string
			tenantID   uuid.UUID
			orderID    uuid.UUID
			customerID uuid.UUID
			total      decimal.Decimal
			currency   string
		}{
			{"missing tenant", uuid.Nil, uuid.New(), uuid.New(), decimal.NewFromInt(10), "USD"},
			{"missing order", uuid.New(), uuid.Nil, uuid.New(), decimal.NewFromInt(10), "USD"},
			{"missing customer", uuid.New(), uuid.New(), uuid.Nil, decimal.NewFromInt(10), "USD"},
			{"negative total", uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(-1), "USD"},
			{"missing currency", uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(10), ""},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				decision, err := NewOrderDecision(tc.tenantID, tc.orderID, tc.customerID, tc.total, tc.currency)
				assert.Error(t, err)
				assert.Nil(t, decision)
			})
		}
	})
}

func TestOrderDecision_Decide(t *testing.T) {
	t.Run("approved order", func(t *testing.T) {
		decision := newTestDecision(t)

		err := decision.Decide(approvedAssessment(), approvedRouting())
		require.NoError(t, err)

		assert.Equal(t, 15, decision.RiskScore())
		assert.Equal(t, valueobject.RiskLevelLow, decision.RiskLevel())
		assert.Equal(t, valueobject.RecommendApprove, decision.Recommendation())
		assert.Equal(t, []string{"First-time buyer"}, decision.Flags())
		assert.Equal(t, valueobject.StatusAutoApproved, decision.ApprovalStatus())
		assert.Equal(t, "none", decision.ApproverLevel())
		assert.Equal(t, 2, decision.Version())
		assert.False(t, decision.DecidedAt().IsZero())

		evts := decision.DomainEvents()
		require.Len(t, evts, 1)
		assert.Equal(t, "decision.completed", evts[0].EventType())
		assert.Equal(t, decision.ID(), evts[0].AggregateID())

		// Collector is drained after use.
		assert.Empty(t, decision.DomainEvents())
	})

	t.Run("rejected order emits rejection event", func(t *testing.T) {
		decision := newTestDecision(t)

		routing := approvedRouting()
		routing.Status = valueobject.StatusRejected
		routing.Reason = "Critical risk level - order cannot be processed"

		err := decision.Decide(approvedAssessment(), routing)
		require.NoError(t, err)

		evts := decision.DomainEvents()
		require.Len(t, evts, 2)
		assert.Equal(t, "decision.completed", evts[0].EventType())
		assert.Equal(t, "decision.order.rejected", evts[1].EventType())
	})

	t.Run("critical risk emits high risk event", func(t *testing.T) {
		decision := newTestDecision(t)

		assessment := approvedAssessment()
		assessment.Score = 95
		assessment.Level = valueobject.RiskLevelCritical
		assessment.Recommendation = valueobject.RecommendDecline
		routing := approvedRouting()
		routing.Status = valueobject.StatusRejected
		routing.Reason = "Critical risk level - order cannot be processed"

		err := decision.Decide(assessment, routing)
		require.NoError(t, err)

		types := make([]string, 0, 3)
		for _, evt := range decision.DomainEvents() {
			types = append(types, evt.EventType())
		}
		assert.Equal(t, []string{
			"decision.completed",
			"decision.order.rejected",
			"decision.high_risk.detected",
		}, types)
	})

	t.Run("invalid inputs", func(t *testing.T) {
		t.Run("score out of range", func(t *testing.T) {
			decision := newTestDecision(t)
			assessment := approvedAssessment()
			assessment.Score = 101
			assert.Error(t, decision.Decide(assessment, approvedRouting()))
			assert.Equal(t, 1, decision.Version())
		})

		t.Run("missing risk level", func(t *testing.T) {
			decision := newTestDecision(t)
			assessment := approvedAssessment()
			assessment.Level = valueobject.RiskLevel{}
			assert.Error(t, decision.Decide(assessment, approvedRouting()))
		})

		t.Run("missing approval status", func(t *testing.T) {
			decision := newTestDecision(t)
			routing := approvedRouting()
			routing.Status = valueobject.ApprovalStatus{}
			assert.Error(t, decision.Decide(approvedAssessment(), routing))
			assert.Empty(t, decision.DomainEvents())
		})
	})
}

func decisionTime(t *testing.T) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, "2026-03-15T10:30:00Z")
	require.NoError(t, err)
	return ts
}

func TestReconstruct(t *testing.T) {
	id, tenantID := uuid.New(), uuid.New()
	orderID, customerID := uuid.New(), uuid.New()

	decision := Reconstruct(
		id, tenantID, orderID, customerID,
		decimal.NewFromInt(9000), "EUR",
		70, valueobject.RiskLevelHigh, valueobject.RecommendReview,
		[]string{"Large transaction amount"}, []string{"Manager approval required"},
		valueobject.StatusManagerApproval, "manager", "",
		[]string{}, []string{},
		decisionTime(t), 3, decisionTime(t), decisionTime(t),
	)

	assert.Equal(t, id, decision.ID())
	assert.Equal(t, tenantID, decision.TenantID())
	assert.Equal(t, "9000", decision.OrderTotal().String())
	assert.Equal(t, 70, decision.RiskScore())
	assert.Equal(t, valueobject.StatusManagerApproval, decision.ApprovalStatus())
	assert.Equal(t, 3, decision.Version())
	// Rehydration never replays events.
	assert.Empty(t, decision.DomainEvents())
}
