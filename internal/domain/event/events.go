package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/nexuscommerce/decision-service/pkg/events"
)

const (
	// EventTypeDecisionCompleted is emitted when an order decision finishes.
	EventTypeDecisionCompleted = "decision.completed"

	// EventTypeOrderRejected is emitted when routing rejects an order outright.
	EventTypeOrderRejected = "decision.order.rejected"

	// EventTypeHighRiskDetected is emitted when a critical risk level is detected.
	EventTypeHighRiskDetected = "decision.high_risk.detected"
)

// DecisionCompleted is published when an order has been fully evaluated:
// risk scored and routed to an approval level.
type DecisionCompleted struct {
	events.BaseEvent

	DecisionID     uuid.UUID `json:"decision_id"`
	TenantID       uuid.UUID `json:"tenant_id"`
	OrderID        uuid.UUID `json:"order_id"`
	CustomerID     uuid.UUID `json:"customer_id"`
	RiskScore      int       `json:"risk_score"`
	RiskLevel      string    `json:"risk_level"`
	Recommendation string    `json:"recommendation"`
	ApprovalStatus string    `json:"approval_status"`
	ApproverLevel  string    `json:"approver_level"`
	DecidedAt      time.Time `json:"decided_at"`
}

// NewDecisionCompleted creates a DecisionCompleted event.
func NewDecisionCompleted(
	decisionID, tenantID, orderID, customerID uuid.UUID,
	riskScore int,
	riskLevel, recommendation, approvalStatus, approverLevel string,
	decidedAt time.Time,
) DecisionCompleted {
	e := DecisionCompleted{
		DecisionID:     decisionID,
		TenantID:       tenantID,
		OrderID:        orderID,
		CustomerID:     customerID,
		RiskScore:      riskScore,
		RiskLevel:      riskLevel,
		Recommendation: recommendation,
		ApprovalStatus: approvalStatus,
		ApproverLevel:  approverLevel,
		DecidedAt:      decidedAt,
	}
	payload, _ := json.Marshal(e)
	e.BaseEvent = events.NewBaseEvent(EventTypeDecisionCompleted, decisionID, "OrderDecision", payload)
	return e
}

// OrderRejected is published when routing rejects an order, either for
// critical risk or for breaching the new-customer ceiling.
type OrderRejected struct {
	events.BaseEvent

	DecisionID uuid.UUID `json:"decision_id"`
	TenantID   uuid.UUID `json:"tenant_id"`
	OrderID    uuid.UUID `json:"order_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Reason     string    `json:"reason"`
	RejectedAt time.Time `json:"rejected_at"`
}

// NewOrderRejected creates an OrderRejected event.
func NewOrderRejected(
	decisionID, tenantID, orderID, customerID uuid.UUID,
	reason string,
	rejectedAt time.Time,
) OrderRejected {
	e := OrderRejected{
		DecisionID: decisionID,
		TenantID:   tenantID,
		OrderID:    orderID,
		CustomerID: customerID,
		Reason:     reason,
		RejectedAt: rejectedAt,
	}
	payload, _ := json.Marshal(e)
	e.BaseEvent = events.NewBaseEvent(EventTypeOrderRejected, decisionID, "OrderDecision", payload)
	return e
}

// HighRiskDetected is published when an order is assessed with critical risk,
// feeding downstream alerting.
type HighRiskDetected struct {
	events.BaseEvent

	DecisionID uuid.UUID `json:"decision_id"`
	TenantID   uuid.UUID `json:"tenant_id"`
	OrderID    uuid.UUID `json:"order_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	RiskScore  int       `json:"risk_score"`
	Flags      []string  `json:"flags"`
	DetectedAt time.Time `json:"detected_at"`
}

// NewHighRiskDetected creates a HighRiskDetected event.
func NewHighRiskDetected(
	decisionID, tenantID, orderID, customerID uuid.UUID,
	riskScore int,
	flags []string,
	detectedAt time.Time,
) HighRiskDetected {
	e := HighRiskDetected{
		DecisionID: decisionID,
		TenantID:   tenantID,
		OrderID:    orderID,
		CustomerID: customerID,
		RiskScore:  riskScore,
		Flags:      flags,
		DetectedAt: detectedAt,
	}
	payload, _ := json.Marshal(e)
	e.BaseEvent = events.NewBaseEvent(EventTypeHighRiskDetected, decisionID, "OrderDecision", payload)
	return e
}
