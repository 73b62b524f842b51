package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nexuscommerce/decision-service/internal/domain/event"
	"github.com/nexuscommerce/decision-service/internal/domain/service"
	"github.com/nexuscommerce/decision-service/internal/domain/valueobject"
	"github.com/nexuscommerce/decision-service/pkg/events"
)

// OrderDecision is the aggregate root for point-of-sale order decisions.
// It records the risk assessment and the approval routing outcome for one
// order evaluation.
type OrderDecision struct {
	collector events.EventCollector

	id         uuid.UUID
	tenantID   uuid.UUID
	orderID    uuid.UUID
	customerID uuid.UUID

	orderTotal decimal.Decimal
	currency   string

	riskScore       int
	riskLevel       valueobject.RiskLevel
	recommendation  valueobject.Recommendation
	flags           []string
	requiredActions []string

	approvalStatus valueobject.ApprovalStatus
	approverLevel  string
	reason         string
	conditions     []string
	escalationPath []string

	decidedAt time.Time
	createdAt time.Time
	updatedAt time.Time
	version   int
}

// NewOrderDecision creates a new decision for an incoming order. The decision
// starts unevaluated; call Decide() to apply the assessment and routing.
func NewOrderDecision(
	tenantID, orderID, customerID uuid.UUID,
	orderTotal decimal.Decimal,
	currency string,
) (*OrderDecision, error) {
	if tenantID == uuid.Nil {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if orderID == uuid.Nil {
		return nil, fmt.Errorf("order ID is required")
	}
	if customerID == uuid.Nil {
		return nil, fmt.Errorf("customer ID is required")
	}
	if orderTotal.IsNegative() {
		return nil, fmt.Errorf("order total must not be negative")
	}
	if currency == "" {
		return nil, fmt.Errorf("currency is required")
	}

	now := time.Now().UTC()

	return &OrderDecision{
		id:              uuid.New(),
		tenantID:        tenantID,
		orderID:         orderID,
		customerID:      customerID,
		orderTotal:      orderTotal,
		currency:        currency,
		riskLevel:       valueobject.RiskLevelLow,
		flags:           make([]string, 0),
		requiredActions: make([]string, 0),
		conditions:      make([]string, 0),
		escalationPath:  make([]string, 0),
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// Decide applies a risk assessment and approval routing outcome to the
// decision. This is the core domain operation.
func (d *OrderDecision) Decide(assessment service.RiskAssessment, approval service.ApprovalResult) error {
	if assessment.Score < 0 || assessment.Score > 100 {
		return fmt.Errorf("risk score must be between 0 and 100, got %d", assessment.Score)
	}
	if assessment.Level.IsZero() || assessment.Recommendation.IsZero() {
		return fmt.Errorf("risk assessment is incomplete")
	}
	if approval.Status.IsZero() {
		return fmt.Errorf("approval routing is incomplete")
	}

	d.riskScore = assessment.Score
	d.riskLevel = assessment.Level
	d.recommendation = assessment.Recommendation
	d.flags = assessment.Flags
	d.requiredActions = assessment.RequiredActions

	d.approvalStatus = approval.Status
	d.approverLevel = approval.ApproverLevel
	d.reason = approval.Reason
	d.conditions = approval.Conditions
	d.escalationPath = approval.EscalationPath

	d.decidedAt = time.Now().UTC()
	d.updatedAt = d.decidedAt
	d.version++

	d.collector.Record(event.NewDecisionCompleted(
		d.id, d.tenantID, d.orderID, d.customerID,
		d.riskScore, d.riskLevel.String(), d.recommendation.String(),
		d.approvalStatus.String(), d.approverLevel, d.decidedAt,
	))

	if d.approvalStatus.IsRejected() {
		d.collector.Record(event.NewOrderRejected(
			d.id, d.tenantID, d.orderID, d.customerID,
			d.reason, d.decidedAt,
		))
	}

	if d.riskLevel.Equal(valueobject.RiskLevelCritical) {
		d.collector.Record(event.NewHighRiskDetected(
			d.id, d.tenantID, d.orderID, d.customerID,
			d.riskScore, d.flags, d.decidedAt,
		))
	}

	return nil
}

// Reconstruct rebuilds an OrderDecision from persisted data (no validation,
// no events).
func Reconstruct(
	id, tenantID, orderID, customerID uuid.UUID,
	orderTotal decimal.Decimal,
	currency string,
	riskScore int,
	riskLevel valueobject.RiskLevel,
	recommendation valueobject.Recommendation,
	flags, requiredActions []string,
	approvalStatus valueobject.ApprovalStatus,
	approverLevel, reason string,
	conditions, escalationPath []string,
	decidedAt time.Time,
	version int,
	createdAt, updatedAt time.Time,
) *OrderDecision {
	return &OrderDecision{
		id:              id,
		tenantID:        tenantID,
		orderID:         orderID,
		customerID:      customerID,
		orderTotal:      orderTotal,
		currency:        currency,
		riskScore:       riskScore,
		riskLevel:       riskLevel,
		recommendation:  recommendation,
		flags:           flags,
		requiredActions: requiredActions,
		approvalStatus:  approvalStatus,
		approverLevel:   approverLevel,
		reason:          reason,
		conditions:      conditions,
		escalationPath:  escalationPath,
		decidedAt:       decidedAt,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// --- Accessors ---

func (d *OrderDecision) ID() uuid.UUID                              { return d.id }
func (d *OrderDecision) TenantID() uuid.UUID                        { return d.tenantID }
func (d *OrderDecision) OrderID() uuid.UUID                         { return d.orderID }
func (d *OrderDecision) CustomerID() uuid.UUID                      { return d.customerID }
func (d *OrderDecision) OrderTotal() decimal.Decimal                { return d.orderTotal }
func (d *OrderDecision) Currency() string                           { return d.currency }
func (d *OrderDecision) RiskScore() int                             { return d.riskScore }
func (d *OrderDecision) RiskLevel() valueobject.RiskLevel           { return d.riskLevel }
func (d *OrderDecision) Recommendation() valueobject.Recommendation { return d.recommendation }
func (d *OrderDecision) Flags() []string                            { return d.flags }
func (d *OrderDecision) RequiredActions() []string                  { return d.requiredActions }
func (d *OrderDecision) ApprovalStatus() valueobject.ApprovalStatus { return d.approvalStatus }
func (d *OrderDecision) ApproverLevel() string                      { return d.approverLevel }
func (d *OrderDecision) Reason() string                             { return d.reason }
func (d *OrderDecision) Conditions() []string                       { return d.conditions }
func (d *OrderDecision) EscalationPath() []string                   { return d.escalationPath }
func (d *OrderDecision) DecidedAt() time.Time                       { return d.decidedAt }
func (d *OrderDecision) Version() int                               { return d.version }
func (d *OrderDecision) CreatedAt() time.Time                       { return d.createdAt }
func (d *OrderDecision) UpdatedAt() time.Time                       { return d.updatedAt }

// DomainEvents returns all accumulated domain events and clears them.
func (d *OrderDecision) DomainEvents() []events.DomainEvent {
	return d.collector.ClearEvents()
}
