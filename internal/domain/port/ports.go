package port

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/nexuscommerce/decision-service/internal/domain/model"
	"github.com/nexuscommerce/decision-service/pkg/events"
)

// ErrDecisionNotFound is returned when a decision does not exist.
var ErrDecisionNotFound = errors.New("decision not found")

// ErrNoOverride is returned by a RuleOverrideClient when the remote service
// has no override for the requested rule. Callers fall back to the local
// result.
var ErrNoOverride = errors.New("no override available")

// DecisionRepository persists order decisions.
type DecisionRepository interface {
	Save(ctx context.Context, decision *model.OrderDecision) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.OrderDecision, error)
	FindByOrderID(ctx context.Context, tenantID, orderID uuid.UUID) (*model.OrderDecision, error)
}

// EventPublisher publishes domain events to the message bus.
type EventPublisher interface {
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}

// OverrideRequest describes a rule evaluation sent to the remote override
// service. Fallback carries the locally computed result so the remote side
// can echo it back when it declines to override.
type OverrideRequest struct {
	Domain    string         `json:"domain"`
	Rule      string         `json:"rule"`
	Context   map[string]any `json:"context"`
	Fallback  any            `json:"fallback"`
	RequestID string         `json:"request_id,omitempty"`
}

// RuleOverrideClient consults a remote decisioning service that may override
// locally computed results. Implementations must return ErrNoOverride when
// the remote side has nothing to say; any other error is treated the same
// way by callers, which always keep the local result on failure.
type RuleOverrideClient interface {
	Evaluate(ctx context.Context, req OverrideRequest) (json.RawMessage, error)
}
