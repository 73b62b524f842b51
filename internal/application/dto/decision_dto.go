package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nexuscommerce/decision-service/internal/domain/model"
	"github.com/nexuscommerce/decision-service/internal/domain/valueobject"
)

// ValidationError describes a rejected request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// EvaluateOrderRequest is the input DTO for the EvaluateOrder use case.
// PaymentMethod is the raw instrument token used for risk scoring
// (including tokens like "crypto"); PaymentTerms is the settlement
// arrangement used for approval routing.
type EvaluateOrderRequest struct {
	TenantID   uuid.UUID `json:"tenant_id"`
	OrderID    uuid.UUID `json:"order_id"`
	CustomerID uuid.UUID `json:"customer_id"`

	OrderTotal decimal.Decimal `json:"order_total"`
	Currency   string          `json:"currency"`

	CustomerAgeDays int  `json:"customer_age_days"`
	PreviousOrders  int  `json:"previous_orders"`
	FailedPayments  int  `json:"failed_payments"`
	IsNewCustomer   bool `json:"is_new_customer"`

	CountryCode       string `json:"country_code"`
	PaymentMethod     string `json:"payment_method"`
	PaymentTerms      string `json:"payment_terms"`
	CustomerTier      string `json:"customer_tier"`
	ProductCategory   string `json:"product_category"`
	DeviceFingerprint string `json:"device_fingerprint"`
	IPAddress         string `json:"ip_address"`
}

// Validate checks the request and resolves its enum fields. It returns the
// parsed tier and payment terms so callers validate exactly once.
func (r EvaluateOrderRequest) Validate() (valueobject.CustomerTier, valueobject.PaymentTerms, error) {
	if r.TenantID == uuid.Nil {
		return valueobject.CustomerTier{}, valueobject.PaymentTerms{}, ValidationError{Field: "tenant_id", Message: "is required"}
	}
	if r.OrderID == uuid.Nil {
		return valueobject.CustomerTier{}, valueobject.PaymentTerms{}, ValidationError{Field: "order_id", Message: "is required"}
	}
	if r.CustomerID == uuid.Nil {
		return valueobject.CustomerTier{}, valueobject.PaymentTerms{}, ValidationError{Field: "customer_id", Message: "is required"}
	}
	if r.OrderTotal.IsNegative() {
		return valueobject.CustomerTier{}, valueobject.PaymentTerms{}, ValidationError{Field: "order_total", Message: "must not be negative"}
	}
	if r.Currency == "" {
		return valueobject.CustomerTier{}, valueobject.PaymentTerms{}, ValidationError{Field: "currency", Message: "is required"}
	}
	if r.CustomerAgeDays < 0 {
		return valueobject.CustomerTier{}, valueobject.PaymentTerms{}, ValidationError{Field: "customer_age_days", Message: "must not be negative"}
	}
	if r.PreviousOrders < 0 {
		return valueobject.CustomerTier{}, valueobject.PaymentTerms{}, ValidationError{Field: "previous_orders", Message: "must not be negative"}
	}
	if r.FailedPayments < 0 {
		return valueobject.CustomerTier{}, valueobject.PaymentTerms{}, ValidationError{Field: "failed_payments", Message: "must not be negative"}
	}

	tier, err := valueobject.CustomerTierFromString(r.CustomerTier)
	if err != nil {
		return valueobject.CustomerTier{}, valueobject.PaymentTerms{}, ValidationError{Field: "customer_tier", Message: err.Error()}
	}
	terms, err := valueobject.PaymentTermsFromString(r.PaymentTerms)
	if err != nil {
		return valueobject.CustomerTier{}, valueobject.PaymentTerms{}, ValidationError{Field: "payment_terms", Message: err.Error()}
	}

	return tier, terms, nil
}

// DecisionResponse is the output DTO returned after evaluating an order.
type DecisionResponse struct {
	ID         uuid.UUID `json:"id"`
	TenantID   uuid.UUID `json:"tenant_id"`
	OrderID    uuid.UUID `json:"order_id"`
	CustomerID uuid.UUID `json:"customer_id"`

	OrderTotal string `json:"order_total"`
	Currency   string `json:"currency"`

	RiskScore       int      `json:"risk_score"`
	RiskLevel       string   `json:"risk_level"`
	Recommendation  string   `json:"recommendation"`
	Flags           []string `json:"flags"`
	RequiredActions []string `json:"required_actions"`

	ApprovalStatus string   `json:"approval_status"`
	ApproverLevel  string   `json:"approver_level,omitempty"`
	Reason         string   `json:"reason"`
	Conditions     []string `json:"conditions"`
	EscalationPath []string `json:"escalation_path"`

	DecidedAt time.Time `json:"decided_at"`
	CreatedAt time.Time `json:"created_at"`
}

// GetDecisionRequest is the input DTO for retrieving a decision.
type GetDecisionRequest struct {
	TenantID   uuid.UUID `json:"tenant_id"`
	DecisionID uuid.UUID `json:"decision_id"`
}

// FromModel maps a domain model to the response DTO.
func FromModel(d *model.OrderDecision) DecisionResponse {
	return DecisionResponse{
		ID:              d.ID(),
		TenantID:        d.TenantID(),
		OrderID:         d.OrderID(),
		CustomerID:      d.CustomerID(),
		OrderTotal:      d.OrderTotal().String(),
		Currency:        d.Currency(),
		RiskScore:       d.RiskScore(),
		RiskLevel:       d.RiskLevel().String(),
		Recommendation:  d.Recommendation().String(),
		Flags:           d.Flags(),
		RequiredActions: d.RequiredActions(),
		ApprovalStatus:  d.ApprovalStatus().String(),
		ApproverLevel:   d.ApproverLevel(),
		Reason:          d.Reason(),
		Conditions:      d.Conditions(),
		EscalationPath:  d.EscalationPath(),
		DecidedAt:       d.DecidedAt(),
		CreatedAt:       d.CreatedAt(),
	}
}
