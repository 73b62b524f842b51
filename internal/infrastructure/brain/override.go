package brain

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nexuscommerce/decision-service/internal/domain/port"
	"github.com/nexuscommerce/decision-service/internal/domain/service"
	"github.com/nexuscommerce/decision-service/internal/domain/valueobject"
)

const overrideDomain = "decisions"

// OverrideAssessor wraps a local risk scorer with the remote override
// service. The local assessment always runs first and is the result of
// record whenever the override is absent, malformed, or late.
type OverrideAssessor struct {
	local   service.Assessor
	client  port.RuleOverrideClient
	timeout time.Duration
	logger  *slog.Logger
}

// NewOverrideAssessor creates an OverrideAssessor around the local scorer.
func NewOverrideAssessor(local service.Assessor, client port.RuleOverrideClient, timeout time.Duration, logger *slog.Logger) *OverrideAssessor {
	return &OverrideAssessor{local: local, client: client, timeout: timeout, logger: logger}
}

// riskOverride is the shape an overriding risk assessment must have.
// Pointer fields distinguish absent from zero; a missing required field
// rejects the whole override.
type riskOverride struct {
	Score           *int     `json:"score"`
	Level           *string  `json:"level"`
	Recommendation  *string  `json:"recommendation"`
	Flags           []string `json:"flags"`
	RequiredActions []string `json:"required_actions"`
}

// Assess scores the order locally, then offers the override service a
// chance to replace the result. Any failure keeps the local assessment.
func (a *OverrideAssessor) Assess(factors service.RiskFactors) service.RiskAssessment {
	local := a.local.Assess(factors)

	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	raw, err := a.client.Evaluate(ctx, port.OverrideRequest{
		Domain: overrideDomain,
		Rule:   "risk_assessment",
		Context: map[string]any{
			"transaction_amount": factors.TransactionAmount.String(),
			"customer_age_days":  factors.CustomerAgeDays,
			"previous_orders":    factors.PreviousOrders,
			"failed_payments":    factors.FailedPayments,
			"country_code":       factors.CountryCode,
			"payment_method":     factors.PaymentMethod,
		},
		Fallback: map[string]any{
			"score":            local.Score,
			"level":            local.Level.String(),
			"recommendation":   local.Recommendation.String(),
			"flags":            local.Flags,
			"required_actions": local.RequiredActions,
		},
	})
	if err != nil {
		if !errors.Is(err, port.ErrNoOverride) {
			a.logger.Warn("risk override unavailable, using local assessment", "error", err)
		}
		return local
	}

	var o riskOverride
	if err := json.Unmarshal(raw, &o); err != nil {
		a.logger.Warn("risk override malformed, using local assessment", "error", err)
		return local
	}
	if o.Score == nil || o.Level == nil || o.Recommendation == nil {
		a.logger.Warn("risk override incomplete, using local assessment")
		return local
	}
	if *o.Score < 0 || *o.Score > 100 {
		a.logger.Warn("risk override score out of range, using local assessment", "score", *o.Score)
		return local
	}
	level, err := valueobject.RiskLevelFromString(*o.Level)
	if err != nil {
		a.logger.Warn("risk override level invalid, using local assessment", "error", err)
		return local
	}
	rec, err := valueobject.RecommendationFromString(*o.Recommendation)
	if err != nil {
		a.logger.Warn("risk override recommendation invalid, using local assessment", "error", err)
		return local
	}

	flags := o.Flags
	if flags == nil {
		flags = local.Flags
	}
	actions := o.RequiredActions
	if actions == nil {
		actions = local.RequiredActions
	}

	return service.RiskAssessment{
		Score:           *o.Score,
		Level:           level,
		Flags:           flags,
		Recommendation:  rec,
		RequiredActions: actions,
	}
}

// OverrideRouter wraps a local approval router with the remote override
// service, with the same fallback contract as OverrideAssessor.
type OverrideRouter struct {
	local   service.Router
	client  port.RuleOverrideClient
	timeout time.Duration
	logger  *slog.Logger
}

// NewOverrideRouter creates an OverrideRouter around the local router.
func NewOverrideRouter(local service.Router, client port.RuleOverrideClient, timeout time.Duration, logger *slog.Logger) *OverrideRouter {
	return &OverrideRouter{local: local, client: client, timeout: timeout, logger: logger}
}

type approvalOverride struct {
	Status         *string  `json:"status"`
	ApproverLevel  *string  `json:"approver_level"`
	Reason         *string  `json:"reason"`
	Conditions     []string `json:"conditions"`
	EscalationPath []string `json:"escalation_path"`
}

// Route routes the order locally, then offers the override service a chance
// to replace the outcome.
func (r *OverrideRouter) Route(approvalCtx service.ApprovalContext) service.ApprovalResult {
	local := r.local.Route(approvalCtx)

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	raw, err := r.client.Evaluate(ctx, port.OverrideRequest{
		Domain: overrideDomain,
		Rule:   "approval_routing",
		Context: map[string]any{
			"order_total":      approvalCtx.OrderTotal.String(),
			"customer_id":      approvalCtx.CustomerID,
			"customer_tier":    approvalCtx.CustomerTier.String(),
			"is_new_customer":  approvalCtx.IsNewCustomer,
			"risk_level":       approvalCtx.RiskLevel.String(),
			"payment_terms":    approvalCtx.PaymentTerms.String(),
			"product_category": approvalCtx.ProductCategory,
		},
		Fallback: map[string]any{
			"status":          local.Status.String(),
			"approver_level":  local.ApproverLevel,
			"reason":          local.Reason,
			"conditions":      local.Conditions,
			"escalation_path": local.EscalationPath,
		},
	})
	if err != nil {
		if !errors.Is(err, port.ErrNoOverride) {
			r.logger.Warn("approval override unavailable, using local routing", "error", err)
		}
		return local
	}

	var o approvalOverride
	if err := json.Unmarshal(raw, &o); err != nil {
		r.logger.Warn("approval override malformed, using local routing", "error", err)
		return local
	}
	if o.Status == nil || o.Reason == nil {
		r.logger.Warn("approval override incomplete, using local routing")
		return local
	}
	status, err := valueobject.ApprovalStatusFromString(*o.Status)
	if err != nil {
		r.logger.Warn("approval override status invalid, using local routing", "error", err)
		return local
	}

	result := service.ApprovalResult{
		Status:         status,
		Reason:         *o.Reason,
		Conditions:     local.Conditions,
		EscalationPath: local.EscalationPath,
		ApproverLevel:  local.ApproverLevel,
	}
	if o.ApproverLevel != nil {
		result.ApproverLevel = *o.ApproverLevel
	}
	if o.Conditions != nil {
		result.Conditions = o.Conditions
	}
	if o.EscalationPath != nil {
		result.EscalationPath = o.EscalationPath
	}
	return result
}

// OverrideDiscounter wraps a local discount strategy with the remote
// override service. An override carries a replacement aggregate rate; the
// line items stay as computed locally and the totals are rebuilt from the
// overridden rate.
type OverrideDiscounter struct {
	local   service.Discounter
	client  port.RuleOverrideClient
	timeout time.Duration
	logger  *slog.Logger
}

// NewOverrideDiscounter creates an OverrideDiscounter around the local
// strategy.
func NewOverrideDiscounter(local service.Discounter, client port.RuleOverrideClient, timeout time.Duration, logger *slog.Logger) *OverrideDiscounter {
	return &OverrideDiscounter{local: local, client: client, timeout: timeout, logger: logger}
}

// Name returns the wrapped strategy's name.
func (d *OverrideDiscounter) Name() string {
	return d.local.Name()
}

type discountOverride struct {
	TotalPercentage *float64 `json:"total_percentage"`
}

// Calculate stacks discounts locally, then offers the override service a
// chance to replace the aggregate rate.
func (d *OverrideDiscounter) Calculate(discountCtx service.DiscountContext) service.DiscountResult {
	local := d.local.Calculate(discountCtx)

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	raw, err := d.client.Evaluate(ctx, port.OverrideRequest{
		Domain: overrideDomain,
		Rule:   "discount_" + d.local.Name(),
		Context: map[string]any{
			"subtotal":          local.Subtotal.String(),
			"customer_tier":     discountCtx.CustomerTier.String(),
			"membership_months": discountCtx.MembershipMonths,
			"order_count":       discountCtx.OrderCount,
			"is_first_order":    discountCtx.IsFirstOrder,
			"promo_code":        discountCtx.PromoCode,
		},
		Fallback: map[string]any{
			"total_percentage": local.TotalPercentage.InexactFloat64(),
		},
	})
	if err != nil {
		if !errors.Is(err, port.ErrNoOverride) {
			d.logger.Warn("discount override unavailable, using local result", "error", err)
		}
		return local
	}

	var o discountOverride
	if err := json.Unmarshal(raw, &o); err != nil {
		d.logger.Warn("discount override malformed, using local result", "error", err)
		return local
	}
	if o.TotalPercentage == nil || *o.TotalPercentage < 0 || *o.TotalPercentage > 1 {
		d.logger.Warn("discount override rate invalid, using local result")
		return local
	}

	pct := decimal.NewFromFloat(*o.TotalPercentage)
	amount := local.Subtotal.Mul(pct).Round(2)

	return service.DiscountResult{
		Subtotal:        local.Subtotal,
		Applied:         local.Applied,
		TotalPercentage: pct,
		TotalAmount:     amount,
		FinalTotal:      local.Subtotal.Sub(amount).Round(2),
	}
}
