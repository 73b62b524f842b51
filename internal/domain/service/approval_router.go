package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nexuscommerce/decision-service/internal/domain/policy"
	"github.com/nexuscommerce/decision-service/internal/domain/valueobject"
)

// ApprovalContext contains the order and customer facts required for
// approval routing. RiskLevel is computed upstream by the risk scorer.
type ApprovalContext struct {
	OrderTotal      decimal.Decimal
	CustomerID      string
	CustomerTier    valueobject.CustomerTier
	IsNewCustomer   bool
	RiskLevel       valueobject.RiskLevel
	PaymentTerms    valueobject.PaymentTerms
	ProductCategory string
}

// ApprovalResult contains the terminal routing outcome. Conditions record
// every modifier applied to the auto-approval limit, in application order.
// EscalationPath is empty exactly when the order auto-approves or is
// rejected before the ladder is reached.
type ApprovalResult struct {
	Status         valueobject.ApprovalStatus
	ApproverLevel  string
	Reason         string
	Conditions     []string
	EscalationPath []string
}

// ApprovalRouter is a domain service that routes an order to the right
// approval authority. It is a single-shot decision tree: every status it
// returns is terminal.
type ApprovalRouter struct {
	policy     policy.Approval
	restricted map[string]bool
}

// NewApprovalRouter creates an ApprovalRouter with the given policy.
func NewApprovalRouter(p policy.Approval) *ApprovalRouter {
	return &ApprovalRouter{
		policy:     p,
		restricted: toSet(p.RestrictedCategories),
	}
}

// Route determines the approval level for an order.
//
// Only the auto-approval limit is adjusted by tier, customer age, risk and
// payment terms. The escalation thresholds above it are fixed policy.
func (r *ApprovalRouter) Route(ctx ApprovalContext) ApprovalResult {
	p := r.policy

	// Critical risk rejects outright.
	if ctx.RiskLevel.Equal(valueobject.RiskLevelCritical) {
		return ApprovalResult{
			Status:         valueobject.StatusRejected,
			ApproverLevel:  "System",
			Reason:         "Critical risk level - order cannot be processed",
			Conditions:     []string{"Customer flagged as critical risk"},
			EscalationPath: []string{"Risk Team", "Compliance"},
		}
	}

	// New customers have a hard order ceiling.
	if ctx.IsNewCustomer && ctx.OrderTotal.GreaterThan(p.NewCustomerMaxLimit) {
		return ApprovalResult{
			Status:         valueobject.StatusRejected,
			ApproverLevel:  "System",
			Reason:         fmt.Sprintf("New customers limited to $%s orders", p.NewCustomerMaxLimit),
			Conditions:     []string{"New customer order limit exceeded"},
			EscalationPath: []string{"Sales Manager", "Risk Team"},
		}
	}

	conditions := make([]string, 0)

	// Compute the effective auto-approval limit. Modifier order is fixed:
	// tier, new customer, risk level, payment terms.
	effectiveLimit := p.AutoApproveLimit

	switch ctx.CustomerTier {
	case valueobject.TierEnterprise:
		effectiveLimit = effectiveLimit.Mul(p.EnterpriseMultiplier)
		conditions = append(conditions, "Enterprise tier: 2x auto-approve limit")
	case valueobject.TierVIP:
		effectiveLimit = effectiveLimit.Mul(p.VIPMultiplier)
		conditions = append(conditions, "VIP tier: 1.5x auto-approve limit")
	}

	if ctx.IsNewCustomer {
		effectiveLimit = decimal.Min(effectiveLimit, p.NewCustomerAutoLimit)
		conditions = append(conditions, fmt.Sprintf("New customer: limited to $%s", p.NewCustomerAutoLimit))
	}

	if ctx.RiskLevel.Equal(valueobject.RiskLevelHigh) {
		effectiveLimit = decimal.Min(effectiveLimit, p.HighRiskAutoLimit)
		conditions = append(conditions, fmt.Sprintf("High risk: limited to $%s", p.HighRiskAutoLimit))
	} else if ctx.RiskLevel.Equal(valueobject.RiskLevelMedium) {
		effectiveLimit = effectiveLimit.Mul(p.MediumRiskMultiplier)
		conditions = append(conditions, "Medium risk: 25% reduction in limits")
	}

	if ctx.PaymentTerms.IsNetTerms() {
		effectiveLimit = effectiveLimit.Mul(p.NetTermsMultiplier)
		conditions = append(conditions, "Net terms: 50% reduction in auto-approve limit")
	}

	// Restricted categories need a manager at minimum, regardless of the
	// effective limit; above the manager threshold the ladder takes over.
	if ctx.ProductCategory != "" && r.restricted[ctx.ProductCategory] {
		conditions = append(conditions, fmt.Sprintf("Restricted category (%s): requires manager approval", ctx.ProductCategory))
		if ctx.OrderTotal.LessThan(p.ManagerLimit) {
			return ApprovalResult{
				Status:         valueobject.StatusManagerApproval,
				ApproverLevel:  "Manager",
				Reason:         "Restricted product category requires manager review",
				Conditions:     conditions,
				EscalationPath: []string{"Sales Manager", "Compliance"},
			}
		}
	}

	// Walk the ladder against the fixed escalation thresholds.
	if ctx.OrderTotal.LessThanOrEqual(effectiveLimit) {
		return ApprovalResult{
			Status:         valueobject.StatusAutoApproved,
			ApproverLevel:  "System",
			Reason:         "Order within auto-approval limits",
			Conditions:     conditions,
			EscalationPath: []string{},
		}
	}

	if ctx.OrderTotal.LessThanOrEqual(p.ManagerLimit) {
		return ApprovalResult{
			Status:         valueobject.StatusManagerApproval,
			ApproverLevel:  "Manager",
			Reason:         fmt.Sprintf("Orders between $%s and $%s require manager approval", effectiveLimit, p.ManagerLimit),
			Conditions:     conditions,
			EscalationPath: []string{"Sales Manager"},
		}
	}

	if ctx.OrderTotal.LessThanOrEqual(p.DirectorLimit) {
		return ApprovalResult{
			Status:         valueobject.StatusDirectorApproval,
			ApproverLevel:  "Director",
			Reason:         fmt.Sprintf("Orders between $%s and $%s require director approval", p.ManagerLimit, p.DirectorLimit),
			Conditions:     conditions,
			EscalationPath: []string{"Sales Manager", "Sales Director"},
		}
	}

	if ctx.OrderTotal.LessThanOrEqual(p.VPLimit) {
		return ApprovalResult{
			Status:         valueobject.StatusVPApproval,
			ApproverLevel:  "VP",
			Reason:         fmt.Sprintf("Orders between $%s and $%s require VP approval", p.DirectorLimit, p.VPLimit),
			Conditions:     conditions,
			EscalationPath: []string{"Sales Manager", "Sales Director", "VP of Sales"},
		}
	}

	return ApprovalResult{
		Status:         valueobject.StatusCFOApproval,
		ApproverLevel:  "CFO",
		Reason:         fmt.Sprintf("Orders over $%s require CFO approval", p.VPLimit),
		Conditions:     conditions,
		EscalationPath: []string{"Sales Manager", "Sales Director", "VP of Sales", "CFO"},
	}
}
