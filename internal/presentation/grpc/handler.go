package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/nexuscommerce/decision-service/internal/application/dto"
	"github.com/nexuscommerce/decision-service/internal/application/usecase"
	"github.com/nexuscommerce/decision-service/internal/domain/port"
)

// Compile-time assertion that DecisionServiceHandler implements DecisionServiceServer.
var _ DecisionServiceServer = (*DecisionServiceHandler)(nil)

// DecisionServiceHandler implements the gRPC DecisionServiceServer interface.
type DecisionServiceHandler struct {
	UnimplementedDecisionServiceServer
	evaluateOrder     *usecase.EvaluateOrder
	calculateDiscount *usecase.CalculateDiscount
	getDecision       *usecase.GetDecision
	checkEligibility  *usecase.CheckEligibility
	logger            *slog.Logger
}

// NewDecisionServiceHandler creates a new gRPC handler.
func NewDecisionServiceHandler(
	evaluateOrder *usecase.EvaluateOrder,
	calculateDiscount *usecase.CalculateDiscount,
	getDecision *usecase.GetDecision,
	checkEligibility *usecase.CheckEligibility,
	logger *slog.Logger,
) *DecisionServiceHandler {
	return &DecisionServiceHandler{
		evaluateOrder:     evaluateOrder,
		calculateDiscount: calculateDiscount,
		getDecision:       getDecision,
		checkEligibility:  checkEligibility,
		logger:            logger,
	}
}

// Proto-aligned request/response message types.

// MoneyMsg represents the proto Money message.
type MoneyMsg struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// EvaluateOrderRequest represents the proto EvaluateOrderRequest message.
type EvaluateOrderRequest struct {
	TenantID   string    `json:"tenant_id"`
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id"`
	OrderTotal *MoneyMsg `json:"order_total"`

	CustomerAgeDays int32 `json:"customer_age_days"`
	PreviousOrders  int32 `json:"previous_orders"`
	FailedPayments  int32 `json:"failed_payments"`
	IsNewCustomer   bool  `json:"is_new_customer"`

	CountryCode       string `json:"country_code"`
	PaymentMethod     string `json:"payment_method"`
	PaymentTerms      string `json:"payment_terms"`
	CustomerTier      string `json:"customer_tier"`
	ProductCategory   string `json:"product_category"`
	DeviceFingerprint string `json:"device_fingerprint"`
	IPAddress         string `json:"ip_address"`
}

// OrderDecisionMsg represents the proto OrderDecision message.
type OrderDecisionMsg struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id"`
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id"`
	OrderTotal *MoneyMsg `json:"order_total"`

	RiskScore       int32    `json:"risk_score"`
	RiskLevel       string   `json:"risk_level"`
	Recommendation  string   `json:"recommendation"`
	Flags           []string `json:"flags"`
	RequiredActions []string `json:"required_actions"`

	ApprovalStatus string   `json:"approval_status"`
	ApproverLevel  string   `json:"approver_level"`
	Reason         string   `json:"reason"`
	Conditions     []string `json:"conditions"`
	EscalationPath []string `json:"escalation_path"`
}

// EvaluateOrderResponse represents the proto EvaluateOrderResponse message.
type EvaluateOrderResponse struct {
	Decision *OrderDecisionMsg `json:"decision"`
}

// CartItemMsg represents the proto CartItem message.
type CartItemMsg struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int32  `json:"quantity"`
	Category string `json:"category"`
}

// CalculateDiscountRequest represents the proto CalculateDiscountRequest message.
type CalculateDiscountRequest struct {
	Strategy string `json:"strategy"`

	Items        []*CartItemMsg `json:"items"`
	CustomerTier string         `json:"customer_tier"`
	MemberSince  string         `json:"member_since"`

	OrderCount      int32  `json:"order_count"`
	LifetimeSpend   string `json:"lifetime_spend"`
	IsFirstOrder    bool   `json:"is_first_order"`
	CartTotal       string `json:"cart_total"`
	IsHolidaySeason bool   `json:"is_holiday_season"`
	ReferralCode    string `json:"referral_code"`

	PromoCode string `json:"promo_code"`
}

// AppliedDiscountMsg represents the proto AppliedDiscount message.
type AppliedDiscountMsg struct {
	Name       string `json:"name"`
	Percentage string `json:"percentage"`
	Amount     string `json:"amount"`
}

// CalculateDiscountResponse represents the proto CalculateDiscountResponse message.
type CalculateDiscountResponse struct {
	Strategy        string                `json:"strategy"`
	Subtotal        string                `json:"subtotal"`
	Applied         []*AppliedDiscountMsg `json:"applied"`
	TotalPercentage string                `json:"total_percentage"`
	TotalAmount     string                `json:"total_amount"`
	FinalTotal      string                `json:"final_total"`
}

// GetDecisionRequest represents the proto GetDecisionRequest message.
type GetDecisionRequest struct {
	TenantID string `json:"tenant_id"`
	ID       string `json:"id"`
}

// GetDecisionResponse represents the proto GetDecisionResponse message.
type GetDecisionResponse struct {
	Decision *OrderDecisionMsg `json:"decision"`
}

// CheckEligibilityRequest represents the proto CheckEligibilityRequest message.
type CheckEligibilityRequest struct {
	CustomerID  string `json:"customer_id"`
	Age         int32  `json:"age"`
	Verified    bool   `json:"verified"`
	AccountDays int32  `json:"account_days"`
	CountryCode string `json:"country_code"`
	Email       string `json:"email"`
	OrderTotal  string `json:"order_total"`

	DaysOverdue    int32  `json:"days_overdue"`
	FailedPayments int32  `json:"failed_payments"`
	OrderCount     int32  `json:"order_count"`
	DisputeCount   int32  `json:"dispute_count"`
	LifetimeSpend  string `json:"lifetime_spend"`
}

// EligibilityCheckMsg represents the proto EligibilityCheck message.
type EligibilityCheckMsg struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// CheckEligibilityResponse represents the proto CheckEligibilityResponse message.
type CheckEligibilityResponse struct {
	Eligible bool                   `json:"eligible"`
	Reason   string                 `json:"reason"`
	Checks   []*EligibilityCheckMsg `json:"checks"`

	CreditScore   int32    `json:"credit_score"`
	CreditLevel   string   `json:"credit_level"`
	CreditFactors []string `json:"credit_factors"`

	FinancingAvailable bool `json:"financing_available"`
	PremiumFinancing   bool `json:"premium_financing"`
	B2BEligible        bool `json:"b2b_eligible"`

	HighRiskCustomer     bool `json:"high_risk_customer"`
	ManualReviewRequired bool `json:"manual_review_required"`
}

// EvaluateOrder handles an order evaluation request.
func (h *DecisionServiceHandler) EvaluateOrder(ctx context.Context, req *EvaluateOrderRequest) (*EvaluateOrderResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	tenantID, err := uuid.Parse(req.TenantID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid tenant_id: %v", err)
	}
	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid order_id: %v", err)
	}
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid customer_id: %v", err)
	}

	var orderTotal decimal.Decimal
	var currency string
	if req.OrderTotal != nil {
		orderTotal, err = decimal.NewFromString(req.OrderTotal.Amount)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid order_total: %v", err)
		}
		currency = req.OrderTotal.Currency
	}

	h.logger.Info("evaluating order",
		slog.String("tenant_id", tenantID.String()),
		slog.String("order_id", orderID.String()),
	)

	result, err := h.evaluateOrder.Execute(ctx, dto.EvaluateOrderRequest{
		TenantID:          tenantID,
		OrderID:           orderID,
		CustomerID:        customerID,
		OrderTotal:        orderTotal,
		Currency:          currency,
		CustomerAgeDays:   int(req.CustomerAgeDays),
		PreviousOrders:    int(req.PreviousOrders),
		FailedPayments:    int(req.FailedPayments),
		IsNewCustomer:     req.IsNewCustomer,
		CountryCode:       req.CountryCode,
		PaymentMethod:     req.PaymentMethod,
		PaymentTerms:      req.PaymentTerms,
		CustomerTier:      req.CustomerTier,
		ProductCategory:   req.ProductCategory,
		DeviceFingerprint: req.DeviceFingerprint,
		IPAddress:         req.IPAddress,
	})
	if err != nil {
		var verr dto.ValidationError
		if errors.As(err, &verr) {
			return nil, status.Error(codes.InvalidArgument, verr.Error())
		}
		h.logger.Error("failed to evaluate order",
			slog.String("order_id", orderID.String()),
			slog.String("error", err.Error()),
		)
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &EvaluateOrderResponse{Decision: decisionMsg(result)}, nil
}

// CalculateDiscount handles a discount calculation request.
func (h *DecisionServiceHandler) CalculateDiscount(ctx context.Context, req *CalculateDiscountRequest) (*CalculateDiscountResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	items := make([]dto.CartItemDTO, 0, len(req.Items))
	for _, item := range req.Items {
		if item == nil {
			continue
		}
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid item price: %v", err)
		}
		items = append(items, dto.CartItemDTO{
			ID:       item.ID,
			Name:     item.Name,
			Price:    price,
			Quantity: int(item.Quantity),
			Category: item.Category,
		})
	}

	var memberSince time.Time
	if req.MemberSince != "" {
		parsed, err := time.Parse(time.RFC3339, req.MemberSince)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid member_since: %v", err)
		}
		memberSince = parsed
	}

	lifetimeSpend, err := parseOptionalDecimal(req.LifetimeSpend)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid lifetime_spend: %v", err)
	}
	cartTotal, err := parseOptionalDecimal(req.CartTotal)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid cart_total: %v", err)
	}

	result, err := h.calculateDiscount.Execute(ctx, dto.CalculateDiscountRequest{
		Strategy:        req.Strategy,
		Items:           items,
		CustomerTier:    req.CustomerTier,
		MemberSince:     memberSince,
		OrderCount:      int(req.OrderCount),
		LifetimeSpend:   lifetimeSpend,
		IsFirstOrder:    req.IsFirstOrder,
		CartTotal:       cartTotal,
		IsHolidaySeason: req.IsHolidaySeason,
		ReferralCode:    req.ReferralCode,
		PromoCode:       req.PromoCode,
	})
	if err != nil {
		var verr dto.ValidationError
		if errors.As(err, &verr) {
			return nil, status.Error(codes.InvalidArgument, verr.Error())
		}
		return nil, status.Error(codes.Internal, "internal error")
	}

	applied := make([]*AppliedDiscountMsg, 0, len(result.Applied))
	for _, a := range result.Applied {
		applied = append(applied, &AppliedDiscountMsg{
			Name:       a.Name,
			Percentage: a.Percentage,
			Amount:     a.Amount,
		})
	}

	return &CalculateDiscountResponse{
		Strategy:        result.Strategy,
		Subtotal:        result.Subtotal,
		Applied:         applied,
		TotalPercentage: result.TotalPercentage,
		TotalAmount:     result.TotalAmount,
		FinalTotal:      result.FinalTotal,
	}, nil
}

// GetDecision handles a get decision request.
func (h *DecisionServiceHandler) GetDecision(ctx context.Context, req *GetDecisionRequest) (*GetDecisionResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	tenantID, err := uuid.Parse(req.TenantID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid tenant_id: %v", err)
	}
	decisionID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid id: %v", err)
	}

	result, err := h.getDecision.Execute(ctx, dto.GetDecisionRequest{
		TenantID:   tenantID,
		DecisionID: decisionID,
	})
	if err != nil {
		if errors.Is(err, port.ErrDecisionNotFound) {
			return nil, status.Errorf(codes.NotFound, "decision not found: %s", decisionID)
		}
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &GetDecisionResponse{Decision: decisionMsg(result)}, nil
}

// CheckEligibility handles a combined credit and eligibility check.
func (h *DecisionServiceHandler) CheckEligibility(ctx context.Context, req *CheckEligibilityRequest) (*CheckEligibilityResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	orderTotal, err := parseOptionalDecimal(req.OrderTotal)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid order_total: %v", err)
	}
	lifetimeSpend, err := parseOptionalDecimal(req.LifetimeSpend)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid lifetime_spend: %v", err)
	}

	result, err := h.checkEligibility.Execute(ctx, dto.CheckEligibilityRequest{
		CustomerID:     req.CustomerID,
		Age:            int(req.Age),
		Verified:       req.Verified,
		AccountDays:    int(req.AccountDays),
		CountryCode:    req.CountryCode,
		Email:          req.Email,
		OrderTotal:     orderTotal,
		DaysOverdue:    int(req.DaysOverdue),
		FailedPayments: int(req.FailedPayments),
		OrderCount:     int(req.OrderCount),
		DisputeCount:   int(req.DisputeCount),
		LifetimeSpend:  lifetimeSpend,
	})
	if err != nil {
		var verr dto.ValidationError
		if errors.As(err, &verr) {
			return nil, status.Error(codes.InvalidArgument, verr.Error())
		}
		return nil, status.Error(codes.Internal, "internal error")
	}

	checks := make([]*EligibilityCheckMsg, 0, len(result.Checks))
	for _, c := range result.Checks {
		checks = append(checks, &EligibilityCheckMsg{
			Name:    c.Name,
			Passed:  c.Passed,
			Message: c.Message,
		})
	}

	return &CheckEligibilityResponse{
		Eligible:             result.Eligible,
		Reason:               result.Reason,
		Checks:               checks,
		CreditScore:          int32(result.CreditScore),
		CreditLevel:          result.CreditLevel,
		CreditFactors:        result.CreditFactors,
		FinancingAvailable:   result.FinancingAvailable,
		PremiumFinancing:     result.PremiumFinancing,
		B2BEligible:          result.B2BEligible,
		HighRiskCustomer:     result.HighRiskCustomer,
		ManualReviewRequired: result.ManualReviewRequired,
	}, nil
}

func decisionMsg(d dto.DecisionResponse) *OrderDecisionMsg {
	return &OrderDecisionMsg{
		ID:              d.ID.String(),
		TenantID:        d.TenantID.String(),
		OrderID:         d.OrderID.String(),
		CustomerID:      d.CustomerID.String(),
		OrderTotal:      &MoneyMsg{Amount: d.OrderTotal, Currency: d.Currency},
		RiskScore:       int32(d.RiskScore),
		RiskLevel:       d.RiskLevel,
		Recommendation:  d.Recommendation,
		Flags:           d.Flags,
		RequiredActions: d.RequiredActions,
		ApprovalStatus:  d.ApprovalStatus,
		ApproverLevel:   d.ApproverLevel,
		Reason:          d.Reason,
		Conditions:      d.Conditions,
		EscalationPath:  d.EscalationPath,
	}
}

func parseOptionalDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
