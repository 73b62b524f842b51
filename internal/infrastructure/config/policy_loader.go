package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/nexuscommerce/decision-service/internal/domain/policy"
)

// LoadPolicy returns the default policy set with any overrides from the
// given YAML file applied on top. An empty path returns the defaults
// unchanged. Scalar fields override individually; list and map fields
// replace the default wholesale when present.
func LoadPolicy(path string) (policy.Set, error) {
	set := policy.Defaults()
	if path == "" {
		return set, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return set, fmt.Errorf("read policy file: %w", err)
	}

	var file policyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return set, fmt.Errorf("parse policy file: %w", err)
	}

	file.Risk.apply(&set.Risk)
	file.Approval.apply(&set.Approval)
	file.CartDiscount.apply(&set.CartDiscount)
	file.ProfileDiscount.apply(&set.ProfileDiscount)
	file.Eligibility.apply(&set.Eligibility)

	return set, nil
}

// policyFile mirrors policy.Set with optional fields. Rates and amounts are
// plain YAML numbers and converted to decimals on apply.
type policyFile struct {
	Risk            riskFile            `yaml:"risk"`
	Approval        approvalFile        `yaml:"approval"`
	CartDiscount    cartDiscountFile    `yaml:"cart_discount"`
	ProfileDiscount profileDiscountFile `yaml:"profile_discount"`
	Eligibility     eligibilityFile     `yaml:"eligibility"`
}

type riskFile struct {
	BlockedCountries       []string `yaml:"blocked_countries"`
	HighRiskCountries      []string `yaml:"high_risk_countries"`
	HighRiskPaymentMethods []string `yaml:"high_risk_payment_methods"`
	VeryLargeTransaction   *float64 `yaml:"very_large_transaction"`
	LargeTransaction       *float64 `yaml:"large_transaction"`
	VeryNewCustomerDays    *int     `yaml:"very_new_customer_days"`
	NewCustomerDays        *int     `yaml:"new_customer_days"`
	TrustedOrderCount      *int     `yaml:"trusted_order_count"`
	CriticalFailedPayments *int     `yaml:"critical_failed_payments"`
	LargeFirstOrder        *float64 `yaml:"large_first_order"`
}

func (f riskFile) apply(p *policy.Risk) {
	if f.BlockedCountries != nil {
		p.BlockedCountries = f.BlockedCountries
	}
	if f.HighRiskCountries != nil {
		p.HighRiskCountries = f.HighRiskCountries
	}
	if f.HighRiskPaymentMethods != nil {
		p.HighRiskPaymentMethods = f.HighRiskPaymentMethods
	}
	setAmount(&p.VeryLargeTransaction, f.VeryLargeTransaction)
	setAmount(&p.LargeTransaction, f.LargeTransaction)
	setInt(&p.VeryNewCustomerDays, f.VeryNewCustomerDays)
	setInt(&p.NewCustomerDays, f.NewCustomerDays)
	setInt(&p.TrustedOrderCount, f.TrustedOrderCount)
	setInt(&p.CriticalFailedPayments, f.CriticalFailedPayments)
	setAmount(&p.LargeFirstOrder, f.LargeFirstOrder)
}

type approvalFile struct {
	AutoApproveLimit     *float64 `yaml:"auto_approve_limit"`
	ManagerLimit         *float64 `yaml:"manager_limit"`
	DirectorLimit        *float64 `yaml:"director_limit"`
	VPLimit              *float64 `yaml:"vp_limit"`
	NewCustomerAutoLimit *float64 `yaml:"new_customer_auto_limit"`
	NewCustomerMaxLimit  *float64 `yaml:"new_customer_max_limit"`
	HighRiskAutoLimit    *float64 `yaml:"high_risk_auto_limit"`
	EnterpriseMultiplier *float64 `yaml:"enterprise_multiplier"`
	VIPMultiplier        *float64 `yaml:"vip_multiplier"`
	MediumRiskMultiplier *float64 `yaml:"medium_risk_multiplier"`
	NetTermsMultiplier   *float64 `yaml:"net_terms_multiplier"`
	RestrictedCategories []string `yaml:"restricted_categories"`
}

func (f approvalFile) apply(p *policy.Approval) {
	setAmount(&p.AutoApproveLimit, f.AutoApproveLimit)
	setAmount(&p.ManagerLimit, f.ManagerLimit)
	setAmount(&p.DirectorLimit, f.DirectorLimit)
	setAmount(&p.VPLimit, f.VPLimit)
	setAmount(&p.NewCustomerAutoLimit, f.NewCustomerAutoLimit)
	setAmount(&p.NewCustomerMaxLimit, f.NewCustomerMaxLimit)
	setAmount(&p.HighRiskAutoLimit, f.HighRiskAutoLimit)
	setAmount(&p.EnterpriseMultiplier, f.EnterpriseMultiplier)
	setAmount(&p.VIPMultiplier, f.VIPMultiplier)
	setAmount(&p.MediumRiskMultiplier, f.MediumRiskMultiplier)
	setAmount(&p.NetTermsMultiplier, f.NetTermsMultiplier)
	if f.RestrictedCategories != nil {
		p.RestrictedCategories = f.RestrictedCategories
	}
}

type countTierFile struct {
	Min  int     `yaml:"min"`
	Rate float64 `yaml:"rate"`
}

type amountTierFile struct {
	Min  float64 `yaml:"min"`
	Rate float64 `yaml:"rate"`
}

type namedTierFile struct {
	Name string  `yaml:"name"`
	Min  float64 `yaml:"min"`
	Rate float64 `yaml:"rate"`
}

type promoCodeFile struct {
	Rate     float64 `yaml:"rate"`
	MinOrder float64 `yaml:"min_order"`
}

type cartDiscountFile struct {
	TierRates         map[string]float64 `yaml:"tier_rates"`
	CategoryRates     map[string]float64 `yaml:"category_rates"`
	BundleTiers       []countTierFile    `yaml:"bundle_tiers"`
	SpendTiers        []amountTierFile   `yaml:"spend_tiers"`
	LoyaltyMonthTiers []countTierFile    `yaml:"loyalty_month_tiers"`
	PromoCodes        map[string]float64 `yaml:"promo_codes"`
	MaxTotal          *float64           `yaml:"max_total"`
}

func (f cartDiscountFile) apply(p *policy.CartDiscount) {
	if f.TierRates != nil {
		p.TierRates = toDecimalMap(f.TierRates)
	}
	if f.CategoryRates != nil {
		p.CategoryRates = toDecimalMap(f.CategoryRates)
	}
	if f.BundleTiers != nil {
		p.BundleTiers = toCountTiers(f.BundleTiers)
	}
	if f.SpendTiers != nil {
		p.SpendTiers = toAmountTiers(f.SpendTiers)
	}
	if f.LoyaltyMonthTiers != nil {
		p.LoyaltyMonthTiers = toCountTiers(f.LoyaltyMonthTiers)
	}
	if f.PromoCodes != nil {
		p.PromoCodes = toDecimalMap(f.PromoCodes)
	}
	setAmount(&p.MaxTotal, f.MaxTotal)
}

type profileDiscountFile struct {
	FirstOrderRate *float64                 `yaml:"first_order_rate"`
	LoyaltyTiers   []namedTierFile          `yaml:"loyalty_tiers"`
	HolidayRate    *float64                 `yaml:"holiday_rate"`
	PromoCodes     map[string]promoCodeFile `yaml:"promo_codes"`
	ReferralRate   *float64                 `yaml:"referral_rate"`
	MaxTotal       *float64                 `yaml:"max_total"`
}

func (f profileDiscountFile) apply(p *policy.ProfileDiscount) {
	setAmount(&p.FirstOrderRate, f.FirstOrderRate)
	if f.LoyaltyTiers != nil {
		tiers := make([]policy.NamedAmountTier, 0, len(f.LoyaltyTiers))
		for _, t := range f.LoyaltyTiers {
			tiers = append(tiers, policy.NamedAmountTier{
				Name: t.Name,
				Min:  decimal.NewFromFloat(t.Min),
				Rate: decimal.NewFromFloat(t.Rate),
			})
		}
		p.LoyaltyTiers = tiers
	}
	setAmount(&p.HolidayRate, f.HolidayRate)
	if f.PromoCodes != nil {
		codes := make(map[string]policy.PromoCode, len(f.PromoCodes))
		for code, pc := range f.PromoCodes {
			codes[code] = policy.PromoCode{
				Rate:     decimal.NewFromFloat(pc.Rate),
				MinOrder: decimal.NewFromFloat(pc.MinOrder),
			}
		}
		p.PromoCodes = codes
	}
	setAmount(&p.ReferralRate, f.ReferralRate)
	setAmount(&p.MaxTotal, f.MaxTotal)
}

type eligibilityFile struct {
	RestrictedCountries []string `yaml:"restricted_countries"`
	B2BDomains          []string `yaml:"b2b_domains"`
}

func (f eligibilityFile) apply(p *policy.Eligibility) {
	if f.RestrictedCountries != nil {
		p.RestrictedCountries = f.RestrictedCountries
	}
	if f.B2BDomains != nil {
		p.B2BDomains = f.B2BDomains
	}
}

func setAmount(dst *decimal.Decimal, src *float64) {
	if src != nil {
		*dst = decimal.NewFromFloat(*src)
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func toDecimalMap(m map[string]float64) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(m))
	for k, v := range m {
		out[k] = decimal.NewFromFloat(v)
	}
	return out
}

func toCountTiers(tiers []countTierFile) []policy.CountTier {
	out := make([]policy.CountTier, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, policy.CountTier{Min: t.Min, Rate: decimal.NewFromFloat(t.Rate)})
	}
	return out
}

func toAmountTiers(tiers []amountTierFile) []policy.AmountTier {
	out := make([]policy.AmountTier, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, policy.AmountTier{
			Min:  decimal.NewFromFloat(t.Min),
			Rate: decimal.NewFromFloat(t.Rate),
		})
	}
	return out
}
