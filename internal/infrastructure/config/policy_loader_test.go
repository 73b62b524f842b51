package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexuscommerce/decision-service/internal/domain/policy"
)

func TestLoadPolicyEmptyPathReturnsDefaults(t *testing.T) {
	set, err := LoadPolicy("")
	require.NoError(t, err)
	assert.Equal(t, policy.Defaults(), set)
}

func TestLoadPolicyMissingFileErrors(t *testing.T) {
	_, err := LoadPolicy(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadPolicyAppliesScalarOverrides(t *testing.T) {
	path := writePolicy(t, `
risk:
  critical_failed_payments: 3
  large_transaction: 7500
approval:
  auto_approve_limit: 20000
cart_discount:
  max_total: 0.35
`)

	set, err := LoadPolicy(path)
	require.NoError(t, err)

	assert.Equal(t, 3, set.Risk.CriticalFailedPayments)
	assert.True(t, set.Risk.LargeTransaction.Equal(decimal.NewFromInt(7500)))
	assert.True(t, set.Approval.AutoApproveLimit.Equal(decimal.NewFromInt(20000)))
	assert.True(t, set.CartDiscount.MaxTotal.Equal(decimal.NewFromFloat(0.35)))

	// Untouched fields keep their defaults.
	defaults := policy.Defaults()
	assert.Equal(t, defaults.Risk.BlockedCountries, set.Risk.BlockedCountries)
	assert.True(t, set.Approval.ManagerLimit.Equal(defaults.Approval.ManagerLimit))
	assert.Equal(t, defaults.ProfileDiscount, set.ProfileDiscount)
}

func TestLoadPolicyReplacesListsWholesale(t *testing.T) {
	path := writePolicy(t, `
risk:
  blocked_countries: ["XX"]
cart_discount:
  bundle_tiers:
    - {min: 20, rate: 0.20}
    - {min: 10, rate: 0.10}
profile_discount:
  promo_codes:
    NEWCODE: {rate: 0.25, min_order: 150}
eligibility:
  b2b_domains: ["partner.example"]
`)

	set, err := LoadPolicy(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"XX"}, set.Risk.BlockedCountries)
	assert.Equal(t, []string{"partner.example"}, set.Eligibility.B2BDomains)
	assert.Equal(t, policy.DefaultEligibility().RestrictedCountries, set.Eligibility.RestrictedCountries)
	require.Len(t, set.CartDiscount.BundleTiers, 2)
	assert.Equal(t, 20, set.CartDiscount.BundleTiers[0].Min)
	assert.True(t, set.CartDiscount.BundleTiers[0].Rate.Equal(decimal.NewFromFloat(0.20)))

	require.Len(t, set.ProfileDiscount.PromoCodes, 1)
	code, ok := set.ProfileDiscount.PromoCodes["NEWCODE"]
	require.True(t, ok)
	assert.True(t, code.Rate.Equal(decimal.NewFromFloat(0.25)))
	assert.True(t, code.MinOrder.Equal(decimal.NewFromInt(150)))
}

func TestLoadPolicyRejectsInvalidYAML(t *testing.T) {
	path := writePolicy(t, "risk: [not a map")
	_, err := LoadPolicy(path)
	assert.Error(t, err)
}

func writePolicy(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
