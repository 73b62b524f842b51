package brain

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexuscommerce/decision-service/internal/domain/policy"
	"github.com/nexuscommerce/decision-service/internal/domain/port"
	"github.com/nexuscommerce/decision-service/internal/domain/service"
	"github.com/nexuscommerce/decision-service/internal/domain/valueobject"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func overrideServer(t *testing.T, result string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/evaluate", r.URL.Path)

		var req port.OverrideRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "decisions", req.Domain)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":` + result + `}`))
	}))
}

func safeFactors() service.RiskFactors {
	return service.RiskFactors{
		TransactionAmount: decimal.NewFromInt(100),
		CustomerAgeDays:   400,
		PreviousOrders:    20,
		CountryCode:       "US",
		PaymentMethod:     "credit_card",
	}
}

func TestOverrideAssessorAppliesValidOverride(t *testing.T) {
	srv := overrideServer(t, `{"score":80,"level":"critical","recommendation":"decline","flags":["remote flag"],"required_actions":["hold order"]}`)
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", time.Second, testLogger())
	assessor := NewOverrideAssessor(service.NewRiskScorer(policy.DefaultRisk()), client, time.Second, testLogger())

	out := assessor.Assess(safeFactors())

	assert.Equal(t, 80, out.Score)
	assert.Equal(t, "critical", out.Level.String())
	assert.Equal(t, "decline", out.Recommendation.String())
	assert.Equal(t, []string{"remote flag"}, out.Flags)
}

func TestOverrideAssessorRejectsMalformedOverride(t *testing.T) {
	cases := map[string]string{
		"missing score":          `{"level":"high","recommendation":"review"}`,
		"score out of range":     `{"score":250,"level":"high","recommendation":"review"}`,
		"unknown level":          `{"score":40,"level":"catastrophic","recommendation":"review"}`,
		"unknown recommendation": `{"score":40,"level":"high","recommendation":"maybe"}`,
		"wrong type":             `{"score":"forty","level":"high","recommendation":"review"}`,
	}

	local := service.NewRiskScorer(policy.DefaultRisk())
	want := local.Assess(safeFactors())

	for name, result := range cases {
		t.Run(name, func(t *testing.T) {
			srv := overrideServer(t, result)
			defer srv.Close()

			client := NewClient(srv.URL, "", time.Second, testLogger())
			assessor := NewOverrideAssessor(local, client, time.Second, testLogger())

			out := assessor.Assess(safeFactors())
			assert.Equal(t, want, out, "local assessment must survive a bad override")
		})
	}
}

func TestOverrideAssessorFallsBackWhenServiceDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	local := service.NewRiskScorer(policy.DefaultRisk())
	client := NewClient(srv.URL, "", time.Second, testLogger())
	assessor := NewOverrideAssessor(local, client, time.Second, testLogger())

	out := assessor.Assess(safeFactors())
	assert.Equal(t, local.Assess(safeFactors()), out)
}

func TestOverrideAssessorWithStubClient(t *testing.T) {
	local := service.NewRiskScorer(policy.DefaultRisk())
	assessor := NewOverrideAssessor(local, NewStubClient(testLogger()), time.Second, testLogger())

	out := assessor.Assess(safeFactors())
	assert.Equal(t, local.Assess(safeFactors()), out)
}

func TestClientTreatsNullResultAsNoOverride(t *testing.T) {
	srv := overrideServer(t, `null`)
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second, testLogger())
	_, err := client.Evaluate(context.Background(), port.OverrideRequest{Domain: "decisions", Rule: "risk_assessment"})
	assert.ErrorIs(t, err, port.ErrNoOverride)
}

func TestOverrideRouterAppliesStatusOverride(t *testing.T) {
	srv := overrideServer(t, `{"status":"manager_approval","reason":"remote policy hold"}`)
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second, testLogger())
	router := NewOverrideRouter(service.NewApprovalRouter(policy.DefaultApproval()), client, time.Second, testLogger())

	out := router.Route(service.ApprovalContext{
		OrderTotal:   decimal.NewFromInt(500),
		CustomerTier: mustTier(t, "basic"),
		RiskLevel:    mustLevel(t, "low"),
		PaymentTerms: mustTerms(t, "credit_card"),
	})

	assert.Equal(t, "manager_approval", out.Status.String())
	assert.Equal(t, "remote policy hold", out.Reason)
}

func TestOverrideDiscounterReplacesRate(t *testing.T) {
	srv := overrideServer(t, `{"total_percentage":0.25}`)
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second, testLogger())
	discounter := NewOverrideDiscounter(service.NewCartDiscounter(policy.DefaultCartDiscount()), client, time.Second, testLogger())

	out := discounter.Calculate(service.DiscountContext{
		Items: []service.CartItem{
			{ID: "sku-1", Name: "Widget", Category: "electronics", UnitPrice: decimal.NewFromInt(100), Quantity: 1},
		},
		CustomerTier: mustTier(t, "basic"),
	})

	assert.True(t, out.TotalPercentage.Equal(decimal.NewFromFloat(0.25)), "got %s", out.TotalPercentage)
	assert.True(t, out.TotalAmount.Equal(decimal.NewFromInt(25)), "got %s", out.TotalAmount)
	assert.True(t, out.FinalTotal.Equal(decimal.NewFromInt(75)), "got %s", out.FinalTotal)
}

func TestOverrideDiscounterRejectsRateOutOfRange(t *testing.T) {
	srv := overrideServer(t, `{"total_percentage":1.5}`)
	defer srv.Close()

	local := service.NewCartDiscounter(policy.DefaultCartDiscount())
	client := NewClient(srv.URL, "", time.Second, testLogger())
	discounter := NewOverrideDiscounter(local, client, time.Second, testLogger())

	ctx := service.DiscountContext{
		Items: []service.CartItem{
			{ID: "sku-1", Name: "Widget", Category: "electronics", UnitPrice: decimal.NewFromInt(100), Quantity: 1},
		},
		CustomerTier: mustTier(t, "basic"),
	}

	assert.Equal(t, local.Calculate(ctx), discounter.Calculate(ctx))
}

func mustTier(t *testing.T, s string) valueobject.CustomerTier {
	t.Helper()
	tier, err := valueobject.CustomerTierFromString(s)
	require.NoError(t, err)
	return tier
}

func mustLevel(t *testing.T, s string) valueobject.RiskLevel {
	t.Helper()
	level, err := valueobject.RiskLevelFromString(s)
	require.NoError(t, err)
	return level
}

func mustTerms(t *testing.T, s string) valueobject.PaymentTerms {
	t.Helper()
	terms, err := valueobject.PaymentTermsFromString(s)
	require.NoError(t, err)
	return terms
}
