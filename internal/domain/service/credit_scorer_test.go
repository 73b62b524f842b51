package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/nexuscommerce/decision-service/internal/domain/valueobject"
)

func cleanProfile() CreditProfile {
	return CreditProfile{
		CustomerID: "cust-1",
		Verified:   true,
	}
}

func TestCreditScorer_Score(t *testing.T) {
	scorer := NewCreditScorer()

	t.Run("clean verified profile", func(t *testing.T) {
		out := scorer.Score(cleanProfile())

		// 500 base + 20 verified.
		assert.Equal(t, 520, out.Score)
		assert.Equal(t, valueobject.RiskLevelMedium, out.Level)
		assert.Equal(t, []string{"Verified account: +20 points"}, out.Factors)
	})

	t.Run("loyal high-value customer reaches low risk", func(t *testing.T) {
		profile := cleanProfile()
		profile.OrderCount = 15
		profile.LifetimeSpend = decimal.NewFromInt(8000)

		out := scorer.Score(profile)

		// 500 + 20 + 15 + 25.
		assert.Equal(t, 560, out.Score)
		assert.Contains(t, out.Factors, "Loyal customer (15 orders): +15 points")
		assert.Contains(t, out.Factors, "High value customer: +25 points")
	})

	t.Run("overdue bands apply in order", func(t *testing.T) {
		cases := []struct {
			days  int
			score int
		}{
			{10, 520},  // no band
			{16, 470},  // medium, -50
			{30, 470},  // still medium
			{31, 420},  // high, -100
			{60, 370},  // critical, -150
			{120, 370}, // still critical
		}
		for _, tc := range cases {
			profile := cleanProfile()
			profile.DaysOverdue = tc.days
			assert.Equal(t, tc.score, scorer.Score(profile).Score, "days %d", tc.days)
		}
	})

	t.Run("failed payments penalty scales then caps", func(t *testing.T) {
		three := cleanProfile()
		three.FailedPayments = 3
		out := scorer.Score(three)
		// 520 - 30*3.
		assert.Equal(t, 430, out.Score)
		assert.Contains(t, out.Factors, "Warning: 3 failed payments")

		five := cleanProfile()
		five.FailedPayments = 5
		out = scorer.Score(five)
		// 520 - 90.
		assert.Equal(t, 430, out.Score)
		assert.Contains(t, out.Factors, "Critical: 5 failed payments")
	})

	t.Run("disputes subtract per occurrence", func(t *testing.T) {
		profile := cleanProfile()
		profile.DisputeCount = 2

		out := scorer.Score(profile)

		assert.Equal(t, 470, out.Score)
		assert.Contains(t, out.Factors, "2 disputes: -50 points")
	})

	t.Run("score never leaves the credit scale", func(t *testing.T) {
		worst := CreditProfile{
			CustomerID:     "cust-2",
			DaysOverdue:    200,
			FailedPayments: 9,
			DisputeCount:   6,
		}
		out := scorer.Score(worst)
		assert.Equal(t, 300, out.Score)
		assert.Equal(t, valueobject.RiskLevelCritical, out.Level)
	})
}

func TestCreditScorer_Indicators(t *testing.T) {
	scorer := NewCreditScorer()

	t.Run("high risk indicators", func(t *testing.T) {
		assert.False(t, scorer.IsHighRiskCustomer(cleanProfile()))

		overdue := cleanProfile()
		overdue.DaysOverdue = 31
		assert.True(t, scorer.IsHighRiskCustomer(overdue))

		failed := cleanProfile()
		failed.FailedPayments = 3
		assert.True(t, scorer.IsHighRiskCustomer(failed))

		disputes := cleanProfile()
		disputes.DisputeCount = 3
		assert.True(t, scorer.IsHighRiskCustomer(disputes))
	})

	t.Run("manual review triggers", func(t *testing.T) {
		assert.False(t, scorer.RequiresManualReview(cleanProfile()))

		overdue := cleanProfile()
		overdue.DaysOverdue = 61
		assert.True(t, scorer.RequiresManualReview(overdue))

		failed := cleanProfile()
		failed.FailedPayments = 5
		assert.True(t, scorer.RequiresManualReview(failed))

		disputes := cleanProfile()
		disputes.DisputeCount = 3
		assert.True(t, scorer.RequiresManualReview(disputes))
	})
}
