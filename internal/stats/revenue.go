package stats

import (
	"github.com/shopspring/decimal"

	"rensadmin/internal/domain"
)

// PlanPricing is the injected price table for paid plans, in currency-agnostic
// integer units. FREE is always zero.
type PlanPricing struct {
	PremiumMonthly   decimal.Decimal
	EnterpriseYearly decimal.Decimal
}

// NewPlanPricing builds a price table from whole-unit amounts.
func NewPlanPricing(premiumMonthly, enterpriseYearly int64) PlanPricing {
	return PlanPricing{
		PremiumMonthly:   decimal.NewFromInt(premiumMonthly),
		EnterpriseYearly: decimal.NewFromInt(enterpriseYearly),
	}
}

// Amount returns the price of one subscription period for a plan.
func (p PlanPricing) Amount(plan domain.UserTier) decimal.Decimal {
	switch plan {
	case domain.TierPremium:
		return p.PremiumMonthly
	case domain.TierEnterprise:
		return p.EnterpriseYearly
	default:
		return decimal.Zero
	}
}

// RevenueStats is the output of RevenueAggregator.Aggregate.
type RevenueStats struct {
	Total    decimal.Decimal
	ByMonth  map[string]decimal.Decimal
	ByDay    map[string]decimal.Decimal
	ByStatus map[domain.SubscriptionStatus]int64
	Active   int64
}

// RevenueAggregator computes income totals and status breakdowns from a
// subscription snapshot using an injected price table.
type RevenueAggregator struct {
	pricing PlanPricing
}

func NewRevenueAggregator(pricing PlanPricing) *RevenueAggregator {
	return &RevenueAggregator{pricing: pricing}
}

// Aggregate sums each subscription's plan amount into the total regardless
// of its status; cancelled and expired rows still contribute revenue.
// TODO: confirm with product whether only ACTIVE subscriptions should count
// toward revenue totals.
func (a *RevenueAggregator) Aggregate(subscriptions []domain.Subscription) RevenueStats {
	out := RevenueStats{
		Total:    decimal.Zero,
		ByMonth:  make(map[string]decimal.Decimal),
		ByDay:    make(map[string]decimal.Decimal),
		ByStatus: make(map[domain.SubscriptionStatus]int64),
	}
	for _, sub := range subscriptions {
		amount := a.pricing.Amount(sub.PlanType)
		out.Total = out.Total.Add(amount)
		if sub.StartDate != nil {
			mk := monthKey(*sub.StartDate)
			dk := dayKey(*sub.StartDate)
			out.ByMonth[mk] = out.ByMonth[mk].Add(amount)
			out.ByDay[dk] = out.ByDay[dk].Add(amount)
		}
		status, err := domain.ParseSubscriptionStatus(string(sub.Status))
		if err != nil {
			continue
		}
		out.ByStatus[status]++
		if status == domain.SubscriptionActive {
			out.Active++
		}
	}
	return out
}
