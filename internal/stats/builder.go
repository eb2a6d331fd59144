package stats

import (
	"time"

	"github.com/shopspring/decimal"

	"rensadmin/internal/domain"
)

// Builder assembles the full dashboard payload from store snapshots.
type Builder struct {
	revenue *RevenueAggregator
}

func NewBuilder(pricing PlanPricing) *Builder {
	return &Builder{revenue: NewRevenueAggregator(pricing)}
}

// Build produces the dashboard report for the 12 calendar months and 30
// calendar days ending at now. Output row counts are fixed: 12 monthly rows,
// 30 daily rows, 3 device rows, 3 subscription-status rows, oldest first,
// zero-filled when a period has no data. The pending analysis count is
// injected by the caller since it lives in a different query path.
func (b *Builder) Build(
	users []domain.User,
	subscriptions []domain.Subscription,
	devices []domain.Device,
	pendingAnalysisRequests int64,
	now time.Time,
) domain.DashboardStats {
	userStats := AggregateUsers(users)
	revenueStats := b.revenue.Aggregate(subscriptions)

	deviceCounts := map[DeviceType]int64{}
	for _, d := range devices {
		deviceCounts[ClassifyDevice(d.UserAgent)]++
	}

	monthly := make([]domain.PeriodRow, 0, 12)
	monthAnchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := 11; i >= 0; i-- {
		m := monthAnchor.AddDate(0, -i, 0)
		key := monthKey(m)
		monthly = append(monthly, periodRow(m.Format("Jan 2006"), revenueStats.ByMonth[key], userStats.ByMonth[key]))
	}

	daily := make([]domain.PeriodRow, 0, 30)
	for i := 29; i >= 0; i-- {
		d := now.AddDate(0, 0, -i)
		key := dayKey(d)
		daily = append(daily, periodRow(key, revenueStats.ByDay[key], userStats.ByDay[key]))
	}

	return domain.DashboardStats{
		TotalUsers:              userStats.Total,
		ActiveUsers:             userStats.Active,
		VerifiedUsers:           userStats.Verified,
		FreeUsers:               userStats.ByTier[domain.TierFree.Index()],
		PremiumUsers:            userStats.ByTier[domain.TierPremium.Index()],
		EnterpriseUsers:         userStats.ByTier[domain.TierEnterprise.Index()],
		ActiveSubscriptions:     revenueStats.Active,
		TotalRevenue:            revenueStats.Total,
		PendingAnalysisRequests: pendingAnalysisRequests,
		MonthlyStats:            monthly,
		DailyStats:              daily,
		DeviceBreakdown: []domain.CountRow{
			{Label: string(DeviceDesktop), Count: deviceCounts[DeviceDesktop]},
			{Label: string(DeviceMobile), Count: deviceCounts[DeviceMobile]},
			{Label: string(DeviceTablet), Count: deviceCounts[DeviceTablet]},
		},
		SubscriptionBreakdown: []domain.CountRow{
			{Label: string(domain.SubscriptionActive), Count: revenueStats.ByStatus[domain.SubscriptionActive]},
			{Label: string(domain.SubscriptionCancelled), Count: revenueStats.ByStatus[domain.SubscriptionCancelled]},
			{Label: string(domain.SubscriptionExpired), Count: revenueStats.ByStatus[domain.SubscriptionExpired]},
		},
	}
}

func periodRow(label string, income decimal.Decimal, counts TierCounts) domain.PeriodRow {
	return domain.PeriodRow{
		Label:           label,
		Income:          income,
		FreeUsers:       counts[0],
		PremiumUsers:    counts[1],
		EnterpriseUsers: counts[2],
	}
}
