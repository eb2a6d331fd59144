package domain

import "github.com/shopspring/decimal"

// CountRow is one labeled bucket in a dashboard breakdown.
type CountRow struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// PeriodRow is one registration-chart period: its income plus per-tier
// registration counts in fixed order FREE, PREMIUM, ENTERPRISE.
type PeriodRow struct {
	Label           string          `json:"label"`
	Income          decimal.Decimal `json:"income"`
	FreeUsers       int64           `json:"free_users"`
	PremiumUsers    int64           `json:"premium_users"`
	EnterpriseUsers int64           `json:"enterprise_users"`
}

// DashboardStats is the aggregate payload behind the admin dashboard. The
// monthly sequence always holds 12 rows and the daily sequence 30, oldest
// first, zero-filled for empty periods.
type DashboardStats struct {
	TotalUsers              int64           `json:"total_users"`
	ActiveUsers             int64           `json:"active_users"`
	VerifiedUsers           int64           `json:"verified_users"`
	FreeUsers               int64           `json:"free_users"`
	PremiumUsers            int64           `json:"premium_users"`
	EnterpriseUsers         int64           `json:"enterprise_users"`
	ActiveSubscriptions     int64           `json:"active_subscriptions"`
	TotalRevenue            decimal.Decimal `json:"total_revenue"`
	PendingAnalysisRequests int64           `json:"pending_analysis_requests"`
	MonthlyStats            []PeriodRow     `json:"monthly_stats"`
	DailyStats              []PeriodRow     `json:"daily_stats"`
	DeviceBreakdown         []CountRow      `json:"device_breakdown"`
	SubscriptionBreakdown   []CountRow      `json:"subscription_breakdown"`
}
