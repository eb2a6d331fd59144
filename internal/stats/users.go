package stats

import (
	"time"

	"rensadmin/internal/domain"
)

const (
	monthKeyFormat = "2006-01"
	dayKeyFormat   = "2006-01-02"
)

// TierCounts holds per-tier tallies in fixed order FREE, PREMIUM, ENTERPRISE.
type TierCounts [3]int64

// Sum returns the total across all three tiers.
func (c TierCounts) Sum() int64 {
	return c[0] + c[1] + c[2]
}

// UserStats is the output of AggregateUsers.
type UserStats struct {
	Total    int64
	Active   int64
	Verified int64
	ByTier   TierCounts
	ByMonth  map[string]TierCounts
	ByDay    map[string]TierCounts
}

// AggregateUsers tallies a user snapshot. Every row counts toward Total;
// rows without a creation timestamp or a recognized tier are excluded from
// the time buckets only.
func AggregateUsers(users []domain.User) UserStats {
	out := UserStats{
		ByMonth: make(map[string]TierCounts),
		ByDay:   make(map[string]TierCounts),
	}
	for _, u := range users {
		out.Total++
		if u.IsActive {
			out.Active++
		}
		if u.EmailVerified {
			out.Verified++
		}
		tier, err := domain.ParseUserTier(string(u.UserTier))
		if err != nil {
			continue
		}
		out.ByTier[tier.Index()]++
		if u.CreatedAt == nil {
			continue
		}
		bumpTier(out.ByMonth, u.CreatedAt.Format(monthKeyFormat), tier)
		bumpTier(out.ByDay, u.CreatedAt.Format(dayKeyFormat), tier)
	}
	return out
}

func bumpTier(buckets map[string]TierCounts, key string, tier domain.UserTier) {
	counts := buckets[key]
	counts[tier.Index()]++
	buckets[key] = counts
}

// monthKey and dayKey expose the bucket keying so the builder labels line up
// with the aggregator output.
func monthKey(t time.Time) string { return t.Format(monthKeyFormat) }
func dayKey(t time.Time) string   { return t.Format(dayKeyFormat) }
