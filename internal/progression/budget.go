package progression

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// XPBudget caps how much XP the companion may grant over rolling hourly and
// daily windows, with a hard per-grant ceiling. Both buckets must admit the
// full amount or the grant is denied outright; a grant is never split.
type XPBudget struct {
	mu          sync.Mutex
	hourly      *rate.Limiter
	daily       *rate.Limiter
	perGrantMax int
}

// Default budget caps.
const (
	DefaultHourlyXPCap = 100
	DefaultDailyXPCap  = 500
	DefaultPerGrantMax = 100
)

// NewXPBudget creates a budget. Non-positive caps fall back to defaults.
// Buckets start full, so a fresh process has its whole window available.
func NewXPBudget(hourlyCap, dailyCap, perGrantMax int) *XPBudget {
	if hourlyCap <= 0 {
		hourlyCap = DefaultHourlyXPCap
	}
	if dailyCap <= 0 {
		dailyCap = DefaultDailyXPCap
	}
	if perGrantMax <= 0 {
		perGrantMax = DefaultPerGrantMax
	}
	return &XPBudget{
		hourly:      rate.NewLimiter(rate.Limit(float64(hourlyCap)/3600.0), hourlyCap),
		daily:       rate.NewLimiter(rate.Limit(float64(dailyCap)/86400.0), dailyCap),
		perGrantMax: perGrantMax,
	}
}

// ClampGrant bounds a single grant to the per-grant ceiling.
func (b *XPBudget) ClampGrant(amount int) int {
	if amount > b.perGrantMax {
		return b.perGrantMax
	}
	return amount
}

// Allow atomically reserves amount XP against both windows at now. Either
// both buckets admit the full amount and true is returned, or neither is
// touched and false is returned.
func (b *XPBudget) Allow(now time.Time, amount int) bool {
	if amount <= 0 {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	// Peek both buckets before consuming either, so a daily denial cannot
	// leak tokens out of the hourly bucket.
	if b.hourly.TokensAt(now) < float64(amount) || b.daily.TokensAt(now) < float64(amount) {
		return false
	}
	return b.hourly.AllowN(now, amount) && b.daily.AllowN(now, amount)
}
