// Package progression implements the companion's gamified ledger: XP with a
// power-curve level, daily streaks with one-shot milestone bonuses,
// append-only achievements, and a prestige reset. The ledger is shared
// between external event handlers and the scheduler tick, so every mutation
// runs under one mutex together with its budget check.
package progression

import (
	"math"
	"sync"
	"time"

	"github.com/dkyazzentwatwa/kali-ink-bot-sub001/pkg/util"
)

// Source labels where an XP grant came from.
type Source string

const (
	SourceChat        Source = "chat"
	SourceTask        Source = "task"
	SourceStreak      Source = "streak"
	SourceAchievement Source = "achievement"
	SourceBehavior    Source = "behavior"
)

// Priority is a task's urgency tier.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// XP awarded per completed task by priority, plus the on-time bonus.
var taskXP = map[Priority]int{
	PriorityLow:    10,
	PriorityMedium: 15,
	PriorityHigh:   25,
	PriorityUrgent: 40,
}

const onTimeBonusXP = 10

// Streak milestone bonuses, awarded once per crossing since the last reset.
var streakMilestones = []struct {
	Days  int
	Bonus int
}{
	{3, 15},
	{7, 30},
}

const (
	// MaxLevel is the level at which prestige becomes available.
	MaxLevel = 25

	// DefaultPrestigeCap bounds how many times the ledger can prestige.
	DefaultPrestigeCap = 10
)

// xpRequired is the pure level curve: total XP needed to hold a level.
// Level 1 is the floor; the curve gates levels above it.
func xpRequired(level int) int {
	if level <= 1 {
		return 0
	}
	return int(100 * math.Pow(float64(level), 1.8))
}

// levelForXP returns the largest level the curve admits for xp, capped at
// MaxLevel.
func levelForXP(xp int) int {
	level := 1
	for level < MaxLevel && xpRequired(level+1) <= xp {
		level++
	}
	return level
}

// Award is the outcome of one XP grant. PrevLevel != Level signals a
// level-up the caller can celebrate.
type Award struct {
	Granted   bool
	Amount    int
	PrevLevel int
	Level     int
}

// TaskResult is the outcome of recording a task completion.
type TaskResult struct {
	Award            Award
	StreakDays       int
	StreakExtended   bool
	MilestoneBonuses []int // bonus XP amounts granted this call, in order
}

// State is the serializable portion of the ledger.
type State struct {
	XPTotal        int        `json:"xp_total"`
	Level          int        `json:"level"`
	StreakDays     int        `json:"streak_days"`
	LastStreakDate *time.Time `json:"last_streak_date,omitempty"`
	LastMilestone  int        `json:"last_milestone"`
	Achievements   []string   `json:"achievements"`
	PrestigeCount  int        `json:"prestige_count"`
}

// Ledger owns the progression state. Safe for concurrent use.
type Ledger struct {
	mu          sync.Mutex
	budget      *XPBudget
	prestigeCap int

	xpTotal        int
	level          int
	streakDays     int
	lastStreakDate *time.Time
	lastMilestone  int
	achievements   map[string]bool
	achieveOrder   []string
	prestigeCount  int
}

// NewLedger creates an empty ledger at level 1. A nil budget gets defaults.
func NewLedger(budget *XPBudget, prestigeCap int) *Ledger {
	if budget == nil {
		budget = NewXPBudget(0, 0, 0)
	}
	if prestigeCap <= 0 {
		prestigeCap = DefaultPrestigeCap
	}
	return &Ledger{
		budget:       budget,
		prestigeCap:  prestigeCap,
		level:        1,
		achievements: make(map[string]bool),
	}
}

// multiplierLocked is the active prestige multiplier.
func (l *Ledger) multiplierLocked() int {
	return l.prestigeCount + 1
}

// AwardXP applies the prestige multiplier and budget caps, then adds to the
// XP total and recomputes the level. A non-positive base amount or a budget
// denial is a no-op with Granted=false and Amount=0.
func (l *Ledger) AwardXP(source Source, baseAmount int, now time.Time) Award {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.awardLocked(source, baseAmount, now)
}

func (l *Ledger) awardLocked(_ Source, baseAmount int, now time.Time) Award {
	prev := l.level
	if baseAmount <= 0 {
		return Award{PrevLevel: prev, Level: prev}
	}
	amount := l.budget.ClampGrant(baseAmount * l.multiplierLocked())
	if !l.budget.Allow(now, amount) {
		return Award{PrevLevel: prev, Level: prev}
	}
	l.xpTotal += amount
	l.level = levelForXP(l.xpTotal)
	return Award{Granted: true, Amount: amount, PrevLevel: prev, Level: l.level}
}

// RecordTaskCompletion awards priority-tiered XP (plus the on-time bonus)
// and advances the streak: +1 on the next calendar day, unchanged on the
// same day, reset to 1 after a gap. Milestone bonuses fire once the first
// time the streak reaches or exceeds their threshold since the last reset.
func (l *Ledger) RecordTaskCompletion(completedOn time.Time, onTime bool, priority Priority, now time.Time) TaskResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	base, ok := taskXP[priority]
	if !ok {
		base = taskXP[PriorityMedium]
	}
	if onTime {
		base += onTimeBonusXP
	}

	var res TaskResult
	switch {
	case l.lastStreakDate == nil:
		l.streakDays = 1
		l.lastMilestone = 0
		res.StreakExtended = true
	case util.SameDay(*l.lastStreakDate, completedOn):
		// Second completion today; streak unchanged.
	case util.DaysBetween(*l.lastStreakDate, completedOn) == 1:
		l.streakDays++
		res.StreakExtended = true
	default:
		l.streakDays = 1
		l.lastMilestone = 0
		res.StreakExtended = true
	}
	day := util.Day(completedOn)
	l.lastStreakDate = &day

	res.Award = l.awardLocked(SourceTask, base, now)
	for _, m := range streakMilestones {
		if l.streakDays >= m.Days && l.lastMilestone < m.Days {
			l.lastMilestone = m.Days
			if a := l.awardLocked(SourceStreak, m.Bonus, now); a.Granted {
				res.MilestoneBonuses = append(res.MilestoneBonuses, a.Amount)
				// Fold milestone level changes into the reported award.
				res.Award.Level = a.Level
			}
		}
	}
	res.StreakDays = l.streakDays
	return res
}

// UnlockAchievement records an achievement exactly once and grants its
// fixed XP on first unlock. Returns false if already unlocked or unknown.
// The unlock itself is never rolled back when the budget denies the bonus.
func (l *Ledger) UnlockAchievement(id string, now time.Time) bool {
	def, ok := achievementCatalog[id]
	if !ok {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.achievements[id] {
		return false
	}
	l.achievements[id] = true
	l.achieveOrder = append(l.achieveOrder, id)
	l.awardLocked(SourceAchievement, def.XP, now)
	return true
}

// Prestige resets XP and level to the level-1 baseline and increments the
// prestige count (raising the multiplier). It fails without mutating
// anything unless the ledger sits at MaxLevel with prestiges remaining.
func (l *Ledger) Prestige() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.level < MaxLevel || l.prestigeCount >= l.prestigeCap {
		return false
	}
	l.xpTotal = 0
	l.level = 1
	l.prestigeCount++
	return true
}

// Level returns the current level.
func (l *Ledger) Level() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// XPTotal returns the accumulated XP.
func (l *Ledger) XPTotal() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.xpTotal
}

// StreakDays returns the current streak length.
func (l *Ledger) StreakDays() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.streakDays
}

// PrestigeCount returns how many times the ledger has prestiged.
func (l *Ledger) PrestigeCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.prestigeCount
}

// Achievements returns unlocked achievement ids in unlock order.
func (l *Ledger) Achievements() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.achieveOrder))
	copy(out, l.achieveOrder)
	return out
}

// Snapshot returns the serializable state.
func (l *Ledger) Snapshot() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := State{
		XPTotal:       l.xpTotal,
		Level:         l.level,
		StreakDays:    l.streakDays,
		LastMilestone: l.lastMilestone,
		Achievements:  make([]string, len(l.achieveOrder)),
		PrestigeCount: l.prestigeCount,
	}
	copy(s.Achievements, l.achieveOrder)
	if l.lastStreakDate != nil {
		d := *l.lastStreakDate
		s.LastStreakDate = &d
	}
	return s
}

// Restore overwrites ledger state from a saved snapshot. The level is
// recomputed from XP so the invariant holds even against a stale blob.
func (l *Ledger) Restore(s State) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if s.XPTotal < 0 {
		s.XPTotal = 0
	}
	l.xpTotal = s.XPTotal
	l.level = levelForXP(s.XPTotal)
	if s.StreakDays < 0 {
		s.StreakDays = 0
	}
	l.streakDays = s.StreakDays
	l.lastMilestone = s.LastMilestone
	l.lastStreakDate = nil
	if s.LastStreakDate != nil {
		d := util.Day(*s.LastStreakDate)
		l.lastStreakDate = &d
	}
	if s.PrestigeCount < 0 {
		s.PrestigeCount = 0
	}
	if s.PrestigeCount > l.prestigeCap {
		s.PrestigeCount = l.prestigeCap
	}
	l.prestigeCount = s.PrestigeCount
	l.achievements = make(map[string]bool, len(s.Achievements))
	l.achieveOrder = l.achieveOrder[:0]
	for _, id := range s.Achievements {
		if _, known := achievementCatalog[id]; !known || l.achievements[id] {
			continue
		}
		l.achievements[id] = true
		l.achieveOrder = append(l.achieveOrder, id)
	}
}
