// Package companion is the facade external collaborators talk to: chat and
// task hooks, the timer tick, reporting snapshots, and state save/load. It
// wires the mood engine, the progression ledger and the behavior scheduler
// together and owns nothing else.
package companion

import (
	"context"
	"log"
	"time"

	"github.com/dkyazzentwatwa/kali-ink-bot-sub001/internal/behavior"
	"github.com/dkyazzentwatwa/kali-ink-bot-sub001/internal/mood"
	"github.com/dkyazzentwatwa/kali-ink-bot-sub001/internal/progression"
	"github.com/dkyazzentwatwa/kali-ink-bot-sub001/internal/scheduler"
)

// Sentiment classifies an incoming chat message. Classification itself is
// the conversation handler's job.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Base XP per chat message by sentiment. First-of-day carries its own bonus.
const (
	chatXPPositive   = 5
	chatXPNeutral    = 2
	firstChatBonusXP = 10
	commandXP        = 1
)

// Options bundles everything needed to assemble a companion.
type Options struct {
	Traits            mood.Traits
	DecayPerMinute    float64
	HourlyXPCap       int
	DailyXPCap        int
	PerGrantMax       int
	PrestigeCap       int
	DisabledBehaviors []string
	Scheduler         scheduler.Options
}

// ChatResult reports what a chat event did.
type ChatResult struct {
	XPGranted int
	MoodEvent mood.EventKind
}

// TaskOutcome reports what a task completion did.
type TaskOutcome struct {
	XPGranted  int
	StreakDays int
	LeveledUp  bool
	NewLevel   int
	MoodEvent  mood.EventKind
}

// Status is the read-only view for reporting surfaces.
type Status struct {
	Mood         mood.Mood `json:"mood"`
	Intensity    float64   `json:"intensity"`
	Level        int       `json:"level"`
	XPTotal      int       `json:"xp_total"`
	StreakDays   int       `json:"streak_days"`
	Prestige     int       `json:"prestige_count"`
	Achievements []string  `json:"achievements"`
}

type Companion struct {
	moods    *mood.Engine
	ledger   *progression.Ledger
	registry *behavior.Registry
	sched    *scheduler.Scheduler
}

// New assembles a companion from scratch at the given instant.
func New(opts Options, now time.Time) (*Companion, error) {
	moods := mood.NewEngine(opts.Traits, opts.DecayPerMinute, now)

	budget := progression.NewXPBudget(opts.HourlyXPCap, opts.DailyXPCap, opts.PerGrantMax)
	ledger := progression.NewLedger(budget, opts.PrestigeCap)

	disabled := make(map[string]bool, len(opts.DisabledBehaviors))
	for _, name := range opts.DisabledBehaviors {
		disabled[name] = true
	}
	registry := behavior.NewRegistry()
	if err := behavior.RegisterDefaults(registry, opts.Traits, disabled); err != nil {
		return nil, err
	}

	sched := scheduler.New(moods, ledger, registry, opts.Scheduler, now)

	return &Companion{
		moods:    moods,
		ledger:   ledger,
		registry: registry,
		sched:    sched,
	}, nil
}

// OnChatEvent records an incoming chat message. Negative chat grants no XP
// but still moves mood.
func (c *Companion) OnChatEvent(sentiment Sentiment, isFirstOfDay bool, now time.Time) ChatResult {
	c.sched.NoteInteraction(now)

	var kind mood.EventKind
	var baseXP int
	switch sentiment {
	case SentimentPositive:
		kind, baseXP = mood.EventPositiveChat, chatXPPositive
	case SentimentNegative:
		kind, baseXP = mood.EventNegativeChat, 0
	default:
		kind, baseXP = mood.EventNeutralChat, chatXPNeutral
	}
	if isFirstOfDay {
		kind = mood.EventFirstChatOfDay
		baseXP += firstChatBonusXP
		c.unlock(progression.AchieveFirstChat, now)
	}
	if now.Hour() < 5 {
		c.unlock(progression.AchieveNightOwl, now)
	}
	c.moods.ApplyEvent(kind, 1.0, now)

	var granted int
	if baseXP > 0 {
		award := c.ledger.AwardXP(progression.SourceChat, baseXP, now)
		granted = award.Amount
		c.noteLevelUp(award, now)
	}
	return ChatResult{XPGranted: granted, MoodEvent: kind}
}

// OnTaskCompleted records a finished task. completedOn is the calendar day
// the streak logic counts; now is the wall clock for decay and budgets.
func (c *Companion) OnTaskCompleted(priority progression.Priority, onTime bool, completedOn, now time.Time) TaskOutcome {
	c.sched.NoteInteraction(now)

	kind := mood.EventTaskCompleted
	if priority == progression.PriorityUrgent {
		kind = mood.EventTaskCompletedUrgent
	}
	c.moods.ApplyEvent(kind, 1.0, now)

	res := c.ledger.RecordTaskCompletion(completedOn, onTime, priority, now)
	c.unlock(progression.AchieveFirstTask, now)
	if res.StreakDays >= 3 {
		c.unlock(progression.AchieveStreak3, now)
	}
	if res.StreakDays >= 7 {
		c.unlock(progression.AchieveStreak7, now)
	}
	if len(res.MilestoneBonuses) > 0 {
		c.moods.ApplyEvent(mood.EventStreakMilestone, 1.0, now)
	}
	c.noteLevelUp(res.Award, now)

	granted := res.Award.Amount
	for _, b := range res.MilestoneBonuses {
		granted += b
	}
	return TaskOutcome{
		XPGranted:  granted,
		StreakDays: res.StreakDays,
		LeveledUp:  res.Award.Level > res.Award.PrevLevel,
		NewLevel:   res.Award.Level,
		MoodEvent:  kind,
	}
}

// OnUserCommand records a direct user command: a curiosity bump, a token XP
// grant and an idle reset.
func (c *Companion) OnUserCommand(now time.Time) {
	c.sched.NoteInteraction(now)
	c.moods.ApplyEvent(mood.EventUserCommand, 1.0, now)
	award := c.ledger.AwardXP(progression.SourceChat, commandXP, now)
	c.noteLevelUp(award, now)
}

// Tick advances the autonomous side and returns the outbound message, if
// any.
func (c *Companion) Tick(now time.Time) *behavior.Message {
	return c.sched.Tick(now)
}

// Run drives the scheduler's tick loop until ctx is done, passing outbound
// messages to emit.
func (c *Companion) Run(ctx context.Context, emit func(*behavior.Message)) {
	c.sched.Run(ctx, emit)
}

// Prestige resets the ledger at max level and celebrates.
func (c *Companion) Prestige(now time.Time) bool {
	if !c.ledger.Prestige() {
		return false
	}
	c.unlock(progression.AchievePrestige1, now)
	c.moods.ApplyEvent(mood.EventAchievement, 1.0, now)
	return true
}

// Snapshot returns the current reporting view.
func (c *Companion) Snapshot() Status {
	m, intensity := c.moods.Current()
	return Status{
		Mood:         m,
		Intensity:    intensity,
		Level:        c.ledger.Level(),
		XPTotal:      c.ledger.XPTotal(),
		StreakDays:   c.ledger.StreakDays(),
		Prestige:     c.ledger.PrestigeCount(),
		Achievements: c.ledger.Achievements(),
	}
}

// noteLevelUp applies the celebratory mood event and any level-threshold
// achievements after a granted award.
func (c *Companion) noteLevelUp(award progression.Award, now time.Time) {
	if !award.Granted || award.Level <= award.PrevLevel {
		return
	}
	log.Printf("[COMPANION] level up: %d -> %d", award.PrevLevel, award.Level)
	c.moods.ApplyEvent(mood.EventLevelUp, 1.0, now)
	if award.Level >= 5 {
		c.unlock(progression.AchieveLevel5, now)
	}
	if award.Level >= 10 {
		c.unlock(progression.AchieveLevel10, now)
	}
	if award.Level >= progression.MaxLevel {
		c.unlock(progression.AchieveLevel25, now)
	}
}

func (c *Companion) unlock(id string, now time.Time) {
	if c.ledger.UnlockAchievement(id, now) {
		c.moods.ApplyEvent(mood.EventAchievement, 1.0, now)
	}
}
