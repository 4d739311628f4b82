// Package scheduler drives the companion's autonomous behavior: a periodic
// tick that decays mood, escalates idleness, and fires at most one eligible
// behavior per tick under cooldown and quiet-hours rules.
package scheduler

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/dkyazzentwatwa/kali-ink-bot-sub001/internal/behavior"
	"github.com/dkyazzentwatwa/kali-ink-bot-sub001/internal/mood"
	"github.com/dkyazzentwatwa/kali-ink-bot-sub001/internal/progression"
)

// Idle escalation. Checks are probabilistic per tick rather than hard
// deadlines so restarts don't produce synchronized bursts.
const (
	DefaultBoredAfter   = 10 * time.Minute
	DefaultLonelyAfter  = 60 * time.Minute
	boredChancePerTick  = 0.15
	lonelyChancePerTick = 0.2
)

// DefaultTickInterval is how often Run ticks unless configured otherwise.
const DefaultTickInterval = 60 * time.Second

// Options configures a Scheduler. Zero values take defaults; QuietStart ==
// QuietEnd disables quiet hours.
type Options struct {
	TickInterval time.Duration
	QuietStart   int // hour of day, 0-23
	QuietEnd     int
	BoredAfter   time.Duration
	LonelyAfter  time.Duration
	Rand         *rand.Rand // injectable for tests; nil = time-seeded
}

// Scheduler holds non-owning references to the mood engine and the ledger
// and owns the per-behavior lastFired map. One logical thread of control:
// ticks come from Run's single goroutine, interaction notes from event
// handlers.
type Scheduler struct {
	moods    *mood.Engine
	ledger   *progression.Ledger
	registry *behavior.Registry

	interval    time.Duration
	quiet       behavior.Window
	quietSet    bool
	boredAfter  time.Duration
	lonelyAfter time.Duration

	mu              sync.Mutex
	lastTick        time.Time
	lastInteraction time.Time
	lastFired       map[string]time.Time
	rng             *rand.Rand
	randFloat       func() float64
}

// New creates a scheduler over the given engines and registry.
func New(m *mood.Engine, l *progression.Ledger, r *behavior.Registry, opts Options, now time.Time) *Scheduler {
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.BoredAfter <= 0 {
		opts.BoredAfter = DefaultBoredAfter
	}
	if opts.LonelyAfter <= 0 {
		opts.LonelyAfter = DefaultLonelyAfter
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Scheduler{
		moods:           m,
		ledger:          l,
		registry:        r,
		interval:        opts.TickInterval,
		quiet:           behavior.Window{StartHour: opts.QuietStart, EndHour: opts.QuietEnd},
		quietSet:        opts.QuietStart != opts.QuietEnd,
		boredAfter:      opts.BoredAfter,
		lonelyAfter:     opts.LonelyAfter,
		lastInteraction: now,
		lastFired:       make(map[string]time.Time),
		rng:             rng,
	}
	s.randFloat = rng.Float64
	return s
}

// NoteInteraction resets the idle clock. Called on every external event.
func (s *Scheduler) NoteInteraction(now time.Time) {
	s.mu.Lock()
	s.lastInteraction = now
	s.mu.Unlock()
}

// IsQuietHours reports whether now falls in the configured quiet window.
func (s *Scheduler) IsQuietHours(now time.Time) bool {
	return s.quietSet && s.quiet.Contains(now)
}

// Tick runs one evaluation cycle at now and returns the outbound message if
// a behavior fired, else nil. Ticks are independent: a delayed tick simply
// decays with a larger elapsed delta, nothing is backfilled.
func (s *Scheduler) Tick(now time.Time) *behavior.Message {
	s.mu.Lock()
	var elapsed time.Duration
	if !s.lastTick.IsZero() {
		elapsed = now.Sub(s.lastTick)
	}
	s.lastTick = now
	idle := now.Sub(s.lastInteraction)
	s.mu.Unlock()

	s.moods.Decay(elapsed, now)
	s.escalateIdle(idle, now)

	quiet := s.IsQuietHours(now)
	m, intensity := s.moods.Current()
	// One coherent ledger read for every handler this tick.
	ledger := s.ledger.Snapshot()

	for _, d := range s.registry.Eligible(now, m, quiet) {
		s.mu.Lock()
		last, fired := s.lastFired[d.Name]
		draw := s.randFloat()
		s.mu.Unlock()

		if fired && now.Sub(last) < d.Cooldown {
			continue
		}
		if draw >= d.Probability {
			continue
		}

		view := behavior.View{
			Mood:      m,
			Intensity: intensity,
			Level:     ledger.Level,
			XPTotal:   ledger.XPTotal,
			Streak:    ledger.StreakDays,
			Prestige:  ledger.PrestigeCount,
			Now:       now,
		}
		out, ok := s.invoke(d, view)
		if !ok {
			// Handler fault: logged, no side effects, no cooldown update.
			return nil
		}

		s.mu.Lock()
		s.lastFired[d.Name] = now
		s.mu.Unlock()

		if out.MoodEvent != "" {
			s.moods.ApplyEvent(out.MoodEvent, out.MoodMagnitude, now)
		}
		if out.XP > 0 {
			s.ledger.AwardXP(progression.SourceBehavior, out.XP, now)
		}
		return out.Message
	}
	return nil
}

// escalateIdle synthesizes boredom and loneliness events as the idle gap
// grows. Loneliness outranks boredom and neither re-fires while already in
// the corresponding mood.
func (s *Scheduler) escalateIdle(idle time.Duration, now time.Time) {
	if idle < s.boredAfter {
		return
	}
	current, _ := s.moods.Current()
	s.mu.Lock()
	draw := s.randFloat()
	s.mu.Unlock()

	if idle >= s.lonelyAfter {
		if current != mood.MoodLonely && draw < lonelyChancePerTick {
			s.moods.ApplyEvent(mood.EventIdleLonely, 1.0, now)
		}
		return
	}
	if current != mood.MoodBored && current != mood.MoodLonely && draw < boredChancePerTick {
		s.moods.ApplyEvent(mood.EventIdleBored, 1.0, now)
	}
}

// invoke calls a handler with panic isolation. A panicking handler is
// logged and reported as not-ok so the tick proceeds as if nothing fired.
func (s *Scheduler) invoke(d *behavior.Descriptor, v behavior.View) (out behavior.Outcome, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[SCHED] behavior %s handler panicked: %v", d.Name, r)
			ok = false
		}
	}()
	return d.Handler(v), true
}

// Run drives Tick from a single goroutine until ctx is done. Fired messages
// go to emit. The ticker stops cleanly between ticks; no tick is ever
// half-applied.
func (s *Scheduler) Run(ctx context.Context, emit func(*behavior.Message)) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if msg := s.Tick(time.Now()); msg != nil && emit != nil {
				emit(msg)
			}
		}
	}
}

// LastFired returns a copy of the per-behavior cooldown timestamps.
func (s *Scheduler) LastFired() map[string]time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]time.Time, len(s.lastFired))
	for k, v := range s.lastFired {
		out[k] = v
	}
	return out
}

// RestoreLastFired replaces cooldown timestamps from saved state, dropping
// entries for behaviors no longer registered.
func (s *Scheduler) RestoreLastFired(saved map[string]time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFired = make(map[string]time.Time, len(saved))
	for name, at := range saved {
		if s.registry.Get(name) == nil {
			continue
		}
		s.lastFired[name] = at
	}
}
