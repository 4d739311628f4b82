// Package behavior holds the catalog of autonomous behaviors the scheduler
// can fire: immutable descriptors with eligibility rules and pure handlers
// that turn a state snapshot into an outbound message event.
package behavior

import (
	"time"

	"github.com/google/uuid"

	"github.com/dkyazzentwatwa/kali-ink-bot-sub001/internal/mood"
)

// Kind categorizes what triggers a behavior.
type Kind string

const (
	KindMoodDriven  Kind = "mood_driven"
	KindTimeBased   Kind = "time_based"
	KindMaintenance Kind = "maintenance"
)

// Window is an hour-of-day range. A window with Start > End wraps midnight
// (e.g. 22..6).
type Window struct {
	StartHour int
	EndHour   int
}

// Contains reports whether t's hour falls inside the window. End is
// exclusive so adjacent windows do not overlap.
func (w Window) Contains(t time.Time) bool {
	h := t.Hour()
	if w.StartHour <= w.EndHour {
		return h >= w.StartHour && h < w.EndHour
	}
	return h >= w.StartHour || h < w.EndHour
}

// View is the read-only snapshot a handler sees. Handlers are pure: no
// clock reads, no engine access, no I/O.
type View struct {
	Mood      mood.Mood
	Intensity float64
	Level     int
	XPTotal   int
	Streak    int
	Prestige  int
	Now       time.Time
}

// Message is the semantic outbound event handed to the external rendering
// layer. The core never produces natural-language text, only a template id
// with parameters.
type Message struct {
	ID       string            `json:"id"`
	Behavior string            `json:"behavior"`
	Template string            `json:"template"`
	Params   map[string]string `json:"params,omitempty"`
	At       time.Time         `json:"at"`
}

// NewMessage builds a message for a behavior. Params may be nil.
func NewMessage(behaviorName, template string, params map[string]string, at time.Time) *Message {
	return &Message{
		ID:       uuid.NewString(),
		Behavior: behaviorName,
		Template: template,
		Params:   params,
		At:       at,
	}
}

// Outcome is what a fired behavior produces: the message plus optional
// feedback into the mood engine and the ledger. A zero MoodEvent means no
// mood side effect; XP of zero means no grant.
type Outcome struct {
	Message       *Message
	MoodEvent     mood.EventKind
	MoodMagnitude float64
	XP            int
}

// Handler turns a snapshot into an outcome. Must not block or touch shared
// state; the scheduler applies the outcome's side effects itself.
type Handler func(View) Outcome

// Descriptor is one registered behavior. Immutable after registration.
type Descriptor struct {
	Name         string
	Kind         Kind
	Probability  float64 // chance to fire per eligible tick, in [0,1]
	Cooldown     time.Duration
	MoodFilter   []mood.Mood // empty = any mood
	Window       *Window     // time_based only; nil = always
	QuietHoursOK bool
	Handler      Handler
}

// matchesMood reports whether m passes the descriptor's mood filter.
func (d *Descriptor) matchesMood(m mood.Mood) bool {
	if len(d.MoodFilter) == 0 {
		return true
	}
	for _, f := range d.MoodFilter {
		if f == m {
			return true
		}
	}
	return false
}
