// Package mood implements the companion's emotional state machine: a single
// current mood with a scalar intensity that spikes on events and decays back
// toward a trait-derived baseline over time.
package mood

import (
	"sync"
	"time"
)

// Mood is one of the fixed emotional state variants.
type Mood string

const (
	MoodNeutral Mood = "neutral"
	MoodContent Mood = "content"
	MoodHappy   Mood = "happy"
	MoodExcited Mood = "excited"
	MoodPlayful Mood = "playful"
	MoodCurious Mood = "curious"
	MoodSleepy  Mood = "sleepy"
	MoodBored   Mood = "bored"
	MoodLonely  Mood = "lonely"
	MoodGrumpy  Mood = "grumpy"
)

// Traits are the six static personality weights, each in [0,1]. They are
// fixed for the lifetime of a session and only shape the mood baseline and
// behavior probabilities.
type Traits struct {
	Curiosity    float64 `json:"curiosity"`
	Cheerfulness float64 `json:"cheerfulness"`
	Verbosity    float64 `json:"verbosity"`
	Playfulness  float64 `json:"playfulness"`
	Empathy      float64 `json:"empathy"`
	Independence float64 `json:"independence"`
}

// DefaultTraits returns a neutral trait vector.
func DefaultTraits() Traits {
	return Traits{
		Curiosity:    0.5,
		Cheerfulness: 0.5,
		Verbosity:    0.5,
		Playfulness:  0.5,
		Empathy:      0.5,
		Independence: 0.5,
	}
}

// Clamp bounds every trait to [0,1].
func (t Traits) Clamp() Traits {
	t.Curiosity = clamp01(t.Curiosity)
	t.Cheerfulness = clamp01(t.Cheerfulness)
	t.Verbosity = clamp01(t.Verbosity)
	t.Playfulness = clamp01(t.Playfulness)
	t.Empathy = clamp01(t.Empathy)
	t.Independence = clamp01(t.Independence)
	return t
}

const (
	// DefaultDecayPerMinute is how much intensity drains per idle minute.
	DefaultDecayPerMinute = 0.1

	// lowIntensity is the threshold below which mood snaps to baseline.
	lowIntensity = 0.2

	// resetIntensity is the intensity after a baseline reset.
	resetIntensity = 0.5

	// dominantTrait is how strong a trait must be to color the baseline.
	dominantTrait = 0.6
)

// Baseline derives the resting mood from the trait vector: a clearly
// cheerful companion rests content, a clearly curious one rests curious,
// anything else rests neutral.
func Baseline(t Traits) Mood {
	switch {
	case t.Cheerfulness >= dominantTrait && t.Cheerfulness > t.Curiosity:
		return MoodContent
	case t.Curiosity >= dominantTrait && t.Curiosity > t.Cheerfulness:
		return MoodCurious
	default:
		return MoodNeutral
	}
}

// State is the serializable portion of the engine.
type State struct {
	Mood        Mood      `json:"mood"`
	Intensity   float64   `json:"intensity"`
	LastUpdated time.Time `json:"last_updated"`
}

// Engine owns the current mood and intensity. Safe for concurrent use;
// external event handlers and the scheduler tick share it.
type Engine struct {
	mu        sync.Mutex
	traits    Traits
	baseline  Mood
	decayRate float64 // intensity per minute

	mood        Mood
	intensity   float64
	lastUpdated time.Time
}

// NewEngine creates an engine resting at the trait-derived baseline.
func NewEngine(traits Traits, decayPerMinute float64, now time.Time) *Engine {
	if decayPerMinute <= 0 {
		decayPerMinute = DefaultDecayPerMinute
	}
	traits = traits.Clamp()
	base := Baseline(traits)
	return &Engine{
		traits:      traits,
		baseline:    base,
		decayRate:   decayPerMinute,
		mood:        base,
		intensity:   resetIntensity,
		lastUpdated: now,
	}
}

// Traits returns the (immutable) trait vector.
func (e *Engine) Traits() Traits {
	return e.traits
}

// Baseline returns the resting mood.
func (e *Engine) Baseline() Mood {
	return e.baseline
}

// Current returns the mood and intensity.
func (e *Engine) Current() (Mood, float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mood, e.intensity
}

// ApplyEvent looks up the fixed transition for kind and, if one exists, sets
// the target mood and boosts intensity by the table delta scaled by
// magnitude (clamped to [0,1]). Returns false for kinds absent from the
// table; nothing changes in that case.
func (e *Engine) ApplyEvent(kind EventKind, magnitude float64, now time.Time) bool {
	tr, ok := transitions[kind]
	if !ok {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mood = tr.Target
	e.intensity = clamp01(e.intensity + tr.Delta*clamp01(magnitude))
	e.lastUpdated = now
	return true
}

// Decay drains intensity by decayRate per elapsed minute, floored at zero.
// If the drained intensity falls below the low threshold while away from
// baseline, mood resets to baseline at the fixed reset intensity so it never
// sticks at zero. Returns true if the mood variant changed.
func (e *Engine) Decay(elapsed time.Duration, now time.Time) bool {
	if elapsed < 0 {
		elapsed = 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.intensity -= e.decayRate * elapsed.Minutes()
	if e.intensity < 0 {
		e.intensity = 0
	}
	e.lastUpdated = now

	if e.intensity < lowIntensity && e.mood != e.baseline {
		e.mood = e.baseline
		e.intensity = resetIntensity
		return true
	}
	return false
}

// Snapshot returns the serializable state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return State{Mood: e.mood, Intensity: e.intensity, LastUpdated: e.lastUpdated}
}

// Restore overwrites mood state from a saved snapshot. Intensity is clamped
// and unknown moods fall back to the baseline so a corrupt blob cannot put
// the engine in an impossible state.
func (e *Engine) Restore(s State) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := validMoods[s.Mood]; !ok {
		s.Mood = e.baseline
	}
	e.mood = s.Mood
	e.intensity = clamp01(s.Intensity)
	if !s.LastUpdated.IsZero() {
		e.lastUpdated = s.LastUpdated
	}
}

var validMoods = map[Mood]struct{}{
	MoodNeutral: {}, MoodContent: {}, MoodHappy: {}, MoodExcited: {},
	MoodPlayful: {}, MoodCurious: {}, MoodSleepy: {}, MoodBored: {},
	MoodLonely: {}, MoodGrumpy: {},
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
