package mood

import (
	"testing"
	"time"
)

var t0 = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func TestBaseline_TraitDerived(t *testing.T) {
	tests := []struct {
		name   string
		traits Traits
		want   Mood
	}{
		{"neutral vector", DefaultTraits(), MoodNeutral},
		{"cheerful dominant", Traits{Cheerfulness: 0.9, Curiosity: 0.4}, MoodContent},
		{"curious dominant", Traits{Curiosity: 0.8, Cheerfulness: 0.3}, MoodCurious},
		{"both high, cheerful wins", Traits{Cheerfulness: 0.9, Curiosity: 0.7}, MoodContent},
		{"both below threshold", Traits{Cheerfulness: 0.55, Curiosity: 0.55}, MoodNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Baseline(tt.traits); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestApplyEvent_Scenarios(t *testing.T) {
	tests := []struct {
		name string
		kind EventKind
		want Mood
	}{
		{"positive chat = happy", EventPositiveChat, MoodHappy},
		{"negative chat = grumpy", EventNegativeChat, MoodGrumpy},
		{"urgent task = excited", EventTaskCompletedUrgent, MoodExcited},
		{"idle bored = bored", EventIdleBored, MoodBored},
		{"idle lonely = lonely", EventIdleLonely, MoodLonely},
		{"level up = excited", EventLevelUp, MoodExcited},
		{"achievement = playful", EventAchievement, MoodPlayful},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(DefaultTraits(), DefaultDecayPerMinute, t0)
			if !e.ApplyEvent(tt.kind, 1.0, t0) {
				t.Fatal("expected event to apply")
			}
			m, _ := e.Current()
			if m != tt.want {
				t.Errorf("expected %s, got %s", tt.want, m)
			}
		})
	}
}

func TestApplyEvent_UnknownKindNoChange(t *testing.T) {
	e := NewEngine(DefaultTraits(), DefaultDecayPerMinute, t0)
	before, beforeI := e.Current()

	if e.ApplyEvent("no_such_event", 1.0, t0) {
		t.Error("expected unknown event to be rejected")
	}
	m, i := e.Current()
	if m != before || i != beforeI {
		t.Errorf("state changed on unknown event: %s/%f", m, i)
	}
}

func TestApplyEvent_IntensityNeverExceedsOne(t *testing.T) {
	e := NewEngine(DefaultTraits(), DefaultDecayPerMinute, t0)
	for i := 0; i < 10; i++ {
		e.ApplyEvent(EventPositiveChat, 1.0, t0)
	}
	if _, i := e.Current(); i > 1.0 {
		t.Errorf("intensity exceeded 1.0: %f", i)
	}
}

func TestApplyEvent_MagnitudeScalesDelta(t *testing.T) {
	full := NewEngine(DefaultTraits(), DefaultDecayPerMinute, t0)
	half := NewEngine(DefaultTraits(), DefaultDecayPerMinute, t0)
	full.ApplyEvent(EventPositiveChat, 1.0, t0)
	half.ApplyEvent(EventPositiveChat, 0.5, t0)

	_, fi := full.Current()
	_, hi := half.Current()
	if hi >= fi {
		t.Errorf("half magnitude (%f) should boost less than full (%f)", hi, fi)
	}
}

func TestDecay_IntensityBoundedAndBaselineReset(t *testing.T) {
	e := NewEngine(DefaultTraits(), DefaultDecayPerMinute, t0)
	e.ApplyEvent(EventPositiveChat, 1.0, t0)

	now := t0
	for i := 0; i < 120; i++ {
		now = now.Add(time.Minute)
		e.Decay(time.Minute, now)
		m, i := e.Current()
		if i < 0 || i > 1 {
			t.Fatalf("intensity out of bounds: %f", i)
		}
		if i < 0.2 && m != e.Baseline() {
			t.Fatalf("intensity %f below threshold but mood %s is not baseline %s", i, m, e.Baseline())
		}
	}
	m, _ := e.Current()
	if m != MoodNeutral {
		t.Errorf("expected decay to neutral baseline, got %s", m)
	}
}

func TestDecay_ResetsToHalfIntensity(t *testing.T) {
	e := NewEngine(DefaultTraits(), DefaultDecayPerMinute, t0)
	e.ApplyEvent(EventNegativeChat, 1.0, t0)

	// Drain enough to cross the low threshold in one large delta.
	changed := e.Decay(60*time.Minute, t0.Add(time.Hour))
	if !changed {
		t.Fatal("expected mood to snap to baseline")
	}
	m, i := e.Current()
	if m != e.Baseline() {
		t.Errorf("expected baseline, got %s", m)
	}
	if i != 0.5 {
		t.Errorf("expected reset intensity 0.5, got %f", i)
	}
}

func TestDecay_AtBaselineNoReset(t *testing.T) {
	e := NewEngine(DefaultTraits(), DefaultDecayPerMinute, t0)
	e.Decay(2*time.Hour, t0.Add(2*time.Hour))
	m, i := e.Current()
	if m != e.Baseline() {
		t.Errorf("expected baseline, got %s", m)
	}
	if i != 0 {
		t.Errorf("expected intensity floored at 0, got %f", i)
	}
}

func TestDecay_NegativeElapsedIgnored(t *testing.T) {
	e := NewEngine(DefaultTraits(), DefaultDecayPerMinute, t0)
	e.ApplyEvent(EventPositiveChat, 1.0, t0)
	_, before := e.Current()
	e.Decay(-time.Hour, t0)
	if _, after := e.Current(); after != before {
		t.Errorf("negative elapsed changed intensity: %f -> %f", before, after)
	}
}

func TestRestore_RejectsUnknownMood(t *testing.T) {
	e := NewEngine(DefaultTraits(), DefaultDecayPerMinute, t0)
	e.Restore(State{Mood: "ecstatic", Intensity: 3.0, LastUpdated: t0})
	m, i := e.Current()
	if m != e.Baseline() {
		t.Errorf("expected unknown mood to fall back to baseline, got %s", m)
	}
	if i != 1.0 {
		t.Errorf("expected intensity clamped to 1.0, got %f", i)
	}
}

func TestSnapshotRestore_RoundTrip(t *testing.T) {
	e := NewEngine(DefaultTraits(), DefaultDecayPerMinute, t0)
	e.ApplyEvent(EventIdleLonely, 1.0, t0)
	s := e.Snapshot()

	e2 := NewEngine(DefaultTraits(), DefaultDecayPerMinute, t0.Add(time.Hour))
	e2.Restore(s)
	m, i := e2.Current()
	if m != MoodLonely {
		t.Errorf("expected lonely after restore, got %s", m)
	}
	if sm, si := s.Mood, s.Intensity; sm != m || si != i {
		t.Errorf("restore mismatch: %s/%f vs %s/%f", sm, si, m, i)
	}
}
