package behavior

import (
	"strconv"
	"time"

	"github.com/dkyazzentwatwa/kali-ink-bot-sub001/internal/mood"
)

// Catalog template ids, consumed by the external rendering layer.
const (
	TplMorningGreeting = "morning_greeting"
	TplEveningWinddown = "evening_winddown"
	TplStreakReminder  = "streak_reminder"
	TplBoredDoodle     = "bored_doodle"
	TplLonelyPing      = "lonely_ping"
	TplCuriousFact     = "curious_fact"
	TplPlayfulTease    = "playful_tease"
	TplGrumpySulk      = "grumpy_sulk"
	TplStatusDigest    = "status_digest"
)

// traitScale bends a base probability by a trait weight: a 0.5 trait leaves
// it unchanged, 1.0 doubles it, 0.0 halves it. Result stays in [0,1].
func traitScale(base, trait float64) float64 {
	p := base * (0.5 + trait)
	if p > 1 {
		p = 1
	}
	if p < 0 {
		p = 0
	}
	return p
}

// RegisterDefaults builds the fixed behavior catalog into r, scaling
// probabilities once by the session's trait vector. Behaviors named in
// disabled are skipped. Fails only on a broken catalog definition.
func RegisterDefaults(r *Registry, traits mood.Traits, disabled map[string]bool) error {
	defaults := []Descriptor{
		{
			Name:        "morning_greeting",
			Kind:        KindTimeBased,
			Probability: traitScale(0.15, traits.Cheerfulness),
			Cooldown:    20 * time.Hour,
			Window:      &Window{StartHour: 7, EndHour: 10},
			Handler: func(v View) Outcome {
				return Outcome{
					Message: NewMessage("morning_greeting", TplMorningGreeting, map[string]string{
						"streak": strconv.Itoa(v.Streak),
					}, v.Now),
					MoodEvent:     mood.EventSelfGreeting,
					MoodMagnitude: 1.0,
				}
			},
		},
		{
			Name:        "evening_winddown",
			Kind:        KindTimeBased,
			Probability: 0.12,
			Cooldown:    20 * time.Hour,
			Window:      &Window{StartHour: 21, EndHour: 24},
			Handler: func(v View) Outcome {
				return Outcome{
					Message:       NewMessage("evening_winddown", TplEveningWinddown, nil, v.Now),
					MoodEvent:     mood.EventQuietHours,
					MoodMagnitude: 0.5,
				}
			},
		},
		{
			Name:        "streak_reminder",
			Kind:        KindTimeBased,
			Probability: traitScale(0.1, traits.Empathy),
			Cooldown:    20 * time.Hour,
			Window:      &Window{StartHour: 18, EndHour: 21},
			Handler: func(v View) Outcome {
				return Outcome{
					Message: NewMessage("streak_reminder", TplStreakReminder, map[string]string{
						"streak": strconv.Itoa(v.Streak),
						"level":  strconv.Itoa(v.Level),
					}, v.Now),
				}
			},
		},
		{
			Name:        "bored_doodle",
			Kind:        KindMoodDriven,
			Probability: 0.25,
			Cooldown:    30 * time.Minute,
			MoodFilter:  []mood.Mood{mood.MoodBored},
			Handler: func(v View) Outcome {
				// Doodling is self-entertainment: it nudges the mood back
				// toward curiosity.
				return Outcome{
					Message:       NewMessage("bored_doodle", TplBoredDoodle, nil, v.Now),
					MoodEvent:     mood.EventSelfEntertained,
					MoodMagnitude: 1.0,
				}
			},
		},
		{
			Name:        "lonely_ping",
			Kind:        KindMoodDriven,
			Probability: traitScale(0.3, traits.Empathy),
			Cooldown:    45 * time.Minute,
			MoodFilter:  []mood.Mood{mood.MoodLonely},
			Handler: func(v View) Outcome {
				return Outcome{
					Message: NewMessage("lonely_ping", TplLonelyPing, map[string]string{
						"intensity": strconv.FormatFloat(v.Intensity, 'f', 2, 64),
					}, v.Now),
				}
			},
		},
		{
			Name:        "curious_fact",
			Kind:        KindMoodDriven,
			Probability: traitScale(0.2, traits.Curiosity),
			Cooldown:    40 * time.Minute,
			MoodFilter:  []mood.Mood{mood.MoodCurious, mood.MoodNeutral, mood.MoodContent},
			Handler: func(v View) Outcome {
				// Sharing a discovery earns a trickle of XP.
				return Outcome{
					Message: NewMessage("curious_fact", TplCuriousFact, nil, v.Now),
					XP:      2,
				}
			},
		},
		{
			Name:        "playful_tease",
			Kind:        KindMoodDriven,
			Probability: traitScale(0.25, traits.Playfulness),
			Cooldown:    35 * time.Minute,
			MoodFilter:  []mood.Mood{mood.MoodHappy, mood.MoodExcited, mood.MoodPlayful},
			Handler: func(v View) Outcome {
				return Outcome{
					Message: NewMessage("playful_tease", TplPlayfulTease, nil, v.Now),
				}
			},
		},
		{
			Name:        "grumpy_sulk",
			Kind:        KindMoodDriven,
			Probability: 0.2,
			Cooldown:    time.Hour,
			MoodFilter:  []mood.Mood{mood.MoodGrumpy},
			Handler: func(v View) Outcome {
				return Outcome{
					Message: NewMessage("grumpy_sulk", TplGrumpySulk, nil, v.Now),
				}
			},
		},
		{
			Name:         "status_digest",
			Kind:         KindMaintenance,
			Probability:  1.0,
			Cooldown:     6 * time.Hour,
			QuietHoursOK: true,
			Handler: func(v View) Outcome {
				return Outcome{
					Message: NewMessage("status_digest", TplStatusDigest, map[string]string{
						"mood":     string(v.Mood),
						"level":    strconv.Itoa(v.Level),
						"xp":       strconv.Itoa(v.XPTotal),
						"streak":   strconv.Itoa(v.Streak),
						"prestige": strconv.Itoa(v.Prestige),
					}, v.Now),
				}
			},
		},
	}

	for _, d := range defaults {
		if disabled[d.Name] {
			continue
		}
		if err := r.Register(d); err != nil {
			return err
		}
	}
	return nil
}
