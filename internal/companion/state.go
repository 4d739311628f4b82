package companion

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dkyazzentwatwa/kali-ink-bot-sub001/internal/mood"
	"github.com/dkyazzentwatwa/kali-ink-bot-sub001/internal/progression"
)

// State is the complete serializable snapshot: mood, ledger and behavior
// cooldowns. Fields are order-independent JSON; a restart restored from it
// keeps cooldowns and mood instead of resetting to defaults.
type State struct {
	Mood      mood.State           `json:"mood"`
	Ledger    progression.State    `json:"ledger"`
	LastFired map[string]time.Time `json:"last_fired,omitempty"`
	SavedAt   time.Time            `json:"saved_at"`
}

// ExportState captures the current state.
func (c *Companion) ExportState(now time.Time) State {
	return State{
		Mood:      c.moods.Snapshot(),
		Ledger:    c.ledger.Snapshot(),
		LastFired: c.sched.LastFired(),
		SavedAt:   now,
	}
}

// ImportState overwrites engine state from a snapshot. Invalid values are
// sanitized by the engines' own Restore methods; cooldowns for behaviors
// that no longer exist are dropped.
func (c *Companion) ImportState(s State) {
	c.moods.Restore(s.Mood)
	c.ledger.Restore(s.Ledger)
	c.sched.RestoreLastFired(s.LastFired)
}

// SaveState serializes the snapshot to a JSON blob.
func (c *Companion) SaveState(now time.Time) ([]byte, error) {
	return json.Marshal(c.ExportState(now))
}

// LoadState restores from a blob produced by SaveState.
func (c *Companion) LoadState(blob []byte) error {
	var s State
	if err := json.Unmarshal(blob, &s); err != nil {
		return fmt.Errorf("decoding companion state: %w", err)
	}
	c.ImportState(s)
	return nil
}
