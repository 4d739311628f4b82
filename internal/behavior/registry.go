package behavior

import (
	"fmt"
	"time"

	"github.com/dkyazzentwatwa/kali-ink-bot-sub001/internal/mood"
)

// Registry stores behavior descriptors by name, preserving registration
// order. Built once at startup and read-only afterwards, so lookups need no
// locking.
type Registry struct {
	byName  map[string]*Descriptor
	ordered []*Descriptor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Descriptor)}
}

// Register validates and adds a descriptor. Duplicate names, probabilities
// outside [0,1], negative cooldowns and nil handlers are rejected and leave
// the registry unchanged.
func (r *Registry) Register(d Descriptor) error {
	if d.Name == "" {
		return fmt.Errorf("behavior name is empty")
	}
	if _, exists := r.byName[d.Name]; exists {
		return fmt.Errorf("behavior %q already registered", d.Name)
	}
	if d.Probability < 0 || d.Probability > 1 {
		return fmt.Errorf("behavior %q: probability %v out of [0,1]", d.Name, d.Probability)
	}
	if d.Cooldown < 0 {
		return fmt.Errorf("behavior %q: negative cooldown", d.Name)
	}
	if d.Handler == nil {
		return fmt.Errorf("behavior %q: nil handler", d.Name)
	}
	dc := d
	r.byName[d.Name] = &dc
	r.ordered = append(r.ordered, &dc)
	return nil
}

// Get returns the descriptor with the given name, or nil.
func (r *Registry) Get(name string) *Descriptor {
	return r.byName[name]
}

// Len returns the number of registered behaviors.
func (r *Registry) Len() int {
	return len(r.ordered)
}

// Names returns behavior names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.ordered))
	for _, d := range r.ordered {
		out = append(out, d.Name)
	}
	return out
}

// Eligible returns, in registration order, the behaviors that may fire at
// now given the current mood: mood filters must pass, time_based behaviors
// must be inside their window, and during quiet hours only behaviors marked
// QuietHoursOK survive. Cooldowns are the scheduler's concern, not the
// registry's.
func (r *Registry) Eligible(now time.Time, m mood.Mood, isQuietHours bool) []*Descriptor {
	var out []*Descriptor
	for _, d := range r.ordered {
		if isQuietHours && !d.QuietHoursOK {
			continue
		}
		if !d.matchesMood(m) {
			continue
		}
		if d.Window != nil && !d.Window.Contains(now) {
			continue
		}
		out = append(out, d)
	}
	return out
}
