package scan

import (
	"maps"
	"time"
)

// Default window durations, used when a Windows field is zero.
const (
	DefaultStabilityWindow = 400 * time.Millisecond
	DefaultDedupWindow     = 10 * time.Second
)

// Windows carries the gate's timing configuration.
type Windows struct {
	Stability time.Duration
	Dedup     time.Duration
}

func (w Windows) withDefaults() Windows {
	if w.Stability <= 0 {
		w.Stability = DefaultStabilityWindow
	}
	if w.Dedup <= 0 {
		w.Dedup = DefaultDedupWindow
	}
	return w
}

// Phase enumerates the gate states.
type Phase int

const (
	// PhaseIdle means no reading is being tracked.
	PhaseIdle Phase = iota
	// PhaseSeen means a reading is tracked and accumulating stability.
	PhaseSeen
	// PhaseAwaiting means a lookup was issued and has not completed.
	PhaseAwaiting
)

// ActionKind enumerates what the caller should do after a transition.
type ActionKind int

const (
	// ActionNone requires nothing from the caller.
	ActionNone ActionKind = iota
	// ActionFeedback surfaces the reading as live feedback only.
	ActionFeedback
	// ActionLookup issues exactly one identification call for Text.
	ActionLookup
)

// Action is the output half of a transition.
type Action struct {
	Kind ActionKind
	Text string
}

// State is the gate's full state as a value. The zero value is a fresh
// idle gate. Transition functions return a new State; the dedup map is
// cloned before mutation so retained old states stay consistent.
type State struct {
	Phase Phase
	Text  string
	Since time.Time

	dedup map[string]time.Time
}

// InFlight reports whether a lookup is currently unresolved.
func (s State) InFlight() bool { return s.Phase == PhaseAwaiting }

// Deduped reports whether name is inside the dedup window at now.
func (s State) Deduped(name string, now time.Time, w Windows) bool {
	w = w.withDefaults()
	at, ok := s.dedup[name]
	return ok && now.Sub(at) < w.Dedup
}

// Step advances the gate with one normalized reading. An empty name is a
// reset signal, never an error.
func Step(s State, name string, now time.Time, w Windows) (State, Action) {
	w = w.withDefaults()

	if s.Phase == PhaseAwaiting {
		// The single-flight guard: keep surfacing feedback, never trigger.
		if name == "" {
			return s, Action{Kind: ActionNone}
		}
		return s, Action{Kind: ActionFeedback, Text: name}
	}

	if name == "" {
		s.Phase = PhaseIdle
		s.Text = ""
		s.Since = time.Time{}
		return s, Action{Kind: ActionNone}
	}

	if s.Deduped(name, now, w) {
		return s, Action{Kind: ActionFeedback, Text: name}
	}

	if s.Phase == PhaseIdle || name != s.Text {
		s.Phase = PhaseSeen
		s.Text = name
		s.Since = now
		return s, Action{Kind: ActionFeedback, Text: name}
	}

	if now.Sub(s.Since) < w.Stability {
		return s, Action{Kind: ActionFeedback, Text: name}
	}

	s.Phase = PhaseAwaiting
	s.dedup = recordDedup(s.dedup, name, now, w.Dedup)
	return s, Action{Kind: ActionLookup, Text: name}
}

// Complete resolves the in-flight lookup. On failure or a low-confidence
// result (ok=false) the dedup entry is evicted so the same card can retry
// on a later frame; on success it stays deduped for the full window.
func Complete(s State, ok bool) State {
	if s.Phase != PhaseAwaiting {
		return s
	}
	if !ok && s.Text != "" {
		clone := maps.Clone(s.dedup)
		delete(clone, s.Text)
		s.dedup = clone
	}
	s.Phase = PhaseIdle
	s.Text = ""
	s.Since = time.Time{}
	return s
}

func recordDedup(dedup map[string]time.Time, name string, now time.Time, window time.Duration) map[string]time.Time {
	clone := make(map[string]time.Time, len(dedup)+1)
	for k, at := range dedup {
		if now.Sub(at) < window {
			clone[k] = at
		}
	}
	clone[name] = now
	return clone
}
