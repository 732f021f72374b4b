// Package timer implements the pomodoro cycle as a typed state machine and
// operates the driver that runs it on a fixed real-time cadence.
package timer

import (
	"time"

	"github.com/tempo-sh/tempo/internal/timeutil"
)

// Kind identifies a phase variant of the pomodoro cycle.
type Kind string

const (
	KindInterval           Kind = "interval"
	KindShortBreak         Kind = "short_break"
	KindLongBreak          Kind = "long_break"
	KindPostponedLongBreak Kind = "postponed_long_break"
)

// IsBreak reports whether the phase pauses work entirely. A postponed long
// break does not count: the user keeps working through it.
func (k Kind) IsBreak() bool {
	return k == KindShortBreak || k == KindLongBreak
}

// Action is a client-originated intent applied to the active phase.
type Action int

const (
	// ActionNone means "no action this tick".
	ActionNone Action = iota

	// ActionPlayPause toggles the pause flag. Elapsed time is not accounted
	// while paused.
	ActionPlayPause

	// ActionSkip ends the active phase as if its duration had elapsed.
	ActionSkip

	// ActionPostponeBreak defers a long break. It is accepted only while a
	// long break (or an already postponed one) is active and the postpone
	// limit has not been reached; otherwise it is silently ignored.
	ActionPostponeBreak

	// ActionReset aborts the current phase and hard-resets the cycle to a
	// fresh interval. Legal from any phase.
	ActionReset
)

// Config holds the immutable settings a state machine is built with.
type Config struct {
	// Durations of the work interval, the two break variants and the
	// postponed working stretch.
	Interval   time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration
	Postpone   time.Duration

	// LongBreakInterval is the number of completed intervals before a break
	// becomes a long one. Zero disables long breaks entirely.
	LongBreakInterval uint

	// PostponeLimit caps how often a long break may be deferred in a row.
	PostponeLimit uint
}

// RoundState is threaded through every phase transition for the lifetime of
// the process.
type RoundState struct {
	// Round counts completed phases of the cycle. It increments when an
	// interval completes and when a long break completes, and only ever
	// goes back to zero through ActionReset.
	Round uint

	// Postponed counts consecutive long-break deferrals. It resets to zero
	// when a fresh interval begins.
	Postponed uint
}

// ViewState is the immutable snapshot produced once per tick. It is consumed
// by rendering only and never fed back into the state machine.
type ViewState struct {
	Kind          Kind   `json:"kind"`
	IsBreak       bool   `json:"is_break"`
	IsPostponed   bool   `json:"is_postponed"`
	PostponeCount uint   `json:"postpone_count"`
	Round         uint   `json:"round"`
	Remaining     string `json:"remaining_time"`
	IsPaused      bool   `json:"is_paused"`
}

// Callbacks connects a state machine to its collaborators. Both callbacks
// run on the machine's tick goroutine.
type Callbacks struct {
	// OnTick is invoked once per tick with the current snapshot and may
	// return a control action to apply. ActionNone means "nothing this
	// tick".
	OnTick func(ViewState) Action

	// OnPhaseEnd is a fire-and-forget notification hook invoked whenever a
	// phase ends, naturally or through a skip. Failures inside the hook must
	// never propagate into the timer.
	OnPhaseEnd func(RoundState, Kind, bool)
}

// Machine holds the active phase variant and the countdown for it. It is not
// safe for concurrent use; the Driver confines it to a single goroutine.
type Machine struct {
	cfg       Config
	cb        Callbacks
	phase     Phase
	remaining time.Duration
	paused    bool
}

// New returns a machine positioned at the start of a fresh interval with
// both counters at zero.
func New(cfg Config, cb Callbacks) *Machine {
	m := &Machine{
		cfg: cfg,
		cb:  cb,
	}

	m.transition(Interval{cfg: cfg})

	return m
}

// Tick advances the countdown by step, fires the per-tick callback with the
// resulting snapshot, and applies at most one returned control action.
func (m *Machine) Tick(step time.Duration) {
	if !m.paused {
		m.remaining -= step

		if m.remaining <= 0 {
			m.complete()
		}
	}

	view := m.View()

	if m.cb.OnTick == nil {
		return
	}

	m.apply(m.cb.OnTick(view))
}

// View builds a snapshot of the machine without advancing it.
func (m *Machine) View() ViewState {
	return m.phase.view(m.remaining, m.paused)
}

// Phase returns the active phase variant.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Paused reports whether the countdown is currently suspended.
func (m *Machine) Paused() bool {
	return m.paused
}

// complete ends the active phase as if its duration had elapsed: the
// phase-end hook fires, then the phase is consumed and replaced by its
// successor.
func (m *Machine) complete() {
	p := m.phase

	if m.cb.OnPhaseEnd != nil {
		m.cb.OnPhaseEnd(p.Round(), p.Kind(), p.Kind() == KindInterval)
	}

	m.transition(p.advance())
}

// transition installs the next phase variant and restarts the countdown at
// its full duration.
func (m *Machine) transition(next Phase) {
	m.phase = next
	m.remaining = next.Duration()
	m.paused = false
}

func (m *Machine) apply(a Action) {
	switch a {
	case ActionNone:
	case ActionPlayPause:
		m.paused = !m.paused
	case ActionSkip:
		m.complete()
	case ActionReset:
		m.transition(Interval{cfg: m.cfg})
	case ActionPostponeBreak:
		// only the long-break variants carry a postpone operation; the
		// request is a silent no-op anywhere else
		switch p := m.phase.(type) {
		case LongBreak:
			if next, ok := p.Postpone(); ok {
				m.transition(next)
			}
		case PostponedLongBreak:
			if next, ok := p.Postpone(); ok {
				m.transition(next)
			}
		}
	}
}

func buildView(k Kind, r RoundState, remaining time.Duration, paused bool) ViewState {
	return ViewState{
		Kind:          k,
		IsBreak:       k.IsBreak(),
		IsPostponed:   k == KindPostponedLongBreak,
		PostponeCount: r.Postponed,
		Round:         r.Round,
		Remaining:     timeutil.FormatRemaining(remaining),
		IsPaused:      paused,
	}
}
