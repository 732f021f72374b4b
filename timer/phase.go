package timer

import "time"

// Phase is the active mode of the pomodoro cycle. Exactly one variant is
// live at a time. Transitions are value-level: a variant is consumed and its
// successor returned, never mutated in place. Operations that are illegal
// for a phase simply do not exist on its variant, so requests like
// postponing a work interval are unrepresentable.
type Phase interface {
	// Kind names the variant.
	Kind() Kind

	// Duration is the configured length of the phase.
	Duration() time.Duration

	// Round exposes the round state carried by the variant.
	Round() RoundState

	// advance consumes the phase and returns its successor on completion.
	advance() Phase

	view(remaining time.Duration, paused bool) ViewState
}

// Interval is the work phase.
type Interval struct {
	cfg   Config
	round RoundState
}

func (p Interval) Kind() Kind              { return KindInterval }
func (p Interval) Duration() time.Duration { return p.cfg.Interval }
func (p Interval) Round() RoundState       { return p.round }

// advance ends the interval: the round counter increments and every Nth
// round flows into a long break, the rest into a short one.
func (p Interval) advance() Phase {
	r := RoundState{
		Round:     p.round.Round + 1,
		Postponed: p.round.Postponed,
	}

	if n := p.cfg.LongBreakInterval; n > 0 && r.Round%n == 0 {
		return LongBreak{cfg: p.cfg, round: r}
	}

	return ShortBreak{cfg: p.cfg, round: r}
}

func (p Interval) view(remaining time.Duration, paused bool) ViewState {
	return buildView(KindInterval, p.round, remaining, paused)
}

// ShortBreak is the break between ordinary intervals.
type ShortBreak struct {
	cfg   Config
	round RoundState
}

func (p ShortBreak) Kind() Kind              { return KindShortBreak }
func (p ShortBreak) Duration() time.Duration { return p.cfg.ShortBreak }
func (p ShortBreak) Round() RoundState       { return p.round }

func (p ShortBreak) advance() Phase {
	return Interval{
		cfg:   p.cfg,
		round: RoundState{Round: p.round.Round},
	}
}

func (p ShortBreak) view(remaining time.Duration, paused bool) ViewState {
	return buildView(KindShortBreak, p.round, remaining, paused)
}

// LongBreak is the extended break closing a full cycle of intervals.
type LongBreak struct {
	cfg   Config
	round RoundState
}

func (p LongBreak) Kind() Kind              { return KindLongBreak }
func (p LongBreak) Duration() time.Duration { return p.cfg.LongBreak }
func (p LongBreak) Round() RoundState       { return p.round }

func (p LongBreak) advance() Phase {
	return Interval{
		cfg:   p.cfg,
		round: RoundState{Round: p.round.Round + 1},
	}
}

// Postpone defers the break for another working stretch. It reports false
// once the postpone limit is reached, leaving the break untouched.
func (p LongBreak) Postpone() (PostponedLongBreak, bool) {
	if p.round.Postponed >= p.cfg.PostponeLimit {
		return PostponedLongBreak{}, false
	}

	return PostponedLongBreak{
		cfg: p.cfg,
		round: RoundState{
			Round:     p.round.Round,
			Postponed: p.round.Postponed + 1,
		},
	}, true
}

func (p LongBreak) view(remaining time.Duration, paused bool) ViewState {
	return buildView(KindLongBreak, p.round, remaining, paused)
}

// PostponedLongBreak is the working stretch that stands in for a deferred
// long break.
type PostponedLongBreak struct {
	cfg   Config
	round RoundState
}

func (p PostponedLongBreak) Kind() Kind              { return KindPostponedLongBreak }
func (p PostponedLongBreak) Duration() time.Duration { return p.cfg.Postpone }
func (p PostponedLongBreak) Round() RoundState       { return p.round }

func (p PostponedLongBreak) advance() Phase {
	return Interval{
		cfg:   p.cfg,
		round: RoundState{Round: p.round.Round + 1},
	}
}

// Postpone defers the break once more, up to the configured limit.
func (p PostponedLongBreak) Postpone() (PostponedLongBreak, bool) {
	if p.round.Postponed >= p.cfg.PostponeLimit {
		return PostponedLongBreak{}, false
	}

	return PostponedLongBreak{
		cfg: p.cfg,
		round: RoundState{
			Round:     p.round.Round,
			Postponed: p.round.Postponed + 1,
		},
	}, true
}

func (p PostponedLongBreak) view(remaining time.Duration, paused bool) ViewState {
	return buildView(KindPostponedLongBreak, p.round, remaining, paused)
}
