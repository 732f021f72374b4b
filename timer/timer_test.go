package timer

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func testConfig() Config {
	return Config{
		Interval:          3 * time.Second,
		ShortBreak:        2 * time.Second,
		LongBreak:         4 * time.Second,
		Postpone:          2 * time.Second,
		LongBreakInterval: 4,
		PostponeLimit:     2,
	}
}

// completePhase ends the active phase as a skip would.
func completePhase(t *testing.T, m *Machine) {
	t.Helper()
	m.apply(ActionSkip)
}

func assertPhase(t *testing.T, m *Machine, kind Kind, round, postponed uint) {
	t.Helper()

	p := m.Phase()

	if p.Kind() != kind {
		t.Fatalf("phase kind = %s, want %s", p.Kind(), kind)
	}

	if got := p.Round(); got.Round != round || got.Postponed != postponed {
		t.Fatalf(
			"round state = %+v, want round %d, postponed %d",
			got, round, postponed,
		)
	}
}

func TestMachineStartsAtFreshInterval(t *testing.T) {
	m := New(testConfig(), Callbacks{})

	assertPhase(t, m, KindInterval, 0, 0)

	if m.Paused() {
		t.Fatal("new machine should not be paused")
	}

	want := ViewState{
		Kind:      KindInterval,
		Remaining: "00:03",
	}

	if diff := cmp.Diff(want, m.View()); diff != "" {
		t.Fatalf("initial view mismatch (-want +got):\n%s", diff)
	}
}

func TestFullCycle(t *testing.T) {
	m := New(testConfig(), Callbacks{})

	// rounds 1 through 3 each earn a short break
	for i := uint(1); i <= 3; i++ {
		assertPhase(t, m, KindInterval, i-1, 0)
		completePhase(t, m)
		assertPhase(t, m, KindShortBreak, i, 0)
		completePhase(t, m)
		assertPhase(t, m, KindInterval, i, 0)
	}

	// the fourth interval closes the cycle with a long break
	completePhase(t, m)
	assertPhase(t, m, KindLongBreak, 4, 0)

	m.apply(ActionPostponeBreak)
	assertPhase(t, m, KindPostponedLongBreak, 4, 1)

	m.apply(ActionPostponeBreak)
	assertPhase(t, m, KindPostponedLongBreak, 4, 2)

	// third deferral exceeds the limit and changes nothing
	m.apply(ActionPostponeBreak)
	assertPhase(t, m, KindPostponedLongBreak, 4, 2)

	// finishing the deferred stretch still counts the break round and
	// clears the deferral streak
	completePhase(t, m)
	assertPhase(t, m, KindInterval, 5, 0)
}

func TestTickCountdown(t *testing.T) {
	var ended []Kind

	m := New(testConfig(), Callbacks{
		OnPhaseEnd: func(_ RoundState, k Kind, _ bool) {
			ended = append(ended, k)
		},
	})

	m.Tick(time.Second)

	if got := m.View().Remaining; got != "00:02" {
		t.Fatalf("remaining after one tick = %s, want 00:02", got)
	}

	m.Tick(time.Second)
	m.Tick(time.Second)

	if len(ended) != 1 || ended[0] != KindInterval {
		t.Fatalf("phase-end hooks fired = %v, want [interval]", ended)
	}

	// the short break starts at its full duration
	assertPhase(t, m, KindShortBreak, 1, 0)

	if got := m.View().Remaining; got != "00:02" {
		t.Fatalf("short break remaining = %s, want 00:02", got)
	}
}

func TestPauseSuspendsCountdown(t *testing.T) {
	m := New(testConfig(), Callbacks{})

	m.apply(ActionPlayPause)
	m.Tick(time.Second)
	m.Tick(time.Second)

	view := m.View()

	if !view.IsPaused {
		t.Fatal("view should report paused")
	}

	if view.Remaining != "00:03" {
		t.Fatalf("paused countdown moved to %s", view.Remaining)
	}

	m.apply(ActionPlayPause)
	m.Tick(time.Second)

	if got := m.View().Remaining; got != "00:02" {
		t.Fatalf("remaining after resume = %s, want 00:02", got)
	}
}

func TestResetFromEveryPhase(t *testing.T) {
	testCases := []struct {
		name  string
		setup func(m *Machine)
	}{
		{
			name:  "interval",
			setup: func(m *Machine) { m.Tick(time.Second) },
		},
		{
			name:  "short break",
			setup: func(m *Machine) { m.apply(ActionSkip) },
		},
		{
			name: "long break",
			setup: func(m *Machine) {
				for i := 0; i < 7; i++ {
					m.apply(ActionSkip)
				}
			},
		},
		{
			name: "postponed long break",
			setup: func(m *Machine) {
				for i := 0; i < 7; i++ {
					m.apply(ActionSkip)
				}
				m.apply(ActionPostponeBreak)
			},
		},
		{
			name: "paused",
			setup: func(m *Machine) {
				m.apply(ActionPlayPause)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := New(testConfig(), Callbacks{})

			tc.setup(m)
			m.apply(ActionReset)

			assertPhase(t, m, KindInterval, 0, 0)

			if m.Paused() {
				t.Fatal("reset must unpause the countdown")
			}

			if got := m.View().Remaining; got != "00:03" {
				t.Fatalf("remaining after reset = %s, want 00:03", got)
			}
		})
	}
}

func TestPostponeIgnoredOutsideLongBreaks(t *testing.T) {
	testCases := []struct {
		name  string
		skips int
		kind  Kind
	}{
		{name: "interval", skips: 0, kind: KindInterval},
		{name: "short break", skips: 1, kind: KindShortBreak},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := New(testConfig(), Callbacks{})

			for i := 0; i < tc.skips; i++ {
				m.apply(ActionSkip)
			}

			before := m.View()
			m.apply(ActionPostponeBreak)

			if m.Phase().Kind() != tc.kind {
				t.Fatalf("postpone changed phase to %s", m.Phase().Kind())
			}

			if diff := cmp.Diff(before, m.View()); diff != "" {
				t.Fatalf("postpone altered the view (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPostponeLimitZero(t *testing.T) {
	cfg := testConfig()
	cfg.PostponeLimit = 0

	m := New(cfg, Callbacks{})

	for i := 0; i < 7; i++ {
		m.apply(ActionSkip)
	}

	assertPhase(t, m, KindLongBreak, 4, 0)

	m.apply(ActionPostponeBreak)
	assertPhase(t, m, KindLongBreak, 4, 0)
}

func TestLongBreaksDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.LongBreakInterval = 0

	m := New(cfg, Callbacks{})

	for i := uint(1); i <= 6; i++ {
		completePhase(t, m)
		assertPhase(t, m, KindShortBreak, i, 0)
		completePhase(t, m)
	}
}

func TestViewStateFields(t *testing.T) {
	m := New(testConfig(), Callbacks{})

	for i := 0; i < 7; i++ {
		m.apply(ActionSkip)
	}

	m.apply(ActionPostponeBreak)
	m.Tick(time.Second)

	want := ViewState{
		Kind:          KindPostponedLongBreak,
		IsBreak:       false,
		IsPostponed:   true,
		PostponeCount: 1,
		Round:         4,
		Remaining:     "00:01",
		IsPaused:      false,
	}

	if diff := cmp.Diff(want, m.View()); diff != "" {
		t.Fatalf("view mismatch (-want +got):\n%s", diff)
	}

	skipped := New(testConfig(), Callbacks{})
	skipped.apply(ActionSkip)

	breakView := skipped.View()

	if !breakView.IsBreak || breakView.IsPostponed {
		t.Fatalf(
			"short break view flags = %+v, want break and not postponed",
			breakView,
		)
	}
}

func TestPhaseEndReportsWorkCompletion(t *testing.T) {
	type ended struct {
		kind       Kind
		isInterval bool
	}

	var got []ended

	m := New(testConfig(), Callbacks{
		OnPhaseEnd: func(_ RoundState, k Kind, isInterval bool) {
			got = append(got, ended{kind: k, isInterval: isInterval})
		},
	})

	m.apply(ActionSkip) // interval ends
	m.apply(ActionSkip) // short break ends

	want := []ended{
		{kind: KindInterval, isInterval: true},
		{kind: KindShortBreak, isInterval: false},
	}

	if diff := cmp.Diff(want, got, cmp.AllowUnexported(ended{})); diff != "" {
		t.Fatalf("phase-end sequence mismatch (-want +got):\n%s", diff)
	}
}
