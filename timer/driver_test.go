package timer

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

const testPoll = 10 * time.Millisecond

func startDriver(t *testing.T) (*Driver, *clockwork.FakeClock, context.Context) {
	t.Helper()

	fake := clockwork.NewFakeClock()

	d := NewDriver(
		testConfig(),
		nil,
		WithClock(fake),
		WithActionPoll(testPoll),
	)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go d.Run(ctx)

	return d, fake, ctx
}

// tick fires one driver tick and waits for the action poll window to lapse
// so the tick goroutine is parked on the ticker again.
func tick(t *testing.T, fake *clockwork.FakeClock, ctx context.Context, drained bool) {
	t.Helper()

	if err := fake.BlockUntilContext(ctx, 1); err != nil {
		t.Fatal(err)
	}

	fake.Advance(tickInterval)

	// a tick that consumes a queued action returns without arming the poll
	// timer
	if drained {
		return
	}

	if err := fake.BlockUntilContext(ctx, 2); err != nil {
		t.Fatal(err)
	}

	fake.Advance(testPoll)
}

func recvSnapshot(t *testing.T, ch <-chan ViewState) ViewState {
	t.Helper()

	select {
	case v := <-ch:
		return v
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a snapshot")
		return ViewState{}
	}
}

func TestDriverPublishesEveryTick(t *testing.T) {
	d, fake, ctx := startDriver(t)

	sub := d.Subscribe()
	defer sub.Close()

	tick(t, fake, ctx, false)

	view := recvSnapshot(t, sub.Ch())

	if view.Remaining != "00:02" {
		t.Fatalf("first snapshot remaining = %s, want 00:02", view.Remaining)
	}

	tick(t, fake, ctx, false)

	view = recvSnapshot(t, sub.Ch())

	if view.Remaining != "00:01" {
		t.Fatalf("second snapshot remaining = %s, want 00:01", view.Remaining)
	}
}

func TestDriverAppliesQueuedActions(t *testing.T) {
	d, fake, ctx := startDriver(t)

	sub := d.Subscribe()
	defer sub.Close()

	d.Actions() <- ActionPlayPause

	tick(t, fake, ctx, true)
	recvSnapshot(t, sub.Ch())

	// the pause was applied after the first snapshot, so the second one
	// shows a frozen countdown
	tick(t, fake, ctx, false)

	view := recvSnapshot(t, sub.Ch())

	if !view.IsPaused {
		t.Fatal("second snapshot should report paused")
	}

	if view.Remaining != "00:02" {
		t.Fatalf(
			"paused countdown moved: remaining = %s, want 00:02",
			view.Remaining,
		)
	}
}

func TestDriverSubscribersAreIndependent(t *testing.T) {
	d, fake, ctx := startDriver(t)

	first := d.Subscribe()
	second := d.Subscribe()

	defer second.Close()

	tick(t, fake, ctx, false)

	a := recvSnapshot(t, first.Ch())
	b := recvSnapshot(t, second.Ch())

	if a != b {
		t.Fatalf("subscribers observed different snapshots: %+v vs %+v", a, b)
	}

	// a closed subscriber must not stall the rest
	first.Close()

	tick(t, fake, ctx, false)

	view := recvSnapshot(t, second.Ch())

	if view.Remaining != "00:01" {
		t.Fatalf("remaining = %s, want 00:01", view.Remaining)
	}
}
