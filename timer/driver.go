package timer

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/tempo-sh/tempo/internal/broadcast"
)

const (
	// tickInterval is the fixed cadence the machine is evaluated at.
	tickInterval = time.Second

	// defaultActionPoll bounds the per-tick wait for a pending control
	// action. It trades responsiveness to client input against CPU wakeups
	// and must stay well below tickInterval so ticks remain prompt even
	// with no client activity.
	defaultActionPoll = 100 * time.Millisecond

	// snapshotBuffer is the per-subscriber lag tolerance of the snapshot
	// fan-out.
	snapshotBuffer = 24

	// actionQueue buffers control actions between the connection handlers
	// and the tick goroutine.
	actionQueue = 64
)

// Driver runs a Machine at a fixed real-time cadence on a dedicated
// goroutine, decoupled from connection handling. Each tick publishes one
// snapshot to the fan-out and drains at most one pending control action
// with a bounded wait; an empty queue is not an error.
type Driver struct {
	machine *Machine
	clock   clockwork.Clock
	out     *broadcast.Broadcaster[ViewState]
	in      chan Action
	poll    time.Duration
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithClock substitutes the wall clock, typically with a fake one in tests.
func WithClock(c clockwork.Clock) DriverOption {
	return func(d *Driver) {
		d.clock = c
	}
}

// WithActionPoll overrides the bounded per-tick wait for control actions.
func WithActionPoll(t time.Duration) DriverOption {
	return func(d *Driver) {
		if t > 0 {
			d.poll = t
		}
	}
}

// NewDriver builds a driver and the machine it runs. onPhaseEnd may be nil.
func NewDriver(
	cfg Config,
	onPhaseEnd func(RoundState, Kind, bool),
	opts ...DriverOption,
) *Driver {
	d := &Driver{
		clock: clockwork.NewRealClock(),
		out:   broadcast.New[ViewState](snapshotBuffer),
		in:    make(chan Action, actionQueue),
		poll:  defaultActionPoll,
	}

	for _, opt := range opts {
		opt(d)
	}

	d.machine = New(cfg, Callbacks{
		OnTick:     d.pump,
		OnPhaseEnd: onPhaseEnd,
	})

	return d
}

// Run evaluates the machine once per tick until ctx is cancelled. It blocks
// and is meant to be called on its own goroutine; at most one Run per
// process may be live.
func (d *Driver) Run(ctx context.Context) {
	ticker := d.clock.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			d.machine.Tick(tickInterval)
		}
	}
}

// Actions returns the inbound control-action queue. Sends are applied in
// order, one per tick.
func (d *Driver) Actions() chan<- Action {
	return d.in
}

// Subscribe attaches a new consumer of tick snapshots.
func (d *Driver) Subscribe() *broadcast.Subscriber[ViewState] {
	return d.out.Subscribe()
}

// pump is the machine's per-tick callback: publish the snapshot, then wait
// briefly for one pending control action.
func (d *Driver) pump(view ViewState) Action {
	d.out.Publish(view)

	select {
	case a := <-d.in:
		return a
	case <-d.clock.After(d.poll):
		return ActionNone
	}
}
