package progress

import (
	"context"
	"time"

	"github.com/waabox/auditdeck/internal/log"
)

// Runner drives a Simulator from a single ticker for consumers that are not
// event loops themselves, such as the plain CLI output.
type Runner struct {
	sim    Simulator
	logger log.Logger
}

// NewRunner creates a Runner for sim. It ticks at the simulator's configured
// TickInterval.
func NewRunner(sim Simulator, logger log.Logger) *Runner {
	if logger == nil {
		logger = log.Noop
	}
	return &Runner{sim: sim, logger: logger}
}

// Interval returns the tick interval of the run.
func (r *Runner) Interval() time.Duration {
	if d := r.sim.Config().TickInterval; d > 0 {
		return d
	}
	return defaultTickInterval
}

// Run starts the simulator and calls emit with the initial snapshot and then
// once per tick until the run completes or ctx is cancelled. On cancellation a single
// final snapshot in StateCancelled is emitted and nothing after it.
// emit is always called from the goroutine that called Run.
func (r *Runner) Run(ctx context.Context, emit func(Snapshot)) Snapshot {
	sim := r.sim.Start()
	snap := sim.Snapshot()
	emit(snap)
	r.logger.Infof("Audit simulation started")

	ticker := time.NewTicker(r.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			sim = sim.Cancel()
			snap = sim.Snapshot()
			emit(snap)
			r.logger.Warningf("Audit simulation cancelled at %d%%", snap.Percent)
			return snap
		case <-ticker.C:
		}

		// Cancellation wins over a tick that fired at the same time.
		if ctx.Err() != nil {
			continue
		}

		var stageChanged bool
		sim, stageChanged = sim.Tick()
		snap = sim.Snapshot()
		if stageChanged {
			r.logger.Debugf("Stage %d/%d: %s", snap.StageIndex+1, snap.StageCount, snap.Stage.Label)
		}
		emit(snap)

		if !snap.Running() {
			r.logger.Infof("Audit simulation complete")
			return snap
		}
	}
}

// Stream runs the simulator in a new goroutine and returns a channel of
// snapshots that is closed when the run completes or ctx is cancelled.
func (r *Runner) Stream(ctx context.Context) <-chan Snapshot {
	ch := make(chan Snapshot, r.sim.Config().MaxTicks()+2)
	go func() {
		defer close(ch)
		r.Run(ctx, func(s Snapshot) { ch <- s })
	}()
	return ch
}
