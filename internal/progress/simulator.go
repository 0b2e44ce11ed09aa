package progress

import "fmt"

// State is the lifecycle state of a simulated run.
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StateComplete  State = "complete"
	StateCancelled State = "cancelled"
)

// Snapshot is the observable progress of a run at one point in time.
type Snapshot struct {
	Percent    int
	StageIndex int
	StageCount int
	Stage      Stage
	State      State
}

// Running reports whether the run is still active.
func (s Snapshot) Running() bool {
	return s.State == StateRunning
}

// Simulator is an immutable state machine producing a bounded, monotonic
// progress sequence:
//
//	Idle -> Running -> Complete
//	          |
//	          +------> Cancelled
//
// Every transition returns a new Simulator; the receiver is never modified.
// The random source is shared between copies.
type Simulator struct {
	cfg        Config
	state      State
	percent    int
	stageIndex int
}

// NewSimulator creates an idle simulator.
func NewSimulator(cfg Config) (Simulator, error) {
	if err := cfg.defaults(); err != nil {
		return Simulator{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return Simulator{cfg: cfg, state: StateIdle}, nil
}

// Config returns the effective configuration.
func (s Simulator) Config() Config {
	return s.cfg
}

// Start begins a fresh run from 0%. Starting an already running simulator
// is a no-op, so there is at most one run per simulator.
func (s Simulator) Start() Simulator {
	if s.state == StateRunning {
		return s
	}
	s.state = StateRunning
	s.percent = 0
	s.stageIndex = 0
	return s
}

// Tick advances a running simulator by one pseudo-random increment, clamped
// to MaxPercent. It reports whether the emitted stage changed. Ticks outside
// the Running state leave the simulator untouched.
func (s Simulator) Tick() (Simulator, bool) {
	if s.state != StateRunning {
		return s, false
	}

	s.percent += s.increment()
	if s.percent >= MaxPercent {
		s.percent = MaxPercent
		s.state = StateComplete
	}

	stageChanged := false
	if idx := StageIndex(s.percent, len(s.cfg.Stages)); idx > s.stageIndex {
		s.stageIndex = idx
		stageChanged = true
	}
	return s, stageChanged
}

// Cancel stops a running simulator. Other states are left as they are.
func (s Simulator) Cancel() Simulator {
	if s.state == StateRunning {
		s.state = StateCancelled
	}
	return s
}

// Snapshot returns the current observable state.
func (s Simulator) Snapshot() Snapshot {
	snap := Snapshot{
		Percent:    s.percent,
		StageIndex: s.stageIndex,
		StageCount: len(s.cfg.Stages),
		State:      s.state,
	}
	if s.stageIndex < len(s.cfg.Stages) {
		snap.Stage = s.cfg.Stages[s.stageIndex]
	}
	return snap
}

// State returns the lifecycle state.
func (s Simulator) State() State {
	return s.state
}

func (s Simulator) increment() int {
	span := s.cfg.MaxIncrement - s.cfg.MinIncrement + 1
	return s.cfg.MinIncrement + s.cfg.Random.IntN(span)
}
