package progress_test

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waabox/auditdeck/internal/domain"
	"github.com/waabox/auditdeck/internal/progress"
)

// fixedRandom returns the given draws in order, cycling when exhausted.
type fixedRandom struct {
	draws []int
	i     int
}

func (f *fixedRandom) IntN(n int) int {
	v := f.draws[f.i%len(f.draws)]
	f.i++
	if v >= n {
		return n - 1
	}
	return v
}

func newSimulator(t *testing.T, draws ...int) progress.Simulator {
	t.Helper()
	sim, err := progress.NewSimulator(progress.Config{Random: &fixedRandom{draws: draws}})
	require.NoError(t, err)
	return sim
}

func TestStageIndex(t *testing.T) {
	tests := map[string]struct {
		percent int
		count   int
		exp     int
	}{
		"0% maps to the first stage.":                {percent: 0, count: 5, exp: 0},
		"15% with five stages maps to stage 0.":      {percent: 15, count: 5, exp: 0},
		"20% is the start of the second stage.":      {percent: 20, count: 5, exp: 1},
		"82% with five stages maps to the last one.": {percent: 82, count: 5, exp: 4},
		"100% is clamped to the last stage.":         {percent: 100, count: 5, exp: 4},
		"A single stage always maps to itself.":      {percent: 73, count: 1, exp: 0},
		"No stages maps to zero.":                    {percent: 50, count: 0, exp: 0},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.exp, progress.StageIndex(test.percent, test.count))
		})
	}
}

func TestSimulatorLifecycle(t *testing.T) {
	tests := map[string]struct {
		draws    []int
		run      func(s progress.Simulator) progress.Simulator
		expState progress.State
		expPct   int
		expStage int
	}{
		"A new simulator should be idle.": {
			draws:    []int{0},
			run:      func(s progress.Simulator) progress.Simulator { return s },
			expState: progress.StateIdle,
		},

		"Ticking an idle simulator should not change it.": {
			draws: []int{0},
			run: func(s progress.Simulator) progress.Simulator {
				s, _ = s.Tick()
				return s
			},
			expState: progress.StateIdle,
		},

		"A tick adding 15 from 0 should land on 15% in the first stage.": {
			draws: []int{10},
			run: func(s progress.Simulator) progress.Simulator {
				s, _ = s.Start().Tick()
				return s
			},
			expState: progress.StateRunning,
			expPct:   15,
			expStage: 0,
		},

		"Reaching 100 should complete the run on the last stage.": {
			draws: []int{15},
			run: func(s progress.Simulator) progress.Simulator {
				s = s.Start()
				for i := 0; i < 5; i++ {
					s, _ = s.Tick()
				}
				return s
			},
			expState: progress.StateComplete,
			expPct:   100,
			expStage: 4,
		},

		"Overshooting 100 should be clamped.": {
			draws: []int{15, 15, 15, 15, 10},
			run: func(s progress.Simulator) progress.Simulator {
				s = s.Start()
				for i := 0; i < 6; i++ {
					s, _ = s.Tick()
				}
				return s
			},
			expState: progress.StateComplete,
			expPct:   100,
			expStage: 4,
		},

		"Cancelling at 40% should stop any further change.": {
			draws: []int{15},
			run: func(s progress.Simulator) progress.Simulator {
				s = s.Start()
				s, _ = s.Tick()
				s, _ = s.Tick()
				s = s.Cancel()
				for i := 0; i < 10; i++ {
					s, _ = s.Tick()
				}
				return s
			},
			expState: progress.StateCancelled,
			expPct:   40,
			expStage: 2,
		},

		"Starting a running simulator should not restart it.": {
			draws: []int{15},
			run: func(s progress.Simulator) progress.Simulator {
				s, _ = s.Start().Tick()
				return s.Start()
			},
			expState: progress.StateRunning,
			expPct:   20,
			expStage: 1,
		},

		"Starting a cancelled simulator should begin a fresh run.": {
			draws: []int{15},
			run: func(s progress.Simulator) progress.Simulator {
				s, _ = s.Start().Tick()
				return s.Cancel().Start()
			},
			expState: progress.StateRunning,
			expPct:   0,
			expStage: 0,
		},

		"Cancelling a completed simulator should keep it complete.": {
			draws: []int{15},
			run: func(s progress.Simulator) progress.Simulator {
				s = s.Start()
				for i := 0; i < 5; i++ {
					s, _ = s.Tick()
				}
				return s.Cancel()
			},
			expState: progress.StateComplete,
			expPct:   100,
			expStage: 4,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			snap := test.run(newSimulator(t, test.draws...)).Snapshot()

			assert.Equal(test.expState, snap.State)
			assert.Equal(test.expPct, snap.Percent)
			assert.Equal(test.expStage, snap.StageIndex)
			assert.Equal(progress.DefaultStages[test.expStage], snap.Stage)
			assert.Equal(test.expState == progress.StateRunning, snap.Running())
		})
	}
}

func TestSimulatorReportsStageChangesOnlyOnNewIndex(t *testing.T) {
	sim := newSimulator(t, 15).Start()

	var changes []bool
	for sim.State() == progress.StateRunning {
		var changed bool
		sim, changed = sim.Tick()
		changes = append(changes, changed)
	}

	// 20, 40, 60, 80 each enter a new stage; 100 stays on the last one.
	assert.Equal(t, []bool{true, true, true, true, false}, changes)
}

func TestSimulatorTickDoesNotMutateReceiver(t *testing.T) {
	sim := newSimulator(t, 15).Start()
	next, _ := sim.Tick()

	assert.Equal(t, 0, sim.Snapshot().Percent)
	assert.Equal(t, 20, next.Snapshot().Percent)
}

func TestSimulatorMinimumIncrementsTerminateWithinBound(t *testing.T) {
	sim := newSimulator(t, 0).Start()
	maxTicks := sim.Config().MaxTicks()
	require.Equal(t, 20, maxTicks)

	ticks := 0
	for sim.State() == progress.StateRunning {
		sim, _ = sim.Tick()
		ticks++
		require.LessOrEqual(t, ticks, maxTicks)
	}
	assert.Equal(t, 20, ticks)
}

func TestSimulatorRandomRunsAreMonotonicAndBounded(t *testing.T) {
	rnd := rand.New(rand.NewPCG(42, 7))
	sim, err := progress.NewSimulator(progress.Config{Random: rnd})
	require.NoError(t, err)

	for run := 0; run < 200; run++ {
		sim = sim.Start()
		prev := sim.Snapshot()
		ticks := 0
		for sim.State() == progress.StateRunning {
			sim, _ = sim.Tick()
			cur := sim.Snapshot()
			ticks++

			require.GreaterOrEqual(t, cur.Percent, prev.Percent)
			require.LessOrEqual(t, cur.Percent, progress.MaxPercent)
			require.GreaterOrEqual(t, cur.StageIndex, prev.StageIndex)
			require.Equal(t, progress.StageIndex(cur.Percent, cur.StageCount), cur.StageIndex)
			prev = cur
		}
		require.LessOrEqual(t, ticks, sim.Config().MaxTicks())
		require.Equal(t, progress.StateComplete, sim.State())
	}
}

func TestSimulatorDuplicateLabelsUseIndex(t *testing.T) {
	stages := []progress.Stage{{Label: "Working"}, {Label: "Working"}, {Label: "Done"}}
	sim, err := progress.NewSimulator(progress.Config{Stages: stages, Random: &fixedRandom{draws: []int{15}}})
	require.NoError(t, err)

	sim = sim.Start()
	sim, _ = sim.Tick() // 20% -> stage 0
	sim, _ = sim.Tick() // 40% -> stage 1, same label
	sim, changed := sim.Tick()

	assert.False(t, changed) // 60% -> still stage 1
	assert.Equal(t, 1, sim.Snapshot().StageIndex)
}

func TestNewSimulatorValidation(t *testing.T) {
	tests := map[string]struct {
		cfg    progress.Config
		expErr bool
	}{
		"Defaults should be valid.": {
			cfg: progress.Config{},
		},

		"Custom bounds should be valid.": {
			cfg: progress.Config{MinIncrement: 1, MaxIncrement: 1},
		},

		"Empty stage list should fail.": {
			cfg:    progress.Config{Stages: []progress.Stage{}},
			expErr: true,
		},

		"Zero minimum increment should fail.": {
			cfg:    progress.Config{MinIncrement: 0, MaxIncrement: 10},
			expErr: true,
		},

		"Max below min should fail.": {
			cfg:    progress.Config{MinIncrement: 10, MaxIncrement: 5},
			expErr: true,
		},

		"Max above 100 should fail.": {
			cfg:    progress.Config{MinIncrement: 10, MaxIncrement: 101},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := progress.NewSimulator(test.cfg)
			if test.expErr {
				assert.True(t, errors.Is(err, domain.ErrNotValid))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
