package progress

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/waabox/auditdeck/internal/domain"
)

const (
	// MaxPercent is the terminal percentage of a run.
	MaxPercent = 100

	defaultMinIncrement = 5
	defaultMaxIncrement = 20
	defaultTickInterval = 300 * time.Millisecond
)

// RandomSource draws the pseudo-random part of each tick increment.
// *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	// IntN returns a value in [0, n).
	IntN(n int) int
}

// Config is the simulator configuration.
type Config struct {
	Stages       []Stage
	MinIncrement int
	MaxIncrement int
	TickInterval time.Duration
	// Random defaults to a time-seeded PCG source.
	Random RandomSource
}

func (c *Config) defaults() error {
	if c.Stages == nil {
		c.Stages = DefaultStages
	}
	if c.MinIncrement == 0 && c.MaxIncrement == 0 {
		c.MinIncrement = defaultMinIncrement
		c.MaxIncrement = defaultMaxIncrement
	}
	if c.TickInterval == 0 {
		c.TickInterval = defaultTickInterval
	}
	if c.Random == nil {
		now := uint64(time.Now().UnixNano())
		c.Random = rand.New(rand.NewPCG(now, now>>1))
	}

	return c.Validate()
}

// Validate checks the configuration. A run must always be able to reach
// MaxPercent, so increments have to be strictly positive.
func (c Config) Validate() error {
	if len(c.Stages) == 0 {
		return fmt.Errorf("at least one stage is required: %w", domain.ErrNotValid)
	}
	if c.MinIncrement <= 0 {
		return fmt.Errorf("min increment must be positive, got %d: %w", c.MinIncrement, domain.ErrNotValid)
	}
	if c.MaxIncrement < c.MinIncrement {
		return fmt.Errorf("max increment %d is lower than min increment %d: %w", c.MaxIncrement, c.MinIncrement, domain.ErrNotValid)
	}
	if c.MaxIncrement > MaxPercent {
		return fmt.Errorf("max increment must be at most %d, got %d: %w", MaxPercent, c.MaxIncrement, domain.ErrNotValid)
	}
	if c.TickInterval < 0 {
		return fmt.Errorf("tick interval must not be negative: %w", domain.ErrNotValid)
	}
	return nil
}

// MaxTicks is the upper bound of ticks a run needs to reach MaxPercent from 0.
func (c Config) MaxTicks() int {
	if c.MinIncrement <= 0 {
		return 0
	}
	return (MaxPercent + c.MinIncrement - 1) / c.MinIncrement
}
