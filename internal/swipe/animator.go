package swipe

import (
	"fmt"
	"math"

	"github.com/charmbracelet/harmonica"
)

const (
	// A settle finishes within half a unit of its target while moving slower
	// than settleVelocity units per second.
	settleDistance = 0.5
	settleVelocity = 25
	// maxSettleSeconds caps a settle so a badly tuned spring still terminates.
	maxSettleSeconds = 4
)

// SpringConfig tunes the settle spring.
type SpringConfig struct {
	FPS       int
	Frequency float64
	Damping   float64
}

// DefaultSpringConfig is critically damped and settles a reveal in about 280ms.
func DefaultSpringConfig() SpringConfig {
	return SpringConfig{FPS: 60, Frequency: 24, Damping: 1.0}
}

func (c SpringConfig) validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("spring fps must be positive, got %d: %w", c.FPS, ErrInvalidOptions)
	}
	if c.Frequency <= 0 {
		return fmt.Errorf("spring frequency must be positive, got %v: %w", c.Frequency, ErrInvalidOptions)
	}
	if c.Damping <= 0 {
		return fmt.Errorf("spring damping must be positive, got %v: %w", c.Damping, ErrInvalidOptions)
	}
	return nil
}

// Animator drives an offset toward a target with a damped spring, one
// frame per Step.
type Animator struct {
	spring        harmonica.Spring
	maxFrames     int
	pos, vel      float64
	target        float64
	frames        int
	active        bool
	interruptible bool
	done          func()
}

// NewAnimator builds an animator from a validated config.
func NewAnimator(cfg SpringConfig) *Animator {
	return &Animator{
		spring:    harmonica.NewSpring(harmonica.FPS(cfg.FPS), cfg.Frequency, cfg.Damping),
		maxFrames: cfg.FPS * maxSettleSeconds,
	}
}

// Start begins a settle from the current value. done runs once when the
// target is reached; a settle that starts on its target finishes before
// Start returns.
func (a *Animator) Start(from, target float64, interruptible bool, done func()) {
	a.pos = from
	a.vel = 0
	a.target = target
	a.frames = 0
	a.interruptible = interruptible
	a.done = done
	a.active = true
	if from == target {
		a.finish()
	}
}

// Step advances one frame and reports the new position.
func (a *Animator) Step() (pos float64, finished bool) {
	if !a.active {
		return a.pos, true
	}
	a.pos, a.vel = a.spring.Update(a.pos, a.vel, a.target)
	a.frames++
	if (math.Abs(a.pos-a.target) < settleDistance && math.Abs(a.vel) < settleVelocity) || a.frames >= a.maxFrames {
		a.finish()
		return a.pos, true
	}
	return a.pos, false
}

func (a *Animator) finish() {
	a.pos = a.target
	a.vel = 0
	a.active = false
	done := a.done
	a.done = nil
	if done != nil {
		done()
	}
}

// Cancel stops the settle where it is and returns the current value. The
// completion callback is dropped.
func (a *Animator) Cancel() float64 {
	a.active = false
	a.vel = 0
	a.done = nil
	return a.pos
}

// Active reports whether a settle is in flight.
func (a *Animator) Active() bool { return a.active }

// Interruptible reports whether a new gesture may cancel the settle.
func (a *Animator) Interruptible() bool { return !a.active || a.interruptible }

// Target returns the value the current settle is heading to.
func (a *Animator) Target() float64 { return a.target }

// Position returns the current animated value.
func (a *Animator) Position() float64 { return a.pos }
