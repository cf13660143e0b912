package swipe

import (
	"math"
	"time"
)

// revealFraction is the share of a side a release has to cross to change state.
const revealFraction = 0.5

// Release describes a finished gesture for threshold resolution.
type Release struct {
	// Prior is the stable state before the gesture.
	Prior  StableState
	Offset float64
	// Velocity is in offset units per millisecond, signed like the offset.
	Velocity float64
}

// Resolution is the outcome of a release.
type Resolution struct {
	State StableState
	// Zone is set when the release itself fires an action.
	Zone    *ActionZone
	Trigger bool
}

// Velocity estimates the release velocity from the total displacement.
func Velocity(dx float64, elapsed time.Duration) float64 {
	ms := float64(elapsed) / float64(time.Millisecond)
	if ms <= 0 {
		return 0
	}
	return dx / ms
}

// Resolve decides where a released row goes. flickVelocity is the speed
// above which the release direction wins over the geometric thresholds.
func Resolve(l Layout, r Release, flickVelocity float64) Resolution {
	side := offsetSide(r.Offset)
	m := magnitude(r.Offset, side)
	flickInto := flickVelocity > 0 && m > 0 && r.Velocity*side.sign() > flickVelocity
	priorSide, revealed := r.Prior.revealedOn()

	if fz, ok := l.ForceZone(side); ok && m > l.force {
		return trigger(fz)
	}

	if l.Has(side) && !l.Sticky(side) {
		inner := l.side(side)[0].zone
		if r.Prior == Idle && (m >= revealFraction*inner.Width || flickInto) {
			return trigger(inner)
		}
		if !revealed {
			return Resolution{State: Idle}
		}
	}

	if l.Has(side) && l.Sticky(side) && !(revealed && priorSide == side) {
		if m > revealFraction*l.Total(side) || flickInto {
			return Resolution{State: revealedState(side)}
		}
	}

	if revealed {
		back := magnitude(r.Offset, priorSide)
		flickBack := flickVelocity > 0 && -r.Velocity*priorSide.sign() > flickVelocity
		if !l.Has(priorSide) || back < revealFraction*l.Total(priorSide) || flickBack {
			return Resolution{State: Idle}
		}
	}

	return Resolution{State: r.Prior}
}

func trigger(z ActionZone) Resolution {
	return Resolution{State: Idle, Zone: &z, Trigger: true}
}

// Claim is the horizontal/vertical decision for a gesture.
type Claim int

const (
	ClaimPending Claim = iota
	ClaimHorizontal
	ClaimYielded
)

// Decide applies the tie-break to the first move with any displacement.
// A gesture is horizontal only if it moves more across than down and
// beyond the jitter threshold.
func Decide(dx, dy, jitter float64) Claim {
	if dx == 0 && dy == 0 {
		return ClaimPending
	}
	if math.Abs(dx) > math.Abs(dy) && math.Abs(dx) > jitter {
		return ClaimHorizontal
	}
	return ClaimYielded
}
