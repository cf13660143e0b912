// Package swipe implements the per-row swipe-reveal engine: geometry,
// release thresholds, drag sessions, spring settling and action dispatch.
//
// Offsets are signed. A negative offset is a leftward drag and reveals
// SideLeft zones, a positive offset reveals SideRight zones.
package swipe

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidZone indicates a zone definition that cannot be laid out.
	ErrInvalidZone = errors.New("invalid action zone")
	// ErrInvalidThreshold indicates a force threshold that does not escalate past the zones.
	ErrInvalidThreshold = errors.New("invalid force threshold")
	// ErrInvalidOptions indicates a malformed engine constant.
	ErrInvalidOptions = errors.New("invalid swipe options")
	// ErrCollapsing is returned by ForceState while a row collapses after an action.
	ErrCollapsing = errors.New("row is collapsing after an action")
)

// Side identifies which drag direction reveals a zone.
type Side int

const (
	// SideLeft zones are revealed by dragging the row to the left.
	SideLeft Side = iota
	// SideRight zones are revealed by dragging the row to the right.
	SideRight
)

func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// sign returns the offset sign that moves into the side.
func (s Side) sign() float64 {
	if s == SideRight {
		return 1
	}
	return -1
}

// StableState is the resting state of a row between gestures.
type StableState int

const (
	Idle StableState = iota
	RevealedLeft
	RevealedRight
)

func (s StableState) String() string {
	switch s {
	case RevealedLeft:
		return "revealed-left"
	case RevealedRight:
		return "revealed-right"
	default:
		return "idle"
	}
}

// revealedOn reports the side a state rests on.
func (s StableState) revealedOn() (Side, bool) {
	switch s {
	case RevealedLeft:
		return SideLeft, true
	case RevealedRight:
		return SideRight, true
	default:
		return SideLeft, false
	}
}

func revealedState(side Side) StableState {
	if side == SideRight {
		return RevealedRight
	}
	return RevealedLeft
}

// ActionZone is one action revealed behind a row.
type ActionZone struct {
	// ID names the zone for taps and availability toggles.
	ID    string
	Side  Side
	Width float64
	Label string
	// OnTrigger runs the action for the row subject. It is called before the
	// row starts collapsing, so it should hand slow work off to the host.
	OnTrigger func(subject any)
	// AfterSettle runs once the row finished collapsing back to Idle after
	// the action fired.
	AfterSettle func(subject any)
	// RequiresConfirmation gates taps behind the session Confirmer.
	RequiresConfirmation bool
	// StickyReveal keeps the side open after release. Non-sticky zones fire
	// on release instead of resting revealed.
	StickyReveal bool
	// Force marks the zone fired by dragging past the force threshold.
	Force bool
	// Available reports whether the zone currently exists.
	Available bool
}

func validateZones(zones []ActionZone, forceThreshold float64) error {
	seen := make(map[string]bool, len(zones))
	forceCount := map[Side]int{}
	sticky := map[Side]map[bool]bool{SideLeft: {}, SideRight: {}}
	totals := map[Side]float64{}

	for i, z := range zones {
		if strings.TrimSpace(z.ID) == "" {
			return fmt.Errorf("zone %d: empty id: %w", i, ErrInvalidZone)
		}
		if seen[z.ID] {
			return fmt.Errorf("zone %q: duplicate id: %w", z.ID, ErrInvalidZone)
		}
		seen[z.ID] = true
		if z.Side != SideLeft && z.Side != SideRight {
			return fmt.Errorf("zone %q: unknown side %d: %w", z.ID, z.Side, ErrInvalidZone)
		}
		if z.Width <= 0 {
			return fmt.Errorf("zone %q: width must be positive, got %v: %w", z.ID, z.Width, ErrInvalidZone)
		}
		sticky[z.Side][z.StickyReveal] = true
		totals[z.Side] += z.Width
		if z.Force {
			if !z.StickyReveal {
				return fmt.Errorf("zone %q: force zones must be sticky: %w", z.ID, ErrInvalidZone)
			}
			forceCount[z.Side]++
		}
	}

	for _, side := range []Side{SideLeft, SideRight} {
		if len(sticky[side]) > 1 {
			return fmt.Errorf("%s side mixes sticky and non-sticky zones: %w", side, ErrInvalidZone)
		}
		if forceCount[side] > 1 {
			return fmt.Errorf("%s side has %d force zones: %w", side, forceCount[side], ErrInvalidZone)
		}
		if forceCount[side] == 0 {
			continue
		}
		if forceThreshold <= 0 {
			return fmt.Errorf("%s side has a force zone but no threshold: %w", side, ErrInvalidThreshold)
		}
		// Checked against the full width so toggling availability never breaks it.
		if forceThreshold <= totals[side] {
			return fmt.Errorf("threshold %v must exceed %s zone width %v: %w", forceThreshold, side, totals[side], ErrInvalidThreshold)
		}
	}
	return nil
}
