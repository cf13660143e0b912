package swipe

import (
	"fmt"
	"time"
)

// Phase is the coarse gesture state of a session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseSettling
)

func (p Phase) String() string {
	switch p {
	case PhaseDragging:
		return "dragging"
	case PhaseSettling:
		return "settling"
	default:
		return "idle"
	}
}

// MoveResult tells the host what happened to a move event.
type MoveResult int

const (
	// MovePending means the gesture has not moved enough to be classified.
	MovePending MoveResult = iota
	// MoveClaimed means the row owns the gesture and the offset changed.
	MoveClaimed
	// MoveYielded means the gesture belongs to the host, e.g. for scrolling.
	MoveYielded
	// MoveIgnored means no gesture is active on the row.
	MoveIgnored
)

// Logger is the logging surface the engine writes to.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}

// Options configures a session.
type Options struct {
	Zones []ActionZone
	// ForceThreshold is the offset magnitude that fires a side's force zone.
	// Zero disables force triggering.
	ForceThreshold float64
	// MaxOverscroll bounds how far past the force threshold a row may travel.
	MaxOverscroll float64
	// JitterThreshold is the horizontal travel below which a gesture yields.
	JitterThreshold float64
	// FlickVelocity is in units per millisecond. Zero disables flicks.
	FlickVelocity float64
	// CornerRadius is the resting radius of the row edges.
	CornerRadius float64
	Spring       SpringConfig
	InitialState StableState
	Confirmer    Confirmer
	Logger       Logger

	OnStableStateChanged func(state StableState)
	OnActionTriggered    func(zone ActionZone, subject any)
}

// DefaultOptions returns the engine constants with no zones.
func DefaultOptions() Options {
	return Options{
		MaxOverscroll:   40,
		JitterThreshold: 4,
		FlickVelocity:   0.6,
		CornerRadius:    12,
		Spring:          DefaultSpringConfig(),
	}
}

func (o Options) validate() error {
	if o.ForceThreshold < 0 {
		return fmt.Errorf("force threshold must not be negative, got %v: %w", o.ForceThreshold, ErrInvalidThreshold)
	}
	if o.MaxOverscroll < 0 || o.JitterThreshold < 0 || o.FlickVelocity < 0 || o.CornerRadius < 0 {
		return fmt.Errorf("overscroll, jitter, flick velocity and radius must not be negative: %w", ErrInvalidOptions)
	}
	if err := o.Spring.validate(); err != nil {
		return err
	}
	if o.Confirmer == nil {
		for _, z := range o.Zones {
			if z.RequiresConfirmation {
				return fmt.Errorf("zone %q requires confirmation but no confirmer is set: %w", z.ID, ErrInvalidOptions)
			}
		}
	}
	return validateZones(o.Zones, o.ForceThreshold)
}

// Session is the swipe state of one row. It is not safe for concurrent use;
// the host serializes gesture and frame callbacks for a row.
type Session struct {
	opts     Options
	zones    []ActionZone
	layout   Layout
	subject  any
	animator *Animator
	disp     *dispatcher
	log      Logger

	phase         Phase
	stable        StableState
	offset        float64
	offsetAtGrant float64
	claim         Claim
	// heading is the state the current or interrupted settle is going to.
	heading StableState

	lastDX, lastDY float64
	lastElapsed    time.Duration
	closed         bool
}

// NewSession validates the options and returns an Idle session for subject.
func NewSession(opts Options, subject any) (*Session, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	s := &Session{
		opts:     opts,
		zones:    append([]ActionZone(nil), opts.Zones...),
		subject:  subject,
		animator: NewAnimator(opts.Spring),
		log:      opts.Logger,
	}
	if s.log == nil {
		s.log = nopLogger{}
	}
	s.layout = NewLayout(s.zones, opts.ForceThreshold, opts.MaxOverscroll)
	if !s.layout.Reachable(opts.InitialState) {
		return nil, fmt.Errorf("initial state %s has no sticky zones: %w", opts.InitialState, ErrInvalidOptions)
	}
	s.stable = opts.InitialState
	s.heading = s.stable
	s.offset = s.layout.RestOffset(s.stable)
	s.disp = &dispatcher{session: s, confirmer: opts.Confirmer}
	return s, nil
}

// Subject returns the row value passed to zone callbacks.
func (s *Session) Subject() any { return s.subject }

// Offset is the live offset to render, during drags and settles alike.
func (s *Session) Offset() float64 { return s.offset }

// OffsetAtGrant is the offset captured when the current gesture started.
func (s *Session) OffsetAtGrant() float64 { return s.offsetAtGrant }

// Stable returns the last settled state.
func (s *Session) Stable() StableState { return s.stable }

// Phase returns the coarse gesture state.
func (s *Session) Phase() Phase { return s.phase }

// Layout returns the geometry of the currently available zones.
func (s *Session) Layout() Layout { return s.layout }

// Animating reports whether the host should keep delivering frames.
func (s *Session) Animating() bool { return !s.closed && s.phase == PhaseSettling }

// Closed reports whether the session was torn down.
func (s *Session) Closed() bool { return s.closed }

// Styles interpolates the visuals for the current offset.
func (s *Session) Styles() RowStyle {
	return s.layout.Styles(s.offset, s.opts.CornerRadius)
}

// Grant starts a gesture. A settle in flight is cancelled and the gesture
// continues from its current value. Returns false when the row cannot be
// grabbed: it is closed or collapsing after an action.
func (s *Session) Grant() bool {
	if s.closed {
		return false
	}
	if s.phase == PhaseSettling {
		if !s.animator.Interruptible() {
			return false
		}
		s.offset = s.animator.Cancel()
		s.log.Debug("swipe settle interrupted", "offset", s.offset)
	} else {
		s.heading = s.stable
	}
	s.phase = PhaseDragging
	s.offsetAtGrant = s.offset
	s.claim = ClaimPending
	s.lastDX, s.lastDY, s.lastElapsed = 0, 0, 0
	return true
}

// Move applies the displacement since the gesture started.
func (s *Session) Move(dx, dy float64) MoveResult {
	if s.closed || s.phase != PhaseDragging {
		return MoveIgnored
	}
	s.lastDX, s.lastDY = dx, dy
	if s.claim == ClaimPending {
		s.claim = Decide(dx, dy, s.opts.JitterThreshold)
		if s.claim == ClaimYielded {
			s.log.Debug("swipe gesture yielded", "dx", dx, "dy", dy)
		}
	}
	switch s.claim {
	case ClaimHorizontal:
		s.offset = s.layout.Clamp(s.offsetAtGrant + dx)
		return MoveClaimed
	case ClaimYielded:
		return MoveYielded
	default:
		return MovePending
	}
}

// Release ends the gesture and starts settling toward the resolved state.
// A release past a trigger threshold fires the zone action.
func (s *Session) Release(dx, dy float64, elapsed time.Duration) Resolution {
	if s.closed || s.phase != PhaseDragging {
		return Resolution{State: s.stable}
	}
	if s.claim == ClaimPending {
		s.claim = Decide(dx, dy, s.opts.JitterThreshold)
	}
	if s.claim == ClaimHorizontal {
		s.offset = s.layout.Clamp(s.offsetAtGrant + dx)
	} else {
		s.settleTo(s.heading, true, nil)
		return Resolution{State: s.heading}
	}
	s.lastDX, s.lastDY, s.lastElapsed = dx, dy, elapsed

	res := Resolve(s.layout, Release{
		Prior:    s.stable,
		Offset:   s.offset,
		Velocity: Velocity(dx, elapsed),
	}, s.opts.FlickVelocity)
	s.log.Debug("swipe released",
		"offset", s.offset,
		"prior", s.stable.String(),
		"next", res.State.String(),
		"trigger", res.Trigger,
	)
	if res.Trigger && res.Zone != nil {
		s.disp.fire(*res.Zone, true)
		return res
	}
	s.settleTo(res.State, true, nil)
	return res
}

// Terminate handles a gesture cancelled by the system like a release at
// the last known position.
func (s *Session) Terminate() Resolution {
	return s.Release(s.lastDX, s.lastDY, s.lastElapsed)
}

// ForceState moves the row to a stable state regardless of gestures in
// progress. It is the hook callers use to compensate a failed action.
// While the row collapses after an action it returns ErrCollapsing and the
// collapse runs to completion.
func (s *Session) ForceState(state StableState) error {
	if s.closed {
		return nil
	}
	if !s.layout.Reachable(state) {
		return fmt.Errorf("cannot rest at %s: %w", state, ErrInvalidOptions)
	}
	target := s.layout.RestOffset(state)
	if s.phase == PhaseSettling && s.animator.Target() == target {
		return nil
	}
	if !s.animator.Interruptible() {
		return fmt.Errorf("force %s: %w", state, ErrCollapsing)
	}
	if s.phase == PhaseSettling {
		s.offset = s.animator.Cancel()
	}
	s.settleTo(state, true, nil)
	return nil
}

// SetZoneAvailable toggles a zone, e.g. when a row has nothing left to mark
// as read. A row resting on a side that lost its zones closes.
func (s *Session) SetZoneAvailable(id string, available bool) error {
	if s.closed {
		return nil
	}
	found := false
	for i := range s.zones {
		if s.zones[i].ID == id {
			s.zones[i].Available = available
			found = true
		}
	}
	if !found {
		return fmt.Errorf("zone %q: %w", id, ErrInvalidZone)
	}
	s.layout = NewLayout(s.zones, s.opts.ForceThreshold, s.opts.MaxOverscroll)
	lost := !s.layout.Reachable(s.stable) || !s.layout.Reachable(s.heading)
	if lost && s.phase != PhaseDragging && s.animator.Interruptible() {
		if s.phase == PhaseSettling {
			s.offset = s.animator.Cancel()
		}
		s.settleTo(Idle, true, nil)
	}
	return nil
}

// Tap fires a revealed zone, asking for confirmation first when the zone
// requires it.
func (s *Session) Tap(zoneID string) bool {
	if s.closed {
		return false
	}
	return s.disp.tap(zoneID)
}

// TapAt hit-tests x within a row of the given width and taps the zone under it.
func (s *Session) TapAt(x, width float64) (ActionZone, bool) {
	if s.closed || s.phase != PhaseIdle {
		return ActionZone{}, false
	}
	z, ok := s.layout.HitTest(s.offset, width, x)
	if !ok {
		return ActionZone{}, false
	}
	return z, s.disp.tap(z.ID)
}

// Tick advances the settle by one frame.
func (s *Session) Tick() {
	if !s.Animating() {
		return
	}
	pos, finished := s.animator.Step()
	if !finished {
		s.offset = pos
	}
}

// Close tears the session down. Pending settles, completion callbacks and
// confirmations are dropped.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.animator.Cancel()
	s.closed = true
	s.phase = PhaseIdle
}

// settleTo animates to the rest offset of state and commits it on arrival.
func (s *Session) settleTo(state StableState, interruptible bool, after func()) {
	target := s.layout.RestOffset(state)
	s.phase = PhaseSettling
	s.heading = state
	s.claim = ClaimPending
	s.animator.Start(s.offset, target, interruptible, func() {
		s.offset = target
		s.phase = PhaseIdle
		s.commit(state)
		if after != nil {
			after()
		}
	})
}

func (s *Session) commit(state StableState) {
	if s.stable == state {
		return
	}
	s.stable = state
	s.log.Debug("swipe stable state changed", "state", state.String())
	if s.opts.OnStableStateChanged != nil {
		s.opts.OnStableStateChanged(state)
	}
}
