package swipe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects the externally observable events of a session.
type recorder struct {
	states    []StableState
	triggered []string
	settled   []string
}

func (r *recorder) options(zones []ActionZone, force float64) Options {
	opts := DefaultOptions()
	opts.ForceThreshold = force
	opts.OnStableStateChanged = func(s StableState) { r.states = append(r.states, s) }
	opts.OnActionTriggered = func(z ActionZone, _ any) { r.triggered = append(r.triggered, z.ID) }
	for _, z := range zones {
		id := z.ID
		z.AfterSettle = func(any) { r.settled = append(r.settled, id) }
		opts.Zones = append(opts.Zones, z)
	}
	return opts
}

func newTestSession(t *testing.T, opts Options) *Session {
	t.Helper()
	s, err := NewSession(opts, "row")
	require.NoError(t, err)
	return s
}

// settle ticks until the session stops animating and returns the frame count.
func settle(t *testing.T, s *Session) int {
	t.Helper()
	frames := 0
	for s.Animating() {
		s.Tick()
		frames++
		require.Less(t, frames, 1000, "settle did not terminate")
	}
	return frames
}

func drag(s *Session, dx float64, elapsed time.Duration) Resolution {
	s.Grant()
	s.Move(dx/2, 0)
	s.Move(dx, 0)
	return s.Release(dx, 0, elapsed)
}

func deleteOnly() []ActionZone {
	return []ActionZone{{ID: "delete", Side: SideLeft, Width: 70, StickyReveal: true, Available: true}}
}

func TestScenarioSingleZoneRevealThenTap(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(t, rec.options(deleteOnly(), 0))

	res := drag(s, -40, 400*time.Millisecond)
	assert.Equal(t, RevealedLeft, res.State)
	assert.Equal(t, PhaseSettling, s.Phase())
	assert.Equal(t, Idle, s.Stable(), "stable state only changes once settled")

	frames := settle(t, s)
	assert.Less(t, frames, 20)
	assert.Equal(t, -70.0, s.Offset())
	assert.Equal(t, RevealedLeft, s.Stable())
	assert.Equal(t, []StableState{RevealedLeft}, rec.states)

	require.True(t, s.Tap("delete"))
	assert.Equal(t, []string{"delete"}, rec.triggered)
	settle(t, s)
	assert.Equal(t, Idle, s.Stable())
	assert.Equal(t, 0.0, s.Offset())
	assert.Equal(t, []string{"delete"}, rec.triggered)
	assert.Equal(t, []string{"delete"}, rec.settled)
}

func TestScenarioDualZoneForceTrigger(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(t, rec.options(dualZones()[:2], 200))

	s.Grant()
	require.Equal(t, MoveClaimed, s.Move(-220, 0))
	assert.Equal(t, -220.0, s.Offset())

	res := s.Release(-220, 0, 600*time.Millisecond)
	require.True(t, res.Trigger)
	assert.Equal(t, "delete", res.Zone.ID)
	assert.Equal(t, []string{"delete"}, rec.triggered, "fires on release, before settling")

	settle(t, s)
	assert.Equal(t, Idle, s.Stable())
	assert.Equal(t, 0.0, s.Offset())
	assert.Empty(t, rec.states, "no revealed state is ever observed")
	assert.Equal(t, []string{"delete"}, rec.triggered)
	assert.Equal(t, []string{"delete"}, rec.settled)
}

func TestScenarioFlickToActZone(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(t, rec.options(dualZones()[2:], 0))

	res := drag(s, 45, 300*time.Millisecond)
	require.True(t, res.Trigger)
	assert.Equal(t, Idle, res.State)

	settle(t, s)
	assert.Equal(t, Idle, s.Stable())
	assert.Equal(t, 0.0, s.Offset())
	assert.Empty(t, rec.states)
	assert.Equal(t, []string{"read"}, rec.triggered)
}

func TestScenarioSmallDragRestores(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(t, rec.options(deleteOnly(), 0))

	drag(s, -10, 200*time.Millisecond)
	settle(t, s)
	assert.Equal(t, Idle, s.Stable())
	assert.Equal(t, 0.0, s.Offset())

	drag(s, -50, 400*time.Millisecond)
	settle(t, s)
	require.Equal(t, RevealedLeft, s.Stable())

	drag(s, 10, 200*time.Millisecond)
	settle(t, s)
	assert.Equal(t, RevealedLeft, s.Stable())
	assert.Equal(t, -70.0, s.Offset())
	assert.Empty(t, rec.triggered)
}

func TestOffsetStaysWithinBounds(t *testing.T) {
	configs := []struct {
		name   string
		zones  []ActionZone
		force  float64
		lo, hi float64
	}{
		{"single", deleteOnly(), 0, -70, 0},
		{"dual with force", dualZones()[:2], 200, -240, 0},
		{"dual plus read", dualZones(), 200, -240, 80},
	}
	for _, cfg := range configs {
		t.Run(cfg.name, func(t *testing.T) {
			rec := &recorder{}
			s := newTestSession(t, rec.options(cfg.zones, cfg.force))
			for dx := -400.0; dx <= 400; dx += 13 {
				s.Grant()
				for step := 1.0; step <= 4; step++ {
					s.Move(dx*step/4, 0)
					assert.GreaterOrEqual(t, s.Offset(), cfg.lo)
					assert.LessOrEqual(t, s.Offset(), cfg.hi)
				}
				s.Release(dx, 0, time.Second)
				for s.Animating() {
					s.Tick()
					assert.GreaterOrEqual(t, s.Offset(), cfg.lo)
					assert.LessOrEqual(t, s.Offset(), cfg.hi)
				}
			}
		})
	}
}

func TestSmallReleasesNeverChangeState(t *testing.T) {
	for _, prior := range []StableState{Idle, RevealedLeft} {
		rec := &recorder{}
		opts := rec.options(deleteOnly(), 0)
		opts.InitialState = prior
		s := newTestSession(t, opts)
		start := s.Offset()

		for _, dx := range []float64{-30, -12, -5, 5, 12, 30} {
			s.Grant()
			s.Move(dx, 0)
			s.Release(dx, 0, time.Second)
			settle(t, s)
			assert.Equal(t, prior, s.Stable(), "dx=%v", dx)
			assert.Equal(t, start, s.Offset(), "dx=%v", dx)
		}
		assert.Empty(t, rec.states)
	}
}

func TestFlickRevealsWithoutCrossingHalf(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(t, rec.options(deleteOnly(), 0))

	drag(s, -20, 20*time.Millisecond)
	settle(t, s)
	assert.Equal(t, RevealedLeft, s.Stable())
}

func TestForceStateIsIdempotent(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(t, rec.options(deleteOnly(), 0))
	drag(s, -60, time.Second)
	settle(t, s)

	require.NoError(t, s.ForceState(Idle))
	settle(t, s)
	once := s.Offset()

	require.NoError(t, s.ForceState(Idle))
	settle(t, s)
	assert.Equal(t, once, s.Offset())
	assert.Equal(t, Idle, s.Stable())

	require.NoError(t, s.ForceState(RevealedLeft))
	require.NoError(t, s.ForceState(RevealedLeft))
	settle(t, s)
	assert.Equal(t, -70.0, s.Offset())
	assert.Equal(t, []StableState{RevealedLeft, Idle, RevealedLeft}, rec.states)

	assert.ErrorIs(t, s.ForceState(RevealedRight), ErrInvalidOptions)
}

func TestGrantWhileSettlingResumesFromLiveValue(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(t, rec.options(deleteOnly(), 0))

	drag(s, -40, time.Second)
	for i := 0; i < 5; i++ {
		s.Tick()
	}
	sampled := s.Offset()
	require.Greater(t, sampled, -70.0)
	require.Less(t, sampled, -40.0)

	require.True(t, s.Grant())
	assert.Equal(t, PhaseDragging, s.Phase())
	assert.Equal(t, sampled, s.OffsetAtGrant())
	assert.Equal(t, sampled, s.Offset())

	s.Tick()
	assert.Equal(t, sampled, s.Offset(), "cancelled settle no longer moves the row")

	s.Move(5, 0)
	assert.InDelta(t, sampled+5, s.Offset(), 1e-9)
}

func TestInterruptedSettleResumesWhenGestureYields(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(t, rec.options(deleteOnly(), 0))

	drag(s, -40, time.Second)
	s.Tick()
	s.Tick()

	require.True(t, s.Grant())
	assert.Equal(t, MoveYielded, s.Move(1, 12))
	assert.Equal(t, MoveYielded, s.Move(-30, 20), "a yielded gesture stays yielded")
	s.Release(-30, 20, time.Second)

	settle(t, s)
	assert.Equal(t, RevealedLeft, s.Stable())
	assert.Equal(t, -70.0, s.Offset())
}

func TestGrantRefusedWhileCollapsingAfterAction(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(t, rec.options(dualZones()[:2], 200))

	drag(s, -230, time.Second)
	require.True(t, s.Animating())
	assert.False(t, s.Grant())
	assert.Equal(t, MoveIgnored, s.Move(-10, 0))

	settle(t, s)
	assert.True(t, s.Grant())
}

func TestForceStateRefusedWhileCollapsingAfterAction(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(t, rec.options(dualZones()[:2], 200))

	drag(s, -120, time.Second)
	settle(t, s)
	require.True(t, s.Tap("leave"))
	s.Tick()

	err := s.ForceState(RevealedLeft)
	assert.ErrorIs(t, err, ErrCollapsing)
	assert.NoError(t, s.ForceState(Idle), "already heading to Idle")

	settle(t, s)
	assert.Equal(t, Idle, s.Stable())
	assert.Equal(t, 0.0, s.Offset())
	assert.Equal(t, []string{"leave"}, rec.settled)
}

func TestZoneToggleDuringCollapseKeepsCompletion(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(t, rec.options(dualZones(), 200))

	drag(s, -120, time.Second)
	settle(t, s)
	require.True(t, s.Tap("delete"))
	s.Tick()

	require.NoError(t, s.SetZoneAvailable("read", false))
	require.NoError(t, s.SetZoneAvailable("leave", false))
	assert.True(t, s.Animating())

	settle(t, s)
	assert.Equal(t, Idle, s.Stable())
	assert.Equal(t, []string{"delete"}, rec.settled)
}

func TestTerminateResolvesLikeRelease(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(t, rec.options(deleteOnly(), 0))

	s.Grant()
	s.Move(-50, 0)
	s.Terminate()
	settle(t, s)
	assert.Equal(t, RevealedLeft, s.Stable())

	s.Grant()
	s.Move(-2, 0)
	s.Move(-5, 0)
	s.Terminate()
	settle(t, s)
	assert.Equal(t, RevealedLeft, s.Stable())
	assert.Equal(t, -70.0, s.Offset())
}

func TestCloseDuringSettleDropsCallbacks(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(t, rec.options(dualZones()[:2], 200))

	drag(s, -230, time.Second)
	s.Tick()
	s.Close()

	assert.False(t, s.Animating())
	offset := s.Offset()
	s.Tick()
	assert.Equal(t, offset, s.Offset())
	assert.Empty(t, rec.settled)
	assert.False(t, s.Grant())
	assert.False(t, s.Tap("delete"))
	assert.NoError(t, s.ForceState(Idle))
}

func TestSessionsAreIndependent(t *testing.T) {
	recA, recB := &recorder{}, &recorder{}
	a := newTestSession(t, recA.options(deleteOnly(), 0))
	b := newTestSession(t, recB.options(deleteOnly(), 0))

	drag(a, -60, time.Second)
	frames := 0
	for a.Animating() {
		a.Tick()
		b.Tick()
		frames++
	}
	assert.Equal(t, RevealedLeft, a.Stable())
	assert.Equal(t, Idle, b.Stable())
	assert.Equal(t, 0.0, b.Offset())
	assert.Empty(t, recB.states)
	assert.Positive(t, frames)
}

func TestSetZoneAvailable(t *testing.T) {
	rec := &recorder{}
	zones := []ActionZone{
		{ID: "archive", Side: SideRight, Width: 60, StickyReveal: true, Available: true},
		{ID: "delete", Side: SideLeft, Width: 70, StickyReveal: true, Available: true},
	}
	s := newTestSession(t, rec.options(zones, 0))

	drag(s, 50, time.Second)
	settle(t, s)
	require.Equal(t, RevealedRight, s.Stable())

	require.NoError(t, s.SetZoneAvailable("archive", false))
	settle(t, s)
	assert.Equal(t, Idle, s.Stable())
	assert.Equal(t, 0.0, s.Offset())

	s.Grant()
	s.Move(50, 0)
	assert.Equal(t, 0.0, s.Offset(), "no travel into a side without zones")
	s.Release(50, 0, time.Second)
	settle(t, s)

	assert.ErrorIs(t, s.SetZoneAvailable("missing", true), ErrInvalidZone)
}

func TestNewSessionRejectsInvalidConfiguration(t *testing.T) {
	base := func(zones ...ActionZone) Options {
		o := DefaultOptions()
		o.Zones = zones
		return o
	}
	left := func(id string, w float64) ActionZone {
		return ActionZone{ID: id, Side: SideLeft, Width: w, StickyReveal: true, Available: true}
	}

	tests := []struct {
		name string
		opts func() Options
		err  error
	}{
		{"negative width", func() Options { return base(left("a", -5)) }, ErrInvalidZone},
		{"empty id", func() Options { return base(left("", 10)) }, ErrInvalidZone},
		{"duplicate id", func() Options { return base(left("a", 10), left("a", 10)) }, ErrInvalidZone},
		{"force zone without threshold", func() Options {
			z := left("a", 10)
			z.Force = true
			return base(z)
		}, ErrInvalidThreshold},
		{"threshold not past zones", func() Options {
			z := left("b", 80)
			z.Force = true
			o := base(left("a", 80), z)
			o.ForceThreshold = 160
			return o
		}, ErrInvalidThreshold},
		{"two force zones", func() Options {
			a, b := left("a", 10), left("b", 10)
			a.Force, b.Force = true, true
			o := base(a, b)
			o.ForceThreshold = 100
			return o
		}, ErrInvalidZone},
		{"mixed stickiness", func() Options {
			b := left("b", 10)
			b.StickyReveal = false
			return base(left("a", 10), b)
		}, ErrInvalidZone},
		{"negative jitter", func() Options {
			o := base(left("a", 10))
			o.JitterThreshold = -1
			return o
		}, ErrInvalidOptions},
		{"zero fps", func() Options {
			o := base(left("a", 10))
			o.Spring.FPS = 0
			return o
		}, ErrInvalidOptions},
		{"confirmation without confirmer", func() Options {
			z := left("a", 10)
			z.RequiresConfirmation = true
			return base(z)
		}, ErrInvalidOptions},
		{"unreachable initial state", func() Options {
			o := base(left("a", 10))
			o.InitialState = RevealedRight
			return o
		}, ErrInvalidOptions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSession(tt.opts(), nil)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
