package swipe

import "math"

const (
	// maxDarken is how much a zone background darkens at the force threshold.
	maxDarken = 0.35
	// maxIconScale is the icon scale at the force threshold.
	maxIconScale = 1.3
)

// placedZone is an available zone with its position on its side.
type placedZone struct {
	zone ActionZone
	// start is the distance from the row edge where the zone begins.
	start float64
}

// Layout is the resolved geometry of the available zones.
type Layout struct {
	left  []placedZone
	right []placedZone
	// Force threshold, zero when no side escalates.
	force         float64
	maxOverscroll float64
}

// NewLayout places the available zones. Unavailable zones take no room.
func NewLayout(zones []ActionZone, forceThreshold, maxOverscroll float64) Layout {
	l := Layout{force: forceThreshold, maxOverscroll: maxOverscroll}
	var leftW, rightW float64
	for _, z := range zones {
		if !z.Available {
			continue
		}
		if z.Side == SideRight {
			l.right = append(l.right, placedZone{zone: z, start: rightW})
			rightW += z.Width
			continue
		}
		l.left = append(l.left, placedZone{zone: z, start: leftW})
		leftW += z.Width
	}
	return l
}

func (l Layout) side(s Side) []placedZone {
	if s == SideRight {
		return l.right
	}
	return l.left
}

// Total returns the summed width of the available zones on a side.
func (l Layout) Total(s Side) float64 {
	zones := l.side(s)
	if len(zones) == 0 {
		return 0
	}
	last := zones[len(zones)-1]
	return last.start + last.zone.Width
}

// Has reports whether any zone is available on a side.
func (l Layout) Has(s Side) bool {
	return len(l.side(s)) > 0
}

// Sticky reports whether releasing into the side rests revealed.
func (l Layout) Sticky(s Side) bool {
	zones := l.side(s)
	return len(zones) > 0 && zones[0].zone.StickyReveal
}

// Zones returns the available zones of a side, innermost first.
func (l Layout) Zones(s Side) []ActionZone {
	zones := l.side(s)
	out := make([]ActionZone, len(zones))
	for i, p := range zones {
		out[i] = p.zone
	}
	return out
}

// ForceZone returns the available force zone on a side.
func (l Layout) ForceZone(s Side) (ActionZone, bool) {
	if l.force <= 0 {
		return ActionZone{}, false
	}
	for _, p := range l.side(s) {
		if p.zone.Force {
			return p.zone, true
		}
	}
	return ActionZone{}, false
}

// Zone looks up an available zone by ID.
func (l Layout) Zone(id string) (ActionZone, bool) {
	if p, ok := l.placed(id); ok {
		return p.zone, true
	}
	return ActionZone{}, false
}

func (l Layout) placed(id string) (placedZone, bool) {
	for _, zones := range [][]placedZone{l.left, l.right} {
		for _, p := range zones {
			if p.zone.ID == id {
				return p, true
			}
		}
	}
	return placedZone{}, false
}

// Limit is the furthest the row may travel into a side, overscroll included.
func (l Layout) Limit(s Side) float64 {
	if _, ok := l.ForceZone(s); ok {
		return l.force + l.maxOverscroll
	}
	return l.Total(s)
}

// Clamp bounds an offset to the travel permitted by the layout.
func (l Layout) Clamp(offset float64) float64 {
	return clamp(offset, -l.Limit(SideLeft), l.Limit(SideRight))
}

// RestOffset is the offset a stable state rests at.
func (l Layout) RestOffset(s StableState) float64 {
	side, ok := s.revealedOn()
	if !ok {
		return 0
	}
	return side.sign() * l.Total(side)
}

// Reachable reports whether a stable state can rest with the current zones.
func (l Layout) Reachable(s StableState) bool {
	side, ok := s.revealedOn()
	if !ok {
		return true
	}
	return l.Has(side) && l.Sticky(side)
}

// magnitude returns how far the offset travelled into a side, zero when on the other side.
func magnitude(offset float64, s Side) float64 {
	return math.Max(0, offset*s.sign())
}

// offsetSide returns the side an offset is on.
func offsetSide(offset float64) Side {
	if offset > 0 {
		return SideRight
	}
	return SideLeft
}

// VisibleWidth returns how much of the zone is uncovered at the offset.
func (l Layout) VisibleWidth(id string, offset float64) float64 {
	p, ok := l.placed(id)
	if !ok {
		return 0
	}
	return clamp(magnitude(offset, p.zone.Side)-p.start, 0, p.zone.Width)
}

// Interpolate maps x through piecewise-linear breakpoints. Outside the
// input range the output is held at the nearest end.
func Interpolate(in, out []float64, x float64) float64 {
	n := len(in)
	if n == 0 || n != len(out) {
		return 0
	}
	if n == 1 || x <= in[0] {
		return out[0]
	}
	if x >= in[n-1] {
		return out[n-1]
	}
	for i := 1; i < n; i++ {
		if x > in[i] {
			continue
		}
		span := in[i] - in[i-1]
		if span <= 0 {
			return out[i]
		}
		t := (x - in[i-1]) / span
		return out[i-1] + t*(out[i]-out[i-1])
	}
	return out[n-1]
}

// ZoneStyle holds the interpolated visuals of one zone for a frame.
type ZoneStyle struct {
	ID      string
	Side    Side
	Visible float64
	Opacity float64
	// Darken is the 0..1 amount the background moves toward black.
	Darken    float64
	IconScale float64
	// Grow is the share of the side the zone occupies.
	Grow float64
}

// RowStyle holds the per-frame visuals of a row and its zones.
type RowStyle struct {
	Offset float64
	// CornerRadius is the rounding left on the edge being revealed.
	CornerRadius float64
	Zones        []ZoneStyle
}

// Styles interpolates the visual state for an offset. radius is the resting
// corner radius of the row edge.
func (l Layout) Styles(offset, radius float64) RowStyle {
	rs := RowStyle{Offset: offset, CornerRadius: radius}
	active := offsetSide(offset)
	if total := l.Total(active); total > 0 {
		rs.CornerRadius = Interpolate([]float64{0, total}, []float64{radius, 0}, magnitude(offset, active))
	}

	for _, side := range []Side{SideLeft, SideRight} {
		zones := l.side(side)
		total := l.Total(side)
		m := magnitude(offset, side)
		force, hasForce := l.ForceZone(side)
		for _, p := range zones {
			zs := ZoneStyle{
				ID:        p.zone.ID,
				Side:      side,
				Visible:   clamp(m-p.start, 0, p.zone.Width),
				Opacity:   Interpolate([]float64{p.start, p.start + p.zone.Width/2}, []float64{0, 1}, m),
				IconScale: 1,
				Grow:      p.zone.Width / total,
			}
			if hasForce {
				escalate := []float64{total, l.force}
				share := p.zone.Width / total
				if p.zone.ID == force.ID {
					zs.Darken = Interpolate(escalate, []float64{0, maxDarken}, m)
					zs.IconScale = Interpolate(escalate, []float64{1, maxIconScale}, m)
					zs.Grow = Interpolate(escalate, []float64{share, 1}, m)
				} else {
					zs.Grow = Interpolate(escalate, []float64{share, 0}, m)
				}
			}
			rs.Zones = append(rs.Zones, zs)
		}
	}
	return rs
}

// HitTest returns the zone under position x of a row that is width wide,
// x measured from the row's leading edge. SideRight zones sit at the
// leading edge, SideLeft zones at the trailing edge.
func (l Layout) HitTest(offset, width, x float64) (ActionZone, bool) {
	side := offsetSide(offset)
	m := magnitude(offset, side)
	if m <= 0 || x < 0 || x >= width {
		return ActionZone{}, false
	}
	// distance from the edge the side is revealed from
	d := x
	if side == SideLeft {
		d = width - 1 - x
	}
	if d >= m {
		return ActionZone{}, false
	}
	// Zones scale together when the row is pulled past the side total.
	scale := 1.0
	if total := l.Total(side); m > total && total > 0 {
		scale = m / total
	}
	for _, p := range l.side(side) {
		if d >= p.start*scale && d < (p.start+p.zone.Width)*scale {
			return p.zone, true
		}
	}
	return ActionZone{}, false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
