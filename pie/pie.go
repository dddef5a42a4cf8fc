// Package pie computes the geometry of pie and donut charts: contiguous
// angular sweeps per segment, tap bearings and hit tests, and the anchors
// used to place percentage and description labels.
//
// All angles are in degrees, measured clockwise from 12 o'clock in screen
// space (y grows downwards).
package pie

import (
	"image/color"
	"math"

	"gioui.org/f32"
	"git.sr.ht/~whereswaldon/statcharts/chart"
)

// Segment is one category of a pie chart.
type Segment struct {
	Color color.NRGBA
	// Value is the weight of the segment and must be positive.
	Value    float64
	Label    string
	Selected bool
}

// Arc is the computed layout of one segment.
type Arc struct {
	StartAngle float64
	SweepAngle float64
	// Percentage is the segment's share of the total, rounded to the
	// nearest integer.
	Percentage int
}

// EndAngle returns StartAngle+SweepAngle.
func (a Arc) EndAngle() float64 {
	return a.StartAngle + a.SweepAngle
}

// MidAngle returns the bisector of the arc.
func (a Arc) MidAngle() float64 {
	return a.StartAngle + a.SweepAngle/2
}

// ShowPercentage reports whether the arc is wide enough to carry its
// percentage label.
func (a Arc) ShowPercentage() bool {
	return a.Percentage > 3
}

func total(op string, segments []Segment) (float64, error) {
	if len(segments) == 0 {
		return 0, chart.Invalid(op, "no segments")
	}
	var sum float64
	for i, s := range segments {
		if !(s.Value > 0) || math.IsInf(s.Value, 0) {
			return 0, chart.Invalid(op, "segment %d (%q) has non-positive value %v", i, s.Label, s.Value)
		}
		sum += s.Value
	}
	return sum, nil
}

// Layout assigns each segment a contiguous sweep in input order. The
// sweeps of all segments add up to 360 degrees.
func Layout(segments []Segment) ([]Arc, error) {
	sum, err := total("pie layout", segments)
	if err != nil {
		return nil, err
	}
	anglePerUnit := 360 / sum
	arcs := make([]Arc, len(segments))
	start := 0.0
	for i, s := range segments {
		sweep := s.Value * anglePerUnit
		arcs[i] = Arc{
			StartAngle: start,
			SweepAngle: sweep,
			Percentage: int(math.Round(s.Value / sum * 100)),
		}
		start += sweep
	}
	return arcs, nil
}

// HitTestSegment returns the index of the first segment whose cumulative
// angle range contains tapAngle. The angle is normalized to [0,360) first.
// Invalid segments never match.
func HitTestSegment(segments []Segment, tapAngle float64) (int, bool) {
	sum, err := total("pie hit test", segments)
	if err != nil {
		return -1, false
	}
	if math.IsNaN(tapAngle) || math.IsInf(tapAngle, 0) {
		return -1, false
	}
	tapAngle = chart.NormalizeDegrees(tapAngle)
	anglePerUnit := 360 / sum
	var cumulative float64
	for i, s := range segments {
		cumulative += s.Value * anglePerUnit
		if tapAngle < cumulative {
			return i, true
		}
	}
	// Rounding can leave the last cumulative angle just short of 360.
	return len(segments) - 1, true
}

// AngleFromTap returns the bearing of tap as seen from center, clockwise
// from 12 o'clock, in [0,360).
func AngleFromTap(center, tap f32.Point) float64 {
	dx := float64(tap.X - center.X)
	dy := float64(tap.Y - center.Y)
	return chart.NormalizeDegrees(math.Atan2(dx, -dy) * 180 / math.Pi)
}

// IsCenterHit is the quadrant approximation of a center cutout test: the
// tap counts as central if it lies within innerRadius of the center along
// both axes in the quadrant that tapAngle points into. The corners of the
// square circumscribing the cutout therefore also count; see
// [ContainsCenter] for the exact test.
func IsCenterHit(center, tap f32.Point, innerRadius, tapAngle float64) bool {
	r := float32(innerRadius)
	switch a := chart.NormalizeDegrees(tapAngle); {
	case a < 90:
		return tap.X < center.X+r && tap.Y > center.Y-r
	case a < 180:
		return tap.X < center.X+r && tap.Y < center.Y+r
	case a < 270:
		return tap.X > center.X-r && tap.Y < center.Y+r
	default:
		return tap.X > center.X-r && tap.Y > center.Y-r
	}
}

// ContainsCenter reports whether tap lies within innerRadius of center.
func ContainsCenter(center, tap f32.Point, innerRadius float64) bool {
	dx := float64(tap.X - center.X)
	dy := float64(tap.Y - center.Y)
	return math.Hypot(dx, dy) <= innerRadius
}

// CenterHitMode selects how taps on the center cutout are detected.
type CenterHitMode uint8

const (
	// CenterHitCircle uses Euclidean distance.
	CenterHitCircle CenterHitMode = iota
	// CenterHitQuadrant uses the quadrant bounding-box approximation.
	CenterHitQuadrant
)

func (m CenterHitMode) String() string {
	switch m {
	case CenterHitCircle:
		return "circle"
	case CenterHitQuadrant:
		return "quadrant"
	default:
		return "unknown"
	}
}

// Hit is the result of a tap on a pie chart.
type Hit struct {
	Center bool
	// Segment is the index of the tapped segment, or -1.
	Segment int
}

// HitTest resolves a tap into either a center hit or a segment hit.
func HitTest(segments []Segment, center, tap f32.Point, innerRadius float64, mode CenterHitMode) Hit {
	angle := AngleFromTap(center, tap)
	var central bool
	if mode == CenterHitQuadrant {
		central = IsCenterHit(center, tap, innerRadius, angle)
	} else {
		central = ContainsCenter(center, tap, innerRadius)
	}
	if central {
		return Hit{Center: true, Segment: -1}
	}
	idx, ok := HitTestSegment(segments, angle)
	if !ok {
		return Hit{Segment: -1}
	}
	return Hit{Segment: idx}
}
