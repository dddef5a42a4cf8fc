package pie

import (
	"math"

	"gioui.org/f32"
	"git.sr.ht/~whereswaldon/statcharts/chart"
)

// descriptionFlipFactor pulls flipped labels slightly towards the center
// to compensate for the text baseline sitting below the anchor.
const descriptionFlipFactor = -0.92

// Anchor describes where a label is drawn: centered on the point Distance
// below the chart center, after rotating the canvas clockwise by Rotation
// degrees around the center. Rotation is chosen so text never renders
// upside down.
type Anchor struct {
	Rotation float64
	Distance float64
}

// Offset returns the anchor point relative to the chart center.
func (a Anchor) Offset() f32.Point {
	rad := a.Rotation * math.Pi / 180
	return f32.Point{
		X: float32(-a.Distance * math.Sin(rad)),
		Y: float32(a.Distance * math.Cos(rad)),
	}
}

// Radians returns Rotation in radians, as expected by f32.Affine2D.
func (a Anchor) Radians() float32 {
	return float32(a.Rotation * math.Pi / 180)
}

func anchorAt(bearing, distance float64) Anchor {
	// A label drawn below the center points at 180 degrees.
	rotation := bearing - 180
	if rotation <= -180 {
		rotation += 360
	}
	if math.Abs(rotation) > 90 {
		return Anchor{
			Rotation: chart.NormalizeDegrees(rotation + 180),
			Distance: distance * descriptionFlipFactor,
		}
	}
	return Anchor{Rotation: rotation, Distance: distance}
}

// LabelAnchor places the percentage label of arc halfway across the ring
// between innerRadius and radius.
func LabelAnchor(arc Arc, radius, innerRadius float64) Anchor {
	return anchorAt(arc.MidAngle(), radius-(radius-innerRadius)/2)
}

// DescriptionAnchor places the "label: value" text of a selected arc just
// outside the pie.
func DescriptionAnchor(arc Arc, radius float64) Anchor {
	return anchorAt(arc.MidAngle(), radius*1.3)
}

// HighlightBearings returns the bearings of the two radial bars drawn
// along the edges of a selected arc.
func HighlightBearings(arc Arc) [2]float64 {
	return [2]float64{
		chart.NormalizeDegrees(arc.StartAngle),
		chart.NormalizeDegrees(arc.EndAngle()),
	}
}
