// Package line projects one or more data series that share a y range onto
// a pixel viewport, derives the control points of the smoothed curve
// through them, lays out y axis labels and resolves taps to data points.
package line

import (
	"image/color"
	"math"

	"gioui.org/f32"
	"git.sr.ht/~whereswaldon/statcharts/chart"
)

// DataPoint is one sample of a series.
type DataPoint struct {
	// X orders the samples. Points are drawn at evenly spaced slots in
	// slice order, so X is informational.
	X     float64
	Y     float64
	Label string
}

// Series is one named line.
type Series struct {
	Points []DataPoint
	Color  color.NRGBA
	Label  string
}

// Validate checks the preconditions shared by every operation on a set of
// series: there is at least one series, every series has points, and all
// series have as many points as the first one, whose labels define the x
// axis.
func Validate(series []Series) error {
	const op = "line series"
	if len(series) == 0 {
		return chart.Invalid(op, "no series")
	}
	reference := len(series[0].Points)
	for i, s := range series {
		if len(s.Points) == 0 {
			return chart.Invalid(op, "series %d (%q) has no data points", i, s.Label)
		}
		if len(s.Points) != reference {
			return chart.Invalid(op, "series %d (%q) has %d points, reference series has %d", i, s.Label, len(s.Points), reference)
		}
		for j, p := range s.Points {
			if math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
				return chart.Invalid(op, "series %d point %d is not finite", i, j)
			}
		}
	}
	return nil
}

// ComputeYRange returns the smallest and largest y across every point of
// every series, so that all series share one scale.
func ComputeYRange(series []Series) (minY, maxY float64, err error) {
	if err := Validate(series); err != nil {
		return 0, 0, err
	}
	minY, maxY = series[0].Points[0].Y, series[0].Points[0].Y
	for _, s := range series {
		for _, p := range s.Points {
			minY = min(minY, p.Y)
			maxY = max(maxY, p.Y)
		}
	}
	return minY, maxY, nil
}

// Viewport is the pixel area that data is projected into.
type Viewport struct {
	// Left is the x of the left edge of the first label slot.
	Left float32
	// Top and Bottom are the pixel rows of the range maximum and minimum.
	Top, Bottom float32
	// SlotWidth is the horizontal space given to each data point.
	SlotWidth float32
}

// PlotHeight is the vertical extent of the plot.
func (v Viewport) PlotHeight() float32 {
	return v.Bottom - v.Top
}

// SlotX returns the pixel x of the center of slot i.
func (v Viewport) SlotX(i int) float32 {
	return v.Left + float32(i)*v.SlotWidth + v.SlotWidth/2
}

// Y returns the pixel y of value within [minY,maxY]. A flat range puts
// every value in the vertical middle of the plot.
func (v Viewport) Y(value, minY, maxY float64) float32 {
	ratio := 0.5
	if maxY != minY {
		ratio = (value - minY) / (maxY - minY)
	}
	return v.Bottom - float32(ratio)*v.PlotHeight()
}

// ProjectSeries converts every series to pixel space. The result holds one
// slice of points per series, in input order.
func ProjectSeries(series []Series, vp Viewport) ([][]f32.Point, error) {
	minY, maxY, err := ComputeYRange(series)
	if err != nil {
		return nil, err
	}
	if vp.Bottom < vp.Top {
		return nil, chart.Invalid("line projection", "viewport bottom %v is above top %v", vp.Bottom, vp.Top)
	}
	out := make([][]f32.Point, len(series))
	for i, s := range series {
		pts := make([]f32.Point, len(s.Points))
		for j, p := range s.Points {
			pts[j] = f32.Point{
				X: vp.SlotX(j),
				Y: vp.Y(p.Y, minY, maxY),
			}
		}
		out[i] = pts
	}
	return out, nil
}

// BezierControlPoints returns, for each pair of adjacent points, the two
// control points of the cubic segment joining them. Both controls sit at
// the horizontal midpoint of the pair, the first at the height of the left
// point and the second at the height of the right one, which makes the
// curve leave and enter every point horizontally.
func BezierControlPoints(pts []f32.Point) (c1, c2 []f32.Point) {
	if len(pts) < 2 {
		return nil, nil
	}
	c1 = make([]f32.Point, len(pts)-1)
	c2 = make([]f32.Point, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		p0, p1 := pts[i-1], pts[i]
		x := (p0.X + p1.X) / 2
		c1[i-1] = f32.Pt(x, p0.Y)
		c2[i-1] = f32.Pt(x, p1.Y)
	}
	return c1, c2
}
