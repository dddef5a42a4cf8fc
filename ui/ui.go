// Package ui draws the pie, bar and line charts with Gio. Every widget
// recomputes its geometry from the data passed to Layout each frame and
// keeps only selection and scroll state between frames.
package ui

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/widget/material"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

func rec(gtx C, w layout.Widget) (D, op.CallOp) {
	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	call := macro.Stop()
	return dims, call
}

// polar returns the point radius away from center at bearing degrees,
// clockwise from 12 o'clock.
func polar(center f32.Point, radius float32, bearing float64) f32.Point {
	rad := bearing * math.Pi / 180
	return f32.Point{
		X: center.X + radius*float32(math.Sin(rad)),
		Y: center.Y - radius*float32(math.Cos(rad)),
	}
}

// arcSteps is the number of straight segments used for an arc of sweep
// degrees.
func arcSteps(sweep float64) int {
	return max(int(math.Ceil(math.Abs(sweep)/2)), 1)
}

// ringPath outlines the part of the ring between inner and outer radius
// covered by [start, start+sweep). An inner radius of zero gives a wedge.
func ringPath(ops *op.Ops, center f32.Point, outer, inner float32, start, sweep float64) clip.PathSpec {
	var p clip.Path
	p.Begin(ops)
	steps := arcSteps(sweep)
	p.MoveTo(polar(center, outer, start))
	for i := 1; i <= steps; i++ {
		p.LineTo(polar(center, outer, start+sweep*float64(i)/float64(steps)))
	}
	if inner > 0 {
		for i := steps; i >= 0; i-- {
			p.LineTo(polar(center, inner, start+sweep*float64(i)/float64(steps)))
		}
	} else {
		p.LineTo(center)
	}
	p.Close()
	return p.End()
}

// linePath is a path through pts.
func linePath(ops *op.Ops, pts ...f32.Point) clip.PathSpec {
	var p clip.Path
	p.Begin(ops)
	for i, pt := range pts {
		if i == 0 {
			p.MoveTo(pt)
		} else {
			p.LineTo(pt)
		}
	}
	return p.End()
}

// layoutRotated draws w centered on the point distance below pivot, after
// rotating clockwise around pivot by radians.
func layoutRotated(gtx C, pivot f32.Point, distance, radians float32, w layout.Widget) {
	gtx.Constraints.Min = image.Point{}
	dims, call := rec(gtx, w)
	half := layout.FPt(dims.Size).Mul(.5)
	defer op.Affine(f32.Affine2D{}.
		Offset(pivot.Add(f32.Pt(-half.X, distance-half.Y))).
		Rotate(pivot, radians),
	).Push(gtx.Ops).Pop()
	call.Add(gtx.Ops)
}

// layoutError replaces a chart that cannot be drawn.
func layoutError(gtx C, th *material.Theme, err error) D {
	l := material.Body1(th, err.Error())
	l.Color = color.NRGBA{R: 150, A: 255}
	return layout.Center.Layout(gtx, l.Layout)
}

// shade scales the color channels of c by f, darkening it for f < 1.
func shade(c color.NRGBA, f float32) color.NRGBA {
	scale := func(v uint8) uint8 {
		return uint8(math.Round(float64(min(float32(v)*f, 255))))
	}
	return color.NRGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}

// tint moves c towards white by f in [0,1].
func tint(c color.NRGBA, f float32) color.NRGBA {
	mix := func(v uint8) uint8 {
		return uint8(math.Round(float64(float32(v) + (255-float32(v))*f)))
	}
	return color.NRGBA{R: mix(c.R), G: mix(c.G), B: mix(c.B), A: c.A}
}
