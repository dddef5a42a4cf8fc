package ui

import (
	"fmt"
	"image"
	"math"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"git.sr.ht/~whereswaldon/statcharts/chart"
	"git.sr.ht/~whereswaldon/statcharts/pie"
)

// PieChart draws a donut chart and lets the user highlight segments.
type PieChart struct {
	Selection pie.Selection
	CenterHit pie.CenterHitMode
	// HoleRatio is the cutout radius as a fraction of the outer radius.
	HoleRatio float32
	Values    chart.ValueLabelConfig

	// geometry of the last frame, used to resolve taps.
	center        f32.Point
	radius, inner float32
}

func NewPieChart() *PieChart {
	return &PieChart{
		Selection: pie.NoSelection,
		HoleRatio: .5,
	}
}

// Update applies taps since the last frame to the selection and reports
// whether it changed.
func (p *PieChart) Update(gtx C, segments []pie.Segment) bool {
	before := p.Selection
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: p,
			Kinds:  pointer.Press,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok || e.Kind != pointer.Press || p.radius <= 0 {
			continue
		}
		p.Selection = p.Selection.Apply(p.hit(segments, e.Position))
	}
	if p.Selection.Segment >= len(segments) {
		p.Selection = pie.NoSelection
	}
	return p.Selection != before
}

func (p *PieChart) hit(segments []pie.Segment, tap f32.Point) pie.Hit {
	d := tap.Sub(p.center)
	if math.Hypot(float64(d.X), float64(d.Y)) > float64(p.radius) {
		return pie.Hit{Segment: -1}
	}
	return pie.HitTest(segments, p.center, tap, float64(p.inner), p.CenterHit)
}

func (p *PieChart) Layout(gtx C, th *material.Theme, segments []pie.Segment, centerText string) D {
	p.Update(gtx, segments)
	arcs, err := pie.Layout(segments)
	if err != nil {
		return layoutError(gtx, th, err)
	}
	size := gtx.Constraints.Max
	side := float32(min(size.X, size.Y))
	p.center = layout.FPt(size).Mul(.5)
	// Leave room for the descriptions outside the ring.
	p.radius = side / 2 / 1.6
	p.inner = p.radius * chart.Clamp(p.HoleRatio, 0, .95)
	segments = p.Selection.Mark(segments)

	for i, arc := range arcs {
		col := segments[i].Color
		if p.Selection.Any() && !segments[i].Selected {
			col = chart.WithAlpha(col, .45)
		}
		paint.FillShape(gtx.Ops, col, clip.Outline{
			Path: ringPath(gtx.Ops, p.center, p.radius, p.inner, arc.StartAngle, arc.SweepAngle),
		}.Op())
	}
	for i, arc := range arcs {
		if segments[i].Selected {
			p.layoutHighlight(gtx, arc, segments[i])
		}
	}
	for i, arc := range arcs {
		if arc.ShowPercentage() {
			a := pie.LabelAnchor(arc, float64(p.radius), float64(p.inner))
			l := material.Caption(th, fmt.Sprintf("%d%%", arc.Percentage))
			l.Color = th.ContrastFg
			layoutRotated(gtx, p.center, float32(a.Distance), a.Radians(), l.Layout)
		}
		if segments[i].Selected {
			a := pie.DescriptionAnchor(arc, float64(p.radius))
			l := material.Body2(th, segments[i].Label+": "+p.Values.Format(segments[i].Value, ""))
			l.MaxLines = 1
			layoutRotated(gtx, p.center, float32(a.Distance), a.Radians(), l.Layout)
		}
	}
	if centerText != "" && p.inner > 0 {
		p.layoutCenterText(gtx, th, centerText)
	}

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, p)
	return D{Size: size}
}

// layoutHighlight draws a band just outside the arc and bars along its
// edges.
func (p *PieChart) layoutHighlight(gtx C, arc pie.Arc, seg pie.Segment) {
	gap := float32(gtx.Dp(3))
	band := float32(gtx.Dp(6))
	paint.FillShape(gtx.Ops, seg.Color, clip.Outline{
		Path: ringPath(gtx.Ops, p.center, p.radius+gap+band, p.radius+gap, arc.StartAngle, arc.SweepAngle),
	}.Op())
	if arc.SweepAngle >= 360 {
		return
	}
	for _, bearing := range pie.HighlightBearings(arc) {
		paint.FillShape(gtx.Ops, chart.WithAlpha(seg.Color, .8), clip.Stroke{
			Path:  linePath(gtx.Ops, polar(p.center, p.inner, bearing), polar(p.center, p.radius+gap+band, bearing)),
			Width: float32(gtx.Dp(2)),
		}.Op())
	}
}

func (p *PieChart) layoutCenterText(gtx C, th *material.Theme, centerText string) {
	l := material.Label(th, unit.Sp(14), centerText)
	l.Alignment = text.Middle
	width := int(p.inner * 2 * .8)
	gtx.Constraints = layout.Exact(image.Pt(width, int(p.inner*2)))
	gtx.Constraints.Min.Y = 0
	dims, call := rec(gtx, l.Layout)
	origin := p.center.Sub(layout.FPt(dims.Size).Mul(.5))
	defer op.Offset(origin.Round()).Push(gtx.Ops).Pop()
	call.Add(gtx.Ops)
}
