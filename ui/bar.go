package ui

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/gesture"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"git.sr.ht/~whereswaldon/statcharts/bar"
	"git.sr.ht/~whereswaldon/statcharts/chart"
)

// BarChart draws a horizontally scrollable bar chart with a y axis.
type BarChart struct {
	Style bar.Style
	Steps int
	// Selected is the index of the bar whose value is shown, or -1.
	Selected int
	Values   chart.ValueLabelConfig
	BarWidth unit.Dp
	Spacing  unit.Dp

	pan    gesture.Scroll
	panBar widget.Scrollbar
	offset float32
	// bars of the last frame in plot coordinates.
	bars []bar.Rect
}

func NewBarChart() *BarChart {
	return &BarChart{
		Steps:    bar.DefaultSteps,
		Selected: -1,
		BarWidth: 40,
		Spacing:  8,
	}
}

// Update consumes scroll and tap events. It reports whether the selected
// bar changed.
func (b *BarChart) Update(gtx C, n int) bool {
	before := b.Selected
	dist := b.pan.Update(gtx.Metric, gtx.Source, gtx.Now, gesture.Horizontal, image.Rect(-1e6, 0, 1e6, 0))
	b.offset += float32(dist)
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: b,
			Kinds:  pointer.Press,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok || e.Kind != pointer.Press {
			continue
		}
		if i, ok := bar.HitTest(b.bars, e.Position); ok {
			if i == b.Selected {
				b.Selected = -1
			} else {
				b.Selected = i
			}
		}
	}
	if b.Selected >= n {
		b.Selected = -1
	}
	return b.Selected != before
}

func (b *BarChart) Layout(gtx C, th *material.Theme, data []bar.Datum, cap *float64) D {
	b.Update(gtx, len(data))
	size := gtx.Constraints.Max
	gtx.Constraints.Min = image.Point{}

	tick := material.Caption(th, "0")
	lineDims, _ := rec(gtx, tick.Layout)
	lineH := lineDims.Size.Y
	gap := gtx.Dp(6)
	labelArea := gtx.Dp(56)
	scrollH := gtx.Dp(8)
	plotH := size.Y - lineH - labelArea - scrollH
	if plotH <= 0 {
		return D{Size: size}
	}
	cfg := bar.Config{
		BarWidth:     float32(gtx.Dp(b.BarWidth)),
		Spacing:      float32(gtx.Dp(b.Spacing)),
		MaxBarHeight: float32(plotH),
		Steps:        b.Steps,
		Cap:          cap,
		Style:        b.Style,
	}
	geo, err := bar.Layout(data, cfg, 0)
	if err != nil {
		return layoutError(gtx, th, err)
	}

	// Measure the y axis.
	ticks := geo.Scale.Ticks()
	tickCalls := make([]op.CallOp, len(ticks))
	tickDims := make([]D, len(ticks))
	axisW := 0
	for i, v := range ticks {
		tick.Text = b.Values.Format(v, "")
		tickDims[i], tickCalls[i] = rec(gtx, tick.Layout)
		axisW = max(axisW, tickDims[i].Size.X)
	}
	axisW += 2 * gap
	plotW := size.X - axisW

	if d := b.panBar.ScrollDistance(); d != 0 {
		b.offset += d * geo.ContentWidth
	}
	var start, end float32
	b.offset, start, end = bar.ScrollWindow(geo.ContentWidth, float32(plotW), b.offset)
	geo, _ = bar.Layout(data, cfg, b.offset)
	b.bars = geo.Bars

	for i, v := range ticks {
		y := lineH + plotH - int(math.Round(bar.BarHeightFraction(v, geo.Scale.Max)*float64(plotH)))
		paint.FillShape(gtx.Ops, chart.WithAlpha(th.Fg, .15), clip.Rect{
			Min: image.Pt(axisW, y),
			Max: image.Pt(size.X, y+max(gtx.Dp(1), 1)),
		}.Op())
		st := op.Offset(image.Pt(axisW-gap-tickDims[i].Size.X, y-tickDims[i].Size.Y/2)).Push(gtx.Ops)
		tickCalls[i].Add(gtx.Ops)
		st.Pop()
	}

	plot := op.Offset(image.Pt(axisW, lineH)).Push(gtx.Ops)
	area := clip.Rect{Min: image.Pt(0, -lineH), Max: image.Pt(plotW, plotH+labelArea)}.Push(gtx.Ops)
	for i, r := range geo.Bars {
		if r.Max.X < 0 || r.Min.X > float32(plotW) {
			continue
		}
		col := data[i].Color
		if b.Selected >= 0 && b.Selected != i {
			col = chart.WithAlpha(col, .5)
		}
		if b.Style == bar.StyleFlat {
			b.layoutFlat(gtx, r, col)
		} else {
			b.layoutPerspective(gtx, r, col)
		}
		b.layoutXLabel(gtx, th, r, data[i], float32(plotH+gap))
		if i == b.Selected {
			l := material.Caption(th, b.Values.Format(data[i].Value, ""))
			l.Color = data[i].LabelColor()
			layoutRotated(gtx, f32.Pt(r.Min.X+r.Dx()/2, r.Min.Y), -float32(lineH)/2-float32(gap)/2, 0, l.Layout)
		}
	}
	b.pan.Add(gtx.Ops)
	event.Op(gtx.Ops, b)
	area.Pop()
	plot.Pop()

	if end-start < 1 {
		st := op.Offset(image.Pt(axisW, size.Y-scrollH)).Push(gtx.Ops)
		gtx.Constraints = layout.Exact(image.Pt(plotW, scrollH))
		sb := material.Scrollbar(th, &b.panBar)
		sb.Track.MajorPadding = 0
		sb.Track.MinorPadding = 0
		sb.Indicator.CornerRadius = 0
		sb.Layout(gtx, layout.Horizontal, start, end)
		st.Pop()
	}
	return D{Size: size}
}

func (b *BarChart) layoutFlat(gtx C, r bar.Rect, col color.NRGBA) {
	radius := min(gtx.Dp(4), int(r.Dy()/2))
	rr := clip.RRect{
		Rect: image.Rect(int(r.Min.X), int(r.Min.Y), int(r.Max.X), int(r.Max.Y)),
		NW:   radius,
		NE:   radius,
	}
	defer rr.Push(gtx.Ops).Pop()
	paint.LinearGradientOp{
		Stop1:  r.Min,
		Color1: col,
		Stop2:  f32.Pt(r.Min.X, r.Max.Y),
		Color2: chart.WithAlpha(col, .55),
	}.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
}

func (b *BarChart) layoutPerspective(gtx C, r bar.Rect, col color.NRGBA) {
	if r.Dy() <= 0 {
		return
	}
	faces := bar.Faces3D(r.Dx(), r.Dy())
	defer op.Affine(f32.Affine2D{}.Offset(r.Min)).Push(gtx.Ops).Pop()
	paint.FillShape(gtx.Ops, col, clip.Outline{Path: quadPath(gtx.Ops, faces.Front)}.Op())
	paint.FillShape(gtx.Ops, shade(col, .7), clip.Outline{Path: quadPath(gtx.Ops, faces.Side)}.Op())
	paint.FillShape(gtx.Ops, tint(col, .3), clip.Outline{Path: quadPath(gtx.Ops, faces.Top)}.Op())
}

// layoutXLabel draws the label of the bar in r slanted up to the left,
// ending under the bar's center.
func (b *BarChart) layoutXLabel(gtx C, th *material.Theme, r bar.Rect, d bar.Datum, y float32) {
	l := material.Caption(th, d.Label)
	l.Color = d.LabelColor()
	l.MaxLines = 1
	dims, call := rec(gtx, l.Layout)
	pivot := f32.Pt(r.Min.X+r.Dx()/2, y)
	defer op.Affine(f32.Affine2D{}.
		Offset(pivot.Sub(f32.Pt(float32(dims.Size.X), 0))).
		Rotate(pivot, -math.Pi/4),
	).Push(gtx.Ops).Pop()
	call.Add(gtx.Ops)
}

func quadPath(ops *op.Ops, q bar.Quad) clip.PathSpec {
	var p clip.Path
	p.Begin(ops)
	p.MoveTo(q[0])
	for _, pt := range q[1:] {
		p.LineTo(pt)
	}
	p.Close()
	return p.End()
}
