package ui

import (
	"image"

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
	"git.sr.ht/~whereswaldon/statcharts/chart"
	"git.sr.ht/~whereswaldon/statcharts/line"
)

// LineChart draws one or more smoothed series over shared axes.
type LineChart struct {
	Selection line.Selection
	// Visible limits how many points are shown at once. When a series is
	// longer the chart scrolls horizontally. Zero shows every point.
	Visible int
	Values  chart.ValueLabelConfig

	pan    gesture.Scroll
	panBar widget.Scrollbar
	offset float32
	// projected points and slot width of the last frame, in widget
	// coordinates.
	projected [][]f32.Point
	slot      float32
}

func NewLineChart() *LineChart {
	return &LineChart{Selection: line.NoSelection}
}

// Update consumes scroll and tap events. It reports whether the selection
// changed.
func (l *LineChart) Update(gtx C, series []line.Series) bool {
	before := l.Selection
	dist := l.pan.Update(gtx.Metric, gtx.Source, gtx.Now, gesture.Horizontal, image.Rect(-1e6, 0, 1e6, 0))
	l.offset += float32(dist)
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: l,
			Kinds:  pointer.Press,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok || e.Kind != pointer.Press {
			continue
		}
		if sel, ok := line.Pick(l.projected, e.Position, l.slot); ok {
			l.Selection = sel
		}
	}
	if l.Selection.Series >= len(series) || (l.Selection.Valid() && l.Selection.Index >= len(series[l.Selection.Series].Points)) {
		l.Selection = line.NoSelection
	}
	return l.Selection != before
}

func (l *LineChart) Layout(gtx C, th *material.Theme, series []line.Series, unitSuffix string) D {
	l.Update(gtx, series)
	minY, maxY, err := line.ComputeYRange(series)
	if err != nil {
		l.projected = nil
		return layoutError(gtx, th, err)
	}
	size := gtx.Constraints.Max
	gtx.Constraints.Min = image.Point{}
	points := series[0].Points

	label := material.Caption(th, "")
	label.MaxLines = 1
	xDims := make([]D, len(points))
	xCalls := make([]op.CallOp, len(points))
	frame := line.Frame{
		Width:             float32(size.X),
		Height:            float32(size.Y),
		VerticalPadding:   float32(gtx.Dp(8)),
		HorizontalPadding: float32(gtx.Dp(8)),
		LabelSpacing:      float32(gtx.Dp(12)),
	}
	for i, p := range points {
		label.Text = p.Label
		xDims[i], xCalls[i] = rec(gtx, label.Layout)
		frame.XLabelWidth = max(frame.XLabelWidth, float32(xDims[i].Size.X))
		frame.XLabelHeight = max(frame.XLabelHeight, float32(xDims[i].Size.Y))
	}
	label.Text = "0"
	lineDims, _ := rec(gtx, label.Layout)
	frame.XLabelLineHeight = float32(lineDims.Size.Y)
	for _, v := range []float64{minY, maxY} {
		label.Text = l.Values.Format(v, unitSuffix)
		dims, _ := rec(gtx, label.Layout)
		frame.YLabelWidth = max(frame.YLabelWidth, float32(dims.Size.X))
	}

	vp := frame.Viewport()
	plotLeft := vp.Left
	plotW := frame.Width - plotLeft - frame.HorizontalPadding
	scrolling := l.Visible > 0 && len(points) > l.Visible
	if scrolling {
		vp.SlotWidth = float32(gtx.Dp(unit.Dp(line.ScrollSlotWidth)))
	} else if fill := plotW / float32(len(points)); fill > vp.SlotWidth {
		vp.SlotWidth = fill
	}
	var visible int
	if scrolling {
		visible = l.Visible
	}
	content := line.ContentWidth(len(points), visible, vp.SlotWidth, plotW)
	if d := l.panBar.ScrollDistance(); d != 0 {
		l.offset += d * content
	}
	l.offset = chart.Clamp(l.offset, 0, max(content-plotW, 0))
	vp.Left -= l.offset
	l.slot = vp.SlotWidth

	projected, err := line.ProjectSeries(series, vp)
	if err != nil {
		l.projected = nil
		return layoutError(gtx, th, err)
	}
	l.projected = projected

	helper := chart.WithAlpha(th.Fg, .12)
	onePx := float32(max(gtx.Dp(1), 1))
	labels := line.YLabels(minY, maxY, frame.LabelHeight(), frame.XLabelLineHeight, float32(gtx.Dp(8)))
	for i, v := range labels.Values {
		y := labels.Y(i, vp)
		paint.FillShape(gtx.Ops, helper, clip.Rect{
			Min: image.Pt(int(plotLeft), int(y)),
			Max: image.Pt(size.X, int(y+onePx)),
		}.Op())
		label.Text = l.Values.Format(v, unitSuffix)
		dims, call := rec(gtx, label.Layout)
		st := op.Offset(image.Pt(int(plotLeft-frame.HorizontalPadding)-dims.Size.X, int(y)-dims.Size.Y/2)).Push(gtx.Ops)
		call.Add(gtx.Ops)
		st.Pop()
	}

	plot := clip.Rect{Min: image.Pt(int(plotLeft), 0), Max: size}.Push(gtx.Ops)
	for i := range points {
		x := vp.SlotX(i)
		paint.FillShape(gtx.Ops, helper, clip.Rect{
			Min: image.Pt(int(x), int(vp.Top)),
			Max: image.Pt(int(x+onePx), int(vp.Bottom)),
		}.Op())
		st := op.Offset(image.Pt(int(x)-xDims[i].Size.X/2, int(vp.Bottom+frame.LabelSpacing))).Push(gtx.Ops)
		xCalls[i].Add(gtx.Ops)
		st.Pop()
	}
	for i, pts := range projected {
		paint.FillShape(gtx.Ops, series[i].Color, clip.Stroke{
			Path:  curvePath(gtx.Ops, pts),
			Width: float32(gtx.Dp(2)),
		}.Op())
	}
	if l.Selection.Valid() {
		l.layoutSelection(gtx, th, series, vp, frame, unitSuffix)
	}
	l.pan.Add(gtx.Ops)
	event.Op(gtx.Ops, l)
	plot.Pop()

	if scrolling {
		scrollH := gtx.Dp(6)
		st := op.Offset(image.Pt(int(plotLeft), size.Y-scrollH)).Push(gtx.Ops)
		gtx.Constraints = layout.Exact(image.Pt(int(plotW), scrollH))
		sb := material.Scrollbar(th, &l.panBar)
		sb.Track.MajorPadding = 0
		sb.Track.MinorPadding = 0
		sb.Layout(gtx, layout.Horizontal, l.offset/content, (l.offset+plotW)/content)
		st.Pop()
	}
	return D{Size: size}
}

// layoutSelection marks the selected slot, circles every series' point in
// it and prints the selected value above the plot.
func (l *LineChart) layoutSelection(gtx C, th *material.Theme, series []line.Series, vp line.Viewport, frame line.Frame, unitSuffix string) {
	idx := l.Selection.Index
	x := vp.SlotX(idx)
	paint.FillShape(gtx.Ops, chart.WithAlpha(th.Fg, .4), clip.Rect{
		Min: image.Pt(int(x), int(vp.Top)),
		Max: image.Pt(int(x)+max(gtx.Dp(1), 1), int(vp.Bottom)),
	}.Op())
	for i, pts := range l.projected {
		r := gtx.Dp(3)
		if i == l.Selection.Series {
			r = gtx.Dp(5)
		}
		c := pts[idx].Round()
		paint.FillShape(gtx.Ops, series[i].Color, clip.Ellipse{
			Min: c.Sub(image.Pt(r, r)),
			Max: c.Add(image.Pt(r, r)),
		}.Op(gtx.Ops))
	}
	s := series[l.Selection.Series]
	value := material.Body2(th, s.Label+" "+s.Points[idx].Label+": "+l.Values.Format(s.Points[idx].Y, unitSuffix))
	value.Color = s.Color
	value.MaxLines = 1
	layoutRotated(gtx, f32.Pt(x, frame.VerticalPadding), frame.XLabelLineHeight/2, 0, value.Layout)
}

// curvePath joins pts with cubic segments that leave and enter every point
// horizontally.
func curvePath(ops *op.Ops, pts []f32.Point) clip.PathSpec {
	var p clip.Path
	p.Begin(ops)
	if len(pts) == 0 {
		return p.End()
	}
	p.MoveTo(pts[0])
	c1, c2 := line.BezierControlPoints(pts)
	for i := range c1 {
		p.CubeTo(c1[i], c2[i], pts[i+1])
	}
	return p.End()
}
