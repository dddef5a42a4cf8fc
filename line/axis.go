package line

import "git.sr.ht/~whereswaldon/statcharts/chart"

// Labels describes the y axis labels of a line chart. Label i has value
// Values[i] and sits at Viewport.Top + i*PlotHeight/Count.
type Labels struct {
	// Count is the number of intervals between labels; there are Count+1
	// labels.
	Count     int
	Increment float64
	// Values run from the range maximum down to the minimum.
	Values []float64
}

// YLabels fits as many labels into height as the line height and minimum
// spacing allow, but never fewer than two.
func YLabels(minY, maxY float64, height, lineHeight, minSpacing float32) Labels {
	count := 0
	if per := lineHeight + minSpacing; per > 0 && height > 0 {
		count = int(chart.Floor(height / per))
	}
	count = max(count, 1)
	increment := (maxY - minY) / float64(count)
	values := make([]float64, count+1)
	for i := range values {
		values[i] = maxY - increment*float64(i)
	}
	return Labels{
		Count:     count,
		Increment: increment,
		Values:    values,
	}
}

// Y returns the pixel row of label i within vp.
func (l Labels) Y(i int, vp Viewport) float32 {
	if l.Count == 0 {
		return vp.Top
	}
	return vp.Top + float32(i)*vp.PlotHeight()/float32(l.Count)
}

// Frame holds the canvas size and the measured label sizes that determine
// where the plot goes.
type Frame struct {
	Width, Height float32
	// XLabelHeight is the height of the tallest x label and
	// XLabelLineHeight the height of one line of label text.
	XLabelHeight     float32
	XLabelLineHeight float32
	// XLabelWidth is the width of the widest x label.
	XLabelWidth float32
	// YLabelWidth is the width of the widest y label.
	YLabelWidth       float32
	VerticalPadding   float32
	HorizontalPadding float32
	// LabelSpacing separates x labels from each other and from the plot.
	LabelSpacing float32
}

// valueLabelGap separates the selected value text from the top of the
// plot.
const valueLabelGap = 10

// PlotHeight is the height left for the plot after the x labels, the
// selected value line and padding.
func (f Frame) PlotHeight() float32 {
	h := f.Height - (f.XLabelHeight + 2*f.VerticalPadding + f.XLabelLineHeight + f.LabelSpacing)
	return max(h, 0)
}

// LabelHeight is the height handed to [YLabels]: the plot plus one line,
// since the first and last labels are centered on the plot edges.
func (f Frame) LabelHeight() float32 {
	return f.PlotHeight() + f.XLabelLineHeight
}

// Viewport places the plot below the selected value line and to the right
// of the y labels.
func (f Frame) Viewport() Viewport {
	top := f.VerticalPadding + f.XLabelLineHeight + valueLabelGap
	return Viewport{
		Left:      2*f.HorizontalPadding + f.YLabelWidth,
		Top:       top,
		Bottom:    top + f.PlotHeight(),
		SlotWidth: f.XLabelWidth + f.LabelSpacing,
	}
}

// ScrollSlotWidth is the width, in Dp, given to each point when only part
// of a series is visible at once.
const ScrollSlotWidth = 60

// ContentWidth returns the width of the chart content. When fewer points
// are visible than exist, the content grows to total*slotWidth and
// scrolls; otherwise it fills viewportWidth.
func ContentWidth(total, visible int, slotWidth, viewportWidth float32) float32 {
	if visible > 0 && total > visible {
		return float32(total) * slotWidth
	}
	return viewportWidth
}
