package bar

import (
	"image/color"

	"gioui.org/f32"
	"git.sr.ht/~whereswaldon/statcharts/chart"
)

// Datum is one bar.
type Datum struct {
	// Value must not be negative.
	Value float64
	Label string
	Color color.NRGBA
	// TextColor overrides Color for the bar's label when set.
	TextColor *color.NRGBA
}

// LabelColor returns the color the datum's label is drawn in.
func (d Datum) LabelColor() color.NRGBA {
	if d.TextColor != nil {
		return *d.TextColor
	}
	return d.Color
}

// Style is the visual style of bars.
type Style uint8

const (
	// StylePerspective draws bars as boxes with visible side and top faces.
	StylePerspective Style = iota
	// StyleFlat draws gradient filled rectangles.
	StyleFlat
)

func (s Style) String() string {
	switch s {
	case StylePerspective:
		return "perspective"
	case StyleFlat:
		return "flat"
	default:
		return "unknown"
	}
}

// Config holds the sizing of a bar chart, in pixels.
type Config struct {
	BarWidth     float32
	Spacing      float32
	MaxBarHeight float32
	// Steps is the number of y axis intervals.
	Steps int
	// Cap replaces the data maximum as the axis reference when set.
	Cap   *float64
	Style Style
}

// DefaultConfig returns the sizing used when the caller has no opinion.
func DefaultConfig() Config {
	return Config{
		BarWidth:     40,
		Spacing:      8,
		MaxBarHeight: 120,
		Steps:        DefaultSteps,
	}
}

// Rect is an axis aligned rectangle in pixels.
type Rect struct {
	Min, Max f32.Point
}

func (r Rect) Dx() float32 { return r.Max.X - r.Min.X }
func (r Rect) Dy() float32 { return r.Max.Y - r.Min.Y }

// Chart is the computed layout of a bar chart.
type Chart struct {
	Scale AxisScale
	// Bars holds one rectangle per datum. Zero valued bars have zero
	// height and sit on the baseline.
	Bars      []Rect
	Fractions []float64
	// ContentWidth is the unscrolled width of all bars and gaps.
	ContentWidth float32
}

// ContentWidth is the width of n bars and the gaps between them.
func (c Config) ContentWidth(n int) float32 {
	if n < 1 {
		return 0
	}
	return float32(n)*c.BarWidth + float32(n-1)*c.Spacing
}

// Layout places bars left to right, bottom aligned at MaxBarHeight and
// shifted left by offset.
func Layout(data []Datum, cfg Config, offset float32) (Chart, error) {
	values := make([]float64, len(data))
	for i, d := range data {
		values[i] = d.Value
	}
	scale, err := ComputeAxisMax(values, cfg.Steps, cfg.Cap)
	if err != nil {
		return Chart{}, err
	}
	if cfg.BarWidth <= 0 || cfg.MaxBarHeight <= 0 || cfg.Spacing < 0 {
		return Chart{}, chart.Invalid("bar layout", "bar width %v, height %v and spacing %v must be positive", cfg.BarWidth, cfg.MaxBarHeight, cfg.Spacing)
	}
	c := Chart{
		Scale:        scale,
		Bars:         make([]Rect, len(data)),
		Fractions:    make([]float64, len(data)),
		ContentWidth: cfg.ContentWidth(len(data)),
	}
	for i, d := range data {
		fraction := BarHeightFraction(d.Value, scale.Max)
		x := float32(i)*(cfg.BarWidth+cfg.Spacing) - offset
		c.Fractions[i] = fraction
		c.Bars[i] = Rect{
			Min: f32.Pt(x, cfg.MaxBarHeight-float32(fraction)*cfg.MaxBarHeight),
			Max: f32.Pt(x+cfg.BarWidth, cfg.MaxBarHeight),
		}
	}
	return c, nil
}

// HitTest returns the bar whose column contains p. Columns extend from the
// top of the plot down to the baseline so that short bars stay tappable.
func HitTest(bars []Rect, p f32.Point) (int, bool) {
	for i, b := range bars {
		if p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= 0 && p.Y <= b.Max.Y {
			return i, true
		}
	}
	return -1, false
}

// ScrollWindow clamps a horizontal scroll offset to the content and
// returns the visible fraction of the content as [start,end], suitable for
// a scrollbar indicator.
func ScrollWindow(contentWidth, viewportWidth, offset float32) (clamped, start, end float32) {
	if contentWidth <= viewportWidth || contentWidth <= 0 {
		return 0, 0, 1
	}
	clamped = chart.Clamp(offset, 0, contentWidth-viewportWidth)
	return clamped, clamped / contentWidth, (clamped + viewportWidth) / contentWidth
}
