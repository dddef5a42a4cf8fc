package ui

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"git.sr.ht/~whereswaldon/statcharts/chart"
	"git.sr.ht/~whereswaldon/statcharts/line"
)

// LegendEntry is one row of a legend.
type LegendEntry struct {
	Color  color.NRGBA
	Label  string
	Values []string
}

// Legend is a table keyed by color. Clicking a row's color swatch toggles
// the row.
type Legend struct {
	Enabled []*widget.Bool
	table   component.GridState
}

// Update grows the toggle list to n rows and reports whether any toggle
// changed.
func (l *Legend) Update(gtx C, n int) bool {
	for len(l.Enabled) < n {
		l.Enabled = append(l.Enabled, &widget.Bool{Value: true})
	}
	changed := false
	for _, b := range l.Enabled[:n] {
		if b.Update(gtx) {
			changed = true
		}
	}
	return changed
}

// IsEnabled reports whether row i is toggled on. Rows never laid out are
// on.
func (l *Legend) IsEnabled(i int) bool {
	return i >= len(l.Enabled) || l.Enabled[i].Value
}

// FilterSeries returns the series whose rows are enabled.
func (l *Legend) FilterSeries(series []line.Series) []line.Series {
	out := make([]line.Series, 0, len(series))
	for i, s := range series {
		if l.IsEnabled(i) {
			out = append(out, s)
		}
	}
	return out
}

// Layout draws the legend with one column per heading after the color and
// label columns.
func (l *Legend) Layout(gtx C, th *material.Theme, label string, headings []string, entries []LegendEntry) D {
	l.Update(gtx, len(entries))
	table := component.Table(th, &l.table)
	table.HScrollbarStyle.Indicator.MinorWidth = 0
	table.HScrollbarStyle.Track.MinorPadding = 0
	table.VScrollbarStyle.Indicator.MinorWidth = 0
	table.VScrollbarStyle.Track.MinorPadding = 0
	const (
		colorCol = iota
		labelCol
		firstValueCol
	)
	colorColWidth := gtx.Dp(40)
	valueColWidth := gtx.Dp(90)
	labelColWidth := max(gtx.Constraints.Max.X-colorColWidth-len(headings)*valueColWidth-gtx.Dp(table.VScrollbarStyle.Width()), gtx.Dp(80))
	rowHeight := gtx.Sp(20)
	disabledAlpha := float32(.4)
	return table.Layout(gtx, len(entries), firstValueCol+len(headings),
		func(axis layout.Axis, index, constraint int) int {
			if axis == layout.Vertical {
				return min(constraint, rowHeight)
			}
			switch index {
			case colorCol:
				return min(colorColWidth, constraint)
			case labelCol:
				return min(labelColWidth, constraint)
			default:
				return min(valueColWidth, constraint)
			}
		},
		func(gtx C, index int) D {
			var lbl material.LabelStyle
			switch index {
			case colorCol:
				lbl = material.Body1(th, "")
			case labelCol:
				lbl = material.Body1(th, label)
			default:
				lbl = material.Body1(th, headings[index-firstValueCol])
				lbl.Alignment = text.End
			}
			lbl.Color = th.ContrastFg
			return layout.Background{}.Layout(gtx,
				func(gtx C) D {
					paint.FillShape(gtx.Ops, th.ContrastBg, clip.Rect{Max: gtx.Constraints.Max}.Op())
					return D{Size: gtx.Constraints.Min}
				}, lbl.Layout,
			)
		},
		func(gtx C, row, col int) (dims D) {
			defer func() {
				dims.Size = gtx.Constraints.Constrain(dims.Size)
			}()
			entry := entries[row]
			enabled := l.Enabled[row].Value
			dims = layout.UniformInset(2).Layout(gtx, func(gtx C) D {
				switch col {
				case colorCol:
					return l.Enabled[row].Layout(gtx, func(gtx C) D {
						return layout.Center.Layout(gtx, func(gtx C) D {
							side := gtx.Dp(10)
							sz := image.Pt(side, side)
							c := entry.Color
							if !enabled {
								c = chart.WithAlpha(c, disabledAlpha)
							}
							paint.FillShape(gtx.Ops, c, clip.Rect{Max: sz}.Op())
							return D{Size: sz}
						})
					})
				case labelCol:
					lbl := material.Body2(th, entry.Label)
					if !enabled {
						lbl.Color = chart.WithAlpha(lbl.Color, disabledAlpha)
					}
					return lbl.Layout(gtx)
				default:
					v := ""
					if i := col - firstValueCol; i < len(entry.Values) {
						v = entry.Values[i]
					}
					lbl := material.Body2(th, v)
					lbl.Alignment = text.End
					if !enabled {
						lbl.Color = chart.WithAlpha(lbl.Color, disabledAlpha)
					}
					return lbl.Layout(gtx)
				}
			})
			if row&1 != 0 {
				paint.FillShape(gtx.Ops, chart.WithAlpha(entry.Color, .2), clip.Rect{Max: gtx.Constraints.Max}.Op())
			}
			return dims
		})
}
