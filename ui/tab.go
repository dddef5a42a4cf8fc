package ui

import (
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
)

// TabStyle is one entry of a row of tabs sharing a widget.Enum.
type TabStyle struct {
	state  *widget.Enum
	label  material.LabelStyle
	border widget.Border
	inset  layout.Inset
	value  string
	fill   color.NRGBA
}

func Tab(th *material.Theme, state *widget.Enum, value, display string) TabStyle {
	selected := state.Value == value
	ts := TabStyle{
		state: state,
		label: material.Body1(th, display),
		inset: layout.UniformInset(2),
		border: widget.Border{
			Width: 2,
			Color: th.ContrastBg,
		},
		value: value,
	}
	ts.label.Alignment = text.Middle
	if selected {
		ts.label.Color = th.ContrastFg
		ts.fill = th.ContrastBg
	}
	return ts
}

func (t TabStyle) Layout(gtx C) D {
	return t.inset.Layout(gtx, func(gtx C) D {
		return t.border.Layout(gtx, func(gtx C) D {
			return t.state.Layout(gtx, t.value, func(gtx C) D {
				return layout.Background{}.Layout(gtx, func(gtx C) D {
					paint.FillShape(gtx.Ops, t.fill, clip.Rect{Max: gtx.Constraints.Min}.Op())
					return D{Size: gtx.Constraints.Min}
				}, func(gtx C) D {
					return t.inset.Layout(gtx, t.label.Layout)
				})
			})
		})
	})
}

// Tabs lays out one equally sized tab per value.
func Tabs(gtx C, th *material.Theme, state *widget.Enum, values, displays []string) D {
	children := make([]layout.FlexChild, len(values))
	for i := range values {
		children[i] = layout.Flexed(1, Tab(th, state, values[i], displays[i]).Layout)
	}
	return layout.Flex{}.Layout(gtx, children...)
}
