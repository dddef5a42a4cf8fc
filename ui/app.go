package ui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"strconv"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"git.sr.ht/~whereswaldon/statcharts/backend"
	"git.sr.ht/~whereswaldon/statcharts/bar"
	"git.sr.ht/~whereswaldon/statcharts/chart"
	"git.sr.ht/~whereswaldon/statcharts/line"
	"git.sr.ht/~whereswaldon/statcharts/pie"
	"golang.org/x/exp/shiny/materialdesign/icons"
)

var openIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.FileFolderOpen)
	return icon
}()

// Options configure the chart widgets of a UI.
type Options struct {
	CenterHit pie.CenterHitMode
	BarStyle  bar.Style
	// Visible is the number of line chart points shown at once; zero shows
	// all of them.
	Visible int
	Values  chart.ValueLabelConfig
}

// page is one dataset streamed into the UI.
type page struct {
	src    backend.Source
	stream *stream.Stream[backend.Snapshot]
	snap   backend.Snapshot
	// focus switches to this page's tab once its kind is known.
	focus bool
}

type chooseResult struct {
	src backend.Source
	err error
}

// UI is responsible for holding the state of and drawing the top-level UI.
type UI struct {
	ws   backend.WindowState
	expl *explorer.Explorer
	th   *material.Theme

	pages       []*page
	tab         widget.Enum
	explorerBtn widget.Clickable
	choosing    bool
	chosen      chan chooseResult
	errText     string

	pie          *PieChart
	pieLegend    Legend
	quadrantHits widget.Bool
	bar          *BarChart
	flatBars     widget.Bool
	line         *LineChart
	lineLegend   Legend
}

func NewUI(ws backend.WindowState, expl *explorer.Explorer, opts Options, sources ...backend.Source) *UI {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	ui := &UI{
		ws:     ws,
		expl:   expl,
		th:     th,
		tab:    widget.Enum{Value: backend.KindPie.String()},
		chosen: make(chan chooseResult, 1),
		pie:    NewPieChart(),
		bar:    NewBarChart(),
		line:   NewLineChart(),
	}
	ui.pie.CenterHit = opts.CenterHit
	ui.pie.Values = opts.Values
	ui.quadrantHits.Value = opts.CenterHit == pie.CenterHitQuadrant
	ui.bar.Style = opts.BarStyle
	ui.bar.Values = opts.Values
	ui.flatBars.Value = opts.BarStyle == bar.StyleFlat
	ui.line.Visible = opts.Visible
	ui.line.Values = opts.Values
	for _, src := range sources {
		ui.addPage(src, false)
	}
	return ui
}

func (ui *UI) addPage(src backend.Source, focus bool) {
	ds := ui.ws.Datasource
	ui.pages = append(ui.pages, &page{
		src: src,
		stream: stream.New(ui.ws.Controller, func(ctx context.Context) <-chan backend.Snapshot {
			return ds.Stream(ctx, src)
		}),
		snap:  backend.Snapshot{Source: src.Name},
		focus: focus,
	})
}

// current returns the most recently added page holding a dataset of kind.
func (ui *UI) current(kind backend.Kind) *page {
	for i := len(ui.pages) - 1; i >= 0; i-- {
		if ui.pages[i].snap.Data.Kind == kind {
			return ui.pages[i]
		}
	}
	return nil
}

// Update the state of the UI from input events and dataset streams.
func (ui *UI) Update(gtx C) {
	for _, p := range ui.pages {
		if snap, ok := p.stream.ReadNew(gtx); ok {
			p.snap = snap
			if p.snap.Err != nil {
				ui.errText = fmt.Sprintf("%s: %v", p.src.Name, p.snap.Err)
			}
			if p.focus && p.snap.Data.Kind != backend.KindNone {
				ui.tab.Value = p.snap.Data.Kind.String()
				p.focus = false
			}
		}
	}
	ui.tab.Update(gtx)
	if ui.quadrantHits.Update(gtx) {
		ui.pie.CenterHit = pie.CenterHitCircle
		if ui.quadrantHits.Value {
			ui.pie.CenterHit = pie.CenterHitQuadrant
		}
	}
	if ui.flatBars.Update(gtx) {
		ui.bar.Style = bar.StylePerspective
		if ui.flatBars.Value {
			ui.bar.Style = bar.StyleFlat
		}
	}
	if !ui.choosing && ui.explorerBtn.Clicked(gtx) {
		ui.choosing = true
		go func() {
			src, err := ui.ws.Datasource.Choose(ui.expl)
			ui.chosen <- chooseResult{src: src, err: err}
			ui.ws.Invalidate()
		}()
	}
	select {
	case res := <-ui.chosen:
		ui.choosing = false
		switch {
		case errors.Is(res.err, explorer.ErrUserDecline):
		case res.err != nil:
			log.Printf("failed opening dataset: %v", res.err)
			ui.errText = res.err.Error()
		default:
			ui.errText = ""
			ui.addPage(res.src, true)
		}
	default:
	}
}

// Layout the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
				layout.Flexed(1, func(gtx C) D {
					return Tabs(gtx, ui.th, &ui.tab,
						[]string{backend.KindPie.String(), backend.KindBar.String(), backend.KindLine.String()},
						[]string{"Pie", "Bar", "Line"},
					)
				}),
				layout.Rigid(func(gtx C) D {
					if ui.choosing {
						gtx = gtx.Disabled()
					}
					return material.IconButton(ui.th, &ui.explorerBtn, openIcon, "Open dataset").Layout(gtx)
				}),
			)
		}),
		layout.Rigid(func(gtx C) D {
			if ui.errText == "" {
				return D{}
			}
			l := material.Body2(ui.th, ui.errText)
			l.Color = color.NRGBA{R: 150, A: 255}
			return layout.UniformInset(4).Layout(gtx, l.Layout)
		}),
		layout.Flexed(1, func(gtx C) D {
			switch ui.tab.Value {
			case backend.KindBar.String():
				return ui.layoutBar(gtx)
			case backend.KindLine.String():
				return ui.layoutLine(gtx)
			default:
				return ui.layoutPie(gtx)
			}
		}),
	)
}

func (ui *UI) layoutEmpty(gtx C, kind backend.Kind) D {
	l := material.Body1(ui.th, fmt.Sprintf("No %s dataset loaded.", kind))
	return layout.Center.Layout(gtx, l.Layout)
}

// layoutPage stacks a title, the chart, optional controls and a legend.
func (ui *UI) layoutPage(gtx C, p *page, chartW, controls, legend layout.Widget) D {
	title := p.snap.Data.Title
	if title == "" {
		title = p.src.Name
	}
	children := []layout.FlexChild{
		layout.Rigid(func(gtx C) D {
			l := material.H6(ui.th, title)
			l.Alignment = text.Middle
			return layout.UniformInset(4).Layout(gtx, l.Layout)
		}),
		layout.Flexed(1, func(gtx C) D {
			return layout.UniformInset(8).Layout(gtx, chartW)
		}),
	}
	if controls != nil {
		children = append(children, layout.Rigid(controls))
	}
	if legend != nil {
		children = append(children, layout.Rigid(func(gtx C) D {
			gtx.Constraints.Max.Y = min(gtx.Constraints.Max.Y/3, gtx.Dp(160))
			gtx.Constraints.Min = image.Point{X: gtx.Constraints.Max.X}
			return legend(gtx)
		}))
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
}

func (ui *UI) layoutPie(gtx C) D {
	p := ui.current(backend.KindPie)
	if p == nil {
		return ui.layoutEmpty(gtx, backend.KindPie)
	}
	all := p.snap.Data.Pie
	if ui.pieLegend.Update(gtx, len(all)) {
		ui.pie.Selection = pie.NoSelection
	}
	segments := make([]pie.Segment, 0, len(all))
	for i, s := range all {
		if ui.pieLegend.IsEnabled(i) {
			segments = append(segments, s)
		}
	}
	var total float64
	for _, s := range all {
		total += s.Value
	}
	entries := make([]LegendEntry, len(all))
	for i, s := range all {
		entries[i] = LegendEntry{
			Color: s.Color,
			Label: s.Label,
			Values: []string{
				ui.pie.Values.Format(s.Value, ""),
				ui.pie.Values.Format(s.Value/total*100, "%"),
			},
		}
	}
	return ui.layoutPage(gtx, p,
		func(gtx C) D {
			return ui.pie.Layout(gtx, ui.th, segments, p.snap.Data.CenterText)
		},
		material.CheckBox(ui.th, &ui.quadrantHits, "Quadrant center hits").Layout,
		func(gtx C) D {
			return ui.pieLegend.Layout(gtx, ui.th, "Segment", []string{"Value", "Share"}, entries)
		},
	)
}

func (ui *UI) layoutBar(gtx C) D {
	p := ui.current(backend.KindBar)
	if p == nil {
		return ui.layoutEmpty(gtx, backend.KindBar)
	}
	return ui.layoutPage(gtx, p,
		func(gtx C) D {
			return ui.bar.Layout(gtx, ui.th, p.snap.Data.Bars, p.snap.Data.Cap)
		},
		material.CheckBox(ui.th, &ui.flatBars, "Flat bars").Layout,
		nil,
	)
}

func (ui *UI) layoutLine(gtx C) D {
	p := ui.current(backend.KindLine)
	if p == nil {
		return ui.layoutEmpty(gtx, backend.KindLine)
	}
	all := p.snap.Data.Lines
	if ui.lineLegend.Update(gtx, len(all)) {
		ui.line.Selection = line.NoSelection
	}
	unitSuffix := p.snap.Data.Unit
	entries := make([]LegendEntry, len(all))
	for i, s := range all {
		entries[i] = LegendEntry{Color: s.Color, Label: s.Label}
		if len(s.Points) == 0 {
			continue
		}
		lo, hi := s.Points[0].Y, s.Points[0].Y
		for _, pt := range s.Points {
			lo, hi = min(lo, pt.Y), max(hi, pt.Y)
		}
		entries[i].Values = []string{
			ui.line.Values.Format(s.Points[len(s.Points)-1].Y, unitSuffix),
			ui.line.Values.Format(lo, unitSuffix),
			ui.line.Values.Format(hi, unitSuffix),
			strconv.Itoa(len(s.Points)),
		}
	}
	return ui.layoutPage(gtx, p,
		func(gtx C) D {
			return ui.line.Layout(gtx, ui.th, ui.lineLegend.FilterSeries(all), unitSuffix)
		},
		nil,
		func(gtx C) D {
			return ui.lineLegend.Layout(gtx, ui.th, "Series", []string{"Last", "Min", "Max", "Points"}, entries)
		},
	)
}
