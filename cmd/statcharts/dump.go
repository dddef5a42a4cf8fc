package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"git.sr.ht/~whereswaldon/statcharts/backend"
	"git.sr.ht/~whereswaldon/statcharts/bar"
	"git.sr.ht/~whereswaldon/statcharts/line"
	"git.sr.ht/~whereswaldon/statcharts/pie"
	"git.sr.ht/~whereswaldon/statcharts/ui"
)

// dumpFrame is the canvas the line chart geometry is computed for when
// there is no window.
var dumpFrame = line.Frame{
	Width:             800,
	Height:            400,
	XLabelHeight:      16,
	XLabelLineHeight:  16,
	XLabelWidth:       40,
	YLabelWidth:       60,
	VerticalPadding:   8,
	HorizontalPadding: 8,
	LabelSpacing:      12,
}

// dumpAll prints the geometry of every source. It keeps going after a bad
// source and returns all errors joined.
func dumpAll(w io.Writer, sources []backend.Source, opts ui.Options) error {
	ds := backend.NewDatasource(false)
	var errs []error
	for _, src := range sources {
		ctx, cancel := context.WithCancel(context.Background())
		snap, ok := <-ds.Stream(ctx, src)
		cancel()
		if !ok {
			snap.Err = fmt.Errorf("no data")
		}
		if err := dump(w, snap, opts); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", src.Name, err))
		}
	}
	return errors.Join(errs...)
}

func dump(w io.Writer, snap backend.Snapshot, opts ui.Options) error {
	if snap.Err != nil {
		return snap.Err
	}
	data := snap.Data
	fmt.Fprintf(w, "== %s (%s) %s\n", snap.Source, data.Kind, data.Title)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	defer tw.Flush()
	f := opts.Values.Format
	switch data.Kind {
	case backend.KindPie:
		arcs, err := pie.Layout(data.Pie)
		if err != nil {
			return err
		}
		fmt.Fprintln(tw, "segment\tvalue\tstart\tsweep\tpercent\t")
		for i, arc := range arcs {
			fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.2f\t%d%%\t\n", data.Pie[i].Label, f(data.Pie[i].Value, ""), arc.StartAngle, arc.SweepAngle, arc.Percentage)
		}
	case backend.KindBar:
		values := make([]float64, len(data.Bars))
		for i, b := range data.Bars {
			values[i] = b.Value
		}
		scale, err := bar.ComputeAxisMax(values, bar.DefaultSteps, data.Cap)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "axis max\t%s\tstep\t%s\t\n", f(scale.Max, ""), f(scale.Step, ""))
		fmt.Fprintln(tw, "bar\tvalue\theight\t")
		for i, b := range data.Bars {
			fmt.Fprintf(tw, "%s\t%s\t%.3f\t\n", b.Label, f(b.Value, ""), bar.BarHeightFraction(values[i], scale.Max))
		}
	case backend.KindLine:
		vp := dumpFrame.Viewport()
		minY, maxY, err := line.ComputeYRange(data.Lines)
		if err != nil {
			return err
		}
		projected, err := line.ProjectSeries(data.Lines, vp)
		if err != nil {
			return err
		}
		labels := line.YLabels(minY, maxY, dumpFrame.LabelHeight(), dumpFrame.XLabelLineHeight, 8)
		fmt.Fprintf(tw, "range\t%s\t%s\t\n", f(minY, data.Unit), f(maxY, data.Unit))
		for i, v := range labels.Values {
			fmt.Fprintf(tw, "y label\t%s\t%.1f\t\n", f(v, data.Unit), labels.Y(i, vp))
		}
		for i, s := range data.Lines {
			for j, pt := range projected[i] {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f,%.1f\t\n", s.Label, s.Points[j].Label, f(s.Points[j].Y, data.Unit), pt.X, pt.Y)
			}
		}
	default:
		return fmt.Errorf("no dataset heading")
	}
	return nil
}
