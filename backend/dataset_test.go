package backend

import (
	"bytes"
	"errors"
	"image/color"
	"strings"
	"testing"

	"git.sr.ht/~whereswaldon/statcharts/chart"
)

func TestParsePie(t *testing.T) {
	ds, err := Parse(strings.NewReader("pie;center=150 persons were asked,value,color\nPython, 29, #ff0000\nSwift,21"))
	if err != nil {
		t.Fatalf("expected parse to succeed, got: %v", err)
	}
	if ds.Kind != KindPie {
		t.Errorf("expected kind %v, got %v", KindPie, ds.Kind)
	}
	if ds.CenterText != "150 persons were asked" {
		t.Errorf("expected center text, got %q", ds.CenterText)
	}
	if len(ds.Pie) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(ds.Pie))
	}
	if s := ds.Pie[0]; s.Label != "Python" || s.Value != 29 || s.Color != (color.NRGBA{R: 0xff, A: 0xff}) {
		t.Errorf("unexpected first segment %+v", s)
	}
	if s := ds.Pie[1]; s.Label != "Swift" || s.Value != 21 || s.Color != chart.PaletteColor(1) {
		t.Errorf("unexpected second segment %+v", s)
	}
}

func TestParseLongRow(t *testing.T) {
	label := strings.Repeat("x", 5000)
	ds, err := Parse(strings.NewReader("pie\n" + label + ",1\nB,3\n"))
	if err != nil {
		t.Fatalf("expected parse to succeed, got: %v", err)
	}
	if len(ds.Pie) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(ds.Pie))
	}
	if s := ds.Pie[0]; s.Label != label || s.Value != 1 {
		t.Errorf("expected long label with value 1, got label of %d bytes and value %v", len(s.Label), s.Value)
	}
	if s := ds.Pie[1]; s.Label != "B" || s.Value != 3 {
		t.Errorf("unexpected second segment %+v", s)
	}
}

func TestParseBar(t *testing.T) {
	ds, err := Parse(strings.NewReader("bar;cap=100;title=Platforms,value,color,text_color\nAndroid,60,#00ff00,#000000\niOS,40\n"))
	if err != nil {
		t.Fatalf("expected parse to succeed, got: %v", err)
	}
	if ds.Title != "Platforms" {
		t.Errorf("expected title Platforms, got %q", ds.Title)
	}
	if ds.Cap == nil || *ds.Cap != 100 {
		t.Errorf("expected cap 100, got %v", ds.Cap)
	}
	if len(ds.Bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(ds.Bars))
	}
	if tc := ds.Bars[0].TextColor; tc == nil || *tc != (color.NRGBA{A: 0xff}) {
		t.Errorf("expected black text color, got %v", tc)
	}
	if ds.Bars[1].TextColor != nil {
		t.Errorf("expected no text color, got %v", *ds.Bars[1].TextColor)
	}
	if got := ds.Bars[1].LabelColor(); got != chart.PaletteColor(1) {
		t.Errorf("expected label color to fall back to bar color, got %v", got)
	}
}

func TestParseLine(t *testing.T) {
	ds, err := Parse(strings.NewReader("line;unit=$,BTC,ETH #627eea\nMon,1.5,2\nTue,3,4\n"))
	if err != nil {
		t.Fatalf("expected parse to succeed, got: %v", err)
	}
	if ds.Unit != "$" {
		t.Errorf("expected unit $, got %q", ds.Unit)
	}
	if len(ds.Lines) != 2 {
		t.Fatalf("expected 2 series, got %d", len(ds.Lines))
	}
	if ds.Lines[0].Label != "BTC" || ds.Lines[1].Label != "ETH" {
		t.Errorf("unexpected series labels %q, %q", ds.Lines[0].Label, ds.Lines[1].Label)
	}
	if ds.Len() != 2 {
		t.Fatalf("expected 2 points, got %d", ds.Len())
	}
	p := ds.Lines[1].Points[1]
	if p.X != 1 || p.Y != 4 || p.Label != "Tue" {
		t.Errorf("unexpected point %+v", p)
	}
	if ds.Lines[0].Color != chart.PaletteColor(0) {
		t.Errorf("expected palette color, got %v", ds.Lines[0].Color)
	}
	if ds.Lines[1].Color != (color.NRGBA{R: 0x62, G: 0x7e, B: 0xea, A: 0xff}) {
		t.Errorf("expected heading color, got %v", ds.Lines[1].Color)
	}
	if ds.Lines[0].Points[0].Y != 1.5 {
		t.Errorf("expected 1.5, got %v", ds.Lines[0].Points[0].Y)
	}
}

func TestParseErrors(t *testing.T) {
	for _, tc := range []struct {
		name    string
		input   string
		target  error
		rowLine int
	}{
		{name: "empty", input: "", target: ErrNoHeading},
		{name: "unknown kind", input: "scatter,value\na,1\n", target: ErrUnknownKind},
		{name: "bad value", input: "pie\nPython,abc\n", rowLine: 2},
		{name: "non-positive pie value", input: "pie\nPython,1\nSwift,0\n", rowLine: 3},
		{name: "negative bar value", input: "bar\nQ1,-1\n", rowLine: 2},
		{name: "not finite", input: "bar\nQ1,NaN\n", rowLine: 2},
		{name: "bad color", input: "bar\nQ1,1,#zzzzzz\n", rowLine: 2},
		{name: "missing line cell", input: "line,BTC,ETH\nMon,1,\n", rowLine: 2},
		{name: "short line row", input: "line,BTC,ETH\nMon,1\n", rowLine: 2},
		{name: "bad series color", input: "line,BTC #nothex\nMon,1\n"},
		{name: "bare quote", input: "bar\nQ\"1,5\n", rowLine: 2},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.input))
			if err == nil {
				t.Fatalf("expected an error")
			}
			if tc.target != nil && !errors.Is(err, tc.target) {
				t.Errorf("expected %v, got %v", tc.target, err)
			}
			if tc.rowLine != 0 {
				var rowErr *RowError
				if !errors.As(err, &rowErr) {
					t.Fatalf("expected a row error, got %v", err)
				}
				if rowErr.Line != tc.rowLine {
					t.Errorf("expected line %d, got %d", tc.rowLine, rowErr.Line)
				}
			}
		})
	}
}

func TestDecoderIncremental(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	dec := NewDecoder(buf)

	buf.WriteString("bar,value\nQ1,2")
	changed, err := dec.ReadAvailable()
	if err != nil || !changed {
		t.Fatalf("expected heading to be decoded, got changed=%v err=%v", changed, err)
	}
	if !dec.Headed() || dec.Dataset().Len() != 0 {
		t.Errorf("expected heading only, got %+v", dec.Dataset())
	}

	buf.WriteString("5\nQ\"2,1\nQ3,35\n")
	changed, err = dec.ReadAvailable()
	var rowErr *RowError
	if !errors.As(err, &rowErr) || rowErr.Line != 3 {
		t.Fatalf("expected row error on line 3, got %v", err)
	}
	if !changed {
		t.Errorf("expected the row before the bad one to count as a change")
	}
	changed, err = dec.ReadAvailable()
	if err != nil || !changed {
		t.Fatalf("expected decoding to resume, got changed=%v err=%v", changed, err)
	}
	ds := dec.Dataset()
	if ds.Len() != 2 || ds.Bars[0].Value != 25 || ds.Bars[1].Value != 35 {
		t.Errorf("unexpected bars %+v", ds.Bars)
	}

	changed, err = dec.ReadAvailable()
	if err != nil || changed {
		t.Errorf("expected nothing new, got changed=%v err=%v", changed, err)
	}
}

func TestDecoderFatalHeading(t *testing.T) {
	dec := NewDecoder(strings.NewReader("bar;cap=-3\nQ1,1\n"))
	_, err := dec.ReadAvailable()
	if err == nil {
		t.Fatalf("expected an error")
	}
	var rowErr *RowError
	if errors.As(err, &rowErr) {
		t.Errorf("expected a fatal error, got row error %v", err)
	}
	if _, again := dec.ReadAvailable(); again != err {
		t.Errorf("expected the fatal error to be sticky, got %v", again)
	}
}

func TestDatasetClone(t *testing.T) {
	ds, err := Parse(strings.NewReader("line,BTC\nMon,1\n"))
	if err != nil {
		t.Fatalf("expected parse to succeed, got: %v", err)
	}
	c := ds.Clone()
	c.Lines[0].Points[0].Y = 7
	if ds.Lines[0].Points[0].Y != 1 {
		t.Errorf("expected clone to not share points")
	}
}

func TestDecoderPreview(t *testing.T) {
	buf := bytes.NewBufferString("bar,value\nQ1,25\nQ2,4")
	dec := NewDecoder(buf)
	if _, err := dec.ReadAvailable(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := dec.Dataset().Len(); n != 1 {
		t.Errorf("expected 1 complete bar, got %d", n)
	}
	preview := dec.Preview()
	if preview.Len() != 2 || preview.Bars[1].Value != 4 {
		t.Errorf("expected preview to include held row, got %+v", preview.Bars)
	}

	buf.WriteString("0\n")
	if _, err := dec.ReadAvailable(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds := dec.Preview(); ds.Len() != 2 || ds.Bars[1].Value != 40 {
		t.Errorf("expected completed row to replace the preview, got %+v", ds.Bars)
	}

	buf.WriteString("Q3,")
	if _, err := dec.ReadAvailable(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := dec.Preview().Len(); n != 2 {
		t.Errorf("expected undecodable held row to be left out, got %d bars", n)
	}
}
