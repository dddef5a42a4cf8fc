package line

import (
	"errors"
	"testing"

	"gioui.org/f32"
	"git.sr.ht/~whereswaldon/statcharts/chart"
)

func seriesOf(label string, ys ...float64) Series {
	s := Series{Label: label}
	for i, y := range ys {
		s.Points = append(s.Points, DataPoint{X: float64(i), Y: y})
	}
	return s
}

func TestComputeYRange(t *testing.T) {
	minY, maxY, err := ComputeYRange([]Series{
		seriesOf("a", 10, 20),
		seriesOf("b", 5, 30),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if minY != 5 || maxY != 30 {
		t.Errorf("expected (5, 30), got (%v, %v)", minY, maxY)
	}
	minY, maxY, err = ComputeYRange([]Series{seriesOf("neg", -4, -9, -1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if minY != -9 || maxY != -1 {
		t.Errorf("expected (-9, -1), got (%v, %v)", minY, maxY)
	}
}

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		name   string
		series []Series
	}{
		{name: "no series"},
		{name: "empty series", series: []Series{seriesOf("a", 1), {Label: "b"}}},
		{name: "mismatched lengths", series: []Series{seriesOf("a", 1, 2), seriesOf("b", 1)}},
		{name: "longer than reference", series: []Series{seriesOf("a", 1), seriesOf("b", 1, 2)}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if err := Validate(tc.series); !errors.Is(err, chart.ErrInvalidInput) {
				t.Errorf("expected invalid input error, got %v", err)
			}
			if _, err := ProjectSeries(tc.series, Viewport{Bottom: 100, SlotWidth: 10}); !errors.Is(err, chart.ErrInvalidInput) {
				t.Errorf("expected projection to reject input, got %v", err)
			}
		})
	}
}

func TestProjectSeries(t *testing.T) {
	vp := Viewport{Left: 20, Top: 10, Bottom: 110, SlotWidth: 40}
	projected, err := ProjectSeries([]Series{
		seriesOf("a", 0, 50, 100),
		seriesOf("b", 100, 25, 0),
	}, vp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := [][]f32.Point{
		{f32.Pt(40, 110), f32.Pt(80, 60), f32.Pt(120, 10)},
		{f32.Pt(40, 10), f32.Pt(80, 85), f32.Pt(120, 110)},
	}
	for i := range expected {
		for j := range expected[i] {
			if projected[i][j] != expected[i][j] {
				t.Errorf("series %d point %d: expected %v, got %v", i, j, expected[i][j], projected[i][j])
			}
		}
	}
}

func TestProjectFlatSeriesIsCentered(t *testing.T) {
	vp := Viewport{Top: 0, Bottom: 200, SlotWidth: 10}
	projected, err := ProjectSeries([]Series{seriesOf("flat", 7, 7, 7, 7)}, vp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, p := range projected[0] {
		if p.Y != 100 {
			t.Errorf("[%d] expected y 100, got %v", i, p.Y)
		}
	}
}

func TestProjectSeriesIsIdempotent(t *testing.T) {
	series := []Series{seriesOf("a", 3, 1, 4, 1, 5), seriesOf("b", 9, 2, 6, 5, 3)}
	vp := Viewport{Left: 3, Top: 7, Bottom: 93, SlotWidth: 17}
	a, _ := ProjectSeries(series, vp)
	b, _ := ProjectSeries(series, vp)
	for i := range a {
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				t.Errorf("series %d point %d differs between runs", i, j)
			}
		}
	}
}

func TestProjectSeriesRejectsInvertedViewport(t *testing.T) {
	_, err := ProjectSeries([]Series{seriesOf("a", 1)}, Viewport{Top: 50, Bottom: 10})
	if !errors.Is(err, chart.ErrInvalidInput) {
		t.Errorf("expected invalid input error, got %v", err)
	}
}

func TestBezierControlPoints(t *testing.T) {
	pts := []f32.Point{f32.Pt(0, 10), f32.Pt(20, 30), f32.Pt(60, 0)}
	c1, c2 := BezierControlPoints(pts)
	if len(c1) != 2 || len(c2) != 2 {
		t.Fatalf("expected 2 control points each, got %d and %d", len(c1), len(c2))
	}
	if c1[0] != f32.Pt(10, 10) || c2[0] != f32.Pt(10, 30) {
		t.Errorf("unexpected first segment controls %v %v", c1[0], c2[0])
	}
	if c1[1] != f32.Pt(40, 30) || c2[1] != f32.Pt(40, 0) {
		t.Errorf("unexpected second segment controls %v %v", c1[1], c2[1])
	}
	if c1, c2 := BezierControlPoints(pts[:1]); c1 != nil || c2 != nil {
		t.Errorf("expected no controls for a single point")
	}
}

func TestNearestPointIndex(t *testing.T) {
	pts := []f32.Point{f32.Pt(20, 0), f32.Pt(60, 0), f32.Pt(100, 0)}
	for _, tc := range []struct {
		touchX, width float32
		index         int
		ok            bool
	}{
		{touchX: 62, width: 40, index: 1, ok: true},
		{touchX: 40, width: 40, index: 0, ok: true},
		{touchX: 0, width: 40, index: 0, ok: true},
		{touchX: 130, width: 40, index: -1, ok: false},
		{touchX: 41, width: 1, index: -1, ok: false},
	} {
		idx, ok := NearestPointIndex(pts, tc.touchX, tc.width)
		if idx != tc.index || ok != tc.ok {
			t.Errorf("NearestPointIndex(%v, %v): expected (%d, %v), got (%d, %v)", tc.touchX, tc.width, tc.index, tc.ok, idx, ok)
		}
	}
}

func TestPick(t *testing.T) {
	projected := [][]f32.Point{
		{f32.Pt(20, 100), f32.Pt(60, 40)},
		{f32.Pt(20, 10), f32.Pt(60, 90)},
		{f32.Pt(20, 50), f32.Pt(60, 70)},
	}
	for _, tc := range []struct {
		touch  f32.Point
		sel    Selection
		picked bool
	}{
		{touch: f32.Pt(22, 95), sel: Selection{Index: 0, Series: 0}, picked: true},
		{touch: f32.Pt(18, 15), sel: Selection{Index: 0, Series: 1}, picked: true},
		{touch: f32.Pt(58, 72), sel: Selection{Index: 1, Series: 2}, picked: true},
		{touch: f32.Pt(200, 72), sel: NoSelection, picked: false},
	} {
		sel, ok := Pick(projected, tc.touch, 40)
		if sel != tc.sel || ok != tc.picked {
			t.Errorf("Pick(%v): expected (%+v, %v), got (%+v, %v)", tc.touch, tc.sel, tc.picked, sel, ok)
		}
	}
	if _, ok := Pick(nil, f32.Pt(0, 0), 10); ok {
		t.Errorf("expected nothing to be picked without series")
	}
	if NoSelection.Valid() {
		t.Errorf("expected NoSelection to be invalid")
	}
}

func TestNearestSeriesSkipsShortSeries(t *testing.T) {
	projected := [][]f32.Point{
		{f32.Pt(0, 0), f32.Pt(10, 100)},
		{f32.Pt(0, 0)},
		{f32.Pt(0, 0), f32.Pt(10, 60)},
	}
	if got := NearestSeries(projected, 1, 0); got != 2 {
		t.Errorf("expected series 2, got %d", got)
	}
}
