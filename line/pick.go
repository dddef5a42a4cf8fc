package line

import (
	"math"

	"gioui.org/f32"
)

// NearestPointIndex returns the first point whose x lies within
// triggerWidth/2 of touchX.
func NearestPointIndex(pts []f32.Point, touchX, triggerWidth float32) (int, bool) {
	left := touchX - triggerWidth/2
	right := touchX + triggerWidth/2
	for i, p := range pts {
		if p.X >= left && p.X <= right {
			return i, true
		}
	}
	return -1, false
}

// NearestSeries returns the series whose point at index is vertically
// closest to touchY. Series too short to have that index are skipped; ties
// go to the earlier series.
func NearestSeries(projected [][]f32.Point, index int, touchY float32) int {
	closest := 0
	minDistance := float32(math.MaxFloat32)
	for i, pts := range projected {
		if index < 0 || index >= len(pts) {
			continue
		}
		if d := abs(pts[index].Y - touchY); d < minDistance {
			minDistance = d
			closest = i
		}
	}
	return closest
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

// Selection is the caller-owned selected data point of a line chart.
type Selection struct {
	// Index is the selected slot, or -1.
	Index int
	// Series is the series the selected point belongs to.
	Series int
}

// NoSelection selects nothing.
var NoSelection = Selection{Index: -1}

// Valid reports whether s selects a point.
func (s Selection) Valid() bool {
	return s.Index >= 0
}

// Pick resolves a tap. The slot comes from the first series, which defines
// the x axis; the series is the one closest to the tap vertically.
func Pick(projected [][]f32.Point, touch f32.Point, triggerWidth float32) (Selection, bool) {
	if len(projected) == 0 {
		return NoSelection, false
	}
	idx, ok := NearestPointIndex(projected[0], touch.X, triggerWidth)
	if !ok {
		return NoSelection, false
	}
	return Selection{
		Index:  idx,
		Series: NearestSeries(projected, idx, touch.Y),
	}, true
}
