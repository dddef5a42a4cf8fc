package bar

import "gioui.org/f32"

// Quad is a closed four point polygon.
type Quad [4]f32.Point

// Faces are the polygons of a perspective bar occupying a w by h box with
// its origin at the top left.
type Faces struct {
	Front, Side, Top Quad
}

// Faces3D splits a w by h box into the front, side and top faces of a
// perspective bar. The front takes 3/5 of the width and 7/8 of the height;
// the depth of the side grows with the bar height.
func Faces3D(w, h float32) Faces {
	frontW := w / 5 * 3
	frontH := h / 8 * 7
	topH := h - frontH
	depth := (w - frontW) * (h * 0.002)
	return Faces{
		Front: Quad{
			f32.Pt(0, h),
			f32.Pt(frontW, h),
			f32.Pt(frontW, topH),
			f32.Pt(0, topH),
		},
		Side: Quad{
			f32.Pt(frontW, topH),
			f32.Pt(frontW+depth, 0),
			f32.Pt(frontW+depth, frontH),
			f32.Pt(frontW, h),
		},
		Top: Quad{
			f32.Pt(0, topH),
			f32.Pt(frontW, topH),
			f32.Pt(frontW+depth, 0),
			f32.Pt(depth, 0),
		},
	}
}
