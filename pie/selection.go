package pie

// Selection is the caller-owned highlight state of a pie chart.
type Selection struct {
	// Segment is the highlighted segment, or -1.
	Segment int
	// Center is set after a tap on the cutout and highlights every
	// segment.
	Center bool
}

// NoSelection highlights nothing.
var NoSelection = Selection{Segment: -1}

// Apply returns the selection that results from hit. A center hit toggles
// the center state and drops any single-segment highlight. A segment hit
// toggles that segment and clears everything else. A miss changes nothing.
func (s Selection) Apply(hit Hit) Selection {
	switch {
	case hit.Center:
		return Selection{Segment: -1, Center: !s.Center}
	case hit.Segment < 0:
		return s
	case s.Segment == hit.Segment && !s.Center:
		return NoSelection
	default:
		return Selection{Segment: hit.Segment}
	}
}

// Selected reports whether segment i is highlighted.
func (s Selection) Selected(i int) bool {
	return s.Center || (s.Segment >= 0 && s.Segment == i)
}

// Any reports whether anything is highlighted.
func (s Selection) Any() bool {
	return s.Center || s.Segment >= 0
}

// Mark returns a copy of segments with Selected set according to s.
func (s Selection) Mark(segments []Segment) []Segment {
	out := make([]Segment, len(segments))
	for i, seg := range segments {
		seg.Selected = s.Selected(i)
		out[i] = seg
	}
	return out
}

// SelectionOf recovers a selection from the Selected flags of segments.
// A single flagged segment selects it; more than one selects the center.
func SelectionOf(segments []Segment) Selection {
	sel := NoSelection
	count := 0
	for i, seg := range segments {
		if seg.Selected {
			sel.Segment = i
			count++
		}
	}
	if count > 1 {
		return Selection{Segment: -1, Center: true}
	}
	return sel
}
