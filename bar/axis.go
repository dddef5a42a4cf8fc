// Package bar computes bar chart geometry: a "nice" y axis maximum, bar
// heights under that maximum, tick values, bar placement within a
// horizontally scrollable strip and the faces of perspective bars.
package bar

import (
	"math"

	"git.sr.ht/~whereswaldon/statcharts/chart"
)

// DefaultSteps is the number of y axis intervals used when none is given.
const DefaultSteps = 5

// AxisScale describes the y axis of a bar chart.
type AxisScale struct {
	// Max is the value at the top of the axis.
	Max   float64
	Steps int
	// Step is the value difference between adjacent ticks.
	Step float64
}

// Ticks returns the tick values of the scale.
func (a AxisScale) Ticks() []float64 {
	return TickValues(a.Max, a.Steps)
}

// niceUnit picks the rounding unit for a reference maximum so that tick
// labels land on round numbers.
func niceUnit(reference float64) float64 {
	switch {
	case reference <= 10:
		return 2
	case reference <= 50:
		return 10
	case reference <= 100:
		return 20
	case reference <= 1000:
		return 50
	case reference <= 10000:
		return 500
	default:
		return 1000
	}
}

func validate(op string, values []float64) error {
	if len(values) == 0 {
		return chart.Invalid(op, "no values")
	}
	for i, v := range values {
		if !(v >= 0) || math.IsInf(v, 0) {
			return chart.Invalid(op, "value %d is negative or not finite: %v", i, v)
		}
	}
	return nil
}

// ComputeAxisMax derives the axis maximum for values split into steps
// intervals. The reference value is the data maximum, raised to explicitCap
// when that is given. The result is never below the reference and always
// divides into steps equal intervals.
func ComputeAxisMax(values []float64, steps int, explicitCap *float64) (AxisScale, error) {
	const op = "bar axis"
	if err := validate(op, values); err != nil {
		return AxisScale{}, err
	}
	if steps < 1 {
		return AxisScale{}, chart.Invalid(op, "steps must be at least 1, got %d", steps)
	}
	var reference float64
	for _, v := range values {
		reference = max(reference, v)
	}
	if explicitCap != nil {
		if c := *explicitCap; !(c >= 0) || math.IsInf(c, 0) {
			return AxisScale{}, chart.Invalid(op, "cap is negative or not finite: %v", c)
		}
		reference = max(reference, *explicitCap)
	}
	var axisMax float64
	if reference == 0 {
		axisMax = float64(steps * 20)
	} else {
		unit := niceUnit(reference)
		axisMax = float64(steps) * chart.Ceil(reference/float64(steps)/unit) * unit
	}
	return AxisScale{
		Max:   axisMax,
		Steps: steps,
		Step:  axisMax / float64(steps),
	}, nil
}

// BarHeightFraction returns the share of the axis covered by value. Zero
// and negative values, as well as a non-positive axis, give zero height.
func BarHeightFraction(value, axisMax float64) float64 {
	if value > 0 && axisMax > 0 {
		return chart.Clamp(value/axisMax, 0, 1)
	}
	return 0
}

// TickValues returns the steps+1 ascending tick values from 0 to axisMax.
func TickValues(axisMax float64, steps int) []float64 {
	if steps < 1 {
		return nil
	}
	step := axisMax / float64(steps)
	ticks := make([]float64, steps+1)
	for i := range ticks {
		ticks[i] = float64(i) * step
	}
	return ticks
}
