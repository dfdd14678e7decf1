package core

import (
	"math"
	"strconv"
)

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
)

// Parameter describes a single tunable value and its current setting.
type Parameter struct {
	Key   string
	Label string
	Type  ParamType
	Value float64
}

// ParameterControl describes an adjustable parameter that should be exposed on
// the HUD. Steps and bounds are optional and interpreted based on the
// parameter type.
type ParameterControl struct {
	Key   string
	Label string
	Type  ParamType

	Step float64

	Min    float64
	Max    float64
	HasMin bool
	HasMax bool
}

// StepSize returns the control step, falling back to 1 for integers and
// 0.05 for floats.
func (c ParameterControl) StepSize() float64 {
	switch c.Type {
	case ParamTypeInt:
		step := math.Round(c.Step)
		if step <= 0 {
			step = 1
		}
		return step
	default:
		if c.Step <= 0 {
			return 0.05
		}
		return c.Step
	}
}

// Clamp limits v to the control bounds and rounds integer values.
func (c ParameterControl) Clamp(v float64) float64 {
	if c.Type == ParamTypeInt {
		v = math.Round(v)
	}
	if c.HasMin && v < c.Min {
		v = c.Min
	}
	if c.HasMax && v > c.Max {
		v = c.Max
	}
	return v
}

// Adjust moves value by direction steps and clamps it. ok is false when the
// value would not change.
func (c ParameterControl) Adjust(value float64, direction int) (next float64, ok bool) {
	if direction == 0 {
		return value, false
	}
	next = c.Clamp(value + float64(direction)*c.StepSize())
	if math.Abs(next-value) < 1e-9 {
		return value, false
	}
	return next, true
}

// CanAdjust reports whether a step in direction would change value.
func (c ParameterControl) CanAdjust(value float64, direction int) bool {
	_, ok := c.Adjust(value, direction)
	return ok
}

// Format renders value with a precision matching the control step.
func (c ParameterControl) Format(value float64) string {
	if c.Type == ParamTypeInt {
		return strconv.Itoa(int(math.Round(value)))
	}
	step := c.StepSize()
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

// ParameterControlsProvider exposes the list of HUD-adjustable controls.
type ParameterControlsProvider interface {
	ParameterControls() []ParameterControl
}

// ParameterProvider exposes the current parameter values.
type ParameterProvider interface {
	Parameters() []Parameter
}

// ParameterSetter allows HUD interactions to update parameters. It reports
// whether the value was accepted.
type ParameterSetter interface {
	SetParameter(key string, value float64) bool
}

// Tunable is the full contract the HUD drives.
type Tunable interface {
	ParameterControlsProvider
	ParameterProvider
	ParameterSetter
}
