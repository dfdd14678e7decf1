package app

import (
	"electric-fields/internal/core"
	"electric-fields/internal/engine"
	"electric-fields/internal/field"
)

// Knob keys understood by Knobs.SetParameter.
const (
	KeyDensity    = "density"
	KeyHues       = "hues"
	KeySaturation = "saturation"
	KeyBrightness = "brightness"
)

var knobControls = []core.ParameterControl{
	{Key: KeyDensity, Label: "Density", Type: core.ParamTypeInt, Step: 100, Min: field.MinDensity, Max: field.MaxDensity, HasMin: true, HasMax: true},
	{Key: KeyHues, Label: "Hues", Type: core.ParamTypeInt, Step: 10, Min: field.MinHues, Max: field.MaxHues, HasMin: true, HasMax: true},
	{Key: KeySaturation, Label: "Saturation", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
	{Key: KeyBrightness, Label: "Brightness", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
}

// Knobs exposes the palette preferences and the session's saturation and
// brightness as HUD parameters. Changes apply to the next run.
type Knobs struct {
	session *engine.Session
	prefs   field.Prefs
	changed bool
}

// NewKnobs binds the knobs to a session, starting from prefs.
func NewKnobs(s *engine.Session, prefs field.Prefs) *Knobs {
	return &Knobs{session: s, prefs: prefs}
}

// Prefs returns the palette preferences for the next run.
func (k *Knobs) Prefs() field.Prefs { return k.prefs }

// ParameterControls implements core.ParameterControlsProvider.
func (k *Knobs) ParameterControls() []core.ParameterControl {
	return append([]core.ParameterControl(nil), knobControls...)
}

// Parameters implements core.ParameterProvider.
func (k *Knobs) Parameters() []core.Parameter {
	out := make([]core.Parameter, len(knobControls))
	for i, c := range knobControls {
		out[i] = core.Parameter{Key: c.Key, Label: c.Label, Type: c.Type, Value: k.value(c.Key)}
	}
	return out
}

func (k *Knobs) value(key string) float64 {
	switch key {
	case KeyDensity:
		return float64(k.prefs.Density)
	case KeyHues:
		return float64(k.prefs.Hues)
	case KeySaturation:
		return float64(k.session.Saturation())
	case KeyBrightness:
		return float64(k.session.Brightness())
	}
	return 0
}

func control(key string) (core.ParameterControl, bool) {
	for _, c := range knobControls {
		if c.Key == key {
			return c, true
		}
	}
	return core.ParameterControl{}, false
}

// SetParameter implements core.ParameterSetter. Values are clamped to the
// control bounds; unknown keys are rejected.
func (k *Knobs) SetParameter(key string, value float64) bool {
	c, ok := control(key)
	if !ok {
		return false
	}
	value = c.Clamp(value)
	switch key {
	case KeyDensity:
		k.prefs.Density = int(value)
	case KeyHues:
		k.prefs.Hues = int(value)
	case KeySaturation:
		k.session.SetSaturation(float32(value))
	case KeyBrightness:
		k.session.SetBrightness(float32(value))
	}
	k.changed = true
	return true
}

// Nudge moves a knob by direction steps. It reports whether the value
// changed.
func (k *Knobs) Nudge(key string, direction int) bool {
	c, ok := control(key)
	if !ok {
		return false
	}
	next, ok := c.Adjust(k.value(key), direction)
	if !ok {
		return false
	}
	return k.SetParameter(key, next)
}

// TakeChanged reports whether any knob changed since the last call.
func (k *Knobs) TakeChanged() bool {
	changed := k.changed
	k.changed = false
	return changed
}
