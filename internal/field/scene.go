package field

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var (
	// ErrBadDimensions reports a scene without a positive width and height.
	ErrBadDimensions = errors.New("scene dimensions must be positive")
	// ErrTooManyCharges reports a scene with more than MaxCharges charges.
	ErrTooManyCharges = errors.New("too many charges")
	// ErrZeroCharge reports a charge of size zero.
	ErrZeroCharge = errors.New("charge size must be non-zero")
)

// Scene is the JSON description of a picture: its raster size, palette and
// charges.
type Scene struct {
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	Density    int      `json:"density,omitempty"`
	Hues       int      `json:"hues,omitempty"`
	Saturation *float32 `json:"saturation,omitempty"`
	Brightness *float32 `json:"brightness,omitempty"`
	Charges    []Charge `json:"charges"`
}

// LoadScene reads and validates a scene file.
func LoadScene(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, fmt.Errorf("read scene: %w", err)
	}
	sc, err := ParseScene(data)
	if err != nil {
		return Scene{}, fmt.Errorf("scene %s: %w", path, err)
	}
	return sc, nil
}

// ParseScene decodes a scene, fills defaults and validates it.
func ParseScene(data []byte) (Scene, error) {
	var sc Scene
	if err := json.Unmarshal(data, &sc); err != nil {
		return Scene{}, fmt.Errorf("decode: %w", err)
	}
	sc.applyDefaults()
	if err := sc.Validate(); err != nil {
		return Scene{}, err
	}
	return sc, nil
}

func (s *Scene) applyDefaults() {
	if s.Density == 0 {
		s.Density = int(DefaultDensity)
	}
	if s.Hues == 0 {
		s.Hues = int(DefaultHues)
	}
}

// Validate checks the invariants the engine relies on.
func (s Scene) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrBadDimensions, s.Width, s.Height)
	}
	if len(s.Charges) > MaxCharges {
		return fmt.Errorf("%w: %d > %d", ErrTooManyCharges, len(s.Charges), MaxCharges)
	}
	for i, c := range s.Charges {
		if c.Size == 0 {
			return fmt.Errorf("charge %d: %w", i, ErrZeroCharge)
		}
	}
	return nil
}

// Prefs returns the scene's integer palette preferences.
func (s Scene) Prefs() Prefs {
	return Prefs{Density: s.Density, Hues: s.Hues}
}

// Palette returns the scene palette, defaulting saturation and brightness to 1.
func (s Scene) Palette() Palette {
	sat, bri := float32(1), float32(1)
	if s.Saturation != nil {
		sat = *s.Saturation
	}
	if s.Brightness != nil {
		bri = *s.Brightness
	}
	return s.Prefs().Palette(sat, bri)
}

// Marshal encodes the scene as indented JSON that ParseScene accepts.
func (s Scene) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode scene: %w", err)
	}
	return append(data, '\n'), nil
}
