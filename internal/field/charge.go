package field

import (
	"fmt"
	"math"
	"sync"

	"electric-fields/pkg/core"
)

const (
	// MinCharges is the smallest number of charges produced by Randomise.
	MinCharges = 2
	// MaxCharges bounds the number of charges a Charges list accepts.
	MaxCharges = 10

	// randomSizeLimit bounds the magnitude of randomised charges.
	randomSizeLimit = 20.0
)

// Charge is a signed point source at an integer pixel position.
type Charge struct {
	X    int     `json:"x"`
	Y    int     `json:"y"`
	Size float64 `json:"size"`
}

func (c Charge) String() string {
	return fmt.Sprintf("Charge(%d, %d, %g)", c.X, c.Y, c.Size)
}

// FindCharge returns the index of the charge nearest to (x, y) whose squared
// distance is at most maxDistSq. Ties keep the earliest charge.
func FindCharge(charges []Charge, x, y, maxDistSq int) (int, bool) {
	nearest := -1
	dMin := math.MaxInt
	for i, c := range charges {
		dx := x - c.X
		dy := y - c.Y
		d := dx*dx + dy*dy
		if d <= maxDistSq && d < dMin {
			nearest = i
			dMin = d
		}
	}
	return nearest, nearest >= 0
}

// Charges is the mutable, bounded charge list edited by the UI. It is safe for
// concurrent use; renders work on copies obtained from Snapshot.
type Charges struct {
	mu         sync.Mutex
	items      []Charge
	sameDistSq int
}

// NewCharges creates an empty list. sameRadius is the pixel distance within
// which a point hits an existing charge.
func NewCharges(sameRadius int) *Charges {
	if sameRadius < 0 {
		sameRadius = 0
	}
	return &Charges{sameDistSq: sameRadius * sameRadius}
}

// Add appends c. It fails when the list is full or c has zero size.
func (l *Charges) Add(c Charge) bool {
	if c.Size == 0 || math.IsNaN(c.Size) {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.items) >= MaxCharges {
		return false
	}
	l.items = append(l.items, c)
	return true
}

// AddAt is shorthand for Add(Charge{x, y, size}).
func (l *Charges) AddAt(x, y int, size float64) bool {
	return l.Add(Charge{X: x, Y: y, Size: size})
}

// Find returns the charge hit by (x, y), if any.
func (l *Charges) Find(x, y int) (Charge, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i, ok := FindCharge(l.items, x, y, l.sameDistSq)
	if !ok {
		return Charge{}, false
	}
	return l.items[i], true
}

// Invert flips the sign of the charge hit by (x, y) and returns its new value.
func (l *Charges) Invert(x, y int) (Charge, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i, ok := FindCharge(l.items, x, y, l.sameDistSq)
	if !ok {
		return Charge{}, false
	}
	l.items[i].Size = -l.items[i].Size
	return l.items[i], true
}

// Scale multiplies the size of the charge hit by (x, y) by factor. A factor
// that would zero the charge is refused.
func (l *Charges) Scale(x, y int, factor float64) (Charge, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i, ok := FindCharge(l.items, x, y, l.sameDistSq)
	if !ok {
		return Charge{}, false
	}
	size := l.items[i].Size * factor
	if size == 0 || math.IsNaN(size) || math.IsInf(size, 0) {
		return l.items[i], false
	}
	l.items[i].Size = size
	return l.items[i], true
}

// Clear removes every charge.
func (l *Charges) Clear() {
	l.mu.Lock()
	l.items = l.items[:0]
	l.mu.Unlock()
}

// Len reports the number of charges.
func (l *Charges) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Snapshot returns a copy of the current charges.
func (l *Charges) Snapshot() []Charge {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Charge(nil), l.items...)
}

// Randomise replaces the list with between MinCharges and MaxCharges-1
// random charges inside a w*h area.
func (l *Charges) Randomise(rng *core.RNG, w, h int) {
	count := rng.IntRange(MinCharges, MaxCharges)
	l.Clear()
	for l.Len() < count {
		l.AddAt(rng.IntN(w), rng.IntN(h), rng.FloatRange(-randomSizeLimit, randomSizeLimit))
	}
}
