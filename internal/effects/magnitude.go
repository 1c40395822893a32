package effects

import (
	"log"
	"sort"

	"github.com/KirkDiggler/gameplay-effects/internal/dice"
)

// MagnitudeSource calculates the magnitude of a modifier for a spec.
// Returning false means "no value" and the contribution becomes zero.
type MagnitudeSource interface {
	Calculate(spec *Spec) (float64, bool)
}

// Constant is a fixed magnitude
type Constant float64

// Calculate implements MagnitudeSource
func (c Constant) Calculate(*Spec) (float64, bool) {
	return float64(c), true
}

// MagnitudeFunc adapts a function to MagnitudeSource
type MagnitudeFunc func(spec *Spec) (float64, bool)

// Calculate implements MagnitudeSource
func (f MagnitudeFunc) Calculate(spec *Spec) (float64, bool) {
	return f(spec)
}

// CurvePoint is one (level, value) sample of a LevelCurve
type CurvePoint struct {
	Level float64
	Value float64
}

// LevelCurve scales a magnitude by the spec level. Values between points are
// interpolated linearly; levels outside the curve clamp to the end points.
type LevelCurve struct {
	Points []CurvePoint
}

// NewLevelCurve creates a curve from points in any order
func NewLevelCurve(points ...CurvePoint) LevelCurve {
	sorted := make([]CurvePoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Level < sorted[j].Level })
	return LevelCurve{Points: sorted}
}

// Calculate implements MagnitudeSource
func (c LevelCurve) Calculate(spec *Spec) (float64, bool) {
	if len(c.Points) == 0 || spec == nil {
		return 0, false
	}

	level := spec.Level()
	first, last := c.Points[0], c.Points[len(c.Points)-1]
	if level <= first.Level {
		return first.Value, true
	}
	if level >= last.Level {
		return last.Value, true
	}

	for i := 1; i < len(c.Points); i++ {
		hi := c.Points[i]
		if level > hi.Level {
			continue
		}
		lo := c.Points[i-1]
		if hi.Level == lo.Level {
			return hi.Value, true
		}
		t := (level - lo.Level) / (hi.Level - lo.Level)
		return lo.Value + t*(hi.Value-lo.Value), true
	}

	return last.Value, true
}

// DiceMagnitude rolls dice notation such as "1d4+1" each time it is calculated
type DiceMagnitude struct {
	Notation string
	Roller   dice.Roller
}

// Calculate implements MagnitudeSource
func (d DiceMagnitude) Calculate(*Spec) (float64, bool) {
	if d.Roller == nil {
		return 0, false
	}

	result, err := dice.RollNotation(d.Roller, d.Notation)
	if err != nil {
		log.Printf("[EFFECTS] Dice magnitude %q failed: %v", d.Notation, err)
		return 0, false
	}

	return float64(result.Total), true
}
