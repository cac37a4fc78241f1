package scale

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// Target lists the coefficients, multiples of 10^N, a scale may be rounded to.
type Target []float64

var (
	// CommonTargets gives the usual drafting scales 1:1, 1:2, 1:5, 1:10, 1:20, 1:50...
	CommonTargets = Target{1, 2, 5, 10}

	// ExtendedTargets also includes less orthodox scales such as 1:30 and
	// 1:800, useful for fitting a drawing into a layout.
	ExtendedTargets = Target{1, 1.5, 2, 3, 4, 5, 8, 10}
)

// Direction selects how a coefficient snaps to a target.
type Direction int

const (
	// Down snaps to the greatest target not above the coefficient.
	Down Direction = -1
	// Nearest snaps to the closest target; ties go to the smaller target.
	Nearest Direction = 0
	// Up snaps to the least target not below the coefficient.
	Up Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Down:
		return "down"
	case Up:
		return "up"
	default:
		return "nearest"
	}
}

// ParseDirection parses "down", "nearest" or "up" (also "floor", "round", "ceil").
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "down", "floor":
		return Down, true
	case "nearest", "round", "":
		return Nearest, true
	case "up", "ceil":
		return Up, true
	}
	return Nearest, false
}

// Round returns s rounded to a conventional scale. For reductions (factors
// below 1) the denominator of "1:N" is rounded, so Down still yields a
// smaller drawing and Up a larger one. A nil target means [CommonTargets].
// The result is always derived; rounding an invalid scale returns an
// invalid scale.
func (s Scale) Round(target Target, dir Direction) Scale {
	if !s.Valid() {
		return Scale{factor: s.factor, provenance: Derived}
	}
	if target == nil {
		target = CommonTargets
	}

	f := s.factor
	reduce := f < 1
	if reduce {
		f = 1 / f
		dir = -dir
	}

	coefficient, exponent := splitNumber(f)
	coefficient = target.snap(coefficient, dir)
	f = coefficient * math.Pow10(exponent)

	if reduce {
		f = 1 / f
	}
	return New(f)
}

// Floor rounds s down, giving a smaller drawing. Use it to keep a drawing
// that was scaled to fit exactly inside its drawing area.
func (s Scale) Floor(target Target) Scale {
	return s.Round(target, Down)
}

// Ceil rounds s up, giving a larger drawing that still fills its area.
func (s Scale) Ceil(target Target) Scale {
	return s.Round(target, Up)
}

// splitNumber splits n into a coefficient in [1, 10) and a power of ten,
// e.g. 250 -> 2.5, 2. The coefficient keeps six decimals, which absorbs
// floating point noise from earlier inversions.
func splitNumber(n float64) (float64, int) {
	str := strconv.FormatFloat(n, 'e', 6, 64)
	mantissa, exp, _ := strings.Cut(str, "e")
	coefficient, _ := strconv.ParseFloat(mantissa, 64)
	exponent, _ := strconv.Atoi(exp)
	return coefficient, exponent
}

// snap picks the target value for coefficient c. Candidates include each
// target's neighbours one decade down and up, so a target without 1 or 10
// still brackets every coefficient in [1, 10).
func (t Target) snap(c float64, dir Direction) float64 {
	candidates := make([]float64, 0, len(t)*3)
	for _, v := range t {
		if v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v) {
			candidates = append(candidates, v/10, v, v*10)
		}
	}
	if len(candidates) == 0 {
		return c
	}
	slices.Sort(candidates)

	switch dir {
	case Down:
		best := candidates[0]
		for _, v := range candidates {
			if v <= c {
				best = v
			}
		}
		return best
	case Up:
		for _, v := range candidates {
			if v >= c {
				return v
			}
		}
		return candidates[len(candidates)-1]
	default:
		// Ascending scan with strict comparison keeps the smaller value on ties.
		best := candidates[0]
		for _, v := range candidates[1:] {
			if math.Abs(v-c) < math.Abs(best-c) {
				best = v
			}
		}
		return best
	}
}
