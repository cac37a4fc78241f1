// Package scale implements the scale of a drawing: the ratio between a
// length on paper and the same length in the model.
//
// A [Scale] is created either from text typed by a user ([Parse]) or from a
// plain number ([New]). Text is accepted in four notations, tried in order:
//
//	"0.01", "~0,5"     plain decimal number
//	"10%"              percentage
//	"1:100", "1/100"   ratio
//	"1\" = 4m"         equivalence of two lengths (see package units)
//
// Parsing never returns an error. Text that matches no notation, or that
// divides by zero, produces a Scale whose [Scale.Valid] method reports
// false. Callers check validity before using the factor.
//
// Scales remember the text they were parsed from, and [Scale.String]
// returns it verbatim. Rounding to a conventional drafting scale with
// [Scale.Round], [Scale.Floor] or [Scale.Ceil] drops that text, since the
// rounded factor no longer matches it.
//
//	s := scale.Parse("1:42")
//	s.String()                              // "1:42"
//	s.Round(scale.CommonTargets, scale.Nearest).String() // "1:50"
package scale

import (
	"errors"
	"math"
	"strconv"
)

// ErrInvalid is returned when formatting or decoding an invalid Scale.
var ErrInvalid = errors.New("invalid scale")

// Tolerance is the absolute difference under which two factors compare equal.
const Tolerance = 1e-10

// Provenance tells where a Scale's factor came from.
type Provenance int

const (
	// Derived scales were created from a number or by rounding.
	Derived Provenance = iota
	// Parsed scales were created from text and still carry it.
	Parsed
)

// String returns the provenance name.
func (p Provenance) String() string {
	if p == Parsed {
		return "parsed"
	}
	return "derived"
}

// Scale is a paper-length to model-length ratio. The zero value is an
// invalid, derived Scale.
type Scale struct {
	factor     float64
	text       string
	provenance Provenance
}

// New returns a derived Scale with the given factor.
func New(factor float64) Scale {
	return Scale{factor: factor, provenance: Derived}
}

// Parse returns a Scale parsed from text. The result is invalid, not an
// error, when text cannot be understood.
func Parse(text string) Scale {
	f, ok := parseFactor(text)
	if !ok {
		f = math.NaN()
	}
	return Scale{factor: f, text: text, provenance: Parsed}
}

// Valid reports whether s has a usable factor: non-zero and finite.
func (s Scale) Valid() bool {
	return s.factor != 0 && !math.IsNaN(s.factor) && !math.IsInf(s.factor, 0)
}

// Factor returns the paper/model ratio. ok is false for invalid scales.
func (s Scale) Factor() (f float64, ok bool) {
	if !s.Valid() {
		return 0, false
	}
	return s.factor, true
}

// MustFactor returns the factor and panics if s is invalid.
func (s Scale) MustFactor() float64 {
	f, ok := s.Factor()
	if !ok {
		panic("scale: MustFactor called on invalid scale")
	}
	return f
}

// Source returns the text s was parsed from. ok is false for derived scales.
func (s Scale) Source() (text string, ok bool) {
	return s.text, s.provenance == Parsed
}

// Provenance reports whether s still carries the text it was parsed from.
func (s Scale) Provenance() Provenance {
	return s.provenance
}

// Compare orders two scales by factor. The result is -1, 0 or +1; ok is
// false when either scale is invalid, in which case the scales have no
// defined order. Factors closer than [Tolerance] compare equal.
func (s Scale) Compare(o Scale) (cmp int, ok bool) {
	if !s.Valid() || !o.Valid() {
		return 0, false
	}
	switch d := s.factor - o.factor; {
	case math.Abs(d) <= Tolerance:
		return 0, true
	case d < 0:
		return -1, true
	default:
		return 1, true
	}
}

// Equal reports whether s and o are both valid and compare equal.
func (s Scale) Equal(o Scale) bool {
	c, ok := s.Compare(o)
	return ok && c == 0
}

// Format synthesizes a human readable string from the factor, "1:N" for
// reductions and "N:1" for enlargements. The string is prefixed with "~"
// when it does not reproduce the factor exactly. Format ignores any text
// s was parsed from; see [Scale.String].
func (s Scale) Format() (string, error) {
	if !s.Valid() {
		return "", ErrInvalid
	}
	var str string
	if s.factor > 1 {
		str = formatInt(s.factor) + ":1"
	} else {
		str = "1:" + formatInt(1/s.factor)
	}
	if !Parse(str).Equal(s) {
		str = "~" + str
	}
	return str, nil
}

// String returns the original text for parsed scales, and the formatted
// factor otherwise.
func (s Scale) String() string {
	if s.provenance == Parsed {
		return s.text
	}
	str, err := s.Format()
	if err != nil {
		return "invalid scale"
	}
	return str
}

// GoString returns a developer friendly representation.
func (s Scale) GoString() string {
	if !s.Valid() {
		return "scale.Scale(invalid)"
	}
	return "scale.Scale(" + strconv.FormatFloat(s.factor, 'g', -1, 64) + ")"
}

// MarshalText implements encoding.TextMarshaler. Invalid scales cannot be
// marshalled.
func (s Scale) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, ErrInvalid
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. On invalid text the
// receiver is left unchanged and ErrInvalid is returned.
func (s *Scale) UnmarshalText(text []byte) error {
	parsed := Parse(string(text))
	if !parsed.Valid() {
		return ErrInvalid
	}
	*s = parsed
	return nil
}

func formatInt(f float64) string {
	return strconv.FormatFloat(math.Round(f), 'f', 0, 64)
}
