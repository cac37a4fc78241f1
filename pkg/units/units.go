// Package units parses real-world lengths written with a unit, such as
// "4m", "1\"", "2.5 cm" or "6'4\"".
//
// All lengths are normalized to millimeters, the unit of the exported
// drawing. Scene documents declare their model unit with [ParseUnit] and
// convert coordinates with [Unit.ToMillimeters].
package units

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidLength is returned when a string does not describe a length.
var ErrInvalidLength = errors.New("invalid length")

// ErrUnknownUnit is returned for unit names ParseUnit does not recognize.
var ErrUnknownUnit = errors.New("unknown unit")

// Unit is a length unit.
type Unit int

const (
	Millimeter Unit = iota
	Centimeter
	Meter
	Kilometer
	Inch
	Foot
	Yard
	Mile
)

// Length is a distance in millimeters.
type Length float64

// Millimeters returns l as a plain float.
func (l Length) Millimeters() float64 { return float64(l) }

// In converts l to the given unit.
func (l Length) In(u Unit) float64 { return float64(l) / u.millimeters() }

func (u Unit) millimeters() float64 {
	switch u {
	case Centimeter:
		return 10
	case Meter:
		return 1000
	case Kilometer:
		return 1e6
	case Inch:
		return 25.4
	case Foot:
		return 304.8
	case Yard:
		return 914.4
	case Mile:
		return 1609344
	default:
		return 1
	}
}

// ToMillimeters converts v expressed in u to millimeters.
func (u Unit) ToMillimeters(v float64) float64 {
	return v * u.millimeters()
}

// String returns the unit symbol.
func (u Unit) String() string {
	switch u {
	case Millimeter:
		return "mm"
	case Centimeter:
		return "cm"
	case Meter:
		return "m"
	case Kilometer:
		return "km"
	case Inch:
		return "in"
	case Foot:
		return "ft"
	case Yard:
		return "yd"
	case Mile:
		return "mi"
	default:
		return fmt.Sprintf("Unit(%d)", int(u))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (u Unit) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *Unit) UnmarshalText(text []byte) error {
	parsed, err := ParseUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

var unitNames = map[string]Unit{
	"mm": Millimeter, "millimeter": Millimeter, "millimeters": Millimeter, "millimetre": Millimeter, "millimetres": Millimeter,
	"cm": Centimeter, "centimeter": Centimeter, "centimeters": Centimeter, "centimetre": Centimeter, "centimetres": Centimeter,
	"m": Meter, "meter": Meter, "meters": Meter, "metre": Meter, "metres": Meter,
	"km": Kilometer, "kilometer": Kilometer, "kilometers": Kilometer, "kilometre": Kilometer, "kilometres": Kilometer,
	`"`: Inch, "in": Inch, "inch": Inch, "inches": Inch,
	"'": Foot, "ft": Foot, "foot": Foot, "feet": Foot,
	"yd": Yard, "yard": Yard, "yards": Yard,
	"mi": Mile, "mile": Mile, "miles": Mile,
}

// ParseUnit parses a unit name or symbol. Matching is case-insensitive.
func ParseUnit(s string) (Unit, error) {
	u, ok := unitNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
	return u, nil
}

var (
	// number, optional whitespace, optional unit
	simpleLengthRe = regexp.MustCompile(`^([+-]?(?:\d+\.?\d*|\.\d+))\s*([a-zA-Z"']*)$`)
	// 6'4", 6' 4.5", 6'
	feetInchRe = regexp.MustCompile(`^([+-]?)(\d+\.?\d*)'\s*(?:(\d+\.?\d*)"?)?$`)
)

// ParseLength parses a length such as "4m", "1\"", "2,5 cm" or "6'4\"".
// Bare numbers are interpreted in def. Commas are accepted as decimal
// separators. The result is in millimeters.
func ParseLength(s string, def Unit) (Length, error) {
	text := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if text == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidLength)
	}

	if m := feetInchRe.FindStringSubmatch(text); m != nil {
		feet, _ := strconv.ParseFloat(m[2], 64)
		var inches float64
		if m[3] != "" {
			inches, _ = strconv.ParseFloat(m[3], 64)
		}
		mm := Foot.ToMillimeters(feet) + Inch.ToMillimeters(inches)
		if m[1] == "-" {
			mm = -mm
		}
		return Length(mm), nil
	}

	m := simpleLengthRe.FindStringSubmatch(text)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLength, s)
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLength, s)
	}
	u := def
	if m[2] != "" {
		if u, err = ParseUnit(m[2]); err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrInvalidLength, s, err)
		}
	}
	return Length(u.ToMillimeters(v)), nil
}
