package scale

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/scenesvg/pkg/units"
)

var (
	decimalRe     = regexp.MustCompile(`^(\d*\.?\d*)$`)
	percentRe     = regexp.MustCompile(`^(\d*\.?\d*)%$`)
	ratioRe       = regexp.MustCompile(`^(\d*\.?\d*)[:/](\d*\.?\d*)$`)
	equivalenceRe = regexp.MustCompile(`^(.+)=(.+)$`)
)

// parseFactor tries each notation in priority order. The first notation
// whose pattern matches decides the result, even when its numbers turn out
// to be unusable.
func parseFactor(text string) (float64, bool) {
	s := strings.TrimSpace(text)
	s = strings.TrimLeft(s, "~")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", ".")

	if m := decimalRe.FindStringSubmatch(s); m != nil {
		return number(m[1])
	}
	if m := percentRe.FindStringSubmatch(s); m != nil {
		n, ok := number(m[1])
		return n / 100, ok
	}
	if m := ratioRe.FindStringSubmatch(s); m != nil {
		a, okA := number(m[1])
		b, okB := number(m[2])
		return a / b, okA && okB
	}
	if m := equivalenceRe.FindStringSubmatch(s); m != nil {
		paper, err := units.ParseLength(m[1], units.Millimeter)
		if err != nil {
			return 0, false
		}
		model, err := units.ParseLength(m[2], units.Millimeter)
		if err != nil {
			return 0, false
		}
		if paper.Millimeters() <= 0 || model.Millimeters() <= 0 {
			return 0, false
		}
		return paper.Millimeters() / model.Millimeters(), true
	}
	return 0, false
}

// number parses the digits matched by the notation patterns. Empty input
// or a lone "." reads as zero, which later makes the Scale invalid.
func number(s string) (float64, bool) {
	if s == "" || s == "." {
		return 0, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
