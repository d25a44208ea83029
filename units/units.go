package units

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownUnit indicates a unit token that has no conversion to the
// internal convention.
var ErrUnknownUnit = errors.New("units: unknown unit")

// Length scale factors to millimetres.
const (
	Nanometre  = 1e-6
	Micrometre = 1e-3
	Millimetre = 1.0
	Centimetre = 10.0
	Metre      = 1000.0
)

// Time scale factors to seconds.
const (
	Nanosecond  = 1e-9
	Microsecond = 1e-6
	Millisecond = 1e-3
	Second      = 1.0
	Minute      = 60.0
	Hour        = 3600.0
	Day         = 86400.0
	Year        = 365.25 * Day
)

// mm3PerM3 is the number of cubic millimetres in one cubic metre.
const mm3PerM3 = 1e9

var lengthUnits = map[string]float64{
	"nm": Nanometre,
	"um": Micrometre,
	"mm": Millimetre,
	"cm": Centimetre,
	"m":  Metre,
}

var timeUnits = map[string]float64{
	"ns":  Nanosecond,
	"us":  Microsecond,
	"ms":  Millisecond,
	"s":   Second,
	"min": Minute,
	"h":   Hour,
	"d":   Day,
	"day": Day,
	"y":   Year,
}

// VolumeMM3ToM3 converts a volume in mm³ to m³.
func VolumeMM3ToM3(v float64) float64 {
	return v / mm3PerM3
}

// GramPerCm3 converts a density in g/cm³ to the internal kg/m³.
func GramPerCm3(v float64) float64 {
	return v * 1000
}

// ParseLength scales value given in unit to millimetres.
// An empty unit means the value is already in millimetres.
func ParseLength(value float64, unit string) (float64, error) {
	return scale(value, unit, lengthUnits, "mm")
}

// ParseTime scales value given in unit to seconds.
// An empty unit means the value is already in seconds.
func ParseTime(value float64, unit string) (float64, error) {
	return scale(value, unit, timeUnits, "s")
}

// IsLengthUnit reports whether tok names a known length unit.
func IsLengthUnit(tok string) bool {
	_, ok := lengthUnits[strings.ToLower(tok)]
	return ok
}

// IsTimeUnit reports whether tok names a known time unit.
func IsTimeUnit(tok string) bool {
	_, ok := timeUnits[strings.ToLower(tok)]
	return ok
}

func scale(value float64, unit string, table map[string]float64, base string) (float64, error) {
	if unit == "" {
		unit = base
	}
	f, ok := table[strings.ToLower(unit)]
	if !ok {
		return 0, fmt.Errorf("%q: %w", unit, ErrUnknownUnit)
	}

	return value * f, nil
}
