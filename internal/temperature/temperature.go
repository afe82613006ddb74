// Package temperature converts between the Celsius and Fahrenheit scales.
//
// CelsiusToFahrenheit and FahrenheitToCelsius are total functions over float64
// and follow IEEE 754 semantics for NaN and infinities. Convert is the
// user-facing entry point and rejects non-finite input.
package temperature

import (
	"fmt"
	"math"
	"strings"

	apperrors "github.com/agbru/fibconv/internal/errors"
)

// Scale identifies a temperature scale.
type Scale int

const (
	// ScaleCelsius is the Celsius scale.
	ScaleCelsius Scale = iota
	// ScaleFahrenheit is the Fahrenheit scale.
	ScaleFahrenheit
)

// String returns the lowercase scale name.
func (s Scale) String() string {
	switch s {
	case ScaleCelsius:
		return "celsius"
	case ScaleFahrenheit:
		return "fahrenheit"
	}
	return fmt.Sprintf("Scale(%d)", int(s))
}

// Symbol returns the unit symbol, e.g. "°C".
func (s Scale) Symbol() string {
	if s == ScaleFahrenheit {
		return "°F"
	}
	return "°C"
}

// Other returns the scale a value in s converts to.
func (s Scale) Other() Scale {
	if s == ScaleFahrenheit {
		return ScaleCelsius
	}
	return ScaleFahrenheit
}

// ParseScale accepts "c", "celsius", "f" or "fahrenheit" in any case.
func ParseScale(s string) (Scale, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c", "celsius":
		return ScaleCelsius, nil
	case "f", "fahrenheit":
		return ScaleFahrenheit, nil
	}
	return 0, apperrors.NewInvalidArgument("temperature", fmt.Sprintf("%q", s), "unknown scale (want celsius or fahrenheit)")
}

// Celsius is a temperature in degrees Celsius.
type Celsius float64

// Fahrenheit is a temperature in degrees Fahrenheit.
type Fahrenheit float64

// ToFahrenheit converts c to the Fahrenheit scale.
func (c Celsius) ToFahrenheit() Fahrenheit {
	return Fahrenheit(CelsiusToFahrenheit(float64(c)))
}

// String formats c with two decimals, e.g. "100.00°C".
func (c Celsius) String() string { return fmt.Sprintf("%.2f°C", float64(c)) }

// ToCelsius converts f to the Celsius scale.
func (f Fahrenheit) ToCelsius() Celsius {
	return Celsius(FahrenheitToCelsius(float64(f)))
}

// String formats f with two decimals, e.g. "212.00°F".
func (f Fahrenheit) String() string { return fmt.Sprintf("%.2f°F", float64(f)) }

// CelsiusToFahrenheit returns c * 9/5 + 32.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9.0/5.0 + 32.0
}

// FahrenheitToCelsius returns (f - 32) * 5/9.
func FahrenheitToCelsius(f float64) float64 {
	return (f - 32.0) * 5.0 / 9.0
}

// Convert converts value expressed in from to the other scale and returns the
// converted value together with its scale.
func Convert(value float64, from Scale) (float64, Scale, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, from, apperrors.NewInvalidArgument("temperature", value, "value must be finite")
	}
	switch from {
	case ScaleCelsius:
		return CelsiusToFahrenheit(value), ScaleFahrenheit, nil
	case ScaleFahrenheit:
		return FahrenheitToCelsius(value), ScaleCelsius, nil
	}
	return 0, from, apperrors.NewInvalidArgument("temperature", from, "unknown scale")
}
