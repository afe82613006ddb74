package temperature

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/fibconv/internal/errors"
)

const tolerance = 1e-9

func TestCelsiusToFahrenheit_KnownValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		c    float64
		want float64
	}{
		{"freezing point", 0, 32},
		{"boiling point", 100, 212},
		{"scales meet", -40, -40},
		{"body temperature", 37, 98.6},
		{"absolute zero", -273.15, -459.67},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tc.want, CelsiusToFahrenheit(tc.c), tolerance)
			assert.InDelta(t, tc.c, FahrenheitToCelsius(tc.want), tolerance)
		})
	}
}

func TestCelsiusToFahrenheit_NonFinitePropagates(t *testing.T) {
	t.Parallel()
	assert.True(t, math.IsNaN(CelsiusToFahrenheit(math.NaN())))
	assert.True(t, math.IsInf(CelsiusToFahrenheit(math.Inf(1)), 1))
	assert.True(t, math.IsInf(CelsiusToFahrenheit(math.Inf(-1)), -1))
}

func TestCelsiusToFahrenheit_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("matches the linear formula", prop.ForAll(
		func(c float64) bool {
			return math.Abs(CelsiusToFahrenheit(c)-(c*9.0/5.0+32.0)) <= tolerance
		},
		gen.Float64Range(-1e6, 1e6),
	))

	properties.Property("round trips through Fahrenheit", prop.ForAll(
		func(c float64) bool {
			back := FahrenheitToCelsius(CelsiusToFahrenheit(c))
			return math.Abs(back-c) <= tolerance*math.Max(1, math.Abs(c))
		},
		gen.Float64Range(-1e6, 1e6),
	))

	properties.Property("preserves ordering", prop.ForAll(
		func(a, b float64) bool {
			if a == b {
				return true
			}
			if a > b {
				a, b = b, a
			}
			return CelsiusToFahrenheit(a) <= CelsiusToFahrenheit(b)
		},
		gen.Float64Range(-1e4, 1e4),
		gen.Float64Range(-1e4, 1e4),
	))

	properties.TestingRun(t)
}

func TestTypedScalars(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Fahrenheit(212), Celsius(100).ToFahrenheit())
	assert.Equal(t, Celsius(0), Fahrenheit(32).ToCelsius())
	assert.Equal(t, "100.00°C", Celsius(100).String())
	assert.Equal(t, "-40.00°F", Fahrenheit(-40).String())
}

func TestParseScale(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"c", "C", "celsius", " Celsius "} {
		s, err := ParseScale(in)
		require.NoError(t, err, in)
		assert.Equal(t, ScaleCelsius, s, in)
	}
	for _, in := range []string{"f", "F", "fahrenheit", "FAHRENHEIT"} {
		s, err := ParseScale(in)
		require.NoError(t, err, in)
		assert.Equal(t, ScaleFahrenheit, s, in)
	}

	_, err := ParseScale("kelvin")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestScaleHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "celsius", ScaleCelsius.String())
	assert.Equal(t, "fahrenheit", ScaleFahrenheit.String())
	assert.Equal(t, "°C", ScaleCelsius.Symbol())
	assert.Equal(t, "°F", ScaleFahrenheit.Symbol())
	assert.Equal(t, ScaleFahrenheit, ScaleCelsius.Other())
	assert.Equal(t, ScaleCelsius, ScaleFahrenheit.Other())
}

func TestConvert(t *testing.T) {
	t.Parallel()

	got, to, err := Convert(100, ScaleCelsius)
	require.NoError(t, err)
	assert.Equal(t, ScaleFahrenheit, to)
	assert.InDelta(t, 212, got, tolerance)

	got, to, err = Convert(212, ScaleFahrenheit)
	require.NoError(t, err)
	assert.Equal(t, ScaleCelsius, to)
	assert.InDelta(t, 100, got, tolerance)
}

func TestConvert_RejectsNonFinite(t *testing.T) {
	t.Parallel()

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, _, err := Convert(v, ScaleCelsius)
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument, "value %v", v)
	}

	_, _, err := Convert(1, Scale(42))
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}
