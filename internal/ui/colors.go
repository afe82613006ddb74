package ui

// Color accessors return the escape sequence of the active theme. Callers
// concatenate them around text and always close with ColorReset.

// ColorReset returns the escape code to reset all formatting.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed returns the escape code for error text.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen returns the escape code for success text.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the escape code for warnings and durations.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the escape code for primary accents.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorMagenta returns the escape code for highlighted values.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorCyan returns the escape code for secondary accents.
func ColorCyan() string { return GetCurrentTheme().Primary }

// ColorBold returns the escape code for bold text.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the escape code for underlined text.
func ColorUnderline() string { return GetCurrentTheme().Underline }
