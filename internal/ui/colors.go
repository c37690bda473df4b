package ui

// Color accessors read the active theme, so callers never cache escape codes
// and a theme switch (e.g. --no-color) takes effect immediately.

// ColorReset clears all formatting.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed is used for failures.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen is used for successes.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow is used for durations and warnings.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue is used for strategy names.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorMagenta is used for ranges and sums.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorCyan is used for secondary values such as chunk bounds.
func ColorCyan() string { return GetCurrentTheme().Secondary }

// ColorBold returns the bold escape code.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the underline escape code.
func ColorUnderline() string { return GetCurrentTheme().Underline }
