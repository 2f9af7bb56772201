// Package units formats physical quantities with engineering prefixes for
// human-readable output.
package units

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Sprintf formats through the English-locale printer, grouping thousands in
// numeric verbs.
func Sprintf(format string, args ...interface{}) string {
	return printer.Sprintf(format, args...)
}

// Prefix ladder from giga down to pico; formatting picks the largest factor
// not exceeding the magnitude.
var prefixes = []struct {
	factor float64
	symbol string
}{
	{1e9, "G"},
	{1e6, "M"},
	{1e3, "k"},
	{1, ""},
	{1e-3, "m"},
	{1e-6, "µ"},
	{1e-9, "n"},
	{1e-12, "p"},
}

// Format renders a value given in base SI units with an engineering prefix,
// e.g. Format(0.00085, "H") = "850 µH". Values are rounded to four
// significant digits.
func Format(value float64, unit string) string {
	if value == 0 {
		return "0 " + unit
	}
	abs := math.Abs(value)
	for _, p := range prefixes {
		if abs >= p.factor {
			return printer.Sprintf("%.4g %s%s", value/p.factor, p.symbol, unit)
		}
	}
	last := prefixes[len(prefixes)-1]
	return printer.Sprintf("%.4g %s%s", value/last.factor, last.symbol, unit)
}

// FormatPower renders watts, e.g. "250 mW", "200 W", "1.5 kW".
func FormatPower(watts float64) string {
	return Format(watts, "W")
}

// FormatInductance renders henries, e.g. "850 nH", "100 µH", "1.5 mH".
func FormatInductance(henries float64) string {
	return Format(henries, "H")
}

// FormatFrequency renders hertz, e.g. "50 Hz", "100 kHz", "2.5 MHz".
func FormatFrequency(hertz float64) string {
	return Format(hertz, "Hz")
}

// FormatResistance renders ohms, e.g. "18.5 mΩ", "4.7 kΩ".
func FormatResistance(ohms float64) string {
	return Format(ohms, "Ω")
}

// FormatLength renders metres, e.g. "1.2 mm", "29 mm".
func FormatLength(meters float64) string {
	return Format(meters, "m")
}

// FormatFlux renders flux density in tesla, switching to millitesla below
// 1 T; smaller prefixes read poorly on datasheets.
func FormatFlux(teslas float64) string {
	if teslas != 0 && math.Abs(teslas) < 1 {
		return printer.Sprintf("%.4g mT", teslas*1e3)
	}
	return printer.Sprintf("%.4g T", teslas)
}
