// Package notamgen formats weather advisory NOTAM messages.
package notamgen

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	AdvisorySevere = "NOT ADVISED to take flight due to severe weather conditions."
	AdvisorySafe   = "Safe to take flight. Weather conditions are stable."

	// MaxSafeWindSpeed is the highest wind speed, in m/s, still considered safe.
	MaxSafeWindSpeed = 10.0
)

// Advisory decides the flight safety line for the given weather.
func Advisory(weatherDesc string, windSpeed float64) string {
	if strings.Contains(strings.ToLower(weatherDesc), "storm") || windSpeed > MaxSafeWindSpeed {
		return AdvisorySevere
	}
	return AdvisorySafe
}

// Generate returns the base NOTAM block, sections A) to E).
func Generate(city, iataCode, weatherDesc string, windSpeed float64) string {
	iata := strings.ToUpper(strings.TrimSpace(iataCode))

	var b strings.Builder
	fmt.Fprintf(&b, "NOTAM %s WX ADVISORY\n", iata)
	fmt.Fprintf(&b, "A) %s\n", iata)
	fmt.Fprintf(&b, "B) %s\n", strings.TrimSpace(city))
	fmt.Fprintf(&b, "C) SURFACE WEATHER: %s\n", strings.ToUpper(weatherDesc))
	fmt.Fprintf(&b, "D) SURFACE WIND: %s M/S\n", FormatSpeed(windSpeed))
	b.WriteString("E) CHECK CURRENT WEATHER BEFORE DEPARTURE.")
	return b.String()
}

// Compose builds the full stored message: the base block followed by the
// F) weather report line carrying the raw description and the advisory.
func Compose(city, iataCode, rawDesc string, windSpeed float64) string {
	desc := strings.ToLower(rawDesc)
	return Generate(city, iataCode, desc, windSpeed) + "\n" +
		fmt.Sprintf("F) Weather Report: %s. Wind: %s m/s. %s", rawDesc, FormatSpeed(windSpeed), Advisory(desc, windSpeed)) +
		"\n"
}

// FormatSpeed prints a wind speed in its shortest form, e.g. "3" or "3.5".
func FormatSpeed(speed float64) string {
	return strconv.FormatFloat(speed, 'f', -1, 64)
}
