// Package timeutil converts between the clock-time representations used by
// the studio API: minutes since midnight, 24-hour "HH:MM" strings, 12-hour
// "H:MM AM/PM" strings and "HH:MM:SS" duration spans.
//
// All functions are total over string input. Malformed segments parse as
// zero rather than failing, so callers always get a usable value back.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
)

// ToMinutes parses "HH:MM" or "HH:MM:SS" into minutes since midnight.
// Seconds are ignored.
func ToMinutes(clock string) int {
	h, m := splitClock(clock)
	return h*60 + m
}

// FromMinutes renders minutes since midnight as a zero-padded 24-hour "HH:MM".
func FromMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// To12Hour converts a 24-hour "HH:MM" time into "H:MM AM/PM". Input already
// carrying an AM/PM marker is returned unchanged.
func To12Hour(time24 string) string {
	if time24 == "" {
		return ""
	}
	if hasMeridiem(time24) {
		return time24
	}

	h, m := splitClock(time24)
	meridiem := "AM"
	if h >= 12 {
		meridiem = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, m, meridiem)
}

// To24Hour converts a "H:MM AM/PM" time into zero-padded 24-hour "HH:MM".
// Input without an AM/PM marker is returned unchanged.
func To24Hour(time12 string) string {
	if time12 == "" {
		return ""
	}
	if !hasMeridiem(time12) {
		return time12
	}

	upper := strings.ToUpper(time12)
	pm := strings.Contains(upper, "PM")
	clock := strings.TrimSpace(strings.NewReplacer("AM", "", "PM", "", "am", "", "pm", "").Replace(time12))

	h, m := splitClock(clock)
	if pm && h != 12 {
		h += 12
	} else if !pm && h == 12 {
		h = 0
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

// DurationToMinutes parses an "HH:MM:SS" (or "HH:MM") span into whole minutes.
func DurationToMinutes(span string) int {
	h, m := splitClock(span)
	return h*60 + m
}

// MinutesToDuration renders whole minutes as an "HH:MM:SS" span.
func MinutesToDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d:00", minutes/60, minutes%60)
}

// FormatTime renders a 24-hour time for display, omitting ":00" on whole
// hours ("3 PM" rather than "3:00 PM"). Input already carrying AM/PM is
// returned unchanged.
func FormatTime(clock string) string {
	if hasMeridiem(clock) {
		return clock
	}

	h, m := splitClock(clock)
	meridiem := "AM"
	if h >= 12 {
		meridiem = "PM"
	}
	display := h % 12
	if display == 0 {
		display = 12
	}
	if m == 0 {
		return fmt.Sprintf("%d %s", display, meridiem)
	}
	return fmt.Sprintf("%d:%02d %s", display, m, meridiem)
}

// FormatDuration renders an "HH:MM:SS" span in words ("1 hour 30 mins").
// Already human-readable input is returned unchanged.
func FormatDuration(span string) string {
	if span == "" {
		return "0 minutes"
	}
	lower := strings.ToLower(span)
	if strings.Contains(lower, "hour") || strings.Contains(lower, "minute") {
		return span
	}

	h, m := splitClock(span)
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%s %s", plural(h, "hour"), plural(m, "min"))
	case h > 0:
		return plural(h, "hour")
	case m > 0:
		return plural(m, "minute")
	default:
		return "0 minutes"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func hasMeridiem(s string) bool {
	upper := strings.ToUpper(s)
	return strings.Contains(upper, "AM") || strings.Contains(upper, "PM")
}

// splitClock extracts hour and minute from a colon-delimited value. Missing
// or non-numeric segments read as zero.
func splitClock(s string) (int, int) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	h := atoi(parts[0])
	m := 0
	if len(parts) > 1 {
		m = atoi(strings.TrimSpace(strings.Fields(parts[1] + " x")[0]))
	}
	return h, m
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
