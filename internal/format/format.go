// Package format holds the small display and parsing helpers shared by the
// import pipeline, the exporters and the API layer.
package format

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	clockRe    = regexp.MustCompile(`^(\d{2}):(\d{2})$`)
	colonRe    = regexp.MustCompile(`^(\d+):([0-5]?\d)$`)
	hoursMinRe = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)\s*h\s*(?:(\d+)\s*m(?:in)?)?$`)
	minutesRe  = regexp.MustCompile(`(?i)^(\d+)\s*m(?:in)?$`)
)

// Duration renders minutes as h:mm, e.g. 90 -> "1:30".
func Duration(totalMinutes int) string {
	hours := totalMinutes / 60
	minutes := totalMinutes % 60
	return fmt.Sprintf("%d:%02d", hours, minutes)
}

// DurationWords renders minutes as "1h 30m", dropping zero parts.
func DurationWords(totalMinutes int) string {
	hours := totalMinutes / 60
	minutes := totalMinutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	if minutes == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// DateISO renders a date as YYYY-MM-DD.
func DateISO(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseClock converts an HH:MM string into minutes since midnight.
func ParseClock(s string) (int, bool) {
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	if hours > 23 || minutes > 59 {
		return 0, false
	}
	return hours*60 + minutes, true
}

// ParseDurationInput parses user-typed duration input into minutes.
// Supported forms: "1:30", "1h30m", "1h", "90m", "1.5h", "90".
func ParseDurationInput(input string) (int, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, false
	}

	if m := colonRe.FindStringSubmatch(trimmed); m != nil {
		hours, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[2])
		return hours*60 + minutes, true
	}

	if m := hoursMinRe.FindStringSubmatch(trimmed); m != nil {
		hours, _ := strconv.ParseFloat(m[1], 64)
		minutes := 0
		if m[2] != "" {
			minutes, _ = strconv.Atoi(m[2])
		}
		return int(hours*60 + 0.5 + float64(minutes)), true
	}

	if m := minutesRe.FindStringSubmatch(trimmed); m != nil {
		minutes, _ := strconv.Atoi(m[1])
		return minutes, true
	}

	if plain, err := strconv.ParseFloat(trimmed, 64); err == nil && plain >= 0 {
		return int(plain + 0.5), true
	}

	return 0, false
}
