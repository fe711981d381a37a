// Package dates formats event dates for display.
package dates

import (
	"fmt"
	"time"
)

// DisplayLayout is how calendar dates are shown, e.g. "Jan 02, 2025".
const DisplayLayout = "Jan 02, 2006"

// Countdown describes how far away an event is.
type Countdown struct {
	Message string `json:"message"`
	IsPast  bool   `json:"is_past"`
}

// CountdownTo compares the calendar date (YYYY-MM-DD) with the date of now
// in now's location. An empty or malformed date yields a zero Countdown.
func CountdownTo(date string, now time.Time) Countdown {
	day, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return Countdown{}
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(day.Sub(today) / (24 * time.Hour))

	switch {
	case days < 0:
		return Countdown{Message: "Event has passed", IsPast: true}
	case days == 0:
		return Countdown{Message: "Today!"}
	case days == 1:
		return Countdown{Message: "Tomorrow!"}
	case days < 7:
		return Countdown{Message: fmt.Sprintf("In %d days", days)}
	case days < 30:
		return Countdown{Message: "In " + plural(days/7, "week")}
	default:
		return Countdown{Message: "In " + plural(days/30, "month")}
	}
}

// Relative describes t relative to now: "Just now", "3 minutes ago" and so
// on up to six days, then the formatted date.
func Relative(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute") + " ago"
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour") + " ago"
	case d < 7*24*time.Hour:
		return plural(int(d/(24*time.Hour)), "day") + " ago"
	}
	return t.In(now.Location()).Format(DisplayLayout)
}

// Format renders a calendar date (YYYY-MM-DD) with DisplayLayout, or ""
// when it cannot be parsed.
func Format(date string) string {
	day, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return ""
	}
	return day.Format(DisplayLayout)
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
