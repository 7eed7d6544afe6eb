// Package timefmt renders post and comment timestamps the way the UI
// shows them: a compact relative label ("3h", "2d") and a full display
// string ("Today at 2:35 PM"). All inputs are epoch milliseconds and
// "now" is always explicit so callers and tests control the clock.
package timefmt

import (
	"fmt"
	"math"
	"time"
)

// Labels are rendered in a fixed reference zone so the same timestamp
// never changes meaning between server restarts.
var displayZone = time.UTC

type Stamp struct {
	Relative string
	Absolute string
}

func Format(creation, now int64) Stamp {
	return Stamp{
		Relative: Relative(creation, now),
		Absolute: Absolute(creation, now),
	}
}

// Relative returns Now, {n}s, {n}m, {n}h, {n}d, {n}w, or an absolute
// calendar date beyond 28 days. Each coarser unit is the rounded
// quotient of the previous rounded unit, so values close to a boundary
// tip over early: exactly 3600s is "1h", and 12h of elapsed time
// already counts as one day.
func Relative(creation, now int64) string {
	secs := int64(math.Round(float64(now-creation) / 1000.0))
	if secs <= 0 {
		return "Now"
	}

	mins := int64(math.Round(float64(secs) / 60.0))
	hours := int64(math.Round(float64(mins) / 60.0))
	days := int64(math.Round(float64(hours) / 24.0))

	switch {
	case days == 0:
		if hours > 0 {
			return fmt.Sprintf("%dh", hours)
		}
		if mins > 0 {
			return fmt.Sprintf("%dm", mins)
		}
		return fmt.Sprintf("%ds", secs)
	case days <= 6:
		return fmt.Sprintf("%dd", days)
	case days <= 28:
		weeks := int64(math.Round(float64(days) / 7.0))
		return fmt.Sprintf("%dw", weeks)
	default:
		return time.UnixMilli(creation).In(displayZone).Format("Jan 2, 2006")
	}
}

// Absolute returns "Today at 2:35 PM", "Yesterday at 2:35 PM", or
// "Jan 2, 2006 at 2:35 PM" depending on the calendar day relative to
// now. 12-hour clock, no leading zero on the hour.
func Absolute(creation, now int64) string {
	t := time.UnixMilli(creation).In(displayZone)
	ref := time.UnixMilli(now).In(displayZone)
	clock := t.Format("3:04 PM")

	ty, tm, td := t.Date()
	ry, rm, rd := ref.Date()
	yy, ym, yd := ref.AddDate(0, 0, -1).Date()

	switch {
	case ty == ry && tm == rm && td == rd:
		return "Today at " + clock
	case ty == yy && tm == ym && td == yd:
		return "Yesterday at " + clock
	default:
		return t.Format("Jan 2, 2006") + " at " + clock
	}
}
