package split

import (
	"fmt"
	"time"
)

// FormatDuration renders d as H:MM:SS with a six digit fraction when d has
// sub-second microseconds, prefixed by a day count past 24 hours.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Microsecond)
	day := 24 * time.Hour
	days := d / day
	d -= days * day
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second
	d -= seconds * time.Second
	micros := d / time.Microsecond

	out := fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	if micros > 0 {
		out += fmt.Sprintf(".%06d", micros)
	}
	switch {
	case days == 1:
		out = "1 day, " + out
	case days > 1:
		out = fmt.Sprintf("%d days, %s", days, out)
	}
	return out
}
