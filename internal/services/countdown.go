package services

import (
	"time"

	"github.com/luckfunc/gardenstock/internal/locale"
)

// Breakdown is a non-negative duration split into display units.
type Breakdown struct {
	Days    int64
	Hours   int64
	Minutes int64
	Seconds int64
}

// Countdown counts down to a fixed calendar date of the current year.
type Countdown struct {
	Month   time.Month
	Day     int
	Message string
	Format  *locale.Formatter
}

// Target returns midnight of the countdown date in now's year, in the display timezone.
func (c Countdown) Target(now time.Time) time.Time {
	loc := c.Format.Location()
	return time.Date(now.In(loc).Year(), c.Month, c.Day, 0, 0, 0, 0, loc)
}

// Remaining returns the breakdown until the target, or false once it has passed.
func (c Countdown) Remaining(now time.Time) (Breakdown, bool) {
	d := c.Target(now).Sub(now)
	if d < 0 {
		return Breakdown{}, false
	}
	diff := d.Milliseconds()
	return Breakdown{
		Days:    diff / (1000 * 60 * 60 * 24),
		Hours:   (diff / (1000 * 60 * 60)) % 24,
		Minutes: (diff / (1000 * 60)) % 60,
		Seconds: (diff / 1000) % 60,
	}, true
}

// Text renders the countdown label for now.
func (c Countdown) Text(now time.Time) string {
	b, ok := c.Remaining(now)
	if !ok {
		return c.Message
	}
	return c.Format.Sprintf("%dd %dh %dm %ds", b.Days, b.Hours, b.Minutes, b.Seconds)
}
