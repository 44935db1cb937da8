package services

import (
	"time"

	"github.com/luckfunc/gardenstock/internal/locale"
)

// LocalTime renders the clock label for now.
func LocalTime(now time.Time, f *locale.Formatter) string {
	return f.DateTime(now)
}
