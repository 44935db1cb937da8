package locale

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type layouts struct {
	dateTime string
	timeOnly string
}

var (
	supported = []language.Tag{
		language.MustParse("en-PH"),
		language.AmericanEnglish,
		language.BritishEnglish,
		language.MustParse("en-AU"),
		language.German,
		language.French,
		language.Japanese,
		language.Chinese,
	}

	twelveHour = layouts{dateTime: "1/2/2006, 3:04:05 PM", timeOnly: "3:04:05 PM"}
	dayFirst   = layouts{dateTime: "02/01/2006, 15:04:05", timeOnly: "15:04:05"}
	german     = layouts{dateTime: "2.1.2006, 15:04:05", timeOnly: "15:04:05"}
	yearFirst  = layouts{dateTime: "2006/1/2 15:04:05", timeOnly: "15:04:05"}

	// indexed like supported
	layoutTable = []layouts{twelveHour, twelveHour, dayFirst, dayFirst, german, dayFirst, yearFirst, yearFirst}

	matcher = language.NewMatcher(supported)
)

// Formatter renders instants in a fixed locale and timezone.
type Formatter struct {
	tag     language.Tag
	loc     *time.Location
	layouts layouts
	printer *message.Printer
}

// New matches name against the supported locales; unknown names fall back to en-PH.
func New(name string, loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.UTC
	}
	idx := 0
	if tag, err := language.Parse(name); err == nil {
		_, i, conf := matcher.Match(tag)
		if conf != language.No {
			idx = i
		}
	}
	tag := supported[idx]
	return &Formatter{
		tag:     tag,
		loc:     loc,
		layouts: layoutTable[idx],
		printer: message.NewPrinter(tag),
	}
}

func (f *Formatter) Tag() language.Tag { return f.tag }

func (f *Formatter) Location() *time.Location { return f.loc }

// DateTime formats t as a date and time, like toLocaleString.
func (f *Formatter) DateTime(t time.Time) string {
	return t.In(f.loc).Format(f.layouts.dateTime)
}

// Time formats only the time of day, like toLocaleTimeString.
func (f *Formatter) Time(t time.Time) string {
	return t.In(f.loc).Format(f.layouts.timeOnly)
}

// Sprintf formats numbers the way the locale writes them.
func (f *Formatter) Sprintf(format string, args ...interface{}) string {
	return f.printer.Sprintf(format, args...)
}
