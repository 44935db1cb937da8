package view

// Region names one writable area of the page. Values match the element ids.
type Region string

const (
	GearList     Region = "gearList"
	SeedsList    Region = "seedsList"
	EggsList     Region = "eggsList"
	WeatherIcon  Region = "weatherIcon"
	WeatherDesc  Region = "weatherDesc"
	WeatherBonus Region = "weatherBonus"
	LastUpdated  Region = "lastUpdated"
	LocalTime    Region = "localTime"
	Countdown    Region = "countdown"
)

// ListRegions and TextRegions are in page order.
var (
	ListRegions = []Region{GearList, SeedsList, EggsList}
	TextRegions = []Region{WeatherIcon, WeatherDesc, WeatherBonus, LastUpdated, LocalTime, Countdown}
)

const (
	ClassEpic = "highlight-epic"
	ClassRare = "highlight-rare"
)

// Entry is one list item.
type Entry struct {
	Text  string `json:"text"`
	Class string `json:"class,omitempty"`
}

// Target receives region writes. Implementations must be safe for
// concurrent use: the poll and tick tasks write independently.
type Target interface {
	SetList(region Region, entries []Entry)
	SetText(region Region, text string)
}

// MultiTarget fans every write out to all targets in order.
type MultiTarget []Target

func (m MultiTarget) SetList(region Region, entries []Entry) {
	for _, t := range m {
		t.SetList(region, entries)
	}
}

func (m MultiTarget) SetText(region Region, text string) {
	for _, t := range m {
		t.SetText(region, text)
	}
}
