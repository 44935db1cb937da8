package view

import (
	"github.com/luckfunc/gardenstock/internal/locale"
	"github.com/luckfunc/gardenstock/internal/models"
)

const (
	DefaultWeatherIcon  = "🌦️"
	DefaultWeatherDesc  = "Unknown"
	DefaultWeatherBonus = "N/A"
	lastUpdatedPrefix   = "Last updated: "
)

var (
	placeholders = map[Region]string{
		GearList:  "No gear data available",
		SeedsList: "No seeds data available",
		EggsList:  "No eggs data available",
	}
	errorTexts = map[Region]string{
		GearList:  "Error loading gear data",
		SeedsList: "Error loading seeds data",
		EggsList:  "Error loading eggs data",
	}
)

// Model is a partial set of region writes; regions absent from the maps are
// left untouched by the renderer.
type Model struct {
	Lists map[Region][]Entry
	Texts map[Region]string
	Err   error
}

// Highlights holds the fixed epic/rare name sets.
type Highlights struct {
	epic map[string]struct{}
	rare map[string]struct{}
}

func NewHighlights(epic, rare []string) Highlights {
	h := Highlights{
		epic: make(map[string]struct{}, len(epic)),
		rare: make(map[string]struct{}, len(rare)),
	}
	for _, name := range epic {
		h.epic[name] = struct{}{}
	}
	for _, name := range rare {
		h.rare[name] = struct{}{}
	}
	return h
}

func (h Highlights) IsEpic(name string) bool {
	_, ok := h.epic[name]
	return ok
}

func (h Highlights) IsRare(name string) bool {
	_, ok := h.rare[name]
	return ok
}

// Build maps a successful snapshot to the full render model.
func Build(snap *models.StockSnapshot, h Highlights, f *locale.Formatter) Model {
	m := Model{
		Lists: make(map[Region][]Entry, len(ListRegions)),
		Texts: make(map[Region]string, 4),
	}

	if snap.Gear == nil {
		m.Lists[GearList] = placeholder(GearList)
	} else {
		entries := make([]Entry, 0, len(snap.Gear))
		for _, item := range snap.Gear {
			e := Entry{Text: string(item)}
			if h.IsEpic(string(item)) {
				e.Class = ClassEpic
			}
			entries = append(entries, e)
		}
		m.Lists[GearList] = entries
	}

	if snap.Seeds == nil {
		m.Lists[SeedsList] = placeholder(SeedsList)
	} else {
		entries := make([]Entry, 0, len(snap.Seeds))
		for _, item := range snap.Seeds {
			e := Entry{Text: string(item)}
			if h.IsRare(string(item)) {
				e.Class = ClassRare
			}
			entries = append(entries, e)
		}
		m.Lists[SeedsList] = entries
	}

	if snap.Eggs == nil {
		m.Lists[EggsList] = placeholder(EggsList)
	} else {
		entries := make([]Entry, 0, len(snap.Eggs))
		for _, item := range snap.Eggs {
			entries = append(entries, Entry{Text: string(item)})
		}
		m.Lists[EggsList] = entries
	}

	var w models.WeatherInfo
	if snap.Weather != nil {
		w = *snap.Weather
	}
	m.Texts[WeatherIcon] = orDefault(w.Icon, DefaultWeatherIcon)
	m.Texts[WeatherDesc] = orDefault(w.Description, DefaultWeatherDesc)
	m.Texts[WeatherBonus] = orDefault(w.CropBonus, DefaultWeatherBonus)

	if latest, ok := snap.Latest(); ok {
		m.Texts[LastUpdated] = lastUpdatedPrefix + f.Time(latest)
	} else {
		m.Texts[LastUpdated] = lastUpdatedPrefix + "N/A"
	}
	return m
}

// ErrorModel is rendered when a cycle fails. The weather icon is left as is.
func ErrorModel(err error) Model {
	m := Model{
		Lists: make(map[Region][]Entry, len(ListRegions)),
		Texts: map[Region]string{
			WeatherDesc:  "Error",
			WeatherBonus: "Error",
			LastUpdated:  lastUpdatedPrefix + "Error",
		},
		Err: err,
	}
	for _, r := range ListRegions {
		m.Lists[r] = []Entry{{Text: errorTexts[r]}}
	}
	return m
}

func placeholder(r Region) []Entry {
	return []Entry{{Text: placeholders[r]}}
}

// IsPlaceholder reports whether entries is the missing-section placeholder for r.
func IsPlaceholder(r Region, entries []Entry) bool {
	return len(entries) == 1 && entries[0].Class == "" && entries[0].Text == placeholders[r]
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
