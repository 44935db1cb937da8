package view

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/luckfunc/gardenstock/internal/locale"
	"github.com/luckfunc/gardenstock/internal/models"
)

type recordingTarget struct {
	mu     sync.Mutex
	lists  map[Region][]Entry
	texts  map[Region]string
	writes int
}

func newRecordingTarget() *recordingTarget {
	return &recordingTarget{lists: map[Region][]Entry{}, texts: map[Region]string{}}
}

func (r *recordingTarget) SetList(region Region, entries []Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists[region] = entries
	r.writes++
}

func (r *recordingTarget) SetText(region Region, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts[region] = text
	r.writes++
}

func testHighlights() Highlights {
	return NewHighlights(
		[]string{"Golden Spade", "Mystic Hammer", "Dragon Egg"},
		[]string{"Mystic Seed", "Moon Bean"},
	)
}

func testFormatter(t *testing.T) *locale.Formatter {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Manila")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return locale.New("en-PH", loc)
}

func render(t *testing.T, m Model) *recordingTarget {
	t.Helper()
	target := newRecordingTarget()
	NewRenderer(target).Render(m)
	return target
}

func TestBuildKeepsSourceOrderAndHighlights(t *testing.T) {
	snap := &models.StockSnapshot{
		Gear:  []models.GearItem{"Trowel", "Golden Spade", "Watering Can", "Mystic Hammer"},
		Seeds: []models.SeedItem{"Carrot", "Moon Bean", "Golden Spade", "Mystic Seed"},
		Eggs:  []models.EggItem{"Common Egg", "Dragon Egg", "Moon Bean"},
	}
	target := render(t, Build(snap, testHighlights(), testFormatter(t)))

	wantGear := []Entry{
		{Text: "Trowel"},
		{Text: "Golden Spade", Class: ClassEpic},
		{Text: "Watering Can"},
		{Text: "Mystic Hammer", Class: ClassEpic},
	}
	assertEntries(t, target.lists[GearList], wantGear)

	wantSeeds := []Entry{
		{Text: "Carrot"},
		{Text: "Moon Bean", Class: ClassRare},
		{Text: "Golden Spade"},
		{Text: "Mystic Seed", Class: ClassRare},
	}
	assertEntries(t, target.lists[SeedsList], wantSeeds)

	wantEggs := []Entry{{Text: "Common Egg"}, {Text: "Dragon Egg"}, {Text: "Moon Bean"}}
	assertEntries(t, target.lists[EggsList], wantEggs)
}

func TestBuildMissingSectionDegradesOnlyThatPanel(t *testing.T) {
	snap := &models.StockSnapshot{
		Gear:  []models.GearItem{"Trowel"},
		Seeds: nil,
		Eggs:  []models.EggItem{},
	}
	target := render(t, Build(snap, testHighlights(), testFormatter(t)))

	assertEntries(t, target.lists[GearList], []Entry{{Text: "Trowel"}})
	assertEntries(t, target.lists[SeedsList], []Entry{{Text: "No seeds data available"}})
	if len(target.lists[EggsList]) != 0 {
		t.Fatalf("expected empty eggs panel, got %v", target.lists[EggsList])
	}
	if _, ok := target.lists[EggsList]; !ok {
		t.Fatalf("expected eggs panel to be written")
	}
}

func TestIsPlaceholder(t *testing.T) {
	m := Build(&models.StockSnapshot{Gear: []models.GearItem{"Trowel"}}, testHighlights(), testFormatter(t))
	if !IsPlaceholder(SeedsList, m.Lists[SeedsList]) {
		t.Fatalf("expected seeds placeholder, got %v", m.Lists[SeedsList])
	}
	if IsPlaceholder(GearList, m.Lists[GearList]) {
		t.Fatalf("stocked gear is not a placeholder")
	}
	if IsPlaceholder(EggsList, []Entry{}) {
		t.Fatalf("an empty list is not a placeholder")
	}
	if IsPlaceholder(GearList, ErrorModel(errors.New("x")).Lists[GearList]) {
		t.Fatalf("error entry is not a placeholder")
	}
}

func TestBuildWeatherFallbacks(t *testing.T) {
	snap := &models.StockSnapshot{Weather: &models.WeatherInfo{Description: "Rain"}}
	target := render(t, Build(snap, testHighlights(), testFormatter(t)))

	if target.texts[WeatherIcon] != DefaultWeatherIcon {
		t.Fatalf("expected default icon, got %q", target.texts[WeatherIcon])
	}
	if target.texts[WeatherDesc] != "Rain" {
		t.Fatalf("expected description, got %q", target.texts[WeatherDesc])
	}
	if target.texts[WeatherBonus] != "N/A" {
		t.Fatalf("expected bonus fallback, got %q", target.texts[WeatherBonus])
	}

	target = render(t, Build(&models.StockSnapshot{}, testHighlights(), testFormatter(t)))
	if target.texts[WeatherDesc] != "Unknown" {
		t.Fatalf("expected Unknown with no weather, got %q", target.texts[WeatherDesc])
	}
}

func TestBuildLastUpdatedUsesLatestTimestamp(t *testing.T) {
	t1 := time.Date(2026, 10, 17, 1, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 10, 17, 2, 30, 0, 0, time.UTC)
	t3 := time.Date(2026, 10, 17, 3, 45, 10, 0, time.UTC)
	snap := &models.StockSnapshot{UpdatedAt: []time.Time{t2, t1, t3}}
	target := render(t, Build(snap, testHighlights(), testFormatter(t)))

	if got := target.texts[LastUpdated]; got != "Last updated: 11:45:10 AM" {
		t.Fatalf("unexpected label %q", got)
	}

	target = render(t, Build(&models.StockSnapshot{}, testHighlights(), testFormatter(t)))
	if got := target.texts[LastUpdated]; got != "Last updated: N/A" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestErrorModelReplacesEverythingButIcon(t *testing.T) {
	target := newRecordingTarget()
	target.texts[WeatherIcon] = "☀️"
	NewRenderer(target).Render(ErrorModel(errors.New("boom")))

	assertEntries(t, target.lists[GearList], []Entry{{Text: "Error loading gear data"}})
	assertEntries(t, target.lists[SeedsList], []Entry{{Text: "Error loading seeds data"}})
	assertEntries(t, target.lists[EggsList], []Entry{{Text: "Error loading eggs data"}})
	if target.texts[WeatherDesc] != "Error" || target.texts[WeatherBonus] != "Error" {
		t.Fatalf("expected weather error texts, got %v", target.texts)
	}
	if target.texts[LastUpdated] != "Last updated: Error" {
		t.Fatalf("unexpected label %q", target.texts[LastUpdated])
	}
	if target.texts[WeatherIcon] != "☀️" {
		t.Fatalf("expected icon untouched, got %q", target.texts[WeatherIcon])
	}
}

func TestMultiTargetFansOut(t *testing.T) {
	a, b := newRecordingTarget(), newRecordingTarget()
	r := NewRenderer(MultiTarget{a, b})
	r.RenderText(Countdown, "1d 2h 3m 4s")
	if a.texts[Countdown] != "1d 2h 3m 4s" || b.texts[Countdown] != "1d 2h 3m 4s" {
		t.Fatalf("expected both targets written, got %q and %q", a.texts[Countdown], b.texts[Countdown])
	}
}

func assertEntries(t *testing.T, got, want []Entry) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}
