package app

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/luckfunc/gardenstock/internal/config"
	"github.com/luckfunc/gardenstock/internal/view"
)

type fakeFetcher struct {
	mu     sync.Mutex
	bodies map[string]string
	status map[string]int
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (int, []byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for suffix, body := range f.bodies {
		if strings.HasSuffix(url, suffix) {
			status := 200
			if s, ok := f.status[suffix]; ok {
				status = s
			}
			return status, []byte(body), nil
		}
	}
	return 404, nil, nil
}

func newFake() *fakeFetcher {
	return &fakeFetcher{
		bodies: map[string]string{
			"type=gear-seeds": `{"gear":["Golden Spade","Trowel"],"updatedAt":"2026-10-17T03:45:10Z"}`,
			"type=seeds":      `{"seeds":["Moon Bean","Carrot"],"updatedAt":"2026-10-17T03:40:00Z"}`,
			"type=egg":        `{"egg":["Common Egg"]}`,
			"/weather":        `{"icon":"☀️","currentWeather":"Sunny","cropBonuses":"+10%"}`,
		},
		status: map[string]int{},
	}
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.HTTP.Listen = "127.0.0.1:0"
	return cfg
}

func TestTasksRenderPage(t *testing.T) {
	a := New(testConfig(), newFake())
	a.now = func() time.Time { return time.Date(2026, 10, 17, 7, 4, 5, 0, time.UTC) }

	for _, task := range a.tasks {
		task.Step(context.Background())
	}

	state := a.Page().State()
	gear := state.Lists[view.GearList]
	if len(gear) != 2 || gear[0].Class != view.ClassEpic || gear[1].Class != "" {
		t.Fatalf("unexpected gear: %+v", gear)
	}
	if seeds := state.Lists[view.SeedsList]; len(seeds) != 2 || seeds[0].Class != view.ClassRare {
		t.Fatalf("unexpected seeds: %+v", seeds)
	}
	want := map[view.Region]string{
		view.WeatherIcon:  "☀️",
		view.WeatherDesc:  "Sunny",
		view.WeatherBonus: "+10%",
		view.LastUpdated:  "Last updated: 11:45:10 AM",
		view.LocalTime:    "10/17/2026, 3:04:05 PM",
		view.Countdown:    "68d 8h 55m 55s",
	}
	for region, text := range want {
		if got := state.Texts[region]; got != text {
			t.Errorf("%s = %q, want %q", region, got, text)
		}
	}
}

func TestPollFailureRendersErrorState(t *testing.T) {
	fake := newFake()
	a := New(testConfig(), fake)
	a.tasks[0].Step(context.Background())

	fake.mu.Lock()
	fake.status["/weather"] = 503
	fake.mu.Unlock()
	a.tasks[0].Step(context.Background())

	state := a.Page().State()
	if got := state.Lists[view.GearList]; len(got) != 1 || got[0].Text != "Error loading gear data" {
		t.Fatalf("unexpected gear after failure: %+v", got)
	}
	if state.Texts[view.WeatherDesc] != "Error" || state.Texts[view.LastUpdated] != "Last updated: Error" {
		t.Fatalf("unexpected texts after failure: %+v", state.Texts)
	}
	if state.Texts[view.WeatherIcon] != "☀️" {
		t.Fatalf("weather icon should keep its last value, got %q", state.Texts[view.WeatherIcon])
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	a := New(testConfig(), newFake())
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	if err := a.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := a.Page().State().Lists[view.EggsList]; len(got) != 1 || got[0].Text != "Common Egg" {
		t.Fatalf("first poll should have rendered, got %+v", got)
	}
}
