package handlers

import (
	"strings"
	"sync"

	"github.com/luckfunc/gardenstock/internal/view"
)

// Alerter reports highlighted entries that were not in the previous lists.
// The first Check only records what is in stock. A region that is absent or
// shows its placeholder keeps its earlier record.
type Alerter struct {
	mu     sync.Mutex
	seen   map[view.Region]map[string]struct{}
	primed bool
}

func NewAlerter() *Alerter {
	return &Alerter{seen: make(map[view.Region]map[string]struct{})}
}

func (a *Alerter) Check(lists map[view.Region][]view.Entry) []view.Entry {
	var fresh []view.Entry

	a.mu.Lock()
	defer a.mu.Unlock()
	for _, region := range view.ListRegions {
		entries, ok := lists[region]
		if !ok || view.IsPlaceholder(region, entries) {
			continue
		}
		prev := a.seen[region]
		current := make(map[string]struct{})
		for _, e := range entries {
			if e.Class == "" {
				continue
			}
			if _, dup := current[e.Text]; dup {
				continue
			}
			current[e.Text] = struct{}{}
			if _, ok := prev[e.Text]; !ok && a.primed {
				fresh = append(fresh, e)
			}
		}
		a.seen[region] = current
	}
	a.primed = true
	return fresh
}

// AlertText is the group message for newly stocked entries.
func AlertText(entries []view.Entry) string {
	var b strings.Builder
	b.WriteString("✨ New in stock:")
	for _, e := range entries {
		b.WriteString("\n")
		b.WriteString(marker(e.Class))
		b.WriteString(e.Text)
	}
	return b.String()
}
