package web

import (
	"html/template"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/luckfunc/gardenstock/internal/logging"
	"github.com/luckfunc/gardenstock/internal/view"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// State is a copy of every region's current content.
type State struct {
	Lists map[view.Region][]view.Entry `json:"lists"`
	Texts map[view.Region]string       `json:"texts"`
}

type stateMessage struct {
	Type  string `json:"type"`
	State State  `json:"state"`
}

type listMessage struct {
	Type    string       `json:"type"`
	Region  view.Region  `json:"region"`
	Entries []view.Entry `json:"entries"`
}

type textMessage struct {
	Type   string      `json:"type"`
	Region view.Region `json:"region"`
	Text   string      `json:"text"`
}

// Page holds the page's region content and pushes every write to the hub.
// It implements view.Target.
type Page struct {
	title string
	hub   *Hub
	tpl   *template.Template

	mu    sync.RWMutex
	lists map[view.Region][]view.Entry
	texts map[view.Region]string
}

func NewPage(title string, hub *Hub) *Page {
	if hub == nil {
		hub = NewHub()
	}
	p := &Page{
		title: title,
		hub:   hub,
		tpl:   template.Must(template.New("page").Parse(pageHTMLTemplate)),
		lists: make(map[view.Region][]view.Entry, len(view.ListRegions)),
		texts: make(map[view.Region]string, len(view.TextRegions)),
	}
	for _, r := range view.ListRegions {
		p.lists[r] = []view.Entry{}
	}
	return p
}

func (p *Page) SetList(region view.Region, entries []view.Entry) {
	cp := make([]view.Entry, len(entries))
	copy(cp, entries)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.lists[region] = cp
	p.broadcastLocked(listMessage{Type: "list", Region: region, Entries: cp})
}

func (p *Page) SetText(region view.Region, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.texts[region] = text
	p.broadcastLocked(textMessage{Type: "text", Region: region, Text: text})
}

func (p *Page) broadcastLocked(msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		logging.Printf("page: failed to marshal update: %v", err)
		return
	}
	p.hub.Broadcast(data)
}

// State returns a copy of the current content.
func (p *Page) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stateLocked()
}

func (p *Page) stateLocked() State {
	s := State{
		Lists: make(map[view.Region][]view.Entry, len(p.lists)),
		Texts: make(map[view.Region]string, len(p.texts)),
	}
	for r, entries := range p.lists {
		cp := make([]view.Entry, len(entries))
		copy(cp, entries)
		s.Lists[r] = cp
	}
	for r, text := range p.texts {
		s.Texts[r] = text
	}
	return s
}

// subscribe registers a hub subscriber and returns the full-state message
// taken under the same lock, so no write falls between the two.
func (p *Page) subscribe() (*subscriber, []byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	data, err := json.Marshal(stateMessage{Type: "state", State: p.stateLocked()})
	if err != nil {
		return nil, nil, err
	}
	return p.hub.add(), data, nil
}

type pageView struct {
	Title        string
	Live         bool
	Gear         []view.Entry
	Seeds        []view.Entry
	Eggs         []view.Entry
	WeatherIcon  string
	WeatherDesc  string
	WeatherBonus string
	LastUpdated  string
	LocalTime    string
	Countdown    string
}

// HTML renders the page from the current state. live adds the script that
// keeps the page updated over the websocket.
func (p *Page) HTML(live bool) (string, error) {
	s := p.State()
	v := pageView{
		Title:        p.title,
		Live:         live,
		Gear:         s.Lists[view.GearList],
		Seeds:        s.Lists[view.SeedsList],
		Eggs:         s.Lists[view.EggsList],
		WeatherIcon:  s.Texts[view.WeatherIcon],
		WeatherDesc:  s.Texts[view.WeatherDesc],
		WeatherBonus: s.Texts[view.WeatherBonus],
		LastUpdated:  s.Texts[view.LastUpdated],
		LocalTime:    s.Texts[view.LocalTime],
		Countdown:    s.Texts[view.Countdown],
	}
	var builder strings.Builder
	if err := p.tpl.Execute(&builder, v); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// Hub returns the hub page updates are published to.
func (p *Page) Hub() *Hub {
	return p.hub
}

// MaxRows is the length of the longest list panel.
func (s State) MaxRows() int {
	n := 0
	for _, entries := range s.Lists {
		if len(entries) > n {
			n = len(entries)
		}
	}
	return n
}
