package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/luckfunc/gardenstock/internal/view"
)

type listMsg struct {
	region  view.Region
	entries []view.Entry
}

type textMsg struct {
	region view.Region
	text   string
}

// Target queues region writes for the dashboard. Writes block while the
// queue is full and are discarded once the dashboard has closed.
type Target struct {
	updates   chan tea.Msg
	done      chan struct{}
	closeOnce sync.Once
}

func NewTarget() *Target {
	return &Target{
		updates: make(chan tea.Msg, 256),
		done:    make(chan struct{}),
	}
}

func (t *Target) SetList(region view.Region, entries []view.Entry) {
	cp := make([]view.Entry, len(entries))
	copy(cp, entries)
	t.send(listMsg{region: region, entries: cp})
}

func (t *Target) SetText(region view.Region, text string) {
	t.send(textMsg{region: region, text: text})
}

func (t *Target) send(msg tea.Msg) {
	select {
	case <-t.done:
		return
	default:
	}
	select {
	case t.updates <- msg:
	case <-t.done:
	}
}

// Close stops accepting writes.
func (t *Target) Close() {
	t.closeOnce.Do(func() { close(t.done) })
}

func (t *Target) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-t.updates:
			return msg
		case <-t.done:
			return nil
		}
	}
}
