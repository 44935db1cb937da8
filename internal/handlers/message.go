package handlers

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/eatmoreapple/openwechat"

	"github.com/luckfunc/gardenstock/internal/logging"
	"github.com/luckfunc/gardenstock/internal/view"
	"github.com/luckfunc/gardenstock/internal/web"
)

// Command is a group chat keyword the bot answers.
type Command int

const (
	CmdNone Command = iota
	CmdPing
	CmdStock
	CmdWeather
	CmdChristmas
	CmdSnapshot
	CmdSubscribe
	CmdUnsubscribe
)

var keywords = map[string]Command{
	"ping":        CmdPing,
	"库存":          CmdStock,
	"stock":       CmdStock,
	"天气":          CmdWeather,
	"weather":     CmdWeather,
	"圣诞":          CmdChristmas,
	"christmas":   CmdChristmas,
	"截图":          CmdSnapshot,
	"snapshot":    CmdSnapshot,
	"订阅":          CmdSubscribe,
	"subscribe":   CmdSubscribe,
	"退订":          CmdUnsubscribe,
	"unsubscribe": CmdUnsubscribe,
}

var panels = []struct {
	region view.Region
	title  string
}{
	{view.GearList, "🛠️ Gear"},
	{view.SeedsList, "🌱 Seeds"},
	{view.EggsList, "🥚 Eggs"},
}

const snapshotTimeout = 30 * time.Second

// ParseCommand matches a whole message against the keywords, ignoring case
// and a leading slash.
func ParseCommand(content string) Command {
	key := strings.ToLower(strings.TrimSpace(content))
	key = strings.TrimPrefix(key, "/")
	return keywords[key]
}

// Reply builds the text answer for cmd from the page state. CmdSnapshot
// answers with the stock summary.
func Reply(cmd Command, state web.State) string {
	switch cmd {
	case CmdPing:
		return "pong"
	case CmdStock, CmdSnapshot:
		return stockSummary(state)
	case CmdWeather:
		return strings.TrimSpace(state.Texts[view.WeatherIcon] + " " + state.Texts[view.WeatherDesc] +
			"\nCrop bonus: " + state.Texts[view.WeatherBonus])
	case CmdChristmas:
		return "🎄 " + state.Texts[view.Countdown]
	case CmdSubscribe:
		return "Subscribed to stock alerts"
	case CmdUnsubscribe:
		return "Unsubscribed from stock alerts"
	}
	return ""
}

func stockSummary(state web.State) string {
	var b strings.Builder
	for _, p := range panels {
		entries := state.Lists[p.region]
		b.WriteString(p.title)
		b.WriteString(" (")
		b.WriteString(humanize.Comma(int64(len(entries))))
		b.WriteString(")\n")
		for _, e := range entries {
			b.WriteString(marker(e.Class))
			b.WriteString(e.Text)
			b.WriteString("\n")
		}
	}
	b.WriteString(state.Texts[view.LastUpdated])
	return b.String()
}

func marker(class string) string {
	switch class {
	case view.ClassEpic:
		return "★ "
	case view.ClassRare:
		return "☆ "
	default:
		return "- "
	}
}

// Handler answers group chat commands from the live page.
type Handler struct {
	page  *web.Page
	snap  *web.Snapshotter
	store *SubscriptionStore
}

// NewHandler returns a handler. A nil snapshotter makes snapshot requests
// fall back to text; a nil store ignores subscription commands.
func NewHandler(page *web.Page, snap *web.Snapshotter, store *SubscriptionStore) *Handler {
	return &Handler{page: page, snap: snap, store: store}
}

func (h *Handler) HandleGroupMessage(msg *openwechat.Message) {
	if !msg.IsText() || !msg.IsSendByGroup() {
		return
	}
	cmd := ParseCommand(msg.Content)
	if cmd == CmdNone {
		return
	}

	if cmd == CmdSubscribe || cmd == CmdUnsubscribe {
		if h.store == nil {
			return
		}
		if err := h.store.Set(msg.FromUserName, groupName(msg), cmd == CmdSubscribe); err != nil {
			logging.Printf("wechat: failed to save subscription: %v", err)
			msg.ReplyText(fmt.Sprintf("Subscription failed: %v", err))
			return
		}
	}

	if cmd == CmdSnapshot && h.snap != nil {
		ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
		png, err := h.snap.Capture(ctx, h.page)
		cancel()
		if err == nil {
			if _, err := msg.ReplyImage(bytes.NewReader(png)); err == nil {
				return
			}
			logging.Printf("wechat: failed to send snapshot: %v", err)
		} else {
			logging.Printf("wechat: snapshot failed: %v", err)
		}
	}

	if _, err := msg.ReplyText(Reply(cmd, h.page.State())); err != nil {
		logging.Printf("wechat: failed to reply: %v", err)
	}
}

func groupName(msg *openwechat.Message) string {
	group, err := msg.Receiver()
	if err != nil || group == nil {
		return ""
	}
	return group.NickName
}
