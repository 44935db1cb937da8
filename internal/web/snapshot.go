package web

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	defaultSnapshotWidth   = 1280
	defaultSnapshotTimeout = 20 * time.Second
)

// Snapshotter renders page HTML to a PNG in a headless browser.
type Snapshotter struct {
	Width   int
	Timeout time.Duration
}

func NewSnapshotter(width int, timeout time.Duration) *Snapshotter {
	if width <= 0 {
		width = defaultSnapshotWidth
	}
	if timeout <= 0 {
		timeout = defaultSnapshotTimeout
	}
	return &Snapshotter{Width: width, Timeout: timeout}
}

// Capture takes a screenshot of the page's current state.
func (s *Snapshotter) Capture(ctx context.Context, page *Page) ([]byte, error) {
	html, err := page.HTML(false)
	if err != nil {
		return nil, err
	}
	return s.renderHTMLToPNG(ctx, html, EstimateHeight(page.State().MaxRows()))
}

func (s *Snapshotter) renderHTMLToPNG(ctx context.Context, html string, height int64) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(ctx)
	defer cancel()
	ctx, cancel = context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))
	var buf []byte
	err := chromedp.Run(ctx,
		chromedp.EmulateViewport(int64(s.Width), height),
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(200*time.Millisecond),
		chromedp.FullScreenshot(&buf, 100),
	)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// EstimateHeight returns a viewport height that fits rows list items.
func EstimateHeight(rows int) int64 {
	const (
		basePadding    = 80
		titleHeight    = 42
		metaHeight     = 28
		weatherHeight  = 64
		panelHeader    = 44
		rowHeight      = 38
		footerHeight   = 28
		sectionSpacing = 18
	)
	height := basePadding + titleHeight + metaHeight + weatherHeight + panelHeader + footerHeight + sectionSpacing*3
	if rows < 1 {
		rows = 1
	}
	height += rows * rowHeight
	return int64(height)
}
