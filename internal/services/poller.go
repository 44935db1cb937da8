package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/luckfunc/gardenstock/internal/locale"
	"github.com/luckfunc/gardenstock/internal/logging"
	"github.com/luckfunc/gardenstock/internal/models"
	"github.com/luckfunc/gardenstock/internal/view"
)

// ErrUpstreamStatus matches every *StatusError.
var ErrUpstreamStatus = errors.New("upstream status")

// StatusError reports a non-2xx response from one source.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! Status: %d (%s)", e.StatusCode, e.URL)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUpstreamStatus
}

// Fetcher performs one GET and returns the status code and body.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (int, []byte, error)
}

// Sources are the four endpoints polled every cycle.
type Sources struct {
	Gear    string
	Seeds   string
	Eggs    string
	Weather string
}

func (s Sources) urls() [4]string {
	return [4]string{s.Gear, s.Seeds, s.Eggs, s.Weather}
}

// Outcome describes one finished cycle.
type Outcome struct {
	Snapshot *models.StockSnapshot
	Err      error
	Started  time.Time
	Latency  time.Duration
}

// StockPoller fetches the four sources and merges them into a snapshot.
type StockPoller struct {
	fetcher    Fetcher
	sources    Sources
	highlights view.Highlights
	format     *locale.Formatter
	now        func() time.Time
}

func NewStockPoller(fetcher Fetcher, sources Sources, highlights view.Highlights, format *locale.Formatter) *StockPoller {
	return &StockPoller{
		fetcher:    fetcher,
		sources:    sources,
		highlights: highlights,
		format:     format,
		now:        time.Now,
	}
}

// Cycle runs one poll and always yields a render model: the full model on
// success, the error model on any failure. Errors are logged, never returned.
func (p *StockPoller) Cycle(ctx context.Context) (view.Model, Outcome) {
	started := p.now()
	snap, err := p.Fetch(ctx)
	out := Outcome{Snapshot: snap, Err: err, Started: started, Latency: p.now().Sub(started)}
	if err != nil {
		logging.Printf("Failed to fetch stock data: %v", err)
		return view.ErrorModel(err), out
	}
	return view.Build(snap, p.highlights, p.format), out
}

// Fetch issues the four GETs concurrently and waits for all of them. Any
// transport error, non-2xx status or malformed body fails the whole cycle;
// a missing section array only leaves that section nil.
func (p *StockPoller) Fetch(ctx context.Context) (*models.StockSnapshot, error) {
	urls := p.sources.urls()
	var (
		statuses [4]int
		bodies   [4][]byte
	)

	var g errgroup.Group
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			status, body, err := p.fetcher.Fetch(ctx, u)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", u, err)
			}
			statuses[i] = status
			bodies[i] = body
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i, status := range statuses {
		if status < 200 || status > 299 {
			return nil, &StatusError{URL: urls[i], StatusCode: status}
		}
	}

	loc := p.format.Location()
	snap := &models.StockSnapshot{}
	var stamps [4]*time.Time

	var pg errgroup.Group
	for i := range bodies {
		i := i
		pg.Go(func() error {
			doc, err := decode(bodies[i])
			if err != nil {
				return fmt.Errorf("parse %s: %w", urls[i], err)
			}
			if t, ok := doc.parseUpdatedAt(loc); ok {
				stamps[i] = &t
			}
			switch i {
			case 0:
				if items, ok := doc.stringItems(gearKey); ok {
					snap.Gear = toItems[models.GearItem](items)
				}
			case 1:
				if items, ok := doc.stringItems(seedsKey); ok {
					snap.Seeds = toItems[models.SeedItem](items)
				}
			case 2:
				if items, ok := doc.stringItems(eggsKey); ok {
					snap.Eggs = toItems[models.EggItem](items)
				}
			case 3:
				snap.Weather = doc.parseWeather()
			}
			return nil
		})
	}
	if err := pg.Wait(); err != nil {
		return nil, err
	}

	for _, t := range stamps {
		if t != nil {
			snap.UpdatedAt = append(snap.UpdatedAt, *t)
		}
	}
	snap.FetchedAt = p.now()
	return snap, nil
}

func toItems[T ~string](items []string) []T {
	out := make([]T, len(items))
	for i, s := range items {
		out[i] = T(s)
	}
	return out
}
