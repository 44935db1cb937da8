package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/luckfunc/gardenstock/internal/bot"
	"github.com/luckfunc/gardenstock/internal/client"
	"github.com/luckfunc/gardenstock/internal/config"
	"github.com/luckfunc/gardenstock/internal/handlers"
	"github.com/luckfunc/gardenstock/internal/locale"
	"github.com/luckfunc/gardenstock/internal/logging"
	"github.com/luckfunc/gardenstock/internal/monitor"
	"github.com/luckfunc/gardenstock/internal/schedule"
	"github.com/luckfunc/gardenstock/internal/services"
	"github.com/luckfunc/gardenstock/internal/tui"
	"github.com/luckfunc/gardenstock/internal/view"
	"github.com/luckfunc/gardenstock/internal/web"
)

const (
	statusSource    = "growagardenstock"
	statusHeartbeat = time.Minute
	shutdownTimeout = 5 * time.Second
	headerProfiles  = 4
)

var errDashboardClosed = errors.New("dashboard closed")

// App owns the page, its writers and the surfaces that expose it.
type App struct {
	cfg       *config.Config
	format    *locale.Formatter
	page      *web.Page
	renderer  *view.Renderer
	poller    *services.StockPoller
	countdown services.Countdown
	publisher *monitor.Publisher
	tasks     schedule.Group
	server    *web.Server
	snap      *web.Snapshotter
	dashboard *tui.Target
	wechat    *bot.Service
	alerter   *handlers.Alerter

	now func() time.Time
}

// Run builds the upstream client and runs the service until ctx is done.
func Run(ctx context.Context, cfg *config.Config) error {
	client.InitProfilePool(headerProfiles)
	c, err := client.New(client.Options{
		TimeoutSeconds: cfg.Sources.RequestTimeoutSeconds,
		ProxyURL:       cfg.Sources.ProxyURL,
	})
	if err != nil {
		return err
	}
	return New(cfg, c).Run(ctx)
}

// New wires the page, renderer, poller and tasks around fetcher.
func New(cfg *config.Config, fetcher services.Fetcher) *App {
	format := locale.New(cfg.Display.Locale, cfg.Location())
	page := web.NewPage(cfg.HTTP.Title, web.NewHub())

	a := &App{
		cfg:    cfg,
		format: format,
		page:   page,
		poller: services.NewStockPoller(fetcher, services.Sources{
			Gear:    cfg.Sources.GearURL,
			Seeds:   cfg.Sources.SeedsURL,
			Eggs:    cfg.Sources.EggsURL,
			Weather: cfg.Sources.WeatherURL,
		}, view.NewHighlights(cfg.Display.EpicItems, cfg.Display.RareItems), format),
		countdown: services.Countdown{
			Month:   time.Month(cfg.Display.CountdownMonth),
			Day:     cfg.Display.CountdownDay,
			Message: cfg.Display.CountdownMessage,
			Format:  format,
		},
		publisher: monitor.NewPublisher(statusSource, statusHeartbeat),
		now:       time.Now,
	}

	targets := view.MultiTarget{page}
	if cfg.TUI.Enabled {
		a.dashboard = tui.NewTarget()
		targets = append(targets, a.dashboard)
	}
	a.renderer = view.NewRenderer(targets)

	if cfg.Snapshot.Enabled {
		a.snap = web.NewSnapshotter(cfg.Snapshot.Width, time.Duration(cfg.Snapshot.TimeoutSeconds)*time.Second)
	}
	a.server = web.NewServer(page, web.ServerConfig{Listen: cfg.HTTP.Listen, Snapshotter: a.snap})

	poll := schedule.NewTask("poll", cfg.Schedule.PollInterval(), a.poll)
	poll.Overlap = true
	a.tasks = schedule.Group{
		poll,
		schedule.NewTask("clock", cfg.Schedule.ClockInterval(), a.tickClock),
		schedule.NewTask("countdown", cfg.Schedule.CountdownInterval(), a.tickCountdown),
	}
	return a
}

func (a *App) poll(ctx context.Context) {
	m, out := a.poller.Cycle(ctx)
	a.renderer.Render(m)
	status := monitor.FromOutcome(out)
	status.Clients, status.Dropped = a.page.Hub().Count(), a.page.Hub().Dropped()
	a.publisher.Publish(status)
	if a.wechat != nil && m.Err == nil {
		if fresh := a.alerter.Check(m.Lists); len(fresh) > 0 {
			n := a.wechat.Broadcast(handlers.AlertText(fresh))
			logging.Printf("wechat: stock alert sent to %d groups", n)
		}
	}
}

func (a *App) tickClock(context.Context) {
	a.renderer.RenderText(view.LocalTime, services.LocalTime(a.now(), a.format))
}

func (a *App) tickCountdown(context.Context) {
	a.renderer.RenderText(view.Countdown, a.countdown.Text(a.now()))
}

// Page returns the live page.
func (a *App) Page() *web.Page {
	return a.page
}

// Run starts the tasks, the page server and the optional bot and dashboard,
// and blocks until ctx is done, the dashboard quits or a component fails.
func (a *App) Run(ctx context.Context) error {
	if a.dashboard != nil {
		f, err := os.OpenFile(a.cfg.TUI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logging.SetOutput(f, f)
	}
	logging.StartLogger()
	defer logging.StopLogger()

	if a.cfg.WeChat.Enabled {
		store, err := handlers.LoadSubscriptions(a.cfg.WeChat.SubscriptionsFile)
		if err != nil {
			return err
		}
		handler := handlers.NewHandler(a.page, a.snap, store)
		a.wechat = bot.New(a.cfg.WeChat.HotReloadFile, handler.HandleGroupMessage, store)
		a.alerter = handlers.NewAlerter()
	}

	a.publisher.Start()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(a.server.ListenAndServe)

	a.tasks.Start(gctx)

	if a.wechat != nil {
		g.Go(func() error {
			return a.wechat.Run(gctx)
		})
	}

	if a.dashboard != nil {
		g.Go(func() error {
			if err := tui.Run(gctx, a.cfg.HTTP.Title, a.dashboard); err != nil {
				return err
			}
			return errDashboardClosed
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		a.tasks.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.server.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	if errors.Is(err, errDashboardClosed) {
		return nil
	}
	return err
}
