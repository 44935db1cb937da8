package bot

import (
	"context"
	"fmt"
	"sync"

	"github.com/eatmoreapple/openwechat"

	"github.com/luckfunc/gardenstock/internal/handlers"
	"github.com/luckfunc/gardenstock/internal/logging"
)

// Service is the logged-in WeChat bot.
type Service struct {
	hotReloadFile string
	handler       openwechat.MessageHandler
	store         *handlers.SubscriptionStore

	mu  sync.Mutex
	bot *openwechat.Bot
}

func New(hotReloadFile string, handler openwechat.MessageHandler, store *handlers.SubscriptionStore) *Service {
	return &Service{hotReloadFile: hotReloadFile, handler: handler, store: store}
}

// Run logs in with hot reload storage and dispatches messages until ctx is
// cancelled or the session ends.
func (s *Service) Run(ctx context.Context) error {
	bot := openwechat.DefaultBot(openwechat.Desktop)

	// Register QR code callback
	bot.UUIDCallback = openwechat.PrintlnQrcodeUrl

	reloadStorage := openwechat.NewFileHotReloadStorage(s.hotReloadFile)
	defer reloadStorage.Close()

	if err := bot.HotLogin(reloadStorage, openwechat.NewRetryLoginOption()); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if self, err := bot.GetCurrentUser(); err == nil {
		logging.Printf("wechat: logged in as %s", self.NickName)
	}

	bot.MessageHandler = s.handler
	s.mu.Lock()
	s.bot = bot
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.bot = nil
		s.mu.Unlock()
	}()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			bot.Exit()
		case <-done:
		}
	}()

	// Block until exit
	if err := bot.Block(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// Broadcast sends text to every subscribed group and returns how many
// received it. It does nothing before login.
func (s *Service) Broadcast(text string) int {
	s.mu.Lock()
	bot := s.bot
	s.mu.Unlock()
	if bot == nil || !bot.Alive() || s.store == nil {
		return 0
	}

	subs := s.store.Groups()
	if len(subs) == 0 {
		return 0
	}
	self, err := bot.GetCurrentUser()
	if err != nil {
		logging.Printf("wechat: broadcast skipped: %v", err)
		return 0
	}
	groups, err := self.Groups()
	if err != nil {
		logging.Printf("wechat: broadcast skipped: %v", err)
		return 0
	}

	sent := 0
	for id, name := range subs {
		// group ids change between sessions; fall back to the saved name
		target := groups.SearchByUserName(1, id)
		if target.Count() == 0 && name != "" {
			target = groups.SearchByNickName(1, name)
		}
		if target.Count() == 0 {
			continue
		}
		if _, err := target.First().SendText(text); err != nil {
			logging.Printf("wechat: failed to push to %s: %v", name, err)
			continue
		}
		sent++
	}
	return sent
}
