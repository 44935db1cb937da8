package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const stockBaseURL = "https://growagardenstock.com/api/stock"

// Config represents the complete service configuration
type Config struct {
	Sources  SourcesConfig  `yaml:"sources"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Display  DisplayConfig  `yaml:"display"`
	HTTP     HTTPConfig     `yaml:"http"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	WeChat   WeChatConfig   `yaml:"wechat"`
	TUI      TUIConfig      `yaml:"tui"`
}

// SourcesConfig lists the upstream JSON endpoints
type SourcesConfig struct {
	GearURL               string `yaml:"gear_url"`
	SeedsURL              string `yaml:"seeds_url"`
	EggsURL               string `yaml:"eggs_url"`
	WeatherURL            string `yaml:"weather_url"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
	ProxyURL              string `yaml:"proxy_url"`
}

// ScheduleConfig holds the three independent refresh intervals
type ScheduleConfig struct {
	PollIntervalSeconds      int `yaml:"poll_interval_seconds"`
	ClockIntervalSeconds     int `yaml:"clock_interval_seconds"`
	CountdownIntervalSeconds int `yaml:"countdown_interval_seconds"`
}

// DisplayConfig controls locale, timezone, countdown target and highlighting
type DisplayConfig struct {
	Locale           string   `yaml:"locale"`
	Timezone         string   `yaml:"timezone"`
	CountdownMonth   int      `yaml:"countdown_month"`
	CountdownDay     int      `yaml:"countdown_day"`
	CountdownMessage string   `yaml:"countdown_message"`
	EpicItems        []string `yaml:"epic_items"`
	RareItems        []string `yaml:"rare_items"`
}

// HTTPConfig contains the page server settings
type HTTPConfig struct {
	Listen string `yaml:"listen"`
	Title  string `yaml:"title"`
}

// SnapshotConfig controls headless-browser screenshots of the page
type SnapshotConfig struct {
	Enabled        bool `yaml:"enabled"`
	Width          int  `yaml:"width"`
	TimeoutSeconds int  `yaml:"timeout_seconds"`
}

// WeChatConfig controls the group chat bot
type WeChatConfig struct {
	Enabled           bool   `yaml:"enabled"`
	HotReloadFile     string `yaml:"hot_reload_file"`
	SubscriptionsFile string `yaml:"subscriptions_file"`
}

// TUIConfig controls the terminal dashboard
type TUIConfig struct {
	Enabled bool   `yaml:"enabled"`
	LogFile string `yaml:"log_file"`
}

// Default returns the configuration the service runs with when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.Normalize()
	return cfg
}

// Load loads configuration from a YAML file
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize fills unset fields with defaults.
func (c *Config) Normalize() {
	s := &c.Sources
	if strings.TrimSpace(s.GearURL) == "" {
		s.GearURL = stockBaseURL + "?type=gear-seeds"
	}
	if strings.TrimSpace(s.SeedsURL) == "" {
		s.SeedsURL = stockBaseURL + "?type=seeds"
	}
	if strings.TrimSpace(s.EggsURL) == "" {
		s.EggsURL = stockBaseURL + "?type=egg"
	}
	if strings.TrimSpace(s.WeatherURL) == "" {
		s.WeatherURL = stockBaseURL + "/weather"
	}
	if s.RequestTimeoutSeconds < 0 {
		s.RequestTimeoutSeconds = 0
	}

	if c.Schedule.PollIntervalSeconds <= 0 {
		c.Schedule.PollIntervalSeconds = 10
	}
	if c.Schedule.ClockIntervalSeconds <= 0 {
		c.Schedule.ClockIntervalSeconds = 1
	}
	if c.Schedule.CountdownIntervalSeconds <= 0 {
		c.Schedule.CountdownIntervalSeconds = 1
	}

	d := &c.Display
	if strings.TrimSpace(d.Locale) == "" {
		d.Locale = "en-PH"
	}
	if strings.TrimSpace(d.Timezone) == "" {
		d.Timezone = "Asia/Manila"
	}
	if d.CountdownMonth == 0 {
		d.CountdownMonth = 12
	}
	if d.CountdownDay == 0 {
		d.CountdownDay = 25
	}
	if d.CountdownMessage == "" {
		d.CountdownMessage = "Merry Christmas!"
	}
	if d.EpicItems == nil {
		d.EpicItems = []string{"Golden Spade", "Mystic Hammer", "Dragon Egg"}
	}
	if d.RareItems == nil {
		d.RareItems = []string{"Mystic Seed", "Moon Bean"}
	}

	if strings.TrimSpace(c.HTTP.Listen) == "" {
		c.HTTP.Listen = ":8080"
	}
	if c.HTTP.Title == "" {
		c.HTTP.Title = "Grow a Garden Stock"
	}

	if c.Snapshot.Width <= 0 {
		c.Snapshot.Width = 1280
	}
	if c.Snapshot.TimeoutSeconds <= 0 {
		c.Snapshot.TimeoutSeconds = 20
	}

	if c.WeChat.HotReloadFile == "" {
		c.WeChat.HotReloadFile = "storage.json"
	}
	if c.WeChat.SubscriptionsFile == "" {
		c.WeChat.SubscriptionsFile = "subscriptions.json"
	}
	if c.TUI.LogFile == "" {
		c.TUI.LogFile = "gardenstock.log"
	}
}

// Validate rejects settings that cannot be used at runtime.
func (c *Config) Validate() error {
	if c.Display.CountdownMonth < 1 || c.Display.CountdownMonth > 12 {
		return fmt.Errorf("display.countdown_month out of range: %d", c.Display.CountdownMonth)
	}
	if c.Display.CountdownDay < 1 || c.Display.CountdownDay > 31 {
		return fmt.Errorf("display.countdown_day out of range: %d", c.Display.CountdownDay)
	}
	if _, err := time.LoadLocation(c.Display.Timezone); err != nil {
		return fmt.Errorf("display.timezone %q: %w", c.Display.Timezone, err)
	}
	return nil
}

// Location returns the display timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Display.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (s ScheduleConfig) PollInterval() time.Duration {
	return time.Duration(s.PollIntervalSeconds) * time.Second
}

func (s ScheduleConfig) ClockInterval() time.Duration {
	return time.Duration(s.ClockIntervalSeconds) * time.Second
}

func (s ScheduleConfig) CountdownInterval() time.Duration {
	return time.Duration(s.CountdownIntervalSeconds) * time.Second
}

// Print displays the configuration
func (c *Config) Print() {
	fmt.Printf("Sources: gear=%s seeds=%s eggs=%s weather=%s\n",
		c.Sources.GearURL, c.Sources.SeedsURL, c.Sources.EggsURL, c.Sources.WeatherURL)
	fmt.Printf("Schedule: poll=%ds clock=%ds countdown=%ds\n",
		c.Schedule.PollIntervalSeconds, c.Schedule.ClockIntervalSeconds, c.Schedule.CountdownIntervalSeconds)
	fmt.Printf("Display: %s (%s), countdown to %02d-%02d\n",
		c.Display.Locale, c.Display.Timezone, c.Display.CountdownMonth, c.Display.CountdownDay)
	fmt.Printf("HTTP: %s\n", c.HTTP.Listen)
	if c.Snapshot.Enabled {
		fmt.Printf("Snapshot: width=%d timeout=%ds\n", c.Snapshot.Width, c.Snapshot.TimeoutSeconds)
	}
	if c.WeChat.Enabled {
		fmt.Printf("WeChat: hot reload file %s\n", c.WeChat.HotReloadFile)
	}
}
