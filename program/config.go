package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// surface
	Width  int
	Height int

	// loops
	Tick         time.Duration
	FeedInterval time.Duration
	FeedLines    int
	Seed         int64

	// leaderboard
	RankK       int
	RankWindow  int
	FullRefresh time.Duration
	PartialSize int

	// render
	StatsEnabled bool
	StatsWindow  int
	ViewSplit    int
	AltScreen    bool

	// headless
	Headless bool
	Duration time.Duration
	PNGPath  string
	PNGScale int

	LogFile string
	Debug   bool
}

var config = Config{
	Width:  300,
	Height: 100,

	Tick:         50 * time.Millisecond,
	FeedInterval: 2500 * time.Millisecond,
	FeedLines:    5,
	Seed:         0,

	RankK:       5,
	RankWindow:  24,
	FullRefresh: 10 * time.Second,
	PartialSize: 0,

	StatsEnabled: true,
	StatsWindow:  256,
	ViewSplit:    40,
	AltScreen:    true,

	Headless: false,
	Duration: 0,
	PNGPath:  "",
	PNGScale: 2,

	LogFile: "",
	Debug:   false,
}

// loadEnvDefaults overrides the built-in defaults from the environment and an
// optional .env file. Flags still win over both.
func loadEnvDefaults() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}
	var err error
	if config.Tick, err = envDuration("HEARTBEAT_TICK", config.Tick); err != nil {
		return err
	}
	if config.FeedInterval, err = envDuration("HEARTBEAT_FEED_INTERVAL", config.FeedInterval); err != nil {
		return err
	}
	if config.Width, err = envInt("HEARTBEAT_WIDTH", config.Width); err != nil {
		return err
	}
	if config.Height, err = envInt("HEARTBEAT_HEIGHT", config.Height); err != nil {
		return err
	}
	seed, err := envInt("HEARTBEAT_SEED", int(config.Seed))
	if err != nil {
		return err
	}
	config.Seed = int64(seed)
	if v, ok := os.LookupEnv("HEARTBEAT_LOG_FILE"); ok {
		config.LogFile = v
	}
	return nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func envInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func validateAndNormalizeConfig() error {
	if config.Width < 2 {
		return fmt.Errorf("-width must be >= 2")
	}
	if config.Height < 10 {
		return fmt.Errorf("-height must be >= 10")
	}
	if config.Tick <= 0 {
		return fmt.Errorf("-tick must be > 0")
	}
	if config.FeedInterval <= 0 {
		return fmt.Errorf("-feed-interval must be > 0")
	}
	if config.FeedLines < 1 || config.FeedLines > 50 {
		return fmt.Errorf("-feed-lines must be in [1,50]")
	}
	if config.RankK < 1 {
		return fmt.Errorf("-rank-k must be >= 1")
	}
	if config.RankWindow < 1 {
		return fmt.Errorf("-rank-window must be >= 1")
	}
	if config.FullRefresh < 0 {
		return fmt.Errorf("-full-refresh must be >= 0")
	}
	if config.PartialSize < 0 {
		return fmt.Errorf("-partial-size must be >= 0")
	}
	if config.Duration < 0 {
		return fmt.Errorf("-duration must be >= 0")
	}
	if config.PNGScale < 1 {
		return fmt.Errorf("-png-scale must be >= 1")
	}
	config.ViewSplit = max(20, config.ViewSplit)
	config.ViewSplit = min(80, config.ViewSplit)
	if config.StatsWindow < 16 {
		config.StatsWindow = 16
	}
	if config.Seed == 0 {
		config.Seed = time.Now().UnixNano()
	}
	return nil
}
