package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	tui "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"go.uber.org/zap"

	"github.com/keilerkonzept/heartbeat-tui-demo/internal/logging"
)

func main() {
	log.SetOutput(os.Stderr)
	if err := loadEnvDefaults(); err != nil {
		log.Fatal(err)
	}

	flag.IntVar(&config.Width, "width", config.Width, "Surface width (also the number of samples in the trace)")
	flag.IntVar(&config.Height, "height", config.Height, "Surface height")
	flag.DurationVar(&config.Tick, "tick", config.Tick, "EKG tick interval")
	flag.DurationVar(&config.FeedInterval, "feed-interval", config.FeedInterval, "Status feed rotation interval")
	flag.IntVar(&config.FeedLines, "feed-lines", config.FeedLines, "Visible status feed lines")
	flag.Int64Var(&config.Seed, "seed", config.Seed, "Random seed for the status feed (0 = time based)")
	flag.IntVar(&config.RankK, "rank-k", config.RankK, "Show the K most frequent status lines")
	flag.IntVar(&config.RankWindow, "rank-window", config.RankWindow, "Count status lines over this many rotations")
	flag.DurationVar(&config.FullRefresh, "full-refresh", config.FullRefresh, "How often to do a full leaderboard refresh (0 = always)")
	flag.IntVar(&config.PartialSize, "partial-size", config.PartialSize, "How many leaderboard items to re-count between full refreshes (0 = all)")
	flag.BoolVar(&config.StatsEnabled, "stats", config.StatsEnabled, "Show loop stats")
	flag.IntVar(&config.StatsWindow, "stats-window", config.StatsWindow, "Number of recent frame times kept")
	flag.IntVar(&config.ViewSplit, "view-split", config.ViewSplit, "Split the view at this % of the total screen width [20,80]")
	flag.BoolVar(&config.AltScreen, "alt-screen", config.AltScreen, "Use the terminal alternate screen buffer")
	flag.BoolVar(&config.Headless, "headless", config.Headless, "Run without a TUI (implied when stdout is not a terminal)")
	flag.DurationVar(&config.Duration, "duration", config.Duration, "Stop after this long (0 = until interrupted)")
	flag.StringVar(&config.PNGPath, "png", config.PNGPath, "Write the last EKG frame to this PNG file on exit")
	flag.IntVar(&config.PNGScale, "png-scale", config.PNGScale, "PNG pixels per surface unit")
	flag.StringVar(&config.LogFile, "log-file", config.LogFile, "Write logs to this file")
	flag.BoolVar(&config.Debug, "debug", config.Debug, "Development logging")

	flag.Parse()

	if err := validateAndNormalizeConfig(); err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(config.LogFile, config.Debug)
	if err != nil {
		log.Fatal(err)
	}
	defer logging.Sync(logger)

	logger.Info("starting",
		zap.Int("width", config.Width),
		zap.Int("height", config.Height),
		zap.Duration("tick", config.Tick),
		zap.Duration("feed_interval", config.FeedInterval),
		zap.Int64("seed", config.Seed),
	)

	if config.Headless || !term.IsTerminal(os.Stdout.Fd()) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		h, err := newHeadless(logger, os.Stdout)
		if err != nil {
			logger.Error("headless setup failed", zap.Error(err))
			log.Fatal(err)
		}
		if err := h.runWallClock(ctx); err != nil {
			logger.Error("headless run failed", zap.Error(err))
			log.Fatal(err)
		}
		return
	}

	m, err := newModel(logger)
	if err != nil {
		log.Fatal(err)
	}
	opts := []tui.ProgramOption{tui.WithInputTTY()}
	if config.AltScreen {
		opts = append(opts, tui.WithAltScreen())
	}
	if _, err := tui.NewProgram(m, opts...).Run(); err != nil {
		logger.Error("program failed", zap.Error(err))
		log.Fatal(err)
	}
	if err := m.writePNG(); err != nil {
		log.Fatal(err)
	}
	logger.Info("stopped")
}
