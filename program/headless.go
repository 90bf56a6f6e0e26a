package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/keilerkonzept/heartbeat-tui-demo/internal/feed"
	"github.com/keilerkonzept/heartbeat-tui-demo/internal/loop"
	"github.com/keilerkonzept/heartbeat-tui-demo/internal/render"
	"github.com/keilerkonzept/heartbeat-tui-demo/internal/ringbuf"
	"github.com/keilerkonzept/heartbeat-tui-demo/internal/waveform"
)

// headless runs both loops without a terminal UI. Feed lines go to out as
// they rotate and the EKG is drawn onto a raster that can be saved as PNG.
type headless struct {
	logger *zap.Logger
	out    io.Writer

	// owned by the ekg loop
	anim     *ringbuf.Animation
	detector *waveform.Detector
	samples  []float64
	image    *render.Image

	// owned by the feed loop
	rotator *feed.Rotator
	ranker  *lineRanker

	metrics *loopMetrics
}

func newHeadless(logger *zap.Logger, out io.Writer) (*headless, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	img, err := render.NewImage(config.Width, float64(config.Height), config.PNGScale)
	if err != nil {
		return nil, fmt.Errorf("ekg image: %w", err)
	}
	metrics := newLoopMetrics(config.StatsWindow)
	metrics.setEnabled(true)
	return &headless{
		logger:   logger,
		out:      out,
		anim:     ringbuf.NewAnimation(config.Width, float64(config.Height)),
		detector: waveform.NewDetector(float64(config.Height)),
		image:    img,
		rotator: feed.NewRotator(feed.DefaultLines, feed.New(config.FeedLines),
			rand.New(rand.NewSource(config.Seed))),
		ranker:  newLineRanker(config.RankK, config.RankWindow, config.FullRefresh, config.PartialSize),
		metrics: metrics,
	}, nil
}

func (h *headless) runWallClock(ctx context.Context) error {
	if config.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Duration)
		defer cancel()
	}
	return h.run(ctx, loop.NewTicker(config.Tick), loop.NewTicker(config.FeedInterval))
}

// run drives the loops from the given sources until ctx is done, then stops
// both and writes the PNG if one was requested.
func (h *headless) run(ctx context.Context, ekgSrc, feedSrc loop.Source) error {
	var loopErr error
	ekgCtx, stopEKG := context.WithCancel(ctx)
	defer stopEKG()

	ekg := loop.Start(ekgCtx, ekgSrc, func(time.Time) {
		if err := h.stepEKG(); err != nil && loopErr == nil {
			loopErr = err
			stopEKG()
		}
	})
	feedLoop := loop.Start(ctx, feedSrc, func(t time.Time) {
		h.rotateFeed(t)
	})

	select {
	case <-ctx.Done():
	case <-ekg.Done():
	}
	ekg.Stop()
	feedLoop.Stop()
	if loopErr != nil {
		return loopErr
	}

	snap := h.metrics.snapshot()
	h.logger.Info("loops stopped",
		zap.Uint64("ekg_ticks", snap.ekgTicks),
		zap.Uint64("rotations", snap.rotations),
		zap.Int("beat_ticks", snap.beatTicks),
	)
	if config.PNGPath == "" {
		return nil
	}
	return savePNG(h.image, config.PNGPath, h.logger)
}

func (h *headless) stepEKG() error {
	start := time.Now()
	v := h.anim.Step()
	if interval, ok := h.detector.Process(v); ok {
		h.metrics.observeBeat(interval)
	}
	h.samples = h.anim.Samples(h.samples)
	f, err := render.NewFrame(h.samples, h.anim.Width(), h.anim.Height())
	if err != nil {
		return fmt.Errorf("ekg frame: %w", err)
	}
	h.image.Draw(f)
	h.metrics.observeFrame(time.Since(start))
	return nil
}

func (h *headless) rotateFeed(now time.Time) {
	line, ok := h.rotator.Rotate()
	if !ok {
		return
	}
	h.ranker.observe(line)
	h.metrics.observeRotation()
	items, _ := h.ranker.refresh(now)
	top := "-"
	if len(items) > 0 {
		top = fmt.Sprintf("%s (%d)", items[0].Item, items[0].Count)
	}
	if _, err := fmt.Fprintf(h.out, "%s%s\n", feed.Marker, line); err != nil {
		h.logger.Warn("feed write failed", zap.Error(err))
	}
	h.logger.Debug("feed rotated", zap.String("line", line), zap.String("top", top))
}
