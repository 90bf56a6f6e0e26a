package main

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tui "github.com/charmbracelet/bubbletea"
	styles "github.com/charmbracelet/lipgloss"
	plot "github.com/chriskim06/drawille-go"
	"github.com/keilerkonzept/topk/heap"
	"go.uber.org/zap"

	"github.com/keilerkonzept/heartbeat-tui-demo/internal/feed"
	"github.com/keilerkonzept/heartbeat-tui-demo/internal/render"
	"github.com/keilerkonzept/heartbeat-tui-demo/internal/ringbuf"
	"github.com/keilerkonzept/heartbeat-tui-demo/internal/waveform"
)

var (
	selectedColor = styles.AdaptiveColor{Light: "0", Dark: "9"}
	borderColor   = styles.AdaptiveColor{Light: "#555", Dark: "#555"}
	traceColor    = styles.AdaptiveColor{Light: "2", Dark: "10"}
	borderFg      = styles.NewStyle().Foreground(borderColor)
	traceFg       = styles.NewStyle().Foreground(traceColor).Bold(true)
	paneStyle     = styles.NewStyle().
			BorderStyle(styles.NormalBorder()).
			BorderForeground(borderColor)
	plotStyle = styles.NewStyle().
			BorderStyle(styles.NormalBorder()).
			Foreground(borderColor).
			BorderForeground(borderColor)
)

// model is only touched from the bubbletea event loop, so it needs no locks.
// The EKG and feed state are separate and each tick message only touches
// its own half.
type model struct {
	width, height  int
	leftPaneWidth  int
	rightPaneWidth int

	paused bool
	err    error
	logger *zap.Logger

	// ekg loop
	anim     *ringbuf.Animation
	detector *waveform.Detector
	samples  []float64
	frame    render.Frame
	canvas   *render.Canvas
	image    *render.Image
	plotView string

	// feed loop
	rotator      *feed.Rotator
	ranker       *lineRanker
	rankItems    []heap.Item
	list         list.Model
	listDelegate *list.DefaultDelegate

	help    help.Model
	metrics *loopMetrics
}

func newModel(logger *zap.Logger) (*model, error) {
	const (
		defaultWidth  = 80
		defaultHeight = 20
	)
	if logger == nil {
		logger = zap.NewNop()
	}

	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = styles.NewStyle().
		Border(styles.NormalBorder(), false, false, false, true).
		BorderForeground(borderColor).
		Foreground(selectedColor).
		Bold(false).
		Padding(0, 0, 0, 1)
	d.Styles.SelectedDesc = d.Styles.SelectedTitle.
		Foreground(selectedColor)
	d.ShowDescription = true

	l := list.New(make([]list.Item, 0), d, defaultWidth/2-2, defaultHeight)
	l.Styles.NoItems = l.Styles.NoItems.
		Padding(0, 2)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)

	left, right := computePaneWidths(defaultWidth, config.ViewSplit)
	canvas, err := render.NewCanvas(max(1, right-2), max(1, defaultHeight-3))
	if err != nil {
		return nil, fmt.Errorf("ekg canvas: %w", err)
	}
	if styles.DefaultRenderer().HasDarkBackground() {
		canvas.Trace, canvas.Grid = plot.Red, plot.DimGray
	} else {
		canvas.Trace, canvas.Grid = plot.Black, plot.LightGray
	}

	var img *render.Image
	if config.PNGPath != "" {
		img, err = render.NewImage(config.Width, float64(config.Height), config.PNGScale)
		if err != nil {
			return nil, fmt.Errorf("ekg image: %w", err)
		}
	}

	metrics := newLoopMetrics(config.StatsWindow)
	metrics.setEnabled(config.StatsEnabled)

	m := &model{
		leftPaneWidth:  left,
		rightPaneWidth: right,
		logger:         logger,
		anim:           ringbuf.NewAnimation(config.Width, float64(config.Height)),
		detector:       waveform.NewDetector(float64(config.Height)),
		canvas:         canvas,
		image:          img,
		rotator: feed.NewRotator(feed.DefaultLines, feed.New(config.FeedLines),
			rand.New(rand.NewSource(config.Seed))),
		ranker:       newLineRanker(config.RankK, config.RankWindow, config.FullRefresh, config.PartialSize),
		list:         l,
		listDelegate: &d,
		help:         help.New(),
		metrics:      metrics,
	}
	if err := m.redraw(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *model) leftWidth() int {
	if m.leftPaneWidth > 0 {
		return m.leftPaneWidth
	}
	left, _ := computePaneWidths(m.width, config.ViewSplit)
	return left
}

func (m *model) rightWidth() int {
	if m.rightPaneWidth > 0 {
		return m.rightPaneWidth
	}
	_, right := computePaneWidths(m.width, config.ViewSplit)
	return right
}

// EKGTickMsg drives the waveform loop. The next tick is only scheduled once
// the current frame has been drawn.
type EKGTickMsg time.Time

func doEKGTick() tui.Cmd {
	return tui.Tick(config.Tick, func(t time.Time) tui.Msg {
		return EKGTickMsg(t)
	})
}

// FeedTickMsg drives the status feed on a fixed interval.
type FeedTickMsg time.Time

func doFeedTick() tui.Cmd {
	return tui.Every(config.FeedInterval, func(t time.Time) tui.Msg {
		return FeedTickMsg(t)
	})
}

type stopMsg struct{}

func doStopAfter() tui.Cmd {
	if config.Duration <= 0 {
		return nil
	}
	return tui.Tick(config.Duration, func(time.Time) tui.Msg { return stopMsg{} })
}

type errMsg struct{ err error }

func (m *model) Init() tui.Cmd {
	return tui.Batch(doEKGTick(), doFeedTick(), doStopAfter())
}

func (m *model) Update(msg tui.Msg) (tui.Model, tui.Cmd) {
	switch msg := msg.(type) {
	case errMsg:
		m.err = msg.err
		m.logger.Error("update failed", zap.Error(msg.err))
		return m, nil
	case stopMsg:
		m.logger.Info("duration elapsed", zap.Duration("duration", config.Duration))
		return m, tui.Quit
	case EKGTickMsg:
		if m.paused {
			return m, doEKGTick()
		}
		if err := m.stepEKG(); err != nil {
			return m, func() tui.Msg { return errMsg{err} }
		}
		return m, doEKGTick()
	case FeedTickMsg:
		if m.paused {
			return m, doFeedTick()
		}
		m.rotateFeed(time.Time(msg))
		cmdList := m.updateList(msg)
		return m, tui.Batch(cmdList, doFeedTick())
	case tui.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.leftPaneWidth, m.rightPaneWidth = computePaneWidths(m.width, config.ViewSplit)
		statsLines := 0
		if config.StatsEnabled {
			// title + 5 metric lines
			statsLines = 6
		}
		helpLines := 1
		available := max(1, m.height-statsLines-helpLines)

		leftW := max(1, m.leftWidth())
		rightW := max(1, m.rightWidth())

		// Feed box: lines plus border.
		listHeight := max(1, available-config.FeedLines-2)
		m.list.SetSize(leftW, listHeight)

		// Right side is: plot canvas + ruler line, wrapped in a border (adds 2 lines).
		m.canvas.Resize(max(1, rightW-2), max(1, available-3))
		if err := m.redraw(); err != nil {
			m.err = err
		}
		return m, nil
	case tui.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.logger.Info("quit requested")
			return m, tui.Quit
		case key.Matches(msg, keys.Up):
			m.list.CursorUp()
			return m, nil
		case key.Matches(msg, keys.Down):
			m.list.CursorDown()
			return m, nil
		case key.Matches(msg, keys.Pause):
			m.togglePause()
			return m, nil
		}
	}
	var cmd tui.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *model) togglePause() {
	m.paused = !m.paused
	m.logger.Info("pause toggled", zap.Bool("paused", m.paused))
}

// stepEKG advances the waveform one tick and redraws.
func (m *model) stepEKG() error {
	start := time.Now()
	v := m.anim.Step()
	if interval, ok := m.detector.Process(v); ok {
		m.metrics.observeBeat(interval)
	}
	if err := m.redraw(); err != nil {
		return err
	}
	m.metrics.observeFrame(time.Since(start))
	return nil
}

func (m *model) redraw() error {
	m.samples = m.anim.Samples(m.samples)
	f, err := render.NewFrame(m.samples, m.anim.Width(), m.anim.Height())
	if err != nil {
		return fmt.Errorf("ekg frame: %w", err)
	}
	m.frame = f
	m.plotView = m.canvas.Draw(f)
	if m.image != nil {
		m.image.Draw(f)
	}
	return nil
}

func (m *model) rotateFeed(now time.Time) {
	line, ok := m.rotator.Rotate()
	if !ok {
		return
	}
	m.ranker.observe(line)
	m.metrics.observeRotation()
	m.rankItems, _ = m.ranker.refresh(now)
	m.logger.Debug("feed rotated", zap.String("line", line))
}

func (m *model) updateList(msg tui.Msg) tui.Cmd {
	items := make([]list.Item, len(m.rankItems))
	for i, item := range m.rankItems {
		items[i] = listItem{
			DescriptionPrefix: "   ",
			TitlePrefix:       fmt.Sprintf("#%-2d", i+1),
			Item:              item,
		}
	}
	set := m.list.SetItems(items)
	var cmd tui.Cmd
	m.list, cmd = m.list.Update(msg)
	return tui.Batch(set, cmd)
}

// writePNG saves the last frame when -png is set.
func (m *model) writePNG() error {
	if m.image == nil {
		return nil
	}
	return savePNG(m.image, config.PNGPath, m.logger)
}

func savePNG(img *render.Image, path string, logger *zap.Logger) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := img.WritePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close png: %w", err)
	}
	logger.Info("png written", zap.String("path", path))
	return nil
}

func (m *model) feedView() string {
	lines := m.rotator.Feed().Lines()
	for len(lines) < config.FeedLines {
		lines = append(lines, "")
	}
	w := max(1, m.leftWidth()-2)
	for i, l := range lines {
		if len([]rune(l)) > w {
			lines[i] = string([]rune(l)[:w])
		}
	}
	return paneStyle.Width(w).Render(traceFg.Render(strings.Join(lines, "\n")))
}

func (m *model) View() string {
	left := styles.JoinVertical(styles.Left, m.feedView(), m.list.View())

	ruler := borderFg.Render(m.canvas.Ruler(m.frame)) + traceFg.Render("●")
	label := fmt.Sprintf("t=%-6d y=%5.1f", m.anim.Tick(), m.frame.Head.Y)
	cols, _ := m.canvas.Size()
	if len(label) < cols {
		label = strings.Repeat(" ", cols-len(label)) + label
	}
	right := plotStyle.Render(styles.JoinVertical(styles.Left, m.plotView, ruler, label))
	view := styles.JoinHorizontal(styles.Top, left, right)

	if m.err != nil {
		errStyle := styles.NewStyle().Foreground(styles.AdaptiveColor{Light: "1", Dark: "9"})
		return styles.JoinVertical(styles.Left, view, errStyle.Render("ERROR: "+m.err.Error()), m.help.View(keys))
	}

	if config.StatsEnabled {
		snap := m.metrics.snapshot()
		title := "LOOP STATS (RUNNING)"
		if m.paused {
			title = "LOOP STATS (PAUSED)"
		}
		rate := "n/a"
		if snap.beatTicks > 0 {
			rate = fmt.Sprintf("%.1f bpm (%d ticks)", bpm(snap.beatTicks, config.Tick), snap.beatTicks)
		}
		statsBlock := []string{
			title,
			fmt.Sprintf("ekg ticks: %d", snap.ekgTicks),
			fmt.Sprintf("feed rotations: %d", snap.rotations),
			fmt.Sprintf("frame time: last %s avg %s max %s",
				formatMetricDuration(snap.frameTime.last),
				formatMetricDuration(snap.frameTime.avg),
				formatMetricDuration(snap.frameTime.max)),
			fmt.Sprintf("pulse: %s", rate),
			fmt.Sprintf("uptime: %s", time.Since(snap.started).Truncate(time.Second)),
		}
		statsStyle := styles.NewStyle().Foreground(styles.AdaptiveColor{Light: "1", Dark: "9"})
		return styles.JoinVertical(styles.Left, view, statsStyle.Render(strings.Join(statsBlock, "\n")), m.help.View(keys))
	}
	return styles.JoinVertical(styles.Left, view, m.help.View(keys))
}

func formatMetricDuration(d time.Duration) string {
	if d <= 0 {
		return "0.000ms"
	}
	return fmt.Sprintf("%.3fms", float64(d)/float64(time.Millisecond))
}

func computePaneWidths(totalWidth int, splitPercent int) (left, right int) {
	if totalWidth <= 1 {
		return 1, 1
	}
	left = totalWidth * splitPercent / 100
	if left < 1 {
		left = 1
	}
	if left > totalWidth-1 {
		left = totalWidth - 1
	}
	right = totalWidth - left

	// Keep panes readable when the terminal is wide enough.
	const minPane = 18
	if totalWidth >= minPane*2 {
		if left < minPane {
			left = minPane
			right = totalWidth - left
		}
		if right < minPane {
			right = minPane
			left = totalWidth - right
		}
	}
	if left < 1 {
		left = 1
	}
	if right < 1 {
		right = 1
	}
	return left, right
}

type listItem struct {
	DescriptionPrefix string
	TitlePrefix       string
	heap.Item
}

func (i listItem) Title() string       { return fmt.Sprintf("%s %s", i.TitlePrefix, i.Item.Item) }
func (i listItem) Description() string { return fmt.Sprintf("%s shown %dx", i.DescriptionPrefix, i.Count) }
func (i listItem) FilterValue() string { return i.Item.Item }

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Pause, k.Up, k.Down}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Quit, k.Pause},
		{k.Up, k.Down},
	}
}

type keyMap struct {
	Pause key.Binding
	Up    key.Binding
	Down  key.Binding
	Quit  key.Binding
}

var keys = keyMap{
	Pause: key.NewBinding(
		key.WithKeys("p", " "),
		key.WithHelp("p/space", "pause"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q/ctrl+c", "quit"),
	),
}
