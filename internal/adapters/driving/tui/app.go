package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/cpufreqctl/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/cpufreqctl/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/cpufreqctl/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/cpufreqctl/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/cpufreqctl/internal/core/domain"
	"github.com/custodia-labs/cpufreqctl/internal/logger"
)

// DefaultInterval is the refresh period of the monitor.
const DefaultInterval = time.Second

// LimitStep is how far one key press moves the maximum limit.
const LimitStep domain.Percentage = 5

// App is the monitor model following the Elm architecture.
type App struct {
	ports    *Ports
	ctx      context.Context
	interval time.Duration
	now      func() time.Time

	styles   *styles.Styles
	keymap   *keymap.KeyMap
	help     help.Model
	bar      *status.Bar
	gauge    progress.Model
	snapshot messages.Snapshot
	loaded   bool
	err      error

	width  int
	height int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a monitor refreshing every interval.
func NewApp(ports *Ports, interval time.Duration) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating monitor: %w", err)
	}
	if interval <= 0 {
		interval = DefaultInterval
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	return &App{
		ports:    ports,
		ctx:      context.Background(),
		interval: interval,
		now:      time.Now,
		styles:   s,
		keymap:   km,
		help:     help.New(),
		bar:      status.NewBar(s, km),
		gauge: progress.New(
			progress.WithGradient(string(s.Theme().GaugeLow), string(s.Theme().GaugeHigh)),
			progress.WithWidth(30),
		),
		width: 80,
	}, nil
}

// WithContext sets the context used for service calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("cpufreqctl monitor"),
		a.load(true),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.bar.SetWidth(msg.Width)
		a.help.Width = msg.Width
		a.gauge.Width = gaugeWidth(msg.Width)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.Tick:
		return a, a.load(true)

	case messages.SnapshotLoaded:
		if msg.Err != nil {
			a.err = msg.Err
			a.bar.SetError(msg.Err)
		} else {
			a.snapshot = msg.Snapshot
			a.loaded = true
			a.err = nil
			a.bar.SetReady(msg.Snapshot.TakenAt)
		}
		if msg.Scheduled {
			return a, a.tick()
		}
		return a, nil

	case messages.ControlApplied:
		if msg.Err != nil {
			a.err = msg.Err
			a.bar.SetError(msg.Err)
			return a, nil
		}
		logger.Debug("monitor: %s applied", msg.Action)
		return a, a.load(false)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keymap.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keymap.Help):
		a.help.ShowAll = !a.help.ShowAll
		return a, nil
	case key.Matches(msg, a.keymap.Refresh):
		return a, a.load(false)
	case key.Matches(msg, a.keymap.Turbo):
		if !a.loaded {
			return a, nil
		}
		next := domain.TurboFromBool(!a.snapshot.Turbo.Enabled())
		return a, a.apply("turbo "+next.String(), func(ctx context.Context) error {
			return a.ports.Control.SetTurbo(ctx, next)
		})
	case key.Matches(msg, a.keymap.Raise):
		return a, a.stepMax(LimitStep)
	case key.Matches(msg, a.keymap.Lower):
		return a, a.stepMax(-LimitStep)
	case key.Matches(msg, a.keymap.Reset):
		return a, a.apply("reset", a.ports.Control.Reset)
	}
	return a, nil
}

func (a *App) stepMax(delta domain.Percentage) tea.Cmd {
	if !a.loaded {
		return nil
	}
	target := (a.snapshot.Max + delta).Clamp()
	if target == a.snapshot.Max {
		return nil
	}
	return a.apply(fmt.Sprintf("max %d%%", target), func(ctx context.Context) error {
		return a.ports.Control.SetMax(ctx, target)
	})
}

func (a *App) apply(action string, fn func(context.Context) error) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		return messages.ControlApplied{Action: action, Err: fn(ctx)}
	}
}

func (a *App) tick() tea.Cmd {
	return tea.Tick(a.interval, func(t time.Time) tea.Msg {
		return messages.Tick{At: t}
	})
}

func (a *App) load(scheduled bool) tea.Cmd {
	ctx, ports, now := a.ctx, a.ports, a.now
	return func() tea.Msg {
		snap, err := readSnapshot(ctx, ports, now)
		return messages.SnapshotLoaded{Snapshot: snap, Scheduled: scheduled, Err: err}
	}
}

// readSnapshot gathers one reading. Utilisation is best effort.
func readSnapshot(ctx context.Context, p *Ports, now func() time.Time) (messages.Snapshot, error) {
	var (
		snap messages.Snapshot
		err  error
	)
	if snap.Backend, err = p.Backends.Current(); err != nil {
		return snap, err
	}
	if snap.Turbo, err = p.Control.Turbo(ctx); err != nil {
		return snap, err
	}
	if snap.Min, err = p.Control.Min(ctx); err != nil {
		return snap, err
	}
	if snap.Max, err = p.Control.Max(ctx); err != nil {
		return snap, err
	}
	if snap.Cores, err = p.Control.CoreFrequencies(ctx); err != nil {
		return snap, err
	}
	if snap.Stats, err = p.Control.Current(ctx); err != nil {
		return snap, err
	}
	if p.Utilisation != nil {
		if util, uerr := p.Utilisation(ctx); uerr == nil {
			snap.Utilisation = util
		} else {
			logger.Debug("monitor: utilisation unavailable: %v", uerr)
		}
	}
	snap.TakenAt = now()
	return snap, nil
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("cpufreqctl monitor"))
	if a.loaded {
		b.WriteString(a.styles.Muted.Render("  backend " + a.snapshot.Backend.String()))
	}
	b.WriteString("\n\n")

	if !a.loaded {
		if a.err != nil {
			b.WriteString(a.styles.Error.Render(a.err.Error()))
		} else {
			b.WriteString(a.styles.Muted.Render("Reading frequency state..."))
		}
		b.WriteString("\n\n")
		b.WriteString(a.bar.View())
		return b.String()
	}

	snap := a.snapshot
	b.WriteString(a.row("Turbo", a.styles.Turbo(snap.Turbo.Enabled())))
	b.WriteString(a.row("Min", a.gauge.ViewAs(float64(snap.Min)/100)))
	b.WriteString(a.row("Max", a.gauge.ViewAs(float64(snap.Max)/100)))
	b.WriteString(a.row("Current", a.styles.Value.Render(fmt.Sprintf(
		"min %d MHz  avg %d MHz  max %d MHz",
		snap.Stats.Min.MHz(), snap.Stats.Avg.MHz(), snap.Stats.Max.MHz(),
	))))
	b.WriteString("\n")

	cores := make([]string, 0, len(snap.Cores))
	for i, f := range snap.Cores {
		line := fmt.Sprintf("cpu%-3d %5d MHz", i, f.MHz())
		if i < len(snap.Utilisation) {
			line += "  " + a.gauge.ViewAs(snap.Utilisation[i]/100)
		}
		cores = append(cores, line)
	}
	b.WriteString(a.styles.Border.Render(lipgloss.JoinVertical(lipgloss.Left, cores...)))
	b.WriteString("\n")

	if a.err != nil {
		b.WriteString(a.styles.Error.Render(a.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(a.bar.View())
	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render(a.help.View(a.keymap)))
	return b.String()
}

func (a *App) row(label, value string) string {
	return a.styles.Label.Render(label) + value + "\n"
}

// Snapshot returns the last successful reading.
func (a *App) Snapshot() messages.Snapshot {
	return a.snapshot
}

// Err returns the last error.
func (a *App) Err() error {
	return a.err
}

func gaugeWidth(termWidth int) int {
	w := termWidth - 30
	if w > 50 {
		w = 50
	}
	if w < 10 {
		w = 10
	}
	return w
}
