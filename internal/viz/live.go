package viz

import (
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/dataset"
	"github.com/san-kum/sortviz/internal/export"
	"github.com/san-kum/sortviz/internal/playback"
)

const (
	width           = 100
	height          = 30
	panelWidth      = 36
	historyCapacity = 600
	skipOps         = 10
	sizeStep        = 5
	speedStep       = 5
	gifWidth        = 480
	gifHeight       = 240
)

var graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))

var modelIDs atomic.Int64

// TickMsg drives redraws. Ticks from a model that has been replaced are
// ignored and not rescheduled.
type TickMsg struct {
	id   int64
	Time time.Time
}

type backMsg struct{}

// Model renders one scheduler and maps keys onto it. It polls the
// scheduler on every tick instead of observing it.
type Model struct {
	id       int64
	sched    *playback.Scheduler
	registry *algorithms.Registry
	gen      *dataset.Generator
	opts     dataset.Options
	theme    Theme
	fps      int
	logger   *slog.Logger
	embedded bool

	keys     keyMap
	help     help.Model
	showHelp bool
	compact  bool
	canvas   *Canvas

	width, height int
	frameNo       int
	rate          []float64
	lastCursor    int

	recorder  *export.GIFRecorder
	recording bool
	message   string
}

// NewModel builds the array and scheduler described by cfg. Extra options
// are passed to the scheduler after the ones derived from cfg.
func NewModel(cfg *config.Config, logger *slog.Logger, extra ...playback.Option) (Model, error) {
	if err := cfg.Validate(); err != nil {
		return Model{}, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gen := dataset.NewGenerator(seed)
	opts := cfg.DatasetOptions()
	snapshot, err := gen.Snapshot(opts)
	if err != nil {
		return Model{}, err
	}

	reg := algorithms.Default()
	schedOpts := append(cfg.SchedulerOptions(), playback.WithLogger(logger), playback.WithRegistry(reg))
	sched, err := playback.New(snapshot, cfg.Algorithm, append(schedOpts, extra...)...)
	if err != nil {
		return Model{}, err
	}

	return Model{
		id:       modelIDs.Add(1),
		sched:    sched,
		registry: reg,
		gen:      gen,
		opts:     opts,
		theme:    GetTheme(cfg.Theme),
		fps:      cfg.FPS,
		logger:   logger,
		keys:     keys,
		help:     help.New(),
		canvas:   NewCanvas(width-panelWidth-6, height-8),
		width:    width,
		height:   height,
		rate:     make([]float64, 0, historyCapacity),
	}, nil
}

// Scheduler exposes the underlying scheduler, mainly for tests.
func (m Model) Scheduler() *playback.Scheduler { return m.sched }

func (m Model) tick() tea.Cmd {
	id := m.id
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg{id: id, Time: t}
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and samples the scheduler.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.canvas = NewCanvas(m.barsWidth(), m.barsHeight())
	case TickMsg:
		if msg.id != m.id {
			return m, nil
		}
		m.sample()
		return m, m.tick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) sample() {
	m.frameNo++
	st := m.sched.Status()
	delta := st.Cursor - m.lastCursor
	if delta < 0 {
		delta = st.Cursor
	}
	if delta > 0 && m.recording {
		m.recorder.Add(m.sched.Frame())
	}
	m.lastCursor = st.Cursor

	m.rate = append(m.rate, float64(delta))
	if len(m.rate) > historyCapacity {
		m.rate = m.rate[1:]
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.sched.Status()
	m.message = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.sched.Pause()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		if m.embedded {
			m.sched.Pause()
			return m, func() tea.Msg { return backMsg{} }
		}
	case key.Matches(msg, m.keys.Play):
		switch {
		case st.Running:
			m.sched.Pause()
		case st.State == playback.Finished:
			m.message = "sorted, press r to replay"
		default:
			m.sched.Play()
		}
	case key.Matches(msg, m.keys.Step):
		if !m.sched.Step() {
			m.message = "nothing left to apply"
		}
	case key.Matches(msg, m.keys.Skip):
		m.sched.Seek(st.Cursor + skipOps)
	case key.Matches(msg, m.keys.Reset):
		m.sched.Reset()
	case key.Matches(msg, m.keys.New):
		m.regenerate()
	case key.Matches(msg, m.keys.Algo):
		names := m.registry.List()
		idx := int(msg.String()[0] - '1')
		if idx >= len(names) {
			break
		}
		if err := m.sched.SelectAlgorithm(names[idx]); err != nil {
			m.message = err.Error()
		}
	case key.Matches(msg, m.keys.Faster):
		m.sched.SetSpeed(st.Speed + speedStep)
	case key.Matches(msg, m.keys.Slower):
		m.sched.SetSpeed(st.Speed - speedStep)
	case key.Matches(msg, m.keys.Larger):
		m.resize(m.opts.Size + sizeStep)
	case key.Matches(msg, m.keys.Smaller):
		m.resize(m.opts.Size - sizeStep)
	case key.Matches(msg, m.keys.Theme):
		m.theme = NextTheme(m.theme.Name)
	case key.Matches(msg, m.keys.Compact):
		m.compact = !m.compact
	case key.Matches(msg, m.keys.Record):
		m.toggleRecording(st.Algorithm)
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	}
	return m, nil
}

func (m *Model) resize(n int) {
	n = dataset.ClampSize(n)
	if n == m.opts.Size {
		return
	}
	m.opts.Size = n
	m.regenerate()
}

func (m *Model) regenerate() {
	snapshot, err := m.gen.Snapshot(m.opts)
	if err != nil {
		m.message = err.Error()
		return
	}
	m.sched.SetSnapshot(snapshot)
}

func (m *Model) toggleRecording(algorithm string) {
	if !m.recording {
		m.recorder = export.NewGIFRecorder(gifWidth, gifHeight)
		m.recorder.Palette = m.theme.Palette()
		m.recorder.Add(m.sched.Frame())
		m.recording = true
		return
	}

	m.recording = false
	path := fmt.Sprintf("sortviz-%s-%d.gif", algorithm, time.Now().Unix())
	if err := m.recorder.Save(path); err != nil {
		m.logger.Error("save gif", "path", path, "err", err)
		m.message = "gif: " + err.Error()
	} else {
		m.message = fmt.Sprintf("saved %d frames to %s", m.recorder.Len(), path)
	}
	m.recorder = nil
}

func (m Model) barsWidth() int  { return max(10, m.width-panelWidth-6) }
func (m Model) barsHeight() int { return max(5, m.height-8) }

// View renders the bars, the status panel and the key help.
func (m Model) View() string {
	st := m.sched.Status()
	f := m.sched.Frame()

	var bars string
	if m.compact {
		m.canvas.DrawBars(f)
		bars = lipgloss.NewStyle().Foreground(m.theme.Bar).Render(strings.TrimSuffix(m.canvas.String(), "\n"))
	} else {
		bars = RenderBars(f, m.theme, m.barsWidth(), m.barsHeight())
	}

	title := GradientText("SORTVIZ", m.theme.Primary, m.theme.Secondary) + "  " +
		HeaderStyle.Render(strings.ToUpper(st.Algorithm))
	left := lipgloss.JoinVertical(lipgloss.Left, title, "", bars, "", Legend(m.theme))

	panel := GlassPanel.Width(panelWidth).Render(m.viewStatus(st, f.SortedCount()))
	main := lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Padding(1, 2).Render(left), panel)

	return main + "\n" + m.help.View(m.keys)
}

func (m Model) viewStatus(st playback.Status, sorted int) string {
	var s strings.Builder

	switch st.State {
	case playback.Running:
		s.WriteString(StatusRunning.Render(AnimatedSpinner(m.frameNo) + " RUNNING"))
	case playback.Paused:
		s.WriteString(StatusPaused.Render("PAUSED"))
	case playback.Finished:
		s.WriteString(StatusDone.Render("SORTED"))
	default:
		s.WriteString(StatusPaused.Render("READY"))
	}
	if m.recording {
		s.WriteString("  " + StatusRecording.Render(fmt.Sprintf("● REC %d", m.recorder.Len())))
	}
	s.WriteString("\n\n")

	s.WriteString(ProgressBar(st.Progress(), panelWidth-12) + MetricValue.Render(fmt.Sprintf(" %3.0f%%", st.Progress()*100)) + "\n\n")

	row := func(label, value string) {
		s.WriteString(MetricLabel.Render(label) + MetricValue.Render(value) + "\n")
	}
	if info, ok := m.registry.Describe(st.Algorithm); ok {
		row("cost", info.Complexity)
	}
	row("step", fmt.Sprintf("%d/%d", st.Cursor, st.LogLen))
	row("speed", fmt.Sprintf("%d (%v)", st.Speed, st.Delay))
	row("size", fmt.Sprintf("%d %s", st.Size, m.opts.Pattern))
	row("seed", fmt.Sprintf("%d", m.gen.Seed()))
	row("compares", fmt.Sprintf("%d", st.Applied.Compares))
	row("swaps", fmt.Sprintf("%d", st.Applied.Swaps))
	row("writes", fmt.Sprintf("%d", st.Applied.Writes))
	row("sorted", fmt.Sprintf("%d/%d", sorted, st.Size))
	row("theme", m.theme.Name)

	s.WriteString("\n")
	if m.height >= 28 && len(m.rate) > 1 {
		tail := m.rate[max(0, len(m.rate)-60):]
		chart := asciigraph.Plot(tail, asciigraph.Height(4), asciigraph.Width(panelWidth-10), asciigraph.Caption("ops/frame"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	} else {
		s.WriteString(SparklineChart(m.rate, panelWidth-6) + "\n")
	}

	if m.message != "" {
		s.WriteString("\n" + KeyHint.Render(m.message))
	}
	return s.String()
}

// Run starts the visualizer directly, without the menu.
func Run(cfg *config.Config, logger *slog.Logger) error {
	m, err := NewModel(cfg, logger)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	m.sched.Pause()
	return err
}
