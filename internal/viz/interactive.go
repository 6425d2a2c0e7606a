package viz

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/dataset"
	"github.com/san-kum/sortviz/internal/playback"
)

const (
	stateMenu = iota
	stateConfig
	stateSim
)

var (
	menuTitle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub      = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuPointer  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuSelected = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuDesc     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	menuIdle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuIdleDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	menuKey      = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

var configFields = []string{"size", "speed", "pattern", "seed", "reset", "theme"}

// App is the menu driven front end: pick an algorithm, tune the array and
// playback, then watch it sort.
type App struct {
	state, cursor int
	infos         []algorithms.Info
	cfg           *config.Config
	fieldCursor   int
	editing       bool
	editBuf       string
	sim           Model
	logger        *slog.Logger
	err           error
	width, height int
	extra         []playback.Option
}

func NewInteractiveApp(cfg *config.Config, logger *slog.Logger, extra ...playback.Option) *App {
	reg := algorithms.Default()
	infos := make([]algorithms.Info, 0, len(reg.List()))
	cursor := 0
	for i, name := range reg.List() {
		info, _ := reg.Describe(name)
		infos = append(infos, info)
		if name == cfg.Algorithm {
			cursor = i
		}
	}
	c := *cfg
	return &App{
		state:  stateMenu,
		cursor: cursor,
		infos:  infos,
		cfg:    &c,
		logger: logger,
		width:  80, height: 24,
		extra: extra,
	}
}

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		if a.state == stateSim {
			return a.updateSim(msg)
		}
		return a, nil
	case backMsg:
		a.state = stateMenu
		return a, nil
	case tea.KeyMsg:
		switch a.state {
		case stateMenu:
			return a.menuKey(msg)
		case stateConfig:
			return a.configKey(msg)
		}
	}
	if a.state == stateSim {
		return a.updateSim(msg)
	}
	return a, nil
}

func (a *App) updateSim(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := a.sim.Update(msg)
	a.sim = next.(Model)
	return a, cmd
}

func (a *App) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.infos)-1 {
			a.cursor++
		}
	case "enter", " ":
		a.cfg.Algorithm = a.infos[a.cursor].Name
		a.state, a.fieldCursor, a.err = stateConfig, 0, nil
	}
	return a, nil
}

func (a *App) configKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.editing {
		switch msg.String() {
		case "enter":
			a.commitEdit()
			a.editing, a.editBuf = false, ""
		case "esc":
			a.editing, a.editBuf = false, ""
		case "backspace":
			if len(a.editBuf) > 0 {
				a.editBuf = a.editBuf[:len(a.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 && (s[0] >= '0' && s[0] <= '9' || s[0] == '-') {
				a.editBuf += s
			}
		}
		return a, nil
	}

	switch msg.String() {
	case "q", "esc":
		a.state = stateMenu
	case "up", "k":
		if a.fieldCursor > 0 {
			a.fieldCursor--
		}
	case "down", "j":
		if a.fieldCursor < len(configFields)-1 {
			a.fieldCursor++
		}
	case "enter", " ":
		switch configFields[a.fieldCursor] {
		case "size", "speed", "seed":
			a.editing, a.editBuf = true, a.fieldValue(configFields[a.fieldCursor])
		}
	case "left", "h":
		a.adjust(-1)
	case "right", "l":
		a.adjust(1)
	case "s":
		return a.start()
	}
	return a, nil
}

func (a *App) commitEdit() {
	v, err := strconv.ParseInt(a.editBuf, 10, 64)
	if err != nil {
		return
	}
	switch configFields[a.fieldCursor] {
	case "size":
		a.cfg.Size = dataset.ClampSize(int(v))
	case "speed":
		a.cfg.Speed = playback.ClampSpeed(int(v))
	case "seed":
		a.cfg.Seed = v
	}
}

func (a *App) adjust(dir int) {
	switch configFields[a.fieldCursor] {
	case "size":
		a.cfg.Size = dataset.ClampSize(a.cfg.Size + dir*sizeStep)
	case "speed":
		a.cfg.Speed = playback.ClampSpeed(a.cfg.Speed + dir*speedStep)
	case "seed":
		a.cfg.Seed += int64(dir)
	case "pattern":
		a.cfg.Pattern = string(cycle(dataset.Patterns(), dataset.Pattern(a.cfg.Pattern), dir))
	case "reset":
		if a.cfg.ResetMode == playback.ResetRebase.String() {
			a.cfg.ResetMode = playback.ResetRestore.String()
		} else {
			a.cfg.ResetMode = playback.ResetRebase.String()
		}
	case "theme":
		a.cfg.Theme = cycle(ThemeNames(), a.cfg.Theme, dir)
	}
}

func cycle[T comparable](items []T, cur T, dir int) T {
	for i, it := range items {
		if it == cur {
			return items[(i+dir+len(items))%len(items)]
		}
	}
	return items[0]
}

func (a *App) fieldValue(name string) string {
	switch name {
	case "size":
		return strconv.Itoa(a.cfg.Size)
	case "speed":
		return strconv.Itoa(a.cfg.Speed)
	case "pattern":
		return a.cfg.Pattern
	case "seed":
		if a.cfg.Seed == 0 {
			return "random"
		}
		return strconv.FormatInt(a.cfg.Seed, 10)
	case "reset":
		return a.cfg.ResetMode
	case "theme":
		return a.cfg.Theme
	}
	return ""
}

func (a *App) start() (tea.Model, tea.Cmd) {
	sim, err := NewModel(a.cfg, a.logger, a.extra...)
	if err != nil {
		a.err = err
		return a, nil
	}
	sim.embedded = true
	sim.width, sim.height = a.width, a.height
	sim.help.Width = a.width
	sim.canvas = NewCanvas(sim.barsWidth(), sim.barsHeight())
	a.sim, a.state = sim, stateSim
	return a, sim.Init()
}

func (a *App) View() string {
	switch a.state {
	case stateMenu:
		return a.viewMenu()
	case stateConfig:
		return a.viewConfig()
	case stateSim:
		return a.sim.View()
	}
	return ""
}

func hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(menuKey.Render(pairs[i]) + menuIdle.Render(" "+pairs[i+1]+"  "))
	}
	return b.String()
}

func (a *App) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("SORTVIZ") + "\n    " + menuSub.Render("sorting algorithm visualizer") + "\n    " + menuSub.Render("────────────────────────────") + "\n\n")
	for i, info := range a.infos {
		desc := info.Description + "  " + info.Complexity
		if i == a.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuPointer.Render("▸"), NeonGlow.Render(fmt.Sprintf("%-10s", info.Name)), menuDesc.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", menuIdle.Render(fmt.Sprintf("  %-10s", info.Name)), menuIdleDesc.Render(desc)))
		}
	}
	b.WriteString("\n    " + hints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (a *App) viewConfig() string {
	var b strings.Builder
	desc := ""
	if a.cursor < len(a.infos) {
		desc = a.infos[a.cursor].Description
	}
	b.WriteString("\n\n    " + menuTitle.Render(strings.ToUpper(a.cfg.Algorithm)) + "\n    " + menuSub.Render(desc) + "\n    " + menuSub.Render("────────────────────────────") + "\n\n")
	for i, name := range configFields {
		val := fmt.Sprintf("%10s", a.fieldValue(name))
		if a.editing && i == a.fieldCursor {
			val = fmt.Sprintf("%10s", a.editBuf+"_")
		}
		if i == a.fieldCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", menuPointer.Render("▸"), menuSelected.Render(fmt.Sprintf("%-8s", name)), menuDesc.Bold(true).Render(val)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", menuIdle.Render(fmt.Sprintf("  %-8s", name)), menuIdleDesc.Render(val)))
		}
	}
	if a.err != nil {
		b.WriteString("\n    " + ErrorText.Render(a.err.Error()) + "\n")
	}
	b.WriteString("\n    " + hints("j/k", "select", "h/l", "adjust", "enter", "edit", "s", "start", "esc", "back") + "\n")
	return b.String()
}

func RunInteractive(cfg *config.Config, logger *slog.Logger) error {
	app := NewInteractiveApp(cfg, logger)
	_, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	if app.state == stateSim {
		app.sim.sched.Pause()
	}
	return err
}
