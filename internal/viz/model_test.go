package viz

import (
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/display"
	"github.com/san-kum/sortviz/internal/playback"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

func press(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

var _ = Describe("Model", func() {
	var (
		clock *playback.ManualClock
		cfg   *config.Config
		m     Model
	)

	BeforeEach(func() {
		clock = playback.NewManualClock()
		cfg = config.DefaultConfig()
		cfg.Size = 12
		cfg.Seed = 42
		var err error
		m, err = NewModel(cfg, nil, playback.WithClock(clock))
		Expect(err).NotTo(HaveOccurred())
	})

	It("starts idle with a fresh array", func() {
		st := m.Scheduler().Status()
		Expect(st.State).To(Equal(playback.Idle))
		Expect(st.Size).To(Equal(12))
		Expect(st.Algorithm).To(Equal("bubble"))
	})

	It("rejects an invalid config", func() {
		cfg.Algorithm = "bogo"
		_, err := NewModel(cfg, nil)
		Expect(err).To(HaveOccurred())
	})

	It("toggles play and pause with space", func() {
		m = press(m, space)
		Expect(m.Scheduler().Status().Running).To(BeTrue())
		Expect(clock.Pending()).To(Equal(1))

		m = press(m, space)
		Expect(m.Scheduler().Status().State).To(Equal(playback.Paused))
		Expect(clock.Pending()).To(Equal(0))
	})

	It("steps and skips", func() {
		m = press(m, runes("s"))
		Expect(m.Scheduler().Status().Cursor).To(Equal(1))

		m = press(m, tea.KeyMsg{Type: tea.KeyRight})
		Expect(m.Scheduler().Status().Cursor).To(Equal(1 + skipOps))
	})

	It("plays to the end and refuses to play again", func() {
		m = press(m, space)
		clock.RunUntilIdle(10000)
		st := m.Scheduler().Status()
		Expect(st.State).To(Equal(playback.Finished))
		Expect(slices.IsSorted(m.Scheduler().Frame().Values())).To(BeTrue())

		m = press(m, space)
		Expect(m.Scheduler().Status().Running).To(BeFalse())
		Expect(m.message).To(ContainSubstring("sorted"))
	})

	It("resets to the snapshot", func() {
		before := m.Scheduler().Snapshot()
		m = press(m, runes("s"), runes("s"), runes("s"), runes("r"))
		st := m.Scheduler().Status()
		Expect(st.Cursor).To(BeZero())
		Expect(m.Scheduler().Frame().Values()).To(Equal(before))
	})

	It("switches algorithm with digit keys", func() {
		m = press(m, runes("s"), runes("4"))
		st := m.Scheduler().Status()
		Expect(st.Algorithm).To(Equal("merge"))
		Expect(st.Cursor).To(BeZero())

		m = press(m, runes("9"))
		Expect(m.Scheduler().Status().Algorithm).To(Equal("merge"))
	})

	It("adjusts speed within bounds", func() {
		start := m.Scheduler().Status().Speed
		m = press(m, runes("+"))
		Expect(m.Scheduler().Status().Speed).To(Equal(start + speedStep))

		for range 100 {
			m = press(m, runes("-"))
		}
		Expect(m.Scheduler().Status().Speed).To(Equal(playback.MinSpeed))
	})

	It("resizes and regenerates the array", func() {
		m = press(m, runes("]"))
		Expect(m.Scheduler().Status().Size).To(Equal(17))

		for range 10 {
			m = press(m, runes("["))
		}
		Expect(m.Scheduler().Status().Size).To(Equal(5))
	})

	It("draws a new array on n", func() {
		before := m.Scheduler().Snapshot()
		m = press(m, runes("n"))
		after := m.Scheduler().Snapshot()
		Expect(after).To(HaveLen(len(before)))
		Expect(after).NotTo(Equal(before))
	})

	It("cycles themes", func() {
		m = press(m, runes("t"))
		Expect(m.theme.Name).To(Equal(ThemeRetroGreen.Name))
	})

	It("samples the scheduler on its own ticks only", func() {
		m = press(m, runes("s"), runes("s"))
		m = press(m, TickMsg{id: m.id, Time: time.Now()})
		Expect(m.rate).To(Equal([]float64{2}))

		next, cmd := m.Update(TickMsg{id: m.id + 1000})
		Expect(cmd).To(BeNil())
		Expect(next.(Model).rate).To(HaveLen(1))
	})

	It("quits and pauses on q", func() {
		m = press(m, space)
		_, cmd := m.Update(runes("q"))
		Expect(cmd).NotTo(BeNil())
		Expect(cmd()).To(Equal(tea.Quit()))
		Expect(m.Scheduler().Status().Running).To(BeFalse())
	})

	It("renders bars and status", func() {
		m = press(m, tea.WindowSizeMsg{Width: 120, Height: 40}, runes("s"))
		view := m.View()
		Expect(view).To(ContainSubstring("BUBBLE"))
		Expect(view).To(ContainSubstring("compares"))
		Expect(view).To(ContainSubstring("1/"))

		braille := func(r rune) bool { return r > 0x2800 && r <= 0x28ff }
		Expect(strings.IndexFunc(view, braille)).To(Equal(-1))

		m = press(m, runes("c"))
		Expect(strings.IndexFunc(m.View(), braille)).NotTo(Equal(-1))
	})
})

var _ = Describe("RenderBars", func() {
	It("scales the tallest bar to the full height", func() {
		f := display.NewFrame([]int{1, 2, 4})
		out := RenderBars(f, ThemeMinimal, 3, 4)
		lines := strings.Split(out, "\n")
		Expect(lines).To(HaveLen(4))
		Expect(lines[0]).To(ContainSubstring("█"))
		Expect(lines[3]).To(ContainSubstring("███"))
	})

	It("pads an empty frame to the requested height", func() {
		Expect(strings.Count(RenderBars(display.NewFrame(nil), ThemeMinimal, 10, 3), "\n")).To(Equal(2))
	})
})

var _ = Describe("Canvas", func() {
	It("draws bars as Braille columns", func() {
		c := NewCanvas(2, 1)
		c.DrawBars(display.NewFrame([]int{4, 4, 4, 4}))
		Expect(c.String()).To(Equal("⣿⣿\n"))
	})
})

var _ = Describe("App", func() {
	var app *App

	BeforeEach(func() {
		cfg := config.DefaultConfig()
		cfg.Seed = 7
		app = NewInteractiveApp(cfg, nil, playback.WithClock(playback.NewManualClock()))
	})

	send := func(msgs ...tea.Msg) {
		for _, msg := range msgs {
			app.Update(msg)
		}
	}

	It("walks from the menu into the visualizer and back", func() {
		send(tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
		Expect(app.state).To(Equal(stateConfig))
		Expect(app.cfg.Algorithm).To(Equal("insertion"))

		send(runes("l"))
		Expect(app.cfg.Size).To(Equal(45))

		send(runes("s"))
		Expect(app.state).To(Equal(stateSim))
		Expect(app.sim.Scheduler().Status().Size).To(Equal(45))

		_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
		Expect(cmd).NotTo(BeNil())
		send(cmd())
		Expect(app.state).To(Equal(stateMenu))
	})

	It("edits numeric fields", func() {
		send(tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
		Expect(app.editing).To(BeTrue())
		send(tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace}, runes("9"), runes("0"), tea.KeyMsg{Type: tea.KeyEnter})
		Expect(app.cfg.Speed).To(Equal(90))
	})

	It("cycles enumerated fields", func() {
		send(tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
		send(runes("l"))
		Expect(app.cfg.Pattern).To(Equal("sorted"))
		send(runes("h"), runes("h"))
		Expect(app.cfg.Pattern).To(Equal("few-unique"))
	})

	It("does not touch the caller's config", func() {
		cfg := config.DefaultConfig()
		a := NewInteractiveApp(cfg, nil)
		a.Update(tea.KeyMsg{Type: tea.KeyEnter})
		a.Update(runes("l"))
		Expect(cfg.Size).To(Equal(config.DefaultConfig().Size))
	})
})
