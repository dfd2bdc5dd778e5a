// Package tui is the Bubble Tea frontend. It drives the same scene.Driver
// as the tcell frontend, rendering frames into a raster.Grid that View
// styles with lipgloss.
package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/nlink/internal/chain"
	"github.com/san-kum/nlink/internal/input"
	"github.com/san-kum/nlink/internal/raster"
	"github.com/san-kum/nlink/internal/scene"
	"github.com/san-kum/nlink/internal/theme"
)

const (
	width  = 80
	height = 24
)

// TickMsg is the frame timer. A tick scheduled before the last action is
// stale and dropped, so every action restarts the wait like scene.Run does.
type TickMsg struct {
	Time time.Time
	gen  int
}

// surface is a raster.Grid that satisfies scene.Surface. Bubble Tea
// flushes the frame in View, so Show has nothing to do.
type surface struct {
	*raster.Grid
}

func (surface) Show() error { return nil }

// Model contains the driver, its frame buffer and the styles used to
// print it.
type Model struct {
	driver   *scene.Driver
	grid     surface
	styles   map[raster.Style]lipgloss.Style
	base     lipgloss.Style
	interval time.Duration
	gen      int
	err      error
}

// NewModel builds a model rendering c into an 80x24 frame until the first
// window size message arrives.
func NewModel(c *chain.Chain, opts scene.Options, th theme.Theme) (Model, error) {
	grid := surface{raster.NewGrid(width, height)}
	d, err := scene.NewDriver(grid, c, opts)
	if err != nil {
		return Model{}, err
	}
	styles := make(map[raster.Style]lipgloss.Style)
	for _, st := range []raster.Style{raster.Rod, raster.RodSelected, raster.Joint, raster.JointSelected, raster.Text, raster.TextMuted} {
		styles[st] = th.Style(st)
	}
	return Model{
		driver:   d,
		grid:     grid,
		styles:   styles,
		base:     th.Base(),
		interval: d.Interval(),
	}, nil
}

func (m Model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg{Time: t, gen: gen} })
}

func (m Model) Init() tea.Cmd {
	if err := m.driver.Render(); err != nil {
		return tea.Quit
	}
	return m.tick()
}

// Update maps messages to scene actions. Every message that carries an
// action runs one driver tick and schedules the next frame timer.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		a := input.FromKey(msg.String())
		if _, idle := a.(scene.None); idle {
			return m, nil
		}
		m.gen++
		return m.step(a, m.tick())
	case tea.WindowSizeMsg:
		m.grid.Resize(msg.Width, msg.Height)
		m.gen++
		return m.step(scene.Resize{Width: msg.Width, Height: msg.Height}, m.tick())
	case TickMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		return m.step(scene.None{}, m.tick())
	}
	return m, nil
}

func (m Model) step(a scene.Action, next tea.Cmd) (tea.Model, tea.Cmd) {
	if err := m.driver.Tick(a); err != nil {
		m.err = err
		return m, tea.Quit
	}
	if m.driver.State() == scene.Terminated {
		return m, tea.Quit
	}
	return m, next
}

// View prints the last rendered frame, grouping runs of equally styled
// cells into one lipgloss render call.
func (m Model) View() string {
	if m.driver.State() == scene.Terminated {
		return ""
	}
	var b strings.Builder
	for y := 0; y < m.grid.Height; y++ {
		row := m.grid.Row(y)
		for x := 0; x < len(row); {
			c := row[x]
			end := x + 1
			for end < len(row) && row[end].Set == c.Set && row[end].Style == c.Style {
				end++
			}
			if !c.Set {
				b.WriteString(m.base.Render(strings.Repeat(" ", end-x)))
			} else {
				var run strings.Builder
				for _, rc := range row[x:end] {
					run.WriteRune(rc.Rune)
				}
				b.WriteString(m.styles[c.Style].Render(run.String()))
			}
			x = end
		}
		if y < m.grid.Height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Err returns the surface error that stopped the model, if any.
func (m Model) Err() error { return m.err }

// Driver exposes the underlying driver.
func (m Model) Driver() *scene.Driver { return m.driver }

// Run starts the Bubble Tea program on the alternate screen and blocks
// until the user quits.
func Run(c *chain.Chain, opts scene.Options, th theme.Theme) error {
	m, err := NewModel(c, opts, th)
	if err != nil {
		return err
	}
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.Err()
	}
	return nil
}
