package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/collidegen/internal/collision"
)

const (
	canvasWidth  = 70
	canvasHeight = 14
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	eventStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model replays a precomputed scene in the terminal at the configured
// frame rate.
type Model struct {
	scene      *collision.Scene
	worldWidth float64
	radiusA    float64 // world units
	radiusB    float64
	fps        int
	substeps   int
	canvas     *Canvas
	frame      int
	playing    bool
}

func NewModel(scene *collision.Scene, worldWidth, radiusA, radiusB float64, fps, substeps int) Model {
	if substeps < 1 {
		substeps = 1
	}
	return Model{
		scene:      scene,
		worldWidth: worldWidth,
		radiusA:    radiusA,
		radiusB:    radiusB,
		fps:        fps,
		substeps:   substeps,
		canvas:     NewCanvas(canvasWidth, canvasHeight),
		playing:    true,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
		case "r":
			m.frame = 0
			m.playing = true
		}
	case TickMsg:
		if m.playing && m.frame+m.substeps < len(m.scene.Trajectory) {
			m.frame += m.substeps
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	s := m.scene.Trajectory[m.frame]

	m.canvas.Clear()
	subW := canvasWidth * 2
	midY := canvasHeight * 4 / 2
	scale := float64(subW) / m.worldWidth

	m.canvas.HLine(0, subW-1, midY+int(m.radiusA*scale)+1)
	m.canvas.Circle(int(s.PosA*scale), midY, int(m.radiusA*scale))
	m.canvas.Circle(int(s.PosB*scale), midY, int(m.radiusB*scale))

	ic := m.scene.Initial
	phase := "approach"
	if s.T > m.scene.Event.T {
		phase = "separation"
	}

	stats := headerStyle.Render("elastic collision") + "\n" +
		row("t", fmt.Sprintf("%.2fs", s.T)) +
		row("phase", phase) +
		row("mass A / B", fmt.Sprintf("%.1fkg / %.1fkg", ic.MassA, ic.MassB)) +
		row("pos A / B", fmt.Sprintf("%.2fm / %.2fm", s.PosA, s.PosB)) +
		row("vel A / B", fmt.Sprintf("%+.2f / %+.2f m/s", s.VelA, s.VelB)) +
		"\n" + eventStyle.Render(fmt.Sprintf("contact at t=%.3fs", m.scene.Event.T)) + "\n" +
		row("post vel A", fmt.Sprintf("%+.2f m/s", m.scene.Event.VelA)) +
		row("post vel B", fmt.Sprintf("%+.2f m/s", m.scene.Event.VelB))

	view := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		statsStyle.Render(stats),
	)
	return view + helpStyle.Render("\n  space pause · r restart · q quit\n")
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value)) + "\n"
}
