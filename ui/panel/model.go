// Package panel is a terminal front panel for the simulated rig: the OLED
// screen, an axis table and the status LED, with the keyboard standing in
// for the rotary encoder.
package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"axisrig/core"
	"axisrig/protocol"
)

// Board takes operator input
type Board interface {
	Turn(n int)
	Press()
	Submit(cmd protocol.Command) error
}

// Source provides what the board is showing
type Source interface {
	Screen() core.Screen
	Snapshot() protocol.Snapshot
	Status() core.RigStatus
	Updates() <-chan struct{}
}

// updateMsg signals the board published new state
type updateMsg struct{}

// Model is the bubbletea model of the panel
type Model struct {
	board Board
	src   Source

	screen core.Screen
	snap   protocol.Snapshot
	status core.RigStatus
	err    error
	width  int

	keys   KeyMap
	help   help.Model
	styles Styles
}

// NewModel creates a panel for board
func NewModel(board Board, src Source) Model {
	m := Model{
		board:  board,
		src:    src,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		styles: DefaultStyles(),
	}
	m.refresh()
	return m
}

// Run starts the panel and blocks until the operator quits
func Run(board Board, src Source) error {
	p := tea.NewProgram(NewModel(board, src), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *Model) refresh() {
	m.screen = m.src.Screen()
	m.snap = m.src.Snapshot()
	m.status = m.src.Status()
}

func (m Model) waitForUpdate() tea.Cmd {
	ch := m.src.Updates()
	return func() tea.Msg {
		<-ch
		return updateMsg{}
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.waitForUpdate()
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case updateMsg:
		m.refresh()
		return m, m.waitForUpdate()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		m.board.Turn(-1)
	case key.Matches(msg, m.keys.Down):
		m.board.Turn(1)
	case key.Matches(msg, m.keys.Press):
		m.board.Press()
	case key.Matches(msg, m.keys.Stop):
		m.err = m.board.Submit(protocol.Command{Type: protocol.CmdEmergencyStop})
	case key.Matches(msg, m.keys.Servo):
		m.err = m.board.Submit(protocol.Command{
			Type: protocol.CmdSetServo,
			Data: protocol.Args{State: protocol.BoolArg(!m.snap.ServoState)},
		})
	}
	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Axis Rig"))
	b.WriteString("\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.viewOled(), m.viewAxes()))
	b.WriteString("\n")
	b.WriteString(m.viewStatus())

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))
	return m.styles.App.Render(b.String())
}

func (m Model) viewOled() string {
	lines := m.screen.Lines()
	for i, l := range lines {
		if strings.HasPrefix(l, "> ") {
			lines[i] = m.styles.Selected.Render(l)
		}
	}
	return m.styles.Oled.Render(strings.Join(lines, "\n"))
}

func (m Model) viewAxes() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render(fmt.Sprintf("%-6s %4s %6s  %-9s", "Axis", "Pos", "Target", "Mode")))
	for i, a := range m.snap.Axes {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%-6s %4d %6d  %-9s", fmt.Sprintf("M%d", i+1), a.Position, a.Target, axisMode(a)))
	}
	b.WriteString("\n\n")
	servo := "OFF"
	if m.snap.ServoState {
		servo = "ON"
	}
	b.WriteString(m.styles.Muted.Render("Servo: " + servo))
	return m.styles.Table.Render(b.String())
}

func axisMode(a protocol.AxisStatus) string {
	switch {
	case a.Calibrating:
		return "calibrate"
	case a.FullForward:
		return "full fwd"
	case a.FullBackward:
		return "full back"
	case a.Running:
		return "seek"
	}
	return "idle"
}

func (m Model) viewStatus() string {
	style := m.styles.Stopped
	switch m.status {
	case core.StatusRunning:
		style = m.styles.Running
	case core.StatusCalibrating:
		style = m.styles.Calibrating
	}
	return "LED " + style.Render("● "+m.status.String())
}
