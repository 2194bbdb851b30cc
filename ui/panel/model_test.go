package panel

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axisrig/core"
	"axisrig/protocol"
)

type fakeBoard struct {
	turns   []int
	presses int
	cmds    []protocol.Command
	err     error
}

func (b *fakeBoard) Turn(n int) { b.turns = append(b.turns, n) }
func (b *fakeBoard) Press()     { b.presses++ }

func (b *fakeBoard) Submit(cmd protocol.Command) error {
	if b.err != nil {
		return b.err
	}
	b.cmds = append(b.cmds, cmd)
	return nil
}

type fakeSource struct {
	screen  core.Screen
	snap    protocol.Snapshot
	status  core.RigStatus
	updates chan struct{}
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		screen: core.Screen{
			Header: "MAIN MENU",
			Items:  []string{"Motor Control", "Calibration", "Servo Control"},
			Status: "Status: STOPPED",
		},
		snap: protocol.Snapshot{
			Axes:         make([]protocol.AxisStatus, 4),
			GlobalStatus: protocol.StatusStopped,
		},
		updates: make(chan struct{}, 1),
	}
}

func (s *fakeSource) Screen() core.Screen         { return s.screen }
func (s *fakeSource) Snapshot() protocol.Snapshot { return s.snap.Clone() }
func (s *fakeSource) Status() core.RigStatus      { return s.status }
func (s *fakeSource) Updates() <-chan struct{}    { return s.updates }

func press(m tea.Model, msg tea.KeyMsg) tea.Model {
	next, _ := m.Update(msg)
	return next
}

func TestKeysDriveTheBoard(t *testing.T) {
	board := &fakeBoard{}
	var m tea.Model = NewModel(board, newFakeSource())

	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(m, tea.KeyMsg{Type: tea.KeyUp})
	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})

	assert.Equal(t, []int{1, -1, 1}, board.turns)
	assert.Equal(t, 1, board.presses)
	require.Len(t, board.cmds, 2)
	assert.Equal(t, protocol.CmdEmergencyStop, board.cmds[0].Type)
	assert.Equal(t, protocol.CmdSetServo, board.cmds[1].Type)
	assert.True(t, *board.cmds[1].Data.State)
}

func TestQuit(t *testing.T) {
	m := NewModel(&fakeBoard{}, newFakeSource())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestViewShowsScreenAndAxes(t *testing.T) {
	src := newFakeSource()
	src.snap.Axes[2] = protocol.AxisStatus{Position: 4, Target: 9, Running: true}
	src.status = core.StatusRunning

	view := NewModel(&fakeBoard{}, src).View()
	assert.Contains(t, view, "MAIN MENU")
	assert.Contains(t, view, "> Motor Control")
	assert.Contains(t, view, "Status: STOPPED")
	assert.Contains(t, view, "M3")
	assert.Contains(t, view, "seek")
	assert.Contains(t, view, "RUNNING")
}

func TestUpdateRefreshesFromSource(t *testing.T) {
	src := newFakeSource()
	var m tea.Model = NewModel(&fakeBoard{}, src)

	src.screen.Header = "CALIBRATION"
	m, cmd := m.Update(updateMsg{})
	assert.NotNil(t, cmd, "keeps waiting for updates")
	assert.Contains(t, m.View(), "CALIBRATION")
}

func TestSubmitErrorIsShown(t *testing.T) {
	board := &fakeBoard{err: errors.New("command inbox full")}
	var m tea.Model = NewModel(board, newFakeSource())

	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	assert.Contains(t, m.View(), "command inbox full")

	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.NotContains(t, m.View(), "command inbox full")
}

func TestAxisMode(t *testing.T) {
	tests := []struct {
		a    protocol.AxisStatus
		want string
	}{
		{protocol.AxisStatus{}, "idle"},
		{protocol.AxisStatus{Running: true}, "seek"},
		{protocol.AxisStatus{Running: true, FullForward: true}, "full fwd"},
		{protocol.AxisStatus{Running: true, FullBackward: true}, "full back"},
		{protocol.AxisStatus{Running: true, Calibrating: true}, "calibrate"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, axisMode(tt.a))
	}
}
