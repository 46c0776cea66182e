package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attachsearch/internal/domain"
	"attachsearch/internal/matcher"
	"attachsearch/internal/service"
)

func newModel(t *testing.T) Model {
	t.Helper()
	svc := service.FromVehicles([]*domain.Vehicle{
		domain.MustVehicle(domain.VehicleSpec{
			Brand: "B", Name: "Y", Kind: "trailer", StoreCategory: "trailers",
			InputAttacherTypes: []string{"hitchA"},
		}),
		domain.MustVehicle(domain.VehicleSpec{
			Brand: "A", Name: "X", Kind: "tractor", StoreCategory: "tractorsM",
			AttacherTypes: []string{"hitchA"},
		}),
	}, matcher.Options{}, nil)
	return New(svc)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestNew_SelectsFirstByName(t *testing.T) {
	m := newModel(t)

	require.NotNil(t, m.Selected())
	assert.Equal(t, "A X", m.Selected().FullName())
	assert.Equal(t, 0, m.compat.AttachableTo.Count())
	assert.Equal(t, 1, m.compat.AttachesFrom.Count())
	assert.Equal(t, "Loading...", m.View())
}

func TestView_AfterResize(t *testing.T) {
	m, _ := update(t, newModel(t), tea.WindowSizeMsg{Width: 120, Height: 40})

	v := m.View()
	assert.Contains(t, v, "Attachment Search")
	assert.Contains(t, v, "2 vehicles in 2 kinds, 1 connector types")
	assert.Contains(t, v, "Vehicles that A X can attach to (0):")
	assert.Contains(t, v, "Vehicles that can be attached to A X (1):")
}

func TestUpdate_CursorMoveReselects(t *testing.T) {
	m, _ := update(t, newModel(t), tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(t, m, key(tea.KeyDown))

	require.NotNil(t, m.Selected())
	assert.Equal(t, "B Y", m.Selected().FullName())
	assert.Equal(t, 1, m.compat.AttachableTo.Count())
	assert.Equal(t, 0, m.compat.AttachesFrom.Count())
	assert.Contains(t, m.View(), "Vehicles that B Y can attach to (1):")
}

func TestUpdate_TabCyclesFocus(t *testing.T) {
	m := newModel(t)
	assert.Equal(t, paneVehicles, m.focus)

	for _, want := range []pane{paneAttachTo, paneAttachedBy, paneJump, paneVehicles} {
		m, _ = update(t, m, key(tea.KeyTab))
		assert.Equal(t, want, m.focus)
	}

	m, _ = update(t, m, key(tea.KeyShiftTab))
	assert.Equal(t, paneJump, m.focus)
}

func TestUpdate_Jump(t *testing.T) {
	m := newModel(t)
	m, _ = update(t, m, runes("/"))
	require.Equal(t, paneJump, m.focus)

	m, _ = update(t, m, runes("B Y"))
	m, _ = update(t, m, key(tea.KeyEnter))

	require.NotNil(t, m.Selected())
	assert.Equal(t, "B Y", m.Selected().FullName())
	assert.Equal(t, 1, m.all.Cursor())
	assert.Equal(t, paneVehicles, m.focus)
	assert.Equal(t, "Selected B Y", m.Status())
}

func TestUpdate_JumpNotFound(t *testing.T) {
	m := newModel(t)
	m, _ = update(t, m, runes("/"))
	m, _ = update(t, m, runes("Z Z"))
	m, _ = update(t, m, key(tea.KeyEnter))

	assert.Equal(t, "Vehicle 'Z Z' not found.", m.Status())
	assert.Equal(t, "A X", m.Selected().FullName())
	assert.Equal(t, paneJump, m.focus)
}

func TestUpdate_EscLeavesJumpThenQuits(t *testing.T) {
	m := newModel(t)
	m, _ = update(t, m, runes("/"))

	m, cmd := update(t, m, key(tea.KeyEsc))
	assert.Nil(t, cmd)
	assert.Equal(t, paneVehicles, m.focus)

	_, cmd = update(t, m, key(tea.KeyEsc))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestUpdate_CtrlCQuits(t *testing.T) {
	_, cmd := update(t, newModel(t), key(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestNew_EmptyCorpus(t *testing.T) {
	m := New(service.FromVehicles(nil, matcher.Options{}, nil))
	assert.Nil(t, m.Selected())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Contains(t, m.View(), "Vehicles that (none) can attach to (0):")
}
