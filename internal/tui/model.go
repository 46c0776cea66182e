package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"attachsearch/internal/domain"
)

// CompatibilityPort is the TUI-facing subset of the compatibility service.
type CompatibilityPort interface {
	Summary() string
	Vehicles() []*domain.Vehicle
	Find(fullName string) (*domain.Vehicle, bool)
	Matches(v *domain.Vehicle) domain.Compatibility
}

type pane int

const (
	paneVehicles pane = iota
	paneAttachTo
	paneAttachedBy
	paneJump
	paneCount
)

// Model is the Bubble Tea model for the TUI application.
type Model struct {
	service    CompatibilityPort
	vehicles   []*domain.Vehicle
	all        table.Model
	attachTo   table.Model
	attachedBy table.Model
	input      textinput.Model
	focus      pane
	selected   *domain.Vehicle
	compat     domain.Compatibility
	summary    string
	status     string
	ready      bool
}

// New creates a new TUI model instance.
func New(service CompatibilityPort) Model {
	vehicles := append([]*domain.Vehicle(nil), service.Vehicles()...)
	sort.SliceStable(vehicles, func(i, j int) bool { return vehicles[i].FullName() < vehicles[j].FullName() })

	ti := textinput.New()
	ti.Prompt = "jump> "
	ti.Placeholder = "exact full name, Enter to select"
	ti.CharLimit = 0

	all := table.New(
		table.WithColumns(vehicleColumns(100)),
		table.WithRows(vehicleRows(vehicles)),
		table.WithFocused(true),
	)
	all.SetStyles(tableStyles())

	m := Model{
		service:    service,
		vehicles:   vehicles,
		all:        all,
		attachTo:   newMatchTable(),
		attachedBy: newMatchTable(),
		input:      ti,
		summary:    service.Summary(),
		status:     "Loaded. Tab switches panes, Esc quits.",
	}
	m.selectRow(0)
	return m
}

func newMatchTable() table.Model {
	t := table.New(table.WithColumns(matchColumns(100)))
	t.SetStyles(tableStyles())
	return t
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		// Global quits
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "esc":
			if m.focus == paneJump {
				m.setFocus(paneVehicles)
				return m, nil
			}
			return m, tea.Quit
		case "tab":
			m.setFocus((m.focus + 1) % paneCount)
			return m, nil
		case "shift+tab":
			m.setFocus((m.focus + paneCount - 1) % paneCount)
			return m, nil
		case "/":
			if m.focus != paneJump {
				m.setFocus(paneJump)
				return m, nil
			}
		case "enter":
			if m.focus == paneJump {
				m.jump(strings.TrimSpace(m.input.Value()))
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case paneVehicles:
		before := m.all.Cursor()
		m.all, cmd = m.all.Update(msg)
		if m.all.Cursor() != before {
			m.selectRow(m.all.Cursor())
		}
	case paneAttachTo:
		m.attachTo, cmd = m.attachTo.Update(msg)
	case paneAttachedBy:
		m.attachedBy, cmd = m.attachedBy.Update(msg)
	case paneJump:
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// Selected returns the vehicle whose matches are shown.
func (m Model) Selected() *domain.Vehicle { return m.selected }

// Status returns the status line text.
func (m Model) Status() string { return m.status }

func (m *Model) jump(name string) {
	if name == "" {
		return
	}
	v, ok := m.service.Find(name)
	if !ok {
		m.status = fmt.Sprintf("Vehicle '%s' not found.", name)
		return
	}
	for i, row := range m.vehicles {
		if row == v {
			m.all.SetCursor(i)
			m.selectRow(i)
			break
		}
	}
	m.input.SetValue("")
	m.setFocus(paneVehicles)
	m.status = fmt.Sprintf("Selected %s", v.FullName())
}

func (m *Model) selectRow(i int) {
	if i < 0 || i >= len(m.vehicles) {
		m.selected = nil
		m.compat = domain.Compatibility{}
		m.attachTo.SetRows(nil)
		m.attachedBy.SetRows(nil)
		return
	}
	m.selected = m.vehicles[i]
	m.compat = m.service.Matches(m.selected)
	m.attachTo.SetRows(matchRows(m.compat.AttachableTo))
	m.attachTo.SetCursor(0)
	m.attachedBy.SetRows(matchRows(m.compat.AttachesFrom))
	m.attachedBy.SetCursor(0)
}

func (m *Model) setFocus(p pane) {
	m.focus = p
	m.all.Blur()
	m.attachTo.Blur()
	m.attachedBy.Blur()
	m.input.Blur()
	switch p {
	case paneVehicles:
		m.all.Focus()
	case paneAttachTo:
		m.attachTo.Focus()
	case paneAttachedBy:
		m.attachedBy.Focus()
	case paneJump:
		m.input.Focus()
	}
}

func (m *Model) resize(width, height int) {
	bw, bh := boxStyle.GetFrameSize()
	innerW := max(40, width-bw)
	// header, summary, two labels, status, plus the jump box
	reserved := 5 + 1 + bh + 3*bh
	avail := max(9, height-reserved)
	matchH := max(3, avail/4)
	allH := max(3, avail-2*matchH)

	m.all.SetColumns(vehicleColumns(innerW))
	m.all.SetWidth(innerW)
	m.all.SetHeight(allH)
	for _, t := range []*table.Model{&m.attachTo, &m.attachedBy} {
		t.SetColumns(matchColumns(innerW))
		t.SetWidth(innerW)
		t.SetHeight(matchH)
	}
	m.input.Width = max(10, innerW-len(m.input.Prompt)-1)
}

// View renders the TUI layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	name := "(none)"
	if m.selected != nil {
		name = m.selected.FullName()
	}
	header := lipgloss.NewStyle().Bold(true).Render("Attachment Search")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	toLabel := labelStyle.Render(fmt.Sprintf("Vehicles that %s can attach to (%d):", name, m.compat.AttachableTo.Count()))
	byLabel := labelStyle.Render(fmt.Sprintf("Vehicles that can be attached to %s (%d):", name, m.compat.AttachesFrom.Count()))
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)

	return strings.Join([]string{
		header,
		summary,
		m.box(paneVehicles).Render(m.all.View()),
		toLabel,
		m.box(paneAttachTo).Render(m.attachTo.View()),
		byLabel,
		m.box(paneAttachedBy).Render(m.attachedBy.View()),
		m.box(paneJump).Render(m.input.View()),
		status,
	}, "\n")
}

func (m Model) box(p pane) lipgloss.Style {
	if m.focus == p {
		return focusedBoxStyle
	}
	return boxStyle
}

var (
	boxStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	focusedBoxStyle = boxStyle.BorderForeground(lipgloss.Color("11"))
	labelStyle      = lipgloss.NewStyle().Bold(true)
)

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).Bold(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("11")).Bold(true)
	return s
}

func vehicleColumns(width int) []table.Column {
	return []table.Column{
		{Title: "Name", Width: width * 26 / 100},
		{Title: "Type", Width: width * 12 / 100},
		{Title: "Store Category", Width: width * 14 / 100},
		{Title: "Attachments", Width: width * 22 / 100},
		{Title: "Input Attachments", Width: width * 22 / 100},
	}
}

func matchColumns(width int) []table.Column {
	return []table.Column{
		{Title: "Name", Width: width * 36 / 100},
		{Title: "Type", Width: width * 18 / 100},
		{Title: "Store Category", Width: width * 20 / 100},
		{Title: "Attachment Point", Width: width * 22 / 100},
	}
}

func vehicleRows(vehicles []*domain.Vehicle) []table.Row {
	rows := make([]table.Row, len(vehicles))
	for i, v := range vehicles {
		rows[i] = table.Row{
			v.FullName(),
			v.Kind(),
			v.StoreCategory(),
			strings.Join(v.AttacherTypes(), ", "),
			strings.Join(v.InputAttacherTypes(), ", "),
		}
	}
	return rows
}

func matchRows(r domain.MatchResult) []table.Row {
	rows := make([]table.Row, 0, r.Count())
	for _, g := range r.Groups {
		for _, k := range g.Kinds {
			for _, v := range k.Vehicles {
				rows = append(rows, table.Row{v.FullName(), v.Kind(), v.StoreCategory(), g.Connector})
			}
		}
	}
	return rows
}
