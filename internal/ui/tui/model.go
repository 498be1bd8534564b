package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alivecomputer/setup/internal/provisioning"
)

// PhaseRow is one line of the phase list.
type PhaseRow struct {
	Name   string
	Phases []provisioning.Phase
	Done   bool
	Active bool
}

// Model is the Bubble Tea model of the build view.
type Model struct {
	World string

	Phases []PhaseRow

	Current  int
	Total    int
	LastStep string
	Failed   int

	SpinnerFrame int
	StartTime    time.Time

	Width    int
	Done     bool
	Canceled bool
	Result   *provisioning.Result

	cancel context.CancelFunc
}

// NewBuildModel creates the view for a build into world.
func NewBuildModel(world string) Model {
	row := func(phases ...provisioning.Phase) PhaseRow {
		return PhaseRow{
			Name:   strings.TrimSuffix(phases[0].Title(), "..."),
			Phases: phases,
		}
	}
	return Model{
		World:     world,
		StartTime: time.Now(),
		Phases: []PhaseRow{
			row(provisioning.PhaseSystem),
			row(provisioning.PhaseScaffold),
			row(provisioning.PhaseIdentity),
			row(provisioning.PhaseWalnuts),
			row(provisioning.PhasePlugin, provisioning.PhaseSummary),
		},
	}
}

// WithCancel returns a copy of m that calls cancel when the user quits.
func (m Model) WithCancel(cancel context.CancelFunc) Model {
	m.cancel = cancel
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.cancel != nil {
				m.cancel()
			}
			m.Canceled = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width

	case PhaseMsg:
		m.updatePhase(msg)

	case StepMsg:
		m.LastStep = strings.TrimSuffix(msg.Label, "...")
		if msg.Failed {
			m.Failed++
		}

	case ProgressMsg:
		m.Current, m.Total = msg.Current, msg.Total

	case TickMsg:
		m.SpinnerFrame++
		return m, tickCmd()

	case DoneMsg:
		m.Done = true
		m.Result = msg.Result
		for i := range m.Phases {
			m.Phases[i].Done = true
			m.Phases[i].Active = false
		}
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) updatePhase(msg PhaseMsg) {
	idx := -1
	for i, row := range m.Phases {
		for _, p := range row.Phases {
			if p == msg.Phase {
				idx = i
			}
		}
	}
	if idx < 0 {
		return
	}

	for i := 0; i < idx; i++ {
		m.Phases[i].Done = true
		m.Phases[i].Active = false
	}

	row := &m.Phases[idx]
	if msg.Done && msg.Phase == row.Phases[len(row.Phases)-1] {
		row.Done = true
		row.Active = false
		return
	}
	row.Active = true
}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
