// Package tui is the terminal dashboard: the same fetch-validate-render
// pipeline as the web page, drawn with bubbletea instead of HTML.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shhan95/firecode-watch/internal/dashboard"
)

// refreshEvery is how often the watch view re-fetches the resources.
const refreshEvery = 30 * time.Second

// Model is the TUI application model.
type Model struct {
	controller *dashboard.Controller

	view    *dashboard.PageView
	loading bool

	width  int
	height int

	showChanges bool
	showErrors  bool

	lastRefresh time.Time
}

// NewModel creates a watch model backed by a dashboard controller.
func NewModel(controller *dashboard.Controller) Model {
	return Model{
		controller:  controller,
		loading:     true,
		showChanges: true,
		showErrors:  true,
	}
}

// Init kicks off the first load and the refresh ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), tickCmd())
}

type tickMsg time.Time

type loadedMsg struct {
	view *dashboard.PageView
	at   time.Time
}

func tickCmd() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) loadCmd() tea.Cmd {
	controller := m.controller
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), refreshEvery)
		defer cancel()
		return loadedMsg{view: controller.Load(ctx), at: time.Now()}
	}
}
