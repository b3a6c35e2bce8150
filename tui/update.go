package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "c":
			m.showChanges = !m.showChanges
		case "e":
			m.showErrors = !m.showErrors
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		m.loading = true
		return m, tea.Batch(m.loadCmd(), tickCmd())

	case loadedMsg:
		m.view = msg.view
		m.lastRefresh = msg.at
		m.loading = false
	}

	return m, nil
}
