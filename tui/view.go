package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/shhan95/firecode-watch/internal/dashboard"
	"github.com/shhan95/firecode-watch/internal/render"
	"github.com/shhan95/firecode-watch/internal/report"
)

var (
	headerStyle = lipgloss.NewStyle().
		Background(lipgloss.Color("236")).
		Foreground(lipgloss.Color("255")).
		Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	neutralPillStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("244")).
		Padding(0, 1)

	attentionPillStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")).
		Bold(true).
		Padding(0, 1)

	criticalPillStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")).
		Bold(true).
		Padding(0, 1)

	dimmedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	noDataStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("244")).
		Italic(true)

	failureStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")).
		Bold(true)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39"))
)

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	header := " Fire Code Watch │ NFPC / NFTC "
	if m.loading {
		header += "│ refreshing… "
	} else if !m.lastRefresh.IsZero() {
		header += fmt.Sprintf("│ refreshed %s ", m.lastRefresh.Format("15:04:05"))
	}
	b.WriteString(headerStyle.Width(m.width).Render(header))
	b.WriteString("\n")

	if m.view == nil {
		b.WriteString(noDataStyle.Render("Waiting for first load…"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.renderRun())

	b.WriteString(m.renderInventory(m.view.NFPC))
	b.WriteString(m.renderInventory(m.view.NFTC))

	b.WriteString(dimmedStyle.Render(" q quit │ r refresh │ c changes │ e errors"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderRun() string {
	var b strings.Builder

	switch {
	case m.view.Run.Failed():
		b.WriteString(failureStyle.Render("✗ Load failed: " + m.view.Run.Message))
		b.WriteString("\n")
		return sectionStyle.Width(m.width - 2).Render(b.String()) + "\n"
	case m.view.Run.NoData():
		b.WriteString(noDataStyle.Render("… " + m.view.Run.Message))
		b.WriteString("\n")
		return sectionStyle.Width(m.width - 2).Render(b.String()) + "\n"
	}

	rec := m.view.Run.Record

	b.WriteString(titleStyle.Render(rec.Date))
	b.WriteString("  " + rec.Result)
	if rec.Summary != "" {
		b.WriteString("\n" + dimmedStyle.Render(rec.Summary))
	}
	b.WriteString("\n")

	for _, p := range render.Pills(rec) {
		b.WriteString(pillStyle(p.State).Render("[" + p.Label + "]"))
	}
	b.WriteString("\n")

	if m.showChanges {
		b.WriteString("\n" + titleStyle.Render(fmt.Sprintf("Changes (%d)", len(rec.Changes))) + "\n")
		b.WriteString(renderChanges(rec.Changes))
	}
	if m.showErrors {
		b.WriteString("\n" + titleStyle.Render(fmt.Sprintf("Errors (%d)", len(rec.Errors))) + "\n")
		b.WriteString(renderErrors(rec.Errors))
	}

	return sectionStyle.Width(m.width - 2).Render(b.String()) + "\n"
}

func pillStyle(s render.State) lipgloss.Style {
	switch s {
	case render.StateAttention:
		return attentionPillStyle
	case render.StateCritical:
		return criticalPillStyle
	default:
		return neutralPillStyle
	}
}

func renderChanges(changes []report.ChangeEntry) string {
	if len(changes) == 0 {
		return noDataStyle.Render("  no changes detected") + "\n"
	}
	var b strings.Builder
	for _, c := range changes {
		b.WriteString(fmt.Sprintf("  %s  %s\n", c.Code, c.Title))
		b.WriteString(dimmedStyle.Render(fmt.Sprintf("    %s │ 발령 %s │ 시행 %s\n", c.NoticeNo, c.AnnounceDate, c.EffectiveDate)))
		if c.Reason != "" {
			b.WriteString(dimmedStyle.Render("    " + c.Reason + "\n"))
		}
	}
	return b.String()
}

func renderErrors(errs []report.ErrorEntry) string {
	if len(errs) == 0 {
		return noDataStyle.Render("  no errors") + "\n"
	}
	var b strings.Builder
	for _, e := range errs {
		b.WriteString(fmt.Sprintf("  %s  %s\n", e.Code, e.Title))
		b.WriteString(dimmedStyle.Render(fmt.Sprintf("    %s/%s status=%s %s\n", e.Where, e.Kind, e.Status, e.ContentType)))
	}
	return b.String()
}

func (m Model) renderInventory(sec dashboard.InventorySection) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(sec.Title) + "\n")

	switch {
	case sec.Err != nil:
		b.WriteString(failureStyle.Render("  unavailable: "+sec.Err.Error()) + "\n")
	case len(sec.Items) == 0:
		b.WriteString(noDataStyle.Render("  no standards registered") + "\n")
	default:
		for _, it := range sec.Items {
			b.WriteString(fmt.Sprintf("  %-10s %s\n", it.Code, it.Title))
		}
	}

	return sectionStyle.Width(m.width - 2).Render(b.String()) + "\n"
}
