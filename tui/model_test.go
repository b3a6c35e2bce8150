package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shhan95/firecode-watch/internal/dashboard"
	"github.com/shhan95/firecode-watch/internal/report"
)

func sizedModel(view *dashboard.PageView) Model {
	m := NewModel(nil)
	m.width = 100
	m.height = 40
	m.view = view
	m.loading = false
	return m
}

func TestView_OKRecord(t *testing.T) {
	m := sizedModel(&dashboard.PageView{
		Run: dashboard.RunSection{
			State: dashboard.RunOK,
			Record: &report.RunRecord{
				Date:    "2026-08-29",
				Result:  "변경 없음",
				Changes: []report.ChangeEntry{},
			},
		},
		NFPC: dashboard.InventorySection{Title: "NFPC", Items: []report.InventoryItem{{Code: "NFPC 101", Title: "소화기구"}}},
		NFTC: dashboard.InventorySection{Title: "NFTC"},
	})

	out := m.View()
	if !strings.Contains(out, "2026-08-29") {
		t.Error("view missing run date")
	}
	if !strings.Contains(out, "NFPC 101") {
		t.Error("view missing inventory item")
	}
	if !strings.Contains(out, "no standards registered") {
		t.Error("view missing empty-inventory placeholder")
	}
}

func TestView_FailureState(t *testing.T) {
	m := sizedModel(&dashboard.PageView{
		Run: dashboard.RunSection{State: dashboard.RunFailed, Message: "fetch data.json: empty body"},
	})

	out := m.View()
	if !strings.Contains(out, "fetch data.json: empty body") {
		t.Error("view missing failure message")
	}
}

func TestUpdate_ToggleSections(t *testing.T) {
	m := sizedModel(&dashboard.PageView{
		Run: dashboard.RunSection{
			State:  dashboard.RunOK,
			Record: &report.RunRecord{Date: "2026-08-29", Result: "변경 없음"},
		},
	})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	m = next.(Model)
	if m.showChanges {
		t.Error("showChanges still true after toggle")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})
	m = next.(Model)
	if m.showErrors {
		t.Error("showErrors still true after toggle")
	}
}

func TestUpdate_Loaded(t *testing.T) {
	m := NewModel(nil)
	view := &dashboard.PageView{Run: dashboard.RunSection{State: dashboard.RunNoData, Message: "none yet"}}

	next, _ := m.Update(loadedMsg{view: view, at: time.Now()})
	m = next.(Model)

	if m.loading {
		t.Error("loading still true after loadedMsg")
	}
	if m.view != view {
		t.Error("view not stored")
	}
}

func TestUpdate_Quit(t *testing.T) {
	m := NewModel(nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("quit key returned no command")
	}
}
