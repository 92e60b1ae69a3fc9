package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zkeep/internal/store"
)

// listModel displays saved websites in a scrollable list.
type listModel struct {
	records []store.Record
	cursor  int
}

// pickWebsiteMsg is sent when a website is chosen from the list.
type pickWebsiteMsg struct {
	website string
}

// closeListMsg returns to the form without choosing.
type closeListMsg struct{}

func newListModel(records []store.Record) listModel {
	return listModel{records: records}
}

func (m listModel) Update(msg tea.Msg) (listModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

func (m listModel) handleKey(msg tea.KeyMsg) (listModel, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return closeListMsg{} }
	}

	if len(m.records) == 0 {
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyUp) {
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyDown) {
		if m.cursor < len(m.records)-1 {
			m.cursor++
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		website := m.records[m.cursor].Website
		return m, func() tea.Msg { return pickWebsiteMsg{website: website} }
	}

	return m, nil
}

func (m listModel) View() string {
	accentStyle := lipgloss.NewStyle().Foreground(zstyle.ZburnAccent).Bold(true)

	s := "\n"

	if len(m.records) == 0 {
		s += "  " + zstyle.MutedText.Render("no saved websites") + "\n"
		return s
	}

	for i, r := range m.records {
		line := fmt.Sprintf("%-30s %-30s", truncate(r.Website, 30), truncate(r.Email, 30))

		if i == m.cursor {
			s += "  " + accentStyle.Render("▸") + " " + line + "\n"
		} else {
			s += "    " + line + "\n"
		}
	}

	return s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
