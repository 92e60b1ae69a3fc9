package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/zkeep/internal/store"
)

func testRecords() []store.Record {
	return []store.Record{
		{Website: "a.com", Email: "me@a.com", Password: "pa"},
		{Website: "b.com", Email: "me@b.com", Password: "pb"},
	}
}

func TestListViewEmpty(t *testing.T) {
	m := newListModel(nil)
	if !strings.Contains(m.View(), "no saved websites") {
		t.Error("should show empty state")
	}
}

func TestListViewHidesPasswords(t *testing.T) {
	m := newListModel(testRecords())
	view := m.View()

	if !strings.Contains(view, "a.com") || !strings.Contains(view, "me@b.com") {
		t.Errorf("view missing records:\n%s", view)
	}
	if strings.Contains(view, "pb") {
		t.Error("view should not show passwords")
	}
}

func TestListCursorBounds(t *testing.T) {
	m := newListModel(testRecords())

	m, _ = m.Update(specialKey(tea.KeyUp))
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0 at top", m.cursor)
	}

	m, _ = m.Update(specialKey(tea.KeyDown))
	m, _ = m.Update(specialKey(tea.KeyDown))
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1 at bottom", m.cursor)
	}
}

func TestListEnterPicks(t *testing.T) {
	m := newListModel(testRecords())

	_, cmd := m.Update(enterKey())
	if cmd == nil {
		t.Fatal("enter should emit a command")
	}
	pick, ok := cmd().(pickWebsiteMsg)
	if !ok {
		t.Fatal("enter should emit pickWebsiteMsg")
	}
	if pick.website != "a.com" {
		t.Errorf("picked %q, want a.com", pick.website)
	}
}

func TestListEnterOnEmptyIsNoop(t *testing.T) {
	m := newListModel(nil)
	if _, cmd := m.Update(enterKey()); cmd != nil {
		t.Error("enter on an empty list should do nothing")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("a-very-long-website.example", 10); got != "a-very-lo…" {
		t.Errorf("truncate long = %q", got)
	}
}
