// Package tui implements the Bubble Tea form for zkeep.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zkeep/internal/form"
)

const (
	fieldWebsite = iota
	fieldEmail
	fieldPassword
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"website",
	"email/username",
	"password",
}

// Model is the root TUI model.
type Model struct {
	version string
	form    *form.Controller

	inputs [fieldCount]textinput.Model
	focus  int

	// notice is shown as a modal until dismissed
	notice form.Notice

	listing bool
	list    listModel

	width int
}

// New creates the form model around a controller. The inputs start with the
// controller's field values.
func New(version string, c *form.Controller) Model {
	var inputs [fieldCount]textinput.Model
	for i := range fieldCount {
		ti := textinput.New()
		ti.CharLimit = 256
		ti.Width = 40
		ti.Prompt = ""
		inputs[i] = ti
	}

	m := Model{
		version: version,
		form:    c,
		inputs:  inputs,
	}
	m.push()
	m.inputs[m.focus].Focus()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case pickWebsiteMsg:
		m.listing = false
		m.inputs[fieldWebsite].SetValue(msg.website)
		m = m.setFocus(fieldWebsite)
		return m.search(), nil

	case closeListMsg:
		m.listing = false
		return m, nil

	case tea.KeyMsg:
		if m.listing && m.notice.Empty() {
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)
	}

	return m.updateInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if !m.notice.Empty() {
		return m.handleNoticeKey(msg), nil
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, tea.Quit
	}

	switch msg.String() {
	case "tab", "down":
		return m.setFocus((m.focus + 1) % fieldCount), textinput.Blink

	case "shift+tab", "up":
		return m.setFocus((m.focus - 1 + fieldCount) % fieldCount), textinput.Blink

	case "ctrl+g":
		return m.generate(), nil

	case "ctrl+s":
		return m.save(), nil

	case "ctrl+f":
		return m.search(), nil

	case "ctrl+l":
		return m.openList(), nil
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		return m.save(), nil
	}

	return m.updateInput(msg)
}

// handleNoticeKey dismisses the modal on enter, esc or space and swallows
// everything else.
func (m Model) handleNoticeKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "enter", "esc", " ":
		m.notice = form.Notice{}
	}
	return m
}

func (m Model) generate() Model {
	m.pull()
	m.notice = m.form.Generate()
	m.push()
	return m
}

func (m Model) save() Model {
	m.pull()
	m.notice = m.form.Save()
	m.push()
	if m.notice.Kind == form.Saved {
		m = m.setFocus(fieldWebsite)
	}
	return m
}

func (m Model) openList() Model {
	records, notice := m.form.Websites()
	if !notice.Empty() {
		m.notice = notice
		return m
	}
	m.list = newListModel(records)
	m.listing = true
	return m
}

func (m Model) search() Model {
	m.pull()
	m.notice = m.form.Search()
	return m
}

// pull copies the input values into the controller.
func (m Model) pull() {
	m.form.Website = m.inputs[fieldWebsite].Value()
	m.form.Email = m.inputs[fieldEmail].Value()
	m.form.Password = m.inputs[fieldPassword].Value()
}

// push copies the controller's field values into the inputs.
func (m *Model) push() {
	m.inputs[fieldWebsite].SetValue(m.form.Website)
	m.inputs[fieldEmail].SetValue(m.form.Email)
	m.inputs[fieldPassword].SetValue(m.form.Password)
}

func (m Model) setFocus(i int) Model {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
	return m
}

func (m Model) updateInput(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) View() string {
	title := "Password Manager"
	if m.listing {
		title = "Saved Websites"
	}
	header := zstyle.RenderHeader("zkeep", title, zstyle.ZburnAccent)
	sep := zstyle.RenderSeparator(m.width)

	var content string
	switch {
	case !m.notice.Empty():
		content = m.noticeView()
	case m.listing:
		content = m.list.View()
	default:
		content = m.formView()
	}

	footer := zstyle.RenderFooter(m.help())

	return "\n" + header + "\n" + sep + "\n" + content + "\n" + footer + "\n"
}

func (m Model) formView() string {
	s := "\n"
	for i := range fieldCount {
		label := zstyle.MutedText.Render(fmt.Sprintf("%-16s", fieldLabels[i]))
		if i == m.focus {
			s += zstyle.Highlight.Render("> ") + label + m.inputs[i].View() + "\n"
		} else {
			s += "  " + label + m.inputs[i].View() + "\n"
		}
	}
	return s
}

func (m Model) noticeView() string {
	style := noticeStyle(m.notice.Kind)

	body := zstyle.Subtitle.Render(m.notice.Title) + "\n\n" + style.Render(m.notice.Message)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(zstyle.ZburnAccent).
		Padding(1, 2).
		MarginLeft(2).
		Render(body)

	return "\n" + box + "\n"
}

func noticeStyle(k form.Kind) lipgloss.Style {
	switch k {
	case form.Saved, form.Found:
		return zstyle.StatusOK
	case form.Error:
		return zstyle.StatusErr
	}
	return zstyle.StatusWarn
}

// help returns keybinding pairs for the footer.
func (m Model) help() []zstyle.HelpPair {
	if !m.notice.Empty() {
		return []zstyle.HelpPair{
			{Key: "enter", Desc: "ok"},
			{Key: "ctrl+c", Desc: "quit"},
		}
	}
	if m.listing {
		return []zstyle.HelpPair{
			{Key: "j/k", Desc: "navigate"},
			{Key: "enter", Desc: "search"},
			{Key: "esc", Desc: "back"},
		}
	}
	return []zstyle.HelpPair{
		{Key: "tab", Desc: "next"},
		{Key: "ctrl+g", Desc: "generate"},
		{Key: "enter", Desc: "add"},
		{Key: "ctrl+f", Desc: "search"},
		{Key: "ctrl+l", Desc: "saved"},
		{Key: "esc", Desc: "quit"},
	}
}
