// Copyright (c) 2026 Paneldir Authors
// Paneldir - account directory console for hosted panels
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/paneldir/paneldir/internal/core"
	"github.com/paneldir/paneldir/internal/i18n"
)

// A simple style for focused text inputs.
var focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))

// Indexes into the form inputs.
const (
	fieldUsername = iota
	fieldPassword
	fieldEmail
	fieldTrafficLimit
	fieldExpireDays
	fieldCount
)

// accountFormModel is the creation dialog: five inputs over the draft plus a
// submit button. Submission runs through the coordinator; on failure the
// form stays up with every value untouched so the operator can correct and
// resubmit.
type accountFormModel struct {
	focusIndex int
	inputs     []textinput.Model
	errText    string
	coord      *core.Coordinator
	notes      *notifyBuffer
	gen        int64
}

func newAccountFormModel(coord *core.Coordinator, notes *notifyBuffer, gen int64) accountFormModel {
	m := accountFormModel{
		inputs: make([]textinput.Model, fieldCount),
		coord:  coord,
		notes:  notes,
		gen:    gen,
	}

	draft := coord.Draft()

	var t textinput.Model
	for i := range m.inputs {
		t = textinput.New()
		t.Cursor.Style = focusedStyle
		t.CharLimit = 64
		t.Width = 40

		switch i {
		case fieldUsername:
			t.Prompt = i18n.T("form.username")
			t.Placeholder = "alice"
		case fieldPassword:
			t.Prompt = i18n.T("form.password")
			t.EchoMode = textinput.EchoPassword
		case fieldEmail:
			t.Prompt = i18n.T("form.email")
			t.Placeholder = "alice@example.com"
		case fieldTrafficLimit:
			t.Prompt = i18n.T("form.traffic_limit")
			t.SetValue(strconv.Itoa(draft.TrafficLimitGB))
		case fieldExpireDays:
			t.Prompt = i18n.T("form.expire_days")
			t.SetValue(strconv.Itoa(draft.ExpireDays))
		}
		m.inputs[i] = t
	}

	m.inputs[fieldUsername].Focus()
	m.inputs[fieldUsername].TextStyle = focusedStyle

	return m
}

func (m accountFormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m accountFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		// Cancel: close the dialog and discard the draft.
		case "esc":
			m.coord.CancelDialog()
			return m, func() tea.Msg { return backToListMsg{} }

		// Set focus to next input
		case "tab", "shift+tab", "enter", "up", "down":
			s := msg.String()

			// Enter on the submit button submits the draft.
			if s == "enter" && m.focusIndex == len(m.inputs) {
				return m.submit()
			}

			// Cycle focus
			if s == "up" || s == "shift+tab" {
				m.focusIndex--
			} else {
				m.focusIndex++
			}
			if m.focusIndex > len(m.inputs) {
				m.focusIndex = 0
			} else if m.focusIndex < 0 {
				m.focusIndex = len(m.inputs)
			}

			cmds := make([]tea.Cmd, len(m.inputs))
			for i := 0; i <= len(m.inputs)-1; i++ {
				if i == m.focusIndex {
					cmds[i] = m.inputs[i].Focus()
					m.inputs[i].TextStyle = focusedStyle
					continue
				}
				m.inputs[i].Blur()
				m.inputs[i].TextStyle = lipgloss.NewStyle()
			}

			return m, tea.Batch(cmds...)
		}
	}

	// Handle character input and blinking
	cmd := m.updateInputs(msg)
	return m, cmd
}

// submit validates the edited fields, pushes them into the coordinator's
// draft, and runs the creation off the event loop. Validation failures never
// reach the directory.
func (m accountFormModel) submit() (tea.Model, tea.Cmd) {
	draft := m.coord.Draft()
	draft.Username = strings.TrimSpace(m.inputs[fieldUsername].Value())
	draft.Password = m.inputs[fieldPassword].Value()
	draft.Email = strings.TrimSpace(m.inputs[fieldEmail].Value())

	var err error
	draft.TrafficLimitGB, err = parseIntField(m.inputs[fieldTrafficLimit].Value(), core.DefaultTrafficLimitGB)
	if err != nil {
		m.errText = i18n.T("form.error.number", fieldLabel("form.traffic_limit"))
		return m, nil
	}
	draft.ExpireDays, err = parseIntField(m.inputs[fieldExpireDays].Value(), core.DefaultExpireDays)
	if err != nil {
		m.errText = i18n.T("form.error.number", fieldLabel("form.expire_days"))
		return m, nil
	}

	m.coord.SetDraft(draft)
	if draft.Validate() != nil {
		m.errText = i18n.T("form.error.required")
		return m, nil
	}

	m.errText = ""
	coord := m.coord
	notes := m.notes
	gen := m.gen
	return m, func() tea.Msg {
		err := coord.CreateAccount(context.Background())
		return createFinishedMsg{gen: gen, err: err, notes: notes.take()}
	}
}

// fieldLabel strips the prompt decoration from a form label for use in
// error messages.
func fieldLabel(messageID string) string {
	return strings.TrimSuffix(strings.TrimSpace(i18n.T(messageID)), ":")
}

// parseIntField maps an emptied numeric input back to its default.
func parseIntField(raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func (m *accountFormModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func (m accountFormModel) View() string {
	var viewItems []string

	viewItems = append(viewItems, titleStyle.Render("✨ "+i18n.T("form.title")))

	// The title's padding adds a newline, so we add one more for a blank line.
	viewItems = append(viewItems, "")
	for i := range m.inputs {
		viewItems = append(viewItems, m.inputs[i].View())
	}

	button := formItemStyle.Render(i18n.T("form.submit"))
	if m.focusIndex == len(m.inputs) {
		button = formSelectedItemStyle.Render(i18n.T("form.submit"))
	}
	viewItems = append(viewItems, "", button)

	if m.errText != "" {
		viewItems = append(viewItems, "", errorStyle.Render(m.errText))
	}

	viewItems = append(viewItems, "", helpStyle.Render(i18n.T("form.help")))

	return lipgloss.JoinVertical(lipgloss.Left, viewItems...)
}
