// Copyright (c) 2026 Paneldir Authors
// Paneldir - account directory console for hosted panels
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/paneldir/paneldir/internal/core"
	"github.com/paneldir/paneldir/internal/directory"
	"github.com/paneldir/paneldir/internal/i18n"
	"github.com/paneldir/paneldir/internal/model"
)

// A message to signal that we should go back to the main menu.
type backToMenuMsg struct{}

// A message to signal that we should go back to the list from the form.
type backToListMsg struct{}

// accountsLoadedMsg signals that a load finished for the view instance
// identified by gen. Messages from torn-down instances are discarded.
type accountsLoadedMsg struct {
	gen int64
}

// createFinishedMsg carries the outcome of a create submission.
type createFinishedMsg struct {
	gen   int64
	err   error
	notes []notification
}

// deleteFinishedMsg carries the outcome of a delete.
type deleteFinishedMsg struct {
	gen   int64
	err   error
	notes []notification
}

// notification is one coordinator notification captured for rendering.
type notification struct {
	message string
	kind    core.NotifyKind
}

// notifyBuffer implements core.Notifier by collecting notifications until
// the command that ran the operation drains them into a message.
type notifyBuffer struct {
	mu    sync.Mutex
	notes []notification
}

func (b *notifyBuffer) Notify(message string, kind core.NotifyKind) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notes = append(b.notes, notification{message: message, kind: kind})
}

func (b *notifyBuffer) take() []notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	notes := b.notes
	b.notes = nil
	return notes
}

// dialogAnswer implements core.Confirmer by replaying the operator's answer
// from the modal delete dialog.
type dialogAnswer struct {
	mu  sync.Mutex
	yes bool
}

func (d *dialogAnswer) set(v bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.yes = v
}

func (d *dialogAnswer) Confirm(prompt string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.yes
}

// viewGen hands out one identity per accounts view instance so late replies
// from a torn-down instance can be recognized and dropped.
var viewGen atomic.Int64

type accountsViewState int

const (
	accountsListView accountsViewState = iota
	accountsFormView
)

// accountsModel is the model for the account management view.
type accountsModel struct {
	state    accountsViewState
	form     accountFormModel
	store    *core.ListStore
	coord    *core.Coordinator
	notes    *notifyBuffer
	answer   *dialogAnswer
	policy   model.LimitPolicy
	viewport viewport.Model
	rows     []model.Account // rendered copy of the store snapshot
	cursor   int
	status   string
	statusOK bool
	gen      int64
	// For delete confirmation
	isConfirmingDelete bool
	accountToDelete    model.Account
	confirmCursor      int // 0 for No, 1 for Yes
	width, height      int
}

// newAccountsModel builds the view and its state core around the given
// directory client.
func newAccountsModel(client directory.Client, policy model.LimitPolicy) accountsModel {
	store := core.NewListStore(client)
	notes := &notifyBuffer{}
	answer := &dialogAnswer{}
	coord := core.NewCoordinator(client, store, answer, notes)
	coord.SetMessages(core.Messages{
		CreateSuccess:  i18n.T("notify.create_success"),
		CreateFallback: i18n.T("notify.create_fallback"),
		CreateFailed:   i18n.T("notify.create_failed"),
		DeleteFailed:   i18n.T("notify.delete_failed"),
	})
	return accountsModel{
		store:    store,
		coord:    coord,
		notes:    notes,
		answer:   answer,
		policy:   policy,
		viewport: viewport.New(0, 0),
		gen:      viewGen.Add(1),
	}
}

// Init kicks off the first load.
func (m accountsModel) Init() tea.Cmd {
	return m.loadCmd()
}

// loadCmd refreshes the list store off the event loop.
func (m *accountsModel) loadCmd() tea.Cmd {
	gen := m.gen
	store := m.store
	return func() tea.Msg {
		store.Load(context.Background())
		return accountsLoadedMsg{gen: gen}
	}
}

// deleteCmd runs the coordinator's delete for the selected account. The
// coordinator asks our dialogAnswer for confirmation, so a declined dialog
// flows through the same path and provably issues no directory calls.
func (m *accountsModel) deleteCmd(id string) tea.Cmd {
	gen := m.gen
	coord := m.coord
	notes := m.notes
	return func() tea.Msg {
		err := coord.DeleteAccount(context.Background(), id)
		return deleteFinishedMsg{gen: gen, err: err, notes: notes.take()}
	}
}

func (m *accountsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if sizeMsg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = sizeMsg.Width
		m.height = sizeMsg.Height
		headerHeight := lipgloss.Height(m.headerView())
		footerHeight := lipgloss.Height(m.footerView())
		m.viewport.Height = m.height - headerHeight - footerHeight - 8
		m.viewport.Width = m.width - 6
	}

	// Results from the view's own async operations. Replies stamped with a
	// different generation belong to a torn-down instance and are dropped.
	switch msg := msg.(type) {
	case accountsLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.refreshRows()
		return m, nil

	case deleteFinishedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.applyNotes(msg.notes)
		m.refreshRows()
		return m, nil

	case createFinishedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		if msg.err != nil {
			// Dialog stays open, draft untouched; show the notification
			// inline in the form.
			m.form.errText = firstMessage(msg.notes, msg.err)
			return m, nil
		}
		m.state = accountsListView
		m.applyNotes(msg.notes)
		m.refreshRows()
		return m, nil
	}

	// Delegate updates to the form if it's active.
	if m.state == accountsFormView {
		if _, ok := msg.(backToListMsg); ok {
			m.state = accountsListView
			m.status = ""
			return m, nil
		}
		var newFormModel tea.Model
		newFormModel, cmd = m.form.Update(msg)
		m.form = newFormModel.(accountFormModel)
		return m, cmd
	}

	// Handle delete confirmation
	if m.isConfirmingDelete {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "n", "q", "esc":
				return m, m.resolveConfirmation(false)
			case "y":
				return m, m.resolveConfirmation(true)
			case "left", "right", "tab", "shift+tab":
				m.confirmCursor = (m.confirmCursor + 1) % 2
				return m, nil
			case "enter":
				return m, m.resolveConfirmation(m.confirmCursor == 1)
			}
		}
		return m, nil
	}

	// --- This is the list view update logic ---
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "esc":
			return m, func() tea.Msg { return backToMenuMsg{} }

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.viewport.SetContent(m.listContentView())
				m.ensureCursorInView()
			}

		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				m.viewport.SetContent(m.listContentView())
				m.ensureCursorInView()
			}

		case "r":
			return m, m.loadCmd()

		// Switch to the form view to add a new account.
		case "a":
			m.coord.OpenDialog()
			m.form = newAccountFormModel(m.coord, m.notes, m.gen)
			m.state = accountsFormView
			m.status = ""
			return m, m.form.Init()

		// Delete the selected account.
		case "d", "delete":
			if len(m.rows) > 0 {
				m.accountToDelete = m.rows[m.cursor]
				m.isConfirmingDelete = true
				m.confirmCursor = 0 // Default to No
			}
			return m, nil

		// Copy the selected username to the clipboard.
		case "c":
			if len(m.rows) > 0 {
				username := m.rows[m.cursor].Username
				if err := clipboard.WriteAll(username); err != nil {
					m.status = i18n.T("accounts.status.copy_failed", err)
					m.statusOK = false
				} else {
					m.status = i18n.T("accounts.status.copied", username)
					m.statusOK = true
				}
			}
			return m, nil
		}
	}

	var vpCmd tea.Cmd
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(cmd, vpCmd)
}

// resolveConfirmation closes the dialog and routes the operator's answer
// through the coordinator.
func (m *accountsModel) resolveConfirmation(confirmed bool) tea.Cmd {
	m.isConfirmingDelete = false
	m.answer.set(confirmed)
	return m.deleteCmd(m.accountToDelete.ID)
}

// refreshRows re-renders the viewport from the store snapshot.
func (m *accountsModel) refreshRows() {
	m.rows = m.store.Snapshot()
	if m.cursor >= len(m.rows) {
		if len(m.rows) > 0 {
			m.cursor = len(m.rows) - 1
		} else {
			m.cursor = 0
		}
	}
	m.viewport.SetContent(m.listContentView())
}

// applyNotes surfaces the last coordinator notification in the status line.
func (m *accountsModel) applyNotes(notes []notification) {
	if len(notes) == 0 {
		return
	}
	last := notes[len(notes)-1]
	m.status = last.message
	m.statusOK = last.kind == core.NotifySuccess
}

// firstMessage prefers the coordinator's notification text over the raw
// error for inline display.
func firstMessage(notes []notification, err error) string {
	if len(notes) > 0 {
		return notes[0].message
	}
	return err.Error()
}

// ensureCursorInView adjusts the viewport offset with edge scrolling: the
// list only scrolls when the cursor hits the top or bottom of the visible
// area.
func (m *accountsModel) ensureCursorInView() {
	if m.viewport.Height <= 0 {
		return
	}
	if m.cursor < m.viewport.YOffset {
		m.viewport.YOffset = m.cursor
	} else if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.YOffset = m.cursor - m.viewport.Height + 1
	}
}

// headerView renders the main title of the page.
func (m *accountsModel) headerView() string {
	return mainTitleStyle.Render("🛡  " + i18n.T("accounts.title"))
}

// columnHeader renders the table header row.
func (m *accountsModel) columnHeader() string {
	head := fmt.Sprintf("  %-18s %-10s %-20s %-14s",
		i18n.T("accounts.col.username"),
		i18n.T("accounts.col.status"),
		i18n.T("accounts.col.quota"),
		i18n.T("accounts.col.expiry"),
	)
	return lipgloss.NewStyle().Bold(true).Render(head)
}

// renderRow renders one account as a table row. The status badge and the
// quota/expiry cells are display derivations, recomputed on every render.
func (m *accountsModel) renderRow(acc model.Account, selected bool) string {
	badge := activeBadgeStyle.Render(i18n.T("accounts.badge.active"))
	badgeLen := len(i18n.T("accounts.badge.active"))
	if !acc.IsActive {
		badge = disabledBadgeStyle.Render(i18n.T("accounts.badge.disabled"))
		badgeLen = len(i18n.T("accounts.badge.disabled"))
	}
	pad := 10 - badgeLen
	if pad < 1 {
		pad = 1
	}

	quota := core.QuotaText(acc, m.policy)
	expiry := core.ExpiryText(acc, i18n.T("accounts.date_layout"), i18n.T("accounts.expiry.never"))

	marker := "  "
	if selected {
		marker = "▸ "
	}
	cells := fmt.Sprintf("%s%-18s %s%s %-20s %-14s", marker, acc.Username, badge, strings.Repeat(" ", pad), quota, expiry)

	switch {
	case selected:
		return selectedItemStyle.Render(cells)
	case !acc.IsActive:
		return inactiveItemStyle.Render(cells)
	default:
		return itemStyle.Render(cells)
	}
}

// listContentView builds the string content for the list viewport.
func (m *accountsModel) listContentView() string {
	var b strings.Builder
	for i, acc := range m.rows {
		b.WriteString(m.renderRow(acc, i == m.cursor) + "\n")
	}
	return b.String()
}

// footerView renders the help text at the bottom of the page.
func (m *accountsModel) footerView() string {
	return footerStyle.Render(i18n.T("accounts.footer"))
}

// statusView renders the last notification, styled by its kind.
func (m *accountsModel) statusView() string {
	if m.status == "" {
		return ""
	}
	if m.statusOK {
		return statusMessageStyle.Render(m.status)
	}
	return statusErrorStyle.Render(m.status)
}

// viewConfirmation renders the modal delete dialog.
func (m *accountsModel) viewConfirmation() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(i18n.T("accounts.delete_confirm.title")))
	b.WriteString("\n\n")
	b.WriteString(i18n.T("accounts.delete_confirm.question"))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(i18n.T("accounts.delete_confirm.selected", m.accountToDelete.Username)))
	b.WriteString("\n")

	var yesButton, noButton string
	if m.confirmCursor == 1 {
		yesButton = activeButtonStyle.Render(i18n.T("accounts.delete_confirm.yes"))
		noButton = buttonStyle.Render(i18n.T("accounts.delete_confirm.no"))
	} else {
		yesButton = buttonStyle.Render(i18n.T("accounts.delete_confirm.yes"))
		noButton = activeButtonStyle.Render(i18n.T("accounts.delete_confirm.no"))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, noButton, "  ", yesButton))
	b.WriteString("\n" + helpStyle.Render("\n"+i18n.T("accounts.delete_confirm.help")))

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		dialogBoxStyle.Render(b.String()),
	)
}

func (m *accountsModel) View() string {
	if m.state == accountsFormView {
		return m.form.View()
	}
	if m.isConfirmingDelete {
		return m.viewConfirmation()
	}

	header := m.headerView()

	// Full-page loading state: only before anything was ever loaded.
	if m.store.ShowLoadingIndicator() {
		loading := helpStyle.Render(i18n.T("accounts.loading"))
		return lipgloss.JoinVertical(lipgloss.Top, header,
			lipgloss.Place(m.width, m.height-lipgloss.Height(header), lipgloss.Center, lipgloss.Center, loading))
	}

	var listContent string
	if len(m.rows) == 0 {
		listContent = helpStyle.Render(i18n.T("accounts.empty"))
	} else {
		listContent = m.viewport.View()
	}
	body := lipgloss.JoinVertical(lipgloss.Left, m.columnHeader(), "", listContent)

	paneWidth := m.width - 4
	if paneWidth < 40 {
		paneWidth = 40
	}
	pane := paneStyle.Width(paneWidth).Render(body)

	parts := []string{header, pane}
	if status := m.statusView(); status != "" {
		parts = append(parts, status)
	}
	parts = append(parts, m.footerView())
	return lipgloss.JoinVertical(lipgloss.Top, parts...)
}
