// Copyright (c) 2026 Paneldir Authors
// Paneldir - account directory console for hosted panels
// This source code is licensed under the MIT license found in the LICENSE file.

// Package tui provides the terminal user interface for Paneldir.
// This file, tui.go, is the main entry point for the TUI, containing the
// top-level model that acts as a router to all other sub-views.
package tui // import "github.com/paneldir/paneldir/internal/tui"

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/paneldir/paneldir/internal/directory"
	"github.com/paneldir/paneldir/internal/i18n"
	"github.com/paneldir/paneldir/internal/logging"
	"github.com/paneldir/paneldir/internal/model"
)

// viewState represents which part of the UI is currently active.
type viewState int

const (
	// menuView is the main dashboard and navigation menu.
	menuView viewState = iota
	accountsView
	languageView
)

// dashboardDataMsg is a message containing the data for the main menu dashboard.
type dashboardDataMsg struct {
	data dashboardData
}

// languageChangedMsg signals that the language has changed and the UI should
// be re-initialized.
type languageChangedMsg struct{}

// dashboardData holds the summary information for the main menu view.
type dashboardData struct {
	accountCount  int
	activeCount   int
	unlimited     int
	expiringCount int
	err           error
}

// Options configures the TUI entrypoint.
type Options struct {
	// Client is the account directory backend.
	Client directory.Client
	// Policy decides how a zero traffic limit is displayed.
	Policy model.LimitPolicy
	// SaveLanguage persists a language change. May be nil.
	SaveLanguage func(code string) error
}

// mainModel is the top-level model for the TUI. It acts as a state machine
// and router, delegating updates and view rendering to the currently active sub-model.
type mainModel struct {
	state     viewState
	menu      menuModel
	accounts  *accountsModel
	language  languageModel
	dashboard dashboardData
	opts      Options
	width     int
	height    int
	err       error
}

// menuModel holds the state for the main menu.
type menuModel struct {
	choices []string // The menu items to show.
	cursor  int      // Which menu item our cursor is pointing at.
}

// languageModel holds the state for the language selection menu.
type languageModel struct {
	choices     map[string]string // map of lang code to display name
	orderedKeys []string          // for stable iteration
	cursor      int
}

// initialModel creates the starting state of the TUI, beginning at the main menu.
func initialModel(opts Options) mainModel {
	return mainModel{
		state: menuView,
		menu: menuModel{
			choices: []string{
				i18n.T("menu.manage_accounts"),
				i18n.T("menu.language"),
			},
		},
		opts: opts,
	}
}

// Init is the first function that will be called by the Bubble Tea runtime.
// It kicks off the initial command to load data for the dashboard.
func (m mainModel) Init() tea.Cmd {
	return refreshDashboardCmd(m.opts.Client)
}

// Update is the main message loop. It handles all events (like key presses and
// window size changes) and delegates them to the active sub-model.
func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Global keybindings that work everywhere.
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case dashboardDataMsg:
		m.dashboard = msg.data
		return m, nil

	case languageChangedMsg:
		// Re-initialize the entire model to apply new translations everywhere.
		newModel := initialModel(m.opts)
		// Preserve the current window dimensions so the layout remains correct.
		newModel.width = m.width
		newModel.height = m.height
		return newModel, newModel.Init()
	}

	// Delegate updates to the currently active view.
	switch m.state {
	case accountsView:
		// If we received a "back" message, switch the state.
		if _, ok := msg.(backToMenuMsg); ok {
			m.state = menuView
			return m, refreshDashboardCmd(m.opts.Client)
		}
		var newAccountsModel tea.Model
		newAccountsModel, cmd = m.accounts.Update(msg)
		if newModel, ok := newAccountsModel.(*accountsModel); ok {
			m.accounts = newModel
		}

	case languageView:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "q", "esc":
				m.state = menuView
				return m, refreshDashboardCmd(m.opts.Client)
			case "up", "k":
				if m.language.cursor > 0 {
					m.language.cursor--
				}
			case "down", "j":
				if m.language.cursor < len(m.language.orderedKeys)-1 {
					m.language.cursor++
				}
			case "enter":
				langCode := m.language.orderedKeys[m.language.cursor]
				i18n.SetLang(langCode)
				if m.opts.SaveLanguage != nil {
					if err := m.opts.SaveLanguage(langCode); err != nil {
						m.err = fmt.Errorf("failed to save config: %w", err)
					}
				}

				// Signal that the language has changed so the entire UI can be re-initialized.
				return m, func() tea.Msg { return languageChangedMsg{} }
			}
		}

	default: // menuView
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "q":
				return m, tea.Quit
			case "up", "k":
				if m.menu.cursor > 0 {
					m.menu.cursor--
				}
			case "down", "j":
				if m.menu.cursor < len(m.menu.choices)-1 {
					m.menu.cursor++
				}
			case "enter":
				switch m.menu.cursor {
				case 0: // Manage Accounts
					m.state = accountsView
					// newAccountsModel returns a value, but we need a pointer.
					newModel := newAccountsModel(m.opts.Client, m.opts.Policy)
					m.accounts = &newModel
					// Manually update the new sub-model with the current window size
					// to ensure the viewport is initialized correctly.
					var updatedModel tea.Model
					updatedModel, cmd = m.accounts.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
					m.accounts = updatedModel.(*accountsModel)
					return m, tea.Batch(cmd, m.accounts.Init())
				case 1: // Language
					m.state = languageView
					m.language = newLanguageModel()
					return m, nil
				}
			case "L":
				// "L" opens the language menu from anywhere in the menu.
				m.state = languageView
				m.language = newLanguageModel()
				return m, nil
			}
		}
	}

	return m, cmd
}

// View renders the TUI. It's called after every Update and delegates rendering
// to the currently active sub-model.
func (m mainModel) View() string {
	if m.err != nil {
		// A simple error view
		return lipgloss.NewStyle().Foreground(colorError).Padding(1, 2).
			Render(fmt.Sprintf("An error occurred: %v", m.err))
	}

	switch m.state {
	case accountsView:
		return m.accounts.View()
	case languageView:
		return m.language.View()
	default: // menuView
		return m.menu.View(m.dashboard, m.width, m.height)
	}
}

// formatLabelPadding aligns a label/value pair against the widest label.
func formatLabelPadding(label, value string, labelWidth int) string {
	if labelWidth <= 0 || len(label) >= labelWidth {
		return label + " " + value
	}
	return label + strings.Repeat(" ", labelWidth-len(label)) + " " + value
}

// View renders the main menu and dashboard.
func (m menuModel) View(data dashboardData, width, height int) string {
	title := mainTitleStyle.Render("🗂  " + i18n.T("dashboard.title"))
	subTitle := helpStyle.Render(i18n.T("dashboard.subtitle"))
	header := lipgloss.JoinVertical(lipgloss.Left, title, subTitle)

	paneTitleStyle := lipgloss.NewStyle().Bold(true)

	// Menu List (Left Pane)
	var menuItems []string
	menuItems = append(menuItems, paneTitleStyle.Render(i18n.T("menu.navigation")), "")
	for i, choice := range m.choices {
		if m.cursor == i {
			menuItems = append(menuItems, selectedItemStyle.Render("▸ "+choice))
		} else {
			menuItems = append(menuItems, itemStyle.Render("  "+choice))
		}
	}
	menuContent := lipgloss.JoinVertical(lipgloss.Left, menuItems...)

	// Dashboard (Right Pane)
	var dashboardItems []string
	dashboardItems = append(dashboardItems, paneTitleStyle.Render(i18n.T("dashboard.system_status")), "")

	if data.err != nil {
		dashboardItems = append(dashboardItems, errorStyle.Render(i18n.T("accounts.error", data.err)))
	} else {
		statusItems := []struct {
			label string
			value string
		}{
			{i18n.T("dashboard.accounts"), fmt.Sprintf("%d", data.accountCount)},
			{i18n.T("dashboard.active"), successStyle.Render(fmt.Sprintf("%d", data.activeCount))},
			{i18n.T("dashboard.unlimited"), fmt.Sprintf("%d", data.unlimited)},
			{i18n.T("dashboard.expiring"), fmt.Sprintf("%d", data.expiringCount)},
		}

		maxLabelLen := 0
		for _, item := range statusItems {
			if len(item.label) > maxLabelLen {
				maxLabelLen = len(item.label)
			}
		}
		for _, item := range statusItems {
			dashboardItems = append(dashboardItems, formatLabelPadding(item.label, item.value, maxLabelLen))
		}
	}
	dashboardContent := lipgloss.JoinVertical(lipgloss.Left, dashboardItems...)

	// Layout
	headerHeight := lipgloss.Height(header)
	footer := footerStyle.Render(i18n.T("dashboard.footer"))
	paneHeight := height - headerHeight - lipgloss.Height(footer) - 2
	if paneHeight < 8 {
		paneHeight = 8
	}

	menuWidth := 34
	dashboardWidth := width - 4 - menuWidth - 2
	if dashboardWidth < 30 {
		dashboardWidth = 30
	}

	leftPane := paneStyle.Width(menuWidth).Height(paneHeight).Render(menuContent)
	rightPane := paneStyle.Width(dashboardWidth).Height(paneHeight).MarginLeft(2).Render(dashboardContent)

	mainArea := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)

	return lipgloss.JoinVertical(lipgloss.Top, header, mainArea, footer)
}

// newLanguageModel creates a new model for the language selection view.
func newLanguageModel() languageModel {
	// Get the dynamically discovered locales from the i18n package.
	choices := i18n.GetAvailableLocales()

	// Create a sorted list of keys for stable iteration and display order.
	keys := make([]string, 0, len(choices))
	for k := range choices {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return languageModel{
		choices:     choices,
		orderedKeys: keys,
	}
}

func (m languageModel) Init() tea.Cmd { return nil }

func (m languageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) { return m, nil }

func (m languageModel) View() string {
	title := mainTitleStyle.Render("🌐 " + i18n.T("menu.language"))

	var listItems []string
	listItems = append(listItems, titleStyle.Render(i18n.T("language.select")), "")

	for i, langCode := range m.orderedKeys {
		displayName := m.choices[langCode]
		if m.cursor == i {
			listItems = append(listItems, selectedItemStyle.Render("▸ "+displayName))
		} else {
			listItems = append(listItems, itemStyle.Render("  "+displayName))
		}
	}

	listPane := paneStyle.Width(60).Render(lipgloss.JoinVertical(lipgloss.Left, listItems...))
	helpLine := footerStyle.Render(i18n.T("language.help"))

	return lipgloss.JoinVertical(lipgloss.Left, title, "", listPane, "", helpLine)
}

// Run is the main entrypoint for the TUI. It initializes and runs the Bubble
// Tea program against the given directory client.
func Run(opts Options) {
	if _, err := tea.NewProgram(initialModel(opts), tea.WithAltScreen()).Run(); err != nil {
		logging.Errorf("TUI run error: %v", err)
		os.Exit(1)
	}
}

// refreshDashboardCmd is a tea.Cmd that fetches summary data for the main menu.
func refreshDashboardCmd(client directory.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), directory.DefaultTimeout)
		defer cancel()

		accounts, err := client.ListAccounts(ctx)
		if err != nil {
			return dashboardDataMsg{data: dashboardData{err: err}}
		}

		data := dashboardData{accountCount: len(accounts)}
		for _, a := range accounts {
			if a.IsActive {
				data.activeCount++
			}
			if a.Unlimited(model.ZeroUnlimited) {
				data.unlimited++
			}
			if a.ExpireAt != nil && a.ExpireAt.After(time.Now()) {
				data.expiringCount++
			}
		}
		return dashboardDataMsg{data: data}
	}
}
