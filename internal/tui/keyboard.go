package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/flick/internal/tui/components"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.Screen == ScreenDetail {
		return m.handleDetailKey(msg)
	}

	// Filter typing captures every key
	if m.Results.IsFilterTyping() {
		return m, m.Results.Update(msg)
	}

	switch {
	case key.Matches(msg, Keys.NextField):
		return m, m.setFocus((m.focus + 1) % focusCount)
	case key.Matches(msg, Keys.PrevField):
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
	case key.Matches(msg, Keys.Force):
		return m, FetchNowCmd(m.ctx, m.Ctrl)
	}

	if m.focus == focusResults {
		return m.handleResultsKey(msg)
	}
	return m.handleFormKey(msg)
}

// handleFormKey handles keys while a form field has focus
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc, tea.KeyDown:
		return m, m.setFocus(focusResults)
	}

	cmd, change := m.Form.Update(msg)
	if change != nil {
		m.applyChange(*change)
	}
	return m, cmd
}

// handleResultsKey handles keys while the results list has focus
func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
		if m.Help.ShowAll {
			m.ShowHelp = true
		}
		m.updateLayout()
		return m, nil

	case key.Matches(msg, Keys.Filter):
		cmd := m.Results.ToggleFilter()
		return m, cmd

	case key.Matches(msg, Keys.Back):
		if m.Results.IsFiltering() {
			m.Results.ClearFilter()
			return m, nil
		}
		return m, m.setFocus(focusSearch)

	case key.Matches(msg, Keys.PrevPage):
		m.Ctrl.PrevPage()
		return m, nil

	case key.Matches(msg, Keys.NextPage):
		m.Ctrl.NextPage()
		return m, nil

	case key.Matches(msg, Keys.Open):
		return m.openSelected()

	case msg.Type == tea.KeyUp && m.Results.SelectedIndex() == 0:
		return m, m.setFocus(focusType)
	}

	return m, m.Results.Update(msg)
}

// handleDetailKey handles keys on the detail screen
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, components.DetailKeys.Back):
		m.Ctrl.ClearDetail()
		m.Screen = ScreenSearch
		m.sync()
		return m, nil
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.Detail, cmd = m.Detail.Update(msg)
	return m, cmd
}

// openSelected switches to the detail screen and starts the fetch
func (m Model) openSelected() (tea.Model, tea.Cmd) {
	item, ok := m.Results.Selected()
	if !ok {
		return m, nil
	}

	m.Screen = ScreenDetail
	m.Detail.SetState(nil, true, "")
	m.updateLayout()
	return m, tea.Batch(
		FetchDetailCmd(m.ctx, m.Ctrl, item.ID),
		m.Detail.Init(),
	)
}

// applyChange forwards a form edit to the controller
func (m *Model) applyChange(change components.FormChange) {
	switch change.Field {
	case components.FieldSearch:
		m.Ctrl.SetSearch(change.Search)
	case components.FieldYear:
		m.Ctrl.SetYear(change.Year)
	case components.FieldType:
		m.Ctrl.SetType(change.Kind)
	}
}

// setFocus moves focus between the form fields and the results list
func (m *Model) setFocus(target focusTarget) tea.Cmd {
	m.focus = target
	if target == focusResults {
		m.Form.Blur()
		m.Results.SetFocused(true)
		return nil
	}
	m.Results.SetFocused(false)
	return m.Form.Focus(components.Field(target))
}
