package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/tui/components"
	"github.com/mmcdole/flick/internal/tui/styles"
)

// View renders the current screen
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	switch m.Screen {
	case ScreenDetail:
		sections = append(sections, m.Detail.View())
	default:
		w := m.Warnings()
		sections = append(sections,
			m.Form.View(w.Search, w.Year),
			m.renderStatus(),
			m.Results.View(),
			m.renderPager(),
		)
	}

	sections = append(sections, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the title bar with the active query
func (m Model) renderHeader() string {
	title := styles.AccentStyle.Bold(true).Render("flick")

	q := m.state.Query
	var filters []string
	if y := strings.TrimSpace(q.Year); y != "" {
		filters = append(filters, y)
	}
	if q.Type != domain.KindAny {
		filters = append(filters, q.Type.Label())
	}
	right := ""
	if len(filters) > 0 {
		right = styles.DimStyle.Render(strings.Join(filters, " · "))
	}

	gap := max(m.Width-lipgloss.Width(title)-lipgloss.Width(right), 1)
	return title + strings.Repeat(" ", gap) + right
}

// renderStatus renders the single-line request status
func (m Model) renderStatus() string {
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			return styles.ErrorStyle.Render(m.StatusMsg)
		}
		return styles.SuccessStyle.Render(m.StatusMsg)
	}

	switch m.state.Status {
	case domain.StatusLoading:
		return styles.DimStyle.Render("Loading...")
	case domain.StatusFailed:
		return styles.ErrorStyle.Render("Error: " + m.state.Error)
	}

	total := m.state.Results.TotalResults
	if total == 0 && len(m.state.Results.Items) == 0 {
		return " "
	}
	return styles.DimStyle.Render(fmt.Sprintf("%d results", total))
}

// renderPager renders the page window, or a blank line when hidden
func (m Model) renderPager() string {
	if pager := components.RenderPager(m.Pagination()); pager != "" {
		return pager
	}
	return " "
}

// renderFooter renders the key help
func (m Model) renderFooter() string {
	if !m.ShowHelp {
		return styles.DimStyle.Render("? help")
	}
	if m.Screen == ScreenDetail {
		return m.Help.ShortHelpView([]key.Binding{
			components.DetailKeys.Back,
			components.DetailKeys.ScrollUp,
			components.DetailKeys.ScrollDn,
			Keys.Quit,
		})
	}
	return m.Help.View(Keys)
}
