package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/tui/styles"
)

// DetailView shows one detail record with a spinner while it loads
type DetailView struct {
	spinner  spinner.Model
	viewport viewport.Model

	detail  *domain.Detail
	loading bool
	err     string

	width  int
	height int
}

// NewDetailView creates an empty detail view
func NewDetailView() DetailView {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	return DetailView{
		spinner:  s,
		viewport: viewport.New(0, 0),
	}
}

// Init starts the spinner
func (d DetailView) Init() tea.Cmd {
	return d.spinner.Tick
}

// SetSize updates the view dimensions
func (d *DetailView) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.viewport.Width = max(width-4, 10)
	d.viewport.Height = max(height-4, 1)
	d.refresh()
}

// SetState replaces what the view shows
func (d *DetailView) SetState(detail *domain.Detail, loading bool, err string) {
	changed := !sameDetail(d.detail, detail)
	d.detail = detail
	d.loading = loading
	d.err = err
	d.refresh()
	if changed {
		d.viewport.GotoTop()
	}
}

// Loading reports whether the spinner is showing
func (d DetailView) Loading() bool {
	return d.loading
}

// Update advances the spinner and scrolls the body
func (d DetailView) Update(msg tea.Msg) (DetailView, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !d.loading {
			return d, nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return d, cmd
	}

	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd
}

// View renders the component
func (d DetailView) View() string {
	var body string
	switch {
	case d.loading:
		body = d.spinner.View() + " " + styles.DimStyle.Render("Loading...")
	case d.err != "":
		body = styles.ErrorStyle.Render("Error: "+d.err) + "\n\n" + styles.DimStyle.Render("esc: back")
	case d.detail == nil:
		body = styles.DimStyle.Render("Nothing selected") + "\n\n" + styles.DimStyle.Render("esc: back")
	default:
		body = d.viewport.View()
	}

	return styles.ActiveBorder.
		Width(max(d.width-2, 10)).
		Height(max(d.height-2, 1)).
		Padding(0, 1).
		Render(body)
}

func (d *DetailView) refresh() {
	if d.detail == nil {
		d.viewport.SetContent("")
		return
	}
	d.viewport.SetContent(RenderDetail(*d.detail, d.viewport.Width))
}

// RenderDetail lays out a detail record for the given width
func RenderDetail(m domain.Detail, width int) string {
	var b strings.Builder

	title := m.Title
	if m.Year != "" {
		title = fmt.Sprintf("%s (%s)", m.Title, m.Year)
	}
	b.WriteString(styles.TitleStyle.Render(title))
	b.WriteString("\n")

	var badges []string
	if m.Kind != domain.KindAny {
		badges = append(badges, styles.DimBadgeStyle.Render(string(m.Kind)))
	}
	if m.Rating != "" && m.Rating != domain.NotAvailable {
		badges = append(badges, styles.BadgeStyle.Render("★ "+m.Rating))
	}
	if len(badges) > 0 {
		b.WriteString(strings.Join(badges, " "))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	fields := []struct{ label, value string }{
		{"IMDb ID", m.ID},
		{"Genre", m.Genre},
		{"Runtime", m.Runtime},
		{"Director", m.Director},
		{"Cast", m.Actors},
	}
	labelStyle := styles.SubtitleStyle.Width(10)
	valueWidth := max(width-10, 10)
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		value := lipgloss.NewStyle().Width(valueWidth).Render(f.value)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(f.label), value))
		b.WriteString("\n")
	}

	poster := styles.DimStyle.Render("no image")
	if m.HasPoster() {
		poster = m.Poster
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render("Poster"), poster))
	b.WriteString("\n\n")

	if m.Plot != "" && m.Plot != domain.NotAvailable {
		b.WriteString(styles.AccentStyle.Render("Plot"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(max(width, 10)).Render(m.Plot))
	}

	return b.String()
}

func sameDetail(a, b *domain.Detail) bool {
	switch {
	case a == nil && b == nil:
		return true
	case a == nil || b == nil:
		return false
	default:
		return a.ID == b.ID
	}
}
