package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// Layout constants for the results list
const (
	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2
)

// ResultsList is a scrollable list of search results for the current page.
// The filter only narrows what is already loaded; it never triggers a fetch.
type ResultsList struct {
	items []domain.Summary

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	matches      fuzzy.Matches // nil when no filter query
}

// NewResultsList creates an empty results list
func NewResultsList() *ResultsList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &ResultsList{filterInput: ti}
}

// SetItems replaces the list contents. The cursor is kept when the page is
// unchanged and reset otherwise; an active filter is re-applied.
func (l *ResultsList) SetItems(items []domain.Summary) {
	if !sameIDs(l.items, items) {
		l.cursor = 0
		l.offset = 0
	}
	l.items = items
	if l.filterActive {
		l.applyFilter()
	}
	l.clampCursor()
}

// SetSize updates the list dimensions
func (l *ResultsList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.recalcMaxVisible()
	l.ensureVisible()
}

// SetFocused sets whether the list receives navigation keys
func (l *ResultsList) SetFocused(focused bool) {
	l.focused = focused
}

// IsFocused returns the focus state
func (l *ResultsList) IsFocused() bool {
	return l.focused
}

// Selected returns the summary under the cursor
func (l *ResultsList) Selected() (domain.Summary, bool) {
	if l.ItemCount() == 0 {
		return domain.Summary{}, false
	}
	return l.items[l.mapIndex(l.cursor)], true
}

// SelectedIndex returns the cursor position in the visible (filtered) list
func (l *ResultsList) SelectedIndex() int {
	return l.cursor
}

// ItemCount returns the number of visible (filtered) items
func (l *ResultsList) ItemCount() int {
	if l.matches != nil {
		return len(l.matches)
	}
	return len(l.items)
}

// ToggleFilter activates the filter input
func (l *ResultsList) ToggleFilter() tea.Cmd {
	l.filterActive = true
	l.recalcMaxVisible()
	return l.filterInput.Focus()
}

// IsFiltering returns true if filter mode is active
func (l *ResultsList) IsFiltering() bool {
	return l.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused
func (l *ResultsList) IsFilterTyping() bool {
	return l.filterActive && l.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (l *ResultsList) ClearFilter() {
	l.filterActive = false
	l.filterQuery = ""
	l.matches = nil
	l.filterInput.SetValue("")
	l.filterInput.Blur()
	l.recalcMaxVisible()
	l.clampCursor()
}

// Update handles navigation and filter typing
func (l *ResultsList) Update(msg tea.Msg) tea.Cmd {
	if !l.focused {
		return nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)

	if l.IsFilterTyping() {
		if ok {
			switch {
			case key.Matches(keyMsg, ResultsKeys.Escape):
				l.ClearFilter()
				return nil
			case key.Matches(keyMsg, ResultsKeys.Enter):
				// Accept filter, blur input to allow navigation
				l.filterInput.Blur()
				return nil
			}
		}
		var cmd tea.Cmd
		l.filterInput, cmd = l.filterInput.Update(msg)
		if l.filterInput.Value() != l.filterQuery {
			l.applyFilter()
		}
		return cmd
	}

	if !ok {
		return nil
	}

	count := l.ItemCount()
	switch {
	case key.Matches(keyMsg, ResultsKeys.Up):
		l.cursor--
	case key.Matches(keyMsg, ResultsKeys.Down):
		l.cursor++
	case key.Matches(keyMsg, ResultsKeys.Home):
		l.cursor = 0
	case key.Matches(keyMsg, ResultsKeys.End):
		l.cursor = count - 1
	case key.Matches(keyMsg, ResultsKeys.HalfUp):
		l.cursor -= max(1, l.maxVisible/2)
	case key.Matches(keyMsg, ResultsKeys.HalfDown):
		l.cursor += max(1, l.maxVisible/2)
	case key.Matches(keyMsg, ResultsKeys.Escape):
		if l.filterActive {
			l.ClearFilter()
		}
	}
	l.clampCursor()
	return nil
}

// View renders the list
func (l *ResultsList) View() string {
	style := styles.InactiveBorder
	if l.focused {
		style = styles.ActiveBorder
	}
	innerWidth := max(l.width-2, 10)
	innerHeight := max(l.height-2, 1)

	return style.
		Width(innerWidth).
		Height(innerHeight).
		Render(l.renderContent(innerWidth))
}

// Internal methods

func (l *ResultsList) recalcMaxVisible() {
	// Interior height minus border, scroll indicators and optional filter bar
	l.maxVisible = l.height - 2 - ScrollIndicatorLines
	if l.filterActive {
		l.maxVisible--
	}
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
}

func (l *ResultsList) clampCursor() {
	count := l.ItemCount()
	if l.cursor >= count {
		l.cursor = count - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	l.ensureVisible()
}

func (l *ResultsList) ensureVisible() {
	if l.maxVisible <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
	if l.offset > 0 && l.offset+l.maxVisible > l.ItemCount() {
		l.offset = max(0, l.ItemCount()-l.maxVisible)
	}
}

func (l *ResultsList) applyFilter() {
	query := l.filterInput.Value()
	l.filterQuery = query

	if query == "" {
		l.matches = nil
		return
	}

	lowerTitles := make([]string, len(l.items))
	for i, item := range l.items {
		lowerTitles[i] = strings.ToLower(item.Title)
	}

	l.matches = fuzzy.Find(strings.ToLower(query), lowerTitles)
	if l.matches == nil {
		l.matches = fuzzy.Matches{}
	}

	// Reset cursor to first match
	l.cursor = 0
	l.offset = 0
}

func (l *ResultsList) mapIndex(i int) int {
	if l.matches != nil && i < len(l.matches) {
		return l.matches[i].Index
	}
	return i
}

func (l *ResultsList) matchedIndexes(i int) []int {
	if l.matches != nil && i < len(l.matches) {
		return l.matches[i].MatchedIndexes
	}
	return nil
}

// Rendering

func (l *ResultsList) renderContent(width int) string {
	count := l.ItemCount()
	if count == 0 {
		emptyMsg := styles.DimStyle.Render("No results")
		if l.filterActive && l.filterQuery != "" {
			emptyMsg = styles.DimStyle.Render("No matches")
		}
		content := " \n" + emptyMsg
		if l.filterActive {
			content += "\n" + l.renderFilterBar()
		}
		return content
	}

	end := min(l.offset+l.maxVisible, count)

	lines := make([]string, 0, end-l.offset)
	for i := l.offset; i < end; i++ {
		item := l.items[l.mapIndex(i)]
		lines = append(lines, RenderResultRow(item, l.matchedIndexes(i), i == l.cursor && l.focused, width))
	}

	// Always reserve header and footer lines to prevent layout shifts
	header := " "
	if l.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}

	content := header + "\n" + strings.Join(lines, "\n") + "\n" + footer
	if l.filterActive {
		content += "\n" + l.renderFilterBar()
	}
	return content
}

func (l *ResultsList) renderFilterBar() string {
	input := l.filterInput.View()

	countStr := ""
	if l.filterQuery != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", l.ItemCount(), len(l.items)))
	}
	return input + countStr
}

var (
	kindColor   = styles.LightGray
	yearColor   = styles.DimGray
	matchColor  = styles.Gold
	posterColor = styles.Green
)

// RenderResultRow renders one summary as "● Title (Year)  kind", with
// matched title characters highlighted.
func RenderResultRow(item domain.Summary, matched []int, selected bool, width int) string {
	indicator := "○"
	indicatorFg := styles.DimGray
	if item.HasPoster() {
		indicator = "●"
		indicatorFg = posterColor
	}

	kind := string(item.Kind)
	// Available: width - indicator(1) - spaces(3) - kind - year - margins(2)
	availableForTitle := max(width-len(kind)-len(item.Year)-9, 5)
	title := styles.Truncate(item.Title, availableForTitle)

	parts := []styles.RowPart{{Text: indicator, Foreground: &indicatorFg}, {Text: " "}}
	parts = append(parts, highlightParts(title, matched)...)
	if item.Year != "" {
		parts = append(parts, styles.RowPart{Text: " (" + item.Year + ")", Foreground: &yearColor})
	}
	if kind != "" {
		parts = append(parts, styles.RowPart{Text: "  " + kind, Foreground: &kindColor})
	}

	return styles.RenderListRow(parts, selected, width)
}

// highlightParts splits title into runs of matched and unmatched characters
func highlightParts(title string, matched []int) []styles.RowPart {
	if len(matched) == 0 {
		return []styles.RowPart{{Text: title}}
	}

	set := make(map[int]bool, len(matched))
	for _, idx := range matched {
		set[idx] = true
	}

	var parts []styles.RowPart
	var run strings.Builder
	runMatched := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		part := styles.RowPart{Text: run.String()}
		if runMatched {
			part.Foreground = &matchColor
			part.Bold = true
		}
		parts = append(parts, part)
		run.Reset()
	}

	for i, r := range title {
		if set[i] != runMatched {
			flush()
			runMatched = set[i]
		}
		run.WriteRune(r)
	}
	flush()
	return parts
}

func sameIDs(a, b []domain.Summary) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}
