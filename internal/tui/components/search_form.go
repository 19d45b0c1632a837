package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/tui/styles"
)

// Field identifies one input of the search form
type Field int

const (
	FieldSearch Field = iota
	FieldYear
	FieldType
	fieldCount
)

// FormChange reports an edit that should be applied to the query
type FormChange struct {
	Field  Field
	Search string
	Year   string
	Kind   domain.Kind
}

// SearchForm holds the search, year and type inputs
type SearchForm struct {
	inputs  [fieldCount]textinput.Model
	focus   Field
	focused bool

	kind    domain.Kind // last successfully resolved type
	kindErr string      // shown when the typed type does not resolve
	width   int
}

// NewSearchForm creates a form seeded with q
func NewSearchForm(q domain.Query) SearchForm {
	newInput := func(placeholder string, limit int) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = limit
		ti.Prompt = ""
		ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
		ti.PlaceholderStyle = styles.DimStyle
		return ti
	}

	f := SearchForm{kind: q.Type}
	f.inputs[FieldSearch] = newInput("title or keyword", 100)
	f.inputs[FieldYear] = newInput("any year", 8)
	f.inputs[FieldType] = newInput("all (movie, series, episode)", 16)

	f.inputs[FieldSearch].SetValue(q.Search)
	f.inputs[FieldYear].SetValue(q.Year)
	f.inputs[FieldType].SetValue(string(q.Type))
	return f
}

// SetWidth sets the rendered width of the form
func (f *SearchForm) SetWidth(width int) {
	f.width = width
	inputWidth := max(width-lipgloss.Width(styles.LabelStyle.Render(""))-4, 10)
	for i := range f.inputs {
		f.inputs[i].Width = inputWidth
	}
}

// Focus moves keyboard focus to field
func (f *SearchForm) Focus(field Field) tea.Cmd {
	f.Blur()
	f.focus = field
	f.focused = true
	return f.inputs[field].Focus()
}

// Blur removes keyboard focus from the form
func (f *SearchForm) Blur() {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.focused = false
}

// Focused returns the focused field and whether the form has focus
func (f SearchForm) Focused() (Field, bool) {
	return f.focus, f.focused
}

// Value returns the text of field
func (f SearchForm) Value(field Field) string {
	return f.inputs[field].Value()
}

// Kind returns the last resolved type filter
func (f SearchForm) Kind() domain.Kind {
	return f.kind
}

// CycleKind advances the type filter to the next kind
func (f *SearchForm) CycleKind() FormChange {
	f.kind = f.kind.Next()
	f.kindErr = ""
	f.inputs[FieldType].SetValue(string(f.kind))
	f.inputs[FieldType].CursorEnd()
	return FormChange{Field: FieldType, Kind: f.kind}
}

// Update routes a message to the focused input. It returns a change when
// the edit altered the query.
func (f *SearchForm) Update(msg tea.Msg) (tea.Cmd, *FormChange) {
	if !f.focused {
		return nil, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && f.focus == FieldType && keyMsg.String() == " " {
		change := f.CycleKind()
		return nil, &change
	}

	before := f.inputs[f.focus].Value()
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	after := f.inputs[f.focus].Value()
	if before == after {
		return cmd, nil
	}

	switch f.focus {
	case FieldSearch:
		return cmd, &FormChange{Field: FieldSearch, Search: after}
	case FieldYear:
		return cmd, &FormChange{Field: FieldYear, Year: after}
	default:
		return cmd, f.resolveKind(after)
	}
}

// resolveKind maps typed text onto a kind; unresolved text leaves the
// current filter in place.
func (f *SearchForm) resolveKind(text string) *FormChange {
	kind, err := domain.ParseKind(text)
	if err != nil {
		f.kindErr = "Unknown type; use movie, series or episode."
		return nil
	}
	f.kindErr = ""
	if kind == f.kind {
		return nil
	}
	f.kind = kind
	return &FormChange{Field: FieldType, Kind: kind}
}

// View renders the form with the given field warnings
func (f SearchForm) View(searchWarning, yearWarning string) string {
	rows := []string{
		f.renderRow(FieldSearch, "Search", ""),
		f.renderWarning(searchWarning),
		f.renderRow(FieldYear, "Year", ""),
		f.renderWarning(yearWarning),
		f.renderRow(FieldType, "Type", styles.DimStyle.Render("→ "+f.kind.Label())),
		f.renderWarning(f.kindErr),
	}
	return strings.Join(rows, "\n")
}

func (f SearchForm) renderRow(field Field, label, hint string) string {
	labelStyle := styles.LabelStyle
	if f.focused && f.focus == field {
		labelStyle = styles.FocusedLabelStyle
	}
	row := labelStyle.Render(label) + " " + f.inputs[field].View()
	if hint != "" {
		row += "  " + hint
	}
	return row
}

func (f SearchForm) renderWarning(msg string) string {
	indent := strings.Repeat(" ", lipgloss.Width(styles.LabelStyle.Render(""))+1)
	if msg == "" {
		return indent
	}
	return indent + styles.WarningStyle.Render(msg)
}
