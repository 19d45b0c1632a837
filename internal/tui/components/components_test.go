package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPlainPager(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		page int
		of   int
		want string
	}{
		{name: "first", page: 1, of: 3, want: "[1] 2 3 Next >"},
		{name: "middle", page: 5, of: 20, want: "< Prev 1 2 3 4 [5] 6 7 8 9 Next >"},
		{name: "last", page: 20, of: 20, want: "< Prev 12 13 14 15 16 17 18 19 [20]"},
		{name: "hidden", page: 1, of: 1, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, PlainPager(search.Window(tt.page, tt.of)))
		})
	}
}

func TestRenderPager(t *testing.T) {
	t.Parallel()

	assert.Empty(t, RenderPager(search.Window(1, 1)))

	out := RenderPager(search.Window(1, 3))
	assert.Contains(t, out, "Next")
	assert.NotContains(t, out, "Prev")
	assert.Contains(t, out, "page 1 of 3")

	out = RenderPager(search.Window(3, 3))
	assert.Contains(t, out, "Prev")
	assert.NotContains(t, out, "Next")
}

func sampleItems() []domain.Summary {
	return []domain.Summary{
		{Title: "Alien", Year: "1979", ID: "tt0078748", Kind: domain.KindMovie, Poster: domain.NoPoster},
		{Title: "Aliens", Year: "1986", ID: "tt0090605", Kind: domain.KindMovie, Poster: "https://img.example/a.jpg"},
		{Title: "Predator", Year: "1987", ID: "tt0093773", Kind: domain.KindMovie},
	}
}

func TestResultsList_Navigation(t *testing.T) {
	t.Parallel()

	l := NewResultsList()
	l.SetSize(80, 20)
	l.SetFocused(true)
	l.SetItems(sampleItems())

	sel, ok := l.Selected()
	require.True(t, ok)
	assert.Equal(t, "tt0078748", sel.ID)

	l.Update(tea.KeyMsg{Type: tea.KeyDown})
	l.Update(tea.KeyMsg{Type: tea.KeyDown})
	l.Update(tea.KeyMsg{Type: tea.KeyDown})
	sel, _ = l.Selected()
	assert.Equal(t, "tt0093773", sel.ID, "cursor stops at the last item")

	// Same page again keeps the cursor
	l.SetItems(sampleItems())
	assert.Equal(t, 2, l.SelectedIndex())

	// A new page resets it
	l.SetItems(sampleItems()[:1])
	assert.Equal(t, 0, l.SelectedIndex())
}

func TestResultsList_Filter(t *testing.T) {
	t.Parallel()

	l := NewResultsList()
	l.SetSize(80, 20)
	l.SetFocused(true)
	l.SetItems(sampleItems())

	l.ToggleFilter()
	require.True(t, l.IsFilterTyping())
	for _, r := range "pred" {
		l.Update(runes(string(r)))
	}
	assert.Equal(t, 1, l.ItemCount())
	sel, ok := l.Selected()
	require.True(t, ok)
	assert.Equal(t, "Predator", sel.Title)

	// Enter keeps the filter but returns to navigation
	l.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, l.IsFiltering())
	assert.False(t, l.IsFilterTyping())

	l.ClearFilter()
	assert.Equal(t, 3, l.ItemCount())
}

func TestResultsList_EmptySelection(t *testing.T) {
	t.Parallel()

	l := NewResultsList()
	_, ok := l.Selected()
	assert.False(t, ok)
	assert.Contains(t, l.View(), "No results")
}

func TestHighlightParts(t *testing.T) {
	t.Parallel()

	parts := highlightParts("Alien", []int{0, 1})
	require.Len(t, parts, 2)
	assert.Equal(t, "Al", parts[0].Text)
	assert.NotNil(t, parts[0].Foreground)
	assert.Equal(t, "ien", parts[1].Text)
	assert.Nil(t, parts[1].Foreground)

	parts = highlightParts("Alien", nil)
	require.Len(t, parts, 1)
	assert.Equal(t, "Alien", parts[0].Text)
}

func TestSearchForm_Edits(t *testing.T) {
	t.Parallel()

	f := NewSearchForm(domain.Query{Search: "Pokemon", Page: 1})
	f.Focus(FieldSearch)

	_, change := f.Update(runes("x"))
	require.NotNil(t, change)
	assert.Equal(t, FieldSearch, change.Field)
	assert.Equal(t, "Pokemonx", change.Search)

	f.Focus(FieldYear)
	_, change = f.Update(runes("1"))
	require.NotNil(t, change)
	assert.Equal(t, FieldYear, change.Field)
	assert.Equal(t, "1", change.Year)
}

func TestSearchForm_TypeField(t *testing.T) {
	t.Parallel()

	f := NewSearchForm(domain.Query{Search: "x", Page: 1})
	f.Focus(FieldType)

	// Space cycles through kinds
	_, change := f.Update(runes(" "))
	require.NotNil(t, change)
	assert.Equal(t, domain.KindMovie, change.Kind)
	assert.Equal(t, "movie", f.Value(FieldType))

	// Typing resolves via ParseKind
	f = NewSearchForm(domain.Query{Search: "x", Page: 1})
	f.Focus(FieldType)
	var last *FormChange
	for _, r := range "series" {
		if _, c := f.Update(runes(string(r))); c != nil {
			last = c
		}
	}
	require.NotNil(t, last)
	assert.Equal(t, domain.KindSeries, f.Kind())

	// Unresolvable text keeps the previous kind
	f.Update(runes("zzz"))
	assert.Equal(t, domain.KindSeries, f.Kind())
	assert.Contains(t, f.View("", ""), "Unknown type")
}

func TestRenderDetail(t *testing.T) {
	t.Parallel()

	out := RenderDetail(domain.Detail{
		Summary:  domain.Summary{Title: "Alien", Year: "1979", ID: "tt0078748", Kind: domain.KindMovie, Poster: domain.NoPoster},
		Genre:    "Horror, Sci-Fi",
		Director: "Ridley Scott",
		Plot:     "The crew of a commercial spacecraft encounters a deadly lifeform.",
		Rating:   "8.5",
	}, 60)

	assert.Contains(t, out, "Alien (1979)")
	assert.Contains(t, out, "tt0078748")
	assert.Contains(t, out, "Ridley Scott")
	assert.Contains(t, out, "no image")
	assert.Contains(t, out, "8.5")
	assert.Contains(t, out, "deadly")
}

func TestDetailView_States(t *testing.T) {
	t.Parallel()

	d := NewDetailView()
	d.SetSize(80, 24)

	d.SetState(nil, true, "")
	assert.True(t, d.Loading())
	assert.Contains(t, d.View(), "Loading...")

	d.SetState(nil, false, "Incorrect IMDb ID.")
	assert.Contains(t, d.View(), "Error: Incorrect IMDb ID.")
	assert.Contains(t, d.View(), "esc: back")
}
