package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/flick/internal/adapter"
	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/search"
	"github.com/mmcdole/flick/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	mu       sync.Mutex
	requests []domain.SearchRequest
	result   domain.ResultSet
	detail   domain.Detail
}

func (c *stubClient) SearchMovies(ctx context.Context, req domain.SearchRequest) (domain.ResultSet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, req)
	return c.result, nil
}

func (c *stubClient) FetchMovieDetail(ctx context.Context, id string) (domain.Detail, error) {
	return c.detail, nil
}

func newTestModel(t *testing.T, client *stubClient) (Model, *store.Store) {
	t.Helper()
	st := store.New(client, "alien", store.WithLogger(adapter.NullLogger()))
	// Long delay: tests drive fetches explicitly
	ctrl := search.NewController(st, search.WithDelay(time.Hour), search.WithLogger(adapter.NullLogger()))
	t.Cleanup(ctrl.Close)

	m := NewModel(ctrl, st, Options{ShowHelp: true, Logger: adapter.NullLogger()})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model), st
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func sampleResults() domain.ResultSet {
	return domain.ResultSet{
		Items: []domain.Summary{
			{Title: "Alien", Year: "1979", ID: "tt0078748", Kind: domain.KindMovie, Poster: domain.NoPoster},
			{Title: "Aliens", Year: "1986", ID: "tt0090605", Kind: domain.KindMovie, Poster: domain.NoPoster},
		},
		TotalResults: 42,
	}
}

func TestModel_TypingUpdatesQuery(t *testing.T) {
	t.Parallel()

	m, st := newTestModel(t, &stubClient{})
	st.SetPage(3)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	q := st.Query()
	assert.Equal(t, "aliens", q.Search)
	assert.Equal(t, 1, q.Page, "search edits reset the page")

	m = press(t, m,
		tea.KeyMsg{Type: tea.KeyTab},
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("19")},
	)
	assert.Equal(t, "19", st.Query().Year)

	m = press(t, m, storeChangedMsg{})
	assert.Equal(t, search.YearFormatWarning, m.Warnings().Year)
	assert.Contains(t, m.View(), search.YearFormatWarning)
}

func TestModel_StoreChangeRefreshesResults(t *testing.T) {
	t.Parallel()

	client := &stubClient{result: sampleResults()}
	m, st := newTestModel(t, client)

	require.NoError(t, st.FetchMovies(context.Background(), domain.SearchRequest{Query: "alien", Page: 1}))
	m = press(t, m, storeChangedMsg{})

	assert.Len(t, m.State().Results.Items, 2)
	p := m.Pagination()
	assert.Equal(t, 5, p.Total)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, p.Pages)

	view := m.View()
	assert.Contains(t, view, "Aliens")
	assert.Contains(t, view, "42 results")
	assert.Contains(t, view, "Next")
}

func TestModel_PagerKeysMovePage(t *testing.T) {
	t.Parallel()

	client := &stubClient{result: sampleResults()}
	m, st := newTestModel(t, client)
	require.NoError(t, st.FetchMovies(context.Background(), domain.SearchRequest{Query: "alien", Page: 1}))

	m = press(t, m,
		storeChangedMsg{},
		tea.KeyMsg{Type: tea.KeyEnter}, // leave the form
		tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyRight},
	)
	assert.Equal(t, 3, st.Query().Page)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 2, st.Query().Page)
	_ = m
}

func TestModel_OpenAndCloseDetail(t *testing.T) {
	t.Parallel()

	client := &stubClient{
		result: sampleResults(),
		detail: domain.Detail{Summary: domain.Summary{Title: "Aliens", ID: "tt0090605"}, Plot: "Ripley returns."},
	}
	m, st := newTestModel(t, client)
	require.NoError(t, st.FetchMovies(context.Background(), domain.SearchRequest{Query: "alien", Page: 1}))

	m = press(t, m,
		storeChangedMsg{},
		tea.KeyMsg{Type: tea.KeyEnter},
		tea.KeyMsg{Type: tea.KeyDown},
	)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.Equal(t, ScreenDetail, m.Screen)
	assert.Contains(t, m.View(), "Loading...")

	// Run the fetch directly instead of through the batch
	msg := FetchDetailCmd(context.Background(), m.Ctrl, "tt0090605")()
	m = press(t, m, msg)
	require.NotNil(t, m.State().Current)
	assert.Contains(t, m.View(), "Ripley returns.")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ScreenSearch, m.Screen)
	assert.Nil(t, st.Snapshot().Current, "leaving the detail screen clears it")
}

func TestModel_TypeFieldCycles(t *testing.T) {
	t.Parallel()

	m, st := newTestModel(t, &stubClient{})
	m = press(t, m,
		tea.KeyMsg{Type: tea.KeyShiftTab}, // results
		tea.KeyMsg{Type: tea.KeyShiftTab}, // type
		tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}},
	)
	assert.Equal(t, domain.KindMovie, st.Query().Type)
	_ = m
}

func TestModel_QuitKeys(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, &stubClient{})

	// q types into the focused search field
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.Equal(t, "alienq", next.(Model).Store.Query().Search)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestChannelObserver_NonBlocking(t *testing.T) {
	t.Parallel()

	ch := make(chan struct{}, 1)
	obs := NewChannelObserver(ch)

	obs.OnStateChange()
	obs.OnStateChange() // would block without the default branch

	_, ok := <-ch
	assert.True(t, ok)
	assert.Empty(t, ch)
}
