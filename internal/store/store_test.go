package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mmcdole/flick/internal/adapter"
	"github.com/mmcdole/flick/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient answers with canned values and records every request
type fakeClient struct {
	mu       sync.Mutex
	requests []domain.SearchRequest
	ids      []string

	result    domain.ResultSet
	detail    domain.Detail
	searchErr error
	detailErr error

	// block, when set, holds a call until the test releases it
	block chan struct{}
}

func (f *fakeClient) SearchMovies(ctx context.Context, req domain.SearchRequest) (domain.ResultSet, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.block != nil {
		<-f.block
	}
	return f.result, f.searchErr
}

func (f *fakeClient) FetchMovieDetail(ctx context.Context, id string) (domain.Detail, error) {
	f.mu.Lock()
	f.ids = append(f.ids, id)
	f.mu.Unlock()
	return f.detail, f.detailErr
}

type countingObserver struct {
	n atomic.Int32
}

func (o *countingObserver) OnStateChange() { o.n.Add(1) }

func newTestStore(client domain.MetadataClient, opts ...Option) *Store {
	opts = append([]Option{WithLogger(adapter.NullLogger())}, opts...)
	return New(client, "Pokemon", opts...)
}

func sampleResults() domain.ResultSet {
	return domain.ResultSet{
		Items: []domain.Summary{
			{Title: "Test Movie", Year: "2021", ID: "tt1234567", Kind: domain.KindMovie, Poster: domain.NoPoster},
		},
		TotalResults: 1,
	}
}

func TestNew_InitialState(t *testing.T) {
	t.Parallel()

	s := newTestStore(&fakeClient{})
	st := s.Snapshot()

	assert.Equal(t, domain.Query{Search: "Pokemon", Page: 1}, st.Query)
	assert.Equal(t, domain.StatusIdle, st.Status)
	assert.Empty(t, st.Results.Items)
	assert.Zero(t, st.Results.TotalResults)
	assert.Nil(t, st.Current)
	assert.Empty(t, st.Error)
}

func TestSetters_ResetPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		apply func(s *Store)
		check func(t *testing.T, q domain.Query)
	}{
		{
			name:  "search",
			apply: func(s *Store) { s.SetSearch("batman") },
			check: func(t *testing.T, q domain.Query) { assert.Equal(t, "batman", q.Search) },
		},
		{
			name:  "year",
			apply: func(s *Store) { s.SetYear("1999") },
			check: func(t *testing.T, q domain.Query) { assert.Equal(t, "1999", q.Year) },
		},
		{
			name:  "type",
			apply: func(s *Store) { s.SetType(domain.KindSeries) },
			check: func(t *testing.T, q domain.Query) { assert.Equal(t, domain.KindSeries, q.Type) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestStore(&fakeClient{})
			s.SetPage(4)
			require.Equal(t, 4, s.Query().Page)

			tt.apply(s)

			q := s.Query()
			tt.check(t, q)
			assert.Equal(t, 1, q.Page)
		})
	}
}

func TestSetPage_Clamps(t *testing.T) {
	t.Parallel()

	s := newTestStore(&fakeClient{})

	s.SetPage(3)
	assert.Equal(t, 3, s.Query().Page)

	s.SetPage(0)
	assert.Equal(t, 1, s.Query().Page)

	s.SetPage(-7)
	assert.Equal(t, 1, s.Query().Page)
}

func TestSetPage_KeepsOtherFields(t *testing.T) {
	t.Parallel()

	s := newTestStore(&fakeClient{})
	s.SetSearch("alien")
	s.SetYear("1979")
	s.SetType(domain.KindMovie)
	s.SetPage(2)

	assert.Equal(t, domain.Query{Search: "alien", Year: "1979", Type: domain.KindMovie, Page: 2}, s.Query())
}

func TestFetchMovies_Success(t *testing.T) {
	t.Parallel()

	client := &fakeClient{result: sampleResults()}
	s := newTestStore(client)

	req := domain.SearchRequest{Query: "test", Page: 1}
	require.NoError(t, s.FetchMovies(context.Background(), req))

	st := s.Snapshot()
	assert.Equal(t, domain.StatusIdle, st.Status)
	assert.Empty(t, st.Error)
	assert.Equal(t, sampleResults(), st.Results)
	assert.Equal(t, []domain.SearchRequest{req}, client.requests)
}

func TestFetchMovies_LoadingWhileInFlight(t *testing.T) {
	t.Parallel()

	client := &fakeClient{result: sampleResults(), block: make(chan struct{})}
	s := newTestStore(client)

	done := make(chan error, 1)
	go func() {
		done <- s.FetchMovies(context.Background(), domain.SearchRequest{Query: "test", Page: 1})
	}()

	require.Eventually(t, func() bool {
		return s.Snapshot().Status == domain.StatusLoading
	}, time.Second, 5*time.Millisecond)
	assert.Empty(t, s.Snapshot().Error)

	close(client.block)
	require.NoError(t, <-done)
	assert.Equal(t, domain.StatusIdle, s.Snapshot().Status)
}

func TestFetchMovies_FailureKeepsResults(t *testing.T) {
	t.Parallel()

	client := &fakeClient{result: sampleResults()}
	s := newTestStore(client)
	require.NoError(t, s.FetchMovies(context.Background(), domain.SearchRequest{Query: "test", Page: 1}))

	client.searchErr = &domain.ProviderError{Message: "Movie not found!"}
	err := s.FetchMovies(context.Background(), domain.SearchRequest{Query: "nonexistent", Page: 1})
	require.Error(t, err)

	st := s.Snapshot()
	assert.Equal(t, domain.StatusFailed, st.Status)
	assert.Equal(t, "Movie not found!", st.Error)
	assert.Equal(t, sampleResults(), st.Results, "prior results stay in place")
}

func TestFetchMovies_BlankErrorFallsBack(t *testing.T) {
	t.Parallel()

	client := &fakeClient{searchErr: errors.New("")}
	s := newTestStore(client)

	require.Error(t, s.FetchMovies(context.Background(), domain.SearchRequest{Query: "x", Page: 1}))
	assert.Equal(t, domain.UnknownErrorMessage, s.Snapshot().Error)
}

func TestFetchMovies_NewFetchClearsError(t *testing.T) {
	t.Parallel()

	client := &fakeClient{searchErr: &domain.TransportError{Err: errors.New("Network error")}}
	s := newTestStore(client)

	require.Error(t, s.FetchMovies(context.Background(), domain.SearchRequest{Query: "x", Page: 1}))
	require.Equal(t, "Network error", s.Snapshot().Error)

	s.BeginSearch()
	st := s.Snapshot()
	assert.Equal(t, domain.StatusLoading, st.Status)
	assert.Empty(t, st.Error)
}

func TestFetchMovieByID_Success(t *testing.T) {
	t.Parallel()

	detail := domain.Detail{
		Summary: domain.Summary{Title: "Test Movie", ID: "tt1234567"},
		Plot:    "A test plot",
	}
	client := &fakeClient{detail: detail}
	s := newTestStore(client)

	require.NoError(t, s.FetchMovieByID(context.Background(), "tt1234567"))

	st := s.Snapshot()
	require.NotNil(t, st.Current)
	assert.Equal(t, detail, *st.Current)
	assert.Equal(t, domain.StatusIdle, st.Status)
	assert.Equal(t, []string{"tt1234567"}, client.ids)
}

func TestFetchMovieByID_FailureLeavesResults(t *testing.T) {
	t.Parallel()

	client := &fakeClient{result: sampleResults()}
	s := newTestStore(client)
	require.NoError(t, s.FetchMovies(context.Background(), domain.SearchRequest{Query: "test", Page: 1}))

	client.detailErr = &domain.ProviderError{Message: "Incorrect IMDb ID."}
	require.Error(t, s.FetchMovieByID(context.Background(), "bogus"))

	st := s.Snapshot()
	assert.Equal(t, domain.StatusFailed, st.Status)
	assert.Equal(t, "Incorrect IMDb ID.", st.Error)
	assert.Nil(t, st.Current)
	assert.Equal(t, sampleResults(), st.Results)
}

func TestBeginDetail_ClearsCurrent(t *testing.T) {
	t.Parallel()

	s := newTestStore(&fakeClient{})
	s.CompleteDetail(s.BeginDetail(), domain.Detail{Summary: domain.Summary{ID: "tt1"}})
	require.NotNil(t, s.Snapshot().Current)

	s.BeginDetail()
	assert.Nil(t, s.Snapshot().Current)
}

func TestClearDetail(t *testing.T) {
	t.Parallel()

	s := newTestStore(&fakeClient{})
	s.CompleteDetail(s.BeginDetail(), domain.Detail{Summary: domain.Summary{ID: "tt1"}})
	require.NotNil(t, s.Snapshot().Current)

	s.ClearDetail()
	assert.Nil(t, s.Snapshot().Current)
}

func TestFencing_DiscardsStaleCompletion(t *testing.T) {
	t.Parallel()

	s := newTestStore(&fakeClient{})

	older := s.BeginSearch()
	newer := s.BeginSearch()

	newest := domain.ResultSet{Items: []domain.Summary{{ID: "new"}}, TotalResults: 1}
	s.CompleteSearch(newer, newest)
	s.CompleteSearch(older, domain.ResultSet{Items: []domain.Summary{{ID: "old"}}, TotalResults: 1})

	st := s.Snapshot()
	assert.Equal(t, newest, st.Results)
	assert.Equal(t, domain.StatusIdle, st.Status)
}

func TestFencing_StaleFailureIgnored(t *testing.T) {
	t.Parallel()

	s := newTestStore(&fakeClient{})

	older := s.BeginSearch()
	newer := s.BeginSearch()
	s.FailSearch(older, errors.New("too late"))

	st := s.Snapshot()
	assert.Equal(t, domain.StatusLoading, st.Status, "newer fetch still in flight")
	assert.Empty(t, st.Error)

	s.CompleteSearch(newer, sampleResults())
	assert.Equal(t, domain.StatusIdle, s.Snapshot().Status)
}

func TestFencing_KindsAreIndependent(t *testing.T) {
	t.Parallel()

	s := newTestStore(&fakeClient{})

	search := s.BeginSearch()
	detail := s.BeginDetail()

	s.CompleteSearch(search, sampleResults())
	assert.Equal(t, sampleResults(), s.Snapshot().Results, "a detail fetch does not supersede a search")

	s.CompleteDetail(detail, domain.Detail{Summary: domain.Summary{ID: "tt1"}})
	require.NotNil(t, s.Snapshot().Current)
}

func TestWithoutFencing_LastWriteWins(t *testing.T) {
	t.Parallel()

	s := newTestStore(&fakeClient{}, WithFencing(false))

	older := s.BeginSearch()
	newer := s.BeginSearch()

	s.CompleteSearch(newer, domain.ResultSet{Items: []domain.Summary{{ID: "new"}}, TotalResults: 1})
	stale := domain.ResultSet{Items: []domain.Summary{{ID: "old"}}, TotalResults: 1}
	s.CompleteSearch(older, stale)

	assert.Equal(t, stale, s.Snapshot().Results)
}

func TestSnapshot_IsACopy(t *testing.T) {
	t.Parallel()

	s := newTestStore(&fakeClient{})
	s.CompleteSearch(s.BeginSearch(), sampleResults())
	s.CompleteDetail(s.BeginDetail(), domain.Detail{Summary: domain.Summary{Title: "Original"}})

	st := s.Snapshot()
	st.Results.Items[0].Title = "changed"
	st.Current.Title = "changed"

	again := s.Snapshot()
	assert.Equal(t, "Test Movie", again.Results.Items[0].Title)
	assert.Equal(t, "Original", again.Current.Title)
}

func TestSubscribe_NotifiesOnEveryTransition(t *testing.T) {
	t.Parallel()

	client := &fakeClient{result: sampleResults()}
	s := newTestStore(client)
	obs := &countingObserver{}
	s.Subscribe(obs)

	s.SetSearch("alien")
	assert.Equal(t, int32(1), obs.n.Load())

	require.NoError(t, s.FetchMovies(context.Background(), domain.SearchRequest{Query: "alien", Page: 1}))
	assert.Equal(t, int32(3), obs.n.Load(), "begin and complete each notify")
}

func TestSubscribe_StaleCompletionDoesNotNotify(t *testing.T) {
	t.Parallel()

	s := newTestStore(&fakeClient{})
	older := s.BeginSearch()
	s.BeginSearch()

	obs := &countingObserver{}
	s.Subscribe(obs)

	s.CompleteSearch(older, sampleResults())
	assert.Zero(t, obs.n.Load())
}
