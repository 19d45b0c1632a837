package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/metrics"
)

// State is an immutable copy of the store contents
type State struct {
	Query   domain.Query
	Results domain.ResultSet
	Current *domain.Detail // nil when no detail record is loaded
	Status  domain.Status
	Error   string // set only when Status is StatusFailed
}

// Token identifies one started fetch
type Token uint64

// Store is the application state container. It is created by the
// composition root and shared by pointer; it is safe for concurrent use.
type Store struct {
	client domain.MetadataClient
	logger *slog.Logger
	fence  bool

	mu    sync.RWMutex
	state State

	// Latest started fetch per kind
	searchGen Token
	detailGen Token

	observerMu sync.RWMutex
	observers  []domain.StateObserver
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the store logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFencing controls whether completions superseded by a newer fetch of the
// same kind are discarded. Disabled, the last completion wins regardless of
// start order.
func WithFencing(enabled bool) Option {
	return func(s *Store) {
		s.fence = enabled
	}
}

// New creates a store whose query starts with the seed search text
func New(client domain.MetadataClient, seed string, opts ...Option) *Store {
	s := &Store{
		client: client,
		logger: slog.Default(),
		fence:  true,
		state: State{
			Query:  domain.Query{Search: seed, Page: 1},
			Status: domain.StatusIdle,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers an observer for state changes
func (s *Store) Subscribe(o domain.StateObserver) {
	s.observerMu.Lock()
	defer s.observerMu.Unlock()
	s.observers = append(s.observers, o)
}

func (s *Store) notify() {
	s.observerMu.RLock()
	defer s.observerMu.RUnlock()
	for _, o := range s.observers {
		o.OnStateChange()
	}
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.state
	st.Results.Items = append([]domain.Summary(nil), s.state.Results.Items...)
	if s.state.Current != nil {
		detail := *s.state.Current
		st.Current = &detail
	}
	return st
}

// Query returns the current query parameters
func (s *Store) Query() domain.Query {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Query
}

// update applies fn under the write lock, then notifies observers
func (s *Store) update(fn func(st *State)) {
	s.mu.Lock()
	fn(&s.state)
	s.mu.Unlock()
	s.notify()
}

// === Query setters ===

// SetSearch replaces the search text and returns to page 1
func (s *Store) SetSearch(search string) {
	s.update(func(st *State) {
		st.Query.Search = search
		st.Query.Page = 1
	})
}

// SetYear replaces the year filter and returns to page 1
func (s *Store) SetYear(year string) {
	s.update(func(st *State) {
		st.Query.Year = year
		st.Query.Page = 1
	})
}

// SetType replaces the type filter and returns to page 1
func (s *Store) SetType(kind domain.Kind) {
	s.update(func(st *State) {
		st.Query.Type = kind
		st.Query.Page = 1
	})
}

// SetPage moves to page; values below 1 become 1
func (s *Store) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.update(func(st *State) {
		st.Query.Page = page
	})
}

// ClearDetail drops the current detail record (navigation away from it)
func (s *Store) ClearDetail() {
	s.update(func(st *State) {
		st.Current = nil
	})
}

// === Search fetch ===

// FetchMovies runs a search and records its outcome. It blocks until the
// provider answers; callers run it off the UI loop. The returned error is the
// provider or transport error, already recorded in the state.
func (s *Store) FetchMovies(ctx context.Context, req domain.SearchRequest) error {
	token := s.BeginSearch()
	result, err := s.client.SearchMovies(ctx, req)
	if err != nil {
		s.FailSearch(token, err)
		return err
	}
	s.CompleteSearch(token, result)
	return nil
}

// BeginSearch marks a search as started
func (s *Store) BeginSearch() Token {
	var token Token
	s.update(func(st *State) {
		s.searchGen++
		token = s.searchGen
		st.Status = domain.StatusLoading
		st.Error = ""
	})
	return token
}

// CompleteSearch replaces the result set
func (s *Store) CompleteSearch(token Token, result domain.ResultSet) {
	applied := s.settle(token, &s.searchGen, "search", func(st *State) {
		st.Status = domain.StatusIdle
		st.Results = domain.ResultSet{
			Items:        append([]domain.Summary(nil), result.Items...),
			TotalResults: result.TotalResults,
		}
	})
	if applied {
		s.logger.Debug("search results applied", "items", len(result.Items), "total", result.TotalResults)
	}
}

// FailSearch records a search failure; prior results stay in place
func (s *Store) FailSearch(token Token, err error) {
	msg := domain.ErrorMessage(err)
	if s.settle(token, &s.searchGen, "search", failWith(msg)) {
		s.logger.Warn("search failed", "error", msg)
	}
}

// === Detail fetch ===

// FetchMovieByID loads one detail record and records its outcome
func (s *Store) FetchMovieByID(ctx context.Context, id string) error {
	token := s.BeginDetail()
	detail, err := s.client.FetchMovieDetail(ctx, id)
	if err != nil {
		s.FailDetail(token, err)
		return err
	}
	s.CompleteDetail(token, detail)
	return nil
}

// BeginDetail marks a detail fetch as started and clears the current record
func (s *Store) BeginDetail() Token {
	var token Token
	s.update(func(st *State) {
		s.detailGen++
		token = s.detailGen
		st.Status = domain.StatusLoading
		st.Error = ""
		st.Current = nil
	})
	return token
}

// CompleteDetail sets the current detail record
func (s *Store) CompleteDetail(token Token, detail domain.Detail) {
	s.settle(token, &s.detailGen, "detail", func(st *State) {
		st.Status = domain.StatusIdle
		st.Current = &detail
	})
}

// FailDetail records a detail failure; search results are untouched
func (s *Store) FailDetail(token Token, err error) {
	msg := domain.ErrorMessage(err)
	if s.settle(token, &s.detailGen, "detail", failWith(msg)) {
		s.logger.Warn("detail fetch failed", "error", msg)
	}
}

func failWith(msg string) func(st *State) {
	if msg == "" {
		msg = domain.UnknownErrorMessage
	}
	return func(st *State) {
		st.Status = domain.StatusFailed
		st.Error = msg
	}
}

// settle applies a completion unless fencing is on and a newer fetch of the
// same kind has started since token was issued
func (s *Store) settle(token Token, gen *Token, kind string, fn func(st *State)) bool {
	s.mu.Lock()
	if s.fence && token != *gen {
		latest := *gen
		s.mu.Unlock()
		metrics.StaleCompletionsTotal.WithLabelValues(kind).Inc()
		s.logger.Debug("discarding stale completion", "kind", kind, "token", token, "latest", latest)
		return false
	}
	fn(&s.state)
	s.mu.Unlock()
	s.notify()
	return true
}
