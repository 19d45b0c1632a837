package search

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/metrics"
	"github.com/mmcdole/flick/internal/store"
)

// DefaultDelay is the quiet period before a settled query is fetched
const DefaultDelay = 300 * time.Millisecond

// Controller stages query edits in the store and dispatches a search once
// edits have settled and the query passes validation. In-flight searches are
// never cancelled by later edits.
type Controller struct {
	store    *store.Store
	debounce *Debouncer
	ctx      context.Context
	logger   *slog.Logger
	delay    time.Duration

	// tracks dispatched fetch goroutines for Wait
	inflight sync.WaitGroup
}

// ControllerOption configures a Controller
type ControllerOption func(*Controller)

// WithDelay sets the debounce quiet period
func WithDelay(d time.Duration) ControllerOption {
	return func(c *Controller) {
		if d >= 0 {
			c.delay = d
		}
	}
}

// WithLogger sets the controller logger
func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithContext sets the base context passed to dispatched fetches
func WithContext(ctx context.Context) ControllerOption {
	return func(c *Controller) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

// NewController creates a controller for st
func NewController(st *store.Store, opts ...ControllerOption) *Controller {
	c := &Controller{
		store:  st,
		ctx:    context.Background(),
		logger: slog.Default(),
		delay:  DefaultDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.debounce = NewDebouncer(c.delay)
	return c
}

// Start schedules the first search for the initial query
func (c *Controller) Start() {
	c.schedule()
}

// Close cancels any pending search. In-flight searches still complete.
func (c *Controller) Close() {
	c.debounce.Stop()
}

// Wait blocks until every dispatched search has completed
func (c *Controller) Wait() {
	c.inflight.Wait()
}

// Query returns the current query parameters
func (c *Controller) Query() domain.Query {
	return c.store.Query()
}

// Warnings returns the validation warnings for the current query
func (c *Controller) Warnings() Warnings {
	return Validate(c.store.Query())
}

// Pagination returns the page window for the current query and results
func (c *Controller) Pagination() Pagination {
	st := c.store.Snapshot()
	return Window(st.Query.Page, TotalPages(st.Results.TotalResults))
}

// SetSearch updates the search text and restarts the debounce
func (c *Controller) SetSearch(search string) {
	c.store.SetSearch(search)
	c.schedule()
}

// SetYear updates the year filter and restarts the debounce
func (c *Controller) SetYear(year string) {
	c.store.SetYear(year)
	c.schedule()
}

// SetType updates the type filter and restarts the debounce
func (c *Controller) SetType(kind domain.Kind) {
	c.store.SetType(kind)
	c.schedule()
}

// SetPage moves to page and restarts the debounce
func (c *Controller) SetPage(page int) {
	c.store.SetPage(page)
	c.schedule()
}

// NextPage advances one page when a next page exists
func (c *Controller) NextPage() bool {
	p := c.Pagination()
	if !p.HasNext {
		return false
	}
	c.SetPage(p.Page + 1)
	return true
}

// PrevPage goes back one page when a previous page exists
func (c *Controller) PrevPage() bool {
	p := c.Pagination()
	if !p.HasPrev {
		return false
	}
	c.SetPage(p.Page - 1)
	return true
}

// FetchDetail loads one detail record. It is not debounced and blocks until
// the provider answers.
func (c *Controller) FetchDetail(ctx context.Context, id string) error {
	return c.store.FetchMovieByID(ctx, id)
}

// ClearDetail drops the current detail record
func (c *Controller) ClearDetail() {
	c.store.ClearDetail()
}

// FetchNow validates the current query and runs the search synchronously,
// bypassing the debounce. It returns the warnings when the gate fails.
func (c *Controller) FetchNow(ctx context.Context) (Warnings, error) {
	c.debounce.Cancel()
	q := c.store.Query()
	w := Validate(q)
	if !w.CanFetch() {
		metrics.DebounceOutcomesTotal.WithLabelValues(metrics.OutcomeSkipped).Inc()
		return w, nil
	}
	metrics.DebounceOutcomesTotal.WithLabelValues(metrics.OutcomeDispatch).Inc()
	return w, c.store.FetchMovies(ctx, q.Request())
}

func (c *Controller) schedule() {
	c.debounce.Schedule(c.fire)
}

// fire runs on the debounce timer goroutine
func (c *Controller) fire() {
	q := c.store.Query()
	if w := Validate(q); !w.CanFetch() {
		metrics.DebounceOutcomesTotal.WithLabelValues(metrics.OutcomeSkipped).Inc()
		c.logger.Debug("search skipped", "search_warning", w.Search, "year_warning", w.Year)
		return
	}

	req := q.Request()
	metrics.DebounceOutcomesTotal.WithLabelValues(metrics.OutcomeDispatch).Inc()
	c.logger.Debug("search dispatched", "query", req.Query, "year", req.Year, "type", string(req.Type), "page", req.Page)

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		// Failures are recorded in the store
		_ = c.store.FetchMovies(c.ctx, req)
	}()
}
