package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/search"
	"github.com/mmcdole/flick/internal/store"
	"github.com/mmcdole/flick/internal/tui/components"
)

// Screen is the top-level view being shown
type Screen int

const (
	ScreenSearch Screen = iota
	ScreenDetail
)

// Focus targets on the search screen, in tab order
type focusTarget int

const (
	focusSearch focusTarget = iota
	focusYear
	focusType
	focusResults
	focusCount
)

// Options configures the TUI model
type Options struct {
	ShowHelp bool
	Logger   *slog.Logger
	Context  context.Context
}

// Model is the main Bubble Tea model for the application
type Model struct {
	Screen Screen
	Ready  bool

	// Collaborators: edits go through the controller, reads come from the store
	Ctrl  *search.Controller
	Store *store.Store

	ctx     context.Context
	logger  *slog.Logger
	changes <-chan struct{}

	// UI Components
	Form    components.SearchForm
	Results *components.ResultsList
	Detail  components.DetailView
	Help    help.Model

	// Last store snapshot
	state store.State

	// Dimensions
	Width  int
	Height int

	// UI state
	focus       focusTarget
	ShowHelp    bool
	StatusMsg   string
	StatusIsErr bool
}

// NewModel creates a new application model and subscribes it to st
func NewModel(ctrl *search.Controller, st *store.Store, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	changes := make(chan struct{}, 1)
	st.Subscribe(NewChannelObserver(changes))

	state := st.Snapshot()
	m := Model{
		Screen:   ScreenSearch,
		Ctrl:     ctrl,
		Store:    st,
		ctx:      opts.Context,
		logger:   opts.Logger,
		changes:  changes,
		Form:     components.NewSearchForm(state.Query),
		Results:  components.NewResultsList(),
		Detail:   components.NewDetailView(),
		Help:     help.New(),
		state:    state,
		ShowHelp: opts.ShowHelp,
	}
	m.Form.Focus(components.FieldSearch)
	m.Results.SetItems(state.Results.Items)
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		WaitForChangeCmd(m.changes),
		textinput.Blink,
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case storeChangedMsg:
		m.sync()
		return m, WaitForChangeCmd(m.changes)

	case detailLoadedMsg:
		if msg.Err != nil {
			m.logger.Debug("detail fetch finished with error", "id", msg.ID, "error", msg.Err)
		}
		m.sync()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Detail, cmd = m.Detail.Update(msg)
		return m, cmd

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd(3 * time.Second)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// Cursor blink and other input messages go to the focused field
	cmd, _ := m.Form.Update(msg)
	return m, cmd
}

// sync refreshes the cached snapshot and the components that render it
func (m *Model) sync() {
	m.state = m.Store.Snapshot()
	m.Results.SetItems(m.state.Results.Items)

	// Status is shared with searches, so a detail is pending until it arrives or fails
	loading := m.Screen == ScreenDetail && m.state.Current == nil && m.state.Status != domain.StatusFailed
	errMsg := ""
	if m.state.Status == domain.StatusFailed {
		errMsg = m.state.Error
	}
	m.Detail.SetState(m.state.Current, loading, errMsg)
}

// Pagination returns the page window for the cached snapshot
func (m Model) Pagination() search.Pagination {
	return search.Window(m.state.Query.Page, search.TotalPages(m.state.Results.TotalResults))
}

// Warnings returns the field warnings for the cached snapshot
func (m Model) Warnings() search.Warnings {
	return search.Validate(m.state.Query)
}

// State returns the cached store snapshot
func (m Model) State() store.State {
	return m.state
}
