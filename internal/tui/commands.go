package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/flick/internal/search"
)

// Command factories for async operations

// WaitForChangeCmd blocks until the store signals a change
func WaitForChangeCmd(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

// FetchDetailCmd loads one detail record through the controller
func FetchDetailCmd(ctx context.Context, ctrl *search.Controller, id string) tea.Cmd {
	return func() tea.Msg {
		err := ctrl.FetchDetail(ctx, id)
		return detailLoadedMsg{ID: id, Err: err}
	}
}

// ClearStatusCmd clears the status message after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// FetchNowCmd runs the current query immediately, bypassing the debounce
func FetchNowCmd(ctx context.Context, ctrl *search.Controller) tea.Cmd {
	return func() tea.Msg {
		// Fetch failures are recorded in the store
		w, _ := ctrl.FetchNow(ctx)
		if w.CanFetch() {
			return nil
		}
		msg := w.Search
		if msg == "" {
			msg = w.Year
		}
		return StatusMsg{Message: msg, IsError: true}
	}
}
