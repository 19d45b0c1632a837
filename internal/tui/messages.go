package tui

// Message types for the TUI

// storeChangedMsg signals that the store has new state to render
type storeChangedMsg struct{}

// detailLoadedMsg signals that a detail fetch finished; the outcome is in the store
type detailLoadedMsg struct {
	ID  string
	Err error
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
