package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/search"
	"github.com/mmcdole/flick/internal/store"
	"github.com/mmcdole/flick/internal/tui/components"
)

// Exit codes
const (
	exitFailure = 1
	exitUsage   = 2
)

var errInvalidQuery = errors.New("invalid query")

// exitError carries a process exit code
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitFailure
}

// runPrint fetches once and writes plain output. With an id it prints that
// title's details, otherwise the current page of results.
func runPrint(ctx context.Context, ctrl *search.Controller, st *store.Store, id string, out, errOut io.Writer, width int) error {
	if id != "" {
		if err := ctrl.FetchDetail(ctx, id); err != nil {
			return &exitError{code: exitFailure, err: err}
		}
		snap := st.Snapshot()
		if snap.Current == nil {
			return &exitError{code: exitFailure, err: errors.New(domain.UnknownErrorMessage)}
		}
		printDetail(out, *snap.Current, width)
		return nil
	}

	w, err := ctrl.FetchNow(ctx)
	if !w.CanFetch() {
		for _, msg := range []string{w.Search, w.Year} {
			if msg != "" {
				fmt.Fprintln(errOut, msg)
			}
		}
		return &exitError{code: exitUsage, err: errInvalidQuery}
	}
	if err != nil {
		return &exitError{code: exitFailure, err: err}
	}

	printResults(out, st.Snapshot(), width)
	return nil
}

func printResults(out io.Writer, snap store.State, width int) {
	rows := make([][]string, 0, len(snap.Results.Items))
	for _, item := range snap.Results.Items {
		rows = append(rows, []string{item.Title, item.Year, string(item.Kind), item.ID})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("TITLE", "YEAR", "TYPE", "IMDB ID").
		Rows(rows...)
	if width > 0 {
		t = t.Width(width)
	}
	fmt.Fprintln(out, t.String())

	p := search.Window(snap.Query.Page, search.TotalPages(snap.Results.TotalResults))
	fmt.Fprintf(out, "page %d of %d · %d results\n", p.Page, max(p.Total, 1), snap.Results.TotalResults)
	if pager := components.PlainPager(p); pager != "" {
		fmt.Fprintln(out, pager)
	}
}

func printDetail(out io.Writer, d domain.Detail, width int) {
	title := d.Title
	if d.Year != "" {
		title = fmt.Sprintf("%s (%s)", d.Title, d.Year)
	}
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, strings.Repeat("=", min(len([]rune(title)), max(width, 1))))

	fields := []struct{ label, value string }{
		{"IMDb ID", d.ID},
		{"Type", string(d.Kind)},
		{"Genre", d.Genre},
		{"Runtime", d.Runtime},
		{"Director", d.Director},
		{"Cast", d.Actors},
		{"Rating", d.Rating},
	}
	for _, f := range fields {
		if f.value != "" {
			fmt.Fprintf(out, "%-9s %s\n", f.label+":", f.value)
		}
	}

	poster := "no image"
	if d.HasPoster() {
		poster = d.Poster
	}
	fmt.Fprintf(out, "%-9s %s\n", "Poster:", poster)

	if d.Plot != "" && d.Plot != domain.NotAvailable {
		fmt.Fprintln(out)
		fmt.Fprintln(out, lipgloss.NewStyle().Width(max(width, 20)).Render(d.Plot))
	}
}
