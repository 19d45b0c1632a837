package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mmcdole/flick/internal/search"
	"github.com/mmcdole/flick/internal/tui/styles"
)

// RenderPager renders the page window as "‹ Prev 1 2 [3] 4 Next ›".
// It returns "" when there is at most one page.
func RenderPager(p search.Pagination) string {
	if !p.Visible {
		return ""
	}

	parts := make([]string, 0, len(p.Pages)+3)
	if p.HasPrev {
		parts = append(parts, styles.PagerControlStyle.Render("‹ Prev"))
	}
	for _, n := range p.Pages {
		if n == p.Page {
			parts = append(parts, styles.CurrentPageStyle.Render(strconv.Itoa(n)))
		} else {
			parts = append(parts, styles.PageStyle.Render(strconv.Itoa(n)))
		}
	}
	if p.HasNext {
		parts = append(parts, styles.PagerControlStyle.Render("Next ›"))
	}
	parts = append(parts, styles.DimStyle.Render(fmt.Sprintf("  page %d of %d", p.Page, p.Total)))

	return strings.Join(parts, "")
}

// PlainPager renders the page window without styling, for print mode
func PlainPager(p search.Pagination) string {
	if !p.Visible {
		return ""
	}

	var parts []string
	if p.HasPrev {
		parts = append(parts, "< Prev")
	}
	for _, n := range p.Pages {
		if n == p.Page {
			parts = append(parts, "["+strconv.Itoa(n)+"]")
		} else {
			parts = append(parts, strconv.Itoa(n))
		}
	}
	if p.HasNext {
		parts = append(parts, "Next >")
	}
	return strings.Join(parts, " ")
}
