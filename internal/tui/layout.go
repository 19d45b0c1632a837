package tui

// Vertical chrome on the search screen
const (
	HeaderHeight = 1
	FormHeight   = 6 // three fields, each with a warning line
	StatusHeight = 1
	PagerHeight  = 1
	FooterHeight = 1

	MinListHeight = 5
)

// listHeight returns the rows available to the results list
func (m Model) listHeight() int {
	h := m.Height - HeaderHeight - FormHeight - StatusHeight - PagerHeight - m.footerHeight()
	return max(h, MinListHeight)
}

func (m Model) footerHeight() int {
	if m.ShowHelp && m.Help.ShowAll {
		rows := 0
		for _, col := range Keys.FullHelp() {
			rows = max(rows, len(col))
		}
		return rows
	}
	return FooterHeight
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	m.Help.Width = m.Width
	m.Form.SetWidth(m.Width)
	m.Results.SetSize(m.Width, m.listHeight())
	m.Detail.SetSize(m.Width, m.Height-HeaderHeight-m.footerHeight())
}
