package replay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"rewind/internal/loader"
)

var overlayStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("6")).
	Padding(0, 1)

// overlay centers boxed content on the full screen.
func (m *Model) overlay(title, content string) string {
	boxWidth := m.width - 8
	if boxWidth > 76 {
		boxWidth = 76
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(content)
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("press any key to return"))
	box := overlayStyle.Width(boxWidth).Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) viewHelp() string {
	rows := []struct{ key, what string }{
		{"→ j space", "step forward"},
		{"← k", "step backward"},
		{"J / pgdn, K / pgup", "page forward / backward"},
		{"home / end", "first / last step"},
		{"g", "jump to step"},
		{"b", "toggle breakpoint (file:line)"},
		{"c / r", "continue / reverse to breakpoint"},
		{"/ or f", "search"},
		{"n / p", "next / previous match"},
		{"w", "toggle watch (empty input lists watches)"},
		{"v", "inspect a variable"},
		{"d", "diff against previous step"},
		{"t", "timeline"},
		{"q", "quit"},
	}
	var b strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&b, "%-22s %s\n", row.key, row.what)
	}
	return m.overlay("Keys", strings.TrimRight(b.String(), "\n"))
}

func (m *Model) viewTimeline() string {
	st := loader.Summarize(m.events)

	barWidth := 60
	if barWidth > m.width-16 {
		barWidth = m.width - 16
	}
	if barWidth < 10 {
		barWidth = 10
	}
	marker := 0
	if len(m.events) > 1 {
		marker = m.pos * (barWidth - 1) / (len(m.events) - 1)
	}
	bar := strings.Repeat("─", marker) + "●" + strings.Repeat("─", barWidth-1-marker)

	var b strings.Builder
	fmt.Fprintf(&b, "[%s]\n\n", bar)
	fmt.Fprintf(&b, "step %d of %d", m.pos, st.TotalSteps-1)
	if st.DurationSeconds > 0 {
		fmt.Fprintf(&b, "  ·  %.3fs traced", st.DurationSeconds)
	}
	fmt.Fprintf(&b, "  ·  max depth %d\n\n", st.MaxDepth)

	b.WriteString("files:\n")
	for _, file := range loader.FileList(m.events) {
		fmt.Fprintf(&b, "  %s\n", file)
	}
	b.WriteString("scopes:\n")
	for _, scope := range loader.ScopeList(m.events) {
		fmt.Fprintf(&b, "  %s\n", scope)
	}
	return m.overlay("Timeline", strings.TrimRight(b.String(), "\n"))
}

func (m *Model) viewInspect() string {
	name := m.inspectName
	ev := m.current()

	wrapWidth := 60
	var b strings.Builder
	value, ok := ev.Vars[name]
	if !ok {
		fmt.Fprintf(&b, "%s is not in scope at step %d\n", name, m.pos)
	} else {
		b.WriteString(wordwrap.String(value, wrapWidth))
		b.WriteString("\n")
	}

	hist := loader.WatchHistory(m.events, name)
	if len(hist) > 0 {
		fmt.Fprintf(&b, "\nhistory (%d changes):\n", len(hist))
		for _, wp := range hist {
			cursor := "  "
			if wp.Step == m.pos {
				cursor = "▸ "
			}
			fmt.Fprintf(&b, "%sstep %-6d %s\n", cursor, wp.Step, truncate(wp.Value, wrapWidth-14))
		}
	} else {
		b.WriteString("\nnever captured in this trace\n")
	}
	return m.overlay("Inspect "+name, strings.TrimRight(b.String(), "\n"))
}
