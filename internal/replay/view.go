package replay

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"rewind/internal/loader"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	contextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	currentStyle = lipgloss.NewStyle().Reverse(true)
	gutterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	breakStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	changedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	watchStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	sepStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	switch m.mode {
	case modeHelp:
		return m.viewHelp()
	case modeTimeline:
		return m.viewTimeline()
	case modeInspect:
		return m.viewInspect()
	}

	bodyRows := m.height - headerRows - footerRows
	if bodyRows < 1 {
		bodyRows = 1
	}
	sourceCols := m.width - m.varsWidth - 1

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString(m.viewBody(sourceCols, bodyRows))
	b.WriteString(m.viewFooter())
	return b.String()
}

func (m *Model) viewHeader() string {
	ev := m.current()

	left := titleStyle.Render(m.title)
	right := fmt.Sprintf("Step %d / %d", m.pos, len(m.events)-1)
	line1 := padBetween(left, right, m.width, lipgloss.Width(left))

	ctx := ev.Location()
	if !ev.AtModule() {
		ctx += "  scope " + ev.Scope
	}
	if ev.Depth > 0 {
		ctx += fmt.Sprintf("  depth %d", ev.Depth)
	}
	line2 := contextStyle.Render(truncate(ctx, m.width))

	return line1 + "\n" + line2 + "\n"
}

func (m *Model) viewBody(sourceCols, rows int) string {
	source := m.sourceLines(sourceCols, rows)
	vars := m.varLines(rows)

	sep := sepStyle.Render("│")
	var b strings.Builder
	for i := 0; i < rows; i++ {
		b.WriteString(pad(source[i], sourceCols))
		b.WriteString(sep)
		b.WriteString(vars[i])
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) viewFooter() string {
	hints := m.keyHints()
	line1 := hintStyle.Render(truncate(hints, m.width))

	var line2 string
	switch m.mode {
	case modeSearch, modeJump, modeBreak, modeWatch, modeInspectPrompt:
		line2 = m.input.View()
	default:
		line2 = statusStyle.Render(truncate(m.status, m.width))
	}

	line3 := truncate(m.current().Desc, m.width)
	return line1 + "\n" + line2 + "\n" + line3
}

func (m *Model) keyHints() string {
	switch m.mode {
	case modeSearch:
		return "enter run search  esc cancel"
	case modeJump:
		return "enter jump  esc cancel  (digits only)"
	case modeBreak:
		return "enter toggle breakpoint (file:line)  esc cancel"
	case modeWatch:
		return "enter toggle watch (empty lists)  esc cancel"
	case modeInspectPrompt:
		return "enter inspect name (empty: first var)  esc cancel"
	default:
		return "←/→ step  K/J page  home/end  g jump  c/r breakpoint  / search  n/p match  b break  w watch  d diff  v inspect  t timeline  h help  q quit"
	}
}

// sourceLines renders the scrollable window of the current file.
func (m *Model) sourceLines(cols, rows int) []string {
	out := make([]string, rows)
	ev := m.current()

	lines := m.src.lines(ev.File)
	if lines == nil {
		out[0] = hintStyle.Render(truncate("(source unavailable: "+displayPath(ev.File)+")", cols))
		for i := 1; i < rows; i++ {
			out[i] = ""
		}
		return out
	}

	top := m.scrollTop(len(lines), rows)
	for i := 0; i < rows; i++ {
		lineNo := top + i + 1 // 1-based
		if lineNo > len(lines) {
			out[i] = ""
			continue
		}
		marker := " "
		for _, bp := range m.bps {
			if bp.Line == lineNo && strings.HasSuffix(ev.File, bp.File) {
				marker = breakStyle.Render("●")
				break
			}
		}
		gutter := gutterStyle.Render(fmt.Sprintf("%4d ", lineNo))
		text := truncate(expandTabs(lines[lineNo-1]), cols-6)
		row := marker + gutter + text
		if lineNo == ev.Line {
			row = currentStyle.Render(pad(marker+fmt.Sprintf("%4d ", lineNo)+text, cols))
		}
		out[i] = row
	}
	return out
}

// scrollTop keeps the current line within the margin of the window.
func (m *Model) scrollTop(total, rows int) int {
	if total <= rows {
		return 0
	}
	line := m.current().Line - 1 // 0-based
	top := line - rows/2
	lo := line - (rows - 1 - m.margin)
	hi := line - m.margin
	if top < lo {
		top = lo
	}
	if top > hi {
		top = hi
	}
	if top < 0 {
		top = 0
	}
	if top > total-rows {
		top = total - rows
	}
	return top
}

// varLines renders the variables pane: current vars first, then the
// watch section.
func (m *Model) varLines(rows int) []string {
	ev := m.current()
	changed := loader.ChangedSet(m.events, m.pos)

	var lines []string
	for _, name := range sortedVarNames(ev.Vars) {
		prefix := " "
		style := lipgloss.NewStyle()
		if _, ok := changed[name]; ok {
			prefix = ">"
			style = changedStyle
		}
		if m.watched(name) {
			prefix = "@"
			style = watchStyle
		}
		entry := fmt.Sprintf("%s %s = %s", prefix, name, flatten(ev.Vars[name]))
		lines = append(lines, style.Render(truncate(entry, m.varsWidth)))
	}

	if len(m.watches) > 0 {
		lines = append(lines, "")
		lines = append(lines, hintStyle.Render(truncate("── watches ──", m.varsWidth)))
		for _, name := range m.watches {
			value, ok := ev.Vars[name]
			if !ok {
				value = "(not in scope)"
			}
			hist := loader.WatchHistory(m.events, name)
			entry := fmt.Sprintf("@ %s = %s (%d changes)", name, flatten(value), len(hist))
			lines = append(lines, watchStyle.Render(truncate(entry, m.varsWidth)))
		}
	}

	out := make([]string, rows)
	for i := 0; i < rows; i++ {
		if i < len(lines) {
			out[i] = lines[i]
		}
	}
	return out
}

func sortedVarNames(vars map[string]string) []string {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// truncate is the shared width-aware ellipsis helper.
func truncate(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}

// pad right-pads value with spaces to exactly width display columns.
func pad(value string, width int) string {
	w := lipgloss.Width(value)
	if w >= width {
		return value
	}
	return value + strings.Repeat(" ", width-w)
}

// padBetween joins left and right with enough spaces to fill width.
func padBetween(left, right string, width, leftWidth int) string {
	gap := width - leftWidth - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

// flatten keeps multi-line values on one pane row.
func flatten(s string) string {
	return strings.ReplaceAll(s, "\n", "\\n")
}

func displayPath(path string) string {
	if path == "" {
		return "(unknown file)"
	}
	return path
}
