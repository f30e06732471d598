package replay

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"rewind/internal/loader"
)

// dispatchKey routes one keypress through the input state machine.
func (m *Model) dispatchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// EOF on stdin behaves as quit regardless of mode.
	if key == "ctrl+d" || key == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case modeNormal:
		return m.normalKey(key)
	case modeHelp, modeTimeline, modeInspect:
		// Любая клавиша закрывает оверлей
		m.mode = modeNormal
		return m, nil
	default:
		return m.promptKey(msg)
	}
}

func (m *Model) normalKey(key string) (tea.Model, tea.Cmd) {
	m.status = ""
	switch key {
	case "q", "esc":
		return m, tea.Quit

	case "right", "j", " ":
		m.setPos(m.pos + 1)
	case "left", "k":
		m.setPos(m.pos - 1)
	case "pgdown", "J":
		m.setPos(m.pos + m.pageStep)
	case "pgup", "K":
		m.setPos(m.pos - m.pageStep)
	case "home":
		m.setPos(0)
	case "end":
		m.setPos(len(m.events) - 1)

	case "c":
		if pos, ok := ContinueTo(m.events, m.bps, m.pos); ok {
			m.setPos(pos)
		} else {
			m.say("No breakpoint hit")
		}
	case "r":
		if pos, ok := ReverseTo(m.events, m.bps, m.pos); ok {
			m.setPos(pos)
		} else {
			m.say("No breakpoint hit")
		}

	case "n":
		m.stepResult(+1)
	case "N", "p":
		m.stepResult(-1)

	case "d":
		m.showDiff()

	case "/", "f":
		m.openPrompt(modeSearch, "search: ")
	case "g":
		m.openPrompt(modeJump, "step: ")
	case "b":
		m.openPrompt(modeBreak, "break file:line: ")
	case "w":
		m.openPrompt(modeWatch, "watch: ")
	case "v":
		m.openPrompt(modeInspectPrompt, "inspect: ")

	case "h":
		m.mode = modeHelp
	case "t":
		m.mode = modeTimeline
	}
	return m, nil
}

func (m *Model) openPrompt(target mode, prompt string) {
	m.mode = target
	m.input.Prompt = prompt
	m.input.SetValue("")
	m.input.Focus()
}

func (m *Model) closePrompt() {
	m.mode = modeNormal
	m.input.Blur()
}

// promptKey handles the accumulate / commit / cancel cycle shared by
// every prompt mode.
func (m *Model) promptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePrompt()
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		committed := m.mode
		m.closePrompt()
		m.commitPrompt(committed, value)
		return m, nil
	}

	if msg.Type == tea.KeyRunes {
		msg.Runes = m.filterRunes(msg.Runes)
		if len(msg.Runes) == 0 {
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// filterRunes keeps printable ASCII; the jump prompt narrows further to
// digits.
func (m *Model) filterRunes(runes []rune) []rune {
	out := runes[:0]
	for _, r := range runes {
		if r < 0x20 || r > 0x7e {
			continue
		}
		if m.mode == modeJump && (r < '0' || r > '9') {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (m *Model) commitPrompt(committed mode, value string) {
	switch committed {
	case modeSearch:
		m.runSearch(value)
	case modeJump:
		m.runJump(value)
	case modeBreak:
		m.runBreak(value)
	case modeWatch:
		m.runWatch(value)
	case modeInspectPrompt:
		m.runInspect(value)
	}
}

func (m *Model) runSearch(pattern string) {
	if pattern == "" {
		return
	}
	m.pattern = pattern
	m.results = Search(m.events, pattern)
	if len(m.results) == 0 {
		m.say("No matches for %q", pattern)
		return
	}
	m.resultIdx = firstResultFrom(m.results, m.pos)
	m.setPos(m.results[m.resultIdx])
	m.say("%d matches for %q", len(m.results), pattern)
}

func (m *Model) stepResult(dir int) {
	if len(m.results) == 0 {
		m.say("No search results")
		return
	}
	m.resultIdx = cycleResult(m.results, m.resultIdx, dir)
	m.setPos(m.results[m.resultIdx])
	m.say("match %d/%d for %q", m.resultIdx+1, len(m.results), m.pattern)
}

func (m *Model) runJump(value string) {
	if value == "" {
		return
	}
	step, err := strconv.Atoi(value)
	if err != nil {
		m.say("Not a step number: %q", value)
		return
	}
	if step < 0 || step >= len(m.events) {
		m.say("Step %d out of range 0..%d", step, len(m.events)-1)
		return
	}
	m.pos = step
}

func (m *Model) runBreak(value string) {
	if value == "" {
		m.listBreakpoints()
		return
	}
	bp, err := ParseBreakpoint(value)
	if err != nil {
		m.say("%v", err)
		return
	}
	if m.toggleBreakpoint(bp) {
		m.say("Breakpoint set at %s", bp)
	} else {
		m.say("Breakpoint removed at %s", bp)
	}
}

func (m *Model) listBreakpoints() {
	if len(m.bps) == 0 {
		m.say("No breakpoints")
		return
	}
	specs := make([]string, len(m.bps))
	for i, bp := range m.bps {
		specs[i] = bp.String()
	}
	m.say("Breakpoints: %s", strings.Join(specs, " "))
}

func (m *Model) runWatch(value string) {
	if value == "" {
		if len(m.watches) == 0 {
			m.say("No watches")
		} else {
			m.say("Watches: %s", strings.Join(m.watches, " "))
		}
		return
	}
	if m.toggleWatch(value) {
		m.say("Watching %s", value)
	} else {
		m.say("Unwatched %s", value)
	}
}

func (m *Model) runInspect(value string) {
	if value == "" {
		// По умолчанию — первая переменная текущего шага
		names := sortedVarNames(m.current().Vars)
		if len(names) == 0 {
			m.say("Nothing to inspect at this step")
			return
		}
		value = names[0]
	}
	m.inspectName = value
	m.mode = modeInspect
}

func (m *Model) showDiff() {
	changes := loader.ChangedNames(m.events, m.pos)
	if len(changes) == 0 {
		m.say("No changes at this step")
		return
	}
	parts := make([]string, len(changes))
	for i, c := range changes {
		parts[i] = c.Sigil() + c.Name
	}
	m.say("%s", strings.Join(parts, " "))
}
