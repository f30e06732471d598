package replay

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"rewind/internal/loader"
	"rewind/internal/trace"
)

const (
	headerRows    = 2
	footerRows    = 3
	minSourceCols = 30
	minBodyRows   = 5

	defaultVarsWidth = 35
	defaultPageStep  = 10
	defaultMargin    = 3
)

// MinHeight is the smallest terminal height the layout fits in.
const MinHeight = headerRows + footerRows + minBodyRows

// ErrEmptyTrace is returned by New for a trace with no events.
var ErrEmptyTrace = errors.New("trace is empty")

// Options tunes the replayer layout. Zero values take defaults.
type Options struct {
	Title     string
	VarsWidth int
	PageStep  int
	Margin    int
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "rewind"
	}
	if o.VarsWidth <= 0 {
		o.VarsWidth = defaultVarsWidth
	}
	if o.PageStep <= 0 {
		o.PageStep = defaultPageStep
	}
	if o.Margin <= 0 {
		o.Margin = defaultMargin
	}
	return o
}

// MinWidth returns the narrowest terminal the layout fits in for the
// given options.
func MinWidth(opts Options) int {
	opts = opts.withDefaults()
	return minSourceCols + 1 + opts.VarsWidth
}

type mode uint8

const (
	modeNormal mode = iota
	modeSearch
	modeJump
	modeBreak
	modeWatch
	modeInspectPrompt
	modeHelp
	modeTimeline
	modeInspect
)

// Model is the replayer state machine: one cooperative loop of
// render -> key -> dispatch.
type Model struct {
	events []trace.Event
	title  string

	pos    int
	width  int
	height int

	varsWidth int
	pageStep  int
	margin    int

	mode   mode
	input  textinput.Model
	status string

	bps     []Breakpoint
	watches []string

	pattern   string
	results   []int
	resultIdx int

	inspectName string

	src *sourceCache
}

// New builds a model over a loaded trace.
func New(events []trace.Event, opts Options) (*Model, error) {
	if len(events) == 0 {
		return nil, ErrEmptyTrace
	}
	opts = opts.withDefaults()
	src, err := newSourceCache()
	if err != nil {
		return nil, err
	}
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 256
	return &Model{
		events:    events,
		title:     opts.Title,
		varsWidth: opts.VarsWidth,
		pageStep:  opts.PageStep,
		margin:    opts.Margin,
		input:     ti,
		src:       src,
	}, nil
}

// Run drives the model in the alternate screen until the user quits.
func Run(events []trace.Event, opts Options) error {
	m, err := New(events, opts)
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

type warmedMsg struct{}

func (m *Model) Init() tea.Cmd {
	paths := loader.FileList(m.events)
	return func() tea.Msg {
		m.src.warm(paths)
		return warmedMsg{}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case warmedMsg:
		return m, nil
	case tea.KeyMsg:
		return m.dispatchKey(msg)
	}
	return m, nil
}

// current returns the event under the cursor.
func (m *Model) current() *trace.Event {
	return &m.events[m.pos]
}

// setPos clamps and assigns the cursor.
func (m *Model) setPos(pos int) {
	m.pos = clampStep(pos, len(m.events))
}

// say sets the transient footer message.
func (m *Model) say(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
}

// watched reports whether name is on the watch list.
func (m *Model) watched(name string) bool {
	for _, w := range m.watches {
		if w == name {
			return true
		}
	}
	return false
}

// toggleWatch adds or removes a watch, reporting the new state.
func (m *Model) toggleWatch(name string) bool {
	for i, w := range m.watches {
		if w == name {
			m.watches = append(m.watches[:i], m.watches[i+1:]...)
			return false
		}
	}
	m.watches = append(m.watches, name)
	return true
}

// toggleBreakpoint adds or removes an identical breakpoint.
func (m *Model) toggleBreakpoint(bp Breakpoint) bool {
	for i, existing := range m.bps {
		if existing == bp {
			m.bps = append(m.bps[:i], m.bps[i+1:]...)
			return false
		}
	}
	m.bps = append(m.bps, bp)
	return true
}
