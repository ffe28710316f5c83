package tui

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/nathoo/manorquest/cli"
	"github.com/nathoo/manorquest/engine"
)

// Session builds the REPL the TUI drives. The CLI and its engine must read
// from in and write to out.
type Session func(in io.Reader, out io.Writer) *cli.CLI

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text    string
	kind    lineKind
	isInput bool // echoed player input, prompt included
}

// Model is the Bubble Tea model for the ManorQuest TUI.
type Model struct {
	title  string
	feed   *lineFeed
	cancel context.CancelFunc

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine
	pending  string // output after the last newline; shown as the input prompt
	status   engine.Status

	width    int
	height   int
	ready    bool
	finished bool // session over, waiting for a key
	quitting bool
}

// statusMsg carries the engine status from the session goroutine.
type statusMsg engine.Status

// sessionDoneMsg reports that the REPL returned.
type sessionDoneMsg struct{}

// New creates a TUI model that sends player input into feed.
func New(title string, feed *lineFeed, cancel context.CancelFunc) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	if cancel == nil {
		cancel = func() {}
	}
	return Model{
		title:   title,
		feed:    feed,
		cancel:  cancel,
		input:   ti,
		history: NewHistory(100),
	}
}

// Run starts the Bubble Tea program and plays session on its own goroutine.
func Run(ctx context.Context, title string, session Session) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	feed := newLineFeed()
	defer feed.Close()

	p := tea.NewProgram(New(title, feed, cancel), tea.WithAltScreen(), tea.WithMouseCellMotion())

	repl := session(feed, programWriter{send: p.Send})
	repl.OnTurn = func(s engine.Status) { p.Send(statusMsg(s)) }
	go func() {
		repl.Run(ctx)
		p.Send(sessionDoneMsg{})
	}()

	_, err := p.Run()
	return err
}

// Init starts the cursor blinking. The session produces the first output.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses, window resizes and session messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		if m.finished {
			return m.quit()
		}

		switch msg.String() {
		case "ctrl+c":
			return m.quit()

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
				m.history.ResetCursor()
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case outputMsg:
		m = m.appendOutput(string(msg))
		return m, nil

	case statusMsg:
		m.status = engine.Status(msg)
		return m, nil

	case sessionDoneMsg:
		m.finished = true
		m.pending = ""
		m.input.Prompt = ""
		m.rawLines = append(m.rawLines, rawLine{}, rawLine{text: "[Press any key to exit]", kind: kindSystem})
		m.refreshViewport()
		return m, nil
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	return m, inputCmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.cancel()
	m.feed.Close()
	return m, tea.Quit
}

// handleEnter answers whatever the session is waiting for. Empty lines are
// sent too: they repeat the previous command or dismiss a pause.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	value := m.input.Value()
	m.input.SetValue("")

	if strings.TrimSpace(value) != "" {
		m.history.Push(value)
	}
	m.history.ResetCursor()

	m.rawLines = append(m.rawLines, rawLine{text: m.pending + value, isInput: true})
	m.pending = ""
	m.input.Prompt = ""
	m.refreshViewport()

	m.feed.Send(value)
	return m, nil
}

// appendOutput adds session output. Complete lines go to the narrative; a
// trailing partial line is a question and becomes the input prompt.
func (m Model) appendOutput(text string) Model {
	parts := strings.Split(m.pending+text, "\n")
	for _, line := range parts[:len(parts)-1] {
		m.rawLines = append(m.rawLines, rawLine{text: line, kind: classifyLine(line)})
	}
	m.pending = parts[len(parts)-1]
	m.input.Prompt = m.pending
	m.refreshViewport()
	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	styled := make([]string, 0, len(m.rawLines))
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordWrap(rl.text, width)
		if rl.isInput {
			styled = append(styled, stylePlayerInput.Render(wrapped))
			continue
		}
		styled = append(styled, renderLineKind(wrapped, rl.kind))
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindHeading:
		return styleHeading.Render(line)
	case kindExits:
		return styleExits.Render(line)
	case kindParty:
		return styleParty.Render(line)
	case kindEnemies:
		return styleEnemies.Render(line)
	case kindDialogue:
		return styleDialogue.Render(line)
	case kindCombat:
		return styleCombat.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	default:
		return styleRoomDesc.Render(line)
	}
}

// wordWrap wraps text at word boundaries to fit width.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
