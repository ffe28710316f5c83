package tui

import (
	"bufio"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/manorquest/engine"
)

func TestRoomDisplayName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"hall", "Hall"},
		{"great_hall", "Great Hall"},
		{"Dining Hall", "Dining Hall"},
		{"old library", "Old Library"},
	}
	for _, tt := range tests {
		got := roomDisplayName(tt.name)
		if got != tt.want {
			t.Errorf("roomDisplayName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want lineKind
	}{
		{"-------------------------", kindHeading},
		{"The Kitchen is north.", kindExits},
		{"Neutral: Mute ()", kindExits},
		{"Party: Jill (A lovely rogue)", kindParty},
		{"Enemies: Jack (smelly zombie)", kindEnemies},
		{"Previous command: north", kindSystem},
		{"[Item added to your inventory]: Cook's letter", kindSystem},
		{"[Press any key to exit]", kindSystem},
		{"[Jill]: Nice to meet you.", kindDialogue},
		{"You can't go that way.", kindError},
		{`Invalid Command.  Type "help" for a list of commands.`, kindError},
		{"Ada hits Jack for 4 damage.  Jack has 4 hit points left.", kindCombat},
		{"Critical Hit!  Ada kills Jack.", kindCombat},
		{"A dank and dirty room buzzing with flies.", kindRoomDesc},
		{"", kindRoomDesc},
	}
	for _, tt := range tests {
		got := classifyLine(tt.line)
		if got != tt.want {
			t.Errorf("classifyLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestWordWrap(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"short", 80, "short"},
		{"hello world", 5, "hello\nworld"},
		{"The great hall stretches before you with its vaulted ceiling.", 30,
			"The great hall stretches\nbefore you with its vaulted\nceiling."},
		{"", 80, ""},
		{"a b c d e", 3, "a b\nc d\ne"},
		{"no width", 0, "no width"},
	}
	for _, tt := range tests {
		got := wordWrap(tt.text, tt.width)
		if got != tt.want {
			t.Errorf("wordWrap(%q, %d) =\n  %q\nwant:\n  %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestHistory_PushAndPrev(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("go north")
	h.Push("take key")

	prev, ok := h.Prev()
	if !ok || prev != "take key" {
		t.Errorf("expected 'take key', got %q (ok=%v)", prev, ok)
	}

	prev, ok = h.Prev()
	if !ok || prev != "go north" {
		t.Errorf("expected 'go north', got %q (ok=%v)", prev, ok)
	}

	prev, ok = h.Prev()
	if !ok || prev != "look" {
		t.Errorf("expected 'look', got %q (ok=%v)", prev, ok)
	}

	// At oldest, stays there.
	prev, ok = h.Prev()
	if !ok || prev != "look" {
		t.Errorf("expected 'look' at boundary, got %q (ok=%v)", prev, ok)
	}
}

func TestHistory_Next(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("go north")

	h.Prev() // "go north"
	h.Prev() // "look"

	next, ok := h.Next()
	if !ok || next != "go north" {
		t.Errorf("expected 'go north', got %q (ok=%v)", next, ok)
	}

	_, ok = h.Next()
	if ok {
		t.Error("expected false when past newest entry")
	}
}

func TestHistory_Empty(t *testing.T) {
	h := NewHistory(5)
	_, ok := h.Prev()
	if ok {
		t.Error("expected false on empty history")
	}
	_, ok = h.Next()
	if ok {
		t.Error("expected false on empty history")
	}
}

func TestHistory_MaxSize(t *testing.T) {
	h := NewHistory(2)
	h.Push("a")
	h.Push("b")
	h.Push("c") // "a" evicted

	prev, _ := h.Prev()
	if prev != "c" {
		t.Errorf("expected 'c', got %q", prev)
	}
	prev, _ = h.Prev()
	if prev != "b" {
		t.Errorf("expected 'b', got %q", prev)
	}
	// "a" is gone.
	prev, _ = h.Prev()
	if prev != "b" {
		t.Errorf("expected 'b' at boundary, got %q", prev)
	}
}

func TestHistory_NoDuplicates(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("look") // skipped
	h.Push("look") // skipped

	if len(h.entries) != 1 {
		t.Errorf("expected 1 entry, got %d", len(h.entries))
	}
}

func TestHistory_ResetCursor(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("go north")

	h.Prev() // "go north"
	h.ResetCursor()

	// After reset, Prev starts from the end again.
	prev, ok := h.Prev()
	if !ok || prev != "go north" {
		t.Errorf("expected 'go north' after reset, got %q", prev)
	}
}

func TestLineFeed_DeliversLines(t *testing.T) {
	feed := newLineFeed()
	feed.Send("north")
	feed.Send("")

	r := bufio.NewReader(feed)
	line, err := r.ReadString('\n')
	if err != nil || line != "north\n" {
		t.Fatalf("got %q, %v", line, err)
	}
	line, err = r.ReadString('\n')
	if err != nil || line != "\n" {
		t.Fatalf("empty submit should be a blank line, got %q, %v", line, err)
	}

	feed.Close()
	feed.Close()
	if _, err := r.ReadString('\n'); err != io.EOF {
		t.Errorf("expected EOF after close, got %v", err)
	}
	feed.Send("ignored")
}

func TestProgramWriter_SendsChunks(t *testing.T) {
	var got []tea.Msg
	w := programWriter{send: func(msg tea.Msg) { got = append(got, msg) }}

	buf := []byte("The Hall\n")
	if _, err := w.Write(buf); err != nil {
		t.Fatal(err)
	}
	copy(buf, "XXXXXXXX")

	if len(got) != 1 || got[0] != outputMsg("The Hall\n") {
		t.Errorf("got %v", got)
	}
}

func newTestModel(t *testing.T) (Model, *lineFeed) {
	t.Helper()
	feed := newLineFeed()
	t.Cleanup(func() { feed.Close() })
	m := New("Smith Manor", feed, nil)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model), feed
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func TestModel_OutputKeepsPartialLineAsPrompt(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, outputMsg("The Hall\n---"))
	m, _ = update(t, m, outputMsg("--\n> "))

	if len(m.rawLines) != 2 || m.rawLines[0].text != "The Hall" || m.rawLines[1].text != "-----" {
		t.Errorf("rawLines = %+v", m.rawLines)
	}
	if m.pending != "> " || m.input.Prompt != "> " {
		t.Errorf("pending = %q, prompt = %q", m.pending, m.input.Prompt)
	}
}

func TestModel_EnterFeedsSession(t *testing.T) {
	m, feed := newTestModel(t)
	m, _ = update(t, m, outputMsg("Choose a character: "))

	m.input.SetValue("Jill")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if got := <-feed.lines; got != "Jill" {
		t.Errorf("fed %q", got)
	}
	last := m.rawLines[len(m.rawLines)-1]
	if !last.isInput || last.text != "Choose a character: Jill" {
		t.Errorf("echo = %+v", last)
	}
	if m.pending != "" || m.input.Value() != "" {
		t.Errorf("pending = %q, value = %q", m.pending, m.input.Value())
	}

	prev, ok := m.history.Prev()
	if !ok || prev != "Jill" {
		t.Errorf("history = %q, %v", prev, ok)
	}
}

func TestModel_EmptyEnterStillFeeds(t *testing.T) {
	m, feed := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if got := <-feed.lines; got != "" {
		t.Errorf("fed %q", got)
	}
	if _, ok := m.history.Prev(); ok {
		t.Error("blank lines should not enter history")
	}
}

func TestModel_StatusBar(t *testing.T) {
	m, _ := newTestModel(t)
	if bar := m.renderStatusBar(); !strings.Contains(bar, "Smith Manor") {
		t.Errorf("before the first turn the bar shows the title: %q", bar)
	}

	m, _ = update(t, m, statusMsg(engine.Status{Room: "Dining Hall", HP: 42, Items: 3, Turn: 7, Party: 1}))
	bar := m.renderStatusBar()
	for _, want := range []string{"Dining Hall", "HP: 42", "Party: 1", "Inv: 3", "T:7"} {
		if !strings.Contains(bar, want) {
			t.Errorf("status bar %q missing %q", bar, want)
		}
	}
}

func TestModel_SessionDoneWaitsForKey(t *testing.T) {
	m, feed := newTestModel(t)
	m, cmd := update(t, m, sessionDoneMsg{})
	if cmd != nil || !m.finished {
		t.Fatal("session end should not quit immediately")
	}

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("view should be empty when quitting")
	}
	select {
	case <-feed.done:
	default:
		t.Error("feed should be closed")
	}
}

func TestModel_CtrlCClosesFeed(t *testing.T) {
	cancelled := false
	feed := newLineFeed()
	m := New("Smith Manor", feed, func() { cancelled = true })

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil || !cancelled {
		t.Error("ctrl+c should cancel the session and quit")
	}
	if _, err := feed.Read(make([]byte, 1)); err != io.EOF {
		t.Errorf("expected EOF, got %v", err)
	}
}
