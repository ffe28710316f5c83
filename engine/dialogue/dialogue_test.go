package dialogue

import (
	"testing"

	"github.com/nathoo/manorquest/types"
)

func TestScript_SaturatesOnFallback(t *testing.T) {
	s := NewScript([]string{"one", "two"}, "done")

	for i, want := range []string{"one", "two", "done", "done", "done"} {
		if got := s.Next(); got != want {
			t.Errorf("call %d: got %q, want %q", i, got, want)
		}
	}
	if !s.Exhausted() {
		t.Error("script should be exhausted")
	}
}

func TestScript_EmptyReturnsFallback(t *testing.T) {
	s := NewScript(nil, 7)
	if got := s.Next(); got != 7 {
		t.Errorf("got %d, want 7", got)
	}
	if s.Remaining() != 0 {
		t.Errorf("Remaining = %d, want 0", s.Remaining())
	}
}

func TestScript_CopiesEntries(t *testing.T) {
	entries := []string{"a", "b"}
	s := NewScript(entries, "")
	entries[0] = "mutated"

	if got := s.Next(); got != "a" {
		t.Errorf("got %q, want %q", got, "a")
	}
}

func TestScript_Reset(t *testing.T) {
	s := NewScript([]string{"a"}, "-")
	s.Next()
	s.Next()

	s.Reset([]string{"x", "y"})
	if s.Remaining() != 2 {
		t.Fatalf("Remaining = %d, want 2", s.Remaining())
	}
	if got := s.Next(); got != "x" {
		t.Errorf("got %q, want %q", got, "x")
	}
}

func TestScript_SearchEntries(t *testing.T) {
	fallback := types.SearchEntry{Text: "You find nothing new."}
	s := NewScript([]types.SearchEntry{
		{Text: "A pile of dishes."},
		{Text: "A letter.", Found: true},
	}, fallback)

	if e := s.Next(); e.Found {
		t.Error("first entry should not be a find")
	}
	if e := s.Next(); !e.Found || e.Text != "A letter." {
		t.Errorf("second entry = %+v", e)
	}
	for i := 0; i < 3; i++ {
		if e := s.Next(); e != fallback {
			t.Errorf("after exhaustion got %+v, want fallback", e)
		}
	}
}

func TestConversation(t *testing.T) {
	c := Conversation("Jill", []string{"Nice to meet you.", "Have you seen the library?"})

	want := []string{
		"[Jill]: Nice to meet you.",
		"[Jill]: Have you seen the library?",
		"[Jill]: ...",
		"[Jill]: ...",
	}
	for i, w := range want {
		if got := c.Next(); got != w {
			t.Errorf("line %d: got %q, want %q", i, got, w)
		}
	}
}

func TestConversation_NoLines(t *testing.T) {
	if c := Conversation("Jack", nil); c != nil {
		t.Error("expected nil conversation for no lines")
	}
	if got := Silent("Jack"); got != "Jack doesn't want to talk to you." {
		t.Errorf("Silent = %q", got)
	}
}

func TestRecast(t *testing.T) {
	c := Conversation("Jill", []string{"Hello."})
	c.Next()
	c = Recast(c, "Jill", []string{"..."})

	if got := c.Next(); got != "[Jill]: ..." {
		t.Errorf("got %q", got)
	}

	fresh := Recast(nil, "Jack", []string{"Aargh!"})
	if got := fresh.Next(); got != "[Jack]: Aargh!" {
		t.Errorf("got %q", got)
	}
}
