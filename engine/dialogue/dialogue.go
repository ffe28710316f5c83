// Package dialogue implements scripted response sequences: character
// conversations and room search results.
package dialogue

import "fmt"

// Script hands out a fixed sequence of entries one at a time. Once the
// sequence is used up every call returns the fallback.
type Script[T any] struct {
	entries  []T
	fallback T
	pos      int
}

// NewScript creates a script over entries. The slice is copied.
func NewScript[T any](entries []T, fallback T) *Script[T] {
	return &Script[T]{
		entries:  append([]T(nil), entries...),
		fallback: fallback,
	}
}

// Next returns the next entry, or the fallback when none are left.
func (s *Script[T]) Next() T {
	if s.pos >= len(s.entries) {
		return s.fallback
	}
	e := s.entries[s.pos]
	s.pos++
	return e
}

// Remaining is the number of entries not yet handed out.
func (s *Script[T]) Remaining() int {
	return len(s.entries) - s.pos
}

// Exhausted reports whether only the fallback is left.
func (s *Script[T]) Exhausted() bool {
	return s.Remaining() <= 0
}

// Reset replaces the entries and rewinds to the start.
func (s *Script[T]) Reset(entries []T) {
	s.entries = append([]T(nil), entries...)
	s.pos = 0
}

// Conversation builds a character's talk script. Lines render as
// "[Name]: line" and the character falls silent with "[Name]: ..." once
// there is nothing left to say.
// Returns nil when there are no lines at all.
func Conversation(name string, lines []string) *Script[string] {
	if len(lines) == 0 {
		return nil
	}
	return NewScript(speakerLines(name, lines), fmt.Sprintf("[%s]: ...", name))
}

// Recast replaces a conversation's lines, keeping the speaker format.
func Recast(s *Script[string], name string, lines []string) *Script[string] {
	if s == nil {
		return Conversation(name, lines)
	}
	s.Reset(speakerLines(name, lines))
	return s
}

// Silent is what a character without a conversation says.
func Silent(name string) string {
	return fmt.Sprintf("%s doesn't want to talk to you.", name)
}

func speakerLines(name string, lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = fmt.Sprintf("[%s]: %s", name, l)
	}
	return out
}
