package engine

import (
	"bytes"
	"io"
)

// transcript forwards narration to the live writer and keeps a line copy
// for the step's Result.
type transcript struct {
	dst     io.Writer
	lines   []string
	partial bytes.Buffer
}

func (t *transcript) start(dst io.Writer) {
	t.dst = dst
	t.lines = nil
	t.partial.Reset()
}

func (t *transcript) Write(p []byte) (int, error) {
	if t.dst != nil {
		if _, err := t.dst.Write(p); err != nil {
			return 0, err
		}
	}
	for _, b := range p {
		if b == '\n' {
			t.lines = append(t.lines, t.partial.String())
			t.partial.Reset()
			continue
		}
		t.partial.WriteByte(b)
	}
	return len(p), nil
}

// take returns the lines collected since start. An unterminated final
// line is included.
func (t *transcript) take() []string {
	lines := t.lines
	if t.partial.Len() > 0 {
		lines = append(lines, t.partial.String())
		t.partial.Reset()
	}
	t.lines = nil
	return lines
}
