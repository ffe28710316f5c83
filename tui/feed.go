package tui

import (
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// lineFeed is the session's stdin. Each submitted input line becomes one
// newline-terminated read; Close turns further reads into io.EOF.
type lineFeed struct {
	lines chan string
	done  chan struct{}
	once  sync.Once

	buf []byte // unread remainder of the current line, reader side only
}

func newLineFeed() *lineFeed {
	return &lineFeed{
		lines: make(chan string, 32),
		done:  make(chan struct{}),
	}
}

// Send queues one line. It is a no-op after Close.
func (f *lineFeed) Send(line string) {
	select {
	case <-f.done:
		return
	default:
	}
	select {
	case f.lines <- line:
	case <-f.done:
	}
}

func (f *lineFeed) Read(p []byte) (int, error) {
	if len(f.buf) == 0 {
		select {
		case line := <-f.lines:
			f.buf = []byte(line + "\n")
		case <-f.done:
			return 0, io.EOF
		}
	}
	n := copy(p, f.buf)
	f.buf = f.buf[n:]
	return n, nil
}

// Close ends the feed. Safe to call more than once.
func (f *lineFeed) Close() error {
	f.once.Do(func() { close(f.done) })
	return nil
}

// outputMsg is a chunk of session output, possibly ending mid-line.
type outputMsg string

// programWriter turns session writes into messages for the Update loop.
type programWriter struct {
	send func(tea.Msg)
}

func (w programWriter) Write(p []byte) (int, error) {
	w.send(outputMsg(p))
	return len(p), nil
}
