// Package prompt implements the blocking questions the engine asks the
// player mid-turn on a line-oriented terminal. Malformed answers are asked
// again; nothing here returns an error. At end of input every question
// falls back to its safest answer.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

const cancelWord = "cancel"

// Console reads answers from one input stream. The CLI reads commands
// through the same Console so buffered input is never split between two
// readers.
type Console struct {
	in  *bufio.Reader
	out io.Writer

	// Echo writes every line read back to the output, for script playback.
	Echo bool

	eof bool
}

// NewConsole creates a console over in and out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// ReadLine prints label and reads one line without its line ending.
// ok is false once input is exhausted.
func (c *Console) ReadLine(label string) (line string, ok bool) {
	if c.eof {
		return "", false
	}
	fmt.Fprint(c.out, label)

	line, err := c.in.ReadString('\n')
	if err != nil {
		c.eof = true
		if line == "" {
			fmt.Fprintln(c.out)
			return "", false
		}
	}
	line = strings.TrimRight(line, "\r\n")
	if c.Echo {
		fmt.Fprintln(c.out, line)
	}
	return line, true
}

// EOF reports whether input has run out.
func (c *Console) EOF() bool { return c.eof }

// YesNo asks until it gets yes, y, no or n.
func (c *Console) YesNo(question string) bool {
	for {
		line, ok := c.ReadLine(question)
		if !ok {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "yes", "y":
			return true
		case "no", "n":
			return false
		}
	}
}

// ChooseTarget picks an opponent during combat. There is no way out.
func (c *Console) ChooseTarget(names []string) int {
	i, _ := c.ChooseCharacter(names, false)
	return i
}

// ChooseCharacter lists names and asks for one of them by name.
func (c *Console) ChooseCharacter(names []string, allowCancel bool) (int, bool) {
	fmt.Fprintf(c.out, "Characters: %s\n", strings.Join(names, ", "))

	label := "Choose a character: "
	if allowCancel {
		label = "Choose a character, or type cancel: "
	}
	for {
		line, ok := c.ReadLine(label)
		if !ok {
			return 0, !allowCancel
		}
		answer := strings.TrimSpace(line)
		if allowCancel && strings.EqualFold(answer, cancelWord) {
			return 0, false
		}
		if i := indexFold(names, answer); i >= 0 {
			return i, true
		}
	}
}

// ChooseItem prints header and the item names, then asks for one by name.
func (c *Console) ChooseItem(header string, names []string) (int, bool) {
	fmt.Fprintf(c.out, "\n%s %s\n\n", header, strings.Join(names, ", "))
	for {
		line, ok := c.ReadLine("Enter the item you choose, or type cancel: ")
		if !ok {
			return 0, false
		}
		answer := strings.TrimSpace(line)
		if strings.EqualFold(answer, cancelWord) {
			return 0, false
		}
		if i := indexFold(names, answer); i >= 0 {
			return i, true
		}
	}
}

// Menu prints a numbered list. The player may answer with the number or
// the label.
func (c *Console) Menu(question string, choices []string) int {
	fmt.Fprintf(c.out, "%s\n\n", question)
	for i, choice := range choices {
		fmt.Fprintf(c.out, "%d. %s\n", i+1, choice)
	}
	fmt.Fprintln(c.out)

	for {
		line, ok := c.ReadLine("Make a selection from the list: ")
		if !ok {
			return 0
		}
		answer := strings.TrimSpace(line)
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(choices) {
			return n - 1
		}
		if i := indexFold(choices, answer); i >= 0 {
			return i
		}
	}
}

// Text reads free text whose length lies within [min, max] characters.
func (c *Console) Text(label string, min, max int) string {
	question := fmt.Sprintf("%s (%d < length <= %d): ", label, min, max)
	for {
		line, ok := c.ReadLine(question)
		if !ok {
			return ""
		}
		if n := utf8.RuneCountInString(line); n >= min && n <= max {
			return line
		}
	}
}

// Continue waits for Enter.
func (c *Console) Continue(message string) {
	fmt.Fprint(c.out, "\n\n")
	c.ReadLine(message)
}

func indexFold(list []string, s string) int {
	if s == "" {
		return -1
	}
	for i, item := range list {
		if strings.EqualFold(item, s) {
			return i
		}
	}
	return -1
}
