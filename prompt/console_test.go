package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConsole(input string) (*Console, *bytes.Buffer) {
	var out bytes.Buffer
	return NewConsole(strings.NewReader(input), &out), &out
}

func TestYesNo(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"no\n", false},
		{"maybe\nn\n", false},
		{"what\n  Yes \n", true},
		{"", false},
	}
	for _, tt := range tests {
		c, _ := newTestConsole(tt.input)
		assert.Equal(t, tt.want, c.YesNo("Flee? "), "input %q", tt.input)
	}
}

func TestYesNo_RepromptsOnBadAnswer(t *testing.T) {
	c, out := newTestConsole("perhaps\ny\n")
	require.True(t, c.YesNo("Run? "))
	assert.Equal(t, 2, strings.Count(out.String(), "Run? "))
}

func TestChooseCharacter(t *testing.T) {
	names := []string{"Jack", "Jill"}

	c, out := newTestConsole("Bob\njill\n")
	i, ok := c.ChooseCharacter(names, true)
	require.True(t, ok)
	assert.Equal(t, 1, i)
	assert.Contains(t, out.String(), "Characters: Jack, Jill\n")
	assert.Contains(t, out.String(), "Choose a character, or type cancel: ")

	c, _ = newTestConsole("cancel\n")
	_, ok = c.ChooseCharacter(names, true)
	assert.False(t, ok)

	c, _ = newTestConsole("")
	_, ok = c.ChooseCharacter(names, true)
	assert.False(t, ok, "end of input cancels")
}

func TestChooseTarget_NoCancel(t *testing.T) {
	c, out := newTestConsole("cancel\nJill\n")
	assert.Equal(t, 1, c.ChooseTarget([]string{"Jack", "Jill"}))
	assert.NotContains(t, out.String(), "or type cancel")

	c, _ = newTestConsole("")
	assert.Equal(t, 0, c.ChooseTarget([]string{"Jack"}))
}

func TestChooseItem(t *testing.T) {
	names := []string{"mace", "flask"}

	c, out := newTestConsole("Flask\n")
	i, ok := c.ChooseItem("Jack has:", names)
	require.True(t, ok)
	assert.Equal(t, 1, i)
	assert.Contains(t, out.String(), "\nJack has: mace, flask\n\n")
	assert.Contains(t, out.String(), "Enter the item you choose, or type cancel: ")

	c, _ = newTestConsole("sword\ncancel\n")
	_, ok = c.ChooseItem("Items:", names)
	assert.False(t, ok)
}

func TestMenu(t *testing.T) {
	choices := []string{"Knowledge", "Power"}

	c, out := newTestConsole("2\n")
	assert.Equal(t, 1, c.Menu("What do you seek?", choices))
	assert.Contains(t, out.String(), "What do you seek?\n\n1. Knowledge\n2. Power\n\n")

	c, _ = newTestConsole("0\n9\nknowledge\n")
	assert.Equal(t, 0, c.Menu("What do you seek?", choices))

	c, _ = newTestConsole("")
	assert.Equal(t, 0, c.Menu("What do you seek?", choices))
}

func TestText(t *testing.T) {
	c, out := newTestConsole("\nAda Lovelace the Fourth\nAda\n")
	assert.Equal(t, "Ada", c.Text("Name", 1, 10))
	assert.Equal(t, 3, strings.Count(out.String(), "Name (1 < length <= 10): "))

	c, _ = newTestConsole("")
	assert.Equal(t, "", c.Text("Name", 1, 10))
}

func TestContinue(t *testing.T) {
	c, out := newTestConsole("\nlook\n")
	c.Continue("Press enter to continue...")
	assert.Equal(t, "\n\nPress enter to continue...", out.String())

	line, ok := c.ReadLine("> ")
	require.True(t, ok)
	assert.Equal(t, "look", line, "continue consumes exactly one line")
}

func TestReadLine_Echo(t *testing.T) {
	c, out := newTestConsole("go north\r\n")
	c.Echo = true
	line, ok := c.ReadLine("> ")
	require.True(t, ok)
	assert.Equal(t, "go north", line)
	assert.Equal(t, "> go north\n", out.String())
}

func TestReadLine_FinalLineWithoutNewline(t *testing.T) {
	c, _ := newTestConsole("look")
	line, ok := c.ReadLine("> ")
	require.True(t, ok)
	assert.Equal(t, "look", line)

	_, ok = c.ReadLine("> ")
	assert.False(t, ok)
	assert.True(t, c.EOF())
}
