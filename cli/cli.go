// Package cli provides the plain line-oriented REPL for ManorQuest.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/manorquest/engine"
	"github.com/nathoo/manorquest/prompt"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine  *engine.Engine
	Console *prompt.Console
	Out     io.Writer

	// OnTurn, when set, receives the engine status before each prompt. It
	// runs on the goroutine that drives the engine.
	OnTurn func(engine.Status)
}

// New creates a CLI wired to the given engine. The engine should have been
// built with the same console as its prompter.
func New(eng *engine.Engine, console *prompt.Console) *CLI {
	return &CLI{
		Engine:  eng,
		Console: console,
		Out:     os.Stdout,
	}
}

// Run plays character creation and the introduction, then loops:
// describe room, prompt, step. It returns when the game ends or input runs
// out.
func (c *CLI) Run(ctx context.Context) {
	c.Engine.Begin(ctx)
	defer c.report()

	for !c.Engine.Snapshot().Ended {
		if ctx.Err() != nil {
			return
		}
		c.describe()

		input, ok := c.Console.ReadLine("> ")
		if !ok {
			return
		}
		// Comment lines let scripts annotate themselves.
		if strings.HasPrefix(strings.TrimSpace(input), "#") {
			continue
		}
		c.Engine.Step(ctx, input)
	}
}

func (c *CLI) describe() {
	c.report()
	for _, line := range c.Engine.Look() {
		c.printLine(line)
	}
	if prev := c.Engine.Snapshot().Previous; prev != "" {
		c.printLine("Previous command: " + prev)
	}
}

func (c *CLI) report() {
	if c.OnTurn != nil {
		c.OnTurn(c.Engine.Snapshot())
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}
