// Package engine provides the Step() orchestrator that wires together
// parsing, built-in verbs, scripted scenes, combat, and event dispatch
// into a single turn.
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/nathoo/manorquest/engine/effects"
	"github.com/nathoo/manorquest/engine/events"
	"github.com/nathoo/manorquest/engine/parser"
	"github.com/nathoo/manorquest/engine/state"
	"github.com/nathoo/manorquest/types"
)

// CommandList is every command a player can type, in the order the help
// text lists them.
var CommandList = []string{
	"north", "south", "east", "west", "gift", "fight", "help",
	"inspect", "quit", "search", "steal", "talk",
}

const (
	defaultPlayerName        = "Hero"
	defaultPlayerDescription = "wandering adventurer"
	invalidCommand           = `Invalid Command.  Type "help" for a list of commands.`
)

// Prompter is the blocking human input the engine needs mid-turn.
// Implementations re-prompt malformed answers and never fail; at end of
// input they fall back to the safest answer.
type Prompter interface {
	// YesNo asks a yes/no question.
	YesNo(question string) bool
	// ChooseTarget picks an opponent during combat. No cancel.
	ChooseTarget(names []string) int
	// ChooseCharacter picks a character. ok is false when cancelled.
	ChooseCharacter(names []string, allowCancel bool) (index int, ok bool)
	// ChooseItem picks an item after printing header. ok is false when cancelled.
	ChooseItem(header string, names []string) (index int, ok bool)
	// Menu shows a numbered list and returns the chosen index.
	Menu(question string, choices []string) int
	// Text reads free text between min and max characters.
	Text(label string, min, max int) string
	// Continue waits for the player to press Enter.
	Continue(message string)
}

// Engine holds the game definitions, the session world, and the I/O
// collaborators a turn needs.
type Engine struct {
	Defs   *state.Defs
	World  *state.World
	RNG    *RNG
	Prompt Prompter
	Out    io.Writer
	Delay  time.Duration // pacing unit; a scripted Pause(2) waits two of these
	Sleep  func(time.Duration)
	Logger *slog.Logger
	Tracer trace.Tracer

	tx       *transcript
	dispatch bool // false while running handler effects
}

// New creates an engine from definitions. Every roll in the session,
// including combat, comes from one RNG seeded with seed.
func New(defs *state.Defs, prompt Prompter, out io.Writer, seed int64) *Engine {
	if prompt == nil {
		prompt = nullPrompter{}
	}
	rng := NewRNG(seed)
	w := state.NewWorld(defs, rng)
	w.Player.Chooser = prompt
	return &Engine{
		Defs:     defs,
		World:    w,
		RNG:      rng,
		Prompt:   prompt,
		Out:      out,
		Delay:    time.Second,
		tx:       &transcript{},
		dispatch: true,
	}
}

// Begin runs character creation and the introduction.
func (e *Engine) Begin(ctx context.Context) types.Result {
	_, span := e.tracer().Start(ctx, "engine.begin")
	defer span.End()
	e.tx.start(e.Out)

	w := e.World
	w.Player.Name = e.Prompt.Text("Enter a name for your character", 1, 24)
	if w.Player.Name == "" {
		w.Player.Name = defaultPlayerName
	}
	w.PlayerDescription = e.Prompt.Text("Enter a description for your character", 1, 48)
	if w.PlayerDescription == "" {
		w.PlayerDescription = defaultPlayerDescription
	}
	w.Player.Description = w.PlayerDescription

	e.emit("Character created successfully.", w.Player.String())
	e.Prompt.Continue("Press Enter to continue.")

	e.emit("", commandListLine(), "", `To see these commands later, type "help" at the prompt.`)
	e.Prompt.Continue("Press Enter to continue.")

	if intro := e.Defs.Game.Intro; intro != "" {
		e.emit(effects.Interpolate(intro, w))
		e.Prompt.Continue("Press Enter to...enter.")
	}

	e.logger().Info("session started",
		"game", e.Defs.Game.Title,
		"seed", e.RNG.Seed(),
		"player", w.Player.Name,
	)
	span.SetAttributes(attribute.Int64("seed", e.RNG.Seed()))
	return types.Result{Output: e.tx.take()}
}

// Step processes one player command and returns the result. Output is
// written to Out as it happens and also collected in the result.
func (e *Engine) Step(ctx context.Context, input string) types.Result {
	var result types.Result
	e.tx.start(e.Out)

	w := e.World
	if w.Ended {
		e.emit("The game is over.")
		result.Output = e.tx.take()
		result.Ended = true
		return result
	}

	command := strings.ToLower(strings.TrimSpace(input))
	if command == "" {
		command = w.PreviousCommand
	}
	intent := parser.Parse(command)

	ctx, span := e.tracer().Start(ctx, "engine.step")
	defer span.End()
	span.SetAttributes(
		attribute.String("verb", intent.Verb),
		attribute.String("room", w.Location),
		attribute.Int("turn", w.TurnCount),
	)

	w.CommandLog = append(w.CommandLog, input)
	if isCommand(intent.Verb) {
		w.PreviousCommand = command
	}

	evts := e.builtin(ctx, intent)

	result.Events = append(result.Events, evts...)
	result.Effects = append(result.Effects, e.react(ctx, evts)...)

	w.TurnCount++
	e.logger().Debug("step",
		"turn", w.TurnCount,
		"command", command,
		"verb", intent.Verb,
		"room", w.Location,
		"rng_position", e.RNG.Position(),
	)

	result.Output = e.tx.take()
	result.Ended = w.Ended
	return result
}

// react dispatches events to story handlers and runs whatever they produce.
// Handler effects never dispatch again.
func (e *Engine) react(ctx context.Context, evts []types.Event) []types.Effect {
	if !e.dispatch || len(evts) == 0 {
		return nil
	}
	effs := events.Dispatch(evts, e.World, e.Defs)
	if len(effs) == 0 {
		return nil
	}
	e.dispatch = false
	defer func() { e.dispatch = true }()
	e.run(ctx, effs)
	return effs
}

// Look renders the current room and the characters in it.
func (e *Engine) Look() []string {
	w := e.World
	room := state.CurrentRoom(w)
	if room == nil {
		return []string{"You are somewhere unknown."}
	}

	lines := []string{
		"The " + room.Name,
		"-------------------------",
		room.Description,
		"",
	}
	for _, dir := range state.SortedExits(room) {
		name := room.Exits[dir]
		if target, ok := w.Rooms[name]; ok {
			name = target.Name
		}
		lines = append(lines, fmt.Sprintf("The %s is %s.", name, dir))
	}
	lines = append(lines, "")

	if party := state.Party(w); len(party) > 0 {
		lines = append(lines, "Party: "+describeActors(party), "")
	}
	if neutral := state.Neutral(w); len(neutral) > 0 {
		lines = append(lines, "Neutral: "+describeActors(neutral), "")
	}
	if enemies := state.Enemies(w); len(enemies) > 0 {
		lines = append(lines, "Enemies: "+describeActors(enemies), "", "")
	}
	return lines
}

// Status is a point-in-time summary for front ends.
type Status struct {
	Room     string
	HP       int
	Items    int
	Turn     int
	Party    int
	Ended    bool
	Player   string
	Previous string
}

// Snapshot captures the current status. Call it from the goroutine that
// drives Step.
func (e *Engine) Snapshot() Status {
	w := e.World
	room := ""
	if r := state.CurrentRoom(w); r != nil {
		room = r.Name
	}
	return Status{
		Room:     room,
		HP:       w.Player.HP,
		Items:    len(w.Inventory),
		Turn:     w.TurnCount,
		Party:    len(state.Party(w)),
		Ended:    w.Ended,
		Player:   w.Player.Name,
		Previous: w.PreviousCommand,
	}
}

// emit writes narration lines.
func (e *Engine) emit(lines ...string) {
	for _, l := range lines {
		fmt.Fprintln(e.tx, l)
	}
}

// pause waits for seconds pacing units.
func (e *Engine) pause(seconds float64) {
	d := time.Duration(seconds * float64(e.Delay))
	if d <= 0 {
		return
	}
	if e.Sleep != nil {
		e.Sleep(d)
		return
	}
	time.Sleep(d)
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}

func (e *Engine) tracer() trace.Tracer {
	if e.Tracer == nil {
		return noop.NewTracerProvider().Tracer("manorquest/engine")
	}
	return e.Tracer
}

func isCommand(verb string) bool {
	switch verb {
	case "go", "look", "inventory":
		return true
	}
	for _, c := range CommandList {
		if c == verb {
			return true
		}
	}
	return false
}

func commandListLine() string {
	return "The following is a complete list of valid commands in this game: " + strings.Join(CommandList, ", ")
}

func describeActors(actors []*state.Actor) string {
	parts := make([]string, len(actors))
	for i, a := range actors {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}

// nullPrompter answers every question with the safest default.
type nullPrompter struct{}

func (nullPrompter) YesNo(string) bool                          { return false }
func (nullPrompter) ChooseTarget([]string) int                  { return 0 }
func (nullPrompter) ChooseCharacter([]string, bool) (int, bool) { return 0, false }
func (nullPrompter) ChooseItem(string, []string) (int, bool)    { return 0, false }
func (nullPrompter) Menu(string, []string) int                  { return 0 }
func (nullPrompter) Text(string, int, int) string               { return "" }
func (nullPrompter) Continue(string)                            {}
