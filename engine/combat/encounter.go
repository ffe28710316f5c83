package combat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var (
	ErrNoPlayer      = errors.New("combat: no player")
	ErrNoEnemies     = errors.New("combat: no enemies")
	ErrPlayerInParty = errors.New("combat: player listed in party")
)

// fleeThreshold is the health below which the player is offered a chance to run.
const fleeThreshold = 5

// FlightPrompter asks the player a yes/no question and blocks for the answer.
type FlightPrompter interface {
	YesNo(question string) bool
}

// Resolver runs encounters. The zero value is usable: output is discarded,
// the player never flees and there is no pacing delay.
type Resolver struct {
	Out    io.Writer
	Prompt FlightPrompter
	Dice   Roller // picks which enemy punishes a flight
	Delay  time.Duration
	Sleep  func(time.Duration)
	Logger *slog.Logger
	Tracer trace.Tracer
}

// encounter is the mutable bookkeeping for one Resolve call.
type encounter struct {
	id      string
	player  Combatant
	party   []Combatant // includes the player
	enemies []Combatant
	order   []Combatant
	cursor  int
	canFlee bool

	state         State
	fallenParty   []Combatant
	fallenEnemies []Combatant
	fled          bool
	playerDied    bool
	turns         int
}

// Resolve fights party (plus the player) against enemies until the enemies
// are gone, the player dies, or the player flees. Health values of the
// combatants are mutated; the caller's slices are not.
func (r *Resolver) Resolve(ctx context.Context, party, enemies []Combatant, player Combatant, canFlee bool) (*Outcome, error) {
	if player == nil {
		return nil, ErrNoPlayer
	}
	if len(enemies) == 0 {
		return nil, ErrNoEnemies
	}
	for _, c := range party {
		if c == player {
			return nil, ErrPlayerInParty
		}
	}

	enc := &encounter{
		id:      uuid.NewString(),
		player:  player,
		party:   append(append(make([]Combatant, 0, len(party)+1), party...), player),
		enemies: append([]Combatant(nil), enemies...),
		canFlee: canFlee,
		state:   EncounterActive,
	}

	ctx, span := r.tracer().Start(ctx, "combat.encounter")
	defer span.End()
	span.SetAttributes(
		attribute.String("encounter.id", enc.id),
		attribute.Int("party_size", len(enc.party)),
		attribute.Int("enemy_count", len(enc.enemies)),
		attribute.Bool("can_flee", canFlee),
	)

	log := r.logger().With("encounter_id", enc.id)
	log.Info("encounter started", "party", len(enc.party), "enemies", len(enc.enemies), "can_flee", canFlee)

	enc.order = RollInitiative(append(append([]Combatant(nil), enc.party...), enc.enemies...))

	for !enc.state.Terminal() {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("encounter %s interrupted: %w", enc.id, err)
		}
		r.step(ctx, enc, log)
	}

	span.SetAttributes(
		attribute.String("state", enc.state.String()),
		attribute.Int("turns", enc.turns),
		attribute.Int("fallen_party", len(enc.fallenParty)),
		attribute.Int("fallen_enemies", len(enc.fallenEnemies)),
	)
	log.Info("encounter ended", "state", enc.state.String(), "turns", enc.turns)

	return &Outcome{
		id:            enc.id,
		state:         enc.state,
		fallenParty:   enc.fallenParty,
		fallenEnemies: enc.fallenEnemies,
		survivors:     append([]Combatant(nil), enc.order...),
		fled:          enc.fled,
		playerDied:    enc.playerDied,
		turns:         enc.turns,
	}, nil
}

// step plays the turn of the combatant under the cursor.
func (r *Resolver) step(ctx context.Context, enc *encounter, log *slog.Logger) {
	actor := enc.order[enc.cursor]
	enc.turns++

	if enc.canFlee && actor == enc.player && actor.GetHP() < fleeThreshold {
		if r.attemptFlight(ctx, enc, log) {
			return
		}
	}

	opponents := enc.enemies
	if contains(enc.enemies, actor) {
		opponents = enc.party
	}

	intent := actor.Attack(opponents)
	if intent.Target == nil {
		enc.state = EnemiesDefeated
		return
	}
	res := intent.Target.Defend(intent.Attack, intent.Damage, intent.Weapon)

	_, span := r.tracer().Start(ctx, "combat.turn")
	span.SetAttributes(
		attribute.String("actor", actor.GetName()),
		attribute.String("target", intent.Target.GetName()),
		attribute.Int("turn", enc.turns),
		attribute.String("result", res.Kind.String()),
		attribute.Bool("critical", res.Critical),
		attribute.Bool("killed", !res.Survived),
	)
	span.End()

	line := actor.GetName() + res.Message
	if res.Critical {
		line = "Critical Hit!  " + line
	}
	r.println(line)
	log.Debug("combat turn",
		"turn", enc.turns,
		"actor", actor.GetName(),
		"target", intent.Target.GetName(),
		"attack", intent.Attack,
		"result", res.Kind.String(),
		"target_hp", intent.Target.GetHP(),
	)

	if !res.Survived {
		enc.remove(intent.Target, actor)
		if enc.state.Terminal() {
			return
		}
	}

	if len(enc.enemies) == 0 {
		enc.state = EnemiesDefeated
		return
	}

	if enc.cursor >= len(enc.order)-1 {
		enc.cursor = 0
		r.println("")
	} else {
		enc.cursor++
	}

	r.pace()
}

// remove takes a dead defender out of every roster. When the defender sat
// before the attacker in turn order, the cursor moves back one place so the
// combatant after the attacker still gets its turn.
func (enc *encounter) remove(defender, attacker Combatant) {
	di, ai := indexOf(enc.order, defender), indexOf(enc.order, attacker)
	if di >= 0 && di < ai {
		enc.cursor--
	}
	enc.order = without(enc.order, defender)

	switch {
	case defender == enc.player:
		enc.party = without(enc.party, defender)
		enc.playerDied = true
		enc.state = PartyDefeated
	case contains(enc.party, defender):
		enc.party = without(enc.party, defender)
		enc.fallenParty = append(enc.fallenParty, defender)
	default:
		enc.enemies = without(enc.enemies, defender)
		enc.fallenEnemies = append(enc.fallenEnemies, defender)
	}
}

func (r *Resolver) println(line string) {
	if r.Out == nil {
		return
	}
	fmt.Fprintln(r.Out, line)
}

func (r *Resolver) pace() {
	if r.Delay <= 0 {
		return
	}
	if r.Sleep != nil {
		r.Sleep(r.Delay)
		return
	}
	time.Sleep(r.Delay)
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

func (r *Resolver) tracer() trace.Tracer {
	if r.Tracer == nil {
		return noop.NewTracerProvider().Tracer("manorquest/combat")
	}
	return r.Tracer
}

func indexOf(cs []Combatant, c Combatant) int {
	for i, x := range cs {
		if x == c {
			return i
		}
	}
	return -1
}

func contains(cs []Combatant, c Combatant) bool {
	return indexOf(cs, c) >= 0
}

// without returns a new slice with the first occurrence of c removed.
func without(cs []Combatant, c Combatant) []Combatant {
	i := indexOf(cs, c)
	if i < 0 {
		return cs
	}
	out := make([]Combatant, 0, len(cs)-1)
	out = append(out, cs[:i]...)
	return append(out, cs[i+1:]...)
}
