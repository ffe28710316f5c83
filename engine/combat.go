package engine

import (
	"context"
	"fmt"

	"github.com/nathoo/manorquest/engine/combat"
	"github.com/nathoo/manorquest/engine/state"
)

// encounter runs a fight between the player's party and enemies, then
// takes the fallen off the board.
func (e *Engine) encounter(ctx context.Context, party, enemies []*state.Actor, canFlee bool) (*combat.Outcome, error) {
	r := &combat.Resolver{
		Out:    e.tx,
		Prompt: e.Prompt,
		Dice:   e.RNG,
		Delay:  e.Delay,
		Sleep:  e.Sleep,
		Logger: e.logger().With("room", e.World.Location),
		Tracer: e.Tracer,
	}

	outcome, err := r.Resolve(ctx, fighters(party), fighters(enemies), e.World.Player, canFlee)
	if err != nil {
		return nil, fmt.Errorf("resolve encounter in %s: %w", e.World.Location, err)
	}

	for _, a := range e.actorsFor(outcome.FallenParty()) {
		retire(a)
	}
	for _, a := range e.actorsFor(outcome.FallenEnemies()) {
		retire(a)
	}
	return outcome, nil
}

// actorsFor maps combatants back to the world's actors.
func (e *Engine) actorsFor(cs []combat.Combatant) []*state.Actor {
	var out []*state.Actor
	for _, c := range cs {
		for _, a := range e.World.Actors {
			if combat.Combatant(a.Fighter) == c {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

func fighters(actors []*state.Actor) []combat.Combatant {
	cs := make([]combat.Combatant, len(actors))
	for i, a := range actors {
		cs[i] = a.Fighter
	}
	return cs
}

func retire(a *state.Actor) {
	a.Dead = true
	a.InParty = false
	a.Location = ""
}
