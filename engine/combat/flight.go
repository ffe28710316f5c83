package combat

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
)

// attemptFlight offers the player a chance to run. It returns true when the
// player ran, in which case the encounter is over one way or the other.
// A refusal puts the encounter back to active so the player attacks as usual.
func (r *Resolver) attemptFlight(ctx context.Context, enc *encounter, log *slog.Logger) bool {
	enc.state = PlayerFleeing

	question := fmt.Sprintf("You have %d hit points left.  Attempt to flee? ", enc.player.GetHP())
	if r.Prompt == nil || !r.Prompt.YesNo(question) {
		enc.state = EncounterActive
		return false
	}

	chaser := enc.enemies[r.pick(len(enc.enemies))]
	penalty := chaser.RollDice(1, 3)
	hp := enc.player.GetHP() - penalty
	if hp < 0 {
		hp = 0
	}
	enc.player.SetHP(hp)

	_, span := r.tracer().Start(ctx, "combat.flee")
	span.SetAttributes(
		attribute.String("chaser", chaser.GetName()),
		attribute.Int("penalty", penalty),
		attribute.Int("player_hp", hp),
	)
	span.End()

	if hp <= 0 {
		r.println(fmt.Sprintf("You were killed by %s while trying to escape.", chaser.GetName()))
		enc.remove(enc.player, chaser)
		log.Info("player killed while fleeing", "chaser", chaser.GetName(), "penalty", penalty)
		return true
	}

	r.println(fmt.Sprintf("%s attacked you for %d damage whilst fleeing.", chaser.GetName(), penalty))
	enc.fled = true
	enc.state = PlayerFled
	log.Info("player fled", "chaser", chaser.GetName(), "penalty", penalty, "player_hp", hp)
	return true
}

// pick returns a uniformly random index in [0, n).
func (r *Resolver) pick(n int) int {
	var dice Roller = globalDice{}
	if r.Dice != nil {
		dice = r.Dice
	}
	i := dice.Roll(n) - 1
	if i < 0 || i >= n {
		return 0
	}
	return i
}
