package engine

import (
	"context"

	"github.com/nathoo/manorquest/engine/effects"
	"github.com/nathoo/manorquest/engine/state"
	"github.com/nathoo/manorquest/types"
)

// run plays a scripted effect list in order. Atomic effects go through
// effects.Apply; pacing, menus, fights and endings are handled here.
// The scene stops as soon as the session ends.
func (e *Engine) run(ctx context.Context, effs []types.Effect) {
	for _, eff := range effs {
		if e.World.Ended || ctx.Err() != nil {
			return
		}

		if effects.IsAtomic(eff.Type) {
			evts, out := effects.Apply(e.World, e.Defs, []types.Effect{eff})
			e.emit(out...)
			e.react(ctx, evts)
			continue
		}

		switch eff.Type {
		case "pause":
			e.pause(toFloat(eff.Params["seconds"]))

		case "continue":
			msg, _ := eff.Params["message"].(string)
			if msg == "" {
				msg = "Press Enter to continue."
			}
			e.Prompt.Continue(msg)

		case "choice":
			if len(eff.Branches) == 0 {
				continue
			}
			question, _ := eff.Params["question"].(string)
			labels := make([]string, len(eff.Branches))
			for i, b := range eff.Branches {
				labels[i] = b.Label
			}
			i := e.Prompt.Menu(effects.Interpolate(question, e.World), labels)
			if i < 0 || i >= len(eff.Branches) {
				i = 0
			}
			e.logger().Info("choice made", "question", question, "choice", labels[i])
			e.run(ctx, eff.Branches[i].Effects)

		case "fight":
			e.scriptedFight(ctx, eff)

		case "end_game":
			playerInitiated, _ := eff.Params["player_initiated"].(bool)
			e.gameOver(playerInitiated)

		default:
			e.logger().Warn("unknown effect", "type", eff.Type)
		}
	}
}

// scriptedFight runs a story battle in the current room and continues with
// the "clean" branch when the whole party survived, "losses" otherwise.
func (e *Engine) scriptedFight(ctx context.Context, eff types.Effect) {
	canFlee, _ := eff.Params["can_flee"].(bool)
	w := e.World

	branch := "clean"
	if enemies := state.Enemies(w); len(enemies) > 0 {
		outcome, err := e.encounter(ctx, state.Party(w), enemies, canFlee)
		if err != nil {
			e.logger().Error("scripted encounter failed", "error", err)
			return
		}
		if outcome.PlayerDied() {
			e.gameOver(false)
			return
		}
		if len(outcome.FallenParty()) > 0 {
			branch = "losses"
		}
	}

	for _, b := range eff.Branches {
		if b.Label == branch {
			e.run(ctx, b.Effects)
			return
		}
	}
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
