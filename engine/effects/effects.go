// Package effects implements centralized world mutation via the Apply function.
// Every effect type is one atomic operation. No logic in effects.
package effects

import (
	"strings"

	"github.com/nathoo/manorquest/engine/combat"
	"github.com/nathoo/manorquest/engine/dialogue"
	"github.com/nathoo/manorquest/engine/state"
	"github.com/nathoo/manorquest/types"
)

// atomic lists the effect types Apply understands. Anything else is a
// control effect owned by the engine's scene runner.
var atomic = map[string]bool{
	"say":              true,
	"set_flag":         true,
	"set_conversation": true,
	"join_party":       true,
	"leave_party":      true,
	"turn_hostile":     true,
	"open_exit":        true,
	"spawn":            true,
	"give_item":        true,
	"remove_item":      true,
}

// IsAtomic reports whether Apply handles the effect type.
func IsAtomic(effectType string) bool {
	return atomic[effectType]
}

// Apply applies a list of effects to the world, mutating it.
// Returns events emitted and output text collected.
func Apply(w *state.World, defs *state.Defs, effects []types.Effect) ([]types.Event, []string) {
	var events []types.Event
	var output []string

	for _, eff := range effects {
		switch eff.Type {
		case "say":
			text, _ := eff.Params["text"].(string)
			output = append(output, Interpolate(text, w))

		case "set_flag":
			flag, _ := eff.Params["flag"].(string)
			value, _ := eff.Params["value"].(bool)
			w.Flags[flag] = value
			events = append(events, types.Event{
				Type: "flag_changed",
				Data: map[string]any{"flag": flag, "value": value},
			})

		case "set_conversation":
			a := actor(w, eff)
			if a == nil {
				continue
			}
			a.Talk = dialogue.Recast(a.Talk, a.Name(), toStrings(eff.Params["lines"]))

		case "join_party":
			if a := actor(w, eff); a != nil {
				a.InParty = true
				events = append(events, types.Event{
					Type: "party_joined",
					Data: map[string]any{"character": a.ID},
				})
			}

		case "leave_party":
			if a := actor(w, eff); a != nil {
				a.InParty = false
				events = append(events, types.Event{
					Type: "party_left",
					Data: map[string]any{"character": a.ID},
				})
			}

		case "turn_hostile":
			if a := actor(w, eff); a != nil {
				a.InParty = false
				a.Hostile = true
				a.Fighter.Role = combat.RoleEnemy
				events = append(events, types.Event{
					Type: "turned_hostile",
					Data: map[string]any{"character": a.ID},
				})
			}

		case "open_exit":
			room, _ := eff.Params["room"].(string)
			direction, _ := eff.Params["direction"].(string)
			target, _ := eff.Params["target"].(string)
			r, ok := w.Rooms[room]
			if !ok {
				continue
			}
			r.Exits[direction] = target
			events = append(events, types.Event{
				Type: "exit_opened",
				Data: map[string]any{"room": room, "direction": direction, "target": target},
			})

		case "spawn":
			a := actor(w, eff)
			if a == nil {
				continue
			}
			room, _ := eff.Params["room"].(string)
			if room == "" {
				room = w.Location
			}
			a.Location = room
			events = append(events, types.Event{
				Type: "character_spawned",
				Data: map[string]any{"character": a.ID, "room": room},
			})

		case "give_item":
			item, _ := eff.Params["item"].(string)
			w.Inventory = append(w.Inventory, item)
			events = append(events, types.Event{
				Type: "item_given",
				Data: map[string]any{"item": item},
			})

		case "remove_item":
			item, _ := eff.Params["item"].(string)
			if state.RemoveItem(w, item) {
				events = append(events, types.Event{
					Type: "item_removed",
					Data: map[string]any{"item": item},
				})
			}

		default:
			// Control effects are the engine's business.
		}
	}

	return events, output
}

// Interpolate replaces template variables in narration text.
func Interpolate(text string, w *state.World) string {
	if !strings.Contains(text, "{") {
		return text
	}
	room := ""
	if r := state.CurrentRoom(w); r != nil {
		room = r.Name
	}
	r := strings.NewReplacer(
		"{player}", w.Player.Name,
		"{player.description}", w.PlayerDescription,
		"{room}", room,
	)
	return r.Replace(text)
}

func actor(w *state.World, eff types.Effect) *state.Actor {
	id, _ := eff.Params["character"].(string)
	return w.Actors[id]
}

// toStrings accepts both compiled []string and raw []any lists.
func toStrings(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
