// Package rules evaluates the conditions that gate scripted story handlers.
package rules

import (
	"github.com/nathoo/manorquest/engine/state"
	"github.com/nathoo/manorquest/types"
)

// EvalCondition evaluates a single condition against the current world.
func EvalCondition(c types.Condition, w *state.World) bool {
	switch c.Type {
	case "has_item":
		item, _ := c.Params["item"].(string)
		return state.HasItem(w, item)

	case "flag_set":
		flag, _ := c.Params["flag"].(string)
		return state.GetFlag(w, flag)

	case "flag_not":
		flag, _ := c.Params["flag"].(string)
		return !state.GetFlag(w, flag)

	case "flag_is":
		flag, _ := c.Params["flag"].(string)
		value, _ := c.Params["value"].(bool)
		return state.GetFlag(w, flag) == value

	case "in_room":
		room, _ := c.Params["room"].(string)
		return state.PlayerLocation(w) == room

	case "in_party":
		id, _ := c.Params["character"].(string)
		a, ok := w.Actors[id]
		return ok && !a.Dead && a.InParty && !a.Hostile

	case "alive":
		id, _ := c.Params["character"].(string)
		a, ok := w.Actors[id]
		return ok && !a.Dead

	case "not":
		if c.Inner == nil {
			return true
		}
		return !EvalCondition(*c.Inner, w)

	default:
		return false
	}
}

// EvalAllConditions returns true if all conditions pass (AND logic).
// An empty condition list is vacuously true.
func EvalAllConditions(conditions []types.Condition, w *state.World) bool {
	for _, c := range conditions {
		if !EvalCondition(c, w) {
			return false
		}
	}
	return true
}
