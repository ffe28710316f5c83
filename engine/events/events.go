// Package events routes the events a turn emits to the story's handlers.
package events

import (
	"github.com/nathoo/manorquest/engine/rules"
	"github.com/nathoo/manorquest/engine/state"
	"github.com/nathoo/manorquest/types"
)

// Dispatch returns the effects of every handler whose event type and
// conditions match. Conditions are judged against w before any of the
// returned effects run. Effects come out grouped by event in emission order,
// then by handler declaration order.
func Dispatch(evts []types.Event, w *state.World, defs *state.Defs) []types.Effect {
	if len(evts) == 0 || len(defs.Handlers) == 0 {
		return nil
	}

	byType := handlersByType(defs.Handlers)
	var effs []types.Effect
	for _, ev := range evts {
		for _, h := range byType[ev.Type] {
			if rules.EvalAllConditions(h.Conditions, w) {
				effs = append(effs, h.Effects...)
			}
		}
	}
	return effs
}

func handlersByType(hs []types.EventHandler) map[string][]*types.EventHandler {
	m := make(map[string][]*types.EventHandler, len(hs))
	for i := range hs {
		m[hs[i].EventType] = append(m[hs[i].EventType], &hs[i])
	}
	return m
}
