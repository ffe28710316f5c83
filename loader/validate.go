package loader

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/nathoo/manorquest/engine/effects"
	"github.com/nathoo/manorquest/engine/state"
	"github.com/nathoo/manorquest/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (e *ValidationError) errorf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

func (e *ValidationError) warnf(format string, args ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(format, args...))
}

// Effects the scene runner handles itself rather than effects.Apply.
var controlEffectTypes = map[string]bool{
	"pause":    true,
	"continue": true,
	"choice":   true,
	"fight":    true,
	"end_game": true,
}

// Known condition types.
var validConditionTypes = map[string]bool{
	"has_item": true,
	"flag_set": true,
	"flag_not": true,
	"flag_is":  true,
	"in_room":  true,
	"in_party": true,
	"alive":    true,
	"not":      true,
}

// Events the engine emits. Handlers for anything else never fire.
var knownEvents = map[string]bool{
	"room_entered":      true,
	"item_found":        true,
	"search_found":      true,
	"flag_changed":      true,
	"party_joined":      true,
	"party_left":        true,
	"turned_hostile":    true,
	"exit_opened":       true,
	"character_spawned": true,
	"item_given":        true,
	"item_removed":      true,
}

var validDirections = map[string]bool{
	"north": true, "south": true, "east": true, "west": true,
}

// validate checks the compiled defs for referential integrity and consistency.
func validate(defs *state.Defs) error {
	ve := &ValidationError{}

	if defs.Game.Title == "" {
		ve.errorf("Game.Title is required")
	}
	if defs.Game.Start == "" {
		ve.errorf("Game.Start is required")
	} else if _, ok := defs.Rooms[defs.Game.Start]; !ok {
		ve.errorf("start room %q not found in defined rooms", defs.Game.Start)
	}

	validatePlayer(defs, ve)

	for _, roomID := range sortedKeys(defs.Rooms) {
		room := defs.Rooms[roomID]
		for _, dir := range sortedKeys(room.Exits) {
			target := room.Exits[dir]
			if !validDirections[dir] {
				ve.errorf("room %q has exit in unknown direction %q", roomID, dir)
			}
			if _, ok := defs.Rooms[target]; !ok {
				ve.errorf("room %q exit %q points to undefined room %q", roomID, dir, target)
			}
		}
		if room.Item != "" && !hasItemDef(defs, room.Item) {
			ve.errorf("room %q holds undefined item %q", roomID, room.Item)
		}
		if room.Item != "" && !anyFound(room.Search) {
			ve.warnf("room %q holds item %q but no search entry finds it", roomID, room.Item)
		}
	}

	for _, itemID := range sortedKeys(defs.Items) {
		if defs.Items[itemID].Type == "" {
			ve.warnf("item %q has no type", itemID)
		}
	}

	for _, id := range defs.CharacterOrder {
		validateCharacter(defs.Characters[id], defs, ve)
	}

	for _, h := range defs.Handlers {
		if !knownEvents[h.EventType] {
			ve.warnf("handler for unknown event %q will never fire", h.EventType)
		}
		validateConditions(h.Conditions, defs, ve)
		validateEffects(h.Effects, defs, ve)
	}

	for _, w := range ve.Warnings {
		slog.Warn("game content", "warning", w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validatePlayer(defs *state.Defs, ve *ValidationError) {
	p := defs.Player
	if p.HP <= 0 {
		ve.errorf("Player.hp must be positive, got %d", p.HP)
	}
	if p.MaxDamage < 1 {
		ve.errorf("Player.max_damage must be at least 1, got %d", p.MaxDamage)
	}
	if p.Weapon != "" && !hasItemDef(defs, p.Weapon) {
		ve.errorf("Player.weapon references undefined item %q", p.Weapon)
	}
	for _, item := range p.Items {
		if !hasItemDef(defs, item) {
			ve.errorf("Player.items references undefined item %q", item)
		}
	}
}

func validateCharacter(c types.CharacterDef, defs *state.Defs, ve *ValidationError) {
	if c.HP <= 0 {
		ve.errorf("character %q hp must be positive, got %d", c.ID, c.HP)
	}
	if c.MaxDamage < 1 {
		ve.errorf("character %q max_damage must be at least 1, got %d", c.ID, c.MaxDamage)
	}
	if c.Location != "" {
		if _, ok := defs.Rooms[c.Location]; !ok {
			ve.errorf("character %q location %q does not match any defined room", c.ID, c.Location)
		}
	}
	if c.Weapon != "" && !hasItemDef(defs, c.Weapon) {
		ve.errorf("character %q weapon references undefined item %q", c.ID, c.Weapon)
	}
	for _, item := range c.Items {
		if !hasItemDef(defs, item) {
			ve.errorf("character %q carries undefined item %q", c.ID, item)
		}
	}
	if c.Kind == state.KindEnemy {
		switch c.Weakness {
		case "any", "none":
		default:
			if !hasItemDef(defs, c.Weakness) {
				ve.errorf("character %q weakness references undefined item %q", c.ID, c.Weakness)
			}
		}
	}
}

func validateConditions(conditions []types.Condition, defs *state.Defs, ve *ValidationError) {
	for _, cond := range conditions {
		if !validConditionTypes[cond.Type] {
			ve.errorf("unknown condition type %q", cond.Type)
			continue
		}

		switch cond.Type {
		case "not":
			if cond.Inner == nil {
				ve.errorf("condition not has no inner condition")
			} else {
				validateConditions([]types.Condition{*cond.Inner}, defs, ve)
			}
		case "has_item":
			checkItemRef(cond.Params, "condition has_item", defs, ve)
		case "in_room":
			checkRoomRef(cond.Params, "room", "condition in_room", defs, ve)
		case "in_party", "alive":
			checkCharacterRef(cond.Params, "condition "+cond.Type, defs, ve)
		}
	}
}

func validateEffects(effs []types.Effect, defs *state.Defs, ve *ValidationError) {
	for _, eff := range effs {
		if !effects.IsAtomic(eff.Type) && !controlEffectTypes[eff.Type] {
			ve.errorf("unknown effect type %q", eff.Type)
			continue
		}

		switch eff.Type {
		case "give_item", "remove_item":
			checkItemRef(eff.Params, "effect "+eff.Type, defs, ve)
		case "set_conversation", "join_party", "leave_party", "turn_hostile":
			checkCharacterRef(eff.Params, "effect "+eff.Type, defs, ve)
		case "spawn":
			checkCharacterRef(eff.Params, "effect spawn", defs, ve)
			if _, ok := eff.Params["room"]; ok {
				checkRoomRef(eff.Params, "room", "effect spawn", defs, ve)
			}
		case "open_exit":
			checkRoomRef(eff.Params, "room", "effect open_exit", defs, ve)
			checkRoomRef(eff.Params, "target", "effect open_exit target", defs, ve)
			if dir, _ := eff.Params["direction"].(string); !validDirections[dir] {
				ve.errorf("effect open_exit uses unknown direction %q", dir)
			}
		case "choice":
			if len(eff.Branches) == 0 {
				ve.errorf("effect choice has no options")
			}
			for _, b := range eff.Branches {
				if b.Label == "" {
					ve.errorf("effect choice has an option without a label")
				}
			}
		case "fight":
			if len(eff.Branches) == 0 {
				ve.warnf("effect fight has no clean or losses branch")
			}
		}

		for _, b := range eff.Branches {
			validateEffects(b.Effects, defs, ve)
		}
	}
}

func checkItemRef(params map[string]any, what string, defs *state.Defs, ve *ValidationError) {
	item, _ := params["item"].(string)
	if !hasItemDef(defs, item) {
		ve.errorf("%s references undefined item %q", what, item)
	}
}

func checkRoomRef(params map[string]any, key, what string, defs *state.Defs, ve *ValidationError) {
	room, _ := params[key].(string)
	if _, ok := defs.Rooms[room]; !ok {
		ve.errorf("%s references undefined room %q", what, room)
	}
}

func checkCharacterRef(params map[string]any, what string, defs *state.Defs, ve *ValidationError) {
	id, _ := params["character"].(string)
	if _, ok := defs.Characters[id]; !ok {
		ve.errorf("%s references undefined character %q", what, id)
	}
}

func hasItemDef(defs *state.Defs, id string) bool {
	_, ok := defs.Items[id]
	return ok
}

func anyFound(entries []types.SearchEntry) bool {
	for _, e := range entries {
		if e.Found {
			return true
		}
	}
	return false
}

// sortedKeys keeps error output stable across runs.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
