package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/nathoo/manorquest/engine/dialogue"
	"github.com/nathoo/manorquest/engine/state"
	"github.com/nathoo/manorquest/types"
)

// Theft thresholds.
const (
	stealRollNeeded  = 8 // the player's d20 must beat this
	noticeRollNeeded = 5 // the victim's d8 must beat this to notice
)

// builtin runs the verb's default behavior and returns the events it emitted.
func (e *Engine) builtin(ctx context.Context, intent types.Intent) []types.Event {
	switch intent.Verb {
	case "go":
		return e.builtinGo(intent.Object)
	case "fight":
		e.builtinFight(ctx, intent)
	case "search":
		return e.builtinSearch()
	case "talk":
		e.builtinTalk(intent.Object)
	case "steal":
		e.builtinSteal(intent.Object)
	case "inspect":
		e.builtinInspect(intent.Object)
	case "gift":
		e.builtinGift(intent.Object, intent.Target)
	case "help":
		e.emit("", commandListLine(), "", "You can repeat your previous command, just press Enter at the prompt.")
	case "quit":
		e.gameOver(true)
	case "look":
		e.emit(e.Look()...)
	case "inventory":
		e.builtinInventory()
	default:
		e.emit(invalidCommand)
	}
	return nil
}

func (e *Engine) builtinGo(direction string) []types.Event {
	if direction == "" {
		e.emit("Go where?")
		return nil
	}
	w := e.World
	room := state.CurrentRoom(w)
	target, ok := room.Exits[direction]
	if !ok {
		e.emit("", "You can't go that way.")
		return nil
	}
	if _, ok := w.Rooms[target]; !ok {
		e.emit("", "You can't go that way.")
		e.logger().Warn("exit leads to unknown room", "room", room.ID, "direction", direction, "target", target)
		return nil
	}

	for _, a := range state.Party(w) {
		a.Location = target
	}
	from := w.Location
	w.Location = target
	return []types.Event{{
		Type: "room_entered",
		Data: map[string]any{"room": target, "from": from},
	}}
}

func (e *Engine) builtinFight(ctx context.Context, intent types.Intent) {
	w := e.World
	enemies := state.Enemies(w)
	if len(enemies) == 0 {
		e.emit("There is no one to fight.")
		return
	}

	weapons := e.itemsOfType("weapon")
	weapon, ok := e.pickItem("Choose your weapon for this encounter: ", weapons, intent.Target)
	if !ok {
		e.emit("Perhaps some other time.")
		return
	}
	e.emit("")
	w.Player.Weapon = weapon

	outcome, err := e.encounter(ctx, state.Party(w), enemies, true)
	if err != nil {
		e.logger().Error("encounter failed", "error", err)
		return
	}
	if outcome.PlayerDied() {
		e.gameOver(false)
		return
	}

	e.emit("", "")
	if outcome.Fled() {
		e.emit("You live to fight another day, but you're still a quitter.")
	} else {
		e.emit("You have vanquished your enemies!")
	}
	if fallen := e.actorsFor(outcome.FallenParty()); len(fallen) > 0 {
		e.emit(fmt.Sprintf("Unfortunately, some of your party did not survive. %s died during the battle.", describeActors(fallen)))
	}
}

func (e *Engine) builtinSearch() []types.Event {
	w := e.World
	room := state.CurrentRoom(w)
	if room.Search == nil {
		e.emit("You find nothing of note.")
		return nil
	}

	entry := room.Search.Next()
	e.emit(entry.Text)
	if !entry.Found {
		return nil
	}

	if room.Item != "" {
		item := room.Item
		e.emit("", e.Defs.Items[item].Description)
		w.Inventory = append(w.Inventory, item)
		e.emit("", "[Item added to your inventory]: "+state.ItemName(e.Defs, item))
		room.Item = ""
		return []types.Event{{
			Type: "item_found",
			Data: map[string]any{"room": room.ID, "item": item},
		}}
	}

	return []types.Event{{
		Type: "search_found",
		Data: map[string]any{"room": room.ID, "text": entry.Text},
	}}
}

func (e *Engine) builtinTalk(object string) {
	w := e.World
	var everyone []*state.Actor
	everyone = append(everyone, state.Party(w)...)
	everyone = append(everyone, state.Neutral(w)...)
	everyone = append(everyone, state.Enemies(w)...)
	if len(everyone) == 0 {
		e.emit("There's no one here to talk to but yourself.")
		return
	}

	a, ok := e.pickActor(everyone, object)
	if !ok {
		return
	}
	if a.Talk == nil {
		e.emit(dialogue.Silent(a.Name()))
		return
	}
	e.emit(a.Talk.Next())
}

func (e *Engine) builtinSteal(object string) {
	w := e.World
	enemies := state.Enemies(w)
	if len(enemies) == 0 {
		e.emit("There is no one to steal from in this room.")
		return
	}

	victim, ok := e.pickActor(enemies, object)
	if !ok {
		return
	}
	roll := w.Player.RollDice(1, 20)

	switch {
	case len(victim.Items) == 0:
		e.emit(fmt.Sprintf("%s has nothing to steal.", victim.Name()))

	case victim.TheftAlerted:
		e.emit(fmt.Sprintf("%s has been alerted to your prior theft attempt.  Do not try again.", victim.Name()))

	case roll > stealRollNeeded:
		i := e.RNG.Intn(len(victim.Items))
		item := victim.Items[i]
		victim.Items = append(victim.Items[:i:i], victim.Items[i+1:]...)
		victim.TheftAlerted = true
		w.Inventory = append(w.Inventory, item)
		e.emit("Item stolen: " + state.FormatItemID(e.Defs, item))
		e.logger().Info("item stolen", "victim", victim.ID, "item", item, "roll", roll)

	case victim.Fighter.RollDice(1, 8) > noticeRollNeeded:
		victim.TheftAlerted = true
		e.emit(fmt.Sprintf("You were unsuccessful, and %s took notice.  Don't try it again.", victim.Name()))

	default:
		e.emit(fmt.Sprintf("You were unsuccesful, but %s didn't notice your attempt.", victim.Name()))
	}
}

func (e *Engine) builtinInspect(object string) {
	item, ok := e.pickItem("Here are the items that you may inspect:", e.World.Inventory, object)
	if !ok {
		return
	}
	e.emit("", state.FormatItemID(e.Defs, item))
}

func (e *Engine) builtinGift(object, target string) {
	w := e.World
	friends := append(state.Party(w), state.Neutral(w)...)
	if len(friends) == 0 {
		e.emit("There is no one for you to give an item to at this time.")
		return
	}

	recipient, ok := e.pickActor(friends, target)
	if !ok {
		return
	}
	item, ok := e.pickItem("Here are the items in your inventory:", w.Inventory, object)
	if !ok {
		return
	}

	state.RemoveItem(w, item)
	recipient.Items = append(recipient.Items, item)

	names := make([]string, len(recipient.Items))
	for i, id := range recipient.Items {
		names[i] = state.ItemName(e.Defs, id)
	}
	e.emit(
		"",
		fmt.Sprintf("%s's inventory: %s", recipient.Name(), strings.Join(names, ", ")),
		fmt.Sprintf("[%s]: Thank you.  Your kindness will not be soon forgotten.", recipient.Name()),
	)
}

func (e *Engine) builtinInventory() {
	inv := e.World.Inventory
	if len(inv) == 0 {
		e.emit("You are carrying nothing.")
		return
	}
	names := make([]string, len(inv))
	for i, id := range inv {
		names[i] = state.ItemName(e.Defs, id)
	}
	e.emit("You are carrying: " + strings.Join(names, ", ") + ".")
}

// gameOver ends the session. A death plays the slow farewell.
func (e *Engine) gameOver(playerInitiated bool) {
	if playerInitiated {
		e.emit("", "Thanks for playing!")
	} else {
		e.emit("You lost")
		for _, l := range []string{"\t.", "\t .", "\t  .", "\t   your life.", "Game Over."} {
			e.pause(1)
			e.emit(l)
		}
	}
	e.pause(2)
	e.World.Ended = true
	e.logger().Info("session ended",
		"player_initiated", playerInitiated,
		"turns", e.World.TurnCount,
		"room", e.World.Location,
	)
}

// pickActor resolves a named character or asks the player to choose one.
func (e *Engine) pickActor(actors []*state.Actor, name string) (*state.Actor, bool) {
	if name != "" {
		for _, a := range actors {
			if strings.EqualFold(a.Name(), name) || a.ID == name {
				return a, true
			}
		}
	}
	names := make([]string, len(actors))
	for i, a := range actors {
		names[i] = a.Name()
	}
	i, ok := e.Prompt.ChooseCharacter(names, true)
	if !ok || i < 0 || i >= len(actors) {
		return nil, false
	}
	return actors[i], true
}

// pickItem resolves a named item among ids or asks the player to choose one.
func (e *Engine) pickItem(header string, ids []string, name string) (string, bool) {
	if name != "" {
		for _, id := range ids {
			if strings.EqualFold(state.ItemName(e.Defs, id), name) || id == name {
				return id, true
			}
		}
	}
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = state.ItemName(e.Defs, id)
	}
	i, ok := e.Prompt.ChooseItem(header, names)
	if !ok || i < 0 || i >= len(ids) {
		return "", false
	}
	return ids[i], true
}

func (e *Engine) itemsOfType(kind string) []string {
	var ids []string
	for _, id := range e.World.Inventory {
		if e.Defs.Items[id].Type == kind {
			ids = append(ids, id)
		}
	}
	return ids
}
