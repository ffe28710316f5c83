// Package state holds the immutable game definitions and the mutable
// session world built from them.
package state

import (
	"fmt"
	"sort"

	"github.com/nathoo/manorquest/engine/combat"
	"github.com/nathoo/manorquest/engine/dialogue"
	"github.com/nathoo/manorquest/types"
)

// Character kinds.
const (
	KindEnemy  = "enemy"
	KindFriend = "friend"
)

// searchFallback is what a room says once its search script runs dry.
var searchFallback = types.SearchEntry{Text: "You find nothing new."}

// Defs holds the immutable game definitions loaded from Lua.
type Defs struct {
	Game           types.GameDef
	Player         types.PlayerDef
	Rooms          map[string]types.RoomDef
	Items          map[string]types.ItemDef
	Characters     map[string]types.CharacterDef
	CharacterOrder []string // definition order, used for stable listings
	Handlers       []types.EventHandler
}

// Room is the runtime state of a room.
type Room struct {
	ID          string
	Name        string
	Description string
	Exits       map[string]string
	Item        string                              // empty once found
	Search      *dialogue.Script[types.SearchEntry] // nil when there is nothing to search
}

// Actor is the runtime state of a non-player character.
type Actor struct {
	ID           string
	Kind         string
	Fighter      *combat.Character
	Location     string // empty while off stage or dead
	InParty      bool
	Hostile      bool // a friend who turned on the player
	TheftAlerted bool
	Dead         bool
	Items        []string
	Talk         *dialogue.Script[string] // nil for characters with nothing to say
}

// Name is the actor's display name.
func (a *Actor) Name() string { return a.Fighter.Name }

// String renders "Name (description)".
func (a *Actor) String() string { return a.Fighter.String() }

// IsEnemy reports whether the actor fights on the enemy side.
func (a *Actor) IsEnemy() bool { return a.Kind == KindEnemy || a.Hostile }

// World is the complete mutable session state.
type World struct {
	Player            *combat.Character
	PlayerDescription string
	Inventory         []string
	Location          string
	Rooms             map[string]*Room
	Actors            map[string]*Actor
	Flags             map[string]bool
	TurnCount         int
	CommandLog        []string
	PreviousCommand   string
	Ended             bool
	actorOrder        []string
}

// NewWorld creates a fresh session from definitions. Every character,
// the player included, rolls through dice.
func NewWorld(defs *Defs, dice combat.Roller) *World {
	w := &World{
		Player: &combat.Character{
			HP:        defs.Player.HP,
			Weapon:    defs.Player.Weapon,
			AttackMod: defs.Player.AttackMod,
			MaxDamage: defs.Player.MaxDamage,
			Role:      combat.RolePlayer,
			Dice:      dice,
		},
		Inventory:  append([]string{}, defs.Player.Items...),
		Location:   defs.Game.Start,
		Rooms:      map[string]*Room{},
		Actors:     map[string]*Actor{},
		Flags:      map[string]bool{},
		CommandLog: []string{},
	}

	for id, def := range defs.Rooms {
		room := &Room{
			ID:          id,
			Name:        def.Name,
			Description: def.Description,
			Exits:       make(map[string]string, len(def.Exits)),
			Item:        def.Item,
		}
		for dir, target := range def.Exits {
			room.Exits[dir] = target
		}
		if len(def.Search) > 0 {
			room.Search = dialogue.NewScript(def.Search, searchFallback)
		}
		w.Rooms[id] = room
	}

	for _, id := range defs.CharacterOrder {
		def, ok := defs.Characters[id]
		if !ok {
			continue
		}
		w.Actors[id] = newActor(def, dice)
		w.actorOrder = append(w.actorOrder, id)
	}

	return w
}

func newActor(def types.CharacterDef, dice combat.Roller) *Actor {
	role := combat.RoleGeneric
	weakness := ""
	if def.Kind == KindEnemy {
		role = combat.RoleEnemy
		weakness = def.Weakness
	}
	return &Actor{
		ID:   def.ID,
		Kind: def.Kind,
		Fighter: &combat.Character{
			Name:        def.Name,
			Description: def.Description,
			HP:          def.HP,
			Weapon:      def.Weapon,
			AttackMod:   def.AttackMod,
			MaxDamage:   def.MaxDamage,
			Weakness:    weakness,
			Role:        role,
			Dice:        dice,
		},
		Location: def.Location,
		InParty:  def.InParty,
		Items:    append([]string{}, def.Items...),
		Talk:     dialogue.Conversation(def.Name, def.Conversation),
	}
}

// GetFlag returns the value of a flag. Unset flags return false.
func GetFlag(w *World, name string) bool {
	return w.Flags[name]
}

// HasItem returns true if the player has the given item in inventory.
func HasItem(w *World, itemID string) bool {
	for _, id := range w.Inventory {
		if id == itemID {
			return true
		}
	}
	return false
}

// RemoveItem takes one copy of an item out of the player's inventory.
func RemoveItem(w *World, itemID string) bool {
	for i, id := range w.Inventory {
		if id == itemID {
			w.Inventory = append(w.Inventory[:i:i], w.Inventory[i+1:]...)
			return true
		}
	}
	return false
}

// PlayerLocation returns the player's current room ID.
func PlayerLocation(w *World) string {
	return w.Location
}

// CurrentRoom returns the room the player is standing in.
func CurrentRoom(w *World) *Room {
	return w.Rooms[w.Location]
}

// ActorsInRoom returns the living actors in a room, in definition order.
func ActorsInRoom(w *World, roomID string) []*Actor {
	var result []*Actor
	for _, id := range w.actorOrder {
		a := w.Actors[id]
		if !a.Dead && a.Location == roomID {
			result = append(result, a)
		}
	}
	return result
}

// Party returns friends travelling with the player in the current room.
func Party(w *World) []*Actor {
	return filterRoom(w, func(a *Actor) bool { return !a.IsEnemy() && a.InParty })
}

// Neutral returns friends in the current room who have not joined the party.
func Neutral(w *World) []*Actor {
	return filterRoom(w, func(a *Actor) bool { return !a.IsEnemy() && !a.InParty })
}

// Enemies returns everyone in the current room who fights against the player.
func Enemies(w *World) []*Actor {
	return filterRoom(w, func(a *Actor) bool { return a.IsEnemy() })
}

func filterRoom(w *World, keep func(*Actor) bool) []*Actor {
	var result []*Actor
	for _, a := range ActorsInRoom(w, w.Location) {
		if keep(a) {
			result = append(result, a)
		}
	}
	return result
}

// AddActor registers a character created at runtime. The actor is placed
// after every character already known.
func AddActor(w *World, a *Actor) {
	if _, exists := w.Actors[a.ID]; !exists {
		w.actorOrder = append(w.actorOrder, a.ID)
	}
	w.Actors[a.ID] = a
}

// SortedExits returns a room's exit directions in alphabetical order.
func SortedExits(r *Room) []string {
	dirs := make([]string, 0, len(r.Exits))
	for dir := range r.Exits {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}

// ItemName returns the display name of an item.
func ItemName(defs *Defs, itemID string) string {
	if it, ok := defs.Items[itemID]; ok && it.Name != "" {
		return it.Name
	}
	return itemID
}

// FormatItem renders an item for inspection. Story items put their
// description on its own paragraph.
func FormatItem(it types.ItemDef) string {
	if it.Type == "story" {
		return fmt.Sprintf("%s (%s)\n\n%s", it.Name, it.Type, it.Description)
	}
	return fmt.Sprintf("%s (%s): %s", it.Name, it.Type, it.Description)
}

// FormatItemID renders an item by ID, falling back to the bare ID.
func FormatItemID(defs *Defs, itemID string) string {
	if it, ok := defs.Items[itemID]; ok {
		return FormatItem(it)
	}
	return itemID
}
