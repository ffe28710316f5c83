// Package types defines the shared data structures for the ManorQuest engine.
// This package contains only type definitions. No logic, no methods.
package types

// Intent is the parsed representation of a player command.
type Intent struct {
	Verb   string
	Object string // optional
	Target string // optional
}

// Effect is a single atomic state mutation instruction. Control effects
// (choice, fight) carry nested effect lists in Branches.
type Effect struct {
	Type     string
	Params   map[string]any
	Branches []Branch
}

// Branch is a labelled list of effects, used by menus and fight outcomes.
type Branch struct {
	Label   string
	Effects []Effect
}

// Event is emitted after effects are applied.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of a single game step.
type Result struct {
	Effects []Effect
	Events  []Event
	Output  []string
	Ended   bool // the session is over (quit, death or an ending)
}

// Condition is a predicate that must be true for a handler to fire.
type Condition struct {
	Type   string         // "flag_set", "flag_not", "in_room", "in_party", etc.
	Params map[string]any // condition-specific parameters
	Negate bool           // true if wrapped in Not()
	Inner  *Condition     // for Not(): the negated inner condition
}

// EventHandler is a scripted story trigger fired by an engine event.
type EventHandler struct {
	EventType  string
	Conditions []Condition
	Effects    []Effect
}

// SearchEntry is one response a room gives when searched.
type SearchEntry struct {
	Text  string
	Found bool // true when the search turns up an item or triggers an event
}

// RoomDef is the base definition of a room.
type RoomDef struct {
	ID          string
	Name        string
	Description string
	Exits       map[string]string // direction → room_id
	Item        string            // item ID found by searching, optional
	Search      []SearchEntry
}

// ItemDef is the base definition of an item.
type ItemDef struct {
	ID          string
	Name        string
	Type        string // "weapon", "food", "currency", "story", ...
	Description string
}

// CharacterDef is the base definition of a non-player character.
type CharacterDef struct {
	ID           string
	Kind         string // "enemy" or "friend"
	Name         string
	Description  string
	HP           int
	Weapon       string // item ID, may be empty
	AttackMod    float64
	MaxDamage    int
	Items        []string
	Weakness     string // enemies only: item ID, "any" or "none"
	InParty      bool   // friends only
	Conversation []string
	Location     string // starting room, empty until spawned
}

// PlayerDef holds the player's starting statistics.
type PlayerDef struct {
	HP        int
	Weapon    string
	AttackMod float64
	MaxDamage int
	Items     []string
}

// GameDef holds game metadata from Lua.
type GameDef struct {
	Title   string
	Author  string
	Version string
	Start   string // starting room ID
	Intro   string
}
