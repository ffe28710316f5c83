// Package loader loads Lua game content into Go structs at compile time.
// The Lua VM is discarded after loading. No Lua runs during play.
package loader

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/manorquest/engine/state"
	"github.com/nathoo/manorquest/types"
)

// Character defaults for fields a definition leaves out.
const (
	defaultAttackMod = 1.0
	defaultMaxDamage = 5
	defaultWeakness  = "any"
)

// fightBranches are the outcome labels a Fight effect may carry.
var fightBranches = []string{"clean", "losses"}

// rawRoom holds a room table before compilation.
type rawRoom struct {
	id    string
	table *lua.LTable
}

// rawItem holds an item table before compilation.
type rawItem struct {
	id    string
	table *lua.LTable
}

// rawCharacter holds an Enemy or Friend table before compilation.
type rawCharacter struct {
	id    string
	kind  string
	table *lua.LTable
}

// rawHandler holds an event handler before compilation.
type rawHandler struct {
	eventType string
	table     *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	v := tbl.RawGetString(key)
	if b, ok := v.(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getNumber returns a numeric field and whether it was present.
func getNumber(tbl *lua.LTable, key string) (float64, bool) {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n), true
	}
	return 0, false
}

// getInt returns an int field from a Lua table, or def if missing.
func getInt(tbl *lua.LTable, key string, def int) int {
	if n, ok := getNumber(tbl, key); ok {
		return int(n)
	}
	return def
}

// getFloat returns a float field from a Lua table, or def if missing.
func getFloat(tbl *lua.LTable, key string, def float64) float64 {
	if n, ok := getNumber(tbl, key); ok {
		return n
	}
	return def
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// toGoValue converts a Lua value to a Go value recursively.
func toGoValue(v lua.LValue) any {
	switch val := v.(type) {
	case lua.LBool:
		return bool(val)
	case lua.LNumber:
		f := float64(val)
		if f == float64(int(f)) {
			return int(f)
		}
		return f
	case *lua.LNilType:
		return nil
	case lua.LString:
		return string(val)
	case *lua.LTable:
		// Sequential integer keys starting at 1 make an array.
		maxN := val.MaxN()
		if maxN > 0 {
			arr := make([]any, 0, maxN)
			for i := 1; i <= maxN; i++ {
				arr = append(arr, toGoValue(val.RawGetInt(i)))
			}
			return arr
		}
		m := map[string]any{}
		val.ForEach(func(k, v lua.LValue) {
			if ks, ok := k.(lua.LString); ok {
				m[string(ks)] = toGoValue(v)
			}
		})
		return m
	default:
		return nil
	}
}

// tableToStringMap converts a Lua table to a map[string]string.
func tableToStringMap(tbl *lua.LTable) map[string]string {
	m := map[string]string{}
	if tbl == nil {
		return m
	}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			if vs, ok := v.(lua.LString); ok {
				m[string(ks)] = string(vs)
			}
		}
	})
	return m
}

// tableToStrings converts the array part of a Lua table to strings,
// skipping anything that is not a string.
func tableToStrings(tbl *lua.LTable) []string {
	if tbl == nil {
		return nil
	}
	var out []string
	for i := 1; i <= tbl.MaxN(); i++ {
		if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// compile converts all collected Lua data into a Defs struct.
func compile(coll *collector) (*state.Defs, error) {
	defs := &state.Defs{
		Rooms:      map[string]types.RoomDef{},
		Items:      map[string]types.ItemDef{},
		Characters: map[string]types.CharacterDef{},
	}

	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}
	defs.Game = compileGame(coll.game)

	if coll.player == nil {
		return nil, fmt.Errorf("no Player{} definition found")
	}
	defs.Player = compilePlayer(coll.player)

	for _, raw := range coll.rooms {
		if _, dup := defs.Rooms[raw.id]; dup {
			return nil, fmt.Errorf("room %s defined twice", raw.id)
		}
		defs.Rooms[raw.id] = compileRoom(raw)
	}

	for _, raw := range coll.items {
		if _, dup := defs.Items[raw.id]; dup {
			return nil, fmt.Errorf("item %s defined twice", raw.id)
		}
		defs.Items[raw.id] = compileItem(raw)
	}

	for _, raw := range coll.characters {
		if _, dup := defs.Characters[raw.id]; dup {
			return nil, fmt.Errorf("character %s defined twice", raw.id)
		}
		defs.Characters[raw.id] = compileCharacter(raw)
		defs.CharacterOrder = append(defs.CharacterOrder, raw.id)
	}

	for _, raw := range coll.handlers {
		handler, err := compileHandler(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling %s handler: %w", raw.eventType, err)
		}
		defs.Handlers = append(defs.Handlers, handler)
	}

	return defs, nil
}

func compileGame(tbl *lua.LTable) types.GameDef {
	return types.GameDef{
		Title:   getString(tbl, "title"),
		Author:  getString(tbl, "author"),
		Version: getString(tbl, "version"),
		Start:   getString(tbl, "start"),
		Intro:   getString(tbl, "intro"),
	}
}

func compilePlayer(tbl *lua.LTable) types.PlayerDef {
	return types.PlayerDef{
		HP:        getInt(tbl, "hp", 0),
		Weapon:    getString(tbl, "weapon"),
		AttackMod: getFloat(tbl, "attack_mod", defaultAttackMod),
		MaxDamage: getInt(tbl, "max_damage", defaultMaxDamage),
		Items:     tableToStrings(getTable(tbl, "items")),
	}
}

// compileRoom compiles a raw room into a RoomDef. The display name falls
// back to the ID.
func compileRoom(raw rawRoom) types.RoomDef {
	tbl := raw.table
	room := types.RoomDef{
		ID:          raw.id,
		Name:        getString(tbl, "name"),
		Description: getString(tbl, "description"),
		Exits:       tableToStringMap(getTable(tbl, "exits")),
		Item:        getString(tbl, "item"),
		Search:      compileSearch(getTable(tbl, "search")),
	}
	if room.Name == "" {
		room.Name = raw.id
	}
	return room
}

// compileSearch reads an ordered list of { text = "...", found = bool }
// entries. A bare string is an entry that finds nothing.
func compileSearch(tbl *lua.LTable) []types.SearchEntry {
	if tbl == nil {
		return nil
	}
	var entries []types.SearchEntry
	for i := 1; i <= tbl.MaxN(); i++ {
		switch v := tbl.RawGetInt(i).(type) {
		case lua.LString:
			entries = append(entries, types.SearchEntry{Text: string(v)})
		case *lua.LTable:
			entries = append(entries, types.SearchEntry{
				Text:  getString(v, "text"),
				Found: getBool(v, "found", false),
			})
		}
	}
	return entries
}

func compileItem(raw rawItem) types.ItemDef {
	item := types.ItemDef{
		ID:          raw.id,
		Name:        getString(raw.table, "name"),
		Type:        getString(raw.table, "type"),
		Description: getString(raw.table, "description"),
	}
	if item.Name == "" {
		item.Name = raw.id
	}
	return item
}

func compileCharacter(raw rawCharacter) types.CharacterDef {
	tbl := raw.table
	c := types.CharacterDef{
		ID:           raw.id,
		Kind:         raw.kind,
		Name:         getString(tbl, "name"),
		Description:  getString(tbl, "description"),
		HP:           getInt(tbl, "hp", 0),
		Weapon:       getString(tbl, "weapon"),
		AttackMod:    getFloat(tbl, "attack_mod", defaultAttackMod),
		MaxDamage:    getInt(tbl, "max_damage", defaultMaxDamage),
		Items:        tableToStrings(getTable(tbl, "items")),
		Conversation: tableToStrings(getTable(tbl, "conversation")),
		Location:     getString(tbl, "location"),
	}
	if c.Name == "" {
		c.Name = raw.id
	}

	switch raw.kind {
	case state.KindEnemy:
		c.Weakness = getString(tbl, "weakness")
		if c.Weakness == "" {
			c.Weakness = defaultWeakness
		}
	case state.KindFriend:
		c.InParty = getBool(tbl, "in_party", false)
	}
	return c
}

func compileConditions(tbl *lua.LTable) []types.Condition {
	var conditions []types.Condition
	for i := 1; i <= tbl.MaxN(); i++ {
		if condTbl, ok := tbl.RawGetInt(i).(*lua.LTable); ok {
			conditions = append(conditions, compileCondition(condTbl))
		}
	}
	return conditions
}

func compileCondition(tbl *lua.LTable) types.Condition {
	condType := getString(tbl, "type")

	if condType == "not" {
		if innerTbl := getTable(tbl, "inner"); innerTbl != nil {
			inner := compileCondition(innerTbl)
			return types.Condition{
				Type:   "not",
				Negate: true,
				Inner:  &inner,
			}
		}
	}

	params := map[string]any{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok && string(ks) != "type" {
			params[string(ks)] = toGoValue(v)
		}
	})

	return types.Condition{
		Type:   condType,
		Params: params,
	}
}

// compileEffects compiles an effect list, keeping source order.
func compileEffects(tbl *lua.LTable) ([]types.Effect, error) {
	var effects []types.Effect
	for i := 1; i <= tbl.MaxN(); i++ {
		effTbl, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			return nil, fmt.Errorf("effect %d is not a table", i)
		}
		eff, err := compileEffect(effTbl)
		if err != nil {
			return nil, fmt.Errorf("effect %d: %w", i, err)
		}
		effects = append(effects, eff)
	}
	return effects, nil
}

// compileEffect compiles one effect. Choice and Fight carry nested effect
// lists, which become Branches.
func compileEffect(tbl *lua.LTable) (types.Effect, error) {
	eff := types.Effect{
		Type:   getString(tbl, "type"),
		Params: map[string]any{},
	}

	nested := map[string]bool{}
	switch eff.Type {
	case "choice":
		nested["branches"] = true
		branches, err := compileChoiceBranches(getTable(tbl, "branches"))
		if err != nil {
			return eff, err
		}
		eff.Branches = branches
	case "fight":
		for _, label := range fightBranches {
			nested[label] = true
			if branchTbl := getTable(tbl, label); branchTbl != nil {
				effs, err := compileEffects(branchTbl)
				if err != nil {
					return eff, fmt.Errorf("%s branch: %w", label, err)
				}
				eff.Branches = append(eff.Branches, types.Branch{Label: label, Effects: effs})
			}
		}
	}

	tbl.ForEach(func(k, v lua.LValue) {
		ks, ok := k.(lua.LString)
		if !ok || string(ks) == "type" || nested[string(ks)] {
			return
		}
		eff.Params[string(ks)] = toGoValue(v)
	})
	return eff, nil
}

func compileChoiceBranches(tbl *lua.LTable) ([]types.Branch, error) {
	if tbl == nil {
		return nil, fmt.Errorf("choice has no options")
	}
	var branches []types.Branch
	for i := 1; i <= tbl.MaxN(); i++ {
		opt, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			return nil, fmt.Errorf("choice option %d is not a table", i)
		}
		b := types.Branch{Label: getString(opt, "label")}
		if effTbl := getTable(opt, "effects"); effTbl != nil {
			effs, err := compileEffects(effTbl)
			if err != nil {
				return nil, fmt.Errorf("choice %q: %w", b.Label, err)
			}
			b.Effects = effs
		}
		branches = append(branches, b)
	}
	return branches, nil
}

func compileHandler(raw rawHandler) (types.EventHandler, error) {
	handler := types.EventHandler{
		EventType: raw.eventType,
	}

	if condTbl := getTable(raw.table, "conditions"); condTbl != nil {
		handler.Conditions = compileConditions(condTbl)
	}
	if effTbl := getTable(raw.table, "effects"); effTbl != nil {
		effs, err := compileEffects(effTbl)
		if err != nil {
			return handler, err
		}
		handler.Effects = effs
	}

	return handler, nil
}

// sortedLuaFiles returns .lua files in a directory, with game.lua first
// and the rest sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if f == "game.lua" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}
