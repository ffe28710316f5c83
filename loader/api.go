package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerConditionHelpers(L)
	registerEffectHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Game { title = "...", start = "...", intro = "..." }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	// Player { hp = 50, weapon = "...", attack_mod = 1.25, max_damage = 6, items = {...} }
	L.SetGlobal("Player", L.NewFunction(func(L *lua.LState) int {
		coll.player = L.CheckTable(1)
		return 0
	}))

	// Room "id" { ... }: Room("id") returns a function that takes a table.
	L.SetGlobal("Room", curried(L, func(id string, tbl *lua.LTable) {
		coll.rooms = append(coll.rooms, rawRoom{id: id, table: tbl})
	}))

	// Item "id" { name = "...", type = "weapon", description = "..." }
	L.SetGlobal("Item", curried(L, func(id string, tbl *lua.LTable) {
		coll.items = append(coll.items, rawItem{id: id, table: tbl})
	}))

	// Enemy "id" { ... } and Friend "id" { ... } share one table shape.
	L.SetGlobal("Enemy", curried(L, func(id string, tbl *lua.LTable) {
		coll.characters = append(coll.characters, rawCharacter{id: id, kind: "enemy", table: tbl})
	}))
	L.SetGlobal("Friend", curried(L, func(id string, tbl *lua.LTable) {
		coll.characters = append(coll.characters, rawCharacter{id: id, kind: "friend", table: tbl})
	}))

	// On("event_type", { conditions = {...}, effects = {...} })
	L.SetGlobal("On", L.NewFunction(func(L *lua.LState) int {
		eventType := L.CheckString(1)
		tbl := L.CheckTable(2)
		coll.handlers = append(coll.handlers, rawHandler{eventType: eventType, table: tbl})
		return 0
	}))
}

// curried builds a Kind "id" { ... } constructor.
func curried(L *lua.LState, collect func(id string, tbl *lua.LTable)) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			collect(id, L.CheckTable(1))
			return 0
		}))
		return 1
	})
}

func registerConditionHelpers(L *lua.LState) {
	// HasItem("item")
	L.SetGlobal("HasItem", stringHelper(L, "has_item", "item"))
	// FlagSet("flag")
	L.SetGlobal("FlagSet", stringHelper(L, "flag_set", "flag"))
	// FlagNot("flag")
	L.SetGlobal("FlagNot", stringHelper(L, "flag_not", "flag"))
	// InRoom("room")
	L.SetGlobal("InRoom", stringHelper(L, "in_room", "room"))
	// InParty("character")
	L.SetGlobal("InParty", stringHelper(L, "in_party", "character"))
	// Alive("character")
	L.SetGlobal("Alive", stringHelper(L, "alive", "character"))

	// FlagIs("flag", value)
	L.SetGlobal("FlagIs", L.NewFunction(func(L *lua.LState) int {
		flag := L.CheckString(1)
		value := L.CheckBool(2)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("flag_is"))
		tbl.RawSetString("flag", lua.LString(flag))
		tbl.RawSetString("value", lua.LBool(value))
		L.Push(tbl)
		return 1
	}))

	// Not(condition)
	L.SetGlobal("Not", L.NewFunction(func(L *lua.LState) int {
		inner := L.CheckTable(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("not"))
		tbl.RawSetString("inner", inner)
		L.Push(tbl)
		return 1
	}))
}

func registerEffectHelpers(L *lua.LState) {
	// Say("text")
	L.SetGlobal("Say", stringHelper(L, "say", "text"))
	// JoinParty("character")
	L.SetGlobal("JoinParty", stringHelper(L, "join_party", "character"))
	// LeaveParty("character")
	L.SetGlobal("LeaveParty", stringHelper(L, "leave_party", "character"))
	// TurnHostile("character")
	L.SetGlobal("TurnHostile", stringHelper(L, "turn_hostile", "character"))
	// GiveItem("item")
	L.SetGlobal("GiveItem", stringHelper(L, "give_item", "item"))
	// RemoveItem("item")
	L.SetGlobal("RemoveItem", stringHelper(L, "remove_item", "item"))

	// Pause(seconds)
	L.SetGlobal("Pause", L.NewFunction(func(L *lua.LState) int {
		seconds := L.CheckNumber(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("pause"))
		tbl.RawSetString("seconds", seconds)
		L.Push(tbl)
		return 1
	}))

	// Continue() or Continue("Press ENTER to begin the battle.")
	L.SetGlobal("Continue", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("continue"))
		if msg := L.OptString(1, ""); msg != "" {
			tbl.RawSetString("message", lua.LString(msg))
		}
		L.Push(tbl)
		return 1
	}))

	// SetFlag("flag", value)
	L.SetGlobal("SetFlag", L.NewFunction(func(L *lua.LState) int {
		flag := L.CheckString(1)
		value := L.CheckBool(2)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("set_flag"))
		tbl.RawSetString("flag", lua.LString(flag))
		tbl.RawSetString("value", lua.LBool(value))
		L.Push(tbl)
		return 1
	}))

	// SetConversation("character", { "line", ... })
	L.SetGlobal("SetConversation", L.NewFunction(func(L *lua.LState) int {
		character := L.CheckString(1)
		lines := L.CheckTable(2)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("set_conversation"))
		tbl.RawSetString("character", lua.LString(character))
		tbl.RawSetString("lines", lines)
		L.Push(tbl)
		return 1
	}))

	// OpenExit("room", "direction", "target")
	L.SetGlobal("OpenExit", L.NewFunction(func(L *lua.LState) int {
		room := L.CheckString(1)
		direction := L.CheckString(2)
		target := L.CheckString(3)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("open_exit"))
		tbl.RawSetString("room", lua.LString(room))
		tbl.RawSetString("direction", lua.LString(direction))
		tbl.RawSetString("target", lua.LString(target))
		L.Push(tbl)
		return 1
	}))

	// Spawn("character") or Spawn("character", "room")
	L.SetGlobal("Spawn", L.NewFunction(func(L *lua.LState) int {
		character := L.CheckString(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("spawn"))
		tbl.RawSetString("character", lua.LString(character))
		if room := L.OptString(2, ""); room != "" {
			tbl.RawSetString("room", lua.LString(room))
		}
		L.Push(tbl)
		return 1
	}))

	// Choice("question", { { label = "...", effects = {...} }, ... })
	L.SetGlobal("Choice", L.NewFunction(func(L *lua.LState) int {
		question := L.CheckString(1)
		branches := L.CheckTable(2)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("choice"))
		tbl.RawSetString("question", lua.LString(question))
		tbl.RawSetString("branches", branches)
		L.Push(tbl)
		return 1
	}))

	// Fight { can_flee = false, clean = {...}, losses = {...} }
	L.SetGlobal("Fight", L.NewFunction(func(L *lua.LState) int {
		opts := L.OptTable(1, L.NewTable())
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("fight"))
		tbl.RawSetString("can_flee", lua.LBool(getBool(opts, "can_flee", false)))
		for _, label := range fightBranches {
			if t := getTable(opts, label); t != nil {
				tbl.RawSetString(label, t)
			}
		}
		L.Push(tbl)
		return 1
	}))

	// EndGame(player_initiated)
	L.SetGlobal("EndGame", L.NewFunction(func(L *lua.LState) int {
		playerInitiated := L.OptBool(1, true)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("end_game"))
		tbl.RawSetString("player_initiated", lua.LBool(playerInitiated))
		L.Push(tbl)
		return 1
	}))
}

// stringHelper builds a one-argument helper that returns { type = kind, [key] = arg }.
func stringHelper(L *lua.LState, kind, key string) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		arg := L.CheckString(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString(kind))
		tbl.RawSetString(key, lua.LString(arg))
		L.Push(tbl)
		return 1
	})
}
