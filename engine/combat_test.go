package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/nathoo/manorquest/engine/state"
	"github.com/nathoo/manorquest/types"
)

// rig fixes every roll: the player's and each named actor's.
func rig(e *Engine, player int, actors map[string]int) {
	e.World.Player.Dice = fixedDice(player)
	for id, roll := range actors {
		e.World.Actors[id].Fighter.Dice = fixedDice(roll)
	}
}

func TestFight_Victory(t *testing.T) {
	p := &stubPrompt{item: 0, itemOK: true}
	e, _ := newTestEngine(t, p)
	e.World.Location = "dining_hall"
	rig(e, 19, map[string]int{"jack": 1})

	result := step(e, "fight")

	if p.itemHeaders[0] != "Choose your weapon for this encounter: " {
		t.Errorf("header = %q", p.itemHeaders[0])
	}
	if strings.Join(p.itemNames[0], ",") != "Mace of Base,hunter's bow" {
		t.Errorf("weapons offered = %v", p.itemNames[0])
	}
	if e.World.Player.Weapon != "mace" {
		t.Errorf("weapon = %q", e.World.Player.Weapon)
	}
	if !outputContains(result.Output, "Ada kills Jack.") {
		t.Errorf("got %v", result.Output)
	}
	if !outputContains(result.Output, "You have vanquished your enemies!") {
		t.Errorf("got %v", result.Output)
	}
	jack := e.World.Actors["jack"]
	if !jack.Dead || jack.Location != "" {
		t.Error("fallen enemy should leave the room")
	}
	if len(state.Enemies(e.World)) != 0 {
		t.Error("no enemies should remain")
	}
}

func TestFight_Cancelled(t *testing.T) {
	e, _ := newTestEngine(t, &stubPrompt{})
	e.World.Location = "dining_hall"

	result := step(e, "fight")
	if !outputContains(result.Output, "Perhaps some other time.") {
		t.Errorf("got %v", result.Output)
	}
	if e.World.Actors["jack"].Dead {
		t.Error("no fight should have happened")
	}
}

func TestFight_NoEnemies(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	result := step(e, "fight")
	if !outputContains(result.Output, "There is no one to fight.") {
		t.Errorf("got %v", result.Output)
	}
}

func TestFight_WeaponByName(t *testing.T) {
	p := &stubPrompt{}
	e, _ := newTestEngine(t, p)
	e.World.Location = "dining_hall"
	rig(e, 19, map[string]int{"jack": 1})

	step(e, "fight jack with hunter's bow")

	if len(p.itemHeaders) != 0 {
		t.Error("named weapon should not prompt")
	}
	if e.World.Player.Weapon != "bow" {
		t.Errorf("weapon = %q", e.World.Player.Weapon)
	}
}

func TestFight_PlayerDeathEndsGame(t *testing.T) {
	p := &stubPrompt{item: 0, itemOK: true}
	e, _ := newTestEngine(t, p)
	e.World.Location = "dining_hall"
	e.World.Player.HP = 1
	e.World.Actors["jack"].Fighter.HP = 100
	rig(e, 1, map[string]int{"jack": 19})

	result := step(e, "fight")

	if !result.Ended {
		t.Fatal("expected the session to end")
	}
	for _, want := range []string{"Jack kills Ada.", "You lost", "\t   your life.", "Game Over."} {
		if !outputContains(result.Output, want) {
			t.Errorf("missing %q in %v", want, result.Output)
		}
	}
	if outputContains(result.Output, "vanquished") {
		t.Error("a dead player vanquishes nobody")
	}
}

func TestFight_FleeReportsQuitter(t *testing.T) {
	p := &stubPrompt{item: 0, itemOK: true, yes: true}
	e, _ := newTestEngine(t, p)
	e.World.Location = "dining_hall"
	e.World.Player.HP = 4
	rig(e, 19, map[string]int{"jack": 1})

	result := step(e, "fight")

	if !outputContains(result.Output, "Jack attacked you for 1 damage whilst fleeing.") {
		t.Errorf("got %v", result.Output)
	}
	if !outputContains(result.Output, "You live to fight another day, but you're still a quitter.") {
		t.Errorf("got %v", result.Output)
	}
	if e.World.Player.HP != 3 {
		t.Errorf("hp = %d", e.World.Player.HP)
	}
	if e.World.Actors["jack"].Dead {
		t.Error("jack should survive a flight")
	}
}

func TestFight_PartyLossReported(t *testing.T) {
	p := &stubPrompt{item: 1, itemOK: true}
	e, _ := newTestEngine(t, p)
	e.World.Location = "dining_hall"
	jill := e.World.Actors["jill"]
	jill.Location = "dining_hall"
	jill.InParty = true
	jill.Fighter.HP = 10
	e.World.Player.HP = 8
	e.World.Actors["jack"].Fighter.HP = 30
	// Initiative runs Ada, Jack, Jill. Jack goes for the healthier Jill.
	rig(e, 19, map[string]int{"jack": 18, "jill": 10})

	result := step(e, "fight")

	if result.Ended {
		t.Fatalf("player should survive, got %v", result.Output)
	}
	if !outputContains(result.Output, "Jack kills Jill.") {
		t.Errorf("got %v", result.Output)
	}
	want := "Unfortunately, some of your party did not survive. Jill (A lovely rogue) died during the battle."
	if !outputContains(result.Output, want) {
		t.Errorf("missing party loss line in %v", result.Output)
	}
	if !jill.Dead || jill.InParty {
		t.Error("fallen party member should be retired")
	}
}

func TestScene_ChoiceAndFightBranches(t *testing.T) {
	tests := []struct {
		name     string
		menu     int
		jillHP   int
		playerHP int
		want     string
		notWant  string
	}{
		{name: "peaceful ending", menu: 0, jillHP: 15, playerHP: 50, want: "[Old Man]: Fine.", notWant: "Golem"},
		{name: "clean victory", menu: 1, jillHP: 100, playerHP: 50, want: "won clean", notWant: "losses"},
		{name: "victory with losses", menu: 1, jillHP: 6, playerHP: 5, want: "won with losses", notWant: "clean"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &stubPrompt{menu: tt.menu}
			e, _ := newTestEngine(t, p)
			e.World.Location = "old_library"
			e.World.Player.HP = tt.playerHP
			jill := e.World.Actors["jill"]
			jill.Location = "old_library"
			jill.InParty = true
			jill.Fighter.HP = tt.jillHP
			// The golem acts first with a critical against the healthier of
			// Ada and Jill; Ada then finishes it.
			rig(e, 19, map[string]int{"golem": 20, "jill": 1})

			result := step(e, "search")

			if !outputContains(result.Output, "[Ada]: This was easy enough.") {
				t.Errorf("missing interpolated line in %v", result.Output)
			}
			if len(p.menus) != 1 || strings.Join(p.menus[0], ",") != "knowledge,create new order" {
				t.Errorf("menus = %v", p.menus)
			}
			if !outputContains(result.Output, tt.want) {
				t.Errorf("missing %q in %v", tt.want, result.Output)
			}
			if outputContains(result.Output, tt.notWant) {
				t.Errorf("unexpected %q in %v", tt.notWant, result.Output)
			}
			if !result.Ended {
				t.Error("every ending closes the session")
			}
		})
	}
}

func TestScene_StopsWhenSessionEnds(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	e.run(context.Background(), []types.Effect{
		{Type: "end_game", Params: map[string]any{"player_initiated": true}},
		{Type: "say", Params: map[string]any{"text": "never said"}},
	})
	out := e.tx.take()
	if outputContains(out, "never said") {
		t.Errorf("effects ran after the end: %v", out)
	}
}

func TestScene_TurnHostileFightsAgainstPlayer(t *testing.T) {
	e, _ := newTestEngine(t, &stubPrompt{})
	e.World.Location = "ballroom"
	jill := e.World.Actors["jill"]
	jill.InParty = true
	rig(e, 19, map[string]int{"jill": 1})

	e.run(context.Background(), []types.Effect{
		{Type: "turn_hostile", Params: map[string]any{"character": "jill"}},
		{Type: "fight", Params: map[string]any{"can_flee": false}, Branches: []types.Branch{
			{Label: "clean", Effects: []types.Effect{{Type: "say", Params: map[string]any{"text": "[{player}]: How pathetic."}}}},
		}},
	})

	out := e.tx.take()
	if !outputContains(out, "Ada kills Jill.") {
		t.Errorf("expected the player to strike Jill down, got %v", out)
	}
	if !outputContains(out, "[Ada]: How pathetic.") {
		t.Errorf("got %v", out)
	}
	if !jill.Dead {
		t.Error("hostile Jill should have fallen")
	}
}

func TestScene_FightWithoutEnemiesTakesCleanBranch(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	e.run(context.Background(), []types.Effect{
		{Type: "fight", Branches: []types.Branch{
			{Label: "clean", Effects: []types.Effect{{Type: "say", Params: map[string]any{"text": "quiet"}}}},
		}},
	})
	if out := e.tx.take(); !outputContains(out, "quiet") {
		t.Errorf("got %v", out)
	}
}
