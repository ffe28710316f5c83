package combat

import "sort"

// RollInitiative has every combatant roll 1d20 and returns them ordered
// from highest roll to lowest. Equal rolls keep their input order.
// The input slice is not modified.
func RollInitiative(combatants []Combatant) []Combatant {
	type entry struct {
		roll int
		c    Combatant
	}
	entries := make([]entry, len(combatants))
	for i, c := range combatants {
		entries[i] = entry{roll: c.RollDice(1, 20), c: c}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].roll > entries[j].roll
	})

	order := make([]Combatant, len(entries))
	for i, e := range entries {
		order[i] = e.c
	}
	return order
}
