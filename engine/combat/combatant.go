// Package combat resolves turn-based encounters between the player's party
// and a group of enemies.
package combat

import (
	"fmt"
	"math/rand/v2"
)

// criticalAttack is the attack value that triggers a critical hit. The
// comparison is an exact match against the modified attack value.
const criticalAttack = 20.0

// Role tags what kind of combatant a character is.
type Role int

const (
	RoleGeneric Role = iota
	RoleEnemy
	RolePlayer
)

func (r Role) String() string {
	switch r {
	case RoleGeneric:
		return "generic"
	case RoleEnemy:
		return "enemy"
	case RolePlayer:
		return "player"
	default:
		return "unknown"
	}
}

// Roller produces a die roll in [1, sides].
type Roller interface {
	Roll(sides int) int
}

// TargetChooser lets a human pick which opponent to attack.
// It returns an index into names.
type TargetChooser interface {
	ChooseTarget(names []string) int
}

// Combatant is anything that can take part in an encounter.
type Combatant interface {
	GetName() string
	GetHP() int
	SetHP(hp int)
	GetRole() Role
	RollDice(numDice, numSides int) int
	Attack(opponents []Combatant) AttackIntent
	Defend(attack float64, damage int, weapon string) DefenseResult
}

// AttackIntent is what an attacker decided to do on its turn.
type AttackIntent struct {
	Target Combatant
	Attack float64
	Damage int
	Weapon string
}

// DefenseKind classifies how an attack landed.
type DefenseKind int

const (
	DefenseBlocked DefenseKind = iota
	DefenseMissed
	DefenseHit
)

func (k DefenseKind) String() string {
	switch k {
	case DefenseBlocked:
		return "blocked"
	case DefenseMissed:
		return "missed"
	case DefenseHit:
		return "hit"
	default:
		return "unknown"
	}
}

// DefenseResult is the defender's report on an attack. Message is meant to
// follow the attacker's name, e.g. "Jack" + " misses Jill.".
type DefenseResult struct {
	Survived bool
	Kind     DefenseKind
	Critical bool
	Message  string
}

// Character is the standard Combatant used for the player and for every
// non-player character.
type Character struct {
	Name        string
	Description string
	HP          int
	Weapon      string
	AttackMod   float64
	MaxDamage   int
	Weakness    string
	Role        Role

	Dice    Roller
	Chooser TargetChooser // consulted for RolePlayer when there is a choice
}

func (c *Character) GetName() string { return c.Name }
func (c *Character) GetHP() int      { return c.HP }
func (c *Character) SetHP(hp int)    { c.HP = hp }
func (c *Character) GetRole() Role   { return c.Role }

// String renders "Name (description)".
func (c *Character) String() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.Description)
}

// RollDice returns the total of numDice rolls of a numSides die.
func (c *Character) RollDice(numDice, numSides int) int {
	if numSides < 1 {
		return 0
	}
	total := 0
	for i := 0; i < numDice; i++ {
		total += c.roller().Roll(numSides)
	}
	return total
}

func (c *Character) roller() Roller {
	if c.Dice == nil {
		return globalDice{}
	}
	return c.Dice
}

// Attack picks a target and rolls attack and damage. Non-player characters
// go for the opponent with the most health; the first one listed wins ties.
func (c *Character) Attack(opponents []Combatant) AttackIntent {
	if len(opponents) == 0 {
		return AttackIntent{Weapon: c.Weapon}
	}

	target := opponents[0]
	switch {
	case c.Role == RolePlayer && c.Chooser != nil && len(opponents) > 1:
		names := make([]string, len(opponents))
		for i, o := range opponents {
			names[i] = o.GetName()
		}
		if idx := c.Chooser.ChooseTarget(names); idx >= 0 && idx < len(opponents) {
			target = opponents[idx]
		}
	default:
		for _, o := range opponents[1:] {
			if o.GetHP() > target.GetHP() {
				target = o
			}
		}
	}

	return AttackIntent{
		Target: target,
		Attack: float64(c.RollDice(1, 20)) * c.AttackMod,
		Damage: c.RollDice(1, c.MaxDamage),
		Weapon: c.Weapon,
	}
}

// Defend rolls 1d20 against the attack and applies any damage.
func (c *Character) Defend(attack float64, damage int, weapon string) DefenseResult {
	defense := float64(c.RollDice(1, 20))

	switch {
	case attack > defense:
		critical := attack == criticalAttack
		if critical {
			if c.HP > 6 {
				c.HP /= 2
			} else {
				c.HP = 0
			}
		} else {
			if c.Role == RoleEnemy && c.weakTo(weapon) {
				damage++
			}
			c.HP -= damage
		}

		res := DefenseResult{Kind: DefenseHit, Critical: critical, Survived: c.HP > 0}
		switch {
		case !res.Survived:
			c.HP = 0
			res.Message = fmt.Sprintf(" kills %s.", c.Name)
		case critical:
			res.Message = fmt.Sprintf(" reduces %s's hitpoints by half. %s has %d hit points left.",
				c.Name, c.Name, c.HP)
		default:
			res.Message = fmt.Sprintf(" hits %s for %d damage.  %s has %d hit points left.",
				c.Name, damage, c.Name, c.HP)
		}
		return res

	case defense-attack > 2:
		return DefenseResult{Survived: true, Kind: DefenseMissed, Message: fmt.Sprintf(" misses %s.", c.Name)}

	default:
		return DefenseResult{Survived: true, Kind: DefenseBlocked, Message: fmt.Sprintf(" is blocked by %s.", c.Name)}
	}
}

// weakTo reports whether the weapon earns the one point weakness bonus.
func (c *Character) weakTo(weapon string) bool {
	switch c.Weakness {
	case "any":
		return true
	case "", "none":
		return false
	default:
		return weapon != "" && weapon == c.Weakness
	}
}

// globalDice backs characters that were built without a Roller.
type globalDice struct{}

func (globalDice) Roll(sides int) int { return rand.IntN(sides) + 1 }
