package combat

// State is the phase an encounter is in.
type State int

const (
	EncounterActive State = iota
	PlayerFleeing
	PartyDefeated
	EnemiesDefeated
	PlayerFled
)

func (s State) String() string {
	switch s {
	case EncounterActive:
		return "encounter_active"
	case PlayerFleeing:
		return "player_fleeing"
	case PartyDefeated:
		return "party_defeated"
	case EnemiesDefeated:
		return "enemies_defeated"
	case PlayerFled:
		return "player_fled"
	default:
		return "unknown"
	}
}

// Terminal reports whether the encounter is over.
func (s State) Terminal() bool {
	return s == PartyDefeated || s == EnemiesDefeated || s == PlayerFled
}

// Outcome is the read-only result of a resolved encounter. The player never
// appears among the fallen; a player death is reported by PlayerDied.
type Outcome struct {
	id            string
	state         State
	fallenParty   []Combatant
	fallenEnemies []Combatant
	survivors     []Combatant
	fled          bool
	playerDied    bool
	turns         int
}

// ID is the encounter identifier used in logs and traces.
func (o *Outcome) ID() string { return o.id }

// State is the terminal state the encounter ended in.
func (o *Outcome) State() State { return o.state }

// FallenParty lists party members killed, in order of death.
func (o *Outcome) FallenParty() []Combatant { return clone(o.fallenParty) }

// FallenEnemies lists enemies killed, in order of death.
func (o *Outcome) FallenEnemies() []Combatant { return clone(o.fallenEnemies) }

// Survivors lists everyone still standing, in turn order.
func (o *Outcome) Survivors() []Combatant { return clone(o.survivors) }

// Fled is true when the player escaped alive.
func (o *Outcome) Fled() bool { return o.fled }

// PlayerDied is true when the encounter killed the player.
func (o *Outcome) PlayerDied() bool { return o.playerDied }

// Turns is the number of turns taken, including a flight attempt.
func (o *Outcome) Turns() int { return o.turns }

func clone(cs []Combatant) []Combatant {
	if cs == nil {
		return nil
	}
	out := make([]Combatant, len(cs))
	copy(out, cs)
	return out
}
