// Package monster defines the structured creature record produced by
// extraction and stored by persistence.
package monster

// Stat names. Every record carries all five once extraction succeeds via
// the strict or salvage paths.
const (
	StatHP      = "HP"
	StatAttack  = "Attack"
	StatDefense = "Defense"
	StatSpeed   = "Speed"
	StatSpecial = "Special"
)

// StatNames lists the fixed stat set in canonical (and salvage-assignment)
// order.
var StatNames = []string{StatHP, StatAttack, StatDefense, StatSpeed, StatSpecial}

// Stat value bounds and defaults.
const (
	StatMin     = 1
	StatMax     = 200
	DefaultStat = 50
)

// Conventional rarity labels. The field is free text; these are the values
// the prompts ask for.
const (
	RarityCommon    = "Common"
	RarityUncommon  = "Uncommon"
	RarityRare      = "Rare"
	RarityEpic      = "Epic"
	RarityLegendary = "Legendary"
)

// DefaultAbilities is the fallback move set when a completion names none.
var DefaultAbilities = []string{"Tackle", "Growl"}

// Monster is a generated battling creature. The JSON field names match the
// monsters.json layout produced by earlier script versions of this tool.
type Monster struct {
	ID             string         `json:"id,omitempty"`
	Name           string         `json:"name"`
	Kind           string         `json:"type"`
	Description    string         `json:"description"`
	Stats          map[string]int `json:"stats"`
	Abilities      []string       `json:"abilities"`
	EvolutionStage int            `json:"evolution_stage"`
	Rarity         string         `json:"rarity"`
	EvolvedFrom    string         `json:"evolved_from,omitempty"`
}

// Stat returns the named stat, or DefaultStat when absent.
func (m *Monster) Stat(name string) int {
	if v, ok := m.Stats[name]; ok {
		return v
	}
	return DefaultStat
}
