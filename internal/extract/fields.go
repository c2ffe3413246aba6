package extract

import "strings"

// field identifies which record slot a key/value line feeds.
type field int

const (
	fieldNone field = iota
	fieldName
	fieldKind
	fieldDescription
	fieldHP
	fieldAttack
	fieldDefense
	fieldSpeed
	fieldSpecial
	fieldAbility
	fieldEvolution
	fieldRarity
)

// fieldSynonyms maps normalized key fragments to fields. Resolution walks
// the table in order and the first fragment contained in the key wins, so
// order matters: "SPEED" and "SPECIAL" must appear before the bare "SP"
// fragment, and "ATTACK" before "SPECIAL" so "SPECIAL ATTACK" keys resolve
// the same way on every input.
var fieldSynonyms = []struct {
	frag string
	f    field
}{
	{"NAME", fieldName},
	{"TYPE", fieldKind},
	{"KIND", fieldKind},
	{"DESC", fieldDescription},
	{"HP", fieldHP},
	{"ATTACK", fieldAttack},
	{"ATK", fieldAttack},
	{"DEFENSE", fieldDefense},
	{"DEF", fieldDefense},
	{"SPEED", fieldSpeed},
	{"SPD", fieldSpeed},
	{"SPECIAL", fieldSpecial},
	{"SP", fieldSpecial},
	{"ABILITY", fieldAbility},
	{"MOVE", fieldAbility},
	{"EVOLUTION", fieldEvolution},
	{"STAGE", fieldEvolution},
	{"EVO", fieldEvolution},
	{"RARITY", fieldRarity},
	{"RARE", fieldRarity},
}

// resolveField maps an uppercased key to its field via the synonym table.
func resolveField(key string) field {
	for _, s := range fieldSynonyms {
		if strings.Contains(key, s.frag) {
			return s.f
		}
	}
	return fieldNone
}
