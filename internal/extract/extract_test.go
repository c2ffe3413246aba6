package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/monsterforge/internal/monster"
)

func TestExtractStructuredCompletion(t *testing.T) {
	raw := `NAME: Voltfox
TYPE: Electric
DESCRIPTION: A crackling fox that stores lightning in its tail.
HP: 72
ATTACK: 85
DEFENSE: 60
SPEED: 110
SPECIAL: 95
ABILITY1: Static Pounce
ABILITY2: Thunder Howl
EVOLUTION: 2
RARITY: Rare`

	m, err := Extract(raw)
	require.NoError(t, err)

	assert.Equal(t, "Voltfox", m.Name)
	assert.Equal(t, "Electric", m.Kind)
	assert.Equal(t, "A crackling fox that stores lightning in its tail.", m.Description)
	assert.Equal(t, 2, m.EvolutionStage)
	assert.Equal(t, "Rare", m.Rarity)
	assert.Equal(t, []string{"Static Pounce", "Thunder Howl"}, m.Abilities)

	require.Len(t, m.Stats, 5)
	assert.Equal(t, 72, m.Stats[monster.StatHP])
	assert.Equal(t, 85, m.Stats[monster.StatAttack])
	assert.Equal(t, 60, m.Stats[monster.StatDefense])
	assert.Equal(t, 110, m.Stats[monster.StatSpeed])
	assert.Equal(t, 95, m.Stats[monster.StatSpecial])
}

func TestExtractIsIdempotent(t *testing.T) {
	raw := `Name: Embermouse
Type: Fire
HP: 64
Attack: 70
Defense: 55
Speed: 80
Special: 65`

	first, err := Extract(raw)
	require.NoError(t, err)
	second, err := Extract(raw)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExtractToleratesMessyKeys(t *testing.T) {
	// Bullet markers, bold markdown, drifting synonyms, and headings all
	// show up in real completions.
	raw := `# Here is your monster

- **Name**: Thornback
* Kind: Grass
Desc: A spiny tortoise covered in brambles.
- HP: 90
- Atk: 65
- Def: 105
Spd: 40
Sp: 70
Move: Bramble Shield
Move: Bramble Shield
Move: Root Snare
Stage: 3
Rare: Epic`

	m, err := Extract(raw)
	require.NoError(t, err)

	assert.Equal(t, "Thornback", m.Name)
	assert.Equal(t, "Grass", m.Kind)
	assert.Equal(t, 90, m.Stats[monster.StatHP])
	assert.Equal(t, 65, m.Stats[monster.StatAttack])
	assert.Equal(t, 105, m.Stats[monster.StatDefense])
	assert.Equal(t, 40, m.Stats[monster.StatSpeed])
	assert.Equal(t, 70, m.Stats[monster.StatSpecial])
	// Duplicate moves collapse, first-seen order kept.
	assert.Equal(t, []string{"Bramble Shield", "Root Snare"}, m.Abilities)
	assert.Equal(t, 3, m.EvolutionStage)
	assert.Equal(t, "Epic", m.Rarity)
}

func TestExtractStrictStrategyWins(t *testing.T) {
	// MOVE and STAGE lines are only understood by the line scan; the
	// pattern strategy would produce default abilities and stage 1 from
	// this same text. The line-scan result must win.
	raw := `NAME: Cindertail
TYPE: Fire
HP: 60
ATTACK: 70
DEFENSE: 55
MOVE: Ember Flick
STAGE: 2`

	m, err := Extract(raw)
	require.NoError(t, err)

	assert.Equal(t, []string{"Ember Flick"}, m.Abilities)
	assert.Equal(t, 2, m.EvolutionStage)
	// Line-scan success also fills the two unfound stats.
	require.Len(t, m.Stats, 5)
	assert.Equal(t, monster.DefaultStat, m.Stats[monster.StatSpeed])
	assert.Equal(t, monster.DefaultStat, m.Stats[monster.StatSpecial])
}

func TestExtractClampsOutOfRangeStats(t *testing.T) {
	raw := `NAME: Tankalon
TYPE: Steel
HP: 9999
ATTACK: 0
DEFENSE: 80
SPEED: 55
SPECIAL: 45`

	m, err := Extract(raw)
	require.NoError(t, err)

	assert.Equal(t, monster.StatMax, m.Stats[monster.StatHP])
	assert.Equal(t, monster.StatMin, m.Stats[monster.StatAttack])
	assert.Equal(t, 80, m.Stats[monster.StatDefense])
}

func TestExtractDefaultsMissingFields(t *testing.T) {
	// Three stats is the strict-strategy minimum; the other two default,
	// along with description, abilities, and rarity.
	raw := `NAME: Mistwing
TYPE: Flying
HP: 66
ATTACK: 72
SPEED: 99`

	m, err := Extract(raw)
	require.NoError(t, err)

	assert.Equal(t, 66, m.Stats[monster.StatHP])
	assert.Equal(t, 72, m.Stats[monster.StatAttack])
	assert.Equal(t, 99, m.Stats[monster.StatSpeed])
	assert.Equal(t, monster.DefaultStat, m.Stats[monster.StatDefense])
	assert.Equal(t, monster.DefaultStat, m.Stats[monster.StatSpecial])
	assert.Equal(t, "A Flying-type monster", m.Description)
	assert.Equal(t, monster.DefaultAbilities, m.Abilities)
	assert.Equal(t, 1, m.EvolutionStage)
	assert.Equal(t, monster.RarityCommon, m.Rarity)
}

func TestExtractInvalidStageFallsBackToOne(t *testing.T) {
	raw := `NAME: Glitchling
TYPE: Psychic
HP: 50
ATTACK: 50
DEFENSE: 50
EVOLUTION: 7`

	m, err := Extract(raw)
	require.NoError(t, err)
	assert.Equal(t, 1, m.EvolutionStage)
}

func TestExtractPatternFallback(t *testing.T) {
	// Fewer than three stats fails the strict strategy; the pattern
	// strategy accepts one stat and leaves the rest absent.
	raw := `NAME: Sparkit
TYPE: Electric
HP: 70`

	m, err := Extract(raw)
	require.NoError(t, err)

	assert.Equal(t, "Sparkit", m.Name)
	assert.Equal(t, "Electric", m.Kind)
	require.Len(t, m.Stats, 1)
	assert.Equal(t, 70, m.Stats[monster.StatHP])
	// Absent stats read as the default through the accessor.
	assert.Equal(t, monster.DefaultStat, m.Stat(monster.StatSpeed))
	assert.Equal(t, []string{"Tackle"}, m.Abilities)
	assert.Equal(t, "A Electric type monster", m.Description)
}

func TestExtractSalvagesProse(t *testing.T) {
	raw := "Introducing Blazeclaw! Power 95, guard 70, swiftness 88."

	m, err := Extract(raw)
	require.NoError(t, err)

	assert.Equal(t, "Blazeclaw", m.Name)
	assert.Equal(t, "Normal", m.Kind)
	assert.Equal(t, 95, m.Stats[monster.StatHP])
	assert.Equal(t, 70, m.Stats[monster.StatAttack])
	assert.Equal(t, 88, m.Stats[monster.StatDefense])
	assert.Equal(t, 60, m.Stats[monster.StatSpeed])
	assert.Equal(t, 60, m.Stats[monster.StatSpecial])
	assert.Equal(t, []string{"Tackle", "Defend"}, m.Abilities)
	assert.Equal(t, 1, m.EvolutionStage)
	assert.Equal(t, monster.RarityCommon, m.Rarity)
}

func TestSalvageIgnoresOutOfRangeNumbers(t *testing.T) {
	// 19 and 201 are outside the plausible stat window; only three numbers
	// qualify, which is exactly the salvage minimum.
	raw := "Behold Stormdrake with 19 horns, vitality 120, might 90, speed 75, serial 201."

	m, err := Extract(raw)
	require.NoError(t, err)

	assert.Equal(t, "Stormdrake", m.Name)
	assert.Equal(t, 120, m.Stats[monster.StatHP])
	assert.Equal(t, 90, m.Stats[monster.StatAttack])
	assert.Equal(t, 75, m.Stats[monster.StatDefense])
	assert.Equal(t, 60, m.Stats[monster.StatSpeed])
}

func TestExtractEmptyInput(t *testing.T) {
	for _, raw := range []string{"", "   \n\t  "} {
		_, err := Extract(raw)
		assert.ErrorIs(t, err, ErrNoUsableText)
	}
}

func TestExtractUnparseableInput(t *testing.T) {
	_, err := Extract("hello there")
	assert.ErrorIs(t, err, ErrUnparseableRecord)
}

func TestResolveFieldOrdering(t *testing.T) {
	cases := map[string]field{
		"NAME":            fieldName,
		"TYPE":            fieldKind,
		"KIND":            fieldKind,
		"DESCRIPTION":     fieldDescription,
		"HP":              fieldHP,
		"ATTACK":          fieldAttack,
		"ATK":             fieldAttack,
		"SPECIAL ATTACK":  fieldAttack,
		"DEFENSE":         fieldDefense,
		"SPEED":           fieldSpeed,
		"SPD":             fieldSpeed,
		"SPECIAL":         fieldSpecial,
		"SP":              fieldSpecial,
		"ABILITY1":        fieldAbility,
		"MOVE":            fieldAbility,
		"EVOLUTION_STAGE": fieldEvolution,
		"STAGE":           fieldEvolution,
		"RARITY":          fieldRarity,
		"WEIGHT":          fieldNone,
	}
	for key, want := range cases {
		assert.Equal(t, want, resolveField(key), "key %q", key)
	}
}
