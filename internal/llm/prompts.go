// Prompt builders for monster generation, evolution, and battles.
package llm

import (
	"fmt"
	"strings"

	"github.com/talgya/monsterforge/internal/monster"
)

// recentContext builds the avoid-duplicates clause from the last few
// generated names. The caller owns the collection and passes what it wants
// considered.
func recentContext(recent []string) string {
	if len(recent) == 0 {
		return ""
	}
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	return "\nAvoid creating monsters similar to: " + strings.Join(recent, ", ")
}

// GenerationPrompt asks for one monster in the strict key/value format the
// line-scan strategy parses best.
func GenerationPrompt(theme string, recent []string) string {
	themeText := ""
	if theme != "" {
		themeText = fmt.Sprintf(" (Theme: %s)", theme)
	}

	return fmt.Sprintf(`Create a unique Pokemon-like monster%s.%s

Respond in EXACTLY this format:

NAME: [creative name]
TYPE: [Fire, Water, Grass, Electric, Ice, Psychic, Dark, Dragon, or similar]
DESCRIPTION: [one sentence about appearance and behavior]
HP: [number between 50-150]
ATTACK: [number between 30-120]
DEFENSE: [number between 30-120]
SPEED: [number between 30-120]
SPECIAL: [number between 30-120]
ABILITY1: [first ability name]
ABILITY2: [second ability name]
EVOLUTION: [1, 2, or 3]
RARITY: [Common, Uncommon, Rare, Epic, or Legendary]

Keep it simple and follow the format exactly.`, themeText, recentContext(recent))
}

// JSONPrompt asks for one monster as a JSON object, for the fence-aware
// JSON decoder.
func JSONPrompt(theme string, recent []string) string {
	themeText := ""
	if theme != "" {
		themeText = fmt.Sprintf(" with a %s theme", theme)
	}

	return fmt.Sprintf(`Create a unique Pokemon-like creature%s with the following characteristics:%s
- A creative name
- One or two types (e.g., Fire, Water, Grass, Electric, Psychic, etc.)
- A brief description of its appearance and behavior
- 2-3 special abilities
- Stats: HP, Attack, Defense, Speed, Special (values between 30-120)

Respond ONLY with a JSON object with these fields: name, type, description, abilities (array of strings), stats (object with hp, attack, defense, speed, special), evolution_stage (1, 2, or 3), rarity.`,
		themeText, recentContext(recent))
}

// EvolutionPrompt asks for one stage of an evolution chain. Stage 1 is the
// small basic form; later stages build on the previous form.
func EvolutionPrompt(theme string, stage int, prev *monster.Monster) string {
	if stage <= 1 || prev == nil {
		return fmt.Sprintf(`Create the FIRST evolution stage of a %s-themed monster.

This should be a cute, small, basic form that will evolve into stronger forms.

NAME: [simple, cute name]
TYPE: [element type appropriate for %s]
DESCRIPTION: [small, adorable creature description]
HP: [60-80]
ATTACK: [30-50]
DEFENSE: [30-50]
SPEED: [40-60]
SPECIAL: [30-50]
ABILITY1: [basic ability]
ABILITY2: [basic ability]
EVOLUTION: 1
RARITY: Common`, theme, theme)
	}

	powerLevel := "intermediate"
	statRange := "HP: [90-110]\nATTACK: [60-80]\nDEFENSE: [60-80]\nSPEED: [60-80]\nSPECIAL: [60-80]"
	rarity := monster.RarityUncommon
	if stage >= 3 {
		powerLevel = "final, powerful"
		statRange = "HP: [120-150]\nATTACK: [90-120]\nDEFENSE: [90-120]\nSPEED: [90-120]\nSPECIAL: [90-120]"
		rarity = monster.RarityRare
	}

	return fmt.Sprintf(`Create the evolution of %s (stage %d of 3).

Previous form: %s - %s
Theme: %s

This should be a %s evolution that builds upon the previous form's design.
The name should feel related to %s but more mature and powerful.

NAME: [evolution name related to %s]
TYPE: %s
DESCRIPTION: [more mature, powerful version of the previous form]
%s
ABILITY1: [stronger ability, can reference previous abilities evolved]
ABILITY2: [stronger ability]
EVOLUTION: %d
RARITY: %s`,
		prev.Name, stage,
		prev.Name, prev.Kind,
		theme,
		powerLevel,
		prev.Name,
		prev.Name, prev.Kind,
		statRange,
		stage, rarity)
}

// LegendaryPrompt asks for a top-rarity mythical creature.
func LegendaryPrompt(theme string) string {
	return fmt.Sprintf(`Create a LEGENDARY, mythical monster with a %s theme.

This should be an incredibly rare, powerful, and majestic creature.

NAME: [epic, legendary-sounding name]
TYPE: [can be dual-type like "Dragon/Psychic"]
DESCRIPTION: [majestic, powerful, legendary creature with lore]
HP: 150
ATTACK: 110
DEFENSE: 110
SPEED: 100
SPECIAL: 120
ABILITY1: [unique signature ability]
ABILITY2: [unique signature ability]
ABILITY3: [unique signature ability]
EVOLUTION: 3
RARITY: Legendary`, theme)
}

// StarterPrompt asks for a friendly first-partner monster of the given
// element.
func StarterPrompt(element, theme string) string {
	return fmt.Sprintf(`Create a STARTER monster for trainers - %s.

This should be a stage 1 evolution monster that's friendly and appealing.

NAME: [cute, memorable name]
TYPE: %s
DESCRIPTION: [friendly, appealing first partner monster]
HP: 70
ATTACK: 45
DEFENSE: 45
SPEED: 50
SPECIAL: 50
ABILITY1: [basic %s ability]
ABILITY2: [basic %s ability]
EVOLUTION: 1
RARITY: Uncommon`, theme, element, element, element)
}

// BattlePrompt asks for a free-prose battle scenario between two monsters.
// There is no rules engine; the outcome is whatever the model writes.
func BattlePrompt(a, b *monster.Monster) string {
	var sb strings.Builder
	sb.WriteString("Create a brief battle scenario between these two Pokemon-like creatures:\n")
	for i, m := range []*monster.Monster{a, b} {
		fmt.Fprintf(&sb, "\nCreature %d:\nName: %s\nType: %s\nAbilities: %s\nStats:",
			i+1, m.Name, m.Kind, strings.Join(m.Abilities, ", "))
		for _, statName := range monster.StatNames {
			fmt.Fprintf(&sb, " %s %d", statName, m.Stat(statName))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\nDescribe how the battle would play out, considering their types, abilities, and stats. End by naming the winner.")
	return sb.String()
}
