package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/monsterforge/internal/monster"
)

func TestRecentContextKeepsLastThree(t *testing.T) {
	assert.Empty(t, recentContext(nil))

	ctx := recentContext([]string{"A", "B", "C", "D"})
	assert.NotContains(t, ctx, "A")
	assert.Contains(t, ctx, "B, C, D")
}

func TestGenerationPrompt(t *testing.T) {
	p := GenerationPrompt("volcanic", []string{"Embermouse"})
	assert.Contains(t, p, "Theme: volcanic")
	assert.Contains(t, p, "Embermouse")
	assert.Contains(t, p, "NAME:")
	assert.Contains(t, p, "SPECIAL:")

	// No theme, no context clause.
	p = GenerationPrompt("", nil)
	assert.NotContains(t, p, "Theme:")
	assert.NotContains(t, p, "Avoid creating")
}

func TestEvolutionPromptStages(t *testing.T) {
	first := EvolutionPrompt("storm", 1, nil)
	assert.Contains(t, first, "FIRST evolution stage")
	assert.Contains(t, first, "storm")

	prev := &monster.Monster{Name: "Sparkit", Kind: "Electric"}
	second := EvolutionPrompt("storm", 2, prev)
	assert.Contains(t, second, "Sparkit")
	assert.Contains(t, second, "stage 2 of 3")
	assert.Contains(t, second, monster.RarityUncommon)

	third := EvolutionPrompt("storm", 3, prev)
	assert.Contains(t, third, monster.RarityRare)
}

func TestBattlePromptNamesTheWinnerRequest(t *testing.T) {
	a := &monster.Monster{Name: "Voltfox", Kind: "Electric"}
	b := &monster.Monster{Name: "Aquafin", Kind: "Water"}

	p := BattlePrompt(a, b)
	assert.Contains(t, p, "Voltfox")
	assert.Contains(t, p, "Aquafin")
	assert.Contains(t, p, "End by naming the winner.")
}
