package llm

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/talgya/monsterforge/internal/extract"
	"github.com/talgya/monsterforge/internal/monster"
)

// TextSource produces a raw completion for a prompt. Satisfied by *Client;
// the generation layer only consumes the string result.
type TextSource interface {
	Complete(prompt string, temperature float64, maxTokens int) (string, error)
}

// Generator is the retry wrapper around a text source: one completion per
// attempt, each fed to the extractor, first success wins. After Retries
// failed attempts the caller gets an error, never a partial record.
type Generator struct {
	Source      TextSource
	Retries     int
	Delay       time.Duration
	Temperature float64
	MaxTokens   int
}

// NewGenerator creates a generator with the observed defaults: 3 attempts,
// 2s between them.
func NewGenerator(source TextSource) *Generator {
	return &Generator{
		Source:      source,
		Retries:     3,
		Delay:       2 * time.Second,
		Temperature: 0.8,
		MaxTokens:   400,
	}
}

// Generate produces one monster using the strict key/value prompt. The
// recent names are only prompt context; the caller owns that collection.
func (g *Generator) Generate(theme string, recent []string) (*monster.Monster, error) {
	return g.run(GenerationPrompt(theme, recent), extract.Extract)
}

// GenerateJSON produces one monster via the JSON-format prompt and the
// fence-aware decoder.
func (g *Generator) GenerateJSON(theme string, recent []string) (*monster.Monster, error) {
	return g.run(JSONPrompt(theme, recent), extract.DecodeJSON)
}

// Evolve produces the next evolution stage of an existing monster. The
// result is a new record linked to the original; the original is not
// mutated.
func (g *Generator) Evolve(prev *monster.Monster) (*monster.Monster, error) {
	stage := prev.EvolutionStage + 1
	if stage > 3 {
		return nil, fmt.Errorf("%s is already at the final evolution stage", prev.Name)
	}

	evolved, err := g.run(EvolutionPrompt(prev.Kind, stage, prev), extract.Extract)
	if err != nil {
		return nil, err
	}
	evolved.EvolutionStage = stage
	evolved.EvolvedFrom = prev.Name
	return evolved, nil
}

// EvolutionChain generates a complete chain of the given length, each stage
// prompted from the previous form. Stages that fail all retries are
// skipped, matching the best-effort behavior of batch generation.
func (g *Generator) EvolutionChain(theme string, stages int) ([]*monster.Monster, error) {
	if stages < 1 || stages > 3 {
		stages = 3
	}

	var chain []*monster.Monster
	var prev *monster.Monster
	for stage := 1; stage <= stages; stage++ {
		m, err := g.run(EvolutionPrompt(theme, stage, prev), extract.Extract)
		if err != nil {
			slog.Warn("evolution stage failed", "theme", theme, "stage", stage, "error", err)
			continue
		}
		m.EvolutionStage = stage
		if prev != nil {
			m.EvolvedFrom = prev.Name
		}
		chain = append(chain, m)
		prev = m
	}

	if len(chain) == 0 {
		return nil, fmt.Errorf("no stage of the %s chain could be generated", theme)
	}
	return chain, nil
}

// Legendary produces a single legendary-rarity monster.
func (g *Generator) Legendary(theme string) (*monster.Monster, error) {
	m, err := g.run(LegendaryPrompt(theme), extract.Extract)
	if err != nil {
		return nil, err
	}
	m.Rarity = monster.RarityLegendary
	return m, nil
}

// StarterTrio generates the classic Grass/Fire/Water starter set. Failed
// members are skipped.
func (g *Generator) StarterTrio() ([]*monster.Monster, error) {
	elements := []struct{ element, theme string }{
		{"Grass", "plant-based"},
		{"Fire", "flame-based"},
		{"Water", "aquatic"},
	}

	var trio []*monster.Monster
	for _, e := range elements {
		m, err := g.run(StarterPrompt(e.element, e.theme), extract.Extract)
		if err != nil {
			slog.Warn("starter generation failed", "element", e.element, "error", err)
			continue
		}
		trio = append(trio, m)
	}

	if len(trio) == 0 {
		return nil, fmt.Errorf("no starter could be generated")
	}
	return trio, nil
}

// run executes the attempt loop: completion, decode, retry after a fixed
// delay. Collaborator failures (connection trouble, non-2xx) produce the
// same outcome as an empty completion, nothing to parse.
func (g *Generator) run(prompt string, decode func(string) (*monster.Monster, error)) (*monster.Monster, error) {
	retries := g.Retries
	if retries < 1 {
		retries = 1
	}

	lastErr := extract.ErrNoUsableText
	for attempt := 1; attempt <= retries; attempt++ {
		if attempt > 1 && g.Delay > 0 {
			time.Sleep(g.Delay)
		}

		raw, err := g.Source.Complete(prompt, g.Temperature, g.MaxTokens)
		if err != nil {
			slog.Warn("completion failed", "attempt", attempt, "error", err)
			lastErr = extract.ErrNoUsableText
			continue
		}

		m, err := decode(raw)
		if err != nil {
			slog.Debug("extraction failed", "attempt", attempt, "error", err)
			lastErr = err
			continue
		}
		return m, nil
	}

	return nil, fmt.Errorf("no record produced after %d attempts: %w", retries, lastErr)
}

// Battle narrates a battle between two monsters. Outcomes are free prose;
// an empty completion is an error, not an empty story.
func (g *Generator) Battle(a, b *monster.Monster) (string, error) {
	raw, err := g.Source.Complete(BattlePrompt(a, b), 0.7, 500)
	if err != nil {
		return "", fmt.Errorf("battle narration: %w", err)
	}
	narration := strings.TrimSpace(raw)
	if narration == "" {
		return "", fmt.Errorf("battle narration: empty completion")
	}
	return narration, nil
}
