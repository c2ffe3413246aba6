package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/talgya/monsterforge/internal/monster"
)

// FenceSource tags where Unwrap found its candidate payload.
type FenceSource int

const (
	// SourceNone: the text was empty; there is nothing to decode.
	SourceNone FenceSource = iota
	// SourceFence: the payload came from inside a markdown code fence.
	SourceFence
	// SourceBare: no complete fence was found; the whole text is the payload.
	SourceBare
)

// Unwrapped is the tagged result of the fence scan.
type Unwrapped struct {
	Source FenceSource
	Body   string
}

// Unwrap locates the first complete markdown code fence (with or without a
// language tag) and returns its interior, falling back to the whole text.
// Implemented as a two-state line scan rather than nested error handling.
func Unwrap(raw string) Unwrapped {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Unwrapped{Source: SourceNone}
	}

	const (
		scanning = iota
		inFence
	)

	state := scanning
	var body []string
	for _, line := range strings.Split(raw, "\n") {
		switch state {
		case scanning:
			if strings.HasPrefix(strings.TrimSpace(line), "```") {
				state = inFence
			}
		case inFence:
			if strings.HasPrefix(strings.TrimSpace(line), "```") {
				return Unwrapped{Source: SourceFence, Body: strings.TrimSpace(strings.Join(body, "\n"))}
			}
			body = append(body, line)
		}
	}

	// Opened but never closed, or no fence at all: decode the whole text.
	return Unwrapped{Source: SourceBare, Body: trimmed}
}

// jsonRecord mirrors the field names the JSON-format prompt asks for.
// Stats arrive with lowercase keys and occasionally string values.
type jsonRecord struct {
	Name           string         `json:"name"`
	Kind           string         `json:"type"`
	Description    string         `json:"description"`
	Abilities      []string       `json:"abilities"`
	Stats          map[string]any `json:"stats"`
	EvolutionStage int            `json:"evolution_stage"`
	Rarity         string         `json:"rarity"`
}

// DecodeJSON builds a record from a JSON-emitting completion. The payload
// is located with Unwrap, then decoded and normalized to the same
// invariants as Extract: all five stats present and clamped, distinct
// non-empty abilities, defaults for anything the model omitted.
func DecodeJSON(raw string) (*monster.Monster, error) {
	u := Unwrap(raw)
	if u.Source == SourceNone {
		return nil, ErrNoUsableText
	}

	var rec jsonRecord
	if err := json.Unmarshal([]byte(u.Body), &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseableRecord, err)
	}
	if strings.TrimSpace(rec.Name) == "" {
		return nil, fmt.Errorf("%w: record has no name", ErrUnparseableRecord)
	}

	stats := make(map[string]int, len(monster.StatNames))
	for key, val := range rec.Stats {
		statName, ok := canonicalStat(key)
		if !ok {
			continue
		}
		if n, ok := coerceStat(val); ok {
			stats[statName] = n
		}
	}
	for _, s := range monster.StatNames {
		if _, ok := stats[s]; !ok {
			stats[s] = monster.DefaultStat
		}
	}

	var abilities []string
	for _, a := range rec.Abilities {
		a = strings.TrimSpace(a)
		if a != "" {
			abilities = appendUnique(abilities, a)
		}
	}
	if len(abilities) == 0 {
		abilities = append(abilities, monster.DefaultAbilities...)
	}

	kind := strings.TrimSpace(rec.Kind)
	if kind == "" {
		kind = "Unknown"
	}
	desc := strings.TrimSpace(rec.Description)
	if desc == "" {
		desc = fmt.Sprintf("A %s-type monster", kind)
	}
	rarity := strings.TrimSpace(rec.Rarity)
	if rarity == "" {
		rarity = monster.RarityCommon
	}
	stage := rec.EvolutionStage
	if stage < 1 || stage > 3 {
		stage = 1
	}

	return &monster.Monster{
		Name:           strings.TrimSpace(rec.Name),
		Kind:           kind,
		Description:    desc,
		Stats:          stats,
		Abilities:      abilities,
		EvolutionStage: stage,
		Rarity:         rarity,
	}, nil
}

// canonicalStat maps a loosely-cased JSON stat key ("hp", "Attack",
// "special_attack") onto the fixed stat set.
func canonicalStat(key string) (string, bool) {
	switch resolveField(strings.ToUpper(strings.TrimSpace(key))) {
	case fieldHP:
		return monster.StatHP, true
	case fieldAttack:
		return monster.StatAttack, true
	case fieldDefense:
		return monster.StatDefense, true
	case fieldSpeed:
		return monster.StatSpeed, true
	case fieldSpecial:
		return monster.StatSpecial, true
	}
	return "", false
}

// coerceStat accepts JSON numbers and numeric strings.
func coerceStat(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		return ClampStat(int(t)), true
	case string:
		if digitRun.FindString(t) == "" {
			return 0, false
		}
		return FirstNumber(t, monster.DefaultStat), true
	}
	return 0, false
}
