// Package extract turns free-form language-model completions into
// structured monster records.
//
// Generative output is unreliable: completions arrive with commentary,
// markdown fences, inconsistent casing and drifting key names, or as plain
// prose. Three strategies of decreasing strictness are tried in order and
// the first one that meets its minimum-field threshold wins, so a caller
// almost always gets some usable record instead of a discarded generation.
// Extraction is pure: the same text always yields the same record.
package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/talgya/monsterforge/internal/monster"
)

var (
	// ErrNoUsableText signals an empty completion; extraction was not
	// attempted.
	ErrNoUsableText = errors.New("extract: no usable text")

	// ErrUnparseableRecord signals that every strategy failed to meet its
	// minimum-field threshold.
	ErrUnparseableRecord = errors.New("extract: no strategy produced a usable record")
)

// Extract decodes raw completion text into a monster record, or reports
// failure. On failure no partial record is returned.
func Extract(raw string) (*monster.Monster, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrNoUsableText
	}
	if m := scanLines(raw); m != nil {
		return m, nil
	}
	if m := scanPatterns(raw); m != nil {
		return m, nil
	}
	if m := salvage(raw); m != nil {
		return m, nil
	}
	return nil, ErrUnparseableRecord
}

// scanLines is the strict strategy: parse key/value lines against the
// synonym table. Succeeds only with a non-empty name and kind plus at
// least 3 of the 5 stats explicitly present, which keeps near-empty
// completions from passing as records. Missing fields are then defaulted.
func scanLines(raw string) *monster.Monster {
	var (
		name, kind, desc, rarity string
		abilities                []string
		stats                    = make(map[string]int)
		stage                    = 1
	)

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		// Keys arrive as "HP", "- HP", "* ATTACK", "**Name**" and so on.
		key = strings.ToUpper(strings.Trim(key, "-* \t"))
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		switch resolveField(key) {
		case fieldName:
			name = value
		case fieldKind:
			kind = value
		case fieldDescription:
			desc = value
		case fieldHP:
			stats[monster.StatHP] = FirstNumber(value, monster.DefaultStat)
		case fieldAttack:
			stats[monster.StatAttack] = FirstNumber(value, monster.DefaultStat)
		case fieldDefense:
			stats[monster.StatDefense] = FirstNumber(value, monster.DefaultStat)
		case fieldSpeed:
			stats[monster.StatSpeed] = FirstNumber(value, monster.DefaultStat)
		case fieldSpecial:
			stats[monster.StatSpecial] = FirstNumber(value, monster.DefaultStat)
		case fieldAbility:
			abilities = appendUnique(abilities, value)
		case fieldEvolution:
			stage = evolutionStage(value)
		case fieldRarity:
			rarity = value
		}
	}

	if name == "" || kind == "" || len(stats) < 3 {
		return nil
	}

	for _, s := range monster.StatNames {
		if _, ok := stats[s]; !ok {
			stats[s] = monster.DefaultStat
		}
	}
	if len(abilities) == 0 {
		abilities = append(abilities, monster.DefaultAbilities...)
	}
	if desc == "" {
		desc = fmt.Sprintf("A %s-type monster", kind)
	}
	if rarity == "" {
		rarity = monster.RarityCommon
	}

	return &monster.Monster{
		Name:           name,
		Kind:           kind,
		Description:    desc,
		Stats:          stats,
		Abilities:      abilities,
		EvolutionStage: stage,
		Rarity:         rarity,
	}
}

// Pattern-anchored label captures, applied to the whole text rather than
// line by line.
var (
	reName      = regexp.MustCompile(`(?i)NAME:[ \t]*([^\n]+)`)
	reKind      = regexp.MustCompile(`(?i)TYPE:[ \t]*([^\n]+)`)
	reDesc      = regexp.MustCompile(`(?i)DESCRIPTION:[ \t]*([^\n]+)`)
	reEvolution = regexp.MustCompile(`(?i)EVOLUTION:[ \t]*(\d+)`)
	reRarity    = regexp.MustCompile(`(?i)RARITY:[ \t]*([^\n]+)`)

	reStats = map[string]*regexp.Regexp{
		monster.StatHP:      regexp.MustCompile(`(?i)HP:[ \t]*(\d+)`),
		monster.StatAttack:  regexp.MustCompile(`(?i)ATTACK:[ \t]*(\d+)`),
		monster.StatDefense: regexp.MustCompile(`(?i)DEFENSE:[ \t]*(\d+)`),
		monster.StatSpeed:   regexp.MustCompile(`(?i)SPEED:[ \t]*(\d+)`),
		monster.StatSpecial: regexp.MustCompile(`(?i)SPECIAL:[ \t]*(\d+)`),
	}

	reAbilities = []*regexp.Regexp{
		regexp.MustCompile(`(?i)ABILITY1:[ \t]*([^\n]+)`),
		regexp.MustCompile(`(?i)ABILITY2:[ \t]*([^\n]+)`),
		regexp.MustCompile(`(?i)ABILITY3:[ \t]*([^\n]+)`),
	}
)

// scanPatterns is the middle strategy: independent label searches across
// the whole text. Succeeds with a name, a kind, and at least one stat.
// Stats it does not find stay absent; it fills in nothing further.
func scanPatterns(raw string) *monster.Monster {
	name := captureLabel(reName, raw)
	kind := captureLabel(reKind, raw)

	stats := make(map[string]int)
	for statName, re := range reStats {
		if m := re.FindStringSubmatch(raw); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				stats[statName] = ClampStat(n)
			}
		}
	}

	if name == "" || kind == "" || len(stats) == 0 {
		return nil
	}

	var abilities []string
	for _, re := range reAbilities {
		if a := captureLabel(re, raw); a != "" {
			abilities = appendUnique(abilities, a)
		}
	}
	if len(abilities) == 0 {
		abilities = []string{"Tackle"}
	}

	stage := 1
	if m := reEvolution.FindStringSubmatch(raw); m != nil {
		stage = evolutionStage(m[1])
	}

	rarity := captureLabel(reRarity, raw)
	if rarity == "" {
		rarity = monster.RarityCommon
	}

	desc := captureLabel(reDesc, raw)
	if desc == "" {
		desc = fmt.Sprintf("A %s type monster", kind)
	}

	return &monster.Monster{
		Name:           name,
		Kind:           kind,
		Description:    desc,
		Stats:          stats,
		Abilities:      abilities,
		EvolutionStage: stage,
		Rarity:         rarity,
	}
}

func captureLabel(re *regexp.Regexp, raw string) string {
	m := re.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// Integer tokens of 2-3 digits, considered stat candidates when in [20,200].
var numberToken = regexp.MustCompile(`\b\d{2,3}\b`)

// nameStopwords filters capitalized prose openers and format labels out of
// the salvage name candidates, so "Introducing Blazeclaw!" names the
// creature rather than the sentence.
var nameStopwords = map[string]bool{
	"Introducing": true,
	"Presenting":  true,
	"Behold":      true,
	"Meet":        true,
	"Here":        true,
	"There":       true,
	"This":        true,
	"That":        true,
	"These":       true,
	"With":        true,
	"Your":        true,
	"Sure":        true,
	"Okay":        true,
	"Name":        true,
	"Type":        true,
	"Stats":       true,
	"Abilities":   true,
	"Description": true,
	"Rarity":      true,
	"Evolution":   true,
}

// salvage is the last-resort strategy for unstructured prose: the first
// plausible capitalized word becomes the name and integer tokens are
// assigned positionally to HP, Attack, Defense, Speed, Special. Succeeds
// with at least one name candidate and three numbers.
func salvage(raw string) *monster.Monster {
	var name string
	for _, w := range strings.Fields(raw) {
		w = strings.Trim(w, ",:;.!?")
		if utf8.RuneCountInString(w) <= 3 || nameStopwords[w] {
			continue
		}
		first, _ := utf8.DecodeRuneInString(w)
		if unicode.IsUpper(first) {
			name = w
			break
		}
	}

	var nums []int
	for _, tok := range numberToken.FindAllString(raw, -1) {
		n, err := strconv.Atoi(tok)
		if err == nil && n >= 20 && n <= 200 {
			nums = append(nums, n)
		}
	}

	if name == "" || len(nums) < 3 {
		return nil
	}

	stats := map[string]int{
		monster.StatHP:      80,
		monster.StatAttack:  60,
		monster.StatDefense: 60,
		monster.StatSpeed:   60,
		monster.StatSpecial: 60,
	}
	for i, statName := range monster.StatNames {
		if i < len(nums) {
			stats[statName] = nums[i]
		}
	}

	return &monster.Monster{
		Name:           name,
		Kind:           "Normal",
		Description:    fmt.Sprintf("A mysterious %s creature", name),
		Stats:          stats,
		Abilities:      []string{"Tackle", "Defend"},
		EvolutionStage: 1,
		Rarity:         monster.RarityCommon,
	}
}

// appendUnique appends value unless already collected, preserving first
// encounter order.
func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}
