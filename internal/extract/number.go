package extract

import (
	"regexp"
	"strconv"

	"github.com/talgya/monsterforge/internal/monster"
)

var digitRun = regexp.MustCompile(`\d+`)

// FirstNumber extracts the first contiguous digit run in text, converts it
// to an integer, and clamps it into the valid stat range. When text holds
// no digits (or an absurdly long run that overflows), def is returned
// unchanged. Every extraction strategy shares this helper.
func FirstNumber(text string, def int) int {
	run := digitRun.FindString(text)
	if run == "" {
		return def
	}
	n, err := strconv.Atoi(run)
	if err != nil {
		return def
	}
	return ClampStat(n)
}

// ClampStat constrains a stat value into [StatMin, StatMax].
func ClampStat(n int) int {
	if n < monster.StatMin {
		return monster.StatMin
	}
	if n > monster.StatMax {
		return monster.StatMax
	}
	return n
}

// evolutionStage reads an evolution stage from text. Anything outside
// {1,2,3} falls back to 1.
func evolutionStage(text string) int {
	run := digitRun.FindString(text)
	if run == "" {
		return 1
	}
	n, err := strconv.Atoi(run)
	if err != nil || n < 1 || n > 3 {
		return 1
	}
	return n
}
