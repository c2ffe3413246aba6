package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstNumber(t *testing.T) {
	cases := []struct {
		text string
		def  int
		want int
	}{
		{"85", 50, 85},
		{"around 95 or so", 50, 95},
		{"HP is 70, maybe 80", 50, 70},
		{"0", 50, 1},
		{"9999", 50, 200},
		{"no digits here", 50, 50},
		{"", 42, 42},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FirstNumber(c.text, c.def), "text %q", c.text)
	}
}

func TestClampStat(t *testing.T) {
	assert.Equal(t, 1, ClampStat(-5))
	assert.Equal(t, 1, ClampStat(0))
	assert.Equal(t, 1, ClampStat(1))
	assert.Equal(t, 100, ClampStat(100))
	assert.Equal(t, 200, ClampStat(200))
	assert.Equal(t, 200, ClampStat(201))
}

func TestEvolutionStage(t *testing.T) {
	assert.Equal(t, 2, evolutionStage("2"))
	assert.Equal(t, 3, evolutionStage("stage 3 of 3"))
	assert.Equal(t, 1, evolutionStage("0"))
	assert.Equal(t, 1, evolutionStage("7"))
	assert.Equal(t, 1, evolutionStage("unknown"))
}
