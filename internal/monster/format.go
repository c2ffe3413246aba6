package monster

import (
	"fmt"
	"strings"
)

// Render formats a monster as a console card with stat bars.
func Render(m *Monster) string {
	var b strings.Builder

	divider := strings.Repeat("=", 60)
	fmt.Fprintf(&b, "%s\n%s\n%s\n", divider, m.Name, divider)
	fmt.Fprintf(&b, "Type: %s | Rarity: %s | Stage: %d\n", m.Kind, m.Rarity, m.EvolutionStage)
	fmt.Fprintf(&b, "\n%s\n", m.Description)

	b.WriteString("\nStats:\n")
	for _, name := range StatNames {
		v := m.Stat(name)
		bar := strings.Repeat("█", v/10)
		fmt.Fprintf(&b, "  %-10s: %3d %s\n", name, v, bar)
	}

	b.WriteString("\nAbilities:\n")
	for _, a := range m.Abilities {
		fmt.Fprintf(&b, "  • %s\n", a)
	}

	if m.EvolvedFrom != "" {
		fmt.Fprintf(&b, "\nEvolved from: %s\n", m.EvolvedFrom)
	}

	return b.String()
}

// Summary returns a one-line description for listings and prompt context.
func Summary(m *Monster) string {
	return fmt.Sprintf("%s (%s, %s)", m.Name, m.Kind, m.Rarity)
}
