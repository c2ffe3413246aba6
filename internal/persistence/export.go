package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/talgya/monsterforge/internal/extract"
	"github.com/talgya/monsterforge/internal/monster"
)

// ExportJSON writes all stored monsters to path as a JSON array, matching
// the monsters.json layout of earlier script versions. Returns the number
// of records written.
func (db *DB) ExportJSON(path string) (int, error) {
	monsters, err := db.ListMonsters()
	if err != nil {
		return 0, err
	}

	data, err := json.MarshalIndent(monsters, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("encode monsters: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}

	slog.Info("monsters exported", "path", path, "count", len(monsters))
	return len(monsters), nil
}

// ImportJSON loads a JSON array of monsters from path and stores each
// record, normalizing as it goes: stats clamped and completed with
// defaults, abilities defaulted when empty, stage forced into 1..3.
// Records without a name are skipped. Returns the number imported.
func (db *DB) ImportJSON(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}

	var monsters []*monster.Monster
	if err := json.Unmarshal(data, &monsters); err != nil {
		return 0, fmt.Errorf("decode %s: %w", path, err)
	}

	imported := 0
	for _, m := range monsters {
		if m == nil || m.Name == "" {
			slog.Warn("skipping unnamed record on import", "path", path)
			continue
		}
		normalize(m)
		// Stored IDs stay with their original database; imports get fresh ones.
		m.ID = ""
		if err := db.SaveMonster(m); err != nil {
			return imported, err
		}
		imported++
	}

	slog.Info("monsters imported", "path", path, "count", imported)
	return imported, nil
}

// normalize enforces the record invariants on externally-sourced data.
func normalize(m *monster.Monster) {
	if m.Stats == nil {
		m.Stats = make(map[string]int, len(monster.StatNames))
	}
	for _, s := range monster.StatNames {
		if v, ok := m.Stats[s]; ok {
			m.Stats[s] = extract.ClampStat(v)
		} else {
			m.Stats[s] = monster.DefaultStat
		}
	}
	if len(m.Abilities) == 0 {
		m.Abilities = append([]string(nil), monster.DefaultAbilities...)
	}
	if m.EvolutionStage < 1 || m.EvolutionStage > 3 {
		m.EvolutionStage = 1
	}
	if m.Kind == "" {
		m.Kind = "Unknown"
	}
	if m.Description == "" {
		m.Description = fmt.Sprintf("A %s-type monster", m.Kind)
	}
	if m.Rarity == "" {
		m.Rarity = monster.RarityCommon
	}
}
