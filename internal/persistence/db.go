// Package persistence provides SQLite-backed storage for generated
// monsters and battle narrations.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/monsterforge/internal/monster"
)

// ErrNotFound is returned when no monster matches a lookup.
var ErrNotFound = errors.New("persistence: monster not found")

// DB wraps a SQLite connection.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS monsters (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		description TEXT NOT NULL,
		stats_json TEXT NOT NULL,
		abilities_json TEXT NOT NULL,
		evolution_stage INTEGER NOT NULL,
		rarity TEXT NOT NULL,
		evolved_from TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS battles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		monster_a TEXT NOT NULL,
		monster_b TEXT NOT NULL,
		narration TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_monsters_name ON monsters(name);
	`
	_, err := db.conn.Exec(schema)
	return err
}

type monsterRow struct {
	ID             string         `db:"id"`
	Name           string         `db:"name"`
	Kind           string         `db:"kind"`
	Description    string         `db:"description"`
	StatsJSON      string         `db:"stats_json"`
	AbilitiesJSON  string         `db:"abilities_json"`
	EvolutionStage int            `db:"evolution_stage"`
	Rarity         string         `db:"rarity"`
	EvolvedFrom    sql.NullString `db:"evolved_from"`
	CreatedAt      string         `db:"created_at"`
}

func (r *monsterRow) toMonster() (*monster.Monster, error) {
	m := &monster.Monster{
		ID:             r.ID,
		Name:           r.Name,
		Kind:           r.Kind,
		Description:    r.Description,
		EvolutionStage: r.EvolutionStage,
		Rarity:         r.Rarity,
		EvolvedFrom:    r.EvolvedFrom.String,
	}
	if err := json.Unmarshal([]byte(r.StatsJSON), &m.Stats); err != nil {
		return nil, fmt.Errorf("decode stats for %s: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(r.AbilitiesJSON), &m.Abilities); err != nil {
		return nil, fmt.Errorf("decode abilities for %s: %w", r.ID, err)
	}
	return m, nil
}

// SaveMonster inserts a monster, assigning a UUID when it has none. The
// assigned ID is written back to the record.
func (db *DB) SaveMonster(m *monster.Monster) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}

	statsJSON, err := json.Marshal(m.Stats)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	abilitiesJSON, err := json.Marshal(m.Abilities)
	if err != nil {
		return fmt.Errorf("encode abilities: %w", err)
	}

	var evolvedFrom any
	if m.EvolvedFrom != "" {
		evolvedFrom = m.EvolvedFrom
	}

	_, err = db.conn.Exec(`INSERT INTO monsters
		(id, name, kind, description, stats_json, abilities_json,
		 evolution_stage, rarity, evolved_from, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Kind, m.Description,
		string(statsJSON), string(abilitiesJSON),
		m.EvolutionStage, m.Rarity, evolvedFrom,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert monster %s: %w", m.Name, err)
	}
	return nil
}

// ListMonsters returns all stored monsters in insertion order.
func (db *DB) ListMonsters() ([]*monster.Monster, error) {
	var rows []monsterRow
	if err := db.conn.Select(&rows, "SELECT * FROM monsters ORDER BY rowid"); err != nil {
		return nil, fmt.Errorf("list monsters: %w", err)
	}

	monsters := make([]*monster.Monster, 0, len(rows))
	for i := range rows {
		m, err := rows[i].toMonster()
		if err != nil {
			return nil, err
		}
		monsters = append(monsters, m)
	}
	return monsters, nil
}

// GetMonster looks up a monster by ID, falling back to the most recently
// stored record with a matching name.
func (db *DB) GetMonster(idOrName string) (*monster.Monster, error) {
	var row monsterRow
	err := db.conn.Get(&row, "SELECT * FROM monsters WHERE id = ?", idOrName)
	if errors.Is(err, sql.ErrNoRows) {
		err = db.conn.Get(&row,
			"SELECT * FROM monsters WHERE name = ? ORDER BY rowid DESC LIMIT 1", idOrName)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrName)
	}
	if err != nil {
		return nil, fmt.Errorf("get monster %s: %w", idOrName, err)
	}
	return row.toMonster()
}

// CountMonsters returns the number of stored monsters.
func (db *DB) CountMonsters() (int, error) {
	var n int
	if err := db.conn.Get(&n, "SELECT COUNT(*) FROM monsters"); err != nil {
		return 0, fmt.Errorf("count monsters: %w", err)
	}
	return n, nil
}

// RecentNames returns the names of the most recently stored monsters,
// oldest first, for use as prompt context.
func (db *DB) RecentNames(limit int) ([]string, error) {
	var names []string
	err := db.conn.Select(&names,
		`SELECT name FROM (
			SELECT name, rowid AS rid FROM monsters ORDER BY rowid DESC LIMIT ?
		) ORDER BY rid`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent names: %w", err)
	}
	return names, nil
}

// Battle is a stored battle narration.
type Battle struct {
	ID        int64  `db:"id" json:"id"`
	MonsterA  string `db:"monster_a" json:"monster_a"`
	MonsterB  string `db:"monster_b" json:"monster_b"`
	Narration string `db:"narration" json:"narration"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

// SaveBattle appends a battle narration.
func (db *DB) SaveBattle(a, b, narration string) error {
	_, err := db.conn.Exec(
		"INSERT INTO battles (monster_a, monster_b, narration, created_at) VALUES (?, ?, ?, ?)",
		a, b, narration, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert battle: %w", err)
	}
	return nil
}

// RecentBattles returns the most recent N battles, newest first.
func (db *DB) RecentBattles(limit int) ([]Battle, error) {
	var battles []Battle
	err := db.conn.Select(&battles,
		"SELECT * FROM battles ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("recent battles: %w", err)
	}
	return battles, nil
}
