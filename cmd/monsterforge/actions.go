package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"

	"github.com/talgya/monsterforge/internal/config"
	"github.com/talgya/monsterforge/internal/llm"
	"github.com/talgya/monsterforge/internal/monster"
	"github.com/talgya/monsterforge/internal/persistence"
)

// app bundles the wired runtime pieces each action needs.
type app struct {
	cfg *config.Config
	gen *llm.Generator
	db  *persistence.DB
}

func setup(cmd *cli.Command) (*app, error) {
	cfg, err := config.Load(cmd.String("env"))
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if cmd.Bool("debug") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	client := llm.NewClient(cfg.OllamaURL, cfg.Model, cfg.Timeout)
	if client == nil {
		db.Close()
		return nil, fmt.Errorf("no Ollama URL configured")
	}

	gen := llm.NewGenerator(client)
	gen.Retries = cfg.Retries
	gen.Delay = cfg.RetryDelay
	gen.Temperature = cfg.Temperature
	gen.MaxTokens = cfg.NumPredict

	return &app{cfg: cfg, gen: gen, db: db}, nil
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		slog.Warn("closing database", "error", err)
	}
}

// saveAndShow persists one generated monster and prints its card.
func (a *app) saveAndShow(m *monster.Monster) error {
	if err := a.db.SaveMonster(m); err != nil {
		return err
	}
	fmt.Println(monster.Render(m))
	return nil
}

func generateAction(ctx context.Context, cmd *cli.Command) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	count := int(cmd.Int("count"))
	if count < 1 {
		count = 1
	}
	theme := cmd.String("theme")
	asJSON := cmd.Bool("json")
	delay := cmd.Duration("delay")

	generated := 0
	for i := 0; i < count; i++ {
		if i > 0 && delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		recent, err := a.db.RecentNames(3)
		if err != nil {
			return err
		}

		var m *monster.Monster
		if asJSON {
			m, err = a.gen.GenerateJSON(theme, recent)
		} else {
			m, err = a.gen.Generate(theme, recent)
		}
		if err != nil {
			slog.Warn("generation failed", "index", i+1, "error", err)
			continue
		}

		if err := a.saveAndShow(m); err != nil {
			return err
		}
		generated++
	}

	if generated == 0 {
		return fmt.Errorf("no monster could be generated in %d tries", count)
	}
	slog.Info("generation complete", "requested", count, "generated", generated)
	return nil
}

func evolveAction(ctx context.Context, cmd *cli.Command) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	prev, err := a.db.GetMonster(cmd.String("monster"))
	if err != nil {
		return err
	}

	evolved, err := a.gen.Evolve(prev)
	if err != nil {
		return err
	}
	return a.saveAndShow(evolved)
}

func chainAction(ctx context.Context, cmd *cli.Command) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	chain, err := a.gen.EvolutionChain(cmd.String("theme"), int(cmd.Int("stages")))
	if err != nil {
		return err
	}

	for _, m := range chain {
		if err := a.saveAndShow(m); err != nil {
			return err
		}
	}
	return nil
}

func startersAction(ctx context.Context, cmd *cli.Command) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	trio, err := a.gen.StarterTrio()
	if err != nil {
		return err
	}

	for _, m := range trio {
		if err := a.saveAndShow(m); err != nil {
			return err
		}
	}
	return nil
}

func legendaryAction(ctx context.Context, cmd *cli.Command) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	m, err := a.gen.Legendary(cmd.String("theme"))
	if err != nil {
		return err
	}
	return a.saveAndShow(m)
}

func battleAction(ctx context.Context, cmd *cli.Command) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ma, err := a.db.GetMonster(cmd.String("a"))
	if err != nil {
		return err
	}
	mb, err := a.db.GetMonster(cmd.String("b"))
	if err != nil {
		return err
	}

	narration, err := a.gen.Battle(ma, mb)
	if err != nil {
		return err
	}
	if err := a.db.SaveBattle(ma.Name, mb.Name, narration); err != nil {
		return err
	}

	fmt.Printf("%s vs %s\n\n%s\n", monster.Summary(ma), monster.Summary(mb), narration)
	return nil
}

func battlesAction(ctx context.Context, cmd *cli.Command) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	battles, err := a.db.RecentBattles(int(cmd.Int("limit")))
	if err != nil {
		return err
	}
	if len(battles) == 0 {
		fmt.Println("No battles yet. Run `monsterforge battle` first.")
		return nil
	}

	for _, b := range battles {
		fmt.Printf("[%s] %s vs %s\n%s\n\n", b.CreatedAt, b.MonsterA, b.MonsterB, b.Narration)
	}
	return nil
}

func listAction(ctx context.Context, cmd *cli.Command) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	monsters, err := a.db.ListMonsters()
	if err != nil {
		return err
	}
	if len(monsters) == 0 {
		fmt.Println("No monsters yet. Run `monsterforge generate` first.")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Type", "Rarity", "Stage", "HP", "Attack", "Defense", "Speed", "Special")
	for _, m := range monsters {
		table.Append(
			m.Name, m.Kind, m.Rarity,
			strconv.Itoa(m.EvolutionStage),
			strconv.Itoa(m.Stat(monster.StatHP)),
			strconv.Itoa(m.Stat(monster.StatAttack)),
			strconv.Itoa(m.Stat(monster.StatDefense)),
			strconv.Itoa(m.Stat(monster.StatSpeed)),
			strconv.Itoa(m.Stat(monster.StatSpecial)),
		)
	}
	table.Render()
	return nil
}

func showAction(ctx context.Context, cmd *cli.Command) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	m, err := a.db.GetMonster(cmd.String("monster"))
	if err != nil {
		return err
	}
	fmt.Println(monster.Render(m))
	return nil
}

func exportAction(ctx context.Context, cmd *cli.Command) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	path := cmd.String("file")
	n, err := a.db.ExportJSON(path)
	if err != nil {
		return err
	}
	fmt.Printf("Exported %d monsters to %s\n", n, path)
	return nil
}

func importAction(ctx context.Context, cmd *cli.Command) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	path := cmd.String("file")
	n, err := a.db.ImportJSON(path)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d monsters from %s\n", n, path)
	return nil
}
