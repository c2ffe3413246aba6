// Command monsterforge generates Pokemon-like battling monsters with a
// locally-hosted Ollama model, stores them in SQLite, and narrates battles
// between them.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	envFlag := &cli.StringFlag{
		Name:  "env",
		Usage: "path to a .env file",
		Value: ".env",
	}

	app := &cli.Command{
		Name:  "monsterforge",
		Usage: "generate and battle Pokemon-like monsters with a local Ollama model",
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "generate one or more monsters",
				Flags: []cli.Flag{
					envFlag,
					&cli.IntFlag{Name: "count", Usage: "number of monsters to generate", Value: 1},
					&cli.StringFlag{Name: "theme", Usage: "optional theme, e.g. volcanic"},
					&cli.BoolFlag{Name: "json", Usage: "prompt for JSON output instead of key/value lines"},
					&cli.DurationFlag{Name: "delay", Usage: "pause between monsters in a batch"},
					&cli.BoolFlag{Name: "debug", Usage: "log raw completions"},
				},
				Action: generateAction,
			},
			{
				Name:  "evolve",
				Usage: "generate the next evolution stage of a stored monster",
				Flags: []cli.Flag{
					envFlag,
					&cli.StringFlag{Name: "monster", Usage: "monster id or name", Required: true},
				},
				Action: evolveAction,
			},
			{
				Name:  "chain",
				Usage: "generate a complete evolution chain",
				Flags: []cli.Flag{
					envFlag,
					&cli.StringFlag{Name: "theme", Usage: "chain theme, e.g. 'electric mouse'", Required: true},
					&cli.IntFlag{Name: "stages", Usage: "number of stages (1-3)", Value: 3},
				},
				Action: chainAction,
			},
			{
				Name:   "starters",
				Usage:  "generate a classic Grass/Fire/Water starter trio",
				Flags:  []cli.Flag{envFlag},
				Action: startersAction,
			},
			{
				Name:  "legendary",
				Usage: "generate a legendary monster",
				Flags: []cli.Flag{
					envFlag,
					&cli.StringFlag{Name: "theme", Usage: "legendary theme", Required: true},
				},
				Action: legendaryAction,
			},
			{
				Name:  "battle",
				Usage: "narrate a battle between two stored monsters",
				Flags: []cli.Flag{
					envFlag,
					&cli.StringFlag{Name: "a", Usage: "first monster id or name", Required: true},
					&cli.StringFlag{Name: "b", Usage: "second monster id or name", Required: true},
				},
				Action: battleAction,
			},
			{
				Name:  "battles",
				Usage: "show recent battle narrations",
				Flags: []cli.Flag{
					envFlag,
					&cli.IntFlag{Name: "limit", Usage: "number of battles to show", Value: 5},
				},
				Action: battlesAction,
			},
			{
				Name:   "list",
				Usage:  "list stored monsters",
				Flags:  []cli.Flag{envFlag},
				Action: listAction,
			},
			{
				Name:  "show",
				Usage: "show one stored monster",
				Flags: []cli.Flag{
					envFlag,
					&cli.StringFlag{Name: "monster", Usage: "monster id or name", Required: true},
				},
				Action: showAction,
			},
			{
				Name:  "export",
				Usage: "export stored monsters to a JSON file",
				Flags: []cli.Flag{
					envFlag,
					&cli.StringFlag{Name: "file", Usage: "output path", Value: "monsters.json"},
				},
				Action: exportAction,
			},
			{
				Name:  "import",
				Usage: "import monsters from a JSON file",
				Flags: []cli.Flag{
					envFlag,
					&cli.StringFlag{Name: "file", Usage: "input path", Value: "monsters.json"},
				},
				Action: importAction,
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
