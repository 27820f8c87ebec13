package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/voxplan/internal/config"
	"github.com/hpungsan/voxplan/internal/db"
	"github.com/hpungsan/voxplan/internal/errors"
	"github.com/hpungsan/voxplan/internal/ops"
	"github.com/hpungsan/voxplan/internal/plan"
	"github.com/hpungsan/voxplan/internal/planner"
	"github.com/hpungsan/voxplan/internal/skill"
	"github.com/hpungsan/voxplan/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(database *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "voxplan",
		Usage:   "German voice-command planner",
		Version: Version,
		Commands: []*cli.Command{
			planCmd(database, cfg),
			medsCmd(database),
			remindersCmd(database),
			entriesCmd(database),
			webCmd(database, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// planResult is the JSON shape printed by the plan command.
type planResult struct {
	Plan        *plan.Plan         `json:"plan"`
	Diagnostics plan.Diagnostics   `json:"diagnostics"`
	Execution   *ops.ExecuteResult `json:"execution,omitempty"`
}

// planCmd creates the plan command.
func planCmd(database *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "plan",
		Usage:     "Turn an utterance into a plan",
		ArgsUsage: "<utterance>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "execute", Aliases: []string{"x"}, Usage: "Execute the plan when it needs no further input"},
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "With --execute, also run plans behind a confirmation"},
			&cli.Float64Flag{Name: "stt-confidence", Usage: "Speech-to-text confidence between 0 and 1"},
		},
		Action: func(c *cli.Context) error {
			utterance := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if utterance == "" {
				return outputError(errors.NewInvalidRequest("utterance is required"))
			}

			registry, err := skill.BuiltinRegistry(cfg.DisabledSkills)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			pl := planner.New(registry, planner.PolicyFromConfig(cfg))

			uc, err := ops.LoadUserContext(c.Context, database)
			if err != nil {
				return outputError(err)
			}

			utt := plan.Utterance{Text: utterance}
			if c.IsSet("stt-confidence") {
				conf := c.Float64("stt-confidence")
				utt.STTConfidence = &conf
			}

			result := pl.Plan(utt, *uc)
			out := planResult{Plan: result.Plan, Diagnostics: result.Diagnostics}

			if c.Bool("execute") {
				target := result.Plan
				// --yes resolves a confirmation in favor of the
				// pending plan; without it, confirm plans are only
				// printed.
				if target.Kind == plan.KindConfirm && c.Bool("yes") && target.Confirm.Pending != nil {
					target = target.Confirm.Pending
				}
				if executable(target) {
					exec, err := ops.ExecutePlan(c.Context, database, cfg, target)
					if err != nil {
						return outputError(err)
					}
					out.Execution = exec
				}
			}

			return outputJSON(out)
		},
	}
}

// medsCmd creates the meds command group.
func medsCmd(database *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "meds",
		Usage: "Manage the medication list",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add a medication",
				ArgsUsage: "<name>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Therapeutic category (detected from the name when omitted)"},
				},
				Action: func(c *cli.Context) error {
					name := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
					if name == "" {
						return outputError(errors.NewInvalidRequest("name is required"))
					}
					output, err := ops.AddMedication(c.Context, database, ops.MedicationAddInput{
						Name:     name,
						Category: c.String("category"),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "list",
				Usage: "List medications",
				Action: func(c *cli.Context) error {
					meds, err := ops.ListMedications(c.Context, database)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]any{"medications": meds, "count": len(meds)})
				},
			},
			{
				Name:      "remove",
				Usage:     "Remove a medication by name",
				ArgsUsage: "<name>",
				Action: func(c *cli.Context) error {
					name := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
					if name == "" {
						return outputError(errors.NewInvalidRequest("name is required"))
					}
					med, err := ops.RemoveMedication(c.Context, database, name)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]any{"removed": med})
				},
			},
		},
	}
}

// remindersCmd creates the reminders command.
func remindersCmd(database *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "reminders",
		Usage: "List active medication reminders",
		Action: func(c *cli.Context) error {
			reminders, err := db.ListReminders(c.Context, database)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]any{"reminders": reminders, "count": len(reminders)})
		},
	}
}

// entriesCmd creates the entries command.
func entriesCmd(database *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "entries",
		Usage: "List recent diary entries",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultEntryListLimit, Usage: "Maximum entries to return"},
		},
		Action: func(c *cli.Context) error {
			limit := c.Int("limit")
			if limit <= 0 || limit > ops.MaxEntryListLimit {
				limit = ops.DefaultEntryListLimit
			}
			entries, err := db.ListEntries(c.Context, database, limit)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]any{"entries": entries, "count": len(entries)})
		},
	}
}

// webCmd creates the web command.
func webCmd(database *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Start the debug console web server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Bind address"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 7788, Usage: "Port"},
		},
		Action: func(c *cli.Context) error {
			srv, err := web.NewServer(database, cfg, Version, c.String("bind"), c.Int("port"))
			if err != nil {
				return outputError(err)
			}
			return web.Run(srv)
		},
	}
}

// executable reports whether a plan can run without further user input.
func executable(p *plan.Plan) bool {
	switch p.Kind {
	case plan.KindNavigate, plan.KindOpenEntry, plan.KindOpenList, plan.KindQuery, plan.KindMutation:
		return true
	default:
		return false
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if voxErr, ok := err.(*errors.VoxError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", voxErr.Code, voxErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
