// Package app wires the command-line surface. Each subcommand hands its
// raw argument tail to the session manager; the flag grammar itself is
// parsed there, not here.
package app

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/grit-cli/grit/config"
	"github.com/grit-cli/grit/internal/ui"
)

const envNoColor = "NO_COLOR"

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the grit app instance.
func Get() *cli.App {
	gritApp := &cli.App{
		Name:                 "grit",
		Usage:                "Grit is a workout session logger for the command line",
		UsageText:            "grit COMMAND [ARGS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "Start a new workout session",
				UsageText: "grit create n/NAME [d/DD/MM/YY t/HHMM]",
				Action:    createAction,
			},
			{
				Name:      "ex",
				Usage:     "Add an exercise to the active session",
				UsageText: "grit ex n/NAME r/REPS",
				Action:    addExerciseAction,
			},
			{
				Name:      "set",
				Usage:     "Add a set to the most recent exercise",
				UsageText: "grit set r/REPS",
				Action:    addSetAction,
			},
			{
				Name:      "end",
				Usage:     "End the active session",
				UsageText: "grit end [d/DD/MM/YY t/HHMM]",
				Action:    endAction,
			},
			{
				Name:      "delete",
				Usage:     "Delete a session by its display index",
				UsageText: "grit delete id/N [ym/MM/YY]",
				Action:    deleteAction,
			},
			{
				Name:      "open",
				Usage:     "Show one session in detail",
				UsageText: "grit open id/N [ym/MM/YY]",
				Action:    openAction,
			},
			{
				Name:      "list",
				Usage:     "List a month's sessions",
				UsageText: "grit list [ym/MM/YY] [pg/N]",
				Action:    listAction,
			},
			{
				Name:      "tag",
				Usage:     "Add a manual tag to a session",
				UsageText: "grit tag id/N m/TAG [ym/MM/YY]",
				Action:    tagAction,
			},
			{
				Name:      "weight",
				Usage:     "Record body weight, or list the history",
				UsageText: "grit weight w/WEIGHT [d/DD/MM/YY]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "list",
						Usage: "Print the weight history and goal progress",
					},
				},
				Action: weightAction,
			},
			{
				Name:      "goal",
				Usage:     "Set the goal weight",
				UsageText: "grit goal w/WEIGHT",
				Action:    goalAction,
			},
			{
				Name:      "profile",
				Usage:     "Show or set the display name",
				UsageText: "grit profile [n/NAME]",
				Action:    profileAction,
			},
			{
				Name:   "status",
				Usage:  "Print the active session, if any",
				Action: statusAction,
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable coloured output",
			},
		},
		Before: beforeAction,
	}

	return gritApp
}

func beforeAction(ctx *cli.Context) error {
	cfg := config.Get()

	config.InitLogging(cfg)

	ui.DarkTheme = cfg.DarkTheme

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return nil
}
