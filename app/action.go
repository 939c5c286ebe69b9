package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/grit-cli/grit/config"
	"github.com/grit-cli/grit/internal/argparse"
	"github.com/grit-cli/grit/internal/prompt"
	"github.com/grit-cli/grit/internal/tag"
	"github.com/grit-cli/grit/store"
	"github.com/grit-cli/grit/weight"
	"github.com/grit-cli/grit/workout"
)

const instantFormat = "02/01/06 15:04"

var profileGrammar = argparse.Grammar{
	Command: "profile",
	Usage:   "profile n/NAME",
	Rules: []argparse.Rule{
		{Flag: "n", Desc: "name", Shape: argparse.ShapeName, Required: true},
	},
}

// rawArgs rejoins the argument tail into the raw grammar string the
// session manager parses.
func rawArgs(ctx *cli.Context) string {
	return strings.Join(ctx.Args().Slice(), " ")
}

func managerHelper() (*workout.Manager, error) {
	cfg := config.Get()

	db, err := store.New(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	return workout.New(db, cfg, tag.Keyword{}, prompt.Interactive{})
}

// canceled reports and swallows a user cancellation.
func canceled(err error) bool {
	if errors.Is(err, workout.ErrCanceled) {
		pterm.Info.Println("Canceled, nothing changed")
		return true
	}

	return false
}

func createAction(ctx *cli.Context) error {
	mgr, err := managerHelper()
	if err != nil {
		return err
	}

	sess, err := mgr.Create(rawArgs(ctx))
	if err != nil {
		if canceled(err) {
			return nil
		}

		return err
	}

	pterm.Success.Printfln(
		"Started %q at %s",
		sess.Name,
		sess.StartTime.Format(instantFormat),
	)

	if len(sess.AutoTags) > 0 {
		pterm.Info.Printfln("Suggested tags: %s", strings.Join(sess.AutoTags, ", "))
	}

	return nil
}

func addExerciseAction(ctx *cli.Context) error {
	mgr, err := managerHelper()
	if err != nil {
		return err
	}

	sess, err := mgr.AddExercise(rawArgs(ctx))
	if err != nil {
		return err
	}

	ex := sess.Exercises[len(sess.Exercises)-1]

	pterm.Success.Printfln("Added %q to %q", ex.Name, sess.Name)

	return nil
}

func addSetAction(ctx *cli.Context) error {
	mgr, err := managerHelper()
	if err != nil {
		return err
	}

	sess, err := mgr.AddSet(rawArgs(ctx))
	if err != nil {
		return err
	}

	ex := sess.Exercises[len(sess.Exercises)-1]

	pterm.Success.Printfln(
		"Set %d of %q recorded: %d reps",
		len(ex.Sets),
		ex.Name,
		ex.Sets[len(ex.Sets)-1],
	)

	return nil
}

func endAction(ctx *cli.Context) error {
	mgr, err := managerHelper()
	if err != nil {
		return err
	}

	sess, err := mgr.End(rawArgs(ctx))
	if err != nil {
		if canceled(err) {
			return nil
		}

		return err
	}

	pterm.Success.Printfln(
		"Ended %q after %s",
		sess.Name,
		durationString(sess.Duration),
	)

	return nil
}

func deleteAction(ctx *cli.Context) error {
	mgr, err := managerHelper()
	if err != nil {
		return err
	}

	sess, err := mgr.Delete(rawArgs(ctx))
	if err != nil {
		if canceled(err) {
			return nil
		}

		return err
	}

	pterm.Success.Printfln("Deleted %q", sess.Name)

	return nil
}

func openAction(ctx *cli.Context) error {
	mgr, err := managerHelper()
	if err != nil {
		return err
	}

	sess, err := mgr.Open(rawArgs(ctx))
	if err != nil {
		return err
	}

	printSessionDetail(sess)

	return nil
}

func listAction(ctx *cli.Context) error {
	mgr, err := managerHelper()
	if err != nil {
		return err
	}

	view, err := mgr.List(rawArgs(ctx))
	if err != nil {
		return err
	}

	printSessionsTable(view)

	return nil
}

func tagAction(ctx *cli.Context) error {
	mgr, err := managerHelper()
	if err != nil {
		return err
	}

	sess, err := mgr.Tag(rawArgs(ctx))
	if err != nil {
		return err
	}

	pterm.Success.Printfln(
		"Tagged %q: %s",
		sess.Name,
		strings.Join(sess.EffectiveTags(), ", "),
	)

	return nil
}

func weightAction(ctx *cli.Context) error {
	cfg := config.Get()
	log := weight.NewLog(cfg.DataDir, cfg.FirstRunMonth)

	if ctx.Bool("list") {
		entries, err := log.Entries()
		if err != nil {
			return err
		}

		printWeightTable(entries, log.Goal())

		return nil
	}

	entry, err := log.Record(rawArgs(ctx))
	if err != nil {
		return err
	}

	pterm.Success.Printfln(
		"Recorded %.1f on %s",
		entry.Weight,
		entry.Date.Format("02/01/06"),
	)

	return nil
}

func goalAction(ctx *cli.Context) error {
	cfg := config.Get()
	log := weight.NewLog(cfg.DataDir, cfg.FirstRunMonth)

	goal, err := log.SetGoal(rawArgs(ctx))
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Goal weight set to %.1f", goal.Weight)

	return nil
}

func profileAction(ctx *cli.Context) error {
	cfg := config.Get()

	if ctx.Args().Len() == 0 {
		name := config.DisplayName(cfg)
		if name == "" {
			pterm.Info.Println("No display name set. Use: grit profile n/NAME")
			return nil
		}

		pterm.Println(name)

		return nil
	}

	parser := argparse.Parser{Earliest: cfg.FirstRunMonth}

	res, err := parser.Parse(profileGrammar, rawArgs(ctx))
	if err != nil {
		return err
	}

	name := res.Str("n")

	err = config.SetDisplayName(cfg, name)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Hello, %s", name)

	return nil
}

func statusAction(_ *cli.Context) error {
	mgr, err := managerHelper()
	if err != nil {
		return err
	}

	active := mgr.ActiveSession()
	if active == nil {
		pterm.Info.Println("No active session")
		return nil
	}

	pterm.Info.Printfln(
		"%q active since %s",
		active.Name,
		active.StartTime.Format(instantFormat),
	)

	return nil
}

func durationString(mins int) string {
	h := mins / 60
	m := mins % 60

	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}

	return fmt.Sprintf("%dh %dm", h, m)
}
