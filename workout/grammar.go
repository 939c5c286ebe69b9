package workout

import "github.com/grit-cli/grit/internal/argparse"

// Command grammars. Rule order within a grammar is the required relative
// order of the flags on the command line.
var (
	createGrammar = argparse.Grammar{
		Command: "create",
		Usage:   "create n/NAME [d/DD/MM/YY t/HHMM]",
		Rules: []argparse.Rule{
			{Flag: "n", Desc: "name", Shape: argparse.ShapeName, Required: true},
			{Flag: "d", Desc: "date", Shape: argparse.ShapeDate},
			{Flag: "t", Desc: "time", Shape: argparse.ShapeTime},
		},
	}

	exerciseGrammar = argparse.Grammar{
		Command: "ex",
		Usage:   "ex n/NAME r/REPS",
		Rules: []argparse.Rule{
			{Flag: "n", Desc: "name", Shape: argparse.ShapeName, Required: true},
			{Flag: "r", Desc: "reps", Shape: argparse.ShapeReps, Required: true},
		},
	}

	setGrammar = argparse.Grammar{
		Command: "set",
		Usage:   "set r/REPS",
		Rules: []argparse.Rule{
			{Flag: "r", Desc: "reps", Shape: argparse.ShapeReps, Required: true},
		},
	}

	endGrammar = argparse.Grammar{
		Command: "end",
		Usage:   "end [d/DD/MM/YY t/HHMM]",
		Rules: []argparse.Rule{
			{Flag: "d", Desc: "date", Shape: argparse.ShapeDate},
			{Flag: "t", Desc: "time", Shape: argparse.ShapeTime},
		},
	}

	deleteGrammar = argparse.Grammar{
		Command: "delete",
		Usage:   "delete id/N [ym/MM/YY]",
		Rules: []argparse.Rule{
			{Flag: "id", Desc: "id", Shape: argparse.ShapeIndex, Required: true},
			{Flag: "ym", Desc: "month", Shape: argparse.ShapeMonth},
		},
	}

	openGrammar = argparse.Grammar{
		Command: "open",
		Usage:   "open id/N [ym/MM/YY]",
		Rules: []argparse.Rule{
			{Flag: "id", Desc: "id", Shape: argparse.ShapeIndex, Required: true},
			{Flag: "ym", Desc: "month", Shape: argparse.ShapeMonth},
		},
	}

	listGrammar = argparse.Grammar{
		Command: "list",
		Usage:   "list [ym/MM/YY] [pg/N]",
		Rules: []argparse.Rule{
			{Flag: "ym", Desc: "month", Shape: argparse.ShapeMonth},
			{Flag: "pg", Desc: "page", Shape: argparse.ShapePage},
		},
	}

	tagGrammar = argparse.Grammar{
		Command: "tag",
		Usage:   "tag id/N m/TAG [ym/MM/YY]",
		Rules: []argparse.Rule{
			{Flag: "id", Desc: "id", Shape: argparse.ShapeIndex, Required: true},
			{Flag: "m", Desc: "tag", Shape: argparse.ShapeName, Required: true},
			{Flag: "ym", Desc: "month", Shape: argparse.ShapeMonth},
		},
	}

	// dateTimeGrammar validates a date/time re-entered at an interactive
	// prompt.
	dateTimeGrammar = argparse.Grammar{
		Command: "datetime",
		Usage:   "d/DD/MM/YY t/HHMM",
		Rules: []argparse.Rule{
			{Flag: "d", Desc: "date", Shape: argparse.ShapeDate, Required: true},
			{Flag: "t", Desc: "time", Shape: argparse.ShapeTime, Required: true},
		},
	}
)
