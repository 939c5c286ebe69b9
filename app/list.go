package app

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/maruel/natural"
	"github.com/pterm/pterm"

	"github.com/grit-cli/grit/internal/models"
	"github.com/grit-cli/grit/internal/ui"
	"github.com/grit-cli/grit/weight"
	"github.com/grit-cli/grit/workout"
)

// tagsString renders the effective tag set in natural order.
func tagsString(sess *models.Session) string {
	tags := sess.EffectiveTags()
	sort.Slice(tags, func(i, j int) bool {
		return natural.Less(tags[i], tags[j])
	})

	return strings.Join(tags, " · ")
}

// printSessionsTable prints a month view to the command-line.
func printSessionsTable(view *workout.View) {
	if view.Total == 0 {
		pterm.Info.Printfln("No sessions recorded in %s", view.Month)
		return
	}

	tableBody := make([][]string, len(view.Rows))

	for i, sess := range view.Rows {
		status := ui.Green(durationString(sess.Duration))

		endText := ""
		if sess.EndTime != nil {
			endText = sess.EndTime.Format(instantFormat)
		} else {
			status = ui.Red("open")
		}

		tableBody[i] = []string{
			strconv.Itoa(view.FirstIndex + i),
			sess.Name,
			sess.StartTime.Format(instantFormat),
			endText,
			status,
			tagsString(sess),
		}
	}

	tableBody = append([][]string{
		{"#", "NAME", "START", "END", "DURATION", "TAGS"},
	}, tableBody...)

	ui.PrintTable(tableBody, os.Stdout)

	if view.Pages > 1 {
		pterm.Info.Printfln(
			"Page %d of %d (%d sessions). Use pg/N to change page",
			view.Page,
			view.Pages,
			view.Total,
		)
	}
}

// printSessionDetail prints one session with its exercises and sets.
func printSessionDetail(sess *models.Session) {
	pterm.DefaultSection.Println(sess.Name)

	end := "open"
	if sess.EndTime != nil {
		end = sess.EndTime.Format(instantFormat)
	}

	pterm.Printfln("Start:    %s", sess.StartTime.Format(instantFormat))
	pterm.Printfln("End:      %s", end)
	pterm.Printfln("Duration: %s", durationString(sess.Duration))

	if tags := tagsString(sess); tags != "" {
		pterm.Printfln("Tags:     %s", tags)
	}

	if len(sess.Exercises) == 0 {
		pterm.Info.Println("No exercises recorded")
		return
	}

	tableBody := [][]string{{"#", "EXERCISE", "SETS", "REPS"}}

	for i, ex := range sess.Exercises {
		reps := make([]string, len(ex.Sets))
		for j, r := range ex.Sets {
			reps[j] = strconv.Itoa(r)
		}

		tableBody = append(tableBody, []string{
			strconv.Itoa(i + 1),
			ex.Name,
			strconv.Itoa(len(ex.Sets)),
			strings.Join(reps, ", "),
		})
	}

	ui.PrintTable(tableBody, os.Stdout)
}

// printWeightTable prints the weight history and goal progress.
func printWeightTable(entries []weight.Entry, goal *weight.Goal) {
	if len(entries) == 0 {
		pterm.Info.Println("No weight entries recorded")
		return
	}

	tableBody := [][]string{{"DATE", "WEIGHT"}}

	for _, e := range entries {
		tableBody = append(tableBody, []string{
			e.Date.Format("02/01/06"),
			fmt.Sprintf("%.1f", e.Weight),
		})
	}

	ui.PrintTable(tableBody, os.Stdout)

	if goal != nil {
		latest := entries[len(entries)-1]
		diff := latest.Weight - goal.Weight

		pterm.Info.Printfln(
			"Goal: %.1f (set %s), %.1f to go",
			goal.Weight,
			goal.SetOn.Format("02/01/06"),
			diff,
		)
	}
}
