// Package weight keeps the body-weight history and the goal weight. The
// history is a line-oriented file of date,weight pairs; the goal is a
// single weight,date line.
package weight

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/grit-cli/grit/internal/apperr"
	"github.com/grit-cli/grit/internal/argparse"
	"github.com/grit-cli/grit/internal/osutil"
	"github.com/grit-cli/grit/internal/timeutil"
)

const (
	historyFileName = "weights.csv"
	goalFileName    = "goal"

	dateLayout = "02/01/06"
)

var (
	recordGrammar = argparse.Grammar{
		Command: "weight",
		Usage:   "weight w/WEIGHT [d/DD/MM/YY]",
		Rules: []argparse.Rule{
			{Flag: "w", Desc: "weight", Shape: argparse.ShapeWeight, Required: true},
			{Flag: "d", Desc: "date", Shape: argparse.ShapeDate},
		},
	}

	goalGrammar = argparse.Grammar{
		Command: "goal",
		Usage:   "goal w/WEIGHT",
		Rules: []argparse.Rule{
			{Flag: "w", Desc: "weight", Shape: argparse.ShapeWeight, Required: true},
		},
	}
)

var (
	errReadHistory = &apperr.Error{
		Kind:    apperr.Storage,
		Message: "unable to read the weight history",
	}

	errWriteHistory = &apperr.Error{
		Kind:    apperr.Storage,
		Message: "failed to persist the weight entry",
	}

	errWriteGoal = &apperr.Error{
		Kind:    apperr.Storage,
		Message: "failed to persist the goal weight",
	}
)

// Entry is one recorded body weight.
type Entry struct {
	Date   time.Time
	Weight float64
}

// Goal is the target weight and the date it was set.
type Goal struct {
	Weight float64
	SetOn  time.Time
}

// Log reads and appends the weight files under the data root.
type Log struct {
	dir    string
	parser argparse.Parser
	now    func() time.Time
}

// NewLog returns a weight log rooted at dataDir. Dates before earliest are
// rejected by the argument grammar.
func NewLog(dataDir string, earliest timeutil.Month) *Log {
	return &Log{
		dir:    dataDir,
		parser: argparse.Parser{Earliest: earliest},
		now:    time.Now,
	}
}

// Record parses a weight command and appends the entry to the history.
// The date defaults to today when the d/ flag is omitted.
func (l *Log) Record(raw string) (Entry, error) {
	res, err := l.parser.Parse(recordGrammar, raw)
	if err != nil {
		return Entry{}, err
	}

	entry := Entry{Date: l.now(), Weight: res.Float("w")}
	if res.Has("d") {
		entry.Date = res.Date("d")
	}

	err = os.MkdirAll(l.dir, osutil.DirPermission)
	if err != nil {
		return Entry{}, errWriteHistory.Wrap(err)
	}

	f, err := os.OpenFile(
		filepath.Join(l.dir, historyFileName),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY,
		osutil.FilePermission,
	)
	if err != nil {
		return Entry{}, errWriteHistory.Wrap(err)
	}
	defer f.Close()

	line := fmt.Sprintf("%s,%s\n", entry.Date.Format(dateLayout), formatWeight(entry.Weight))

	_, err = f.WriteString(line)
	if err != nil {
		return Entry{}, errWriteHistory.Wrap(err)
	}

	return entry, nil
}

// Entries returns the recorded history in file order. Malformed lines are
// skipped individually with a warning.
func (l *Log) Entries() ([]Entry, error) {
	f, err := os.Open(filepath.Join(l.dir, historyFileName))
	if errors.Is(err, fs.ErrNotExist) {
		return []Entry{}, nil
	}

	if err != nil {
		return nil, errReadHistory.Wrap(err)
	}
	defer f.Close()

	var entries []Entry

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		entry, err := parseEntry(line)
		if err != nil {
			slog.Warn(
				"skipping malformed weight entry",
				slog.String("line", line),
				slog.Any("error", err),
			)

			continue
		}

		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, errReadHistory.Wrap(err)
	}

	return entries, nil
}

// SetGoal parses a goal command and overwrites the goal file, stamping it
// with today's date.
func (l *Log) SetGoal(raw string) (Goal, error) {
	res, err := l.parser.Parse(goalGrammar, raw)
	if err != nil {
		return Goal{}, err
	}

	goal := Goal{Weight: res.Float("w"), SetOn: l.now()}

	err = os.MkdirAll(l.dir, osutil.DirPermission)
	if err != nil {
		return Goal{}, errWriteGoal.Wrap(err)
	}

	line := fmt.Sprintf(
		"%s,%s\n",
		formatWeight(goal.Weight),
		goal.SetOn.Format(dateLayout),
	)

	err = os.WriteFile(
		filepath.Join(l.dir, goalFileName),
		[]byte(line),
		osutil.FilePermission,
	)
	if err != nil {
		return Goal{}, errWriteGoal.Wrap(err)
	}

	return goal, nil
}

// Goal returns the saved goal, or nil if none has been set or the file is
// unreadable.
func (l *Log) Goal() *Goal {
	b, err := os.ReadFile(filepath.Join(l.dir, goalFileName))
	if err != nil {
		return nil
	}

	weightStr, dateStr, ok := strings.Cut(strings.TrimSpace(string(b)), ",")
	if !ok {
		slog.Warn("malformed goal file", slog.String("content", string(b)))
		return nil
	}

	w, err := strconv.ParseFloat(weightStr, 64)
	if err != nil {
		slog.Warn("malformed goal weight", slog.Any("error", err))
		return nil
	}

	setOn, err := time.ParseInLocation(dateLayout, dateStr, time.Local)
	if err != nil {
		slog.Warn("malformed goal date", slog.Any("error", err))
		return nil
	}

	return &Goal{Weight: w, SetOn: setOn}
}

func parseEntry(line string) (Entry, error) {
	dateStr, weightStr, ok := strings.Cut(line, ",")
	if !ok {
		return Entry{}, fmt.Errorf("missing comma in %q", line)
	}

	date, err := time.ParseInLocation(dateLayout, dateStr, time.Local)
	if err != nil {
		return Entry{}, err
	}

	w, err := strconv.ParseFloat(weightStr, 64)
	if err != nil {
		return Entry{}, err
	}

	return Entry{Date: date, Weight: w}, nil
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', 1, 64)
}
