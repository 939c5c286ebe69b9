// Package workout orchestrates the session state machine: parse the
// command, validate it against resident state, mutate a copy, persist, and
// only then commit the copy into memory.
package workout

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/kballard/go-shellquote"

	"github.com/grit-cli/grit/config"
	"github.com/grit-cli/grit/internal/argparse"
	"github.com/grit-cli/grit/internal/conflict"
	"github.com/grit-cli/grit/internal/models"
	"github.com/grit-cli/grit/internal/timeutil"
	"github.com/grit-cli/grit/store"
)

// layout is the instant format used in prompts and conflict messages.
const layout = "02/01/06 15:04"

// Manager owns the single active-session state machine and the resident
// session list for the loaded month.
type Manager struct {
	db      store.DB
	cfg     *config.Config
	parser  argparse.Parser
	tagger  Tagger
	confirm Confirmer

	sessions []*models.Session
	now      func() time.Time
}

// New builds a manager and locates any still-open session left by a
// previous run, switching the loaded month to wherever it lives.
func New(
	db store.DB,
	cfg *config.Config,
	tagger Tagger,
	confirm Confirmer,
) (*Manager, error) {
	m := &Manager{
		db:      db,
		cfg:     cfg,
		parser:  argparse.Parser{Earliest: cfg.FirstRunMonth},
		tagger:  tagger,
		confirm: confirm,
		now:     time.Now,
	}

	current := timeutil.MonthOf(m.now())

	sessions, err := db.Switch(current)
	if err != nil {
		return nil, err
	}

	m.sessions = sessions

	if m.ActiveSession() != nil {
		return m, nil
	}

	for _, month := range db.Index() {
		if month == current {
			continue
		}

		list, err := db.Load(month)
		if err != nil {
			slog.Warn(
				"skipping unreadable month while locating the active session",
				slog.String("month", month.String()),
				slog.Any("error", err),
			)

			continue
		}

		if hasActive(list) {
			m.sessions, err = db.Switch(month)
			if err != nil {
				return nil, err
			}

			break
		}
	}

	return m, nil
}

// ActiveSession returns the resident session with no end time, or nil.
func (m *Manager) ActiveSession() *models.Session {
	for _, s := range m.sessions {
		if s.Active() {
			return s
		}
	}

	return nil
}

// LoadedMonth reports the month whose sessions are resident.
func (m *Manager) LoadedMonth() timeutil.Month {
	month, _ := m.db.LoadedMonth()
	return month
}

// Create starts a new session. Only legal when no session is active; when
// the proposed start overlaps the active session the failure is reported
// as the overlap, which names the colliding session.
func (m *Manager) Create(raw string) (*models.Session, error) {
	priorActive := m.ActiveSession()

	res, err := m.parser.Parse(createGrammar, raw)
	if err != nil {
		return nil, err
	}

	start, err := m.resolveInstant(res, createGrammar, "Start the session")
	if err != nil {
		return nil, err
	}

	start = timeutil.ToMinute(start)
	month := timeutil.MonthOf(start)

	if loaded, ok := m.db.LoadedMonth(); !ok || loaded != month {
		sessions, err := m.db.Switch(month)
		if err != nil {
			return nil, err
		}

		m.sessions = sessions
	}

	if c := conflict.OnCreate(m.sessions, start); c != nil {
		return nil, errOverlap.Fmt(c.Name, rangeString(c, m.cfg.ClockFormat()))
	}

	if priorActive != nil {
		return nil, errActiveExists.Fmt(priorActive.Name)
	}

	sess := &models.Session{
		Name:       res.Str("n"),
		StartTime:  start,
		Exercises:  []models.Exercise{},
		ManualTags: []string{},
	}
	sess.AutoTags = m.tagger.Suggest(sess)

	next := append(models.CloneList(m.sessions), sess)

	err = m.db.Save(month, next)
	if err != nil {
		return nil, err
	}

	m.sessions = next

	return sess, nil
}

// AddExercise appends an exercise (with its first set) to the active
// session.
func (m *Manager) AddExercise(raw string) (*models.Session, error) {
	active := m.ActiveSession()
	if active == nil {
		return nil, errNoActive.WithUsage(exerciseGrammar.Usage)
	}

	res, err := m.parser.Parse(exerciseGrammar, raw)
	if err != nil {
		return nil, err
	}

	clone := active.Clone()
	clone.Exercises = append(clone.Exercises, models.Exercise{
		Name: res.Str("n"),
		Sets: []int{res.Int("r")},
	})

	return m.commitActive(active, clone)
}

// AddSet appends a set to the most recently added exercise of the active
// session.
func (m *Manager) AddSet(raw string) (*models.Session, error) {
	active := m.ActiveSession()
	if active == nil {
		return nil, errNoActive.WithUsage(setGrammar.Usage)
	}

	if len(active.Exercises) == 0 {
		return nil, errNoExercise
	}

	res, err := m.parser.Parse(setGrammar, raw)
	if err != nil {
		return nil, err
	}

	clone := active.Clone()
	last := &clone.Exercises[len(clone.Exercises)-1]
	last.Sets = append(last.Sets, res.Int("r"))

	return m.commitActive(active, clone)
}

// End closes the active session. The end instant defaults to now after
// confirmation when the d/ and t/ flags are omitted.
func (m *Manager) End(raw string) (*models.Session, error) {
	active := m.ActiveSession()
	if active == nil {
		return nil, errNoActive.WithUsage(endGrammar.Usage)
	}

	res, err := m.parser.Parse(endGrammar, raw)
	if err != nil {
		return nil, err
	}

	end, err := m.resolveInstant(res, endGrammar, "End the session")
	if err != nil {
		return nil, err
	}

	end = timeutil.ToMinute(end)

	if !conflict.EndsAfterStart(active.StartTime, end) {
		return nil, errEndNotAfterStart.Fmt(active.StartTime.Format(layout))
	}

	if c := conflict.OnEnd(m.sessions, active, end); c != nil {
		return nil, errSwallow.Fmt(
			end.Format(layout),
			c.Name,
			c.StartTime.Format(layout),
		)
	}

	clone := active.Clone()
	clone.EndTime = &end
	clone.Duration = timeutil.MinutesBetween(clone.StartTime, end)

	sess, err := m.commitActive(active, clone)
	if err != nil {
		return nil, err
	}

	m.afterEnd(sess)

	return sess, nil
}

// Delete removes a session addressed by its display index within a month.
// The index is a transient numbering over the month's sorted snapshot.
func (m *Manager) Delete(raw string) (*models.Session, error) {
	res, err := m.parser.Parse(deleteGrammar, raw)
	if err != nil {
		return nil, err
	}

	month, list, err := m.monthList(res)
	if err != nil {
		return nil, err
	}

	target, err := sessionAt(list, res.Int("id"), month)
	if err != nil {
		return nil, err
	}

	answer, err := m.confirm.Confirm(fmt.Sprintf(
		"Delete %q started %s? This cannot be undone.",
		target.Name,
		target.StartTime.Format(layout),
	))
	if err != nil {
		return nil, err
	}

	if answer != AnswerYes {
		return nil, ErrCanceled
	}

	next := make([]*models.Session, 0, len(list)-1)

	for _, s := range list {
		if s != target {
			next = append(next, s)
		}
	}

	err = m.db.Save(month, next)
	if err != nil {
		return nil, err
	}

	if loaded, ok := m.db.LoadedMonth(); ok && loaded == month {
		m.sessions = next
	}

	return target, nil
}

// Open returns the session at a display index for detailed rendering.
func (m *Manager) Open(raw string) (*models.Session, error) {
	res, err := m.parser.Parse(openGrammar, raw)
	if err != nil {
		return nil, err
	}

	month, list, err := m.monthList(res)
	if err != nil {
		return nil, err
	}

	return sessionAt(list, res.Int("id"), month)
}

// Tag adds a manual tag to the session at a display index. A manual tag
// shadows a same-named auto tag.
func (m *Manager) Tag(raw string) (*models.Session, error) {
	res, err := m.parser.Parse(tagGrammar, raw)
	if err != nil {
		return nil, err
	}

	month, list, err := m.monthList(res)
	if err != nil {
		return nil, err
	}

	target, err := sessionAt(list, res.Int("id"), month)
	if err != nil {
		return nil, err
	}

	tag := res.Str("m")

	if target.HasManualTag(tag) {
		return nil, errTagExists.Fmt(target.Name, tag)
	}

	clone := target.Clone()
	clone.ManualTags = append(clone.ManualTags, tag)

	next := replaceSession(list, target, clone)

	err = m.db.Save(month, next)
	if err != nil {
		return nil, err
	}

	if loaded, ok := m.db.LoadedMonth(); ok && loaded == month {
		m.sessions = next
	}

	return clone, nil
}

// List returns a paginated, sorted view of a month's sessions.
func (m *Manager) List(raw string) (*View, error) {
	res, err := m.parser.Parse(listGrammar, raw)
	if err != nil {
		return nil, err
	}

	month, list, err := m.monthList(res)
	if err != nil {
		return nil, err
	}

	page := 1
	if res.Has("pg") {
		page = res.Int("pg")
	}

	return newView(month, list, page), nil
}

// commitActive persists the loaded month with clone substituted for the
// resident session, committing to memory only after the save succeeds.
func (m *Manager) commitActive(
	active, clone *models.Session,
) (*models.Session, error) {
	next := replaceSession(m.sessions, active, clone)

	err := m.db.Save(clone.Month(), next)
	if err != nil {
		return nil, err
	}

	m.sessions = next

	return clone, nil
}

// resolveInstant extracts the date+time pair from res, or walks the
// interactive default-to-now flow when both flags are absent.
func (m *Manager) resolveInstant(
	res *argparse.Result,
	g argparse.Grammar,
	what string,
) (time.Time, error) {
	if res.Has("d") != res.Has("t") {
		return time.Time{}, errDateTimePair.WithUsage(g.Usage)
	}

	if res.Has("d") {
		return res.Clock("t").At(res.Date("d")), nil
	}

	now := timeutil.ToMinute(m.now())

	answer, err := m.confirm.Confirm(
		fmt.Sprintf("%s now (%s)?", what, now.Format(layout)),
	)
	if err != nil {
		return time.Time{}, err
	}

	switch answer {
	case AnswerYes:
		return now, nil
	case AnswerCancel:
		return time.Time{}, ErrCanceled
	}

	line, answer, err := m.confirm.Input("Enter it as d/DD/MM/YY t/HHMM")
	if err != nil {
		return time.Time{}, err
	}

	if answer == AnswerCancel {
		return time.Time{}, ErrCanceled
	}

	dt, err := m.parser.Parse(dateTimeGrammar, line)
	if err != nil {
		return time.Time{}, err
	}

	return dt.Clock("t").At(dt.Date("d")), nil
}

// monthList resolves the month a command operates on: the ym/ flag when
// present, otherwise the loaded month.
func (m *Manager) monthList(
	res *argparse.Result,
) (timeutil.Month, []*models.Session, error) {
	loaded, _ := m.db.LoadedMonth()

	if !res.Has("ym") || res.Month("ym") == loaded {
		return loaded, m.sessions, nil
	}

	month := res.Month("ym")

	list, err := m.db.Load(month)
	if err != nil {
		return timeutil.Month{}, nil, err
	}

	return month, list, nil
}

// afterEnd runs the post-session hooks: desktop notification and the
// configured session command. Both are best-effort.
func (m *Manager) afterEnd(sess *models.Session) {
	if m.cfg.Notify {
		hrs, mins := timeutil.MinsToHoursAndMins(sess.Duration)

		msg := fmt.Sprintf("%s logged: %dh %dm", sess.Name, hrs, mins)

		err := beeep.Notify("Grit", msg, "")
		if err != nil {
			slog.Warn("desktop notification failed", slog.Any("error", err))
		}
	}

	if m.cfg.SessionCmd == "" {
		return
	}

	args, err := shellquote.Split(m.cfg.SessionCmd)
	if err != nil || len(args) == 0 {
		slog.Warn("invalid session_cmd", slog.Any("error", err))
		return
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		slog.Warn("session_cmd failed", slog.Any("error", err))
	}
}

func hasActive(list []*models.Session) bool {
	for _, s := range list {
		if s.Active() {
			return true
		}
	}

	return false
}

func replaceSession(
	list []*models.Session,
	old, repl *models.Session,
) []*models.Session {
	next := make([]*models.Session, len(list))
	copy(next, list)

	for i, s := range next {
		if s == old {
			next[i] = repl
			break
		}
	}

	return next
}

func rangeString(s *models.Session, clockFormat string) string {
	start := s.StartTime.Format(clockFormat)

	if s.EndTime == nil {
		return start + " - open"
	}

	return start + " - " + s.EndTime.Format(clockFormat)
}
