// Package conflict decides whether a proposed session start or end instant
// collides with the sessions already resident in the loaded month.
//
// Comparisons are restricted to sessions sharing the same calendar day as
// the proposed instant. Sessions spanning midnight are not detected; this
// mirrors the recording model (one workout, one day) and is a documented
// limitation.
package conflict

import (
	"time"

	"github.com/grit-cli/grit/internal/models"
	"github.com/grit-cli/grit/internal/timeutil"
)

// OnCreate returns the first resident session that a new session starting
// at start would overlap, or nil if there is no collision.
//
// An open session (nil end time) is treated as extending indefinitely: any
// start at or after its start collides.
func OnCreate(sessions []*models.Session, start time.Time) *models.Session {
	start = timeutil.ToMinute(start)

	for _, cand := range sessions {
		if !timeutil.SameDay(cand.StartTime, start) {
			continue
		}

		candStart := timeutil.ToMinute(cand.StartTime)

		if cand.EndTime == nil {
			if !start.Before(candStart) {
				return cand
			}

			continue
		}

		candEnd := timeutil.ToMinute(*cand.EndTime)

		if !start.Before(candStart) && start.Before(candEnd) {
			return cand
		}
	}

	return nil
}

// OnEnd checks whether ending active at end is legal. It returns the first
// resident session whose start would be swallowed by the interval
// [active.start, end), or nil. Callers must reject end instants that are
// not strictly after the active session's start before calling OnEnd; see
// EndsAfterStart.
func OnEnd(
	sessions []*models.Session,
	active *models.Session,
	end time.Time,
) *models.Session {
	start := timeutil.ToMinute(active.StartTime)
	end = timeutil.ToMinute(end)

	for _, cand := range sessions {
		if cand == active {
			continue
		}

		if cand.StartTime.IsZero() || !timeutil.SameDay(cand.StartTime, start) {
			continue
		}

		candStart := timeutil.ToMinute(cand.StartTime)

		if !candStart.Before(start) && candStart.Before(end) {
			return cand
		}
	}

	return nil
}

// EndsAfterStart reports whether end is strictly after start at minute
// resolution.
func EndsAfterStart(start, end time.Time) bool {
	return timeutil.ToMinute(end).After(timeutil.ToMinute(start))
}
