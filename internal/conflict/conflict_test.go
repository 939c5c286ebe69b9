package conflict_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/grit-cli/grit/internal/conflict"
	"github.com/grit-cli/grit/internal/models"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2025, time.October, day, hour, minute, 0, 0, time.Local)
}

func closed(name string, start, end time.Time) *models.Session {
	return &models.Session{Name: name, StartTime: start, EndTime: &end}
}

func open(name string, start time.Time) *models.Session {
	return &models.Session{Name: name, StartTime: start}
}

func TestOnCreate(t *testing.T) {
	morning := closed("Morning Run", at(23, 7, 0), at(23, 8, 0))
	evening := open("Leg Day", at(23, 19, 0))

	sessions := []*models.Session{morning, evening}

	t.Run("start inside a closed session collides", func(t *testing.T) {
		got := conflict.OnCreate(sessions, at(23, 7, 30))
		assert.Same(t, morning, got)
	})

	t.Run("start at a closed session's start collides", func(t *testing.T) {
		got := conflict.OnCreate(sessions, at(23, 7, 0))
		assert.Same(t, morning, got)
	})

	t.Run("start at a closed session's end is free", func(t *testing.T) {
		got := conflict.OnCreate([]*models.Session{morning}, at(23, 8, 0))
		assert.Nil(t, got)
	})

	t.Run("open session extends indefinitely", func(t *testing.T) {
		got := conflict.OnCreate(sessions, at(23, 19, 30))
		assert.Same(t, evening, got)

		got = conflict.OnCreate(sessions, at(23, 23, 59))
		assert.Same(t, evening, got)
	})

	t.Run("start before an open session is free", func(t *testing.T) {
		got := conflict.OnCreate([]*models.Session{evening}, at(23, 18, 0))
		assert.Nil(t, got)
	})

	t.Run("other days are not examined", func(t *testing.T) {
		got := conflict.OnCreate(sessions, at(24, 7, 30))
		assert.Nil(t, got)
	})

	t.Run("no cross-midnight detection", func(t *testing.T) {
		late := closed("Night Owl", at(23, 23, 0), at(24, 1, 0))

		// Starting at 00:30 next day falls inside the interval, but the
		// resolver only compares sessions sharing the start's calendar
		// day.
		got := conflict.OnCreate([]*models.Session{late}, at(24, 0, 30))
		assert.Nil(t, got)
	})
}

func TestOnEnd(t *testing.T) {
	active := open("Leg Day", at(23, 9, 0))
	later := closed("Evening Swim", at(23, 11, 0), at(23, 12, 0))

	sessions := []*models.Session{active, later}

	t.Run("end before a later session is fine", func(t *testing.T) {
		got := conflict.OnEnd(sessions, active, at(23, 10, 0))
		assert.Nil(t, got)
	})

	t.Run("end that swallows a later start collides", func(t *testing.T) {
		got := conflict.OnEnd(sessions, active, at(23, 11, 30))
		assert.Same(t, later, got)
	})

	t.Run("end exactly at a later start is fine", func(t *testing.T) {
		got := conflict.OnEnd(sessions, active, at(23, 11, 0))
		assert.Nil(t, got)
	})

	t.Run("the active session is not its own conflict", func(t *testing.T) {
		got := conflict.OnEnd([]*models.Session{active}, active, at(23, 10, 0))
		assert.Nil(t, got)
	})
}

func TestEndsAfterStart(t *testing.T) {
	start := at(23, 19, 0)

	assert.True(t, conflict.EndsAfterStart(start, at(23, 19, 1)))
	assert.False(t, conflict.EndsAfterStart(start, start))
	assert.False(t, conflict.EndsAfterStart(start, at(23, 18, 59)))

	// Sub-minute differences are invisible at minute resolution.
	assert.False(t, conflict.EndsAfterStart(start, start.Add(30*time.Second)))
}
