package models_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/grit-cli/grit/internal/models"
)

func TestEffectiveTags(t *testing.T) {
	sess := &models.Session{
		Name:       "Leg Day",
		ManualTags: []string{"legs", "heavy"},
		AutoTags:   []string{"legs", "cardio"},
	}

	// Manual entries shadow same-named auto entries.
	assert.Equal(t, []string{"legs", "heavy", "cardio"}, sess.EffectiveTags())

	// Recomputed, never cached: mutating either set changes the result.
	sess.AutoTags = append(sess.AutoTags, "push")
	assert.Equal(t, []string{"legs", "heavy", "cardio", "push"}, sess.EffectiveTags())

	sess.ManualTags = nil
	assert.Equal(t, []string{"legs", "cardio", "push"}, sess.EffectiveTags())
}

func TestClone(t *testing.T) {
	end := time.Date(2025, time.October, 23, 20, 30, 0, 0, time.Local)

	orig := &models.Session{
		Name:      "Push Day",
		StartTime: time.Date(2025, time.October, 23, 19, 0, 0, 0, time.Local),
		EndTime:   &end,
		Duration:  90,
		Exercises: []models.Exercise{
			{Name: "Bench Press", Sets: []int{10, 8, 6}},
		},
		ManualTags: []string{"push"},
		AutoTags:   []string{"push", "chest"},
	}

	clone := orig.Clone()

	if diff := cmp.Diff(orig, clone); diff != "" {
		t.Fatalf("clone differs from original:\n%s", diff)
	}

	// Mutating the clone must not touch the original.
	clone.Exercises[0].Sets[0] = 99
	clone.ManualTags[0] = "changed"
	*clone.EndTime = clone.EndTime.Add(time.Hour)

	assert.Equal(t, 10, orig.Exercises[0].Sets[0])
	assert.Equal(t, "push", orig.ManualTags[0])
	assert.Equal(t, end, *orig.EndTime)
}

func TestActive(t *testing.T) {
	sess := &models.Session{Name: "Leg Day"}
	assert.True(t, sess.Active())

	end := time.Now()
	sess.EndTime = &end
	assert.False(t, sess.Active())
}
