// Package models defines the workout session records persisted by the
// month store.
package models

import (
	"time"

	"github.com/grit-cli/grit/internal/timeutil"
)

// Exercise is a named movement within a session. Sets holds one rep count
// per set, in insertion order.
type Exercise struct {
	Name string `json:"name"`
	Sets []int  `json:"sets"`
}

// Session represents one timed workout. A session has no stable identity:
// it is addressed by its transient display index within its month.
type Session struct {
	Name       string     `json:"name"`
	StartTime  time.Time  `json:"start_time"`
	EndTime    *time.Time `json:"end_time"` // nil while the session is open
	Duration   int        `json:"duration_mins"`
	Exercises  []Exercise `json:"exercises"`
	ManualTags []string   `json:"manual_tags"`
	AutoTags   []string   `json:"auto_tags"`
}

// Active reports whether the session is still open.
func (s *Session) Active() bool {
	return s.EndTime == nil
}

// Month returns the month bucket the session belongs to, derived from its
// start date.
func (s *Session) Month() timeutil.Month {
	return timeutil.MonthOf(s.StartTime)
}

// EffectiveTags returns the manual tags followed by the auto tags that are
// not shadowed by a same-named manual tag. The result is recomputed on
// every call since either set can change independently.
func (s *Session) EffectiveTags() []string {
	tags := make([]string, 0, len(s.ManualTags)+len(s.AutoTags))
	tags = append(tags, s.ManualTags...)

	for _, t := range s.AutoTags {
		if !contains(s.ManualTags, t) {
			tags = append(tags, t)
		}
	}

	return tags
}

// HasManualTag reports whether tag is already present in the manual set.
func (s *Session) HasManualTag(tag string) bool {
	return contains(s.ManualTags, tag)
}

// Clone returns a deep copy of the session. Mutating commands operate on a
// clone and only swap it into the resident list once the save succeeds.
func (s *Session) Clone() *Session {
	c := *s

	if s.EndTime != nil {
		end := *s.EndTime
		c.EndTime = &end
	}

	c.Exercises = make([]Exercise, len(s.Exercises))
	for i, ex := range s.Exercises {
		c.Exercises[i] = Exercise{
			Name: ex.Name,
			Sets: append([]int(nil), ex.Sets...),
		}
	}

	c.ManualTags = append([]string(nil), s.ManualTags...)
	c.AutoTags = append([]string(nil), s.AutoTags...)

	return &c
}

// CloneList returns a shallow list copy whose elements are deep copies.
func CloneList(sessions []*Session) []*Session {
	out := make([]*Session, len(sessions))
	for i, s := range sessions {
		out[i] = s.Clone()
	}

	return out
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}

	return false
}
