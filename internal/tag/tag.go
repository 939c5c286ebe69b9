// Package tag suggests tags for a session from its exercise names.
package tag

import (
	"strings"

	"github.com/grit-cli/grit/internal/models"
)

// keywords maps exercise-name substrings to suggested tags. First match
// per tag wins; suggestion order follows exercise insertion order.
var keywords = []struct {
	substr string
	tag    string
}{
	{"squat", "legs"},
	{"lunge", "legs"},
	{"leg", "legs"},
	{"calf", "legs"},
	{"deadlift", "pull"},
	{"row", "pull"},
	{"pull", "pull"},
	{"curl", "pull"},
	{"chin", "pull"},
	{"bench", "push"},
	{"press", "push"},
	{"push", "push"},
	{"dip", "push"},
	{"fly", "push"},
	{"run", "cardio"},
	{"treadmill", "cardio"},
	{"bike", "cardio"},
	{"cycle", "cardio"},
	{"swim", "cardio"},
	{"stretch", "mobility"},
	{"yoga", "mobility"},
	{"plank", "core"},
	{"crunch", "core"},
	{"sit-up", "core"},
}

// Keyword is a rule-based tagger over exercise names.
type Keyword struct{}

// Suggest returns tags derived from the session's exercise names,
// deduplicated in first-hit order. The session name itself also
// participates so that a freshly created session with no exercises can
// still pick up a tag.
func (Keyword) Suggest(sess *models.Session) []string {
	var tags []string

	seen := make(map[string]bool)

	names := []string{sess.Name}
	for _, ex := range sess.Exercises {
		names = append(names, ex.Name)
	}

	for _, name := range names {
		lower := strings.ToLower(name)

		for _, kw := range keywords {
			if strings.Contains(lower, kw.substr) && !seen[kw.tag] {
				seen[kw.tag] = true
				tags = append(tags, kw.tag)
			}
		}
	}

	return tags
}
