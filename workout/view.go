package workout

import (
	"sort"

	"github.com/grit-cli/grit/internal/models"
	"github.com/grit-cli/grit/internal/timeutil"
)

// PageSize is the number of sessions shown per listing page.
const PageSize = 10

// View is a request-scoped snapshot of one month's sessions. Row numbering
// starts at FirstIndex and is the same numbering delete and open consume;
// it is never persisted or cached across calls.
type View struct {
	Month      timeutil.Month
	Rows       []*models.Session
	Page       int
	Pages      int
	Total      int
	FirstIndex int
}

// sortedSnapshot orders sessions by end time then start time, ascending.
// Open sessions (no end time) sort first.
func sortedSnapshot(list []*models.Session) []*models.Session {
	snap := make([]*models.Session, len(list))
	copy(snap, list)

	sort.SliceStable(snap, func(i, j int) bool {
		a, b := snap[i], snap[j]

		switch {
		case a.EndTime == nil && b.EndTime != nil:
			return true
		case a.EndTime != nil && b.EndTime == nil:
			return false
		case a.EndTime != nil && b.EndTime != nil && !a.EndTime.Equal(*b.EndTime):
			return a.EndTime.Before(*b.EndTime)
		}

		return a.StartTime.Before(b.StartTime)
	})

	return snap
}

// sessionAt resolves a display index against the month's sorted snapshot.
func sessionAt(
	list []*models.Session,
	index int,
	month timeutil.Month,
) (*models.Session, error) {
	snap := sortedSnapshot(list)

	if index > len(snap) {
		return nil, errNoSuchIndex.Fmt(index, month)
	}

	return snap[index-1], nil
}

func newView(month timeutil.Month, list []*models.Session, page int) *View {
	snap := sortedSnapshot(list)

	pages := (len(snap) + PageSize - 1) / PageSize
	if pages == 0 {
		pages = 1
	}

	if page > pages {
		page = pages
	}

	lo := (page - 1) * PageSize

	hi := lo + PageSize
	if hi > len(snap) {
		hi = len(snap)
	}

	return &View{
		Month:      month,
		Rows:       snap[lo:hi],
		Page:       page,
		Pages:      pages,
		Total:      len(snap),
		FirstIndex: lo + 1,
	}
}
