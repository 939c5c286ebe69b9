package store

import (
	"github.com/grit-cli/grit/internal/models"
	"github.com/grit-cli/grit/internal/timeutil"
)

// DB is the month store interface consumed by the session manager.
type DB interface {
	// Index returns the months known to have on-disk data, in ascending
	// order. It is a discoverability hint, not authoritative cache state.
	Index() []timeutil.Month
	// Load returns the month's session list, reading from disk on first
	// access. A month with no on-disk file loads as an empty list.
	Load(month timeutil.Month) ([]*models.Session, error)
	// Save serializes the full list and overwrites the month's file. The
	// in-memory cache entry is only replaced after the write succeeds.
	Save(month timeutil.Month, sessions []*models.Session) error
	// Switch makes month the active working set and returns its list.
	Switch(month timeutil.Month) ([]*models.Session, error)
	// LoadedMonth reports the current active working set, if any.
	LoadedMonth() (timeutil.Month, bool)
}
