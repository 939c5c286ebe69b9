// Package store persists workout sessions partitioned by calendar month.
// Each month lives in its own Bolt file under the data root; a save
// rewrites the whole month unconditionally.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/grit-cli/grit/internal/apperr"
	"github.com/grit-cli/grit/internal/models"
	"github.com/grit-cli/grit/internal/osutil"
	"github.com/grit-cli/grit/internal/timeutil"
)

const (
	sessionBucket = "sessions"

	monthFilePrefix = "sessions_"
	monthFileSuffix = ".db"
)

var (
	errStoreBusy = &apperr.Error{
		Kind:    apperr.Storage,
		Message: "is grit already running? Only one instance can be active at a time",
	}

	errLoadMonth = &apperr.Error{
		Kind:    apperr.Storage,
		Message: "unable to load sessions for %s",
	}

	errSaveMonth = &apperr.Error{
		Kind:    apperr.Storage,
		Message: "failed to persist sessions for %s",
	}
)

// Store implements DB on top of per-month Bolt files.
type Store struct {
	dir       string
	cache     map[timeutil.Month][]*models.Session
	onDisk    map[timeutil.Month]bool
	loaded    timeutil.Month
	hasLoaded bool
}

// New opens the store rooted at dataDir, creating the directory if absent,
// and builds the on-disk month index.
func New(dataDir string) (*Store, error) {
	err := os.MkdirAll(dataDir, osutil.DirPermission)
	if err != nil {
		return nil, errLoadMonth.Fmt(dataDir).Wrap(err)
	}

	s := &Store{
		dir:    dataDir,
		cache:  make(map[timeutil.Month][]*models.Session),
		onDisk: make(map[timeutil.Month]bool),
	}

	err = s.buildIndex()
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) buildIndex() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return errLoadMonth.Fmt(s.dir).Wrap(err)
	}

	for _, entry := range entries {
		name := entry.Name()

		if entry.IsDir() || !strings.HasPrefix(name, monthFilePrefix) ||
			!strings.HasSuffix(name, monthFileSuffix) {
			continue
		}

		key := strings.TrimSuffix(
			strings.TrimPrefix(name, monthFilePrefix),
			monthFileSuffix,
		)

		month, err := timeutil.ParseMonth(key)
		if err != nil {
			slog.Warn("ignoring unrecognized data file", slog.String("file", name))
			continue
		}

		s.onDisk[month] = true
	}

	return nil
}

// Index returns the months known to have on-disk data, ascending.
func (s *Store) Index() []timeutil.Month {
	months := make([]timeutil.Month, 0, len(s.onDisk))
	for m := range s.onDisk {
		months = append(months, m)
	}

	sort.Slice(months, func(i, j int) bool {
		return months[i].Before(months[j])
	})

	return months
}

// Load returns the month's session list, reading from disk only on first
// access. Once loaded, the cache entry is the sole source of truth.
func (s *Store) Load(month timeutil.Month) ([]*models.Session, error) {
	if sessions, ok := s.cache[month]; ok {
		return sessions, nil
	}

	sessions, err := s.read(month)
	if err != nil {
		return nil, err
	}

	s.cache[month] = sessions

	return sessions, nil
}

// Switch loads the month and makes it the active working set.
func (s *Store) Switch(month timeutil.Month) ([]*models.Session, error) {
	sessions, err := s.Load(month)
	if err != nil {
		return nil, err
	}

	s.loaded = month
	s.hasLoaded = true

	return sessions, nil
}

// LoadedMonth reports the current active working set.
func (s *Store) LoadedMonth() (timeutil.Month, bool) {
	return s.loaded, s.hasLoaded
}

// Save overwrites the month's file with the given list. The cache entry is
// replaced only after the write succeeds, so a failed save leaves the
// resident list untouched.
func (s *Store) Save(month timeutil.Month, sessions []*models.Session) error {
	db, err := s.open(month)
	if err != nil {
		return errSaveMonth.Fmt(month).Wrap(err)
	}
	defer db.Close()

	err = db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(sessionBucket)) != nil {
			if err := tx.DeleteBucket([]byte(sessionBucket)); err != nil {
				return err
			}
		}

		bucket, err := tx.CreateBucket([]byte(sessionBucket))
		if err != nil {
			return err
		}

		for i, sess := range sessions {
			value, err := json.Marshal(sess)
			if err != nil {
				return err
			}

			// Zero-padded insertion index keys preserve list order under
			// Bolt's byte-wise key iteration.
			key := []byte(fmt.Sprintf("%08d", i))

			if err := bucket.Put(key, value); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return errSaveMonth.Fmt(month).Wrap(err)
	}

	s.cache[month] = sessions
	s.onDisk[month] = true

	return nil
}

// read loads a month's sessions from disk. A missing file is not an error:
// the month simply has no data yet. Records that fail to deserialize are
// skipped individually so one bad entry cannot take down the whole month.
func (s *Store) read(month timeutil.Month) ([]*models.Session, error) {
	_, err := os.Stat(s.monthFile(month))
	if errors.Is(err, fs.ErrNotExist) {
		return []*models.Session{}, nil
	}

	db, err := s.open(month)
	if err != nil {
		return nil, errLoadMonth.Fmt(month).Wrap(err)
	}
	defer db.Close()

	var sessions []*models.Session

	err = db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var sess models.Session

			if err := json.Unmarshal(v, &sess); err != nil {
				slog.Warn(
					"skipping corrupted session record",
					slog.String("month", month.String()),
					slog.String("key", string(k)),
					slog.Any("error", err),
				)

				return nil
			}

			sessions = append(sessions, &sess)

			return nil
		})
	})
	if err != nil {
		return nil, errLoadMonth.Fmt(month).Wrap(err)
	}

	if sessions == nil {
		sessions = []*models.Session{}
	}

	return sessions, nil
}

func (s *Store) monthFile(month timeutil.Month) string {
	name := monthFilePrefix + month.String() + monthFileSuffix

	return filepath.Join(s.dir, name)
}

func (s *Store) open(month timeutil.Month) (*bolt.DB, error) {
	db, err := bolt.Open(
		s.monthFile(month),
		0o600,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) || errors.Is(err, bolt.ErrTimeout) {
			return nil, errStoreBusy
		}

		return nil, err
	}

	return db, nil
}
