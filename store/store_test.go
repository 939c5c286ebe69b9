package store_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/grit-cli/grit/internal/models"
	"github.com/grit-cli/grit/internal/timeutil"
	"github.com/grit-cli/grit/store"
)

var october = timeutil.Month{Year: 2025, Month: time.October}

func sampleSessions() []*models.Session {
	end := time.Date(2025, 10, 23, 20, 30, 0, 0, time.UTC)

	return []*models.Session{
		{
			Name:      "Leg Day",
			StartTime: time.Date(2025, 10, 23, 19, 0, 0, 0, time.UTC),
			EndTime:   &end,
			Duration:  90,
			Exercises: []models.Exercise{
				{Name: "Squat", Sets: []int{10, 8, 6}},
				{Name: "Lunge", Sets: []int{12}},
			},
			ManualTags: []string{"legs"},
			AutoTags:   []string{"legs", "heavy"},
		},
		{
			Name:      "Morning Run",
			StartTime: time.Date(2025, 10, 24, 7, 0, 0, 0, time.UTC),
		},
		{
			Name:      "Push Day",
			StartTime: time.Date(2025, 10, 21, 18, 0, 0, 0, time.UTC),
		},
	}
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s, err := store.New(dir)
	require.NoError(t, err)

	want := sampleSessions()
	require.NoError(t, s.Save(october, want))

	// A fresh store instance simulates a new process.
	fresh, err := store.New(dir)
	require.NoError(t, err)

	got, err := fresh.Load(october)
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("loaded sessions differ from saved:\n%s", diff)
	}
}

func TestSaveOverwrites(t *testing.T) {
	dir := t.TempDir()

	s, err := store.New(dir)
	require.NoError(t, err)

	require.NoError(t, s.Save(october, sampleSessions()))

	shorter := sampleSessions()[:1]
	require.NoError(t, s.Save(october, shorter))

	fresh, err := store.New(dir)
	require.NoError(t, err)

	got, err := fresh.Load(october)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "Leg Day", got[0].Name)
}

func TestLoadMissingMonthIsEmpty(t *testing.T) {
	s, err := store.New(t.TempDir())
	require.NoError(t, err)

	got, err := s.Load(timeutil.Month{Year: 2024, Month: time.March})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMonthPartition(t *testing.T) {
	dir := t.TempDir()

	s, err := store.New(dir)
	require.NoError(t, err)

	november := timeutil.Month{Year: 2025, Month: time.November}

	require.NoError(t, s.Save(october, sampleSessions()))

	got, err := s.Load(november)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestIndex(t *testing.T) {
	dir := t.TempDir()

	s, err := store.New(dir)
	require.NoError(t, err)

	assert.Empty(t, s.Index())

	november := timeutil.Month{Year: 2025, Month: time.November}
	march := timeutil.Month{Year: 2025, Month: time.March}

	require.NoError(t, s.Save(november, sampleSessions()[:1]))
	require.NoError(t, s.Save(march, sampleSessions()[:1]))

	fresh, err := store.New(dir)
	require.NoError(t, err)

	assert.Equal(t, []timeutil.Month{march, november}, fresh.Index())
}

func TestLoadedMonth(t *testing.T) {
	s, err := store.New(t.TempDir())
	require.NoError(t, err)

	_, ok := s.LoadedMonth()
	assert.False(t, ok)

	_, err = s.Switch(october)
	require.NoError(t, err)

	loaded, ok := s.LoadedMonth()
	assert.True(t, ok)
	assert.Equal(t, october, loaded)
}

func TestLoadUsesCache(t *testing.T) {
	dir := t.TempDir()

	s, err := store.New(dir)
	require.NoError(t, err)

	require.NoError(t, s.Save(october, sampleSessions()))

	first, err := s.Load(october)
	require.NoError(t, err)

	second, err := s.Load(october)
	require.NoError(t, err)

	// Same instance offers the same resident slice, not a re-read.
	assert.Equal(t, &first[0], &second[0])
}

func TestCorruptedRecordIsSkipped(t *testing.T) {
	dir := t.TempDir()

	s, err := store.New(dir)
	require.NoError(t, err)

	require.NoError(t, s.Save(october, sampleSessions()))

	// Scribble over the second record directly.
	path := dir + "/sessions_2025-10.db"

	db, err := bolt.Open(path, 0o600, nil)
	require.NoError(t, err)

	err = db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte("sessions")).Put(
			[]byte("00000001"),
			[]byte("{not json"),
		)
	})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	fresh, err := store.New(dir)
	require.NoError(t, err)

	got, err := fresh.Load(october)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "Leg Day", got[0].Name)
	assert.Equal(t, "Push Day", got[1].Name)
}
