package weight

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grit-cli/grit/internal/apperr"
	"github.com/grit-cli/grit/internal/timeutil"
)

func newTestLog(t *testing.T) *Log {
	t.Helper()

	l := NewLog(t.TempDir(), timeutil.Month{Year: 2024, Month: time.January})
	l.now = func() time.Time {
		return time.Date(2025, time.October, 23, 7, 30, 0, 0, time.Local)
	}

	return l
}

func TestRecordAndEntries(t *testing.T) {
	l := newTestLog(t)

	first, err := l.Record("w/82.4 d/20/10/25")
	require.NoError(t, err)
	assert.Equal(t, 82.4, first.Weight)

	// No d/ flag: dated today.
	second, err := l.Record("w/82")
	require.NoError(t, err)
	assert.Equal(
		t,
		time.Date(2025, time.October, 23, 7, 30, 0, 0, time.Local),
		second.Date,
	)

	entries, err := l.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(
		t,
		time.Date(2025, time.October, 20, 0, 0, 0, 0, time.Local),
		entries[0].Date,
	)
	assert.Equal(t, 82.4, entries[0].Weight)
	assert.Equal(t, 82.0, entries[1].Weight)
}

func TestEntriesEmptyWithoutHistory(t *testing.T) {
	l := newTestLog(t)

	entries, err := l.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEntriesSkipsMalformedLines(t *testing.T) {
	l := newTestLog(t)

	_, err := l.Record("w/82.4 d/20/10/25")
	require.NoError(t, err)

	f, err := os.OpenFile(
		filepath.Join(l.dir, historyFileName),
		os.O_APPEND|os.O_WRONLY,
		0o644,
	)
	require.NoError(t, err)

	_, err = f.WriteString("not a weight line\n21/10/25,abc\n\n22/10/25,81.9\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	entries, err := l.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 82.4, entries[0].Weight)
	assert.Equal(t, 81.9, entries[1].Weight)
}

func TestRecordRejectsBadWeight(t *testing.T) {
	l := newTestLog(t)

	for _, raw := range []string{"w/0", "w/82.45", "w/abc", "w/1000"} {
		_, err := l.Record(raw)
		require.Error(t, err, raw)
		assert.True(t, apperr.IsKind(err, apperr.InvalidArgument), raw)
	}

	entries, err := l.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGoalRoundTrip(t *testing.T) {
	l := newTestLog(t)

	assert.Nil(t, l.Goal())

	set, err := l.SetGoal("w/78.0")
	require.NoError(t, err)
	assert.Equal(t, 78.0, set.Weight)

	goal := l.Goal()
	require.NotNil(t, goal)
	assert.Equal(t, 78.0, goal.Weight)
	assert.Equal(
		t,
		time.Date(2025, time.October, 23, 0, 0, 0, 0, time.Local),
		goal.SetOn,
	)

	// Setting again overwrites.
	_, err = l.SetGoal("w/76.5")
	require.NoError(t, err)

	goal = l.Goal()
	require.NotNil(t, goal)
	assert.Equal(t, 76.5, goal.Weight)
}

func TestGoalMalformedFileIsNil(t *testing.T) {
	l := newTestLog(t)

	err := os.WriteFile(filepath.Join(l.dir, goalFileName), []byte("nope"), 0o644)
	require.NoError(t, err)

	assert.Nil(t, l.Goal())
}
