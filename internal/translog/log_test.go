package translog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppend_CreatesLogFile(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "execution-log.json")
	log := New(logPath)

	entry := Entry{
		ID:        "run_1",
		Timestamp: time.Unix(0, 1),
		Operations: []ExecutedOperation{
			{Type: OpRename, Source: "a", Target: "a1"},
		},
	}
	require.NoError(t, log.Append(entry))
	assert.FileExists(t, logPath)
}

func TestAppend_AccumulatesAcrossRuns(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "execution-log.json")
	log := New(logPath)

	require.NoError(t, log.Append(Entry{ID: "run_1", Timestamp: time.Unix(0, 1), Operations: []ExecutedOperation{
		{Type: OpRename, Source: "a", Target: "a1"},
	}}))
	require.NoError(t, log.Append(Entry{ID: "run_2", Timestamp: time.Unix(0, 2), Operations: []ExecutedOperation{
		{Type: OpMkdir, Source: "", Target: "xy"},
		{Type: OpRename, Source: "b", Target: "xy/b1"},
	}}))

	entries, err := log.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "run_1", entries[0].ID)
	assert.Equal(t, "run_2", entries[1].ID)
	assert.Len(t, entries[1].Operations, 2)
}

func TestEntries_EmptyWhenLogFileAbsent(t *testing.T) {
	tmpDir := t.TempDir()
	log := New(filepath.Join(tmpDir, "nonexistent.json"))

	entries, err := log.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNewID_ProducesDistinctIDsForDistinctTimes(t *testing.T) {
	a := NewID(time.Unix(0, 1))
	b := NewID(time.Unix(0, 2))
	assert.NotEqual(t, a, b)
}
