// Package translog implements the append-only execution log SPEC_FULL §2.3
// calls for: one record per pair renamed during RenamingPlan.Execute,
// written to disk and guarded by a cross-process advisory lock so two
// movr invocations never interleave writes to the same log file. Adapted
// from the teacher's internal/transaction, with Rollback/Undo dropped per
// spec.md's non-goals.
package translog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

// OperationType is the kind of file-system action a record describes.
type OperationType string

const (
	OpRename OperationType = "rename"
	OpMkdir  OperationType = "mkdir"
)

// ExecutedOperation is one file-system action taken during Execute.
type ExecutedOperation struct {
	Type   OperationType `json:"type"`
	Source string        `json:"source"`
	Target string        `json:"target"`
}

// Entry is a single run's worth of executed operations, appended to the
// log as one element of the top-level JSON array.
type Entry struct {
	ID         string              `json:"id"`
	Timestamp  time.Time           `json:"timestamp"`
	Operations []ExecutedOperation `json:"operations"`
}

// Log appends ExecutedOperation records to a JSON file, one Entry per
// run, serializing concurrent writers from other processes with an
// advisory file lock on logPath+".lock".
type Log struct {
	path string
	mu   sync.Mutex
}

// New builds a Log writing to path. It does not touch the filesystem
// until Append is called.
func New(path string) *Log {
	return &Log{path: path}
}

// Append adds entry to the log file, acquiring the cross-process lock for
// the duration of the read-modify-write.
func (l *Log) Append(entry Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating execution log directory: %w", err)
	}

	fl := flock.New(l.path + ".lock")
	if err := fl.Lock(); err != nil {
		return fmt.Errorf("acquiring execution log lock: %w", err)
	}
	defer fl.Unlock()

	entries, err := l.readLocked()
	if err != nil {
		return err
	}
	entries = append(entries, entry)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling execution log: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		return fmt.Errorf("writing execution log: %w", err)
	}
	return nil
}

// Entries returns every entry recorded so far, most recent last.
func (l *Log) Entries() ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.readLocked()
}

func (l *Log) readLocked() ([]Entry, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading execution log: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing execution log: %w", err)
	}
	return entries, nil
}

// NewID generates an identifier for a run's Entry, suitable for surfacing
// in a failure report's "trace identifier" (spec.md §7).
func NewID(now time.Time) string {
	return fmt.Sprintf("run_%d", now.UnixNano())
}
