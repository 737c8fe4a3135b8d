package fsoracle

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SimulatedFileSystem is an Oracle backed by an in-memory set of paths,
// required by spec.md §4.1 for dry analyses and tests so callers never
// have to touch disk. Each entry records whether it is a file or a
// directory; ancestors of any entry are implicitly directories, and "."
// always exists.
type SimulatedFileSystem struct {
	entries map[string]Kind
	// caseFold, when true, makes loose existence checks insensitive to
	// case (simulating a case-insensitive real file system such as the
	// default macOS/Windows ones) the same way OSFileSystem's os.Stat
	// lookup would on those platforms. Loose existence checks
	// are always case-insensitive when caseFold is set; strict checks
	// additionally require exact-case match, same contract as OSFileSystem.
	caseFold bool
}

// NewSimulatedFileSystem builds a simulated oracle from an initial set of
// paths, each recorded as File unless it is later recorded as a directory
// by SetKind. A path that is not recorded itself but is an ancestor of a
// recorded entry reports as Dir; a recorded path keeps its recorded kind.
func NewSimulatedFileSystem(paths ...string) *SimulatedFileSystem {
	fs := &SimulatedFileSystem{entries: make(map[string]Kind)}
	for _, p := range paths {
		fs.entries[clean(p)] = File
	}
	return fs
}

// WithCaseFold enables case-insensitive loose existence checks, matching
// the default behavior of macOS/Windows file systems.
func (fs *SimulatedFileSystem) WithCaseFold() *SimulatedFileSystem {
	fs.caseFold = true
	return fs
}

// SetKind overrides the Kind recorded for path (e.g. to mark it a
// directory).
func (fs *SimulatedFileSystem) SetKind(path string, kind Kind) {
	fs.entries[clean(path)] = kind
}

func clean(path string) string {
	return filepath.Clean(path)
}

func (fs *SimulatedFileSystem) lookup(path string) (Kind, bool) {
	path = clean(path)
	if path == "." {
		return Dir, true
	}
	if kind, ok := fs.entries[path]; ok {
		return kind, true
	}
	// An entry implies its ancestors exist as directories.
	for p := range fs.entries {
		if isAncestor(path, p) {
			return Dir, true
		}
	}
	if fs.caseFold {
		lower := strings.ToLower(path)
		for p, kind := range fs.entries {
			if strings.ToLower(p) == lower {
				return kind, true
			}
			if strings.ToLower(clean(ParentOf(p))) == lower || isAncestorFold(lower, p) {
				return Dir, true
			}
		}
	}
	return Absent, false
}

func isAncestor(ancestor, of string) bool {
	if ancestor == of {
		return false
	}
	rel, err := filepath.Rel(ancestor, of)
	if err != nil {
		return false
	}
	return rel != "." && !strings.HasPrefix(rel, "..")
}

func isAncestorFold(ancestorLower, of string) bool {
	cur := clean(of)
	for {
		parent := ParentOf(cur)
		if parent == cur {
			return false
		}
		if strings.ToLower(parent) == ancestorLower {
			return true
		}
		cur = parent
		if cur == "." {
			return false
		}
	}
}

// Exists implements Oracle.
func (fs *SimulatedFileSystem) Exists(path string, strict bool) bool {
	kind, ok := fs.lookup(path)
	if !ok {
		return false
	}
	_ = kind
	if !strict {
		return true
	}
	if !fs.caseFold {
		return true
	}
	// Strict: require an exact-case entry (or its exact-case ancestor).
	cpath := clean(path)
	if cpath == "." {
		return true
	}
	if _, ok := fs.entries[cpath]; ok {
		return true
	}
	for p := range fs.entries {
		if isAncestor(cpath, p) {
			return true
		}
	}
	return false
}

// Kind implements Oracle.
func (fs *SimulatedFileSystem) Kind(path string) Kind {
	kind, ok := fs.lookup(path)
	if !ok {
		return Absent
	}
	return kind
}

// Rename implements Oracle: fails if dst already (loosely) exists, unless
// src and dst name the same entry (a case-only rename under caseFold).
func (fs *SimulatedFileSystem) Rename(src, dst string) error {
	if fs.Exists(dst, false) && !fs.sameEntry(src, dst) {
		return fmt.Errorf("target already exists: %s", dst)
	}
	return fs.move(src, dst)
}

// sameEntry reports whether src and dst currently resolve to the same
// recorded entry — true for a case-only rename on a case-folded
// filesystem, where "exists loosely" would otherwise flag the source
// itself as a collision with its own new name.
func (fs *SimulatedFileSystem) sameEntry(src, dst string) bool {
	csrc, cdst := clean(src), clean(dst)
	if csrc == cdst {
		return true
	}
	if !fs.caseFold {
		return false
	}
	return strings.EqualFold(csrc, cdst)
}

// Replace implements Oracle: overwrites dst.
func (fs *SimulatedFileSystem) Replace(src, dst string) error {
	delete(fs.entries, clean(dst))
	return fs.move(src, dst)
}

func (fs *SimulatedFileSystem) move(src, dst string) error {
	kind, ok := fs.entries[clean(src)]
	if !ok {
		return fmt.Errorf("source does not exist: %s", src)
	}
	delete(fs.entries, clean(src))
	fs.entries[clean(dst)] = kind
	return nil
}

// MkdirParents implements Oracle: records every missing ancestor of path
// as a Dir entry.
func (fs *SimulatedFileSystem) MkdirParents(path string) error {
	parent := ParentOf(clean(path))
	for parent != "." && parent != string(filepath.Separator) {
		if _, ok := fs.entries[parent]; !ok {
			fs.entries[parent] = Dir
		}
		next := ParentOf(parent)
		if next == parent {
			break
		}
		parent = next
	}
	return nil
}

// Paths returns a snapshot of every path currently recorded, for test
// assertions.
func (fs *SimulatedFileSystem) Paths() []string {
	out := make([]string, 0, len(fs.entries))
	for p := range fs.entries {
		out = append(out, p)
	}
	return out
}
