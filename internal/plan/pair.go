// Package plan implements the validation pipeline and planner state
// machine (spec.md §4.5–§4.7): RenamingPlan owns a sequence of RenamePair
// values, runs them through a fixed sequence of checks, and executes the
// survivors against an fsoracle.Oracle.
package plan

import (
	"path/filepath"
	"strings"

	"github.com/xuanyiying/movr/internal/problem"
)

// RenamePair is the unit of work: an original path, its (possibly not yet
// computed) new path, and the execution-time flags a validation problem
// may set on it. Pairs are value objects: every validation step that
// changes a pair returns a new RenamePair rather than mutating in place.
type RenamePair struct {
	Orig string

	// New is empty until parsing or the rename hook populates it. Once
	// prepare() completes without failing, every retained pair has a
	// non-empty New.
	New string

	// Exclude is the filter hook's verdict: true drops the pair.
	Exclude bool

	// CreateParent records that a "parent" problem was controlled with
	// Create: execution must mkdir -p the parent of New before renaming.
	CreateParent bool

	// Clobber records that an "existing"/"existing_diff"/"colliding"/
	// "colliding_diff" problem was controlled with Clobber: execution must
	// overwrite New.
	Clobber bool
}

// Equal reports whether Orig and New are the same path after trailing
// separator normalization (spec.md §3: "comparison is byte-exact after
// optional stripping").
func (p RenamePair) Equal() bool {
	return stripTrailingSep(p.Orig) == stripTrailingSep(p.New)
}

func stripTrailingSep(path string) string {
	return strings.TrimRight(path, string(filepath.Separator))
}

// WithNew returns a copy of p with New set.
func (p RenamePair) WithNew(newPath string) RenamePair {
	p.New = newPath
	return p
}

// WithExclude returns a copy of p with Exclude set.
func (p RenamePair) WithExclude(exclude bool) RenamePair {
	p.Exclude = exclude
	return p
}

// WithCreateParent returns a copy of p with CreateParent set.
func (p RenamePair) WithCreateParent(v bool) RenamePair {
	p.CreateParent = v
	return p
}

// WithClobber returns a copy of p with Clobber set.
func (p RenamePair) WithClobber(v bool) RenamePair {
	p.Clobber = v
	return p
}

// Problem is a tagged anomaly found in a specific pair, or plan-wide when
// Pair is nil.
type Problem struct {
	Kind    problem.Kind
	Message string
	Pair    *RenamePair
}

func newProblem(kind problem.Kind, pair *RenamePair, args ...interface{}) Problem {
	return Problem{Kind: kind, Message: problem.Message(kind, args...), Pair: pair}
}

func (p Problem) Error() string {
	return p.Message
}
