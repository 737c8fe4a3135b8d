// Package plan implements the validation pipeline and planner state
// machine (spec.md §4.5–§4.7): RenamingPlan owns a sequence of RenamePair
// values, runs them through a fixed sequence of checks, and executes the
// survivors against an fsoracle.Oracle.
package plan

import (
	"fmt"
	"sync/atomic"

	"github.com/xuanyiying/movr/internal/fsoracle"
	"github.com/xuanyiying/movr/internal/hooks"
	"github.com/xuanyiying/movr/internal/inputparse"
	"github.com/xuanyiying/movr/internal/problem"
)

// State is the planner's lifecycle stage: fresh -> prepared -> executed.
type State int

const (
	StateFresh State = iota
	StatePrepared
	StateExecuted
)

func (s State) String() string {
	switch s {
	case StatePrepared:
		return "prepared"
	case StateExecuted:
		return "executed"
	default:
		return "fresh"
	}
}

// Sentinel tracking-index values, mirroring the source tool's
// RenamingPlan.TRACKING constants (not_started/done) alongside the plain
// 0..len(pairs) in-progress values.
const (
	TrackingNotStarted = -1
	TrackingDone       = -2
)

// Options configures a RenamingPlan at construction time.
type Options struct {
	Inputs       []string
	Structure    inputparse.Structure
	RenameSource string
	RenameFn     hooks.RenameFunc
	FilterSource string
	FilterFn     hooks.FilterFunc
	Indent       int
	SeqStart     int
	SeqStep      int
	Bindings     []problem.Binding
	Oracle       fsoracle.Oracle
}

// RenamingPlan is the planner state machine of spec.md §4.6. Pairs are
// value objects: every validation step replaces rather than mutates them.
// The plan exclusively owns its pair vector and problem ledger; the
// oracle is a borrowed capability.
type RenamingPlan struct {
	Inputs       []string
	Structure    inputparse.Structure
	RenameSource string
	RenameFn     hooks.RenameFunc
	FilterSource string
	FilterFn     hooks.FilterFunc
	Indent       int
	SeqStart     int
	SeqStep      int
	Policy       *problem.Policy
	Oracle       fsoracle.Oracle

	state        State
	pairs        []RenamePair
	problems     map[problem.Control][]Problem
	uncontrolled []Problem
	prefixLen    int
	failed       bool

	// trackingIndex is read from another goroutine by a progress-bar poller
	// while Execute runs, so it is stored atomically rather than as a plain
	// int field.
	trackingIndex atomic.Int64
}

// New validates opts.Bindings into a control policy and builds a fresh
// RenamingPlan. It fails only for the construction-time misuses spec.md
// §7 names: conflicting or inapplicable control bindings.
func New(opts Options) (*RenamingPlan, error) {
	policy, err := problem.NewPolicy(opts.Bindings)
	if err != nil {
		return nil, err
	}
	seqStart := opts.SeqStart
	if seqStart == 0 {
		seqStart = 1
	}
	seqStep := opts.SeqStep
	if seqStep == 0 {
		seqStep = 1
	}
	rp := &RenamingPlan{
		Inputs:       opts.Inputs,
		Structure:    opts.Structure,
		RenameSource: opts.RenameSource,
		RenameFn:     opts.RenameFn,
		FilterSource: opts.FilterSource,
		FilterFn:     opts.FilterFn,
		Indent:       opts.Indent,
		SeqStart:     seqStart,
		SeqStep:      seqStep,
		Policy:       policy,
		Oracle:       opts.Oracle,
		state:        StateFresh,
		problems:     make(map[problem.Control][]Problem),
	}
	rp.trackingIndex.Store(TrackingNotStarted)
	return rp, nil
}

// State reports the plan's current lifecycle stage.
func (rp *RenamingPlan) State() State { return rp.state }

// Failed reports whether prepare() recorded any uncontrolled problem.
func (rp *RenamingPlan) Failed() bool { return rp.failed }

// Uncontrolled returns the plan-failing problems recorded during prepare.
func (rp *RenamingPlan) Uncontrolled() []Problem {
	out := make([]Problem, len(rp.uncontrolled))
	copy(out, rp.uncontrolled)
	return out
}

// Pairs returns the prepared pair vector. Empty before prepare() runs.
func (rp *RenamingPlan) Pairs() []RenamePair {
	out := make([]RenamePair, len(rp.pairs))
	copy(out, rp.pairs)
	return out
}

// ProblemsByControl returns the problems routed to ctrl during prepare.
func (rp *RenamingPlan) ProblemsByControl(ctrl problem.Control) []Problem {
	out := make([]Problem, len(rp.problems[ctrl]))
	copy(out, rp.problems[ctrl])
	return out
}

// TrackingIndex returns the index execute() is (or was) attempting. Safe to
// call from another goroutine while Execute is in flight (e.g. a
// progress-bar poller).
func (rp *RenamingPlan) TrackingIndex() int { return int(rp.trackingIndex.Load()) }

// PrefixLen returns the common-prefix length of the surviving originals as
// of the last validation step that ran.
func (rp *RenamingPlan) PrefixLen() int { return rp.prefixLen }

// Prepare populates the pair vector and problem ledger. It is idempotent:
// only the first call does work, matching spec.md §4.6.
func (rp *RenamingPlan) Prepare() error {
	if rp.state != StateFresh {
		return nil
	}
	defer func() { rp.state = StatePrepared }()

	parsed, err := inputparse.Parse(rp.Inputs, rp.Structure)
	if err != nil {
		pe, ok := err.(*inputparse.ParseError)
		if !ok {
			return err
		}
		rp.uncontrolled = append(rp.uncontrolled, Problem{Kind: pe.Kind, Message: pe.Message})
		rp.failed = true
		return nil
	}

	survivors := make([]RenamePair, len(parsed))
	for i, pp := range parsed {
		survivors[i] = RenamePair{Orig: pp.Orig, New: pp.New}
	}

	for _, step := range perPairSteps {
		if len(survivors) == 0 {
			break
		}
		survivors = rp.runStep(step, survivors)
		if rp.allFiltered(survivors) {
			return nil
		}
	}

	if len(survivors) > 0 {
		collisions := runCollisionCheck(survivors, rp.Oracle)
		if len(collisions) > 0 {
			var next []RenamePair
			for i, p := range survivors {
				if prob, ok := collisions[i]; ok {
					rp.routeProblem(prob, &next, p)
				} else {
					next = append(next, p)
				}
			}
			survivors = next
			if rp.allFiltered(survivors) {
				return nil
			}
		}
	}

	rp.pairs = survivors
	rp.prefixLen = len(commonPrefix(survivors))
	return nil
}

func (rp *RenamingPlan) runStep(step stepFunc, survivors []RenamePair) []RenamePair {
	prefix := commonPrefix(survivors)
	handle := hooks.NewHandle(prefix)
	seq := rp.SeqStart

	var next []RenamePair
	for _, p := range survivors {
		out, prob := step(p, seq, handle, rp)
		seq += rp.SeqStep
		if prob == nil {
			if out.Exclude {
				continue
			}
			next = append(next, out)
			continue
		}
		rp.routeProblem(*prob, &next, out)
	}
	return next
}

// routeProblem consults the control policy for prob.Kind and either drops,
// retains, or retains-with-flag the pair, recording prob in the problem
// ledger (or marking the plan failed if the kind is uncontrolled).
func (rp *RenamingPlan) routeProblem(prob Problem, next *[]RenamePair, p RenamePair) {
	ctrl, ok := rp.Policy.Lookup(prob.Kind)
	if !ok {
		rp.uncontrolled = append(rp.uncontrolled, prob)
		rp.failed = true
		return
	}
	rp.problems[ctrl] = append(rp.problems[ctrl], prob)
	switch ctrl {
	case problem.Skip:
		return
	case problem.Keep:
		*next = append(*next, p)
	case problem.Create:
		*next = append(*next, p.WithCreateParent(true))
	case problem.Clobber:
		*next = append(*next, p.WithClobber(true))
	}
}

func (rp *RenamingPlan) allFiltered(survivors []RenamePair) bool {
	if len(survivors) > 0 {
		return false
	}
	rp.uncontrolled = append(rp.uncontrolled, newProblem(problem.AllFiltered, nil))
	rp.failed = true
	return true
}

// PrepareFailedError is raised by Execute when Prepare left the plan
// failed: it carries the uncontrolled problems for the caller to report.
type PrepareFailedError struct {
	Uncontrolled []Problem
}

func (e *PrepareFailedError) Error() string {
	return fmt.Sprintf("prepare_failed: %d uncontrolled problem(s)", len(e.Uncontrolled))
}

// RenameDoneAlreadyError is raised by a second call to Execute.
type RenameDoneAlreadyError struct{}

func (e *RenameDoneAlreadyError) Error() string { return "rename_done_already" }

// Execute runs prepare (if needed) and then performs every surviving
// pair's rename/move against the oracle, in order. It may be called at
// most once. Before attempting pair i it sets the tracking index to i; on
// full success it sets the tracking index to "done". If an oracle
// operation fails, the tracking index stays at the failing pair's index
// and the error is returned immediately: subsequent pairs are not
// attempted.
func (rp *RenamingPlan) Execute() error {
	if rp.state == StateExecuted {
		return &RenameDoneAlreadyError{}
	}
	if err := rp.Prepare(); err != nil {
		return err
	}
	rp.state = StateExecuted
	if rp.failed {
		return &PrepareFailedError{Uncontrolled: rp.Uncontrolled()}
	}

	for i, p := range rp.pairs {
		rp.trackingIndex.Store(int64(i))
		if p.CreateParent {
			// MkdirParents creates every missing ancestor of its argument (not
			// the argument itself), so passing New here is what actually
			// brings parent(New) itself into existence.
			if err := rp.Oracle.MkdirParents(p.New); err != nil {
				return fmt.Errorf("creating parent of %q: %w", p.New, err)
			}
		}
		if p.Clobber {
			if err := rp.Oracle.Replace(p.Orig, p.New); err != nil {
				return fmt.Errorf("replacing %q with %q: %w", p.New, p.Orig, err)
			}
			continue
		}
		if err := rp.Oracle.Rename(p.Orig, p.New); err != nil {
			return fmt.Errorf("renaming %q to %q: %w", p.Orig, p.New, err)
		}
	}

	rp.trackingIndex.Store(TrackingDone)
	return nil
}
