package plan

import (
	"errors"
	"sort"

	"github.com/xuanyiying/movr/internal/fsoracle"
	"github.com/xuanyiying/movr/internal/hooks"
	"github.com/xuanyiying/movr/internal/problem"
)

// stepFunc is one of the fixed, ordered per-pair checks of spec.md §4.5: it
// either returns the (possibly modified) pair unchanged, or a Problem that
// the plan must route through the control policy. Each step is tried
// exactly once per surviving pair per run through the pipeline.
type stepFunc func(p RenamePair, seq int, h *hooks.Handle, rp *RenamingPlan) (RenamePair, *Problem)

func executeUserFilterStep(p RenamePair, seq int, h *hooks.Handle, rp *RenamingPlan) (RenamePair, *Problem) {
	if rp.FilterFn == nil {
		return p, nil
	}
	keep, err := rp.FilterFn(p.Orig, seq, h)
	if err != nil {
		prob := newProblem(problem.FilterCodeInvalid, &p, p.Orig, err)
		return p, &prob
	}
	return p.WithExclude(!keep), nil
}

func executeUserRenameStep(p RenamePair, seq int, h *hooks.Handle, rp *RenamingPlan) (RenamePair, *Problem) {
	if rp.RenameFn == nil {
		return p, nil
	}
	newPath, err := rp.RenameFn(p.Orig, seq, h)
	if err != nil {
		var bad *hooks.BadReturnError
		kind := problem.RenameCodeInvalid
		if errors.As(err, &bad) {
			kind = problem.RenameCodeBadReturn
		}
		prob := newProblem(kind, &p, p.Orig, err)
		return p, &prob
	}
	if newPath == "" {
		prob := newProblem(problem.RenameCodeBadReturn, &p, p.Orig, "empty path")
		return p, &prob
	}
	return p.WithNew(newPath), nil
}

func checkOrigExistsStep(p RenamePair, _ int, _ *hooks.Handle, rp *RenamingPlan) (RenamePair, *Problem) {
	if !rp.Oracle.Exists(p.Orig, false) {
		prob := newProblem(problem.Missing, &p, p.Orig)
		return p, &prob
	}
	return p, nil
}

func checkOrigTypeStep(p RenamePair, _ int, _ *hooks.Handle, rp *RenamingPlan) (RenamePair, *Problem) {
	if !rp.Oracle.Kind(p.Orig).Renameable() {
		prob := newProblem(problem.Type, &p, p.Orig)
		return p, &prob
	}
	return p, nil
}

func checkOrigNewDifferStep(p RenamePair, _ int, _ *hooks.Handle, _ *RenamingPlan) (RenamePair, *Problem) {
	if p.Equal() {
		prob := newProblem(problem.Equal, &p, p.Orig)
		return p, &prob
	}
	return p, nil
}

func checkNewNotExistsStep(p RenamePair, _ int, _ *hooks.Handle, rp *RenamingPlan) (RenamePair, *Problem) {
	if !rp.Oracle.Exists(p.New, true) {
		return p, nil
	}
	kind := problem.Existing
	if rp.Oracle.Kind(p.New) != rp.Oracle.Kind(p.Orig) {
		kind = problem.ExistingDiff
	}
	prob := newProblem(kind, &p, p.New)
	return p, &prob
}

func checkNewParentExistsStep(p RenamePair, _ int, _ *hooks.Handle, rp *RenamingPlan) (RenamePair, *Problem) {
	parent := fsoracle.ParentOf(p.New)
	if rp.Oracle.Exists(parent, false) {
		return p, nil
	}
	prob := newProblem(problem.Parent, &p, parent)
	return p, &prob
}

// perPairSteps is the fixed, ordered sequence of spec.md §4.5 steps 1-7.
// Step 8 (collisions) is global and run separately in runCollisionCheck,
// since it needs the whole surviving set at once.
var perPairSteps = []stepFunc{
	executeUserFilterStep,
	executeUserRenameStep,
	checkOrigExistsStep,
	checkOrigTypeStep,
	checkOrigNewDifferStep,
	checkNewNotExistsStep,
	checkNewParentExistsStep,
}

// runCollisionCheck groups survivors by New and emits a problem for every
// member of a group of size >= 2, tie-breaking "same type vs different
// type" by comparing the Kind of every Orig in the group.
func runCollisionCheck(survivors []RenamePair, oracle fsoracle.Oracle) map[int]Problem {
	groups := make(map[string][]int)
	for i, p := range survivors {
		key := stripTrailingSep(p.New)
		groups[key] = append(groups[key], i)
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make(map[int]Problem)
	for _, key := range keys {
		idxs := groups[key]
		if len(idxs) < 2 {
			continue
		}
		sameType := true
		first := oracle.Kind(survivors[idxs[0]].Orig)
		for _, i := range idxs[1:] {
			if oracle.Kind(survivors[i].Orig) != first {
				sameType = false
				break
			}
		}
		kind := problem.Colliding
		if !sameType {
			kind = problem.CollidingDiff
		}
		for _, i := range idxs {
			p := survivors[i]
			out[i] = newProblem(kind, &p, p.New)
		}
	}
	return out
}
