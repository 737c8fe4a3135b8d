package plan

import "github.com/xuanyiying/movr/internal/problem"

// PairRecord is the serializable form of a RenamePair, matching the field
// names spec.md §6 fixes for the plan snapshot JSON's rename_pairs entries.
type PairRecord struct {
	Orig         string `json:"orig"`
	New          string `json:"new"`
	Exclude      bool   `json:"exclude"`
	CreateParent bool   `json:"create_parent"`
	Clobber      bool   `json:"clobber"`
}

// ProblemRecord is the serializable form of a Problem.
type ProblemRecord struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Orig    string `json:"orig,omitempty"`
}

// BindingRecord is the serializable form of one control-policy binding.
type BindingRecord struct {
	Kind    string `json:"kind"`
	Control string `json:"control"`
}

// Snapshot is a read-only, serializable view of a RenamingPlan, for
// loggers and UIs (spec.md §4.7). Producing it never mutates the plan.
// Its field names and json tags are the stable keys spec.md §6 lists.
type Snapshot struct {
	Inputs        []string                   `json:"inputs"`
	Structure     string                     `json:"structure"`
	RenameCode    string                     `json:"rename_code"`
	FilterCode    string                     `json:"filter_code"`
	Indent        int                        `json:"indent"`
	SeqStart      int                        `json:"seq_start"`
	SeqStep       int                        `json:"seq_step"`
	Controls      []BindingRecord            `json:"controls"`
	PrefixLen     int                        `json:"prefix_len"`
	RenamePairs   []PairRecord               `json:"rename_pairs"`
	TrackingIndex int                        `json:"tracking_index"`
	Problems      map[string][]ProblemRecord `json:"problems"`
}

// Snapshot builds a Snapshot of the plan's current state. Valid at any
// lifecycle stage; before Prepare() runs, RenamePairs/Problems are empty
// and TrackingIndex is TrackingNotStarted.
func (rp *RenamingPlan) Snapshot() Snapshot {
	pairs := make([]PairRecord, len(rp.pairs))
	for i, p := range rp.pairs {
		pairs[i] = PairRecord{
			Orig:         p.Orig,
			New:          p.New,
			Exclude:      p.Exclude,
			CreateParent: p.CreateParent,
			Clobber:      p.Clobber,
		}
	}

	controls := make([]BindingRecord, 0)
	for _, b := range rp.Policy.Bindings() {
		controls = append(controls, BindingRecord{Kind: string(b.Kind), Control: string(b.Control)})
	}

	problems := make(map[string][]ProblemRecord)
	for _, ctrl := range []problem.Control{problem.Skip, problem.Keep, problem.Create, problem.Clobber} {
		records := recordProblems(rp.problems[ctrl])
		if len(records) > 0 {
			problems[string(ctrl)] = records
		}
	}
	if records := recordProblems(rp.uncontrolled); len(records) > 0 {
		problems["uncontrolled"] = records
	}

	return Snapshot{
		Inputs:        rp.Inputs,
		Structure:     string(rp.Structure),
		RenameCode:    rp.RenameSource,
		FilterCode:    rp.FilterSource,
		Indent:        rp.Indent,
		SeqStart:      rp.SeqStart,
		SeqStep:       rp.SeqStep,
		Controls:      controls,
		PrefixLen:     rp.prefixLen,
		RenamePairs:   pairs,
		TrackingIndex: rp.TrackingIndex(),
		Problems:      problems,
	}
}

func recordProblems(problems []Problem) []ProblemRecord {
	out := make([]ProblemRecord, len(problems))
	for i, p := range problems {
		rec := ProblemRecord{Kind: string(p.Kind), Message: p.Message}
		if p.Pair != nil {
			rec.Orig = p.Pair.Orig
		}
		out[i] = rec
	}
	return out
}
