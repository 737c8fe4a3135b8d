// Package problem defines the closed set of anomaly kinds the validation
// pipeline can raise against a rename pair or against the plan as a whole,
// and the control policy that decides how each kind is handled.
//
// The Problem value itself (kind + message + originating pair) lives in
// package plan, since it needs to reference a plan.RenamePair; this package
// only owns the kind/control vocabulary, which plan imports.
package problem

import "fmt"

// Kind identifies one of the anomalies the validation pipeline can detect.
// The set is closed: every Kind the planner can emit is enumerated here.
type Kind string

const (
	// Plan-level kinds. These abort prepare(); they have no associated pair.
	ParsingNoPaths    Kind = "parsing_no_paths"
	ParsingParagraphs Kind = "parsing_paragraphs"
	ParsingRow        Kind = "parsing_row"
	ParsingImbalance  Kind = "parsing_imbalance"
	UserCodeExec      Kind = "user_code_exec"
	AllFiltered       Kind = "all_filtered"

	// Per-pair kinds.
	FilterCodeInvalid   Kind = "filter_code_invalid"
	RenameCodeInvalid   Kind = "rename_code_invalid"
	RenameCodeBadReturn Kind = "rename_code_bad_return"
	Missing             Kind = "missing"
	Type                Kind = "type"
	Equal               Kind = "equal"
	Existing            Kind = "existing"
	ExistingDiff        Kind = "existing_diff"
	Parent              Kind = "parent"
	Colliding           Kind = "colliding"
	CollidingDiff       Kind = "colliding_diff"
)

// All enumerates the closed set of kinds, in a stable order used for
// deterministic iteration (snapshot rendering, CLI --skip/--keep/... "all").
var All = []Kind{
	ParsingNoPaths, ParsingParagraphs, ParsingRow, ParsingImbalance,
	UserCodeExec, AllFiltered,
	FilterCodeInvalid, RenameCodeInvalid, RenameCodeBadReturn,
	Missing, Type, Equal, Existing, ExistingDiff, Parent, Colliding, CollidingDiff,
}

// PlanLevel reports whether a Kind never attaches to a specific pair.
func (k Kind) PlanLevel() bool {
	switch k {
	case ParsingNoPaths, ParsingParagraphs, ParsingRow, ParsingImbalance, UserCodeExec, AllFiltered:
		return true
	default:
		return false
	}
}

// messageFormats parameterizes the human-readable explanation per Kind.
var messageFormats = map[Kind]string{
	ParsingNoPaths:      "no paths were found in the input",
	ParsingParagraphs:   "paragraphs structure requires exactly two non-empty paragraphs, got %d",
	ParsingRow:          "row %q does not split into exactly two non-empty cells",
	ParsingImbalance:    "got %d original paths but %d new paths",
	UserCodeExec:        "failed to compile user-supplied code: %v",
	FilterCodeInvalid:   "filter hook raised for %q: %v",
	RenameCodeInvalid:   "rename hook raised for %q: %v",
	RenameCodeBadReturn: "rename hook for %q returned a non-path value: %v",
	Missing:             "original path does not exist: %s",
	Type:                "original path is not a renameable type: %s",
	Equal:               "original and new paths are identical: %s",
	Existing:            "new path already exists: %s",
	ExistingDiff:        "new path exists as a different type: %s",
	Parent:              "parent directory of new path does not exist: %s",
	Colliding:           "new path is shared by multiple pairs: %s",
	CollidingDiff:       "new path is shared by pairs of different types: %s",
	AllFiltered:         "no renaming pairs remain after filtering",
}

// Message formats the human-readable explanation for kind.
func Message(kind Kind, args ...interface{}) string {
	format, ok := messageFormats[kind]
	if !ok {
		format = string(kind)
	}
	return fmt.Sprintf(format, args...)
}
