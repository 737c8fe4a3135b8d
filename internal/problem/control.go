package problem

import "fmt"

// Control is one of the four mechanisms the user may bind to a Kind to
// tell the validation pipeline how to handle it instead of failing the
// plan.
type Control string

const (
	Skip    Control = "skip"
	Keep    Control = "keep"
	Create  Control = "create"
	Clobber Control = "clobber"
)

// applicable lists, per Kind, which Controls may legally be bound to it.
// This is the applicability table from spec.md §4.4. Kinds not present
// here (parsing_*, user_code_exec, all_filtered, type, rename_code_bad_return)
// accept no control at all: they are always uncontrolled.
var applicable = map[Kind]map[Control]bool{
	FilterCodeInvalid: {Skip: true, Keep: true},
	RenameCodeInvalid: {Skip: true},
	Equal:             {Skip: true},
	Missing:           {Skip: true},
	Parent:            {Skip: true, Create: true},
	Existing:          {Skip: true, Clobber: true},
	ExistingDiff:      {Skip: true, Clobber: true},
	Colliding:         {Skip: true, Clobber: true},
	CollidingDiff:     {Skip: true, Clobber: true},
}

// IsApplicable reports whether ctrl may legally be bound to kind.
func IsApplicable(kind Kind, ctrl Control) bool {
	return applicable[kind][ctrl]
}

// Binding is one user-requested (Kind, Control) pair, as assembled from CLI
// flags such as --skip missing parent or --clobber all.
type Binding struct {
	Kind    Kind
	Control Control
}

// Policy is a partial map from problem kind to the control the user elected
// for it. Kinds absent from the policy are uncontrolled: their presence
// during prepare() marks the plan as failed.
type Policy struct {
	byKind map[Kind]Control
}

// NewPolicy validates bindings against the applicability table and against
// each other, and builds a Policy. It fails if the same kind is bound
// twice (*ConflictingControlsError) or if a control is requested for a kind
// where it does not apply (*InvalidControlError).
func NewPolicy(bindings []Binding) (*Policy, error) {
	byKind := make(map[Kind]Control, len(bindings))
	for _, b := range bindings {
		if !IsApplicable(b.Kind, b.Control) {
			return nil, &InvalidControlError{Kind: b.Kind, Control: b.Control}
		}
		if existing, ok := byKind[b.Kind]; ok && existing != b.Control {
			return nil, &ConflictingControlsError{Kind: b.Kind, First: existing, Second: b.Control}
		}
		byKind[b.Kind] = b.Control
	}
	return &Policy{byKind: byKind}, nil
}

// Lookup returns the control bound to kind, and whether one was bound.
func (p *Policy) Lookup(kind Kind) (Control, bool) {
	if p == nil {
		return "", false
	}
	ctrl, ok := p.byKind[kind]
	return ctrl, ok
}

// Bindings returns the policy's bindings in the stable order of problem.All,
// for deterministic snapshot rendering.
func (p *Policy) Bindings() []Binding {
	if p == nil {
		return nil
	}
	var out []Binding
	for _, kind := range All {
		if ctrl, ok := p.byKind[kind]; ok {
			out = append(out, Binding{Kind: kind, Control: ctrl})
		}
	}
	return out
}

// ExpandAll returns every Kind to which ctrl may be bound, for the CLI's
// "--skip all" / "--clobber all" convenience syntax.
func ExpandAll(ctrl Control) []Kind {
	var out []Kind
	for _, kind := range All {
		if IsApplicable(kind, ctrl) {
			out = append(out, kind)
		}
	}
	return out
}

// InvalidControlError reports a control requested for a kind it cannot
// apply to.
type InvalidControlError struct {
	Kind    Kind
	Control Control
}

func (e *InvalidControlError) Error() string {
	return fmt.Sprintf("invalid_control: %s cannot be bound to %s", e.Control, e.Kind)
}

// ConflictingControlsError reports the same kind bound to two different
// controls.
type ConflictingControlsError struct {
	Kind   Kind
	First  Control
	Second Control
}

func (e *ConflictingControlsError) Error() string {
	return fmt.Sprintf("conflicting_controls: %s bound to both %s and %s", e.Kind, e.First, e.Second)
}
