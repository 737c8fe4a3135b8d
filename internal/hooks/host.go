// Package hooks hosts the two optional per-path transformation functions
// spec.md §4.3 calls the "user-code host": a rename hook that computes a
// pair's New path, and a filter hook that decides whether to keep it.
//
// spec.md deliberately mandates only the call signature, not the embedding
// mechanism. No example repo in this project's dependency corpus ships an
// embedded scripting engine (no lua/starlark/goja/yaegi/cel-go), so movr
// takes spec.md's option (c): a restricted DSL with regex/substitution
// primitives, expressed as two small compilers — Template (rename) and
// CompileFilter (filter) — that both produce the plain Go closures below.
// A host program embedding movr as a library may instead hand-write a
// RenameFunc/FilterFunc directly (spec.md's option b), since the signature
// is the only contract.
package hooks

import "fmt"

// Handle is the plan_handle every hook invocation receives. It exposes the
// services the hooks need beyond their own arguments.
type Handle struct {
	prefix string
}

// NewHandle builds a Handle carrying the current common-prefix of the
// surviving originals.
func NewHandle(prefix string) *Handle {
	return &Handle{prefix: prefix}
}

// StripPrefix removes the shared prefix of all surviving originals' path
// strings from orig, per spec.md §4.3.
func (h *Handle) StripPrefix(orig string) string {
	if h == nil || len(orig) < len(h.prefix) {
		return orig
	}
	if orig[:len(h.prefix)] != h.prefix {
		return orig
	}
	return orig[len(h.prefix):]
}

// RenameFunc computes a pair's new path. orig is the original path, seq is
// the per-step sequence number (spec.md §4.5), h is the plan handle.
type RenameFunc func(orig string, seq int, h *Handle) (string, error)

// FilterFunc decides whether to keep a pair. A false return (or a
// non-nil error) excludes it, subject to the filter_code_invalid control.
type FilterFunc func(orig string, seq int, h *Handle) (bool, error)

// BadReturnError is returned by a RenameFunc (or surfaced by a DSL
// compiler wrapping one) when the computed value cannot be used as a
// path: spec.md's rename_code_bad_return.
type BadReturnError struct {
	Orig string
	Got  interface{}
}

func (e *BadReturnError) Error() string {
	return fmt.Sprintf("hook for %q returned a non-path value: %v", e.Orig, e.Got)
}
