// Package aihook provides an optional RenameFunc backend that asks a large
// language model to suggest a new path for each original, instead of
// computing one from a Template. It is grounded in the teacher's
// internal/ai (Client interface, caching) and internal/ollama (a second
// backend behind the same interface), narrowed from the teacher's
// file-metadata-driven SuggestName/SuggestCategory surface down to the
// single operation this domain needs: suggest a full rename for a path.
//
// Determinism matters here more than it did for the teacher: plan.Prepare
// (spec.md §4.6) must be idempotent, but an LLM call is not. Cache makes a
// second Prepare() against the same inputs return the same suggestion
// instead of re-querying the backend and risking a different answer.
package aihook

import "context"

// Suggestion is one candidate new path for an original, as proposed by a
// Client backend.
type Suggestion struct {
	Path       string
	Confidence float64
}

// Client is the interface both backends (OpenAI, Ollama) implement.
type Client interface {
	CheckHealth(ctx context.Context) error
	SuggestRename(ctx context.Context, orig string, hint string) (Suggestion, error)
}
