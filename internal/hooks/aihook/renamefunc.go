package aihook

import (
	"context"
	"fmt"

	"github.com/xuanyiying/movr/internal/hooks"
)

// RenameFunc adapts client into a hooks.RenameFunc: each call passes the
// pair's prefix-stripped path as the hint, so the backend sees the same
// locality a Template's {stripped} placeholder would.
func RenameFunc(ctx context.Context, client Client) hooks.RenameFunc {
	return func(orig string, _ int, h *hooks.Handle) (string, error) {
		hint := h.StripPrefix(orig)
		suggestion, err := client.SuggestRename(ctx, orig, hint)
		if err != nil {
			return "", fmt.Errorf("ai rename suggestion for %q: %w", orig, err)
		}
		if suggestion.Path == "" {
			return "", &hooks.BadReturnError{Orig: orig, Got: suggestion}
		}
		return suggestion.Path, nil
	}
}
