package aihook_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xuanyiying/movr/internal/hooks"
	"github.com/xuanyiying/movr/internal/hooks/aihook"
)

func TestRenameFunc_ReturnsBackendSuggestion(t *testing.T) {
	backend := &countingClient{resp: aihook.Suggestion{Path: "suggested.txt"}}
	fn := aihook.RenameFunc(context.Background(), backend)

	got, err := fn("orig.txt", 0, hooks.NewHandle(""))
	require.NoError(t, err)
	assert.Equal(t, "suggested.txt", got)
}

func TestRenameFunc_EmptySuggestionIsBadReturn(t *testing.T) {
	backend := &countingClient{resp: aihook.Suggestion{}}
	fn := aihook.RenameFunc(context.Background(), backend)

	_, err := fn("orig.txt", 0, hooks.NewHandle(""))
	require.Error(t, err)
	var bad *hooks.BadReturnError
	require.ErrorAs(t, err, &bad)
}

func TestRenameFunc_PassesStrippedHint(t *testing.T) {
	backend := &recordingClient{resp: aihook.Suggestion{Path: "x"}}
	fn := aihook.RenameFunc(context.Background(), backend)

	_, err := fn("/data/2024/a.txt", 0, hooks.NewHandle("/data/"))
	require.NoError(t, err)
	assert.Equal(t, "2024/a.txt", backend.lastHint)
}

type recordingClient struct {
	resp     aihook.Suggestion
	lastHint string
}

func (c *recordingClient) CheckHealth(ctx context.Context) error { return nil }

func (c *recordingClient) SuggestRename(ctx context.Context, orig, hint string) (aihook.Suggestion, error) {
	c.lastHint = hint
	return c.resp, nil
}
