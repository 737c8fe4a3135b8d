package hooks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xuanyiying/movr/internal/hooks"
)

func TestTemplate_Placeholders(t *testing.T) {
	fn, err := hooks.Template("{dir}/{stem}-{seq:03}.{ext}").Compile()
	require.NoError(t, err)

	got, err := fn("photos/img.JPG", 7, hooks.NewHandle(""))
	require.NoError(t, err)
	assert.Equal(t, "photos/img-007.JPG", got)
}

func TestTemplate_StrippedUsesHandlePrefix(t *testing.T) {
	fn, err := hooks.Template("out/{stripped}").Compile()
	require.NoError(t, err)

	got, err := fn("/data/2024/a.txt", 0, hooks.NewHandle("/data/"))
	require.NoError(t, err)
	assert.Equal(t, "out/2024/a.txt", got)
}

func TestTemplate_EscapedBraces(t *testing.T) {
	fn, err := hooks.Template("literal-{{not-a-placeholder}}-{base}").Compile()
	require.NoError(t, err)

	got, err := fn("a/b.txt", 0, hooks.NewHandle(""))
	require.NoError(t, err)
	assert.Equal(t, "literal-{not-a-placeholder}-b.txt", got)
}

func TestTemplate_UnknownPlaceholderFailsToCompile(t *testing.T) {
	_, err := hooks.Template("{bogus}").Compile()
	require.Error(t, err)
}

func TestTemplate_EmptyFailsToCompile(t *testing.T) {
	_, err := hooks.Template("").Compile()
	require.Error(t, err)
}

func TestCompose_AppliesSubstitutionsAfterExpansion(t *testing.T) {
	fn, err := hooks.Compose(
		hooks.Template("{base}"),
		hooks.Substitution{Pattern: `\s+`, Repl: "_"},
		hooks.Substitution{Pattern: `(?i)\.jpeg$`, Repl: ".jpg"},
	)
	require.NoError(t, err)

	got, err := fn("in/my photo.JPEG", 0, hooks.NewHandle(""))
	require.NoError(t, err)
	assert.Equal(t, "my_photo.jpg", got)
}

func TestCompose_InvalidPatternFailsToCompile(t *testing.T) {
	_, err := hooks.Compose(hooks.Template("{base}"), hooks.Substitution{Pattern: "(", Repl: "x"})
	require.Error(t, err)
}
