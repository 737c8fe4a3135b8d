package pager

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShow_WritesDirectlyToStdoutWhenNoPagerConfigured(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	old := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = old }()

	require.NoError(t, Show("hello\n", ""))
	w.Close()

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", buf.String())
}

func TestShow_RunsConfiguredPagerCommand(t *testing.T) {
	require.NoError(t, Show("piped text\n", "cat"))
}

func TestLimit_NoTruncationWhenUnderLimit(t *testing.T) {
	lines := []string{"a", "b"}
	got := Limit(lines, 5)
	assert.Equal(t, lines, got)
}

func TestLimit_NoTruncationWhenLimitIsZeroOrNegative(t *testing.T) {
	lines := []string{"a", "b", "c"}
	assert.Equal(t, lines, Limit(lines, 0))
	assert.Equal(t, lines, Limit(lines, -1))
}

func TestLimit_TruncatesAndReportsDroppedCount(t *testing.T) {
	lines := []string{"a", "b", "c", "d", "e"}
	got := Limit(lines, 2)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"a", "b"}, got[:2])
	assert.Contains(t, got[2], "3 more not shown")
}
