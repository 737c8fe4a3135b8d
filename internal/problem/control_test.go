package problem_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xuanyiying/movr/internal/problem"
)

func TestNewPolicy_ValidBindings(t *testing.T) {
	p, err := problem.NewPolicy([]problem.Binding{
		{Kind: problem.Missing, Control: problem.Skip},
		{Kind: problem.Parent, Control: problem.Create},
	})
	require.NoError(t, err)

	ctrl, ok := p.Lookup(problem.Missing)
	assert.True(t, ok)
	assert.Equal(t, problem.Skip, ctrl)

	_, ok = p.Lookup(problem.Equal)
	assert.False(t, ok)
}

func TestNewPolicy_InvalidControl(t *testing.T) {
	_, err := problem.NewPolicy([]problem.Binding{
		{Kind: problem.Missing, Control: problem.Create},
	})
	require.Error(t, err)
	var target *problem.InvalidControlError
	assert.ErrorAs(t, err, &target)
}

func TestNewPolicy_ConflictingControls(t *testing.T) {
	_, err := problem.NewPolicy([]problem.Binding{
		{Kind: problem.Existing, Control: problem.Skip},
		{Kind: problem.Existing, Control: problem.Clobber},
	})
	require.Error(t, err)
	var target *problem.ConflictingControlsError
	assert.ErrorAs(t, err, &target)
}

func TestNewPolicy_SameBindingTwiceIsFine(t *testing.T) {
	_, err := problem.NewPolicy([]problem.Binding{
		{Kind: problem.Existing, Control: problem.Skip},
		{Kind: problem.Existing, Control: problem.Skip},
	})
	require.NoError(t, err)
}

func TestExpandAll(t *testing.T) {
	kinds := problem.ExpandAll(problem.Skip)
	assert.Contains(t, kinds, problem.Missing)
	assert.Contains(t, kinds, problem.Existing)
	assert.NotContains(t, kinds, problem.Type) // type has no applicable controls
}

func TestIsApplicable_Table(t *testing.T) {
	cases := []struct {
		kind problem.Kind
		ctrl problem.Control
		want bool
	}{
		{problem.FilterCodeInvalid, problem.Skip, true},
		{problem.FilterCodeInvalid, problem.Keep, true},
		{problem.FilterCodeInvalid, problem.Create, false},
		{problem.RenameCodeInvalid, problem.Skip, true},
		{problem.RenameCodeInvalid, problem.Keep, false},
		{problem.Equal, problem.Skip, true},
		{problem.Missing, problem.Skip, true},
		{problem.Parent, problem.Skip, true},
		{problem.Parent, problem.Create, true},
		{problem.Parent, problem.Clobber, false},
		{problem.Existing, problem.Clobber, true},
		{problem.ExistingDiff, problem.Clobber, true},
		{problem.Colliding, problem.Clobber, true},
		{problem.CollidingDiff, problem.Skip, true},
		{problem.Type, problem.Skip, false},
	}
	for _, c := range cases {
		got := problem.IsApplicable(c.kind, c.ctrl)
		assert.Equalf(t, c.want, got, "IsApplicable(%s, %s)", c.kind, c.ctrl)
	}
}
