package plan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xuanyiying/movr/internal/fsoracle"
	"github.com/xuanyiying/movr/internal/inputparse"
	"github.com/xuanyiying/movr/internal/plan"
	"github.com/xuanyiying/movr/internal/problem"
)

func TestNew_RejectsInvalidControl(t *testing.T) {
	_, err := plan.New(plan.Options{
		Bindings: []problem.Binding{{Kind: problem.Type, Control: problem.Skip}},
	})
	require.Error(t, err)
	var ice *problem.InvalidControlError
	require.ErrorAs(t, err, &ice)
}

func TestNew_RejectsConflictingControls(t *testing.T) {
	_, err := plan.New(plan.Options{
		Bindings: []problem.Binding{
			{Kind: problem.FilterCodeInvalid, Control: problem.Skip},
			{Kind: problem.FilterCodeInvalid, Control: problem.Keep},
		},
	})
	require.Error(t, err)
	var cce *problem.ConflictingControlsError
	require.ErrorAs(t, err, &cce)
}

func TestPrepare_IsIdempotent(t *testing.T) {
	oracle := fsoracle.NewSimulatedFileSystem("a", "b")
	rp, err := plan.New(plan.Options{
		Inputs:    []string{"a", "a1", "b", "b1"},
		Structure: inputparse.Pairs,
		Oracle:    oracle,
	})
	require.NoError(t, err)

	require.NoError(t, rp.Prepare())
	first := rp.Pairs()
	require.NoError(t, rp.Prepare())
	second := rp.Pairs()

	assert.Equal(t, first, second)
	assert.Equal(t, plan.StatePrepared, rp.State())
}

func TestExecute_FailsOnSecondCall(t *testing.T) {
	oracle := fsoracle.NewSimulatedFileSystem("a")
	rp, err := plan.New(plan.Options{
		Inputs:    []string{"a", "a1"},
		Structure: inputparse.Pairs,
		Oracle:    oracle,
	})
	require.NoError(t, err)

	require.NoError(t, rp.Execute())
	err = rp.Execute()
	require.Error(t, err)
	var done *plan.RenameDoneAlreadyError
	require.ErrorAs(t, err, &done)
}

func TestExecute_ImplicitlyPreparesAndFailsWithUncontrolledProblems(t *testing.T) {
	oracle := fsoracle.NewSimulatedFileSystem("a")
	rp, err := plan.New(plan.Options{
		Inputs:    []string{"missing", "missing1"},
		Structure: inputparse.Pairs,
		Oracle:    oracle,
	})
	require.NoError(t, err)

	err = rp.Execute()
	require.Error(t, err)
	var pf *plan.PrepareFailedError
	require.ErrorAs(t, err, &pf)
	require.GreaterOrEqual(t, len(pf.Uncontrolled), 1)
	assert.Equal(t, problem.Missing, pf.Uncontrolled[0].Kind)
}

func TestPrepare_MissingOrigWithoutControlFailsThePlan(t *testing.T) {
	oracle := fsoracle.NewSimulatedFileSystem("a")
	rp, err := plan.New(plan.Options{
		Inputs:    []string{"a", "a1", "gone", "gone1"},
		Structure: inputparse.Pairs,
		Oracle:    oracle,
	})
	require.NoError(t, err)
	require.NoError(t, rp.Prepare())
	assert.True(t, rp.Failed())
}

func TestTrackingIndex_StartsNotStartedAndEndsDone(t *testing.T) {
	oracle := fsoracle.NewSimulatedFileSystem("a", "b")
	rp, err := plan.New(plan.Options{
		Inputs:    []string{"a", "a1", "b", "b1"},
		Structure: inputparse.Pairs,
		Oracle:    oracle,
	})
	require.NoError(t, err)
	assert.Equal(t, plan.TrackingNotStarted, rp.TrackingIndex())

	require.NoError(t, rp.Execute())
	assert.Equal(t, plan.TrackingDone, rp.TrackingIndex())
}
