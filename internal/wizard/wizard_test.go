package wizard_test

import (
	"errors"
	"testing"

	"ayurdiet-backend/internal/wizard"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errEmpty = errors.New("empty")

func nonEmpty(s string) error {
	if s == "" {
		return errEmpty
	}
	return nil
}

func testFlow(t *testing.T) *wizard.Definition {
	t.Helper()
	d, err := wizard.NewDefinition("test",
		wizard.Step{ID: "name", Validate: wizard.Typed(nonEmpty)},
		wizard.Step{ID: "age", Validate: wizard.Typed[int](nil)},
		wizard.Step{ID: "done"},
	)
	require.NoError(t, err)
	return d
}

func TestAdvanceAccumulatesResults(t *testing.T) {
	d := testFlow(t)
	s := d.Start()

	s, err := d.Advance(s, "Asha")
	require.NoError(t, err)
	s, err = d.Advance(s, 34)
	require.NoError(t, err)

	want := wizard.State{
		Flow:    "test",
		Steps:   []wizard.StepID{"name", "age", "done"},
		Cursor:  2,
		Results: map[wizard.StepID]any{"name": "Asha", "age": 34},
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}

	s, err = d.Advance(s, nil)
	require.NoError(t, err)
	assert.True(t, s.Completed)
	assert.Equal(t, 100, s.Progress())
	_, ok := s.CurrentStep()
	assert.False(t, ok)
}

func TestAdvanceRejectsInvalidInputWithoutMoving(t *testing.T) {
	d := testFlow(t)
	start := d.Start()

	got, err := d.Advance(start, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, wizard.ErrStepRejected)
	assert.ErrorIs(t, err, errEmpty)
	if diff := cmp.Diff(start, got); diff != "" {
		t.Fatalf("rejected input changed state:\n%s", diff)
	}

	s, err := d.Advance(start, "Asha")
	require.NoError(t, err)
	_, err = d.Advance(s, "thirty")
	assert.ErrorIs(t, err, wizard.ErrInputType)
}

func TestAdvanceDoesNotMutateInput(t *testing.T) {
	d := testFlow(t)
	start := d.Start()
	next, err := d.Advance(start, "Asha")
	require.NoError(t, err)

	assert.Empty(t, start.Results)
	assert.Equal(t, 0, start.Cursor)
	assert.Equal(t, 1, next.Cursor)
}

func TestCompletedWizardRequiresReset(t *testing.T) {
	d := testFlow(t)
	s, err := d.Replay(map[wizard.StepID]any{"name": "Asha", "age": 40})
	require.NoError(t, err)
	require.True(t, s.Completed)

	_, err = d.Advance(s, "again")
	assert.ErrorIs(t, err, wizard.ErrWizardComplete)
	assert.Equal(t, s, d.Back(s))

	fresh := d.Reset()
	assert.False(t, fresh.Completed)
	assert.Empty(t, fresh.Results)
	id, ok := fresh.CurrentStep()
	assert.True(t, ok)
	assert.Equal(t, wizard.StepID("name"), id)
}

func TestBackKeepsAnswers(t *testing.T) {
	d := testFlow(t)
	s, _ := d.Advance(d.Start(), "Asha")
	assert.Equal(t, 66, s.Progress())

	back := d.Back(s)
	assert.Equal(t, 0, back.Cursor)
	v, ok := back.Result("name")
	assert.True(t, ok)
	assert.Equal(t, "Asha", v)

	assert.Equal(t, 0, d.Back(back).Cursor)
}

func TestReplayStopsAtFirstRejectedStep(t *testing.T) {
	d := testFlow(t)
	s, err := d.Replay(map[wizard.StepID]any{"name": "Asha"})
	require.Error(t, err)
	assert.ErrorIs(t, err, wizard.ErrInputType)
	assert.Equal(t, 1, s.Cursor)
	assert.False(t, s.Completed)
}

func TestAdvanceRejectsForeignState(t *testing.T) {
	d := testFlow(t)
	other := wizard.MustDefinition("other", wizard.Step{ID: "x"})

	_, err := d.Advance(other.Start(), "Asha")
	assert.ErrorIs(t, err, wizard.ErrFlowMismatch)
}

func TestNewDefinitionValidation(t *testing.T) {
	_, err := wizard.NewDefinition("empty")
	assert.Error(t, err)

	_, err = wizard.NewDefinition("dup", wizard.Step{ID: "a"}, wizard.Step{ID: "a"})
	assert.Error(t, err)

	assert.Panics(t, func() { wizard.MustDefinition("bad", wizard.Step{}) })
}
