package saga

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recorder struct{ calls []string }

func (r *recorder) step(name string, fail error, undoFail error) Step {
	return Step{
		Name: name,
		Do: func(context.Context) error {
			r.calls = append(r.calls, "do "+name)
			return fail
		},
		Undo: func(context.Context) error {
			r.calls = append(r.calls, "undo "+name)
			return undoFail
		},
	}
}

func TestRunAllSteps(t *testing.T) {
	rec := &recorder{}
	n, err := New("ok", Compensate, zap.NewNop()).
		Add(rec.step("a", nil, nil), rec.step("b", nil, nil)).
		Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"do a", "do b"}, rec.calls)
}

func TestCompensateRunsUndoInReverse(t *testing.T) {
	rec := &recorder{}
	boom := errors.New("boom")

	n, err := New("purchase", Compensate, zap.NewNop()).
		Add(rec.step("a", nil, nil), rec.step("b", nil, nil), rec.step("c", boom, nil), rec.step("d", nil, nil)).
		Run(context.Background())

	assert.Equal(t, 2, n)
	assert.ErrorIs(t, err, boom)
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "c", stepErr.Step)
	assert.Equal(t, []string{"do a", "do b", "do c", "undo b", "undo a"}, rec.calls)
}

func TestTolerateCarriesOnPastFailures(t *testing.T) {
	rec := &recorder{}
	boom := errors.New("boom")

	n, err := New("sale", Tolerate, zap.NewNop()).
		Add(rec.step("a", nil, nil), rec.step("b", boom, nil), rec.step("c", nil, nil)).
		Run(context.Background())

	assert.Equal(t, 2, n)
	assert.ErrorIs(t, err, boom)
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "b", stepErr.Step)
	assert.Equal(t, []string{"do a", "do b", "do c"}, rec.calls)
}

func TestTolerateStopsAtRequiredStep(t *testing.T) {
	rec := &recorder{}
	boom := errors.New("boom")
	header := rec.step("header", boom, nil)
	header.Required = true

	n, err := New("sale", Tolerate, zap.NewNop()).
		Add(header, rec.step("items", nil, nil)).
		Run(context.Background())

	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"do header"}, rec.calls)
}

func TestCompensationFailuresAreJoined(t *testing.T) {
	rec := &recorder{}
	boom := errors.New("boom")
	undoBoom := errors.New("undo boom")

	_, err := New("sale", Compensate, zap.NewNop()).
		Add(rec.step("a", nil, undoBoom), Step{Name: "noop", Do: func(context.Context) error { return nil }}, rec.step("b", boom, nil)).
		Run(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, undoBoom)
	assert.Equal(t, []string{"do a", "do b", "undo a"}, rec.calls)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("tolerate")
	require.NoError(t, err)
	assert.Equal(t, Tolerate, p)

	_, err = ParsePolicy("retry")
	assert.Error(t, err)
}
