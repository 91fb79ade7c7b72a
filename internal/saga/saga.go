// Package saga runs multi-write commands as ordered steps with optional compensations.
package saga

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

type Policy string

const (
	// Compensate undoes every completed step, newest first, when a step fails.
	Compensate Policy = "compensate"
	// Tolerate keeps every write that succeeded and carries on past a failing
	// step. Only a failing Required step stops the run.
	Tolerate Policy = "tolerate"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case Compensate, Tolerate:
		return Policy(s), nil
	}
	return "", fmt.Errorf("unknown compound policy %q", s)
}

type Step struct {
	Name string
	Do   func(ctx context.Context) error
	// Undo may be nil when the step leaves nothing to revert.
	Undo func(ctx context.Context) error
	// Required steps are the ones later steps build on.
	Required bool
}

type Saga struct {
	name   string
	policy Policy
	log    *zap.Logger
	steps  []Step
}

func New(name string, policy Policy, log *zap.Logger) *Saga {
	if log == nil {
		log = zap.NewNop()
	}
	return &Saga{name: name, policy: policy, log: log}
}

func (s *Saga) Add(steps ...Step) *Saga {
	s.steps = append(s.steps, steps...)
	return s
}

// StepError reports a step that failed.
type StepError struct {
	Saga string
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: step %s: %v", e.Saga, e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Run executes the steps in order and returns how many succeeded. Under
// Compensate the first failure undoes the completed steps; the error wraps a
// *StepError joined with any compensation failures. Under Tolerate the error
// joins the *StepError of every step that failed.
func (s *Saga) Run(ctx context.Context) (int, error) {
	var (
		done    int
		skipped []error
	)
	for i, step := range s.steps {
		err := step.Do(ctx)
		if err == nil {
			done++
			continue
		}

		failed := &StepError{Saga: s.name, Step: step.Name, Err: err}
		s.log.Error("saga step failed",
			zap.String("saga", s.name),
			zap.String("step", step.Name),
			zap.String("policy", string(s.policy)),
			zap.Bool("required", step.Required),
			zap.Error(err),
		)
		if s.policy == Compensate {
			return done, errors.Join(failed, s.compensate(ctx, s.steps[:i]))
		}
		skipped = append(skipped, failed)
		if step.Required {
			return done, errors.Join(skipped...)
		}
	}
	return done, errors.Join(skipped...)
}

func (s *Saga) compensate(ctx context.Context, done []Step) error {
	var errs []error
	for i := len(done) - 1; i >= 0; i-- {
		step := done[i]
		if step.Undo == nil {
			continue
		}
		if err := step.Undo(ctx); err != nil {
			s.log.Error("saga compensation failed",
				zap.String("saga", s.name),
				zap.String("step", step.Name),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("undo %s: %w", step.Name, err))
			continue
		}
		s.log.Info("saga step compensated", zap.String("saga", s.name), zap.String("step", step.Name))
	}
	return errors.Join(errs...)
}
