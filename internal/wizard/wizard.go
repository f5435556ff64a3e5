// Package wizard models multi-step forms as an ordered list of steps and a
// pure transition function over an accumulated state.
package wizard

import (
	"errors"
	"fmt"
)

var (
	ErrStepRejected   = errors.New("wizard step rejected")
	ErrWizardComplete = errors.New("wizard already complete")
	ErrFlowMismatch   = errors.New("state belongs to another wizard")
	ErrInputType      = errors.New("unexpected step input type")
)

// StepID names a step and keys its result.
type StepID string

// Validator checks the input of one step before the wizard moves past it.
type Validator func(input any) error

// Typed adapts a validator for a concrete input type. A nil fn only checks the
// type.
func Typed[T any](fn func(T) error) Validator {
	return func(input any) error {
		v, ok := input.(T)
		if !ok {
			var zero T
			return fmt.Errorf("%w: want %T, got %T", ErrInputType, zero, input)
		}
		if fn == nil {
			return nil
		}
		return fn(v)
	}
}

type Step struct {
	ID       StepID
	Title    string
	Validate Validator
}

// Definition is an immutable wizard layout.
type Definition struct {
	name  string
	steps []Step
}

func NewDefinition(name string, steps ...Step) (*Definition, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("wizard %s: no steps", name)
	}
	seen := make(map[StepID]bool, len(steps))
	for _, s := range steps {
		if s.ID == "" {
			return nil, fmt.Errorf("wizard %s: empty step id", name)
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("wizard %s: duplicate step %s", name, s.ID)
		}
		seen[s.ID] = true
	}
	cp := make([]Step, len(steps))
	copy(cp, steps)
	return &Definition{name: name, steps: cp}, nil
}

// MustDefinition is NewDefinition for package-level layouts.
func MustDefinition(name string, steps ...Step) *Definition {
	d, err := NewDefinition(name, steps...)
	if err != nil {
		panic(err)
	}
	return d
}

func (d *Definition) Name() string { return d.name }

func (d *Definition) Steps() []Step {
	out := make([]Step, len(d.steps))
	copy(out, d.steps)
	return out
}

// State is the accumulated progress through a wizard.
type State struct {
	Flow      string
	Steps     []StepID
	Cursor    int
	Results   map[StepID]any
	Completed bool
}

// Start returns an empty state positioned on the first step.
func (d *Definition) Start() State {
	ids := make([]StepID, len(d.steps))
	for i, s := range d.steps {
		ids[i] = s.ID
	}
	return State{Flow: d.name, Steps: ids, Results: map[StepID]any{}}
}

// Reset discards all answers. Retaking a wizard always goes through Reset.
func (d *Definition) Reset() State {
	return d.Start()
}

// Advance records input for the current step and moves to the next one. On
// the last step it marks the state complete. A rejected input leaves the
// state untouched.
func (d *Definition) Advance(s State, input any) (State, error) {
	if s.Flow != d.name {
		return s, fmt.Errorf("%w: %s is not %s", ErrFlowMismatch, s.Flow, d.name)
	}
	if s.Completed {
		return s, ErrWizardComplete
	}
	if s.Cursor < 0 || s.Cursor >= len(d.steps) {
		return s, fmt.Errorf("%w: cursor %d out of range", ErrFlowMismatch, s.Cursor)
	}

	step := d.steps[s.Cursor]
	if step.Validate != nil {
		if err := step.Validate(input); err != nil {
			return s, fmt.Errorf("%w: %s: %w", ErrStepRejected, step.ID, err)
		}
	}

	next := s.clone()
	next.Results[step.ID] = input
	if next.Cursor == len(d.steps)-1 {
		next.Completed = true
	} else {
		next.Cursor++
	}
	return next, nil
}

// Back moves to the previous step, keeping recorded answers. It does nothing
// on the first step or once the wizard is complete.
func (d *Definition) Back(s State) State {
	if s.Completed || s.Cursor == 0 {
		return s
	}
	next := s.clone()
	next.Cursor--
	return next
}

// Replay runs a full submission through every step in order.
func (d *Definition) Replay(inputs map[StepID]any) (State, error) {
	s := d.Start()
	for _, step := range d.steps {
		var err error
		s, err = d.Advance(s, inputs[step.ID])
		if err != nil {
			return s, err
		}
	}
	return s, nil
}

// CurrentStep returns the step awaiting input; ok is false once complete.
func (s State) CurrentStep() (StepID, bool) {
	if s.Completed || s.Cursor >= len(s.Steps) {
		return "", false
	}
	return s.Steps[s.Cursor], true
}

// Progress is the percentage shown in the step indicator.
func (s State) Progress() int {
	if len(s.Steps) == 0 {
		return 0
	}
	if s.Completed {
		return 100
	}
	return (s.Cursor + 1) * 100 / len(s.Steps)
}

// Result returns the recorded input of a step.
func (s State) Result(id StepID) (any, bool) {
	v, ok := s.Results[id]
	return v, ok
}

func (s State) clone() State {
	out := s
	out.Steps = append([]StepID(nil), s.Steps...)
	out.Results = make(map[StepID]any, len(s.Results)+1)
	for k, v := range s.Results {
		out.Results[k] = v
	}
	return out
}
