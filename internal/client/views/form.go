package views

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/taskboard/internal/client/api"
	"github.com/dmitrijs2005/taskboard/internal/client/mutation"
)

// Submission is the lifecycle of one form submit.
type Submission string

const (
	SubmissionIdle       Submission = "idle"
	SubmissionSubmitting Submission = "submitting"
	SubmissionSucceeded  Submission = "succeeded"
	SubmissionFailed     Submission = "failed"
)

// Form holds a screen's field values, its error map, and the submission
// state. Client-side validation errors and server-reported field errors
// land in the same map, so the rendering layer never distinguishes
// origin.
type Form struct {
	mu         sync.Mutex
	fields     map[string]string
	errors     map[string]string
	submission Submission
}

// NewForm returns an empty form with the given field names.
func NewForm(names ...string) *Form {
	fields := make(map[string]string, len(names))
	for _, n := range names {
		fields[n] = ""
	}
	return &Form{fields: fields, errors: map[string]string{}, submission: SubmissionIdle}
}

// Set records a field edit. Editing clears that field's error and moves
// a Failed form back to Idle so the user can retry.
func (f *Form) Set(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields[name] = value
	delete(f.errors, name)
	if f.submission == SubmissionFailed {
		f.submission = SubmissionIdle
	}
}

// Get returns a field's current value.
func (f *Form) Get(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields[name]
}

// Fields returns a copy of all field values.
func (f *Form) Fields() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.fields))
	for k, v := range f.fields {
		out[k] = v
	}
	return out
}

// Errors returns a copy of the error map.
func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Submission returns the current submission state.
func (f *Form) Submission() Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submission
}

// begin moves Idle/Failed/Succeeded to Submitting. It reports false if
// a submission is already in flight (double-submit guard).
func (f *Form) begin() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submission == SubmissionSubmitting {
		return false
	}
	f.submission = SubmissionSubmitting
	f.errors = map[string]string{}
	return true
}

// fail records errs and keeps field values so the user need not retype.
func (f *Form) fail(errs map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submission = SubmissionFailed
	for k, v := range errs {
		f.errors[k] = v
	}
}

// succeed clears the fields for the next use.
func (f *Form) succeed() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submission = SubmissionSucceeded
	for k := range f.fields {
		f.fields[k] = ""
	}
	f.errors = map[string]string{}
}

// Reset returns the form to its initial state (navigation away).
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k := range f.fields {
		f.fields[k] = ""
	}
	f.errors = map[string]string{}
	f.submission = SubmissionIdle
}

// Validator checks field values and returns per-field messages. An
// empty map means the form may be submitted.
type Validator func(fields map[string]string) map[string]string

// submitForm runs one validated submission: required checks first (no
// network call on failure), then the mutation, then the state
// transition. Server field errors merge into the form's error map.
func (c *Controller) submitForm(ctx context.Context, f *Form, validate Validator, req mutation.Request) (any, error) {
	if !f.begin() {
		return nil, ErrSubmitting
	}

	if errs := validate(f.Fields()); len(errs) > 0 {
		f.fail(errs)
		return nil, &api.ValidationError{Fields: errs}
	}

	result, err := c.Exec.Execute(ctx, req)
	if err != nil {
		if ve, ok := api.AsValidation(err); ok {
			f.fail(ve.Fields)
		} else {
			f.fail(map[string]string{"": err.Error()})
		}
		return nil, err
	}

	f.succeed()
	return result, nil
}
