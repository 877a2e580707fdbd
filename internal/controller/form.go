package controller

import (
	"errors"
	"sync"
)

var ErrSubmitInFlight = errors.New("controller: submit already in flight")

type FormState string

const (
	FormIdle       FormState = "idle"
	FormSubmitting FormState = "submitting"
	FormSucceeded  FormState = "succeeded"
	FormFailed     FormState = "failed"
)

// Fields is satisfied by the creatable field sets in the model package.
type Fields[D any] interface {
	Normalize() D
	Validate() error
}

// Form holds the create dialog's draft and submission state.
type Form[D Fields[D]] struct {
	mu       sync.Mutex
	open     bool
	state    FormState
	draft    D
	defaults D
}

func NewForm[D Fields[D]](defaults D) *Form[D] {
	return &Form[D]{state: FormIdle, draft: defaults, defaults: defaults}
}

func (f *Form[D]) Open() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = true
	if f.state == FormSucceeded {
		f.state = FormIdle
	}
}

// Close hides the form; the draft is kept for the next Open.
func (f *Form[D]) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = false
}

func (f *Form[D]) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

func (f *Form[D]) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Form[D]) Submitting() bool {
	return f.State() == FormSubmitting
}

func (f *Form[D]) Draft() D {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Edit replaces the draft with fn(draft). Edits are refused while a submit
// is in flight.
func (f *Form[D]) Edit(fn func(D) D) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FormSubmitting {
		return false
	}
	f.draft = fn(f.draft)
	return true
}

// Reset restores the default draft and returns to Idle.
func (f *Form[D]) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = f.defaults
	f.state = FormIdle
}

// begin moves the form into Submitting and returns the normalized draft.
// An invalid draft leaves the state untouched.
func (f *Form[D]) begin() (D, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var zero D
	if f.state == FormSubmitting {
		return zero, ErrSubmitInFlight
	}
	draft := f.draft.Normalize()
	if err := draft.Validate(); err != nil {
		return zero, err
	}
	f.state = FormSubmitting
	return draft, nil
}

func (f *Form[D]) succeed() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = f.defaults
	f.state = FormSucceeded
	f.open = false
}

func (f *Form[D]) fail() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = FormFailed
}
