// Package wizard implements the linear, validated multi-step form state
// machine behind the login screen. A wizard advances and retreats through a
// fixed ordered list of step definitions, gates each advance on the step's
// required field, and only hands its values to the submit collaborator at the
// final step. It never returns errors across its boundary; failures land in
// the error-message slot the UI renders inline.
package wizard

import (
	"context"
	"strings"
	"sync"

	"hrdesk/internal/domain"
)

// Kind is the input control type of a step.
type Kind string

const (
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindPassword Kind = "password"
	KindDropdown Kind = "dropdown"
)

// Step defines one field of the wizard.
type Step struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
	Kind     Kind   `json:"kind"`
}

// SubmitFunc receives the full field mapping at the final step. A non-nil
// error keeps the wizard editing with the error's reason displayed.
type SubmitFunc func(ctx context.Context, values map[string]string) error

// Wizard is the state machine. Safe for concurrent use; at most one submit is
// in flight at a time.
type Wizard struct {
	mu        sync.Mutex
	steps     []Step
	idx       int
	values    map[string]string
	errMsg    string
	busy      bool
	submitted bool
	submit    SubmitFunc
}

// New creates a wizard at step 0 with empty values.
func New(steps []Step, submit SubmitFunc) *Wizard {
	return &Wizard{
		steps:  steps,
		values: make(map[string]string),
		submit: submit,
	}
}

// CurrentStep returns the current step index and definition.
func (w *Wizard) CurrentStep() (int, Step) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.idx, w.steps[w.idx]
}

// Steps returns the full step list.
func (w *Wizard) Steps() []Step {
	return append([]Step(nil), w.steps...)
}

// SetField records a field value. No validation happens here; validation is
// deferred to Next and Submit.
func (w *Wizard) SetField(key, value string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.submitted {
		return
	}
	w.values[key] = value
}

// Field returns the current value of a field.
func (w *Wizard) Field(key string) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.values[key]
}

// Next advances one step. If the current step is required and its value is
// empty or whitespace the transition fails, the index stays put and the error
// message is set. Next at the last step is a no-op: submission is a distinct
// operation.
func (w *Wizard) Next() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.submitted || w.idx >= len(w.steps)-1 {
		return false
	}
	step := w.steps[w.idx]
	if step.Required && strings.TrimSpace(w.values[step.Key]) == "" {
		w.errMsg = step.Label + " is required"
		return false
	}
	w.idx++
	w.errMsg = ""
	return true
}

// Prev retreats one step and clears the error message. No-op at step 0.
func (w *Wizard) Prev() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.submitted {
		return
	}
	w.errMsg = ""
	if w.idx > 0 {
		w.idx--
	}
}

// Submit re-validates every required field across all steps, then hands the
// values to the submit collaborator. Only allowed at the final step, and only
// one submit may be in flight. Returns true when the wizard reached its
// terminal Submitted state.
func (w *Wizard) Submit(ctx context.Context) bool {
	w.mu.Lock()
	if w.submitted {
		w.mu.Unlock()
		return true
	}
	if w.idx != len(w.steps)-1 {
		w.errMsg = domain.ErrWizardIncomplete.Error()
		w.mu.Unlock()
		return false
	}
	if w.busy {
		w.mu.Unlock()
		return false
	}
	for _, step := range w.steps {
		if step.Required && strings.TrimSpace(w.values[step.Key]) == "" {
			w.errMsg = step.Label + " is required"
			w.mu.Unlock()
			return false
		}
	}
	w.busy = true
	values := make(map[string]string, len(w.values))
	for k, v := range w.values {
		values[k] = v
	}
	w.mu.Unlock()

	err := w.submit(ctx, values)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.busy = false
	if err != nil {
		w.errMsg = domain.FailureOf(err).Reason
		return false
	}
	w.errMsg = ""
	w.submitted = true
	return true
}

// Busy reports whether a submit is in flight. Callers disable re-invocation
// while true.
func (w *Wizard) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.busy
}

// Submitted reports whether the wizard reached its terminal state.
func (w *Wizard) Submitted() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitted
}

// ErrorMessage returns the current inline error message, or "".
func (w *Wizard) ErrorMessage() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.errMsg
}
