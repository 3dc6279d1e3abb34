package form

import (
	"errors"
	"fmt"
)

// State is the lifecycle phase of one form instance.
type State int

const (
	// StatePristine means the form was just opened and nothing is touched.
	StatePristine State = iota

	// StateEditing means at least one field has been touched.
	StateEditing

	// StateSubmitting means a submission is in flight. SetValue and
	// AttemptSubmit are rejected in this state.
	StateSubmitting

	// StateClosed means the form finished successfully and was discarded.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StatePristine:
		return "pristine"
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateClosed:
		return "closed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

var (
	// ErrSubmitting is returned when a mutation is attempted while a
	// submission is in flight.
	ErrSubmitting = errors.New("form: submission in flight")

	// ErrClosed is returned when a mutation is attempted on a closed form.
	ErrClosed = errors.New("form: closed")

	// ErrUnknownField is returned for field names outside the schema.
	ErrUnknownField = errors.New("form: unknown field")
)

// FieldDef declares one field of a schema: its wire name, the label used in
// validation messages, the validator, and an optional normalization step
// applied on submit after trimming.
type FieldDef struct {
	Name     string
	Label    string
	Optional bool
	Validate Func

	// Transform, when set, rewrites the trimmed value during normalization
	// (phone canonicalization, free-text sanitation).
	Transform func(trimmed string) string
}

// Schema is the ordered field set for one form type. Field order is the
// form-declaration order used when listing errors; it never affects the
// submit gate.
type Schema struct {
	Name   string
	Fields []FieldDef
}

// Field looks up a field definition by name.
func (s Schema) Field(name string) (FieldDef, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDef{}, false
}

// Outcome is the decision AttemptSubmit hands back to the caller.
type Outcome struct {
	// Proceed reports whether every field validated.
	Proceed bool

	// Errors holds the failing fields when blocked, keyed by field name.
	Errors map[string]string

	// Payload is the normalized submission when Proceed is true.
	Payload Payload
}

// Form holds the mutable state of one open form instance: current values,
// the touched set, and the last computed error map. It is not safe for
// concurrent use; the Arena serializes access.
type Form struct {
	schema  Schema
	values  map[string]string
	touched map[string]bool
	errs    map[string]Result
	state   State
}

// New creates a form for the given schema seeded with initial values.
// Fields missing from initial start empty; keys outside the schema are
// ignored.
func New(schema Schema, initial map[string]string) *Form {
	f := &Form{schema: schema}
	f.seed(initial)
	return f
}

func (f *Form) seed(initial map[string]string) {
	f.values = make(map[string]string, len(f.schema.Fields))
	for _, fd := range f.schema.Fields {
		f.values[fd.Name] = initial[fd.Name]
	}
	f.touched = make(map[string]bool, len(f.schema.Fields))
	f.errs = make(map[string]Result, len(f.schema.Fields))
	f.state = StatePristine
}

// Schema returns the schema the form was created with.
func (f *Form) Schema() Schema {
	return f.schema
}

// State returns the current lifecycle state.
func (f *Form) State() State {
	return f.state
}

// Value returns the current raw value of a field.
func (f *Form) Value(field string) string {
	return f.values[field]
}

// Values returns a copy of the current raw values.
func (f *Form) Values() map[string]string {
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Touched reports whether the user has blurred away from the field at least
// once.
func (f *Form) Touched(field string) bool {
	return f.touched[field]
}

// SetValue overwrites one field. No validation runs on keystrokes.
func (f *Form) SetValue(field, value string) error {
	if err := f.guard(); err != nil {
		return err
	}
	if _, ok := f.schema.Field(field); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	f.values[field] = value
	return nil
}

// MarkTouched records a blur on the field and recomputes the full error map.
// Every field's validator runs, but only touched fields surface errors
// through DisplayError.
func (f *Form) MarkTouched(field string) error {
	if err := f.guard(); err != nil {
		return err
	}
	if _, ok := f.schema.Field(field); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	f.touched[field] = true
	f.errs = f.validate()
	if f.state == StatePristine {
		f.state = StateEditing
	}
	return nil
}

// DisplayError returns the error the UI should render for a field. Untouched
// fields never show errors, even when invalid.
func (f *Form) DisplayError(field string) (string, bool) {
	if !f.touched[field] {
		return "", false
	}
	res, ok := f.errs[field]
	if !ok || res.OK() {
		return "", false
	}
	return res.Reason(), true
}

// validate recomputes the full error map from current values. The map is
// rebuilt from scratch on every pass, never incrementally maintained.
func (f *Form) validate() map[string]Result {
	errs := make(map[string]Result, len(f.schema.Fields))
	for _, fd := range f.schema.Fields {
		if fd.Validate == nil {
			continue
		}
		if res := fd.Validate(f.values[fd.Name]); !res.OK() {
			errs[fd.Name] = res
		}
	}
	return errs
}

// AttemptSubmit is the single submit gate. It marks every field touched so
// all errors become visible, recomputes the full error map, and either
// blocks with the failing fields or normalizes the values and moves the form
// into StateSubmitting. The gate is a pure AND across fields; ordering of
// the error map is irrelevant to the outcome.
func (f *Form) AttemptSubmit() (Outcome, error) {
	if err := f.guard(); err != nil {
		return Outcome{}, err
	}

	for _, fd := range f.schema.Fields {
		f.touched[fd.Name] = true
	}
	f.errs = f.validate()

	if len(f.errs) > 0 {
		f.state = StateEditing
		fields := make(map[string]string, len(f.errs))
		for name, res := range f.errs {
			fields[name] = res.Reason()
		}
		return Outcome{Errors: fields}, nil
	}

	f.state = StateSubmitting
	return Outcome{Proceed: true, Payload: Normalize(f.schema, f.values)}, nil
}

// Finish resolves an in-flight submission. Success closes the form; failure
// returns it to editing so the user can correct and retry.
func (f *Form) Finish(success bool) error {
	if f.state != StateSubmitting {
		return fmt.Errorf("form: finish called in state %s", f.state)
	}
	if success {
		f.state = StateClosed
	} else {
		f.state = StateEditing
	}
	return nil
}

// Reset replaces the values, clears touched state and errors, and returns
// the form to pristine. Used when opening an edit form and when cancelling.
func (f *Form) Reset(initial map[string]string) error {
	if f.state == StateSubmitting {
		return ErrSubmitting
	}
	f.seed(initial)
	return nil
}

func (f *Form) guard() error {
	switch f.state {
	case StateSubmitting:
		return ErrSubmitting
	case StateClosed:
		return ErrClosed
	}
	return nil
}
