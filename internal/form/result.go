package form

// Result is the outcome of running one validator against one field value.
// It is plain data: validation failures are never returned as errors.
type Result struct {
	ok     bool
	reason string
}

// Valid returns a passing result.
func Valid() Result {
	return Result{ok: true}
}

// Invalid returns a failing result with a user-facing reason.
func Invalid(reason string) Result {
	return Result{reason: reason}
}

// OK reports whether the value passed validation.
func (r Result) OK() bool {
	return r.ok
}

// Reason returns the user-facing failure message, or "" for a valid result.
func (r Result) Reason() string {
	return r.reason
}
