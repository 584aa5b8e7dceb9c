package entity

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrTimeout         = errors.New("timeout")
	ErrElementDisabled = errors.New("element disabled")
	ErrTextMismatch    = errors.New("text mismatch")
	ErrCountMismatch   = errors.New("count mismatch")
	ErrAssertion       = errors.New("assertion failed")

	// ErrInvalidSelector is returned by drivers for selectors they cannot
	// parse. Waiting never fixes it, so waits fail on the first check.
	ErrInvalidSelector = errors.New("invalid selector")
)

// Failure is the outcome of a wait or assertion that was not satisfied.
// errors.Is matches both Kind, one of the sentinels above, and the
// underlying cause in Err.
type Failure struct {
	Kind      error
	Condition Condition
	Selector  string
	Budget    time.Duration
	Expected  string
	Actual    string
	Err       error
}

func (f *Failure) Error() string {
	var b strings.Builder
	b.WriteString(f.Kind.Error())
	if f.Condition != "" {
		fmt.Fprintf(&b, ": %s", f.Condition)
	}
	if f.Selector != "" {
		fmt.Fprintf(&b, " %q", f.Selector)
	}
	if f.Budget > 0 {
		fmt.Fprintf(&b, " after %s", f.Budget)
	}
	if f.Expected != "" || f.Actual != "" {
		fmt.Fprintf(&b, " (expected %q, got %q)", f.Expected, f.Actual)
	}
	if f.Err != nil {
		fmt.Fprintf(&b, ": %v", f.Err)
	}
	return b.String()
}

func (f *Failure) Unwrap() []error {
	if f.Err == nil {
		return []error{f.Kind}
	}
	return []error{f.Kind, f.Err}
}
