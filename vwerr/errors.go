// Package vwerr defines the error taxonomy shared by every VectorWave
// component: a small set of error kinds, each carrying a context block and
// a remediation hint so a caller sees one message with enough detail to
// act on it instead of a bare error string.
package vwerr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Kind classifies an Error so callers can branch on category without
// string-matching messages.
type Kind int

const (
	// InvalidSignal covers null, empty, or non-finite input sequences.
	InvalidSignal Kind = iota
	// InvalidWavelet covers unknown identifiers or filters that fail
	// normalization checks.
	InvalidWavelet
	// InvalidConfiguration covers option values outside their documented
	// domain (block size, buffer multiplier, overflow guards).
	InvalidConfiguration
	// InvalidArgument covers out-of-range arguments to an otherwise valid
	// operation (level index, non-positive truncation target).
	InvalidArgument
	// TransformError covers internal dimension mismatches and non-finite
	// results that validated input should never produce.
	TransformError
	// StateError covers protocol violations: write-after-close,
	// double-close, cross-pool release.
	StateError
	// Cancelled covers a parallel task observing a cancellation signal.
	Cancelled
)

func (k Kind) String() string {
	switch k {
	case InvalidSignal:
		return "InvalidSignal"
	case InvalidWavelet:
		return "InvalidWavelet"
	case InvalidConfiguration:
		return "InvalidConfiguration"
	case InvalidArgument:
		return "InvalidArgument"
	case TransformError:
		return "TransformError"
	case StateError:
		return "StateError"
	case Cancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned by every public VectorWave
// entry point. It is intentionally flat (no nested causes beyond the one
// wrapped cause) so callers can log it directly.
type Error struct {
	Kind       Kind
	Op         string            // operation that failed, e.g. "modwt.Forward"
	Message    string            // human-readable description
	Context    map[string]string // wavelet, boundary, sizes, etc.
	Suggestion string            // one remediation hint
	cause      error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s: %s", e.Kind, e.Op, e.Message)
	if len(e.Context) > 0 {
		b.WriteString(" [")
		first := true
		for _, k := range sortedKeys(e.Context) {
			if !first {
				b.WriteString(", ")
			}
			first = false
			fmt.Fprintf(&b, "%s=%s", k, e.Context[k])
		}
		b.WriteString("]")
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, " (%s)", e.Suggestion)
	}
	return b.String()
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.cause }

// New builds an Error with the given kind, operation name, and message.
func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Context: map[string]string{}}
}

// Wrap builds an Error around a lower-level cause, preserving it for
// errors.Unwrap (and so errors.Is/errors.As) while still surfacing the
// taxonomy kind.
func Wrap(cause error, kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Context: map[string]string{}, cause: errors.WithStack(cause)}
}

// With attaches a context key/value pair and returns the receiver for
// chaining, e.g. vwerr.New(...).With("wavelet", id).With("boundary", mode).
func (e *Error) With(key, value string) *Error {
	e.Context[key] = value
	return e
}

// WithSuggestion sets the remediation hint and returns the receiver.
func (e *Error) WithSuggestion(hint string) *Error {
	e.Suggestion = hint
	return e
}

// Is reports whether target is an *Error with the same Kind, satisfying
// errors.Is(err, vwerr.New(kind, "", "")) style checks against a sentinel
// built purely to carry a Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
