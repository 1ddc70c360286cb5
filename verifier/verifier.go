// Package verifier provides the composable verifier variants used to
// decide whether a first-party caveat's predicate is satisfied (§4.5
// of the design). It plays the same role the teacher's
// bakery/checkers subpackage plays for gopkg.in/macaroon.v1: pluggable
// predicate evaluation, dispatched by an explicit interface rather
// than by any caveat-name registry.
package verifier

import (
	"unicode/utf8"

	"github.com/SeedyROM/stroopwafel"
)

// AcceptAllVerifier always succeeds. Useful in tests and as the
// permissive end of a Composite chain.
type AcceptAllVerifier struct{}

func (AcceptAllVerifier) VerifyCaveat(predicate []byte) error { return nil }

// AcceptAll returns a verifier that accepts every caveat.
func AcceptAll() macaroon.Verifier { return AcceptAllVerifier{} }

// RejectAllVerifier always fails. Useful in tests and as a safe
// default at the end of a Composite chain.
type RejectAllVerifier struct{}

func (RejectAllVerifier) VerifyCaveat(predicate []byte) error {
	return &macaroon.Error{
		Kind:        macaroon.KindCaveatViolation,
		Message:     "reject-all verifier",
		CaveatIndex: -1,
	}
}

// RejectAll returns a verifier that rejects every caveat.
func RejectAll() macaroon.Verifier { return RejectAllVerifier{} }

// FunctionalVerifier adapts a plain decision function to the Verifier
// interface, the way the teacher's bakery.FirstPartyCheckerFunc adapts
// a func(string) error.
type FunctionalVerifier struct {
	Func func(predicate []byte) error
}

func (f FunctionalVerifier) VerifyCaveat(predicate []byte) error {
	return f.Func(predicate)
}

// OfFunction returns a verifier backed by fn.
func OfFunction(fn func(predicate []byte) error) macaroon.Verifier {
	return FunctionalVerifier{Func: fn}
}

// CompositeVerifier holds an ordered list of child verifiers. It
// succeeds if any child succeeds (short-circuiting on the first
// success), or returns the last child's error if every child fails.
// The teacher's analogue is PushFirstPartyChecker, generalized here
// from a two-checker fallback chain to an arbitrary ordered list.
type CompositeVerifier struct {
	Children []macaroon.Verifier
}

func (c CompositeVerifier) VerifyCaveat(predicate []byte) error {
	var lastErr error
	for _, child := range c.Children {
		err := child.VerifyCaveat(predicate)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = &macaroon.Error{
			Kind:        macaroon.KindCaveatViolation,
			Message:     "composite verifier has no children",
			CaveatIndex: -1,
		}
	}
	return lastErr
}

// Composite returns a verifier that tries children in order, owning
// its own copy of the slice.
func Composite(children ...macaroon.Verifier) macaroon.Verifier {
	return CompositeVerifier{Children: append([]macaroon.Verifier(nil), children...)}
}

// ContextVerifier evaluates a predicate (§4.4's "LHS OP RHS" grammar)
// against a fixed name→value mapping. It is the workhorse verifier:
// most first-party caveats are written to be checked against request
// context this way. An operand that names no entry in the mapping is
// compared as its own literal text, on either side of the operator.
type ContextVerifier struct {
	values map[string]string
}

// NewContextVerifier builds a ContextVerifier from an existing
// mapping. A nil map is treated as empty.
func NewContextVerifier(values map[string]string) *ContextVerifier {
	cv := &ContextVerifier{values: make(map[string]string, len(values))}
	for k, v := range values {
		cv.values[k] = v
	}
	return cv
}

// With returns a new ContextVerifier holding cv's bindings plus name
// bound to value; cv itself is left unchanged. For fluent assembly:
//
//	v := verifier.NewContextVerifier(nil).With("account", "alice").With("action", "read")
func (cv *ContextVerifier) With(name, value string) *ContextVerifier {
	next := &ContextVerifier{values: make(map[string]string, len(cv.values)+1)}
	for k, v := range cv.values {
		next.values[k] = v
	}
	next.values[name] = value
	return next
}

// VerifyCaveat parses predicate as a §4.4 comparison and evaluates it
// against cv's context. Parse failure, a non-UTF-8 predicate, and
// "evaluates to false" all surface as CaveatViolation/InvalidPredicate
// errors per §4.5.
func (cv *ContextVerifier) VerifyCaveat(predicate []byte) error {
	if !utf8.Valid(predicate) {
		return &macaroon.Error{
			Kind:        macaroon.KindInvalidPredicate,
			Message:     "predicate is not valid UTF-8",
			CaveatIndex: -1,
		}
	}

	ok, err := macaroon.EvalPredicate(string(predicate), cv.values)
	if err != nil {
		return err
	}
	if !ok {
		return &macaroon.Error{
			Kind:        macaroon.KindCaveatViolation,
			Message:     "predicate " + string(predicate) + " not satisfied",
			CaveatIndex: -1,
		}
	}
	return nil
}

// Context returns an empty ContextVerifier ready for With calls.
func Context() *ContextVerifier {
	return NewContextVerifier(nil)
}
