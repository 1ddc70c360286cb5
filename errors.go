package macaroon

import (
	"fmt"
)

// Kind categorizes a failure raised by this package. See §7 of the
// design for the full taxonomy.
type Kind int

const (
	_ Kind = iota
	KindInvalidSignature
	KindCaveatViolation
	KindInvalidPredicate
	KindUnsupportedThirdParty
	KindDeserializationError
	KindInvalidFormat
	KindCryptoError
	KindInvalidKeyLength
)

func (k Kind) String() string {
	switch k {
	case KindInvalidSignature:
		return "InvalidSignature"
	case KindCaveatViolation:
		return "CaveatViolation"
	case KindInvalidPredicate:
		return "InvalidPredicate"
	case KindUnsupportedThirdParty:
		return "UnsupportedThirdParty"
	case KindDeserializationError:
		return "DeserializationError"
	case KindInvalidFormat:
		return "InvalidFormat"
	case KindCryptoError:
		return "CryptoError"
	case KindInvalidKeyLength:
		return "InvalidKeyLength"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type raised by this package. Kind
// identifies which of the §7 failure categories occurred; CaveatIndex
// is set (>= 0) when the failure can be attributed to a specific
// caveat in a credential's sequence.
type Error struct {
	Kind        Kind
	Message     string
	CaveatIndex int
	Cause       error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.CaveatIndex >= 0 {
		msg += fmt.Sprintf(" (caveat %d)", e.CaveatIndex)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is the sentinel for e's Kind, so that
// errors.Is(err, macaroon.ErrInvalidSignature) works regardless of
// the message or wrapped cause attached to a particular *Error.
func (e *Error) Is(target error) bool {
	sentinel, ok := target.(*Error)
	if !ok {
		return false
	}
	return sentinel.Kind == e.Kind && sentinel.Message == "" && sentinel.Cause == nil
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, CaveatIndex: -1}
}

func newCaveatError(kind Kind, index int, message string) *Error {
	return &Error{Kind: kind, Message: message, CaveatIndex: index}
}

func wrapError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, CaveatIndex: -1, Cause: cause}
}

// Sentinels for errors.Is comparisons. Each carries only its Kind, no
// message or cause, matching the contract of (*Error).Is.
var (
	ErrInvalidSignature      = &Error{Kind: KindInvalidSignature, CaveatIndex: -1}
	ErrCaveatViolation       = &Error{Kind: KindCaveatViolation, CaveatIndex: -1}
	ErrInvalidPredicate      = &Error{Kind: KindInvalidPredicate, CaveatIndex: -1}
	ErrUnsupportedThirdParty = &Error{Kind: KindUnsupportedThirdParty, CaveatIndex: -1}
	ErrDeserializationError  = &Error{Kind: KindDeserializationError, CaveatIndex: -1}
	ErrInvalidFormat         = &Error{Kind: KindInvalidFormat, CaveatIndex: -1}
	ErrCryptoError           = &Error{Kind: KindCryptoError, CaveatIndex: -1}
	ErrInvalidKeyLength      = &Error{Kind: KindInvalidKeyLength, CaveatIndex: -1}
)
