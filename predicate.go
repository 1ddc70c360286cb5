package macaroon

import (
	"math"
	"strconv"
	"strings"
)

// operators in longest-match-first order: "!=", "<=", ">=" must be
// recognized before "=", "<", ">" so that e.g. "level >= 5" doesn't
// split on the bare ">" inside ">=".
var operators = []string{"!=", "<=", ">=", "=", "<", ">"}

// asciiSpace is the set of ASCII whitespace bytes trimmed from operands.
const asciiSpace = " \t\n\v\f\r"

// predicate is a parsed "LHS OP RHS" comparison, as described in §4.4.
type predicate struct {
	lhs string
	op  string
	rhs string
}

// parsePredicate splits raw on the first (leftmost) occurrence of the
// longest-matching operator. Material before the operator is LHS,
// material after is RHS; both are trimmed of ASCII whitespace in the
// outer trim only — whitespace interior to an already-trimmed operand
// is left alone.
func parsePredicate(raw string) (predicate, error) {
	idx, op := -1, ""
	for i := 0; i < len(raw); i++ {
		for _, candidate := range operators {
			if strings.HasPrefix(raw[i:], candidate) {
				idx, op = i, candidate
				goto found
			}
		}
	}
found:
	if idx < 0 {
		return predicate{}, newError(KindInvalidPredicate, "no operator found in "+strconv.Quote(raw))
	}
	return predicate{
		lhs: strings.Trim(raw[:idx], asciiSpace),
		op:  op,
		rhs: strings.Trim(raw[idx+len(op):], asciiSpace),
	}, nil
}

// resolve returns the value context[operand] if that name is present,
// otherwise operand itself, per §4.4 rule 1/2.
func resolve(operand string, context map[string]string) string {
	if v, ok := context[operand]; ok {
		return v
	}
	return operand
}

// eval evaluates a parsed predicate against context, per the
// resolution and comparison rules of §4.4.
func (p predicate) eval(context map[string]string) bool {
	lhs := resolve(p.lhs, context)
	rhs := resolve(p.rhs, context)

	lhsNum, lhsOK := parseFiniteFloat(lhs)
	rhsNum, rhsOK := parseFiniteFloat(rhs)

	if lhsOK && rhsOK {
		return compareOp(p.op, lhsNum < rhsNum, lhsNum == rhsNum, lhsNum > rhsNum)
	}
	return compareOp(p.op, lhs < rhs, lhs == rhs, lhs > rhs)
}

func parseFiniteFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	// strconv.ParseFloat accepts "Inf"/"NaN" spellings; those never
	// take the numeric path (§4.4: "only finite doubles take the
	// numeric path").
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func compareOp(op string, lt, eq, gt bool) bool {
	switch op {
	case "=":
		return eq
	case "!=":
		return !eq
	case "<":
		return lt
	case "<=":
		return lt || eq
	case ">":
		return gt
	case ">=":
		return gt || eq
	default:
		return false
	}
}

// EvalPredicate parses and evaluates raw against context in one step.
// Parse failures surface as an *Error of KindInvalidPredicate. This is
// exported for the verifier subpackage's ContextVerifier; most callers
// should just use a verifier.ContextVerifier instead of calling this
// directly.
func EvalPredicate(raw string, context map[string]string) (bool, error) {
	p, err := parsePredicate(raw)
	if err != nil {
		return false, err
	}
	return p.eval(context), nil
}
