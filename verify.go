package macaroon

// Verifier decides whether a first-party caveat's predicate is
// satisfied. Implementations live in the verifier subpackage; see
// §4.5.
type Verifier interface {
	VerifyCaveat(predicate []byte) error
}

// Verify recomputes the signature chain from rootKey and checks it
// against c.Signature, then dispatches every first-party caveat to
// verifier in order. discharges is reserved for third-party discharge
// credentials; third-party caveats are always rejected with
// UnsupportedThirdParty regardless of discharges (see SPEC_FULL.md §9
// for why this policy was chosen over silently accepting when discharges
// is empty).
//
// Signature mismatch is reported before any caveat is evaluated, so a
// tampered credential never exposes the verifier to attacker-
// controlled predicates (§4.6 "Failure priority").
func (c *Credential) Verify(rootKey []byte, verifier Verifier, discharges []*Credential) error {
	expected := fold(seed(rootKey, c.Identifier), c.Caveats)
	if !ctEq(expected, c.Signature) {
		return newError(KindInvalidSignature, "recomputed signature does not match")
	}

	for i, cav := range c.Caveats {
		if cav.ThirdParty() {
			if err := verifyThirdParty(cav, discharges); err != nil {
				return wrapCaveatError(KindUnsupportedThirdParty, i, "", err)
			}
			continue
		}
		if err := verifier.VerifyCaveat(cav.CaveatID); err != nil {
			return wrapCaveatError(KindCaveatViolation, i, string(cav.CaveatID), err)
		}
	}
	return nil
}

func wrapCaveatError(kind Kind, index int, message string, cause error) *Error {
	if existing, ok := cause.(*Error); ok && existing.CaveatIndex < 0 {
		withIndex := *existing
		withIndex.CaveatIndex = index
		return &withIndex
	}
	return &Error{Kind: kind, Message: message, CaveatIndex: index, Cause: cause}
}

// verifyThirdParty is the deferred discharge hook described in §4.6
// step 3 and §9 "Third-party discharge". Full discharge verification
// (decrypting VerificationKeyID, locating and recursively verifying a
// matching discharge credential) is out of scope for this core; every
// third-party caveat encountered is rejected.
func verifyThirdParty(cav Caveat, discharges []*Credential) error {
	return newError(KindUnsupportedThirdParty, "discharge verification is not implemented by this core")
}
