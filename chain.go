package macaroon

// sigLen is the fixed width, in bytes, of a credential signature
// (§3: "signature length is exactly 32 bytes").
const sigLen = 32

// seed produces the initial signature for a freshly minted credential:
// sig0 = HMAC-SHA3-256(rootKey, identifier).
func seed(rootKey, identifier []byte) []byte {
	return hmacSum(rootKey, identifier)
}

// step folds one caveat into the chain: sign = HMAC-SHA3-256(prevSig,
// binding(caveat)). binding is the caveat_id for a first-party caveat,
// or verification_key_id‖caveat_id (no separator, no length prefix)
// for a third-party caveat.
func step(prevSig []byte, c Caveat) []byte {
	return hmacSum(prevSig, binding(c))
}

// binding returns the bytes folded into the chain for c, per §4.2.
func binding(c Caveat) []byte {
	if !c.ThirdParty() {
		return c.CaveatID
	}
	b := make([]byte, 0, len(c.VerificationKeyID)+len(c.CaveatID))
	b = append(b, c.VerificationKeyID...)
	b = append(b, c.CaveatID...)
	return b
}

// fold rechains seed over caveats in order, producing the signature
// the credential should have if nothing has been tampered with.
func fold(seed []byte, caveats []Caveat) []byte {
	sig := seed
	for _, c := range caveats {
		sig = step(sig, c)
	}
	return sig
}
