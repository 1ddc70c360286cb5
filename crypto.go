package macaroon

import (
	"crypto/hmac"
	"crypto/subtle"
	"hash"

	"golang.org/x/crypto/sha3"
)

// hmacSum computes HMAC-SHA3-256 (FIPS 202 SHA3-256, a Keccak-family
// hash, as the underlying hash) over text, keyed by key. HMAC's standard key-length normalization
// applies, so key may be any length.
func hmacSum(key, text []byte) []byte {
	h := keyedHasher(key)
	h.Write(text)
	return h.Sum(nil)
}

func keyedHasher(key []byte) hash.Hash {
	return hmac.New(sha3.New256, key)
}

// ctEq reports whether a and b are equal, in time that does not
// depend on where they first differ. Unequal-length inputs are
// rejected without short-circuiting: the comparison still runs over
// the full length of the longer input before returning false, so
// timing does not reveal how much of a prefix matched nor which
// input was shorter.
func ctEq(a, b []byte) bool {
	if len(a) != len(b) {
		// Still do a same-cost comparison over the longer input so
		// this call takes roughly the same time as the equal-length
		// case, whichever side is shorter.
		longer := a
		if len(b) > len(a) {
			longer = b
		}
		subtle.ConstantTimeCompare(longer, longer)
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
