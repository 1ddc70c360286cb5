package macaroon_test

import (
	"crypto/hmac"

	"golang.org/x/crypto/sha3"
	gc "gopkg.in/check.v1"

	macaroon "github.com/SeedyROM/stroopwafel"
	"github.com/SeedyROM/stroopwafel/verifier"
)

type macaroonSuite struct{}

var _ = gc.Suite(&macaroonSuite{})

// S1: mint determinism.
func (*macaroonSuite) TestMintDeterminism(c *gc.C) {
	cred := macaroon.Mint([]byte("kid-rock"), []byte("user:alice"), "")
	c.Assert(cred.Location, gc.Equals, "")
	c.Assert(cred.Identifier, gc.DeepEquals, []byte("user:alice"))
	c.Assert(cred.Caveats, gc.HasLen, 0)
	c.Assert(cred.Signature, gc.HasLen, 32)

	mac := hmac.New(sha3.New256, []byte("kid-rock"))
	mac.Write([]byte("user:alice"))
	c.Assert(cred.Signature, gc.DeepEquals, mac.Sum(nil))
}

// S2/S3: append caveats, verify against matching and mismatching context.
func (*macaroonSuite) TestVerifyContextCaveats(c *gc.C) {
	rootKey := []byte("kid-rock")
	cred := macaroon.Mint(rootKey, []byte("user:alice"), "")
	cred.AppendFirstParty([]byte("account = alice"))
	cred.AppendFirstParty([]byte("action = read"))

	good := verifier.Context().With("account", "alice").With("action", "read")
	c.Assert(cred.Verify(rootKey, good, nil), gc.IsNil)

	bad := verifier.Context().With("account", "bob").With("action", "read")
	err := cred.Verify(rootKey, bad, nil)
	c.Assert(err, gc.NotNil)
	merr, ok := err.(*macaroon.Error)
	c.Assert(ok, gc.Equals, true)
	c.Assert(merr.Kind, gc.Equals, macaroon.KindCaveatViolation)
}

// S4: tamper with the signature.
func (*macaroonSuite) TestTamperSignatureDetected(c *gc.C) {
	rootKey := []byte("kid-rock")
	cred := macaroon.Mint(rootKey, []byte("user:alice"), "")
	cred.AppendFirstParty([]byte("account = alice"))
	cred.AppendFirstParty([]byte("action = read"))

	cred.Signature[len(cred.Signature)-1] ^= 0xff

	err := cred.Verify(rootKey, verifier.AcceptAll(), nil)
	c.Assert(err, gc.NotNil)
	merr, ok := err.(*macaroon.Error)
	c.Assert(ok, gc.Equals, true)
	c.Assert(merr.Kind, gc.Equals, macaroon.KindInvalidSignature)
}

// S4 variant: tamper with the identifier.
func (*macaroonSuite) TestTamperIdentifierDetected(c *gc.C) {
	rootKey := []byte("kid-rock")
	cred := macaroon.Mint(rootKey, []byte("user:alice"), "")
	cred.AppendFirstParty([]byte("account = alice"))

	cred.Identifier[0] ^= 0xff

	err := cred.Verify(rootKey, verifier.AcceptAll(), nil)
	c.Assert(err, gc.NotNil)
	merr, ok := err.(*macaroon.Error)
	c.Assert(ok, gc.Equals, true)
	c.Assert(merr.Kind, gc.Equals, macaroon.KindInvalidSignature)
}

// S4 variant: tamper with a caveat.
func (*macaroonSuite) TestTamperCaveatDetected(c *gc.C) {
	rootKey := []byte("kid-rock")
	cred := macaroon.Mint(rootKey, []byte("user:alice"), "")
	cred.AppendFirstParty([]byte("account = alice"))

	cred.Caveats[0].CaveatID[0] ^= 0xff

	err := cred.Verify(rootKey, verifier.AcceptAll(), nil)
	c.Assert(err, gc.NotNil)
	merr, ok := err.(*macaroon.Error)
	c.Assert(ok, gc.Equals, true)
	c.Assert(merr.Kind, gc.Equals, macaroon.KindInvalidSignature)
}

// S5: reordering two caveats (preserving signature) is detected.
func (*macaroonSuite) TestReorderingDetected(c *gc.C) {
	rootKey := []byte("kid-rock")
	cred := macaroon.Mint(rootKey, []byte("user:alice"), "")
	cred.AppendFirstParty([]byte("account = alice"))
	cred.AppendFirstParty([]byte("action = read"))

	cred.Caveats[0], cred.Caveats[1] = cred.Caveats[1], cred.Caveats[0]

	err := cred.Verify(rootKey, verifier.AcceptAll(), nil)
	c.Assert(err, gc.NotNil)
	merr, ok := err.(*macaroon.Error)
	c.Assert(ok, gc.Equals, true)
	c.Assert(merr.Kind, gc.Equals, macaroon.KindInvalidSignature)
}

// Wrong-key rejection.
func (*macaroonSuite) TestWrongKeyRejected(c *gc.C) {
	cred := macaroon.Mint([]byte("kid-rock"), []byte("user:alice"), "")
	cred.AppendFirstParty([]byte("account = alice"))

	err := cred.Verify([]byte("not-the-root-key"), verifier.AcceptAll(), nil)
	c.Assert(err, gc.NotNil)
	merr, ok := err.(*macaroon.Error)
	c.Assert(ok, gc.Equals, true)
	c.Assert(merr.Kind, gc.Equals, macaroon.KindInvalidSignature)
}

// S6: numeric vs. string tie-break on the same predicate text.
func (*macaroonSuite) TestCaveatEnforcementNumericAndStringPaths(c *gc.C) {
	rootKey := []byte("kid-rock")
	cred := macaroon.Mint(rootKey, []byte("user:alice"), "")
	cred.AppendFirstParty([]byte("account = alice"))
	cred.AppendFirstParty([]byte("action = read"))
	cred.AppendFirstParty([]byte("level >= 5"))

	withLevel := func(level string) error {
		v := verifier.Context().With("account", "alice").With("action", "read").With("level", level)
		return cred.Verify(rootKey, v, nil)
	}

	c.Assert(withLevel("10"), gc.IsNil)

	err := withLevel("3")
	c.Assert(err, gc.NotNil)

	// "five" >= "5" lexicographically (string path), so this succeeds.
	c.Assert(withLevel("five"), gc.IsNil)
}

// S7: round-trip through base64 preserves both structure and verifiability.
func (*macaroonSuite) TestRoundTripBase64(c *gc.C) {
	rootKey := []byte("kid-rock")
	cred := macaroon.Mint(rootKey, []byte("user:alice"), "")
	cred.AppendFirstParty([]byte("account = alice"))
	cred.AppendFirstParty([]byte("action = read"))

	encoded, err := cred.ToBase64()
	c.Assert(err, gc.IsNil)

	decoded, err := macaroon.FromBase64(encoded)
	c.Assert(err, gc.IsNil)
	c.Assert(decoded, gc.DeepEquals, cred)

	v := verifier.Context().With("account", "alice").With("action", "read")
	c.Assert(decoded.Verify(rootKey, v, nil), gc.IsNil)
}

// Invariant 9: attenuating a clone never mutates the original.
func (*macaroonSuite) TestAttenuationIndependence(c *gc.C) {
	rootKey := []byte("kid-rock")
	original := macaroon.Mint(rootKey, []byte("user:alice"), "")
	original.AppendFirstParty([]byte("account = alice"))

	clone := original.Attenuate()
	clone.AppendFirstParty([]byte("action = read"))

	c.Assert(original.Caveats, gc.HasLen, 1)
	c.Assert(clone.Caveats, gc.HasLen, 2)
	c.Assert(original.Signature, gc.Not(gc.DeepEquals), clone.Signature)

	// Mutating the clone's caveat bytes doesn't touch the original's.
	clone.Caveats[0].CaveatID[0] = 'X'
	c.Assert(string(original.Caveats[0].CaveatID), gc.Equals, "account = alice")
}

func (*macaroonSuite) TestThirdPartyCaveatIsRejected(c *gc.C) {
	rootKey := []byte("kid-rock")
	cred := macaroon.Mint(rootKey, []byte("user:alice"), "")
	cred.AppendThirdParty([]byte("cid"), []byte("vkid"), "https://auth.example")

	err := cred.Verify(rootKey, verifier.AcceptAll(), nil)
	c.Assert(err, gc.NotNil)
	merr, ok := err.(*macaroon.Error)
	c.Assert(ok, gc.Equals, true)
	c.Assert(merr.Kind, gc.Equals, macaroon.KindUnsupportedThirdParty)
}

func (*macaroonSuite) TestVerifyEmptyCredential(c *gc.C) {
	rootKey := []byte("kid-rock")
	cred := macaroon.Mint(rootKey, []byte("user:alice"), "a location")
	c.Assert(cred.Verify(rootKey, verifier.RejectAll(), nil), gc.IsNil)
}

func (*macaroonSuite) TestCaveatIndexOnViolation(c *gc.C) {
	rootKey := []byte("kid-rock")
	cred := macaroon.Mint(rootKey, []byte("user:alice"), "")
	cred.AppendFirstParty([]byte("account = alice"))
	cred.AppendFirstParty([]byte("action = write"))

	v := verifier.Context().With("account", "alice").With("action", "read")
	err := cred.Verify(rootKey, v, nil)
	merr, ok := err.(*macaroon.Error)
	c.Assert(ok, gc.Equals, true)
	c.Assert(merr.CaveatIndex, gc.Equals, 1)
}
