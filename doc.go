// Package macaroon implements stroopwafel, a macaroon-style bearer
// credential as described in the paper "Macaroons: Cookies with
// Contextual Caveats for Decentralized Authorization in the Cloud"
// (Birgisson et al., NDSS 2014).
//
// A Credential is a bearer token that its holder may attenuate by
// appending caveats — restrictions on how the credential may be used —
// without contacting the party that issued it and without weakening
// the credential's integrity. Appending a caveat can only narrow what
// the credential is good for; it can never widen it, and it can never
// be undone without the root key.
//
// Caveats come in two flavors. A first-party caveat carries an opaque
// predicate, a short comparison expression (see the predicate grammar
// in predicate.go) that the verifying service evaluates against its
// own request context. A third-party caveat instead names another
// service that must vouch for the caveat by producing a discharge
// credential; this package carries the third-party data fields but
// defers discharge verification itself (see verify.go).
//
// The signature chain is HMAC-SHA3-256 throughout: minting seeds the
// chain from the root key and the credential's identifier, and each
// appended caveat folds the chain forward, keyed by the previous
// signature. Holding the current signature never lets you recover an
// earlier one, and it never lets you retroactively change the caveat
// sequence without the root key.
package macaroon
