package macaroon

// Caveat is one restriction attached to a Credential. It is either
// first-party (CaveatID alone, evaluated locally by the verifying
// service) or third-party (VerificationKeyID set, with Location as an
// optional hint, requiring a discharge from whatever
// VerificationKeyID/Location name).
type Caveat struct {
	CaveatID          []byte
	VerificationKeyID []byte
	Location          string
}

// ThirdParty reports whether c is a third-party caveat.
func (c Caveat) ThirdParty() bool {
	return len(c.VerificationKeyID) > 0
}

// Credential bundles a location hint, an identifier, an ordered
// append-only sequence of caveats, and the signature that results
// from chaining the root key over them. See §3.
type Credential struct {
	Location   string
	Identifier []byte
	Caveats    []Caveat
	Signature  []byte
}

// Mint creates a new, caveat-free Credential. signature =
// seed(rootKey, identifier). Location is a hint only: it is not an
// input to the signature chain, so changing it does not invalidate the
// credential — see §3. Mint never fails on well-formed inputs.
func Mint(rootKey, identifier []byte, location string) *Credential {
	return &Credential{
		Location:   location,
		Identifier: append([]byte(nil), identifier...),
		Caveats:    nil,
		Signature:  seed(rootKey, identifier),
	}
}

// AppendFirstParty appends a first-party caveat carrying predicate as
// its caveat id, updating the signature in place. O(1) in credential
// size.
func (c *Credential) AppendFirstParty(predicate []byte) {
	c.append(Caveat{CaveatID: append([]byte(nil), predicate...)})
}

// AppendThirdParty appends a third-party caveat, updating the
// signature in place. O(1) in credential size.
func (c *Credential) AppendThirdParty(caveatID, verificationKeyID []byte, location string) {
	c.append(Caveat{
		CaveatID:          append([]byte(nil), caveatID...),
		VerificationKeyID: append([]byte(nil), verificationKeyID...),
		Location:          location,
	})
}

func (c *Credential) append(cav Caveat) {
	c.Caveats = append(c.Caveats, cav)
	c.Signature = step(c.Signature, cav)
}

// Attenuate returns an independent clone of c. Mutating the clone
// (via AppendFirstParty/AppendThirdParty) never affects c, because
// attenuation always takes a fresh copy of the caveat slice and
// identifier rather than sharing backing arrays.
func (c *Credential) Attenuate() *Credential {
	clone := &Credential{
		Location:   c.Location,
		Identifier: append([]byte(nil), c.Identifier...),
		Signature:  append([]byte(nil), c.Signature...),
	}
	if c.Caveats != nil {
		clone.Caveats = make([]Caveat, len(c.Caveats))
		for i, cav := range c.Caveats {
			clone.Caveats[i] = Caveat{
				CaveatID:          append([]byte(nil), cav.CaveatID...),
				VerificationKeyID: append([]byte(nil), cav.VerificationKeyID...),
				Location:          cav.Location,
			}
		}
	}
	return clone
}
