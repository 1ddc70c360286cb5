package macaroon

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"

	msgpack "github.com/vmihailenco/msgpack/v5"
)

// wireCredential is the msgpack-encoded shape of a Credential: an
// ordered map with exactly four keys, in order: location, identifier,
// caveats, signature (§4.7, §6). Declaration order is encoding order,
// since msgpack/v5 encodes struct fields as a map in declaration
// order unless SetSortMapKeys is enabled (it isn't, here).
type wireCredential struct {
	Location   *string      `msgpack:"location"`
	Identifier []byte       `msgpack:"identifier"`
	Caveats    []wireCaveat `msgpack:"caveats"`
	Signature  []byte       `msgpack:"signature"`
}

// wireCaveat is the msgpack-encoded shape of a Caveat: caveat_id
// alone for first-party caveats, plus verification_key_id and
// location for third-party ones.
type wireCaveat struct {
	CaveatID          []byte `msgpack:"caveat_id"`
	VerificationKeyID []byte `msgpack:"verification_key_id,omitempty"`
	Location          string `msgpack:"location,omitempty"`
}

func encode(v interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}

	enc := msgpack.GetEncoder()
	defer msgpack.PutEncoder(enc)

	enc.Reset(buf)
	enc.UseCompactInts(true)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToBinary encodes c as a self-describing MessagePack map with
// exactly four keys, in order: location, identifier, caveats,
// signature. Each caveat is itself a map with key caveat_id and, for
// third-party caveats, verification_key_id and location. See §4.7.
func (c *Credential) ToBinary() ([]byte, error) {
	return encode(toWire(c))
}

func toWire(c *Credential) wireCredential {
	wire := wireCredential{
		Identifier: c.Identifier,
		Signature:  c.Signature,
		Caveats:    make([]wireCaveat, len(c.Caveats)),
	}
	if c.Location != "" {
		loc := c.Location
		wire.Location = &loc
	}
	for i, cav := range c.Caveats {
		wire.Caveats[i] = wireCaveat{CaveatID: cav.CaveatID}
		if cav.ThirdParty() {
			wire.Caveats[i].VerificationKeyID = cav.VerificationKeyID
			wire.Caveats[i].Location = cav.Location
		}
	}
	return wire
}

func fromWire(wire wireCredential) (*Credential, error) {
	c := &Credential{
		Identifier: wire.Identifier,
		Signature:  wire.Signature,
	}
	if wire.Location != nil {
		c.Location = *wire.Location
	}
	if len(wire.Caveats) > 0 {
		c.Caveats = make([]Caveat, len(wire.Caveats))
	}
	for i, wc := range wire.Caveats {
		cav := Caveat{CaveatID: wc.CaveatID}
		if len(wc.VerificationKeyID) > 0 {
			cav.VerificationKeyID = wc.VerificationKeyID
			cav.Location = wc.Location
		} else if wc.Location != "" {
			return nil, newError(KindInvalidFormat, "first-party caveat must not carry a location")
		}
		c.Caveats[i] = cav
	}
	if len(c.Signature) != sigLen {
		return nil, newError(KindInvalidFormat, "signature is not 32 bytes")
	}
	return c, nil
}

// FromBinary decodes a Credential previously produced by ToBinary.
// Structurally invalid input yields DeserializationError; input that
// parses but violates a wire invariant (e.g. a signature that isn't
// exactly 32 bytes, or a caveat shape that is neither first- nor
// third-party) yields InvalidFormat.
func FromBinary(data []byte) (*Credential, error) {
	var wire wireCredential
	if err := msgpack.Unmarshal(data, &wire); err != nil {
		return nil, wrapError(KindDeserializationError, "decoding binary credential", err)
	}
	return fromWire(wire)
}

// ToBase64 encodes c's binary form with URL-safe, unpadded base64 —
// suitable for an HTTP header.
func (c *Credential) ToBase64() (string, error) {
	bin, err := c.ToBinary()
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bin), nil
}

// FromBase64 decodes a Credential previously produced by ToBase64.
func FromBase64(s string) (*Credential, error) {
	bin, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, wrapError(KindDeserializationError, "decoding base64", err)
	}
	return FromBinary(bin)
}

// ToHex encodes c's binary form as lowercase hexadecimal.
func (c *Credential) ToHex() (string, error) {
	bin, err := c.ToBinary()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(bin), nil
}

// FromHex decodes a Credential previously produced by ToHex.
func FromHex(s string) (*Credential, error) {
	bin, err := hex.DecodeString(s)
	if err != nil {
		return nil, wrapError(KindDeserializationError, "decoding hex", err)
	}
	return FromBinary(bin)
}
