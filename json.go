package macaroon

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// credentialJSON is the human-readable JSON shape: byte fields are
// hex-encoded strings, matching §4.7.
type credentialJSON struct {
	Location   string       `json:"location"`
	Identifier string       `json:"identifier"`
	Caveats    []caveatJSON `json:"caveats"`
	Signature  string       `json:"signature"`
}

type caveatJSON struct {
	CaveatID          string `json:"caveat_id"`
	VerificationKeyID string `json:"verification_key_id,omitempty"`
	Location          string `json:"location,omitempty"`
}

func (c *Credential) toJSONValue() credentialJSON {
	out := credentialJSON{
		Location:   c.Location,
		Identifier: hex.EncodeToString(c.Identifier),
		Signature:  hex.EncodeToString(c.Signature),
		Caveats:    make([]caveatJSON, len(c.Caveats)),
	}
	for i, cav := range c.Caveats {
		cj := caveatJSON{CaveatID: hex.EncodeToString(cav.CaveatID)}
		if cav.ThirdParty() {
			cj.VerificationKeyID = hex.EncodeToString(cav.VerificationKeyID)
			cj.Location = cav.Location
		}
		out.Caveats[i] = cj
	}
	return out
}

// ToJSON renders c as compact JSON.
func (c *Credential) ToJSON() ([]byte, error) {
	data, err := json.Marshal(c.toJSONValue())
	if err != nil {
		return nil, wrapError(KindDeserializationError, "marshaling json", err)
	}
	return data, nil
}

// ToJSONPretty renders c as indented, human-readable JSON.
func (c *Credential) ToJSONPretty() ([]byte, error) {
	data, err := json.MarshalIndent(c.toJSONValue(), "", "  ")
	if err != nil {
		return nil, wrapError(KindDeserializationError, "marshaling json", err)
	}
	return data, nil
}

// FromJSON decodes a Credential from either ToJSON or ToJSONPretty's
// output.
func FromJSON(data []byte) (*Credential, error) {
	var cj credentialJSON
	if err := json.Unmarshal(data, &cj); err != nil {
		return nil, wrapError(KindDeserializationError, "unmarshaling json", err)
	}

	id, err := hex.DecodeString(cj.Identifier)
	if err != nil {
		return nil, wrapError(KindDeserializationError, "decoding identifier hex", err)
	}
	sig, err := hex.DecodeString(cj.Signature)
	if err != nil {
		return nil, wrapError(KindDeserializationError, "decoding signature hex", err)
	}
	if len(sig) != sigLen {
		return nil, newError(KindInvalidFormat, "signature is not 32 bytes")
	}

	var caveats []Caveat
	if len(cj.Caveats) > 0 {
		caveats = make([]Caveat, len(cj.Caveats))
	}
	for i, cjc := range cj.Caveats {
		cid, err := hex.DecodeString(cjc.CaveatID)
		if err != nil {
			return nil, wrapError(KindDeserializationError, fmt.Sprintf("decoding caveat %d id hex", i), err)
		}
		cav := Caveat{CaveatID: cid}
		if cjc.VerificationKeyID != "" {
			vkid, err := hex.DecodeString(cjc.VerificationKeyID)
			if err != nil {
				return nil, wrapError(KindDeserializationError, fmt.Sprintf("decoding caveat %d vkid hex", i), err)
			}
			cav.VerificationKeyID = vkid
			cav.Location = cjc.Location
		} else if cjc.Location != "" {
			return nil, newError(KindInvalidFormat, "first-party caveat must not carry a location")
		}
		caveats[i] = cav
	}

	return &Credential{
		Location:   cj.Location,
		Identifier: id,
		Caveats:    caveats,
		Signature:  sig,
	}, nil
}
