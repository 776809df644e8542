package manifest

import (
	"encoding/json"
	"errors"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the CBOR encoder configured with Core Deterministic Encoding
// (RFC 8949 §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items. The same walk record always produces identical
// bytes.
var encMode cbor.EncMode

// decMode accepts standard CBOR; unknown fields are ignored for forward
// compatibility.
var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("manifest: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("manifest: CBOR decoder initialization failed: " + err.Error())
	}
}

// EncodeJSON renders the manifest as JSON, the encoding used when the
// manifest is embedded in a generated document. Document-level escaping is
// the templating collaborator's concern.
func EncodeJSON(m *Manifest) ([]byte, error) {
	if m == nil {
		return nil, errors.New("manifest: nil manifest")
	}
	return json.Marshal(m)
}

// DecodeJSON parses a JSON-encoded manifest.
func DecodeJSON(raw []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// EncodeBinary renders the manifest as deterministic CBOR for binary
// channels.
func EncodeBinary(m *Manifest) ([]byte, error) {
	if m == nil {
		return nil, errors.New("manifest: nil manifest")
	}
	return encMode.Marshal(m)
}

// DecodeBinary parses a CBOR-encoded manifest.
func DecodeBinary(raw []byte) (*Manifest, error) {
	var m Manifest
	if err := decMode.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
