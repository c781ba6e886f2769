package frontend

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/varunthakore/bellpepper/field"
)

type termRaw struct {
	Variable Variable `cbor:"variable"`
	Coeff    []byte   `cbor:"coeff"`
}

// MarshalCBOR encodes the combination as its ordered term list, each
// coefficient as big-endian bytes.
func (lc LinearCombination[F]) MarshalCBOR() ([]byte, error) {
	raw := make([]termRaw, len(lc.terms))
	for i, t := range lc.terms {
		raw[i] = termRaw{Variable: t.Variable, Coeff: t.Coeff.Bytes()}
	}
	return cbor.Marshal(raw)
}

// UnmarshalCBOR decodes a combination produced by MarshalCBOR.
func (lc *LinearCombination[F]) UnmarshalCBOR(data []byte) error {
	var raw []termRaw
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return err
	}

	terms := make([]Term[F], len(raw))
	for i, t := range raw {
		terms[i] = Term[F]{Variable: t.Variable, Coeff: field.Zero[F]().SetBytes(t.Coeff)}
	}
	*lc = LinearCombination[F]{terms: terms}
	return nil
}
