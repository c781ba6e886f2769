package num

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/varunthakore/bellpepper/field"
	"github.com/varunthakore/bellpepper/frontend"
)

type allocatedNumRaw struct {
	Value    []byte            `cbor:"value"`
	Variable frontend.Variable `cbor:"variable"`
}

// MarshalCBOR encodes the number's snapshot: its variable and, when the
// hint is present, the big-endian bytes of its value.
func (n AllocatedNum[F]) MarshalCBOR() ([]byte, error) {
	raw := allocatedNumRaw{Variable: n.variable}
	if n.value != nil {
		raw.Value = (*n.value).Bytes()
	}
	return cbor.Marshal(raw)
}

// UnmarshalCBOR decodes a snapshot produced by MarshalCBOR.
func (n *AllocatedNum[F]) UnmarshalCBOR(data []byte) error {
	var raw allocatedNumRaw
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return err
	}

	n.variable = raw.Variable
	n.value = nil
	if raw.Value != nil {
		v := field.Zero[F]().SetBytes(raw.Value)
		n.value = &v
	}
	return nil
}
