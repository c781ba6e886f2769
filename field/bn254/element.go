// Package bn254 exposes the scalar field of the BN254 curve as a
// gadget-layer field element.
package bn254

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/varunthakore/bellpepper/field"
)

// Element wraps fr.Element to conform to the field.Element interface.
type Element struct {
	fr.Element
}

var _ field.Element[Element] = Element{}

// NewElement constructs an element representing val.
func NewElement(val uint64) Element {
	return Element{fr.NewElement(val)}
}

// Add x + y
func (x Element) Add(y Element) Element {
	var res fr.Element
	//
	res.Add(&x.Element, &y.Element)
	//
	return Element{res}
}

// Sub x - y
func (x Element) Sub(y Element) Element {
	var res fr.Element
	//
	res.Sub(&x.Element, &y.Element)
	//
	return Element{res}
}

// Neg -x
func (x Element) Neg() Element {
	var res fr.Element
	//
	res.Neg(&x.Element)
	//
	return Element{res}
}

// Mul x * y
func (x Element) Mul(y Element) Element {
	var res fr.Element
	//
	res.Mul(&x.Element, &y.Element)
	//
	return Element{res}
}

// Square x * x
func (x Element) Square() Element {
	var res fr.Element
	//
	res.Square(&x.Element)
	//
	return Element{res}
}

// Double x + x
func (x Element) Double() Element {
	var res fr.Element
	//
	res.Double(&x.Element)
	//
	return Element{res}
}

// Inverse x⁻¹, or 0 if x = 0.
func (x Element) Inverse() Element {
	var res fr.Element
	//
	res.Inverse(&x.Element)
	//
	return Element{res}
}

// Cmp returns 1 if x > y, 0 if x = y, and -1 if x < y.
func (x Element) Cmp(y Element) int {
	return x.Element.Cmp(&y.Element)
}

// Equal reports whether x = y.
func (x Element) Equal(y Element) bool {
	return x.Element.Equal(&y.Element)
}

// IsZero implementation for the field.Element interface.
func (x Element) IsZero() bool {
	return x.Element.IsZero()
}

// IsOne implementation for the field.Element interface.
func (x Element) IsOne() bool {
	return x.Element.IsOne()
}

// SetUint64 implementation for the field.Element interface.
func (x Element) SetUint64(val uint64) Element {
	x.Element.SetUint64(val)
	//
	return x
}

// SetBytes implementation for the field.Element interface.
func (x Element) SetBytes(bytes []byte) Element {
	x.Element.SetBytes(bytes)
	//
	return x
}

// SetBigInt implementation for the field.Element interface.
func (x Element) SetBigInt(val *big.Int) Element {
	x.Element.SetBigInt(val)
	//
	return x
}

// SetRandom returns a uniformly sampled element.
func (x Element) SetRandom() (Element, error) {
	var res fr.Element
	//
	if _, err := res.SetRandom(); err != nil {
		return Element{}, err
	}
	//
	return Element{res}, nil
}

// BigInt writes the canonical representative of x into res and returns res.
func (x Element) BigInt(res *big.Int) *big.Int {
	return x.Element.BigInt(res)
}

// Bytes returns the big-endian encoded value of the Element, possibly with
// leading zeros.
func (x Element) Bytes() []byte {
	return x.Marshal()
}

// Modulus returns the order of the scalar field.
func (x Element) Modulus() *big.Int {
	return fr.Modulus()
}

func (x Element) String() string {
	return x.Element.String()
}
