// Package field defines the prime-field scalar contract consumed by the
// gadget layer, together with generic helpers shared by all instantiations.
//
// Implementations are small value types wrapping a concrete fr.Element from
// gnark-crypto: every operation leaves its receiver untouched and returns a
// fresh value, so elements behave like ordinary scalars at call sites.
package field

import (
	"fmt"
	"math/big"
)

// An Element of a prime-order field.
type Element[Operand any] interface {
	fmt.Stringer
	// Add x + y
	Add(y Operand) Operand
	// Sub x - y
	Sub(y Operand) Operand
	// Neg -x
	Neg() Operand
	// Mul x * y
	Mul(y Operand) Operand
	// Square x * x
	Square() Operand
	// Double x + x
	Double() Operand
	// Inverse x⁻¹, or 0 if x = 0.
	Inverse() Operand
	// Cmp returns 1 if x > y, 0 if x = y, and -1 if x < y.
	Cmp(y Operand) int
	// Equal reports whether x = y.
	Equal(y Operand) bool
	// Check whether this value is zero (or not).
	IsZero() bool
	// Check whether this value is one (or not).
	IsOne() bool
	// SetUint64 returns the element representing val.
	SetUint64(val uint64) Operand
	// SetBytes interprets bytes as the big-endian encoding of an unsigned
	// integer and returns the corresponding (reduced) element.
	SetBytes(bytes []byte) Operand
	// SetBigInt returns the element corresponding to val mod the
	// characteristic. val must be non-negative.
	SetBigInt(val *big.Int) Operand
	// SetRandom returns a uniformly sampled element.
	SetRandom() (Operand, error)
	// BigInt writes the canonical representative of x into res and returns
	// res.
	BigInt(res *big.Int) *big.Int
	// Bytes returns the big-endian encoded canonical representative.
	Bytes() []byte
	// Modulus returns the characteristic of the field.
	Modulus() *big.Int
}

// Zero constructs a field element representing 0.
func Zero[F Element[F]]() F {
	var element F
	//
	return element
}

// One constructs a field element representing 1.
func One[F Element[F]]() F {
	var element F
	//
	return element.SetUint64(1)
}

// Uint64 constructs a field element from a given uint64.
func Uint64[F Element[F]](val uint64) F {
	var element F
	//
	return element.SetUint64(val)
}

// FromBigInt constructs a field element from a given non-negative big.Int.
func FromBigInt[F Element[F]](val *big.Int) F {
	var element F
	//
	if val.Sign() < 0 {
		panic("negative value encountered")
	}
	//
	return element.SetBigInt(val)
}

// Random samples a uniformly distributed field element, panicking if the
// platform entropy source fails.
func Random[F Element[F]]() F {
	var zero F
	//
	element, err := zero.SetRandom()
	if err != nil {
		panic(err)
	}
	//
	return element
}

// Modulus returns the characteristic of F. The underlying fr packages compute
// the modulus once at package init; this merely reads that constant.
func Modulus[F Element[F]]() *big.Int {
	var element F
	//
	return element.Modulus()
}

// BitLen returns the number of bits required to represent the characteristic
// of F.
func BitLen[F Element[F]]() int {
	return Modulus[F]().BitLen()
}
