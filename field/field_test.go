package field_test

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/varunthakore/bellpepper/field"
	"github.com/varunthakore/bellpepper/field/bls12381"
	"github.com/varunthakore/bellpepper/field/bn254"
)

type el = bls12381.Element

func genElement() gopter.Gen {
	return func(*gopter.GenParameters) *gopter.GenResult {
		return gopter.NewGenResult(field.Random[el](), gopter.NoShrinker)
	}
}

func TestFieldProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("multiplication distributes over addition", prop.ForAll(
		func(a, b, c el) bool {
			left := a.Add(b).Mul(c)
			right := a.Mul(c).Add(b.Mul(c))
			return left.Equal(right)
		},
		genElement(), genElement(), genElement(),
	))

	properties.Property("inverse recovers the operand", prop.ForAll(
		func(a el) bool {
			if a.IsZero() {
				return a.Inverse().IsZero()
			}
			return a.Inverse().Mul(a).IsOne()
		},
		genElement(),
	))

	properties.Property("square and double match the binary operations", prop.ForAll(
		func(a el) bool {
			return a.Square().Equal(a.Mul(a)) && a.Double().Equal(a.Add(a))
		},
		genElement(),
	))

	properties.Property("negation sums to zero", prop.ForAll(
		func(a el) bool {
			return a.Add(a.Neg()).IsZero()
		},
		genElement(),
	))

	properties.Property("bytes round-trip through the canonical encoding", prop.ForAll(
		func(a el) bool {
			round := field.Zero[el]().SetBytes(a.Bytes())
			return round.Equal(a)
		},
		genElement(),
	))

	properties.Property("comparison agrees with the canonical integers", prop.ForAll(
		func(a, b el) bool {
			return a.Cmp(b) == a.BigInt(new(big.Int)).Cmp(b.BigInt(new(big.Int)))
		},
		genElement(), genElement(),
	))

	properties.Property("bit access agrees with the canonical integer", prop.ForAll(
		func(a el) bool {
			bits := field.BitsLE(a)
			canonical := a.BigInt(new(big.Int))
			for i := 0; i < field.BitLen[el](); i++ {
				if bits.Test(uint(i)) != (canonical.Bit(i) == 1) {
					return false
				}
			}
			return true
		},
		genElement(),
	))

	properties.TestingRun(t)
}

func TestConstructors(t *testing.T) {
	require.True(t, field.Zero[el]().IsZero())
	require.True(t, field.One[el]().IsOne())

	forty2 := field.Uint64[el](42)
	require.Equal(t, int64(42), forty2.BigInt(new(big.Int)).Int64())
	require.True(t, field.One[el]().Add(field.One[el]()).Equal(field.Uint64[el](2)))

	r1, r2 := field.Random[el](), field.Random[el]()
	require.False(t, r1.Equal(r2))
}

func TestFromBigInt(t *testing.T) {
	modulus := field.Modulus[el]()

	// values reduce mod the characteristic
	require.True(t, field.FromBigInt[el](modulus).IsZero())
	shifted := new(big.Int).Add(modulus, big.NewInt(5))
	require.True(t, field.FromBigInt[el](shifted).Equal(field.Uint64[el](5)))

	require.Panics(t, func() {
		field.FromBigInt[el](big.NewInt(-1))
	})
}

func TestModulus(t *testing.T) {
	const blsModulus = "52435875175126190479447740508185965837690552500527637822603658699938581184513"
	const bnModulus = "21888242871839275222246405745257275088548364400416034343698204186575808495617"

	require.Equal(t, blsModulus, field.Modulus[bls12381.Element]().String())
	require.Equal(t, bnModulus, field.Modulus[bn254.Element]().String())

	require.Equal(t, 255, field.BitLen[bls12381.Element]())
	require.Equal(t, 254, field.BitLen[bn254.Element]())
}

func TestBitsLE(t *testing.T) {
	bits := field.BitsLE(field.Uint64[el](6))
	require.False(t, bits.Test(0))
	require.True(t, bits.Test(1))
	require.True(t, bits.Test(2))
	require.False(t, bits.Test(3))

	// the characteristic minus one has the top bit set
	bound := new(big.Int).Sub(field.Modulus[el](), big.NewInt(1))
	bits = field.BitsLE(field.FromBigInt[el](bound))
	require.True(t, bits.Test(uint(field.BitLen[el]()-1)))
}

func TestBn254Arithmetic(t *testing.T) {
	a := bn254.NewElement(3)
	b := bn254.NewElement(4)
	require.True(t, a.Mul(b).Equal(bn254.NewElement(12)))
	require.True(t, a.Add(b).Sub(a).Equal(b))
}
