package boolean

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/varunthakore/bellpepper/field"
	"github.com/varunthakore/bellpepper/test"
)

func TestBooleanNot(t *testing.T) {
	require.True(t, Constant(true).IsConstant())

	v, ok := Constant(true).Not().Value()
	require.True(t, ok)
	require.False(t, v)

	v, ok = Constant(false).Not().Value()
	require.True(t, ok)
	require.True(t, v)

	cs := test.NewConstraintSystem[el]()

	bitValue := true
	bit, err := Alloc[el](cs, &bitValue)
	require.NoError(t, err)

	b := FromBit(bit)
	_, isBit := b.Bit()
	require.True(t, isBit)

	n := b.Not()
	_, isBit = n.Bit()
	require.False(t, isBit)
	v, ok = n.Value()
	require.True(t, ok)
	require.False(t, v)

	// double negation restores the plain bit
	nn := n.Not()
	got, isBit := nn.Bit()
	require.True(t, isBit)
	require.Equal(t, bit.Variable(), got.Variable())
	v, ok = nn.Value()
	require.True(t, ok)
	require.True(t, v)

	// negation is free
	require.Equal(t, 1, cs.NbConstraints())
}

func TestBooleanLc(t *testing.T) {
	cs := test.NewConstraintSystem[el]()
	one := cs.One()
	coeff := fe(5)

	bitValue := true
	bit, err := Alloc[el](cs, &bitValue)
	require.NoError(t, err)

	lc := Lc(Constant(true), one, coeff)
	require.Equal(t, 1, lc.Len())
	require.Equal(t, one, lc.Terms()[0].Variable)
	require.True(t, lc.Terms()[0].Coeff.Equal(coeff))

	lc = Lc(Constant(false), one, coeff)
	require.Equal(t, 0, lc.Len())

	lc = Lc(FromBit(bit), one, coeff)
	require.Equal(t, 1, lc.Len())
	require.Equal(t, bit.Variable(), lc.Terms()[0].Variable)
	require.True(t, lc.Terms()[0].Coeff.Equal(coeff))

	// coeff·(1 - bit), the one variable sorting first
	lc = Lc(FromBit(bit).Not(), one, coeff)
	require.Equal(t, 2, lc.Len())
	require.Equal(t, one, lc.Terms()[0].Variable)
	require.True(t, lc.Terms()[0].Coeff.Equal(coeff))
	require.Equal(t, bit.Variable(), lc.Terms()[1].Variable)
	require.True(t, lc.Terms()[1].Coeff.Equal(coeff.Neg()))
}

func TestBooleanAnd(t *testing.T) {
	wrappers := []struct {
		name string
		wrap func(AllocatedBit) Boolean
		eff  func(bool) bool
	}{
		{"is", FromBit, func(v bool) bool { return v }},
		{"not", func(b AllocatedBit) Boolean { return FromBit(b).Not() }, func(v bool) bool { return !v }},
	}

	gatePath := map[[2]string]string{
		{"is", "is"}:   "and result",
		{"is", "not"}:  "and not result",
		{"not", "is"}:  "and not result",
		{"not", "not"}: "nor result",
	}

	for _, wa := range wrappers {
		for _, wb := range wrappers {
			for _, av := range []bool{false, true} {
				for _, bv := range []bool{false, true} {
					cs := test.NewConstraintSystem[el]()

					avv, bvv := av, bv
					aBit, err := Alloc(cs.Namespace("a"), &avv)
					require.NoError(t, err)
					bBit, err := Alloc(cs.Namespace("b"), &bvv)
					require.NoError(t, err)

					out, err := And[el](cs, wa.wrap(aBit), wb.wrap(bBit))
					require.NoError(t, err)

					got, ok := out.Value()
					require.True(t, ok)
					require.Equal(t, wa.eff(av) && wb.eff(bv), got)
					require.True(t, cs.IsSatisfied())
					require.Equal(t, 3, cs.NbConstraints())

					// the variant pair picks the gate, never an extra negation
					path := gatePath[[2]string{wa.name, wb.name}]
					require.NotPanics(t, func() { cs.Get(path) })
				}
			}
		}
	}
}

func TestBooleanXor(t *testing.T) {
	wrappers := []struct {
		name string
		wrap func(AllocatedBit) Boolean
		eff  func(bool) bool
	}{
		{"is", FromBit, func(v bool) bool { return v }},
		{"not", func(b AllocatedBit) Boolean { return FromBit(b).Not() }, func(v bool) bool { return !v }},
	}

	for _, wa := range wrappers {
		for _, wb := range wrappers {
			for _, av := range []bool{false, true} {
				for _, bv := range []bool{false, true} {
					cs := test.NewConstraintSystem[el]()

					avv, bvv := av, bv
					aBit, err := Alloc(cs.Namespace("a"), &avv)
					require.NoError(t, err)
					bBit, err := Alloc(cs.Namespace("b"), &bvv)
					require.NoError(t, err)

					out, err := Xor[el](cs, wa.wrap(aBit), wb.wrap(bBit))
					require.NoError(t, err)

					got, ok := out.Value()
					require.True(t, ok)
					require.Equal(t, wa.eff(av) != wb.eff(bv), got)
					require.True(t, cs.IsSatisfied())
					require.Equal(t, 3, cs.NbConstraints())
				}
			}
		}
	}
}

func TestBooleanConstantShortCircuit(t *testing.T) {
	cs := test.NewConstraintSystem[el]()

	bitValue := true
	bit, err := Alloc[el](cs, &bitValue)
	require.NoError(t, err)
	b := FromBit(bit)

	out, err := And[el](cs, Constant(false), b)
	require.NoError(t, err)
	require.True(t, out.IsConstant())
	v, ok := out.Value()
	require.True(t, ok)
	require.False(t, v)

	out, err = And[el](cs, b, Constant(true))
	require.NoError(t, err)
	v, ok = out.Value()
	require.True(t, ok)
	require.True(t, v)

	out, err = Xor[el](cs, Constant(true), b)
	require.NoError(t, err)
	v, ok = out.Value()
	require.True(t, ok)
	require.False(t, v)

	out, err = Xor[el](cs, b, Constant(false))
	require.NoError(t, err)
	v, ok = out.Value()
	require.True(t, ok)
	require.True(t, v)

	// constants never cost a gate
	require.Equal(t, 1, cs.NbConstraints())

	one := field.One[el]()
	require.True(t, one.Equal(cs.Get("boolean")))
}
