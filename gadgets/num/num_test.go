package num

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/varunthakore/bellpepper/field"
	"github.com/varunthakore/bellpepper/field/bls12381"
	"github.com/varunthakore/bellpepper/frontend"
	"github.com/varunthakore/bellpepper/gadgets/boolean"
	"github.com/varunthakore/bellpepper/test"
)

type el = bls12381.Element

func fe(v uint64) el { return field.Uint64[el](v) }

func allocNum(t *testing.T, cs frontend.ConstraintSystem[el], v el) AllocatedNum[el] {
	t.Helper()
	n, err := Alloc(cs, func() (el, error) { return v, nil })
	require.NoError(t, err)
	return n
}

func TestAllocatedNum(t *testing.T) {
	cs := test.NewConstraintSystem[el]()

	allocNum(t, cs, field.One[el]())

	require.True(t, cs.Get("num").IsOne())
}

func TestMustAlloc(t *testing.T) {
	cs := test.NewConstraintSystem[el]()

	MustAlloc[el](cs, func() el { return field.One[el]() })

	require.True(t, cs.Get("num").IsOne())
}

func TestAllocProducerError(t *testing.T) {
	cs := test.NewConstraintSystem[el]()

	boom := errors.New("boom")
	_, err := Alloc[el](cs, func() (el, error) { return field.Zero[el](), boom })
	require.ErrorIs(t, err, boom)
	require.Equal(t, 0, cs.NbAux())
}

func TestAllocMaybeInput(t *testing.T) {
	cs := test.NewConstraintSystem[el]()

	_, err := AllocMaybeInput(cs.Namespace("public"), true, func() (el, error) { return fe(7), nil })
	require.NoError(t, err)
	_, err = AllocMaybeInput(cs.Namespace("private"), false, func() (el, error) { return fe(8), nil })
	require.NoError(t, err)

	require.Equal(t, 2, cs.NbInputs())
	require.Equal(t, 1, cs.NbAux())
	require.True(t, cs.Get("public/input num").Equal(fe(7)))
	require.True(t, cs.Get("private/num").Equal(fe(8)))
	require.True(t, cs.Verify([]el{fe(7)}))
}

func TestInputize(t *testing.T) {
	cs := test.NewConstraintSystem[el]()

	n := allocNum(t, cs, fe(5))
	require.NoError(t, n.Inputize(cs))

	require.True(t, cs.IsSatisfied())
	require.True(t, cs.Verify([]el{fe(5)}))
	require.Equal(t, 2, cs.NbInputs())

	cs.Set("input variable", fe(6))
	path, unsatisfied := cs.WhichIsUnsatisfied()
	require.True(t, unsatisfied)
	require.Equal(t, "enforce input is correct", path)
}

func TestNumAddition(t *testing.T) {
	cs := test.NewConstraintSystem[el]()

	modMinusOne := field.One[el]().Neg()

	a := allocNum(t, cs.Namespace("a"), modMinusOne)
	b := allocNum(t, cs.Namespace("b"), field.One[el]())
	c, err := a.Add(cs, b)
	require.NoError(t, err)

	require.True(t, cs.IsSatisfied())
	require.True(t, cs.Get("sum num").IsZero())
	cv, ok := c.Value()
	require.True(t, ok)
	require.True(t, cv.IsZero())

	cs.Set("sum num", field.One[el]())
	require.False(t, cs.IsSatisfied())
}

func TestNumSubtraction(t *testing.T) {
	cs := test.NewConstraintSystem[el]()

	modMinusOne := field.One[el]().Neg()

	a := allocNum(t, cs.Namespace("a"), field.Zero[el]())
	b := allocNum(t, cs.Namespace("b"), field.One[el]())
	c, err := a.Sub(cs, b)
	require.NoError(t, err)

	require.True(t, cs.IsSatisfied())
	require.True(t, cs.Get("sub num").Equal(modMinusOne))
	cv, ok := c.Value()
	require.True(t, ok)
	require.True(t, cv.Equal(modMinusOne))

	cs.Set("sub num", field.One[el]())
	require.False(t, cs.IsSatisfied())
}

func TestNumNegation(t *testing.T) {
	cs := test.NewConstraintSystem[el]()

	a := allocNum(t, cs.Namespace("a"), field.Random[el]())
	out, err := a.Neg(cs)
	require.NoError(t, err)

	av, _ := a.Value()
	expected := av.Neg()

	require.True(t, cs.IsSatisfied())
	require.True(t, cs.Get("neg num").Equal(expected))
	ov, ok := out.Value()
	require.True(t, ok)
	require.True(t, ov.Equal(expected))

	cs.Set("neg num", field.Random[el]())
	require.False(t, cs.IsSatisfied())
}

func TestNumSquaring(t *testing.T) {
	cs := test.NewConstraintSystem[el]()

	n := allocNum(t, cs, fe(3))
	n2, err := n.Square(cs)
	require.NoError(t, err)

	require.True(t, cs.IsSatisfied())
	require.True(t, cs.Get("squared num").Equal(fe(9)))
	v, ok := n2.Value()
	require.True(t, ok)
	require.True(t, v.Equal(fe(9)))

	cs.Set("squared num", fe(10))
	require.False(t, cs.IsSatisfied())
}

func TestNumMultiplication(t *testing.T) {
	cs := test.NewConstraintSystem[el]()

	n := allocNum(t, cs.Namespace("a"), fe(12))
	n2 := allocNum(t, cs.Namespace("b"), fe(10))
	n3, err := n.Mul(cs, n2)
	require.NoError(t, err)

	require.True(t, cs.IsSatisfied())
	require.True(t, cs.Get("product num").Equal(fe(120)))
	v, ok := n3.Value()
	require.True(t, ok)
	require.True(t, v.Equal(fe(120)))

	cs.Set("product num", fe(121))
	require.False(t, cs.IsSatisfied())
}

func TestNumDivision(t *testing.T) {
	cs := test.NewConstraintSystem[el]()

	a := allocNum(t, cs.Namespace("a"), fe(120))
	b := allocNum(t, cs.Namespace("b"), fe(10))
	c, err := a.Div(cs, b)
	require.NoError(t, err)

	require.True(t, cs.IsSatisfied())
	require.True(t, cs.Get("div num").Equal(fe(12)))
	v, ok := c.Value()
	require.True(t, ok)
	require.True(t, v.Equal(fe(12)))

	cs.Set("div num", fe(11))
	require.False(t, cs.IsSatisfied())
}

func TestNumDivisionByZero(t *testing.T) {
	cs := test.NewConstraintSystem[el]()

	a := allocNum(t, cs.Namespace("a"), fe(6))
	b := allocNum(t, cs.Namespace("b"), field.Zero[el]())

	_, err := a.Div(cs, b)
	require.ErrorIs(t, err, frontend.ErrDivisionByZero)
}

func TestNumIsZero(t *testing.T) {
	{
		cs := test.NewConstraintSystem[el]()
		a := allocNum(t, cs.Namespace("a"), field.Random[el]())
		isZero, err := a.IsZero(cs)
		require.NoError(t, err)

		require.True(t, cs.IsSatisfied())
		require.True(t, cs.Get("out bit/boolean").IsZero())
		v, ok := isZero.Value()
		require.True(t, ok)
		require.False(t, v)

		cs.Set("out bit/boolean", fe(1))
		require.False(t, cs.IsSatisfied())
	}

	{
		cs := test.NewConstraintSystem[el]()
		a := allocNum(t, cs.Namespace("a"), field.Zero[el]())
		isZero, err := a.IsZero(cs)
		require.NoError(t, err)

		require.True(t, cs.IsSatisfied())
		require.True(t, cs.Get("out bit/boolean").IsOne())
		v, ok := isZero.Value()
		require.True(t, ok)
		require.True(t, v)

		cs.Set("out bit/boolean", fe(0))
		require.False(t, cs.IsSatisfied())
	}
}

func TestNumIsZeroNeedsHint(t *testing.T) {
	cs := test.NewConstraintSystem[el]()

	n := AllocatedNum[el]{variable: frontend.Variable{Visibility: frontend.Aux, Index: 0}}
	_, err := n.IsZero(cs)
	require.ErrorIs(t, err, frontend.ErrAssignmentMissing)
	require.Equal(t, 0, cs.NbConstraints())
}

func TestNumIsEqual(t *testing.T) {
	{
		cs := test.NewConstraintSystem[el]()
		a := allocNum(t, cs.Namespace("a"), field.Random[el]())
		b := allocNum(t, cs.Namespace("b"), field.Random[el]())
		isEqual, err := a.IsEqual(cs, b)
		require.NoError(t, err)

		require.True(t, cs.IsSatisfied())
		require.True(t, cs.Get("out bit/boolean").IsZero())
		v, ok := isEqual.Value()
		require.True(t, ok)
		require.False(t, v)

		cs.Set("out bit/boolean", fe(1))
		require.False(t, cs.IsSatisfied())
	}

	{
		cs := test.NewConstraintSystem[el]()
		a := allocNum(t, cs.Namespace("a"), field.Random[el]())
		b := a
		isEqual, err := a.IsEqual(cs, b)
		require.NoError(t, err)

		require.True(t, cs.IsSatisfied())
		require.True(t, cs.Get("out bit/boolean").IsOne())
		v, ok := isEqual.Value()
		require.True(t, ok)
		require.True(t, v)

		cs.Set("out bit/boolean", fe(0))
		require.False(t, cs.IsSatisfied())
	}
}

func TestNumConditionalSelect(t *testing.T) {
	{
		cs := test.NewConstraintSystem[el]()

		a := allocNum(t, cs.Namespace("a"), field.Random[el]())
		b := allocNum(t, cs.Namespace("b"), field.Random[el]())
		condition := boolean.Constant(false)
		c, err := ConditionallySelect[el](cs, a, b, condition)
		require.NoError(t, err)

		require.True(t, cs.IsSatisfied())
		av, _ := a.Value()
		cv, _ := c.Value()
		require.True(t, av.Equal(cv))
	}

	{
		cs := test.NewConstraintSystem[el]()

		a := allocNum(t, cs.Namespace("a"), field.Random[el]())
		b := allocNum(t, cs.Namespace("b"), field.Random[el]())
		condition := boolean.Constant(true)
		c, err := ConditionallySelect[el](cs, a, b, condition)
		require.NoError(t, err)

		require.True(t, cs.IsSatisfied())
		bv, _ := b.Value()
		cv, _ := c.Value()
		require.True(t, bv.Equal(cv))
	}

	{
		cs := test.NewConstraintSystem[el]()

		a := allocNum(t, cs.Namespace("a"), field.Random[el]())
		b := allocNum(t, cs.Namespace("b"), field.Random[el]())
		bitValue := true
		bit, err := boolean.Alloc(cs.Namespace("condition"), &bitValue)
		require.NoError(t, err)

		c, err := ConditionallySelect[el](cs, a, b, boolean.FromBit(bit))
		require.NoError(t, err)

		require.True(t, cs.IsSatisfied())
		bv, _ := b.Value()
		cv, _ := c.Value()
		require.True(t, bv.Equal(cv))

		// swapping the output to the unselected branch must break the select
		av, _ := a.Value()
		cs.Set("alloc output/num", av)
		require.False(t, cs.IsSatisfied())
	}
}

func TestNumConditionalReversal(t *testing.T) {
	{
		cs := test.NewConstraintSystem[el]()

		a := allocNum(t, cs.Namespace("a"), field.Random[el]())
		b := allocNum(t, cs.Namespace("b"), field.Random[el]())
		condition := boolean.Constant(false)
		c, d, err := ConditionallyReverse[el](cs, a, b, condition)
		require.NoError(t, err)

		require.True(t, cs.IsSatisfied())

		av, _ := a.Value()
		bv, _ := b.Value()
		cv, _ := c.Value()
		dv, _ := d.Value()
		require.True(t, av.Equal(cv))
		require.True(t, bv.Equal(dv))
	}

	{
		cs := test.NewConstraintSystem[el]()

		a := allocNum(t, cs.Namespace("a"), field.Random[el]())
		b := allocNum(t, cs.Namespace("b"), field.Random[el]())
		condition := boolean.Constant(true)
		c, d, err := ConditionallyReverse[el](cs, a, b, condition)
		require.NoError(t, err)

		require.True(t, cs.IsSatisfied())

		av, _ := a.Value()
		bv, _ := b.Value()
		cv, _ := c.Value()
		dv, _ := d.Value()
		require.True(t, av.Equal(dv))
		require.True(t, bv.Equal(cv))
	}
}

func TestMuxTree(t *testing.T) {
	conditions := [][2]bool{{false, false}, {false, true}, {true, false}, {true, true}}

	for _, cond := range conditions {
		c1, c0 := cond[0], cond[1]
		cs := test.NewConstraintSystem[el]()

		condition0 := boolean.Constant(c0)
		condition1 := boolean.Constant(c1)
		sel := []boolean.Boolean{condition1, condition0}

		a0 := allocNum(t, cs.Namespace("alloc a0"), field.Random[el]())
		a1 := allocNum(t, cs.Namespace("alloc a1"), field.Random[el]())
		a2 := allocNum(t, cs.Namespace("alloc a2"), field.Random[el]())
		a3 := allocNum(t, cs.Namespace("alloc a3"), field.Random[el]())

		res, err := MuxTree(
			cs.Namespace(fmt.Sprintf("mux tree result for conditions = %v, %v", c1, c0)),
			sel,
			[]AllocatedNum[el]{a0, a1, a2, a3},
		)
		require.NoError(t, err)

		var expected AllocatedNum[el]
		switch {
		case !c1 && !c0:
			expected = a0
		case !c1 && c0:
			expected = a1
		case c1 && !c0:
			expected = a2
		default:
			expected = a3
		}

		cs.Enforce(fmt.Sprintf("res equality for conditions = %v, %v", c1, c0),
			frontend.LinearCombination[el]{},
			frontend.LinearCombination[el]{},
			frontend.FromVariable[el](expected.Variable()).SubVariable(res.Variable()),
		)

		require.True(t, cs.IsSatisfied())
		require.Equal(t, 4, cs.NbConstraints())
	}
}

func TestMuxTreeArity(t *testing.T) {
	cs := test.NewConstraintSystem[el]()

	a := allocNum(t, cs.Namespace("a"), fe(1))
	b := allocNum(t, cs.Namespace("b"), fe(2))
	c := allocNum(t, cs.Namespace("c"), fe(3))
	bit := boolean.Constant(true)

	// three inputs cannot split under one selector
	_, err := MuxTree(cs.Namespace("odd"), []boolean.Boolean{bit}, []AllocatedNum[el]{a, b, c})
	require.ErrorIs(t, err, frontend.ErrUnsatisfiable)

	// zero selectors demand exactly one input
	_, err = MuxTree(cs.Namespace("leaf"), nil, []AllocatedNum[el]{a, b})
	require.ErrorIs(t, err, frontend.ErrUnsatisfiable)

	require.Equal(t, 0, cs.NbConstraints())
}

func TestNumNonzero(t *testing.T) {
	{
		cs := test.NewConstraintSystem[el]()

		n := allocNum(t, cs, fe(3))
		require.NoError(t, n.AssertNonzero(cs))

		require.True(t, cs.IsSatisfied())
		cs.Set("ephemeral inverse", fe(3))
		path, unsatisfied := cs.WhichIsUnsatisfied()
		require.True(t, unsatisfied)
		require.Equal(t, "nonzero assertion constraint", path)
	}

	{
		cs := test.NewConstraintSystem[el]()

		n := allocNum(t, cs, field.Zero[el]())
		require.ErrorIs(t, n.AssertNonzero(cs), frontend.ErrDivisionByZero)
	}
}
