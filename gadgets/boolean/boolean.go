// Package boolean implements single-bit witnesses and the gates over them.
//
// An AllocatedBit is a witness variable constrained to {0, 1}. A Boolean
// wraps either a literal constant, an allocated bit, or the negation of an
// allocated bit, so that negation costs nothing at circuit level.
package boolean

import (
	"fmt"

	"github.com/varunthakore/bellpepper/field"
	"github.com/varunthakore/bellpepper/frontend"
)

// AllocatedBit is a variable constrained to be 0 or 1, together with its
// optional witness value.
type AllocatedBit struct {
	value    *bool
	variable frontend.Variable
}

// Value returns the bit's witness value. The second return is false when the
// hint is absent.
func (b AllocatedBit) Value() (bool, bool) {
	if b.value == nil {
		return false, false
	}
	//
	return *b.value, true
}

// Variable returns the underlying witness variable.
func (b AllocatedBit) Variable() frontend.Variable {
	return b.variable
}

func bitProducer[F field.Element[F]](value *bool) func() (F, error) {
	return func() (F, error) {
		if value == nil {
			return field.Zero[F](), frontend.ErrAssignmentMissing
		}
		if *value {
			return field.One[F](), nil
		}
		//
		return field.Zero[F](), nil
	}
}

// Alloc allocates a variable named "boolean" with the given hint and
// constrains it to be 0 or 1 via "boolean constraint": (1 - a) * a = 0.
func Alloc[F field.Element[F]](cs frontend.ConstraintSystem[F], value *bool) (AllocatedBit, error) {
	v, err := cs.Alloc("boolean", bitProducer[F](value))
	if err != nil {
		return AllocatedBit{}, err
	}

	cs.Enforce("boolean constraint",
		frontend.FromVariable[F](cs.One()).SubVariable(v),
		frontend.FromVariable[F](v),
		frontend.LinearCombination[F]{},
	)

	return AllocatedBit{value: value, variable: v}, nil
}

// AllocConditionally allocates a bit that is additionally forced to 0
// whenever mustBeFalse is 1, via (1 - must_be_false - a) * a = 0. When both
// hints are present and both are true the allocation fails: such a witness
// could never satisfy the constraint.
func AllocConditionally[F field.Element[F]](cs frontend.ConstraintSystem[F], value *bool, mustBeFalse AllocatedBit) (AllocatedBit, error) {
	v, err := cs.Alloc("boolean", func() (F, error) {
		if value == nil {
			return field.Zero[F](), frontend.ErrAssignmentMissing
		}
		if *value {
			if mbf, ok := mustBeFalse.Value(); ok && mbf {
				return field.Zero[F](), frontend.ErrUnsatisfiable
			}
			return field.One[F](), nil
		}
		//
		return field.Zero[F](), nil
	})
	if err != nil {
		return AllocatedBit{}, err
	}

	cs.Enforce("boolean constraint",
		frontend.FromVariable[F](cs.One()).SubVariable(mustBeFalse.variable).SubVariable(v),
		frontend.FromVariable[F](v),
		frontend.LinearCombination[F]{},
	)

	return AllocatedBit{value: value, variable: v}, nil
}

// BitAnd computes a AND b with one constraint: a * b = c.
func BitAnd[F field.Element[F]](cs frontend.ConstraintSystem[F], a, b AllocatedBit) (AllocatedBit, error) {
	var value *bool

	v, err := cs.Alloc("and result", func() (F, error) {
		av, aok := a.Value()
		bv, bok := b.Value()
		if !aok || !bok {
			return field.Zero[F](), frontend.ErrAssignmentMissing
		}
		//
		res := av && bv
		value = &res
		if res {
			return field.One[F](), nil
		}
		return field.Zero[F](), nil
	})
	if err != nil {
		return AllocatedBit{}, err
	}

	cs.Enforce("and constraint",
		frontend.FromVariable[F](a.variable),
		frontend.FromVariable[F](b.variable),
		frontend.FromVariable[F](v),
	)

	return AllocatedBit{value: value, variable: v}, nil
}

// BitXor computes a XOR b with one constraint: 2a * b = a + b - c.
func BitXor[F field.Element[F]](cs frontend.ConstraintSystem[F], a, b AllocatedBit) (AllocatedBit, error) {
	var value *bool

	v, err := cs.Alloc("xor result", func() (F, error) {
		av, aok := a.Value()
		bv, bok := b.Value()
		if !aok || !bok {
			return field.Zero[F](), frontend.ErrAssignmentMissing
		}
		//
		res := av != bv
		value = &res
		if res {
			return field.One[F](), nil
		}
		return field.Zero[F](), nil
	})
	if err != nil {
		return AllocatedBit{}, err
	}

	cs.Enforce("xor constraint",
		frontend.FromVariable[F](a.variable).AddVariable(a.variable),
		frontend.FromVariable[F](b.variable),
		frontend.FromVariable[F](a.variable).AddVariable(b.variable).SubVariable(v),
	)

	return AllocatedBit{value: value, variable: v}, nil
}

// BitAndNot computes a AND (NOT b) with one constraint: a * (1 - b) = c.
func BitAndNot[F field.Element[F]](cs frontend.ConstraintSystem[F], a, b AllocatedBit) (AllocatedBit, error) {
	var value *bool

	v, err := cs.Alloc("and not result", func() (F, error) {
		av, aok := a.Value()
		bv, bok := b.Value()
		if !aok || !bok {
			return field.Zero[F](), frontend.ErrAssignmentMissing
		}
		//
		res := av && !bv
		value = &res
		if res {
			return field.One[F](), nil
		}
		return field.Zero[F](), nil
	})
	if err != nil {
		return AllocatedBit{}, err
	}

	cs.Enforce("and not constraint",
		frontend.FromVariable[F](a.variable),
		frontend.FromVariable[F](cs.One()).SubVariable(b.variable),
		frontend.FromVariable[F](v),
	)

	return AllocatedBit{value: value, variable: v}, nil
}

// BitNor computes (NOT a) AND (NOT b) with one constraint:
// (1 - a) * (1 - b) = c.
func BitNor[F field.Element[F]](cs frontend.ConstraintSystem[F], a, b AllocatedBit) (AllocatedBit, error) {
	var value *bool

	v, err := cs.Alloc("nor result", func() (F, error) {
		av, aok := a.Value()
		bv, bok := b.Value()
		if !aok || !bok {
			return field.Zero[F](), frontend.ErrAssignmentMissing
		}
		//
		res := !av && !bv
		value = &res
		if res {
			return field.One[F](), nil
		}
		return field.Zero[F](), nil
	})
	if err != nil {
		return AllocatedBit{}, err
	}

	cs.Enforce("nor constraint",
		frontend.FromVariable[F](cs.One()).SubVariable(a.variable),
		frontend.FromVariable[F](cs.One()).SubVariable(b.variable),
		frontend.FromVariable[F](v),
	)

	return AllocatedBit{value: value, variable: v}, nil
}

// FieldIntoAllocatedBitsLE allocates the little-endian bit decomposition of
// value, one constrained bit per field bit, named "bit 0" (LSB) upward. No
// packing constraint relates the bits back to a variable carrying value;
// callers wanting that add it themselves.
func FieldIntoAllocatedBitsLE[F field.Element[F]](cs frontend.ConstraintSystem[F], value *F) ([]AllocatedBit, error) {
	nbBits := field.BitLen[F]()

	hint := func(int) *bool { return nil }
	if value != nil {
		bits := field.BitsLE(*value)
		hint = func(i int) *bool {
			b := bits.Test(uint(i))
			return &b
		}
	}

	out := make([]AllocatedBit, nbBits)
	for i := 0; i < nbBits; i++ {
		bit, err := Alloc(frontend.Namespace(cs, fmt.Sprintf("bit %d", i)), hint(i))
		if err != nil {
			return nil, err
		}
		out[i] = bit
	}

	return out, nil
}
