// Package num implements gadgets representing numbers in the scalar field of
// the underlying curve.
//
// An AllocatedNum carries a field value bound to exactly one witness
// variable. Arithmetic on allocated numbers emits the rank-1 constraints
// binding each result to its operands, so a satisfying assignment can only
// extend the arithmetic actually performed. A Num accumulates weighted
// contributions as a pending linear combination instead, deferring any
// allocation to its caller.
package num

import (
	"github.com/varunthakore/bellpepper/field"
	"github.com/varunthakore/bellpepper/frontend"
	"github.com/varunthakore/bellpepper/gadgets/boolean"
)

// AllocatedNum is a field value bound to one witness variable. Instances are
// immutable; operations return fresh values.
type AllocatedNum[F field.Element[F]] struct {
	value    *F
	variable frontend.Variable
}

// Alloc allocates a private variable resolved by value. If value fails, the
// allocation fails with its error and no binding is retained.
func Alloc[F field.Element[F]](cs frontend.ConstraintSystem[F], value func() (F, error)) (AllocatedNum[F], error) {
	var newValue *F

	v, err := cs.Alloc("num", func() (F, error) {
		tmp, err := value()
		if err != nil {
			return field.Zero[F](), err
		}
		newValue = &tmp
		return tmp, nil
	})
	if err != nil {
		return AllocatedNum[F]{}, err
	}

	return AllocatedNum[F]{value: newValue, variable: v}, nil
}

// MustAlloc allocates with an infallible value getter, panicking if the
// constraint system itself rejects the allocation.
func MustAlloc[F field.Element[F]](cs frontend.ConstraintSystem[F], value func() F) AllocatedNum[F] {
	n, err := Alloc(cs, func() (F, error) { return value(), nil })
	if err != nil {
		panic(err)
	}
	return n
}

// AllocInput allocates a public-input variable resolved by value.
func AllocInput[F field.Element[F]](cs frontend.ConstraintSystem[F], value func() (F, error)) (AllocatedNum[F], error) {
	var newValue *F

	v, err := cs.AllocInput("input num", func() (F, error) {
		tmp, err := value()
		if err != nil {
			return field.Zero[F](), err
		}
		newValue = &tmp
		return tmp, nil
	})
	if err != nil {
		return AllocatedNum[F]{}, err
	}

	return AllocatedNum[F]{value: newValue, variable: v}, nil
}

// AllocMaybeInput allocates either a public input (isInput true) or a
// private variable. This allows uniform creation of components which may or
// may not be public inputs.
func AllocMaybeInput[F field.Element[F]](cs frontend.ConstraintSystem[F], isInput bool, value func() (F, error)) (AllocatedNum[F], error) {
	if isInput {
		return AllocInput(cs, value)
	}
	return Alloc(cs, value)
}

// Inputize allocates a public input constrained equal to n, promoting its
// value to the public transcript without changing n's identity in
// downstream arithmetic.
func (n AllocatedNum[F]) Inputize(cs frontend.ConstraintSystem[F]) error {
	input, err := cs.AllocInput("input variable", func() (F, error) {
		if n.value == nil {
			return field.Zero[F](), frontend.ErrAssignmentMissing
		}
		return *n.value, nil
	})
	if err != nil {
		return err
	}

	cs.Enforce("enforce input is correct",
		frontend.FromVariable[F](input),
		frontend.FromVariable[F](cs.One()),
		frontend.FromVariable[F](n.variable),
	)

	return nil
}

// Add returns n + other.
func (n AllocatedNum[F]) Add(cs frontend.ConstraintSystem[F], other AllocatedNum[F]) (AllocatedNum[F], error) {
	var value *F

	v, err := cs.Alloc("sum num", func() (F, error) {
		if n.value == nil || other.value == nil {
			return field.Zero[F](), frontend.ErrAssignmentMissing
		}
		tmp := (*n.value).Add(*other.value)
		value = &tmp
		return tmp, nil
	})
	if err != nil {
		return AllocatedNum[F]{}, err
	}

	// Constrain: (a + b) * 1 = a + b
	cs.Enforce("addition constraint",
		frontend.FromVariable[F](n.variable).AddVariable(other.variable),
		frontend.FromVariable[F](cs.One()),
		frontend.FromVariable[F](v),
	)

	return AllocatedNum[F]{value: value, variable: v}, nil
}

// Sub returns n - other.
func (n AllocatedNum[F]) Sub(cs frontend.ConstraintSystem[F], other AllocatedNum[F]) (AllocatedNum[F], error) {
	var value *F

	v, err := cs.Alloc("sub num", func() (F, error) {
		if n.value == nil || other.value == nil {
			return field.Zero[F](), frontend.ErrAssignmentMissing
		}
		tmp := (*n.value).Sub(*other.value)
		value = &tmp
		return tmp, nil
	})
	if err != nil {
		return AllocatedNum[F]{}, err
	}

	// Constrain: (a - b) * 1 = a - b
	cs.Enforce("subtraction constraint",
		frontend.FromVariable[F](n.variable).SubVariable(other.variable),
		frontend.FromVariable[F](cs.One()),
		frontend.FromVariable[F](v),
	)

	return AllocatedNum[F]{value: value, variable: v}, nil
}

// Neg returns -n.
func (n AllocatedNum[F]) Neg(cs frontend.ConstraintSystem[F]) (AllocatedNum[F], error) {
	var value *F

	v, err := cs.Alloc("neg num", func() (F, error) {
		if n.value == nil {
			return field.Zero[F](), frontend.ErrAssignmentMissing
		}
		tmp := (*n.value).Neg()
		value = &tmp
		return tmp, nil
	})
	if err != nil {
		return AllocatedNum[F]{}, err
	}

	// Constrain: (a + neg) = 0
	cs.Enforce("negation constraint",
		frontend.LinearCombination[F]{},
		frontend.LinearCombination[F]{},
		frontend.FromVariable[F](n.variable).AddVariable(v),
	)

	return AllocatedNum[F]{value: value, variable: v}, nil
}

// Mul returns n * other.
func (n AllocatedNum[F]) Mul(cs frontend.ConstraintSystem[F], other AllocatedNum[F]) (AllocatedNum[F], error) {
	var value *F

	v, err := cs.Alloc("product num", func() (F, error) {
		if n.value == nil || other.value == nil {
			return field.Zero[F](), frontend.ErrAssignmentMissing
		}
		tmp := (*n.value).Mul(*other.value)
		value = &tmp
		return tmp, nil
	})
	if err != nil {
		return AllocatedNum[F]{}, err
	}

	// Constrain: a * b = ab
	cs.Enforce("multiplication constraint",
		frontend.FromVariable[F](n.variable),
		frontend.FromVariable[F](other.variable),
		frontend.FromVariable[F](v),
	)

	return AllocatedNum[F]{value: value, variable: v}, nil
}

// Div returns n * other⁻¹. A zero divisor hint fails with
// frontend.ErrDivisionByZero.
func (n AllocatedNum[F]) Div(cs frontend.ConstraintSystem[F], other AllocatedNum[F]) (AllocatedNum[F], error) {
	var value *F

	v, err := cs.Alloc("div num", func() (F, error) {
		if n.value == nil || other.value == nil {
			return field.Zero[F](), frontend.ErrAssignmentMissing
		}
		if (*other.value).IsZero() {
			return field.Zero[F](), frontend.ErrDivisionByZero
		}
		tmp := (*n.value).Mul((*other.value).Inverse())
		value = &tmp
		return tmp, nil
	})
	if err != nil {
		return AllocatedNum[F]{}, err
	}

	// Constrain: result * b = a
	cs.Enforce("division constraint",
		frontend.FromVariable[F](v),
		frontend.FromVariable[F](other.variable),
		frontend.FromVariable[F](n.variable),
	)

	return AllocatedNum[F]{value: value, variable: v}, nil
}

// Square returns n * n.
func (n AllocatedNum[F]) Square(cs frontend.ConstraintSystem[F]) (AllocatedNum[F], error) {
	var value *F

	v, err := cs.Alloc("squared num", func() (F, error) {
		if n.value == nil {
			return field.Zero[F](), frontend.ErrAssignmentMissing
		}
		tmp := (*n.value).Square()
		value = &tmp
		return tmp, nil
	})
	if err != nil {
		return AllocatedNum[F]{}, err
	}

	// Constrain: a * a = aa
	cs.Enforce("squaring constraint",
		frontend.FromVariable[F](n.variable),
		frontend.FromVariable[F](n.variable),
		frontend.FromVariable[F](v),
	)

	return AllocatedNum[F]{value: value, variable: v}, nil
}

// AssertNonzero constrains n to be invertible. A zero hint fails with
// frontend.ErrDivisionByZero before the constraint is registered.
func (n AllocatedNum[F]) AssertNonzero(cs frontend.ConstraintSystem[F]) error {
	inv, err := cs.Alloc("ephemeral inverse", func() (F, error) {
		if n.value == nil {
			return field.Zero[F](), frontend.ErrAssignmentMissing
		}
		if (*n.value).IsZero() {
			return field.Zero[F](), frontend.ErrDivisionByZero
		}
		return (*n.value).Inverse(), nil
	})
	if err != nil {
		return err
	}

	// Constrain a * inv = 1, which is only valid iff a has a multiplicative
	// inverse, untrue for zero.
	cs.Enforce("nonzero assertion constraint",
		frontend.FromVariable[F](n.variable),
		frontend.FromVariable[F](inv),
		frontend.FromVariable[F](cs.One()),
	)

	return nil
}

// IsZero returns the bit n == 0. The receiver's hint must be present; a
// structure-only pass fails with frontend.ErrAssignmentMissing.
func (n AllocatedNum[F]) IsZero(cs frontend.ConstraintSystem[F]) (boolean.Boolean, error) {
	if n.value == nil {
		return boolean.Boolean{}, frontend.ErrAssignmentMissing
	}
	outHint := (*n.value).IsZero()

	out, err := boolean.Alloc(frontend.Namespace(cs, "out bit"), &outHint)
	if err != nil {
		return boolean.Boolean{}, err
	}

	multiplier, err := Alloc(frontend.Namespace(cs, "zero or inverse"), func() (F, error) {
		if (*n.value).IsZero() {
			return field.Zero[F](), nil
		}
		return (*n.value).Inverse(), nil
	})
	if err != nil {
		return boolean.Boolean{}, err
	}

	// If n ≠ 0 the second constraint forces out = 0 and the first is met by
	// the inverse; if n = 0 the first forces out = 1 whatever the
	// multiplier. Either way out is pinned to (n == 0).
	cs.Enforce("multiplier * input === 1 - out",
		frontend.FromVariable[F](multiplier.variable),
		frontend.FromVariable[F](n.variable),
		frontend.FromVariable[F](cs.One()).SubVariable(out.Variable()),
	)

	cs.Enforce("out * input === 0",
		frontend.FromVariable[F](out.Variable()),
		frontend.FromVariable[F](n.variable),
		frontend.LinearCombination[F]{},
	)

	return boolean.FromBit(out), nil
}

// IsEqual returns the bit n == other.
func (n AllocatedNum[F]) IsEqual(cs frontend.ConstraintSystem[F], other AllocatedNum[F]) (boolean.Boolean, error) {
	diff, err := n.Sub(frontend.Namespace(cs, "self-other"), other)
	if err != nil {
		return boolean.Boolean{}, err
	}
	return diff.IsZero(cs)
}

// ConditionallySelect returns a when condition is false, and b otherwise.
func ConditionallySelect[F field.Element[F]](cs frontend.ConstraintSystem[F], a, b AllocatedNum[F], condition boolean.Boolean) (AllocatedNum[F], error) {
	c, err := Alloc(frontend.Namespace(cs, "alloc output"), func() (F, error) {
		cond, ok := condition.Value()
		if !ok {
			return field.Zero[F](), frontend.ErrAssignmentMissing
		}
		if cond {
			if b.value == nil {
				return field.Zero[F](), frontend.ErrAssignmentMissing
			}
			return *b.value, nil
		}
		if a.value == nil {
			return field.Zero[F](), frontend.ErrAssignmentMissing
		}
		return *a.value, nil
	})
	if err != nil {
		return AllocatedNum[F]{}, err
	}

	cs.Enforce("condition * (a - b) === a - c",
		boolean.Lc(condition, cs.One(), field.One[F]()),
		frontend.FromVariable[F](a.variable).SubVariable(b.variable),
		frontend.FromVariable[F](a.variable).SubVariable(c.variable),
	)

	return c, nil
}

// ConditionallyReverse returns (b, a) when condition is true, and (a, b)
// otherwise.
func ConditionallyReverse[F field.Element[F]](cs frontend.ConstraintSystem[F], a, b AllocatedNum[F], condition boolean.Boolean) (AllocatedNum[F], AllocatedNum[F], error) {
	c, err := Alloc(frontend.Namespace(cs, "conditional reversal result 1"), func() (F, error) {
		cond, ok := condition.Value()
		if !ok {
			return field.Zero[F](), frontend.ErrAssignmentMissing
		}
		if cond {
			if b.value == nil {
				return field.Zero[F](), frontend.ErrAssignmentMissing
			}
			return *b.value, nil
		}
		if a.value == nil {
			return field.Zero[F](), frontend.ErrAssignmentMissing
		}
		return *a.value, nil
	})
	if err != nil {
		return AllocatedNum[F]{}, AllocatedNum[F]{}, err
	}

	cs.Enforce("first conditional reversal",
		frontend.FromVariable[F](a.variable).SubVariable(b.variable),
		boolean.Lc(condition, cs.One(), field.One[F]()),
		frontend.FromVariable[F](a.variable).SubVariable(c.variable),
	)

	d, err := Alloc(frontend.Namespace(cs, "conditional reversal result 2"), func() (F, error) {
		cond, ok := condition.Value()
		if !ok {
			return field.Zero[F](), frontend.ErrAssignmentMissing
		}
		if cond {
			if a.value == nil {
				return field.Zero[F](), frontend.ErrAssignmentMissing
			}
			return *a.value, nil
		}
		if b.value == nil {
			return field.Zero[F](), frontend.ErrAssignmentMissing
		}
		return *b.value, nil
	})
	if err != nil {
		return AllocatedNum[F]{}, AllocatedNum[F]{}, err
	}

	cs.Enforce("second conditional reversal",
		frontend.FromVariable[F](b.variable).SubVariable(a.variable),
		boolean.Lc(condition, cs.One(), field.One[F]()),
		frontend.FromVariable[F](b.variable).SubVariable(d.variable),
	)

	return c, d, nil
}

// MuxTree selects one of the 2^k inputs using k selector bits, the first bit
// taken as the highest order, building a balanced network of selects. A
// selector/input count mismatch fails with frontend.ErrUnsatisfiable before
// any constraint is registered.
func MuxTree[F field.Element[F]](cs frontend.ConstraintSystem[F], selectBits []boolean.Boolean, inputs []AllocatedNum[F]) (AllocatedNum[F], error) {
	if len(selectBits) == 0 {
		if len(inputs) != 1 {
			return AllocatedNum[F]{}, frontend.ErrUnsatisfiable
		}
		return inputs[0], nil
	}

	if len(inputs)%2 != 0 {
		return AllocatedNum[F]{}, frontend.ErrUnsatisfiable
	}

	bit, rest := selectBits[0], selectBits[1:]
	half := len(inputs) / 2

	left, err := MuxTree(frontend.Namespace(cs, "left"), rest, inputs[:half])
	if err != nil {
		return AllocatedNum[F]{}, err
	}
	right, err := MuxTree(frontend.Namespace(cs, "right"), rest, inputs[half:])
	if err != nil {
		return AllocatedNum[F]{}, err
	}

	return ConditionallySelect(frontend.Namespace(cs, "join"), left, right, bit)
}

// Value returns the witness value. The second return is false when the hint
// is absent.
func (n AllocatedNum[F]) Value() (F, bool) {
	if n.value == nil {
		return field.Zero[F](), false
	}
	return *n.value, true
}

// Variable returns the witness variable backing n.
func (n AllocatedNum[F]) Variable() frontend.Variable {
	return n.variable
}
