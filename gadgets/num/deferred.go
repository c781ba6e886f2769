package num

import (
	"github.com/varunthakore/bellpepper/field"
	"github.com/varunthakore/bellpepper/frontend"
	"github.com/varunthakore/bellpepper/gadgets/boolean"
)

// Num is a field value held as a pending linear combination. Accumulating
// into a Num never allocates a variable or registers a constraint;
// materializing the combination, typically as one side of a single
// constraint, is the caller's business.
//
// The zero value is an empty combination with no witness value. Zero
// returns the empty combination whose witness value is known to be zero.
type Num[F field.Element[F]] struct {
	value *F
	lc    frontend.LinearCombination[F]
}

// Zero returns the additive identity.
func Zero[F field.Element[F]]() Num[F] {
	zero := field.Zero[F]()
	return Num[F]{value: &zero}
}

// Num converts the allocated number into an accumulator over its single
// variable with coefficient one.
func (n AllocatedNum[F]) Num() Num[F] {
	return Num[F]{value: n.value, lc: frontend.FromVariable[F](n.variable)}
}

// Value returns the accumulated witness value. The second return is false
// when any contribution lacked one.
func (n Num[F]) Value() (F, bool) {
	if n.value == nil {
		return field.Zero[F](), false
	}
	return *n.value, true
}

// Lc returns the accumulated combination scaled by coeff.
func (n Num[F]) Lc(coeff F) frontend.LinearCombination[F] {
	return n.lc.Scale(coeff)
}

// AddBoolWithCoeff returns n + coeff·bit. one must be the constraint
// system's constant variable, used when bit contributes a constant or
// negated term.
func (n Num[F]) AddBoolWithCoeff(one frontend.Variable, bit boolean.Boolean, coeff F) Num[F] {
	var newValue *F
	if bval, ok := bit.Value(); n.value != nil && ok {
		tmp := *n.value
		if bval {
			tmp = tmp.Add(coeff)
		}
		newValue = &tmp
	}

	return Num[F]{
		value: newValue,
		lc:    n.lc.Add(boolean.Lc(bit, one, coeff)),
	}
}

// Add returns n + other, merging the two combinations term by term.
func (n Num[F]) Add(other Num[F]) Num[F] {
	var newValue *F
	if n.value != nil && other.value != nil {
		tmp := (*n.value).Add(*other.value)
		newValue = &tmp
	}

	return Num[F]{value: newValue, lc: n.lc.Add(other.lc)}
}

// Scale returns n with the value and every coefficient multiplied by
// scalar.
func (n Num[F]) Scale(scalar F) Num[F] {
	var newValue *F
	if n.value != nil {
		tmp := (*n.value).Mul(scalar)
		newValue = &tmp
	}

	return Num[F]{value: newValue, lc: n.lc.Scale(scalar)}
}
