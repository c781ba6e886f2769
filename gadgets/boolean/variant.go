package boolean

import (
	"github.com/varunthakore/bellpepper/field"
	"github.com/varunthakore/bellpepper/frontend"
)

type booleanKind uint8

const (
	booleanConstant booleanKind = iota
	booleanIs
	booleanNot
)

// Boolean is the closed set of 0/1 values a gadget consumes: a literal
// constant, an allocated bit, or the negation of an allocated bit.
type Boolean struct {
	kind     booleanKind
	bit      AllocatedBit
	constant bool
}

// Constant returns the literal boolean b.
func Constant(b bool) Boolean {
	return Boolean{kind: booleanConstant, constant: b}
}

// FromBit wraps an allocated bit.
func FromBit(bit AllocatedBit) Boolean {
	return Boolean{kind: booleanIs, bit: bit}
}

// Not returns the logical negation of b. No constraint is emitted.
func (b Boolean) Not() Boolean {
	switch b.kind {
	case booleanConstant:
		return Boolean{kind: booleanConstant, constant: !b.constant}
	case booleanIs:
		return Boolean{kind: booleanNot, bit: b.bit}
	default:
		return Boolean{kind: booleanIs, bit: b.bit}
	}
}

// IsConstant reports whether b is a literal.
func (b Boolean) IsConstant() bool {
	return b.kind == booleanConstant
}

// Bit returns the underlying allocated bit when b is a plain, non-negated
// witness bit.
func (b Boolean) Bit() (AllocatedBit, bool) {
	if b.kind != booleanIs {
		return AllocatedBit{}, false
	}
	//
	return b.bit, true
}

// Value returns b's witness value. The second return is false when the hint
// is absent.
func (b Boolean) Value() (bool, bool) {
	switch b.kind {
	case booleanConstant:
		return b.constant, true
	case booleanIs:
		return b.bit.Value()
	default:
		v, ok := b.bit.Value()
		return !v, ok
	}
}

// Lc returns coeff·b as a linear combination over the one variable and, for
// witness-backed booleans, the underlying bit variable.
func Lc[F field.Element[F]](b Boolean, one frontend.Variable, coeff F) frontend.LinearCombination[F] {
	switch b.kind {
	case booleanConstant:
		if b.constant {
			return frontend.LinearCombination[F]{}.AddTerm(one, coeff)
		}
		return frontend.LinearCombination[F]{}
	case booleanIs:
		return frontend.LinearCombination[F]{}.AddTerm(b.bit.variable, coeff)
	default:
		// coeff·(1 - bit)
		return frontend.LinearCombination[F]{}.AddTerm(one, coeff).AddTerm(b.bit.variable, coeff.Neg())
	}
}

// And returns a AND b. Constants short-circuit for free; witness-backed
// operands cost one constraint through the gate matching their variants.
func And[F field.Element[F]](cs frontend.ConstraintSystem[F], a, b Boolean) (Boolean, error) {
	if a.kind == booleanConstant {
		if !a.constant {
			return Constant(false), nil
		}
		return b, nil
	}
	if b.kind == booleanConstant {
		if !b.constant {
			return Constant(false), nil
		}
		return a, nil
	}

	var (
		res AllocatedBit
		err error
	)
	switch {
	case a.kind == booleanIs && b.kind == booleanIs:
		res, err = BitAnd(cs, a.bit, b.bit)
	case a.kind == booleanIs && b.kind == booleanNot:
		res, err = BitAndNot(cs, a.bit, b.bit)
	case a.kind == booleanNot && b.kind == booleanIs:
		res, err = BitAndNot(cs, b.bit, a.bit)
	default:
		res, err = BitNor(cs, a.bit, b.bit)
	}
	if err != nil {
		return Boolean{}, err
	}

	return FromBit(res), nil
}

// Xor returns a XOR b. Constants short-circuit for free; witness-backed
// operands cost one xor gate, negations folding into the result variant.
func Xor[F field.Element[F]](cs frontend.ConstraintSystem[F], a, b Boolean) (Boolean, error) {
	if a.kind == booleanConstant {
		if a.constant {
			return b.Not(), nil
		}
		return b, nil
	}
	if b.kind == booleanConstant {
		if b.constant {
			return a.Not(), nil
		}
		return a, nil
	}

	res, err := BitXor(cs, a.bit, b.bit)
	if err != nil {
		return Boolean{}, err
	}

	// a ⊕ ¬b = ¬(a ⊕ b); double negation cancels
	if (a.kind == booleanNot) != (b.kind == booleanNot) {
		return FromBit(res).Not(), nil
	}
	return FromBit(res), nil
}
