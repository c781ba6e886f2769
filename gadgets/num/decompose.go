package num

import (
	"fmt"
	"math/big"

	"github.com/bits-and-blooms/bitset"

	"github.com/varunthakore/bellpepper/field"
	"github.com/varunthakore/bellpepper/frontend"
	"github.com/varunthakore/bellpepper/gadgets/boolean"
)

// runState tracks where the strict decomposition walk stands relative to the
// bits of the bound.
type runState uint8

const (
	// before the bound's first set bit; nothing is allocated
	runLeadingZeros runState = iota
	// inside a run of set bound bits; witness bits allocate freely
	runOnes
	// inside unset bound bits after a fold; witness bits are conditioned on
	// the fold flag
	runZeros
)

// karyAnd folds a non-empty run of bits into a single flag by chaining
// two-input AND gates.
func karyAnd[F field.Element[F]](cs frontend.ConstraintSystem[F], v []boolean.AllocatedBit) (boolean.AllocatedBit, error) {
	if len(v) == 0 {
		panic("karyAnd over an empty run")
	}

	cur := v[0]
	for i := 1; i < len(v); i++ {
		var err error
		cur, err = boolean.BitAnd(frontend.Namespace(cs, fmt.Sprintf("and %d", i)), cur, v[i])
		if err != nil {
			return boolean.AllocatedBit{}, err
		}
	}

	return cur, nil
}

// packingConstraint registers 0 * 0 = Σ 2^i·bitᵢ - v over little-endian
// bits, forcing the weighted bit sum to reproduce v.
func packingConstraint[F field.Element[F]](cs frontend.ConstraintSystem[F], bits []boolean.AllocatedBit, v frontend.Variable) {
	lc := frontend.LinearCombination[F]{}
	coeff := field.One[F]()
	for _, bit := range bits {
		lc = lc.AddTerm(bit.Variable(), coeff)
		coeff = coeff.Double()
	}
	lc = lc.SubVariable(v)

	cs.Enforce("unpacking constraint",
		frontend.LinearCombination[F]{},
		frontend.LinearCombination[F]{},
		lc,
	)
}

// ToBitsLE unpacks n into little-endian booleans, each constrained to
// {0, 1} and tied back to n by a single packing constraint.
//
// The packing only holds modulo the characteristic: when the canonical
// value leaves headroom below 2^bits, the aliased representation
// value + characteristic also satisfies the constraints. Use
// ToBitsLEStrict when the decomposition must be canonical.
func (n AllocatedNum[F]) ToBitsLE(cs frontend.ConstraintSystem[F]) ([]boolean.Boolean, error) {
	bits, err := boolean.FieldIntoAllocatedBitsLE(cs, n.value)
	if err != nil {
		return nil, err
	}

	packingConstraint(cs, bits, n.variable)

	out := make([]boolean.Boolean, len(bits))
	for i, bit := range bits {
		out[i] = boolean.FromBit(bit)
	}
	return out, nil
}

// ToBitsLEStrict unpacks n into little-endian booleans whose big-endian
// reading is additionally proven no greater than the bits of
// (characteristic - 1), so the decomposition cannot alias past the field.
//
// The walk runs over the bound's bits from most significant to least. A run
// of set bound bits allocates witness bits freely. On each return to an
// unset bound bit the pending run is folded by k-ary AND, chained with the
// previous fold, into a flag meaning "the witness matched the bound on
// every set position so far"; while that flag holds there is no slack left
// and the unset position's witness bit is forced to zero.
func (n AllocatedNum[F]) ToBitsLEStrict(cs frontend.ConstraintSystem[F]) ([]boolean.Boolean, error) {
	bound := new(big.Int).Sub(field.Modulus[F](), big.NewInt(1))
	nbBits := field.BitLen[F]()

	var valueBits *bitset.BitSet
	if n.value != nil {
		valueBits = field.BitsLE(*n.value)
	}
	witnessBit := func(pos int) *bool {
		if valueBits == nil {
			return nil
		}
		b := valueBits.Test(uint(pos))
		return &b
	}

	var (
		state = runLeadingZeros
		run   []boolean.AllocatedBit // free bits since the last fold
		tied  *boolean.AllocatedBit  // fold flag; nil before the first fold
		i     int
	)
	result := make([]boolean.AllocatedBit, 0, nbBits)

	for pos := nbBits - 1; pos >= 0; pos-- {
		boundBit := bound.Bit(pos) == 1
		aBit := witnessBit(pos)

		if state == runLeadingZeros {
			if !boundBit {
				// above the bound's leading bit the witness has no room at all
				if aBit != nil && *aBit {
					panic("bit should not be set above the bound")
				}
				continue
			}
			state = runOnes
		}

		if boundBit {
			state = runOnes

			bit, err := boolean.Alloc(frontend.Namespace(cs, fmt.Sprintf("bit %d", i)), aBit)
			if err != nil {
				return nil, err
			}
			run = append(run, bit)
			result = append(result, bit)
		} else {
			if len(run) > 0 {
				// entering a run of zeros; fold what accumulated, carrying
				// the previous fold's flag into the conjunction
				if tied != nil {
					run = append(run, *tied)
				}
				flag, err := karyAnd(frontend.Namespace(cs, fmt.Sprintf("run ending at %d", i)), run)
				if err != nil {
					return nil, err
				}
				tied = &flag
				run = run[:0]
			}
			state = runZeros

			bit, err := boolean.AllocConditionally(frontend.Namespace(cs, fmt.Sprintf("bit %d", i)), aBit, *tied)
			if err != nil {
				return nil, err
			}
			result = append(result, bit)
		}

		i++
	}

	// an odd characteristic means the bound is even, so the walk always
	// ends in runZeros with the last run folded
	if len(run) != 0 {
		panic("run should be empty after walking the bound")
	}

	// result is big-endian; the packing and the return are little-endian
	for l, r := 0, len(result)-1; l < r; l, r = l+1, r-1 {
		result[l], result[r] = result[r], result[l]
	}

	packingConstraint(cs, result, n.variable)

	out := make([]boolean.Boolean, len(result))
	for j, bit := range result {
		out[j] = boolean.FromBit(bit)
	}
	return out, nil
}
