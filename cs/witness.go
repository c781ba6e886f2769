package cs

import (
	"time"

	"github.com/varunthakore/bellpepper/field"
	"github.com/varunthakore/bellpepper/frontend"
	"github.com/varunthakore/bellpepper/logger"
)

// WitnessCS computes the assignment vectors of a circuit: every value
// producer runs, every result is stored, and constraints are discarded.
type WitnessCS[F field.Element[F]] struct {
	inputs []F
	aux    []F
}

// NewWitness returns an empty witness whose input 0 is the constant one.
func NewWitness[F field.Element[F]]() *WitnessCS[F] {
	return &WitnessCS[F]{inputs: []F{field.One[F]()}}
}

// SynthesizeWitness runs the circuit's witness pass and returns the
// assignments.
func SynthesizeWitness[F field.Element[F]](circuit frontend.Circuit[F]) (*WitnessCS[F], error) {
	log := logger.Logger()
	start := time.Now()

	witness := NewWitness[F]()
	if err := circuit.Synthesize(witness); err != nil {
		return nil, err
	}

	log.Debug().
		Int("nbInputs", len(witness.inputs)).
		Int("nbAux", len(witness.aux)).
		Dur("took", time.Since(start)).
		Msg("synthesized witness")

	return witness, nil
}

// One implements frontend.ConstraintSystem.
func (cs *WitnessCS[F]) One() frontend.Variable {
	return frontend.Variable{Visibility: frontend.Input, Index: 0}
}

// Alloc implements frontend.ConstraintSystem, invoking the producer
// immediately.
func (cs *WitnessCS[F]) Alloc(_ string, value func() (F, error)) (frontend.Variable, error) {
	v, err := value()
	if err != nil {
		return frontend.Variable{}, err
	}

	variable := frontend.Variable{Visibility: frontend.Aux, Index: len(cs.aux)}
	cs.aux = append(cs.aux, v)
	return variable, nil
}

// AllocInput implements frontend.ConstraintSystem, invoking the producer
// immediately.
func (cs *WitnessCS[F]) AllocInput(_ string, value func() (F, error)) (frontend.Variable, error) {
	v, err := value()
	if err != nil {
		return frontend.Variable{}, err
	}

	variable := frontend.Variable{Visibility: frontend.Input, Index: len(cs.inputs)}
	cs.inputs = append(cs.inputs, v)
	return variable, nil
}

// Enforce implements frontend.ConstraintSystem as a no-op; the witness pass
// has no use for constraints.
func (cs *WitnessCS[F]) Enforce(_ string, _, _, _ frontend.LinearCombination[F]) {}

// PublicInputs returns the public inputs in allocation order, the constant
// one excluded.
func (cs *WitnessCS[F]) PublicInputs() []F {
	out := make([]F, len(cs.inputs)-1)
	copy(out, cs.inputs[1:])
	return out
}

// Assignments returns copies of the full input and aux vectors.
func (cs *WitnessCS[F]) Assignments() (inputs, aux []F) {
	inputs = make([]F, len(cs.inputs))
	copy(inputs, cs.inputs)
	aux = make([]F, len(cs.aux))
	copy(aux, cs.aux)
	return inputs, aux
}
