// Package cs provides concrete constraint systems for the two synthesis
// passes a circuit goes through: a structure pass recording the shape of the
// system (ShapeCS) and a witness pass computing assignments (WitnessCS).
package cs

import (
	"fmt"
	"time"

	"github.com/varunthakore/bellpepper/field"
	"github.com/varunthakore/bellpepper/frontend"
	"github.com/varunthakore/bellpepper/logger"
)

type shapeConstraint[F field.Element[F]] struct {
	Name    string
	A, B, C frontend.LinearCombination[F]
}

// ShapeCS records the structure of a constraint system: allocation paths,
// named constraints with their full combinations, and counts. Value
// producers are never invoked, so gadgets observe absent hints during this
// pass.
type ShapeCS[F field.Element[F]] struct {
	inputs      []string
	aux         []string
	constraints []shapeConstraint[F]
}

// NewShape returns an empty shape whose input 0 is the constant one.
func NewShape[F field.Element[F]]() *ShapeCS[F] {
	return &ShapeCS[F]{inputs: []string{"ONE"}}
}

// Synthesize runs the circuit's structure pass and returns the recorded
// shape.
func Synthesize[F field.Element[F]](circuit frontend.Circuit[F]) (*ShapeCS[F], error) {
	log := logger.Logger()
	start := time.Now()

	shape := NewShape[F]()
	if err := circuit.Synthesize(shape); err != nil {
		return nil, err
	}

	log.Debug().
		Int("nbConstraints", shape.NbConstraints()).
		Int("nbInputs", shape.NbInputs()).
		Int("nbAux", shape.NbAux()).
		Dur("took", time.Since(start)).
		Msg("synthesized circuit shape")

	return shape, nil
}

// One implements frontend.ConstraintSystem.
func (cs *ShapeCS[F]) One() frontend.Variable {
	return frontend.Variable{Visibility: frontend.Input, Index: 0}
}

// Alloc implements frontend.ConstraintSystem. The producer is not invoked.
func (cs *ShapeCS[F]) Alloc(name string, _ func() (F, error)) (frontend.Variable, error) {
	v := frontend.Variable{Visibility: frontend.Aux, Index: len(cs.aux)}
	cs.aux = append(cs.aux, name)
	return v, nil
}

// AllocInput implements frontend.ConstraintSystem. The producer is not
// invoked.
func (cs *ShapeCS[F]) AllocInput(name string, _ func() (F, error)) (frontend.Variable, error) {
	v := frontend.Variable{Visibility: frontend.Input, Index: len(cs.inputs)}
	cs.inputs = append(cs.inputs, name)
	return v, nil
}

// Enforce implements frontend.ConstraintSystem.
func (cs *ShapeCS[F]) Enforce(name string, a, b, c frontend.LinearCombination[F]) {
	cs.constraints = append(cs.constraints, shapeConstraint[F]{Name: name, A: a, B: b, C: c})
}

// NbConstraints returns the number of recorded constraints.
func (cs *ShapeCS[F]) NbConstraints() int { return len(cs.constraints) }

// NbInputs returns the number of public inputs, the constant one included.
func (cs *ShapeCS[F]) NbInputs() int { return len(cs.inputs) }

// NbAux returns the number of private allocations.
func (cs *ShapeCS[F]) NbAux() int { return len(cs.aux) }

// ConstraintName returns the path of constraint i.
func (cs *ShapeCS[F]) ConstraintName(i int) string { return cs.constraints[i].Name }

// IsSolved checks the witness against every recorded constraint and returns
// an error naming the first violated one, or nil.
func (cs *ShapeCS[F]) IsSolved(witness *WitnessCS[F]) error {
	if len(witness.inputs) != len(cs.inputs) || len(witness.aux) != len(cs.aux) {
		return fmt.Errorf("%w: witness has %d inputs and %d aux, shape has %d and %d",
			frontend.ErrUnsatisfiable, len(witness.inputs), len(witness.aux), len(cs.inputs), len(cs.aux))
	}

	for _, c := range cs.constraints {
		a, err := evalLC(c.A, witness)
		if err != nil {
			return fmt.Errorf("constraint %q: %w", c.Name, err)
		}
		b, err := evalLC(c.B, witness)
		if err != nil {
			return fmt.Errorf("constraint %q: %w", c.Name, err)
		}
		rhs, err := evalLC(c.C, witness)
		if err != nil {
			return fmt.Errorf("constraint %q: %w", c.Name, err)
		}

		if !a.Mul(b).Equal(rhs) {
			return fmt.Errorf("constraint %q is not satisfied: %w", c.Name, frontend.ErrUnsatisfiable)
		}
	}

	return nil
}

func evalLC[F field.Element[F]](lc frontend.LinearCombination[F], witness *WitnessCS[F]) (F, error) {
	acc := field.Zero[F]()
	for _, t := range lc.Terms() {
		var v F
		switch t.Variable.Visibility {
		case frontend.Input:
			if t.Variable.Index >= len(witness.inputs) {
				return acc, fmt.Errorf("%w: no assignment for %s", frontend.ErrUnsatisfiable, t.Variable)
			}
			v = witness.inputs[t.Variable.Index]
		default:
			if t.Variable.Index >= len(witness.aux) {
				return acc, fmt.Errorf("%w: no assignment for %s", frontend.ErrUnsatisfiable, t.Variable)
			}
			v = witness.aux[t.Variable.Index]
		}
		acc = acc.Add(v.Mul(t.Coeff))
	}
	return acc, nil
}
