// Package test provides an oracle constraint system for gadget tests. It
// records every allocation and constraint behind a full path registry, so a
// test can read an assignment, corrupt it, and ask which constraint breaks.
package test

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/varunthakore/bellpepper/field"
	"github.com/varunthakore/bellpepper/frontend"
	"github.com/varunthakore/bellpepper/logger"
)

type objectKind uint8

const (
	objectVariable objectKind = iota
	objectConstraint
	objectNamespace
)

type namedObject struct {
	kind       objectKind
	variable   frontend.Variable
	constraint int
}

type assignment[F field.Element[F]] struct {
	value F
	path  string
}

type constraint[F field.Element[F]] struct {
	a, b, c frontend.LinearCombination[F]
	path    string
}

// ConstraintSystem is the oracle. Producers run eagerly, every path must be
// unique, and names must not contain '/'.
type ConstraintSystem[F field.Element[F]] struct {
	namedObjects map[string]namedObject
	constraints  []constraint[F]
	inputs       []assignment[F]
	aux          []assignment[F]
}

// NewConstraintSystem returns an oracle whose input 0 is the constant one,
// registered at path "ONE".
func NewConstraintSystem[F field.Element[F]]() *ConstraintSystem[F] {
	cs := &ConstraintSystem[F]{
		namedObjects: make(map[string]namedObject),
		inputs:       []assignment[F]{{value: field.One[F](), path: "ONE"}},
	}
	cs.namedObjects["ONE"] = namedObject{
		kind:     objectVariable,
		variable: frontend.Variable{Visibility: frontend.Input, Index: 0},
	}
	return cs
}

func computePath(ns, name string) string {
	if strings.Contains(name, "/") {
		panic(fmt.Sprintf("'/' is not allowed in names: %q", name))
	}
	if ns == "" {
		return name
	}
	return ns + "/" + name
}

func (cs *ConstraintSystem[F]) setNamed(path string, obj namedObject) {
	if _, ok := cs.namedObjects[path]; ok {
		panic(fmt.Sprintf("tried to create object at existing path: %s", path))
	}
	cs.namedObjects[path] = obj
}

func (cs *ConstraintSystem[F]) alloc(ns, name string, value func() (F, error)) (frontend.Variable, error) {
	path := computePath(ns, name)
	v, err := value()
	if err != nil {
		return frontend.Variable{}, err
	}

	variable := frontend.Variable{Visibility: frontend.Aux, Index: len(cs.aux)}
	cs.aux = append(cs.aux, assignment[F]{value: v, path: path})
	cs.setNamed(path, namedObject{kind: objectVariable, variable: variable})
	return variable, nil
}

func (cs *ConstraintSystem[F]) allocInput(ns, name string, value func() (F, error)) (frontend.Variable, error) {
	path := computePath(ns, name)
	v, err := value()
	if err != nil {
		return frontend.Variable{}, err
	}

	variable := frontend.Variable{Visibility: frontend.Input, Index: len(cs.inputs)}
	cs.inputs = append(cs.inputs, assignment[F]{value: v, path: path})
	cs.setNamed(path, namedObject{kind: objectVariable, variable: variable})
	return variable, nil
}

func (cs *ConstraintSystem[F]) enforce(ns, name string, a, b, c frontend.LinearCombination[F]) {
	path := computePath(ns, name)
	cs.setNamed(path, namedObject{kind: objectConstraint, constraint: len(cs.constraints)})
	cs.constraints = append(cs.constraints, constraint[F]{a: a, b: b, c: c, path: path})
}

func (cs *ConstraintSystem[F]) namespace(ns, name string) string {
	path := computePath(ns, name)
	cs.setNamed(path, namedObject{kind: objectNamespace})
	return path
}

// One implements frontend.ConstraintSystem.
func (cs *ConstraintSystem[F]) One() frontend.Variable {
	return frontend.Variable{Visibility: frontend.Input, Index: 0}
}

// Alloc implements frontend.ConstraintSystem.
func (cs *ConstraintSystem[F]) Alloc(name string, value func() (F, error)) (frontend.Variable, error) {
	return cs.alloc("", name, value)
}

// AllocInput implements frontend.ConstraintSystem.
func (cs *ConstraintSystem[F]) AllocInput(name string, value func() (F, error)) (frontend.Variable, error) {
	return cs.allocInput("", name, value)
}

// Enforce implements frontend.ConstraintSystem.
func (cs *ConstraintSystem[F]) Enforce(name string, a, b, c frontend.LinearCombination[F]) {
	cs.enforce("", name, a, b, c)
}

// Namespace implements frontend.Namespacer, registering the namespace path
// itself so name collisions across kinds are caught.
func (cs *ConstraintSystem[F]) Namespace(name string) frontend.ConstraintSystem[F] {
	return &view[F]{cs: cs, path: cs.namespace("", name)}
}

// view is the oracle scoped under a namespace path.
type view[F field.Element[F]] struct {
	cs   *ConstraintSystem[F]
	path string
}

func (v *view[F]) One() frontend.Variable {
	return v.cs.One()
}

func (v *view[F]) Alloc(name string, value func() (F, error)) (frontend.Variable, error) {
	return v.cs.alloc(v.path, name, value)
}

func (v *view[F]) AllocInput(name string, value func() (F, error)) (frontend.Variable, error) {
	return v.cs.allocInput(v.path, name, value)
}

func (v *view[F]) Enforce(name string, a, b, c frontend.LinearCombination[F]) {
	v.cs.enforce(v.path, name, a, b, c)
}

func (v *view[F]) Namespace(name string) frontend.ConstraintSystem[F] {
	return &view[F]{cs: v.cs, path: v.cs.namespace(v.path, name)}
}

func (cs *ConstraintSystem[F]) evalLC(lc frontend.LinearCombination[F]) F {
	acc := field.Zero[F]()
	for _, t := range lc.Terms() {
		var v F
		switch t.Variable.Visibility {
		case frontend.Input:
			v = cs.inputs[t.Variable.Index].value
		default:
			v = cs.aux[t.Variable.Index].value
		}
		acc = acc.Add(v.Mul(t.Coeff))
	}
	return acc
}

// WhichIsUnsatisfied returns the path of the first violated constraint. The
// second return is false when every constraint holds.
func (cs *ConstraintSystem[F]) WhichIsUnsatisfied() (string, bool) {
	log := logger.Logger()
	for _, c := range cs.constraints {
		a := cs.evalLC(c.a)
		b := cs.evalLC(c.b)
		product := a.Mul(b)
		rhs := cs.evalLC(c.c)

		if !product.Equal(rhs) {
			log.Debug().
				Str("constraint", c.path).
				Str("a", a.String()).
				Str("b", b.String()).
				Str("c", rhs.String()).
				Msg("unsatisfied constraint")
			return c.path, true
		}
	}
	return "", false
}

// IsSatisfied reports whether every constraint holds under the current
// assignments.
func (cs *ConstraintSystem[F]) IsSatisfied() bool {
	_, unsatisfied := cs.WhichIsUnsatisfied()
	return !unsatisfied
}

// Verify reports whether the public inputs, the constant one excluded,
// equal expected and every constraint holds.
func (cs *ConstraintSystem[F]) Verify(expected []F) bool {
	if len(expected)+1 != len(cs.inputs) {
		return false
	}
	for i, v := range expected {
		if !cs.inputs[i+1].value.Equal(v) {
			return false
		}
	}
	return cs.IsSatisfied()
}

// Get returns the assignment of the variable registered at path, panicking
// when the path is unknown or holds a non-variable.
func (cs *ConstraintSystem[F]) Get(path string) F {
	obj, ok := cs.namedObjects[path]
	if !ok {
		panic(fmt.Sprintf("no variable exists at path: %s", path))
	}
	if obj.kind != objectVariable {
		panic(fmt.Sprintf("tried to get value of path %q, which is not a variable", path))
	}

	switch obj.variable.Visibility {
	case frontend.Input:
		return cs.inputs[obj.variable.Index].value
	default:
		return cs.aux[obj.variable.Index].value
	}
}

// Set overwrites the assignment of the variable registered at path,
// panicking when the path is unknown or holds a non-variable.
func (cs *ConstraintSystem[F]) Set(path string, to F) {
	obj, ok := cs.namedObjects[path]
	if !ok {
		panic(fmt.Sprintf("no variable exists at path: %s", path))
	}
	if obj.kind != objectVariable {
		panic(fmt.Sprintf("tried to set value of path %q, which is not a variable", path))
	}

	switch obj.variable.Visibility {
	case frontend.Input:
		cs.inputs[obj.variable.Index].value = to
	default:
		cs.aux[obj.variable.Index].value = to
	}
}

// NbConstraints returns the number of registered constraints.
func (cs *ConstraintSystem[F]) NbConstraints() int { return len(cs.constraints) }

// NbInputs returns the number of public inputs, the constant one included.
func (cs *ConstraintSystem[F]) NbInputs() int { return len(cs.inputs) }

// NbAux returns the number of private allocations.
func (cs *ConstraintSystem[F]) NbAux() int { return len(cs.aux) }

// PrettyPrint renders every constraint as "path: (a) * (b) = (c)", one per
// line in registration order.
func (cs *ConstraintSystem[F]) PrettyPrint() string {
	var sb strings.Builder
	for _, c := range cs.constraints {
		fmt.Fprintf(&sb, "%s: (%s) * (%s) = (%s)\n", c.path, c.a, c.b, c.c)
	}
	return sb.String()
}

// Digest returns the BLAKE2b-256 hash of the recorded structure and
// assignments.
func (cs *ConstraintSystem[F]) Digest() [32]byte {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err)
	}

	writeAssignments := func(assignments []assignment[F]) {
		for _, a := range assignments {
			io.WriteString(h, a.path)
			h.Write(a.value.Bytes())
		}
	}
	writeLC := func(lc frontend.LinearCombination[F]) {
		for _, t := range lc.Terms() {
			io.WriteString(h, t.Variable.String())
			h.Write(t.Coeff.Bytes())
		}
		io.WriteString(h, "|")
	}

	writeAssignments(cs.inputs)
	writeAssignments(cs.aux)
	for _, c := range cs.constraints {
		io.WriteString(h, c.path)
		writeLC(c.a)
		writeLC(c.b)
		writeLC(c.c)
	}

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
