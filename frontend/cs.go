package frontend

import "github.com/varunthakore/bellpepper/field"

// ConstraintSystem receives the variables and rank-1 constraints emitted
// while a circuit is synthesized. Implementations are strictly append-only:
// nothing registered is ever removed or rewritten.
type ConstraintSystem[F field.Element[F]] interface {
	// One returns the variable carrying the constant 1. It is always
	// Input(0).
	One() Variable

	// Alloc allocates a private variable whose assignment is resolved by
	// value. Implementations that track assignments call value exactly once
	// and fail the allocation with its error, retaining no binding;
	// structure-only implementations never call it.
	Alloc(name string, value func() (F, error)) (Variable, error)

	// AllocInput allocates a public-input variable. Same contract as Alloc.
	AllocInput(name string, value func() (F, error)) (Variable, error)

	// Enforce registers the constraint a * b = c.
	Enforce(name string, a, b, c LinearCombination[F])
}

// Circuit is implemented by circuit definitions. Synthesize allocates the
// circuit's variables and registers its constraints against cs; it is run
// once per constraint-system pass.
type Circuit[F field.Element[F]] interface {
	Synthesize(cs ConstraintSystem[F]) error
}

// Namespacer is implemented by constraint systems that track hierarchical
// names themselves, for example to validate segments or register namespace
// paths in a lookup table. Namespace defers to it when present.
type Namespacer[F field.Element[F]] interface {
	Namespace(name string) ConstraintSystem[F]
}

// Namespace returns a view of cs in which every allocation and constraint
// name is prefixed with name + "/". Namespaces nest, composing hierarchical
// paths such as "round 2/bit 7/boolean".
func Namespace[F field.Element[F]](cs ConstraintSystem[F], name string) ConstraintSystem[F] {
	if n, ok := cs.(Namespacer[F]); ok {
		return n.Namespace(name)
	}
	return &namespaced[F]{inner: cs, prefix: name + "/"}
}

type namespaced[F field.Element[F]] struct {
	inner  ConstraintSystem[F]
	prefix string
}

func (n *namespaced[F]) One() Variable {
	return n.inner.One()
}

func (n *namespaced[F]) Alloc(name string, value func() (F, error)) (Variable, error) {
	return n.inner.Alloc(n.prefix+name, value)
}

func (n *namespaced[F]) AllocInput(name string, value func() (F, error)) (Variable, error) {
	return n.inner.AllocInput(n.prefix+name, value)
}

func (n *namespaced[F]) Enforce(name string, a, b, c LinearCombination[F]) {
	n.inner.Enforce(n.prefix+name, a, b, c)
}
