package frontend

import "errors"

// Synthesis failures surface as one of these sentinels. Errors returned by a
// caller-supplied value producer are the one exception: they propagate
// through Alloc verbatim, without wrapping.
var (
	// ErrAssignmentMissing reports that a value hint was required but at
	// least one contributing hint was absent. This only happens in passes
	// that build structure without concrete witnesses.
	ErrAssignmentMissing = errors.New("an assignment for a variable could not be computed")

	// ErrDivisionByZero reports that a hint computation demanded the inverse
	// of zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrUnsatisfiable reports a structural impossibility, detected before
	// any constraint is registered.
	ErrUnsatisfiable = errors.New("unsatisfiable constraint system")
)
