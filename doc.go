// Package bellpepper provides a typed gadget layer for building R1CS
// arithmetic circuits over prime scalar fields.
//
// Circuits are synthesized against the frontend.ConstraintSystem interface.
// The gadgets packages offer allocated numbers, booleans and canonical bit
// decomposition; the cs package provides the structure and witness passes;
// the test package provides an oracle system for gadget tests.
package bellpepper

import "github.com/blang/semver/v4"

// Version of the library.
var Version = semver.MustParse("0.1.0")
