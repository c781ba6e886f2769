// Package frontend contains the contract between gadgets and the constraint
// systems they target: witness variables, linear combinations, and the
// allocation/enforcement interface circuits are synthesized against.
package frontend
