//go:build !debug

// Package debug holds build-time switches shared by all components.
package debug

// Debug is true when the binary is built with the debug tag. It keeps the
// global logger alive under `go test` and makes synthesis summaries chattier.
const Debug = false
