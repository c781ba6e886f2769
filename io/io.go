// Package io offers file serialization helpers for bellpepper objects.
package io

import (
	"io"
	"os"
)

// WriteFile serializes object into a file at path, truncating it first.
func WriteFile(path string, object io.WriterTo) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err := object.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile deserializes object from the file at path.
func ReadFile(path string, object io.ReaderFrom) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = object.ReadFrom(f)
	return err
}
