package ir

import (
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when the wire format changes.
const encodeSchemaVersion uint16 = 1

// payload wraps a module with a schema version for safe invalidation.
type payload struct {
	Schema uint16
	Module *Module
}

// EncodeModule writes the portable binary encoding of m to w.
func EncodeModule(w io.Writer, m *Module) error {
	if m == nil {
		return fmt.Errorf("nil module")
	}
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(payload{Schema: encodeSchemaVersion, Module: m}); err != nil {
		return fmt.Errorf("failed to encode module: %w", err)
	}
	return nil
}

// DecodeModule reads one module from the portable binary encoding.
func DecodeModule(r io.Reader) (*Module, error) {
	dec := msgpack.NewDecoder(r)
	var p payload
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode module: %w", err)
	}
	if p.Schema != encodeSchemaVersion {
		return nil, fmt.Errorf("unsupported module schema %d (want %d)", p.Schema, encodeSchemaVersion)
	}
	if p.Module == nil {
		return nil, fmt.Errorf("empty module payload")
	}
	return p.Module, nil
}

// ReadModuleFile decodes a module from a file on disk.
func ReadModuleFile(path string) (*Module, error) {
	// #nosec G304 -- path is a caller-provided compilation input
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open module %q: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()
	return DecodeModule(f)
}

// WriteModuleFile encodes a module to a file on disk.
func WriteModuleFile(path string, m *Module) error {
	// #nosec G304 -- path is derived from build output configuration
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", path, err)
	}
	if err := EncodeModule(f, m); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to flush %q: %w", path, err)
	}
	return nil
}
