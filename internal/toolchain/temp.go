package toolchain

import (
	"fmt"
	"os"
)

// TempFile is a uniquely named on-disk temporary. Callers must Discard
// it on every exit path.
type TempFile struct {
	Name string
}

// CreateTemp allocates a closed, uniquely named temporary file. The
// pattern follows os.CreateTemp: a trailing "*" is replaced by a random
// collision-resistant string.
func CreateTemp(pattern string) (TempFile, error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return TempFile{}, fmt.Errorf("failed to create temp file %q: %w", pattern, err)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return TempFile{}, fmt.Errorf("failed to close temp file %q: %w", name, err)
	}
	return TempFile{Name: name}, nil
}

// Discard removes the file. Removing an already-removed file is not an
// error.
func (t TempFile) Discard() {
	if t.Name == "" {
		return
	}
	_ = os.Remove(t.Name)
}
