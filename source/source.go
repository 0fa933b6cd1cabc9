// Package source models the declared source list of a package build:
// source files with their declared numbers, reference resolution and
// file role classification.
package source

import (
	"fmt"
	"path/filepath"
)

// Role is classification of a declared source file
type Role int

// Role of a declared source as discovered by the Classifier
const (
	Plain Role = iota
	Signature
	Keyring
)

// String returns human-readable role name
func (r Role) String() string {
	switch r {
	case Signature:
		return "signature"
	case Keyring:
		return "keyring"
	}
	return "source"
}

// File is a single file declared in the source list of the package
// being built. Number is the declared source number, which may be
// sparse and doesn't have to start at 1.
type File struct {
	Path   string
	Number int
}

// Base returns base filename of the declared file
func (f File) Base() string {
	return filepath.Base(f.Path)
}

func (f File) String() string {
	return fmt.Sprintf("%s (source %d)", f.Base(), f.Number)
}

// List is an ordered set of declared source files. Order is the
// declaration order in the package, which is preserved by all
// operations that enumerate the list.
type List struct {
	files []File
}

// NewList builds a list from declared files, verifying that source
// numbers are unique
func NewList(files []File) (*List, error) {
	seen := make(map[int]string, len(files))
	for _, file := range files {
		if other, ok := seen[file.Number]; ok {
			return nil, fmt.Errorf("source number %d declared twice: %s and %s", file.Number, other, file.Path)
		}
		seen[file.Number] = file.Path
	}

	return &List{files: files}, nil
}

// Files enumerates declared files in declaration order
func (l *List) Files() []File {
	return l.files
}

// Len returns number of declared files
func (l *List) Len() int {
	return len(l.files)
}
