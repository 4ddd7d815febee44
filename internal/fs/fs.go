// Package fs provides a small filesystem abstraction over the inputs and
// outputs cuniq touches: opening files for reading, and atomically writing
// a report or count to an output file.
//
// The main types are:
//   - [FS]: interface for filesystem operations
//   - [File]: interface for open files (satisfied by [os.File])
//   - [Real]: production implementation using the [os] package
package fs

import (
	"io"
	"os"
)

// File represents an open file descriptor.
//
// This interface is satisfied by [os.File] and can be used with all
// standard library functions that accept [io.Reader], [io.Seeker], or
// [io.Closer].
type File interface {
	io.ReadCloser
	io.Seeker

	// Fd returns the file descriptor, used for memory-mapping.
	Fd() uintptr

	// Stat returns the [os.FileInfo] for this file. See [os.File.Stat].
	Stat() (os.FileInfo, error)
}

// FS defines the filesystem operations cuniq needs: opening inputs for
// reading and atomically writing the result to an output file.
type FS interface {
	// Open opens a file for reading. See [os.Open].
	Open(path string) (File, error)

	// Exists reports whether a file or directory exists.
	// Returns (false, nil) if not found, (false, err) on other errors.
	Exists(path string) (bool, error)

	// ReadFile reads an entire file into memory. See [os.ReadFile].
	// Used for reading config files.
	ReadFile(path string) ([]byte, error)

	// WriteFileAtomic writes data to a file atomically.
	// Uses a temp file + rename to prevent partial writes on crash.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error
}

// Compile-time interface check.
var _ File = (*os.File)(nil)
