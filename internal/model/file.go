// Package model contains the data types shared across the dupescan pipeline.
package model

// Path is a filesystem path.
type Path string

// FileDescriptor describes one regular file that survived filtering and is
// eligible for duplicate comparison. It is immutable once emitted by the
// walker, except for Digest which the comparator fills in lazily.
type FileDescriptor struct {
	// Path is the file's path as discovered during traversal.
	Path Path `yaml:"path"`

	// Size is the file size in bytes.
	Size int64 `yaml:"size"`

	// Ord is the traversal ordinal. It is assigned by the walker and used
	// downstream to keep group membership in a stable, reproducible order
	// regardless of worker scheduling.
	Ord int `yaml:"-"`

	// Digest is the hex-encoded SHA-256 of the file contents. Empty until
	// the comparator computes it; empty in size-only mode.
	Digest string `yaml:"digest,omitempty"`
}
