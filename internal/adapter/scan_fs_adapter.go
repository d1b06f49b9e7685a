// Package adapter contains filesystem and persistence adapters for the
// dupescan CLI.
package adapter

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"

	m "dupescan.dev/pkg/dupescan/internal/model"
)

// ScanFSAdapter abstracts the filesystem operations the scan pipeline relies
// on. It intentionally hides direct `os` access so the domain logic can be
// tested without touching the disk.
type ScanFSAdapter interface {
	// ReadDir lists the entries of a directory.
	ReadDir(path m.Path) ([]os.DirEntry, error)

	// Stat returns metadata for a path so the domain can validate the scan
	// root and distinguish files from directories.
	Stat(path m.Path) (os.FileInfo, error)

	// Open opens a file for reading. Callers own the returned closer.
	Open(path m.Path) (io.ReadCloser, error)

	// DigestFile returns a stable hex-encoded SHA-256 fingerprint of the
	// file contents, computed by streaming so memory stays constant
	// regardless of file size.
	DigestFile(path m.Path) (string, error)
}

// LocalScanFSAdapter is the concrete ScanFSAdapter backed by the local
// filesystem.
type LocalScanFSAdapter struct{}

// NewLocalScanFSAdapter constructs a LocalScanFSAdapter ready to be wired
// into the scanner.
func NewLocalScanFSAdapter() *LocalScanFSAdapter {
	return &LocalScanFSAdapter{}
}

// ReadDir lists the entries of the directory at path.
func (a *LocalScanFSAdapter) ReadDir(path m.Path) ([]os.DirEntry, error) {
	return os.ReadDir(string(path))
}

// Stat returns os.FileInfo metadata for the given path.
func (a *LocalScanFSAdapter) Stat(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// Open opens the file at path for reading.
func (a *LocalScanFSAdapter) Open(path m.Path) (io.ReadCloser, error) {
	return os.Open(string(path))
}

// DigestFile returns the SHA-256 hash of the file at the provided path.
func (a *LocalScanFSAdapter) DigestFile(path m.Path) (string, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
