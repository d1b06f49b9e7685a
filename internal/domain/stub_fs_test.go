package domain

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"dupescan.dev/pkg/dupescan/internal/adapter"
	m "dupescan.dev/pkg/dupescan/internal/model"
)

// stubFS wraps the local adapter with per-path failure injection so tests
// can exercise degraded paths without relying on filesystem permissions.
type stubFS struct {
	local *adapter.LocalScanFSAdapter

	readDirErr map[m.Path]error
	digestErr  map[m.Path]error
	openErr    map[m.Path]error

	// digests overrides DigestFile results, letting tests fake digest
	// collisions between files with different content.
	digests map[m.Path]string
}

func newStubFS() *stubFS {
	return &stubFS{
		local:      adapter.NewLocalScanFSAdapter(),
		readDirErr: make(map[m.Path]error),
		digestErr:  make(map[m.Path]error),
		openErr:    make(map[m.Path]error),
		digests:    make(map[m.Path]string),
	}
}

func (s *stubFS) ReadDir(path m.Path) ([]os.DirEntry, error) {
	if err, ok := s.readDirErr[path]; ok {
		return nil, err
	}

	return s.local.ReadDir(path)
}

func (s *stubFS) Stat(path m.Path) (os.FileInfo, error) {
	return s.local.Stat(path)
}

func (s *stubFS) Open(path m.Path) (io.ReadCloser, error) {
	if err, ok := s.openErr[path]; ok {
		return nil, err
	}

	return s.local.Open(path)
}

func (s *stubFS) DigestFile(path m.Path) (string, error) {
	if err, ok := s.digestErr[path]; ok {
		return "", err
	}

	if digest, ok := s.digests[path]; ok {
		return digest, nil
	}

	return s.local.DigestFile(path)
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()

	if err := os.MkdirAll(path, 0o750); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}

func groupPaths(group m.DuplicateGroup) []string {
	paths := make([]string, 0, len(group.Files))
	for _, file := range group.Files {
		paths = append(paths, string(file.Path))
	}

	return paths
}

func join(t *testing.T, elem ...string) string {
	t.Helper()

	return filepath.Join(elem...)
}
