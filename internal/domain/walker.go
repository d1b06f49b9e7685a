// Package domain implements the duplicate detection pipeline: traversal,
// size grouping, content verification, and the scanner that orchestrates
// them.
package domain

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"dupescan.dev/pkg/dupescan/internal/adapter"
	m "dupescan.dev/pkg/dupescan/internal/model"
)

// emitFunc receives each candidate file in traversal order.
type emitFunc func(m.FileDescriptor)

// warnFunc receives recoverable per-entry failures.
type warnFunc func(m.Diagnostic)

// walker enumerates candidate files under a root directory. It descends with
// an explicit queue instead of recursion so stack depth stays bounded on
// deep trees, and it never follows symbolic links.
type walker struct {
	fs adapter.ScanFSAdapter
}

func newWalker(fsAdapter adapter.ScanFSAdapter) *walker {
	return &walker{fs: fsAdapter}
}

// walk traverses opts.Root and emits a FileDescriptor for every regular file
// that passes the filter and empty-file checks. Each descriptor carries a
// traversal ordinal so downstream stages can restore a deterministic order.
//
// Unreadable subdirectories and entries are reported through warn and
// skipped; only a failure to read the root itself (or context cancellation)
// aborts the walk.
func (w *walker) walk(ctx context.Context, opts m.ScanOptions, emit emitFunc, warn warnFunc) error {
	queue := []m.Path{opts.Root}
	ord := 0

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		dir := queue[0]
		queue = queue[1:]

		entries, err := w.fs.ReadDir(dir)
		if err != nil {
			if dir == opts.Root {
				return fmt.Errorf("read scan root: %w", err)
			}

			warn(m.Diagnostic{Path: dir, Err: err.Error()})

			continue
		}

		for _, entry := range entries {
			path := m.Path(filepath.Join(string(dir), entry.Name()))

			if entry.IsDir() {
				queue = append(queue, path)
				continue
			}

			// Symlinks, sockets, devices etc. are skipped entirely;
			// following links could introduce cycles.
			if entry.Type()&fs.ModeType != 0 {
				continue
			}

			if !matchesFilters(entry.Name(), opts.Filters, opts.CaseSensitive) {
				continue
			}

			info, err := entry.Info()
			if err != nil {
				warn(m.Diagnostic{Path: path, Err: err.Error()})
				continue
			}

			if opts.ExcludeEmpty && info.Size() == 0 {
				continue
			}

			emit(m.FileDescriptor{Path: path, Size: info.Size(), Ord: ord})
			ord++
		}
	}

	return nil
}
