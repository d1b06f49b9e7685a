package domain

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"dupescan.dev/pkg/dupescan/internal/adapter"
	m "dupescan.dev/pkg/dupescan/internal/model"
)

// Scanner runs one duplicate detection pass over a directory tree.
type Scanner interface {
	// Scan walks opts.Root, groups candidates by size, verifies content
	// equality, and returns the resulting report. Only configuration
	// errors (bad root) and cancellation produce an error; per-file
	// failures surface as report diagnostics.
	Scan(ctx context.Context, opts m.ScanOptions) (m.Report, error)
}

type scanner struct {
	fs adapter.ScanFSAdapter
}

// NewScanner creates a Scanner backed by the provided filesystem adapter.
func NewScanner(fsAdapter adapter.ScanFSAdapter) Scanner {
	return &scanner{fs: fsAdapter}
}

func (s *scanner) Scan(ctx context.Context, opts m.ScanOptions) (m.Report, error) {
	info, err := s.fs.Stat(opts.Root)
	if err != nil {
		return m.Report{}, fmt.Errorf("invalid scan root %q: %w", opts.Root, err)
	}

	if !info.IsDir() {
		return m.Report{}, fmt.Errorf("scan root %q is not a directory", opts.Root)
	}

	threads := opts.Threads
	if threads < 1 {
		threads = 1
	}

	// Single accumulation pass: the size map is complete before any
	// content is read, so the fan-out below works on read-only data.
	var (
		files       []m.FileDescriptor
		diagnostics []m.Diagnostic
	)

	walk := newWalker(s.fs)

	err = walk.walk(ctx, opts,
		func(file m.FileDescriptor) { files = append(files, file) },
		func(diag m.Diagnostic) { diagnostics = append(diagnostics, diag) },
	)
	if err != nil {
		return m.Report{}, err
	}

	sizeGroups := groupBySize(files)
	slog.Debug("collected candidates",
		"root", opts.Root,
		"candidates", len(files),
		"size_groups", len(sizeGroups),
	)

	compare := newComparator(s.fs)

	var (
		mu     sync.Mutex
		groups []m.DuplicateGroup
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(threads)

	for _, sizeGroup := range sizeGroups {
		sizeGroup := sizeGroup

		eg.Go(func() error {
			verified, diags, err := compare.verify(egCtx, sizeGroup, opts.SizeOnly)
			if err != nil {
				return err
			}

			mu.Lock()
			groups = append(groups, verified...)
			diagnostics = append(diagnostics, diags...)
			mu.Unlock()

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return m.Report{}, err
	}

	// Grouping keys are content-derived, so only presentation order is
	// left to fix up after the parallel phase.
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Files[0].Ord < groups[j].Files[0].Ord
	})
	sort.Slice(diagnostics, func(i, j int) bool {
		return diagnostics[i].Path < diagnostics[j].Path
	})

	slog.Info("scan finished",
		"root", opts.Root,
		"candidates", len(files),
		"duplicate_groups", len(groups),
		"diagnostics", len(diagnostics),
	)

	return m.Report{
		Root:        opts.Root,
		Scanned:     len(files),
		Groups:      groups,
		Diagnostics: diagnostics,
	}, nil
}
