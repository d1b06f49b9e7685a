package domain

import (
	"bytes"
	"context"
	"errors"
	"io"

	"dupescan.dev/pkg/dupescan/internal/adapter"
	m "dupescan.dev/pkg/dupescan/internal/model"
)

const compareChunkSize = 64 * 1024

// comparator turns one size group into zero or more verified duplicate
// groups. Digests rule out non-duplicates cheaply; a byte-by-byte pass makes
// equality certain before a group is reported, so a digest collision can
// never produce a false duplicate.
type comparator struct {
	fs adapter.ScanFSAdapter
}

func newComparator(fsAdapter adapter.ScanFSAdapter) *comparator {
	return &comparator{fs: fsAdapter}
}

// verify determines the content-equal sub-groups of a size group. Files that
// cannot be read are dropped with a diagnostic. In size-only mode the whole
// group is reported as-is without touching file contents.
func (c *comparator) verify(ctx context.Context, group []m.FileDescriptor, sizeOnly bool) ([]m.DuplicateGroup, []m.Diagnostic, error) {
	if len(group) < 2 {
		return nil, nil, nil
	}

	if sizeOnly {
		files := make([]m.FileDescriptor, len(group))
		copy(files, group)

		return []m.DuplicateGroup{{Size: group[0].Size, Files: files}}, nil, nil
	}

	var diagnostics []m.Diagnostic

	// Bucket by digest, preserving traversal order.
	buckets := make(map[string][]m.FileDescriptor)
	order := make([]string, 0, len(group))

	for _, file := range group {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		digest, err := c.fs.DigestFile(file.Path)
		if err != nil {
			diagnostics = append(diagnostics, m.Diagnostic{Path: file.Path, Err: err.Error()})
			continue
		}

		file.Digest = digest
		if _, seen := buckets[digest]; !seen {
			order = append(order, digest)
		}

		buckets[digest] = append(buckets[digest], file)
	}

	var groups []m.DuplicateGroup

	for _, digest := range order {
		bucket := buckets[digest]
		if len(bucket) < 2 {
			continue
		}

		verified, diags, err := c.partitionByContent(ctx, bucket)
		if err != nil {
			return nil, nil, err
		}

		diagnostics = append(diagnostics, diags...)
		groups = append(groups, verified...)
	}

	return groups, diagnostics, nil
}

// partitionByContent splits a digest bucket into byte-identical sub-groups.
// The first remaining file acts as the pivot; everything equal to it forms
// one group and the remainder is partitioned again. Buckets are genuinely
// duplicate in practice, so the loop almost always terminates in one pass.
//
// Read failures drop only the offending file. When the pivot itself becomes
// unreadable the round is abandoned and the remaining files are partitioned
// again under a fresh pivot, so the group they may form is not lost.
func (c *comparator) partitionByContent(ctx context.Context, bucket []m.FileDescriptor) ([]m.DuplicateGroup, []m.Diagnostic, error) {
	var (
		groups      []m.DuplicateGroup
		diagnostics []m.Diagnostic
	)

	rest := bucket
	for len(rest) >= 2 {
		pivot := rest[0]
		identical := []m.FileDescriptor{pivot}
		pivotLost := false

		var next []m.FileDescriptor

		for _, other := range rest[1:] {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}

			equal, offender, err := c.sameContent(pivot.Path, other.Path)
			if err != nil {
				diagnostics = append(diagnostics, m.Diagnostic{Path: offender, Err: err.Error()})

				if offender == pivot.Path {
					pivotLost = true
					break
				}

				continue
			}

			if equal {
				identical = append(identical, other)
			} else {
				next = append(next, other)
			}
		}

		if pivotLost {
			rest = rest[1:]
			continue
		}

		if len(identical) >= 2 {
			groups = append(groups, m.DuplicateGroup{
				Size:   pivot.Size,
				Digest: pivot.Digest,
				Files:  identical,
			})
		}

		rest = next
	}

	return groups, diagnostics, nil
}

// sameContent compares two files byte by byte, returning at the first
// mismatch. Callers guarantee equal sizes, so a short read on one side means
// a short read on both. On failure, offender names the file that could not
// be opened or read so the caller can attribute the diagnostic correctly.
func (c *comparator) sameContent(a, b m.Path) (equal bool, offender m.Path, err error) {
	fileA, err := c.fs.Open(a)
	if err != nil {
		return false, a, err
	}

	defer func() {
		if cerr := fileA.Close(); cerr != nil {
			err = errors.Join(err, cerr)
			if offender == "" {
				offender = a
			}
		}
	}()

	fileB, err := c.fs.Open(b)
	if err != nil {
		return false, b, err
	}

	defer func() {
		if cerr := fileB.Close(); cerr != nil {
			err = errors.Join(err, cerr)
			if offender == "" {
				offender = b
			}
		}
	}()

	bufA := make([]byte, compareChunkSize)
	bufB := make([]byte, compareChunkSize)

	for {
		na, err := readChunk(fileA, bufA)
		if err != nil {
			return false, a, err
		}

		nb, err := readChunk(fileB, bufB)
		if err != nil {
			return false, b, err
		}

		if na != nb || !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false, "", nil
		}

		if na < len(bufA) {
			return true, "", nil
		}
	}
}

// readChunk fills buf as far as the reader allows, treating end-of-file as a
// short (possibly zero-length) read rather than an error.
func readChunk(r io.Reader, buf []byte) (int, error) {
	n, err := io.ReadFull(r, buf)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return n, nil
	}

	return n, err
}
