package domain

import (
	"sort"

	m "dupescan.dev/pkg/dupescan/internal/model"
)

// groupBySize partitions candidates by exact byte size, preserving traversal
// order within each group. Groups with a single member are dropped: a unique
// size can never have a duplicate.
//
// The returned groups are ordered by the traversal ordinal of their first
// member so the fan-out stage processes them deterministically.
func groupBySize(files []m.FileDescriptor) [][]m.FileDescriptor {
	bySize := make(map[int64][]m.FileDescriptor)
	for _, file := range files {
		bySize[file.Size] = append(bySize[file.Size], file)
	}

	groups := make([][]m.FileDescriptor, 0, len(bySize))
	for _, group := range bySize {
		if len(group) < 2 {
			continue
		}

		groups = append(groups, group)
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i][0].Ord < groups[j][0].Ord
	})

	return groups
}
