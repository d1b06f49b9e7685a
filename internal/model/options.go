package model

// ScanOptions is the resolved configuration for one scan run. It is built
// once by the CLI and treated as read-only by every pipeline stage.
type ScanOptions struct {
	// Root is the directory to scan.
	Root Path

	// Filters are wildcard patterns matched against file base names
	// (e.g. "*.txt"). An empty slice accepts every file.
	Filters []string

	// CaseSensitive makes filter matching exact-case. Matching is
	// case-insensitive by default.
	CaseSensitive bool

	// ExcludeEmpty omits zero-byte files from all consideration.
	ExcludeEmpty bool

	// SizeOnly reports files of equal size as duplicates without reading
	// their contents.
	SizeOnly bool

	// Threads is the number of verification workers. Values below 1 are
	// treated as 1.
	Threads int
}
