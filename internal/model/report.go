package model

// DuplicateGroup is a maximal set of files verified byte-for-byte identical.
// Members share the same size and, unless the scan ran in size-only mode,
// the same content digest. Files are ordered by traversal ordinal.
type DuplicateGroup struct {
	Size   int64            `yaml:"size"`
	Digest string           `yaml:"digest,omitempty"`
	Files  []FileDescriptor `yaml:"files"`
}

// WastedBytes returns the bytes that could be reclaimed by keeping a single
// copy of the group's content.
func (g DuplicateGroup) WastedBytes() int64 {
	if len(g.Files) < 2 {
		return 0
	}

	return g.Size * int64(len(g.Files)-1)
}

// Diagnostic records a recoverable per-file failure. Diagnostics never abort
// a scan; the affected file is simply excluded from consideration.
type Diagnostic struct {
	Path Path   `yaml:"path"`
	Err  string `yaml:"error"`
}

// Report is the final result of one scan run.
type Report struct {
	// Root is the scanned directory.
	Root Path `yaml:"root"`

	// Scanned is the number of candidate files that survived filtering.
	Scanned int `yaml:"scanned"`

	// Groups holds every verified duplicate group, ordered by the traversal
	// ordinal of each group's first member.
	Groups []DuplicateGroup `yaml:"groups"`

	// Diagnostics aggregates the non-fatal per-file failures encountered
	// during traversal and verification.
	Diagnostics []Diagnostic `yaml:"diagnostics,omitempty"`
}
