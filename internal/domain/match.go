package domain

import "unicode"

// matchPattern reports whether name matches a wildcard pattern. `*` matches
// any run of characters (including across dots), `?` matches exactly one
// character, and everything else matches literally. An empty pattern or a
// bare `*` matches everything.
//
// The matcher backtracks to the most recent `*` on mismatch, so patterns
// like "*.a?b" behave as users expect from shell globs.
func matchPattern(name, pattern string, caseSensitive bool) bool {
	if pattern == "" || pattern == "*" {
		return true
	}

	n := []rune(name)
	p := []rune(pattern)

	var ni, pi int
	starPi := -1
	starNi := 0

	for ni < len(n) {
		switch {
		case pi < len(p) && (p[pi] == '?' || runesEqual(p[pi], n[ni], caseSensitive)):
			pi++
			ni++
		case pi < len(p) && p[pi] == '*':
			// Remember the star position; try matching it against the
			// empty string first.
			starPi = pi
			starNi = ni
			pi++
		case starPi >= 0:
			// Mismatch after a star: let the star swallow one more
			// character and retry.
			starNi++
			ni = starNi
			pi = starPi + 1
		default:
			return false
		}
	}

	// Leftover pattern may only consist of stars.
	for pi < len(p) {
		if p[pi] != '*' {
			return false
		}
		pi++
	}

	return true
}

// matchesFilters reports whether name matches any of the configured
// patterns. No patterns, or a literal "*" among them, accepts every name.
func matchesFilters(name string, filters []string, caseSensitive bool) bool {
	if len(filters) == 0 {
		return true
	}

	for _, filter := range filters {
		if matchPattern(name, filter, caseSensitive) {
			return true
		}
	}

	return false
}

func runesEqual(a, b rune, caseSensitive bool) bool {
	if caseSensitive {
		return a == b
	}

	return unicode.ToLower(a) == unicode.ToLower(b)
}
