package assoc

import "strings"

// MatchesPattern reports whether a stored association key matches a queried
// MIME type. Comparison is case-insensitive; '*' matches any run of
// characters and '?' matches one. Glob characters are only honored when
// both sides look like full type/subtype values, so a bare "*" key cannot
// swallow every query.
func MatchesPattern(pattern, target string) bool {
	pattern = strings.TrimSpace(pattern)
	target = strings.TrimSpace(target)
	if pattern == "" || target == "" {
		return false
	}

	pattern = strings.ToLower(pattern)
	target = strings.ToLower(target)
	if pattern == target {
		return true
	}

	if !strings.Contains(pattern, "/") || !strings.Contains(target, "/") {
		return false
	}
	if strings.ContainsAny(pattern, "*?") {
		return globMatch(pattern, target)
	}
	return false
}

// globMatch matches '*' (any run, including '/') and '?' (one character).
func globMatch(pattern, target string) bool {
	// Iterative backtracking over the last '*' seen.
	pi, ti := 0, 0
	star, mark := -1, 0
	for ti < len(target) {
		switch {
		case pi < len(pattern) && (pattern[pi] == '?' || pattern[pi] == target[ti]):
			pi++
			ti++
		case pi < len(pattern) && pattern[pi] == '*':
			star = pi
			mark = ti
			pi++
		case star >= 0:
			pi = star + 1
			mark++
			ti = mark
		default:
			return false
		}
	}
	for pi < len(pattern) && pattern[pi] == '*' {
		pi++
	}
	return pi == len(pattern)
}
