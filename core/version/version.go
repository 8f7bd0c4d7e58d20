// Package version compares SiYuan kernel versions.
//
// Versions are plain semver strings such as "2.8.1"; the leading "v" expected
// by golang.org/x/mod/semver is optional. An unparsable version sorts below
// every valid one, so an unknown kernel never passes a minimum version gate.
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Normalize returns v in canonical "vX.Y.Z" form, or "" when it is not valid semver.
func Normalize(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}

// Compare returns -1, 0 or +1 depending on whether a < b, a == b or a > b.
func Compare(a, b string) int {
	return semver.Compare(Normalize(a), Normalize(b))
}

// Lesser reports whether a is lower than b.
func Lesser(a, b string) bool {
	return Compare(a, b) < 0
}

// IsValid reports whether v parses as a version.
func IsValid(v string) bool {
	return Normalize(v) != ""
}
