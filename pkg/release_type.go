package commitbump

import "strings"

// ReleaseType names a kind of version increment.
type ReleaseType string

const (
	Major      ReleaseType = "major"
	Premajor   ReleaseType = "premajor"
	Minor      ReleaseType = "minor"
	Preminor   ReleaseType = "preminor"
	Patch      ReleaseType = "patch"
	Prepatch   ReleaseType = "prepatch"
	Prerelease ReleaseType = "prerelease"
)

// FallbackReleaseType is used when a configured default release type is not recognized.
const FallbackReleaseType = Patch

// ReleaseTypes lists every release type from most to least impactful.
// The order decides which type wins in aggregate mode and the order increments are applied in.
var ReleaseTypes = []ReleaseType{
	Major,
	Premajor,
	Minor,
	Preminor,
	Patch,
	Prepatch,
	Prerelease,
}

// Valid reports whether t is one of ReleaseTypes.
func (t ReleaseType) Valid() bool {
	for _, rt := range ReleaseTypes {
		if rt == t {
			return true
		}
	}
	return false
}

func (t ReleaseType) String() string {
	return string(t)
}

// NormalizeReleaseType lower-cases s and returns the matching release type.
// Unknown values return FallbackReleaseType with ok set to false; logging the
// substitution is left to the caller.
func NormalizeReleaseType(s string) (rt ReleaseType, ok bool) {
	rt = ReleaseType(strings.ToLower(s))
	if rt.Valid() {
		return rt, true
	}
	return FallbackReleaseType, false
}

// AliasTable maps each release type to the tag words that select it.
type AliasTable map[ReleaseType][]string

// DefaultAliases returns the identity table: every release type is selected only by its own name.
func DefaultAliases() AliasTable {
	table := make(AliasTable, len(ReleaseTypes))
	for _, rt := range ReleaseTypes {
		table[rt] = []string{string(rt)}
	}
	return table
}
