package commitbump

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version is a semantic version. Build metadata is not kept.
// Bump returns a new value; a Version is never modified in place.
type Version struct {
	Major      uint64
	Minor      uint64
	Patch      uint64
	Prerelease []string // dot-separated prerelease identifiers, e.g. ["beta", "0"]
}

// ParseVersion parses a strict semantic version. Surrounding whitespace and a
// leading "v" are accepted; short forms such as "1.2" are not.
func ParseVersion(s string) (Version, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(s), "v")
	sv, err := semver.StrictNewVersion(trimmed)
	if err != nil {
		return Version{}, fmt.Errorf("invalid version %q: %w", s, err)
	}
	return fromSemver(sv), nil
}

// fullVersionPattern requires all three numeric components, so tags such as
// "2024" or "v2" are not read as versions.
var fullVersionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+`)

// parseLoose accepts the looser forms found in tag names ("v1.2.3", "=1.2.3",
// "1.2.3-rc1"). Short forms such as "1.2" are rejected.
func parseLoose(s string) (*semver.Version, error) {
	trimmed := strings.TrimLeft(strings.TrimSpace(s), "=v")
	if !fullVersionPattern.MatchString(trimmed) {
		return nil, fmt.Errorf("invalid version %q: %w", s, semver.ErrInvalidSemVer)
	}
	return semver.NewVersion(trimmed)
}

// ValidIdentifier reports whether id can start a prerelease, e.g. "beta" or
// "rc.1". The empty identifier is valid and means a bare numeric prerelease.
func ValidIdentifier(id string) bool {
	if id == "" {
		return true
	}
	if slices.Contains(strings.Split(id, "."), "") {
		return false
	}
	_, err := semver.StrictNewVersion("0.0.0-" + id)
	return err == nil
}

func fromSemver(sv *semver.Version) Version {
	v := Version{Major: sv.Major(), Minor: sv.Minor(), Patch: sv.Patch()}
	if pre := sv.Prerelease(); pre != "" {
		v.Prerelease = strings.Split(pre, ".")
	}
	return v
}

// String formats v as major.minor.patch[-prerelease] without a "v" prefix.
func (v Version) String() string {
	base := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if len(v.Prerelease) > 0 {
		return base + "-" + strings.Join(v.Prerelease, ".")
	}
	return base
}

// Compare returns -1, 0 or 1 following semantic version precedence.
func (v Version) Compare(o Version) int {
	if c := cmp.Compare(v.Major, o.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Minor, o.Minor); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Patch, o.Patch); c != 0 {
		return c
	}
	switch {
	case !v.IsPrerelease() && !o.IsPrerelease():
		return 0
	case !v.IsPrerelease():
		return 1
	case !o.IsPrerelease():
		return -1
	}
	for i := 0; i < len(v.Prerelease) && i < len(o.Prerelease); i++ {
		if c := comparePrerelease(v.Prerelease[i], o.Prerelease[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(v.Prerelease), len(o.Prerelease))
}

// comparePrerelease orders numeric identifiers numerically and below
// alphanumeric ones, which compare in ASCII order.
func comparePrerelease(a, b string) int {
	an, aNum := numericIdentifier(a)
	bn, bNum := numericIdentifier(b)
	switch {
	case aNum && bNum:
		return cmp.Compare(an, bn)
	case aNum:
		return -1
	case bNum:
		return 1
	}
	return strings.Compare(a, b)
}

// IsPrerelease reports whether v carries prerelease identifiers.
func (v Version) IsPrerelease() bool {
	return len(v.Prerelease) > 0
}

// MarshalText implements encoding.TextMarshaler so versions render as strings in JSON and YAML.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Bump applies one increment of type rt. The identifier is used by the pre*
// types; e.g. 1.0.0 bumped by prepatch with "beta" is 1.0.1-beta.0.
// Unknown types return v unchanged.
func (v Version) Bump(rt ReleaseType, identifier string) Version {
	next := v
	next.Prerelease = slices.Clone(v.Prerelease)

	switch rt {
	case Major:
		// A prerelease of X.0.0 is released as X.0.0.
		if next.Minor != 0 || next.Patch != 0 || !next.IsPrerelease() {
			next.Major++
		}
		next.Minor = 0
		next.Patch = 0
		next.Prerelease = nil
	case Minor:
		if next.Patch != 0 || !next.IsPrerelease() {
			next.Minor++
		}
		next.Patch = 0
		next.Prerelease = nil
	case Patch:
		if !next.IsPrerelease() {
			next.Patch++
		}
		next.Prerelease = nil
	case Premajor:
		next.Prerelease = nil
		next.Major++
		next.Minor = 0
		next.Patch = 0
		next = next.bumpPre(identifier)
	case Preminor:
		next.Prerelease = nil
		next.Minor++
		next.Patch = 0
		next = next.bumpPre(identifier)
	case Prepatch:
		next.Prerelease = nil
		next.Patch++
		next = next.bumpPre(identifier)
	case Prerelease:
		if !next.IsPrerelease() {
			next = next.Bump(Patch, "")
		}
		next = next.bumpPre(identifier)
	}
	return next
}

// bumpPre advances the prerelease counter, starting or replacing it when the identifier changes.
func (v Version) bumpPre(identifier string) Version {
	pre := v.Prerelease
	if len(pre) == 0 {
		pre = []string{"0"}
	} else {
		i := len(pre) - 1
		for ; i >= 0; i-- {
			if n, ok := numericIdentifier(pre[i]); ok {
				pre[i] = strconv.FormatUint(n+1, 10)
				break
			}
		}
		if i < 0 {
			pre = append(pre, "0")
		}
	}

	if identifier != "" {
		if pre[0] != identifier {
			pre = []string{identifier, "0"}
		} else if len(pre) < 2 {
			pre = []string{identifier, "0"}
		} else if _, ok := numericIdentifier(pre[1]); !ok {
			pre = []string{identifier, "0"}
		}
	}

	v.Prerelease = pre
	return v
}

func numericIdentifier(s string) (uint64, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
