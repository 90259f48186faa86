package commitbump

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// manifestPatterns match the main version declaration of common manifests.
// Group 1 is the indentation, group 2 the key up to the value, group 3 an
// optional "v" and group 4 the version.
var manifestPatterns = []*regexp.Regexp{
	// package.json, composer.json: a top-level "version" key (indent of at most two spaces).
	regexp.MustCompile(`^( {0,2}|\t?)("version"\s*:\s*")(v?)(\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?)"`),
	// Cargo.toml, pyproject.toml: version = "x.y.z"
	regexp.MustCompile(`^()(version\s*=\s*")(v?)(\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?)"`),
	// VERSION=x.y.z, version: x.y.z
	regexp.MustCompile(`(?i)^()(version\s*[:=]\s*["']?)(v?)(\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?)`),
}

// ManifestVersion is a version declaration found in a file.
type ManifestVersion struct {
	Line    int // 1-based
	Version string
}

// FindManifestVersion returns the first main version declaration of the file,
// or nil when there is none. Nested or indented declarations such as
// dependency versions are not considered.
func FindManifestVersion(path string) (*ManifestVersion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	for i, line := range strings.Split(string(data), "\n") {
		for _, re := range manifestPatterns {
			if m := re.FindStringSubmatch(line); m != nil {
				return &ManifestVersion{Line: i + 1, Version: m[4]}, nil
			}
		}
	}
	return nil, nil
}

// UpdateManifestVersion replaces the main version declaration of the file with v,
// keeping a "v" prefix when the old value had one. It reports whether the file changed.
func UpdateManifestVersion(path string, v Version) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading file %s: %w", path, err)
	}

	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		for _, re := range manifestPatterns {
			loc := re.FindStringSubmatchIndex(line)
			if loc == nil {
				continue
			}
			// loc[8]:loc[9] is the version group; loc[6]:loc[7] the optional "v".
			updated := line[:loc[8]] + v.String() + line[loc[9]:]
			if updated == line {
				return false, nil
			}
			lines[i] = updated
			if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644); err != nil {
				return false, fmt.Errorf("writing file %s: %w", path, err)
			}
			return true, nil
		}
	}
	return false, nil
}
