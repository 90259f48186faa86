package commitbump

import (
	"regexp"
	"strings"
)

// tagPattern captures the full letter run after '#', so "#majorfix" yields "majorfix" and never "major".
var tagPattern = regexp.MustCompile(`#[a-z]+`)

// Extract returns the release types whose tag appears in message.
// Matching ignores case. Each type is reported at most once, in ReleaseTypes order.
func (a AliasTable) Extract(message string) []ReleaseType {
	found := tagPattern.FindAllString(strings.ToLower(message), -1)
	if len(found) == 0 {
		return nil
	}

	words := make(map[string]struct{}, len(found))
	for _, tag := range found {
		words[strings.TrimPrefix(tag, "#")] = struct{}{}
	}

	var matched []ReleaseType
	for _, rt := range ReleaseTypes {
		for _, alias := range a[rt] {
			if _, ok := words[alias]; ok {
				matched = append(matched, rt)
				break
			}
		}
	}
	return matched
}

// ExtractReleaseTypes scans message using the default alias table.
func ExtractReleaseTypes(message string) []ReleaseType {
	return DefaultAliases().Extract(message)
}
