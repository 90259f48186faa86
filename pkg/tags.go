package commitbump

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrNoVersion is returned when none of a repository's tags is a version.
var ErrNoVersion = errors.New("no version tag found")

// TagLister lists tag names of a repository.
type TagLister interface {
	ListTags(ctx context.Context) ([]string, error)
}

// LatestTag returns the tag holding the highest version among tags.
// Names may carry a "refs/tags/" prefix and a "v"; tags that do not parse are ignored.
func LatestTag(tags []string) (tag string, v Version, ok bool) {
	byVersion := make(map[*semver.Version]string, len(tags))
	var versions []*semver.Version
	for _, t := range tags {
		name := strings.TrimPrefix(t, "refs/tags/")
		sv, err := parseLoose(name)
		if err != nil {
			continue
		}
		byVersion[sv] = name
		versions = append(versions, sv)
	}
	if len(versions) == 0 {
		return "", Version{}, false
	}

	sort.Sort(sort.Reverse(semver.Collection(versions)))
	return byVersion[versions[0]], fromSemver(versions[0]), true
}

// MostRecentVersion returns the highest version tagged in the lister's repository,
// or 0.0.0 when no tag holds a version. Lister errors are returned, not retried.
func MostRecentVersion(ctx context.Context, lister TagLister) (Version, error) {
	tags, err := lister.ListTags(ctx)
	if err != nil {
		return Version{}, fmt.Errorf("listing tags: %w", err)
	}
	_, v, _ := LatestTag(tags)
	return v, nil
}
