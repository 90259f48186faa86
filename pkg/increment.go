package commitbump

import (
	"go.uber.org/zap"
)

// Result describes one resolution of the next version.
type Result struct {
	OldVersion         Version       `json:"old_version" yaml:"old_version"`
	NewVersion         Version       `json:"new_version" yaml:"new_version"`
	ReleaseTypes       []ReleaseType `json:"release_types" yaml:"release_types"` // labels applied, in application order
	DefaultReleaseType ReleaseType   `json:"default_release_type" yaml:"default_release_type"`
	DefaultFallback    bool          `json:"default_fallback" yaml:"default_fallback"`     // configured default was invalid
	BaseFallback       bool          `json:"base_fallback" yaml:"base_fallback"`           // base version was unparseable
	IdentifierIgnored  bool          `json:"identifier_ignored" yaml:"identifier_ignored"` // identifier was not a valid prerelease identifier
	Commits            int           `json:"commits" yaml:"commits"`
}

// Resolver turns commit messages into a version increment.
// A Resolver holds no per-call state and may be shared between goroutines.
type Resolver struct {
	Aliases AliasTable
	Logger  *zap.Logger
}

// NewResolver returns a Resolver using the default alias table.
// A nil logger disables logging.
func NewResolver(logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{Aliases: DefaultAliases(), Logger: logger}
}

// Increment computes the next version with a silent resolver.
//
// Tags in the messages (#major, #minor, #patch and the pre* variants) select
// the increments. In aggregate mode (perCommit false) only the most impactful
// tag found is applied, once. In per-commit mode every tag of every message is
// applied and untagged messages contribute defaultReleaseType. An unparseable
// base version is treated as 0.0.0, an unknown default as patch and an invalid
// identifier as none. Nothing is logged; use NewResolver with a logger to see
// the fallback warnings.
func Increment(baseVersion, identifier string, messages []string, defaultReleaseType string, perCommit bool) Version {
	return NewResolver(nil).Increment(baseVersion, identifier, messages, defaultReleaseType, perCommit)
}

// Increment is Resolve returning only the new version.
func (r *Resolver) Increment(baseVersion, identifier string, messages []string, defaultReleaseType string, perCommit bool) Version {
	return r.Resolve(baseVersion, identifier, messages, defaultReleaseType, perCommit).NewVersion
}

// Resolve computes the next version and reports how it was reached. It never fails.
func (r *Resolver) Resolve(baseVersion, identifier string, messages []string, defaultReleaseType string, perCommit bool) Result {
	log := r.logger()
	aliases := r.Aliases
	if aliases == nil {
		aliases = DefaultAliases()
	}

	var res Result
	res.Commits = len(messages)

	version, err := ParseVersion(baseVersion)
	if err != nil {
		log.Debug("Base version unparseable, starting from 0.0.0", zap.String("base", baseVersion), zap.Error(err))
		version = Version{}
		res.BaseFallback = true
	}
	res.OldVersion = version

	defaultType, ok := NormalizeReleaseType(defaultReleaseType)
	if !ok {
		log.Warn("Invalid release type provided, falling back",
			zap.String("release_type", defaultReleaseType),
			zap.Stringer("fallback", FallbackReleaseType))
		res.DefaultFallback = true
	}
	res.DefaultReleaseType = defaultType
	if !ValidIdentifier(identifier) {
		log.Warn("Invalid prerelease identifier provided, ignoring it", zap.String("identifier", identifier))
		identifier = ""
		res.IdentifierIgnored = true
	}
	log.Debug("Alias table", zap.Any("aliases", aliases))

	var labels []ReleaseType
	for _, message := range messages {
		matched := aliases.Extract(message)
		labels = append(labels, matched...)
		if perCommit && len(matched) == 0 {
			labels = append(labels, defaultType)
		}
	}
	log.Debug("Parsed labels from commit messages", zap.Stringers("labels", labels))

	if len(labels) == 0 {
		labels = append(labels, defaultType)
	}
	if !perCommit {
		labels = []ReleaseType{highest(labels)}
	}

	counts := make(map[ReleaseType]int, len(ReleaseTypes))
	for _, l := range labels {
		counts[l]++
	}
	for _, rt := range ReleaseTypes {
		for range counts[rt] {
			version = version.Bump(rt, identifier)
			res.ReleaseTypes = append(res.ReleaseTypes, rt)
			log.Debug("Increment version for label", zap.Stringer("label", rt), zap.Stringer("version", version))
		}
	}

	res.NewVersion = version
	return res
}

// highest returns the first member of ReleaseTypes present in labels. labels must not be empty.
func highest(labels []ReleaseType) ReleaseType {
	present := make(map[ReleaseType]bool, len(labels))
	for _, l := range labels {
		present[l] = true
	}
	for _, rt := range ReleaseTypes {
		if present[rt] {
			return rt
		}
	}
	return labels[0]
}

func (r *Resolver) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}
