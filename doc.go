// Package main implements the commitbump CLI tool.
//
// The commitbump tool computes the next semantic version of a release from the
// release-type tags written in its commit messages. It reads the base version
// from the latest version tag of the local git repository (or from GitHub, or a
// Go version file), scans the commit messages made since that tag, and prints the
// resulting version. It never commits, tags or pushes.
//
// Command Usage:
//
//	commitbump [flags] [message...]
//
// Tags:
//
//	#major, #premajor, #minor, #preminor, #patch, #prepatch, #prerelease
//
// Tags are matched case-insensitively and as whole words: "#majorfix" is not a
// major tag. Without -per-commit the most impactful tag found wins and is applied
// once; when nothing matches, -default-release-type is applied. With -per-commit
// every tag of every commit is applied, and commits without a tag contribute the
// default release type.
//
// Flags:
//
//	--base-version:         Version to increment instead of looking one up.
//	--source:               git (default), github, file or none.
//	--repo:                 Path inside the local git repository (default ".").
//	--github-repository:    owner/name, for --source github (env GITHUB_REPOSITORY).
//	--github-token:         Token for the GitHub API (env GITHUB_TOKEN).
//	--identifier, -i:       Prerelease identifier, e.g. "beta" gives 1.0.1-beta.0.
//	--default-release-type: Release type used when no tag applies (default "patch").
//	                        Unknown values fall back to "patch" with a warning.
//	--per-commit:           One increment per commit instead of one per batch.
//	--message, -m:          Commit message to scan. May be repeated.
//	--version-file:         Go file declaring Version = "...".
//	--bump-file:            Manifest whose version declaration --write updates. May be repeated.
//	--write:                Write the new version to --version-file and --bump-file.
//	--output, -o:           text (default), json, yaml or version.
//	--log-level:            debug, info (default), warn, error or none.
//	--config:               YAML file holding any of the settings above.
//	--version:              Displays the version of the commitbump CLI tool and exits.
//
// Every setting can also be given as an environment variable prefixed with
// COMMITBUMP_, e.g. COMMITBUMP_DEFAULT_RELEASE_TYPE=minor.
//
// Examples:
//
//	# Next version from the commits since the latest tag
//	commitbump
//
//	# 1.0.0 with a #minor commit → 1.1.0
//	commitbump --base-version 1.0.0 "feat: add parser #minor"
//
//	# Per-commit: 1.0.0 with #minor, #major, #patch → 2.1.1
//	commitbump --base-version 1.0.0 --per-commit -m "#minor" -m "#major" -m "#patch"
//
//	# Prerelease: 1.0.0 with a #prepatch commit and identifier beta → 1.0.1-beta.0
//	commitbump --base-version 1.0.0 -i beta "this is test #prepatch version"
//
//	# Base version from GitHub tags, JSON output
//	commitbump --source github --github-repository owner/repo -o json
//
//	# Update version.go and package.json in place
//	commitbump --version-file ./version.go --bump-file package.json --write
//
// For the library API see the "pkg" package.
package main
