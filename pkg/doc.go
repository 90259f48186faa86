// Package commitbump computes the next semantic version of a release from the
// tags found in its commit messages.
//
// It provides functionalities for:
//   - Extracting release-type tags (#major, #premajor, #minor, #preminor, #patch,
//     #prepatch, #prerelease) from commit messages, ignoring case.
//   - Resolving a batch of messages into increments, either once for the most
//     impactful tag (aggregate mode) or once per commit (per-commit mode).
//   - Incrementing semantic versions, including prerelease identifiers such as
//     1.0.0 → 1.0.1-beta.0.
//   - Finding the most recent version tag of a local git repository or of a
//     GitHub repository, and the commit messages written since.
//   - Writing the computed version into a Go version file and adjusting the
//     go.mod module path for v2+ majors.
//
// Usage Example:
//
//	import (
//	    "fmt"
//	    commitbump "github.com/bcomnes/commitbump/pkg"
//	)
//
//	func main() {
//	    next := commitbump.Increment("1.0.0", "", []string{"feat: parser #minor"}, "patch", false)
//	    fmt.Println(next) // 1.1.0
//	}
//
// The computed version is never committed, tagged or published.
package commitbump
