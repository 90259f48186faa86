// Package main implements a CLI tool that computes the next version of a
// release from the release-type tags in its commit messages.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/bcomnes/commitbump/internal/config"
	"github.com/bcomnes/commitbump/internal/logger"
	commitbump "github.com/bcomnes/commitbump/pkg"
)

const longHelp = `Computes the next semantic version from the release-type tags found in commit messages
and prints it. Nothing is committed, tagged or pushed.

Tags are matched case-insensitively: #major, #premajor, #minor, #preminor, #patch,
#prepatch, #prerelease. Without --per-commit only the most impactful tag found is
applied, once. With --per-commit every tag of every commit is applied and untagged
commits contribute the default release type.

Commit messages are taken from the positional arguments and --message flags. When
none are given and the source is git, the messages of the commits since the latest
version tag are used.

Every flag can also be set with a COMMITBUMP_ environment variable (e.g.
COMMITBUMP_PER_COMMIT=true) or a YAML config file. GITHUB_TOKEN, GITHUB_REPOSITORY
and GITHUB_API_URL are honored for the github source.`

const examples = `  commitbump
  commitbump --base-version 1.0.0 "feat: add parser #minor"
  commitbump --per-commit -m "fix: typo" -m "feat: api #minor"
  commitbump --source github --github-repository owner/repo -o json
  commitbump --identifier beta --default-release-type prepatch
  commitbump --source file --version-file ./version.go --write
  commitbump --write --bump-file package.json --bump-file Cargo.toml -o version`

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "commitbump [flags] [message...]",
		Short:         "Compute the next semantic version from commit message tags",
		Long:          longHelp,
		Example:       examples,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	addFlags(cmd.Flags())
	return cmd
}

func addFlags(f *pflag.FlagSet) {
	f.String("config", "", "YAML config file (env COMMITBUMP_CONFIG)")
	f.String("base-version", "", "Version to increment; overrides the source lookup")
	f.String("source", config.SourceGit, "Where the base version comes from: git, github, file or none")
	f.String("repo", ".", "Path inside the local git repository")
	f.String("github-repository", "", "GitHub repository as owner/name")
	f.String("github-token", "", "GitHub token used for the tag lookup")
	f.String("github-api-url", "", "GitHub API base URL (GitHub Enterprise)")
	f.Uint64("github-retries", 3, "Retries for transient GitHub API failures")
	f.Duration("github-retry-delay", 0, "Initial delay between GitHub API retries (default 1s)")
	f.StringP("identifier", "i", "", "Prerelease identifier, e.g. beta")
	f.StringP("default-release-type", "d", "patch", "Release type used when no tag applies")
	f.Bool("per-commit", false, "Apply one increment per commit instead of one for the whole batch")
	f.StringArrayP("message", "m", nil, "Commit message to scan. May be repeated.")
	f.String("version-file", "", "Go file declaring Version = \"...\" (read by source file, written by --write)")
	f.StringArray("bump-file", nil, "Manifest (package.json, Cargo.toml, VERSION...) whose version --write updates. May be repeated.")
	f.Bool("write", false, "Write the new version to --version-file and --bump-file, and update go.mod for v2+ majors")
	f.StringP("output", "o", config.OutputText, "Output format: text, json, yaml or version")
	f.String("log-level", "info", "Log level: debug, info, warn, error or none")
	f.Bool("version", false, "Show CLI version and exit")
}

func run(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if show, _ := flags.GetBool("version"); show {
		fmt.Fprintln(cmd.OutOrStdout(), "commitbump CLI version", Version)
		return nil
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}
	log, err := logger.Get(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	defer func() { _ = log.Sync() }()

	messages := slices.Concat(cfg.Messages, args)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	in, err := collectInputs(ctx, cfg, messages, log)
	if err != nil {
		return err
	}

	res := commitbump.NewResolver(log).Resolve(in.base, cfg.Identifier, in.messages, cfg.DefaultReleaseType, cfg.PerCommit)
	rep := report{Result: res, Tag: in.tag, Source: cfg.Source}

	if cfg.Write {
		files, err := writeVersion(cfg.VersionFile, cfg.BumpFiles, res.NewVersion, log)
		if err != nil {
			return err
		}
		rep.UpdatedFiles = files
	}

	return render(cmd.OutOrStdout(), cfg.Output, rep)
}

// inputs are the resolver arguments gathered from the configured sources.
type inputs struct {
	base     string
	tag      string
	messages []string
}

func collectInputs(ctx context.Context, cfg *config.Config, messages []string, log *zap.Logger) (inputs, error) {
	in := inputs{base: cfg.BaseVersion, messages: messages}

	switch cfg.Source {
	case config.SourceGit:
		if in.base != "" && len(messages) > 0 {
			break
		}
		repo, err := commitbump.OpenRepository(cfg.Repo)
		if err != nil {
			return in, err
		}
		tag, v, err := repo.LatestVersionTag(ctx)
		switch {
		case errors.Is(err, commitbump.ErrNoVersion):
			log.Info("No version tag found, starting from 0.0.0")
		case err != nil:
			return in, err
		default:
			in.tag = tag
			if in.base == "" {
				in.base = v.String()
			}
		}
		if in.base == "" {
			in.base = "0.0.0"
		}
		if len(messages) == 0 {
			in.messages, err = repo.CommitMessagesSince(ctx, in.tag)
			if err != nil {
				return in, err
			}
			log.Debug("Read commit messages", zap.String("since", in.tag), zap.Int("count", len(in.messages)))
		}

	case config.SourceGitHub:
		if in.base != "" {
			break
		}
		lister, err := commitbump.NewGitHubTags(ctx, cfg.GitHubRepository, commitbump.GitHubOptions{
			Token:      cfg.GitHubToken,
			APIURL:     cfg.GitHubAPIURL,
			MaxRetries: cfg.GitHubRetries,
			RetryDelay: cfg.GitHubRetryDelay,
			Logger:     log,
		})
		if err != nil {
			return in, err
		}
		v, err := commitbump.MostRecentVersion(ctx, lister)
		if err != nil {
			return in, err
		}
		in.base = v.String()

	case config.SourceFile:
		if in.base != "" {
			break
		}
		s, err := commitbump.ReadVersionFile(cfg.VersionFile)
		switch {
		case errors.Is(err, os.ErrNotExist):
			log.Info("Version file not found, starting from 0.0.0", zap.String("file", cfg.VersionFile))
			in.base = "0.0.0"
		case err != nil:
			return in, err
		default:
			in.base = s
		}
	}

	log.Debug("Resolved inputs", zap.String("base", in.base), zap.String("tag", in.tag), zap.Int("messages", len(in.messages)))
	return in, nil
}

// writeVersion writes the version file and bump files and, for v2+ majors,
// the go.mod module path and the module's imports of itself. A bump file without a version declaration is skipped
// with a warning.
func writeVersion(versionFile string, bumpFiles []string, v commitbump.Version, log *zap.Logger) ([]string, error) {
	var files []string

	if versionFile != "" {
		if err := commitbump.WriteVersionFile(versionFile, v); err != nil {
			return nil, fmt.Errorf("writing version file: %w", err)
		}
		files = append(files, versionFile)

		if v.Major >= 2 {
			if dir, err := commitbump.LocateGoModDir(filepath.Dir(versionFile)); err == nil {
				migrated, err := commitbump.MigrateModule(dir, v)
				files = append(files, migrated...)
				if err != nil {
					return files, err
				}
			}
		}
	}

	for _, bf := range bumpFiles {
		changed, err := commitbump.UpdateManifestVersion(bf, v)
		if err != nil {
			return files, err
		}
		if !changed {
			log.Warn("No version declaration updated", zap.String("file", bf))
			continue
		}
		files = append(files, bf)
	}
	return files, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
