// Package config loads commitbump settings from flags, the environment and an
// optional YAML file.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	commitbump "github.com/bcomnes/commitbump/pkg"
)

// Base version sources.
const (
	SourceGit    = "git"
	SourceGitHub = "github"
	SourceFile   = "file"
	SourceNone   = "none"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
	// OutputVersion prints only the new version, for shell pipelines.
	OutputVersion = "version"
)

// EnvPrefix prefixes every environment variable read, e.g. COMMITBUMP_PER_COMMIT.
const EnvPrefix = "COMMITBUMP"

var (
	sources = []string{SourceGit, SourceGitHub, SourceFile, SourceNone}
	outputs = []string{OutputText, OutputJSON, OutputYAML, OutputVersion}
)

// Config holds the resolved settings of one run.
type Config struct {
	ConfigFile string `mapstructure:"config"`

	BaseVersion string `mapstructure:"base-version"`
	Source      string `mapstructure:"source"`
	Repo        string `mapstructure:"repo"`

	GitHubRepository string        `mapstructure:"github-repository"`
	GitHubToken      string        `mapstructure:"github-token"`
	GitHubAPIURL     string        `mapstructure:"github-api-url"`
	GitHubRetries    uint64        `mapstructure:"github-retries"`
	GitHubRetryDelay time.Duration `mapstructure:"github-retry-delay"`

	Identifier         string `mapstructure:"identifier"`
	DefaultReleaseType string `mapstructure:"default-release-type"`
	PerCommit          bool   `mapstructure:"per-commit"`

	// Messages are commit messages to scan instead of the repository history.
	Messages []string `mapstructure:"message"`

	VersionFile string   `mapstructure:"version-file"`
	BumpFiles   []string `mapstructure:"bump-file"`
	Write       bool     `mapstructure:"write"`

	Output   string `mapstructure:"output"`
	LogLevel string `mapstructure:"log-level"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("source", SourceGit)
	v.SetDefault("repo", ".")
	v.SetDefault("github-retries", 3)
	v.SetDefault("github-retry-delay", time.Second)
	v.SetDefault("default-release-type", "patch")
	v.SetDefault("per-commit", false)
	v.SetDefault("write", false)
	v.SetDefault("output", OutputText)
	v.SetDefault("log-level", "info")
}

// Load resolves the configuration. Precedence is flag, environment, config
// file, default. flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// The GitHub Actions variables are honored without the prefix.
	for key, env := range map[string]string{
		"github-token":      "GITHUB_TOKEN",
		"github-repository": "GITHUB_REPOSITORY",
		"github-api-url":    "GITHUB_API_URL",
	} {
		envKey := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
		if err := v.BindEnv(key, envKey, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("binding flags: %w", err)
		}
	}

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %q: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	cfg.Source = strings.ToLower(cfg.Source)
	cfg.Output = strings.ToLower(cfg.Output)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings that cannot produce a run. An unknown default
// release type is not an error; it falls back to patch when resolving.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains(sources, c.Source) {
		errs = append(errs, fmt.Errorf("source must be one of %s, got %q", strings.Join(sources, ", "), c.Source))
	}
	if !slices.Contains(outputs, c.Output) {
		errs = append(errs, fmt.Errorf("output must be one of %s, got %q", strings.Join(outputs, ", "), c.Output))
	}
	if c.Source == SourceGitHub && c.GitHubRepository == "" && c.BaseVersion == "" {
		errs = append(errs, errors.New("source github requires github-repository (or GITHUB_REPOSITORY)"))
	}
	if c.Source == SourceFile && c.VersionFile == "" && c.BaseVersion == "" {
		errs = append(errs, errors.New("source file requires version-file"))
	}
	if !commitbump.ValidIdentifier(c.Identifier) {
		errs = append(errs, fmt.Errorf("identifier %q is not a valid prerelease identifier", c.Identifier))
	}
	if c.Write && c.VersionFile == "" && len(c.BumpFiles) == 0 {
		errs = append(errs, errors.New("write requires version-file or bump-file"))
	}
	return errors.Join(errs...)
}
