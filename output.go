package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bcomnes/commitbump/internal/config"
	commitbump "github.com/bcomnes/commitbump/pkg"
)

// report is what the CLI prints.
type report struct {
	commitbump.Result `yaml:",inline"`
	Source            string   `json:"source" yaml:"source"`
	Tag               string   `json:"tag,omitempty" yaml:"tag,omitempty"`
	UpdatedFiles      []string `json:"updated_files,omitempty" yaml:"updated_files,omitempty"`
}

func render(w io.Writer, format string, rep report) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case config.OutputVersion:
		_, err := fmt.Fprintln(w, rep.NewVersion)
		return err
	default:
		return renderText(w, rep)
	}
}

func renderText(w io.Writer, rep report) error {
	types := make([]string, len(rep.ReleaseTypes))
	for i, rt := range rep.ReleaseTypes {
		types[i] = rt.String()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Old Version:   %s\n", rep.OldVersion)
	fmt.Fprintf(&b, "New Version:   %s\n", rep.NewVersion)
	fmt.Fprintf(&b, "Release Types: %s\n", strings.Join(types, ", "))
	fmt.Fprintf(&b, "Commits:       %d\n", rep.Commits)
	if rep.Tag != "" {
		fmt.Fprintf(&b, "Latest Tag:    %s\n", rep.Tag)
	}
	if len(rep.UpdatedFiles) > 0 {
		b.WriteString("Files updated:\n")
		for _, f := range rep.UpdatedFiles {
			fmt.Fprintf(&b, "  %s\n", f)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
