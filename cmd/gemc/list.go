package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/jingkaihe/gemc/pkg/compiler"
	"github.com/jingkaihe/gemc/pkg/config"
	"github.com/jingkaihe/gemc/pkg/presenter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	KindTemplate        = "template"
	KindSkill           = "skill"
	KindSkillShadowed   = "skill (shadowed by template)"
	noOutputPlaceholder = "-"
)

// ListConfig holds configuration for the list command
type ListConfig struct {
	JSON bool
}

// NewListConfig creates a new ListConfig with default values
func NewListConfig() *ListConfig {
	return &ListConfig{JSON: false}
}

// ListEntry is one command source known to gemc.
type ListEntry struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Source string `json:"source"`
	Output string `json:"output,omitempty"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the templates and skills gemc would compile",
	Long: `List every template and skill gemc would turn into a command file, with the
file each command is read from and the file it is written to. Skills that
share a name with a template are shown as shadowed.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		config := getListConfigFromFlags(cmd)
		if err := runList(cmd.Context(), settings, config, os.Stdout); err != nil {
			presenter.Error(err, "Failed to list commands")
			os.Exit(1)
		}
	},
}

func init() {
	defaults := NewListConfig()
	listCmd.Flags().Bool("json", defaults.JSON, "Output as JSON")
}

func getListConfigFromFlags(cmd *cobra.Command) *ListConfig {
	config := NewListConfig()
	if asJSON, err := cmd.Flags().GetBool("json"); err == nil {
		config.JSON = asJSON
	}
	return config
}

func runList(ctx context.Context, s *config.Settings, lc *ListConfig, w io.Writer) error {
	entries, err := collectEntries(ctx, s)
	if err != nil {
		return err
	}

	if lc.JSON {
		if entries == nil {
			entries = []ListEntry{}
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to encode entries")
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No templates or skills found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tSOURCE\tOUTPUT")
	fmt.Fprintln(tw, "----\t----\t------\t------")
	for _, e := range entries {
		output := e.Output
		if output == "" {
			output = noOutputPlaceholder
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Name, e.Kind, e.Source, output)
	}
	return tw.Flush()
}

// collectEntries lists templates then skills, in name order within each
// group. Paths are shown relative to the project root where possible.
func collectEntries(ctx context.Context, s *config.Settings) ([]ListEntry, error) {
	c, err := compiler.New(s.CompilerConfig())
	if err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	cfg := c.Config()

	templates, err := c.Templates()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	var entries []ListEntry
	explicit := make(map[string]struct{}, len(templates))
	for _, name := range templates {
		explicit[name] = struct{}{}
		entries = append(entries, ListEntry{
			Name:   name,
			Kind:   KindTemplate,
			Source: displayPath(cfg.ProjectRoot, filepath.Join(cfg.TemplateDir, name)),
			Output: displayPath(cfg.ProjectRoot, filepath.Join(cfg.OutputDir, name)),
		})
	}

	found, err := c.Skills(ctx)
	if err != nil {
		return nil, err
	}
	for _, skill := range found {
		name := skill.Name + cfg.Extension
		entry := ListEntry{
			Name:   name,
			Kind:   KindSkill,
			Source: compiler.SkillReference(cfg.ProjectRoot, skill),
			Output: displayPath(cfg.ProjectRoot, filepath.Join(cfg.OutputDir, name)),
		}
		if _, ok := explicit[name]; ok {
			entry.Kind = KindSkillShadowed
			entry.Output = ""
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func displayPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
