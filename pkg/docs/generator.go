// Package docs generates markdown CLI documentation plus a mkdocs-style
// navigation file from the cobra command tree.
package docs

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/hooksentry/hooksentry/pkg/format"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// GenerateOptions contains options for documentation generation
type GenerateOptions struct {
	RootCmd   *cobra.Command
	OutputDir string
}

// Generate writes one markdown file per command and a nav.yaml index into
// the output directory.
func Generate(opts GenerateOptions) error {
	if err := os.MkdirAll(opts.OutputDir, format.DirUserGroupRead); err != nil {
		return err
	}

	if err := generateDocs(opts.RootCmd, opts.OutputDir); err != nil {
		return err
	}

	return writeNavYaml(opts.RootCmd, opts.OutputDir)
}

func fileName(cmd *cobra.Command) string {
	return strings.ReplaceAll(cmd.CommandPath(), " ", "_") + ".md"
}

func linkHandler(s string) string {
	s = strings.TrimSuffix(s, ".md")
	s = strings.ReplaceAll(s, "_", "/")
	return "/" + s
}

func generateDocs(cmd *cobra.Command, dir string) error {
	filename := filepath.Join(dir, fileName(cmd))

	// #nosec G304 - Creating docs markdown file at controlled internal path during docs generation
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := doc.GenMarkdownCustom(cmd, f, linkHandler); err != nil {
		return err
	}

	for _, c := range cmd.Commands() {
		if !c.IsAvailableCommand() || c.IsAdditionalHelpTopicCommand() {
			continue
		}
		// Autocompletion and docs commands are not part of the user docs
		if c.Name() == "completion" || c.Name() == "docs" {
			continue
		}
		if err := generateDocs(c, dir); err != nil {
			return err
		}
	}

	return nil
}

func buildNav(cmd *cobra.Command) []map[string]interface{} {
	titleCaser := cases.Title(language.Und, cases.NoLower)

	nav := []map[string]interface{}{
		{titleCaser.String(cmd.Name()): strings.TrimSuffix(fileName(cmd), ".md")},
	}
	for _, c := range cmd.Commands() {
		if !c.IsAvailableCommand() || c.IsAdditionalHelpTopicCommand() {
			continue
		}
		if c.Name() == "completion" || c.Name() == "docs" {
			continue
		}
		nav = append(nav, buildNav(c)...)
	}
	return nav
}

func writeNavYaml(rootCmd *cobra.Command, dir string) error {
	data, err := yaml.Marshal(map[string]interface{}{"nav": buildNav(rootCmd)})
	if err != nil {
		return err
	}
	// #nosec G306 - Documentation nav file should be readable by docs tooling
	return os.WriteFile(filepath.Join(dir, "nav.yaml"), data, 0o644)
}
