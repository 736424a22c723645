package docs

import (
	"github.com/hooksentry/hooksentry/pkg/docs"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var outputDir string

// NewDocsCmd creates the docs command which generates markdown documentation
// for the full command tree.
func NewDocsCmd(rootCmd *cobra.Command) *cobra.Command {
	docsCmd := &cobra.Command{
		Use:     "docs",
		Short:   "Generate markdown CLI documentation",
		GroupID: "Helper",
		Hidden:  true,
		Run: func(cmd *cobra.Command, args []string) {
			if err := docs.Generate(docs.GenerateOptions{
				RootCmd:   rootCmd,
				OutputDir: outputDir,
			}); err != nil {
				log.Fatal().Err(err).Msg("Failed generating documentation")
			}
			log.Info().Str("dir", outputDir).Msg("Documentation generated")
		},
	}

	docsCmd.Flags().StringVarP(&outputDir, "output", "o", "docs/cli", "Output directory for the generated markdown files")

	return docsCmd
}
