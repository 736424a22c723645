package tree

import (
	"os"

	"github.com/docker/go-units"
	"github.com/hooksentry/hooksentry/internal/cmd/flags"
	"github.com/hooksentry/hooksentry/pkg/config"
	"github.com/hooksentry/hooksentry/pkg/report"
	"github.com/hooksentry/hooksentry/pkg/scanner"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var options = flags.CommonScanOptions{}

func NewTreeCmd() *cobra.Command {
	treeCmd := &cobra.Command{
		Use:     "tree [node_modules]",
		Short:   "Scan a dependency directory",
		GroupID: "Scan",
		Long: `Walk a dependency directory (typically node_modules), scan every package's
metadata file including one level of @scope-namespaced packages, and report the
packages worth reviewing. Clean packages are omitted.

Unreadable or malformed packages are skipped and counted; the walk never aborts
because of one bad package.`,
		Example: `
# Scan a project's installed dependencies
hooksentry tree ./node_modules

# Scan with 8 concurrent workers and skip metadata files over 1Mb
hooksentry tree ./node_modules --threads 8 --max-file-size 1Mb
		`,
		Args: cobra.ExactArgs(1),
		Run:  Tree,
	}

	flags.AddCommonScanFlags(treeCmd, &options)

	return treeCmd
}

func Tree(cmd *cobra.Command, args []string) {
	// Bind flags to Viper configuration keys for automatic priority handling
	if err := config.BindFlags(cmd.Flags(), flags.CommonFlagMappings()); err != nil {
		log.Fatal().Err(err).Msg("Failed to bind flags")
	}

	customPatterns := config.GetString("scan.custom_patterns")
	maxFileSizeStr := config.GetString("scan.max_file_size")
	threads := config.GetInt("common.threads")

	maxFileSize, err := units.FromHumanSize(maxFileSizeStr)
	if err != nil {
		log.Fatal().Err(err).Str("maxFileSize", maxFileSizeStr).Msg("Invalid max file size")
	}

	analyzer := scanner.NewAnalyzer(scanner.ParseCustomPatterns(customPatterns)...)

	result, err := analyzer.ScanTree(cmd.Context(), args[0], scanner.TreeOptions{
		MaxFileSize: maxFileSize,
		Threads:     threads,
	})
	if err != nil {
		log.Fatal().Err(err).Str("root", args[0]).Msg("Failed scanning dependency tree")
	}

	report.RenderTree(result)

	if report.BlockingRiskCount(result.Results) > 0 {
		os.Exit(1)
	}
}
