package scan

import (
	"os"

	"github.com/hooksentry/hooksentry/internal/cmd/flags"
	"github.com/hooksentry/hooksentry/pkg/config"
	"github.com/hooksentry/hooksentry/pkg/report"
	"github.com/hooksentry/hooksentry/pkg/scanner"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var options = flags.CommonScanOptions{}

func NewScanCmd() *cobra.Command {
	scanCmd := &cobra.Command{
		Use:     "scan [package.json]",
		Short:   "Scan a single package metadata file",
		GroupID: "Scan",
		Long: `Scan one package.json for risky lifecycle scripts.

Unlike the tree command, a missing or malformed metadata file is reported as an error.`,
		Example: `
# Scan one manifest
hooksentry scan ./node_modules/left-pad/package.json

# Scan with an additional custom pattern
hooksentry scan ./package.json --pattern 'nc\s+-e'
		`,
		Args: cobra.ExactArgs(1),
		Run:  Scan,
	}

	flags.AddCommonScanFlags(scanCmd, &options)

	return scanCmd
}

func Scan(cmd *cobra.Command, args []string) {
	// Bind flags to Viper configuration keys for automatic priority handling
	if err := config.BindFlags(cmd.Flags(), flags.CommonFlagMappings()); err != nil {
		log.Fatal().Err(err).Msg("Failed to bind flags")
	}

	customPatterns := config.GetString("scan.custom_patterns")
	analyzer := scanner.NewAnalyzer(scanner.ParseCustomPatterns(customPatterns)...)

	result, err := analyzer.ScanManifestFile(args[0])
	if err != nil {
		log.Fatal().Err(err).Str("path", args[0]).Msg("Failed scanning package metadata")
	}

	report.RenderResult(result)

	if report.BlockingRiskCount([]scanner.PackageScanResult{result}) > 0 {
		os.Exit(1)
	}
}
