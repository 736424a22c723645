package flags

import (
	"github.com/spf13/cobra"
)

// CommonScanOptions are the flags shared by the scan and tree commands.
type CommonScanOptions struct {
	CustomPatterns string
	MaxFileSize    string
	Threads        int
}

// AddCommonScanFlags adds the standard scanning flags shared across commands.
func AddCommonScanFlags(cmd *cobra.Command, opts *CommonScanOptions) {
	cmd.Flags().StringVarP(&opts.CustomPatterns, "pattern", "p", "",
		"Additional comma-separated regex patterns to match against lifecycle scripts")
	cmd.Flags().StringVarP(&opts.MaxFileSize, "max-file-size", "", "5Mb",
		"Maximum metadata file size to scan. Larger files are skipped. Format: https://pkg.go.dev/github.com/docker/go-units#FromHumanSize")
	cmd.Flags().IntVarP(&opts.Threads, "threads", "", 1,
		"Number of concurrent package scans during tree walks. Output ordering is stable regardless.")
}

// CommonFlagMappings maps the shared flags to their Viper configuration keys.
func CommonFlagMappings() map[string]string {
	return map[string]string{
		"pattern":       "scan.custom_patterns",
		"max-file-size": "scan.max_file_size",
		"threads":       "common.threads",
	}
}
