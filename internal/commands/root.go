package commands

import (
	"os"

	"github.com/ppiankov/floodspectre/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose   bool
	logFormat string
	version   string
	commit    string
	date      string
)

var rootCmd = &cobra.Command{
	Use:   "floodspectre",
	Short: "floodspectre: flood control project spending analyzer",
	Long: `floodspectre reads a public works flood control project dataset and produces
regional efficiency, contractor performance and annual cost overrun reports.

Reports are exported as CSV with a JSON summary and run manifest.`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		format, err := logging.ParseFormat(logFormat)
		if err != nil {
			return err
		}
		logging.Setup(os.Stderr, verbose, format)
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with injected build info.
func Execute(v, c, d string) error {
	version = v
	commit = c
	date = d
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
