package cmd

import (
	"github.com/spf13/cobra"

	"github.com/user/fraudscope/pkg/logging"
)

var rootCmd = &cobra.Command{
	Use:   "fraudscope",
	Short: "Multi-signal document fraud and violation detection",
	Long: `Fraudscope scores documents for indicators of fraud or regulatory
violation by running independent pattern, text, quantitative, and anomaly
analyzers and fusing their outputs into a ranked, filtered finding list.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.InitLogger(DebugMode)
	},
}

var DebugMode bool

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&DebugMode, "debug", false, "Enable debug logging")
}
