package cli

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ptlint",
		Short: "Audit a ports tree index against its per-port build recipes",
		Long: `Ptlint cross-checks the ports INDEX file against each port's Makefile
and reports inconsistencies, staleness and policy violations per port
and per maintainer.

Findings are notifications, not log lines: logging stays at warning
level unless raised, while the report goes to stdout or a CSV file.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Findings are the product, logs are diagnostics
			debug, _ := cmd.Flags().GetBool("debug")
			info, _ := cmd.Flags().GetBool("info")
			switch {
			case debug || os.Getenv("PTLINT_DEBUG") != "":
				logrus.SetLevel(logrus.DebugLevel)
			case info:
				logrus.SetLevel(logrus.InfoLevel)
			default:
				logrus.SetLevel(logrus.WarnLevel)
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("info", false, "Enable logging at info level")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable logging at debug level")
	rootCmd.PersistentFlags().String("config", "", "Configuration file (default ~/.ptlint)")

	// Add subcommands
	rootCmd.AddCommand(NewLintCmd())
	rootCmd.AddCommand(NewCategoriesCmd())
	rootCmd.AddCommand(NewMaintainersCmd())
	rootCmd.AddCommand(NewConfigCmd())

	return rootCmd
}
