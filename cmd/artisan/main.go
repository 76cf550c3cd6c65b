// Command artisan inspects directive files and applies them to class files.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

func main() {
	var verbose int
	var logFile string

	rootCmd := &cobra.Command{
		Use:           "artisan",
		Short:         "Apply directive files to JVM class files",
		Version:       version,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(verbose, logFile)
		},
	}
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newTreeCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newMetaCmd())
	rootCmd.AddCommand(newGrammarCmd())

	rootCmd.AddCommand(newApplyCmd())
	rootCmd.AddCommand(newCreateCmd())
	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// configureLogging maps the -v count onto commonlog verbosity: notices and
// worse by default, then info, then debug.
func configureLogging(verbose int, logFile string) {
	var path *string
	if logFile != "" {
		path = &logFile
	}
	commonlog.Configure(verbose, path)
}
