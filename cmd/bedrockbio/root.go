package main

import (
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "bedrockbio",
	Short: "Simulated multi-agent bioinformatics review server",
	Long: `Bedrockbio streams a staged dialogue between simulated research agents
working through a bioinformatics task, from planning to a final markdown
report.

With no arguments, starts the HTTP server and streams runs over
Server-Sent Events at /run_task.

Core capabilities:
- Routes tasks to a qPCR primer design, sequence analysis, or planning dialogue
- Streams status, log, chat and report events in order over SSE
- Saves completed reports locally and optionally mirrors them to S3
- Records run history in SQLite
- Drafts critiques, interpretations and reports via Claude (direct or Bedrock)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ~/.config/bedrockbio/config.yaml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(critiqueCmd)
	rootCmd.AddCommand(interpretCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
