package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tengxufei/bedrockbio/internal/agents"
	"github.com/tengxufei/bedrockbio/internal/config"
)

var interpretSummary string

var interpretCmd = &cobra.Command{
	Use:   "interpret",
	Short: "Draft a biological interpretation of an analysis summary",
	Long: `Read an analysis summary from a file and ask the model for a biological
interpretation. The interpretation is printed and saved as
biological_interpretation.md in the output directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(cfg.Paths.OutputDir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}

		data, err := os.ReadFile(interpretSummary)
		if err != nil {
			return fmt.Errorf("read summary file: %w", err)
		}

		client, err := buildLLMClient(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		text, err := agents.NewInterpreter(client).Interpret(cmd.Context(), string(data), cfg.Paths.OutputDir)
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	},
}

func init() {
	interpretCmd.Flags().StringVar(&interpretSummary, "summary", "", "Path to the analysis summary file")
	interpretCmd.MarkFlagRequired("summary")
}
