package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tengxufei/bedrockbio/internal/agents"
	"github.com/tengxufei/bedrockbio/internal/config"
)

var critiqueMarkers string

var critiqueCmd = &cobra.Command{
	Use:   "critique",
	Short: "Draft a scientific critique of marker-gene results",
	Long: `Read a marker-gene CSV (cluster and gene columns), summarize the top
genes per cluster, and ask the model for a scientific critique. The
critique is printed and saved as scientific_critique.md in the output
directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(cfg.Paths.OutputDir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}

		client, err := buildLLMClient(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		critique, err := agents.NewCritic(client).Review(cmd.Context(), critiqueMarkers, cfg.Paths.OutputDir)
		if err != nil {
			return err
		}
		fmt.Println(critique)
		return nil
	},
}

func init() {
	critiqueCmd.Flags().StringVar(&critiqueMarkers, "markers", "", "Path to the marker-gene CSV")
	critiqueCmd.MarkFlagRequired("markers")
}
