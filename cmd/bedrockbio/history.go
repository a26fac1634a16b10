package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tengxufei/bedrockbio/internal/config"
	"github.com/tengxufei/bedrockbio/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		store, err := history.Open(cfg.History.DBPath)
		if err != nil {
			return fmt.Errorf("open history store: %w", err)
		}
		defer store.Close()

		recs, err := store.Recent(historyLimit)
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			fmt.Println("No runs recorded yet.")
			return nil
		}

		statusColors := map[string]*color.Color{
			"completed": color.New(color.FgGreen),
			"error":     color.New(color.FgRed),
			"canceled":  color.New(color.FgYellow),
		}
		for _, rec := range recs {
			c, ok := statusColors[rec.Status]
			if !ok {
				c = color.New(color.Faint)
			}
			fmt.Printf("%s  %s  %-17s  %s\n",
				rec.StartedAt.Local().Format("2006-01-02 15:04:05"),
				c.Sprintf("%-9s", rec.Status),
				rec.Branch,
				rec.Task)
			if rec.Error != "" {
				fmt.Printf("    error: %s\n", rec.Error)
			}
			if rec.ReportPath != "" {
				fmt.Printf("    report: %s\n", rec.ReportPath)
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs to list")
}
