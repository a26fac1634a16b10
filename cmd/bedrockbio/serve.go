package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/tengxufei/bedrockbio/internal/artifact"
	"github.com/tengxufei/bedrockbio/internal/config"
	"github.com/tengxufei/bedrockbio/internal/history"
	"github.com/tengxufei/bedrockbio/internal/orchestrator"
	"github.com/tengxufei/bedrockbio/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dialogue streaming server",
	Long: `Start the HTTP server that streams dialogue runs over Server-Sent Events.

Endpoints:
  GET /run_task?task=...  stream one run as SSE frames
  GET /get_tasks          suggested task list
  GET /healthz            liveness check`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	orch, cleanup, err := buildOrchestrator(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	tasks, err := cfg.SuggestedTasks()
	if err != nil {
		return err
	}

	srv := server.New(orch, tasks)
	return srv.ListenAndServe(cfg.Server.Addr)
}

// buildOrchestrator wires history and artifact storage into a run
// orchestrator from loaded configuration. The returned cleanup closes the
// history store.
func buildOrchestrator(ctx context.Context, cfg *config.Config) (*orchestrator.Orchestrator, func(), error) {
	cleanup := func() {}

	var recorder orchestrator.Recorder
	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open history store: %w", err)
		}
		recorder = store
		cleanup = func() {
			if err := store.Close(); err != nil {
				log.Printf("[history] close: %v", err)
			}
		}
	}

	var reports orchestrator.ReportSaver
	if cfg.AWS.S3Bucket != "" {
		store, err := artifact.NewWithS3(ctx, cfg.Paths.OutputDir, cfg.AWS.S3Bucket, cfg.AWS.Region, cfg.AWS.Profile)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("configure S3 artifact store: %w", err)
		}
		reports = store
	} else {
		reports = artifact.NewLocal(cfg.Paths.OutputDir)
	}

	orch, err := orchestrator.New(orchestrator.Config{
		BaseDir:   cfg.Paths.BaseDir,
		OutputDir: cfg.Paths.OutputDir,
		Pacing: orchestrator.Pacing{
			Base:    cfg.Pacing.BaseDelay,
			PerChar: cfg.Pacing.PerCharDelay,
		},
		MaxConcurrentRuns: cfg.Limits.MaxConcurrentRuns,
		History:           recorder,
		Reports:           reports,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return orch, cleanup, nil
}
