package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tengxufei/bedrockbio/internal/config"
	"github.com/tengxufei/bedrockbio/internal/orchestrator"
	"github.com/tengxufei/bedrockbio/internal/stream"
	"github.com/tengxufei/bedrockbio/internal/tui"
)

var runTUI bool

var runCmd = &cobra.Command{
	Use:   "run <task>",
	Short: "Run one dialogue task in the terminal",
	Long: `Run a single dialogue task and stream its events to the terminal.

The task is routed to a qPCR primer design, sequence analysis, or generic
planning dialogue. Events print as they are emitted; the final report is
also saved under the output directory.

Use --tui for a live full-screen view instead of line output.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTask,
}

func init() {
	runCmd.Flags().BoolVar(&runTUI, "tui", false, "Render the run in a live TUI")
}

func runTask(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	orch, cleanup, err := buildOrchestrator(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	task := strings.Join(args, " ")
	run, err := orch.Start(ctx, task)
	if err != nil {
		return err
	}

	if runTUI {
		view := tui.NewRunView(ctx, run)
		if _, err := tea.NewProgram(view, tea.WithAltScreen()).Run(); err != nil {
			return fmt.Errorf("run TUI: %w", err)
		}
		if report := view.Report(); report != "" {
			fmt.Println(report)
		}
		return nil
	}

	return streamToTerminal(ctx, run)
}

var (
	stageColor = color.New(color.FgCyan)
	errColor   = color.New(color.FgRed, color.Bold)
	chatColor  = color.New(color.FgGreen)
	dimColor   = color.New(color.Faint)
)

// streamToTerminal drains a run, printing each event as a colored line.
func streamToTerminal(ctx context.Context, run *orchestrator.Run) error {
	for {
		ev, ok := run.Next(ctx)
		if !ok {
			break
		}
		switch ev.Type {
		case stream.EventStatus:
			if ev.Status == stream.StageError {
				errColor.Printf("[%s] %s\n", ev.Stage, ev.Message)
			} else {
				stageColor.Printf("[%s] %s\n", ev.Stage, ev.Message)
			}
		case stream.EventLog:
			fmt.Println(ev.Content)
		case stream.EventChatMessage:
			chatColor.Println(ev.Content)
		case stream.EventReport:
			fmt.Println()
			fmt.Println(ev.Content)
		case stream.EventClose:
			dimColor.Println(ev.Message)
		}
	}
	if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
