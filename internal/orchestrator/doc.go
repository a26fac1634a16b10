// Package orchestrator runs simulated multi-agent scientific dialogues and
// streams them to consumers.
//
// The orchestrator package provides functionality for:
//   - Run lifecycle: one producer goroutine and one event channel per run,
//     created together and discarded together
//   - Branch dispatch: selecting a dialogue script from the task text once,
//     at run start (primer design, sequence analysis, or task planning)
//   - Pacing: delaying after each dialogue line in proportion to its length
//     so the stream reads like a live conversation
//
// A run always terminates its stream: every exit path, including step
// failures, panics and consumer cancellation, emits a final close event and
// closes the channel.
//
// Example usage:
//
//	orch, err := orchestrator.New(orchestrator.Config{OutputDir: "output"})
//	run, err := orch.Start(ctx, "Design qPCR primers for TP53")
//	for {
//		ev, ok := run.Next(ctx)
//		if !ok {
//			break
//		}
//		fmt.Printf("%s\n", ev.Marshal())
//	}
package orchestrator
