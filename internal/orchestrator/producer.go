package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tengxufei/bedrockbio/internal/stream"
)

// Agent display labels. These identify which simulated persona "said" a
// dialogue line; they carry no execution identity.
const (
	agentOrchestrator       = "Orchestrator"
	agentMolecularBiologist = "MolecularBiologist"
	agentBioinformatician   = "Bioinformatician"
	agentScientificCritic   = "ScientificCritic"
	agentSequenceAnalyst    = "SequenceAnalyst"
	agentExpert             = "ExpertAgent"
	agentCritic             = "CriticAgent"
)

// RunState tracks where a run is in its lifecycle. Transitions are strictly
// planning -> executing -> (completed | errored) -> closed; closed is
// terminal and reached on every exit path.
type RunState string

const (
	StatePlanning  RunState = "planning"
	StateExecuting RunState = "executing"
	StateCompleted RunState = "completed"
	StateErrored   RunState = "errored"
	StateClosed    RunState = "closed"
)

// Pacing controls the artificial delay after each dialogue line. The delay
// grows with message length so longer messages pause longer, which is what
// makes the stream read like a live conversation. It is presentation, not
// throughput control.
type Pacing struct {
	// Base is the fixed delay after every line.
	Base time.Duration
	// PerChar is the additional delay per character of the message.
	PerChar time.Duration
}

// DefaultPacing is the conversational cadence used in production.
var DefaultPacing = Pacing{Base: 1500 * time.Millisecond, PerChar: 6 * time.Millisecond}

// Delay returns the pause for a message of the given text.
func (pc Pacing) Delay(message string) time.Duration {
	return pc.Base + time.Duration(len(message))*pc.PerChar
}

// dialogueScript is one scripted dialogue branch. It emits status and log
// events through the producer and returns the final report markdown and the
// closing chat message. Scripts must return promptly once ctx is canceled;
// the producer's log helper propagates cancellation for them.
type dialogueScript func(ctx context.Context, p *producer) (report, chat string, err error)

// outcome summarizes how a run ended, for history recording.
type outcome struct {
	status string // "completed", "error" or "canceled"
	errMsg string
	report string
}

// producer executes one run's dialogue script on a dedicated goroutine and
// owns the write side of the run's channel.
type producer struct {
	task   string
	topic  string
	branch Branch
	script dialogueScript
	pacing Pacing
	ch     *stream.Channel
	rc     *RunContext

	mu    sync.Mutex
	state RunState
}

func newProducer(task string, branch Branch, topic string, pacing Pacing, ch *stream.Channel) *producer {
	return &producer{
		task:   task,
		topic:  topic,
		branch: branch,
		script: branch.script(),
		pacing: pacing,
		ch:     ch,
		rc:     &RunContext{},
		state:  StatePlanning,
	}
}

func (p *producer) setState(s RunState) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}

// State returns the producer's current lifecycle state.
func (p *producer) State() RunState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// run executes the dialogue script and shuts the channel down. The channel is
// closed on every exit path, including panics inside script steps, and the
// close event always precedes the channel close. A step failure degrades to
// one error log line plus exactly one error status; it never leaks an open
// channel or a raw stack trace to the consumer.
func (p *producer) run(ctx context.Context) outcome {
	defer func() {
		p.setState(StateClosed)
		p.ch.Close()
	}()

	report, chat, err := p.execute(ctx)
	var out outcome
	switch {
	case err == nil:
		p.setState(StateCompleted)
		p.status("Processing Complete", stream.StageCompleted, "Workflow finished.")
		p.ch.Send(stream.ReportEvent(report))
		p.ch.Send(stream.ChatEvent(chat))
		out = outcome{status: "completed", report: report}
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		// Consumer went away; no one is reading, so skip the error events.
		p.setState(StateErrored)
		out = outcome{status: "canceled", errMsg: err.Error()}
	default:
		p.setState(StateErrored)
		p.emitLog(agentOrchestrator, fmt.Sprintf("An error occurred during the simulation: %v", err))
		p.status("Error", stream.StageError, err.Error())
		out = outcome{status: "error", errMsg: err.Error()}
	}
	p.ch.Send(stream.CloseEvent("Stream finished"))
	return out
}

// execute runs the branch script, converting panics into ordinary errors so
// a malformed step cannot take down the stream.
func (p *producer) execute(ctx context.Context) (report, chat string, err error) {
	defer func() {
		if r := recover(); r != nil {
			report, chat = "", ""
			err = fmt.Errorf("dialogue step panicked: %v", r)
		}
	}()
	if err := ctx.Err(); err != nil {
		return "", "", err
	}
	p.setState(StateExecuting)
	return p.script(ctx, p)
}

// status emits a high-level phase marker.
func (p *producer) status(stage string, st stream.StageStatus, message string) {
	p.ch.Send(stream.StatusEvent(stage, st, message))
}

// log emits one attributed dialogue line, records it in the run history, and
// pauses for the pacing delay. Returns ctx.Err() if the consumer canceled
// during the pause so scripts stop at the next step boundary.
func (p *producer) log(ctx context.Context, agent, message string) error {
	p.emitLog(agent, message)
	return p.pause(ctx, message)
}

func (p *producer) emitLog(agent, message string) {
	line := fmt.Sprintf("%s **%s:** %s", time.Now().Format("[15:04:05]"), agent, message)
	p.ch.Send(stream.LogEvent(line))
	p.rc.Record(agent, message)
}

func (p *producer) pause(ctx context.Context, message string) error {
	d := p.pacing.Delay(message)
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
