package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tengxufei/bedrockbio/internal/stream"
)

// drainChannel reads until the channel reports drained.
func drainChannel(t *testing.T, ch *stream.Channel) []stream.Event {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var events []stream.Event
	for {
		ev, ok := ch.Receive(ctx)
		if !ok {
			return events
		}
		events = append(events, ev)
	}
}

func TestProducer_StepErrorStillCloses(t *testing.T) {
	ch := stream.NewChannel()
	p := newProducer("some task", BranchTaskPlanning, "some task", testPacing, ch)
	p.script = func(ctx context.Context, p *producer) (string, string, error) {
		if err := p.log(ctx, agentExpert, "first line goes out fine"); err != nil {
			return "", "", err
		}
		return "", "", errors.New("unexpected empty extraction")
	}

	go p.run(context.Background())
	events := drainChannel(t, ch)

	if len(events) == 0 {
		t.Fatal("no events emitted")
	}
	last := events[len(events)-1]
	if last.Type != stream.EventClose {
		t.Errorf("last event = %s, want close", last.Type)
	}

	var errStatuses, reports int
	var errLog bool
	for _, ev := range events {
		switch {
		case ev.Type == stream.EventStatus && ev.Status == stream.StageError:
			errStatuses++
			if !strings.Contains(ev.Message, "unexpected empty extraction") {
				t.Errorf("error status message = %q, want failure description", ev.Message)
			}
		case ev.Type == stream.EventReport:
			reports++
		case ev.Type == stream.EventLog && strings.Contains(ev.Content, agentOrchestrator) && strings.Contains(ev.Content, "error occurred"):
			errLog = true
		}
	}
	if errStatuses != 1 {
		t.Errorf("error status count = %d, want exactly 1", errStatuses)
	}
	if reports != 0 {
		t.Errorf("failed run emitted %d reports, want 0", reports)
	}
	if !errLog {
		t.Error("failure was not logged by the coordinating agent")
	}
	if p.State() != StateClosed {
		t.Errorf("state = %s, want closed", p.State())
	}
}

func TestProducer_PanicIsContained(t *testing.T) {
	ch := stream.NewChannel()
	p := newProducer("some task", BranchTaskPlanning, "some task", testPacing, ch)
	p.script = func(ctx context.Context, p *producer) (string, string, error) {
		var steps []string
		_ = steps[3] // out-of-range access inside a step
		return "", "", nil
	}

	go p.run(context.Background())
	events := drainChannel(t, ch)

	if len(events) == 0 || events[len(events)-1].Type != stream.EventClose {
		t.Fatal("panicking run did not end with a close event")
	}
	found := false
	for _, ev := range events {
		if ev.Type == stream.EventStatus && ev.Status == stream.StageError {
			found = true
			if strings.Contains(ev.Message, "goroutine") {
				t.Errorf("error status leaks a stack trace: %q", ev.Message)
			}
		}
	}
	if !found {
		t.Error("panicking run emitted no error status")
	}
}

func TestProducer_CancellationClosesQuietly(t *testing.T) {
	ch := stream.NewChannel()
	p := newProducer("some task", BranchTaskPlanning, "some task", Pacing{Base: time.Minute}, ch)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan outcome, 1)
	go func() { done <- p.run(ctx) }()

	// Let the first line go out, then hang up mid-pause.
	time.Sleep(20 * time.Millisecond)
	cancel()

	var out outcome
	select {
	case out = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("producer did not stop after cancellation")
	}
	if out.status != "canceled" {
		t.Errorf("outcome status = %q, want canceled", out.status)
	}

	events := drainChannel(t, ch)
	if len(events) == 0 || events[len(events)-1].Type != stream.EventClose {
		t.Error("canceled run did not end with a close event")
	}
	for _, ev := range events {
		if ev.Type == stream.EventStatus && ev.Status == stream.StageError {
			t.Error("canceled run emitted an error status; cancellation is not a failure")
		}
	}
}

func TestProducer_RecordsHistoryTurns(t *testing.T) {
	ch := stream.NewChannel()
	p := newProducer("Analyze ATGCGTACGTAGCTAGC", BranchSequenceAnalysis, "ATGCGTACGTAGCTAGC", testPacing, ch)

	go p.run(context.Background())
	drainChannel(t, ch)

	if p.rc.Len() == 0 {
		t.Fatal("run context recorded no turns")
	}
	for _, turn := range p.rc.Turns() {
		if turn.Agent == "" || turn.Message == "" {
			t.Errorf("incomplete turn recorded: %+v", turn)
		}
	}
}

func TestPacing_LongerMessagesPauseLonger(t *testing.T) {
	pc := DefaultPacing
	short := pc.Delay("ok")
	long := pc.Delay(strings.Repeat("a", 500))
	if long <= short {
		t.Errorf("Delay(long)=%v not greater than Delay(short)=%v", long, short)
	}
	if short < pc.Base {
		t.Errorf("Delay below base: %v < %v", short, pc.Base)
	}
}
