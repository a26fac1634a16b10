package stream

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestChannel_FIFOOrder(t *testing.T) {
	c := NewChannel()
	sent := []Event{
		StatusEvent("Task Framing", StageProcessing, "starting"),
		LogEvent("line one"),
		LogEvent("line two"),
		CloseEvent("done"),
	}
	for _, ev := range sent {
		c.Send(ev)
	}
	c.Close()

	ctx := context.Background()
	for i, want := range sent {
		got, ok := c.Receive(ctx)
		if !ok {
			t.Fatalf("Receive %d: channel drained early", i)
		}
		if got != want {
			t.Errorf("Receive %d: got %+v, want %+v", i, got, want)
		}
	}
	if _, ok := c.Receive(ctx); ok {
		t.Error("Receive after drain should report ok == false")
	}
}

func TestChannel_ReceiveBlocksUntilSend(t *testing.T) {
	c := NewChannel()
	go func() {
		time.Sleep(20 * time.Millisecond)
		c.Send(LogEvent("late"))
	}()

	start := time.Now()
	ev, ok := c.Receive(context.Background())
	if !ok {
		t.Fatal("Receive returned ok == false with an open channel")
	}
	if ev.Content != "late" {
		t.Errorf("got content %q, want %q", ev.Content, "late")
	}
	if time.Since(start) < 10*time.Millisecond {
		t.Error("Receive returned before the producer sent")
	}
}

func TestChannel_CloseIsIdempotent(t *testing.T) {
	c := NewChannel()
	c.Send(CloseEvent("done"))
	c.Close()
	c.Close() // second close must not change anything

	ctx := context.Background()
	ev, ok := c.Receive(ctx)
	if !ok || ev.Type != EventClose {
		t.Fatalf("first Receive: got (%+v, %v), want close event", ev, ok)
	}
	if _, ok := c.Receive(ctx); ok {
		t.Error("second Receive should report drained, got an event")
	}
}

func TestChannel_SendAfterCloseIsDropped(t *testing.T) {
	c := NewChannel()
	c.Close()
	c.Send(LogEvent("too late"))

	if n := c.Len(); n != 0 {
		t.Errorf("queue length after send-on-closed: got %d, want 0", n)
	}
}

func TestChannel_ReceiveHonorsContextCancel(t *testing.T) {
	c := NewChannel()
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, ok := c.Receive(ctx); ok {
			t.Error("Receive returned an event after cancellation")
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Receive did not return after context cancellation")
	}
}

func TestChannel_SingleWriterSingleReader(t *testing.T) {
	c := NewChannel()
	const n = 1000

	go func() {
		for i := 0; i < n; i++ {
			c.Send(LogEvent(fmt.Sprintf("line %d", i)))
		}
		c.Close()
	}()

	ctx := context.Background()
	for i := 0; i < n; i++ {
		ev, ok := c.Receive(ctx)
		if !ok {
			t.Fatalf("channel drained after %d of %d events", i, n)
		}
		if want := fmt.Sprintf("line %d", i); ev.Content != want {
			t.Fatalf("event %d out of order: got %q, want %q", i, ev.Content, want)
		}
	}
	if _, ok := c.Receive(ctx); ok {
		t.Error("expected drained channel after all events received")
	}
}
