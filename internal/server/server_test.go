package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tengxufei/bedrockbio/internal/orchestrator"
	"github.com/tengxufei/bedrockbio/internal/stream"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	orch, err := orchestrator.New(orchestrator.Config{
		BaseDir: t.TempDir(),
		Pacing:  orchestrator.Pacing{Base: time.Nanosecond},
	})
	if err != nil {
		t.Fatalf("orchestrator.New: %v", err)
	}
	srv := New(orch, []string{"Design qPCR primers for TP53"})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

// readSSE fetches url and decodes every data frame into events.
func readSSE(t *testing.T, url string) []stream.Event {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content type = %q, want text/event-stream", ct)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	var events []stream.Event
	for _, frame := range strings.Split(string(body), "\n\n") {
		frame = strings.TrimSpace(frame)
		if frame == "" {
			continue
		}
		if !strings.HasPrefix(frame, "data: ") {
			t.Fatalf("malformed SSE frame: %q", frame)
		}
		var ev stream.Event
		if err := json.Unmarshal([]byte(strings.TrimPrefix(frame, "data: ")), &ev); err != nil {
			t.Fatalf("unmarshal frame %q: %v", frame, err)
		}
		events = append(events, ev)
	}
	return events
}

func TestRunTask_MissingTask(t *testing.T) {
	ts := newTestServer(t)
	for _, url := range []string{ts.URL + "/run_task", ts.URL + "/run_task?task=%20%20"} {
		resp, err := http.Get(url)
		if err != nil {
			t.Fatalf("GET: %v", err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("GET %s status = %d, want 400", url, resp.StatusCode)
		}
		if !strings.Contains(string(body), "No task provided") {
			t.Errorf("body = %q, want task rejection message", body)
		}
	}
}

func TestRunTask_StreamsToClose(t *testing.T) {
	ts := newTestServer(t)
	events := readSSE(t, ts.URL+"/run_task?task=Design+qPCR+primers+for+TP53")

	if len(events) < 4 {
		t.Fatalf("stream carried only %d events", len(events))
	}
	first := events[0]
	if first.Type != stream.EventStatus || first.Stage != "Connection" {
		t.Errorf("first event = %+v, want connection status", first)
	}
	last := events[len(events)-1]
	if last.Type != stream.EventClose {
		t.Errorf("last event type = %s, want close", last.Type)
	}

	var sawReport, sawChat bool
	for _, ev := range events {
		switch ev.Type {
		case stream.EventReport:
			sawReport = true
			if !strings.Contains(ev.Content, "TP53") {
				t.Error("report does not mention the extracted gene")
			}
		case stream.EventChatMessage:
			sawChat = true
		}
	}
	if !sawReport || !sawChat {
		t.Errorf("stream missing report (%v) or chat message (%v)", sawReport, sawChat)
	}
}

func TestRunTask_BusyReturns503(t *testing.T) {
	orch, err := orchestrator.New(orchestrator.Config{
		BaseDir:           t.TempDir(),
		MaxConcurrentRuns: 1,
		Pacing:            orchestrator.Pacing{Base: time.Second},
	})
	if err != nil {
		t.Fatalf("orchestrator.New: %v", err)
	}
	ts := httptest.NewServer(New(orch, nil).Handler())
	defer ts.Close()

	// Occupy the only slot with a long-running stream.
	resp1, err := http.Get(ts.URL + "/run_task?task=first+task")
	if err != nil {
		t.Fatalf("first GET: %v", err)
	}
	defer resp1.Body.Close()
	// Read one byte to make sure the run actually started.
	buf := make([]byte, 1)
	if _, err := resp1.Body.Read(buf); err != nil {
		t.Fatalf("read first stream: %v", err)
	}

	resp2, err := http.Get(ts.URL + "/run_task?task=second+task")
	if err != nil {
		t.Fatalf("second GET: %v", err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("second run status = %d, want 503", resp2.StatusCode)
	}
}

func TestGetTasks(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/get_tasks")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	var tasks []string
	if err := json.NewDecoder(resp.Body).Decode(&tasks); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(tasks) != 1 || tasks[0] != "Design qPCR primers for TP53" {
		t.Errorf("tasks = %v", tasks)
	}
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
