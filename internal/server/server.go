// Package server exposes dialogue runs over HTTP. Each run is relayed as a
// Server-Sent Events stream: one JSON event per data frame, flushed as it is
// produced, ending when the run's close event has been sent.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/tengxufei/bedrockbio/internal/orchestrator"
	"github.com/tengxufei/bedrockbio/internal/stream"
)

// Server handles the HTTP surface of the orchestrator.
type Server struct {
	orch  *orchestrator.Orchestrator
	tasks []string
}

// New builds a Server. tasks is the suggested-task list served by /get_tasks.
func New(orch *orchestrator.Orchestrator, tasks []string) *Server {
	return &Server{orch: orch, tasks: tasks}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /run_task", s.handleRunTask)
	mux.HandleFunc("GET /get_tasks", s.handleGetTasks)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	return mux
}

// ListenAndServe serves the handler on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	log.Printf("[server] listening on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleRunTask starts a dialogue run and streams its events. The client's
// disconnect cancels the request context, which stops the producer at its
// next step boundary; the stream itself always ends with the run's close
// event unless the client is already gone.
func (s *Server) handleRunTask(w http.ResponseWriter, r *http.Request) {
	task := r.URL.Query().Get("task")
	if strings.TrimSpace(task) == "" {
		http.Error(w, "Error: No task provided.", http.StatusBadRequest)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	run, err := s.orch.Start(r.Context(), task)
	if err != nil {
		switch {
		case errors.Is(err, orchestrator.ErrEmptyTask):
			http.Error(w, "Error: No task provided.", http.StatusBadRequest)
		case errors.Is(err, orchestrator.ErrBusy):
			http.Error(w, "Error: Too many concurrent runs, try again shortly.", http.StatusServiceUnavailable)
		default:
			log.Printf("[server] start run: %v", err)
			http.Error(w, "Error: Could not start the task.", http.StatusInternalServerError)
		}
		return
	}
	log.Printf("[server] run %s started: branch=%s topic=%q", run.ID, run.Branch, run.Topic)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// Confirm the connection before the first dialogue event arrives.
	writeFrame(w, stream.StatusEvent("Connection", stream.StageCompleted, "Server connection established."))
	flusher.Flush()

	for {
		ev, ok := run.Next(r.Context())
		if !ok {
			break
		}
		writeFrame(w, ev)
		flusher.Flush()
	}
	log.Printf("[server] run %s stream ended: state=%s", run.ID, run.State())
}

func writeFrame(w http.ResponseWriter, ev stream.Event) {
	fmt.Fprintf(w, "data: %s\n\n", ev.Marshal())
}

func (s *Server) handleGetTasks(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.tasks); err != nil {
		log.Printf("[server] encode tasks: %v", err)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}
