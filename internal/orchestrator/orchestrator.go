package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/tengxufei/bedrockbio/internal/stream"
)

// ErrEmptyTask is returned by Start when the task is empty or whitespace.
// The run is rejected before any channel or goroutine exists.
var ErrEmptyTask = errors.New("no task provided")

// ErrBusy is returned by Start when the concurrent run limit is reached.
var ErrBusy = errors.New("too many concurrent runs")

// RunRecord is the history row describing one run.
type RunRecord struct {
	ID         string
	Task       string
	Branch     Branch
	Topic      string
	Status     string
	Error      string
	ReportPath string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Recorder persists run outcomes. The orchestrator treats recording as best
// effort: a failing recorder never affects the stream.
type Recorder interface {
	RecordStart(rec RunRecord) error
	RecordFinish(rec RunRecord) error
}

// ReportSaver stores a completed report and returns where it ended up.
type ReportSaver interface {
	SaveReport(runID, content string) (path string, err error)
}

// Config configures an Orchestrator.
type Config struct {
	// BaseDir is the project root. Defaults to the working directory.
	BaseDir string
	// OutputDir is where report artifacts land. Defaults to BaseDir/output.
	OutputDir string
	// Pacing overrides the conversational cadence. Zero value means
	// DefaultPacing; tests set a cheap pacing to run fast.
	Pacing Pacing
	// MaxConcurrentRuns caps simultaneous runs. Defaults to 8.
	MaxConcurrentRuns int64
	// History, if set, records run outcomes.
	History Recorder
	// Reports, if set, stores completed report markdown.
	Reports ReportSaver
}

// Orchestrator starts dialogue runs. It holds configuration only; every run
// owns its channel, producer and context, and nothing is shared across runs.
type Orchestrator struct {
	baseDir   string
	outputDir string
	pacing    Pacing
	sem       *semaphore.Weighted
	history   Recorder
	reports   ReportSaver
}

// New builds an Orchestrator and ensures the output directory exists.
func New(cfg Config) (*Orchestrator, error) {
	baseDir := cfg.BaseDir
	if baseDir == "" {
		baseDir = "."
	}
	outputDir := cfg.OutputDir
	if outputDir == "" {
		outputDir = filepath.Join(baseDir, "output")
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	pacing := cfg.Pacing
	if pacing == (Pacing{}) {
		pacing = DefaultPacing
	}
	maxRuns := cfg.MaxConcurrentRuns
	if maxRuns <= 0 {
		maxRuns = 8
	}

	return &Orchestrator{
		baseDir:   baseDir,
		outputDir: outputDir,
		pacing:    pacing,
		sem:       semaphore.NewWeighted(maxRuns),
		history:   cfg.History,
		reports:   cfg.Reports,
	}, nil
}

// OutputDir returns the directory where report artifacts are written.
func (o *Orchestrator) OutputDir() string {
	return o.outputDir
}

// Run is the consumer's handle on one dialogue run. Exactly one goroutine
// should drain it.
type Run struct {
	// ID uniquely identifies the run.
	ID string
	// Task is the trimmed task text the run was started with.
	Task string
	// Branch is the dialogue branch selected for the task.
	Branch Branch
	// Topic is the entity the branch script interpolates (gene symbol, DNA
	// token, or the raw task).
	Topic string

	ch *stream.Channel
	p  *producer
}

// Next returns the next event in emission order. ok == false means the run
// is over and no further events will arrive; callers must stop then.
func (r *Run) Next(ctx context.Context) (stream.Event, bool) {
	return r.ch.Receive(ctx)
}

// State reports the run's lifecycle state.
func (r *Run) State() RunState {
	return r.p.State()
}

// Start validates the task, selects a dialogue branch, and launches the
// producer goroutine bound to a fresh channel. The returned Run streams
// events until the run's close event, after which Next reports ok == false.
//
// ctx governs the whole run: canceling it (e.g. the HTTP client hanging up)
// stops the producer at its next step boundary. Cancellation still closes
// the channel cleanly.
func (o *Orchestrator) Start(ctx context.Context, task string) (*Run, error) {
	task = strings.TrimSpace(task)
	if task == "" {
		return nil, ErrEmptyTask
	}
	if !o.sem.TryAcquire(1) {
		return nil, ErrBusy
	}

	branch, topic := SelectBranch(task)
	ch := stream.NewChannel()
	p := newProducer(task, branch, topic, o.pacing, ch)
	run := &Run{
		ID:     uuid.NewString(),
		Task:   task,
		Branch: branch,
		Topic:  topic,
		ch:     ch,
		p:      p,
	}

	rec := RunRecord{
		ID:        run.ID,
		Task:      task,
		Branch:    branch,
		Topic:     topic,
		Status:    "running",
		StartedAt: time.Now(),
	}
	if o.history != nil {
		if err := o.history.RecordStart(rec); err != nil {
			log.Printf("[orchestrator] record run start %s: %v", run.ID, err)
		}
	}

	go func() {
		defer o.sem.Release(1)
		out := p.run(ctx)
		o.finish(rec, out)
	}()

	return run, nil
}

// finish persists the run outcome and report artifact.
func (o *Orchestrator) finish(rec RunRecord, out outcome) {
	rec.Status = out.status
	rec.Error = out.errMsg
	rec.FinishedAt = time.Now()

	if out.report != "" && o.reports != nil {
		path, err := o.reports.SaveReport(rec.ID, out.report)
		if err != nil {
			log.Printf("[orchestrator] save report for run %s: %v", rec.ID, err)
		} else {
			rec.ReportPath = path
		}
	}
	if o.history != nil {
		if err := o.history.RecordFinish(rec); err != nil {
			log.Printf("[orchestrator] record run finish %s: %v", rec.ID, err)
		}
	}
}
