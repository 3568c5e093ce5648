package paymenter

import (
	"fmt"
	"time"
)

// Operation is one of the user-facing flows selectable from the menu.
type Operation string

const (
	OpInstall      Operation = "install"
	OpAutoUpdate   Operation = "auto-update"
	OpManualUpdate Operation = "manual-update"
	OpBackup       Operation = "backup"
	OpRemove       Operation = "remove"
)

// Step is a single guarded unit of work wrapping one external-command
// invocation. Steps hold no branching of their own; ordering in the caller's
// slice fully determines behavior.
type Step struct {
	Name       string
	Action     func() StepResult
	Reversible bool
}

type Outcome string

const (
	OutcomePending   Outcome = "pending"
	OutcomeRunning   Outcome = "running"
	OutcomeSuccess   Outcome = "success"
	OutcomeFailed    Outcome = "failed"
	OutcomeCancelled Outcome = "cancelled"
)

// StepRecord pairs an executed step with its result.
type StepRecord struct {
	Name   string
	Result StepResult
}

// PipelineRun is the record of one operation: the steps that ran, in order,
// and how it ended. FailedStep is set only when Outcome is OutcomeFailed.
type PipelineRun struct {
	Kind       Operation
	Records    []StepRecord
	StartedAt  time.Time
	FinishedAt time.Time
	Outcome    Outcome
	FailedStep string

	// Failure is set for pre-flight failures that abort the run before any
	// step executes (e.g. target not installed).
	Failure error

	historyID int64
}

// Err converts a terminal run into an error value, or nil on success.
func (run *PipelineRun) Err() error {
	switch run.Outcome {
	case OutcomeFailed:
		if run.Failure != nil {
			return run.Failure
		}
		return fmt.Errorf("%s failed at step %q", run.Kind, run.FailedStep)
	case OutcomeCancelled:
		return ErrUserCancelled
	default:
		return nil
	}
}

// Registry drives ordered step execution: fail-fast, no automatic rollback,
// no reordering. A History store may be attached to persist runs.
type Registry struct {
	log   *Logger
	store *History
}

func NewRegistry(log *Logger, store *History) *Registry {
	return &Registry{log: log, store: store}
}

func (r *Registry) Begin(kind Operation) *PipelineRun {
	run := &PipelineRun{
		Kind:      kind,
		StartedAt: time.Now(),
		Outcome:   OutcomeRunning,
	}
	if r.store != nil {
		if id, err := r.store.CreateRun(kind, run.StartedAt); err == nil {
			run.historyID = id
		} else {
			r.log.Warnf("history: create run: %v", err)
		}
	}
	r.log.Infof("=== %s started ===", kind)
	return run
}

// Execute runs the given steps in order, appending their records to the run.
// It stops at the first failure and reports false. The first failing step of
// the whole run is remembered; later failures (e.g. a cleanup step the caller
// chose to run anyway) do not overwrite it.
func (r *Registry) Execute(run *PipelineRun, steps ...Step) bool {
	for _, step := range steps {
		r.log.Infof("step: %s", step.Name)
		started := time.Now()
		res := step.Action()
		run.Records = append(run.Records, StepRecord{Name: step.Name, Result: res})
		if r.store != nil && run.historyID != 0 {
			if err := r.store.RecordStep(run.historyID, step.Name, res, started); err != nil {
				r.log.Warnf("history: record step: %v", err)
			}
		}
		if !res.OK {
			if run.FailedStep == "" {
				run.FailedStep = step.Name
			}
			r.log.Errorf("step failed: %s: %s", step.Name, res.Message)
			return false
		}
		r.log.Infof("step done: %s", step.Name)
	}
	return true
}

// ExecuteScoped brackets the scoped steps between an acquire and a release
// step. The release step runs even when a scoped step fails; this is how
// maintenance mode is guaranteed to be exited on every failure path.
func (r *Registry) ExecuteScoped(run *PipelineRun, acquire, release Step, scoped ...Step) (ok bool) {
	if !r.Execute(run, acquire) {
		return false
	}
	defer func() {
		if !r.Execute(run, release) {
			ok = false
		}
	}()
	return r.Execute(run, scoped...)
}

// Finish marks the run terminal. Failed wins over Success; Cancel must be
// used instead for operator-declined runs.
func (r *Registry) Finish(run *PipelineRun) {
	run.FinishedAt = time.Now()
	if run.FailedStep != "" {
		run.Outcome = OutcomeFailed
		r.log.Errorf("=== %s failed at %q ===", run.Kind, run.FailedStep)
	} else {
		run.Outcome = OutcomeSuccess
		r.log.Infof("=== %s succeeded ===", run.Kind)
	}
	r.persistOutcome(run)
}

// Fail aborts a run before any step executes, recording the pre-flight error.
func (r *Registry) Fail(run *PipelineRun, err error) {
	run.FinishedAt = time.Now()
	run.Outcome = OutcomeFailed
	run.Failure = err
	r.log.Errorf("=== %s failed: %v ===", run.Kind, err)
	r.persistOutcome(run)
}

// Cancel marks a run the operator declined before any mutating step ran.
func (r *Registry) Cancel(run *PipelineRun) {
	run.FinishedAt = time.Now()
	run.Outcome = OutcomeCancelled
	r.log.Infof("=== %s cancelled ===", run.Kind)
	r.persistOutcome(run)
}

func (r *Registry) persistOutcome(run *PipelineRun) {
	if r.store == nil || run.historyID == 0 {
		return
	}
	if err := r.store.FinishRun(run.historyID, run.Outcome, run.FailedStep, run.FinishedAt); err != nil {
		r.log.Warnf("history: finish run: %v", err)
	}
}
