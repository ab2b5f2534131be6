package pipeline

import (
	stderrors "errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/booktest/internal/errors"
)

// Outcome is the final status of a run.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// StageRecord captures one executed stage.
type StageRecord struct {
	Name     StageName     `yaml:"name"`
	Result   StageResult   `yaml:"result"`
	Duration time.Duration `yaml:"duration"`
	Error    string        `yaml:"error,omitempty"`
	// ErrorKind is the classified kind of the failure, if any.
	ErrorKind errors.Kind `yaml:"error_kind,omitempty"`
}

// Report summarizes one pipeline run.
type Report struct {
	SchemaVersion int       `yaml:"schema_version"`
	RunID         string    `yaml:"run_id"`
	Version       string    `yaml:"version"`
	HostVersion   string    `yaml:"host_version,omitempty"`
	BookTitle     string    `yaml:"book_title,omitempty"`
	Crate         string    `yaml:"crate,omitempty"`
	Directory     string    `yaml:"directory,omitempty"`
	KeptDirectory bool      `yaml:"kept_directory"`
	Chapters      int       `yaml:"chapters"`
	Dependencies  []string  `yaml:"dependencies,omitempty"`
	Start         time.Time `yaml:"start"`
	End           time.Time `yaml:"end"`
	// State is the terminal state: done or failed.
	State   StageName     `yaml:"state"`
	Outcome Outcome       `yaml:"outcome"`
	Stages  []StageRecord `yaml:"stages"`
	// Errors holds the display chain of the failure, outermost first.
	Errors []string `yaml:"errors,omitempty"`

	err error
}

func newReport(runID, version string) *Report {
	return &Report{
		SchemaVersion: 1,
		RunID:         runID,
		Version:       version,
		Start:         time.Now(),
	}
}

func (r *Report) recordStage(name StageName, d time.Duration, result StageResult, err error) {
	rec := StageRecord{Name: name, Result: result, Duration: d}
	if err != nil {
		rec.Error = err.Error()
		rec.ErrorKind = errors.KindOf(err)
	}
	r.Stages = append(r.Stages, rec)
}

// finish sets the terminal state and outcome from err.
func (r *Report) finish(err error) {
	r.End = time.Now()
	r.err = err
	if err == nil {
		r.State = StageDone
		r.Outcome = OutcomeSuccess
		return
	}
	r.State = StageFailed
	r.Errors = errors.Chain(err)
	r.Outcome = OutcomeFailed
	var se *StageError
	if stderrors.As(err, &se) && se.Kind == StageErrorCanceled {
		r.Outcome = OutcomeCanceled
	}
}

// Err returns the error that ended the run, or nil.
func (r *Report) Err() error { return r.err }

// Duration returns the wall time of the run.
func (r *Report) Duration() time.Duration { return r.End.Sub(r.Start) }

// StageDurations returns the duration of each executed stage keyed by name.
func (r *Report) StageDurations() map[StageName]time.Duration {
	out := make(map[StageName]time.Duration, len(r.Stages))
	for _, s := range r.Stages {
		out[s.Name] = s.Duration
	}
	return out
}

// Summary returns a human-readable single-line summary.
func (r *Report) Summary() string {
	return fmt.Sprintf("run=%s crate=%s chapters=%d dependencies=%d stages=%d duration=%s outcome=%s",
		r.RunID, r.Crate, r.Chapters, len(r.Dependencies), len(r.Stages), r.Duration().Truncate(time.Millisecond), r.Outcome)
}

// Save writes the report as YAML to path, creating parent directories.
func (r *Report) Save(fs afero.Fs, path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return errors.WrapError(err, errors.KindInternal, "unable to encode run report").Build()
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.DirectoryCreation(filepath.Dir(path), err)
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return errors.FileWrite(path, err)
	}
	return nil
}
