package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/booktest/internal/logfields"
)

// StageName is a strongly-typed identifier for a pipeline state.
type StageName string

// Pipeline states in execution order. StageDone and StageFailed are terminal
// and have no stage function.
const (
	StageConfiguring     StageName = "configuring"
	StageScaffolding     StageName = "scaffolding"
	StageMaterializing   StageName = "materializing"
	StageManifestWriting StageName = "manifest_writing"
	StageExecuting       StageName = "executing"
	StageDone            StageName = "done"
	StageFailed          StageName = "failed"
)

// Stage executes one state of the run.
type Stage func(ctx context.Context, rs *runState) error

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}

// StageResult enumerates per-stage classification outcomes.
type StageResult string

const (
	StageResultSuccess  StageResult = "success"
	StageResultSkipped  StageResult = "skipped"
	StageResultFatal    StageResult = "fatal"
	StageResultCanceled StageResult = "canceled"
)

// StageErrorKind distinguishes cancellation from ordinary failure.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"
	StageErrorCanceled StageErrorKind = "canceled"
)

// StageError names the stage a run failed in. The classified cause stays
// reachable through errors.As.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// Message describes this link of the chain without its cause.
func (e *StageError) Message() string {
	if e.Kind == StageErrorCanceled {
		return fmt.Sprintf("%s stage canceled", e.Stage)
	}
	return fmt.Sprintf("%s stage failed", e.Stage)
}

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}

func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// errSkipped is returned by a stage that found its work already done.
var errSkipped = stderrors.New("stage skipped")

// runStages executes stages in order, recording timing and stopping on the
// first failure.
func (p *Pipeline) runStages(ctx context.Context, rs *runState, stages []StageDef) error {
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			se := newCanceledStageError(st.Name, err)
			rs.report.recordStage(st.Name, 0, StageResultCanceled, se)
			p.recorder.IncStageResult(string(st.Name), resultLabel(StageResultCanceled))
			p.observer.OnStageComplete(st.Name, 0, StageResultCanceled)
			return se
		}

		rs.state = st.Name
		p.observer.OnStageStart(st.Name)
		rs.logger.Debug("Entering stage", logfields.Stage(string(st.Name)))

		t0 := time.Now()
		err := st.Fn(ctx, rs)
		dur := time.Since(t0)

		result := StageResultSuccess
		var stageErr error
		switch {
		case err == nil:
		case stderrors.Is(err, errSkipped):
			result = StageResultSkipped
		case ctx.Err() != nil:
			result = StageResultCanceled
			stageErr = newCanceledStageError(st.Name, err)
		default:
			result = StageResultFatal
			stageErr = newFatalStageError(st.Name, err)
		}

		rs.report.recordStage(st.Name, dur, result, stageErr)
		p.recorder.ObserveStageDuration(string(st.Name), dur)
		p.recorder.IncStageResult(string(st.Name), resultLabel(result))
		p.observer.OnStageComplete(st.Name, dur, result)
		rs.logger.Debug("Stage complete",
			logfields.Stage(string(st.Name)),
			logfields.DurationMS(float64(dur.Microseconds())/1000),
			slog.String("result", string(result)))

		if stageErr != nil {
			return stageErr
		}
	}
	return nil
}
