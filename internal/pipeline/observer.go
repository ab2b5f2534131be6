package pipeline

import (
	"time"

	"git.home.luguber.info/inful/booktest/internal/metrics"
)

// Observer receives callbacks around stage execution and the run lifecycle.
type Observer interface {
	OnStageStart(stage StageName)
	OnStageComplete(stage StageName, duration time.Duration, result StageResult)
	OnRunComplete(report *Report)
}

// NoopObserver is a no-op implementation.
type NoopObserver struct{}

func (NoopObserver) OnStageStart(StageName)                                 {}
func (NoopObserver) OnStageComplete(StageName, time.Duration, StageResult) {}
func (NoopObserver) OnRunComplete(*Report)                                  {}

func resultLabel(r StageResult) metrics.ResultLabel {
	switch r {
	case StageResultSkipped:
		return metrics.ResultSkipped
	case StageResultFatal:
		return metrics.ResultFatal
	case StageResultCanceled:
		return metrics.ResultCanceled
	default:
		return metrics.ResultSuccess
	}
}

func outcomeLabel(o Outcome) metrics.OutcomeLabel {
	switch o {
	case OutcomeFailed:
		return metrics.OutcomeFailed
	case OutcomeCanceled:
		return metrics.OutcomeCanceled
	default:
		return metrics.OutcomeSuccess
	}
}
