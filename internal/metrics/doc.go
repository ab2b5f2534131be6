// Package metrics records pipeline stage and run metrics.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	p := pipeline.New(pipeline.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//
// PrometheusRecorder registers its collectors on a caller-supplied registry.
// A short-lived CLI run has nothing to scrape it, so WriteTextfile exports the
// registry in the node-exporter textfile format instead.
package metrics
