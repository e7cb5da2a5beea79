// Package config holds the settings of a single evaluation run.
package config

import (
	"github.com/dkfz-mic/adeval/internal/detection"
	"github.com/dkfz-mic/adeval/internal/projectconfig"
)

// EvaluationConfig is the immutable configuration of one evaluation run.
// Build it with NewEvaluationConfig and functional options.
type EvaluationConfig struct {
	segmentationCSV string
	groundTruthCSV  string
	outputPath      string
	workers         int
	interpret       bool
	format          string
	storePath       string
	archiveURL      string
}

// Option configures an EvaluationConfig.
type Option func(*EvaluationConfig)

// NewEvaluationConfig returns the configuration for evaluating
// segmentationCSV. Options are applied in order; the last one wins.
func NewEvaluationConfig(segmentationCSV string, opts ...Option) *EvaluationConfig {
	cfg := &EvaluationConfig{
		segmentationCSV: segmentationCSV,
		workers:         projectconfig.DefaultWorkers,
		format:          projectconfig.DefaultFormat,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithProjectDefaults applies the values of a loaded .adeval.yaml. Pass it
// before explicit options so command-line flags override the file.
func WithProjectDefaults(pc *projectconfig.ProjectConfig) Option {
	return func(c *EvaluationConfig) {
		if pc == nil {
			return
		}
		if pc.Evaluation.Workers > 0 {
			c.workers = pc.Evaluation.Workers
		}
		if pc.Evaluation.Interpret != nil {
			c.interpret = *pc.Evaluation.Interpret
		}
		if pc.Evaluation.Format != "" {
			c.format = pc.Evaluation.Format
		}
		if pc.Store.Enabled != nil && *pc.Store.Enabled {
			c.storePath = pc.Store.Path
		}
		c.archiveURL = pc.Archive.URL
	}
}

// WithGroundTruthCSV sets the ground-truth table merged before evaluation.
func WithGroundTruthCSV(path string) Option {
	return func(c *EvaluationConfig) { c.groundTruthCSV = path }
}

// WithOutputPath sets where the result document is written.
func WithOutputPath(path string) Option {
	return func(c *EvaluationConfig) { c.outputPath = path }
}

// WithWorkers sets the number of concurrent sweep workers. Values below 1
// are ignored.
func WithWorkers(n int) Option {
	return func(c *EvaluationConfig) {
		if n >= 1 {
			c.workers = n
		}
	}
}

// WithInterpret enables the plain-language summary.
func WithInterpret(v bool) Option {
	return func(c *EvaluationConfig) { c.interpret = v }
}

// WithFormat sets the report format printed after the run.
func WithFormat(format string) Option {
	return func(c *EvaluationConfig) { c.format = format }
}

// WithStorePath records the run in the history database at path. An empty
// path disables recording.
func WithStorePath(path string) Option {
	return func(c *EvaluationConfig) { c.storePath = path }
}

// WithArchiveURL uploads the result to the given blob container URL.
func WithArchiveURL(url string) Option {
	return func(c *EvaluationConfig) { c.archiveURL = url }
}

func (c *EvaluationConfig) SegmentationCSV() string { return c.segmentationCSV }
func (c *EvaluationConfig) GroundTruthCSV() string  { return c.groundTruthCSV }
func (c *EvaluationConfig) OutputPath() string      { return c.outputPath }
func (c *EvaluationConfig) Workers() int            { return c.workers }
func (c *EvaluationConfig) Interpret() bool         { return c.interpret }
func (c *EvaluationConfig) Format() string          { return c.format }
func (c *EvaluationConfig) StorePath() string       { return c.storePath }
func (c *EvaluationConfig) ArchiveURL() string      { return c.archiveURL }

// HasGroundTruth reports whether a ground-truth table is merged.
func (c *EvaluationConfig) HasGroundTruth() bool { return c.groundTruthCSV != "" }

// DetectionOptions returns the evaluator options for this run.
func (c *EvaluationConfig) DetectionOptions() detection.Options {
	return detection.Options{Workers: c.workers}
}
