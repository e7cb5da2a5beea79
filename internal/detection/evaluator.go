// Package detection evaluates how well the median false lumen and membrane
// volume detects aortic dissection, and how well the ascending false lumen
// volume separates Stanford type A from type B among the detected cases.
package detection

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/dkfz-mic/adeval/internal/dataset"
	"github.com/dkfz-mic/adeval/internal/evalerr"
	"github.com/dkfz-mic/adeval/internal/metrics"
	"github.com/dkfz-mic/adeval/internal/models"
	"github.com/dkfz-mic/adeval/internal/roc"
	"golang.org/x/sync/errgroup"
)

// Options configures one evaluation run.
type Options struct {
	// Workers is the number of sweep positions evaluated concurrently.
	// Values below 2 evaluate serially. Output does not depend on it.
	Workers int

	// Progress, when set, is called after each sweep position with the
	// number of positions finished so far. It may be called concurrently.
	Progress func(done, total int)
}

// Evaluate runs the full two-stage evaluation on table.
//
// Stage 1 sweeps every ROC threshold from the Youden-optimal point down to,
// but excluding, the lowest threshold. When the table carries ground truth,
// Stage 2 evaluates the Stanford classification among the true positives of
// each sweep position. A sweep position whose true positives are empty or
// hold a single Stanford class is reported without a Stanford result.
//
// The table is not modified.
func Evaluate(table *dataset.Table, opts Options) (*models.EvaluationResult, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}

	labels := table.Labels()
	scores := DecisionScores(table)

	curve, err := roc.Analyze(labels, scores)
	if err != nil {
		return nil, &evalerr.StageError{Stage: evalerr.StageDetection, Position: evalerr.NoPosition, Err: err}
	}

	thresholds := SweepThresholds(curve)
	slog.Debug("detection ROC",
		"cases", len(labels),
		"auc", curve.AUC,
		"youden_index", curve.OptimalIndex,
		"sweep_positions", len(thresholds))

	sweep := make(models.SweepResult, len(thresholds))
	var finished atomic.Int64
	eval := func(i int) error {
		tr, err := evaluatePosition(table, labels, scores, thresholds[i], i)
		if err != nil {
			return err
		}
		sweep[i] = *tr
		if opts.Progress != nil {
			opts.Progress(int(finished.Add(1)), len(thresholds))
		}
		return nil
	}

	if opts.Workers > 1 {
		var g errgroup.Group
		g.SetLimit(opts.Workers)
		for i := range thresholds {
			g.Go(func() error { return eval(i) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range thresholds {
			if err := eval(i); err != nil {
				return nil, err
			}
		}
	}

	positives := metrics.CountPositives(labels)
	return &models.EvaluationResult{
		Dataset: models.DatasetDescription{
			Positives: positives,
			Negatives: len(labels) - positives,
			GTVector:  labels,
		},
		ROC: models.ROCAnalysis{
			FPR:            curve.FPR,
			TPR:            curve.TPR,
			AUC:            curve.AUC,
			YoudenIndex:    curve.OptimalIndex,
			DecisionValues: scores,
		},
		Detection: sweep,
	}, nil
}

// DecisionScores returns the per-case median of the ascending false lumen,
// descending false lumen and membrane volumes, in table order.
func DecisionScores(table *dataset.Table) []float64 {
	scores := make([]float64, table.Len())
	for i, c := range table.Cases {
		scores[i] = metrics.Median([]float64{c.Ascending, c.Descending, c.Membrane})
	}
	return scores
}

// SweepThresholds returns the thresholds evaluated by the sweep: the curve's
// axis from the optimal index up to, but excluding, its last element. The
// result has curve.Len()-curve.OptimalIndex-1 entries.
func SweepThresholds(curve *roc.Curve) []float64 {
	end := curve.Len() - 1
	if curve.OptimalIndex >= end {
		return nil
	}
	out := make([]float64, end-curve.OptimalIndex)
	copy(out, curve.Thresholds[curve.OptimalIndex:end])
	return out
}

func evaluatePosition(table *dataset.Table, labels []int, scores []float64, threshold float64, pos int) (*models.ThresholdResult, error) {
	predicted := metrics.Binarize(scores, threshold)
	perf, err := metrics.Compute(labels, predicted)
	if err != nil {
		return nil, &evalerr.StageError{Stage: evalerr.StageDetection, Position: pos, Err: err}
	}

	tr := &models.ThresholdResult{Threshold: threshold, Performance: *perf}
	if !table.HasGroundTruth {
		return tr, nil
	}

	stanford, err := EvaluateStanford(table, labels, predicted)
	switch {
	case err == nil:
		tr.Stanford = stanford
	case errors.Is(err, evalerr.ErrDegenerateCurve):
		tr.StanfordSkipped = err.Error()
		slog.Warn("skipping Stanford classification",
			"position", models.SweepKey(pos),
			"threshold", threshold,
			"reason", err)
	default:
		return nil, &evalerr.StageError{Stage: evalerr.StageStanford, Position: pos, Err: err}
	}
	return tr, nil
}

// EvaluateStanford runs the second-stage evaluation among cases that are both
// predicted and labelled positive. The Stanford label is ascending ground
// truth volume > 0; the score is the measured ascending volume, thresholded
// at its own Youden-optimal point.
//
// Returns an error wrapping evalerr.ErrDegenerateCurve when the subset is
// empty or holds a single Stanford class.
func EvaluateStanford(table *dataset.Table, labels, predicted []int) (*models.StanfordResult, error) {
	if len(labels) != table.Len() || len(predicted) != table.Len() {
		return nil, evalerr.Invalid("%d cases, %d labels, %d predictions", table.Len(), len(labels), len(predicted))
	}

	var subLabels []int
	var ascending []float64
	for i, c := range table.Cases {
		if predicted[i] != 1 || labels[i] != 1 {
			continue
		}
		sub := 0
		if c.AscendingGT > 0 {
			sub = 1
		}
		subLabels = append(subLabels, sub)
		ascending = append(ascending, c.Ascending)
	}
	if len(subLabels) == 0 {
		return nil, evalerr.Degenerate("no true positives to classify")
	}

	curve, err := roc.Analyze(subLabels, ascending)
	if err != nil {
		return nil, fmt.Errorf("%d true positives: %w", len(subLabels), err)
	}

	threshold := curve.OptimalThreshold()
	perf, err := metrics.Compute(subLabels, metrics.Binarize(ascending, threshold))
	if err != nil {
		return nil, err
	}
	return &models.StanfordResult{Threshold: threshold, Performance: *perf}, nil
}
