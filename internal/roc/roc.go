// Package roc computes receiver operating characteristic curves and their
// Youden-optimal operating point.
package roc

import (
	"math"
	"sort"

	"github.com/dkfz-mic/adeval/internal/evalerr"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

// Curve is an ROC curve over a descending threshold axis. FPR[i] and TPR[i]
// are the rates obtained when predicting positive for score >= Thresholds[i].
//
// Thresholds[0] is a sentinel above every observed score, so the curve
// always starts at the origin.
type Curve struct {
	FPR          []float64
	TPR          []float64
	Thresholds   []float64
	AUC          float64
	OptimalIndex int
}

// Len returns the number of points on the curve.
func (c *Curve) Len() int {
	return len(c.Thresholds)
}

// OptimalThreshold returns the threshold at OptimalIndex.
func (c *Curve) OptimalThreshold() float64 {
	return c.Thresholds[c.OptimalIndex]
}

// YoudenIndex returns TPR-FPR at point i.
func (c *Curve) YoudenIndex(i int) float64 {
	return c.TPR[i] - c.FPR[i]
}

// Analyze builds the ROC curve of scores against binary labels.
//
// The threshold axis is every distinct score in descending order, preceded by
// the sentinel max(scores)+1. The optimal index is the first point maximizing
// TPR-FPR, sentinel included. Labels must contain both classes.
func Analyze(labels []int, scores []float64) (*Curve, error) {
	if len(labels) != len(scores) {
		return nil, evalerr.Invalid("%d labels but %d scores", len(labels), len(scores))
	}
	if len(labels) == 0 {
		return nil, evalerr.Invalid("no scores to analyze")
	}

	var positives, negatives int
	for i, l := range labels {
		switch l {
		case 1:
			positives++
		case 0:
			negatives++
		default:
			return nil, evalerr.Invalid("label %d at index %d is not 0 or 1", l, i)
		}
		if math.IsNaN(scores[i]) || math.IsInf(scores[i], 0) {
			return nil, evalerr.Invalid("score at index %d is not finite", i)
		}
	}
	if positives == 0 || negatives == 0 {
		return nil, evalerr.Degenerate("%d positive and %d negative labels, both classes are required", positives, negatives)
	}

	thresholds := thresholdAxis(scores)
	fpr := make([]float64, len(thresholds))
	tpr := make([]float64, len(thresholds))

	// Walk cases in descending score order, so each threshold only adds the
	// cases whose score equals it.
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	// TPR-FPR scaled by positives*negatives is exact in integers, so equal
	// Youden values compare equal and the first one wins.
	var tp, fp, next, optimal int
	bestKey := math.MinInt
	for i, t := range thresholds {
		for next < len(order) && scores[order[next]] >= t {
			if labels[order[next]] == 1 {
				tp++
			} else {
				fp++
			}
			next++
		}
		tpr[i] = float64(tp) / float64(positives)
		fpr[i] = float64(fp) / float64(negatives)
		if key := tp*negatives - fp*positives; key > bestKey {
			bestKey = key
			optimal = i
		}
	}

	return &Curve{
		FPR:          fpr,
		TPR:          tpr,
		Thresholds:   thresholds,
		AUC:          integrate.Trapezoidal(fpr, tpr),
		OptimalIndex: optimal,
	}, nil
}

// thresholdAxis returns the sentinel followed by the distinct scores in
// descending order.
func thresholdAxis(scores []float64) []float64 {
	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	top := floats.Max(sorted)
	sentinel := top + 1
	if sentinel == top {
		sentinel = math.Nextafter(top, math.Inf(1))
	}

	axis := make([]float64, 0, len(sorted)+1)
	axis = append(axis, sentinel)
	for i, s := range sorted {
		if i > 0 && s == sorted[i-1] {
			continue
		}
		axis = append(axis, s)
	}
	return axis
}
