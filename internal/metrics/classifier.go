package metrics

import "github.com/dkfz-mic/adeval/internal/evalerr"

// Result holds confusion counts and the rates derived from them for one
// binary prediction vector.
type Result struct {
	TP          int   `json:"tp"`
	TN          int   `json:"tn"`
	FP          int   `json:"fp"`
	FN          int   `json:"fn"`
	Sensitivity Rate  `json:"sensitivity"`
	Specificity Rate  `json:"specificity"`
	Precision   Rate  `json:"precision"`
	NPV         Rate  `json:"npv"`
	Accuracy    Rate  `json:"accuracy"`
	F1          Rate  `json:"f1"`
	Predicted   []int `json:"predicted"`
}

// Total returns the number of evaluated cases.
func (r *Result) Total() int {
	return r.TP + r.TN + r.FP + r.FN
}

// Compute compares predicted labels against ground truth. Both vectors must
// have the same non-zero length and hold only 0 and 1.
//
// Rates with a zero denominator are reported as Undefined instead of failing,
// so that degenerate thresholds (e.g. everything predicted positive) can still
// be reported.
func Compute(gt, pred []int) (*Result, error) {
	if len(gt) != len(pred) {
		return nil, evalerr.Invalid("ground truth has %d labels, prediction has %d", len(gt), len(pred))
	}
	if len(gt) == 0 {
		return nil, evalerr.Invalid("no labels to compare")
	}

	var tp, tn, fp, fn int
	for i := range gt {
		if !isBinary(gt[i]) {
			return nil, evalerr.Invalid("ground truth label %d at index %d is not 0 or 1", gt[i], i)
		}
		if !isBinary(pred[i]) {
			return nil, evalerr.Invalid("predicted label %d at index %d is not 0 or 1", pred[i], i)
		}
		switch {
		case gt[i] == 1 && pred[i] == 1:
			tp++
		case gt[i] == 0 && pred[i] == 1:
			fp++
		case gt[i] == 0 && pred[i] == 0:
			tn++
		case gt[i] == 1 && pred[i] == 0:
			fn++
		}
	}

	sensitivity := Ratio(tp, tp+fn)
	precision := Ratio(tp, tp+fp)

	predicted := make([]int, len(pred))
	copy(predicted, pred)

	return &Result{
		TP:          tp,
		TN:          tn,
		FP:          fp,
		FN:          fn,
		Sensitivity: sensitivity,
		Specificity: Ratio(tn, tn+fp),
		Precision:   precision,
		NPV:         Ratio(tn, tn+fn),
		Accuracy:    Ratio(tp+tn, len(gt)),
		F1:          f1Score(precision, sensitivity),
		Predicted:   predicted,
	}, nil
}

// f1Score is undefined when either input is undefined or both are zero.
func f1Score(precision, recall Rate) Rate {
	p, okP := precision.Value()
	r, okR := recall.Value()
	if !okP || !okR || p+r == 0 {
		return Undefined
	}
	return Defined(2 * p * r / (p + r))
}

// Binarize returns 1 where values[i] >= threshold and 0 elsewhere.
func Binarize(values []float64, threshold float64) []int {
	out := make([]int, len(values))
	for i, v := range values {
		if v >= threshold {
			out[i] = 1
		}
	}
	return out
}

func isBinary(v int) bool {
	return v == 0 || v == 1
}
