package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/dkfz-mic/adeval/internal/metrics"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perf(t *testing.T, gt, pred []int) metrics.Result {
	t.Helper()
	r, err := metrics.Compute(gt, pred)
	require.NoError(t, err)
	return *r
}

func sampleResult(t *testing.T, positions int) *EvaluationResult {
	t.Helper()
	gt := []int{0, 0, 1, 1}
	res := &EvaluationResult{
		Dataset: DatasetDescription{Positives: 2, Negatives: 2, GTVector: gt},
		ROC: ROCAnalysis{
			FPR:            []float64{0, 0, 0, 0.5, 1},
			TPR:            []float64{0, 0.5, 1, 1, 1},
			AUC:            1,
			YoudenIndex:    2,
			DecisionValues: []float64{0.1, 2.0 / 3.0, 3.3000000000000003, 4},
		},
	}
	for i := 0; i < positions; i++ {
		tr := ThresholdResult{
			Threshold:   float64(10 - i),
			Performance: perf(t, gt, []int{0, 1, 1, 1}),
		}
		if i%2 == 0 {
			tr.Stanford = &StanfordResult{Threshold: 1.5, Performance: perf(t, []int{0, 1}, []int{1, 1})}
		}
		res.Detection = append(res.Detection, tr)
	}
	return res
}

func TestSweepKey(t *testing.T) {
	assert.Equal(t, "Youden + 0", SweepKey(0))
	assert.Equal(t, "Youden + 12", SweepKey(12))

	i, err := ParseSweepKey("Youden + 7")
	require.NoError(t, err)
	assert.Equal(t, 7, i)

	for _, bad := range []string{"Youden+7", "Youden + x", "Youden + -1", "other"} {
		_, err := ParseSweepKey(bad)
		assert.Error(t, err, bad)
	}
}

func TestEvaluationResult_JSONShape(t *testing.T) {
	data, err := json.Marshal(sampleResult(t, 1))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	require.Contains(t, doc, "Dataset description")
	require.Contains(t, doc, "ROC analysis")
	require.Contains(t, doc, "Detection performance")

	desc := doc["Dataset description"].(map[string]any)
	assert.Equal(t, 2.0, desc["Number of positives"])
	assert.Equal(t, 2.0, desc["Number of negatives"])
	assert.Len(t, desc["GT vector"], 4)

	roc := doc["ROC analysis"].(map[string]any)
	for _, key := range []string{"fpr", "tpr", "roc_auc", "youden_index", "decision_values"} {
		assert.Contains(t, roc, key)
	}

	pos := doc["Detection performance"].(map[string]any)["Youden + 0"].(map[string]any)
	assert.Equal(t, 10.0, pos["Decision threshold"])
	p := pos["Performance:"].(map[string]any)
	for _, key := range []string{"tp", "tn", "fp", "fn", "sensitivity", "specificity", "precision", "npv", "accuracy", "f1", "predicted"} {
		assert.Contains(t, p, key)
	}
	stanford := pos["Stanford classification"].(map[string]any)
	sp := stanford["Performance:"].(map[string]any)
	assert.Nil(t, sp["npv"], "undefined rate must serialize as null")
}

func TestSweepResult_KeysInPositionOrder(t *testing.T) {
	data, err := json.Marshal(sampleResult(t, 12).Detection)
	require.NoError(t, err)

	s := string(data)
	last := -1
	for i := 0; i < 12; i++ {
		idx := strings.Index(s, `"`+SweepKey(i)+`"`)
		require.GreaterOrEqual(t, idx, 0, "missing key %d", i)
		assert.Greater(t, idx, last, "key %d out of order", i)
		last = idx
	}
}

func TestSweepResult_StanfordOmittedWhenAbsent(t *testing.T) {
	res := sampleResult(t, 2)
	data, err := json.Marshal(res.Detection)
	require.NoError(t, err)

	var doc map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc["Youden + 0"], "Stanford classification")
	assert.NotContains(t, doc["Youden + 1"], "Stanford classification")
}

func TestEvaluationResult_RoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 11} {
		orig := sampleResult(t, n)
		data, err := json.MarshalIndent(orig, "", "    ")
		require.NoError(t, err)

		var back EvaluationResult
		require.NoError(t, json.Unmarshal(data, &back))

		if n == 0 {
			// An empty sweep serializes as {} and comes back as an empty slice.
			assert.Empty(t, back.Detection)
			back.Detection = orig.Detection
		}
		if diff := cmp.Diff(orig, &back, cmp.AllowUnexported(metrics.Rate{})); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestSweepResult_UnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"bad key", `{"Best": {}}`},
		{"gap", `{"Youden + 0": {}, "Youden + 2": {}}`},
		{"not an object", `[1,2]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s SweepResult
			assert.Error(t, json.Unmarshal([]byte(tt.json), &s))
		})
	}
}

func TestEvaluationResult_Helpers(t *testing.T) {
	res := sampleResult(t, 3)
	require.NotNil(t, res.YoudenPoint())
	assert.Equal(t, 10.0, res.YoudenPoint().Threshold)
	assert.True(t, res.HasStanford())
	assert.Equal(t, 4, res.CaseCount())

	empty := &EvaluationResult{}
	assert.Nil(t, empty.YoudenPoint())
	assert.False(t, empty.HasStanford())
}
