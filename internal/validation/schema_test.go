package validation

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dkfz-mic/adeval/internal/metrics"
	"github.com/dkfz-mic/adeval/internal/models"
	"github.com/stretchr/testify/require"
)

const validResultJSON = `{
    "Dataset description": {"Number of positives": 2, "Number of negatives": 2, "GT vector": [0, 0, 1, 1]},
    "ROC analysis": {
        "fpr": [0, 0, 0, 0.5, 1],
        "tpr": [0, 0.5, 1, 1, 1],
        "roc_auc": 1,
        "youden_index": 2,
        "decision_values": [1, 2, 3, 4]
    },
    "Detection performance": {
        "Youden + 0": {
            "Decision threshold": 3,
            "Performance:": {
                "tp": 2, "tn": 2, "fp": 0, "fn": 0,
                "sensitivity": 1, "specificity": 1, "precision": 1, "npv": 1,
                "accuracy": 1, "f1": 1, "predicted": [0, 0, 1, 1]
            }
        },
        "Youden + 1": {
            "Decision threshold": 2,
            "Performance:": {
                "tp": 2, "tn": 1, "fp": 1, "fn": 0,
                "sensitivity": 1, "specificity": 0.5, "precision": 0.6666666666666666, "npv": null,
                "accuracy": 0.75, "f1": 0.8, "predicted": [0, 1, 1, 1]
            }
        }
    }
}`

const invalidResultJSON = `{
    "Dataset description": {"Number of positives": 2, "Number of negatives": 2, "GT vector": [0, 0, 1, 2]},
    "ROC analysis": {
        "fpr": [0, 1],
        "tpr": [0, 1],
        "roc_auc": 1.5,
        "youden_index": 0,
        "decision_values": [1, 2, 3, 4]
    },
    "Detection performance": {
        "Best": {"Decision threshold": 3}
    }
}`

const validConfigYAML = `paths:
  results: out/
evaluation:
  workers: 4
  interpret: true
  format: markdown
store:
  enabled: true
  path: .adeval/history.db
archive:
  url: https://account.blob.core.windows.net/results
`

const invalidConfigYAML = `evaluation:
  workers: 0
  format: pdf
archive:
  url: ftp://example.org
`

func TestValidateResultBytes_Valid(t *testing.T) {
	errs := ValidateResultBytes([]byte(validResultJSON))
	require.Empty(t, errs, "valid result should have no errors")
}

func TestValidateResultBytes_Invalid(t *testing.T) {
	errs := ValidateResultBytes([]byte(invalidResultJSON))
	require.NotEmpty(t, errs, "invalid result should have errors")

	joined := strings.Join(errs, "\n")
	require.Contains(t, joined, "GT vector")
	require.Contains(t, joined, "roc_auc")
	require.Contains(t, joined, "Detection performance")
}

func TestValidateResultBytes_NotJSON(t *testing.T) {
	errs := ValidateResultBytes([]byte("{not json"))
	require.Len(t, errs, 1)
	require.Contains(t, errs[0], "JSON parse error")
}

func TestValidateResultBytes_MarshaledModel(t *testing.T) {
	gt := []int{0, 1}
	perf, err := metrics.Compute(gt, []int{1, 1})
	require.NoError(t, err)

	res := &models.EvaluationResult{
		Dataset: models.DatasetDescription{Positives: 1, Negatives: 1, GTVector: gt},
		ROC: models.ROCAnalysis{
			FPR: []float64{0, 1}, TPR: []float64{0, 1}, AUC: 0.5, DecisionValues: []float64{2, 2},
		},
		Detection: models.SweepResult{{
			Threshold:   3,
			Performance: *perf,
			Stanford:    &models.StanfordResult{Threshold: 1, Performance: *perf},
		}},
	}
	data, err := json.Marshal(res)
	require.NoError(t, err)
	require.Empty(t, ValidateResultBytes(data))
}

func TestValidateConfigBytes(t *testing.T) {
	require.Empty(t, ValidateConfigBytes([]byte(validConfigYAML)))
	require.Empty(t, ValidateConfigBytes([]byte("")), "empty config is valid")

	errs := ValidateConfigBytes([]byte(invalidConfigYAML))
	joined := strings.Join(errs, "\n")
	require.Contains(t, joined, "workers")
	require.Contains(t, joined, "format")
	require.Contains(t, joined, "url")

	errs = ValidateConfigBytes([]byte("unknown: 1\n"))
	require.NotEmpty(t, errs)

	errs = ValidateConfigBytes([]byte("evaluation: [\n"))
	require.Len(t, errs, 1)
	require.Contains(t, errs[0], "YAML parse error")
}

func TestValidateConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".adeval.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validConfigYAML), 0644))

	errs, err := ValidateConfigFile(path)
	require.NoError(t, err)
	require.Empty(t, errs)

	_, err = ValidateConfigFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}
