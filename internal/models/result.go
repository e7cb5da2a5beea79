// Package models defines the evaluation result document and its JSON form.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/dkfz-mic/adeval/internal/metrics"
)

// SweepKeyPrefix prefixes every key of the detection performance object.
const SweepKeyPrefix = "Youden + "

// SweepKey returns the label of sweep position i.
func SweepKey(i int) string {
	return SweepKeyPrefix + strconv.Itoa(i)
}

// ParseSweepKey returns the sweep position encoded in key.
func ParseSweepKey(key string) (int, error) {
	rest, ok := strings.CutPrefix(key, SweepKeyPrefix)
	if !ok {
		return 0, fmt.Errorf("sweep key %q does not start with %q", key, SweepKeyPrefix)
	}
	i, err := strconv.Atoi(rest)
	if err != nil || i < 0 {
		return 0, fmt.Errorf("sweep key %q has no valid position", key)
	}
	return i, nil
}

// DatasetDescription summarizes the evaluated labels.
type DatasetDescription struct {
	Positives int   `json:"Number of positives"`
	Negatives int   `json:"Number of negatives"`
	GTVector  []int `json:"GT vector"`
}

// ROCAnalysis is the first-stage ROC curve as reported. The threshold axis
// is not part of the document; the swept thresholds appear per position.
type ROCAnalysis struct {
	FPR            []float64 `json:"fpr"`
	TPR            []float64 `json:"tpr"`
	AUC            float64   `json:"roc_auc"`
	YoudenIndex    int       `json:"youden_index"`
	DecisionValues []float64 `json:"decision_values"`
}

// StanfordResult is the second-stage evaluation among first-stage true positives.
type StanfordResult struct {
	Threshold   float64        `json:"Decision threshold"`
	Performance metrics.Result `json:"Performance:"`
}

// ThresholdResult is one sweep position.
type ThresholdResult struct {
	Threshold   float64         `json:"Decision threshold"`
	Performance metrics.Result  `json:"Performance:"`
	Stanford    *StanfordResult `json:"Stanford classification,omitempty"`

	// StanfordSkipped explains why Stanford is nil although ground truth was
	// available. It is not serialized.
	StanfordSkipped string `json:"-"`
}

// SweepResult holds the sweep positions in order. It serializes as a JSON
// object keyed "Youden + i", keys in position order.
type SweepResult []ThresholdResult

// MarshalJSON writes positions in order; a Go map would sort "Youden + 10"
// before "Youden + 2".
func (s SweepResult) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(SweepKey(i))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(&s[i])
		if err != nil {
			return nil, fmt.Errorf("sweep position %d: %w", i, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts keys in any order but requires positions 0..n-1
// without gaps.
func (s *SweepResult) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*s = nil
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(SweepResult, len(raw))
	filled := make([]bool, len(raw))
	for key, value := range raw {
		i, err := ParseSweepKey(key)
		if err != nil {
			return err
		}
		if i >= len(out) {
			return fmt.Errorf("sweep position %d out of range for %d positions", i, len(out))
		}
		if err := json.Unmarshal(value, &out[i]); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		filled[i] = true
	}
	for i, ok := range filled {
		if !ok {
			return fmt.Errorf("sweep position %d missing", i)
		}
	}
	*s = out
	return nil
}

// EvaluationResult is the full output of one detection evaluation.
type EvaluationResult struct {
	Dataset   DatasetDescription `json:"Dataset description"`
	ROC       ROCAnalysis        `json:"ROC analysis"`
	Detection SweepResult        `json:"Detection performance"`
}

// YoudenPoint returns the first sweep position (the Youden-optimal threshold),
// or nil when the sweep is empty.
func (r *EvaluationResult) YoudenPoint() *ThresholdResult {
	if len(r.Detection) == 0 {
		return nil
	}
	return &r.Detection[0]
}

// HasStanford reports whether any sweep position carries a Stanford result.
func (r *EvaluationResult) HasStanford() bool {
	for i := range r.Detection {
		if r.Detection[i].Stanford != nil {
			return true
		}
	}
	return false
}

// CaseCount returns the number of evaluated cases.
func (r *EvaluationResult) CaseCount() int {
	return r.Dataset.Positives + r.Dataset.Negatives
}
