// Package dataset loads and validates the per-case volume table that feeds
// the detection evaluation.
package dataset

import (
	"fmt"
	"log/slog"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/dkfz-mic/adeval/internal/evalerr"
	"github.com/go-viper/mapstructure/v2"
)

// Column names written by the volumetry step.
const (
	ColumnAscending   = "false_lumen_ascending"
	ColumnDescending  = "false_lumen_descending"
	ColumnMembrane    = "membrane"
	ColumnLabel       = "is_AD"
	ColumnAscendingGT = "false_lumen_ascending_gt"
)

// RequiredColumns lists the columns every volume table must carry.
var RequiredColumns = []string{ColumnAscending, ColumnDescending, ColumnMembrane, ColumnLabel}

// missingMarkers are cell values treated as missing, after trimming and lowercasing.
var missingMarkers = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
	"none": true,
	"<na>": true,
}

// Label is a binary class label: 1 for AD, 0 for non-AD.
type Label int

// CaseRecord holds the measurements of one segmented case.
type CaseRecord struct {
	ID          string
	Ascending   float64
	Descending  float64
	Membrane    float64
	AscendingGT float64
	IsPositive  Label
}

// Table is an ordered set of cases. Case order follows the source file and is
// the order of every vector derived from it.
type Table struct {
	Source         string
	Columns        []string
	Cases          []CaseRecord
	HasGroundTruth bool
}

// Len returns the number of cases.
func (t *Table) Len() int {
	return len(t.Cases)
}

// Labels returns the label vector in case order.
func (t *Table) Labels() []int {
	out := make([]int, len(t.Cases))
	for i, c := range t.Cases {
		out[i] = int(c.IsPositive)
	}
	return out
}

type measurement struct {
	column string
	v      float64
}

// Validate checks the invariants the evaluation relies on: at least one case,
// unique identifiers, finite non-negative measurements, binary labels and
// both label classes present.
func (t *Table) Validate() error {
	var problems []string
	seen := make(map[string]bool, len(t.Cases))
	classes := map[Label]bool{}

	for _, c := range t.Cases {
		if seen[c.ID] {
			problems = append(problems, fmt.Sprintf("duplicate case id %q", c.ID))
		}
		seen[c.ID] = true

		values := []measurement{
			{ColumnAscending, c.Ascending},
			{ColumnDescending, c.Descending},
			{ColumnMembrane, c.Membrane},
		}
		if t.HasGroundTruth {
			values = append(values, measurement{ColumnAscendingGT, c.AscendingGT})
		}
		for _, m := range values {
			switch {
			case math.IsNaN(m.v) || math.IsInf(m.v, 0):
				problems = append(problems, fmt.Sprintf("row %q, column %q: value is not finite", c.ID, m.column))
			case m.v < 0:
				problems = append(problems, fmt.Sprintf("row %q, column %q: negative volume %g", c.ID, m.column, m.v))
			}
		}

		if c.IsPositive != 0 && c.IsPositive != 1 {
			problems = append(problems, fmt.Sprintf("row %q, column %q: label %d is not 0 or 1", c.ID, ColumnLabel, c.IsPositive))
			continue
		}
		classes[c.IsPositive] = true
	}

	if len(t.Cases) == 0 {
		problems = append(problems, "table has no cases")
	} else {
		for _, l := range []Label{0, 1} {
			if !classes[l] {
				problems = append(problems, fmt.Sprintf("class labels for both AD and non-AD cases must be provided, label value %d has not been provided", l))
			}
		}
	}

	if len(problems) > 0 {
		return &evalerr.ValidationError{Source: t.Source, Problems: problems}
	}
	return nil
}

// LoadCases reads and validates a volume table from a CSV file. The first
// column holds the case identifier, whatever its header.
func LoadCases(path string) (*Table, error) {
	sheet, err := LoadCSV(path)
	if err != nil {
		return nil, err
	}
	return FromSheet(sheet)
}

// caseRow is the decoding target for one CSV row.
type caseRow struct {
	Ascending   float64  `mapstructure:"false_lumen_ascending"`
	Descending  float64  `mapstructure:"false_lumen_descending"`
	Membrane    float64  `mapstructure:"membrane"`
	AscendingGT *float64 `mapstructure:"false_lumen_ascending_gt"`
	IsPositive  Label    `mapstructure:"is_AD"`
}

// FromSheet converts parsed CSV rows into a validated Table. All problems
// found are reported together in one ValidationError.
func FromSheet(sheet *Sheet) (*Table, error) {
	invalid := func(problems ...string) error {
		return &evalerr.ValidationError{Source: sheet.Source, Problems: problems}
	}

	if len(sheet.Headers) < 2 {
		return nil, invalid("expected an identifier column followed by measurement columns")
	}
	idColumn := sheet.Headers[0]
	columns := sheet.Headers[1:]

	var missing []string
	for _, col := range RequiredColumns {
		if !contains(columns, col) {
			missing = append(missing, fmt.Sprintf("missing required column %q", col))
		}
	}
	if len(missing) > 0 {
		return nil, invalid(missing...)
	}

	table := &Table{
		Source:         sheet.Source,
		Columns:        columns,
		Cases:          make([]CaseRecord, 0, len(sheet.Rows)),
		HasGroundTruth: contains(columns, ColumnAscendingGT),
	}

	var problems []string
	for i, row := range sheet.Rows {
		id := strings.TrimSpace(row[idColumn])
		if id == "" {
			id = fmt.Sprintf("#%d", i+1)
			problems = append(problems, fmt.Sprintf("row %d: missing case identifier", i+1))
		}

		var gaps []string
		for _, col := range columns {
			if isMissing(row[col]) {
				gaps = append(gaps, fmt.Sprintf("row %q, column %q: missing value", id, col))
			}
		}
		if len(gaps) > 0 {
			problems = append(problems, gaps...)
			continue
		}

		var decoded caseRow
		if err := decodeRow(row, &decoded); err != nil {
			problems = append(problems, fmt.Sprintf("row %q: %v", id, err))
			continue
		}

		rec := CaseRecord{
			ID:         id,
			Ascending:  decoded.Ascending,
			Descending: decoded.Descending,
			Membrane:   decoded.Membrane,
			IsPositive: decoded.IsPositive,
		}
		if decoded.AscendingGT != nil {
			rec.AscendingGT = *decoded.AscendingGT
		}
		table.Cases = append(table.Cases, rec)
	}

	if len(problems) > 0 {
		return nil, invalid(problems...)
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}

	slog.Debug("loaded volume table",
		"source", sheet.Source,
		"cases", table.Len(),
		"positives", countLabel(table, 1),
		"ground_truth", table.HasGroundTruth)
	return table, nil
}

func decodeRow(row Row, out *caseRow) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       labelHook,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(row)
}

var labelType = reflect.TypeOf(Label(0))

// labelHook decodes label cells. pandas writes booleans as True/False and
// integer columns that once held NaN as 1.0/0.0, so all of these are accepted.
func labelHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != labelType || from.Kind() != reflect.String {
		return data, nil
	}
	return ParseLabel(data.(string))
}

// ParseLabel parses a label cell into 0 or 1.
func ParseLabel(s string) (Label, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "1", "true":
		return 1, nil
	case "0", "false":
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err == nil && (f == 0 || f == 1) {
		return Label(f), nil
	}
	return 0, fmt.Errorf("label %q is not 0 or 1", s)
}

func isMissing(cell string) bool {
	return missingMarkers[strings.ToLower(strings.TrimSpace(cell))]
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func countLabel(t *Table, l Label) int {
	n := 0
	for _, c := range t.Cases {
		if c.IsPositive == l {
			n++
		}
	}
	return n
}
