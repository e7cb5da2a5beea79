package dataset

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/dkfz-mic/adeval/internal/evalerr"
)

// MergeGroundTruth attaches ground-truth ascending false lumen volumes to a
// volume table. Cases are matched by the base name of their identifier, since
// measurements and ground truth usually come from different folders.
//
// Both tables must have the same shape and the same set of base names. The
// result is a new table in seg's case order; neither input is modified.
func MergeGroundTruth(seg, gt *Table) (*Table, error) {
	source := fmt.Sprintf("%s + %s", seg.Source, gt.Source)

	if seg.Len() != gt.Len() || len(seg.Columns) != len(gt.Columns) {
		return nil, &evalerr.ValidationError{Source: source, Problems: []string{fmt.Sprintf(
			"test and ground truth input must have equal formatting: test data has %d rows and %d columns, ground truth has %d rows and %d columns",
			seg.Len(), len(seg.Columns), gt.Len(), len(gt.Columns))}}
	}

	gtByName := make(map[string]CaseRecord, gt.Len())
	for _, c := range gt.Cases {
		gtByName[baseName(c.ID)] = c
	}
	segNames := make(map[string]bool, seg.Len())
	for _, c := range seg.Cases {
		segNames[baseName(c.ID)] = true
	}

	var onlySeg, onlyGT []string
	for name := range segNames {
		if _, ok := gtByName[name]; !ok {
			onlySeg = append(onlySeg, name)
		}
	}
	for name := range gtByName {
		if !segNames[name] {
			onlyGT = append(onlyGT, name)
		}
	}
	if len(segNames) != seg.Len() || len(gtByName) != gt.Len() {
		return nil, &evalerr.ValidationError{Source: source, Problems: []string{"case identifiers are not unique by file name"}}
	}
	if len(onlySeg) > 0 || len(onlyGT) > 0 {
		sort.Strings(onlySeg)
		sort.Strings(onlyGT)
		return nil, &evalerr.ValidationError{Source: source, Problems: []string{fmt.Sprintf(
			"ids differ between input data and ground truth data: extra ids in volume measurements: [%s], extra ids in ground truth measurements: [%s]",
			strings.Join(onlySeg, ", "), strings.Join(onlyGT, ", "))}}
	}

	merged := &Table{
		Source:         seg.Source,
		Columns:        appendUnique(seg.Columns, ColumnAscendingGT),
		Cases:          make([]CaseRecord, seg.Len()),
		HasGroundTruth: true,
	}
	for i, c := range seg.Cases {
		c.AscendingGT = gtByName[baseName(c.ID)].Ascending
		merged.Cases[i] = c
	}

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

// baseName returns the last element of a slash or backslash separated path.
func baseName(id string) string {
	return path.Base(strings.ReplaceAll(id, `\`, "/"))
}

func appendUnique(columns []string, col string) []string {
	out := make([]string, 0, len(columns)+1)
	out = append(out, columns...)
	if !contains(out, col) {
		out = append(out, col)
	}
	return out
}
